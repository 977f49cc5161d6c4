package controller

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/quotepicker/stocks/internal/display"
	"github.com/quotepicker/stocks/internal/iex"
	"github.com/quotepicker/stocks/internal/logger"
	"github.com/quotepicker/stocks/internal/quote"
)

// Messages surfaced to the user.
const (
	MsgNetworkError  = "Network error"
	MsgInternalError = "Unexpected internal error"
	MsgNoConnection  = "No Internet connection"
)

type QuoteSource interface {
	FetchDirectory(ctx context.Context) (*quote.Directory, error)
	FetchQuote(ctx context.Context, symbol string) (iex.QuoteResult, error)
}

type ConnectivityChecker interface {
	Connected(ctx context.Context) bool
}

// Renderer shows the controller's output. All calls come from a single
// goroutine.
type Renderer interface {
	SetBusy(busy bool)
	Render(state display.State, logo []byte)
	Alert(message string)
}

type Options struct {
	// RefreshInterval re-requests the current selection periodically. Zero disables it.
	RefreshInterval time.Duration
}

// Snapshot is the last output handed to the renderer.
type Snapshot struct {
	State    display.State
	Logo     []byte
	Busy     bool
	Selected int
}

type selectEvent struct{ index int }

type refreshEvent struct{}

type resultEvent struct {
	token  uint64
	symbol string
	res    iex.QuoteResult
	err    error
}

type Controller struct {
	source   QuoteSource
	conn     ConnectivityChecker
	renderer Renderer
	logger   *logger.Logger
	opts     Options

	events chan any

	// owned by the Run goroutine (and by Init before Run starts)
	dir      *quote.Directory
	selected int
	token    uint64

	mu        sync.RWMutex
	snapshot  Snapshot
	companies []quote.Company
}

func New(src QuoteSource, conn ConnectivityChecker, r Renderer, log *logger.Logger, opts Options) *Controller {
	if log == nil {
		log = logger.Discard()
	}
	return &Controller{
		source:   src,
		conn:     conn,
		renderer: r,
		logger:   log,
		opts:     opts,
		events:   make(chan any, 32),
		dir:      quote.NewDirectory(),
		snapshot: Snapshot{State: display.Zeroed()},
	}
}

// Init checks connectivity and loads the company directory. It must return
// before Run is started. A failed load leaves an empty directory.
func (c *Controller) Init(ctx context.Context) error {
	if c.conn != nil && !c.conn.Connected(ctx) {
		c.logger.Warn("no internet connection")
		c.renderer.Alert(MsgNoConnection)
	}

	c.render(display.Zeroed(), nil)

	dir, err := c.source.FetchDirectory(ctx)
	if err != nil {
		c.logger.Error("load directory", "error", err)
		c.renderer.Alert(messageFor(err))
		return err
	}

	c.dir = dir
	c.mu.Lock()
	c.companies = dir.Companies()
	c.mu.Unlock()

	c.logger.Info("directory loaded", "companies", dir.Len())
	return nil
}

// Run processes selections until ctx is done. The first company is requested
// right away.
func (c *Controller) Run(ctx context.Context) {
	var tick <-chan time.Time
	if c.opts.RefreshInterval > 0 {
		ticker := time.NewTicker(c.opts.RefreshInterval)
		defer ticker.Stop()
		tick = ticker.C
	}

	c.logger.Info("controller started", "refresh_interval", c.opts.RefreshInterval.String())

	c.request(ctx, c.selected)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("controller stopped")
			return
		case <-tick:
			c.request(ctx, c.selected)
		case ev := <-c.events:
			c.handle(ctx, ev)
		}
	}
}

// Select requests the quote of the company at index.
func (c *Controller) Select(index int) {
	c.events <- selectEvent{index: index}
}

// Refresh re-requests the current selection.
func (c *Controller) Refresh() {
	c.events <- refreshEvent{}
}

func (c *Controller) Companies() []quote.Company {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]quote.Company, len(c.companies))
	copy(out, c.companies)
	return out
}

func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

func (c *Controller) handle(ctx context.Context, ev any) {
	switch ev := ev.(type) {
	case selectEvent:
		c.selected = ev.index
		c.request(ctx, ev.index)
	case refreshEvent:
		c.request(ctx, c.selected)
	case resultEvent:
		c.apply(ev)
	}
}

func (c *Controller) request(ctx context.Context, index int) {
	c.setBusy(true)
	c.render(display.Zeroed(), nil)

	c.token++
	token := c.token

	company, ok := c.dir.At(index)
	if !ok {
		c.logger.Warn("selection out of range", "index", index, "companies", c.dir.Len())
		c.setBusy(false)
		return
	}

	c.logger.Debug("requesting quote", "symbol", company.Symbol, "token", token)

	go func() {
		res, err := c.fetch(ctx, company.Symbol)
		select {
		case c.events <- resultEvent{token: token, symbol: company.Symbol, res: res, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (c *Controller) fetch(ctx context.Context, symbol string) (res iex.QuoteResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("panic in quote fetch", "symbol", symbol, "panic", fmt.Sprint(r))
			err = fmt.Errorf("fetch quote %s: panic: %v", symbol, r)
		}
	}()
	return c.source.FetchQuote(ctx, symbol)
}

func (c *Controller) apply(ev resultEvent) {
	if ev.token != c.token {
		c.logger.Debug("stale quote dropped", "symbol", ev.symbol, "token", ev.token, "latest", c.token)
		return
	}

	if ev.err != nil {
		c.fail(ev.symbol, ev.err)
		return
	}

	q, err := quote.ParseQuote(ev.res.Body)
	if err != nil {
		c.fail(ev.symbol, err)
		return
	}

	state := display.Format(q)
	c.setBusy(false)
	c.render(state, ev.res.Logo)
	c.logger.Info("quote displayed", "symbol", q.Symbol, "price", q.Price, "change", q.Change)
}

func (c *Controller) fail(symbol string, err error) {
	c.logger.Error("quote request failed", "symbol", symbol, "error", err)
	c.render(display.Zeroed(), nil)
	c.setBusy(false)
	c.renderer.Alert(messageFor(err))
}

func (c *Controller) render(state display.State, logo []byte) {
	c.mu.Lock()
	c.snapshot.State = state
	c.snapshot.Logo = logo
	c.snapshot.Selected = c.selected
	c.mu.Unlock()
	c.renderer.Render(state, logo)
}

func (c *Controller) setBusy(busy bool) {
	c.mu.Lock()
	c.snapshot.Busy = busy
	c.mu.Unlock()
	c.renderer.SetBusy(busy)
}

func messageFor(err error) string {
	if errors.Is(err, quote.ErrMalformed) {
		return MsgInternalError
	}
	return MsgNetworkError
}
