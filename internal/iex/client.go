package iex

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quotepicker/stocks/internal/logger"
)

const (
	baseURL     = "https://api.iextrading.com/1.0"
	logoBaseURL = "https://storage.googleapis.com/iex/api/logos"
)

// ErrNetwork marks transport failures and non-200 responses.
var ErrNetwork = errors.New("network error")

// StatusError is returned for responses with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.URL, e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	return ErrNetwork
}

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=iex_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	baseURL      string
	logoBaseURL  string
	httpClient   HTTPClient
	logoRequired bool
	logos        *logoCache
	logger       *logger.Logger
}

type Option func(*Client)

// WithBaseURL overrides the IEX API root.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithLogoBaseURL overrides the logo storage root.
func WithLogoBaseURL(u string) Option {
	return func(c *Client) {
		c.logoBaseURL = u
	}
}

func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithTimeout installs a plain http.Client with the given timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient = &http.Client{Timeout: d}
	}
}

// WithLogoRequired makes a failed logo download fail the whole quote fetch.
func WithLogoRequired(required bool) Option {
	return func(c *Client) {
		c.logoRequired = required
	}
}

// WithLogoCache keeps up to capacity logos for ttl. A zero capacity disables
// the cache.
func WithLogoCache(capacity uint, ttl time.Duration) Option {
	return func(c *Client) {
		if capacity == 0 {
			c.logos = nil
			return
		}
		c.logos = newLogoCache(capacity, ttl)
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(c *Client) {
		c.logger = log
	}
}

func NewClient(options ...Option) *Client {
	c := &Client{
		baseURL:     baseURL,
		logoBaseURL: logoBaseURL,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, option := range options {
		option(c)
	}
	if c.logger == nil {
		c.logger = logger.Discard()
	}
	return c
}

// get performs a GET and returns the body of a 200 response.
func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w: %w", url, ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w: %w", url, ErrNetwork, err)
	}

	return body, nil
}
