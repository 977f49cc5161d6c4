package iex

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/sync/errgroup"

	"github.com/quotepicker/stocks/internal/quote"
)

// QuoteResult carries the raw quote body and the logo image, if any.
type QuoteResult struct {
	Body []byte
	Logo []byte
}

// FetchDirectory loads the companies-in-focus list.
func (c *Client) FetchDirectory(ctx context.Context) (*quote.Directory, error) {
	body, err := c.get(ctx, c.baseURL+"/stock/market/list/infocus")
	if err != nil {
		return nil, fmt.Errorf("fetch directory: %w", err)
	}

	dir, err := quote.ParseDirectory(body)
	if err != nil {
		return nil, fmt.Errorf("fetch directory: %w", err)
	}

	c.logger.Debug("directory fetched", "companies", dir.Len())
	return dir, nil
}

// FetchQuote downloads the quote and the logo for symbol concurrently.
// A failed logo is tolerated unless the client was built WithLogoRequired.
func (c *Client) FetchQuote(ctx context.Context, symbol string) (QuoteResult, error) {
	escaped := url.PathEscape(symbol)
	quoteURL := fmt.Sprintf("%s/stock/%s/quote", c.baseURL, escaped)
	logoURL := fmt.Sprintf("%s/%s.png", c.logoBaseURL, escaped)

	var res QuoteResult
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		body, err := c.get(gctx, quoteURL)
		if err != nil {
			return fmt.Errorf("fetch quote %s: %w", symbol, err)
		}
		res.Body = body
		return nil
	})

	g.Go(func() error {
		if c.logos != nil {
			if logo, ok := c.logos.get(symbol); ok {
				res.Logo = logo
				return nil
			}
		}

		logo, err := c.get(gctx, logoURL)
		if err != nil {
			if c.logoRequired {
				return fmt.Errorf("fetch logo %s: %w", symbol, err)
			}
			c.logger.Warn("logo unavailable", "symbol", symbol, "error", err)
			return nil
		}
		if c.logos != nil {
			c.logos.put(symbol, logo)
		}
		res.Logo = logo
		return nil
	})

	if err := g.Wait(); err != nil {
		return QuoteResult{}, err
	}
	return res, nil
}
