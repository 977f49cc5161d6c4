// Package quote holds the domain types of the viewer and the strict JSON
// parsers for the IEX directory and quote payloads.
package quote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned when a payload is not valid JSON or lacks a
// required field of the right type.
var ErrMalformed = errors.New("malformed data")

type Company struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

type Quote struct {
	CompanyName string
	Symbol      string
	Price       float64
	Change      float64
}

// rawQuote uses pointers so that absent and null fields can be told apart
// from zero values.
type rawQuote struct {
	CompanyName *string  `json:"companyName"`
	Symbol      *string  `json:"symbol"`
	LatestPrice *float64 `json:"latestPrice"`
	Change      *float64 `json:"change"`
}

type rawCompany struct {
	CompanyName *string `json:"companyName"`
	Symbol      *string `json:"symbol"`
}

// ParseQuote extracts a Quote from an IEX /quote response body.
func ParseQuote(b []byte) (Quote, error) {
	if !isObject(b) {
		return Quote{}, fmt.Errorf("quote: expected JSON object: %w", ErrMalformed)
	}

	var raw rawQuote
	if err := json.Unmarshal(b, &raw); err != nil {
		return Quote{}, fmt.Errorf("quote: %v: %w", err, ErrMalformed)
	}

	switch {
	case raw.CompanyName == nil:
		return Quote{}, fmt.Errorf("quote: missing companyName: %w", ErrMalformed)
	case raw.Symbol == nil:
		return Quote{}, fmt.Errorf("quote: missing symbol: %w", ErrMalformed)
	case raw.LatestPrice == nil:
		return Quote{}, fmt.Errorf("quote: missing latestPrice: %w", ErrMalformed)
	case raw.Change == nil:
		return Quote{}, fmt.Errorf("quote: missing change: %w", ErrMalformed)
	}

	return Quote{
		CompanyName: *raw.CompanyName,
		Symbol:      *raw.Symbol,
		Price:       *raw.LatestPrice,
		Change:      *raw.Change,
	}, nil
}

// ParseDirectory builds a Directory from an IEX list response body.
// A single bad entry fails the whole list.
func ParseDirectory(b []byte) (*Directory, error) {
	if !isArray(b) {
		return nil, fmt.Errorf("directory: expected JSON array: %w", ErrMalformed)
	}

	var raw []*rawCompany
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("directory: %v: %w", err, ErrMalformed)
	}

	dir := NewDirectory()
	for i, rc := range raw {
		if rc == nil || rc.CompanyName == nil || rc.Symbol == nil {
			return nil, fmt.Errorf("directory: entry %d lacks companyName or symbol: %w", i, ErrMalformed)
		}
		dir.Add(Company{Name: *rc.CompanyName, Symbol: *rc.Symbol})
	}

	return dir, nil
}

func isObject(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '{'
}

func isArray(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) > 0 && b[0] == '['
}
