// Package display turns quotes into the strings and colors shown to the user.
package display

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quotepicker/stocks/internal/quote"
)

const (
	placeholder = "-"
	currency    = " $"
	arrowUp     = " ↗"
	arrowDown   = " ↘"
)

type Color int

const (
	Neutral Color = iota
	Up
	Down
)

func (c Color) String() string {
	switch c {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "neutral"
	}
}

func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// State is what a renderer shows for the selected company.
type State struct {
	Company string `json:"company"`
	Price   string `json:"price"`
	Change  string `json:"change"`
	Color   Color  `json:"color"`
}

// IsZeroed reports whether s is the placeholder state.
func (s State) IsZeroed() bool {
	return s == Zeroed()
}

// Zeroed is the placeholder shown while no quote is available.
func Zeroed() State {
	return State{
		Company: placeholder,
		Price:   placeholder,
		Change:  placeholder,
		Color:   Neutral,
	}
}

func Format(q quote.Quote) State {
	s := State{
		Company: q.CompanyName + " (" + q.Symbol + ")",
		Price:   Decimal(q.Price) + currency,
		Change:  Decimal(q.Change) + currency,
	}

	switch {
	case q.Change > 0:
		s.Color = Up
		s.Change += arrowUp
	case q.Change < 0:
		s.Color = Down
		s.Change += arrowDown
	default:
		s.Color = Neutral
	}
	return s
}

// Decimal renders f with the fewest digits that round-trip and at least one
// fractional digit: 150 -> "150.0", -2.5 -> "-2.5".
func Decimal(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := decimal.NewFromFloat(f).String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
