package display

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quotepicker/stocks/internal/quote"
)

func TestFormat_AppleExample(t *testing.T) {
	got := Format(quote.Quote{CompanyName: "Apple Inc.", Symbol: "AAPL", Price: 150.0, Change: -2.5})

	require.Equal(t, State{
		Company: "Apple Inc. (AAPL)",
		Price:   "150.0 $",
		Change:  "-2.5 $ ↘",
		Color:   Down,
	}, got)
}

func TestFormat_ChangeDirection(t *testing.T) {
	tests := []struct {
		name   string
		change float64
		color  Color
		suffix string
	}{
		{name: "up", change: 1.25, color: Up, suffix: " $ ↗"},
		{name: "small up", change: 0.01, color: Up, suffix: " $ ↗"},
		{name: "down", change: -0.37, color: Down, suffix: " $ ↘"},
		{name: "flat", change: 0, color: Neutral, suffix: " $"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(quote.Quote{CompanyName: "Tesla, Inc.", Symbol: "TSLA", Price: 250.1, Change: tt.change})
			assert.Equal(t, tt.color, got.Color)
			assert.True(t, strings.HasSuffix(got.Change, tt.suffix), "change text %q", got.Change)
			if tt.color == Neutral {
				assert.NotContains(t, got.Change, "↗")
				assert.NotContains(t, got.Change, "↘")
			}
		})
	}
}

func TestZeroed(t *testing.T) {
	z := Zeroed()
	require.Equal(t, "-", z.Company)
	require.Equal(t, "-", z.Price)
	require.Equal(t, "-", z.Change)
	require.Equal(t, Neutral, z.Color)
	require.True(t, z.IsZeroed())

	formatted := Format(quote.Quote{CompanyName: "Apple Inc.", Symbol: "AAPL", Price: 1, Change: 1})
	require.False(t, formatted.IsZeroed())
	require.Equal(t, z, Zeroed())
}

func TestDecimal(t *testing.T) {
	tests := map[float64]string{
		150:      "150.0",
		-2.5:     "-2.5",
		0:        "0.0",
		0.1:      "0.1",
		189.9301: "189.9301",
		-0.07:    "-0.07",
		1234567:  "1234567.0",
	}
	for in, want := range tests {
		assert.Equal(t, want, Decimal(in), "Decimal(%v)", in)
	}
}

func TestState_JSON(t *testing.T) {
	b, err := json.Marshal(Format(quote.Quote{CompanyName: "Apple Inc.", Symbol: "AAPL", Price: 150, Change: 2}))
	require.NoError(t, err)
	require.JSONEq(t, `{"company":"Apple Inc. (AAPL)","price":"150.0 $","change":"2.0 $ ↗","color":"up"}`, string(b))
}
