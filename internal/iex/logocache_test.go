package iex

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLogoCache(t *testing.T) {
	now := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	c := newLogoCache(2, time.Hour)
	c.now = func() time.Time { return now }

	_, ok := c.get("AAPL")
	require.False(t, ok)

	c.put("AAPL", []byte("apple"))
	logo, ok := c.get("AAPL")
	require.True(t, ok)
	require.Equal(t, []byte("apple"), logo)

	// expired entries are misses
	now = now.Add(2 * time.Hour)
	_, ok = c.get("AAPL")
	require.False(t, ok)

	// least recently used entries are evicted
	c.put("AAPL", []byte("apple"))
	c.put("MSFT", []byte("msft"))
	c.put("TSLA", []byte("tsla"))
	_, ok = c.get("AAPL")
	require.False(t, ok)
	_, ok = c.get("TSLA")
	require.True(t, ok)
}

func TestLogoCache_DefaultTTL(t *testing.T) {
	require.Equal(t, defaultLogoTTL, newLogoCache(1, 0).ttl)
}
