package iex

import (
	"sync"
	"time"

	"github.com/marstr/collection/v2"
)

const defaultLogoTTL = 24 * time.Hour

type cachedLogo struct {
	data      []byte
	fetchedAt time.Time
}

// logoCache keeps recently downloaded logos so that refreshing a quote does
// not download the same image again.
type logoCache struct {
	mu        sync.Mutex
	underlyer *collection.LRUCache[string, cachedLogo]
	ttl       time.Duration
	now       func() time.Time
}

func newLogoCache(capacity uint, ttl time.Duration) *logoCache {
	if ttl <= 0 {
		ttl = defaultLogoTTL
	}
	return &logoCache{
		underlyer: collection.NewLRUCache[string, cachedLogo](capacity),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (c *logoCache) get(symbol string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	val, ok := c.underlyer.Get(symbol)
	if !ok || val.fetchedAt.Before(c.now().Add(-c.ttl)) {
		return nil, false
	}
	return val.data, true
}

func (c *logoCache) put(symbol string, logo []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.underlyer.Put(symbol, cachedLogo{data: logo, fetchedAt: c.now()})
}
