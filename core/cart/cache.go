package cart

import (
	"sync"
	"time"
)

// PayloadCache is a short-lived read cache keyed by cart id. Reads may be
// served up to TTL stale; writes always bypass it and return a fresh
// payload, so callers needing strict consistency after a write rely on
// the write response.
type PayloadCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	payload Payload
	expires time.Time
}

func NewPayloadCache(ttl time.Duration) *PayloadCache {
	return &PayloadCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *PayloadCache) Get(cartID string) (Payload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[cartID]
	if !ok {
		return Payload{}, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, cartID)
		return Payload{}, false
	}
	return e.payload, true
}

func (c *PayloadCache) Put(cartID string, p Payload) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cartID] = cacheEntry{
		payload: p,
		expires: c.now().Add(c.ttl),
	}
}
