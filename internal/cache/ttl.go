// internal/cache/ttl.go

package cache

import (
	"context"
	"sync"
	"time"
)

// entry is a cached value with its expiry.
type entry struct {
	value     interface{}
	expiresAt time.Time
}

// TTLCache is a small in-memory cache with per-entry TTLs and a background
// janitor. It owns its own eviction lifecycle and is injected into the
// collaborators that need caching rather than living as ambient global
// state.
type TTLCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewTTLCache creates a cache whose janitor sweeps expired entries at the
// given interval. An interval of zero disables sweeping; entries still
// expire lazily on read.
func NewTTLCache(cleanupInterval time.Duration) *TTLCache {
	ctx, cancel := context.WithCancel(context.Background())

	c := &TTLCache{
		entries: make(map[string]entry),
		ctx:     ctx,
		cancel:  cancel,
	}

	if cleanupInterval > 0 {
		go c.janitor(cleanupInterval)
	}

	return c
}

// Get returns the cached value for a key, if present and unexpired.
func (c *TTLCache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under a key for the given TTL.
func (c *TTLCache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
}

// Delete removes a key.
func (c *TTLCache) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Len returns the number of entries, expired ones included.
func (c *TTLCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close stops the janitor.
func (c *TTLCache) Close() {
	c.cancel()
}

// janitor sweeps expired entries periodically.
func (c *TTLCache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for key, e := range c.entries {
				if now.After(e.expiresAt) {
					delete(c.entries, key)
				}
			}
			c.mu.Unlock()
		}
	}
}
