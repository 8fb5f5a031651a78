package polyarea

import (
	"sync"
	"time"
)

// Cache implements a thread-safe TTL cache
type Cache[V any] struct {
	items map[string]cacheItem[V]
	mu    sync.RWMutex
	ttl   time.Duration
	stop  chan struct{}
}

type cacheItem[V any] struct {
	value  V
	expiry time.Time
}

// NewCache creates a new TTL-based cache and starts its janitor.
// ttl: Time-to-live duration for cached items
func NewCache[V any](ttl time.Duration) *Cache[V] {
	c := &Cache[V]{
		items: make(map[string]cacheItem[V]),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Set adds an item to the cache
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = cacheItem[V]{
		value:  value,
		expiry: time.Now().Add(c.ttl),
	}
}

// Get retrieves an item from cache
// Returns: (value, exists) tuple
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	item, found := c.items[key]
	if !found || time.Now().After(item.expiry) {
		var zero V
		return zero, false
	}
	return item.value, true
}

// Stop terminates the janitor goroutine
func (c *Cache[V]) Stop() {
	close(c.stop)
}

// cleanup removes expired items periodically
func (c *Cache[V]) cleanup() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for k, v := range c.items {
				if now.After(v.expiry) {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		}
	}
}
