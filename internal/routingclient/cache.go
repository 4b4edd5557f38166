package routingclient

import (
	"sync"
	"time"
)

// Cache is the minimal contract C7's cache backend must satisfy (§6):
// get(key) -> value?, set(key, value, ttl). Positive caching only; a
// double-populate is idempotent because the value is a pure function of
// the key (§5/§9).
type Cache interface {
	Get(key string) (Result, bool)
	Set(key string, value Result, ttl time.Duration)
}

// memoryCache is a small, goroutine-safe, TTL-expiring in-memory cache. No
// pack example wires a third-party cache library into actual use (only
// indirect, never-imported manifest entries), so this is
// hand-rolled against the Cache contract above rather than adapted from an
// unused dependency.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	value   Result
	expires time.Time
}

// NewMemoryCache constructs an empty in-process cache.
func NewMemoryCache() Cache {
	return &memoryCache{entries: make(map[string]cacheEntry)}
}

func (c *memoryCache) Get(key string) (Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return Result{}, false
	}
	if time.Now().After(e.expires) {
		delete(c.entries, key)
		return Result{}, false
	}
	return e.value, true
}

func (c *memoryCache) Set(key string, value Result, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expires: time.Now().Add(ttl)}
}
