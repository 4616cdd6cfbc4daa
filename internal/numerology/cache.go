package numerology

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache memoizes Analyze by input string. Concurrent calls for the same
// input share one computation. When the cache holds size entries it is
// emptied before the next insert. A size of zero disables storage; calls
// are still deduplicated while in flight.
//
// The zero value is not usable; call NewCache.
type Cache struct {
	size  int
	group singleflight.Group

	mu      sync.RWMutex
	entries map[string]Result
	hits    uint64
	misses  uint64
}

// CacheStats reports cache usage counters.
type CacheStats struct {
	Entries int    `json:"entries"`
	Hits    uint64 `json:"hits"`
	Misses  uint64 `json:"misses"`
}

// NewCache creates a Cache holding at most size results.
func NewCache(size int) *Cache {
	if size < 0 {
		size = 0
	}
	return &Cache{size: size, entries: make(map[string]Result)}
}

// Analyze returns the memoized Result for input, computing it on a miss.
func (c *Cache) Analyze(input string) Result {
	c.mu.RLock()
	r, ok := c.entries[input]
	c.mu.RUnlock()
	if ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return r
	}

	v, _, _ := c.group.Do(input, func() (any, error) {
		r := Analyze(input)
		if c.size > 0 {
			c.mu.Lock()
			if len(c.entries) >= c.size {
				c.entries = make(map[string]Result, c.size)
			}
			c.entries[input] = r
			c.mu.Unlock()
		}
		return r, nil
	})

	c.mu.Lock()
	c.misses++
	c.mu.Unlock()
	return v.(Result)
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return CacheStats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses}
}
