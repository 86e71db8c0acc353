package routing

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"tether/scene"
)

// RouteKey identifies a routed path: both endpoints rounded to half-unit
// precision, the bound shape ids, and the fingerprint of the obstacle
// configuration the route was computed against.
type RouteKey struct {
	SX, SY, EX, EY int64
	StartID, EndID string
	Fingerprint    uint64
}

// NewRouteKey builds a cache key for a route request.
func NewRouteKey(start, end scene.Point, startID, endID string, fingerprint uint64) RouteKey {
	return RouteKey{
		SX: roundHalf(start.X), SY: roundHalf(start.Y),
		EX: roundHalf(end.X), EY: roundHalf(end.Y),
		StartID:     startID,
		EndID:       endID,
		Fingerprint: fingerprint,
	}
}

// roundHalf rounds a coordinate to 0.5-unit precision, absorbing sub-pixel
// jitter so equivalent requests share a key.
func roundHalf(v float64) int64 {
	return int64(math.Round(v * 2))
}

// Cache stores previously computed elbow paths for reuse.
type Cache struct {
	mu        sync.RWMutex
	entries   map[RouteKey][]scene.Point
	maxSize   int
	hits      int64 // Use atomic operations
	misses    int64 // Use atomic operations
	evictions int64 // Use atomic operations
}

// NewCache creates a route cache with the specified maximum size.
func NewCache(maxSize int) *Cache {
	return &Cache{
		entries: make(map[RouteKey][]scene.Point),
		maxSize: maxSize,
	}
}

// Get retrieves a cached path if present.
func (c *Cache) Get(key RouteKey) ([]scene.Point, bool) {
	c.mu.RLock()
	points, found := c.entries[key]
	c.mu.RUnlock()

	if found {
		atomic.AddInt64(&c.hits, 1)
	} else {
		atomic.AddInt64(&c.misses, 1)
	}
	return points, found
}

// Put stores a path in the cache.
func (c *Cache) Put(key RouteKey, points []scene.Point) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.entries) >= c.maxSize && c.maxSize > 0 {
		// Simple eviction: remove the first entry found.
		for k := range c.entries {
			delete(c.entries, k)
			atomic.AddInt64(&c.evictions, 1)
			break
		}
	}
	c.entries[key] = points
}

// Clear removes all entries from the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[RouteKey][]scene.Point)
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
	atomic.StoreInt64(&c.evictions, 0)
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses, evictions, size int) {
	c.mu.RLock()
	size = len(c.entries)
	c.mu.RUnlock()

	hits = int(atomic.LoadInt64(&c.hits))
	misses = int(atomic.LoadInt64(&c.misses))
	evictions = int(atomic.LoadInt64(&c.evictions))
	return hits, misses, evictions, size
}

// String returns a string representation of cache statistics.
func (c *Cache) String() string {
	hits, misses, evictions, size := c.Stats()
	hitRate := 0.0
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return fmt.Sprintf("Cache[size=%d/%d, hits=%d, misses=%d, hitRate=%.1f%%, evictions=%d]",
		size, c.maxSize, hits, misses, hitRate, evictions)
}
