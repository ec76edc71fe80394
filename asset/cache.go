package asset

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/lixenwraith/arcade/surface"
)

// Cache keeps decoded images keyed by a hash of their encoded bytes
// Entries are evicted oldest first once capacity is reached; capacity 0 disables caching
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[uint64]*surface.Surface
	order    []uint64

	hits, misses uint64
}

// NewCache creates a cache holding up to capacity images
func NewCache(capacity int) *Cache {
	return &Cache{
		capacity: capacity,
		entries:  make(map[uint64]*surface.Surface, capacity),
	}
}

// Key hashes encoded image bytes together with the name they were loaded under
func Key(data []byte, name string) uint64 {
	d := xxhash.New()
	_, _ = d.Write(data)
	_, _ = d.WriteString("\x00" + name)
	return d.Sum64()
}

// Get returns a private copy of the cached image
func (c *Cache) Get(key uint64) (*surface.Surface, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	return s.Clone(), true
}

// Put stores a copy of s
func (c *Cache) Put(key uint64, s *surface.Surface) {
	if c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return
	}
	for len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		_ = c.entries[oldest].Close()
		delete(c.entries, oldest)
	}
	c.entries[key] = s.Clone()
	c.order = append(c.order, key)
}

// Len returns the number of cached images
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns lookup hits and misses
func (c *Cache) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear drops every entry
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, s := range c.entries {
		_ = s.Close()
		delete(c.entries, k)
	}
	c.order = c.order[:0]
}
