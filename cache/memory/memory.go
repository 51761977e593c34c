// Package memory implements geodata.KeyValueCache fully in memory.
// Safe for concurrent access. Intended for unit testing, development, and
// small working sets.
package memory

import (
	"sync"

	"github.com/minff/geodata"
)

var _ geodata.KeyValueCache = (*Cache)(nil)

// Option configures the Cache.
type Option func(*Cache)

// WithMaxEntries bounds the cache; the oldest entry is evicted when the
// bound is exceeded. Zero means unbounded.
func WithMaxEntries(n int) Option {
	return func(c *Cache) { c.maxEntries = n }
}

// Cache is an in-process map cache with optional FIFO eviction.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string][]byte
	order      []string
	maxEntries int
}

// New returns a new empty Cache.
func New(opts ...Option) *Cache {
	c := &Cache{entries: make(map[string][]byte)}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Get returns the stored value and whether the key was present.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.entries[key]
	return v, ok
}

// Put stores a value under key, overwriting any previous value.
func (c *Cache) Put(key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.order = append(c.order, key)
	}
	c.entries[key] = value

	for c.maxEntries > 0 && len(c.entries) > c.maxEntries {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	return nil
}

// Remove deletes the key and reports whether it was present.
func (c *Cache) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// Size returns the number of stored entries.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Close is a no-op for the memory cache.
func (c *Cache) Close() error { return nil }
