// Package memo provides a bounded, insert-only memoization cache.
//
// Once a cache holds its capacity of entries, further results are still
// computed by the caller but no longer stored. Entries are never evicted.
package memo

import (
	"sync"

	"github.com/ngrash/go-isodatetime/internal/log"
)

// DefaultCapacity is the number of entries a cache holds unless told otherwise.
const DefaultCapacity = 100000

type Cache[K comparable, V any] struct {
	name     string
	capacity int

	mu      sync.Mutex
	entries map[K]V
	full    bool
}

// New returns an empty cache. A capacity <= 0 disables caching.
func New[K comparable, V any](name string, capacity int) *Cache[K, V] {
	return &Cache[K, V]{
		name:     name,
		capacity: capacity,
		entries:  make(map[K]V),
	}
}

func (c *Cache[K, V]) Get(k K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[k]
	return v, ok
}

// Put stores v under k and reports whether it was stored.
func (c *Cache[K, V]) Put(k K, v V) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[k]; ok {
		return true
	}
	if len(c.entries) >= c.capacity {
		if !c.full {
			c.full = true
			log.Debug("memo: cache full", "cache", c.name, "capacity", c.capacity)
		}
		return false
	}
	c.entries[k] = v
	return true
}

// Do returns the cached value for k, calling fn and caching its result on a miss.
// fn runs without the lock held so it may use other caches, or this one.
func (c *Cache[K, V]) Do(k K, fn func() V) V {
	if v, ok := c.Get(k); ok {
		return v
	}
	v := fn()
	c.Put(k, v)
	return v
}

func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *Cache[K, V]) Capacity() int {
	return c.capacity
}
