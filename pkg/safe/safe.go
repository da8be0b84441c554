// Package safe wraps a base.Cache with a sync.RWMutex, turning ARC's
// single-threaded state machine into the "per-instance mutex giving
// shared-read/exclusive-write" concurrency model the specification
// prefers over a worker-task/channel design.
package safe

import (
	"sync"

	"github.com/arccache/arc/pkg/base"
)

// New wraps cache with read-write mutex protection. Non-mutating,
// non-touching reads (Has, a Get with touch=false) may run concurrently
// with each other; everything else serializes.
func New[K comparable, V any](cache base.Cache[K, V]) base.Cache[K, V] {
	return &Cache[K, V]{
		Cache: cache,
	}
}

// Cache is a thread-safe wrapper around any base.Cache implementation.
type Cache[K comparable, V any] struct {
	base.Cache[K, V]
	sync.RWMutex
}

var _ base.Cache[string, int] = (*Cache[string, int])(nil)

// Put stores a key-value pair, running the full admission state machine,
// under an exclusive write lock.
func (c *Cache[K, V]) Put(key K, value V) {
	c.Lock()
	defer c.Unlock()
	c.Cache.Put(key, value)
}

// Get returns the value for key. A touching get mutates list order, so it
// always takes the write lock; a non-touching get only reads and may run
// under the shared read lock.
func (c *Cache[K, V]) Get(key K, touch bool) (value V, ok bool) {
	if !touch {
		c.RLock()
		defer c.RUnlock()
		return c.Cache.Get(key, false)
	}

	c.Lock()
	defer c.Unlock()
	return c.Cache.Get(key, true)
}

// Has reports residency under a shared read lock.
func (c *Cache[K, V]) Has(key K) bool {
	c.RLock()
	defer c.RUnlock()
	return c.Cache.Has(key)
}

// Update replaces a resident key's value under an exclusive write lock.
func (c *Cache[K, V]) Update(key K, value V, touch bool) bool {
	c.Lock()
	defer c.Unlock()
	return c.Cache.Update(key, value, touch)
}

// Delete removes key under an exclusive write lock.
func (c *Cache[K, V]) Delete(key K) bool {
	c.Lock()
	defer c.Unlock()
	return c.Cache.Delete(key)
}

// PutMany stores every (key, value) pair in items under a single exclusive
// write lock, rather than one lock acquisition per item.
func (c *Cache[K, V]) PutMany(items map[K]V) {
	if len(items) == 0 {
		return
	}

	c.Lock()
	defer c.Unlock()
	c.Cache.PutMany(items)
}

// GetMany returns the resident values among keys, and the subset that
// missed, under a single exclusive write lock: a hit may mutate list order,
// so the whole batch takes the write lock rather than the read lock.
func (c *Cache[K, V]) GetMany(keys []K) (found map[K]V, missing []K) {
	if len(keys) == 0 {
		return map[K]V{}, []K{}
	}

	c.Lock()
	defer c.Unlock()
	return c.Cache.GetMany(keys)
}

// HasMany reports residency for every key in keys under a single shared
// read lock.
func (c *Cache[K, V]) HasMany(keys []K) map[K]bool {
	if len(keys) == 0 {
		return map[K]bool{}
	}

	c.RLock()
	defer c.RUnlock()
	return c.Cache.HasMany(keys)
}

// DeleteMany deletes every key in keys under a single exclusive write lock.
func (c *Cache[K, V]) DeleteMany(keys []K) map[K]bool {
	if len(keys) == 0 {
		return map[K]bool{}
	}

	c.Lock()
	defer c.Unlock()
	return c.Cache.DeleteMany(keys)
}

// Keys returns a snapshot of resident keys under a shared read lock.
func (c *Cache[K, V]) Keys() []K {
	c.RLock()
	defer c.RUnlock()
	return c.Cache.Keys()
}

// Values returns a snapshot of resident values under a shared read lock.
func (c *Cache[K, V]) Values() []V {
	c.RLock()
	defer c.RUnlock()
	return c.Cache.Values()
}

// Range iterates over a consistent snapshot under a shared read lock.
func (c *Cache[K, V]) Range(f func(K, V) bool) {
	c.RLock()
	defer c.RUnlock()
	c.Cache.Range(f)
}

// Purge clears the cache under an exclusive write lock.
func (c *Cache[K, V]) Purge() {
	c.Lock()
	defer c.Unlock()
	c.Cache.Purge()
}

// Len returns the resident entry count under a shared read lock.
func (c *Cache[K, V]) Len() int {
	c.RLock()
	defer c.RUnlock()
	return c.Cache.Len()
}

// Capacity is immutable and needs no lock.
func (c *Cache[K, V]) Capacity() int {
	return c.Cache.Capacity()
}

// Algorithm is immutable and needs no lock.
func (c *Cache[K, V]) Algorithm() string {
	return c.Cache.Algorithm()
}
