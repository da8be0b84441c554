// Package shardedarc composes independent arc.Core instances behind a hash
// router, trading one global critical section for N smaller ones. Per the
// concurrency model each shard owns its four lists exclusively: there is no
// cross-shard adaptation or ordering guarantee, only per-shard ones.
package shardedarc

import (
	"github.com/arccache/arc/internal"
	"github.com/arccache/arc/pkg/base"
)

// New creates a cache that distributes keys across shards shard instances.
// newCache constructs the underlying cache for a given shard index (a
// *safe.Cache wrapping an *arc.Core, typically), and fn picks the shard for
// a key.
func New[K comparable, V any](shards uint64, newCache func(shardIndex int) base.Cache[K, V], fn Hasher[K]) base.Cache[K, V] {
	caches := make([]base.Cache[K, V], shards)
	for i := uint64(0); i < shards; i++ {
		caches[i] = newCache(int(i))
	}

	return &Cache[K, V]{
		shards: shards,
		fn:     fn,
		caches: caches,
	}
}

// Cache routes each key to one of several independent arc.Core shards by
// hash, reducing lock contention under concurrent access at the cost of a
// global p, T1/T2/B1/B2 split into per-shard pieces rather than one shared
// adaptive state.
type Cache[K comparable, V any] struct {
	noCopy internal.NoCopy

	shards uint64
	fn     Hasher[K]
	caches []base.Cache[K, V]
}

var _ base.Cache[string, int] = (*Cache[string, int])(nil)

func (c *Cache[K, V]) shardFor(key K) base.Cache[K, V] {
	return c.caches[c.fn.computeHash(key, c.shards)]
}

// Put routes to the owning shard's admission state machine.
func (c *Cache[K, V]) Put(key K, value V) {
	c.shardFor(key).Put(key, value)
}

// Get routes to the owning shard.
func (c *Cache[K, V]) Get(key K, touch bool) (value V, ok bool) {
	return c.shardFor(key).Get(key, touch)
}

// Has routes to the owning shard.
func (c *Cache[K, V]) Has(key K) bool {
	return c.shardFor(key).Has(key)
}

// Update routes to the owning shard.
func (c *Cache[K, V]) Update(key K, value V, touch bool) bool {
	return c.shardFor(key).Update(key, value, touch)
}

// Delete routes to the owning shard.
func (c *Cache[K, V]) Delete(key K) bool {
	return c.shardFor(key).Delete(key)
}

// PutMany groups items by target shard and issues one PutMany call per
// shard touched, rather than routing each pair individually.
func (c *Cache[K, V]) PutMany(items map[K]V) {
	if len(items) == 0 {
		return
	}

	batch := map[uint64]map[K]V{}
	for k, v := range items {
		shard := c.fn.computeHash(k, c.shards)
		if batch[shard] == nil {
			batch[shard] = map[K]V{}
		}
		batch[shard][k] = v
	}

	for i := range batch {
		c.caches[i].PutMany(batch[i])
	}
}

// GetMany groups keys by target shard and issues one GetMany call per shard
// touched, combining the results.
func (c *Cache[K, V]) GetMany(keys []K) (found map[K]V, missing []K) {
	if len(keys) == 0 {
		return map[K]V{}, []K{}
	}

	batch := c.groupByShard(keys)

	found = map[K]V{}
	for i := range batch {
		localFound, localMissing := c.caches[i].GetMany(batch[i])
		for k, v := range localFound {
			found[k] = v
		}
		missing = append(missing, localMissing...)
	}

	return found, missing
}

// HasMany groups keys by target shard and issues one HasMany call per shard
// touched, combining the results.
func (c *Cache[K, V]) HasMany(keys []K) map[K]bool {
	if len(keys) == 0 {
		return map[K]bool{}
	}

	batch := c.groupByShard(keys)

	out := map[K]bool{}
	for i := range batch {
		local := c.caches[i].HasMany(batch[i])
		for k, v := range local {
			out[k] = v
		}
	}

	return out
}

// DeleteMany groups keys by target shard and issues one DeleteMany call per
// shard touched, combining the results.
func (c *Cache[K, V]) DeleteMany(keys []K) map[K]bool {
	if len(keys) == 0 {
		return map[K]bool{}
	}

	batch := c.groupByShard(keys)

	out := map[K]bool{}
	for i := range batch {
		local := c.caches[i].DeleteMany(batch[i])
		for k, v := range local {
			out[k] = v
		}
	}

	return out
}

func (c *Cache[K, V]) groupByShard(keys []K) map[uint64][]K {
	batch := map[uint64][]K{}
	for _, k := range keys {
		shard := c.fn.computeHash(k, c.shards)
		batch[shard] = append(batch[shard], k)
	}
	return batch
}

// Keys returns keys from every shard combined; order is not guaranteed.
func (c *Cache[K, V]) Keys() []K {
	keys := []K{}
	for i := range c.caches {
		keys = append(keys, c.caches[i].Keys()...)
	}
	return keys
}

// Values returns values from every shard combined; order is not guaranteed.
func (c *Cache[K, V]) Values() []V {
	values := []V{}
	for i := range c.caches {
		values = append(values, c.caches[i].Values()...)
	}
	return values
}

// Range iterates every shard in turn, stopping early if f returns false.
func (c *Cache[K, V]) Range(f func(K, V) bool) {
	keepGoing := true
	for i := range c.caches {
		c.caches[i].Range(func(k K, v V) bool {
			keepGoing = f(k, v)
			return keepGoing
		})
		if !keepGoing {
			return
		}
	}
}

// Purge clears every shard.
func (c *Cache[K, V]) Purge() {
	for i := range c.caches {
		c.caches[i].Purge()
	}
}

// Len sums resident entries across every shard.
func (c *Cache[K, V]) Len() int {
	total := 0
	for i := range c.caches {
		total += c.caches[i].Len()
	}
	return total
}

// Capacity sums the per-shard capacities.
func (c *Cache[K, V]) Capacity() int {
	total := 0
	for i := range c.caches {
		total += c.caches[i].Capacity()
	}
	return total
}

// Algorithm returns the shared shard algorithm name ("arc").
func (c *Cache[K, V]) Algorithm() string {
	return c.caches[0].Algorithm()
}

// Shards returns the number of shards.
func (c *Cache[K, V]) Shards() int {
	return len(c.caches)
}

// Shard returns the underlying cache for a given shard index, for
// diagnostics (per-shard debug introspection).
func (c *Cache[K, V]) Shard(i int) base.Cache[K, V] {
	return c.caches[i]
}
