package metrics

import (
	"github.com/arccache/arc/pkg/base"
)

var _ base.Cache[string, int] = (*InstrumentedCache[string, int])(nil)

// NewInstrumentedCache wraps cache with hit/miss/insertion counters. Eviction
// counts are NOT tracked here: they are driven by the base.EvictionCallback
// the caller wires into the underlying arc.Core at construction time (see
// Collector.IncEviction), since only the core observes which of the five
// Put branches, or which ADJUST/REPLACE path, produced a given eviction.
func NewInstrumentedCache[K comparable, V any](cache base.Cache[K, V], metrics Collector) *InstrumentedCache[K, V] {
	return &InstrumentedCache[K, V]{
		cache:   cache,
		metrics: metrics,
	}
}

// InstrumentedCache wraps a base.Cache and adds hit/miss/insertion metrics
// collection around it.
type InstrumentedCache[K comparable, V any] struct {
	cache   base.Cache[K, V]
	metrics Collector
}

// Put stores a key-value pair and counts the insertion.
func (m *InstrumentedCache[K, V]) Put(key K, value V) {
	m.cache.Put(key, value)
	m.metrics.IncInsertion()
}

// Get retrieves a value and counts the hit or miss.
func (m *InstrumentedCache[K, V]) Get(key K, touch bool) (V, bool) {
	value, found := m.cache.Get(key, touch)
	if found {
		m.metrics.IncHit()
	} else {
		m.metrics.IncMiss()
	}
	return value, found
}

// Has checks residency and counts the hit or miss.
func (m *InstrumentedCache[K, V]) Has(key K) bool {
	has := m.cache.Has(key)
	if has {
		m.metrics.IncHit()
	} else {
		m.metrics.IncMiss()
	}
	return has
}

// PutMany stores every (key, value) pair in items and counts the insertions.
func (m *InstrumentedCache[K, V]) PutMany(items map[K]V) {
	m.cache.PutMany(items)
	m.metrics.AddInsertions(int64(len(items)))
}

// GetMany returns the resident values among keys, and the subset that
// missed, counting the hits and misses.
func (m *InstrumentedCache[K, V]) GetMany(keys []K) (found map[K]V, missing []K) {
	found, missing = m.cache.GetMany(keys)

	if hits := len(found); hits > 0 {
		m.metrics.AddHits(int64(hits))
	}
	if misses := len(missing); misses > 0 {
		m.metrics.AddMisses(int64(misses))
	}

	return found, missing
}

// HasMany reports residency for every key in keys, counting the hits and
// misses.
func (m *InstrumentedCache[K, V]) HasMany(keys []K) map[K]bool {
	results := m.cache.HasMany(keys)

	hits, misses := 0, 0
	for _, exists := range results {
		if exists {
			hits++
		} else {
			misses++
		}
	}
	if hits > 0 {
		m.metrics.AddHits(int64(hits))
	}
	if misses > 0 {
		m.metrics.AddMisses(int64(misses))
	}

	return results
}

// DeleteMany deletes every key in keys, reporting which were present. The
// manual-eviction count is produced by the underlying core's eviction
// callback, not here.
func (m *InstrumentedCache[K, V]) DeleteMany(keys []K) map[K]bool {
	return m.cache.DeleteMany(keys)
}

// Update replaces a resident value; no metric is attributed since it is
// neither an admission nor a read.
func (m *InstrumentedCache[K, V]) Update(key K, value V, touch bool) bool {
	return m.cache.Update(key, value, touch)
}

// Delete removes a key. The manual-eviction count is produced by the
// underlying core's eviction callback, not here.
func (m *InstrumentedCache[K, V]) Delete(key K) bool {
	return m.cache.Delete(key)
}

// Keys returns all resident keys.
func (m *InstrumentedCache[K, V]) Keys() []K {
	return m.cache.Keys()
}

// Values returns all resident values.
func (m *InstrumentedCache[K, V]) Values() []V {
	return m.cache.Values()
}

// Range iterates over all resident key-value pairs.
func (m *InstrumentedCache[K, V]) Range(f func(K, V) bool) {
	m.cache.Range(f)
}

// Len returns the number of resident items in the cache.
func (m *InstrumentedCache[K, V]) Len() int {
	return m.cache.Len()
}

// Capacity returns the capacity of the cache.
func (m *InstrumentedCache[K, V]) Capacity() int {
	return m.cache.Capacity()
}

// Algorithm returns the eviction algorithm name.
func (m *InstrumentedCache[K, V]) Algorithm() string {
	return m.cache.Algorithm()
}

// Purge removes all items from the cache.
func (m *InstrumentedCache[K, V]) Purge() {
	m.cache.Purge()
}
