// Package arc is the public entry point: a bounded, self-tuning Adaptive
// Replacement Cache. Construct one with New, operate on it with
// Put/Get/Update/Delete, and inspect its internal lists with Debug for
// testing and diagnostics.
package arc

import (
	"fmt"
	"sync/atomic"

	"github.com/DmitriyVTitov/size"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/arccache/arc/pkg/arc"
	"github.com/arccache/arc/pkg/base"
	"github.com/arccache/arc/pkg/metrics"
	"github.com/arccache/arc/pkg/orderedlist"
	"github.com/arccache/arc/pkg/safe"
	"github.com/arccache/arc/pkg/shardedarc"
)

// Pair is a (key, value) pair returned by the resident-list debug
// accessors, in LRU->MRU order.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

func toPairs[K comparable, V any](in []orderedlist.Pair[K, V]) []Pair[K, V] {
	out := make([]Pair[K, V], len(in))
	for i, p := range in {
		out[i] = Pair[K, V]{Key: p.Key, Value: p.Value}
	}
	return out
}

// DebugList names one of ArcCore's four lists, or its adaptive target, for
// Debug.
type DebugList int

const (
	DebugT1 DebugList = iota
	DebugT2
	DebugB1
	DebugB2
	DebugTarget
)

// Cache is the public handle returned by New. The pointer itself is the
// handle the external interface describes; Close marks it unusable.
type Cache[K comparable, V any] struct {
	name   string
	closed atomic.Bool

	core     *arc.Core[K, V]        // non-nil unless sharded
	sharded  *shardedarc.Cache[K, V] // non-nil when sharded
	delegate base.Cache[K, V]       // operational path: core/sharded, wrapped in metrics and/or locking
	metrics  metrics.Collector      // non-nil when metrics are enabled
}

var _ prometheus.Collector = (*Cache[string, int])(nil)

// New creates a Cache named name with the given capacity. name is an
// identifier for diagnostics and metric labels; capacity must be positive.
func New[K comparable, V any](name string, capacity int, opts ...Option[K, V]) *Cache[K, V] {
	assertOption(capacity > 0, fmt.Sprintf("arc: capacity must be positive for cache %q, got %d", name, capacity))

	s := defaultSettings[K, V]()
	for _, opt := range opts {
		opt(&s)
	}

	c := &Cache[K, V]{name: name}

	totalCapacity := capacity
	if s.shards > 1 {
		totalCapacity = capacity * int(s.shards)
	}
	if s.metricsEnabled {
		c.metrics = metrics.NewCollector(true, name, -1, totalCapacity, "arc")
	}

	onEviction := s.onEviction
	if c.metrics != nil {
		collector := c.metrics
		onEviction = func(reason base.EvictionReason, key K, value V) {
			collector.IncEviction(reason)
			if s.onEviction != nil {
				s.onEviction(reason, key, value)
			}
		}
	}

	if s.shards > 1 {
		c.sharded = shardedarc.New[K, V](s.shards, func(shardIndex int) base.Cache[K, V] {
			core := arc.NewWithEvictionCallback[K, V](capacity, onEviction)
			return wrapOperational[K, V](core, s, c.metrics)
		}, s.shardingFn).(*shardedarc.Cache[K, V])
		c.delegate = c.sharded
		return c
	}

	c.core = arc.NewWithEvictionCallback[K, V](capacity, onEviction)
	c.delegate = wrapOperational[K, V](c.core, s, c.metrics)
	return c
}

// wrapOperational composes the metrics and locking layers around a raw
// *arc.Core according to settings, in the order the teacher composes them
// in composeInternalCache: metrics innermost (closest to the algorithm, so
// it sees every Put/Get before any lock wait is counted), locking
// outermost (guards the whole operation, metrics included).
func wrapOperational[K comparable, V any](core base.Cache[K, V], s settings[K, V], collector metrics.Collector) base.Cache[K, V] {
	var wrapped base.Cache[K, V] = core

	if collector != nil {
		wrapped = metrics.NewInstrumentedCache[K, V](wrapped, collector)
	}
	if s.lockingEnabled {
		wrapped = safe.New[K, V](wrapped)
	}

	return wrapped
}

func (c *Cache[K, V]) assertOpen() {
	if c.closed.Load() {
		panic(fmt.Sprintf("arc: operation on closed cache %q", c.name))
	}
}

// Close marks the handle closed. After Close, every cache operation on it
// (Put, Get, Has, Update, Delete, the batch and listing methods, Purge, Len,
// Capacity, Algorithm, SizeBytes and Debug) panics, naming the cache, per
// the "unknown instance" fail-fast requirement. Name, Describe and Collect
// do not check the closed state themselves.
func (c *Cache[K, V]) Close() {
	c.closed.Store(true)
}

// Name returns the diagnostic name given to New.
func (c *Cache[K, V]) Name() string {
	return c.name
}

// Put stores a key-value pair, running the full ARC admission algorithm.
func (c *Cache[K, V]) Put(key K, value V) {
	c.assertOpen()
	c.delegate.Put(key, value)
}

// Get returns the value for key if resident, touching (promoting/re-bumping)
// on a hit.
func (c *Cache[K, V]) Get(key K) (value V, ok bool) {
	return c.GetTouch(key, true)
}

// GetTouch returns the value for key if resident. touch controls whether a
// hit mutates list order (T1->T2 promotion, or T2 MRU re-bump).
func (c *Cache[K, V]) GetTouch(key K, touch bool) (value V, ok bool) {
	c.assertOpen()
	return c.delegate.Get(key, touch)
}

// Has reports residency without affecting order.
func (c *Cache[K, V]) Has(key K) bool {
	c.assertOpen()
	return c.delegate.Has(key)
}

// Update replaces the value for a resident key without running admission.
// touch additionally moves the key to MRU of T2 on success.
func (c *Cache[K, V]) Update(key K, value V, touch bool) bool {
	c.assertOpen()
	return c.delegate.Update(key, value, touch)
}

// Delete removes key from whichever list holds it.
func (c *Cache[K, V]) Delete(key K) bool {
	c.assertOpen()
	return c.delegate.Delete(key)
}

// PutMany stores every (key, value) pair in items, under one lock
// acquisition per shard touched (a single one when unsharded) rather than
// one per pair.
func (c *Cache[K, V]) PutMany(items map[K]V) {
	c.assertOpen()
	c.delegate.PutMany(items)
}

// GetMany returns the resident values among keys, and the subset that
// missed, under one lock acquisition per shard touched (a single one when
// unsharded) rather than one per key.
func (c *Cache[K, V]) GetMany(keys []K) (found map[K]V, missing []K) {
	c.assertOpen()
	return c.delegate.GetMany(keys)
}

// HasMany reports residency for every key in keys, under one lock
// acquisition per shard touched (a single one when unsharded) rather than
// one per key.
func (c *Cache[K, V]) HasMany(keys []K) map[K]bool {
	c.assertOpen()
	return c.delegate.HasMany(keys)
}

// DeleteMany deletes every key in keys, reporting which were present, under
// one lock acquisition per shard touched (a single one when unsharded)
// rather than one per key.
func (c *Cache[K, V]) DeleteMany(keys []K) map[K]bool {
	c.assertOpen()
	return c.delegate.DeleteMany(keys)
}

// Keys returns every resident key.
func (c *Cache[K, V]) Keys() []K {
	c.assertOpen()
	return c.delegate.Keys()
}

// Values returns every resident value.
func (c *Cache[K, V]) Values() []V {
	c.assertOpen()
	return c.delegate.Values()
}

// Range iterates over every resident (key, value) pair, stopping early if f
// returns false.
func (c *Cache[K, V]) Range(f func(K, V) bool) {
	c.assertOpen()
	c.delegate.Range(f)
}

// Purge clears the cache.
func (c *Cache[K, V]) Purge() {
	c.assertOpen()
	c.delegate.Purge()
}

// Len returns the number of resident entries.
func (c *Cache[K, V]) Len() int {
	c.assertOpen()
	return c.delegate.Len()
}

// Capacity returns the configured capacity.
func (c *Cache[K, V]) Capacity() int {
	c.assertOpen()
	return c.delegate.Capacity()
}

// Algorithm returns the eviction algorithm name ("arc").
func (c *Cache[K, V]) Algorithm() string {
	c.assertOpen()
	return c.delegate.Algorithm()
}

// SizeBytes estimates the in-memory footprint of every resident key and
// value, for diagnostics only: it is never used to weight eviction
// decisions (weighted entries are out of scope).
func (c *Cache[K, V]) SizeBytes() int64 {
	c.assertOpen()
	total := int64(0)
	c.delegate.Range(func(k K, v V) bool {
		total += int64(size.Of(k)) + int64(size.Of(v))
		return true
	})
	return total
}

// Debug returns the contents of one of ArcCore's four lists, or its
// current adaptive target, for testing and diagnostics. Not supported on a
// sharded cache, since there is no single T1/T2/B1/B2/p to report.
func (c *Cache[K, V]) Debug(which DebugList) any {
	c.assertOpen()
	if c.core == nil {
		panic(fmt.Sprintf("arc: Debug is not supported on sharded cache %q", c.name))
	}

	switch which {
	case DebugT1:
		return toPairs(c.core.DebugT1())
	case DebugT2:
		return toPairs(c.core.DebugT2())
	case DebugB1:
		return c.core.DebugB1()
	case DebugB2:
		return c.core.DebugB2()
	case DebugTarget:
		return c.core.Target()
	default:
		panic(fmt.Sprintf("arc: unknown debug list %d", which))
	}
}

// DebugT1Entries returns T1's entries in LRU->MRU order.
func (c *Cache[K, V]) DebugT1Entries() []Pair[K, V] {
	return c.Debug(DebugT1).([]Pair[K, V])
}

// DebugT2Entries returns T2's entries in LRU->MRU order.
func (c *Cache[K, V]) DebugT2Entries() []Pair[K, V] {
	return c.Debug(DebugT2).([]Pair[K, V])
}

// DebugB1Keys returns B1's ghost keys in LRU->MRU order.
func (c *Cache[K, V]) DebugB1Keys() []K {
	return c.Debug(DebugB1).([]K)
}

// DebugB2Keys returns B2's ghost keys in LRU->MRU order.
func (c *Cache[K, V]) DebugB2Keys() []K {
	return c.Debug(DebugB2).([]K)
}

// DebugTargetValue returns the current adaptive target p.
func (c *Cache[K, V]) DebugTargetValue() int {
	return c.Debug(DebugTarget).(int)
}

// Describe implements prometheus.Collector. A no-op when metrics were not
// enabled with WithMetrics.
func (c *Cache[K, V]) Describe(ch chan<- *prometheus.Desc) {
	if c.metrics != nil {
		c.metrics.Describe(ch)
	}
}

// Collect implements prometheus.Collector. A no-op when metrics were not
// enabled with WithMetrics.
func (c *Cache[K, V]) Collect(ch chan<- prometheus.Metric) {
	if c.metrics == nil {
		return
	}
	c.metrics.SetLength(int64(c.delegate.Len()))
	c.metrics.SetSizeBytes(c.SizeBytes())
	c.metrics.Collect(ch)
}
