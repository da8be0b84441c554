package arc

import (
	"github.com/arccache/arc/pkg/base"
	"github.com/arccache/arc/pkg/shardedarc"
)

func assertOption(ok bool, msg string) {
	if !ok {
		panic(msg)
	}
}

// Option configures a Cache at construction time. Options are applied in
// order, directly modeling the teacher's HotCacheConfig builder but as a
// functional-options slice rather than a chained value-receiver type,
// since the root constructor here takes a fixed (name, capacity) pair
// rather than the teacher's wider per-algorithm configuration surface.
type Option[K comparable, V any] func(*settings[K, V])

type settings[K comparable, V any] struct {
	onEviction     base.EvictionCallback[K, V]
	metricsEnabled bool
	lockingEnabled bool
	shards         uint64
	shardingFn     shardedarc.Hasher[K]
}

func defaultSettings[K comparable, V any]() settings[K, V] {
	return settings[K, V]{
		lockingEnabled: true,
	}
}

// WithEvictionCallback registers a callback invoked whenever a value leaves
// the resident lists through capacity pressure, ghosting or Delete, with the
// reason it left. Purge does not invoke it.
func WithEvictionCallback[K comparable, V any](cb base.EvictionCallback[K, V]) Option[K, V] {
	return func(s *settings[K, V]) {
		s.onEviction = cb
	}
}

// WithMetrics enables Prometheus instrumentation: hit/miss counters and
// capacity/ghosted/manual eviction counters, exposed via the returned
// Cache's Describe/Collect methods.
func WithMetrics[K comparable, V any]() Option[K, V] {
	return func(s *settings[K, V]) {
		s.metricsEnabled = true
	}
}

// WithoutLocking skips the pkg/safe RWMutex wrapper, for callers who already
// serialize access to the returned Cache externally.
func WithoutLocking[K comparable, V any]() Option[K, V] {
	return func(s *settings[K, V]) {
		s.lockingEnabled = false
	}
}

// WithShards splits the cache into shards independent arc.Core instances,
// hash-routed by fn, reducing lock contention at the cost of a
// per-shard (rather than global) adaptive target p. shards must be greater
// than 1 and fn must be non-nil.
func WithShards[K comparable, V any](shards uint64, fn shardedarc.Hasher[K]) Option[K, V] {
	return func(s *settings[K, V]) {
		assertOption(shards > 1, "arc: shards must be greater than 1")
		assertOption(fn != nil, "arc: sharded cache requires a sharding function")
		s.shards = shards
		s.shardingFn = fn
	}
}
