package base

// EvictionReason describes why an entry's value left a resident list.
type EvictionReason string

const (
	// EvictionReasonCapacity is an ADJUST hard eviction: a resident entry is
	// dropped with no ghost slot available for it (T1 full, B1 empty).
	EvictionReasonCapacity EvictionReason = "capacity"
	// EvictionReasonGhosted is a REPLACE demotion: the entry leaves T1/T2 and
	// its key survives in B1/B2, but its value is discarded.
	EvictionReasonGhosted EvictionReason = "ghosted"
	// EvictionReasonManual is an explicit Delete call.
	EvictionReasonManual EvictionReason = "manual"
)

// EvictionReasons enumerates every reason a Collector may observe, in the
// order its counters are pre-registered.
var EvictionReasons = []EvictionReason{
	EvictionReasonCapacity,
	EvictionReasonGhosted,
	EvictionReasonManual,
}

// EvictionCallback is invoked whenever a value is removed from the resident
// portion of the cache by capacity pressure, ghosting, or explicit
// deletion. Purge does not invoke it.
type EvictionCallback[K comparable, V any] func(reason EvictionReason, key K, value V)
