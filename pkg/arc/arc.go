// Package arc implements the Adaptive Replacement Cache replacement
// algorithm: a self-tuning admission state machine that balances recency
// (LRU) and frequency (LFU) pressure by learning a target split p between
// two resident lists, T1 and T2, backed by two ghost lists, B1 and B2.
//
// This is a from-scratch reimplementation of the teacher's ARCCache: the
// container/list-backed T1/T2/B1/B2 of samber/hot are replaced by
// pkg/orderedlist, which gives the rank-ordered membership the spec
// requires, but the overall shape (a struct holding four lists plus an
// eviction callback, Set/Get/Delete/Range built as thin wrappers around a
// handful of private helpers) follows the teacher closely.
package arc

import (
	"fmt"

	"github.com/arccache/arc/pkg/base"
	"github.com/arccache/arc/pkg/orderedlist"
)

// Core is the ARC state machine: four ordered lists, a capacity, and an
// adaptive target p. It satisfies base.Cache[K, V].
type Core[K comparable, V any] struct {
	capacity int
	p        int

	t1 *orderedlist.List[K, V]
	t2 *orderedlist.List[K, V]
	b1 *orderedlist.GhostList[K]
	b2 *orderedlist.GhostList[K]

	onEviction base.EvictionCallback[K, V]
}

var _ base.Cache[string, int] = (*Core[string, int])(nil)

// New creates an empty ArcCore with the given capacity. Panics if capacity
// is not strictly positive, matching the "invalid construction" failure
// mode the facade must fail fast on.
func New[K comparable, V any](capacity int) *Core[K, V] {
	return NewWithEvictionCallback[K, V](capacity, nil)
}

// NewWithEvictionCallback creates an empty ArcCore that additionally
// invokes cb whenever a value leaves the resident lists through capacity
// pressure, ghosting, or explicit deletion. Purge does not invoke cb.
func NewWithEvictionCallback[K comparable, V any](capacity int, cb base.EvictionCallback[K, V]) *Core[K, V] {
	if capacity <= 0 {
		panic(fmt.Sprintf("arc: capacity must be positive, got %d", capacity))
	}

	return &Core[K, V]{
		capacity:   capacity,
		p:          0,
		t1:         orderedlist.New[K, V](),
		t2:         orderedlist.New[K, V](),
		b1:         orderedlist.NewGhost[K](),
		b2:         orderedlist.NewGhost[K](),
		onEviction: cb,
	}
}

func (c *Core[K, V]) evict(reason base.EvictionReason, key K, value V) {
	if c.onEviction != nil {
		c.onEviction(reason, key, value)
	}
}

// Get returns the value for key if it is resident in T1 or T2. When touch
// is true, a T1 hit promotes the key to MRU of T2 and a T2 hit re-bumps it
// to MRU of T2. B1/B2 membership is never a hit: ghosts carry no value.
func (c *Core[K, V]) Get(key K, touch bool) (value V, ok bool) {
	if v, ok := c.t1.Get(key); ok {
		if touch {
			c.t1.Delete(key)
			c.t2.PutMRU(key, v)
		}
		return v, true
	}

	if v, ok := c.t2.Get(key); ok {
		if touch {
			c.t2.PutMRU(key, v)
		}
		return v, true
	}

	var zero V
	return zero, false
}

// Has reports residency without affecting order or adaptation state.
func (c *Core[K, V]) Has(key K) bool {
	return c.t1.Contains(key) || c.t2.Contains(key)
}

// Put runs the full five-way ARC admission dispatch for (key, value).
func (c *Core[K, V]) Put(key K, value V) {
	if _, ok := c.t1.Get(key); ok {
		// Hit in T1: second distinct access promotes to T2. No p change, no
		// REPLACE.
		c.t1.Delete(key)
		c.t2.PutMRU(key, value)
		return
	}

	if _, ok := c.t2.Get(key); ok {
		// Hit in T2: overwrite and bump to MRU. No p change, no REPLACE.
		c.t2.PutMRU(key, value)
		return
	}

	if c.b1.Contains(key) {
		c.p = min(c.capacity, c.p+ratioStep(c.b2.Size(), c.b1.Size()))
		c.replace(false)
		c.b1.Delete(key)
		c.t2.PutMRU(key, value)
		return
	}

	if c.b2.Contains(key) {
		c.p = max(0, c.p-ratioStep(c.b1.Size(), c.b2.Size()))
		c.replace(true)
		c.b2.Delete(key)
		c.t2.PutMRU(key, value)
		return
	}

	// Miss in all four lists.
	c.adjust()
	c.t1.PutMRU(key, value)
}

// ratioStep computes max(floor(num/den), 1), guarding den == 0 by
// substituting the step 1 directly rather than dividing by zero.
func ratioStep(num, den int) int {
	if den == 0 {
		return 1
	}
	step := num / den
	if step < 1 {
		step = 1
	}
	return step
}

// replace demotes one resident entry to its ghost list, per the REPLACE
// subroutine: LRU of T1 goes to B1 when T1 is both non-empty and either
// over its target or (on a B2 rehit) exactly at it; otherwise LRU of T2
// goes to B2. A no-op if the chosen source list is empty.
func (c *Core[K, V]) replace(inB2 bool) {
	t1Len := c.t1.Size()

	fromT1 := t1Len >= 1 && ((inB2 && t1Len == c.p) || t1Len > c.p)

	if fromT1 {
		key, value, ok := c.t1.PopLRU()
		if !ok {
			return
		}
		c.b1.PutMRU(key)
		c.evict(base.EvictionReasonGhosted, key, value)
		return
	}

	key, value, ok := c.t2.PopLRU()
	if !ok {
		return
	}
	c.b2.PutMRU(key)
	c.evict(base.EvictionReasonGhosted, key, value)
}

// adjust trims ghosts and/or residents to make room for the entry about to
// be inserted at MRU of T1 after a pure miss.
func (c *Core[K, V]) adjust() {
	l1 := c.t1.Size() + c.b1.Size()
	l2 := c.t2.Size() + c.b2.Size()

	if l1 == c.capacity {
		if c.t1.Size() < c.capacity {
			c.b1.PopLRU()
			c.replace(false)
			return
		}
		// |T1| == c, |B1| == 0: hard evict, value lost.
		if key, value, ok := c.t1.PopLRU(); ok {
			c.evict(base.EvictionReasonCapacity, key, value)
		}
		return
	}

	if l1 < c.capacity && l1+l2 >= c.capacity {
		if l1+l2 >= 2*c.capacity {
			c.b2.PopLRU()
		}
		c.replace(false)
	}
}

// Update replaces the value for a resident key without running admission.
// It is a no-op if key is not resident. When touch is true, it also moves
// the key to MRU of T2 (matching get's touch semantics for a hit).
func (c *Core[K, V]) Update(key K, value V, touch bool) bool {
	if _, ok := c.t1.Get(key); ok {
		if touch {
			c.t1.Delete(key)
			c.t2.PutMRU(key, value)
			return true
		}
		c.t1.Update(key, value)
		return true
	}

	if _, ok := c.t2.Get(key); ok {
		if touch {
			c.t2.PutMRU(key, value)
			return true
		}
		c.t2.Update(key, value)
		return true
	}

	return false
}

// Delete removes key from whichever of the four lists holds it. No effect
// on p.
func (c *Core[K, V]) Delete(key K) bool {
	if v, ok := c.t1.Get(key); ok {
		c.t1.Delete(key)
		c.evict(base.EvictionReasonManual, key, v)
		return true
	}
	if v, ok := c.t2.Get(key); ok {
		c.t2.Delete(key)
		c.evict(base.EvictionReasonManual, key, v)
		return true
	}
	if c.b1.Delete(key) {
		return true
	}
	return c.b2.Delete(key)
}

// PutMany stores every (key, value) pair in items, one admission dispatch
// per item. Core holds no lock of its own; pkg/safe is what turns this into
// a single critical section.
func (c *Core[K, V]) PutMany(items map[K]V) {
	for k, v := range items {
		c.Put(k, v)
	}
}

// GetMany returns the resident values among keys, and the subset that
// missed.
func (c *Core[K, V]) GetMany(keys []K) (found map[K]V, missing []K) {
	found = make(map[K]V, len(keys))
	for _, k := range keys {
		if v, ok := c.Get(k, true); ok {
			found[k] = v
		} else {
			missing = append(missing, k)
		}
	}
	return found, missing
}

// HasMany reports residency for every key in keys.
func (c *Core[K, V]) HasMany(keys []K) map[K]bool {
	out := make(map[K]bool, len(keys))
	for _, k := range keys {
		out[k] = c.Has(k)
	}
	return out
}

// DeleteMany deletes every key in keys, reporting which were present.
func (c *Core[K, V]) DeleteMany(keys []K) map[K]bool {
	out := make(map[K]bool, len(keys))
	for _, k := range keys {
		out[k] = c.Delete(k)
	}
	return out
}

// Keys returns the keys of every resident entry, T1 then T2, each in
// LRU->MRU order.
func (c *Core[K, V]) Keys() []K {
	pairs := c.residentPairs()
	keys := make([]K, len(pairs))
	for i, p := range pairs {
		keys[i] = p.Key
	}
	return keys
}

// Values returns the values of every resident entry, T1 then T2, each in
// LRU->MRU order.
func (c *Core[K, V]) Values() []V {
	pairs := c.residentPairs()
	values := make([]V, len(pairs))
	for i, p := range pairs {
		values[i] = p.Value
	}
	return values
}

// Range iterates over every resident (key, value) pair, T1 then T2, each
// in LRU->MRU order, stopping early if f returns false.
func (c *Core[K, V]) Range(f func(K, V) bool) {
	for _, p := range c.residentPairs() {
		if !f(p.Key, p.Value) {
			return
		}
	}
}

func (c *Core[K, V]) residentPairs() []orderedlist.Pair[K, V] {
	t1 := c.t1.IterFromLRU()
	t2 := c.t2.IterFromLRU()
	out := make([]orderedlist.Pair[K, V], 0, len(t1)+len(t2))
	out = append(out, t1...)
	out = append(out, t2...)
	return out
}

// Purge clears all four lists and resets the target to 0. The eviction
// callback is not invoked for the dropped entries.
func (c *Core[K, V]) Purge() {
	c.t1 = orderedlist.New[K, V]()
	c.t2 = orderedlist.New[K, V]()
	c.b1 = orderedlist.NewGhost[K]()
	c.b2 = orderedlist.NewGhost[K]()
	c.p = 0
}

// Len returns |T1| + |T2|.
func (c *Core[K, V]) Len() int {
	return c.t1.Size() + c.t2.Size()
}

// Capacity returns the configured capacity c.
func (c *Core[K, V]) Capacity() int {
	return c.capacity
}

// Algorithm identifies the eviction policy for metrics and diagnostics.
func (c *Core[K, V]) Algorithm() string {
	return "arc"
}

// Target returns the current value of p, the adaptive target size of T1.
func (c *Core[K, V]) Target() int {
	return c.p
}

// DebugT1 returns T1's entries in LRU->MRU order.
func (c *Core[K, V]) DebugT1() []orderedlist.Pair[K, V] {
	return c.t1.IterFromLRU()
}

// DebugT2 returns T2's entries in LRU->MRU order.
func (c *Core[K, V]) DebugT2() []orderedlist.Pair[K, V] {
	return c.t2.IterFromLRU()
}

// DebugB1 returns B1's keys in LRU->MRU (oldest-demoted to newest) order.
func (c *Core[K, V]) DebugB1() []K {
	return c.b1.IterFromLRU()
}

// DebugB2 returns B2's keys in LRU->MRU (oldest-demoted to newest) order.
func (c *Core[K, V]) DebugB2() []K {
	return c.b2.IterFromLRU()
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
