package arc

import (
	"testing"

	"github.com/arccache/arc/pkg/base"
	"github.com/arccache/arc/pkg/orderedlist"
	"github.com/stretchr/testify/assert"
)

func TestNewPanicsOnNonPositiveCapacity(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	is.Panics(func() {
		_ = New[string, int](0)
	})
	is.Panics(func() {
		_ = New[string, int](-1)
	})

	c := New[string, int](10)
	is.Equal(10, c.Capacity())
	is.Equal(0, c.Target())
	is.Equal("arc", c.Algorithm())
}

func TestScenarioBasicHit(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](10)
	c.Put(1, "a")
	v, ok := c.Get(1, true)
	is.True(ok)
	is.Equal("a", v)

	is.Empty(c.DebugT1())
	is.Equal([]orderedlist.Pair[int, string]{{Key: 1, Value: "a"}}, c.DebugT2())
}

func TestScenarioTouchPromotion(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](10)
	c.Put(1, "a")
	c.Put(2, "b")
	c.Get(1, true)
	c.Get(2, true)

	is.Empty(c.DebugT1())
	is.Equal([]orderedlist.Pair[int, string]{{Key: 1, Value: "a"}, {Key: 2, Value: "b"}}, c.DebugT2())
}

func TestScenarioOverwriteIsT1Hit(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](10)
	c.Put(1, "a")
	c.Put(1, "b")

	is.Empty(c.DebugT1())
	is.Equal([]orderedlist.Pair[int, string]{{Key: 1, Value: "b"}}, c.DebugT2())
}

func TestScenarioUpdateNoTouch(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](10)
	c.Put(1, "a")
	c.Put(2, "b")
	ok := c.Update(1, "a2", false)
	is.True(ok)

	is.Equal([]orderedlist.Pair[int, string]{{Key: 1, Value: "a2"}, {Key: 2, Value: "b"}}, c.DebugT1())
	is.Empty(c.DebugT2())
}

func TestScenarioUpdateMissingKeyIsNoop(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](10)
	c.Put(1, "a")
	ok := c.Update(99, "z", false)
	is.False(ok)
	is.Equal(1, c.Len())
}

// TestScenarioARCPaperRecipe replays the canonical ARC paper / ActiveState
// recipe 576532 sequence and checks the exact terminal state.
func TestScenarioARCPaperRecipe(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](10)

	seq := make([]int, 0, 64)
	for i := 0; i <= 19; i++ {
		seq = append(seq, i)
	}
	for i := 11; i <= 14; i++ {
		seq = append(seq, i)
	}
	for i := 0; i <= 19; i++ {
		seq = append(seq, i)
	}
	for i := 11; i <= 39; i++ {
		seq = append(seq, i)
	}
	seq = append(seq, 39, 38, 37, 36, 35, 34, 33, 32, 16, 17, 11, 41)

	for _, k := range seq {
		c.Put(k, "Entry")
	}

	is.Equal([]orderedlist.Pair[int, string]{{Key: 41, Value: "Entry"}}, c.DebugT1())
	is.Equal([]orderedlist.Pair[int, string]{
		{Key: 37, Value: "Entry"},
		{Key: 36, Value: "Entry"},
		{Key: 35, Value: "Entry"},
		{Key: 34, Value: "Entry"},
		{Key: 33, Value: "Entry"},
		{Key: 32, Value: "Entry"},
		{Key: 16, Value: "Entry"},
		{Key: 17, Value: "Entry"},
		{Key: 11, Value: "Entry"},
	}, c.DebugT2())
	is.Equal([]int{30, 31}, c.DebugB1())
	is.Equal([]int{12, 13, 14, 15, 18, 19, 39, 38}, c.DebugB2())
	is.Equal(5, c.Target())
}

func TestScenarioGhostRehitGrowsTarget(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](4)

	// Fill T1, then promote key 1 to T2 so L1 < c and a subsequent miss
	// trims T1's LRU (key 0) into B1 rather than hard-evicting it.
	c.Put(0, "Entry")
	c.Put(1, "Entry")
	c.Put(2, "Entry")
	c.Put(3, "Entry")
	c.Put(1, "Entry") // T1 hit, promotes 1 to T2
	c.Put(4, "Entry") // miss, ADJUST trims T1 LRU (0) into B1

	is.True(c.b1.Contains(0))
	is.Equal(0, c.Target())

	c.Put(0, "Entry2") // hit in B1

	is.Equal(1, c.Target())
	is.False(c.b1.Contains(0))
	is.True(c.t2.Contains(0))
	v, ok := c.Get(0, false)
	is.True(ok)
	is.Equal("Entry2", v)
}

func TestReplaceIsNoopWhenSourceListEmpty(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](4)
	is.NotPanics(func() {
		c.replace(false)
		c.replace(true)
	})
}

func TestDeleteRemovesFromWhicheverListHoldsKey(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](4)
	c.Put(1, "a")
	is.True(c.Delete(1))
	is.False(c.Has(1))
	is.False(c.Delete(1))

	c.Put(1, "a")
	c.Put(1, "b") // promotes to T2
	is.True(c.Delete(1))
	is.False(c.Has(1))
}

func TestDeleteFromGhostListDoesNotPanic(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](4)
	c.Put(0, "Entry")
	c.Put(1, "Entry")
	c.Put(2, "Entry")
	c.Put(3, "Entry")
	c.Put(1, "Entry") // promote 1 to T2, so the next miss ghosts into B1
	c.Put(4, "Entry")

	is.Greater(c.b1.Size(), 0)

	for _, k := range c.b1.IterFromLRU() {
		is.True(c.Delete(k))
	}
	is.Equal(0, c.b1.Size())
}

func TestPurgeResetsEverything(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](4)
	for i := 0; i < 10; i++ {
		c.Put(i, "Entry")
	}
	is.Greater(c.Target(), -1)

	c.Purge()
	is.Equal(0, c.Len())
	is.Equal(0, c.Target())
	is.Empty(c.DebugT1())
	is.Empty(c.DebugT2())
	is.Empty(c.DebugB1())
	is.Empty(c.DebugB2())
}

func TestKeysValuesRangePreserveLRUThenMRUOrder(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[int, string](10)
	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(1, "a") // promotes 1 to T2
	c.Put(3, "c")

	is.Equal([]int{2, 3, 1}, c.Keys())
	is.Equal([]string{"b", "c", "a"}, c.Values())

	var seen []int
	c.Range(func(k int, v string) bool {
		seen = append(seen, k)
		return true
	})
	is.Equal([]int{2, 3, 1}, seen)

	// Range stops early when f returns false.
	var first int
	c.Range(func(k int, v string) bool {
		first = k
		return false
	})
	is.Equal(2, first)
}

func TestEvictionCallbackReasons(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	var reasons []base.EvictionReason
	c := NewWithEvictionCallback[int, string](2, func(reason base.EvictionReason, key int, value string) {
		reasons = append(reasons, reason)
	})

	c.Put(1, "a")
	c.Put(2, "b")
	c.Put(3, "c") // T1 full, B1 empty: hard evict of key 1
	is.Contains(reasons, base.EvictionReasonCapacity)

	c.Delete(2)
	is.Contains(reasons, base.EvictionReasonManual)

	reasons = nil
	c2 := NewWithEvictionCallback[int, string](4, func(reason base.EvictionReason, key int, value string) {
		reasons = append(reasons, reason)
	})
	c2.Put(0, "a")
	c2.Put(1, "b")
	c2.Put(2, "c")
	c2.Put(3, "d")
	c2.Put(1, "b") // promotes 1 to T2
	c2.Put(4, "e") // ADJUST ghosts key 0 into B1
	is.Contains(reasons, base.EvictionReasonGhosted)
}

// TestInvariantsHoldOverRandomOperations drives a pseudo-random but
// deterministic sequence of puts/gets/deletes and checks INV-1..INV-4
// after every operation.
func TestInvariantsHoldOverRandomOperations(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	const capacity = 8
	c := New[int, int](capacity)

	state := uint32(12345)
	next := func(n int) int {
		state = state*1664525 + 1013904223
		return int(state % uint32(n))
	}

	for i := 0; i < 2000; i++ {
		key := next(20)
		switch next(3) {
		case 0:
			c.Put(key, key)
		case 1:
			c.Get(key, next(2) == 0)
		case 2:
			c.Delete(key)
		}

		t1, t2 := c.t1.Size(), c.t2.Size()
		b1, b2 := c.b1.Size(), c.b2.Size()

		is.LessOrEqual(t1+t2, capacity, "INV-2 at iteration %d", i)
		is.LessOrEqual(t1+b1, capacity, "INV-3 (T1+B1) at iteration %d", i)
		is.LessOrEqual(t2+b2, 2*capacity, "INV-3 (T2+B2) at iteration %d", i)
		is.GreaterOrEqual(c.Target(), 0, "INV-4 lower at iteration %d", i)
		is.LessOrEqual(c.Target(), capacity, "INV-4 upper at iteration %d", i)

		for _, k := range c.t1.IterFromLRU() {
			is.False(c.t2.Contains(k.Key), "INV-1 T1/T2 disjoint at iteration %d", i)
			is.False(c.b1.Contains(k.Key), "INV-1 T1/B1 disjoint at iteration %d", i)
			is.False(c.b2.Contains(k.Key), "INV-1 T1/B2 disjoint at iteration %d", i)
		}
		for _, k := range c.t2.IterFromLRU() {
			is.False(c.b1.Contains(k.Key), "INV-1 T2/B1 disjoint at iteration %d", i)
			is.False(c.b2.Contains(k.Key), "INV-1 T2/B2 disjoint at iteration %d", i)
		}
		for _, k := range c.b1.IterFromLRU() {
			is.False(c.b2.Contains(k), "INV-1 B1/B2 disjoint at iteration %d", i)
		}
	}
}

func TestBatchOperations(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c := New[string, int](10)
	c.PutMany(map[string]int{"a": 1, "b": 2, "c": 3})
	is.Equal(3, c.Len())

	found, missing := c.GetMany([]string{"a", "b", "z"})
	is.Equal(map[string]int{"a": 1, "b": 2}, found)
	is.Equal([]string{"z"}, missing)

	has := c.HasMany([]string{"a", "z"})
	is.Equal(map[string]bool{"a": true, "z": false}, has)

	deleted := c.DeleteMany([]string{"a", "z"})
	is.Equal(map[string]bool{"a": true, "z": false}, deleted)
	is.False(c.Has("a"))
	is.True(c.Has("b"))
}

// TestIdempotentRepeatedPut checks INV-6: once a key has been promoted to
// T2 by a repeated put, further repeats are idempotent (each is a T2 hit
// that only rebumps rank).
func TestIdempotentRepeatedPut(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	c1 := New[int, string](10)
	c1.Put(1, "a")
	c1.Put(1, "a")

	c2 := New[int, string](10)
	c2.Put(1, "a")
	c2.Put(1, "a")
	c2.Put(1, "a")

	is.Equal(c1.DebugT1(), c2.DebugT1())
	is.Equal(c1.DebugT2(), c2.DebugT2())
	is.Equal(c1.Target(), c2.Target())
}
