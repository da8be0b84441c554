// Package orderedlist implements the recency-ordered two-index structure
// spec'd for ARC's four lists: a key->(rank, value) map paired with a
// rank->key ordered index, giving O(1) membership via the map and O(log n)
// ordered access (LRU pop, LRU->MRU iteration) via internal/container/ranktree.
//
// This plays the role the teacher (samber/hot) fills with container/list: a
// combined map+list per T1/T2/B1/B2. The teacher's list is O(1) but not
// queryable by an externally meaningful order key, which is why the rank
// tree (grounded on newbthenewbd-btrfs-rec's red-black tree) replaces it
// here instead of being ported verbatim.
package orderedlist

import "github.com/arccache/arc/internal/container/ranktree"

type entry[K comparable, V any] struct {
	key   K
	value V
}

// List is a resident ordered list: it stores both keys and values, as used
// by T1 and T2.
type List[K comparable, V any] struct {
	tree    *ranktree.Tree[entry[K, V]]
	index   map[K]*ranktree.Node[entry[K, V]]
	counter int64
}

// New creates an empty resident ordered list.
func New[K comparable, V any]() *List[K, V] {
	return &List[K, V]{
		tree:  ranktree.New[entry[K, V]](),
		index: make(map[K]*ranktree.Node[entry[K, V]]),
	}
}

// Get returns the value stored for key without changing its rank.
func (l *List[K, V]) Get(key K) (value V, ok bool) {
	n, ok := l.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return n.Value.value, true
}

// Contains reports whether key is present in the list.
func (l *List[K, V]) Contains(key K) bool {
	_, ok := l.index[key]
	return ok
}

// Size returns the number of entries in the list.
func (l *List[K, V]) Size() int {
	return l.tree.Len()
}

// PutMRU inserts (key, value) at the most-recently-used end, assigning a
// rank strictly greater than any rank ever assigned in this list. If key is
// already present, its previous entry is removed first (so a re-insertion
// always bumps to MRU with a fresh rank).
func (l *List[K, V]) PutMRU(key K, value V) {
	if n, ok := l.index[key]; ok {
		l.tree.Delete(n)
		delete(l.index, key)
	}

	l.counter++
	node := l.tree.Insert(l.counter, entry[K, V]{key: key, value: value})
	l.index[key] = node
}

// Update replaces the value for an existing key without changing its rank.
// Returns false if key is absent.
func (l *List[K, V]) Update(key K, value V) bool {
	n, ok := l.index[key]
	if !ok {
		return false
	}
	n.Value = entry[K, V]{key: key, value: value}
	return true
}

// Delete removes key from the list. Returns false if key was absent.
func (l *List[K, V]) Delete(key K) bool {
	n, ok := l.index[key]
	if !ok {
		return false
	}
	l.tree.Delete(n)
	delete(l.index, key)
	return true
}

// PopLRU removes and returns the least-recently-used entry (smallest rank).
func (l *List[K, V]) PopLRU() (key K, value V, ok bool) {
	n := l.tree.Min()
	if n == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	key, value = n.Value.key, n.Value.value
	l.tree.Delete(n)
	delete(l.index, key)
	return key, value, true
}

// Pair is a (key, value) pair returned by IterFromLRU.
type Pair[K comparable, V any] struct {
	Key   K
	Value V
}

// IterFromLRU returns every entry ordered from least- to most-recently-used.
func (l *List[K, V]) IterFromLRU() []Pair[K, V] {
	out := make([]Pair[K, V], 0, l.tree.Len())
	l.tree.Walk(func(n *ranktree.Node[entry[K, V]]) bool {
		out = append(out, Pair[K, V]{Key: n.Value.key, Value: n.Value.value})
		return true
	})
	return out
}

// GhostList is the key-only variant used by B1 and B2: identical ordering
// semantics as List, but with no value storage.
type GhostList[K comparable] struct {
	tree    *ranktree.Tree[K]
	index   map[K]*ranktree.Node[K]
	counter int64
}

// NewGhost creates an empty ghost list.
func NewGhost[K comparable]() *GhostList[K] {
	return &GhostList[K]{
		tree:  ranktree.New[K](),
		index: make(map[K]*ranktree.Node[K]),
	}
}

// Contains reports whether key is present in the ghost list.
func (g *GhostList[K]) Contains(key K) bool {
	_, ok := g.index[key]
	return ok
}

// Size returns the number of ghost keys held.
func (g *GhostList[K]) Size() int {
	return g.tree.Len()
}

// PutMRU records key as the most-recently-demoted ghost, assigning it a
// fresh rank (per spec §9, ghost ranks are always freshly assigned so B1/B2
// stay ordered by demotion time, not by the resident's prior rank).
func (g *GhostList[K]) PutMRU(key K) {
	if n, ok := g.index[key]; ok {
		g.tree.Delete(n)
		delete(g.index, key)
	}

	g.counter++
	node := g.tree.Insert(g.counter, key)
	g.index[key] = node
}

// Delete removes key from the ghost list. Returns false if key was absent.
func (g *GhostList[K]) Delete(key K) bool {
	n, ok := g.index[key]
	if !ok {
		return false
	}
	g.tree.Delete(n)
	delete(g.index, key)
	return true
}

// PopLRU removes and returns the oldest ghost key.
func (g *GhostList[K]) PopLRU() (key K, ok bool) {
	n := g.tree.Min()
	if n == nil {
		var zero K
		return zero, false
	}
	key = n.Value
	g.tree.Delete(n)
	delete(g.index, key)
	return key, true
}

// IterFromLRU returns every ghost key ordered from least- to most-recently
// demoted.
func (g *GhostList[K]) IterFromLRU() []K {
	out := make([]K, 0, g.tree.Len())
	g.tree.Walk(func(n *ranktree.Node[K]) bool {
		out = append(out, n.Value)
		return true
	})
	return out
}
