package ranktree

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInsertWalkOrder(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	tree := New[string]()
	ranks := []int64{5, 1, 9, 3, 7, 0, 8, 2, 6, 4}
	for _, r := range ranks {
		tree.Insert(r, "v")
	}
	is.Equal(len(ranks), tree.Len())

	var got []int64
	tree.Walk(func(n *Node[string]) bool {
		got = append(got, n.Rank)
		return true
	})

	for i := 1; i < len(got); i++ {
		is.Less(got[i-1], got[i])
	}
	is.Equal(int64(0), tree.Min().Rank)
	is.Equal(int64(9), tree.Max().Rank)
}

func TestDeleteMaintainsOrderAndBlackHeight(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	tree := New[int]()
	nodes := map[int64]*Node[int]{}
	for i := int64(0); i < 200; i++ {
		nodes[i] = tree.Insert(i, int(i))
	}

	rnd := rand.New(rand.NewSource(42))
	order := make([]int64, 0, len(nodes))
	for k := range nodes {
		order = append(order, k)
	}
	rnd.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for i, rank := range order {
		tree.Delete(nodes[rank])
		delete(nodes, rank)
		is.Equal(len(order)-i-1, tree.Len())
		checkBlackHeight(t, tree)

		var got []int64
		tree.Walk(func(n *Node[int]) bool {
			got = append(got, n.Rank)
			return true
		})
		for j := 1; j < len(got); j++ {
			is.Less(got[j-1], got[j])
		}
	}
}

func TestPopMinIsStableLRUOrder(t *testing.T) {
	is := assert.New(t)
	t.Parallel()

	tree := New[string]()
	n1 := tree.Insert(10, "a")
	tree.Insert(20, "b")
	tree.Insert(30, "c")

	min := tree.Min()
	is.Equal(n1, min)
	is.Equal("a", min.Value)

	tree.Delete(min)
	is.Equal("b", tree.Min().Value)
}

// checkBlackHeight verifies the red-black invariants: no red node has a red
// child, and every root-to-leaf path has the same number of black nodes.
func checkBlackHeight(t *testing.T, tree *Tree[int]) {
	t.Helper()
	is := assert.New(t)

	if tree.root == nil {
		return
	}
	is.Equal(black, tree.root.getColor())

	var walk func(n *Node[int]) int
	walk = func(n *Node[int]) int {
		if n == nil {
			return 1
		}
		if n.getColor() == red {
			is.Equal(black, n.left.getColor())
			is.Equal(black, n.right.getColor())
		}
		left := walk(n.left)
		right := walk(n.right)
		is.Equal(left, right)
		if n.getColor() == black {
			return left + 1
		}
		return left
	}
	walk(tree.root)
}
