package tree

import (
	"iter"

	"github.com/flier/gotree/pkg/tree/walk"
	"github.com/flier/gotree/pkg/xiter"
)

func mustResolve[T any](t *Tree[T], idx NodeIdx) int {
	slot, err := t.resolve(idx)
	if err != nil {
		panic(err)
	}

	return slot
}

// Walk returns v's subtree (v included) in the given order, bare node
// views — spec's over_nodes decorator, the default shape most callers want
// over the (depth, view) or (sibling_idx, view) pairs [View.WithDepth] and
// [View.WithSiblingIdx] provide.
func (v View[T]) Walk(order walk.Order) iter.Seq[View[T]] {
	return xiter.Map(walk.Walk(v.Idx(), v.tree, order), func(item walk.Item[NodeIdx]) View[T] {
		return View[T]{tree: v.tree, slot: mustResolve(v.tree, item.Node)}
	})
}

// WalkMut is [View.Walk]'s mutable counterpart.
func (v MutView[T]) WalkMut(order walk.Order) iter.Seq[MutView[T]] {
	return xiter.Map(v.Walk(order), func(n View[T]) MutView[T] { return MutView[T]{View: n} })
}

// WithDepth decorates order's traversal of v's subtree with each node's
// depth relative to v (0 for v itself).
func (v View[T]) WithDepth(order walk.Order) iter.Seq2[uint32, View[T]] {
	return func(yield func(uint32, View[T]) bool) {
		for item := range walk.Walk(v.Idx(), v.tree, order) {
			if !yield(item.Depth, View[T]{tree: v.tree, slot: mustResolve(v.tree, item.Node)}) {
				return
			}
		}
	}
}

// WithSiblingIdx decorates order's traversal of v's subtree with each
// node's position under its own parent (0 for v itself).
func (v View[T]) WithSiblingIdx(order walk.Order) iter.Seq2[uint32, View[T]] {
	return func(yield func(uint32, View[T]) bool) {
		for item := range walk.Walk(v.Idx(), v.tree, order) {
			if !yield(item.SiblingIdx, View[T]{tree: v.tree, slot: mustResolve(v.tree, item.Node)}) {
				return
			}
		}
	}
}

// CustomWalk drives the traversal engine over v's subtree using a
// caller-supplied cursor instead of this tree's own child order — for
// instance, one that skips subtrees failing a predicate — projecting
// results back to View[T] bound to this tree.
func (v View[T]) CustomWalk(order walk.Order, c walk.Cursor[NodeIdx]) iter.Seq[View[T]] {
	return xiter.Map(walk.Walk(v.Idx(), c, order), func(item walk.Item[NodeIdx]) View[T] {
		return View[T]{tree: v.tree, slot: mustResolve(v.tree, item.Node)}
	})
}

// Leaves returns every leaf in v's subtree, in the given order.
func (v View[T]) Leaves(order walk.Order) iter.Seq[View[T]] {
	return xiter.Filter(v.Walk(order), func(n View[T]) bool { return n.IsLeaf() })
}

// Paths returns, for every leaf in v's subtree visited in the given order,
// the leaf-to-origin path: the leaf itself first, then each ancestor in
// turn, ending with v. Unlike [View.Ancestors], which excludes its own
// origin, each path here always ends with v.
func (v View[T]) Paths(order walk.Order) iter.Seq[[]View[T]] {
	return func(yield func([]View[T]) bool) {
		for n := range v.Leaves(order) {
			path := []View[T]{n}

			cur := n
			for cur.slot != v.slot {
				cur = cur.Parent().Unwrap()
				path = append(path, cur)
			}

			if !yield(path) {
				return
			}
		}
	}
}

// Walk traverses the whole tree from its root. Fails Empty if the tree has
// no root.
func (t *Tree[T]) Walk(order walk.Order) (iter.Seq[View[T]], error) {
	root, err := t.Root()
	if err != nil {
		return nil, err
	}

	return root.Walk(order), nil
}

// Leaves returns every leaf of the whole tree, in the given order. Fails
// Empty if the tree has no root.
func (t *Tree[T]) Leaves(order walk.Order) (iter.Seq[View[T]], error) {
	root, err := t.Root()
	if err != nil {
		return nil, err
	}

	return root.Leaves(order), nil
}
