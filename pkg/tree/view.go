package tree

import (
	"iter"

	"github.com/flier/gotree/pkg/opt"
	"github.com/flier/gotree/pkg/tree/arena"
)

// View is a read-only handle bound to a tree and one of its live slots. It
// is the type every navigation method and traversal entry point returns
// nodes as.
type View[T any] struct {
	tree *Tree[T]
	slot int
}

func (v View[T]) rawSlot() *arena.Slot[T] { return v.tree.arena.Get(v.slot) }

// Data returns a pointer to the node's stored value. Mutating through it on
// a plain [View] is not prevented by the type system (Go has no
// const-reference views), but only [MutView] and [ConsumeView] are meant
// to be used for edits; treat a View's Data as read-only.
func (v View[T]) Data() *T { return v.rawSlot().Value() }

// Idx returns a stable handle to this node, resolvable against its tree
// for as long as the node (or, in Lazy mode, its slot's history) exists.
func (v View[T]) Idx() NodeIdx { return v.tree.mkidx(v.slot) }

// IsRoot reports whether this node is its tree's root.
func (v View[T]) IsRoot() bool { return v.rawSlot().Parent() == -1 }

// IsLeaf reports whether this node has zero occupied children.
func (v View[T]) IsLeaf() bool { return v.rawSlot().Children().Count() == 0 }

// Depth computes this node's depth by walking its parent chain; O(depth).
func (v View[T]) Depth() uint32 {
	var d uint32

	slot := v.slot
	for {
		parent := v.tree.arena.Get(slot).Parent()
		if parent == -1 {
			return d
		}

		d++
		slot = parent
	}
}

// Height computes the height of the subtree rooted at this node (0 for a
// leaf) by traversing it; O(subtree size).
func (v View[T]) Height() uint32 {
	var maxDepth uint32

	var walk func(slot int, depth uint32)
	walk = func(slot int, depth uint32) {
		if depth > maxDepth {
			maxDepth = depth
		}

		for _, child := range v.tree.arena.Get(slot).Children().All() {
			walk(child, depth+1)
		}
	}
	walk(v.slot, 0)

	return maxDepth
}

// NumChildren returns the node's logical child-container length — for a
// Dary tree this includes holes, matching [View.GetChild]'s indexing.
func (v View[T]) NumChildren() int { return v.rawSlot().Children().Len() }

// Count returns the number of occupied children (excluding Dary holes).
func (v View[T]) Count() int { return v.rawSlot().Children().Count() }

// GetChild returns the child at logical position i. For a Dary tree this
// is None if i is an empty hole or out of range; for Dyn it is the i-th
// existing child.
func (v View[T]) GetChild(i int) opt.Option[View[T]] {
	idx, ok := v.rawSlot().Children().Get(i)
	if !ok {
		return opt.None[View[T]]()
	}

	return opt.Some(View[T]{tree: v.tree, slot: idx})
}

// Children returns a lazy sequence of child views in logical order,
// skipping empty Dary slots.
func (v View[T]) Children() iter.Seq[View[T]] {
	return func(yield func(View[T]) bool) {
		for _, idx := range v.rawSlot().Children().All() {
			if !yield((View[T]{tree: v.tree, slot: idx})) {
				return
			}
		}
	}
}

// Parent returns this node's parent, or None if it is the root.
func (v View[T]) Parent() opt.Option[View[T]] {
	p := v.rawSlot().Parent()
	if p == -1 {
		return opt.None[View[T]]()
	}

	return opt.Some(View[T]{tree: v.tree, slot: p})
}

// SiblingIdx returns this node's logical position under its parent (0 if
// root).
func (v View[T]) SiblingIdx() int { return v.rawSlot().Pos() }

// Ancestors returns a lazy, upward sequence of this node's ancestors,
// excluding the node itself, nearest first — see DESIGN.md for why self is
// excluded, resolving spec's open question.
func (v View[T]) Ancestors() iter.Seq[View[T]] {
	return func(yield func(View[T]) bool) {
		slot := v.rawSlot().Parent()
		for slot != -1 {
			if !yield(View[T]{tree: v.tree, slot: slot}) {
				return
			}

			slot = v.tree.arena.Get(slot).Parent()
		}
	}
}

// MutView additionally offers every structural mutator in addition to the
// navigation methods of View; see mutators.go. It is bound to the same
// exclusive *Tree pointer a caller already must hold, which is Go's nearest
// equivalent of spec's "exactly one mutable view at a time" rule — this
// package does not add its own runtime lock on top of normal Go aliasing
// discipline, matching its single-threaded-mutation concurrency model.
type MutView[T any] struct {
	View[T]
}

// ConsumeView additionally permits operations that remove the subtree
// rooted at this node and yield ownership of its values (Prune, IntoWalk,
// IntoNewTree).
type ConsumeView[T any] struct {
	View[T]
}

// Consume converts a MutView into a ConsumeView over the same node.
func (v MutView[T]) Consume() ConsumeView[T] { return ConsumeView[T]{View: v.View} }
