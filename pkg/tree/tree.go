// Package tree implements a general-purpose, in-memory rooted tree
// container: an arena-backed node store, stable cross-call node handles,
// and a vocabulary of traversals and structural mutations layered on top.
//
// See [Tree], [NodeIdx], and the sibling packages
// [github.com/flier/gotree/pkg/tree/arena] (storage),
// [github.com/flier/gotree/pkg/tree/walk] (traversal engine), and
// [github.com/flier/gotree/pkg/tree/linear] (depth-first export/import).
package tree

import (
	"iter"

	"github.com/flier/gotree/pkg/opt"
	"github.com/flier/gotree/pkg/tree/arena"
)

// Tree owns an arena of nodes and the slot index of its root, if any. The
// zero value is not usable; construct one with [New] or [NewBinary].
type Tree[T any] struct {
	id          uint64
	arena       *arena.Arena[T]
	root        opt.Option[int]
	forbidEmpty bool
}

// New constructs an empty tree. Push a root with [Tree.Insert] (or build one
// up via push_child-style mutators after inserting a first value — spec's
// "Creates empty trees and single-root trees").
func New[T any](opts ...Option[T]) *Tree[T] {
	cfg := defaultConfig[T]()
	for _, opt := range opts {
		opt(cfg)
	}

	return &Tree[T]{
		id:          newTreeID(),
		arena:       arena.New[T](cfg.mode, cfg.newKids),
		root:        opt.None[int](),
		forbidEmpty: cfg.forbidEmpty,
	}
}

// NewBinary constructs an empty Dary tree of degree 2, the "distinguished
// binary tree" variant. Its views have no dedicated Left()/Right()
// accessors; the left and right children are positions 0 and 1 of
// [View.GetChild].
func NewBinary[T any](opts ...Option[T]) *Tree[T] {
	return New[T](append([]Option[T]{WithDaryVariant[T](2)}, opts...)...)
}

// NewWithRoot constructs a single-root tree holding value.
func NewWithRoot[T any](value T, opts ...Option[T]) *Tree[T] {
	t := New[T](opts...)
	_, _ = t.Insert(value)

	return t
}

// ID returns the tree's process-unique identifier, the first component of
// every [NodeIdx] it issues.
func (t *Tree[T]) ID() uint64 { return t.id }

// Len returns the number of live nodes.
func (t *Tree[T]) Len() int { return t.arena.Len() }

// IsEmpty reports whether the tree has no root.
func (t *Tree[T]) IsEmpty() bool { return t.root.IsNone() }

// Insert sets value as the tree's root. Fails with Empty if the tree
// already has one (use the mutators on the existing root's [MutView]
// instead of replacing it wholesale).
func (t *Tree[T]) Insert(value T) (NodeIdx, error) {
	if t.root.IsSome() {
		return NilNodeIdx, newError(Empty, "tree already has a root")
	}

	slot := t.arena.Allocate(value, -1, 0, t.arena.NewChildren())
	t.root = opt.Some(slot)

	return t.mkidx(slot), nil
}

// RootIdx returns the root's NodeIdx, or NilNodeIdx if the tree is empty.
func (t *Tree[T]) RootIdx() NodeIdx {
	if t.root.IsNone() {
		return NilNodeIdx
	}

	return t.mkidx(t.root.Unwrap())
}

// Root returns a read-only view of the root. Fails with Empty if the tree
// has no root.
func (t *Tree[T]) Root() (View[T], error) {
	if t.root.IsNone() {
		return View[T]{}, newError(Empty, "tree has no root")
	}

	return View[T]{tree: t, slot: t.root.Unwrap()}, nil
}

// RootMut returns a mutable view of the root. Fails with Empty if the tree
// has no root.
func (t *Tree[T]) RootMut() (MutView[T], error) {
	v, err := t.Root()
	if err != nil {
		return MutView[T]{}, err
	}

	return MutView[T]{View: v}, nil
}

// Node resolves idx against this tree, per the validity rule in spec's
// §4.3: wrong tree id, out-of-bounds slot, and stale generation are each
// reported distinctly.
func (t *Tree[T]) Node(idx NodeIdx) (View[T], error) {
	slot, err := t.resolve(idx)
	if err != nil {
		return View[T]{}, err
	}

	return View[T]{tree: t, slot: slot}, nil
}

// NodeMut resolves idx against this tree and returns a mutable view of it.
func (t *Tree[T]) NodeMut(idx NodeIdx) (MutView[T], error) {
	v, err := t.Node(idx)
	if err != nil {
		return MutView[T]{}, err
	}

	return MutView[T]{View: v}, nil
}

func (t *Tree[T]) resolve(idx NodeIdx) (int, error) {
	if idx.treeID != t.id {
		return 0, newError(WrongTree, "NodeIdx %v belongs to tree %d, not %d", idx, idx.treeID, t.id)
	}

	slot := t.arena.Get(idx.slot)
	if slot == nil {
		return 0, newError(OutOfBounds, "slot %d exceeds arena capacity %d", idx.slot, t.arena.Cap())
	}

	if !slot.Occupied() || slot.Gen() != idx.gen {
		return 0, newError(RemovedNode, "slot %d is no longer live (gen %d, have %d)", idx.slot, idx.gen, slot.Gen())
	}

	return idx.slot, nil
}

func (t *Tree[T]) mkidx(slot int) NodeIdx {
	return NodeIdx{treeID: t.id, slot: slot, gen: t.arena.Get(slot).Gen()}
}

// Iter visits every live node in arena order (insertion-history-dependent
// but deterministic), skipping vacant slots — spec's "arbitrary but
// deterministic order" for whole-tree iteration, independent of any root.
func (t *Tree[T]) Iter() iter.Seq[View[T]] {
	return func(yield func(View[T]) bool) {
		for i := 0; i < t.arena.Cap(); i++ {
			slot := t.arena.Get(i)
			if !slot.Occupied() {
				continue
			}

			if !yield(View[T]{tree: t, slot: i}) {
				return
			}
		}
	}
}

// IterMut is [Tree.Iter]'s mutable counterpart.
func (t *Tree[T]) IterMut() iter.Seq[MutView[T]] {
	return func(yield func(MutView[T]) bool) {
		for v := range t.Iter() {
			if !yield(MutView[T]{View: v}) {
				return
			}
		}
	}
}

// IntoLazyReclaim switches the tree to Lazy reclamation: from now on,
// freeing a slot never returns it to the free list, so every live NodeIdx
// stays resolvable (as RemovedNode once freed, never silently wrong)
// indefinitely. NodeIdx values already valid remain valid.
func (t *Tree[T]) IntoLazyReclaim() { t.arena.SetMode(arena.Lazy) }

// IntoEagerReclaim switches the tree to Eager reclamation: future frees
// return their slot to a LIFO free list for reuse. NodeIdx values already
// valid remain valid; it is only slots freed after this call that become
// eligible for reuse.
func (t *Tree[T]) IntoEagerReclaim() { t.arena.SetMode(arena.Eager) }

// Mode returns the tree's current reclamation policy.
func (t *Tree[T]) Mode() Reclamation { return t.arena.Mode() }
