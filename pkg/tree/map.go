package tree

import "github.com/flier/gotree/pkg/opt"

// Map builds a new tree of the same shape as t, with every value replaced
// by f applied to it. The destination tree starts from the default
// configuration (Dyn children, Eager reclamation) unless opts says
// otherwise — element type changes across Map, so t's own Option[T] values
// can't be replayed directly against Tree[U].
func Map[T, U any](t *Tree[T], f func(T) U, opts ...Option[U]) *Tree[U] {
	dst := New[U](opts...)

	if t.IsEmpty() {
		return dst
	}

	root, _ := t.Root()
	slot := mapSubtree(dst, root, f)
	dst.root = opt.Some(slot)

	return dst
}

func mapSubtree[T, U any](dst *Tree[U], src View[T], f func(T) U) int {
	slot := dst.arena.Allocate(f(*src.Data()), -1, 0, dst.arena.NewChildren())

	for _, childSlot := range collectChildren(src.tree, src.slot) {
		child := View[T]{tree: src.tree, slot: childSlot}

		newChildSlot := mapSubtree(dst, child, f)
		pos, _ := dst.arena.Get(slot).Children().PushBack(newChildSlot)
		dst.arena.Get(newChildSlot).SetParent(slot, pos)
	}

	return slot
}
