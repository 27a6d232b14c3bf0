package tree

import "github.com/flier/gotree/pkg/tree/walk"

// Size returns the number of nodes in v's subtree, v included. This walks
// the subtree; for just the node's own immediate occupied children, see
// [View.Count].
func (v View[T]) Size() int {
	n := 0

	for range v.Walk(walk.DFSPre) {
		n++
	}

	return n
}

// Equal reports whether t and other have the same shape — same number of
// children in the same order at every node — and eq reports every pair of
// corresponding values equal. Two empty trees are equal regardless of eq.
func (t *Tree[T]) Equal(other *Tree[T], eq func(a, b T) bool) bool {
	if t.IsEmpty() != other.IsEmpty() {
		return false
	}

	if t.IsEmpty() {
		return true
	}

	a, _ := t.Root()
	b, _ := other.Root()

	return equalSubtree(a, b, eq)
}

func equalSubtree[T any](a, b View[T], eq func(a, b T) bool) bool {
	if !eq(*a.Data(), *b.Data()) {
		return false
	}

	// Compare by occupied child count, not NumChildren (which includes Dary
	// holes), so a Dyn tree and a Dary tree with the same shape can compare
	// equal.
	ac := collectChildren(a.tree, a.slot)
	bc := collectChildren(b.tree, b.slot)

	if len(ac) != len(bc) {
		return false
	}

	for i := range ac {
		av := View[T]{tree: a.tree, slot: ac[i]}
		bv := View[T]{tree: b.tree, slot: bc[i]}

		if !equalSubtree(av, bv, eq) {
			return false
		}
	}

	return true
}
