package tree

import (
	"iter"

	"github.com/flier/gotree/pkg/opt"
	"github.com/flier/gotree/pkg/tree/arena"
	"github.com/flier/gotree/pkg/tree/walk"
)

// Side selects which neighbor a sibling-pushing mutator targets.
type Side int

const (
	// Left pushes the new node immediately before self.
	Left Side = iota

	// Right pushes the new node immediately after self.
	Right
)

func (s Side) String() string {
	if s == Left {
		return "left"
	}

	return "right"
}

// syncChildPositions re-stamps every child of parentSlot with its current
// logical position. Needed after any insert/remove that can shift a Dyn
// container's later positions; a no-op cost for Dary, whose positions never
// shift, but safe to call unconditionally.
func syncChildPositions[T any](t *Tree[T], parentSlot int) {
	if parentSlot == -1 {
		return
	}

	children := t.arena.Get(parentSlot).Children()
	for pos, idx := range children.All() {
		t.arena.Get(idx).SetPos(pos)
	}
}

func collectChildren[T any](t *Tree[T], slot int) []int {
	var out []int

	for _, idx := range t.arena.Get(slot).Children().All() {
		out = append(out, idx)
	}

	return out
}

// freeSubtree frees slot and every descendant, post-order, without touching
// any parent's children container — callers detach slot from its parent
// first if it is still attached.
func freeSubtree[T any](t *Tree[T], slot int) {
	for _, child := range collectChildren(t, slot) {
		freeSubtree(t, child)
	}

	t.arena.Free(slot)
}

// copySubtree deep-copies src's subtree into a fresh run of slots in dst,
// returning the new root's slot index. The returned node's Parent is left
// at -1; callers wire it into the destination's structure themselves. On a
// CapacityExceeded partway through, every slot already allocated for this
// call is freed before the error is returned, so a failed graft never
// leaves stray nodes behind in dst.
func copySubtree[T any](dst *Tree[T], src View[T]) (int, error) {
	slot := dst.arena.Allocate(*src.Data(), -1, 0, dst.arena.NewChildren())

	for child := range src.Children() {
		childSlot, err := copySubtree(dst, child)
		if err != nil {
			freeSubtree(dst, slot)
			return 0, err
		}

		pos, ok := dst.arena.Get(slot).Children().PushBack(childSlot)
		if !ok {
			freeSubtree(dst, childSlot)
			freeSubtree(dst, slot)

			return 0, newError(CapacityExceeded, "grafted subtree exceeds destination capacity")
		}

		dst.arena.Get(childSlot).SetParent(slot, pos)
	}

	return slot, nil
}

// clear empties t down to a fresh, rootless state, freeing every live slot.
// Used by the "moved" graft variants to empty a source tree whose root
// subtree has just been copied elsewhere.
func (t *Tree[T]) clear() {
	if t.root.IsSome() {
		freeSubtree(t, t.root.Unwrap())
		t.root = opt.None[int]()
	}
}

// Children implements [walk.Cursor] for NodeIdx, letting Tree itself drive
// the generic traversal engine in pkg/tree/walk.
func (t *Tree[T]) Children(idx NodeIdx) iter.Seq[NodeIdx] {
	return func(yield func(NodeIdx) bool) {
		slot, err := t.resolve(idx)
		if err != nil {
			return
		}

		for _, childSlot := range t.arena.Get(slot).Children().All() {
			if !yield(t.mkidx(childSlot)) {
				return
			}
		}
	}
}

// Detach implements [walk.Remover] for NodeIdx: it unlinks idx from its
// parent's children (or clears the tree's root) but does not free idx's
// slot. Splitting unlink from free lets [walk.WalkInto]-driven consumers
// read a node's value after it is unlinked but before it is gone — see
// [ConsumeView.IntoWalk].
//
// BFS and DFS pre-order free a node before some of its descendants are
// reached (a parent is detached, yielded, and freed by IntoWalk while its
// children still sit in the engine's frontier/stack), so by the time a
// child's own Detach runs, its recorded parent slot may already be vacant.
// Unlinking from an already-vacant parent has nothing left to do.
func (t *Tree[T]) Detach(idx NodeIdx) {
	slot, err := t.resolve(idx)
	if err != nil {
		return
	}

	s := t.arena.Get(slot)
	parent := s.Parent()

	if parent == -1 {
		t.root = opt.None[int]()
		return
	}

	parentSlot := t.arena.Get(parent)
	if parentSlot == nil || !parentSlot.Occupied() {
		return
	}

	parentChildren := parentSlot.Children()
	parentChildren.RemoveAt(s.Pos())
	syncChildPositions(t, parent)
}

// PushChild appends value as v's new trailing child.
func (v MutView[T]) PushChild(value T) (NodeIdx, error) {
	slot := v.tree.arena.Allocate(value, v.slot, 0, v.tree.arena.NewChildren())

	pos, ok := v.rawSlot().Children().PushBack(slot)
	if !ok {
		v.tree.arena.Free(slot)
		return NilNodeIdx, newError(CapacityExceeded, "node %v's children are full", v.Idx())
	}

	v.tree.arena.Get(slot).SetParent(v.slot, pos)

	return v.tree.mkidx(slot), nil
}

// PushChildren appends each of values in order, stopping at the first
// CapacityExceeded; children pushed before the failure remain attached.
func (v MutView[T]) PushChildren(values []T) ([]NodeIdx, error) {
	out := make([]NodeIdx, 0, len(values))

	for _, value := range values {
		idx, err := v.PushChild(value)
		if err != nil {
			return out, err
		}

		out = append(out, idx)
	}

	return out, nil
}

// ExtendChildren drains seq, pushing each value as a trailing child. On a
// mid-sequence CapacityExceeded it stops consuming seq and returns the
// children pushed so far alongside the error.
func (v MutView[T]) ExtendChildren(seq iter.Seq[T]) ([]NodeIdx, error) {
	var out []NodeIdx

	for value := range seq {
		idx, err := v.PushChild(value)
		if err != nil {
			return out, err
		}

		out = append(out, idx)
	}

	return out, nil
}

// placeSibling inserts slot next to v at the given side and re-syncs
// position bookkeeping, but does not itself check for the root case. Left
// targets the hole or shiftable position immediately before v; Right
// targets the one immediately after. For a Dyn container (no fixed
// positional meaning) Left lands at v's own current position, sliding v and
// its later siblings one to the right; for Dary (fixed positional roles)
// Left instead targets the position before v's, since shifting would
// silently change what every later position means.
func (v MutView[T]) placeSibling(side Side, slot int) (int, error) {
	parent := v.rawSlot().Parent()
	pos := v.rawSlot().Pos()
	parentChildren := v.tree.arena.Get(parent).Children()

	_, dyn := parentChildren.(*arena.Dyn)

	insertPos := pos - 1
	if dyn {
		insertPos = pos
	}

	if side == Right {
		insertPos = pos + 1
	}

	if !parentChildren.InsertAt(insertPos, slot) {
		return 0, newError(CapacityExceeded, "parent of node %v has no room for a %s sibling", v.Idx(), side)
	}

	syncChildPositions(v.tree, parent)

	return insertPos, nil
}

// PushSibling inserts value as v's left or right neighbor under v's parent.
// Fails Root if v is the tree's root.
func (v MutView[T]) PushSibling(side Side, value T) (NodeIdx, error) {
	if v.IsRoot() {
		return NilNodeIdx, newError(Root, "cannot push a sibling of the root")
	}

	slot := v.tree.arena.Allocate(value, v.rawSlot().Parent(), 0, v.tree.arena.NewChildren())

	pos, err := v.placeSibling(side, slot)
	if err != nil {
		v.tree.arena.Free(slot)
		return NilNodeIdx, err
	}

	v.tree.arena.Get(slot).SetParent(v.rawSlot().Parent(), pos)

	return v.tree.mkidx(slot), nil
}

// PushParent creates a new node holding value that replaces v in v's
// parent's children (or becomes the tree's root, if v was root), and
// adopts v as its sole child.
func (v MutView[T]) PushParent(value T) (NodeIdx, error) {
	oldParent := v.rawSlot().Parent()
	oldPos := v.rawSlot().Pos()

	newSlot := v.tree.arena.Allocate(value, oldParent, oldPos, v.tree.arena.NewChildren())

	cpos, ok := v.tree.arena.Get(newSlot).Children().PushBack(v.slot)
	if !ok {
		// A freshly constructed children container rejecting its first
		// entry only happens for a zero-degree Dary, which NewDary already
		// forbids at construction.
		v.tree.arena.Free(newSlot)
		return NilNodeIdx, newError(CapacityExceeded, "new parent cannot adopt node %v", v.Idx())
	}

	v.rawSlot().SetParent(newSlot, cpos)

	if oldParent == -1 {
		v.tree.root = opt.Some(newSlot)
	} else {
		parentChildren := v.tree.arena.Get(oldParent).Children()
		parentChildren.RemoveAt(oldPos)
		parentChildren.InsertAt(oldPos, newSlot)
		syncChildPositions(v.tree, oldParent)
	}

	return v.tree.mkidx(newSlot), nil
}

// PushChildTree grafts src's root subtree as v's new trailing child,
// copying every value into this tree's arena, and then empties src — spec's
// "the external tree is consumed if moved". Use [MutView.PushChildTreeCloned]
// to leave src intact instead.
func (v MutView[T]) PushChildTree(src *Tree[T]) (NodeIdx, error) {
	root, err := src.Root()
	if err != nil {
		return NilNodeIdx, err
	}

	idx, err := v.PushChildTreeCloned(root)
	if err != nil {
		return NilNodeIdx, err
	}

	src.clear()

	return idx, nil
}

// PushChildTreeCloned grafts a deep copy of src's subtree as v's new
// trailing child; src is left entirely unchanged, whether it belongs to
// this tree or another one.
func (v MutView[T]) PushChildTreeCloned(src View[T]) (NodeIdx, error) {
	slot, err := copySubtree(v.tree, src)
	if err != nil {
		return NilNodeIdx, err
	}

	pos, ok := v.rawSlot().Children().PushBack(slot)
	if !ok {
		freeSubtree(v.tree, slot)
		return NilNodeIdx, newError(CapacityExceeded, "node %v's children are full", v.Idx())
	}

	v.tree.arena.Get(slot).SetParent(v.slot, pos)

	return v.tree.mkidx(slot), nil
}

// PushChildTreeWithin moves src — a node of this same tree — to become v's
// new trailing child, unlinking it from its current parent first. Fails
// WrongTree if src belongs to a different tree, Ancestor if src is v or one
// of v's ancestors (which would orphan v). On CapacityExceeded, src is
// reattached exactly where it was.
func (v MutView[T]) PushChildTreeWithin(src ConsumeView[T]) (NodeIdx, error) {
	if src.tree != v.tree {
		return NilNodeIdx, newError(WrongTree, "push_child_tree_within requires a node from the same tree")
	}

	if src.slot == v.slot || isAncestorSlot(v.tree, src.slot, v.slot) {
		return NilNodeIdx, newError(Ancestor, "cannot move a subtree under its own descendant")
	}

	origParent := src.rawSlot().Parent()
	origPos := src.rawSlot().Pos()

	v.tree.Detach(src.Idx())

	pos, ok := v.rawSlot().Children().PushBack(src.slot)
	if !ok {
		reattach(v.tree, src.slot, origParent, origPos)
		return NilNodeIdx, newError(CapacityExceeded, "node %v's children are full", v.Idx())
	}

	v.tree.arena.Get(src.slot).SetParent(v.slot, pos)

	return v.tree.mkidx(src.slot), nil
}

// reattach restores slot to parent/pos exactly, used to roll back a move
// that failed after the source was already unlinked.
func reattach[T any](t *Tree[T], slot, parent, pos int) {
	if parent == -1 {
		t.root = opt.Some(slot)
	} else {
		t.arena.Get(parent).Children().InsertAt(pos, slot)
	}

	t.arena.Get(slot).SetParent(parent, pos)
}

// PushSiblingTree is [MutView.PushChildTree]'s sibling-positioned
// counterpart: it grafts src's root subtree next to v, consuming src.
func (v MutView[T]) PushSiblingTree(side Side, src *Tree[T]) (NodeIdx, error) {
	if v.IsRoot() {
		return NilNodeIdx, newError(Root, "cannot push a sibling of the root")
	}

	root, err := src.Root()
	if err != nil {
		return NilNodeIdx, err
	}

	slot, err := copySubtree(v.tree, root)
	if err != nil {
		return NilNodeIdx, err
	}

	pos, err := v.placeSibling(side, slot)
	if err != nil {
		freeSubtree(v.tree, slot)
		return NilNodeIdx, err
	}

	v.tree.arena.Get(slot).SetParent(v.rawSlot().Parent(), pos)
	src.clear()

	return v.tree.mkidx(slot), nil
}

// PushSiblingTreeCloned deep-copies src's subtree next to v, leaving src
// unchanged.
func (v MutView[T]) PushSiblingTreeCloned(side Side, src View[T]) (NodeIdx, error) {
	if v.IsRoot() {
		return NilNodeIdx, newError(Root, "cannot push a sibling of the root")
	}

	slot, err := copySubtree(v.tree, src)
	if err != nil {
		return NilNodeIdx, err
	}

	pos, err := v.placeSibling(side, slot)
	if err != nil {
		freeSubtree(v.tree, slot)
		return NilNodeIdx, err
	}

	v.tree.arena.Get(slot).SetParent(v.rawSlot().Parent(), pos)

	return v.tree.mkidx(slot), nil
}

// PushSiblingTreeWithin moves src, a node of this same tree, to become v's
// new left or right neighbor.
func (v MutView[T]) PushSiblingTreeWithin(side Side, src ConsumeView[T]) (NodeIdx, error) {
	if v.IsRoot() {
		return NilNodeIdx, newError(Root, "cannot push a sibling of the root")
	}

	if src.tree != v.tree {
		return NilNodeIdx, newError(WrongTree, "push_sibling_tree_within requires a node from the same tree")
	}

	if src.slot == v.slot || isAncestorSlot(v.tree, src.slot, v.slot) {
		return NilNodeIdx, newError(Ancestor, "cannot move a subtree next to its own descendant")
	}

	origParent := src.rawSlot().Parent()
	origPos := src.rawSlot().Pos()

	v.tree.Detach(src.Idx())

	pos, err := v.placeSibling(side, src.slot)
	if err != nil {
		reattach(v.tree, src.slot, origParent, origPos)
		return NilNodeIdx, err
	}

	v.tree.arena.Get(src.slot).SetParent(v.rawSlot().Parent(), pos)

	return v.tree.mkidx(src.slot), nil
}

// fitsReplacement reports whether children can accept count reattached
// nodes in place of the one node about to be removed, without any
// container mutation — used to precheck take_out so a capacity failure
// never leaves the tree half-modified.
func fitsReplacement(children arena.ChildList, pos, count int) bool {
	if count <= 1 {
		return true
	}

	if _, ok := children.(*arena.Dyn); ok {
		return true
	}

	// Dary: the reattached children land at pos, pos+1, ..., pos+count-1,
	// so every position after pos must exist and be a hole.
	if pos+count > children.Len() {
		return false
	}

	for i := 1; i < count; i++ {
		if _, occupied := children.Get(pos + i); occupied {
			return false
		}
	}

	return true
}

// TakeOut removes self, reparenting self's former children to self's former
// parent at self's former position, in order, and returns self's value.
// Fails Root if self is the root and does not have exactly one child.
func (v ConsumeView[T]) TakeOut() (T, error) {
	var zero T

	children := collectChildren(v.tree, v.slot)

	if v.IsRoot() {
		if len(children) != 1 {
			return zero, newError(Root, "take_out on the root requires exactly one child, has %d", len(children))
		}

		value := *v.Data()
		only := children[0]
		v.tree.arena.Get(only).SetParent(-1, 0)
		v.tree.root = opt.Some(only)
		v.tree.arena.Free(v.slot)

		return value, nil
	}

	parent := v.rawSlot().Parent()
	pos := v.rawSlot().Pos()
	parentChildren := v.tree.arena.Get(parent).Children()

	if !fitsReplacement(parentChildren, pos, len(children)) {
		return zero, newError(CapacityExceeded, "parent of node %v cannot accept %d reparented children", v.Idx(), len(children))
	}

	value := *v.Data()
	parentChildren.RemoveAt(pos)

	for i, child := range children {
		parentChildren.InsertAt(pos+i, child)
		v.tree.arena.Get(child).SetParent(parent, pos+i)
	}

	syncChildPositions(v.tree, parent)
	v.tree.arena.Free(v.slot)

	return value, nil
}

// Prune removes the entire subtree rooted at v and returns v's value; every
// descendant slot becomes vacant. Fails LastRootPrune only if v is the
// tree's sole remaining node and the tree was constructed with
// [WithForbidEmptyingPrune]; by default pruning the last node succeeds and
// leaves an empty tree (see DESIGN.md).
func (v ConsumeView[T]) Prune() (T, error) {
	var zero T

	if v.IsRoot() && v.tree.Len() == 1 && v.tree.forbidEmpty {
		return zero, newError(LastRootPrune, "cannot prune the tree's last remaining node")
	}

	value := *v.Data()

	if v.IsRoot() {
		v.tree.root = opt.None[int]()
	} else {
		parent := v.rawSlot().Parent()
		parentChildren := v.tree.arena.Get(parent).Children()
		parentChildren.RemoveAt(v.rawSlot().Pos())
		syncChildPositions(v.tree, parent)
	}

	freeSubtree(v.tree, v.slot)

	return value, nil
}

// IntoWalk lazily consumes the subtree rooted at v, removing it while
// yielding its values in order. Stopping iteration before it is exhausted
// still removes every remaining node; only the values for the unvisited
// remainder are not yielded.
func (v ConsumeView[T]) IntoWalk(order walk.Order) iter.Seq[T] {
	return func(yield func(T) bool) {
		stopped := false

		for item := range walk.WalkInto(v.Idx(), v.tree, order) {
			slot, err := v.tree.resolve(item.Node)
			if err != nil {
				continue
			}

			value := *v.tree.arena.Get(slot).Value()
			v.tree.arena.Free(slot)

			if stopped {
				continue
			}

			if !yield(value) {
				stopped = true
			}
		}
	}
}

// isAncestorSlot reports whether ancestor is on slot's parent chain.
func isAncestorSlot[T any](t *Tree[T], ancestor, slot int) bool {
	cur := t.arena.Get(slot).Parent()
	for cur != -1 {
		if cur == ancestor {
			return true
		}

		cur = t.arena.Get(cur).Parent()
	}

	return false
}

// SwapSubtrees exchanges the subtrees rooted at a and b under their
// respective parents, preserving each side's positional meaning. Fails
// Ancestor if either index is an ancestor of the other.
func (t *Tree[T]) SwapSubtrees(a, b NodeIdx) error {
	slotA, err := t.resolve(a)
	if err != nil {
		return err
	}

	slotB, err := t.resolve(b)
	if err != nil {
		return err
	}

	if slotA == slotB {
		return nil
	}

	if isAncestorSlot(t, slotA, slotB) || isAncestorSlot(t, slotB, slotA) {
		return newError(Ancestor, "cannot swap a subtree with its own ancestor")
	}

	sa, sb := t.arena.Get(slotA), t.arena.Get(slotB)
	pa, posa := sa.Parent(), sa.Pos()
	pb, posb := sb.Parent(), sb.Pos()

	if pa == pb && pa != -1 {
		t.arena.Get(pa).Children().Swap(posa, posb)
		sa.SetParent(pa, posb)
		sb.SetParent(pb, posa)

		return nil
	}

	if pa == -1 {
		t.root = opt.Some(slotB)
	} else {
		children := t.arena.Get(pa).Children()
		children.RemoveAt(posa)
		children.InsertAt(posa, slotB)
	}

	if pb == -1 {
		t.root = opt.Some(slotA)
	} else {
		children := t.arena.Get(pb).Children()
		children.RemoveAt(posb)
		children.InsertAt(posb, slotA)
	}

	sa.SetParent(pb, posb)
	sb.SetParent(pa, posa)

	return nil
}

// CloneAsTree deep-copies the subtree at v into a freshly constructed Tree
// with its own tree id, leaving v's tree unchanged.
func (v View[T]) CloneAsTree(opts ...Option[T]) (*Tree[T], error) {
	dst := New[T](opts...)

	slot, err := copySubtree(dst, v)
	if err != nil {
		return nil, err
	}

	dst.root = opt.Some(slot)

	return dst, nil
}

// IntoNewTree detaches the subtree at v and returns it as a freshly
// constructed Tree with its own tree id; v's origin tree loses the
// subtree. Node identities are not preserved across the move: every
// NodeIdx the new tree issues is relative to its own id.
func (v ConsumeView[T]) IntoNewTree(opts ...Option[T]) (*Tree[T], error) {
	dst, err := v.View.CloneAsTree(opts...)
	if err != nil {
		return nil, err
	}

	if v.IsRoot() {
		v.tree.root = opt.None[int]()
	} else {
		parent := v.rawSlot().Parent()
		parentChildren := v.tree.arena.Get(parent).Children()
		parentChildren.RemoveAt(v.rawSlot().Pos())
		syncChildPositions(v.tree, parent)
	}

	freeSubtree(v.tree, v.slot)

	return dst, nil
}
