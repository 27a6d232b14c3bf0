// Package arena provides the pinned, chunked node storage that backs
// [github.com/flier/gotree/pkg/tree.Tree].
//
// The arena stores typed, possibly pointer-containing values directly, and
// is built from plain Go slices rather than from unsafe byte chunks.
// Address stability comes from chunking: storage is split into fixed-size
// chunks, and only the *outer* index of chunks ever grows. A chunk, once allocated, is never
// resized or copied, so a pointer to a slot survives any later Grow.
package arena

import (
	"errors"

	"github.com/flier/gotree/internal/debug"
)

// Reclamation selects what happens to a slot index after its occupant is
// removed.
type Reclamation int

const (
	// Eager reclamation returns freed slots to a LIFO free list immediately,
	// so the arena stays compact but previously issued NodeIdx values for the
	// freed slot become stale (RemovedNode, and eventually WrongTree-shaped
	// garbage if the slot is reused and its generation wraps, which in
	// practice never happens before the universe ends).
	Eager Reclamation = iota

	// Lazy reclamation never reuses a freed slot index. Arena growth is
	// monotonic but every NodeIdx issued while a tree is non-empty remains
	// resolvable (as RemovedNode, not a silent wrong answer) forever.
	Lazy
)

const chunkSize = 64

// state tags a Slot as holding a live value or not.
type state uint8

const (
	vacant state = iota
	occupied
)

// Slot is one cell of the arena: either an occupied node (value, parent,
// children, and back-position) or a vacant tombstone carrying only the
// generation that will be stamped onto the next occupant.
type Slot[T any] struct {
	st       state
	gen      uint64
	value    T
	parent   int // -1 if this slot is the root
	pos      int // this slot's logical position under its parent's children
	children ChildList
	nextFree int // free-list link while vacant; meaningless while occupied
}

// Occupied reports whether the slot currently holds a live node.
func (s *Slot[T]) Occupied() bool { return s.st == occupied }

// Gen returns the slot's current generation.
func (s *Slot[T]) Gen() uint64 { return s.gen }

// Value returns a pointer to the slot's stored value. Callers must check
// Occupied first.
func (s *Slot[T]) Value() *T { return &s.value }

// Parent returns the slot index of this slot's parent, or -1 if it is a
// root (or vacant).
func (s *Slot[T]) Parent() int { return s.parent }

// Pos returns this slot's logical position under its parent's children.
func (s *Slot[T]) Pos() int { return s.pos }

// SetPos updates the slot's recorded back-position, used after a sibling is
// removed and the remaining siblings shift down.
func (s *Slot[T]) SetPos(pos int) { s.pos = pos }

// SetParent rewires this slot's recorded parent, used by push_parent and
// grafting mutators.
func (s *Slot[T]) SetParent(parent, pos int) {
	s.parent = parent
	s.pos = pos
}

// Children returns the slot's children container. Occupied slots always
// have one (possibly empty).
func (s *Slot[T]) Children() ChildList { return s.children }

// Arena is the append-only, chunked backing store of a single tree.
//
// A zero Arena is empty and ready to use.
type Arena[T any] struct {
	chunks   [][]Slot[T]
	next     int // first never-allocated slot index
	freeHead int // head of the Eager free list, or -1
	occupied int
	mode     Reclamation
	newKids  func() ChildList
}

// New creates an arena whose children containers are produced by newKids
// (one of [NewDyn] or a [NewDary] closure), reclaiming freed slots according
// to mode.
func New[T any](mode Reclamation, newKids func() ChildList) *Arena[T] {
	return &Arena[T]{freeHead: -1, mode: mode, newKids: newKids}
}

// Len returns the number of occupied slots.
func (a *Arena[T]) Len() int { return a.occupied }

// Cap returns the number of slots the arena has ever handed an index to,
// occupied or not.
func (a *Arena[T]) Cap() int { return a.next }

// Mode returns the arena's current reclamation mode.
func (a *Arena[T]) Mode() Reclamation { return a.mode }

// SetMode switches the reclamation mode. Switching from Lazy to Eager does
// not retroactively reclaim slots freed while in Lazy mode; it only changes
// the policy applied to future frees. This guarantees mode switches never
// invalidate a NodeIdx that was valid beforehand.
func (a *Arena[T]) SetMode(mode Reclamation) { a.mode = mode }

// Get returns the slot at index, or nil if index is out of bounds.
func (a *Arena[T]) Get(index int) *Slot[T] {
	if index < 0 || index >= a.next {
		return nil
	}

	return &a.chunks[index/chunkSize][index%chunkSize]
}

// Allocate reserves a fresh or reclaimed slot, marks it Occupied with value,
// and returns its index.
func (a *Arena[T]) Allocate(value T, parent, pos int, children ChildList) int {
	var index int

	if a.freeHead != -1 {
		index = a.freeHead
		slot := a.Get(index)
		a.freeHead = slot.nextFree
	} else {
		index = a.grow()
	}

	slot := a.Get(index)
	slot.st = occupied
	slot.value = value
	slot.parent = parent
	slot.pos = pos
	slot.children = children
	a.occupied++

	debug.Log(nil, "alloc", "slot=%d gen=%d parent=%d pos=%d", index, slot.gen, parent, pos)

	return index
}

// grow appends a chunk if needed and returns the next watermark index,
// without touching any previously allocated chunk.
func (a *Arena[T]) grow() int {
	index := a.next

	if index%chunkSize == 0 {
		a.chunks = append(a.chunks, make([]Slot[T], chunkSize))
	}

	a.next++

	debug.Log(nil, "grow", "cap=%d chunks=%d", a.next, len(a.chunks))

	return index
}

// ErrDoubleFree is the panic value raised by Free when the target slot is
// already vacant; this indicates a bug in the caller, not a reachable user
// error. A recover can type-assert it back with errors.Is, the same way the
// tree package's own Kind sentinels work.
var ErrDoubleFree = errors.New("arena: double free")

// Free marks the slot at index Vacant, advances its generation, zeroes its
// value so the GC can reclaim anything it points to, and — in Eager mode —
// links it into the free list for reuse. Panics if the slot is already
// vacant.
func (a *Arena[T]) Free(index int) {
	slot := a.Get(index)
	if slot == nil || slot.st == vacant {
		panic(ErrDoubleFree)
	}

	var zero T
	slot.st = vacant
	slot.value = zero
	slot.children = nil
	slot.gen++
	a.occupied--

	if a.mode == Eager {
		slot.nextFree = a.freeHead
		a.freeHead = index
	}

	debug.Log(nil, "free", "slot=%d gen=%d mode=%d", index, slot.gen, a.mode)
}

// NewChildren constructs a fresh children container using the arena's
// configured policy.
func (a *Arena[T]) NewChildren() ChildList { return a.newKids() }
