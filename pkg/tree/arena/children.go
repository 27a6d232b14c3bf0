package arena

import (
	"iter"

	"github.com/flier/gotree/pkg/opt"
)

// ChildList abstracts the storage of one node's children. [Dyn] grows
// without bound and compacts on removal; [Dary] holds a fixed logical
// capacity and leaves holes, because in a bounded-arity tree the positional
// meaning of a slot (left vs. right child, say) is part of the data model
// and must survive a sibling's removal.
type ChildList interface {
	// Len returns the number of logical positions, including holes for Dary.
	Len() int

	// Count returns the number of occupied positions.
	Count() int

	// Get returns the child index at position, and whether that position is
	// occupied.
	Get(pos int) (index int, ok bool)

	// All iterates occupied (position, child index) pairs in logical order.
	All() iter.Seq2[int, int]

	// PushBack appends a child at a new logical position ([Dyn]) or at the
	// lowest empty position ([Dary]), returning that position.
	PushBack(index int) (pos int, ok bool)

	// InsertAt inserts a child at a specific logical position, shifting
	// later positions for [Dyn]; for [Dary] the position must already be a
	// hole.
	InsertAt(pos, index int) bool

	// RemoveAt ejects the child at position, returning its index. For [Dyn]
	// later positions shift down; for [Dary] the position becomes a hole.
	RemoveAt(pos int) (index int, ok bool)

	// Swap exchanges the children at the two positions.
	Swap(i, j int)

	// Clear empties the container.
	Clear()

	// Clone returns an independent copy with the same shape and contents.
	Clone() ChildList
}

// Dyn is a growable, always-compact children container: logical position
// equals physical position, and removing a position shifts later ones down.
type Dyn struct {
	items []int
}

// NewDyn constructs an empty [Dyn] children container.
func NewDyn() ChildList { return &Dyn{} }

func (d *Dyn) Len() int   { return len(d.items) }
func (d *Dyn) Count() int { return len(d.items) }

func (d *Dyn) Get(pos int) (int, bool) {
	if pos < 0 || pos >= len(d.items) {
		return 0, false
	}

	return d.items[pos], true
}

func (d *Dyn) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for pos, idx := range d.items {
			if !yield(pos, idx) {
				return
			}
		}
	}
}

func (d *Dyn) PushBack(index int) (int, bool) {
	d.items = append(d.items, index)
	return len(d.items) - 1, true
}

func (d *Dyn) InsertAt(pos, index int) bool {
	if pos < 0 || pos > len(d.items) {
		return false
	}

	d.items = append(d.items, 0)
	copy(d.items[pos+1:], d.items[pos:])
	d.items[pos] = index

	return true
}

func (d *Dyn) RemoveAt(pos int) (int, bool) {
	if pos < 0 || pos >= len(d.items) {
		return 0, false
	}

	index := d.items[pos]
	d.items = append(d.items[:pos], d.items[pos+1:]...)

	return index, true
}

func (d *Dyn) Swap(i, j int) { d.items[i], d.items[j] = d.items[j], d.items[i] }

func (d *Dyn) Clear() { d.items = d.items[:0] }

func (d *Dyn) Clone() ChildList {
	items := make([]int, len(d.items))
	copy(items, d.items)

	return &Dyn{items: items}
}

// Dary is a fixed-capacity children container with holes: removing a
// position does not compact the remainder, and PushBack fills the lowest
// empty position rather than always appending past the highest occupied
// one (spec assumes "fill lowest empty" when the exact behavior is
// otherwise unspecified).
//
// The degree D is a constructor argument rather than a type parameter:
// Go has no const generics, so "compile-time maximum degree" is expressed
// here as "fixed at construction", the closest idiomatic equivalent (see
// DESIGN.md).
type Dary struct {
	slots []opt.Option[int]
}

// NewDary returns a constructor for a [Dary] children container with the
// given fixed degree. Panics if degree <= 0.
func NewDary(degree int) func() ChildList {
	if degree <= 0 {
		panic("arena: Dary degree must be positive")
	}

	return func() ChildList {
		return &Dary{slots: make([]opt.Option[int], degree)}
	}
}

func (d *Dary) Len() int { return len(d.slots) }

func (d *Dary) Count() int {
	n := 0
	for _, s := range d.slots {
		if s.IsSome() {
			n++
		}
	}

	return n
}

func (d *Dary) Get(pos int) (int, bool) {
	if pos < 0 || pos >= len(d.slots) {
		return 0, false
	}

	if d.slots[pos].IsNone() {
		return 0, false
	}

	return d.slots[pos].Unwrap(), true
}

func (d *Dary) All() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for pos, s := range d.slots {
			if s.IsNone() {
				continue
			}

			if !yield(pos, s.Unwrap()) {
				return
			}
		}
	}
}

func (d *Dary) PushBack(index int) (int, bool) {
	for pos, s := range d.slots {
		if s.IsNone() {
			d.slots[pos] = opt.Some(index)
			return pos, true
		}
	}

	return 0, false
}

func (d *Dary) InsertAt(pos, index int) bool {
	if pos < 0 || pos >= len(d.slots) || d.slots[pos].IsSome() {
		return false
	}

	d.slots[pos] = opt.Some(index)

	return true
}

func (d *Dary) RemoveAt(pos int) (int, bool) {
	if pos < 0 || pos >= len(d.slots) {
		return 0, false
	}

	s := d.slots[pos]
	if s.IsNone() {
		return 0, false
	}

	d.slots[pos] = opt.None[int]()

	return s.Unwrap(), true
}

func (d *Dary) Swap(i, j int) { d.slots[i], d.slots[j] = d.slots[j], d.slots[i] }

func (d *Dary) Clear() {
	for i := range d.slots {
		d.slots[i] = opt.None[int]()
	}
}

func (d *Dary) Clone() ChildList {
	slots := make([]opt.Option[int], len(d.slots))
	copy(slots, d.slots)

	return &Dary{slots: slots}
}
