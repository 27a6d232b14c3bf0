// Package linear implements the tree container's canonical linearized
// depth-first export/import format: an ordered sequence of (depth, value)
// pairs produced by DFS pre-order starting at the root, and the inverse
// reconstruction of a tree from that sequence.
package linear

import (
	"fmt"
	"iter"

	"github.com/flier/gotree/pkg/tree"
	"github.com/flier/gotree/pkg/tree/walk"
)

// Entry is one element of a linearized sequence: a value paired with its
// depth relative to the sequence's root (0 for the root itself).
type Entry[T any] struct {
	Depth uint32
	Value T
}

// Export produces the linearized DFS pre-order sequence of t. An empty
// tree exports to an empty sequence.
func Export[T any](t *tree.Tree[T]) []Entry[T] {
	if t.IsEmpty() {
		return nil
	}

	entries := make([]Entry[T], 0, t.Len())

	root, _ := t.Root()
	for depth, n := range root.WithDepth(walk.DFSPre) {
		entries = append(entries, Entry[T]{Depth: depth, Value: *n.Data()})
	}

	return entries
}

// ExportSeq is Export's lazy counterpart, useful for streaming a large tree
// out without materializing the whole sequence.
func ExportSeq[T any](t *tree.Tree[T]) iter.Seq[Entry[T]] {
	return func(yield func(Entry[T]) bool) {
		if t.IsEmpty() {
			return
		}

		root, _ := t.Root()
		for depth, n := range root.WithDepth(walk.DFSPre) {
			if !yield(Entry[T]{Depth: depth, Value: *n.Data()}) {
				return
			}
		}
	}
}

// MalformedSequenceError describes why Import rejected a sequence.
type MalformedSequenceError struct {
	reason string
}

func (e *MalformedSequenceError) Error() string { return "linear: malformed sequence: " + e.reason }

// Import reconstructs a tree from a linearized DFS pre-order sequence,
// maintaining a stack of "current parent at depth d" during one
// left-to-right pass: a pair at depth d attaches under the stack's
// depth-(d-1) entry, or becomes the root at d = 0.
//
// Fails with a [MalformedSequenceError] on: empty input, a first pair whose
// depth isn't 0, any later pair at depth 0, or any pair whose depth exceeds
// the previous pair's depth by more than one.
func Import[T any](entries []Entry[T], opts ...tree.Option[T]) (*tree.Tree[T], error) {
	if len(entries) == 0 {
		return nil, &MalformedSequenceError{reason: "empty input"}
	}

	if entries[0].Depth != 0 {
		return nil, &MalformedSequenceError{reason: fmt.Sprintf("first entry has depth %d, want 0", entries[0].Depth)}
	}

	t := tree.New[T](opts...)

	rootIdx, err := t.Insert(entries[0].Value)
	if err != nil {
		return nil, err
	}

	// stack[d] holds the NodeIdx of the most recently attached node at
	// depth d; stack[0] is always the root.
	stack := []tree.NodeIdx{rootIdx}
	prevDepth := uint32(0)

	for _, e := range entries[1:] {
		if e.Depth > prevDepth+1 {
			return nil, &MalformedSequenceError{
				reason: fmt.Sprintf("depth %d follows depth %d, jump too large", e.Depth, prevDepth),
			}
		}

		if e.Depth == 0 {
			return nil, &MalformedSequenceError{reason: "depth 0 only valid for the first entry"}
		}

		if int(e.Depth-1) >= len(stack) {
			return nil, &MalformedSequenceError{
				reason: fmt.Sprintf("depth %d has no valid parent", e.Depth),
			}
		}

		parentIdx := stack[e.Depth-1]

		parent, err := t.NodeMut(parentIdx)
		if err != nil {
			return nil, err
		}

		idx, err := parent.PushChild(e.Value)
		if err != nil {
			return nil, err
		}

		stack = append(stack[:e.Depth], idx)
		prevDepth = e.Depth
	}

	return t, nil
}
