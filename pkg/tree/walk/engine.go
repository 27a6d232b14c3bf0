// Package walk implements the order-agnostic traversal engine described by
// the tree container: a state machine that visits a rooted DAG of opaque
// node handles in BFS, DFS pre-order, or post-order, decorated with depth
// and sibling-index metadata, reusable across read-only, consuming, and
// (via [Parallel]) concurrent traversal contexts.
//
// The engine knows nothing about the concrete node type it walks: it is
// parameterized entirely over the [Cursor] (and, for consuming walks,
// [Remover]) capability a caller supplies, the same separation the tree
// package's own decorators rely on to stay thin wrappers rather than
// per-order duplicated code.
package walk

import (
	"iter"
	"slices"
)

// Order selects which of the three canonical traversal orders [Walk] and
// [WalkInto] drive.
type Order int

const (
	// BFS visits level by level, children in logical order left to right.
	BFS Order = iota

	// DFSPre visits the root, then recurses into children left to right.
	DFSPre

	// PostOrder recurses into children left to right, then visits the root.
	PostOrder
)

// Cursor gives the engine read access to a node's children, in logical
// order (an implementation over a bounded-arity container skips its empty
// slots).
type Cursor[N any] interface {
	Children(n N) iter.Seq[N]
}

// Remover additionally lets the engine detach a node — removing it from
// its owning structure, including unlinking it from its parent's children —
// once the engine has finished visiting it. [WalkInto] uses this to
// interleave removal with emission.
type Remover[N any] interface {
	Cursor[N]
	Detach(n N)
}

// Item decorates a visited node with its depth and sibling index relative
// to the traversal's origin (both zero for the origin itself). Decorator
// helpers built on top of [Walk] project these fields in the fixed order
// (depth?, sibling_idx?, payload).
type Item[N any] struct {
	Node       N
	Depth      uint32
	SiblingIdx uint32
}

// Walk visits start and its descendants in the given order, yielding each
// as an [Item]. The sequence is read-only: no structural change is made to
// whatever c is a view over.
func Walk[N any](start N, c Cursor[N], order Order) iter.Seq[Item[N]] {
	switch order {
	case BFS:
		return walkBFS(start, c)
	case PostOrder:
		return walkPost(start, c)
	default:
		return walkDFSPre(start, c)
	}
}

// WalkInto visits start and its descendants in the given order exactly as
// [Walk] does, but calls c.Detach on each node immediately once the engine
// has finished with it — which for PostOrder means every descendant of a
// node is detached before the node itself, so the detach order always
// matches the emission order. Breaking out of a range over the returned
// sequence before it is exhausted still runs every remaining Detach call;
// only the yield calls for the unvisited remainder are skipped.
func WalkInto[N any](start N, c Remover[N], order Order) iter.Seq[Item[N]] {
	switch order {
	case BFS:
		return walkIntoBFS(start, c)
	case PostOrder:
		return walkIntoPost(start, c)
	default:
		return walkIntoDFSPre(start, c)
	}
}

func walkBFS[N any](start N, c Cursor[N]) iter.Seq[Item[N]] {
	return func(yield func(Item[N]) bool) {
		for item := range bfsFrontier(start, c) {
			if !yield(item) {
				return
			}
		}
	}
}

type qitem[N any] struct {
	node  N
	depth uint32
	sib   uint32
}

func bfsFrontier[N any](start N, c Cursor[N]) iter.Seq[Item[N]] {
	return func(yield func(Item[N]) bool) {
		queue := []qitem[N]{{start, 0, 0}}

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			if !yield(Item[N]{Node: cur.node, Depth: cur.depth, SiblingIdx: cur.sib}) {
				return
			}

			var sib uint32
			for child := range c.Children(cur.node) {
				queue = append(queue, qitem[N]{child, cur.depth + 1, sib})
				sib++
			}
		}
	}
}

func walkDFSPre[N any](start N, c Cursor[N]) iter.Seq[Item[N]] {
	return func(yield func(Item[N]) bool) {
		stack := []qitem[N]{{start, 0, 0}}

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if !yield(Item[N]{Node: cur.node, Depth: cur.depth, SiblingIdx: cur.sib}) {
				return
			}

			children := slices.Collect(c.Children(cur.node))
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, qitem[N]{children[i], cur.depth + 1, uint32(i)})
			}
		}
	}
}

// postFrame tracks one node's descent through its children, using
// iter.Pull to resume a partially-consumed Children sequence each time the
// stack returns to it.
type postFrame[N any] struct {
	node     N
	depth    uint32
	sib      uint32
	childSib uint32
	next     func() (N, bool)
	stop     func()
}

func walkPost[N any](start N, c Cursor[N]) iter.Seq[Item[N]] {
	return func(yield func(Item[N]) bool) {
		stack := []*postFrame[N]{newPostFrame(start, 0, 0, c)}

		for len(stack) > 0 {
			top := stack[len(stack)-1]

			if child, ok := top.next(); ok {
				stack = append(stack, newPostFrame(child, top.depth+1, top.childSib, c))
				top.childSib++
				continue
			}

			top.stop()
			stack = stack[:len(stack)-1]

			if !yield(Item[N]{Node: top.node, Depth: top.depth, SiblingIdx: top.sib}) {
				return
			}
		}
	}
}

func newPostFrame[N any](node N, depth, sib uint32, c Cursor[N]) *postFrame[N] {
	next, stop := iter.Pull(c.Children(node))
	return &postFrame[N]{node: node, depth: depth, sib: sib, next: next, stop: stop}
}

func walkIntoBFS[N any](start N, c Remover[N]) iter.Seq[Item[N]] {
	return func(yield func(Item[N]) bool) {
		queue := []qitem[N]{{start, 0, 0}}
		stopped := false

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]

			var sib uint32
			for child := range c.Children(cur.node) {
				queue = append(queue, qitem[N]{child, cur.depth + 1, sib})
				sib++
			}

			c.Detach(cur.node)

			if stopped {
				continue
			}

			if !yield(Item[N]{Node: cur.node, Depth: cur.depth, SiblingIdx: cur.sib}) {
				stopped = true
			}
		}
	}
}

func walkIntoDFSPre[N any](start N, c Remover[N]) iter.Seq[Item[N]] {
	return func(yield func(Item[N]) bool) {
		stack := []qitem[N]{{start, 0, 0}}
		stopped := false

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			children := slices.Collect(c.Children(cur.node))
			for i := len(children) - 1; i >= 0; i-- {
				stack = append(stack, qitem[N]{children[i], cur.depth + 1, uint32(i)})
			}

			c.Detach(cur.node)

			if stopped {
				continue
			}

			if !yield(Item[N]{Node: cur.node, Depth: cur.depth, SiblingIdx: cur.sib}) {
				stopped = true
			}
		}
	}
}

func walkIntoPost[N any](start N, c Remover[N]) iter.Seq[Item[N]] {
	return func(yield func(Item[N]) bool) {
		stack := []*postFrame[N]{newPostFrame(start, 0, 0, c)}
		stopped := false

		for len(stack) > 0 {
			top := stack[len(stack)-1]

			if child, ok := top.next(); ok {
				stack = append(stack, newPostFrame(child, top.depth+1, top.childSib, c))
				top.childSib++
				continue
			}

			top.stop()
			stack = stack[:len(stack)-1]
			c.Detach(top.node)

			if stopped {
				continue
			}

			if !yield(Item[N]{Node: top.node, Depth: top.depth, SiblingIdx: top.sib}) {
				stopped = true
			}
		}
	}
}
