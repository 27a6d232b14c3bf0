package tree

import "fmt"

// NodeIdx is an externally held, stable handle to a node: a (tree, slot,
// generation) triple. It never owns the node and never carries a lifetime
// tied to the tree, so it may be copied, stored, and compared long after
// the view that produced it has gone out of scope. Resolving it against a
// Tree is the only choke point that re-validates it.
type NodeIdx struct {
	treeID uint64
	slot   int
	gen    uint64
}

// NilNodeIdx is the zero NodeIdx. Tree id 0 is never issued (see newTreeID), so
// NilNodeIdx never resolves against any live Tree; it's a safe zero value
// for "maybe no node" fields that would otherwise need opt.Option[NodeIdx].
var NilNodeIdx NodeIdx

// IsNil reports whether idx is the zero NodeIdx.
func (idx NodeIdx) IsNil() bool { return idx == NilNodeIdx }

func (idx NodeIdx) String() string {
	return fmt.Sprintf("NodeIdx{tree: %d, slot: %d, gen: %d}", idx.treeID, idx.slot, idx.gen)
}
