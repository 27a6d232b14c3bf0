package tree

import (
	"sync/atomic"

	"github.com/dolthub/maphash"

	"github.com/flier/gotree/pkg/tree/arena"
)

// Reclamation re-exports [arena.Reclamation] so callers configuring a Tree
// never need to import the arena package directly.
type Reclamation = arena.Reclamation

const (
	// Eager reuses freed slots; see [arena.Eager].
	Eager = arena.Eager

	// Lazy never reuses freed slots; see [arena.Lazy].
	Lazy = arena.Lazy
)

// Option configures a Tree at construction time. The children-list variant
// in particular is fixed for the tree's lifetime, matching spec's "Variant:
// fixed at tree type construction".
type Option[T any] func(*config[T])

type config[T any] struct {
	mode        Reclamation
	newKids     func() arena.ChildList
	forbidEmpty bool
}

func defaultConfig[T any]() *config[T] {
	return &config[T]{mode: Eager, newKids: arena.NewDyn}
}

// WithReclamation sets the tree's slot-reclamation policy. The default is
// Eager.
func WithReclamation[T any](mode Reclamation) Option[T] {
	return func(c *config[T]) { c.mode = mode }
}

// WithDynVariant configures the tree to use an unbounded-arity, compacting
// children container. This is the default.
func WithDynVariant[T any]() Option[T] {
	return func(c *config[T]) { c.newKids = arena.NewDyn }
}

// WithDaryVariant configures the tree to use a bounded-arity, hole-
// preserving children container with the given fixed degree. Use degree 2
// for a binary tree (see [NewBinary]).
func WithDaryVariant[T any](degree int) Option[T] {
	return func(c *config[T]) { c.newKids = arena.NewDary(degree) }
}

// WithForbidEmptyingPrune makes Prune on the root of a one-node tree fail
// with LastRootPrune instead of succeeding and leaving an empty tree. See
// DESIGN.md for why the default allows emptying.
func WithForbidEmptyingPrune[T any]() Option[T] {
	return func(c *config[T]) { c.forbidEmpty = true }
}

var (
	treeIDCounter uint64
	treeIDHasher  = maphash.NewHasher[uint64]()
)

// newTreeID mints a process-unique, statistically unguessable tree
// identifier: a monotonic counter run through a randomly seeded hash rather
// than a bare sequence number. Zero is never issued, so the zero NodeIdx
// ([NilNodeIdx]) can never resolve.
func newTreeID() uint64 {
	n := atomic.AddUint64(&treeIDCounter, 1)

	id := treeIDHasher.Hash(n)
	if id == 0 {
		id = 1
	}

	return id
}
