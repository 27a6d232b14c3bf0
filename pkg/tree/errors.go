package tree

import (
	"fmt"

	"github.com/flier/gotree/pkg/xerrors"
)

// Kind enumerates the closed taxonomy of errors this package returns. It is
// exported so callers can switch on it or compare it with errors.Is against
// a sentinel built from [Sentinel], without needing concrete error types per
// failure mode the way [AsError] lets callers peel a wrapped error back to
// this package's own type.
type Kind int

const (
	// OutOfBounds means a NodeIdx's slot index is past the arena's capacity.
	OutOfBounds Kind = iota

	// WrongTree means a NodeIdx was resolved against a Tree other than the
	// one that issued it.
	WrongTree

	// RemovedNode means the slot a NodeIdx refers to is vacant, or has been
	// reused and its generation has since advanced.
	RemovedNode

	// Empty means an operation required a non-empty tree or non-empty
	// children and didn't get one.
	Empty

	// Root means an operation is not valid on the root node (push_sibling,
	// or take_out on a root with other than one child).
	Root

	// Ancestor means a swap or move would create a cycle.
	Ancestor

	// CapacityExceeded means a Dary children container could not accept a
	// push or a take_out reparenting because it is already full.
	CapacityExceeded

	// MalformedSequence means a linearized import saw a structurally
	// invalid depth sequence.
	MalformedSequence

	// LastRootPrune means pruning the root of a one-node tree was refused
	// because the tree opted into WithForbidEmptyingPrune.
	LastRootPrune

	// DoubleFree indicates an internal invariant violation; if this ever
	// surfaces from this package it is a bug in the package, not the
	// caller's input.
	DoubleFree
)

func (k Kind) String() string {
	switch k {
	case OutOfBounds:
		return "OutOfBounds"
	case WrongTree:
		return "WrongTree"
	case RemovedNode:
		return "RemovedNode"
	case Empty:
		return "Empty"
	case Root:
		return "Root"
	case Ancestor:
		return "Ancestor"
	case CapacityExceeded:
		return "CapacityExceeded"
	case MalformedSequence:
		return "MalformedSequence"
	case LastRootPrune:
		return "LastRootPrune"
	case DoubleFree:
		return "DoubleFree"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type every fallible Tree operation returns.
// It carries a closed Kind plus a human-readable message; test for a
// specific kind with errors.Is(err, tree.Sentinel(tree.Root)), or switch
// directly on [Error.Kind] once [AsError] has unwrapped it.
type Error struct {
	kind Kind
	msg  string
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{kind: kind, msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string { return fmt.Sprintf("tree: %s: %s", e.kind, e.msg) }

// Kind returns the error's category.
func (e *Error) Kind() Kind { return e.kind }

// Is lets errors.Is(err, kind-shaped sentinel) work; two *Error values
// compare equal under errors.Is iff they share a Kind.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.kind == other.kind
}

// Sentinel returns a zero-message *Error of the given kind, suitable for use
// with errors.Is(err, tree.Sentinel(tree.Root)).
func Sentinel(kind Kind) error { return &Error{kind: kind} }

// AsError unwraps err down to this package's concrete *Error type, following
// any wrapping along the way, analogous to errors.As but without requiring
// the caller to declare a target variable first.
func AsError(err error) (*Error, bool) { return xerrors.AsA[*Error](err) }
