package graph

import "github.com/pkg/errors"

// Sentinel errors for graph construction and traversal. All of them mark
// conditions that are unrecoverable at the call site; callers are expected
// to fix the program, not retry.
var (
	// ErrNonNumeric is returned when a Value is constructed over a buffer
	// whose element type cannot carry gradients.
	ErrNonNumeric = errors.New("value requires a float element type")

	// ErrMissingProvenance is returned when backward traversal reaches a
	// node without provenance: either the graph was built without Apply,
	// or backward was already run once and consumed it.
	ErrMissingProvenance = errors.New("value has no provenance")

	// ErrArity is returned when an operator is applied to the wrong number
	// of parents.
	ErrArity = errors.New("operator arity mismatch")
)
