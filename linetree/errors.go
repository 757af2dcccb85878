package linetree

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("linetree: invalid configuration")
	// ErrOutOfRange signals a position, length or line number outside of the tree.
	ErrOutOfRange = errors.New("linetree: position out of range")
	// ErrInvariant signals a broken structural invariant, reported by Check.
	ErrInvariant = errors.New("linetree: invariant violated")
)
