package finset

import "errors"

// Package-level sentinel errors.
var (
	// ErrUnknownSet is returned when a set name is not in the universe.
	ErrUnknownSet = errors.New("finset: unknown set")

	// ErrDuplicateSet is returned by AddSet when the name is taken.
	ErrDuplicateSet = errors.New("finset: set already declared")

	// ErrNameCollision is returned when a derived set's canonical name is
	// already bound to different elements.
	ErrNameCollision = errors.New("finset: derived name bound to different elements")

	// ErrMalformedFunc is returned when a Func's table does not match its
	// endpoints.
	ErrMalformedFunc = errors.New("finset: malformed function")

	// ErrNotComposable is returned by Compose when Cod(f) ≠ Dom(g).
	ErrNotComposable = errors.New("finset: functions not composable")

	// ErrArityMismatch is returned by Tuple and Cotuple when the leg
	// count does not match the factor count.
	ErrArityMismatch = errors.New("finset: leg count does not match factor count")

	// ErrNotParallel is returned by Equalize and Coequalize when the two
	// functions do not share both endpoints.
	ErrNotParallel = errors.New("finset: functions are not parallel")

	// ErrNotCospan is returned by Pullback when the two functions do not
	// share a codomain.
	ErrNotCospan = errors.New("finset: functions do not form a cospan")

	// ErrNotSpan is returned by Pushout when the two functions do not
	// share a domain.
	ErrNotSpan = errors.New("finset: functions do not form a span")
)

// Func is a total function between two sets of a Universe, tabulated by
// element position: Table[i] is the position in Cod's element list of
// the image of Dom's i-th element.
//
// Func values are plain data; Universe methods validate them on use.
// Morphism equality is Universe.Eq (endpoints plus pointwise images),
// never ==.
type Func struct {
	Dom   string
	Cod   string
	Table []int
}
