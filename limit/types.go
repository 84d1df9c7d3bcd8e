package limit

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNilDiagram is returned when a nil diagram is passed.
	ErrNilDiagram = errors.New("limit: diagram is nil")

	// ErrNilTrait is returned when a required trait oracle is nil.
	ErrNilTrait = errors.New("limit: trait oracle is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("limit: invalid option supplied")

	// ErrUncertifiedLimit is returned when trait output fails the
	// construction-time checks: projection or inclusion endpoints,
	// the fork property, or the commutativity of the finished cone.
	ErrUncertifiedLimit = errors.New("limit: construction failed certification")

	// ErrUncertifiedColimit is the dual of ErrUncertifiedLimit.
	ErrUncertifiedColimit = errors.New("limit: colimit construction failed certification")

	// ErrNotParallel is returned by the bridges when the two arrows do
	// not share a domain and a codomain.
	ErrNotParallel = errors.New("limit: arrows are not parallel")

	// ErrUncertifiedPullback is returned when a pullback oracle's square
	// does not commute or the derived inclusion fails the fork check.
	ErrUncertifiedPullback = errors.New("limit: pullback failed certification")

	// ErrUncertifiedPushout is the dual of ErrUncertifiedPullback.
	ErrUncertifiedPushout = errors.New("limit: pushout failed certification")

	// ErrConeNotEnumerated is returned by OfDiagram when a cone that
	// passed validation is missing from the enumerated cone category.
	// This is an invariant violation, not a decline.
	ErrConeNotEnumerated = errors.New("limit: valid cone missing from enumeration")

	// ErrMediatorMismatch is returned when the equalizer-based mediator
	// and the enumeration-based mediator disagree under the base
	// equality. The bug lives in the caller's oracle; the disagreement
	// is never silently resolved.
	ErrMediatorMismatch = errors.New("limit: mediator derivations disagree")
)

// Options holds parameters customizing construction.
type Options struct {
	// Ctx allows cancellation between construction stages and inside
	// the cone enumeration run by OfDiagram.
	Ctx context.Context

	// MaxCones, if > 0, caps the cone enumeration in OfDiagram and
	// ColimitOfDiagram. The direct constructors never enumerate and
	// ignore it. A value of 0 explicitly disables the cap.
	MaxCones int

	// internal error recorded during option parsing
	err error
}

// Option configures construction via functional arguments. An invalid
// Option is recorded internally and surfaced as ErrOptionViolation
// when a constructor is invoked.
type Option func(*Options)

// DefaultOptions returns Options with sane defaults: background
// context, no cone cap.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		MaxCones: 0,
		err:      nil,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxCones caps the cone enumeration inside OfDiagram.
//
//	n > 0: abort enumeration past n cones
//	n == 0: explicit no cap
//	n < 0: invalid option → ErrOptionViolation
func WithMaxCones(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxCones cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxCones = n
	}
}
