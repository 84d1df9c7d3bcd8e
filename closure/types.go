package closure

import (
	"context"
	"errors"
	"fmt"

	"github.com/blaster151/catlim/cat"
	"github.com/blaster151/catlim/diagram"
)

var (
	// ErrNilAmbient is returned if a nil ambient shape category is passed.
	ErrNilAmbient = errors.New("closure: ambient category is nil")

	// ErrNilBase is returned if a nil base category is passed.
	ErrNilBase = errors.New("closure: base category is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("closure: invalid option supplied")

	// ErrAmbientObject is returned when a seed index is not an object of
	// the ambient category.
	ErrAmbientObject = errors.New("closure: seed object not in ambient category")

	// ErrAmbientArrow is returned when a seed arrow is not an arrow of
	// the ambient category.
	ErrAmbientArrow = errors.New("closure: seed arrow not in ambient category")

	// ErrMissingObjectImage is returned when a seed arrow's endpoint
	// carries no object image.
	ErrMissingObjectImage = errors.New("closure: seed arrow endpoint lacks an object image")

	// ErrEndpointMismatch is returned when a seed arrow's image does not
	// run between the images of the arrow's endpoints.
	ErrEndpointMismatch = errors.New("closure: seed image endpoints disagree with object images")

	// ErrConflictingSeed is returned when the seed assigns two different
	// images to the same index or arrow.
	ErrConflictingSeed = errors.New("closure: seed assigns conflicting images")

	// ErrInconsistentComposite is returned when two derivations of the
	// same closure arrow produce images that disagree under the base
	// equality oracle.
	ErrInconsistentComposite = errors.New("closure: inconsistent composite image")

	// ErrArrowBoundExceeded is returned when the generated arrow set
	// outgrows the WithArrowBound cap.
	ErrArrowBoundExceeded = errors.New("closure: generated arrows exceed bound")

	// ErrAmbientNotThin is returned by Saturate when the ambient has two
	// arrows between the same ordered object pair.
	ErrAmbientNotThin = errors.New("closure: ambient category is not thin")
)

// SeedObject assigns a base image to one ambient index.
type SeedObject[I comparable, O comparable] struct {
	Index I
	Image O
}

// SeedArrow assigns a base image to one ambient arrow.
type SeedArrow[A comparable, M any] struct {
	Arrow A
	Image M
}

// Seed is the ordered partial assignment Close and Saturate extend.
// Every seed arrow's endpoints must appear among the seed objects.
type Seed[I comparable, A comparable, O comparable, M any] struct {
	Objects []SeedObject[I, O]
	Arrows  []SeedArrow[A, M]
}

// Options holds parameters customizing closure computation.
type Options struct {
	// Ctx allows cancellation between fixed-point passes (Close) and
	// between start objects (Saturate).
	Ctx context.Context

	// ArrowBound, if > 0, caps the number of generated arrows.
	// A value of 0 explicitly disables the cap.
	ArrowBound int

	// internal error recorded during option parsing
	err error
}

// Option configures closure behavior via functional arguments.
// An invalid Option is recorded internally and surfaced as
// ErrOptionViolation when Close or Saturate is invoked.
type Option func(*Options)

// DefaultOptions returns Options with sane defaults: background
// context, no arrow bound.
func DefaultOptions() Options {
	return Options{
		Ctx:        context.Background(),
		ArrowBound: 0,
		err:        nil,
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

// WithArrowBound caps the generated arrow set.
//
//	n > 0: abort with ErrArrowBoundExceeded past n arrows
//	n == 0: explicit no cap
//	n < 0: invalid option → ErrOptionViolation
func WithArrowBound(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: ArrowBound cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.ArrowBound = n
	}
}

// Result is the generated subcategory plus the extended assignment.
// Objects and Arrows are in deterministic append order; OnObjects and
// OnMorphisms cover exactly those slices.
type Result[I comparable, A comparable, O comparable, M any] struct {
	Objects     []I
	Arrows      []A
	OnObjects   map[I]O
	OnMorphisms map[A]M

	ambient cat.Category[I, A]
	base    cat.Category[O, M]
	ids     map[I]A
}

// Diagram tabulates the generated sub-shape into a certified finite
// category and wraps both assignments as a validated diagram.Finite.
// The tabulation re-checks closure (a composite escaping the generated
// arrow set fails) and diagram.New re-checks functoriality, so a
// Diagram call is a full audit of the closure output; in particular it
// catches non-functorial assignments a trust-mode Saturate let through.
func (r *Result[I, A, O, M]) Diagram() (*diagram.Finite[I, A, O, M], error) {
	shape, err := cat.FromFuncs(
		r.Objects,
		r.Arrows,
		func(i I) A { return r.ids[i] },
		r.ambient.Dom,
		r.ambient.Cod,
		r.ambient.Compose,
	)
	if err != nil {
		return nil, fmt.Errorf("closure: tabulating generated shape: %w", err)
	}

	return diagram.New[I, A, O, M](shape, r.base, r.OnObjects, r.OnMorphisms)
}
