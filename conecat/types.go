package conecat

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNilDiagram is returned when a nil diagram is passed.
	ErrNilDiagram = errors.New("conecat: diagram is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("conecat: invalid option supplied")

	// ErrConeBoundExceeded is returned when enumeration finds more cones
	// than WithMaxCones allows.
	ErrConeBoundExceeded = errors.New("conecat: cone count exceeds bound")

	// ErrUnknownCone is returned for cone indices outside the
	// enumeration.
	ErrUnknownCone = errors.New("conecat: unknown cone index")

	// ErrNotComposable is returned by Compose when the arrows do not
	// meet end to end.
	ErrNotComposable = errors.New("conecat: arrows not composable")

	// ErrForeignArrow is returned by Compose when an input or the
	// composite is not an enumerated arrow of this category.
	ErrForeignArrow = errors.New("conecat: arrow not in this category")

	// ErrBaseIdentity is returned at construction when a tip's identity
	// never surfaces among the enumerated self-mediators, which means
	// the base category's enumeration or equality oracle is broken.
	ErrBaseIdentity = errors.New("conecat: base identity missing from hom-set")
)

// Arrow is one mediating morphism between two enumerated cones: the
// base morphism Mor runs from the tip of cone Src to the tip of cone
// Dst and commutes with both leg families.
type Arrow[M any] struct {
	Src, Dst int
	Mor      M
}

// Options holds parameters customizing cone enumeration.
type Options struct {
	// Ctx allows cancellation inside the enumeration loops.
	Ctx context.Context

	// MaxCones, if > 0, caps the number of enumerated cones.
	// A value of 0 explicitly disables the cap.
	MaxCones int

	// internal error recorded during option parsing
	err error
}

// Option configures enumeration via functional arguments. An invalid
// Option is recorded internally and surfaced as ErrOptionViolation when
// Cones or Cocones is invoked.
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

// WithMaxCones caps the enumerated cone count.
//
//	n > 0: abort with ErrConeBoundExceeded past n cones
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
