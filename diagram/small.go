package diagram

import (
	"errors"
	"fmt"
	"sync"

	"github.com/blaster151/catlim/cat"
)

var (
	// ErrNilSource is returned when a Source field or assignment
	// function is nil.
	ErrNilSource = errors.New("diagram: nil source function")
	// ErrBoundNonPositive is returned for a Materialize bound < 1.
	ErrBoundNonPositive = errors.New("diagram: materialisation bound must be positive")
	// ErrIndexBoundExceeded is returned when the source enumerates more
	// objects or arrows than the Materialize bound allows.
	ErrIndexBoundExceeded = errors.New("diagram: index enumeration exceeds bound")
)

// Source describes a shape category functionally: pull enumerators for
// objects and arrows plus identity, composition, and endpoint
// functions. Enumerators must be stable (same order every call) for
// the materialised diagram to be deterministic.
type Source[I comparable, A comparable] struct {
	Objects  func() []I
	Arrows   func() []A
	Identity func(I) A
	Compose  func(g, f A) (A, error)
	Dom      func(A) I
	Cod      func(A) I
}

// Small is a diagram whose shape and assignments are given as functions
// and only tabulated on demand. Materialize enforces a hard enumeration
// bound so an accidentally huge (or unbounded) source fails fast
// instead of hanging the combinatorial stages downstream.
type Small[I comparable, A comparable, O comparable, M any] struct {
	source     Source[I, A]
	base       cat.Category[O, M]
	onObject   func(I) (O, error)
	onMorphism func(A) (M, error)

	mu     sync.Mutex
	cached *Finite[I, A, O, M]
}

// NewSmall wraps a functional shape description and assignment pair.
// Nothing is enumerated or validated yet; that happens in Materialize.
func NewSmall[I comparable, A comparable, O comparable, M any](
	source Source[I, A],
	base cat.Category[O, M],
	onObject func(I) (O, error),
	onMorphism func(A) (M, error),
) (*Small[I, A, O, M], error) {
	if source.Objects == nil || source.Arrows == nil || source.Identity == nil ||
		source.Compose == nil || source.Dom == nil || source.Cod == nil {
		return nil, ErrNilSource
	}
	if onObject == nil || onMorphism == nil {
		return nil, fmt.Errorf("%w: assignment", ErrNilSource)
	}
	if base == nil {
		return nil, ErrNilBase
	}

	return &Small[I, A, O, M]{
		source:     source,
		base:       base,
		onObject:   onObject,
		onMorphism: onMorphism,
	}, nil
}

// Materialize tabulates the source into a certified finite shape,
// evaluates the assignments over its enumerations, and validates the
// result through New. A successful materialisation is memoised on the
// Small value; failures are not, so a retry with a larger bound can
// succeed.
//
// The bound caps the object count and the arrow count independently.
func (s *Small[I, A, O, M]) Materialize(bound int) (*Finite[I, A, O, M], error) {
	if bound < 1 {
		return nil, fmt.Errorf("%w: %d", ErrBoundNonPositive, bound)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}

	objects := s.source.Objects()
	if len(objects) > bound {
		return nil, fmt.Errorf("%w: %d objects, bound %d", ErrIndexBoundExceeded, len(objects), bound)
	}
	arrows := s.source.Arrows()
	if len(arrows) > bound {
		return nil, fmt.Errorf("%w: %d arrows, bound %d", ErrIndexBoundExceeded, len(arrows), bound)
	}

	shape, err := cat.FromFuncs(objects, arrows, s.source.Identity, s.source.Dom, s.source.Cod, s.source.Compose)
	if err != nil {
		return nil, fmt.Errorf("diagram: materialise shape: %w", err)
	}

	onObjects := make(map[I]O, len(objects))
	for _, i := range objects {
		o, err := s.onObject(i)
		if err != nil {
			return nil, fmt.Errorf("diagram: object assignment at %v: %w", i, err)
		}
		onObjects[i] = o
	}
	onMorphisms := make(map[A]M, len(arrows))
	for _, a := range arrows {
		m, err := s.onMorphism(a)
		if err != nil {
			return nil, fmt.Errorf("diagram: morphism assignment at %v: %w", a, err)
		}
		onMorphisms[a] = m
	}

	d, err := New[I, A, O, M](shape, s.base, onObjects, onMorphisms)
	if err != nil {
		return nil, err
	}
	s.cached = d

	return d, nil
}
