package diagram

import (
	"errors"
	"fmt"

	"github.com/blaster151/catlim/cat"
)

var (
	// ErrNilShape is returned when the shape category is nil.
	ErrNilShape = errors.New("diagram: nil shape category")
	// ErrNilBase is returned when the base category is nil.
	ErrNilBase = errors.New("diagram: nil base category")
	// ErrMissingObjectImage is returned when a shape object has no image.
	ErrMissingObjectImage = errors.New("diagram: shape object lacks an image")
	// ErrMissingArrowImage is returned when a shape arrow has no image.
	ErrMissingArrowImage = errors.New("diagram: shape arrow lacks an image")
	// ErrForeignIndex is returned when the object assignment keys
	// indices outside the shape.
	ErrForeignIndex = errors.New("diagram: object assignment keys indices outside the shape")
	// ErrForeignArrow is returned when the morphism assignment keys
	// arrows outside the shape.
	ErrForeignArrow = errors.New("diagram: morphism assignment keys arrows outside the shape")
	// ErrImageNotInBase is returned when an object image is not an
	// enumerated object of the base.
	ErrImageNotInBase = errors.New("diagram: object image not present in the base category")
	// ErrEndpointMismatch is returned when an arrow image's endpoints
	// disagree with the images of the arrow's shape endpoints.
	ErrEndpointMismatch = errors.New("diagram: arrow image endpoints disagree with object images")
	// ErrIdentityNotPreserved is returned when a shape identity maps to
	// anything but the identity of the object image.
	ErrIdentityNotPreserved = errors.New("diagram: identity image differs from identity of image")
	// ErrCompositionNotPreserved is returned when the image of a
	// composite differs from the composite of the images.
	ErrCompositionNotPreserved = errors.New("diagram: composite image differs from composite of images")
	// ErrUnknownIndex is returned by accessors for indices the shape
	// does not contain.
	ErrUnknownIndex = errors.New("diagram: index not present in the shape")
)

// Finite is a validated functor from a finite shape category into a
// base category: every shape object i has an image D(i), every shape
// arrow a: i→j has an image D(a): D(i)→D(j), identities map to
// identities, and composites map to composites (up to the base Eq).
// Finite values are immutable; the assignments are copied at
// construction and never exposed for mutation.
type Finite[I comparable, A comparable, O comparable, M any] struct {
	shape       cat.Category[I, A]
	base        cat.Category[O, M]
	onObjects   map[I]O
	onMorphisms map[A]M
}

// New validates the assignment pair as a functor and wraps it. The
// checks run in a fixed order so the first defect reported is
// deterministic: totality over shape objects, object-image membership,
// totality over shape arrows, endpoint alignment per arrow, identity
// preservation per object, composition preservation per composable
// pair.
//
// Complexity: O(|shape arrows|²) compose calls for the final stage.
func New[I comparable, A comparable, O comparable, M any](
	shape cat.Category[I, A],
	base cat.Category[O, M],
	onObjects map[I]O,
	onMorphisms map[A]M,
) (*Finite[I, A, O, M], error) {
	if shape == nil {
		return nil, ErrNilShape
	}
	if base == nil {
		return nil, ErrNilBase
	}

	objects := shape.Objects()
	arrows := shape.Arrows()

	// --- 1. Object assignment: total, no foreign keys, images in base ---
	for _, i := range objects {
		o, ok := onObjects[i]
		if !ok {
			return nil, fmt.Errorf("%w: %v", ErrMissingObjectImage, i)
		}
		if !cat.HasObject(base, o) {
			return nil, fmt.Errorf("%w: %v ↦ %v", ErrImageNotInBase, i, o)
		}
	}
	if len(onObjects) != len(objects) {
		return nil, fmt.Errorf("%w: %d keys for %d shape objects", ErrForeignIndex, len(onObjects), len(objects))
	}

	// --- 2. Morphism assignment: total, no foreign keys ---
	for _, a := range arrows {
		if _, ok := onMorphisms[a]; !ok {
			return nil, fmt.Errorf("%w: %v", ErrMissingArrowImage, a)
		}
	}
	if len(onMorphisms) != len(arrows) {
		return nil, fmt.Errorf("%w: %d keys for %d shape arrows", ErrForeignArrow, len(onMorphisms), len(arrows))
	}

	// --- 3. Endpoint alignment per arrow ---
	for _, a := range arrows {
		img := onMorphisms[a]
		wantDom := onObjects[shape.Dom(a)]
		wantCod := onObjects[shape.Cod(a)]
		if base.Dom(img) != wantDom || base.Cod(img) != wantCod {
			return nil, fmt.Errorf("%w: %v ↦ arrow %v→%v, want %v→%v",
				ErrEndpointMismatch, a, base.Dom(img), base.Cod(img), wantDom, wantCod)
		}
	}

	// --- 4. Identity preservation ---
	for _, i := range objects {
		shapeID, err := shape.Identity(i)
		if err != nil {
			return nil, fmt.Errorf("diagram: shape identity at %v: %w", i, err)
		}
		baseID, err := base.Identity(onObjects[i])
		if err != nil {
			return nil, fmt.Errorf("diagram: base identity at %v: %w", onObjects[i], err)
		}
		if !base.Eq(onMorphisms[shapeID], baseID) {
			return nil, fmt.Errorf("%w: at %v", ErrIdentityNotPreserved, i)
		}
	}

	// --- 5. Composition preservation per composable pair ---
	for _, f := range arrows {
		for _, g := range arrows {
			if shape.Cod(f) != shape.Dom(g) {
				continue
			}
			gf, err := shape.Compose(g, f)
			if err != nil {
				return nil, fmt.Errorf("diagram: shape compose %v∘%v: %w", g, f, err)
			}
			img, err := base.Compose(onMorphisms[g], onMorphisms[f])
			if err != nil {
				return nil, fmt.Errorf("diagram: base compose at %v∘%v: %w", g, f, err)
			}
			if !base.Eq(onMorphisms[gf], img) {
				return nil, fmt.Errorf("%w: at %v∘%v", ErrCompositionNotPreserved, g, f)
			}
		}
	}

	d := &Finite[I, A, O, M]{
		shape:       shape,
		base:        base,
		onObjects:   make(map[I]O, len(onObjects)),
		onMorphisms: make(map[A]M, len(onMorphisms)),
	}
	for i, o := range onObjects {
		d.onObjects[i] = o
	}
	for a, m := range onMorphisms {
		d.onMorphisms[a] = m
	}

	return d, nil
}

// Shape returns the index category.
func (d *Finite[I, A, O, M]) Shape() cat.Category[I, A] { return d.shape }

// Base returns the target category.
func (d *Finite[I, A, O, M]) Base() cat.Category[O, M] { return d.base }

// Object returns the base object assigned to shape object i.
func (d *Finite[I, A, O, M]) Object(i I) (O, error) {
	o, ok := d.onObjects[i]
	if !ok {
		var zero O
		return zero, fmt.Errorf("%w: object %v", ErrUnknownIndex, i)
	}

	return o, nil
}

// Morphism returns the base morphism assigned to shape arrow a.
func (d *Finite[I, A, O, M]) Morphism(a A) (M, error) {
	m, ok := d.onMorphisms[a]
	if !ok {
		var zero M
		return zero, fmt.Errorf("%w: arrow %v", ErrUnknownIndex, a)
	}

	return m, nil
}

// Restrict builds the diagram induced on the full sub-shape spanned by
// the given indices: kept objects in the given order, kept arrows in
// shape order, assignments filtered accordingly. The restriction of a
// functor is a functor, but the result is revalidated through New so a
// Restrict output carries the same guarantee as any other Finite.
func (d *Finite[I, A, O, M]) Restrict(indices []I) (*Finite[I, A, O, M], error) {
	sub, err := cat.FullSub[I, A](d.shape, indices)
	if err != nil {
		return nil, fmt.Errorf("diagram: restrict: %w", err)
	}

	onObjects := make(map[I]O, len(sub.Objects()))
	for _, i := range sub.Objects() {
		onObjects[i] = d.onObjects[i]
	}
	onMorphisms := make(map[A]M, len(sub.Arrows()))
	for _, a := range sub.Arrows() {
		onMorphisms[a] = d.onMorphisms[a]
	}

	return New[I, A, O, M](sub, d.base, onObjects, onMorphisms)
}
