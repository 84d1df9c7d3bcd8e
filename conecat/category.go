package conecat

import (
	"fmt"

	"github.com/blaster151/catlim/cat"
	"github.com/blaster151/catlim/cone"
	"github.com/blaster151/catlim/diagram"
)

// Category is the category of cones over one diagram. Objects are
// dense cone indices in enumeration order; arrows are mediating
// morphisms. It implements cat.Category[int, Arrow[M]].
type Category[I comparable, A comparable, O comparable, M any] struct {
	*enumeration[I, A, O, M]
}

// CoCategory is the category of cocones over one diagram, dual to
// Category in every respect.
type CoCategory[I comparable, A comparable, O comparable, M any] struct {
	*enumeration[I, A, O, M]
}

// Cones enumerates every valid cone over d and every mediating arrow
// between them.
//
// Complexity: O(|base objects| · h^k) leg combinations for hom-sets of
// size h over k shape objects, plus O(n² · |base arrows|) mediator
// scans for n cones.
func Cones[I comparable, A comparable, O comparable, M any](
	d *diagram.Finite[I, A, O, M],
	opts ...Option,
) (*Category[I, A, O, M], error) {
	e, err := enumerate(d, opts, true)
	if err != nil {
		return nil, err
	}

	return &Category[I, A, O, M]{enumeration: e}, nil
}

// Cocones is the dual of Cones.
func Cocones[I comparable, A comparable, O comparable, M any](
	d *diagram.Finite[I, A, O, M],
	opts ...Option,
) (*CoCategory[I, A, O, M], error) {
	e, err := enumerate(d, opts, false)
	if err != nil {
		return nil, err
	}

	return &CoCategory[I, A, O, M]{enumeration: e}, nil
}

// Objects returns the dense cone indices 0..Len()-1.
func (e *enumeration[I, A, O, M]) Objects() []int {
	out := make([]int, len(e.families))
	for i := range out {
		out[i] = i
	}

	return out
}

// Arrows returns every mediating arrow in discovery order. The slice is
// a copy.
func (e *enumeration[I, A, O, M]) Arrows() []Arrow[M] {
	out := make([]Arrow[M], len(e.arrows))
	copy(out, e.arrows)

	return out
}

// Identity returns the identity mediator of one cone.
func (e *enumeration[I, A, O, M]) Identity(o int) (Arrow[M], error) {
	if o < 0 || o >= len(e.families) {
		var zero Arrow[M]
		return zero, fmt.Errorf("%w: %d", ErrUnknownCone, o)
	}

	return e.arrows[e.ids[o]], nil
}

// Compose composes two mediators and returns the enumerated
// representative of the composite. Mediators are closed under
// composition, so a missing representative means an input did not come
// from this category.
func (e *enumeration[I, A, O, M]) Compose(g, f Arrow[M]) (Arrow[M], error) {
	var zero Arrow[M]
	if f.Dst != g.Src {
		return zero, fmt.Errorf("%w: %d→%d then %d→%d", ErrNotComposable, f.Src, f.Dst, g.Src, g.Dst)
	}
	mor, err := e.base.Compose(g.Mor, f.Mor)
	if err != nil {
		return zero, fmt.Errorf("conecat: base compose: %w", err)
	}
	for _, a := range e.hom[homKey{src: f.Src, dst: g.Dst}] {
		if e.base.Eq(a.Mor, mor) {
			return a, nil
		}
	}

	return zero, fmt.Errorf("%w: composite %d→%d", ErrForeignArrow, f.Src, g.Dst)
}

// Eq compares mediators: same endpoints, base-equal morphisms.
func (e *enumeration[I, A, O, M]) Eq(a, b Arrow[M]) bool {
	return a.Src == b.Src && a.Dst == b.Dst && e.base.Eq(a.Mor, b.Mor)
}

// Dom returns the source cone index.
func (e *enumeration[I, A, O, M]) Dom(m Arrow[M]) int { return m.Src }

// Cod returns the destination cone index.
func (e *enumeration[I, A, O, M]) Cod(m Arrow[M]) int { return m.Dst }

// Hom returns the mediators from cone x to cone y in discovery order.
// The slice is a copy. It also serves as the cat.HomEnumerator fast
// path.
func (e *enumeration[I, A, O, M]) Hom(x, y int) []Arrow[M] {
	src := e.hom[homKey{src: x, dst: y}]
	out := make([]Arrow[M], len(src))
	copy(out, src)

	return out
}

// Len returns the number of enumerated cones.
func (e *enumeration[I, A, O, M]) Len() int { return len(e.families) }

// Diagram returns the diagram the cones were enumerated over.
func (e *enumeration[I, A, O, M]) Diagram() *diagram.Finite[I, A, O, M] { return e.d }

// index locates a family by apex and leg-family equality.
func (e *enumeration[I, A, O, M]) index(tip O, legs map[I]M) (int, bool) {
	if len(legs) != len(e.indices) {
		return 0, false
	}
	for n, f := range e.families {
		if f.tip != tip {
			continue
		}
		match := true
		for _, i := range e.indices {
			leg, ok := legs[i]
			if !ok || !e.base.Eq(f.legs[i], leg) {
				match = false
				break
			}
		}
		if match {
			return n, true
		}
	}

	return 0, false
}

// legsCopy materializes one family's legs for external hands.
func (e *enumeration[I, A, O, M]) legsCopy(n int) map[I]M {
	out := make(map[I]M, len(e.families[n].legs))
	for i, m := range e.families[n].legs {
		out[i] = m
	}

	return out
}

// Cone materializes the enumerated cone at index i.
func (c *Category[I, A, O, M]) Cone(i int) (cone.Cone[I, A, O, M], error) {
	if i < 0 || i >= len(c.families) {
		return cone.Cone[I, A, O, M]{}, fmt.Errorf("%w: %d", ErrUnknownCone, i)
	}

	return cone.Cone[I, A, O, M]{
		Tip:  c.families[i].tip,
		Legs: c.legsCopy(i),
		D:    c.d,
	}, nil
}

// IndexOf locates a cone by tip and leg-family equality under the base
// oracle. The attached diagram is not compared.
func (c *Category[I, A, O, M]) IndexOf(x cone.Cone[I, A, O, M]) (int, bool) {
	return c.index(x.Tip, x.Legs)
}

// Terminality certifies whether the cone at candidate is terminal,
// that is, whether it is the limit. Failures are reported per cone with
// the offending morphism sets; only an unknown index is an error.
func (c *Category[I, A, O, M]) Terminality(candidate int) (cat.UniversalReport[int, Arrow[M]], error) {
	return cat.CheckTerminal[int, Arrow[M]](c, candidate)
}

// Cocone materializes the enumerated cocone at index i.
func (c *CoCategory[I, A, O, M]) Cocone(i int) (cone.Cocone[I, A, O, M], error) {
	if i < 0 || i >= len(c.families) {
		return cone.Cocone[I, A, O, M]{}, fmt.Errorf("%w: %d", ErrUnknownCone, i)
	}

	return cone.Cocone[I, A, O, M]{
		CoTip: c.families[i].tip,
		Legs:  c.legsCopy(i),
		D:     c.d,
	}, nil
}

// IndexOf locates a cocone by apex and leg-family equality under the
// base oracle.
func (c *CoCategory[I, A, O, M]) IndexOf(x cone.Cocone[I, A, O, M]) (int, bool) {
	return c.index(x.CoTip, x.Legs)
}

// Initiality certifies whether the cocone at candidate is initial,
// that is, whether it is the colimit.
func (c *CoCategory[I, A, O, M]) Initiality(candidate int) (cat.UniversalReport[int, Arrow[M]], error) {
	return cat.CheckInitial[int, Arrow[M]](c, candidate)
}
