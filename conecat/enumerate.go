package conecat

import (
	"fmt"

	"github.com/blaster151/catlim/cat"
	"github.com/blaster151/catlim/diagram"
)

// family is the direction-neutral payload of an enumerated cone or
// cocone: an apex plus one leg per shape object.
type family[I comparable, O comparable, M any] struct {
	tip  O
	legs map[I]M
}

// homKey addresses mediating arrows by their cone endpoints.
type homKey struct {
	src, dst int
}

// enumeration is the shared core of Category and CoCategory: the
// deduplicated families, every mediating arrow in discovery order, the
// identity arrow position per family, and a hom index for fast lookup.
type enumeration[I comparable, A comparable, O comparable, M any] struct {
	d       *diagram.Finite[I, A, O, M]
	base    cat.Category[O, M]
	indices []I

	families []family[I, O, M]
	arrows   []Arrow[M]
	ids      []int
	hom      map[homKey][]Arrow[M]
}

// enumerate runs the full brute-force search. toDiagram selects cones
// (legs tip→image, triangle legs[j] ≈ D(a)∘legs[i]) versus cocones
// (legs image→tip, triangle legs[i] ≈ legs[j]∘D(a)).
func enumerate[I comparable, A comparable, O comparable, M any](
	d *diagram.Finite[I, A, O, M],
	opts []Option,
	toDiagram bool,
) (*enumeration[I, A, O, M], error) {
	if d == nil {
		return nil, ErrNilDiagram
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	shape, base := d.Shape(), d.Base()
	indices := shape.Objects()
	e := &enumeration[I, A, O, M]{
		d:       d,
		base:    base,
		indices: indices,
		hom:     make(map[homKey][]Arrow[M]),
	}

	images := make(map[I]O, len(indices))
	for _, i := range indices {
		img, err := d.Object(i)
		if err != nil {
			return nil, err
		}
		images[i] = img
	}
	shapeArrows := shape.Arrows()
	mors := make(map[A]M, len(shapeArrows))
	for _, a := range shapeArrows {
		m, err := d.Morphism(a)
		if err != nil {
			return nil, err
		}
		mors[a] = m
	}

	// --- 1. families: per tip, odometer over candidate legs ---
	for _, tip := range base.Objects() {
		candidates := make([][]M, len(indices))
		empty := false
		for j, i := range indices {
			if toDiagram {
				candidates[j] = cat.Hom(base, tip, images[i])
			} else {
				candidates[j] = cat.Hom(base, images[i], tip)
			}
			if len(candidates[j]) == 0 {
				empty = true
				break
			}
		}
		if empty {
			continue
		}

		counts := make([]int, len(indices))
		for {
			select {
			case <-o.Ctx.Done():
				return nil, fmt.Errorf("conecat: cancelled: %w", o.Ctx.Err())
			default:
			}

			legs := make(map[I]M, len(indices))
			for j, i := range indices {
				legs[i] = candidates[j][counts[j]]
			}
			if e.commutes(legs, shape, mors, toDiagram) && !e.seen(tip, legs) {
				if o.MaxCones > 0 && len(e.families)+1 > o.MaxCones {
					return nil, fmt.Errorf("%w: bound %d", ErrConeBoundExceeded, o.MaxCones)
				}
				e.families = append(e.families, family[I, O, M]{tip: tip, legs: legs})
			}

			// advance the odometer, rightmost digit fastest
			j := len(indices) - 1
			for ; j >= 0; j-- {
				counts[j]++
				if counts[j] < len(candidates[j]) {
					break
				}
				counts[j] = 0
			}
			if j < 0 {
				break
			}
		}
	}

	// --- 2. mediators: every base arrow between every tip pair ---
	e.ids = make([]int, len(e.families))
	for i := range e.ids {
		e.ids[i] = -1
	}
	for src := range e.families {
		fs := &e.families[src]
		idTip, err := base.Identity(fs.tip)
		if err != nil {
			return nil, fmt.Errorf("conecat: identity at tip %v: %w", fs.tip, err)
		}
		for dst := range e.families {
			select {
			case <-o.Ctx.Done():
				return nil, fmt.Errorf("conecat: cancelled: %w", o.Ctx.Err())
			default:
			}

			fd := &e.families[dst]
			k := homKey{src: src, dst: dst}
			for _, h := range cat.Hom(base, fs.tip, fd.tip) {
				if !e.mediates(h, fs, fd, toDiagram) {
					continue
				}
				// hom-sets stay duplicate-free under Eq, or the
				// exactly-one terminality count would be inflated by
				// non-canonical base enumerations
				dup := false
				for _, prev := range e.hom[k] {
					if base.Eq(prev.Mor, h) {
						dup = true
						break
					}
				}
				if dup {
					if src == dst && e.ids[src] < 0 && base.Eq(h, idTip) {
						for i, prev := range e.arrows {
							if prev.Src == src && prev.Dst == dst && base.Eq(prev.Mor, h) {
								e.ids[src] = i
								break
							}
						}
					}
					continue
				}
				if src == dst && e.ids[src] < 0 && base.Eq(h, idTip) {
					e.ids[src] = len(e.arrows)
				}
				arr := Arrow[M]{Src: src, Dst: dst, Mor: h}
				e.arrows = append(e.arrows, arr)
				e.hom[k] = append(e.hom[k], arr)
			}
		}
	}
	for i, id := range e.ids {
		if id < 0 {
			return nil, fmt.Errorf("%w: cone %d", ErrBaseIdentity, i)
		}
	}

	return e, nil
}

// commutes reports whether the leg family closes every shape arrow's
// triangle. A composition failure counts as non-commuting.
func (e *enumeration[I, A, O, M]) commutes(
	legs map[I]M,
	shape cat.Category[I, A],
	mors map[A]M,
	toDiagram bool,
) bool {
	for _, a := range shape.Arrows() {
		from, to := shape.Dom(a), shape.Cod(a)
		if toDiagram {
			comp, err := e.base.Compose(mors[a], legs[from])
			if err != nil || !e.base.Eq(legs[to], comp) {
				return false
			}
		} else {
			comp, err := e.base.Compose(legs[to], mors[a])
			if err != nil || !e.base.Eq(legs[from], comp) {
				return false
			}
		}
	}

	return true
}

// seen reports whether an Eq-equal family with the same tip was already
// accepted.
func (e *enumeration[I, A, O, M]) seen(tip O, legs map[I]M) bool {
	for _, f := range e.families {
		if f.tip != tip {
			continue
		}
		match := true
		for _, i := range e.indices {
			if !e.base.Eq(f.legs[i], legs[i]) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}

	return false
}

// mediates reports whether h closes both leg-family triangles: for
// cones, dst.legs[i]∘h ≈ src.legs[i] per index; for cocones,
// h∘src.legs[i] ≈ dst.legs[i].
func (e *enumeration[I, A, O, M]) mediates(h M, fs, fd *family[I, O, M], toDiagram bool) bool {
	for _, i := range e.indices {
		if toDiagram {
			comp, err := e.base.Compose(fd.legs[i], h)
			if err != nil || !e.base.Eq(comp, fs.legs[i]) {
				return false
			}
		} else {
			comp, err := e.base.Compose(h, fs.legs[i])
			if err != nil || !e.base.Eq(comp, fd.legs[i]) {
				return false
			}
		}
	}

	return true
}
