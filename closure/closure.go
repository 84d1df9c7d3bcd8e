package closure

import (
	"fmt"

	"github.com/blaster151/catlim/cat"
)

// Close computes the subcategory of ambient generated by the seed and
// extends the seed's image assignment to every generated arrow.
//
// The generated arrow set starts from the identities of the seed
// objects and the seed arrows, then grows by pairwise composition to a
// fixed point: for every composable pair of known arrows, the composite
// is taken in the ambient and its image is composed in the base. The
// set is monotone and bounded by the ambient's arrows, so the iteration
// terminates. A composite derived twice with images that disagree under
// the base Eq aborts with ErrInconsistentComposite naming the arrow;
// callers can therefore tell "cannot extend" (ambient or endpoint
// errors) from "extended but contradictory".
//
// Complexity: O(p·n²) compose calls for n generated arrows and p
// passes, p ≤ n.
func Close[I comparable, A comparable, O comparable, M any](
	ambient cat.Category[I, A],
	base cat.Category[O, M],
	seed Seed[I, A, O, M],
	opts ...Option,
) (*Result[I, A, O, M], error) {
	st, err := newState(ambient, base, seed, opts)
	if err != nil {
		return nil, err
	}

	// --- fixed point: compose every known pair, insert, repeat ---
	for {
		select {
		case <-st.opts.Ctx.Done():
			return nil, fmt.Errorf("closure: cancelled: %w", st.opts.Ctx.Err())
		default:
		}

		n := len(st.arrows)
		grew := false
		for fi := 0; fi < n; fi++ {
			f := st.arrows[fi]
			for gi := 0; gi < n; gi++ {
				g := st.arrows[gi]
				if ambient.Cod(f) != ambient.Dom(g) {
					continue
				}
				gf, err := ambient.Compose(g, f)
				if err != nil {
					return nil, fmt.Errorf("closure: ambient compose %v∘%v: %w", g, f, err)
				}
				img, err := base.Compose(st.images[g], st.images[f])
				if err != nil {
					return nil, fmt.Errorf("closure: base compose at %v∘%v: %w", g, f, err)
				}
				added, err := st.record(gf, img, ErrInconsistentComposite)
				if err != nil {
					return nil, err
				}
				grew = grew || added
			}
		}
		if !grew {
			break
		}
	}

	return st.result(), nil
}

// state is the mutable working set shared by Close and Saturate.
type state[I comparable, A comparable, O comparable, M any] struct {
	ambient cat.Category[I, A]
	base    cat.Category[O, M]
	opts    Options

	objects   []I
	onObjects map[I]O
	ids       map[I]A

	arrows []A
	images map[A]M

	ambientArrows map[A]struct{}
}

// newState validates options and seed data and installs identities and
// seed arrows, in seed order.
func newState[I comparable, A comparable, O comparable, M any](
	ambient cat.Category[I, A],
	base cat.Category[O, M],
	seed Seed[I, A, O, M],
	opts []Option,
) (*state[I, A, O, M], error) {
	if ambient == nil {
		return nil, ErrNilAmbient
	}
	if base == nil {
		return nil, ErrNilBase
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	st := &state[I, A, O, M]{
		ambient:       ambient,
		base:          base,
		opts:          o,
		onObjects:     make(map[I]O, len(seed.Objects)),
		ids:           make(map[I]A, len(seed.Objects)),
		images:        make(map[A]M),
		ambientArrows: make(map[A]struct{}),
	}
	for _, a := range ambient.Arrows() {
		st.ambientArrows[a] = struct{}{}
	}

	// --- 1. seed objects: membership, conflicts, identities ---
	for _, so := range seed.Objects {
		if !cat.HasObject(ambient, so.Index) {
			return nil, fmt.Errorf("%w: %v", ErrAmbientObject, so.Index)
		}
		if have, ok := st.onObjects[so.Index]; ok {
			if have != so.Image {
				return nil, fmt.Errorf("%w: object %v", ErrConflictingSeed, so.Index)
			}

			continue
		}
		st.onObjects[so.Index] = so.Image
		st.objects = append(st.objects, so.Index)

		id, err := ambient.Identity(so.Index)
		if err != nil {
			return nil, fmt.Errorf("closure: ambient identity at %v: %w", so.Index, err)
		}
		idImg, err := base.Identity(so.Image)
		if err != nil {
			return nil, fmt.Errorf("closure: base identity at %v: %w", so.Image, err)
		}
		st.ids[so.Index] = id
		if _, err := st.record(id, idImg, ErrConflictingSeed); err != nil {
			return nil, err
		}
	}

	// --- 2. seed arrows: membership, endpoint images, alignment ---
	for _, sa := range seed.Arrows {
		if _, ok := st.ambientArrows[sa.Arrow]; !ok {
			return nil, fmt.Errorf("%w: %v", ErrAmbientArrow, sa.Arrow)
		}
		from, to := ambient.Dom(sa.Arrow), ambient.Cod(sa.Arrow)
		fromImg, ok := st.onObjects[from]
		if !ok {
			return nil, fmt.Errorf("%w: %v at dom %v", ErrMissingObjectImage, sa.Arrow, from)
		}
		toImg, ok := st.onObjects[to]
		if !ok {
			return nil, fmt.Errorf("%w: %v at cod %v", ErrMissingObjectImage, sa.Arrow, to)
		}
		if base.Dom(sa.Image) != fromImg || base.Cod(sa.Image) != toImg {
			return nil, fmt.Errorf("%w: %v ↦ arrow %v→%v, want %v→%v",
				ErrEndpointMismatch, sa.Arrow, base.Dom(sa.Image), base.Cod(sa.Image), fromImg, toImg)
		}
		if _, err := st.record(sa.Arrow, sa.Image, ErrConflictingSeed); err != nil {
			return nil, err
		}
	}

	return st, nil
}

// record inserts one arrow image. A re-insertion with an Eq-equal image
// is a no-op; a disagreeing one fails with the supplied sentinel so seed
// conflicts and fixed-point inconsistencies stay distinguishable.
func (st *state[I, A, O, M]) record(a A, img M, conflict error) (bool, error) {
	if have, ok := st.images[a]; ok {
		if st.base.Eq(have, img) {
			return false, nil
		}

		return false, fmt.Errorf("%w: %v", conflict, a)
	}
	if st.opts.ArrowBound > 0 && len(st.arrows)+1 > st.opts.ArrowBound {
		return false, fmt.Errorf("%w: bound %d", ErrArrowBoundExceeded, st.opts.ArrowBound)
	}
	st.images[a] = img
	st.arrows = append(st.arrows, a)

	return true, nil
}

func (st *state[I, A, O, M]) result() *Result[I, A, O, M] {
	return &Result[I, A, O, M]{
		Objects:     st.objects,
		Arrows:      st.arrows,
		OnObjects:   st.onObjects,
		OnMorphisms: st.images,
		ambient:     st.ambient,
		base:        st.base,
		ids:         st.ids,
	}
}
