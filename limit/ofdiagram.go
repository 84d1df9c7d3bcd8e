package limit

import (
	"fmt"

	"github.com/blaster151/catlim/cat"
	"github.com/blaster151/catlim/cone"
	"github.com/blaster151/catlim/conecat"
	"github.com/blaster151/catlim/diagram"
)

// OfDiagramResult pairs the canonical limit with its brute-force
// certification: the full cone category, the canonical cone's position
// in it, and the terminality report stating it is the limit.
type OfDiagramResult[I comparable, A comparable, O comparable, M any] struct {
	Limit        *Limit[I, A, O, M]
	ConeCategory *conecat.Category[I, A, O, M]
	Terminality  cat.UniversalReport[int, conecat.Arrow[M]]

	index int
}

// OfDiagram builds the canonical limit, enumerates the full cone
// category, locates the canonical cone among the enumerated ones, and
// certifies its terminality. The terminality outcome is a report in
// the result, not an error: callers assert Holds.
//
// The enumeration honors WithContext and WithMaxCones. A canonical
// cone missing from the enumeration is ErrConeNotEnumerated, an
// invariant violation pointing at the caller's oracles.
func OfDiagram[I comparable, A comparable, O comparable, M any](
	d *diagram.Finite[I, A, O, M],
	prods Products[O, M],
	eqs Equalizers[O, M],
	opts ...Option,
) (*OfDiagramResult[I, A, O, M], error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	lim, err := FromProductsAndEqualizers(d, prods, eqs, opts...)
	if err != nil {
		return nil, err
	}
	cc, err := conecat.Cones(d, conecat.WithContext(o.Ctx), conecat.WithMaxCones(o.MaxCones))
	if err != nil {
		return nil, err
	}
	idx, ok := cc.IndexOf(lim.Cone())
	if !ok {
		return nil, fmt.Errorf("%w: canonical limit cone at tip %v", ErrConeNotEnumerated, lim.Tip())
	}
	rep, err := cc.Terminality(idx)
	if err != nil {
		return nil, err
	}

	return &OfDiagramResult[I, A, O, M]{
		Limit:        lim,
		ConeCategory: cc,
		Terminality:  rep,
		index:        idx,
	}, nil
}

// Index returns the canonical cone's position in the enumeration.
func (r *OfDiagramResult[I, A, O, M]) Index() int { return r.index }

// Factor mediates a candidate cone through the limit twice: once via
// the equalizer oracle and once via the enumerated hom-set to the
// canonical cone, then cross-checks the two under the base equality.
//
// An invalid candidate is a declined Factorization, as both paths
// agree nothing can factor. Once the candidate is certified valid,
// any divergence between the paths is an error, never silently
// resolved: a valid cone missing from the enumeration is
// ErrConeNotEnumerated; a hom-set without exactly one mediator, an
// oracle decline, or disagreeing mediators is ErrMediatorMismatch.
func (r *OfDiagramResult[I, A, O, M]) Factor(c cone.Cone[I, A, O, M]) (Factorization[M], error) {
	var zero Factorization[M]
	if c.D != r.Limit.d {
		return Factorization[M]{Reason: "limit: candidate is not attached to this limit's diagram"}, nil
	}
	if v := cone.Quick(c); !v.Holds {
		return Factorization[M]{Reason: v.Reason}, nil
	}

	// --- 1. enumeration-based mediator ---
	idx, ok := r.ConeCategory.IndexOf(c)
	if !ok {
		return zero, fmt.Errorf("%w: candidate at tip %v", ErrConeNotEnumerated, c.Tip)
	}
	homs := r.ConeCategory.Hom(idx, r.index)
	if len(homs) != 1 {
		return zero, fmt.Errorf("%w: %d enumerated mediators from cone %d, want exactly 1",
			ErrMediatorMismatch, len(homs), idx)
	}
	enumerated := homs[0].Mor

	// --- 2. equalizer-based mediator ---
	f := r.Limit.Factor(c)
	if !f.Factored {
		return zero, fmt.Errorf("%w: equalizer path declined an enumerated cone: %s",
			ErrMediatorMismatch, f.Reason)
	}

	// --- 3. cross-check ---
	if !r.Limit.base.Eq(f.Mediator, enumerated) {
		return zero, fmt.Errorf("%w: equalizer path and enumeration disagree for cone %d",
			ErrMediatorMismatch, idx)
	}

	return f, nil
}

// ColimitOfDiagramResult pairs the canonical colimit with its dual
// certification: the cocone category, the canonical cocone's position,
// and the initiality report.
type ColimitOfDiagramResult[I comparable, A comparable, O comparable, M any] struct {
	Colimit        *Colimit[I, A, O, M]
	CoconeCategory *conecat.CoCategory[I, A, O, M]
	Initiality     cat.UniversalReport[int, conecat.Arrow[M]]

	index int
}

// ColimitOfDiagram is the exact dual of OfDiagram.
func ColimitOfDiagram[I comparable, A comparable, O comparable, M any](
	d *diagram.Finite[I, A, O, M],
	coprods Coproducts[O, M],
	coeqs Coequalizers[O, M],
	opts ...Option,
) (*ColimitOfDiagramResult[I, A, O, M], error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	col, err := FromCoproductsAndCoequalizers(d, coprods, coeqs, opts...)
	if err != nil {
		return nil, err
	}
	cc, err := conecat.Cocones(d, conecat.WithContext(o.Ctx), conecat.WithMaxCones(o.MaxCones))
	if err != nil {
		return nil, err
	}
	idx, ok := cc.IndexOf(col.Cocone())
	if !ok {
		return nil, fmt.Errorf("%w: canonical colimit cocone at tip %v", ErrConeNotEnumerated, col.Tip())
	}
	rep, err := cc.Initiality(idx)
	if err != nil {
		return nil, err
	}

	return &ColimitOfDiagramResult[I, A, O, M]{
		Colimit:        col,
		CoconeCategory: cc,
		Initiality:     rep,
		index:          idx,
	}, nil
}

// Index returns the canonical cocone's position in the enumeration.
func (r *ColimitOfDiagramResult[I, A, O, M]) Index() int { return r.index }

// Factor is the dual of (*OfDiagramResult).Factor: the enumerated
// mediator runs from the canonical cocone to the candidate.
func (r *ColimitOfDiagramResult[I, A, O, M]) Factor(c cone.Cocone[I, A, O, M]) (Factorization[M], error) {
	var zero Factorization[M]
	if c.D != r.Colimit.d {
		return Factorization[M]{Reason: "limit: candidate is not attached to this colimit's diagram"}, nil
	}
	if v := cone.QuickCocone(c); !v.Holds {
		return Factorization[M]{Reason: v.Reason}, nil
	}

	idx, ok := r.CoconeCategory.IndexOf(c)
	if !ok {
		return zero, fmt.Errorf("%w: candidate at tip %v", ErrConeNotEnumerated, c.CoTip)
	}
	homs := r.CoconeCategory.Hom(r.index, idx)
	if len(homs) != 1 {
		return zero, fmt.Errorf("%w: %d enumerated mediators to cocone %d, want exactly 1",
			ErrMediatorMismatch, len(homs), idx)
	}
	enumerated := homs[0].Mor

	f := r.Colimit.Factor(c)
	if !f.Factored {
		return zero, fmt.Errorf("%w: coequalizer path declined an enumerated cocone: %s",
			ErrMediatorMismatch, f.Reason)
	}

	if !r.Colimit.base.Eq(f.Mediator, enumerated) {
		return zero, fmt.Errorf("%w: coequalizer path and enumeration disagree for cocone %d",
			ErrMediatorMismatch, idx)
	}

	return f, nil
}
