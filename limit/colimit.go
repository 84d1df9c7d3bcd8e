package limit

import (
	"fmt"

	"github.com/blaster151/catlim/cat"
	"github.com/blaster151/catlim/cone"
	"github.com/blaster151/catlim/diagram"
)

// Colimit is a canonical colimit: the coequalizer of the two parallel
// composites collecting every diagram arrow's constraint out of the
// coproduct of the diagram's object images. Dual of Limit throughout.
type Colimit[I comparable, A comparable, O comparable, M any] struct {
	d    *diagram.Finite[I, A, O, M]
	base cat.Category[O, M]

	indices []I
	tip     O
	legs    map[I]M

	coprod Coproduct[O, M]
	coeq   Coequalizer[O, M]
	left   M
	right  M
	step   bool

	coprods Coproducts[O, M]
	coeqs   Coequalizers[O, M]
}

// FromCoproductsAndCoequalizers builds the canonical colimit of d, the
// exact dual of FromProductsAndEqualizers: coproduct S over the object
// images with injections ι_i; per non-identity shape arrow a: i→j the
// parallel composites ι_j∘D(a) and ι_i, cotupled out of the coproduct
// of the arrow-source images; the coequalizer of that pair. The
// coequalizer object is the colimit tip and projection∘ι_i are its
// legs.
func FromCoproductsAndCoequalizers[I comparable, A comparable, O comparable, M any](
	d *diagram.Finite[I, A, O, M],
	coprods Coproducts[O, M],
	coeqs Coequalizers[O, M],
	opts ...Option,
) (*Colimit[I, A, O, M], error) {
	if d == nil {
		return nil, ErrNilDiagram
	}
	if coprods == nil || coeqs == nil {
		return nil, ErrNilTrait
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
	l := &Colimit[I, A, O, M]{
		d:       d,
		base:    base,
		indices: indices,
		coprods: coprods,
		coeqs:   coeqs,
	}

	// --- 1. coproduct over the diagram's object images ---
	factors := make([]O, len(indices))
	for k, i := range indices {
		img, err := d.Object(i)
		if err != nil {
			return nil, err
		}
		factors[k] = img
	}
	coprod, err := coprods.Coproduct(factors)
	if err != nil {
		return nil, fmt.Errorf("limit: coproduct oracle: %w", err)
	}
	if err := certifyCoproduct(base, coprod, factors, ErrUncertifiedColimit); err != nil {
		return nil, err
	}
	l.coprod = coprod
	inj := make(map[I]M, len(indices))
	for k, i := range indices {
		inj[i] = coprod.Injections[k]
	}

	if err := cancelled(o.Ctx); err != nil {
		return nil, err
	}

	// --- 2. coequalize the per-arrow parallel composites ---
	gens, err := constraintArrows[I, A](shape)
	if err != nil {
		return nil, err
	}
	if len(gens) == 0 {
		id, err := base.Identity(coprod.Apex)
		if err != nil {
			return nil, fmt.Errorf("limit: identity at coproduct apex: %w", err)
		}
		l.coeq = Coequalizer[O, M]{Obj: coprod.Apex, Project: id}
		l.step = false
	} else {
		sources := make([]O, len(gens))
		lefts := make([]M, len(gens))
		rights := make([]M, len(gens))
		for k, a := range gens {
			m, err := d.Morphism(a)
			if err != nil {
				return nil, err
			}
			from, to := shape.Dom(a), shape.Cod(a)
			lc, err := base.Compose(inj[to], m)
			if err != nil {
				return nil, fmt.Errorf("%w: arrow %v: injection∘image: %v", ErrUncertifiedColimit, a, err)
			}
			sources[k] = base.Dom(m)
			lefts[k] = lc
			rights[k] = inj[from]
		}
		srcCoprod, err := coprods.Coproduct(sources)
		if err != nil {
			return nil, fmt.Errorf("limit: coproduct oracle: %w", err)
		}
		if err := certifyCoproduct(base, srcCoprod, sources, ErrUncertifiedColimit); err != nil {
			return nil, err
		}
		left, err := coprods.Cotuple(coprod.Apex, lefts, srcCoprod)
		if err != nil {
			return nil, fmt.Errorf("limit: cotuple oracle: %w", err)
		}
		right, err := coprods.Cotuple(coprod.Apex, rights, srcCoprod)
		if err != nil {
			return nil, fmt.Errorf("limit: cotuple oracle: %w", err)
		}
		for _, t := range []M{left, right} {
			if base.Dom(t) != srcCoprod.Apex || base.Cod(t) != coprod.Apex {
				return nil, fmt.Errorf("%w: cotuple runs %v→%v, want %v→%v",
					ErrUncertifiedColimit, base.Dom(t), base.Cod(t), srcCoprod.Apex, coprod.Apex)
			}
		}
		coeq, err := coeqs.Coequalize(left, right)
		if err != nil {
			return nil, fmt.Errorf("limit: coequalizer oracle: %w", err)
		}
		if !cat.HasObject(base, coeq.Obj) {
			return nil, fmt.Errorf("%w: coequalizer object %v is not a base object", ErrUncertifiedColimit, coeq.Obj)
		}
		if base.Dom(coeq.Project) != coprod.Apex || base.Cod(coeq.Project) != coeq.Obj {
			return nil, fmt.Errorf("%w: projection runs %v→%v, want %v→%v",
				ErrUncertifiedColimit, base.Dom(coeq.Project), base.Cod(coeq.Project), coprod.Apex, coeq.Obj)
		}
		lf, err := base.Compose(coeq.Project, left)
		if err != nil {
			return nil, fmt.Errorf("%w: projection∘left: %v", ErrUncertifiedColimit, err)
		}
		rf, err := base.Compose(coeq.Project, right)
		if err != nil {
			return nil, fmt.Errorf("%w: projection∘right: %v", ErrUncertifiedColimit, err)
		}
		if !base.Eq(lf, rf) {
			return nil, fmt.Errorf("%w: projection does not coequalize the parallel pair", ErrUncertifiedColimit)
		}
		l.coeq, l.left, l.right, l.step = coeq, left, right, true
	}

	if err := cancelled(o.Ctx); err != nil {
		return nil, err
	}

	// --- 3. legs, then certify the finished cocone ---
	l.tip = l.coeq.Obj
	l.legs = make(map[I]M, len(indices))
	for _, i := range indices {
		leg, err := base.Compose(l.coeq.Project, inj[i])
		if err != nil {
			return nil, fmt.Errorf("%w: leg %v: projection∘injection: %v", ErrUncertifiedColimit, i, err)
		}
		l.legs[i] = leg
	}
	if !cat.HasObject(base, l.tip) {
		return nil, fmt.Errorf("%w: tip %v is not a base object", ErrUncertifiedColimit, l.tip)
	}
	if v := cone.QuickCocone(l.Cocone()); !v.Holds {
		return nil, fmt.Errorf("%w: %s", ErrUncertifiedColimit, v.Reason)
	}

	return l, nil
}

// Tip returns the colimit object.
func (l *Colimit[I, A, O, M]) Tip() O { return l.tip }

// Legs returns a copy of the colimit cocone's leg family.
func (l *Colimit[I, A, O, M]) Legs() map[I]M {
	out := make(map[I]M, len(l.legs))
	for i, m := range l.legs {
		out[i] = m
	}

	return out
}

// Cocone materializes the canonical colimit cocone.
func (l *Colimit[I, A, O, M]) Cocone() cone.Cocone[I, A, O, M] {
	return cone.Cocone[I, A, O, M]{CoTip: l.tip, Legs: l.Legs(), D: l.d}
}

// Coproduct returns the coproduct stage of the construction. The
// injection slice is a copy.
func (l *Colimit[I, A, O, M]) Coproduct() Coproduct[O, M] {
	return Coproduct[O, M]{
		Apex:       l.coprod.Apex,
		Injections: append([]M(nil), l.coprod.Injections...),
	}
}

// Coequalizer returns the coequalizer stage. For diagrams without
// non-identity arrows this is the degenerate identity projection.
func (l *Colimit[I, A, O, M]) Coequalizer() Coequalizer[O, M] { return l.coeq }

// Diagram returns the diagram the colimit was built over.
func (l *Colimit[I, A, O, M]) Diagram() *diagram.Finite[I, A, O, M] { return l.d }

// Factor mediates a candidate cocone out of the colimit, dual to
// (*Limit).Factor in every step: gate, cotuple, oracle, re-verify.
func (l *Colimit[I, A, O, M]) Factor(c cone.Cocone[I, A, O, M]) Factorization[M] {
	if c.D != l.d {
		return Factorization[M]{Reason: "limit: candidate is not attached to this colimit's diagram"}
	}
	if v := cone.QuickCocone(c); !v.Holds {
		return Factorization[M]{Reason: v.Reason}
	}

	// --- 1. cotuple the candidate's legs out of the coproduct ---
	legs := make([]M, len(l.indices))
	for k, i := range l.indices {
		legs[k] = c.Legs[i]
	}
	cofork, err := l.coprods.Cotuple(c.CoTip, legs, l.Coproduct())
	if err != nil {
		return Factorization[M]{Reason: fmt.Sprintf("limit: cotuple oracle: %v", err)}
	}
	if l.base.Dom(cofork) != l.coprod.Apex || l.base.Cod(cofork) != c.CoTip {
		return Factorization[M]{Reason: fmt.Sprintf("limit: cotuple runs %v→%v, want %v→%v",
			l.base.Dom(cofork), l.base.Cod(cofork), l.coprod.Apex, c.CoTip)}
	}

	// --- 2. mediate through the coequalizer ---
	var f Factorization[M]
	if l.step {
		f = safeCoequalizerFactor(l.coeqs, l.left, l.right, l.coeq, cofork)
		if !f.Factored {
			if f.Reason == "" {
				f.Reason = "limit: coequalizer oracle declined without a reason"
			}

			return f
		}
	} else {
		f = Factorization[M]{Factored: true, Mediator: cofork}
	}

	// --- 3. re-verify: the oracle is untrusted ---
	med := f.Mediator
	if l.base.Dom(med) != l.tip || l.base.Cod(med) != c.CoTip {
		return Factorization[M]{Reason: fmt.Sprintf("limit: mediator runs %v→%v, want %v→%v",
			l.base.Dom(med), l.base.Cod(med), l.tip, c.CoTip)}
	}
	through, err := l.base.Compose(med, l.coeq.Project)
	if err != nil || !l.base.Eq(through, cofork) {
		return Factorization[M]{Reason: "limit: mediator fails the projection triangle"}
	}
	for _, i := range l.indices {
		got, err := l.base.Compose(med, l.legs[i])
		if err != nil || !l.base.Eq(got, c.Legs[i]) {
			return Factorization[M]{Reason: fmt.Sprintf("limit: mediator does not reproduce leg %v", i)}
		}
	}

	return f
}

// certifyCoproduct checks a coproduct oracle's output against the
// factor list: injection count, apex membership, injection endpoints.
func certifyCoproduct[O comparable, M any](
	base cat.Category[O, M],
	p Coproduct[O, M],
	factors []O,
	kind error,
) error {
	if len(p.Injections) != len(factors) {
		return fmt.Errorf("%w: %d injections for %d factors", kind, len(p.Injections), len(factors))
	}
	if !cat.HasObject(base, p.Apex) {
		return fmt.Errorf("%w: coproduct apex %v is not a base object", kind, p.Apex)
	}
	for k, in := range p.Injections {
		if base.Dom(in) != factors[k] || base.Cod(in) != p.Apex {
			return fmt.Errorf("%w: injection %d runs %v→%v, want %v→%v",
				kind, k, base.Dom(in), base.Cod(in), factors[k], p.Apex)
		}
	}

	return nil
}

// safeCoequalizerFactor is the dual of safeEqualizerFactor.
func safeCoequalizerFactor[O comparable, M any](
	coeqs Coequalizers[O, M],
	left, right M,
	through Coequalizer[O, M],
	cofork M,
) (f Factorization[M]) {
	defer func() {
		if r := recover(); r != nil {
			f = Factorization[M]{Reason: fmt.Sprintf("limit: coequalizer oracle panic: %v", r)}
		}
	}()

	return coeqs.FactorCofork(left, right, through, cofork)
}
