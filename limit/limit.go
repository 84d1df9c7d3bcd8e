package limit

import (
	"context"
	"fmt"

	"github.com/blaster151/catlim/cat"
	"github.com/blaster151/catlim/cone"
	"github.com/blaster151/catlim/diagram"
)

// Limit is a canonical limit: the equalizer of the two parallel
// composites collecting every diagram arrow's constraint over the
// product of the diagram's object images. It retains the construction
// stages and the trait oracles so Factor can mediate candidates later.
type Limit[I comparable, A comparable, O comparable, M any] struct {
	d    *diagram.Finite[I, A, O, M]
	base cat.Category[O, M]

	indices []I
	tip     O
	legs    map[I]M

	prod  Product[O, M]
	eq    Equalizer[O, M]
	left  M
	right M
	step  bool // false when the diagram has no non-identity arrows

	prods Products[O, M]
	eqs   Equalizers[O, M]
}

// FromProductsAndEqualizers builds the canonical limit of d from the
// caller's product and equalizer structure.
//
// The recipe: product P over the object images with projections π_i;
// for every non-identity shape arrow a: i→j the parallel composites
// D(a)∘π_i and π_j, tupled into the product of the arrow-target
// images; the equalizer of that parallel pair. The equalizer object is
// the limit tip and π_i∘inclusion are its legs.
//
// A diagram with no objects reduces to the empty product, so the tip
// is the base terminal object with an empty leg family. A diagram with
// no non-identity arrows skips the equalizer: the inclusion is the
// identity on P.
//
// Every oracle output is certified before use; output that cannot
// carry the construction is reported as ErrUncertifiedLimit with the
// failing check.
func FromProductsAndEqualizers[I comparable, A comparable, O comparable, M any](
	d *diagram.Finite[I, A, O, M],
	prods Products[O, M],
	eqs Equalizers[O, M],
	opts ...Option,
) (*Limit[I, A, O, M], error) {
	if d == nil {
		return nil, ErrNilDiagram
	}
	if prods == nil || eqs == nil {
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
	l := &Limit[I, A, O, M]{
		d:       d,
		base:    base,
		indices: indices,
		prods:   prods,
		eqs:     eqs,
	}

	// --- 1. product over the diagram's object images ---
	factors := make([]O, len(indices))
	for k, i := range indices {
		img, err := d.Object(i)
		if err != nil {
			return nil, err
		}
		factors[k] = img
	}
	prod, err := prods.Product(factors)
	if err != nil {
		return nil, fmt.Errorf("limit: product oracle: %w", err)
	}
	if err := certifyProduct(base, prod, factors, ErrUncertifiedLimit); err != nil {
		return nil, err
	}
	l.prod = prod
	proj := make(map[I]M, len(indices))
	for k, i := range indices {
		proj[i] = prod.Projections[k]
	}

	if err := cancelled(o.Ctx); err != nil {
		return nil, err
	}

	// --- 2. equalize the per-arrow parallel composites ---
	gens, err := constraintArrows[I, A](shape)
	if err != nil {
		return nil, err
	}
	if len(gens) == 0 {
		id, err := base.Identity(prod.Apex)
		if err != nil {
			return nil, fmt.Errorf("limit: identity at product apex: %w", err)
		}
		l.eq = Equalizer[O, M]{Obj: prod.Apex, Include: id}
		l.step = false
	} else {
		targets := make([]O, len(gens))
		lefts := make([]M, len(gens))
		rights := make([]M, len(gens))
		for k, a := range gens {
			m, err := d.Morphism(a)
			if err != nil {
				return nil, err
			}
			from, to := shape.Dom(a), shape.Cod(a)
			lc, err := base.Compose(m, proj[from])
			if err != nil {
				return nil, fmt.Errorf("%w: arrow %v: image∘projection: %v", ErrUncertifiedLimit, a, err)
			}
			targets[k] = base.Cod(m)
			lefts[k] = lc
			rights[k] = proj[to]
		}
		codProd, err := prods.Product(targets)
		if err != nil {
			return nil, fmt.Errorf("limit: product oracle: %w", err)
		}
		if err := certifyProduct(base, codProd, targets, ErrUncertifiedLimit); err != nil {
			return nil, err
		}
		left, err := prods.Tuple(prod.Apex, lefts, codProd)
		if err != nil {
			return nil, fmt.Errorf("limit: tuple oracle: %w", err)
		}
		right, err := prods.Tuple(prod.Apex, rights, codProd)
		if err != nil {
			return nil, fmt.Errorf("limit: tuple oracle: %w", err)
		}
		for _, t := range []M{left, right} {
			if base.Dom(t) != prod.Apex || base.Cod(t) != codProd.Apex {
				return nil, fmt.Errorf("%w: tuple runs %v→%v, want %v→%v",
					ErrUncertifiedLimit, base.Dom(t), base.Cod(t), prod.Apex, codProd.Apex)
			}
		}
		eq, err := eqs.Equalize(left, right)
		if err != nil {
			return nil, fmt.Errorf("limit: equalizer oracle: %w", err)
		}
		if !cat.HasObject(base, eq.Obj) {
			return nil, fmt.Errorf("%w: equalizer object %v is not a base object", ErrUncertifiedLimit, eq.Obj)
		}
		if base.Dom(eq.Include) != eq.Obj || base.Cod(eq.Include) != prod.Apex {
			return nil, fmt.Errorf("%w: inclusion runs %v→%v, want %v→%v",
				ErrUncertifiedLimit, base.Dom(eq.Include), base.Cod(eq.Include), eq.Obj, prod.Apex)
		}
		lf, err := base.Compose(left, eq.Include)
		if err != nil {
			return nil, fmt.Errorf("%w: left∘inclusion: %v", ErrUncertifiedLimit, err)
		}
		rf, err := base.Compose(right, eq.Include)
		if err != nil {
			return nil, fmt.Errorf("%w: right∘inclusion: %v", ErrUncertifiedLimit, err)
		}
		if !base.Eq(lf, rf) {
			return nil, fmt.Errorf("%w: inclusion does not equalize the parallel pair", ErrUncertifiedLimit)
		}
		l.eq, l.left, l.right, l.step = eq, left, right, true
	}

	if err := cancelled(o.Ctx); err != nil {
		return nil, err
	}

	// --- 3. legs, then certify the finished cone ---
	l.tip = l.eq.Obj
	l.legs = make(map[I]M, len(indices))
	for _, i := range indices {
		leg, err := base.Compose(proj[i], l.eq.Include)
		if err != nil {
			return nil, fmt.Errorf("%w: leg %v: projection∘inclusion: %v", ErrUncertifiedLimit, i, err)
		}
		l.legs[i] = leg
	}
	if !cat.HasObject(base, l.tip) {
		return nil, fmt.Errorf("%w: tip %v is not a base object", ErrUncertifiedLimit, l.tip)
	}
	if v := cone.Quick(l.Cone()); !v.Holds {
		return nil, fmt.Errorf("%w: %s", ErrUncertifiedLimit, v.Reason)
	}

	return l, nil
}

// Tip returns the limit object.
func (l *Limit[I, A, O, M]) Tip() O { return l.tip }

// Legs returns a copy of the limit cone's leg family.
func (l *Limit[I, A, O, M]) Legs() map[I]M {
	out := make(map[I]M, len(l.legs))
	for i, m := range l.legs {
		out[i] = m
	}

	return out
}

// Cone materializes the canonical limit cone.
func (l *Limit[I, A, O, M]) Cone() cone.Cone[I, A, O, M] {
	return cone.Cone[I, A, O, M]{Tip: l.tip, Legs: l.Legs(), D: l.d}
}

// Product returns the product stage of the construction. The
// projection slice is a copy.
func (l *Limit[I, A, O, M]) Product() Product[O, M] {
	return Product[O, M]{
		Apex:        l.prod.Apex,
		Projections: append([]M(nil), l.prod.Projections...),
	}
}

// Equalizer returns the equalizer stage. For diagrams without
// non-identity arrows this is the degenerate identity inclusion.
func (l *Limit[I, A, O, M]) Equalizer() Equalizer[O, M] { return l.eq }

// Diagram returns the diagram the limit was built over.
func (l *Limit[I, A, O, M]) Diagram() *diagram.Finite[I, A, O, M] { return l.d }

// Factor mediates a candidate cone through the limit, implementing the
// universal property. The candidate is gated by cone.Quick, its legs
// are tupled into the product, the caller's equalizer oracle derives
// the mediator, and the mediator is re-verified against the inclusion
// triangle and every leg before being returned. Oracle panics are
// recovered. Failures are Factorization values naming the first
// offending check; Factor never returns an error.
func (l *Limit[I, A, O, M]) Factor(c cone.Cone[I, A, O, M]) Factorization[M] {
	if c.D != l.d {
		return Factorization[M]{Reason: "limit: candidate is not attached to this limit's diagram"}
	}
	if v := cone.Quick(c); !v.Holds {
		return Factorization[M]{Reason: v.Reason}
	}

	// --- 1. tuple the candidate's legs into the product ---
	legs := make([]M, len(l.indices))
	for k, i := range l.indices {
		legs[k] = c.Legs[i]
	}
	fork, err := l.prods.Tuple(c.Tip, legs, l.Product())
	if err != nil {
		return Factorization[M]{Reason: fmt.Sprintf("limit: tuple oracle: %v", err)}
	}
	if l.base.Dom(fork) != c.Tip || l.base.Cod(fork) != l.prod.Apex {
		return Factorization[M]{Reason: fmt.Sprintf("limit: tuple runs %v→%v, want %v→%v",
			l.base.Dom(fork), l.base.Cod(fork), c.Tip, l.prod.Apex)}
	}

	// --- 2. mediate through the equalizer ---
	var f Factorization[M]
	if l.step {
		f = safeEqualizerFactor(l.eqs, l.left, l.right, l.eq, fork)
		if !f.Factored {
			if f.Reason == "" {
				f.Reason = "limit: equalizer oracle declined without a reason"
			}

			return f
		}
	} else {
		f = Factorization[M]{Factored: true, Mediator: fork}
	}

	// --- 3. re-verify: the oracle is untrusted ---
	med := f.Mediator
	if l.base.Dom(med) != c.Tip || l.base.Cod(med) != l.tip {
		return Factorization[M]{Reason: fmt.Sprintf("limit: mediator runs %v→%v, want %v→%v",
			l.base.Dom(med), l.base.Cod(med), c.Tip, l.tip)}
	}
	through, err := l.base.Compose(l.eq.Include, med)
	if err != nil || !l.base.Eq(through, fork) {
		return Factorization[M]{Reason: "limit: mediator fails the inclusion triangle"}
	}
	for _, i := range l.indices {
		got, err := l.base.Compose(l.legs[i], med)
		if err != nil || !l.base.Eq(got, c.Legs[i]) {
			return Factorization[M]{Reason: fmt.Sprintf("limit: mediator does not reproduce leg %v", i)}
		}
	}

	return f
}

// certifyProduct checks a product oracle's output against the factor
// list: projection count, apex membership, projection endpoints.
func certifyProduct[O comparable, M any](
	base cat.Category[O, M],
	p Product[O, M],
	factors []O,
	kind error,
) error {
	if len(p.Projections) != len(factors) {
		return fmt.Errorf("%w: %d projections for %d factors", kind, len(p.Projections), len(factors))
	}
	if !cat.HasObject(base, p.Apex) {
		return fmt.Errorf("%w: product apex %v is not a base object", kind, p.Apex)
	}
	for k, pr := range p.Projections {
		if base.Dom(pr) != p.Apex || base.Cod(pr) != factors[k] {
			return fmt.Errorf("%w: projection %d runs %v→%v, want %v→%v",
				kind, k, base.Dom(pr), base.Cod(pr), p.Apex, factors[k])
		}
	}

	return nil
}

// constraintArrows filters the shape's enumeration down to the arrows
// that impose equalizer constraints. Identity arrows impose none:
// their composite equals the projection on both sides.
func constraintArrows[I comparable, A comparable](shape cat.Category[I, A]) ([]A, error) {
	var out []A
	for _, a := range shape.Arrows() {
		from := shape.Dom(a)
		if from == shape.Cod(a) {
			id, err := shape.Identity(from)
			if err != nil {
				return nil, fmt.Errorf("limit: shape identity at %v: %w", from, err)
			}
			if shape.Eq(a, id) {
				continue
			}
		}
		out = append(out, a)
	}

	return out, nil
}

// safeEqualizerFactor invokes the caller's factorization oracle with
// panic isolation, so no foreign panic crosses the package boundary.
func safeEqualizerFactor[O comparable, M any](
	eqs Equalizers[O, M],
	left, right M,
	through Equalizer[O, M],
	fork M,
) (f Factorization[M]) {
	defer func() {
		if r := recover(); r != nil {
			f = Factorization[M]{Reason: fmt.Sprintf("limit: equalizer oracle panic: %v", r)}
		}
	}()

	return eqs.FactorFork(left, right, through, fork)
}

func cancelled(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("limit: cancelled: %w", ctx.Err())
	default:
		return nil
	}
}
