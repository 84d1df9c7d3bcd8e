package limit

import (
	"fmt"

	"github.com/blaster151/catlim/cat"
)

// pbRecord is one issued equalizer's provenance: the equalized pair,
// the tuple arrows that were pulled back, and the pullback itself.
type pbRecord[O comparable, M any] struct {
	left, right M // f, g: A→B
	u, v        M // ⟨id,f⟩, ⟨id,g⟩: A→A×B
	pb          Pullback[O, M]
}

// pullbackEqualizers derives equalizers from products and pullbacks.
type pullbackEqualizers[O comparable, M any] struct {
	base  cat.Category[O, M]
	prods Products[O, M]
	pbs   Pullbacks[O, M]

	next  int
	table map[int]pbRecord[O, M]
}

// EqualizersViaPullbacks derives an Equalizers implementation from
// products and pullbacks: the equalizer of f, g: A→B is the pullback
// of ⟨id_A,f⟩ along ⟨id_A,g⟩, with the left projection as inclusion.
//
// Every issued equalizer is certified first: the pullback square must
// commute and the derived inclusion must equalize the pair, else
// Equalize returns ErrUncertifiedPullback. Issued equalizers carry a
// dense arena stamp; Factor recognizes only equalizers this bridge
// issued and declines everything else with a reason.
//
// The bridge keeps per-issue bookkeeping and is not safe for
// concurrent use.
func EqualizersViaPullbacks[O comparable, M any](
	base cat.Category[O, M],
	prods Products[O, M],
	pbs Pullbacks[O, M],
) Equalizers[O, M] {
	return &pullbackEqualizers[O, M]{
		base:  base,
		prods: prods,
		pbs:   pbs,
		table: make(map[int]pbRecord[O, M]),
	}
}

func (b *pullbackEqualizers[O, M]) Equalize(left, right M) (Equalizer[O, M], error) {
	var zero Equalizer[O, M]
	if b.base == nil || b.prods == nil || b.pbs == nil {
		return zero, ErrNilTrait
	}

	// --- 1. the pair must be parallel ---
	domA, codB := b.base.Dom(left), b.base.Cod(left)
	if b.base.Dom(right) != domA || b.base.Cod(right) != codB {
		return zero, fmt.Errorf("%w: %v→%v vs %v→%v",
			ErrNotParallel, domA, codB, b.base.Dom(right), b.base.Cod(right))
	}

	// --- 2. tuple both arrows against the identity into A×B ---
	factors := []O{domA, codB}
	prod, err := b.prods.Product(factors)
	if err != nil {
		return zero, fmt.Errorf("limit: product oracle: %w", err)
	}
	if err := certifyProduct(b.base, prod, factors, ErrUncertifiedLimit); err != nil {
		return zero, err
	}
	id, err := b.base.Identity(domA)
	if err != nil {
		return zero, fmt.Errorf("limit: identity at %v: %w", domA, err)
	}
	u, err := b.prods.Tuple(domA, []M{id, left}, prod)
	if err != nil {
		return zero, fmt.Errorf("limit: tuple oracle: %w", err)
	}
	v, err := b.prods.Tuple(domA, []M{id, right}, prod)
	if err != nil {
		return zero, fmt.Errorf("limit: tuple oracle: %w", err)
	}
	for _, t := range []M{u, v} {
		if b.base.Dom(t) != domA || b.base.Cod(t) != prod.Apex {
			return zero, fmt.Errorf("%w: tuple runs %v→%v, want %v→%v",
				ErrUncertifiedLimit, b.base.Dom(t), b.base.Cod(t), domA, prod.Apex)
		}
	}

	// --- 3. pull back and certify square + fork ---
	pb, err := b.pbs.Pullback(u, v)
	if err != nil {
		return zero, fmt.Errorf("limit: pullback oracle: %w", err)
	}
	if !cat.HasObject(b.base, pb.Apex) {
		return zero, fmt.Errorf("%w: apex %v is not a base object", ErrUncertifiedPullback, pb.Apex)
	}
	for _, leg := range []M{pb.Left, pb.Right} {
		if b.base.Dom(leg) != pb.Apex || b.base.Cod(leg) != domA {
			return zero, fmt.Errorf("%w: projection runs %v→%v, want %v→%v",
				ErrUncertifiedPullback, b.base.Dom(leg), b.base.Cod(leg), pb.Apex, domA)
		}
	}
	ul, err := b.base.Compose(u, pb.Left)
	if err != nil {
		return zero, fmt.Errorf("%w: u∘left: %v", ErrUncertifiedPullback, err)
	}
	vr, err := b.base.Compose(v, pb.Right)
	if err != nil {
		return zero, fmt.Errorf("%w: v∘right: %v", ErrUncertifiedPullback, err)
	}
	if !b.base.Eq(ul, vr) {
		return zero, fmt.Errorf("%w: square does not commute", ErrUncertifiedPullback)
	}
	fl, err := b.base.Compose(left, pb.Left)
	if err != nil {
		return zero, fmt.Errorf("%w: left∘inclusion: %v", ErrUncertifiedPullback, err)
	}
	fr, err := b.base.Compose(right, pb.Left)
	if err != nil {
		return zero, fmt.Errorf("%w: right∘inclusion: %v", ErrUncertifiedPullback, err)
	}
	if !b.base.Eq(fl, fr) {
		return zero, fmt.Errorf("%w: derived inclusion fails the fork", ErrUncertifiedPullback)
	}

	// --- 4. stamp and record ---
	b.next++
	b.table[b.next] = pbRecord[O, M]{left: left, right: right, u: u, v: v, pb: pb}

	return Equalizer[O, M]{Obj: pb.Apex, Include: pb.Left, cert: b.next}, nil
}

func (b *pullbackEqualizers[O, M]) FactorFork(left, right M, through Equalizer[O, M], fork M) Factorization[M] {
	rec, ok := b.table[through.cert]
	if !ok {
		return Factorization[M]{Reason: "limit: equalizer was not issued by this bridge"}
	}
	if !b.base.Eq(left, rec.left) || !b.base.Eq(right, rec.right) {
		return Factorization[M]{Reason: "limit: parallel pair differs from the issued equalizer's"}
	}
	if b.base.Cod(fork) != b.base.Dom(rec.left) {
		return Factorization[M]{Reason: fmt.Sprintf("limit: fork targets %v, want %v",
			b.base.Cod(fork), b.base.Dom(rec.left))}
	}
	lf, err := b.base.Compose(rec.left, fork)
	if err != nil {
		return Factorization[M]{Reason: fmt.Sprintf("limit: left∘fork: %v", err)}
	}
	rf, err := b.base.Compose(rec.right, fork)
	if err != nil {
		return Factorization[M]{Reason: fmt.Sprintf("limit: right∘fork: %v", err)}
	}
	if !b.base.Eq(lf, rf) {
		return Factorization[M]{Reason: "limit: fork does not equalize the pair"}
	}

	// the fork pairs with itself through both tuples, so the pullback
	// mediator is exactly the equalizer mediator
	f := safePullbackFactor(b.pbs, rec.u, rec.v, rec.pb, fork, fork)
	if !f.Factored {
		if f.Reason == "" {
			f.Reason = "limit: pullback oracle declined without a reason"
		}

		return f
	}
	med := f.Mediator
	if b.base.Dom(med) != b.base.Dom(fork) || b.base.Cod(med) != through.Obj {
		return Factorization[M]{Reason: fmt.Sprintf("limit: mediator runs %v→%v, want %v→%v",
			b.base.Dom(med), b.base.Cod(med), b.base.Dom(fork), through.Obj)}
	}
	got, err := b.base.Compose(through.Include, med)
	if err != nil || !b.base.Eq(got, fork) {
		return Factorization[M]{Reason: "limit: mediator fails the inclusion triangle"}
	}

	return f
}

// poRecord is one issued coequalizer's provenance, dual to pbRecord.
type poRecord[O comparable, M any] struct {
	left, right M // f, g: A→B
	u, v        M // [id,f], [id,g]: B+A→B
	po          Pushout[O, M]
}

// pushoutCoequalizers derives coequalizers from coproducts and
// pushouts.
type pushoutCoequalizers[O comparable, M any] struct {
	base    cat.Category[O, M]
	coprods Coproducts[O, M]
	pos     Pushouts[O, M]

	next  int
	table map[int]poRecord[O, M]
}

// CoequalizersViaPushouts is the exact dual of EqualizersViaPullbacks:
// the coequalizer of f, g: A→B is the pushout of [id_B,f] along
// [id_B,g] out of B+A, with the left injection as the quotient
// projection. Certification and arena bookkeeping mirror the pullback
// bridge; uncertifiable oracle output is ErrUncertifiedPushout.
func CoequalizersViaPushouts[O comparable, M any](
	base cat.Category[O, M],
	coprods Coproducts[O, M],
	pos Pushouts[O, M],
) Coequalizers[O, M] {
	return &pushoutCoequalizers[O, M]{
		base:    base,
		coprods: coprods,
		pos:     pos,
		table:   make(map[int]poRecord[O, M]),
	}
}

func (b *pushoutCoequalizers[O, M]) Coequalize(left, right M) (Coequalizer[O, M], error) {
	var zero Coequalizer[O, M]
	if b.base == nil || b.coprods == nil || b.pos == nil {
		return zero, ErrNilTrait
	}

	// --- 1. the pair must be parallel ---
	domA, codB := b.base.Dom(left), b.base.Cod(left)
	if b.base.Dom(right) != domA || b.base.Cod(right) != codB {
		return zero, fmt.Errorf("%w: %v→%v vs %v→%v",
			ErrNotParallel, domA, codB, b.base.Dom(right), b.base.Cod(right))
	}

	// --- 2. cotuple both arrows against the identity out of B+A ---
	factors := []O{codB, domA}
	coprod, err := b.coprods.Coproduct(factors)
	if err != nil {
		return zero, fmt.Errorf("limit: coproduct oracle: %w", err)
	}
	if err := certifyCoproduct(b.base, coprod, factors, ErrUncertifiedColimit); err != nil {
		return zero, err
	}
	id, err := b.base.Identity(codB)
	if err != nil {
		return zero, fmt.Errorf("limit: identity at %v: %w", codB, err)
	}
	u, err := b.coprods.Cotuple(codB, []M{id, left}, coprod)
	if err != nil {
		return zero, fmt.Errorf("limit: cotuple oracle: %w", err)
	}
	v, err := b.coprods.Cotuple(codB, []M{id, right}, coprod)
	if err != nil {
		return zero, fmt.Errorf("limit: cotuple oracle: %w", err)
	}
	for _, t := range []M{u, v} {
		if b.base.Dom(t) != coprod.Apex || b.base.Cod(t) != codB {
			return zero, fmt.Errorf("%w: cotuple runs %v→%v, want %v→%v",
				ErrUncertifiedColimit, b.base.Dom(t), b.base.Cod(t), coprod.Apex, codB)
		}
	}

	// --- 3. push out and certify square + cofork ---
	po, err := b.pos.Pushout(u, v)
	if err != nil {
		return zero, fmt.Errorf("limit: pushout oracle: %w", err)
	}
	if !cat.HasObject(b.base, po.Apex) {
		return zero, fmt.Errorf("%w: apex %v is not a base object", ErrUncertifiedPushout, po.Apex)
	}
	for _, leg := range []M{po.Left, po.Right} {
		if b.base.Dom(leg) != codB || b.base.Cod(leg) != po.Apex {
			return zero, fmt.Errorf("%w: injection runs %v→%v, want %v→%v",
				ErrUncertifiedPushout, b.base.Dom(leg), b.base.Cod(leg), codB, po.Apex)
		}
	}
	lu, err := b.base.Compose(po.Left, u)
	if err != nil {
		return zero, fmt.Errorf("%w: left∘u: %v", ErrUncertifiedPushout, err)
	}
	rv, err := b.base.Compose(po.Right, v)
	if err != nil {
		return zero, fmt.Errorf("%w: right∘v: %v", ErrUncertifiedPushout, err)
	}
	if !b.base.Eq(lu, rv) {
		return zero, fmt.Errorf("%w: square does not commute", ErrUncertifiedPushout)
	}
	pf, err := b.base.Compose(po.Left, left)
	if err != nil {
		return zero, fmt.Errorf("%w: projection∘left: %v", ErrUncertifiedPushout, err)
	}
	pg, err := b.base.Compose(po.Left, right)
	if err != nil {
		return zero, fmt.Errorf("%w: projection∘right: %v", ErrUncertifiedPushout, err)
	}
	if !b.base.Eq(pf, pg) {
		return zero, fmt.Errorf("%w: derived projection fails the cofork", ErrUncertifiedPushout)
	}

	// --- 4. stamp and record ---
	b.next++
	b.table[b.next] = poRecord[O, M]{left: left, right: right, u: u, v: v, po: po}

	return Coequalizer[O, M]{Obj: po.Apex, Project: po.Left, cert: b.next}, nil
}

func (b *pushoutCoequalizers[O, M]) FactorCofork(left, right M, through Coequalizer[O, M], cofork M) Factorization[M] {
	rec, ok := b.table[through.cert]
	if !ok {
		return Factorization[M]{Reason: "limit: coequalizer was not issued by this bridge"}
	}
	if !b.base.Eq(left, rec.left) || !b.base.Eq(right, rec.right) {
		return Factorization[M]{Reason: "limit: parallel pair differs from the issued coequalizer's"}
	}
	if b.base.Dom(cofork) != b.base.Cod(rec.left) {
		return Factorization[M]{Reason: fmt.Sprintf("limit: cofork starts at %v, want %v",
			b.base.Dom(cofork), b.base.Cod(rec.left))}
	}
	cf, err := b.base.Compose(cofork, rec.left)
	if err != nil {
		return Factorization[M]{Reason: fmt.Sprintf("limit: cofork∘left: %v", err)}
	}
	cg, err := b.base.Compose(cofork, rec.right)
	if err != nil {
		return Factorization[M]{Reason: fmt.Sprintf("limit: cofork∘right: %v", err)}
	}
	if !b.base.Eq(cf, cg) {
		return Factorization[M]{Reason: "limit: cofork does not coequalize the pair"}
	}

	f := safePushoutFactor(b.pos, rec.u, rec.v, rec.po, cofork, cofork)
	if !f.Factored {
		if f.Reason == "" {
			f.Reason = "limit: pushout oracle declined without a reason"
		}

		return f
	}
	med := f.Mediator
	if b.base.Dom(med) != through.Obj || b.base.Cod(med) != b.base.Cod(cofork) {
		return Factorization[M]{Reason: fmt.Sprintf("limit: mediator runs %v→%v, want %v→%v",
			b.base.Dom(med), b.base.Cod(med), through.Obj, b.base.Cod(cofork))}
	}
	got, err := b.base.Compose(med, through.Project)
	if err != nil || !b.base.Eq(got, cofork) {
		return Factorization[M]{Reason: "limit: mediator fails the projection triangle"}
	}

	return f
}

// safePullbackFactor invokes the pullback oracle's factorization with
// panic isolation.
func safePullbackFactor[O comparable, M any](
	pbs Pullbacks[O, M],
	f, g M,
	through Pullback[O, M],
	left, right M,
) (out Factorization[M]) {
	defer func() {
		if r := recover(); r != nil {
			out = Factorization[M]{Reason: fmt.Sprintf("limit: pullback oracle panic: %v", r)}
		}
	}()

	return pbs.FactorSpan(f, g, through, left, right)
}

// safePushoutFactor is the dual of safePullbackFactor.
func safePushoutFactor[O comparable, M any](
	pos Pushouts[O, M],
	f, g M,
	through Pushout[O, M],
	left, right M,
) (out Factorization[M]) {
	defer func() {
		if r := recover(); r != nil {
			out = Factorization[M]{Reason: fmt.Sprintf("limit: pushout oracle panic: %v", r)}
		}
	}()

	return pos.FactorCospan(f, g, through, left, right)
}
