package limit

// Caller-supplied primitive structure. Each trait is the minimal
// contract one universal construction needs; a concrete category
// typically implements all of them on a single value. Trait output is
// certified by this package before use and never trusted blindly.

// Product is a finite product handed back by a Products oracle: the
// apex object plus one projection per factor, in factor order.
type Product[O comparable, M any] struct {
	Apex        O
	Projections []M
}

// Coproduct is the dual of Product: apex plus one injection per
// factor, in factor order.
type Coproduct[O comparable, M any] struct {
	Apex       O
	Injections []M
}

// Equalizer is an equalizer handed back by an Equalizers oracle: the
// equalizer object and its inclusion into the parallel pair's domain.
//
// cert is a dense arena stamp set by bridge implementations so their
// Factor can recognize equalizers they issued; natively constructed
// values leave it zero.
type Equalizer[O comparable, M any] struct {
	Obj     O
	Include M

	cert int
}

// Coequalizer is the dual of Equalizer: the quotient object and the
// projection from the parallel pair's codomain onto it.
type Coequalizer[O comparable, M any] struct {
	Obj     O
	Project M

	cert int
}

// Pullback is a pullback square's derived corner: the apex and its two
// projections onto the pulled-back arrows' domains.
type Pullback[O comparable, M any] struct {
	Apex  O
	Left  M
	Right M
}

// Pushout is the dual of Pullback: the apex and the two injections
// from the pushed-out arrows' codomains.
type Pushout[O comparable, M any] struct {
	Apex  O
	Left  M
	Right M
}

// Factorization is the outcome of a universal-property mediation:
// either Factored with the mediating morphism, or a Reason naming the
// first check the candidate failed. Declining is an expected result,
// never an error.
type Factorization[M any] struct {
	Factored bool
	Mediator M
	Reason   string
}

// Products computes finite products. Product may be called with an
// empty factor list, in which case the apex must be the category's
// terminal object. Tuple builds ⟨legs...⟩: apex → into.Apex from one
// leg per factor; it errors when the legs cannot form such an arrow.
type Products[O comparable, M any] interface {
	Product(factors []O) (Product[O, M], error)
	Tuple(apex O, legs []M, into Product[O, M]) (M, error)
}

// Coproducts is the dual of Products. Cotuple builds
// [legs...]: from.Apex → apex out of one leg per factor.
type Coproducts[O comparable, M any] interface {
	Coproduct(factors []O) (Coproduct[O, M], error)
	Cotuple(apex O, legs []M, from Coproduct[O, M]) (M, error)
}

// Equalizers computes equalizers of parallel pairs and factors forks
// through them. FactorFork receives the pair, the equalizer it
// previously issued, and a fork (an arrow into the pair's domain
// equalizing it); it returns the unique mediator into the equalizer
// object, or declines. FactorFork must not error: a fork that does not
// factor is a Factorization with Factored false.
//
// The factoring methods carry distinct names across the traits so one
// concrete value can implement all of them.
type Equalizers[O comparable, M any] interface {
	Equalize(left, right M) (Equalizer[O, M], error)
	FactorFork(left, right M, through Equalizer[O, M], fork M) Factorization[M]
}

// Coequalizers is the dual of Equalizers: FactorCofork mediates
// coforks out of the pair's codomain through the quotient.
type Coequalizers[O comparable, M any] interface {
	Coequalize(left, right M) (Coequalizer[O, M], error)
	FactorCofork(left, right M, through Coequalizer[O, M], cofork M) Factorization[M]
}

// Pullbacks computes pullbacks of cospans f: A→C ← B :g and factors
// compatible spans through them: FactorSpan receives left: X→A and
// right: X→B with f∘left ≈ g∘right and returns the mediator X→Apex.
type Pullbacks[O comparable, M any] interface {
	Pullback(f, g M) (Pullback[O, M], error)
	FactorSpan(f, g M, through Pullback[O, M], left, right M) Factorization[M]
}

// Pushouts is the dual of Pullbacks, over spans f: C→A and g: C→B.
type Pushouts[O comparable, M any] interface {
	Pushout(f, g M) (Pushout[O, M], error)
	FactorCospan(f, g M, through Pushout[O, M], left, right M) Factorization[M]
}
