// Package shape builds the small index categories diagrams are drawn
// over: discrete shapes, the walking arrow, the parallel pair, spans
// and cospans, finite chains, the commutative square, and arbitrary
// finite posets given by cover relations.
//
// Every builder returns a law-certified *cat.Fin[string, string].
// Identity arrows are named "id:<object>". Poset-derived shapes name
// the arrow from x to y "x≤y", so a thin shape's composition is read
// straight off the endpoints; the hand-built shapes use short letter
// names ("f", "g", "l", "r") that diagram assignments key on.
//
// Builders with nothing to validate (WalkingArrow, ParallelPair, Span,
// Cospan, Square) return the category directly; the ones that accept
// input (Discrete, DiscreteOf, Chain, FromPoset) return an error for
// input that does not describe a shape.
package shape
