// Package finset implements the category of named finite sets, the
// concrete base category the rest of the module is exercised against.
//
// A Universe is a mutable collection of named sets. Declared sets enter
// with AddSet, which canonicalizes the element list (sorted,
// deduplicated). Derived sets (products, coproducts, equalizer
// subobjects, quotients, pullback and pushout apexes) are registered by
// the trait oracles under content-derived names, keeping whatever
// element order their construction dictates. Objects enumerates
// declared names in sorted order, then derived sets in creation order.
//
// A Func is a total function between two sets, tabulated by element
// position. Universe implements cat.Category[string, Func], with Eq
// comparing endpoints and pointwise images, and the cat.HomEnumerator
// fast path: a single hom-set is enumerated directly in odometer order
// (|B|^|A| tables) without scanning the exponential global arrow set.
//
// Traits exposes the universe's primitive structure to the limit
// package. The one value implements Products, Coproducts, Equalizers,
// Coequalizers, Pullbacks and Pushouts: products are mixed-radix rank
// sets, coproducts slot-offset rank sets, equalizers element subsets,
// coequalizers union-find quotients of the codomain (classes carry
// their minimal element as representative), pullbacks filtered product
// ranks, pushouts quotients of the coproduct. Construction operations
// register their derived set and are idempotent: repeating a request
// reuses the registered set. Factoring operations never error; a fork
// or cofork that does not factor comes back as a declined
// limit.Factorization naming the offending check.
//
// A Universe and its Traits are safe for concurrent use.
package finset
