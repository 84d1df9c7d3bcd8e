// Package cat defines the finite-category contract consumed by every
// other package in the module, plus an explicit table-backed finite
// category for building shape categories by hand.
//
// What:
//
//   - Category[O, M]: the contract a caller's concrete category must
//     satisfy: object/arrow enumeration with a stable order, identity
//     lookup, endpoint-checked composition, domain/codomain projection,
//     and a decidable morphism equality oracle Eq.
//   - Fin[O, M]: an explicit finite category backed by a composition
//     table, constructed via Builder (arrow by arrow) or FromFuncs
//     (tabulating a functional description). Construction validates
//     totality, identity laws, associativity, and endpoint closure.
//   - Hom: hom-set enumeration with an optional fast path
//     (HomEnumerator) and a generic Arrows() scan fallback.
//   - FullSub: the full subcategory view induced by an object subset.
//   - CheckLaws: exhaustive category-law certification for any
//     Category value, reporting every violation rather than the first.
//   - CheckTerminal / CheckInitial: certified universal-property
//     checks. An object is terminal (initial) iff every object has
//     exactly one morphism into (out of) it and the self-morphism is
//     the identity.
//
// Why:
//
//	Limits and colimits are verified, not trusted, in this module: the
//	cone-category machinery reduces "is the limit" to "is terminal in a
//	derived category", and that derived category is just another
//	Category value checked by the same CheckTerminal that callers can
//	run against their own categories.
//
// Conventions:
//
//   - Object values are canonical: compared with ==, used as map keys.
//   - Morphism values are never compared with ==; every comparison goes
//     through the category's Eq oracle.
//   - Enumeration order is part of a category's identity: Objects() and
//     Arrows() must return the same order on every call, and all
//     algorithms in this module iterate in that order, making every
//     result deterministic.
//
// Errors:
//
//   - ErrNilCategory        nil Category value passed
//   - ErrUnknownObject      object not in the category
//   - ErrUnknownArrow       arrow not in the category
//   - ErrNotComposable      Cod(f) ≠ Dom(g) at a Compose call
//   - ErrDuplicateObject    object added twice to a Builder
//   - ErrDuplicateArrow     arrow value added twice to a Builder
//   - ErrDuplicateComposite composite declared twice for one pair
//   - ErrMissingIdentity    declared arrows lack an object's identity
//   - ErrIncompleteTable    a composable pair has no declared composite
//   - ErrCompositeEndpoints a declared composite has wrong endpoints
//   - ErrIdentityLaw        a declared composite breaks a unit law
//   - ErrNotAssociative     the composition table is not associative
//
// Verification failures (an object failing to be terminal, a category
// breaking a law under CheckLaws) are structured reports, never errors.
package cat
