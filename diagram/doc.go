// Package diagram represents functors from a finite shape category into
// a caller-supplied base category.
//
// A Finite diagram pins a shape (cat.Category[I, A]) to a base
// (cat.Category[O, M]) through two total assignments, onObjects and
// onMorphisms. New validates functoriality eagerly: assignment
// totality, endpoint alignment, identity preservation, and composition
// preservation, so every constructed Finite is a genuine functor and
// downstream packages (cone, conecat, limit) never re-check it.
//
// Small is the lazy variant for shapes described by enumerator
// functions rather than explicit tables: Materialize tabulates the
// shape under a caller-supplied hard bound and yields a validated
// Finite, memoised per Small value.
//
// All failures here are configuration errors (wrapped sentinels);
// nothing in this package reports verification outcomes.
package diagram
