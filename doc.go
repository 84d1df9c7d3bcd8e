// Package catlim is an engine for finite limits and colimits: it draws
// diagrams over arbitrary finite categories, completes partial
// assignments to functors, enumerates cone categories in full, and
// constructs limits and colimits whose universal property is verified
// rather than assumed.
//
// Everything runs synchronously in memory, and every result is
// deterministic. The module never trusts caller-supplied structure:
// categories are law-checked and diagrams functoriality-checked before
// use, and every universal construction is certified twice, once
// through the defining factorization and once by brute-force
// enumeration.
//
// The packages, bottom up:
//
//	cat/     the Category contract, table-backed finite categories,
//	         law checks, terminal/initial certification
//	shape/   canned index categories: discrete, walking arrow,
//	         parallel pair, span/cospan, chains, squares, posets
//	diagram/ validated functors shape→base, lazy variants, restriction
//	closure/ generated subcategories: extend seed assignments to a
//	         consistent fixed point, or refuse with the contradiction
//	cone/    cones and cocones with structured validation reports
//	conecat/ the category of cones over a diagram, enumerated in full
//	finset/  a concrete base: finite sets, tabulated functions, and
//	         native products, coproducts, equalizers, coequalizers,
//	         pullbacks, and pushouts
//	limit/   limits from products + equalizers, colimits from
//	         coproducts + coequalizers, equalizers derived from
//	         pullbacks and coequalizers from pushouts, all
//	         cross-checked against the enumerated cone category
//
// Callers with their own category plug in at two seams: implement
// cat.Category (plus cat.HomEnumerator if hom-sets are cheap to list)
// to gain diagrams, closure, and cone enumeration; implement the
// limit trait interfaces (Products, Equalizers, and their duals) to
// gain certified limit construction on top.
package catlim
