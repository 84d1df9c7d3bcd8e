// Package conecat enumerates the category of cones (or cocones) over a
// diagram by brute force: every valid cone and every mediating arrow
// between every pair of cones, as a genuine finite category.
//
// What:
//
//   - Cones / Cocones: for every base object as tip, the cartesian
//     product of candidate legs (one hom-set per shape object, odometer
//     order) filtered by the commuting-triangle gate and deduplicated
//     under the base equality oracle. Mediating arrows are found by
//     scanning every base arrow between every ordered pair of tips and
//     keeping those making both leg families commute.
//   - Category / CoCategory: the result implements
//     cat.Category[int, Arrow[M]]. Objects are dense cone indices,
//     arrows carry source, destination, and the underlying base
//     morphism; identity, composition, and equality are inherited
//     pointwise from the base. Being a real cat.Category value, it can
//     be fed straight back into cat.CheckLaws or cat.CheckTerminal.
//   - Terminality / Initiality: the limit test. A cone is the limit
//     precisely when it is terminal among cones; both delegate to the
//     generic universal-property checks and return structured reports.
//
// Why:
//
//	Reducing "is this the limit" to "is this object terminal" turns a
//	universal quantification over all cones into a finite scan that can
//	be certified and, when it fails, diagnosed cone by cone.
//
// The enumeration is exponential in the number of shape objects
// (|arrows|^|objects| combinations per tip); callers bound the blast
// radius with WithMaxCones and cancel long runs with WithContext.
// Everything is deterministic: tips in base order and combinations in
// odometer order, with mediating arrows scanned in hom-set order.
package conecat
