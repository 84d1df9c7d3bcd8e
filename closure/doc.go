// Package closure computes generated subcategories and extends partial
// morphism assignments over them, turning seed data (a handful of
// objects and arrows with images) into a fully functorial diagram.
//
// What:
//
//   - Close: computes the subcategory of an ambient shape generated by
//     the seed arrows (identities, seeds, and every composite, to a
//     fixed point) and extends the image assignment by composing
//     pairwise in the base. Two derivations of the same arrow whose
//     images disagree under the base equality oracle abort with
//     ErrInconsistentComposite, the dominant real failure mode, since
//     diagrams are commonly specified only on covering arrows and must
//     close consistently.
//   - Saturate: the poset-specialised fast path. Requires a thin
//     ambient (at most one arrow per ordered object pair) and composes
//     images along breadth-first shortest cover paths without
//     materialising the pairwise fixed point. Trust mode: alternative
//     paths are never cross-checked, so it is only valid when no two
//     cover paths between the same objects can disagree; Result.Diagram
//     still re-validates functoriality and catches abuse.
//   - Result: the generated objects and arrows in deterministic append
//     order plus both assignments; Diagram() tabulates the generated
//     sub-shape into a certified cat.Fin and wraps everything as a
//     validated diagram.Finite.
//
// Why:
//
//	Writing a full functor by hand is quadratic drudgery; writing the
//	covers of a poset is linear. Close does the drudgery and tells you
//	when your covers were contradictory.
//
// Determinism: objects keep seed order; arrows append identities
// (object order), then seed arrows (seed order), then composites in
// discovery order. Two runs over the same input produce identical
// Result slices.
//
// Errors:
//
//   - ErrNilAmbient / ErrNilBase        nil category arguments
//   - ErrOptionViolation                invalid functional option
//   - ErrAmbientObject                  seed index not in the ambient
//   - ErrAmbientArrow                   seed arrow not in the ambient
//   - ErrMissingObjectImage             seed arrow endpoint lacks an object image
//   - ErrEndpointMismatch               seed image endpoints disagree with object images
//   - ErrConflictingSeed                one index or arrow seeded twice with different images
//   - ErrInconsistentComposite          two derivations of an arrow disagree (Close only)
//   - ErrArrowBoundExceeded             generated arrows outgrew WithArrowBound
//   - ErrAmbientNotThin                 Saturate on a non-thin ambient
package closure
