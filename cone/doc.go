// Package cone defines cones and cocones over a diagram and validates
// their commutativity with structured, per-check diagnostics.
//
// A cone is an apex (Tip) with one leg into every diagram image such
// that every diagram arrow's triangle commutes; a cocone is the dual,
// with legs out of the images into the CoTip. Validate and
// ValidateCocone are exhaustive: every object, leg, and
// arrow check is reported individually with a reason and no check
// short-circuits another, so a failing cone can be pinpointed in tests
// and error messages. Quick and QuickCocone collapse the same checks into a
// single pass/fail verdict with the first failing reason, for call
// sites that only need a gate.
//
// Failing to commute is an expected, testable outcome: it lives in the
// Report, never in an error. The only error in this package is a nil
// attached diagram.
package cone
