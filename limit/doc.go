// Package limit constructs canonical limits and colimits of finite
// diagrams from caller-supplied primitive structure, and certifies them
// against the brute-force cone enumeration.
//
// What
//
// A limit is built the textbook way: a finite product over the
// diagram's object images, a pair of parallel composites collecting
// every diagram arrow's constraint, and an equalizer of that pair. The
// equalizer object is the limit tip and the composites
// projection∘inclusion are its legs. FromProductsAndEqualizers runs
// exactly this recipe; FromCoproductsAndCoequalizers is the exact dual.
//
// The primitive structure is consumed through small trait interfaces
// (Products, Equalizers, Coproducts, Coequalizers, Pullbacks,
// Pushouts) implemented by the caller's concrete category. Trait
// output is never trusted: every constructor re-checks endpoints, the
// fork property, and the commutativity of the finished cone before
// returning, and (*Limit).Factor re-verifies every mediator an oracle
// hands back. A mediator that fails re-verification is reported as a
// failed Factorization; trait output too broken to build on is an
// error (ErrUncertifiedLimit and friends).
//
// OfDiagram goes one step further: it builds the canonical limit and
// the full cone category, locates the canonical cone among the
// enumerated ones, and certifies its terminality. Its Factor derives
// each mediator twice, from the equalizer oracle and from the
// enumerated hom-set, and cross-checks the two under the base
// equality. Disagreement between the derivations means the caller's
// oracle is wrong, and that is surfaced as a hard error
// (ErrMediatorMismatch), never silently resolved.
//
// EqualizersViaPullbacks derives an Equalizers implementation from
// products and pullbacks (equalizer of f,g = pullback of ⟨id,f⟩ along
// ⟨id,g⟩), certifying the square and the fork before issuing anything.
// CoequalizersViaPushouts is the dual bridge.
//
// Why
//
// Enumerating every cone is exponential in the diagram's index count;
// the product+equalizer construction is linear in the diagram and
// delegates the hard work to structure the concrete category already
// has. Keeping both derivations and cross-checking them turns the
// expensive path into a certification harness for the cheap one.
//
// Edge cases
//
// A zero-object diagram reduces to the empty product, so the limit tip
// is the base terminal object and the leg family is empty. A diagram
// with no non-identity arrows needs no equalizer step: the inclusion
// degenerates to the identity on the product and Factor returns the
// tuple itself.
//
// Errors
//
//   - ErrNilDiagram, ErrNilTrait, ErrOptionViolation: malformed call.
//   - ErrUncertifiedLimit / ErrUncertifiedColimit: trait output failed
//     construction-time certification.
//   - ErrNotParallel: bridge input arrows do not share endpoints.
//   - ErrUncertifiedPullback / ErrUncertifiedPushout: bridge oracle
//     output failed the square or fork check.
//   - ErrConeNotEnumerated: a certified-valid cone is missing from the
//     enumeration (invariant violation).
//   - ErrMediatorMismatch: the equalizer-based and enumeration-based
//     mediators disagree (invariant violation, caller oracle bug).
//
// Failing to factor a candidate is not an error: Factor returns a
// Factorization value whose Reason names the first offending check.
// Oracle panics are recovered and normalized into the same shape.
package limit
