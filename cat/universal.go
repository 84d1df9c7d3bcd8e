// Terminal/initial object certification over enumerated hom-sets.

package cat

import "fmt"

// UniversalFailure records one object breaking a universal property: its
// actual hom-set with the candidate (every arrow, in enumeration order)
// and a reason naming the miscount or identity defect.
type UniversalFailure[O comparable, M any] struct {
	Object O
	Arrows []M
	Reason string
}

// UniversalReport is the outcome of CheckTerminal or CheckInitial.
// Holds is true iff every object of the category has exactly one
// morphism to (terminal) or from (initial) the candidate and the unique
// self-morphism equals the candidate's identity. Failing a universal
// property is an expected, testable outcome: it is reported here, never
// as an error.
type UniversalReport[O comparable, M any] struct {
	Holds        bool
	Candidate    O
	SelfIdentity bool
	Failures     []UniversalFailure[O, M]
}

// CheckTerminal certifies that candidate is a terminal object of c by
// direct enumeration: for every object x the hom-set x → candidate must
// contain exactly one arrow, and the sole arrow candidate → candidate
// must equal the identity. Any other count is reported with the
// offending object and its full morphism set.
//
// Errors are configuration-only: nil category or a candidate that is not
// an enumerated object.
//
// Complexity: O(|objects| · |arrows|) via Hom.
func CheckTerminal[O comparable, M any](c Category[O, M], candidate O) (UniversalReport[O, M], error) {
	return checkUniversal(c, candidate, true)
}

// CheckInitial is the dual of CheckTerminal: exactly one arrow
// candidate → x for every object x.
func CheckInitial[O comparable, M any](c Category[O, M], candidate O) (UniversalReport[O, M], error) {
	return checkUniversal(c, candidate, false)
}

// FindTerminal scans the category in enumeration order and returns the
// first terminal object, if any.
func FindTerminal[O comparable, M any](c Category[O, M]) (O, bool, error) {
	return findUniversal(c, true)
}

// FindInitial scans the category in enumeration order and returns the
// first initial object, if any.
func FindInitial[O comparable, M any](c Category[O, M]) (O, bool, error) {
	return findUniversal(c, false)
}

func checkUniversal[O comparable, M any](c Category[O, M], candidate O, terminal bool) (UniversalReport[O, M], error) {
	rep := UniversalReport[O, M]{Candidate: candidate}
	if c == nil {
		return rep, ErrNilCategory
	}
	if !HasObject(c, candidate) {
		return rep, fmt.Errorf("%w: candidate %v", ErrUnknownObject, candidate)
	}

	side := "into"
	if !terminal {
		side = "out of"
	}
	rep.SelfIdentity = true
	for _, x := range c.Objects() {
		var hom []M
		if terminal {
			hom = Hom(c, x, candidate)
		} else {
			hom = Hom(c, candidate, x)
		}
		if len(hom) != 1 {
			rep.Failures = append(rep.Failures, UniversalFailure[O, M]{
				Object: x,
				Arrows: hom,
				Reason: fmt.Sprintf("%d morphisms %s candidate at %v, want exactly 1", len(hom), side, x),
			})
			if x == candidate {
				rep.SelfIdentity = false
			}

			continue
		}
		if x == candidate {
			id, err := c.Identity(candidate)
			if err != nil || !c.Eq(hom[0], id) {
				rep.SelfIdentity = false
				rep.Failures = append(rep.Failures, UniversalFailure[O, M]{
					Object: x,
					Arrows: hom,
					Reason: "self-morphism differs from identity",
				})
			}
		}
	}
	rep.Holds = len(rep.Failures) == 0

	return rep, nil
}

func findUniversal[O comparable, M any](c Category[O, M], terminal bool) (O, bool, error) {
	var zero O
	if c == nil {
		return zero, false, ErrNilCategory
	}
	for _, o := range c.Objects() {
		rep, err := checkUniversal(c, o, terminal)
		if err != nil {
			return zero, false, err
		}
		if rep.Holds {
			return o, true, nil
		}
	}

	return zero, false, nil
}
