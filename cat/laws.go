// Exhaustive category-law certification for arbitrary Category values.

package cat

import "fmt"

// IdentityViolation reports an object whose identity arrow is missing or
// malformed.
type IdentityViolation[O comparable] struct {
	Object O
	Reason string
}

// EndpointViolation reports an arrow whose domain or codomain is not an
// enumerated object.
type EndpointViolation[M any] struct {
	Arrow  M
	Reason string
}

// ComposeViolation reports a composable pair whose composite is missing,
// mis-typed, or breaks a unit law.
type ComposeViolation[M any] struct {
	G, F   M
	Reason string
}

// AssocViolation reports a composable triple failing associativity.
type AssocViolation[M any] struct {
	H, G, F M
	Reason  string
}

// LawReport is the outcome of CheckLaws: every violation found, plus
// volume counters so callers can assert the check actually covered the
// category. Holds is true iff no violation was recorded.
type LawReport[O comparable, M any] struct {
	Holds bool

	Identity []IdentityViolation[O]
	Endpoint []EndpointViolation[M]
	Compose  []ComposeViolation[M]
	Assoc    []AssocViolation[M]

	ObjectsChecked int
	ArrowsChecked  int
	PairsChecked   int
	TriplesChecked int
}

// CheckLaws certifies the category laws of c over its enumerated data:
// identity existence and typing per object, endpoint closure per arrow,
// composition totality and unit laws per composable pair, and
// associativity per composable triple. Every violation is recorded and
// none aborts the scan, so a failing category can be diagnosed in one
// pass.
//
// Law failures are verification results inside the report; the only
// error is a nil category.
//
// Complexity: O(|arrows|³) worst case (the associativity sweep).
func CheckLaws[O comparable, M any](c Category[O, M]) (LawReport[O, M], error) {
	var rep LawReport[O, M]
	if c == nil {
		return rep, ErrNilCategory
	}

	objects := c.Objects()
	arrows := c.Arrows()
	members := make(map[O]struct{}, len(objects))
	for _, o := range objects {
		members[o] = struct{}{}
	}

	// --- 1. Identities per object ---
	for _, o := range objects {
		rep.ObjectsChecked++
		id, err := c.Identity(o)
		if err != nil {
			rep.Identity = append(rep.Identity, IdentityViolation[O]{Object: o, Reason: fmt.Sprintf("identity lookup failed: %v", err)})

			continue
		}
		if c.Dom(id) != o || c.Cod(id) != o {
			rep.Identity = append(rep.Identity, IdentityViolation[O]{
				Object: o,
				Reason: fmt.Sprintf("identity runs %v→%v, want %v→%v", c.Dom(id), c.Cod(id), o, o),
			})
		}
	}

	// --- 2. Endpoint closure per arrow ---
	for _, m := range arrows {
		rep.ArrowsChecked++
		if _, ok := members[c.Dom(m)]; !ok {
			rep.Endpoint = append(rep.Endpoint, EndpointViolation[M]{Arrow: m, Reason: fmt.Sprintf("dom %v not an enumerated object", c.Dom(m))})
		}
		if _, ok := members[c.Cod(m)]; !ok {
			rep.Endpoint = append(rep.Endpoint, EndpointViolation[M]{Arrow: m, Reason: fmt.Sprintf("cod %v not an enumerated object", c.Cod(m))})
		}
	}

	// --- 3. Composition totality, typing, and unit laws per pair ---
	for _, f := range arrows {
		for _, g := range arrows {
			if c.Cod(f) != c.Dom(g) {
				continue
			}
			rep.PairsChecked++
			h, err := c.Compose(g, f)
			if err != nil {
				rep.Compose = append(rep.Compose, ComposeViolation[M]{G: g, F: f, Reason: fmt.Sprintf("compose failed: %v", err)})

				continue
			}
			if c.Dom(h) != c.Dom(f) || c.Cod(h) != c.Cod(g) {
				rep.Compose = append(rep.Compose, ComposeViolation[M]{
					G: g, F: f,
					Reason: fmt.Sprintf("composite runs %v→%v, want %v→%v", c.Dom(h), c.Cod(h), c.Dom(f), c.Cod(g)),
				})

				continue
			}
			if gid, err := c.Identity(c.Dom(g)); err == nil && c.Eq(g, gid) && !c.Eq(h, f) {
				rep.Compose = append(rep.Compose, ComposeViolation[M]{G: g, F: f, Reason: "left unit law violated"})
			}
			if fid, err := c.Identity(c.Dom(f)); err == nil && c.Eq(f, fid) && !c.Eq(h, g) {
				rep.Compose = append(rep.Compose, ComposeViolation[M]{G: g, F: f, Reason: "right unit law violated"})
			}
		}
	}

	// --- 4. Associativity per composable triple ---
	for _, f := range arrows {
		for _, g := range arrows {
			if c.Cod(f) != c.Dom(g) {
				continue
			}
			gf, err := c.Compose(g, f)
			if err != nil {
				continue // already recorded at pair level
			}
			for _, h := range arrows {
				if c.Cod(g) != c.Dom(h) {
					continue
				}
				rep.TriplesChecked++
				hg, err := c.Compose(h, g)
				if err != nil {
					continue
				}
				left, errL := c.Compose(h, gf)
				right, errR := c.Compose(hg, f)
				if errL != nil || errR != nil {
					rep.Assoc = append(rep.Assoc, AssocViolation[M]{H: h, G: g, F: f, Reason: "nested composite failed"})

					continue
				}
				if !c.Eq(left, right) {
					rep.Assoc = append(rep.Assoc, AssocViolation[M]{H: h, G: g, F: f, Reason: "h∘(g∘f) differs from (h∘g)∘f"})
				}
			}
		}
	}

	rep.Holds = len(rep.Identity) == 0 && len(rep.Endpoint) == 0 &&
		len(rep.Compose) == 0 && len(rep.Assoc) == 0

	return rep, nil
}
