package cone

import (
	"fmt"

	"github.com/blaster151/catlim/cat"
	"github.com/blaster151/catlim/diagram"
)

// Validate certifies a cone exhaustively: per shape object, the image
// is usable (supplied, enumerated in the base, has an identity) and the
// leg is present and runs Tip→image; per shape arrow a: i→j, the
// triangle legs[j] ≈ D(a)∘legs[i] commutes under the base Eq. Every
// check is reported; nothing short-circuits.
//
// Complexity: O(|shape objects| + |shape arrows|) compose calls.
func Validate[I comparable, A comparable, O comparable, M any](c Cone[I, A, O, M]) (Report[I, A], error) {
	return validate(c.D, c.Tip, c.Legs, true)
}

// ValidateCocone is the dual of Validate: legs run image→CoTip and the
// triangle per arrow a: i→j is legs[i] ≈ legs[j]∘D(a).
func ValidateCocone[I comparable, A comparable, O comparable, M any](c Cocone[I, A, O, M]) (Report[I, A], error) {
	return validate(c.D, c.CoTip, c.Legs, false)
}

// Quick collapses Validate into a single gate verdict carrying the
// first failing reason, in report order (objects, legs, foreign leg
// count, arrows). A nil diagram folds into a failing verdict so gate
// call sites stay single-valued.
func Quick[I comparable, A comparable, O comparable, M any](c Cone[I, A, O, M]) Verdict {
	rep, err := Validate(c)
	if err != nil {
		return Verdict{Reason: err.Error()}
	}

	return collapse(rep)
}

// QuickCocone is the dual of Quick.
func QuickCocone[I comparable, A comparable, O comparable, M any](c Cocone[I, A, O, M]) Verdict {
	rep, err := ValidateCocone(c)
	if err != nil {
		return Verdict{Reason: err.Error()}
	}

	return collapse(rep)
}

func validate[I comparable, A comparable, O comparable, M any](
	d *diagram.Finite[I, A, O, M],
	apex O,
	legs map[I]M,
	toDiagram bool,
) (Report[I, A], error) {
	var rep Report[I, A]
	if d == nil {
		return rep, ErrNilDiagram
	}
	shape, base := d.Shape(), d.Base()
	objects := shape.Objects()

	// --- 1. object checks: image supplied, enumerated, identity-bearing ---
	for _, i := range objects {
		oc := ObjectCheck[I]{Index: i, OK: true}
		img, err := d.Object(i)
		switch {
		case err != nil:
			oc.OK, oc.Reason = false, "diagram supplies no image"
		case !cat.HasObject(base, img):
			oc.OK, oc.Reason = false, fmt.Sprintf("image %v not an object of the base", img)
		default:
			if _, idErr := base.Identity(img); idErr != nil {
				oc.OK, oc.Reason = false, fmt.Sprintf("image %v has no identity: %v", img, idErr)
			}
		}
		rep.Objects = append(rep.Objects, oc)
	}

	// --- 2. leg checks: presence and endpoint typing ---
	for _, i := range objects {
		lc := LegCheck[I]{Index: i, OK: true}
		leg, ok := legs[i]
		img, imgErr := d.Object(i)
		switch {
		case !ok:
			lc.OK, lc.Reason = false, "no leg for index"
		case toDiagram && base.Dom(leg) != apex:
			lc.OK, lc.Reason = false, fmt.Sprintf("leg runs from %v, want tip %v", base.Dom(leg), apex)
		case !toDiagram && base.Cod(leg) != apex:
			lc.OK, lc.Reason = false, fmt.Sprintf("leg runs into %v, want cotip %v", base.Cod(leg), apex)
		case imgErr == nil && toDiagram && base.Cod(leg) != img:
			lc.OK, lc.Reason = false, fmt.Sprintf("leg lands on %v, want image %v", base.Cod(leg), img)
		case imgErr == nil && !toDiagram && base.Dom(leg) != img:
			lc.OK, lc.Reason = false, fmt.Sprintf("leg departs from %v, want image %v", base.Dom(leg), img)
		}
		rep.Legs = append(rep.Legs, lc)
	}
	rep.ForeignLegs = len(legs)
	for _, i := range objects {
		if _, ok := legs[i]; ok {
			rep.ForeignLegs--
		}
	}

	// --- 3. arrow checks: one commuting triangle per shape arrow ---
	for _, a := range shape.Arrows() {
		ac := ArrowCheck[A]{Arrow: a, OK: true}
		from, to := shape.Dom(a), shape.Cod(a)
		m, err := d.Morphism(a)
		legFrom, okFrom := legs[from]
		legTo, okTo := legs[to]
		switch {
		case err != nil:
			ac.OK, ac.Reason = false, "diagram supplies no image"
		case !okFrom || !okTo:
			ac.OK, ac.Reason = false, "missing leg at an endpoint"
		case toDiagram:
			comp, cErr := base.Compose(m, legFrom)
			if cErr != nil {
				ac.OK, ac.Reason = false, fmt.Sprintf("composite failed: %v", cErr)
			} else if !base.Eq(legTo, comp) {
				ac.OK, ac.Reason = false, fmt.Sprintf("leg at %v differs from image∘leg at %v", to, from)
			}
		default:
			comp, cErr := base.Compose(legTo, m)
			if cErr != nil {
				ac.OK, ac.Reason = false, fmt.Sprintf("composite failed: %v", cErr)
			} else if !base.Eq(legFrom, comp) {
				ac.OK, ac.Reason = false, fmt.Sprintf("leg at %v differs from leg∘image at %v", from, to)
			}
		}
		rep.Arrows = append(rep.Arrows, ac)
	}

	rep.Holds = rep.ForeignLegs == 0
	for _, oc := range rep.Objects {
		rep.Holds = rep.Holds && oc.OK
	}
	for _, lc := range rep.Legs {
		rep.Holds = rep.Holds && lc.OK
	}
	for _, ac := range rep.Arrows {
		rep.Holds = rep.Holds && ac.OK
	}

	return rep, nil
}

func collapse[I comparable, A comparable](rep Report[I, A]) Verdict {
	if rep.Holds {
		return Verdict{Holds: true}
	}
	for _, oc := range rep.Objects {
		if !oc.OK {
			return Verdict{Reason: fmt.Sprintf("object %v: %s", oc.Index, oc.Reason)}
		}
	}
	for _, lc := range rep.Legs {
		if !lc.OK {
			return Verdict{Reason: fmt.Sprintf("leg %v: %s", lc.Index, lc.Reason)}
		}
	}
	if rep.ForeignLegs > 0 {
		return Verdict{Reason: fmt.Sprintf("legs keyed outside the shape: %d", rep.ForeignLegs)}
	}
	for _, ac := range rep.Arrows {
		if !ac.OK {
			return Verdict{Reason: fmt.Sprintf("arrow %v: %s", ac.Arrow, ac.Reason)}
		}
	}

	return Verdict{Reason: "validation failed"}
}
