package cone

import (
	"errors"

	"github.com/blaster151/catlim/diagram"
)

// ErrNilDiagram is returned when a cone or cocone carries no diagram.
var ErrNilDiagram = errors.New("cone: no diagram attached")

// Cone is an apex with one candidate leg per shape object. It makes no
// claim of commutativity; Validate certifies that. Legs is keyed by
// shape object, Tip is the common domain of every leg.
type Cone[I comparable, A comparable, O comparable, M any] struct {
	Tip  O
	Legs map[I]M
	D    *diagram.Finite[I, A, O, M]
}

// Cocone is the dual of Cone: legs run from the diagram images into
// the common codomain CoTip.
type Cocone[I comparable, A comparable, O comparable, M any] struct {
	CoTip O
	Legs  map[I]M
	D     *diagram.Finite[I, A, O, M]
}

// ObjectCheck reports whether one shape object's image is usable: the
// diagram supplies it, the base enumerates it, and it has an identity.
type ObjectCheck[I comparable] struct {
	Index  I
	OK     bool
	Reason string
}

// LegCheck reports whether one leg is present and correctly typed.
type LegCheck[I comparable] struct {
	Index  I
	OK     bool
	Reason string
}

// ArrowCheck reports whether one shape arrow's triangle commutes.
type ArrowCheck[A comparable] struct {
	Arrow  A
	OK     bool
	Reason string
}

// Report is the exhaustive outcome of Validate or ValidateCocone: one
// row per shape object (twice: image usability and leg typing) and one
// per shape arrow, all in shape enumeration order. ForeignLegs counts
// leg keys that are not shape objects. Holds is true iff every row is
// OK and ForeignLegs is zero.
type Report[I comparable, A comparable] struct {
	Holds       bool
	Objects     []ObjectCheck[I]
	Legs        []LegCheck[I]
	Arrows      []ArrowCheck[A]
	ForeignLegs int
}

// Verdict is the collapsed form of a Report: overall pass/fail plus
// the first failing reason.
type Verdict struct {
	Holds  bool
	Reason string
}
