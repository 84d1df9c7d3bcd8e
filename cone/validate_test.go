package cone_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaster151/catlim/cat"
	"github.com/blaster151/catlim/cone"
	"github.com/blaster151/catlim/diagram"
)

// triangleDiagram builds the walking-arrow diagram a→b landing on
// m: x→y inside a base that also has a tip t with two arrows into y,
// exactly one of which closes the triangle through la: t→x.
//
//	        t
//	  la ╱  │good/bad
//	    x → y
//	      m
func triangleDiagram(t *testing.T) (*diagram.Finite[string, string, string, string], *cat.Fin[string, string]) {
	t.Helper()

	sb := cat.NewBuilder[string, string]()
	require.NoError(t, sb.AddObject("a", "id:a"))
	require.NoError(t, sb.AddObject("b", "id:b"))
	require.NoError(t, sb.AddArrow("u", "a", "b"))
	shape, err := sb.Build()
	require.NoError(t, err)

	bb := cat.NewBuilder[string, string]()
	require.NoError(t, bb.AddObject("t", "id:t"))
	require.NoError(t, bb.AddObject("x", "id:x"))
	require.NoError(t, bb.AddObject("y", "id:y"))
	require.NoError(t, bb.AddArrow("m", "x", "y"))
	require.NoError(t, bb.AddArrow("la", "t", "x"))
	require.NoError(t, bb.AddArrow("good", "t", "y"))
	require.NoError(t, bb.AddArrow("bad", "t", "y"))
	require.NoError(t, bb.SetComposite("m", "la", "good"))
	base, err := bb.Build()
	require.NoError(t, err)

	d, err := diagram.New[string, string, string, string](shape, base,
		map[string]string{"a": "x", "b": "y"},
		map[string]string{"id:a": "id:x", "id:b": "id:y", "u": "m"})
	require.NoError(t, err)

	return d, base
}

func TestValidate_CommutingCone(t *testing.T) {
	d, _ := triangleDiagram(t)
	c := cone.Cone[string, string, string, string]{
		Tip:  "t",
		Legs: map[string]string{"a": "la", "b": "good"},
		D:    d,
	}

	rep, err := cone.Validate(c)
	require.NoError(t, err)
	assert.True(t, rep.Holds)
	require.Len(t, rep.Objects, 2)
	require.Len(t, rep.Legs, 2)
	require.Len(t, rep.Arrows, 3) // id:a, id:b, u
	for _, ac := range rep.Arrows {
		assert.True(t, ac.OK, "arrow %s: %s", ac.Arrow, ac.Reason)
	}
}

func TestValidate_BrokenTriangle(t *testing.T) {
	d, _ := triangleDiagram(t)
	c := cone.Cone[string, string, string, string]{
		Tip:  "t",
		Legs: map[string]string{"a": "la", "b": "bad"},
		D:    d,
	}

	rep, err := cone.Validate(c)
	require.NoError(t, err)
	assert.False(t, rep.Holds)

	// Only the u triangle breaks; identities still commute.
	var broken []string
	for _, ac := range rep.Arrows {
		if !ac.OK {
			broken = append(broken, ac.Arrow)
			assert.Contains(t, ac.Reason, "differs from image∘leg")
		}
	}
	assert.Equal(t, []string{"u"}, broken)
}

func TestValidate_MissingLeg(t *testing.T) {
	d, _ := triangleDiagram(t)
	c := cone.Cone[string, string, string, string]{
		Tip:  "t",
		Legs: map[string]string{"a": "la"},
		D:    d,
	}

	rep, err := cone.Validate(c)
	require.NoError(t, err)
	assert.False(t, rep.Holds)
	assert.False(t, rep.Legs[1].OK)
	assert.Equal(t, "no leg for index", rep.Legs[1].Reason)
}

func TestValidate_WrongEndpoints(t *testing.T) {
	d, _ := triangleDiagram(t)

	// Leg at a departs from x, not from the tip t.
	c := cone.Cone[string, string, string, string]{
		Tip:  "t",
		Legs: map[string]string{"a": "id:x", "b": "good"},
		D:    d,
	}
	rep, err := cone.Validate(c)
	require.NoError(t, err)
	assert.False(t, rep.Holds)
	assert.Contains(t, rep.Legs[0].Reason, "want tip t")

	// Leg at a lands on y, not on the image x.
	c.Legs = map[string]string{"a": "good", "b": "good"}
	rep, err = cone.Validate(c)
	require.NoError(t, err)
	assert.False(t, rep.Holds)
	assert.Contains(t, rep.Legs[0].Reason, "want image x")
}

func TestValidate_ForeignLegs(t *testing.T) {
	d, _ := triangleDiagram(t)
	c := cone.Cone[string, string, string, string]{
		Tip:  "t",
		Legs: map[string]string{"a": "la", "b": "good", "ghost": "id:t"},
		D:    d,
	}

	rep, err := cone.Validate(c)
	require.NoError(t, err)
	assert.False(t, rep.Holds)
	assert.Equal(t, 1, rep.ForeignLegs)
}

func TestValidate_NilDiagram(t *testing.T) {
	_, err := cone.Validate(cone.Cone[string, string, string, string]{Tip: "t"})
	assert.ErrorIs(t, err, cone.ErrNilDiagram)
}

func TestQuick_FirstReason(t *testing.T) {
	d, _ := triangleDiagram(t)

	v := cone.Quick(cone.Cone[string, string, string, string]{
		Tip:  "t",
		Legs: map[string]string{"a": "la", "b": "good"},
		D:    d,
	})
	assert.True(t, v.Holds)
	assert.Empty(t, v.Reason)

	v = cone.Quick(cone.Cone[string, string, string, string]{
		Tip:  "t",
		Legs: map[string]string{"a": "la", "b": "bad"},
		D:    d,
	})
	assert.False(t, v.Holds)
	assert.Contains(t, v.Reason, "arrow u")

	v = cone.Quick(cone.Cone[string, string, string, string]{Tip: "t"})
	assert.False(t, v.Holds)
	assert.Contains(t, v.Reason, "no diagram")
}

// cotriangleDiagram is the dual fixture: the walking arrow lands on
// m: x→y and the base has two arrows x→s, one of which factors through
// ly: y→s.
func cotriangleDiagram(t *testing.T) *diagram.Finite[string, string, string, string] {
	t.Helper()

	sb := cat.NewBuilder[string, string]()
	require.NoError(t, sb.AddObject("a", "id:a"))
	require.NoError(t, sb.AddObject("b", "id:b"))
	require.NoError(t, sb.AddArrow("u", "a", "b"))
	shape, err := sb.Build()
	require.NoError(t, err)

	bb := cat.NewBuilder[string, string]()
	require.NoError(t, bb.AddObject("x", "id:x"))
	require.NoError(t, bb.AddObject("y", "id:y"))
	require.NoError(t, bb.AddObject("s", "id:s"))
	require.NoError(t, bb.AddArrow("m", "x", "y"))
	require.NoError(t, bb.AddArrow("ly", "y", "s"))
	require.NoError(t, bb.AddArrow("good", "x", "s"))
	require.NoError(t, bb.AddArrow("bad", "x", "s"))
	require.NoError(t, bb.SetComposite("ly", "m", "good"))
	base, err := bb.Build()
	require.NoError(t, err)

	d, err := diagram.New[string, string, string, string](shape, base,
		map[string]string{"a": "x", "b": "y"},
		map[string]string{"id:a": "id:x", "id:b": "id:y", "u": "m"})
	require.NoError(t, err)

	return d
}

func TestValidateCocone_Commuting(t *testing.T) {
	d := cotriangleDiagram(t)
	c := cone.Cocone[string, string, string, string]{
		CoTip: "s",
		Legs:  map[string]string{"a": "good", "b": "ly"},
		D:     d,
	}

	rep, err := cone.ValidateCocone(c)
	require.NoError(t, err)
	assert.True(t, rep.Holds)
}

func TestValidateCocone_BrokenTriangle(t *testing.T) {
	d := cotriangleDiagram(t)
	c := cone.Cocone[string, string, string, string]{
		CoTip: "s",
		Legs:  map[string]string{"a": "bad", "b": "ly"},
		D:     d,
	}

	rep, err := cone.ValidateCocone(c)
	require.NoError(t, err)
	assert.False(t, rep.Holds)

	v := cone.QuickCocone(c)
	assert.False(t, v.Holds)
	assert.Contains(t, v.Reason, "arrow u")
	assert.Contains(t, v.Reason, "leg∘image")
}
