package conecat_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaster151/catlim/cat"
	"github.com/blaster151/catlim/cone"
	"github.com/blaster151/catlim/conecat"
	"github.com/blaster151/catlim/diagram"
)

// buildChain3 assembles the composition-closed chain 0→1→2, the ambient
// poset for most fixtures here.
func buildChain3(t *testing.T) *cat.Fin[string, string] {
	t.Helper()
	b := cat.NewBuilder[string, string]()
	require.NoError(t, b.AddObject("0", "id:0"))
	require.NoError(t, b.AddObject("1", "id:1"))
	require.NoError(t, b.AddObject("2", "id:2"))
	require.NoError(t, b.AddArrow("f", "0", "1"))
	require.NoError(t, b.AddArrow("g", "1", "2"))
	require.NoError(t, b.AddArrow("gf", "0", "2"))
	require.NoError(t, b.SetComposite("g", "f", "gf"))
	fin, err := b.Build()
	require.NoError(t, err)

	return fin
}

// discretePair builds the two-object shape {x, y} with identities only.
func discretePair(t *testing.T) *cat.Fin[string, string] {
	t.Helper()
	b := cat.NewBuilder[string, string]()
	require.NoError(t, b.AddObject("x", "id:x"))
	require.NoError(t, b.AddObject("y", "id:y"))
	fin, err := b.Build()
	require.NoError(t, err)

	return fin
}

// pairDiagram maps the discrete pair into chain3, x↦"1" and y↦"2". Its
// limit cone is the meet of 1 and 2, which in the chain is 1.
func pairDiagram(t *testing.T) *diagram.Finite[string, string, string, string] {
	t.Helper()
	d, err := diagram.New[string, string, string, string](
		discretePair(t), buildChain3(t),
		map[string]string{"x": "1", "y": "2"},
		map[string]string{"id:x": "id:1", "id:y": "id:2"},
	)
	require.NoError(t, err)

	return d
}

func TestCones_DiscretePairEnumeration(t *testing.T) {
	c, err := conecat.Cones(pairDiagram(t))
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, []int{0, 1}, c.Objects())

	// Tips appear in ambient enumeration order: the span from 0, then
	// the span from 1.
	c0, err := c.Cone(0)
	require.NoError(t, err)
	assert.Equal(t, "0", c0.Tip)
	assert.Equal(t, map[string]string{"x": "f", "y": "gf"}, c0.Legs)

	c1, err := c.Cone(1)
	require.NoError(t, err)
	assert.Equal(t, "1", c1.Tip)
	assert.Equal(t, map[string]string{"x": "id:1", "y": "g"}, c1.Legs)

	// Exactly one mediator 0→1 (the chain arrow f) plus two identities.
	assert.Equal(t, []conecat.Arrow[string]{
		{Src: 0, Dst: 0, Mor: "id:0"},
		{Src: 0, Dst: 1, Mor: "f"},
		{Src: 1, Dst: 1, Mor: "id:1"},
	}, c.Arrows())
	assert.Equal(t, []conecat.Arrow[string]{{Src: 0, Dst: 1, Mor: "f"}}, c.Hom(0, 1))
	assert.Empty(t, c.Hom(1, 0))
}

func TestCones_TerminalityPicksTheMeet(t *testing.T) {
	c, err := conecat.Cones(pairDiagram(t))
	require.NoError(t, err)

	rep, err := c.Terminality(1)
	require.NoError(t, err)
	assert.True(t, rep.Holds)
	assert.True(t, rep.SelfIdentity)
	assert.Empty(t, rep.Failures)

	rep, err = c.Terminality(0)
	require.NoError(t, err)
	assert.False(t, rep.Holds)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, 1, rep.Failures[0].Object)
	assert.Contains(t, rep.Failures[0].Reason, "0 morphisms")
}

func TestCones_SatisfiesCategoryLaws(t *testing.T) {
	c, err := conecat.Cones(pairDiagram(t))
	require.NoError(t, err)

	rep, err := cat.CheckLaws[int, conecat.Arrow[string]](c)
	require.NoError(t, err)
	assert.True(t, rep.Holds)
	assert.Equal(t, 2, rep.ObjectsChecked)
	assert.Equal(t, 3, rep.ArrowsChecked)
}

func TestCones_ComposeReturnsEnumeratedRepresentative(t *testing.T) {
	c, err := conecat.Cones(pairDiagram(t))
	require.NoError(t, err)

	id0, err := c.Identity(0)
	require.NoError(t, err)
	step := c.Hom(0, 1)[0]

	got, err := c.Compose(step, id0)
	require.NoError(t, err)
	assert.True(t, c.Eq(step, got))
	assert.Equal(t, 0, c.Dom(got))
	assert.Equal(t, 1, c.Cod(got))
}

func TestCones_ComposeRejectsMismatchedEndpoints(t *testing.T) {
	c, err := conecat.Cones(pairDiagram(t))
	require.NoError(t, err)

	step := c.Hom(0, 1)[0]
	_, err = c.Compose(step, step)
	assert.ErrorIs(t, err, conecat.ErrNotComposable)
}

func TestCones_ComposeRejectsForeignArrow(t *testing.T) {
	c, err := conecat.Cones(pairDiagram(t))
	require.NoError(t, err)

	id0, err := c.Identity(0)
	require.NoError(t, err)

	// gf runs 0→2 in the chain, so it mediates no pair of these cones.
	bogus := conecat.Arrow[string]{Src: 0, Dst: 1, Mor: "gf"}
	_, err = c.Compose(bogus, id0)
	assert.ErrorIs(t, err, conecat.ErrForeignArrow)
}

func TestCones_IdentityBounds(t *testing.T) {
	c, err := conecat.Cones(pairDiagram(t))
	require.NoError(t, err)

	_, err = c.Identity(-1)
	assert.ErrorIs(t, err, conecat.ErrUnknownCone)
	_, err = c.Identity(2)
	assert.ErrorIs(t, err, conecat.ErrUnknownCone)
	_, err = c.Cone(7)
	assert.ErrorIs(t, err, conecat.ErrUnknownCone)
}

func TestCones_IndexOfRoundTrip(t *testing.T) {
	c, err := conecat.Cones(pairDiagram(t))
	require.NoError(t, err)

	c1, err := c.Cone(1)
	require.NoError(t, err)
	i, ok := c.IndexOf(c1)
	assert.True(t, ok)
	assert.Equal(t, 1, i)

	_, ok = c.IndexOf(cone.Cone[string, string, string, string]{
		Tip:  "2",
		Legs: map[string]string{"x": "g", "y": "id:2"},
	})
	assert.False(t, ok)
}

func TestCones_WalkingArrowHasSingleCone(t *testing.T) {
	b := cat.NewBuilder[string, string]()
	require.NoError(t, b.AddObject("a", "id:a"))
	require.NoError(t, b.AddObject("b", "id:b"))
	require.NoError(t, b.AddArrow("u", "a", "b"))
	shape, err := b.Build()
	require.NoError(t, err)

	d, err := diagram.New[string, string, string, string](
		shape, buildChain3(t),
		map[string]string{"a": "0", "b": "1"},
		map[string]string{"id:a": "id:0", "id:b": "id:1", "u": "f"},
	)
	require.NoError(t, err)

	c, err := conecat.Cones(d)
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())

	c0, err := c.Cone(0)
	require.NoError(t, err)
	assert.Equal(t, "0", c0.Tip)
	assert.Equal(t, map[string]string{"a": "id:0", "b": "f"}, c0.Legs)

	rep, err := c.Terminality(0)
	require.NoError(t, err)
	assert.True(t, rep.Holds)
}

func TestCones_EmptyShapeRecoversAmbient(t *testing.T) {
	empty, err := cat.NewBuilder[string, string]().Build()
	require.NoError(t, err)
	d, err := diagram.New[string, string, string, string](
		empty, buildChain3(t), map[string]string{}, map[string]string{},
	)
	require.NoError(t, err)

	// Legless cones are plain ambient objects, and their mediators are
	// all ambient arrows, so the cone category mirrors the chain.
	c, err := conecat.Cones(d)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Len())
	assert.Len(t, c.Arrows(), 6)

	rep, err := cat.CheckLaws[int, conecat.Arrow[string]](c)
	require.NoError(t, err)
	assert.True(t, rep.Holds)

	// The terminal cone sits over the chain top.
	top, ok, err := cat.FindTerminal[int, conecat.Arrow[string]](c)
	require.NoError(t, err)
	require.True(t, ok)
	cTop, err := c.Cone(top)
	require.NoError(t, err)
	assert.Equal(t, "2", cTop.Tip)
}

// quotientPair treats the two arrows of a parallel pair as one morphism,
// standing in for callers whose enumeration carries redundant
// representatives.
type quotientPair struct {
	*cat.Fin[string, string]
}

func (c *quotientPair) Eq(a, b string) bool {
	if a == "q" {
		a = "p"
	}
	if b == "q" {
		b = "p"
	}

	return a == b
}

func TestCones_DeduplicatesUnderOracle(t *testing.T) {
	b := cat.NewBuilder[string, string]()
	require.NoError(t, b.AddObject("X", "id:X"))
	require.NoError(t, b.AddObject("Y", "id:Y"))
	require.NoError(t, b.AddArrow("p", "X", "Y"))
	require.NoError(t, b.AddArrow("q", "X", "Y"))
	fin, err := b.Build()
	require.NoError(t, err)
	base := &quotientPair{Fin: fin}

	point := cat.NewBuilder[string, string]()
	require.NoError(t, point.AddObject("s", "id:s"))
	shape, err := point.Build()
	require.NoError(t, err)

	d, err := diagram.New[string, string, string, string](
		shape, base,
		map[string]string{"s": "Y"},
		map[string]string{"id:s": "id:Y"},
	)
	require.NoError(t, err)

	c, err := conecat.Cones(d)
	require.NoError(t, err)

	// (X; p) and (X; q) collapse to one cone, and p/q to one mediator,
	// so the apex over Y stays terminal with exactly-one counts.
	assert.Equal(t, 2, c.Len())
	assert.Len(t, c.Hom(0, 1), 1)

	rep, err := c.Terminality(1)
	require.NoError(t, err)
	assert.True(t, rep.Holds)
}

func TestCones_MaxConesBound(t *testing.T) {
	_, err := conecat.Cones(pairDiagram(t), conecat.WithMaxCones(1))
	assert.ErrorIs(t, err, conecat.ErrConeBoundExceeded)
}

func TestCones_OptionViolation(t *testing.T) {
	_, err := conecat.Cones(pairDiagram(t), conecat.WithMaxCones(-1))
	assert.ErrorIs(t, err, conecat.ErrOptionViolation)
}

func TestCones_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := conecat.Cones(pairDiagram(t), conecat.WithContext(ctx))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCones_NilDiagram(t *testing.T) {
	_, err := conecat.Cones[string, string, string, string](nil)
	assert.ErrorIs(t, err, conecat.ErrNilDiagram)
}

// coPairDiagram maps the discrete pair into chain3, x↦"0" and y↦"1".
// Its colimit cocone is the join of 0 and 1, which in the chain is 1.
func coPairDiagram(t *testing.T) *diagram.Finite[string, string, string, string] {
	t.Helper()
	d, err := diagram.New[string, string, string, string](
		discretePair(t), buildChain3(t),
		map[string]string{"x": "0", "y": "1"},
		map[string]string{"id:x": "id:0", "id:y": "id:1"},
	)
	require.NoError(t, err)

	return d
}

func TestCocones_DiscretePairEnumeration(t *testing.T) {
	c, err := conecat.Cocones(coPairDiagram(t))
	require.NoError(t, err)

	assert.Equal(t, 2, c.Len())

	c0, err := c.Cocone(0)
	require.NoError(t, err)
	assert.Equal(t, "1", c0.CoTip)
	assert.Equal(t, map[string]string{"x": "f", "y": "id:1"}, c0.Legs)

	c1, err := c.Cocone(1)
	require.NoError(t, err)
	assert.Equal(t, "2", c1.CoTip)
	assert.Equal(t, map[string]string{"x": "gf", "y": "g"}, c1.Legs)

	assert.Equal(t, []conecat.Arrow[string]{
		{Src: 0, Dst: 0, Mor: "id:1"},
		{Src: 0, Dst: 1, Mor: "g"},
		{Src: 1, Dst: 1, Mor: "id:2"},
	}, c.Arrows())
}

func TestCocones_InitialityPicksTheJoin(t *testing.T) {
	c, err := conecat.Cocones(coPairDiagram(t))
	require.NoError(t, err)

	rep, err := c.Initiality(0)
	require.NoError(t, err)
	assert.True(t, rep.Holds)

	rep, err = c.Initiality(1)
	require.NoError(t, err)
	assert.False(t, rep.Holds)
	require.Len(t, rep.Failures, 1)
	assert.Equal(t, 0, rep.Failures[0].Object)
}

func TestCocones_IndexOfRoundTrip(t *testing.T) {
	c, err := conecat.Cocones(coPairDiagram(t))
	require.NoError(t, err)

	c1, err := c.Cocone(1)
	require.NoError(t, err)
	i, ok := c.IndexOf(c1)
	assert.True(t, ok)
	assert.Equal(t, 1, i)
}
