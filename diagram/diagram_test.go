package diagram_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaster151/catlim/cat"
	"github.com/blaster151/catlim/diagram"
)

// buildWalkShape assembles the walking arrow a→b as a shape category.
func buildWalkShape(t *testing.T) *cat.Fin[string, string] {
	t.Helper()
	b := cat.NewBuilder[string, string]()
	require.NoError(t, b.AddObject("a", "id:a"))
	require.NoError(t, b.AddObject("b", "id:b"))
	require.NoError(t, b.AddArrow("u", "a", "b"))
	fin, err := b.Build()
	require.NoError(t, err)

	return fin
}

// buildBaseChain3 assembles the composition-closed chain 0→1→2.
func buildBaseChain3(t *testing.T) *cat.Fin[string, string] {
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

func walkAssignments() (map[string]string, map[string]string) {
	onObjects := map[string]string{"a": "0", "b": "1"}
	onMorphisms := map[string]string{"id:a": "id:0", "id:b": "id:1", "u": "f"}

	return onObjects, onMorphisms
}

func TestNew_ValidatesFunctor(t *testing.T) {
	shape := buildWalkShape(t)
	base := buildBaseChain3(t)
	onObjects, onMorphisms := walkAssignments()

	d, err := diagram.New[string, string, string, string](shape, base, onObjects, onMorphisms)
	require.NoError(t, err)

	img, err := d.Object("a")
	require.NoError(t, err)
	assert.Equal(t, "0", img)

	mor, err := d.Morphism("u")
	require.NoError(t, err)
	assert.Equal(t, "f", mor)

	_, err = d.Object("zz")
	assert.ErrorIs(t, err, diagram.ErrUnknownIndex)
	_, err = d.Morphism("zz")
	assert.ErrorIs(t, err, diagram.ErrUnknownIndex)
}

func TestNew_AssignmentsAreCopied(t *testing.T) {
	shape := buildWalkShape(t)
	base := buildBaseChain3(t)
	onObjects, onMorphisms := walkAssignments()

	d, err := diagram.New[string, string, string, string](shape, base, onObjects, onMorphisms)
	require.NoError(t, err)

	// Mutating the input maps must not leak into the diagram.
	onObjects["a"] = "2"
	onMorphisms["u"] = "g"

	img, err := d.Object("a")
	require.NoError(t, err)
	assert.Equal(t, "0", img)
}

func TestNew_MissingObjectImage(t *testing.T) {
	shape := buildWalkShape(t)
	base := buildBaseChain3(t)
	onObjects, onMorphisms := walkAssignments()
	delete(onObjects, "b")

	_, err := diagram.New[string, string, string, string](shape, base, onObjects, onMorphisms)
	assert.ErrorIs(t, err, diagram.ErrMissingObjectImage)
}

func TestNew_ForeignIndex(t *testing.T) {
	shape := buildWalkShape(t)
	base := buildBaseChain3(t)
	onObjects, onMorphisms := walkAssignments()
	onObjects["ghost"] = "2"

	_, err := diagram.New[string, string, string, string](shape, base, onObjects, onMorphisms)
	assert.ErrorIs(t, err, diagram.ErrForeignIndex)
}

func TestNew_MissingArrowImage(t *testing.T) {
	shape := buildWalkShape(t)
	base := buildBaseChain3(t)
	onObjects, onMorphisms := walkAssignments()
	delete(onMorphisms, "u")

	_, err := diagram.New[string, string, string, string](shape, base, onObjects, onMorphisms)
	assert.ErrorIs(t, err, diagram.ErrMissingArrowImage)
}

func TestNew_ForeignArrow(t *testing.T) {
	shape := buildWalkShape(t)
	base := buildBaseChain3(t)
	onObjects, onMorphisms := walkAssignments()
	onMorphisms["ghost"] = "g"

	_, err := diagram.New[string, string, string, string](shape, base, onObjects, onMorphisms)
	assert.ErrorIs(t, err, diagram.ErrForeignArrow)
}

func TestNew_ImageNotInBase(t *testing.T) {
	shape := buildWalkShape(t)
	base := buildBaseChain3(t)
	onObjects, onMorphisms := walkAssignments()
	onObjects["a"] = "9"

	_, err := diagram.New[string, string, string, string](shape, base, onObjects, onMorphisms)
	assert.ErrorIs(t, err, diagram.ErrImageNotInBase)
}

func TestNew_EndpointMismatch(t *testing.T) {
	shape := buildWalkShape(t)
	base := buildBaseChain3(t)
	onObjects, onMorphisms := walkAssignments()
	// g runs 1→2 in the base; u's images must run 0→1.
	onMorphisms["u"] = "g"

	_, err := diagram.New[string, string, string, string](shape, base, onObjects, onMorphisms)
	assert.ErrorIs(t, err, diagram.ErrEndpointMismatch)
}

func TestNew_IdentityNotPreserved(t *testing.T) {
	// Shape: the terminal category, one object s. Base: Z/2 as a
	// one-object category with a non-identity involution e.
	sb := cat.NewBuilder[string, string]()
	require.NoError(t, sb.AddObject("s", "id:s"))
	shape, err := sb.Build()
	require.NoError(t, err)

	bb := cat.NewBuilder[string, string]()
	require.NoError(t, bb.AddObject("x", "id:x"))
	require.NoError(t, bb.AddArrow("e", "x", "x"))
	require.NoError(t, bb.SetComposite("e", "e", "id:x"))
	base, err := bb.Build()
	require.NoError(t, err)

	_, err = diagram.New[string, string, string, string](shape, base,
		map[string]string{"s": "x"},
		map[string]string{"id:s": "e"})
	assert.ErrorIs(t, err, diagram.ErrIdentityNotPreserved)
}

func TestNew_CompositionNotPreserved(t *testing.T) {
	shape := buildBaseChain3(t)

	// Base adds h parallel to gf, so the composite can be mis-assigned
	// without tripping the endpoint check.
	bb := cat.NewBuilder[string, string]()
	require.NoError(t, bb.AddObject("0", "id:0"))
	require.NoError(t, bb.AddObject("1", "id:1"))
	require.NoError(t, bb.AddObject("2", "id:2"))
	require.NoError(t, bb.AddArrow("f", "0", "1"))
	require.NoError(t, bb.AddArrow("g", "1", "2"))
	require.NoError(t, bb.AddArrow("gf", "0", "2"))
	require.NoError(t, bb.AddArrow("h", "0", "2"))
	require.NoError(t, bb.SetComposite("g", "f", "gf"))
	base, err := bb.Build()
	require.NoError(t, err)

	onObjects := map[string]string{"0": "0", "1": "1", "2": "2"}
	onMorphisms := map[string]string{
		"id:0": "id:0", "id:1": "id:1", "id:2": "id:2",
		"f": "f", "g": "g",
		"gf": "h", // g∘f lands on gf, not h
	}

	_, err = diagram.New[string, string, string, string](shape, base, onObjects, onMorphisms)
	assert.ErrorIs(t, err, diagram.ErrCompositionNotPreserved)
}

func TestNew_NilCategories(t *testing.T) {
	base := buildBaseChain3(t)
	_, err := diagram.New[string, string, string, string](nil, base, nil, nil)
	assert.ErrorIs(t, err, diagram.ErrNilShape)

	shape := buildWalkShape(t)
	_, err = diagram.New[string, string, string, string](shape, nil, nil, nil)
	assert.ErrorIs(t, err, diagram.ErrNilBase)
}

func TestRestrict_DropsMiddleIndex(t *testing.T) {
	shape := buildBaseChain3(t)
	base := buildBaseChain3(t)

	// Identity functor on the chain.
	onObjects := map[string]string{"0": "0", "1": "1", "2": "2"}
	onMorphisms := map[string]string{
		"id:0": "id:0", "id:1": "id:1", "id:2": "id:2",
		"f": "f", "g": "g", "gf": "gf",
	}
	d, err := diagram.New[string, string, string, string](shape, base, onObjects, onMorphisms)
	require.NoError(t, err)

	r, err := d.Restrict([]string{"0", "2"})
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "2"}, r.Shape().Objects())
	assert.Equal(t, []string{"id:0", "id:2", "gf"}, r.Shape().Arrows())

	mor, err := r.Morphism("gf")
	require.NoError(t, err)
	assert.Equal(t, "gf", mor)

	_, err = r.Morphism("f")
	assert.ErrorIs(t, err, diagram.ErrUnknownIndex)
}

func TestRestrict_UnknownIndex(t *testing.T) {
	shape := buildWalkShape(t)
	base := buildBaseChain3(t)
	onObjects, onMorphisms := walkAssignments()
	d, err := diagram.New[string, string, string, string](shape, base, onObjects, onMorphisms)
	require.NoError(t, err)

	_, err = d.Restrict([]string{"a", "nope"})
	assert.ErrorIs(t, err, cat.ErrUnknownObject)
}

func discreteSource(ids ...string) diagram.Source[string, string] {
	arrows := make([]string, len(ids))
	for n, i := range ids {
		arrows[n] = "id:" + i
	}

	return diagram.Source[string, string]{
		Objects:  func() []string { return ids },
		Arrows:   func() []string { return arrows },
		Identity: func(i string) string { return "id:" + i },
		Compose:  func(g, _ string) (string, error) { return g, nil },
		Dom:      func(a string) string { return strings.TrimPrefix(a, "id:") },
		Cod:      func(a string) string { return strings.TrimPrefix(a, "id:") },
	}
}

func TestSmall_MaterializeAndMemoise(t *testing.T) {
	base := buildBaseChain3(t)
	s, err := diagram.NewSmall[string, string, string, string](
		discreteSource("x", "y"), base,
		func(i string) (string, error) {
			if i == "x" {
				return "0", nil
			}
			return "1", nil
		},
		func(a string) (string, error) {
			if a == "id:x" {
				return "id:0", nil
			}
			return "id:1", nil
		},
	)
	require.NoError(t, err)

	_, err = s.Materialize(1)
	assert.ErrorIs(t, err, diagram.ErrIndexBoundExceeded)

	d, err := s.Materialize(10)
	require.NoError(t, err)
	img, err := d.Object("x")
	require.NoError(t, err)
	assert.Equal(t, "0", img)

	again, err := s.Materialize(10)
	require.NoError(t, err)
	assert.Same(t, d, again)
}

func TestSmall_BoundNonPositive(t *testing.T) {
	base := buildBaseChain3(t)
	s, err := diagram.NewSmall[string, string, string, string](
		discreteSource("x"), base,
		func(string) (string, error) { return "0", nil },
		func(string) (string, error) { return "id:0", nil },
	)
	require.NoError(t, err)

	_, err = s.Materialize(0)
	assert.ErrorIs(t, err, diagram.ErrBoundNonPositive)
}

func TestNewSmall_NilSource(t *testing.T) {
	base := buildBaseChain3(t)
	src := discreteSource("x")
	src.Compose = nil

	_, err := diagram.NewSmall[string, string, string, string](src, base,
		func(string) (string, error) { return "0", nil },
		func(string) (string, error) { return "id:0", nil },
	)
	assert.ErrorIs(t, err, diagram.ErrNilSource)
}
