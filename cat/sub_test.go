package cat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaster151/catlim/cat"
)

func TestFullSub_DropsMiddleObject(t *testing.T) {
	fin := buildChain3(t)
	sub, err := cat.FullSub[string, string](fin, []string{"0", "2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"0", "2"}, sub.Objects())
	// f and g touch the dropped object 1; the composite gf survives.
	assert.Equal(t, []string{"id:0", "id:2", "gf"}, sub.Arrows())

	id0, err := sub.Identity("0")
	require.NoError(t, err)
	assert.Equal(t, "id:0", id0)

	_, err = sub.Identity("1")
	assert.ErrorIs(t, err, cat.ErrUnknownObject)
}

func TestFullSub_ViewIsLawful(t *testing.T) {
	fin := buildChain3(t)
	sub, err := cat.FullSub[string, string](fin, []string{"0", "2"})
	require.NoError(t, err)

	rep, err := cat.CheckLaws[string, string](sub)
	require.NoError(t, err)
	assert.True(t, rep.Holds)
	assert.Equal(t, 2, rep.ObjectsChecked)
	assert.Equal(t, 3, rep.ArrowsChecked)
}

func TestFullSub_DeduplicatesObjects(t *testing.T) {
	fin := buildChain3(t)
	sub, err := cat.FullSub[string, string](fin, []string{"2", "0", "2", "0"})
	require.NoError(t, err)

	// First occurrence wins the position.
	assert.Equal(t, []string{"2", "0"}, sub.Objects())
}

func TestFullSub_UnknownObject(t *testing.T) {
	fin := buildChain3(t)
	_, err := cat.FullSub[string, string](fin, []string{"0", "7"})
	assert.ErrorIs(t, err, cat.ErrUnknownObject)
}

func TestFullSub_NilBase(t *testing.T) {
	_, err := cat.FullSub[string, string](nil, []string{"0"})
	assert.ErrorIs(t, err, cat.ErrNilCategory)
}

func TestFullSub_ComposeStaysInside(t *testing.T) {
	fin := buildChain3(t)
	sub, err := cat.FullSub[string, string](fin, []string{"0", "2"})
	require.NoError(t, err)

	gf, err := sub.Compose("gf", "id:0")
	require.NoError(t, err)
	assert.Equal(t, "gf", gf)
	assert.Equal(t, "0", sub.Dom("gf"))
	assert.Equal(t, "2", sub.Cod("gf"))
}
