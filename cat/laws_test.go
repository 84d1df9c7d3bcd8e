package cat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaster151/catlim/cat"
)

// flawedCat wraps a lawful Fin and mis-reports one identity, simulating
// a caller-supplied category that breaks the contract.
type flawedCat struct {
	*cat.Fin[string, string]
	badIdentityAt string
	badValue      string
}

func (f *flawedCat) Identity(o string) (string, error) {
	if o == f.badIdentityAt {
		return f.badValue, nil
	}

	return f.Fin.Identity(o)
}

func TestCheckLaws_LawfulCategory(t *testing.T) {
	fin := buildChain3(t)
	rep, err := cat.CheckLaws[string, string](fin)
	require.NoError(t, err)

	assert.True(t, rep.Holds)
	assert.Empty(t, rep.Identity)
	assert.Empty(t, rep.Endpoint)
	assert.Empty(t, rep.Compose)
	assert.Empty(t, rep.Assoc)
	// The sweep really covered the category.
	assert.Equal(t, 3, rep.ObjectsChecked)
	assert.Equal(t, 6, rep.ArrowsChecked)
	assert.Greater(t, rep.PairsChecked, 0)
	assert.Greater(t, rep.TriplesChecked, 0)
}

func TestCheckLaws_BrokenIdentity(t *testing.T) {
	// Identity("b") answers f: a→b, which is not an endo-arrow at b.
	bad := &flawedCat{Fin: buildWalkingArrow(t), badIdentityAt: "b", badValue: "f"}
	rep, err := cat.CheckLaws[string, string](bad)
	require.NoError(t, err)

	assert.False(t, rep.Holds)
	require.Len(t, rep.Identity, 1)
	assert.Equal(t, "b", rep.Identity[0].Object)
	assert.Contains(t, rep.Identity[0].Reason, "identity runs")
}

func TestCheckLaws_NilCategory(t *testing.T) {
	_, err := cat.CheckLaws[string, string](nil)
	assert.ErrorIs(t, err, cat.ErrNilCategory)
}
