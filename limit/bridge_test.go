package limit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaster151/catlim/finset"
	"github.com/blaster151/catlim/limit"
)

// parallelPairFixture is the pair f, g: A→B with f the bijection and g
// the constant, agreeing on 1 alone.
func parallelPairFixture(t *testing.T) (*finset.Universe, finset.Func, finset.Func) {
	t.Helper()
	u := finset.New()
	require.NoError(t, u.AddSet("A", []string{"1", "2"}))
	require.NoError(t, u.AddSet("B", []string{"x", "y"}))

	f := funcOf(t, u, "A", "B", map[string]string{"1": "x", "2": "y"})
	g := funcOf(t, u, "A", "B", map[string]string{"1": "x", "2": "x"})

	return u, f, g
}

func TestEqualizersViaPullbacks_AgreesWithTheNativeEqualizer(t *testing.T) {
	u, f, g := parallelPairFixture(t)
	tr := u.Traits()

	nat, err := tr.Equalize(f, g)
	require.NoError(t, err)

	br := limit.EqualizersViaPullbacks[string, finset.Func](u, tr, tr)
	eq, err := br.Equalize(f, g)
	require.NoError(t, err)

	// Different apex objects, same subobject of A: both inclusions
	// select exactly the element 1.
	natElems, ok := u.Elems(nat.Obj)
	require.True(t, ok)
	brElems, ok := u.Elems(eq.Obj)
	require.True(t, ok)
	assert.Len(t, brElems, len(natElems))
	assert.Equal(t, nat.Include.Table, eq.Include.Table)
	assert.Equal(t, "A", eq.Include.Cod)
}

func TestEqualizersViaPullbacks_FactorsAFork(t *testing.T) {
	u, f, g := parallelPairFixture(t)
	tr := u.Traits()
	require.NoError(t, u.AddSet("C", []string{"c"}))

	br := limit.EqualizersViaPullbacks[string, finset.Func](u, tr, tr)
	eq, err := br.Equalize(f, g)
	require.NoError(t, err)

	fork := funcOf(t, u, "C", "A", map[string]string{"c": "1"})
	out := br.FactorFork(f, g, eq, fork)
	require.True(t, out.Factored, out.Reason)
	assert.Equal(t, "C", out.Mediator.Dom)
	assert.Equal(t, eq.Obj, out.Mediator.Cod)

	through, err := u.Compose(eq.Include, out.Mediator)
	require.NoError(t, err)
	assert.True(t, u.Eq(through, fork))

	// An arrow landing on 2 separates f from g and cannot factor.
	astray := funcOf(t, u, "C", "A", map[string]string{"c": "2"})
	out = br.FactorFork(f, g, eq, astray)
	assert.False(t, out.Factored)
	assert.Contains(t, out.Reason, "does not equalize")
}

func TestEqualizersViaPullbacks_DeclinesAForeignEqualizer(t *testing.T) {
	u, f, g := parallelPairFixture(t)
	tr := u.Traits()
	require.NoError(t, u.AddSet("C", []string{"c"}))

	nat, err := tr.Equalize(f, g)
	require.NoError(t, err)

	br := limit.EqualizersViaPullbacks[string, finset.Func](u, tr, tr)
	fork := funcOf(t, u, "C", "A", map[string]string{"c": "1"})
	out := br.FactorFork(f, g, nat, fork)
	assert.False(t, out.Factored)
	assert.Contains(t, out.Reason, "not issued by this bridge")
}

func TestEqualizersViaPullbacks_RejectsNonParallelPairs(t *testing.T) {
	u, f, _ := parallelPairFixture(t)
	tr := u.Traits()

	h := funcOf(t, u, "B", "A", map[string]string{"x": "1", "y": "2"})
	br := limit.EqualizersViaPullbacks[string, finset.Func](u, tr, tr)

	_, err := br.Equalize(f, h)
	assert.ErrorIs(t, err, limit.ErrNotParallel)
}

// reflexivePullbacks answers every cospan with its domain and identity
// projections, an uncertifiable square whenever the cospan arrows
// differ.
type reflexivePullbacks struct {
	*finset.Traits
	u *finset.Universe
}

func (p reflexivePullbacks) Pullback(f, _ finset.Func) (limit.Pullback[string, finset.Func], error) {
	id, err := p.u.Identity(f.Dom)
	if err != nil {
		return limit.Pullback[string, finset.Func]{}, err
	}

	return limit.Pullback[string, finset.Func]{Apex: f.Dom, Left: id, Right: id}, nil
}

func TestEqualizersViaPullbacks_RejectsAnUncertifiedPullback(t *testing.T) {
	u, f, g := parallelPairFixture(t)
	tr := u.Traits()

	br := limit.EqualizersViaPullbacks[string, finset.Func](u, tr, reflexivePullbacks{tr, u})
	_, err := br.Equalize(f, g)
	assert.ErrorIs(t, err, limit.ErrUncertifiedPullback)
}

// panickyPullbacks pulls back honestly but explodes when asked to
// factor a span.
type panickyPullbacks struct{ *finset.Traits }

func (panickyPullbacks) FactorSpan(_, _ finset.Func, _ limit.Pullback[string, finset.Func], _, _ finset.Func) limit.Factorization[finset.Func] {
	panic("oracle exploded")
}

func TestEqualizersViaPullbacks_RecoversAnOraclePanic(t *testing.T) {
	u, f, g := parallelPairFixture(t)
	tr := u.Traits()
	require.NoError(t, u.AddSet("C", []string{"c"}))

	br := limit.EqualizersViaPullbacks[string, finset.Func](u, tr, panickyPullbacks{tr})
	eq, err := br.Equalize(f, g)
	require.NoError(t, err)

	fork := funcOf(t, u, "C", "A", map[string]string{"c": "1"})
	out := br.FactorFork(f, g, eq, fork)
	assert.False(t, out.Factored)
	assert.Contains(t, out.Reason, "pullback oracle panic")
}

func TestCoequalizersViaPushouts_AgreesWithTheNativeCoequalizer(t *testing.T) {
	u, f, g := parallelPairFixture(t)
	tr := u.Traits()

	nat, err := tr.Coequalize(f, g)
	require.NoError(t, err)

	br := limit.CoequalizersViaPushouts[string, finset.Func](u, tr, tr)
	coeq, err := br.Coequalize(f, g)
	require.NoError(t, err)

	// Gluing x onto y leaves one class either way.
	natElems, ok := u.Elems(nat.Obj)
	require.True(t, ok)
	brElems, ok := u.Elems(coeq.Obj)
	require.True(t, ok)
	assert.Len(t, brElems, len(natElems))
	assert.Equal(t, nat.Project.Table, coeq.Project.Table)
	assert.Equal(t, "B", coeq.Project.Dom)
}

func TestCoequalizersViaPushouts_FactorsACofork(t *testing.T) {
	u, f, g := parallelPairFixture(t)
	tr := u.Traits()
	require.NoError(t, u.AddSet("X", []string{"q"}))

	br := limit.CoequalizersViaPushouts[string, finset.Func](u, tr, tr)
	coeq, err := br.Coequalize(f, g)
	require.NoError(t, err)

	cofork := funcOf(t, u, "B", "X", map[string]string{"x": "q", "y": "q"})
	out := br.FactorCofork(f, g, coeq, cofork)
	require.True(t, out.Factored, out.Reason)
	assert.Equal(t, coeq.Obj, out.Mediator.Dom)
	assert.Equal(t, "X", out.Mediator.Cod)

	through, err := u.Compose(out.Mediator, coeq.Project)
	require.NoError(t, err)
	assert.True(t, u.Eq(through, cofork))
}

func TestCoequalizersViaPushouts_DeclinesAForeignCoequalizer(t *testing.T) {
	u, f, g := parallelPairFixture(t)
	tr := u.Traits()
	require.NoError(t, u.AddSet("X", []string{"q"}))

	nat, err := tr.Coequalize(f, g)
	require.NoError(t, err)

	br := limit.CoequalizersViaPushouts[string, finset.Func](u, tr, tr)
	cofork := funcOf(t, u, "B", "X", map[string]string{"x": "q", "y": "q"})
	out := br.FactorCofork(f, g, nat, cofork)
	assert.False(t, out.Factored)
	assert.Contains(t, out.Reason, "not issued by this bridge")
}

func TestOfDiagram_OverThePullbackBridge(t *testing.T) {
	u, d := meetFixture(t)
	tr := u.Traits()

	r, err := limit.OfDiagram(d, tr, limit.EqualizersViaPullbacks[string, finset.Func](u, tr, tr))
	require.NoError(t, err)

	// The derived equalizer lives inside a product of products, but it
	// still projects bijectively onto A and the enumeration agrees it
	// is terminal.
	assert.True(t, r.Terminality.Holds)
	elems, ok := u.Elems(r.Limit.Tip())
	require.True(t, ok)
	assert.Len(t, elems, 2)
	assert.Equal(t, []int{0, 1}, r.Limit.Legs()["a"].Table)

	f, err := r.Factor(r.Limit.Cone())
	require.NoError(t, err)
	require.True(t, f.Factored, f.Reason)
	assert.True(t, u.Eq(f.Mediator, identity(t, u, r.Limit.Tip())))
}

func TestColimitOfDiagram_OverThePushoutBridge(t *testing.T) {
	u, d := meetFixture(t)
	tr := u.Traits()

	r, err := limit.ColimitOfDiagram(d, tr, limit.CoequalizersViaPushouts[string, finset.Func](u, tr, tr))
	require.NoError(t, err)

	// Both elements of A glue onto the single element of B, so the
	// colimit collapses to a point.
	assert.True(t, r.Initiality.Holds)
	elems, ok := u.Elems(r.Colimit.Tip())
	require.True(t, ok)
	assert.Len(t, elems, 1)

	f, err := r.Factor(r.Colimit.Cocone())
	require.NoError(t, err)
	require.True(t, f.Factored, f.Reason)
	assert.True(t, u.Eq(f.Mediator, identity(t, u, r.Colimit.Tip())))
}
