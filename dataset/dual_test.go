package dataset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/ratelaw"
)

func newDual(t *testing.T, opts ...dataset.Option) *dataset.DualSubstrate {
	t.Helper()
	d, err := dataset.NewDualSubstrate("bi", opts...)
	require.NoError(t, err)

	return d
}

func TestDual_CursorLifecycle(t *testing.T) {
	d := newDual(t)
	assert.Equal(t, dataset.RoleA, d.Role())
	assert.True(t, d.IsNewSet())
	assert.Zero(t, d.ReplicateCount())
	_, ok := d.LastConst()
	assert.False(t, ok)

	require.NoError(t, d.Append(dataset.SetSpec{Const: 2}, []float64{1, 2}, []float64{0.1, 0.2}))
	assert.False(t, d.IsNewSet())
	assert.Equal(t, 0, d.Cursor())

	// second append lands in the same set
	require.NoError(t, d.Append(dataset.SetSpec{Const: 99}, []float64{1, 2}, []float64{0.11, 0.21}))
	assert.Equal(t, 2, d.ReplicateCount())
	c, ok := d.LastConst()
	require.True(t, ok)
	assert.Equal(t, []float64{2, 2}, c)
	v, ok := d.CurrentVar()
	require.True(t, ok)
	assert.Equal(t, []float64{1, 2}, v)

	d.NextSet()
	assert.True(t, d.IsNewSet())
	d.NextSet()
	assert.Equal(t, 0, d.Cursor())

	assert.ErrorIs(t, d.SetCursor(2), dataset.ErrCursor)
	require.NoError(t, d.SetCursor(1))
	assert.True(t, d.IsNewSet())
	assert.ErrorIs(t, d.AddReplicate([]float64{1}, []float64{1}), dataset.ErrNoSet)
}

func TestDual_RoleToggle(t *testing.T) {
	d := newDual(t)
	require.NoError(t, d.AddSet(dataset.SetSpec{Const: 1}, []float64{1, 2}, []float64{3, 4}))
	require.NoError(t, d.AddSet(dataset.SetSpec{Const: 2}, []float64{1, 2}, []float64{5, 6}))
	before := d.Sets(dataset.RoleA)

	d.ChangeVariable()
	assert.Equal(t, dataset.RoleB, d.Role())
	assert.Equal(t, 0, d.Cursor())
	assert.True(t, d.IsNewSet())
	require.NoError(t, d.AddSet(dataset.SetSpec{Const: 7}, []float64{9}, []float64{1}))

	d.ChangeVariable()
	assert.Equal(t, 0, d.Cursor())
	assert.False(t, d.IsNewSet())
	assert.Equal(t, before, d.Sets(dataset.RoleA))
	assert.Equal(t, 1, d.SetCount(dataset.RoleB))
	assert.Equal(t, []float64{7}, d.Points(dataset.RoleB)[0].Const)
}

func TestDual_AppendIsAtomic(t *testing.T) {
	d := newDual(t)
	require.NoError(t, d.AddSet(dataset.SetSpec{Const: 1}, []float64{1, 2}, []float64{3, 4}))
	snap := d.Snapshot()

	assert.ErrorIs(t, d.AddReplicate([]float64{1, 2}, []float64{3}), dataset.ErrLength)
	assert.ErrorIs(t, d.AddReplicatePoints([]float64{1, 2}, []float64{1}, []float64{3, 4}), dataset.ErrLength)
	assert.ErrorIs(t, d.AddSetText(dataset.SetSpec{Const: 1}, "1 2", "3 x"), dataset.ErrParse)

	assert.Equal(t, snap, d.Snapshot())
}

func TestDual_Titration(t *testing.T) {
	env, err := ratelaw.NewEnv(1)
	require.NoError(t, err)
	d := newDual(t, dataset.WithTitration(), dataset.WithEnzyme(env), dataset.WithStoichiometry(1, 2))
	inj := &dataset.Injection{TimeStep: 10, V0: 1, VAdd: 0.1}

	require.NoError(t, d.AddSet(dataset.SetSpec{Const: 5, Injection: inj},
		[]float64{1, 1, 1}, []float64{0.01, 0.02, 0.03}))

	pts := d.Points(dataset.RoleA)[0]
	require.Len(t, pts.Enzyme, 3)
	// the first point already sits behind two injection volumes
	assert.InDelta(t, 1/1.2, pts.Enzyme[0], 1e-12)
	assert.InDelta(t, 0.8333333333, pts.Enzyme[0], 1e-9)
	assert.InDelta(t, 1/1.3, pts.Enzyme[1], 1e-12)
	assert.InDelta(t, 1/1.4, pts.Enzyme[2], 1e-12)

	// B is constant while A varies, so its ratio (2) drives depletion
	assert.InDelta(t, 5.0, pts.Const[0], 1e-12)
	assert.InDelta(t, 5-0.01*2*10, pts.Const[1], 1e-12)
	assert.InDelta(t, 5-0.01*2*10-0.02*2*10, pts.Const[2], 1e-12)

	// replicates reuse the set injection
	require.NoError(t, d.AddReplicate([]float64{2, 2}, []float64{0.1, 0.1}))
	all := d.AllPoints(dataset.RoleA)
	assert.Len(t, all.Enzyme, 5)
	assert.Equal(t, pts.Enzyme[:2], all.Enzyme[3:])

	t.Run("missing injection", func(t *testing.T) {
		err := d.AddSet(dataset.SetSpec{Const: 1}, []float64{1}, []float64{1})
		assert.ErrorIs(t, err, dataset.ErrInjection)
	})

	t.Run("enzyme unset", func(t *testing.T) {
		bare := newDual(t, dataset.WithTitration())
		err := bare.AddSet(dataset.SetSpec{Const: 1, Injection: inj}, []float64{1}, []float64{1})
		assert.ErrorIs(t, err, ratelaw.ErrEnzymeUnset)
		assert.Zero(t, bare.SetCount(dataset.RoleA))
	})
}

func TestInjection_Dilution(t *testing.T) {
	inj := dataset.Injection{V0: 1, VAdd: 0.1}
	e := inj.Dilution(1, 2)
	assert.InDelta(t, 1/(0.1*2+1), e[0], 1e-15)
	assert.InDelta(t, 1/(0.1*3+1), e[1], 1e-15)
	assert.Empty(t, inj.Dilution(1, 0))
}

func TestDual_ReplicatesShareSetConst(t *testing.T) {
	d := newDual(t)
	require.NoError(t, d.AddSet(dataset.SetSpec{Const: 1}, []float64{1, 2}, []float64{3, 4}))
	snap := d.Snapshot()

	err := d.AddReplicatePoints([]float64{1, 2}, []float64{7, 9}, []float64{1, 2})
	assert.ErrorIs(t, err, dataset.ErrConst)
	err = d.AddReplicatePoints([]float64{1, 2}, []float64{1, 9}, []float64{1, 2})
	assert.ErrorIs(t, err, dataset.ErrConst, "later points are held too")
	err = d.AddSetPoints([]float64{1, 2}, []float64{4, 6}, []float64{1, 2}, nil)
	assert.ErrorIs(t, err, dataset.ErrConst)
	assert.Equal(t, snap, d.Snapshot())

	require.NoError(t, d.AddReplicatePoints([]float64{1, 2}, []float64{1, 1}, []float64{1, 2}))
	assert.Equal(t, 2, d.ReplicateCount())

	t.Run("titration checks the first point", func(t *testing.T) {
		env, err := ratelaw.NewEnv(1)
		require.NoError(t, err)
		d := newDual(t, dataset.WithTitration(), dataset.WithEnzyme(env))
		inj := &dataset.Injection{V0: 1, VAdd: 0.1}
		require.NoError(t, d.AddSet(dataset.SetSpec{Const: 1, Injection: inj}, []float64{1, 2}, []float64{3, 4}))

		require.NoError(t, d.AddReplicatePoints([]float64{1, 2}, []float64{1, 0.8}, []float64{1, 2}))
		err = d.AddReplicatePoints([]float64{1, 2}, []float64{2, 0.8}, []float64{1, 2})
		assert.ErrorIs(t, err, dataset.ErrConst)
		assert.Equal(t, 2, d.ReplicateCount())
	})
}

func TestDual_Readers(t *testing.T) {
	d := newDual(t, dataset.WithSubstrateNames("NAD", "EtOH"), dataset.WithStoichiometry(1, 3))
	require.NoError(t, d.AddSetPoints([]float64{1, 2}, []float64{4, 4}, []float64{1, 2}, nil))
	require.NoError(t, d.AddReplicatePoints([]float64{3}, []float64{4}, []float64{3}))
	require.NoError(t, d.AddSet(dataset.SetSpec{Const: 10}, []float64{1}, []float64{7}))

	assert.Equal(t, []float64{4, 10}, d.ConstMeans(dataset.RoleA))
	assert.Equal(t, 3.0, d.Stoichiometry(dataset.RoleA))
	assert.Equal(t, 1.0, d.Stoichiometry(dataset.RoleB))
	a, b := d.Stoichiometries()
	assert.Equal(t, [2]float64{1, 3}, [2]float64{a, b})
	assert.Equal(t, "EtOH", d.VariableName(dataset.RoleB))

	all := d.AllPoints(dataset.RoleA)
	assert.Equal(t, []float64{1, 2, 3, 1}, all.Var)
	assert.Equal(t, []float64{4, 4, 4, 10}, all.Const)
	assert.Nil(t, all.Enzyme)

	rep := d.Represent(dataset.RoleA)
	assert.Equal(t, 2, rep.Len())
	conc, rates := rep.Flatten()
	assert.Equal(t, all.Var, conc)
	assert.Equal(t, all.Rates, rates)
}

func TestDual_DeletePoint(t *testing.T) {
	d := newDual(t)
	require.NoError(t, d.AddSet(dataset.SetSpec{Const: 1}, []float64{1, 2}, []float64{3, 4}))
	require.NoError(t, d.AddSet(dataset.SetSpec{Const: 2}, []float64{5}, []float64{6}))

	require.NoError(t, d.DeletePoint(dataset.RoleA, 0, 0, 1))
	p := d.Points(dataset.RoleA)[0]
	assert.Equal(t, []float64{1}, p.Var)
	assert.Equal(t, []float64{1}, p.Const)
	assert.Equal(t, []float64{3}, p.Rates)

	// emptying the last set removes it and pulls the cursor back
	require.NoError(t, d.DeletePoint(dataset.RoleA, 1, 0, 0))
	assert.Equal(t, 1, d.SetCount(dataset.RoleA))
	assert.LessOrEqual(t, d.Cursor(), 1)
	assert.ErrorIs(t, d.DeletePoint(dataset.RoleA, 4, 0, 0), dataset.ErrIndex)
}

func TestDual_BadStoichiometry(t *testing.T) {
	_, err := dataset.NewDualSubstrate("x", dataset.WithStoichiometry(0, 1))
	assert.ErrorIs(t, err, dataset.ErrStoichiometry)
}
