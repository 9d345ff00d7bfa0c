package dataset_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/ratelaw"
)

func TestSnapshot_DualRoundTrip(t *testing.T) {
	env, err := ratelaw.NewEnv(0.3)
	require.NoError(t, err)
	d := newDual(t, dataset.WithTitration(), dataset.WithEnzyme(env), dataset.WithUnits("uM", "min"))
	inj := &dataset.Injection{TimeStep: 2, V0: 1.5, VAdd: 0.05}
	require.NoError(t, d.AddSet(dataset.SetSpec{Const: 3, Injection: inj}, []float64{1, 2, 3}, []float64{0.1, 0.2, 0.3}))
	require.NoError(t, d.AddReplicate([]float64{1, 2}, []float64{0.12, 0.19}))
	d.ChangeVariable()
	require.NoError(t, d.AddSet(dataset.SetSpec{Const: 0.7, Injection: inj}, []float64{4}, []float64{0.4}))

	raw, err := json.Marshal(d.Snapshot())
	require.NoError(t, err)
	var snap dataset.DualSnapshot
	require.NoError(t, json.Unmarshal(raw, &snap))

	back, err := dataset.RestoreDual(snap)
	require.NoError(t, err)
	assert.Equal(t, d.Snapshot(), back.Snapshot())
	assert.Equal(t, d.Points(dataset.RoleA), back.Points(dataset.RoleA))
	assert.Equal(t, dataset.RoleB, back.Role())
}

func TestSnapshot_SingleRoundTrip(t *testing.T) {
	d := dataset.NewSingleSubstrate("s")
	require.NoError(t, d.AddReplicate([]float64{0.1, 1e-7}, []float64{3.3333333333333335, 2}))

	raw, err := json.Marshal(d.Snapshot())
	require.NoError(t, err)
	var snap dataset.SingleSnapshot
	require.NoError(t, json.Unmarshal(raw, &snap))
	back, err := dataset.RestoreSingle(snap)
	require.NoError(t, err)
	assert.Equal(t, d.Snapshot(), back.Snapshot())
}

func TestSnapshot_RejectsInconsistent(t *testing.T) {
	_, err := dataset.RestoreDual(dataset.DualSnapshot{
		StoichA: 1, StoichB: 1,
		SetsA: []dataset.Set{{Replicates: []dataset.DualReplicate{{Var: []float64{1}, Const: nil, Rates: []float64{1}}}}},
	})
	assert.ErrorIs(t, err, dataset.ErrSnapshot)

	_, err = dataset.RestoreDual(dataset.DualSnapshot{StoichA: 1, StoichB: 1, Cursor: 3})
	assert.ErrorIs(t, err, dataset.ErrSnapshot)
}
