package params_test

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/katalvlaran/enzfit"
	"github.com/katalvlaran/enzfit/params"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newKinetic builds the km/v_max pair used throughout these tests.
func newKinetic(t *testing.T) *params.Set {
	t.Helper()
	s, err := params.NewSet(
		params.Bounded("km", 1, 0, 100, params.Concentration),
		params.Bounded("v_max", 1, 0, 100, params.Rate),
	)
	require.NoError(t, err)

	return s
}

func TestNewParam_Defaults(t *testing.T) {
	p := params.NewParam("n", 2, params.Dimensionless)
	assert.True(t, math.IsInf(p.Min, -1))
	assert.True(t, math.IsInf(p.Max, 1))
	assert.True(t, p.Vary)
	assert.False(t, p.Finite())
}

func TestSet_OrderAndLookup(t *testing.T) {
	s := newKinetic(t)
	assert.Equal(t, []string{"km", "v_max"}, s.Names())
	assert.Equal(t, []float64{1, 1}, s.Values())
	assert.Equal(t, 2, s.Len())

	p, ok := s.Get("v_max")
	require.True(t, ok)
	assert.Equal(t, params.Rate, p.Category)

	_, ok = s.Get("ki")
	assert.False(t, ok)
}

func TestSet_AddRejects(t *testing.T) {
	s := newKinetic(t)

	err := s.Add(params.NewParam("km", 1, params.Concentration))
	assert.ErrorIs(t, err, params.ErrDuplicate)
	assert.ErrorIs(t, err, enzfit.ErrValidation)

	assert.ErrorIs(t, s.Add(params.NewParam("", 1, params.Rate)), params.ErrEmptyName)
	assert.ErrorIs(t, s.Add(params.Bounded("x", 1, 5, 2, params.Rate)), params.ErrBounds)
	assert.ErrorIs(t, s.Add(params.Bounded("y", 7, 0, 2, params.Rate)), params.ErrOutOfBounds)
	assert.Equal(t, 2, s.Len(), "failed adds must not grow the set")
}

func TestSet_MutatorsKeepInvariant(t *testing.T) {
	s := newKinetic(t)

	require.NoError(t, s.SetValue("km", 50))
	assert.ErrorIs(t, s.SetValue("km", 150), params.ErrOutOfBounds)
	p, _ := s.Get("km")
	assert.Equal(t, 50.0, p.Value, "rejected mutation must leave the old value")

	assert.ErrorIs(t, s.SetBounds("km", 60, 10), params.ErrBounds)
	assert.ErrorIs(t, s.SetValue("nope", 1), params.ErrUnknown)

	// Fixed parameters are exempt from the value-in-bounds rule.
	require.NoError(t, s.Fix("v_max", 500))
	p, _ = s.Get("v_max")
	assert.False(t, p.Vary)
	assert.Equal(t, []int{0}, s.Free())

	require.NoError(t, s.Update("km", 3, 1, 4))
	p, _ = s.Get("km")
	assert.Equal(t, params.Param{Name: "km", Value: 3, Min: 1, Max: 4, Vary: true, Category: params.Concentration}, p)
}

func TestSet_CloneIsDeep(t *testing.T) {
	s := newKinetic(t)
	c := s.Clone()
	require.NoError(t, c.SetValue("km", 9))
	require.NoError(t, c.Add(params.NewParam("ki", 1, params.Concentration)))

	p, _ := s.Get("km")
	assert.Equal(t, 1.0, p.Value)
	assert.Equal(t, 2, s.Len())
}

func TestSet_Resolve(t *testing.T) {
	s := newKinetic(t)
	r, err := s.Resolve([]float64{2, 10})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 10}, r.Values())
	assert.Equal(t, []float64{1, 1}, s.Values())

	_, err = s.Resolve([]float64{1})
	assert.ErrorIs(t, err, params.ErrArity)
}

func TestParam_JSONInfiniteBounds(t *testing.T) {
	in := params.NewParam("n", 1.5, params.Dimensionless)
	in.Min = 0

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "max")

	var out params.Param
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, in, out)
}

func TestParseCategory(t *testing.T) {
	for _, c := range []params.Category{params.Concentration, params.Rate, params.Dimensionless} {
		got, err := params.ParseCategory(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	_, err := params.ParseCategory("mol")
	assert.ErrorIs(t, err, params.ErrCategory)
}

func TestSet_ReplaceKeepsCategory(t *testing.T) {
	s := newKinetic(t)

	p := params.Bounded("km", 5, 1, 10, params.Rate)
	p.Vary = false
	require.NoError(t, s.Replace(p))

	got, _ := s.Get("km")
	assert.Equal(t, 5.0, got.Value)
	assert.Equal(t, [2]float64{1, 10}, [2]float64{got.Min, got.Max})
	assert.False(t, got.Vary)
	assert.Equal(t, params.Concentration, got.Category)

	bad := params.Bounded("v_max", 200, 0, 100, params.Rate)
	assert.ErrorIs(t, s.Replace(bad), params.ErrOutOfBounds)
	assert.ErrorIs(t, s.Replace(params.NewParam("nope", 1, params.Rate)), params.ErrUnknown)
}
