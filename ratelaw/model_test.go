package ratelaw_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/enzfit"
	"github.com/katalvlaran/enzfit/params"
	"github.com/katalvlaran/enzfit/ratelaw"
)

func mustEnv(t *testing.T, e float64) ratelaw.Env {
	t.Helper()
	env, err := ratelaw.NewEnv(e)
	require.NoError(t, err)

	return env
}

func TestParseKind_CodesAndTitles(t *testing.T) {
	for _, k := range ratelaw.All() {
		got, err := ratelaw.ParseKind(k.String())
		require.NoError(t, err)
		assert.Equal(t, k, got)

		got, err = ratelaw.ParseKind(k.Title())
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ratelaw.ParseKind("nope")
	assert.ErrorIs(t, err, ratelaw.ErrUnknownKind)
	assert.ErrorIs(t, err, enzfit.ErrValidation)
}

func TestRegistry_Counts(t *testing.T) {
	assert.Len(t, ratelaw.All(), 14)
	assert.Len(t, ratelaw.SingleSubstrate(), 10)
	assert.Len(t, ratelaw.BiSubstrate(), 4)
	assert.Len(t, ratelaw.DualSubstrate(), 14)
	for _, k := range ratelaw.BiSubstrate() {
		m, err := ratelaw.New(k, ratelaw.Env{})
		require.NoError(t, err)
		assert.Equal(t, 2, m.Substrates())
	}
}

func TestNew_Defaults(t *testing.T) {
	for _, k := range ratelaw.All() {
		m, err := ratelaw.New(k, ratelaw.Env{})
		require.NoError(t, err)
		assert.Zero(t, m.Initializations())
		for _, p := range m.Params().Params() {
			assert.Equal(t, 1.0, p.Value, "%s.%s", k, p.Name)
			assert.Equal(t, 0.0, p.Min)
			assert.True(t, p.Vary)
			if k == ratelaw.Hill && p.Name == "n" {
				assert.Equal(t, 10.0, p.Max)
			} else {
				assert.Equal(t, 100.0, p.Max, "%s.%s", k, p.Name)
			}
		}
	}

	_, err := ratelaw.New(ratelaw.Kind(99), ratelaw.Env{})
	assert.ErrorIs(t, err, ratelaw.ErrUnknownKind)
}

func TestNewAll_KeepsKindOrder(t *testing.T) {
	env, err := ratelaw.NewEnv(0.5)
	require.NoError(t, err)
	laws, err := ratelaw.NewAll(ratelaw.BiSubstrate(), env)
	require.NoError(t, err)
	require.Len(t, laws, len(ratelaw.BiSubstrate()))
	for i, l := range laws {
		assert.Equal(t, ratelaw.BiSubstrate()[i], l.Kind())
	}

	_, err = ratelaw.NewAll([]ratelaw.Kind{ratelaw.MichaelisMenten, ratelaw.Kind(99)}, env)
	assert.ErrorIs(t, err, ratelaw.ErrUnknownKind)
}

func TestMichaelisMenten_HalfSaturation(t *testing.T) {
	m, err := ratelaw.New(ratelaw.MichaelisMenten, mustEnv(t, 1))
	require.NoError(t, err)
	assert.Equal(t, []string{"km", "v_max"}, m.Params().Names())

	p, err := m.Predictor([]float64{2, 10})
	require.NoError(t, err)
	assert.InDelta(t, 5.0, p.Rate(2), 1e-12)

	// a per-point enzyme overrides the environment
	assert.InDelta(t, 10.0, p.Rate(2, 0, 2), 1e-12)
}

func TestPredictorMatchesResidualAtZeroObserved(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	env := mustEnv(t, 0.5)
	xs := []float64{0.1, 0.5, 1, 2, 5, 10}
	bs := []float64{0.2, 0.4, 1, 3, 3, 8}
	zeros := make([]float64, len(xs))

	for _, k := range ratelaw.All() {
		m, err := ratelaw.New(k, env)
		require.NoError(t, err)
		values := make([]float64, m.Params().Len())
		for i := range values {
			values[i] = 0.5 + 4*rng.Float64()
		}
		in := ratelaw.Inputs{Var: xs, Const: bs}

		res, err := m.Residual(values, in, zeros)
		require.NoError(t, err, k.String())
		pred, err := m.Predictor(values)
		require.NoError(t, err)
		for i, x := range xs {
			assert.Equal(t, res[i], pred.Rate(x, bs[i]), "%s point %d", k, i)
		}
		ev, err := pred.Eval(in)
		require.NoError(t, err)
		for i := range ev {
			assert.Equal(t, res[i], ev[i])
		}
	}
}

func TestResidual_SubtractsObserved(t *testing.T) {
	m, err := ratelaw.New(ratelaw.Hill, ratelaw.Env{})
	require.NoError(t, err)
	res, err := m.Residual([]float64{1, 2, 1}, ratelaw.Inputs{Var: []float64{1, 3}}, []float64{0.5, 1})
	require.NoError(t, err)
	// 2·1/(1+1) − 0.5 and 2·3/(1+3) − 1
	assert.InDelta(t, 0.5, res[0], 1e-12)
	assert.InDelta(t, 0.5, res[1], 1e-12)
}

func TestResidual_Errors(t *testing.T) {
	mm, err := ratelaw.New(ratelaw.MichaelisMenten, ratelaw.Env{})
	require.NoError(t, err)

	t.Run("enzyme unset", func(t *testing.T) {
		_, err := mm.Residual([]float64{1, 1}, ratelaw.Inputs{Var: []float64{1}}, []float64{1})
		assert.ErrorIs(t, err, ratelaw.ErrEnzymeUnset)
		assert.ErrorIs(t, err, enzfit.ErrConfiguration)
		_, err = mm.Predictor([]float64{1, 1})
		assert.ErrorIs(t, err, ratelaw.ErrEnzymeUnset)
	})

	t.Run("enzyme trail suffices", func(t *testing.T) {
		res, err := mm.Residual([]float64{1, 1},
			ratelaw.Inputs{Var: []float64{1}, Enzyme: []float64{2}}, []float64{0})
		require.NoError(t, err)
		assert.InDelta(t, 1.0, res[0], 1e-12)
	})

	t.Run("arity", func(t *testing.T) {
		_, err := mm.Residual([]float64{1}, ratelaw.Inputs{Var: []float64{1}, Enzyme: []float64{1}}, []float64{1})
		assert.ErrorIs(t, err, params.ErrArity)
	})

	t.Run("shape", func(t *testing.T) {
		_, err := mm.Residual([]float64{1, 1}, ratelaw.Inputs{Var: []float64{1, 2}}, []float64{1})
		assert.ErrorIs(t, err, ratelaw.ErrShape)
	})

	t.Run("missing const", func(t *testing.T) {
		tc, err := ratelaw.New(ratelaw.TernaryComplex, ratelaw.Env{})
		require.NoError(t, err)
		_, err = tc.Residual([]float64{1, 1, 1, 1}, ratelaw.Inputs{Var: []float64{1}}, []float64{1})
		assert.ErrorIs(t, err, ratelaw.ErrMissingConst)
	})

	t.Run("non-finite", func(t *testing.T) {
		nci, err := ratelaw.New(ratelaw.NoncompetitiveInhibition, ratelaw.Env{})
		require.NoError(t, err)
		// inh/ki = 0/0
		_, err = nci.Residual([]float64{1, 1, 0, 0}, ratelaw.Inputs{Var: []float64{1}}, []float64{1})
		assert.ErrorIs(t, err, ratelaw.ErrNonFinite)
		assert.ErrorIs(t, err, enzfit.ErrNumeric)

		p, err := nci.Predictor([]float64{1, 1, 0, 0})
		require.NoError(t, err)
		assert.True(t, math.IsNaN(p.Rate(1)))
		_, err = p.Eval(ratelaw.Inputs{Var: []float64{1}})
		assert.ErrorIs(t, err, ratelaw.ErrNonFinite)
	})
}

func TestNewEnv_Rejects(t *testing.T) {
	for _, e := range []float64{0, -1, math.Inf(1), math.NaN()} {
		_, err := ratelaw.NewEnv(e)
		assert.ErrorIs(t, err, ratelaw.ErrBadEnzyme, "%g", e)
	}
	env := mustEnv(t, 3)
	assert.True(t, env.IsSet())
	assert.False(t, ratelaw.Env{}.IsSet())
}

func TestUnit(t *testing.T) {
	m, err := ratelaw.New(ratelaw.Hill, ratelaw.Env{})
	require.NoError(t, err)
	src := ratelaw.Units{Concentration: "mM", Rate: "mM/s"}

	u, err := m.Unit("kh", src)
	require.NoError(t, err)
	assert.Equal(t, "mM", u)
	u, err = m.Unit("v_max", src)
	require.NoError(t, err)
	assert.Equal(t, "mM/s", u)
	u, err = m.Unit("n", src)
	require.NoError(t, err)
	assert.Empty(t, u)

	_, err = m.Unit("zz", src)
	assert.ErrorIs(t, err, params.ErrUnknown)
}

func TestClone_Independent(t *testing.T) {
	m, err := ratelaw.New(ratelaw.CompetitiveInhibition, ratelaw.Env{})
	require.NoError(t, err)
	require.NoError(t, m.SetInitializations(4))

	c := m.Clone()
	require.NoError(t, c.Params().SetValue("km", 7))
	require.NoError(t, c.SetInitializations(1))

	p, _ := m.Params().Get("km")
	assert.Equal(t, 1.0, p.Value)
	assert.Equal(t, 4, m.Initializations())
	assert.ErrorIs(t, m.SetInitializations(-1), ratelaw.ErrInitializations)
}

func TestPredictor_Curve(t *testing.T) {
	m, err := ratelaw.New(ratelaw.Hill, ratelaw.Env{})
	require.NoError(t, err)
	p, err := m.Predictor([]float64{1, 1, 1})
	require.NoError(t, err)

	xs, ys := p.Curve(0, 4, 0, 5)
	require.Len(t, xs, 5)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, xs)
	assert.InDelta(t, 0.5, ys[1], 1e-12)
}
