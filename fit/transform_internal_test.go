package fit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBound_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		b    bound
		vs   []float64
	}{
		{"both", bound{lo: 0, hi: 100, hasLo: true, hasHi: true}, []float64{0, 1e-3, 2, 50, 99.5, 100}},
		{"lower", bound{lo: -1, hasLo: true}, []float64{-1, 0, 3, 1e4}},
		{"upper", bound{hi: 5, hasHi: true}, []float64{5, 4, -7}},
		{"none", bound{}, []float64{-3, 0, 8}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, v := range tc.vs {
				assert.InDelta(t, v, tc.b.external(tc.b.internal(v)), 1e-9*math.Max(1, math.Abs(v)))
			}
		})
	}
}

func TestBound_ExternalStaysInside(t *testing.T) {
	b := bound{lo: 2, hi: 3, hasLo: true, hasHi: true}
	for _, u := range []float64{-1e6, -2, 0, 1.3, 7, 1e9} {
		v := b.external(u)
		assert.GreaterOrEqual(t, v, 2.0)
		assert.LessOrEqual(t, v, 3.0)
	}
	lo := bound{lo: 0, hasLo: true}
	assert.GreaterOrEqual(t, lo.external(-40), 0.0)
	assert.Equal(t, 2.0, b.clamp(-5))
}

func TestDeriveRNG_Deterministic(t *testing.T) {
	a := deriveRNG(rngFromSeed(42), 3)
	b := deriveRNG(rngFromSeed(42), 3)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
	assert.NotEqual(t, deriveSeed(1, 1), deriveSeed(1, 2))
	assert.Equal(t, rngFromSeed(0).Int63(), rngFromSeed(defaultRNGSeed).Int63())
}
