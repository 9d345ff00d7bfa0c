// SPDX-License-Identifier: MIT

// Package ratelaw: the equation catalog. This file holds:
//   - one rateFunc per Kind, reading parameters in declaration order;
//   - the default parameter band shared by every mechanism;
//   - the catalog table that New, the registry and Title read from.
//
// Numeric policy: equations are evaluated as written. Division by zero or
// overflow yields ±Inf/NaN, which Residual turns into ErrNonFinite; nothing
// here clamps or guards.
//
// Complexity: O(1) per point.
package ratelaw

import (
	"math"

	"github.com/katalvlaran/enzfit/params"
)

// Default starting point shared by all mechanisms.
const (
	defaultValue = 1.0
	defaultMin   = 0.0
	defaultMax   = 100.0
	hillMax      = 10.0
)

// rateFunc evaluates one point. v holds parameter values in declaration
// order, s is the variable substrate, b the constant substrate and e the
// active enzyme concentration.
type rateFunc func(v []float64, s, b, e float64) float64

// entry describes one mechanism.
type entry struct {
	code       string
	title      string
	substrates int
	enzyme     bool
	params     []params.Param
	rate       rateFunc
}

func conc(name string) params.Param {
	return params.Bounded(name, defaultValue, defaultMin, defaultMax, params.Concentration)
}

func velocity(name string) params.Param {
	return params.Bounded(name, defaultValue, defaultMin, defaultMax, params.Rate)
}

func dimless(name string, hi float64) params.Param {
	return params.Bounded(name, defaultValue, defaultMin, hi, params.Dimensionless)
}

// catalog is indexed by Kind.
var catalog = [kindCount]entry{
	MichaelisMenten: {
		code: "mm", title: "Michaelis-Menten", substrates: 1, enzyme: true,
		params: []params.Param{conc("km"), velocity("v_max")},
		rate: func(v []float64, s, _, e float64) float64 {
			km, vmax := v[0], v[1]
			return vmax * e * s / (km + s)
		},
	},
	Hill: {
		code: "he", title: "Hill", substrates: 1,
		params: []params.Param{conc("kh"), velocity("v_max"), dimless("n", hillMax)},
		rate: func(v []float64, s, _, _ float64) float64 {
			kh, vmax, n := v[0], v[1], v[2]
			sn := math.Pow(s, n)
			return vmax * sn / (kh + sn)
		},
	},
	AllostericInhibition: {
		code: "ainh", title: "Allosteric inhibition (MWC)", substrates: 1, enzyme: true,
		params: []params.Param{
			conc("ks"), velocity("v_max"), dimless("n", defaultMax), dimless("L", defaultMax),
			conc("inh"), conc("ki"),
		},
		rate: func(v []float64, s, _, e float64) float64 {
			ks, vmax, n, l, inh, ki := v[0], v[1], v[2], v[3], v[4], v[5]
			num := vmax * e * s * math.Pow(ks+s, n-1)
			den := l*math.Pow(ks*(1+inh/ki), n) + math.Pow(ks+s, n)
			return num / den
		},
	},
	CompetitiveInhibition: {
		code: "ci", title: "Competitive inhibition (irr)", substrates: 1,
		params: []params.Param{conc("km"), velocity("v_max"), conc("inh"), conc("ki")},
		rate: func(v []float64, s, _, _ float64) float64 {
			km, vmax, inh, ki := v[0], v[1], v[2], v[3]
			return vmax * s / (km + s + km*inh/ki)
		},
	},
	MixedActivation: {
		code: "ma", title: "Mixed activation (irrev)", substrates: 1, enzyme: true,
		params: []params.Param{conc("kms"), velocity("v_max"), conc("act"), conc("kac"), conc("kas")},
		rate: func(v []float64, s, _, e float64) float64 {
			kms, vmax, act, kac, kas := v[0], v[1], v[2], v[3], v[4]
			return vmax * e * s * act / (kms*(kas+act) + s*(kac+act))
		},
	},
	NoncompetitiveInhibition: {
		code: "nci", title: "Noncompetitive inhibition (irr)", substrates: 1,
		params: []params.Param{conc("km"), velocity("v_max"), conc("inh"), conc("ki")},
		rate: func(v []float64, s, _, _ float64) float64 {
			km, vmax, inh, ki := v[0], v[1], v[2], v[3]
			return vmax * s / ((km + s) * (1 + inh/ki))
		},
	},
	MixedInhibition: {
		code: "mi", title: "Mixed inhibition (irr)", substrates: 1,
		params: []params.Param{conc("km"), velocity("v_max"), conc("inh"), conc("kis"), conc("kic")},
		rate: func(v []float64, s, _, _ float64) float64 {
			km, vmax, inh, kis, kic := v[0], v[1], v[2], v[3], v[4]
			return vmax * s / (km*(1+inh/kis) + s*(1+inh/kic))
		},
	},
	SpecificActivation: {
		code: "sa", title: "Specific activation (irrev)", substrates: 1,
		params: []params.Param{conc("kms"), velocity("v_max"), conc("ka"), conc("act")},
		rate: func(v []float64, s, _, _ float64) float64 {
			kms, vmax, ka, act := v[0], v[1], v[2], v[3]
			return vmax * s * act / (kms*ka + (kms+s)*act)
		},
	},
	SubstrateActivation: {
		code: "sua", title: "Substrate activation (irr)", substrates: 1,
		params: []params.Param{conc("ksa"), velocity("v_max"), conc("ksc")},
		rate: func(v []float64, s, _, _ float64) float64 {
			ksa, vmax, ksc := v[0], v[1], v[2]
			q := s / ksa
			return vmax * q * q / (1 + s/ksc + q + q*q)
		},
	},
	UncompetitiveInhibition: {
		code: "uci", title: "Uncompetitive inhibition (irr)", substrates: 1, enzyme: true,
		params: []params.Param{conc("km"), velocity("v_max"), conc("inh"), conc("ki")},
		rate: func(v []float64, s, _, e float64) float64 {
			km, vmax, inh, ki := v[0], v[1], v[2], v[3]
			return vmax * e * s / (km + s*(1+inh/ki))
		},
	},
	PingPong: {
		code: "ppm", title: "Ping-pong mechanism", substrates: 2,
		params: []params.Param{velocity("v_max"), conc("kma"), conc("kmb")},
		rate: func(v []float64, s, b, _ float64) float64 {
			vmax, kma, kmb := v[0], v[1], v[2]
			return vmax * b * s / (kmb*s + kma*b + s*b)
		},
	},
	PingPongSubstrateInhibition: {
		code: "ppmsi", title: "Ping-pong (substrate inhibition)", substrates: 2,
		params: []params.Param{velocity("v_max"), conc("kdb"), conc("kma"), conc("kmb")},
		rate: func(v []float64, s, b, _ float64) float64 {
			vmax, kdb, kma, kmb := v[0], v[1], v[2], v[3]
			return vmax * b * s / (kmb*s + kma*b*(1+b/kdb) + s*b)
		},
	},
	TernaryComplex: {
		code: "tc", title: "Ternary complex", substrates: 2,
		params: []params.Param{velocity("v_max"), conc("kda"), conc("kma"), conc("kmb")},
		rate: func(v []float64, s, b, _ float64) float64 {
			vmax, kda, kma, kmb := v[0], v[1], v[2], v[3]
			return vmax * b * s / (kda*kmb + kmb*s + kma*b + s*b)
		},
	},
	TernaryComplexSubstrateInhibition: {
		code: "tcsi", title: "Ternary complex (substrate inhibition)", substrates: 2,
		params: []params.Param{velocity("v_max"), conc("kma"), conc("kmb"), conc("kda"), conc("ksib")},
		rate: func(v []float64, s, b, _ float64) float64 {
			vmax, kma, kmb, kda, ksib := v[0], v[1], v[2], v[3], v[4]
			return vmax * b * s / (kda*kmb + kmb*s + kma*b + s*b*(1+b/ksib))
		},
	},
}

// finite reports whether x is neither Inf nor NaN.
func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }
