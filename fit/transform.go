// SPDX-License-Identifier: MIT

package fit

import (
	"math"

	"github.com/katalvlaran/enzfit/params"
)

// bound maps one varying parameter between external (bounded) and internal
// (unbounded) coordinates.
type bound struct {
	lo, hi       float64
	hasLo, hasHi bool
}

func boundOf(p params.Param) bound {
	return bound{
		lo:    p.Min,
		hi:    p.Max,
		hasLo: !math.IsInf(p.Min, -1),
		hasHi: !math.IsInf(p.Max, 1),
	}
}

// clamp pulls v into [lo, hi].
func (b bound) clamp(v float64) float64 {
	if b.hasLo && v < b.lo {
		v = b.lo
	}
	if b.hasHi && v > b.hi {
		v = b.hi
	}

	return v
}

// internal converts an in-range external value to internal coordinates.
func (b bound) internal(v float64) float64 {
	v = b.clamp(v)
	switch {
	case b.hasLo && b.hasHi:
		if b.hi == b.lo {
			return 0
		}
		return math.Asin(2*(v-b.lo)/(b.hi-b.lo) - 1)
	case b.hasLo:
		return math.Sqrt((v-b.lo+1)*(v-b.lo+1) - 1)
	case b.hasHi:
		return math.Sqrt((b.hi-v+1)*(b.hi-v+1) - 1)
	default:
		return v
	}
}

// external converts internal coordinates back into [lo, hi].
func (b bound) external(u float64) float64 {
	switch {
	case b.hasLo && b.hasHi:
		return b.lo + (math.Sin(u)+1)*(b.hi-b.lo)/2
	case b.hasLo:
		return b.lo - 1 + math.Sqrt(u*u+1)
	case b.hasHi:
		return b.hi + 1 - math.Sqrt(u*u+1)
	default:
		return u
	}
}

// space binds a parameter set to its free coordinates.
type space struct {
	base   []float64 // full external vector; fixed entries never change
	free   []int
	bounds []bound
}

func newSpace(ps *params.Set, start []float64) space {
	free := ps.Free()
	sp := space{base: append([]float64(nil), start...), free: free, bounds: make([]bound, len(free))}
	for k, i := range free {
		sp.bounds[k] = boundOf(ps.At(i))
		sp.base[i] = sp.bounds[k].clamp(sp.base[i])
	}

	return sp
}

// toInternal returns the internal coordinates of the free entries of ext.
func (sp space) toInternal(ext []float64) []float64 {
	u := make([]float64, len(sp.free))
	for k, i := range sp.free {
		u[k] = sp.bounds[k].internal(ext[i])
	}

	return u
}

// toExternal writes the external vector for u into dst (len = parameters).
func (sp space) toExternal(dst, u []float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(sp.base))
	}
	copy(dst, sp.base)
	for k, i := range sp.free {
		dst[i] = sp.bounds[k].external(u[k])
	}

	return dst
}
