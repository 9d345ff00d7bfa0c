package ratelaw

import "fmt"

// Predictor is a pure function of concentration bound to resolved parameter
// values. The zero value is not usable; obtain one from Law.Predictor.
type Predictor struct {
	kind   Kind
	values []float64
	enzyme float64
}

// Kind returns the mechanism the predictor evaluates.
func (p Predictor) Kind() Kind { return p.kind }

// Values returns a copy of the bound parameter values.
func (p Predictor) Values() []float64 { return append([]float64(nil), p.values...) }

// Rate evaluates a single point without finiteness checks.
// extra[0], when given, is the constant-substrate concentration and
// extra[1] overrides the enzyme concentration.
func (p Predictor) Rate(s float64, extra ...float64) float64 {
	var b float64
	e := p.enzyme
	if len(extra) > 0 {
		b = extra[0]
	}
	if len(extra) > 1 {
		e = extra[1]
	}

	return catalog[p.kind].rate(p.values, s, b, e)
}

// Eval evaluates every point of in. Non-finite rates fail with ErrNonFinite.
func (p Predictor) Eval(in Inputs) ([]float64, error) {
	n := len(in.Var)
	if catalog[p.kind].substrates == 2 && len(in.Const) != n {
		return nil, fmt.Errorf("%s: %w", p.kind, ErrMissingConst)
	}
	if (in.Const != nil && len(in.Const) != n) || (in.Enzyme != nil && len(in.Enzyme) != n) {
		return nil, fmt.Errorf("%s: %w", p.kind, ErrShape)
	}

	out := make([]float64, n)
	for i, s := range in.Var {
		var b float64
		if in.Const != nil {
			b = in.Const[i]
		}
		e := p.enzyme
		if in.Enzyme != nil {
			e = in.Enzyme[i]
		}
		r := catalog[p.kind].rate(p.values, s, b, e)
		if !finite(r) {
			return nil, fmt.Errorf("%s at point %d (s=%g): %w", p.kind, i, s, ErrNonFinite)
		}
		out[i] = r
	}

	return out, nil
}

// Curve samples the predictor at n evenly spaced points on [lo, hi] with a
// fixed constant substrate b. Non-finite samples are dropped.
func (p Predictor) Curve(lo, hi, b float64, n int) (xs, ys []float64) {
	if n < 2 {
		n = 2
	}
	step := (hi - lo) / float64(n-1)
	xs = make([]float64, 0, n)
	ys = make([]float64, 0, n)
	for i := 0; i < n; i++ {
		x := lo + float64(i)*step
		y := p.Rate(x, b)
		if !finite(y) {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	return xs, ys
}
