package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseValues converts text with numbers separated by commas, spaces, tabs
// or newlines into a slice. Empty input is ErrEmpty, anything that is not a
// finite number is ErrParse.
func ParseValues(text string) ([]float64, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) == 0 {
		return nil, ErrEmpty
	}

	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("field %d %q: %w", i+1, f, ErrParse)
		}
		out[i] = v
	}

	return out, nil
}

// checkFinite reports the first non-finite element of xs.
func checkFinite(what string, xs []float64) error {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return fmt.Errorf("%s[%d]=%g: %w", what, i, x, ErrNonFinite)
		}
	}

	return nil
}

// checkPair validates two parallel arrays of one replicate.
func checkPair(conc, rates []float64) error {
	if len(conc) == 0 || len(rates) == 0 {
		return ErrEmpty
	}
	if len(conc) != len(rates) {
		return fmt.Errorf("%d concentrations vs %d rates: %w", len(conc), len(rates), ErrLength)
	}
	if err := checkFinite("concentration", conc); err != nil {
		return err
	}

	return checkFinite("rate", rates)
}

func clone(xs []float64) []float64 {
	if xs == nil {
		return nil
	}

	return append([]float64(nil), xs...)
}

// removeAt returns xs without element i.
func removeAt(xs []float64, i int) []float64 {
	out := make([]float64, 0, len(xs)-1)
	out = append(out, xs[:i]...)

	return append(out, xs[i+1:]...)
}
