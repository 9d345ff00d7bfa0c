package dataset

import (
	"fmt"
	"math"
)

// Injection describes how a titration Set dilutes the enzyme and depletes
// the constant substrate.
type Injection struct {
	// TimeStep between consecutive points; 0 disables depletion.
	TimeStep float64 `json:"time_step"`
	// V0 is the initial volume holding the enzyme.
	V0 float64 `json:"v0"`
	// VAdd is the volume added by each injection.
	VAdd float64 `json:"v_add"`
}

func (inj Injection) validate() error {
	ok := inj.V0 > 0 && !math.IsInf(inj.V0, 0) &&
		inj.VAdd >= 0 && !math.IsInf(inj.VAdd, 0) &&
		inj.TimeStep >= 0 && !math.IsInf(inj.TimeStep, 0)
	if !ok {
		return fmt.Errorf("%+v: %w", inj, ErrInjection)
	}

	return nil
}

// Dilution returns the active enzyme concentration at each of n points:
// E_i = v0/(vadd·(i+1)+v0)·E for point positions i = 1..n, so the first
// point already carries two injection volumes.
func (inj Injection) Dilution(enzyme float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = inj.V0 / (inj.VAdd*float64(i+2) + inj.V0) * enzyme
	}

	return out
}

// Depletion returns the constant-substrate series for one replicate starting
// at b0, where each point consumes rate·stoich·TimeStep of substrate.
func (inj Injection) Depletion(b0 float64, rates []float64, stoich float64) []float64 {
	out := make([]float64, len(rates))
	if len(out) == 0 {
		return out
	}
	out[0] = b0
	for i := 1; i < len(out); i++ {
		out[i] = out[i-1] - rates[i-1]*stoich*inj.TimeStep
	}

	return out
}

// SetSpec is supplied once when a Set is created.
type SetSpec struct {
	// Const is the (initial) constant-substrate concentration.
	Const float64 `json:"const"`
	// Injection is required in titration mode and ignored otherwise.
	Injection *Injection `json:"injection,omitempty"`
}

func (s SetSpec) clone() SetSpec {
	if s.Injection != nil {
		inj := *s.Injection
		s.Injection = &inj
	}

	return s
}
