package params

import (
	"fmt"
	"math"

	"github.com/katalvlaran/enzfit"
)

// Sentinel errors returned by params.
var (
	// ErrEmptyName indicates a parameter without a name.
	ErrEmptyName = fmt.Errorf("params: empty parameter name: %w", enzfit.ErrValidation)

	// ErrDuplicate indicates a second parameter with an already used name.
	ErrDuplicate = fmt.Errorf("params: duplicate parameter: %w", enzfit.ErrValidation)

	// ErrUnknown indicates a lookup of a name not present in the set.
	ErrUnknown = fmt.Errorf("params: unknown parameter: %w", enzfit.ErrValidation)

	// ErrBounds indicates Min > Max or a NaN bound.
	ErrBounds = fmt.Errorf("params: lower bound above upper bound: %w", enzfit.ErrValidation)

	// ErrOutOfBounds indicates a varying value outside its finite bounds.
	ErrOutOfBounds = fmt.Errorf("params: value outside bounds: %w", enzfit.ErrValidation)

	// ErrArity indicates a value vector whose length differs from the set size.
	ErrArity = fmt.Errorf("params: value count mismatch: %w", enzfit.ErrValidation)

	// ErrCategory indicates an unknown unit category symbol.
	ErrCategory = fmt.Errorf("params: unknown unit category: %w", enzfit.ErrValidation)
)

// Category classifies the physical unit of a parameter.
type Category int

const (
	// Concentration parameters are reported in the dataset's concentration unit.
	Concentration Category = iota
	// Rate parameters are reported in the dataset's rate unit.
	Rate
	// Dimensionless parameters have no unit.
	Dimensionless
)

// String returns the short symbol of the category: "c", "r" or "".
func (c Category) String() string {
	switch c {
	case Concentration:
		return "c"
	case Rate:
		return "r"
	default:
		return ""
	}
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(s string) (Category, error) {
	switch s {
	case "c":
		return Concentration, nil
	case "r":
		return Rate, nil
	case "":
		return Dimensionless, nil
	}

	return Dimensionless, fmt.Errorf("%q: %w", s, ErrCategory)
}

// Param is one fit parameter.
type Param struct {
	Name     string   `json:"name" yaml:"name"`
	Value    float64  `json:"value" yaml:"value"`
	Min      float64  `json:"min" yaml:"min"`
	Max      float64  `json:"max" yaml:"max"`
	Vary     bool     `json:"vary" yaml:"vary"`
	Category Category `json:"category" yaml:"category"`
}

// NewParam returns an unbounded, varying parameter.
func NewParam(name string, value float64, cat Category) Param {
	return Param{
		Name:     name,
		Value:    value,
		Min:      math.Inf(-1),
		Max:      math.Inf(1),
		Vary:     true,
		Category: cat,
	}
}

// Bounded returns a varying parameter with the given bounds.
func Bounded(name string, value, lo, hi float64, cat Category) Param {
	p := NewParam(name, value, cat)
	p.Min, p.Max = lo, hi

	return p
}

// Finite reports whether both bounds are finite.
func (p Param) Finite() bool {
	return !math.IsInf(p.Min, 0) && !math.IsInf(p.Max, 0)
}

// validate checks the bound invariants of a single parameter.
func (p Param) validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if math.IsNaN(p.Min) || math.IsNaN(p.Max) || p.Min > p.Max {
		return fmt.Errorf("%s [%g, %g]: %w", p.Name, p.Min, p.Max, ErrBounds)
	}
	if p.Vary && (p.Value < p.Min || p.Value > p.Max || math.IsNaN(p.Value)) {
		return fmt.Errorf("%s=%g not in [%g, %g]: %w", p.Name, p.Value, p.Min, p.Max, ErrOutOfBounds)
	}

	return nil
}
