package ratelaw

import (
	"fmt"
	"math"
	"strings"

	"github.com/katalvlaran/enzfit"
	"github.com/katalvlaran/enzfit/params"
)

// Sentinel errors returned by ratelaw.
var (
	// ErrUnknownKind indicates a Kind outside the closed enum or an unknown code.
	ErrUnknownKind = fmt.Errorf("ratelaw: unknown rate law: %w", enzfit.ErrValidation)

	// ErrShape indicates input arrays of different lengths.
	ErrShape = fmt.Errorf("ratelaw: input length mismatch: %w", enzfit.ErrValidation)

	// ErrMissingConst indicates a two-substrate law evaluated without
	// constant-substrate concentrations.
	ErrMissingConst = fmt.Errorf("ratelaw: constant substrate required: %w", enzfit.ErrValidation)

	// ErrInitializations indicates a negative multi-start count.
	ErrInitializations = fmt.Errorf("ratelaw: initializations must be >= 0: %w", enzfit.ErrValidation)

	// ErrEnzymeUnset indicates an enzyme-scaled law evaluated before the total
	// enzyme concentration was configured.
	ErrEnzymeUnset = fmt.Errorf("ratelaw: enzyme concentration not configured: %w", enzfit.ErrConfiguration)

	// ErrBadEnzyme indicates a non-positive or non-finite enzyme concentration.
	ErrBadEnzyme = fmt.Errorf("ratelaw: enzyme concentration must be finite and > 0: %w", enzfit.ErrConfiguration)

	// ErrNonFinite indicates Inf or NaN produced by a rate law.
	ErrNonFinite = fmt.Errorf("ratelaw: non-finite rate: %w", enzfit.ErrNumeric)
)

// Kind enumerates the supported mechanisms.
type Kind int

const (
	// MichaelisMenten is saturating single-substrate kinetics.
	MichaelisMenten Kind = iota
	// Hill adds a cooperativity exponent.
	Hill
	// AllostericInhibition is the MWC model with an inhibitor.
	AllostericInhibition
	// CompetitiveInhibition (irreversible).
	CompetitiveInhibition
	// MixedActivation (irreversible).
	MixedActivation
	// NoncompetitiveInhibition (irreversible).
	NoncompetitiveInhibition
	// MixedInhibition (irreversible).
	MixedInhibition
	// SpecificActivation (irreversible).
	SpecificActivation
	// SubstrateActivation (irreversible).
	SubstrateActivation
	// UncompetitiveInhibition (irreversible).
	UncompetitiveInhibition
	// PingPong is the two-substrate ping-pong mechanism.
	PingPong
	// PingPongSubstrateInhibition adds inhibition by the constant substrate.
	PingPongSubstrateInhibition
	// TernaryComplex is the two-substrate ternary-complex mechanism.
	TernaryComplex
	// TernaryComplexSubstrateInhibition adds inhibition by the constant substrate.
	TernaryComplexSubstrateInhibition

	kindCount
)

// String returns the short code of k (e.g. "mm").
func (k Kind) String() string {
	if !k.valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}

	return catalog[k].code
}

// Title returns the human-readable mechanism name.
func (k Kind) Title() string {
	if !k.valid() {
		return k.String()
	}

	return catalog[k].title
}

func (k Kind) valid() bool { return k >= 0 && k < kindCount }

// ParseKind accepts a short code or a title, case-insensitively.
func ParseKind(s string) (Kind, error) {
	for k := Kind(0); k < kindCount; k++ {
		if strings.EqualFold(s, catalog[k].code) || strings.EqualFold(s, catalog[k].title) {
			return k, nil
		}
	}

	return 0, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// Env holds run-time configuration read by enzyme-scaled laws.
// The zero value is "unset". Build it once with NewEnv before fitting.
type Env struct {
	enzyme float64
	set    bool
}

// NewEnv returns an Env carrying the total enzyme concentration.
func NewEnv(enzyme float64) (Env, error) {
	if !(enzyme > 0) || math.IsInf(enzyme, 0) {
		return Env{}, fmt.Errorf("%g: %w", enzyme, ErrBadEnzyme)
	}

	return Env{enzyme: enzyme, set: true}, nil
}

// Enzyme returns the configured total enzyme concentration.
func (e Env) Enzyme() (float64, error) {
	if !e.set {
		return 0, ErrEnzymeUnset
	}

	return e.enzyme, nil
}

// IsSet reports whether NewEnv produced e.
func (e Env) IsSet() bool { return e.set }

// Inputs are the flattened independent arrays of one fit.
type Inputs struct {
	// Var holds the concentrations of the variable substrate.
	Var []float64
	// Const holds constant-substrate concentrations; required by two-substrate laws.
	Const []float64
	// Enzyme holds the active enzyme concentration per point; nil means Env.
	Enzyme []float64
}

// Len returns the number of points.
func (in Inputs) Len() int { return len(in.Var) }

// UnitSource supplies unit strings for parameter display. Datasets implement it.
type UnitSource interface {
	ConcentrationUnit() string
	RateUnit() string
}

// Units is a plain UnitSource.
type Units struct {
	Concentration string
	Rate          string
}

// ConcentrationUnit implements UnitSource.
func (u Units) ConcentrationUnit() string { return u.Concentration }

// RateUnit implements UnitSource.
func (u Units) RateUnit() string { return u.Rate }

// Law is the capability set shared by all mechanisms. The fit engine and data
// store depend only on this interface.
type Law interface {
	Kind() Kind
	Name() string
	// Substrates is 1 for single-substrate laws and 2 for bi-substrate laws.
	Substrates() int
	// UsesEnzyme reports whether rates scale with enzyme concentration.
	UsesEnzyme() bool
	// Params exposes the live configuration (values, bounds, vary flags).
	Params() *params.Set
	Initializations() int
	SetInitializations(n int) error
	// Residual returns predicted − observed for every point.
	Residual(values []float64, in Inputs, observed []float64) ([]float64, error)
	// Predictor binds resolved values into a pure predictive function.
	Predictor(values []float64) (Predictor, error)
	// Unit resolves the display unit of a parameter.
	Unit(name string, src UnitSource) (string, error)
	// Clone returns an independent deep copy.
	Clone() Law
}
