package fit

import (
	"fmt"
	"time"

	"github.com/katalvlaran/enzfit"
	"github.com/katalvlaran/enzfit/params"
	"github.com/katalvlaran/enzfit/ratelaw"
)

// Sentinel errors returned by fit.
var (
	// ErrInfiniteBound indicates random restarts requested for a varying
	// parameter without two finite bounds.
	ErrInfiniteBound = fmt.Errorf("fit: random restarts need finite bounds: %w", enzfit.ErrConfiguration)

	// ErrNoData indicates a fit without observations.
	ErrNoData = fmt.Errorf("fit: no data points: %w", enzfit.ErrValidation)

	// ErrNotConverged is wrapped by Result.Warning.
	ErrNotConverged = fmt.Errorf("fit: minimizer did not converge: %w", enzfit.ErrConvergence)

	// ErrNilLaw indicates a nil law passed to the engine.
	ErrNilLaw = fmt.Errorf("fit: nil rate law: %w", enzfit.ErrValidation)
)

// Status is the termination reason of a local minimization.
type Status int

const (
	// StatusExact: residuals are exactly zero.
	StatusExact Status = iota
	// StatusFTol: relative reduction of the sum of squares fell below FTol.
	StatusFTol
	// StatusXTol: the step fell below XTol relative to the iterate.
	StatusXTol
	// StatusGTol: the gradient vanished below GTol.
	StatusGTol
	// StatusNoFree: nothing to vary; residuals were evaluated once.
	StatusNoFree
	// StatusMaxEvaluations: the evaluation budget ran out.
	StatusMaxEvaluations
	// StatusStalled: damping grew without finding a descent step.
	StatusStalled
)

var statusNames = [...]string{
	StatusExact:          "exact",
	StatusFTol:           "ftol",
	StatusXTol:           "xtol",
	StatusGTol:           "gtol",
	StatusNoFree:         "no free parameters",
	StatusMaxEvaluations: "max evaluations",
	StatusStalled:        "stalled",
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return fmt.Sprintf("Status(%d)", int(s))
	}

	return statusNames[s]
}

// Converged reports whether s is a convergence criterion.
func (s Status) Converged() bool { return s <= StatusNoFree }

// Result is the outcome of one multi-start fit.
type Result struct {
	// Model is the display name of the fitted law.
	Model string
	Kind  ratelaw.Kind
	// Params is the resolved parameter set of the winning run.
	Params *params.Set
	// Residual is predicted − observed at the winning values.
	Residual   []float64
	SumSquares float64
	// Predictor is the law bound to the winning values.
	Predictor ratelaw.Predictor
	// Status is the termination reason of the winning run.
	Status Status
	// Runs counts local minimizations (1 + initializations).
	Runs int
	// Best is the index of the winning run; 0 is the deterministic start.
	Best int
	// Evaluations counts residual evaluations over all runs.
	Evaluations int

	law ratelaw.Law
}

// Values returns the winning parameter values in set order.
func (r Result) Values() []float64 { return r.Params.Values() }

// Value returns the fitted value of name.
func (r Result) Value(name string) (float64, bool) {
	p, ok := r.Params.Get(name)
	return p.Value, ok
}

// Unit resolves the display unit of a parameter against a dataset.
func (r Result) Unit(name string, src ratelaw.UnitSource) (string, error) {
	return r.law.Unit(name, src)
}

// Warning returns an ErrConvergence-wrapped error when the winning run did not
// converge, and nil otherwise.
func (r Result) Warning() error {
	if r.Status.Converged() {
		return nil
	}

	return fmt.Errorf("%s: %s: %w", r.Model, r.Status, ErrNotConverged)
}

// Event is reported to an Observer after every Engine.Fit.
type Event struct {
	Model       string
	Duration    time.Duration
	Runs        int
	Evaluations int
	Converged   bool
	SumSquares  float64
	Err         error
}

// Observer receives fit events. Implementations must be cheap; they run on
// the fitting goroutine.
type Observer interface {
	ObserveFit(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// ObserveFit implements Observer.
func (f ObserverFunc) ObserveFit(e Event) { f(e) }
