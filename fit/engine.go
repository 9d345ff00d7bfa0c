// Multi-start fit engine.
//
// Fit is the only entry point that touches a Law; the per-dataset drivers in
// driver.go only shape inputs and collect results.
//
// Policies:
//   - Isolation: the caller's Law is cloned once per Fit, and every run
//     (deterministic and restarts) works on that clone.
//   - Determinism: restarts draw from deriveRNG(base, k), so run k sees the
//     same start for a given seed regardless of how runs 1..k-1 ended.
//   - Selection: a restart replaces the incumbent only when strictly better.
//   - Errors: input and configuration problems fail before any run; a
//     residual error inside any run fails the whole Fit. Non-convergence is
//     reported through Result.Status and Result.Warning, never as an error.
//   - Observation: the Observer sees exactly one Event per Fit, failed or not.
//
// Complexity: (initializations+1) local runs; see lm.go for the cost of one.

package fit

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/katalvlaran/enzfit/ratelaw"
)

// Engine runs multi-start least-squares fits. It holds no per-fit state and
// is safe for concurrent use when its Observer is.
type Engine struct {
	opts Options
	log  *slog.Logger
}

// NewEngine applies opts over DefaultOptions.
func NewEngine(opts ...Option) *Engine {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	if o.Logger == nil {
		o.Logger = DefaultOptions().Logger
	}

	return &Engine{opts: o, log: o.Logger}
}

// Options returns the effective configuration.
func (e *Engine) Options() Options { return e.opts }

// Fit minimizes the summed squared residuals of law over (in, observed).
//
// The first local run starts from the law's configured values (clamped into
// their bounds); initializations further runs start from uniform draws in
// [min, max] of every varying parameter. The strictly best run is returned.
// law itself is never modified.
func (e *Engine) Fit(law ratelaw.Law, initializations int, in ratelaw.Inputs, observed []float64) (res Result, err error) {
	if law == nil {
		return Result{}, ErrNilLaw
	}
	began := time.Now()
	name := law.Name()
	defer func() {
		e.observe(Event{
			Model:       name,
			Duration:    time.Since(began),
			Runs:        res.Runs,
			Evaluations: res.Evaluations,
			Converged:   err == nil && res.Status.Converged(),
			SumSquares:  res.SumSquares,
			Err:         err,
		})
	}()

	if initializations < 0 {
		return Result{}, fmt.Errorf("%s: %d: %w", name, initializations, ratelaw.ErrInitializations)
	}
	if len(observed) == 0 {
		return Result{}, fmt.Errorf("%s: %w", name, ErrNoData)
	}
	if len(in.Var) != len(observed) {
		return Result{}, fmt.Errorf("%s: %d inputs vs %d observations: %w", name, len(in.Var), len(observed), ratelaw.ErrShape)
	}

	work := law.Clone()
	ps := work.Params()
	if err := ps.Validate(); err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}
	if initializations > 0 {
		for _, i := range ps.Free() {
			if p := ps.At(i); !p.Finite() {
				return Result{}, fmt.Errorf("%s: %s [%g, %g]: %w", name, p.Name, p.Min, p.Max, ErrInfiniteBound)
			}
		}
	}

	e.log.Info("fit start",
		slog.String("model", name),
		slog.Int("points", len(observed)),
		slog.Int("initializations", initializations))

	sp := newSpace(ps, ps.Values())
	best, err := e.local(work, sp, sp.base, in, observed)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}
	res = Result{Runs: 1, Evaluations: best.evals}
	bestRun := 0

	rng := rngFromSeed(e.opts.Seed)
	for k := 1; k <= initializations; k++ {
		start := uniformStart(deriveRNG(rng, uint64(k)), sp.base, sp)
		run, err := e.local(work, sp, start, in, observed)
		if err != nil {
			return Result{}, fmt.Errorf("%s: restart %d: %w", name, k, err)
		}
		res.Runs++
		res.Evaluations += run.evals
		e.log.Debug("fit restart",
			slog.String("model", name),
			slog.Int("restart", k),
			slog.Float64("sum_squares", run.ss),
			slog.String("status", run.status.String()))
		if run.ss < best.ss {
			best, bestRun = run, k
		}
	}

	values := sp.toExternal(nil, best.u)
	resolved, err := ps.Resolve(values)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}
	pred, err := work.Predictor(values)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", name, err)
	}

	res.Model = name
	res.Kind = work.Kind()
	res.Params = resolved
	res.Residual = best.r
	res.SumSquares = best.ss
	res.Predictor = pred
	res.Status = best.status
	res.Best = bestRun
	res.law = work

	if w := res.Warning(); w != nil {
		e.log.Warn("fit not converged", slog.String("model", name), slog.String("status", best.status.String()))
	}
	e.log.Info("fit done",
		slog.String("model", name),
		slog.Float64("sum_squares", res.SumSquares),
		slog.Int("best_run", bestRun),
		slog.Int("evaluations", res.Evaluations))

	return res, nil
}

// local runs one Levenberg–Marquardt minimization from the external start.
func (e *Engine) local(law ratelaw.Law, sp space, start []float64, in ratelaw.Inputs, observed []float64) (localRun, error) {
	ext := make([]float64, len(start))
	f := func(u []float64) ([]float64, error) {
		return law.Residual(sp.toExternal(ext, u), in, observed)
	}
	tol := tolerances{ftol: e.opts.FTol, xtol: e.opts.XTol, gtol: e.opts.GTol, maxEvals: e.opts.MaxEvaluations}

	return levenbergMarquardt(f, sp.toInternal(start), tol)
}

func (e *Engine) observe(ev Event) {
	if e.opts.Observer != nil {
		e.opts.Observer.ObserveFit(ev)
	}
}
