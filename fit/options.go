// Engine configuration: Options, documented defaults and With* constructors.
//
// Policy:
//   - Defaults are a single source of truth: DefaultOptions, then each Option
//     in call order.
//   - Invalid option values are programmer errors and panic inside the
//     Option; data-dependent problems are returned as errors by Fit.
//   - A nil Logger is replaced with the discarding default, so the engine
//     never checks for nil when logging.

package fit

import (
	"io"
	"log/slog"
)

// Default tolerances of the local minimizer.
const (
	DefaultFTol = 1e-10
	DefaultXTol = 1e-10
	DefaultGTol = 1e-10
)

// Options configures an Engine.
//
// Seed           – seed of the restart stream; 0 selects a fixed default.
// FTol/XTol/GTol – convergence tolerances, all > 0.
// MaxEvaluations – residual evaluations per local run; 0 means 2000·(free+1).
// Logger         – structured logger; nil discards.
// Observer       – optional per-fit callback.
type Options struct {
	Seed           int64
	FTol           float64
	XTol           float64
	GTol           float64
	MaxEvaluations int
	Logger         *slog.Logger
	Observer       Observer
}

// Option represents a functional option for configuring an Engine.
type Option func(*Options)

// WithSeed sets the random-restart seed.
func WithSeed(seed int64) Option {
	return func(o *Options) { o.Seed = seed }
}

// WithTolerances sets ftol, xtol and gtol. Non-positive values panic.
func WithTolerances(ftol, xtol, gtol float64) Option {
	return func(o *Options) {
		if !(ftol > 0) || !(xtol > 0) || !(gtol > 0) {
			panic("fit: tolerances must be > 0")
		}
		o.FTol, o.XTol, o.GTol = ftol, xtol, gtol
	}
}

// WithMaxEvaluations caps residual evaluations per local run.
// Negative values panic; 0 restores the automatic budget.
func WithMaxEvaluations(n int) Option {
	return func(o *Options) {
		if n < 0 {
			panic("fit: max evaluations must be >= 0")
		}
		o.MaxEvaluations = n
	}
}

// WithLogger routes engine logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithObserver registers an Observer.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// DefaultOptions returns Options with default tolerances, automatic
// evaluation budget, seed 0 and a discarding logger.
func DefaultOptions() Options {
	return Options{
		FTol:   DefaultFTol,
		XTol:   DefaultXTol,
		GTol:   DefaultGTol,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
