// Package enzfit estimates kinetic parameters of enzyme rate laws from
// replicated concentration/rate measurements.
//
// What is inside?
//
//	params/  : ordered fit parameters with bounds, vary flags and unit categories
//	ratelaw/ : fourteen closed-form rate laws (Michaelis–Menten, Hill, inhibition,
//	           activation, MWC, ping-pong, ternary complex) behind one Law interface
//	dataset/ : single- and two-substrate experiment stores, including titration
//	           assays with the derived enzyme-dilution trail
//	fit/     : bounded Levenberg–Marquardt with seeded random multi-start, plus the
//	           pooled (single-substrate) and per-Set (two-substrate) drivers
//	metrics/ : Prometheus observer for fits
//	store/   : compressed, checksummed project snapshots on SQLite, Postgres or S3
//	report/  : xlsx workbooks of input data and fit results
//	plot/    : PNG charts of fitted curves and residuals
//	config/  : YAML run configuration and experiment descriptions
//	cmd/enzfit: command-line driver tying the packages together
//
// Quick example:
//
//	env, _ := ratelaw.NewEnv(1.0)
//	mm, _ := ratelaw.New(ratelaw.MichaelisMenten, env)
//	ds := dataset.NewSingleSubstrate("ADH")
//	_ = ds.AddReplicateText("0.5 1 2 4 8", "3.3 5 6.7 8 8.9")
//	res, err := fit.NewEngine().FitSingle(mm, ds)
//
// Every error returned by the subpackages wraps one of ErrValidation,
// ErrConfiguration, ErrNumeric or ErrConvergence.
package enzfit
