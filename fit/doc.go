// Package fit estimates rate-law parameters by bounded least squares.
//
// The local minimizer is a Levenberg–Marquardt iteration over internal,
// unbounded coordinates: every varying parameter with bounds is mapped through
// the MINUIT transforms
//
//	both bounds:  v = min + (sin(u)+1)·(max−min)/2
//	lower only:   v = min − 1 + sqrt(u²+1)
//	upper only:   v = max + 1 − sqrt(u²+1)
//
// so iterates never leave [min, max]. The Jacobian is taken by forward
// differences and each damped step solves (JᵀJ + λ·diag(JᵀJ))·δ = −Jᵀr with a
// Cholesky factorization from gonum/mat.
//
// Engine.Fit first runs from the law's configured values, then from
// `initializations` points drawn uniformly in [min, max] for every varying
// parameter. The run with the strictly lowest sum of squared residuals wins,
// so the deterministic run wins ties. Random draws come from a seeded stream,
// one derived sub-stream per restart, so results are reproducible.
//
// The engine always works on a private Clone of the law; the caller's
// configuration (values, bounds, vary flags) is never modified.
//
// Drivers:
//
//	FitSingle  pooled fit of every replicate of a SingleSubstrate
//	FitSet     one Set of a DualSubstrate role
//	FitSets    every Set of a role independently, aborting on the first failure
//	Batch*     several laws over one dataset, one Outcome per law
//
// A Result that did not meet a convergence criterion is still returned;
// Result.Warning reports it as an enzfit.ErrConvergence.
package fit
