// Bounded Levenberg–Marquardt over internal coordinates.
//
// One local run alternates two loops:
//   - outer: rebuild the forward-difference Jacobian J at the accepted point,
//     form g = Jᵀr and A = JᵀJ, stop on gtol;
//   - inner: solve (A + λ·diag(A))·δ = −g, evaluate the trial point, accept
//     and shrink λ on descent, otherwise grow λ and retry.
//
// Stopping policy: an accepted step below xtol (relative to ||u||) ends with
// StatusXTol, a relative drop in Σr² below ftol ends with StatusFTol, an exact
// zero residual ends with StatusExact. λ above lambdaMax or a failed Cholesky
// at every damping level ends with StatusStalled. The evaluation budget is
// checked before each Jacobian, so a run never starts one it cannot finish.
//
// Error policy: the only errors are the objective's own (non-finite or
// ill-shaped residuals); every numeric dead end is a Status, not an error.
//
// Complexity per outer iteration, m residuals and n free parameters:
//   - Jacobian: n objective evaluations, O(m·n) stores;
//   - normal equations: O(m·n²);
//   - each damped solve: O(n³) for the Cholesky factorization.

package fit

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Damping schedule of the Levenberg–Marquardt iteration.
const (
	lambdaInit  = 1e-3
	lambdaUp    = 10.0
	lambdaDown  = 10.0
	lambdaMin   = 1e-15
	lambdaMax   = 1e20
	diagFloor   = 1e-30
	evalsPerVar = 2000
)

// objective evaluates residuals at internal coordinates.
type objective func(u []float64) ([]float64, error)

// tolerances of one local run.
type tolerances struct {
	ftol, xtol, gtol float64
	maxEvals         int
}

// localRun is the outcome of one minimization.
type localRun struct {
	u      []float64
	r      []float64
	ss     float64
	status Status
	evals  int
}

// sumSquares returns Σ r_i².
func sumSquares(r []float64) float64 { return floats.Dot(r, r) }

// levenbergMarquardt minimizes ||f(u)||² from u0. A non-finite residual
// aborts the run with the objective's error.
func levenbergMarquardt(f objective, u0 []float64, tol tolerances) (localRun, error) {
	n := len(u0)
	u := append([]float64(nil), u0...)
	r, err := f(u)
	if err != nil {
		return localRun{}, err
	}
	run := localRun{u: u, r: r, ss: sumSquares(r), evals: 1}
	if n == 0 {
		run.status = StatusNoFree
		return run, nil
	}

	m := len(r)
	maxEvals := tol.maxEvals
	if maxEvals == 0 {
		maxEvals = evalsPerVar * (n + 1)
	}

	lambda := lambdaInit
	jac := mat.NewDense(m, n, nil)
	trial := make([]float64, n)

	for {
		if run.ss == 0 {
			run.status = StatusExact
			return run, nil
		}
		if run.evals+n > maxEvals {
			run.status = StatusMaxEvaluations
			return run, nil
		}

		if err := jacobian(f, run.u, run.r, jac); err != nil {
			return localRun{}, err
		}
		run.evals += n

		// g = Jᵀr, A = JᵀJ
		var g mat.VecDense
		g.MulVec(jac.T(), mat.NewVecDense(m, run.r))
		if mat.Norm(&g, math.Inf(1)) <= tol.gtol {
			run.status = StatusGTol
			return run, nil
		}
		var a mat.SymDense
		a.SymOuterK(1, jac.T())

		for {
			step, ok := dampedStep(&a, &g, lambda)
			if !ok {
				lambda *= lambdaUp
				if lambda > lambdaMax {
					run.status = StatusStalled
					return run, nil
				}
				continue
			}

			floats.AddTo(trial, run.u, step)
			rt, err := f(trial)
			if err != nil {
				return localRun{}, err
			}
			run.evals++
			sst := sumSquares(rt)
			small := floats.Norm(step, 2) <= tol.xtol*(floats.Norm(run.u, 2)+tol.xtol)

			if sst < run.ss {
				rel := (run.ss - sst) / run.ss
				run.u = append(run.u[:0:0], trial...)
				run.r, run.ss = rt, sst
				lambda = math.Max(lambda/lambdaDown, lambdaMin)
				switch {
				case small:
					run.status = StatusXTol
					return run, nil
				case rel <= tol.ftol:
					run.status = StatusFTol
					return run, nil
				}
				break
			}

			if small {
				run.status = StatusXTol
				return run, nil
			}
			lambda *= lambdaUp
			if lambda > lambdaMax {
				run.status = StatusStalled
				return run, nil
			}
			if run.evals >= maxEvals {
				run.status = StatusMaxEvaluations
				return run, nil
			}
		}
	}
}

// dampedStep solves (A + λ·D)·δ = −g with D = diag(A) floored away from zero.
// ok is false when A + λ·D is not positive definite or δ is not finite; the
// caller then raises λ.
//
// Complexity: O(n³).
func dampedStep(a *mat.SymDense, g *mat.VecDense, lambda float64) ([]float64, bool) {
	n := a.SymmetricDim()
	m := mat.NewSymDense(n, nil)
	m.CopySym(a)
	for i := 0; i < n; i++ {
		d := math.Max(a.At(i, i), diagFloor)
		m.SetSym(i, i, a.At(i, i)+lambda*d)
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(m); !ok {
		return nil, false
	}
	var delta mat.VecDense
	if err := chol.SolveVecTo(&delta, g); err != nil {
		return nil, false
	}

	step := make([]float64, n)
	for i := range step {
		step[i] = -delta.AtVec(i)
		if math.IsNaN(step[i]) || math.IsInf(step[i], 0) {
			return nil, false
		}
	}

	return step, true
}

// jacobian fills jac with forward differences of f around u, where r = f(u).
// The step for column j is sqrt(eps)·max(|u_j|, 1).
//
// Complexity: n evaluations of f, O(m·n) writes.
func jacobian(f objective, u, r []float64, jac *mat.Dense) error {
	h0 := math.Sqrt(2.220446049250313e-16)
	shifted := append([]float64(nil), u...)
	for j := range u {
		h := h0 * math.Max(math.Abs(u[j]), 1)
		shifted[j] = u[j] + h
		rp, err := f(shifted)
		if err != nil {
			return err
		}
		shifted[j] = u[j]
		for i := range r {
			jac.Set(i, j, (rp[i]-r[i])/h)
		}
	}

	return nil
}
