// Package fit_test benchmarks: a pooled two-parameter fit and a Hill fit
// with random restarts. Inputs are built outside the timer.
package fit_test

import (
	"testing"

	"github.com/katalvlaran/enzfit/fit"
	"github.com/katalvlaran/enzfit/ratelaw"
)

func BenchmarkFit_MichaelisMenten(b *testing.B) {
	env, _ := ratelaw.NewEnv(1)
	law, _ := ratelaw.New(ratelaw.MichaelisMenten, env)
	in := ratelaw.Inputs{Var: concGrid}
	obs := mmRates(2, 10, concGrid)
	e := fit.NewEngine()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Fit(law, 0, in, obs); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkFit_HillRestarts(b *testing.B) {
	law, _ := ratelaw.New(ratelaw.Hill, ratelaw.Env{})
	in := ratelaw.Inputs{Var: concGrid}
	obs := []float64{0.21, 0.89, 2.45, 4.02, 4.71, 4.93}
	e := fit.NewEngine(fit.WithSeed(3))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := e.Fit(law, 8, in, obs); err != nil {
			b.Fatal(err)
		}
	}
}
