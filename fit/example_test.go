package fit_test

import (
	"fmt"

	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/fit"
	"github.com/katalvlaran/enzfit/ratelaw"
)

// ExampleEngine_FitSingle recovers km and v_max from noiseless
// Michaelis-Menten rates.
func ExampleEngine_FitSingle() {
	env, _ := ratelaw.NewEnv(1)
	mm, _ := ratelaw.New(ratelaw.MichaelisMenten, env)

	ds := dataset.NewSingleSubstrate("ADH")
	_ = ds.AddReplicateText("0.5 1 2 4 8 16", "2 3.3333333333333335 5 6.666666666666667 8 8.88888888888889")

	res, err := fit.NewEngine(fit.WithSeed(7)).FitSingle(mm, ds)
	if err != nil {
		fmt.Println(err)
		return
	}
	km, _ := res.Value("km")
	vmax, _ := res.Value("v_max")
	fmt.Printf("km=%.3f v_max=%.3f converged=%v\n", km, vmax, res.Status.Converged())
	// Output: km=2.000 v_max=10.000 converged=true
}

// ExampleEngine_FitSets fits each constant-substrate Set on its own.
func ExampleEngine_FitSets() {
	ds, _ := dataset.NewDualSubstrate("bi", dataset.WithSubstrateNames("NAD", "EtOH"))
	_ = ds.AddSet(dataset.SetSpec{Const: 1}, []float64{1, 2, 4}, []float64{1, 4.0 / 3, 1.6})
	_ = ds.AddSet(dataset.SetSpec{Const: 5}, []float64{1, 2, 4}, []float64{2.5, 10.0 / 3, 4})

	hill, _ := ratelaw.New(ratelaw.Hill, ratelaw.Env{})
	_ = hill.Params().Fix("n", 1)

	fits, err := fit.NewEngine().FitSets(hill, ds, dataset.RoleA)
	if err != nil {
		fmt.Println(err)
		return
	}
	for i, r := range fits {
		v, _ := r.Value("v_max")
		fmt.Printf("set %d: v_max=%.2f\n", i+1, v)
	}
	// Output:
	// set 1: v_max=2.00
	// set 2: v_max=5.00
}
