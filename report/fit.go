package report

import (
	"fmt"
	"io"

	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/fit"
	"github.com/katalvlaran/enzfit/ratelaw"
)

// SingleFit writes a "fit results" sheet: data with predicted rates, then
// the parameter table of res.
func SingleFit(w io.Writer, ds *dataset.SingleSubstrate, res fit.Result) error {
	wb, err := newWorkbook()
	if err != nil {
		return err
	}
	sh, err := wb.sheet("fit results")
	if err != nil {
		return err
	}
	reps := ds.Replicates()
	predict := func(j, p int) float64 { return res.Predictor.Rate(reps[j].Conc[p]) }
	if err := writeSingle(sh, ds, predict); err != nil {
		return err
	}
	if err := sh.append(); err != nil {
		return err
	}
	if err := writeParams(sh, res, ds); err != nil {
		return err
	}

	return wb.writeTo(w)
}

// DualFit writes one "<substrate> - fitted_data" sheet per role present in
// fits. Each role needs exactly one result per Set.
func DualFit(w io.Writer, ds *dataset.DualSubstrate, fits map[dataset.Role]fit.SetFits) error {
	if len(fits) == 0 {
		return ErrNoFits
	}
	wb, err := newWorkbook()
	if err != nil {
		return err
	}
	for _, r := range []dataset.Role{dataset.RoleA, dataset.RoleB} {
		rf, ok := fits[r]
		if !ok {
			continue
		}
		sets := ds.Sets(r)
		if len(rf) != len(sets) {
			return fmt.Errorf("role %s: %d fits for %d sets: %w", r, len(rf), len(sets), ErrFitCount)
		}
		sh, err := wb.sheet(ds.VariableName(r) + " - fitted_data")
		if err != nil {
			return err
		}
		for i, set := range sets {
			if err := writeSet(sh, ds, r, i, set, setPredict(rf[i].Predictor, set)); err != nil {
				return err
			}
			if err := sh.append(); err != nil {
				return err
			}
			if err := writeParams(sh, rf[i], ds); err != nil {
				return err
			}
			if err := sh.append(); err != nil {
				return err
			}
			if err := sh.append(); err != nil {
				return err
			}
		}
	}

	return wb.writeTo(w)
}

// setPredict evaluates at the stored constant substrate and, when the point
// carries one, the diluted enzyme concentration.
func setPredict(p ratelaw.Predictor, set dataset.Set) predictFunc {
	return func(j, k int) float64 {
		rep := set.Replicates[j]
		if rep.Enzyme != nil {
			return p.Rate(rep.Var[k], rep.Const[k], rep.Enzyme[k])
		}

		return p.Rate(rep.Var[k], rep.Const[k])
	}
}

func writeParams(sh *sheet, res fit.Result, src ratelaw.UnitSource) error {
	if err := sh.header("Fit parameters", res.Model); err != nil {
		return err
	}
	if err := sh.header("", "Fitted value", "Lower bound", "Upper bound", "Unit", "Fixed"); err != nil {
		return err
	}
	for _, p := range res.Params.Params() {
		unit, err := res.Unit(p.Name, src)
		if err != nil {
			return err
		}
		fixed := ""
		if !p.Vary {
			fixed = "yes"
		}
		if err := sh.append(p.Name, p.Value, bound(p.Min), bound(p.Max), unit, fixed); err != nil {
			return err
		}
	}
	if err := sh.append("Sum of squares", res.SumSquares); err != nil {
		return err
	}

	return sh.append("Status", res.Status.String(), "Runs", res.Runs)
}
