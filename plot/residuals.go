package plot

import (
	"fmt"
	"io"

	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/ratelaw"
)

// SingleResiduals draws observed − predicted against concentration for every
// replicate of ds.
func SingleResiduals(w io.Writer, ds *dataset.SingleSubstrate, pred ratelaw.Predictor, opts ...Option) error {
	o := buildOptions(opts)
	groups := make([]group, 0, ds.Len())
	for i, r := range ds.Replicates() {
		res, err := residuals(pred, ratelaw.Inputs{Var: r.Conc}, r.Rates)
		if err != nil {
			return fmt.Errorf("replicate %d: %w", i+1, err)
		}
		groups = append(groups, group{name: replicateName(r.Name, "Replicate", i), xs: r.Conc, ys: res})
	}

	return render(w, o,
		fmt.Sprintf("Substrate concentration [%s]", ds.ConcentrationUnit()),
		fmt.Sprintf("Fit residuals [%s]", ds.RateUnit()),
		groups, true)
}

// DualResiduals draws observed − predicted for every Set of role r, each Set
// judged by its own predictor.
func DualResiduals(w io.Writer, ds *dataset.DualSubstrate, r dataset.Role, preds []ratelaw.Predictor, opts ...Option) error {
	o := buildOptions(opts)
	sets := ds.Points(r)
	if len(preds) != len(sets) {
		return fmt.Errorf("%d predictors for %d sets: %w", len(preds), len(sets), ErrPredictors)
	}
	groups := make([]group, 0, len(sets))
	for i, sp := range sets {
		in, observed := sp.Inputs()
		res, err := residuals(preds[i], in, observed)
		if err != nil {
			return fmt.Errorf("set %d: %w", i+1, err)
		}
		groups = append(groups, group{name: fmt.Sprintf("Set %d", i+1), xs: sp.Var, ys: res})
	}

	return render(w, o,
		fmt.Sprintf("%s concentration [%s]", ds.VariableName(r), ds.ConcentrationUnit()),
		fmt.Sprintf("Fit residuals [%s]", ds.RateUnit()),
		groups, true)
}

func residuals(p ratelaw.Predictor, in ratelaw.Inputs, observed []float64) ([]float64, error) {
	pred, err := p.Eval(in)
	if err != nil {
		return nil, err
	}
	out := make([]float64, len(pred))
	for i := range pred {
		out[i] = observed[i] - pred[i]
	}

	return out, nil
}
