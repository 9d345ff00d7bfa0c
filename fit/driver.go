package fit

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/ratelaw"
)

// FitSingle pools every replicate of ds into one sample and fits law with its
// configured number of initializations.
func (e *Engine) FitSingle(law ratelaw.Law, ds *dataset.SingleSubstrate) (Result, error) {
	if law == nil {
		return Result{}, ErrNilLaw
	}
	in, obs := ds.Inputs()

	return e.Fit(law, law.Initializations(), in, obs)
}

// FitSet fits law to Set i of role r. Replicates of the Set are pooled;
// other Sets are not read.
func (e *Engine) FitSet(law ratelaw.Law, ds *dataset.DualSubstrate, r dataset.Role, i int) (Result, error) {
	if law == nil {
		return Result{}, ErrNilLaw
	}
	sets := ds.Points(r)
	if i < 0 || i >= len(sets) {
		return Result{}, fmt.Errorf("fit: set %d of %d: %w", i, len(sets), dataset.ErrIndex)
	}
	in, obs := sets[i].Inputs()

	return e.Fit(law, law.Initializations(), in, obs)
}

// SetFits holds one Result per Set, in Set order.
type SetFits []Result

// SumSquares adds each Set's own residual sum at its own fitted values.
func (s SetFits) SumSquares() float64 {
	ss := make([]float64, len(s))
	for i, r := range s {
		ss[i] = r.SumSquares
	}

	return floats.Sum(ss)
}

// Warning joins the warnings of every Set, or returns nil.
func (s SetFits) Warning() error {
	var errs []error
	for i, r := range s {
		if w := r.Warning(); w != nil {
			errs = append(errs, fmt.Errorf("set %d: %w", i+1, w))
		}
	}

	return errors.Join(errs...)
}

// FitSets fits every Set of role r independently. The batch stops at the
// first failing Set; results of the Sets fitted before it are returned
// together with the error.
func (e *Engine) FitSets(law ratelaw.Law, ds *dataset.DualSubstrate, r dataset.Role) (SetFits, error) {
	if law == nil {
		return nil, ErrNilLaw
	}
	sets := ds.Points(r)
	out := make(SetFits, 0, len(sets))
	for i, sp := range sets {
		in, obs := sp.Inputs()
		res, err := e.Fit(law, law.Initializations(), in, obs)
		if err != nil {
			return out, fmt.Errorf("set %d: %w", i+1, err)
		}
		out = append(out, res)
	}

	return out, nil
}

// SumSquaresSingle evaluates p over the pooled replicates of ds and returns
// Σ(predicted − observed)².
func SumSquaresSingle(p ratelaw.Predictor, ds *dataset.SingleSubstrate) (float64, error) {
	in, obs := ds.Inputs()
	pred, err := p.Eval(in)
	if err != nil {
		return 0, err
	}
	floats.Sub(pred, obs)

	return floats.Dot(pred, pred), nil
}

// Outcome is the per-law entry of a batch.
type Outcome struct {
	Law ratelaw.Law
	// Single is set by BatchSingle.
	Single *Result
	// Sets is set by BatchSets.
	Sets SetFits
	Err  error
}

// SumSquares returns the pooled or aggregated sum of squares.
func (o Outcome) SumSquares() float64 {
	if o.Single != nil {
		return o.Single.SumSquares
	}

	return o.Sets.SumSquares()
}

// BatchSingle fits every law to ds. A failing law records its error and the
// batch moves on to the next law.
func (e *Engine) BatchSingle(laws []ratelaw.Law, ds *dataset.SingleSubstrate) []Outcome {
	out := make([]Outcome, len(laws))
	for i, law := range laws {
		out[i].Law = law
		res, err := e.FitSingle(law, ds)
		if err != nil {
			out[i].Err = err
			continue
		}
		out[i].Single = &res
	}

	return out
}

// BatchSets fits every law to each Set of role r with FitSets.
func (e *Engine) BatchSets(laws []ratelaw.Law, ds *dataset.DualSubstrate, r dataset.Role) []Outcome {
	out := make([]Outcome, len(laws))
	for i, law := range laws {
		out[i].Law = law
		out[i].Sets, out[i].Err = e.FitSets(law, ds, r)
	}

	return out
}
