package plot

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/ratelaw"
)

// Single draws every replicate of ds and, when pred is non-nil, the fitted
// curve over the observed concentration range.
func Single(w io.Writer, ds *dataset.SingleSubstrate, pred *ratelaw.Predictor, opts ...Option) error {
	o := buildOptions(opts)
	groups := make([]group, 0, ds.Len())
	for i, r := range ds.Replicates() {
		g := o.points(replicateName(r.Name, "Replicate", i), r.Conc, r.Rates)
		groups = append(groups, g)
	}
	if pred != nil {
		conc, _ := ds.Flatten()
		curve := o.curve("fit", *pred, conc, 0)
		groups = append(groups, curve)
	}
	xName, yName := o.Transform.axes("Substrate", ds)

	return render(w, o, xName, yName, groups, false)
}

// Dual draws every Set of role r with one color per Set. preds is either
// empty (data only) or holds one predictor per Set, evaluated at the Set's
// mean constant-substrate concentration.
func Dual(w io.Writer, ds *dataset.DualSubstrate, r dataset.Role, preds []ratelaw.Predictor, opts ...Option) error {
	o := buildOptions(opts)
	sets := ds.Points(r)
	if len(preds) != 0 && len(preds) != len(sets) {
		return fmt.Errorf("%d predictors for %d sets: %w", len(preds), len(sets), ErrPredictors)
	}
	means := ds.ConstMeans(r)
	groups := make([]group, 0, len(sets))
	for i, sp := range sets {
		g := o.points(fmt.Sprintf("Set %d", i+1), sp.Var, sp.Rates)
		if len(preds) > 0 {
			c := o.curve("", preds[i], sp.Var, means[i])
			g.cx, g.cy = c.cx, c.cy
		}
		groups = append(groups, g)
	}
	xName, yName := o.Transform.axes(ds.VariableName(r), ds)

	return render(w, o, xName, yName, groups, false)
}

// points transforms observed pairs, dropping non-finite results.
func (o Options) points(name string, conc, rates []float64) group {
	xs := make([]float64, len(conc))
	ys := make([]float64, len(conc))
	for i := range conc {
		xs[i], ys[i] = o.Transform.apply(conc[i], rates[i])
	}
	fx, fy, dropped := finitePairs(xs, ys)
	if dropped > 0 {
		o.Logger.Debug("points dropped",
			slog.String("series", name),
			slog.String("transform", o.Transform.String()),
			slog.Int("dropped", dropped))
	}

	return group{name: name, xs: fx, ys: fy}
}

// curve samples p over the span of conc with constant substrate b.
func (o Options) curve(name string, p ratelaw.Predictor, conc []float64, b float64) group {
	g := group{name: name}
	if len(conc) == 0 {
		return g
	}
	lo, hi := span(conc)
	s, v := p.Curve(lo, hi, b, o.Samples)
	xs := make([]float64, len(s))
	ys := make([]float64, len(s))
	for i := range s {
		xs[i], ys[i] = o.Transform.apply(s[i], v[i])
	}
	g.cx, g.cy, _ = finitePairs(xs, ys)

	return g
}

func replicateName(name, prefix string, i int) string {
	if name != "" {
		return name
	}

	return fmt.Sprintf("%s %d", prefix, i+1)
}
