package plot

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/katalvlaran/enzfit"
)

// Sentinel errors returned by plot.
var (
	// ErrNoData indicates nothing finite to draw.
	ErrNoData = fmt.Errorf("plot: no finite points: %w", enzfit.ErrValidation)

	// ErrPredictors indicates a predictor count that does not match the
	// number of Sets being drawn.
	ErrPredictors = fmt.Errorf("plot: predictor count mismatch: %w", enzfit.ErrValidation)

	// ErrTransform indicates an unknown transform name.
	ErrTransform = fmt.Errorf("plot: unknown transform: %w", enzfit.ErrValidation)

	// ErrRender wraps a failure of the chart renderer.
	ErrRender = errors.New("plot: render failed")
)

// Units is the unit surface of both dataset variants.
type Units interface {
	ConcentrationUnit() string
	RateUnit() string
	TimeUnit() string
}

// group is one colored series: scattered points plus an optional curve.
type group struct {
	name   string
	xs, ys []float64
	cx, cy []float64
}

// bounds is a running min/max over finite values.
type bounds struct{ lo, hi float64 }

func newBounds() bounds { return bounds{math.Inf(1), math.Inf(-1)} }

func (b *bounds) add(vs ...float64) {
	for _, v := range vs {
		b.lo = math.Min(b.lo, v)
		b.hi = math.Max(b.hi, v)
	}
}

func (b bounds) empty() bool { return b.lo > b.hi }

// padded widens the range by 5% per side; a degenerate range gets ±5% of
// its magnitude, or ±1 around zero.
func (b bounds) padded() *chart.ContinuousRange {
	span := b.hi - b.lo
	if span == 0 {
		span = math.Abs(b.lo) * 2
		if span == 0 {
			span = 20
		}
	}
	pad := span * 0.05

	return &chart.ContinuousRange{Min: b.lo - pad, Max: b.hi + pad}
}

func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    4,
		DotColor:    col,
	}
}

func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{StrokeWidth: 2, StrokeColor: col}
}

// render draws groups and, if zero is set, a dashed y = 0 reference line.
func render(w io.Writer, o Options, xName, yName string, groups []group, zero bool) error {
	xb, yb := newBounds(), newBounds()
	var series []chart.Series
	for i, g := range groups {
		col := chart.GetDefaultColor(i)
		if len(g.xs) > 0 {
			xb.add(g.xs...)
			yb.add(g.ys...)
			series = append(series, chart.ContinuousSeries{
				Name: g.name, XValues: g.xs, YValues: g.ys, Style: pointStyle(col),
			})
		}
		if len(g.cx) > 1 {
			xb.add(g.cx...)
			yb.add(g.cy...)
			series = append(series, chart.ContinuousSeries{
				Name: g.name + " fit", XValues: g.cx, YValues: g.cy, Style: lineStyle(col),
			})
		}
	}
	if xb.empty() {
		return ErrNoData
	}
	if zero {
		series = append(series, chart.ContinuousSeries{
			Name:    "zero",
			XValues: []float64{xb.lo, xb.hi},
			YValues: []float64{0, 0},
			Style: chart.Style{
				StrokeWidth:     1,
				StrokeColor:     chart.ColorBlack,
				StrokeDashArray: []float64{5, 5},
			},
		})
		yb.add(0)
	}

	c := chart.Chart{
		Title:  o.Title,
		Width:  o.Width,
		Height: o.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:  chart.XAxis{Name: xName, Range: xb.padded()},
		YAxis:  chart.YAxis{Name: yName, Range: yb.padded()},
		Series: series,
	}
	if o.Legend {
		c.Elements = []chart.Renderable{chart.Legend(&c)}
	}
	if err := c.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}

	return nil
}

// finitePairs keeps the pairs where both coordinates are finite.
func finitePairs(xs, ys []float64) (fx, fy []float64, dropped int) {
	fx = make([]float64, 0, len(xs))
	fy = make([]float64, 0, len(ys))
	for i := range xs {
		if isFinite(xs[i]) && isFinite(ys[i]) {
			fx = append(fx, xs[i])
			fy = append(fy, ys[i])
			continue
		}
		dropped++
	}

	return fx, fy, dropped
}

func isFinite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func span(xs []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}

	return lo, hi
}
