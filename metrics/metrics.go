// Package metrics exports fit statistics to Prometheus.
//
// Recorder implements fit.Observer. Register it with fit.WithObserver and
// either expose its Registry over HTTP or, for one-shot CLI runs, Push it to
// a Pushgateway when the batch is done.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"github.com/katalvlaran/enzfit"
	"github.com/katalvlaran/enzfit/fit"
)

// Namespace prefixes every metric name.
const Namespace = "enzfit"

// Outcome label values of fits_total.
const (
	OutcomeConverged    = "converged"
	OutcomeNotConverged = "not_converged"
	OutcomeError        = "error"
)

// ErrPush indicates a failed Pushgateway delivery.
var ErrPush = fmt.Errorf("metrics: push failed: %w", enzfit.ErrConfiguration)

// Recorder accumulates fit events into Prometheus collectors.
type Recorder struct {
	reg *prometheus.Registry

	fits        *prometheus.CounterVec
	restarts    *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	evaluations *prometheus.HistogramVec
	sumSquares  *prometheus.GaugeVec
}

var _ fit.Observer = (*Recorder)(nil)

// NewRecorder creates the collectors and registers them on a fresh registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		fits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fits_total",
			Help:      "Completed fits by model and outcome.",
		}, []string{"model", "outcome"}),
		restarts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "fit_restarts_total",
			Help:      "Random restarts performed in addition to the deterministic run.",
		}, []string{"model"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "fit_duration_seconds",
			Help:      "Wall time of one multi-start fit.",
			Buckets:   prometheus.ExponentialBuckets(1e-4, 4, 10),
		}, []string{"model"}),
		evaluations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "fit_evaluations",
			Help:      "Residual evaluations spent by one multi-start fit.",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 12),
		}, []string{"model"}),
		sumSquares: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "fit_sum_squares",
			Help:      "Sum of squared residuals of the latest successful fit.",
		}, []string{"model"}),
	}
	r.reg.MustRegister(r.fits, r.restarts, r.duration, r.evaluations, r.sumSquares)

	return r
}

// Registry returns the registry holding the collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// ObserveFit implements fit.Observer.
func (r *Recorder) ObserveFit(ev fit.Event) {
	outcome := OutcomeConverged
	switch {
	case ev.Err != nil:
		outcome = OutcomeError
	case !ev.Converged:
		outcome = OutcomeNotConverged
	}
	r.fits.WithLabelValues(ev.Model, outcome).Inc()
	r.duration.WithLabelValues(ev.Model).Observe(ev.Duration.Seconds())
	if ev.Err != nil {
		return
	}
	if ev.Runs > 1 {
		r.restarts.WithLabelValues(ev.Model).Add(float64(ev.Runs - 1))
	}
	r.evaluations.WithLabelValues(ev.Model).Observe(float64(ev.Evaluations))
	r.sumSquares.WithLabelValues(ev.Model).Set(ev.SumSquares)
}

// Push sends every collector to the Pushgateway at url under job.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	err := push.New(url, job).Gatherer(r.reg).PushContext(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w: %w", url, ErrPush, err)
	}

	return nil
}
