package metrics_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/enzfit/fit"
	"github.com/katalvlaran/enzfit/metrics"
	"github.com/katalvlaran/enzfit/ratelaw"
)

func TestRecorder_ObserveFit(t *testing.T) {
	r := metrics.NewRecorder()
	r.ObserveFit(fit.Event{Model: "Hill", Duration: time.Millisecond, Runs: 4, Evaluations: 120, Converged: true, SumSquares: 0.5})
	r.ObserveFit(fit.Event{Model: "Hill", Runs: 1, Evaluations: 9})
	r.ObserveFit(fit.Event{Model: "Hill", Err: errors.New("boom")})

	want := `
# HELP enzfit_fits_total Completed fits by model and outcome.
# TYPE enzfit_fits_total counter
enzfit_fits_total{model="Hill",outcome="converged"} 1
enzfit_fits_total{model="Hill",outcome="error"} 1
enzfit_fits_total{model="Hill",outcome="not_converged"} 1
# HELP enzfit_fit_restarts_total Random restarts performed in addition to the deterministic run.
# TYPE enzfit_fit_restarts_total counter
enzfit_fit_restarts_total{model="Hill"} 3
`
	require.NoError(t, testutil.GatherAndCompare(r.Registry(), strings.NewReader(want),
		"enzfit_fits_total", "enzfit_fit_restarts_total"))

	n, err := testutil.GatherAndCount(r.Registry(), "enzfit_fit_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecorder_AsEngineObserver(t *testing.T) {
	r := metrics.NewRecorder()
	law, err := ratelaw.New(ratelaw.Hill, ratelaw.Env{})
	require.NoError(t, err)
	require.NoError(t, law.Params().Fix("n", 1))

	e := fit.NewEngine(fit.WithObserver(r))
	_, err = e.Fit(law, 2, ratelaw.Inputs{Var: []float64{1, 2, 4}}, []float64{1, 4.0 / 3, 1.6})
	require.NoError(t, err)

	n, err := testutil.GatherAndCount(r.Registry(), "enzfit_fits_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestRecorder_Push(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		b, _ := io.ReadAll(req.Body)
		body = req.Method + " " + req.URL.Path + " " + string(b)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := metrics.NewRecorder()
	r.ObserveFit(fit.Event{Model: "Michaelis-Menten", Runs: 1, Converged: true})
	require.NoError(t, r.Push(context.Background(), srv.URL, "enzfit_batch"))
	assert.Contains(t, body, "PUT /metrics/job/enzfit_batch")

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer failing.Close()
	assert.ErrorIs(t, r.Push(context.Background(), failing.URL, "x"), metrics.ErrPush)
}
