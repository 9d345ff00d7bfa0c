package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/katalvlaran/enzfit/config"
	"github.com/katalvlaran/enzfit/dataset"
	"github.com/katalvlaran/enzfit/fit"
	"github.com/katalvlaran/enzfit/metrics"
	"github.com/katalvlaran/enzfit/plot"
	"github.com/katalvlaran/enzfit/ratelaw"
	"github.com/katalvlaran/enzfit/report"
	"github.com/katalvlaran/enzfit/store"
)

// session carries the state shared by the single- and two-substrate paths.
type session struct {
	cfg     *config.Config
	exp     *config.Experiment
	env     ratelaw.Env
	laws    []ratelaw.Law
	engine  *fit.Engine
	log     *slog.Logger
	summary io.Writer
	project *store.Project
}

func run(ctx context.Context, args cliArgs, stdout io.Writer, log *slog.Logger) error {
	cfg := config.Default()
	if args.config != "" {
		var err error
		if cfg, err = config.Load(args.config); err != nil {
			return err
		}
	}
	if args.out != "" {
		cfg.Output.Dir = args.out
	}
	exp, err := config.LoadExperiment(args.experiment)
	if err != nil {
		return err
	}
	env, err := cfg.Env()
	if err != nil {
		return err
	}
	laws, err := cfg.Laws(env)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}

	rec := metrics.NewRecorder()
	s := &session{
		cfg:     cfg,
		exp:     exp,
		env:     env,
		laws:    laws,
		engine:  fit.NewEngine(cfg.Fit.EngineOptions(fit.WithLogger(log), fit.WithObserver(rec))...),
		log:     log,
		summary: stdout,
		project: store.NewProject(exp.Name),
	}
	s.project.SetEnv(env)
	s.project.AddLaws(laws...)

	log.Info("experiment loaded", "name", exp.Name, "type", exp.Type, "models", len(laws))
	if exp.IsDual() {
		err = s.runDual()
	} else {
		err = s.runSingle()
	}
	if err != nil {
		return err
	}

	if args.save {
		if err := s.save(ctx); err != nil {
			return err
		}
	}
	if url := cfg.Metrics.PushURL; url != "" {
		if err := rec.Push(ctx, url, cfg.Metrics.Job); err != nil {
			log.Warn("metrics not pushed", "err", err)
		}
	}

	return nil
}

func (s *session) runSingle() error {
	ds, err := s.exp.Single(s.cfg.DatasetOptions(s.env)...)
	if err != nil {
		return err
	}
	s.project.SetSingle(ds)

	laws := make([]ratelaw.Law, 0, len(s.laws))
	for _, law := range s.laws {
		if law.Substrates() != 1 {
			s.log.Warn("skipping two-substrate law for single-substrate data", "model", law.Name())
			continue
		}
		laws = append(laws, law)
	}

	if s.cfg.Output.Workbook {
		if err := s.artifact("input.xlsx", func(w io.Writer) error { return report.SingleInput(w, ds) }); err != nil {
			return err
		}
	}

	outcomes := s.engine.BatchSingle(laws, ds)
	for _, o := range outcomes {
		code := o.Law.Kind().String()
		if o.Err != nil {
			s.log.Error("fit failed", "model", o.Law.Name(), "err", o.Err)
			continue
		}
		res := *o.Single
		s.logResult(res, ds, "")
		if err := s.singleArtifacts(ds, code, res); err != nil {
			return err
		}
	}
	s.printSummary(outcomes)

	return nil
}

func (s *session) singleArtifacts(ds *dataset.SingleSubstrate, code string, res fit.Result) error {
	out := s.cfg.Output
	if out.Workbook {
		if err := s.artifact(code+"_fit.xlsx", func(w io.Writer) error { return report.SingleFit(w, ds, res) }); err != nil {
			return err
		}
	}
	if out.Plots {
		ts, err := out.PlotTransforms()
		if err != nil {
			return err
		}
		for _, t := range ts {
			opts := s.plotOptions(res.Model, plot.WithTransform(t))
			err := s.artifact(code+"_"+t.String()+".png", func(w io.Writer) error {
				return plot.Single(w, ds, &res.Predictor, opts...)
			})
			if err != nil {
				return err
			}
		}
	}
	if out.Residuals {
		opts := s.plotOptions(res.Model + " residuals")
		err := s.artifact(code+"_residuals.png", func(w io.Writer) error {
			return plot.SingleResiduals(w, ds, res.Predictor, opts...)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func (s *session) runDual() error {
	ds, err := s.exp.Dual(s.cfg.DatasetOptions(s.env)...)
	if err != nil {
		return err
	}
	s.project.SetDual(ds)
	stoichA, stoichB := ds.Stoichiometries()
	s.log.Info("two-substrate data", "titration", ds.Titration(),
		"stoich_a", stoichA, "stoich_b", stoichB,
		"sets_a", ds.SetCount(dataset.RoleA), "sets_b", ds.SetCount(dataset.RoleB))

	if s.cfg.Output.Workbook {
		if err := s.artifact("input.xlsx", func(w io.Writer) error { return report.DualInput(w, ds) }); err != nil {
			return err
		}
	}

	roles, err := s.cfg.FitRoles()
	if err != nil {
		return err
	}
	// fits[i] collects the per-role results of s.laws[i].
	fits := make([]map[dataset.Role]fit.SetFits, len(s.laws))
	for i := range fits {
		fits[i] = make(map[dataset.Role]fit.SetFits, len(roles))
	}
	var summary []fit.Outcome
	for _, r := range roles {
		if ds.SetCount(r) == 0 {
			s.log.Debug("no sets for role", "variable", ds.VariableName(r))
			continue
		}
		outcomes := s.engine.BatchSets(s.laws, ds, r)
		for i, o := range outcomes {
			if o.Err != nil {
				s.log.Error("fit failed", "model", o.Law.Name(), "variable", ds.VariableName(r),
					"completed_sets", len(o.Sets), "err", o.Err)
				continue
			}
			for j, res := range o.Sets {
				s.logResult(res, ds, fmt.Sprintf("%s set %d", ds.VariableName(r), j+1))
			}
			fits[i][r] = o.Sets
		}
		summary = append(summary, outcomes...)
	}

	for i, law := range s.laws {
		if err := s.dualArtifacts(ds, law, fits[i]); err != nil {
			return err
		}
	}
	s.printSummary(summary)

	return nil
}

func (s *session) dualArtifacts(ds *dataset.DualSubstrate, law ratelaw.Law, fits map[dataset.Role]fit.SetFits) error {
	if len(fits) == 0 {
		return nil
	}
	code := law.Kind().String()
	out := s.cfg.Output
	if out.Workbook {
		if err := s.artifact(code+"_fit.xlsx", func(w io.Writer) error { return report.DualFit(w, ds, fits) }); err != nil {
			return err
		}
	}
	ts, err := out.PlotTransforms()
	if err != nil {
		return err
	}
	for r, sf := range fits {
		preds := make([]ratelaw.Predictor, len(sf))
		for i, res := range sf {
			preds[i] = res.Predictor
		}
		base := code + "_" + fileName(ds.VariableName(r))
		if out.Plots {
			for _, t := range ts {
				opts := s.plotOptions(law.Name(), plot.WithTransform(t), plot.WithLegend())
				err := s.artifact(base+"_"+t.String()+".png", func(w io.Writer) error {
					return plot.Dual(w, ds, r, preds, opts...)
				})
				if err != nil {
					return err
				}
			}
		}
		if out.Residuals {
			opts := s.plotOptions(law.Name()+" residuals", plot.WithLegend())
			err := s.artifact(base+"_residuals.png", func(w io.Writer) error {
				return plot.DualResiduals(w, ds, r, preds, opts...)
			})
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *session) plotOptions(title string, extra ...plot.Option) []plot.Option {
	opts := []plot.Option{
		plot.WithSize(s.cfg.Output.Width, s.cfg.Output.Height),
		plot.WithTitle(title),
		plot.WithLogger(s.log),
	}

	return append(opts, extra...)
}

// artifact creates dir/<experiment>_<name> and hands it to write.
func (s *session) artifact(name string, write func(io.Writer) error) (err error) {
	path := filepath.Join(s.cfg.Output.Dir, fileName(s.exp.Name)+"_"+name)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err = write(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	s.log.Debug("artifact written", "path", path)

	return nil
}

func (s *session) logResult(res fit.Result, units ratelaw.UnitSource, scope string) {
	attrs := make([]any, 0, res.Params.Len())
	for _, p := range res.Params.Params() {
		unit, _ := res.Unit(p.Name, units)
		attrs = append(attrs, slog.String(p.Name, fmt.Sprintf("%.6g %s", p.Value, unit)))
	}
	l := s.log.With("model", res.Model)
	if scope != "" {
		l = l.With("scope", scope)
	}
	l.Info("fit done",
		"sum_squares", res.SumSquares,
		"status", res.Status.String(),
		"runs", res.Runs,
		slog.Group("params", attrs...),
	)
	if w := res.Warning(); w != nil {
		l.Warn("fit did not converge", "err", w)
	}
}

// printSummary ranks successful outcomes by sum of squares.
func (s *session) printSummary(outcomes []fit.Outcome) {
	ok := make([]fit.Outcome, 0, len(outcomes))
	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
			continue
		}
		ok = append(ok, o)
	}
	sort.SliceStable(ok, func(i, j int) bool { return ok[i].SumSquares() < ok[j].SumSquares() })

	fmt.Fprintf(s.summary, "%-45s %14s\n", "model", "sum of squares")
	for _, o := range ok {
		fmt.Fprintf(s.summary, "%-45s %14.6g\n", o.Law.Name(), o.SumSquares())
	}
	if failed > 0 {
		fmt.Fprintf(s.summary, "%d fit(s) failed\n", failed)
	}
}

func (s *session) save(ctx context.Context) error {
	if !s.cfg.Storage.Enabled() {
		return errors.New("-save requires storage.backend in the configuration")
	}
	b, err := s.cfg.Storage.Open(ctx)
	if err != nil {
		return err
	}
	if c, ok := b.(io.Closer); ok {
		defer c.Close()
	}
	opts, err := s.cfg.Storage.RepositoryOptions(s.log)
	if err != nil {
		return err
	}
	repo := store.NewRepository(b, opts...)
	if err := repo.Save(ctx, s.project); err != nil {
		return err
	}
	s.log.Info("project saved", "id", s.project.ID, "key", repo.Key(s.project.ID))

	return nil
}

// fileName replaces characters that are awkward in file names.
func fileName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|', ' ':
			return '_'
		}

		return r
	}, s)
}
