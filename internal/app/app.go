// Package app wires config, evaluator, solver and the result sinks together
// for the CLI and the Lambda handler.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/FlatBartender/bis-solver/internal/config"
	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
	"github.com/FlatBartender/bis-solver/internal/metrics"
	"github.com/FlatBartender/bis-solver/internal/progress"
	"github.com/FlatBartender/bis-solver/internal/report"
	"github.com/FlatBartender/bis-solver/internal/repositories/results"
	"github.com/FlatBartender/bis-solver/internal/solver"
)

// progressEvery is how many evaluated candidates separate two progress logs.
const progressEvery = 1_000_000

type App struct {
	cfg     *config.Config
	log     *zap.Logger
	metrics *metrics.Metrics
	results results.Repository
}

type Option func(*App)

func WithLogger(l *zap.Logger) Option {
	return func(a *App) { a.log = l }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithResults stores every successful run.
func WithResults(r results.Repository) Option {
	return func(a *App) { a.results = r }
}

func New(cfg *config.Config, opts ...Option) *App {
	a := &App{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		a.log = zap.NewNop()
	}
	return a
}

func (a *App) Config() *config.Config { return a.cfg }

// Evaluator builds the configured evaluator.
func (a *App) Evaluator() (evaluator.Evaluator, error) {
	ec := a.cfg.Evaluator
	switch ec.Kind {
	case "infinite_dummy":
		return evaluator.NewInfiniteDummy(a.cfg.Formulas), nil
	case "timeline":
		return a.Timeline(), nil
	}
	return nil, errors.InvalidArgumentf("unknown evaluator %q", ec.Kind)
}

// Timeline builds the timeline evaluator regardless of the configured kind.
func (a *App) Timeline() *evaluator.Timeline {
	return evaluator.NewTimeline(a.cfg.Formulas, a.cfg.Evaluator.Timeline,
		evaluator.WithLogger(a.log.Named("timeline")))
}

// Solver builds the configured solver over items.
func (a *App) Solver(items []gear.Item, eval evaluator.Evaluator, sink progress.Sink) (solver.Solver, error) {
	sc := a.cfg.Solver
	opts := []solver.Option{
		solver.WithBase(a.cfg.Base),
		solver.WithProgress(sink),
		solver.WithLogger(a.log.Named("solver")),
		solver.WithWorkers(sc.Workers),
	}
	switch sc.Kind {
	case "split":
		return solver.NewSplit(items, eval, sc.Split, opts...), nil
	case "rolling":
		return solver.NewRolling(items, eval, sc.Rolling, opts...), nil
	}
	return nil, errors.InvalidArgumentf("unknown solver %q", sc.Kind)
}

// Run solves items and reports the ranked gearsets. sink may be nil. When a
// results store is set the saved run ID is filled in.
func (a *App) Run(ctx context.Context, items []gear.Item, sink progress.Sink) (*report.Result, error) {
	eval, err := a.Evaluator()
	if err != nil {
		return nil, err
	}

	sinks := []progress.Sink{progress.NewLogSink(a.log.Named("progress"), progressEvery)}
	if sink != nil {
		sinks = append(sinks, sink)
	}
	if a.metrics != nil {
		sinks = append(sinks, a.metrics.Sink())
	}
	sv, err := a.Solver(items, eval, progress.Multi(sinks...))
	if err != nil {
		return nil, err
	}

	start := time.Now()
	sets, err := sv.Solve(ctx)
	elapsed := time.Since(start)
	if err != nil {
		a.observe(elapsed, 0, err)
		return nil, err
	}

	res := report.New(a.cfg.Solver.Kind, a.cfg.Evaluator.Kind, a.cfg.Formulas, sv, sets, elapsed)
	a.observe(elapsed, res.Best(), nil)
	a.log.Info("run finished",
		zap.String("solver", res.Solver),
		zap.String("evaluator", res.Evaluator),
		zap.Int("gearsets", len(res.Entries)),
		zap.Float64("best", res.Best()),
		zap.Duration("elapsed", elapsed),
	)

	if a.results != nil {
		out, err := a.results.Save(ctx, results.SaveInput{Result: res})
		if err != nil {
			return res, errors.Wrap(err, "store result")
		}
		a.log.Info("run stored", zap.String("id", out.ID))
	}
	return res, nil
}

func (a *App) observe(elapsed time.Duration, best float64, err error) {
	if a.metrics != nil {
		a.metrics.ObserveRun(a.cfg.Solver.Kind, elapsed, best, err)
	}
}

// Show loads a stored run.
func (a *App) Show(ctx context.Context, id string) (*report.Result, error) {
	if a.results == nil {
		return nil, errors.FailedPrecondition("no results store configured")
	}
	out, err := a.results.Get(ctx, results.GetInput{ID: id})
	if err != nil {
		return nil, err
	}
	return out.Result, nil
}
