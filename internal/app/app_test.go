package app_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap/zaptest"

	"github.com/FlatBartender/bis-solver/internal/app"
	"github.com/FlatBartender/bis-solver/internal/config"
	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
	"github.com/FlatBartender/bis-solver/internal/metrics"
	progressmock "github.com/FlatBartender/bis-solver/internal/progress/mock"
	"github.com/FlatBartender/bis-solver/internal/report"
	"github.com/FlatBartender/bis-solver/internal/repositories/results"
	resultsmock "github.com/FlatBartender/bis-solver/internal/repositories/results/mock"
	"github.com/FlatBartender/bis-solver/internal/solver"
)

type AppTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	repo    *resultsmock.MockRepository
	sink    *progressmock.MockSink
	reg     *prometheus.Registry
	cfg     config.Config
	ctx     context.Context
	catalog []gear.Item
}

func (s *AppTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.repo = resultsmock.NewMockRepository(s.ctrl)
	s.sink = progressmock.NewMockSink(s.ctrl)
	s.reg = prometheus.NewRegistry()
	s.cfg = config.Default()
	s.cfg.Evaluator.Kind = "infinite_dummy"
	s.ctx = context.Background()

	s.catalog = nil
	for slot := gear.Weapon; int(slot) < gear.SlotCount; slot++ {
		s.catalog = append(s.catalog, gear.Item{
			Slot:  slot,
			Name:  fmt.Sprintf("Ascension %s", slot),
			Stats: gear.Stats{WeaponDamage: 10, Mind: 200, Critical: 120},
		})
	}
}

func (s *AppTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAppTestSuite(t *testing.T) {
	suite.Run(t, new(AppTestSuite))
}

func (s *AppTestSuite) newApp(opts ...app.Option) *app.App {
	opts = append([]app.Option{app.WithLogger(zaptest.NewLogger(s.T()))}, opts...)
	return app.New(&s.cfg, opts...)
}

func (s *AppTestSuite) TestRunStoresResult() {
	gomock.InOrder(
		s.sink.EXPECT().Message(solver.StatusLoading),
		s.sink.EXPECT().Message(solver.StatusRankingGear),
		s.sink.EXPECT().Message(solver.StatusRankingMeld),
		s.sink.EXPECT().Message(solver.StatusDone),
	)
	s.sink.EXPECT().Add(gomock.Any()).AnyTimes()
	s.repo.EXPECT().
		Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in results.SaveInput) (*results.SaveOutput, error) {
			in.Result.ID = "run-1"
			return &results.SaveOutput{ID: in.Result.ID}, nil
		})

	a := s.newApp(app.WithResults(s.repo), app.WithMetrics(metrics.New(s.reg)))
	res, err := a.Run(s.ctx, s.catalog, s.sink)
	s.Require().NoError(err)

	s.Equal("run-1", res.ID)
	s.Equal("split", res.Solver)
	s.Equal("infinite_dummy", res.Evaluator)
	s.Require().Len(res.Entries, 1)
	s.Greater(res.Best(), 0.0)

	n, err := testutil.GatherAndCount(s.reg, "bis_solver_runs_total")
	s.Require().NoError(err)
	s.Equal(1, n)
}

func (s *AppTestSuite) TestRunWithoutStore() {
	s.cfg.Solver.Kind = "rolling"
	res, err := s.newApp().Run(s.ctx, s.catalog, nil)
	s.Require().NoError(err)
	s.Equal("rolling", res.Solver)
	s.Len(res.Entries, 1)
}

func (s *AppTestSuite) TestRunStoreFailure() {
	s.repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil, errors.Internal("redis down"))

	res, err := s.newApp(app.WithResults(s.repo)).Run(s.ctx, s.catalog, nil)
	s.Require().Error(err)
	s.NotNil(res, "the solved result is still returned")
	s.Equal(errors.CodeInternal, errors.GetCode(err))
}

func (s *AppTestSuite) TestRunUnknownKinds() {
	s.cfg.Solver.Kind = "greedy"
	_, err := s.newApp().Run(s.ctx, s.catalog, nil)
	s.True(errors.IsInvalidArgument(err))

	s.cfg.Solver.Kind = "split"
	s.cfg.Evaluator.Kind = "dummy"
	_, err = s.newApp().Run(s.ctx, s.catalog, nil)
	s.True(errors.IsInvalidArgument(err))
}

func (s *AppTestSuite) TestRunCanceled() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	reg := prometheus.NewRegistry()

	_, err := s.newApp(app.WithMetrics(metrics.New(reg))).Run(ctx, s.catalog, nil)
	s.Equal(errors.CodeCanceled, errors.GetCode(err))
	s.True(stderrors.Is(err, context.Canceled))
}

func (s *AppTestSuite) TestEvaluatorKinds() {
	s.cfg.Evaluator.Kind = "timeline"
	e, err := s.newApp().Evaluator()
	s.Require().NoError(err)
	s.IsType(&evaluator.Timeline{}, e)

	s.cfg.Evaluator.Kind = "infinite_dummy"
	e, err = s.newApp().Evaluator()
	s.Require().NoError(err)
	s.IsType(&evaluator.InfiniteDummy{}, e)
}

func (s *AppTestSuite) TestShow() {
	_, err := s.newApp().Show(s.ctx, "run-1")
	s.True(errors.IsFailedPrecondition(err))

	want := &report.Result{ID: "run-1", Solver: "split"}
	s.repo.EXPECT().Get(gomock.Any(), results.GetInput{ID: "run-1"}).Return(&results.GetOutput{Result: want}, nil)
	s.repo.EXPECT().Get(gomock.Any(), results.GetInput{ID: "gone"}).Return(nil, errors.NotFound("result gone not found"))

	a := s.newApp(app.WithResults(s.repo))
	got, err := a.Show(s.ctx, "run-1")
	s.Require().NoError(err)
	s.Same(want, got)

	_, err = a.Show(s.ctx, "gone")
	s.True(errors.IsNotFound(err))
}
