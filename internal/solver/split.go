package solver

import (
	"context"

	"go.uber.org/zap"

	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
)

type SplitConfig struct {
	// KStage1 is how many gear combinations survive into food and meld ranking.
	KStage1 int `mapstructure:"k_stage_1" json:"k_stage_1" validate:"min=1"`
	// KStage2 is how many resolved gearsets are returned.
	KStage2 int `mapstructure:"k_stage_2" json:"k_stage_2" validate:"min=1"`
}

func DefaultSplitConfig() SplitConfig {
	return SplitConfig{KStage1: 1000, KStage2: 10}
}

// Split ranks in two stages: the whole gear product without food or melds,
// then food and every meld allocation for the stage one survivors.
type Split struct {
	cfg   SplitConfig
	items []gear.Item
	eval  evaluator.Evaluator
	opts  options
}

var _ Solver = (*Split)(nil)

func NewSplit(items []gear.Item, eval evaluator.Evaluator, cfg SplitConfig, opts ...Option) *Split {
	s := &Split{cfg: cfg, items: items, eval: eval, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&s.opts)
	}
	return s
}

func (s *Split) DPS(g *gear.Gearset) float64 {
	return s.eval.DPS(g)
}

func (s *Split) Solve(ctx context.Context) ([]gear.Gearset, error) {
	o := &s.opts
	o.sink.Message(StatusLoading)
	c, err := partition(s.items)
	if err != nil {
		return nil, err
	}
	o.log.Info("catalog partitioned",
		zap.Int("items", len(s.items)),
		zap.Uint64("combinations", c.combinations()),
		zap.Int("food", len(c.food)),
	)

	o.sink.Message(StatusRankingGear)
	stage1, err := o.rank(ctx, "gear", s.cfg.KStage1, s.eval, c.gearProduct(o.base))
	if err != nil {
		return nil, err
	}

	o.sink.Message(StatusRankingMeld)
	stage2, err := o.rank(ctx, "food_melds", s.cfg.KStage2, s.eval, withFoodAndMelds(gearsets(stage1), c.food))
	if err != nil {
		return nil, err
	}

	o.sink.Message(StatusDone)
	return gearsets(stage2), nil
}
