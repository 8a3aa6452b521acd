package solver

import (
	"context"
	"iter"

	"go.uber.org/zap"

	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
)

type RollingConfig struct {
	// RollingK is the beam width kept after every slot.
	RollingK int `mapstructure:"rolling_k" json:"rolling_k" validate:"min=1"`
}

func DefaultRollingConfig() RollingConfig {
	return RollingConfig{RollingK: 128}
}

// Rolling is a beam search: slots are filled one at a time and only the
// RollingK best partial gearsets move on. The ring pair is one step, then
// grade X melds, grade IX melds and food each get their own step. The beam
// may drop a partial gearset that would have won once completed.
type Rolling struct {
	cfg   RollingConfig
	items []gear.Item
	eval  evaluator.Evaluator
	opts  options
}

var _ Solver = (*Rolling)(nil)

func NewRolling(items []gear.Item, eval evaluator.Evaluator, cfg RollingConfig, opts ...Option) *Rolling {
	r := &Rolling{cfg: cfg, items: items, eval: eval, opts: defaultOptions()}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

func (r *Rolling) DPS(g *gear.Gearset) float64 {
	return r.eval.DPS(g)
}

func (r *Rolling) Solve(ctx context.Context) ([]gear.Gearset, error) {
	o := &r.opts
	o.sink.Message(StatusLoading)
	c, err := partition(r.items)
	if err != nil {
		return nil, err
	}
	o.log.Info("catalog partitioned",
		zap.Int("items", len(r.items)),
		zap.Int("food", len(c.food)),
		zap.Int("ring_pairs", len(c.rings)),
	)

	k := r.cfg.RollingK
	beam := []gear.Gearset{{Base: o.base}}
	step := func(stage string, expand func([]gear.Gearset) iter.Seq[gear.Gearset]) error {
		ranked, err := o.rank(ctx, stage, k, r.eval, expand(beam))
		if err != nil {
			return err
		}
		beam = gearsets(ranked)
		return nil
	}

	o.sink.Message(StatusRankingGear)
	for slot := gear.Weapon; slot < gear.LeftRing; slot++ {
		err := step(slot.String(), func(sets []gear.Gearset) iter.Seq[gear.Gearset] {
			return withItems(sets, slot, c.slots[slot])
		})
		if err != nil {
			return nil, err
		}
	}
	err = step("rings", func(sets []gear.Gearset) iter.Seq[gear.Gearset] {
		return withRings(sets, c.rings)
	})
	if err != nil {
		return nil, err
	}

	o.sink.Message(StatusRankingMeld)
	if err := step("meld_x", withMeldX); err != nil {
		return nil, err
	}
	if err := step("meld_ix", withMeldIX); err != nil {
		return nil, err
	}
	err = step("food", func(sets []gear.Gearset) iter.Seq[gear.Gearset] {
		return withFood(sets, c.food)
	})
	if err != nil {
		return nil, err
	}

	o.sink.Message(StatusDone)
	return beam, nil
}
