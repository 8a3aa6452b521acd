// Package solver searches the gear space for the highest scoring gearsets.
package solver

import (
	"context"
	"runtime"

	"go.uber.org/zap"

	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
	"github.com/FlatBartender/bis-solver/internal/progress"
)

// Solver ranks every reachable gearset and returns the best ones, fully
// resolved with food and melds, highest DPS first.
type Solver interface {
	Solve(ctx context.Context) ([]gear.Gearset, error)
	// DPS scores one gearset with the solver's evaluator.
	evaluator.Evaluator
}

// Status messages sent to the progress sink.
const (
	StatusLoading     = "Loading items..."
	StatusRankingGear = "Ranking gear..."
	StatusRankingMeld = "Ranking food/melds..."
	StatusDone        = "Done"
)

type options struct {
	base    gear.Stats
	sink    progress.Sink
	log     *zap.Logger
	workers int
}

func defaultOptions() options {
	return options{
		base:    gear.SageBase,
		sink:    progress.Nop,
		log:     zap.NewNop(),
		workers: runtime.GOMAXPROCS(0),
	}
}

type Option func(*options)

// WithBase sets the job baseline added to every gearset.
func WithBase(s gear.Stats) Option {
	return func(o *options) { o.base = s }
}

func WithProgress(s progress.Sink) Option {
	return func(o *options) {
		if s != nil {
			o.sink = s
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.log = l
		}
	}
}

// WithWorkers bounds the evaluation goroutines. Zero or less means one per CPU.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// catalog is the item list split by slot. Both ring tags land in rings.
type catalog struct {
	slots [gear.LeftRing][]gear.Item
	rings [][2]gear.Item
	food  []gear.Item
}

// partition sorts items by slot. Empty slots hold a single empty item so the
// product still yields gearsets, and fewer than two rings are padded the
// same way. Any item with an unknown slot fails the whole search.
func partition(items []gear.Item) (*catalog, error) {
	c := &catalog{}
	var rings []gear.Item
	var leftover []string
	for _, it := range items {
		switch {
		case it.Slot >= gear.Weapon && it.Slot < gear.LeftRing:
			c.slots[it.Slot] = append(c.slots[it.Slot], it)
		case it.Slot.IsRing():
			rings = append(rings, it)
		case it.Slot == gear.Food:
			c.food = append(c.food, it)
		default:
			leftover = append(leftover, it.Name)
		}
	}
	if len(leftover) > 0 {
		return nil, errors.FailedPreconditionf("%d items do not fit any slot", len(leftover)).
			WithMeta("items", leftover)
	}

	for i := range c.slots {
		if len(c.slots[i]) == 0 {
			c.slots[i] = []gear.Item{{Slot: gear.ItemSlot(i)}}
		}
	}
	for len(rings) < 2 {
		rings = append(rings, gear.Item{Slot: gear.LeftRing})
	}
	for i := range rings {
		for j := i + 1; j < len(rings); j++ {
			l, r := rings[i], rings[j]
			l.Slot, r.Slot = gear.LeftRing, gear.RightRing
			c.rings = append(c.rings, [2]gear.Item{l, r})
		}
	}
	if len(c.food) == 0 {
		c.food = []gear.Item{{Slot: gear.Food}}
	}
	return c, nil
}

// combinations returns how many gearsets the full gear product holds.
func (c *catalog) combinations() uint64 {
	n := uint64(len(c.rings))
	for _, s := range c.slots {
		n *= uint64(len(s))
	}
	return n
}
