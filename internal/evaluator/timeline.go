package evaluator

import (
	"math"
	"slices"
	"strconv"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/FlatBartender/bis-solver/internal/gear"
	"github.com/FlatBartender/bis-solver/internal/timespan"
)

// TimelineConfig describes the fight the Timeline evaluator simulates.
type TimelineConfig struct {
	// KillTime is the fight duration in seconds.
	KillTime float64 `mapstructure:"kill_time" json:"kill_time" validate:"gt=0"`
	// MindBonus is the party composition mind bonus, as a fraction.
	MindBonus float64             `mapstructure:"mind_bonus" json:"mind_bonus" validate:"gte=0,lte=1"`
	Downtime  []timespan.Timespan `mapstructure:"downtime" json:"downtime" validate:"dive"`
	Party     Party               `mapstructure:"party" json:"party"`
	// Potions schedules a mind tincture in the opener and on later buff peaks.
	Potions    bool   `mapstructure:"potions" json:"potions"`
	PotionMind uint32 `mapstructure:"potion_mind" json:"potion_mind"`
}

// DefaultTimelineConfig is a ten minute fight with every raid buff and potions.
func DefaultTimelineConfig() TimelineConfig {
	return TimelineConfig{
		KillTime:  600,
		MindBonus: 0.05,
		Party: Party{
			BRD: true, DNC: true, SMN: true, RDM: true, MNK: true,
			DRG: true, RPR: true, NIN: true, SCH: true, AST: true,
		},
		Potions:    true,
		PotionMind: 223,
	}
}

// Timeline simulates a finite fight with downtime and party buffs. Buff
// windows are laid out once at construction. Cast schedules only depend on
// the GCD and are cached per GCD value.
type Timeline struct {
	f          gear.Formulas
	downtime   *timespan.Search[struct{}]
	buffs      *timespan.Search[Buff]
	mindBonus  float64
	potionMind uint32
	end        float64
	log        *zap.Logger

	mu    sync.RWMutex
	cache map[uint32]*Rotation
	group singleflight.Group
}

var _ Evaluator = (*Timeline)(nil)

type Option func(*Timeline)

func WithLogger(l *zap.Logger) Option {
	return func(t *Timeline) {
		if l != nil {
			t.log = l
		}
	}
}

func NewTimeline(f gear.Formulas, cfg TimelineConfig, opts ...Option) *Timeline {
	t := &Timeline{
		f:          f,
		downtime:   timespan.FromSpans(cfg.Downtime...),
		buffs:      timespan.New[Buff](),
		mindBonus:  cfg.MindBonus,
		potionMind: cfg.PotionMind,
		end:        cfg.KillTime,
		log:        zap.NewNop(),
		cache:      make(map[uint32]*Rotation),
	}
	for _, opt := range opts {
		opt(t)
	}

	if cfg.Party.BRD {
		t.scheduleBardSongs()
	}
	for _, rb := range raidBuffs {
		if !rb.enabled(cfg.Party) {
			continue
		}
		for _, b := range rb.buffs {
			t.scheduleRaidBuff(b)
		}
	}
	if cfg.Potions {
		t.schedulePotions()
	}

	t.log.Debug("timeline ready",
		zap.Float64("kill_time", t.end),
		zap.Int("downtime_windows", t.downtime.Len()),
		zap.Int("buff_windows", t.buffs.Len()),
	)
	return t
}

// Buffs returns the scheduled buff windows ordered by start.
func (t *Timeline) Buffs() []timespan.Entry[Buff] {
	return slices.Collect(t.buffs.All())
}

// Rotation returns the cast schedule used for the given spell speed.
func (t *Timeline) Rotation(spellSpeed uint32) *Rotation {
	s := gear.Stats{SpellSpeed: spellSpeed}
	return t.rotation(t.f.GCD(s), t.f.GCD15(s))
}

func (t *Timeline) rotation(gcd, gcd15 gear.Unit[gear.Centi]) *Rotation {
	key := uint32(gcd)<<16 | uint32(gcd15)

	t.mu.RLock()
	r, ok := t.cache[key]
	t.mu.RUnlock()
	if ok {
		return r
	}

	v, _, _ := t.group.Do(strconv.FormatUint(uint64(key), 10), func() (any, error) {
		// Double-check cache inside singleflight
		t.mu.RLock()
		r, ok := t.cache[key]
		t.mu.RUnlock()
		if ok {
			return r, nil
		}

		r = t.buildRotation(gcd.Scalar(), gcd15.Scalar())
		t.mu.Lock()
		t.cache[key] = r
		t.mu.Unlock()

		t.log.Debug("rotation built",
			zap.Float64("gcd", r.GCD),
			zap.Int("casts_per_cycle", r.Casts),
			zap.Int("actions", len(r.Actions)),
		)
		return r, nil
	})
	return v.(*Rotation)
}

// DPS implements Evaluator. Damage-over-time ticks land every TickInterval
// outside downtime and use the snapshot of the Eukrasian Dosis that applied
// them. Each hit truncates like the game does before summing.
func (t *Timeline) DPS(g *gear.Gearset) float64 {
	if t.end <= 0 {
		return 0
	}
	s := g.Stats()
	s.Mind += uint32(float64(s.Mind) * t.mindBonus)

	r := t.rotation(t.f.GCD(s), t.f.GCD15(s))
	if len(r.Actions) == 0 {
		return 0
	}

	var total float64
	for tick := TickInterval / 2; tick < t.end; tick += TickInterval {
		if t.downtime.Contains(tick) {
			continue
		}
		if a, ok := r.Dot(tick); ok {
			total += t.hit(s, a.Buffs, func(s gear.Stats) uint32 {
				return t.f.DotDamage(s, EukrasianDosisPotency)
			})
		}
	}
	for _, a := range r.Actions {
		var potency uint32
		switch a.Kind {
		case Dosis:
			potency = DosisPotency
		case Phlegma:
			potency = PhlegmaPotency
		default:
			continue
		}
		total += t.hit(s, a.Buffs, func(s gear.Stats) uint32 {
			return t.f.DirectDamage(s, potency)
		})
	}
	return total / t.end
}

func (t *Timeline) hit(s gear.Stats, b Snapshot, damage func(gear.Stats) uint32) float64 {
	s.Mind += b.Mind
	expected := float64(damage(s)) *
		t.f.CritScalarWithBonus(s, b.Critical).Scalar() *
		t.f.DHScalarWithBonus(s, b.DirectHit).Scalar()
	return math.Trunc(expected * (1 + b.Damage))
}
