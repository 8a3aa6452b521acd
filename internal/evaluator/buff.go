package evaluator

import (
	"github.com/FlatBartender/bis-solver/internal/timespan"
)

type BuffKind int

const (
	// BuffDamage multiplies damage dealt.
	BuffDamage BuffKind = iota
	// BuffCritical adds to the critical hit rate.
	BuffCritical
	// BuffDirectHit adds to the direct hit rate.
	BuffDirectHit
	// BuffMind adds flat mind.
	BuffMind
)

func (k BuffKind) String() string {
	switch k {
	case BuffDamage:
		return "damage"
	case BuffCritical:
		return "critical"
	case BuffDirectHit:
		return "direct hit"
	case BuffMind:
		return "mind"
	}
	return "unknown"
}

// Buff is one effect active over a window. Rates are fractions, mind is flat.
type Buff struct {
	Source string   `json:"source"`
	Kind   BuffKind `json:"kind"`
	Value  float64  `json:"value"`
}

// Snapshot is the sum of the buffs active at one instant.
type Snapshot struct {
	Damage    float64 `json:"damage"`
	Critical  float64 `json:"critical"`
	DirectHit float64 `json:"direct_hit"`
	Mind      uint32  `json:"mind"`
}

func snapshot(entries []timespan.Entry[Buff]) Snapshot {
	var s Snapshot
	for _, e := range entries {
		switch e.Value.Kind {
		case BuffDamage:
			s.Damage += e.Value.Value
		case BuffCritical:
			s.Critical += e.Value.Value
		case BuffDirectHit:
			s.DirectHit += e.Value.Value
		case BuffMind:
			s.Mind += uint32(e.Value.Value)
		}
	}
	return s
}

// Party toggles which raid buffs the group brings.
type Party struct {
	BRD bool `mapstructure:"brd" json:"brd"`
	DNC bool `mapstructure:"dnc" json:"dnc"`
	SMN bool `mapstructure:"smn" json:"smn"`
	RDM bool `mapstructure:"rdm" json:"rdm"`
	MNK bool `mapstructure:"mnk" json:"mnk"`
	DRG bool `mapstructure:"drg" json:"drg"`
	RPR bool `mapstructure:"rpr" json:"rpr"`
	NIN bool `mapstructure:"nin" json:"nin"`
	SCH bool `mapstructure:"sch" json:"sch"`
	AST bool `mapstructure:"ast" json:"ast"`
}

// raidBuff is a periodic party buff: first used at Start, then every Recast
// seconds for Duration seconds.
type raidBuff struct {
	Name     string
	Start    float64
	Recast   float64
	Duration float64
	Kind     BuffKind
	Value    float64
	// Opener overrides Value for the first use when non-zero.
	Opener float64
}

var raidBuffs = []struct {
	enabled func(Party) bool
	buffs   []raidBuff
}{
	{func(p Party) bool { return p.BRD }, []raidBuff{
		{Name: "Radiant Finale", Start: 5.5, Recast: 120, Duration: 15, Kind: BuffDamage, Value: 0.06, Opener: 0.02},
		{Name: "Battle Voice", Start: 6.5, Recast: 120, Duration: 15, Kind: BuffDirectHit, Value: 0.2},
	}},
	{func(p Party) bool { return p.DNC }, []raidBuff{
		{Name: "Technical Finish", Start: 6.5, Recast: 121, Duration: 20, Kind: BuffDamage, Value: 0.05},
	}},
	{func(p Party) bool { return p.SMN }, []raidBuff{
		{Name: "Searing Light", Start: 2.5, Recast: 120, Duration: 30, Kind: BuffDamage, Value: 0.03},
	}},
	{func(p Party) bool { return p.RDM }, []raidBuff{
		{Name: "Embolden", Start: 5.5, Recast: 120, Duration: 20, Kind: BuffDamage, Value: 0.05},
	}},
	{func(p Party) bool { return p.MNK }, []raidBuff{
		{Name: "Brotherhood", Start: 6.5, Recast: 120, Duration: 15, Kind: BuffDamage, Value: 0.05},
	}},
	{func(p Party) bool { return p.DRG }, []raidBuff{
		{Name: "Battle Litany", Start: 5.5, Recast: 120, Duration: 15, Kind: BuffCritical, Value: 0.1},
	}},
	{func(p Party) bool { return p.RPR }, []raidBuff{
		{Name: "Arcane Circle", Start: 1.5, Recast: 120, Duration: 20, Kind: BuffDamage, Value: 0.03},
	}},
	{func(p Party) bool { return p.NIN }, []raidBuff{
		{Name: "Mug", Start: 3.0, Recast: 120, Duration: 20, Kind: BuffDamage, Value: 0.05},
	}},
	{func(p Party) bool { return p.SCH }, []raidBuff{
		{Name: "Chain Stratagem", Start: 6.5, Recast: 121, Duration: 15, Kind: BuffCritical, Value: 0.1},
	}},
	{func(p Party) bool { return p.AST }, []raidBuff{
		{Name: "Divination", Start: 6.5, Recast: 120, Duration: 15, Kind: BuffDamage, Value: 0.06},
	}},
}

// Bard songs rotate back to back from the first weave slot.
var bardSongs = []raidBuff{
	{Name: "The Wanderer's Minuet", Duration: 43, Kind: BuffCritical, Value: 0.02},
	{Name: "Mage's Ballad", Duration: 34, Kind: BuffDamage, Value: 0.01},
	{Name: "Army's Paeon", Duration: 43, Kind: BuffDirectHit, Value: 0.03},
}

const bardSongStart = 0.5

func (t *Timeline) scheduleRaidBuff(b raidBuff) {
	c := newClock(t.downtime, b.Start, b.Recast, t.end)
	first := true
	for {
		at, ok := c.nextWindow(b.Duration)
		if !ok {
			return
		}
		v := b.Value
		if first && b.Opener != 0 {
			v = b.Opener
		}
		first = false
		t.buffs.Push(timespan.Timespan{Begin: 0, End: b.Duration}.Offset(at), Buff{Source: b.Name, Kind: b.Kind, Value: v})
	}
}

func (t *Timeline) scheduleBardSongs() {
	c := newClock(t.downtime, bardSongStart, 0, t.end)
	for i := 0; ; i++ {
		song := bardSongs[i%len(bardSongs)]
		c.step = song.Duration
		at, ok := c.next()
		if !ok {
			return
		}
		t.buffs.Push(timespan.Timespan{Begin: 0, End: song.Duration}.Offset(at), Buff{Source: song.Name, Kind: song.Kind, Value: song.Value})
	}
}

// Grade tincture timings.
const (
	PotionDuration = 30.0
	PotionRecast   = 270.0
	PotionOpener   = -3.0
	PotionName     = "Grade 7 Tincture of Mind"
)

// potionCandidates sweeps the buff schedule and returns the instants where a
// potion overlaps the most buff time, ascending. Each instant is a local
// maximum of the buff area under a potion-long window starting there.
func (t *Timeline) potionCandidates() []float64 {
	points := t.buffs.Boundaries()
	if len(points) < 2 {
		return nil
	}
	// The buff count is constant on each segment [points[i], points[i+1]).
	count := make([]float64, len(points)-1)
	for i := range count {
		count[i] = float64(t.buffs.Count(points[i]))
	}
	score := make([]float64, len(count))
	for i := range score {
		limit := points[i] + PotionDuration
		for j := i; j < len(count) && points[j] < limit; j++ {
			score[i] += (min(points[j+1], limit) - points[j]) * count[j]
		}
	}

	var out []float64
	for i, s := range score {
		if s <= 0 {
			continue
		}
		if i > 0 && s < score[i-1] {
			continue
		}
		if i+1 < len(score) && s <= score[i+1] {
			continue
		}
		out = append(out, points[i])
	}
	return out
}

func (t *Timeline) schedulePotions() {
	candidates := t.potionCandidates()
	potion := func(at float64) {
		t.buffs.Push(timespan.Timespan{Begin: 0, End: PotionDuration}.Offset(at), Buff{Source: PotionName, Kind: BuffMind, Value: float64(t.potionMind)})
	}

	potion(PotionOpener)
	next := PotionOpener + PotionRecast
	for next < t.end {
		i := 0
		for i < len(candidates) && candidates[i] < next {
			i++
		}
		if i == len(candidates) {
			return
		}
		potion(candidates[i])
		next = candidates[i] + PotionRecast
	}
}
