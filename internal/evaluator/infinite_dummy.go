package evaluator

import "github.com/FlatBartender/bis-solver/internal/gear"

// InfiniteDummy is the steady-state model: an endless fight with no buffs and
// no downtime, reduced to a closed form over one refresh cycle.
type InfiniteDummy struct {
	f gear.Formulas
}

var _ Evaluator = (*InfiniteDummy)(nil)

func NewInfiniteDummy(f gear.Formulas) *InfiniteDummy {
	return &InfiniteDummy{f: f}
}

// Cycle describes one refresh cycle of the steady-state rotation.
type Cycle struct {
	Casts   float64
	Length  float64
	Dosis   float64
	Phlegma float64
	Ticks   float64
}

// Cycle derives the rotation cadence for the stats.
func (d *InfiniteDummy) Cycle(s gear.StatRepo) Cycle {
	gcd := d.f.AdjustedGCD(s)
	dosis := d.f.Expected(s, d.f.DirectDamage(s, DosisPotency))
	tick := d.f.Expected(s, d.f.DotDamage(s, EukrasianDosisPotency))

	casts := refreshCasts(gcd, dosis, tick)
	length := casts*gcd + RefreshOverhead
	phlegma := length / PhlegmaRecharge
	return Cycle{
		Casts:   casts,
		Length:  length,
		Dosis:   casts - phlegma,
		Phlegma: phlegma,
		Ticks:   min(length, DotDuration) / TickInterval,
	}
}

// DPS implements Evaluator.
func (d *InfiniteDummy) DPS(g *gear.Gearset) float64 {
	s := g.Stats()
	c := d.Cycle(s)
	dosis := d.f.Expected(s, d.f.DirectDamage(s, DosisPotency))
	phlegma := d.f.Expected(s, d.f.DirectDamage(s, PhlegmaPotency))
	tick := d.f.Expected(s, d.f.DotDamage(s, EukrasianDosisPotency))
	return (c.Dosis*dosis + c.Phlegma*phlegma + c.Ticks*tick) / c.Length
}
