// Package evaluator scores a gearset as expected damage per second.
package evaluator

import (
	"math"

	"github.com/FlatBartender/bis-solver/internal/gear"
)

// Evaluator maps a gearset to its expected DPS. Implementations are pure:
// the same gearset always scores the same, and DPS is safe for concurrent use.
type Evaluator interface {
	DPS(g *gear.Gearset) float64
}

// Func adapts a plain function to Evaluator.
type Func func(g *gear.Gearset) float64

func (f Func) DPS(g *gear.Gearset) float64 { return f(g) }

// Sage action potencies and timings.
const (
	DosisPotency          = 330
	PhlegmaPotency        = 510
	EukrasianDosisPotency = 70

	// DotDuration is how long one Eukrasian Dosis keeps ticking.
	DotDuration = 30.0
	// TickInterval separates two damage-over-time ticks.
	TickInterval = 3.0
	// RefreshOverhead is Eukrasia plus the 1.5s recast of Eukrasian Dosis.
	RefreshOverhead = 2.5
	// PhlegmaRecharge is the recharge time of one Phlegma charge.
	PhlegmaRecharge = 45.0
)

// refreshCasts picks how many GCD casts go between two damage-over-time
// refreshes. Refreshing a cast early clips the running effect, refreshing a
// cast late lets it fall off for a while. The cadence with the higher damage
// per second wins, the early one on ties.
func refreshCasts(gcd, cast, tick float64) float64 {
	n := (DotDuration - RefreshOverhead) / gcd
	perSecond := func(casts float64) float64 {
		cycle := gcd*casts + RefreshOverhead
		return casts/cycle*cast + min(cycle, DotDuration)/cycle/TickInterval*tick
	}
	early, late := max(1, math.Floor(n)), max(1, math.Ceil(n))
	if perSecond(early) >= perSecond(late) {
		return early
	}
	return late
}
