// Package report renders solver results as text tables and as the JSON
// document stored for later display.
package report

import (
	"time"

	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
)

// Result is one finished run.
type Result struct {
	ID        string    `json:"id,omitempty"`
	Solver    string    `json:"solver"`
	Evaluator string    `json:"evaluator"`
	CreatedAt time.Time `json:"created_at"`
	ElapsedMs int64     `json:"elapsed_ms"`
	Entries   []Entry   `json:"entries"`
}

// Entry is a ranked gearset with its score and derived values.
type Entry struct {
	Rank    int          `json:"rank"`
	DPS     float64      `json:"dps"`
	Gearset gear.Gearset `json:"gearset"`
	Stats   gear.Stats   `json:"stats"`
	Derived Derived      `json:"derived"`
}

// Derived holds the values the formulas compute from the final stats.
type Derived struct {
	GCD            float64 `json:"gcd"`
	CritRate       float64 `json:"crit_rate"`
	CritMultiplier float64 `json:"crit_multiplier"`
	DHRate         float64 `json:"dh_rate"`
	DetMultiplier  float64 `json:"det_multiplier"`
	SpSMultiplier  float64 `json:"sps_multiplier"`
}

func derive(f gear.Formulas, s gear.Stats) Derived {
	return Derived{
		GCD:            f.GCD(s).Scalar(),
		CritRate:       f.CritRate(s).Scalar(),
		CritMultiplier: f.CritMultiplier(s).Scalar(),
		DHRate:         f.DHRate(s).Scalar(),
		DetMultiplier:  f.DetMultiplier(s).Scalar(),
		SpSMultiplier:  f.SpSMultiplier(s).Scalar(),
	}
}

// New scores the gearsets in order and builds the run result.
func New(solver, eval string, f gear.Formulas, e evaluator.Evaluator, sets []gear.Gearset, elapsed time.Duration) *Result {
	r := &Result{
		Solver:    solver,
		Evaluator: eval,
		CreatedAt: time.Now().UTC(),
		ElapsedMs: elapsed.Milliseconds(),
		Entries:   make([]Entry, len(sets)),
	}
	for i := range sets {
		s := sets[i].Stats()
		r.Entries[i] = Entry{
			Rank:    i + 1,
			DPS:     e.DPS(&sets[i]),
			Gearset: sets[i],
			Stats:   s,
			Derived: derive(f, s),
		}
	}
	return r
}

// Best returns the top entry's DPS, 0 for an empty result.
func (r *Result) Best() float64 {
	if len(r.Entries) == 0 {
		return 0
	}
	return r.Entries[0].DPS
}
