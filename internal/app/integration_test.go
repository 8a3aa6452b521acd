package app_test

import (
	"context"
	"testing"

	"github.com/FlatBartender/bis-solver/internal/app"
	"github.com/FlatBartender/bis-solver/internal/catalog"
	"github.com/FlatBartender/bis-solver/internal/config"
	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
	"github.com/FlatBartender/bis-solver/internal/report"
)

const sampleCatalog = "../../cmd/bis-solver-lambda/catalog.json"

func loadTestCatalog(t *testing.T) []gear.Item {
	t.Helper()
	items, err := catalog.Load(sampleCatalog)
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	return items
}

// verifyResult runs the gearset checklist against a run result.
func verifyResult(t *testing.T, items []gear.Item, eval evaluator.Evaluator, res *report.Result) {
	t.Helper()
	if len(res.Entries) == 0 {
		t.Fatal("no gearsets returned")
	}

	food := map[string]bool{}
	for _, it := range items {
		if it.Slot == gear.Food {
			food[it.Name] = true
		}
	}

	seen := map[uint64]int{}
	for i := range res.Entries {
		e := &res.Entries[i]
		g := &e.Gearset

		// 1. positive score
		if e.DPS <= 0 {
			t.Errorf("#%d: dps %.2f, want > 0", e.Rank, e.DPS)
		}

		// 2. ranked best first
		if i > 0 && res.Entries[i-1].DPS < e.DPS {
			t.Errorf("#%d: dps %.2f above #%d with %.2f", e.Rank, e.DPS, res.Entries[i-1].Rank, res.Entries[i-1].DPS)
		}

		// 3. every slot filled, the catalog has items for all of them
		for slot := gear.Weapon; int(slot) < gear.SlotCount; slot++ {
			if g.Items[slot].IsEmpty() {
				t.Errorf("#%d: %s is empty", e.Rank, slot)
			}
		}

		// 4. ring pair is legal
		if !g.IsValid() {
			t.Errorf("#%d: identical rings %q without overmelding", e.Rank, g.Items[gear.LeftRing].Name)
		}

		// 5. meld counts fit the slots
		x, ix := g.MeldSlots()
		if g.MeldX.Sum() > x || g.MeldIX.Sum() > ix {
			t.Errorf("#%d: melds %v/%v exceed slots %d/%d", e.Rank, g.MeldX, g.MeldIX, x, ix)
		}

		// 6. meld counts fit the caps
		capsX, capsIX := g.PossibleMelds()
		for m := range gear.MeldTypeCount {
			if g.MeldX[m] > capsX[m] || g.MeldIX[m] > capsIX[m] {
				t.Errorf("#%d: %s melds %d/%d exceed caps %d/%d",
					e.Rank, gear.MeldType(m), g.MeldX[m], g.MeldIX[m], capsX[m], capsIX[m])
			}
		}

		// 7. food comes from the catalog
		if !food[g.Food.Name] {
			t.Errorf("#%d: unknown food %q", e.Rank, g.Food.Name)
		}

		// 8. no duplicates
		h := g.Hash()
		if j, dup := seen[h]; dup {
			t.Errorf("#%d duplicates #%d", e.Rank, j)
		}
		seen[h] = e.Rank

		// 9. score recomputation matches
		if got := eval.DPS(g); got != e.DPS {
			t.Errorf("#%d: recomputed dps %.4f != reported %.4f", e.Rank, got, e.DPS)
		}
	}
}

func TestSampleCatalog(t *testing.T) {
	items := loadTestCatalog(t)

	cases := []struct {
		name      string
		solver    string
		evaluator string
	}{
		{"split_dummy", "split", "infinite_dummy"},
		{"rolling_dummy", "rolling", "infinite_dummy"},
		{"rolling_timeline", "rolling", "timeline"},
	}
	if testing.Short() {
		cases = cases[:1]
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := config.Default()
			cfg.Solver.Kind = tc.solver
			cfg.Evaluator.Kind = tc.evaluator
			cfg.Solver.Split.KStage1 = 3
			cfg.Solver.Split.KStage2 = 5
			cfg.Solver.Rolling.RollingK = 16
			cfg.Evaluator.Timeline.KillTime = 300

			a := app.New(&cfg)
			res, err := a.Run(context.Background(), items, nil)
			if err != nil {
				t.Fatalf("Run: %v", err)
			}
			t.Logf("%s: best=%.2f elapsed=%dms", tc.name, res.Best(), res.ElapsedMs)

			eval, err := a.Evaluator()
			if err != nil {
				t.Fatalf("Evaluator: %v", err)
			}
			verifyResult(t, items, eval, res)
		})
	}
}
