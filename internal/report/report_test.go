package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
)

func sampleSets() []gear.Gearset {
	a := gear.Gearset{Base: gear.SageBase}
	a.Items[gear.Weapon] = gear.Item{Slot: gear.Weapon, Name: "Staff", Stats: gear.Stats{WeaponDamage: 132, Mind: 416, Critical: 306}, MeldSlots: 2}
	a.Food = gear.Item{Slot: gear.Food, Name: "Baked Eggplant", Stats: gear.Stats{Determination: 103}}
	a.MeldX = gear.Melds{gear.Critical: 1, gear.Determination: 1}

	b := a
	b.MeldX = gear.Melds{gear.DirectHit: 2}
	b.Food = gear.Item{}
	return []gear.Gearset{a, b}
}

func TestNew(t *testing.T) {
	f := gear.Level90()
	eval := evaluator.NewInfiniteDummy(f)
	sets := sampleSets()

	r := New("split", "infinite_dummy", f, eval, sets, 1500*time.Millisecond)
	require.Len(t, r.Entries, 2)
	assert.Equal(t, int64(1500), r.ElapsedMs)
	assert.Equal(t, 1, r.Entries[0].Rank)
	assert.Equal(t, 2, r.Entries[1].Rank)
	assert.Equal(t, eval.DPS(&sets[0]), r.Entries[0].DPS)
	assert.Equal(t, r.Entries[0].DPS, r.Best())
	assert.Equal(t, sets[0].Stats(), r.Entries[0].Stats)
	assert.Equal(t, f.GCD(sets[0].Stats()).Scalar(), r.Entries[0].Derived.GCD)

	assert.Zero(t, (&Result{}).Best())
}

func TestResultJSON(t *testing.T) {
	f := gear.Level90()
	r := New("rolling", "timeline", f, evaluator.NewInfiniteDummy(f), sampleSets(), time.Second)
	r.ID = "run-1"

	raw, err := json.Marshal(r)
	require.NoError(t, err)

	var back Result
	require.NoError(t, json.Unmarshal(raw, &back))
	assert.Equal(t, r.ID, back.ID)
	require.Len(t, back.Entries, 2)
	assert.True(t, back.Entries[0].Gearset.Equal(&r.Entries[0].Gearset))
	assert.Equal(t, gear.Food, back.Entries[0].Gearset.Food.Slot)
}

func TestText(t *testing.T) {
	f := gear.Level90()
	r := New("split", "infinite_dummy", f, evaluator.NewInfiniteDummy(f), sampleSets(), 2*time.Second)
	out := Text(r)

	assert.Contains(t, out, "split solver, infinite_dummy evaluator, 2 gearsets in 2.0s")
	assert.Contains(t, out, "Weapon     Staff")
	assert.Contains(t, out, "Head       -")
	assert.Contains(t, out, "Food       Baked Eggplant")
	assert.Contains(t, out, "Materia X  Critical x1, Determination x1")
	assert.Contains(t, out, "Materia IX -")
	assert.Contains(t, out, "Food       -")

	table := Table(r)
	assert.Contains(t, table, "DPS")
	assert.Equal(t, 4, strings.Count(table, "\n"))
}

func TestRotationText(t *testing.T) {
	cfg := evaluator.DefaultTimelineConfig()
	cfg.KillTime = 60
	tl := evaluator.NewTimeline(gear.Level90(), cfg)
	out := Rotation(tl.Rotation(400))

	assert.Contains(t, out, "GCD 2.50")
	assert.Contains(t, out, "Eukrasian Dosis")
	assert.Contains(t, out, "dmg +")
}
