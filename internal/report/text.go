package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/FlatBartender/bis-solver/internal/evaluator"
	"github.com/FlatBartender/bis-solver/internal/gear"
)

const rule = "==================="

// Text renders every entry as a block: items with their slots, food,
// materia allocation, then final stats and derived values.
func Text(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s solver, %s evaluator, %d gearsets in %.1fs\n",
		r.Solver, r.Evaluator, len(r.Entries), float64(r.ElapsedMs)/1000)
	if r.ID != "" {
		fmt.Fprintf(&b, "run %s\n", r.ID)
	}
	for i := range r.Entries {
		b.WriteString(rule + "\n")
		writeEntry(&b, &r.Entries[i])
	}
	return b.String()
}

func writeEntry(w io.Writer, e *Entry) {
	g := &e.Gearset
	fmt.Fprintf(w, "#%d  %.2f DPS\n", e.Rank, e.DPS)
	for slot := gear.Weapon; int(slot) < gear.SlotCount; slot++ {
		it := &g.Items[slot]
		name := it.Name
		if it.IsEmpty() {
			name = "-"
		}
		fmt.Fprintf(w, "  %-10s %s\n", slot, name)
	}
	food := g.Food.Name
	if g.Food.IsEmpty() {
		food = "-"
	}
	fmt.Fprintf(w, "  %-10s %s\n", gear.Food, food)
	fmt.Fprintf(w, "  Materia X  %s\n", melds(g.MeldX))
	fmt.Fprintf(w, "  Materia IX %s\n", melds(g.MeldIX))

	s := e.Stats
	fmt.Fprintf(w, "  WD %d  MND %d  CRT %d  DET %d  DH %d  SPS %d\n",
		s.WeaponDamage, s.Mind, s.Critical, s.Determination, s.DirectHit, s.SpellSpeed)
	d := e.Derived
	fmt.Fprintf(w, "  GCD %.2f  crit %.1f%% x%.3f  DH %.1f%%  det x%.3f\n",
		d.GCD, d.CritRate*100, d.CritMultiplier, d.DHRate*100, d.DetMultiplier)
}

func melds(m gear.Melds) string {
	var parts []string
	for t := gear.MeldType(0); int(t) < gear.MeldTypeCount; t++ {
		if m[t] > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", t, m[t]))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

// Table is the one line per gearset summary.
func Table(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-4s %10s %6s %6s %6s %6s %6s\n", "#", "DPS", "GCD", "CRT", "DET", "DH", "SPS")
	fmt.Fprintf(&b, "%-4s %10s %6s %6s %6s %6s %6s\n", "----", "----------", "------", "------", "------", "------", "------")
	for _, e := range r.Entries {
		fmt.Fprintf(&b, "%-4d %10.2f %6.2f %6d %6d %6d %6d\n",
			e.Rank, e.DPS, e.Derived.GCD, e.Stats.Critical, e.Stats.Determination, e.Stats.DirectHit, e.Stats.SpellSpeed)
	}
	return b.String()
}

// Rotation lists the casts of a timeline rotation with the buffs they snapshot.
func Rotation(r *evaluator.Rotation) string {
	var b strings.Builder
	fmt.Fprintf(&b, "GCD %.2f, %d casts per refresh, %d actions\n", r.GCD, r.Casts, len(r.Actions))
	for _, a := range r.Actions {
		fmt.Fprintf(&b, "%8.2f  %-16s", a.At, a.Kind)
		if buffs := snapshot(a.Buffs); buffs != "" {
			b.WriteString("  " + buffs)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func snapshot(s evaluator.Snapshot) string {
	var parts []string
	if s.Damage > 0 {
		parts = append(parts, fmt.Sprintf("dmg +%.0f%%", s.Damage*100))
	}
	if s.Critical > 0 {
		parts = append(parts, fmt.Sprintf("crit +%.0f%%", s.Critical*100))
	}
	if s.DirectHit > 0 {
		parts = append(parts, fmt.Sprintf("dh +%.0f%%", s.DirectHit*100))
	}
	if s.Mind > 0 {
		parts = append(parts, fmt.Sprintf("mnd +%d", s.Mind))
	}
	return strings.Join(parts, ", ")
}
