package solver

import (
	"iter"

	"github.com/FlatBartender/bis-solver/internal/gear"
)

// gearProduct lazily walks every combination of one item per slot crossed
// with every unordered ring pair.
func (c *catalog) gearProduct(base gear.Stats) iter.Seq[gear.Gearset] {
	return func(yield func(gear.Gearset) bool) {
		g := gear.Gearset{Base: base}
		var walk func(i gear.ItemSlot) bool
		walk = func(i gear.ItemSlot) bool {
			if i == gear.LeftRing {
				for _, pair := range c.rings {
					g.Items[gear.LeftRing], g.Items[gear.RightRing] = pair[0], pair[1]
					if !yield(g) {
						return false
					}
				}
				return true
			}
			for _, it := range c.slots[i] {
				g.Items[i] = it
				if !walk(i + 1) {
					return false
				}
			}
			return true
		}
		walk(gear.Weapon)
	}
}

// withItems crosses every partial gearset with every item of one slot.
func withItems(sets []gear.Gearset, slot gear.ItemSlot, items []gear.Item) iter.Seq[gear.Gearset] {
	return func(yield func(gear.Gearset) bool) {
		for _, g := range sets {
			for _, it := range items {
				g.Items[slot] = it
				if !yield(g) {
					return
				}
			}
		}
	}
}

func withRings(sets []gear.Gearset, pairs [][2]gear.Item) iter.Seq[gear.Gearset] {
	return func(yield func(gear.Gearset) bool) {
		for _, g := range sets {
			for _, pair := range pairs {
				g.Items[gear.LeftRing], g.Items[gear.RightRing] = pair[0], pair[1]
				if !yield(g) {
					return
				}
			}
		}
	}
}

func withFood(sets []gear.Gearset, food []gear.Item) iter.Seq[gear.Gearset] {
	return func(yield func(gear.Gearset) bool) {
		for _, g := range sets {
			for _, f := range food {
				g.Food = f
				if !yield(g) {
					return
				}
			}
		}
	}
}

// withMeldX assigns every grade X allocation the gearset's slots and caps allow.
func withMeldX(sets []gear.Gearset) iter.Seq[gear.Gearset] {
	return func(yield func(gear.Gearset) bool) {
		for _, g := range sets {
			caps, _ := g.PossibleMelds()
			slots, _ := g.MeldSlots()
			for x := range gear.Compositions(caps, slots) {
				g.MeldX = x
				if !yield(g) {
					return
				}
			}
		}
	}
}

func withMeldIX(sets []gear.Gearset) iter.Seq[gear.Gearset] {
	return func(yield func(gear.Gearset) bool) {
		for _, g := range sets {
			_, caps := g.PossibleMelds()
			_, slots := g.MeldSlots()
			for ix := range gear.Compositions(caps, slots) {
				g.MeldIX = ix
				if !yield(g) {
					return
				}
			}
		}
	}
}

// withFoodAndMelds crosses each gearset with every food and every pair of
// grade X and grade IX allocations.
func withFoodAndMelds(sets []gear.Gearset, food []gear.Item) iter.Seq[gear.Gearset] {
	return func(yield func(gear.Gearset) bool) {
		for _, g := range sets {
			capsX, capsIX := g.PossibleMelds()
			slotsX, slotsIX := g.MeldSlots()
			for _, f := range food {
				g.Food = f
				for x := range gear.Compositions(capsX, slotsX) {
					g.MeldX = x
					for ix := range gear.Compositions(capsIX, slotsIX) {
						g.MeldIX = ix
						if !yield(g) {
							return
						}
					}
				}
			}
		}
	}
}
