package gear

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Gearset is one candidate build: an item per equipment slot, a food, the
// job baseline and the materia allocation.
type Gearset struct {
	Base   Stats           `json:"base"`
	Items  [SlotCount]Item `json:"items"`
	Food   Item            `json:"food"`
	MeldX  Melds           `json:"meld_x"`
	MeldIX Melds           `json:"meld_ix"`
}

var _ StatRepo = (*Gearset)(nil)

// FromItems builds a gearset without food or melds.
func FromItems(base Stats, items [SlotCount]Item) Gearset {
	return Gearset{Base: base, Items: items}
}

// Stats folds items, baseline, food and melds into the effective attributes.
// Food caps apply to the value before melds.
func (g *Gearset) Stats() Stats {
	s := g.Base
	for _, it := range g.Items {
		s = s.Add(it.Stats)
	}
	return s.withFood(g.Food.Stats).withMelds(g.MeldX, g.MeldIX)
}

func (g *Gearset) Attributes() Stats { return g.Stats() }

func (g *Gearset) GCDUptime() float64 { return 1.0 }

// MeldSlots returns the total grade X and grade IX slots of the equipped items.
func (g *Gearset) MeldSlots() (x, ix uint32) {
	for _, it := range g.Items {
		sx, six := it.SlotCounts()
		x += sx
		ix += six
	}
	return x, ix
}

// PossibleMelds sums the per-item meld caps. Any allocation bounded by the
// result keeps every attribute within the summed headroom of the items.
func (g *Gearset) PossibleMelds() (x, ix Melds) {
	for _, it := range g.Items {
		cx, cix := it.MeldCaps()
		for m := range MeldTypeCount {
			x[m] += cx[m]
			ix[m] += cix[m]
		}
	}
	return x, ix
}

// IsValid rejects wearing the same ring twice, unless one of the two copies
// is overmeldable.
func (g *Gearset) IsValid() bool {
	l, r := g.Items[LeftRing], g.Items[RightRing]
	if l.IsEmpty() || !l.sameAs(r) {
		return true
	}
	return l.Overmeldable || r.Overmeldable
}

// Equal compares two gearsets with the ring pair unordered.
func (g *Gearset) Equal(o *Gearset) bool {
	for i := range LeftRing {
		if !g.Items[i].sameAs(o.Items[i]) {
			return false
		}
	}
	gl, gr := g.Items[LeftRing], g.Items[RightRing]
	ol, or := o.Items[LeftRing], o.Items[RightRing]
	rings := (gl.sameAs(ol) && gr.sameAs(or)) || (gl.sameAs(or) && gr.sameAs(ol))
	return rings &&
		g.Food.sameAs(o.Food) &&
		g.MeldX == o.MeldX &&
		g.MeldIX == o.MeldIX &&
		g.Base == o.Base
}

// Hash is an identity hash consistent with Equal.
func (g *Gearset) Hash() uint64 {
	b := make([]byte, 0, 128)
	for _, it := range g.Items[:LeftRing] {
		b = binary.LittleEndian.AppendUint64(b, it.hash())
	}
	l, r := g.Items[LeftRing].hash(), g.Items[RightRing].hash()
	if l > r {
		l, r = r, l
	}
	b = binary.LittleEndian.AppendUint64(b, l)
	b = binary.LittleEndian.AppendUint64(b, r)
	b = binary.LittleEndian.AppendUint64(b, g.Food.hash())
	for _, v := range g.MeldX {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	for _, v := range g.MeldIX {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	return xxhash.Sum64(g.Base.appendBinary(b))
}
