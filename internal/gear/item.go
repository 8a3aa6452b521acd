package gear

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Item is one catalog entry: a piece of equipment or a food.
type Item struct {
	Slot         ItemSlot `json:"slot"`
	Name         string   `json:"name"`
	Stats        Stats    `json:"stats"`
	MeldSlots    uint32   `json:"meld_slots"`
	Overmeldable bool     `json:"overmeldable"`
}

// IsEmpty reports whether the item is the zero placeholder used for an
// unfilled slot or a missing food.
func (it Item) IsEmpty() bool {
	return it.Name == "" && it.Stats == Stats{}
}

// StatMax is the stat cap of the item: its highest secondary attribute.
func (it Item) StatMax() uint32 {
	return it.Stats.StatMax()
}

// SlotCounts returns the grade X and grade IX meld slots of the item. An
// overmeldable item takes one extra grade X materia and fills the rest of
// its MaxMeldSlots with grade IX.
func (it Item) SlotCounts() (x, ix uint32) {
	if !it.Overmeldable {
		return it.MeldSlots, 0
	}
	if it.MeldSlots+1 >= MaxMeldSlots {
		return it.MeldSlots + 1, 0
	}
	return it.MeldSlots + 1, MaxMeldSlots - it.MeldSlots - 1
}

// MeldCaps returns, per category, how many materia of each grade fit before
// the attribute reaches the item's stat cap. Grade IX only gets the headroom
// the grade X cap leaves over.
func (it Item) MeldCaps() (x, ix Melds) {
	sx, six := it.SlotCounts()
	limit := it.StatMax()
	for m := range MeldTypeCount {
		head := above(limit, it.Stats.Get(MeldType(m)))
		x[m] = min(sx, head/MeldXValue)
		ix[m] = min(six, (head-x[m]*MeldXValue)/MeldIXValue)
	}
	return x, ix
}

// sameAs compares everything but the slot tag, so that a ring parsed as a
// left ring matches the same ring worn on the right hand.
func (it Item) sameAs(o Item) bool {
	return it.Name == o.Name &&
		it.Stats == o.Stats &&
		it.MeldSlots == o.MeldSlots &&
		it.Overmeldable == o.Overmeldable
}

func (it Item) hash() uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(it.Name)
	_, _ = d.Write(it.Stats.appendBinary(nil))
	var b [5]byte
	binary.LittleEndian.PutUint32(b[:4], it.MeldSlots)
	if it.Overmeldable {
		b[4] = 1
	}
	_, _ = d.Write(b[:])
	return d.Sum64()
}

func (s Stats) appendBinary(b []byte) []byte {
	for _, v := range [...]uint32{
		s.WeaponDamage, s.Mind, s.Vitality, s.Piety,
		s.DirectHit, s.Critical, s.Determination, s.SpellSpeed,
	} {
		b = binary.LittleEndian.AppendUint32(b, v)
	}
	return b
}
