package gear

import "iter"

// MeldType is a materia category. Its ordinal indexes Melds.
type MeldType int

const (
	Critical MeldType = iota
	Determination
	DirectHit
	SpellSpeed
)

const MeldTypeCount = 4

func (m MeldType) String() string {
	switch m {
	case Critical:
		return "Critical"
	case Determination:
		return "Determination"
	case DirectHit:
		return "Direct hit"
	case SpellSpeed:
		return "Spell speed"
	}
	return "Unknown"
}

// Melds counts materia per category.
type Melds [MeldTypeCount]uint32

const (
	// MeldXValue is the attribute bonus of one grade X materia.
	MeldXValue = 36
	// MeldIXValue is the attribute bonus of one grade IX materia.
	MeldIXValue = 12
	// MaxMeldSlots bounds the slots of an overmelded item.
	MaxMeldSlots = 5
)

func (m Melds) Sum() uint32 {
	return m[0] + m[1] + m[2] + m[3]
}

// Compositions yields every Melds bounded elementwise by caps and summing to
// min(total, caps.Sum()).
func Compositions(caps Melds, total uint32) iter.Seq[Melds] {
	return func(yield func(Melds) bool) {
		eachComposition(caps, total, yield)
	}
}

func eachComposition(caps Melds, total uint32, fn func(Melds) bool) {
	target := min(total, caps.Sum())
	var cur Melds
	var walk func(i int, left uint32) bool
	walk = func(i int, left uint32) bool {
		if i == MeldTypeCount-1 {
			if left > caps[i] {
				return true
			}
			cur[i] = left
			return fn(cur)
		}
		// Remaining categories must still be able to absorb what is left.
		var rest uint32
		for _, c := range caps[i+1:] {
			rest += c
		}
		lo := uint32(0)
		if left > rest {
			lo = left - rest
		}
		for n := lo; n <= min(caps[i], left); n++ {
			cur[i] = n
			if !walk(i+1, left-n) {
				return false
			}
		}
		return true
	}
	walk(0, target)
}
