package gear

import (
	"strings"

	"github.com/FlatBartender/bis-solver/internal/errors"
)

type ItemSlot int

const (
	Weapon ItemSlot = iota
	Head
	Body
	Hands
	Legs
	Feet
	Earrings
	Necklace
	Bracelet
	LeftRing
	RightRing
	// Food is not an equipment slot, it only tags catalog entries.
	Food
)

// SlotCount is the number of equipment slots of a gearset.
const SlotCount = int(RightRing) + 1

func (s ItemSlot) IsRing() bool {
	return s == LeftRing || s == RightRing
}

func (s ItemSlot) String() string {
	switch s {
	case Weapon:
		return "Weapon"
	case Head:
		return "Head"
	case Body:
		return "Body"
	case Hands:
		return "Hands"
	case Legs:
		return "Legs"
	case Feet:
		return "Feet"
	case Earrings:
		return "Earrings"
	case Necklace:
		return "Necklace"
	case Bracelet:
		return "Bracelet"
	case LeftRing:
		return "Left ring"
	case RightRing:
		return "Right ring"
	case Food:
		return "Food"
	}
	return "Unknown"
}

// ParseItemSlot reads an English or French slot name, case-insensitively.
// A bare "ring" is a left ring; the solvers treat both ring tags alike.
func ParseItemSlot(s string) (ItemSlot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "arme", "weapon":
		return Weapon, nil
	case "tête", "head":
		return Head, nil
	case "torse", "body":
		return Body, nil
	case "mains", "hands":
		return Hands, nil
	case "jambes", "legs":
		return Legs, nil
	case "pieds", "feet":
		return Feet, nil
	case "oreille", "earrings":
		return Earrings, nil
	case "collier", "necklace":
		return Necklace, nil
	case "bracelet":
		return Bracelet, nil
	case "bague gauche", "left ring":
		return LeftRing, nil
	case "bague droite", "right ring":
		return RightRing, nil
	case "anneau", "ring":
		return LeftRing, nil
	case "nourriture", "food":
		return Food, nil
	}
	return 0, errors.InvalidArgumentf("invalid value %q, expected an equip slot", s)
}

func (s ItemSlot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *ItemSlot) UnmarshalText(b []byte) error {
	v, err := ParseItemSlot(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}
