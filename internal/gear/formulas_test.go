package gear_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FlatBartender/bis-solver/internal/gear"
)

func TestFormulasAtBaseline(t *testing.T) {
	f := gear.Level90()
	s := gear.SageBase

	assert.Equal(t, gear.Unit[gear.Centi](250), f.GCD(s))
	assert.Equal(t, gear.Unit[gear.Centi](150), f.GCD15(s))
	assert.Equal(t, gear.Unit[gear.Milli](50), f.CritRate(s))
	assert.Equal(t, gear.Unit[gear.Milli](1400), f.CritMultiplier(s))
	assert.Equal(t, gear.Unit[gear.Milli](1000), f.DetMultiplier(s))
	assert.Equal(t, gear.Unit[gear.Milli](0), f.DHRate(s))
	assert.Equal(t, gear.Unit[gear.Milli](1000), f.SpSMultiplier(s))
	assert.Equal(t, gear.Unit[gear.Centi](130), f.MagicAttackPower(s))
	assert.Equal(t, gear.Unit[gear.Centi](44), f.AdjustedWeaponDamage(s))
	assert.Equal(t, gear.Unit[gear.Milli](1020), f.CritScalar(s))
	assert.Equal(t, gear.Unit[gear.Milli](1000), f.DHScalar(s))
	assert.InDelta(t, 2.5, f.AdjustedGCD(s), 1e-9)
}

func TestFormulasScaleWithAttributes(t *testing.T) {
	f := gear.Level90()
	s := gear.SageBase
	s.SpellSpeed = 1000
	s.Critical = 2000

	assert.Equal(t, gear.Unit[gear.Centi](239), f.GCD(s))
	assert.Equal(t, gear.Unit[gear.Centi](143), f.GCD15(s))
	assert.Equal(t, gear.Unit[gear.Milli](1041), f.SpSMultiplier(s))
	assert.Equal(t, gear.Unit[gear.Milli](218), f.CritRate(s))
	assert.Equal(t, gear.Unit[gear.Milli](1568), f.CritMultiplier(s))
}

func TestFormulasClampBelowBreakpoint(t *testing.T) {
	f := gear.Level90()
	var s gear.Stats

	assert.Equal(t, gear.Unit[gear.Centi](250), f.GCD(s))
	assert.Equal(t, gear.Unit[gear.Milli](50), f.CritRate(s))
	assert.Equal(t, gear.Unit[gear.Milli](1000), f.DetMultiplier(s))
	assert.Equal(t, gear.Unit[gear.Centi](100), f.MagicAttackPower(s))
}

func TestScalarBonuses(t *testing.T) {
	f := gear.Level90()
	s := gear.SageBase

	assert.Equal(t, gear.Unit[gear.Milli](1050), f.DHScalarWithBonus(s, 0.2))
	// rate saturates at 100%
	assert.Equal(t, gear.Unit[gear.Milli](1400), f.CritScalarWithBonus(s, 2))
}

func TestDamageChainsTruncate(t *testing.T) {
	f := gear.Level90()
	s := gear.SageBase

	// 330 -> 429 (MAP) -> 429 (det) -> 188 (wd) -> 244 (trait)
	assert.Equal(t, uint32(244), f.DirectDamage(s, 330))
	// 70 -> 30 (wd) -> 39 (MAP) -> 39 -> 39 -> 50 (trait) + 1
	assert.Equal(t, uint32(51), f.DotDamage(s, 70))
	assert.InDelta(t, 244*1.02, f.Expected(s, 244), 1e-9)
}

func TestUnitScale(t *testing.T) {
	assert.Equal(t, uint32(188), gear.Scale(429, gear.Unit[gear.Centi](44)))
	assert.Equal(t, uint32(1), gear.Scale(1999, gear.Unit[gear.Milli](1)))
	assert.InDelta(t, 1.3, gear.Unit[gear.Centi](130).Scalar(), 1e-9)
	// the ratio truncates before the float multiply
	assert.InDelta(t, 10.0, gear.ScaleFloat(10.0, gear.Unit[gear.Centi](150)), 1e-9)
}
