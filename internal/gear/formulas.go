package gear

import "math"

// Formulas holds the level and job constants of the damage model. The values
// are reverse-engineered game constants; every division below truncates
// exactly where the game does.
type Formulas struct {
	// Main is the level main-stat baseline, also the determination/piety breakpoint.
	Main uint32 `mapstructure:"main" validate:"gt=0"`
	// Sub is the critical, direct hit and speed breakpoint.
	Sub uint32 `mapstructure:"sub" validate:"gt=0"`
	// Div is the level divisor.
	Div uint32 `mapstructure:"div" validate:"gt=0"`
	// JobAttack is the job main-stat modifier used by weapon damage.
	JobAttack uint32 `mapstructure:"job_attack"`
	// AttackSlope is the attack power gain per level-baseline of main stat.
	AttackSlope uint32 `mapstructure:"attack_slope"`
	// TraitBonus is the job trait damage bonus, in hundredths.
	TraitBonus uint32 `mapstructure:"trait_bonus"`
	// WeaponDelay is the auto-attack delay, in hundredths of a second.
	WeaponDelay uint32 `mapstructure:"weapon_delay"`
	// PhysicalAttack is the fixed physical attack power of a caster, in hundredths.
	PhysicalAttack uint32 `mapstructure:"physical_attack"`
}

// Level90 returns the level 90 healer constants.
func Level90() Formulas {
	return Formulas{
		Main:           390,
		Sub:            400,
		Div:            1900,
		JobAttack:      115,
		AttackSlope:    195,
		TraitBonus:     130,
		WeaponDelay:    280,
		PhysicalAttack: 233,
	}
}

// above returns how far v is past the breakpoint, 0 when at or below it.
func above(v, breakpoint uint32) uint32 {
	if v <= breakpoint {
		return 0
	}
	return v - breakpoint
}

func (f Formulas) speed(s StatRepo) uint32 {
	return min(130*above(s.Attributes().SpellSpeed, f.Sub)/f.Div, 1000)
}

// Delay returns the auto-attack delay.
func (f Formulas) Delay(StatRepo) Unit[Centi] {
	return Unit[Centi](f.WeaponDelay)
}

// GCD is the 2.5s weapon-skill global cooldown after spell speed.
func (f Formulas) GCD(s StatRepo) Unit[Centi] {
	return Unit[Centi](2500 * (1000 - f.speed(s)) / 10000)
}

// GCD15 is the 1.5s spell cast time after spell speed.
func (f Formulas) GCD15(s StatRepo) Unit[Centi] {
	return Unit[Centi](1500 * (1000 - f.speed(s)) / 10000)
}

// AdjustedGCD spreads the GCD over the casting uptime.
func (f Formulas) AdjustedGCD(s StatRepo) float64 {
	return f.GCD(s).Scalar() / s.GCDUptime()
}

func (f Formulas) CritMultiplier(s StatRepo) Unit[Milli] {
	return Unit[Milli](1400 + 200*above(s.Attributes().Critical, f.Sub)/f.Div)
}

func (f Formulas) CritRate(s StatRepo) Unit[Milli] {
	return Unit[Milli](50 + 200*above(s.Attributes().Critical, f.Sub)/f.Div)
}

func (f Formulas) DetMultiplier(s StatRepo) Unit[Milli] {
	return Unit[Milli](1000 + 140*above(s.Attributes().Determination, f.Main)/f.Div)
}

func (f Formulas) DHRate(s StatRepo) Unit[Milli] {
	return Unit[Milli](550 * above(s.Attributes().DirectHit, f.Sub) / f.Div)
}

func (f Formulas) SpSMultiplier(s StatRepo) Unit[Milli] {
	return Unit[Milli](1000 + f.speed(s))
}

func (f Formulas) AdjustedWeaponDamage(s StatRepo) Unit[Centi] {
	return Unit[Centi](f.Main*f.JobAttack/1000 + s.Attributes().WeaponDamage)
}

func (f Formulas) PhysicalAttackPower(StatRepo) Unit[Centi] {
	return Unit[Centi](f.PhysicalAttack)
}

func (f Formulas) MagicAttackPower(s StatRepo) Unit[Centi] {
	return Unit[Centi](f.AttackSlope*above(s.Attributes().Mind, f.Main)/f.Main + 100)
}

func (f Formulas) Trait() Unit[Centi] {
	return Unit[Centi](f.TraitBonus)
}

// CritScalar folds crit chance and multiplier into one expected-value factor.
func (f Formulas) CritScalar(s StatRepo) Unit[Milli] {
	return f.CritScalarWithBonus(s, 0)
}

// CritScalarWithBonus is CritScalar with bonus added to the crit rate, as
// raid buffs do.
func (f Formulas) CritScalarWithBonus(s StatRepo, bonus float64) Unit[Milli] {
	rate := addRate(uint32(f.CritRate(s)), bonus)
	return Unit[Milli](1000 - rate + rate*uint32(f.CritMultiplier(s))/1000)
}

// DHScalar folds direct hit chance and its fixed 125% multiplier into one factor.
func (f Formulas) DHScalar(s StatRepo) Unit[Milli] {
	return f.DHScalarWithBonus(s, 0)
}

// DHScalarWithBonus is DHScalar with bonus added to the direct hit rate.
func (f Formulas) DHScalarWithBonus(s StatRepo, bonus float64) Unit[Milli] {
	rate := addRate(uint32(f.DHRate(s)), bonus)
	return Unit[Milli](1000 - rate + rate*125/100)
}

func addRate(rate uint32, bonus float64) uint32 {
	if bonus > 0 {
		rate += uint32(math.Round(bonus * 1000))
	}
	return min(rate, 1000)
}

// DirectDamage is the pre-crit damage of a direct hit with the given potency.
func (f Formulas) DirectDamage(s StatRepo, potency uint32) uint32 {
	d := Scale(potency, f.MagicAttackPower(s))
	d = Scale(d, f.DetMultiplier(s))
	d = Scale(d, f.AdjustedWeaponDamage(s))
	return Scale(d, f.Trait())
}

// DotDamage is the pre-crit damage of one damage-over-time tick. Speed scales
// ticks, and the game adds one after the trait.
func (f Formulas) DotDamage(s StatRepo, potency uint32) uint32 {
	d := Scale(potency, f.AdjustedWeaponDamage(s))
	d = Scale(d, f.MagicAttackPower(s))
	d = Scale(d, f.DetMultiplier(s))
	d = Scale(d, f.SpSMultiplier(s))
	return Scale(d, f.Trait()) + 1
}

// Expected multiplies a damage value by the crit and direct hit factors.
func (f Formulas) Expected(s StatRepo, damage uint32) float64 {
	return float64(damage) * f.CritScalar(s).Scalar() * f.DHScalar(s).Scalar()
}
