package gear

// Stats holds the raw attributes of an item, a baseline or a whole gearset.
// Derived quantities are never stored, see Formulas.
type Stats struct {
	WeaponDamage  uint32 `json:"weapon_damage" mapstructure:"weapon_damage"`
	Mind          uint32 `json:"mind" mapstructure:"mind"`
	Vitality      uint32 `json:"vitality" mapstructure:"vitality"`
	Piety         uint32 `json:"piety" mapstructure:"piety"`
	DirectHit     uint32 `json:"direct_hit" mapstructure:"direct_hit"`
	Critical      uint32 `json:"critical" mapstructure:"critical"`
	Determination uint32 `json:"determination" mapstructure:"determination"`
	SpellSpeed    uint32 `json:"spell_speed" mapstructure:"spell_speed"`
}

// StatRepo is anything the formulas can read attributes from.
type StatRepo interface {
	Attributes() Stats
	// GCDUptime is the fraction of the fight spent casting.
	GCDUptime() float64
}

var _ StatRepo = Stats{}

// Attributes implements StatRepo.
func (s Stats) Attributes() Stats { return s }

// GCDUptime implements StatRepo. Raw stats assume full uptime.
func (s Stats) GCDUptime() float64 { return 1.0 }

// Add returns the attribute-wise sum of s and o.
func (s Stats) Add(o Stats) Stats {
	return Stats{
		WeaponDamage:  s.WeaponDamage + o.WeaponDamage,
		Mind:          s.Mind + o.Mind,
		Vitality:      s.Vitality + o.Vitality,
		Piety:         s.Piety + o.Piety,
		DirectHit:     s.DirectHit + o.DirectHit,
		Critical:      s.Critical + o.Critical,
		Determination: s.Determination + o.Determination,
		SpellSpeed:    s.SpellSpeed + o.SpellSpeed,
	}
}

// StatMax returns the highest secondary attribute. Vitality and mind are not
// secondaries and never count.
func (s Stats) StatMax() uint32 {
	return max(s.Piety, s.DirectHit, s.Critical, s.Determination, s.SpellSpeed)
}

// Get returns the attribute a meld category feeds.
func (s Stats) Get(m MeldType) uint32 {
	switch m {
	case Critical:
		return s.Critical
	case Determination:
		return s.Determination
	case DirectHit:
		return s.DirectHit
	case SpellSpeed:
		return s.SpellSpeed
	}
	return 0
}

// withFood applies food bonuses, each capped at 10% of the value before food.
func (s Stats) withFood(food Stats) Stats {
	s.Critical += min(food.Critical, s.Critical/10)
	s.DirectHit += min(food.DirectHit, s.DirectHit/10)
	s.Determination += min(food.Determination, s.Determination/10)
	s.SpellSpeed += min(food.SpellSpeed, s.SpellSpeed/10)
	s.Vitality += min(food.Vitality, s.Vitality/10)
	s.Piety += min(food.Piety, s.Piety/10)
	return s
}

func (s Stats) withMelds(x, ix Melds) Stats {
	s.Critical += x[Critical]*MeldXValue + ix[Critical]*MeldIXValue
	s.Determination += x[Determination]*MeldXValue + ix[Determination]*MeldIXValue
	s.DirectHit += x[DirectHit]*MeldXValue + ix[DirectHit]*MeldIXValue
	s.SpellSpeed += x[SpellSpeed]*MeldXValue + ix[SpellSpeed]*MeldIXValue
	return s
}

// SageBase is the level 90 Viera Sage baseline.
var SageBase = Stats{
	Mind:          450,
	Vitality:      390,
	Piety:         390,
	DirectHit:     400,
	Critical:      400,
	Determination: 390,
	SpellSpeed:    400,
}
