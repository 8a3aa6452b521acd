package catalog

import (
	"github.com/tidwall/gjson"

	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/gear"
)

// ── XIVAPI payloads ──
//
// Either a search response ({"Results": [...]}) or a bare array of item
// payloads with PascalCase keys. Stats carry NQ and HQ values; HQ wins when
// present.

var equipSlots = []struct {
	key  string
	slot gear.ItemSlot
}{
	{"MainHand", gear.Weapon},
	{"Head", gear.Head},
	{"Body", gear.Body},
	{"Gloves", gear.Hands},
	{"Legs", gear.Legs},
	{"Feet", gear.Feet},
	{"Ears", gear.Earrings},
	{"Neck", gear.Necklace},
	{"Wrists", gear.Bracelet},
	{"FingerL", gear.LeftRing},
	{"FingerR", gear.LeftRing},
}

func isXIVAPI(root gjson.Result) bool {
	first := root.Get("Results.0")
	if !first.Exists() {
		first = root.Get("0")
	}
	return first.Get("EquipSlotCategory").Exists() || first.Get("ItemAction").Exists()
}

func parseXIVAPI(root gjson.Result) ([]gear.Item, error) {
	list := root
	if r := root.Get("Results"); r.Exists() {
		list = r
	}
	var items []gear.Item
	var err error
	list.ForEach(func(_, v gjson.Result) bool {
		var it gear.Item
		it, err = parseXIVAPIItem(v)
		if err != nil {
			return false
		}
		items = append(items, it)
		return true
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func parseXIVAPIItem(v gjson.Result) (gear.Item, error) {
	it := gear.Item{
		Name:         v.Get("Name").String(),
		Stats:        parseXIVAPIStats(v.Get("Stats")),
		MeldSlots:    uint32(v.Get("MateriaSlotCount").Uint()),
		Overmeldable: v.Get("IsAdvancedMeldingPermitted").Bool(),
	}
	it.Stats.WeaponDamage = uint32(v.Get("DamageMag").Uint())

	cat := v.Get("EquipSlotCategory")
	if !cat.Exists() {
		// consumables carry no equip slot
		it.Slot = gear.Food
		it.MeldSlots, it.Overmeldable = 0, false
		return it, nil
	}
	for _, e := range equipSlots {
		if cat.Get(e.key).Int() > 0 {
			it.Slot = e.slot
			return it, nil
		}
	}
	return it, errors.InvalidArgumentf("%s has no supported equip slot", it.Name).
		WithMeta("equip_slot_category", cat.Raw)
}

func parseXIVAPIStats(v gjson.Result) gear.Stats {
	get := func(name string) uint32 {
		s := v.Get(name)
		if hq := s.Get("HQ"); hq.Exists() && hq.Type != gjson.Null {
			return uint32(hq.Uint())
		}
		return uint32(s.Get("NQ").Uint())
	}
	return gear.Stats{
		Mind:          get("Mind"),
		Vitality:      get("Vitality"),
		Piety:         get("Piety"),
		DirectHit:     get("DirectHitRate"),
		Critical:      get("CriticalHit"),
		Determination: get("Determination"),
		SpellSpeed:    get("SpellSpeed"),
	}
}
