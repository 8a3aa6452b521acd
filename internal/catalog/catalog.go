// Package catalog reads item catalogs: the native JSON layout and raw XIVAPI
// item payloads.
package catalog

import (
	"os"

	"github.com/tidwall/gjson"

	"github.com/FlatBartender/bis-solver/internal/errors"
	"github.com/FlatBartender/bis-solver/internal/gear"
)

// ── Native layout ──
//
//	{
//	  "items": [{"slot": "head", "name": "...", "stats": {...}, "meld_slots": 2, "overmeldable": false}],
//	  "food":  [{"name": "...", "stats": {...}}]
//	}
//
// A bare array of items is accepted too. Food entries need no slot.

// Load reads a catalog file. Files whose entries carry an EquipSlotCategory
// are read as XIVAPI payloads.
func Load(path string) ([]gear.Item, error) {
	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.WrapWithCode(err, errors.CodeNotFound, "catalog "+path)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read catalog %s", path)
	}
	items, err := Parse(string(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "catalog %s", path)
	}
	return items, nil
}

// Parse reads a catalog document in either layout.
func Parse(doc string) ([]gear.Item, error) {
	if !gjson.Valid(doc) {
		return nil, errors.InvalidArgument("catalog is not valid JSON")
	}
	root := gjson.Parse(doc)
	if isXIVAPI(root) {
		return parseXIVAPI(root)
	}

	var items []gear.Item
	list := root
	if root.IsObject() {
		list = root.Get("items")
	}
	var err error
	list.ForEach(func(k, v gjson.Result) bool {
		var it gear.Item
		it, err = parseItem(v)
		if err != nil {
			err = errors.Wrapf(err, "item %s", k.String())
			return false
		}
		items = append(items, it)
		return true
	})
	if err != nil {
		return nil, err
	}

	root.Get("food").ForEach(func(_, v gjson.Result) bool {
		it := gear.Item{
			Slot:  gear.Food,
			Name:  v.Get("name").String(),
			Stats: parseStats(v.Get("stats")),
		}
		items = append(items, it)
		return true
	})
	return items, nil
}

func parseItem(v gjson.Result) (gear.Item, error) {
	it := gear.Item{
		Name:         v.Get("name").String(),
		Stats:        parseStats(v.Get("stats")),
		MeldSlots:    uint32(v.Get("meld_slots").Uint()),
		Overmeldable: v.Get("overmeldable").Bool(),
	}
	slot, err := gear.ParseItemSlot(v.Get("slot").String())
	if err != nil {
		return it, err
	}
	it.Slot = slot
	if it.MeldSlots > gear.MaxMeldSlots {
		return it, errors.InvalidArgumentf("%s has %d meld slots, at most %d allowed",
			it.Name, it.MeldSlots, gear.MaxMeldSlots)
	}
	return it, nil
}

func parseStats(v gjson.Result) gear.Stats {
	return gear.Stats{
		WeaponDamage:  uint32(v.Get("weapon_damage").Uint()),
		Mind:          uint32(v.Get("mind").Uint()),
		Vitality:      uint32(v.Get("vitality").Uint()),
		Piety:         uint32(v.Get("piety").Uint()),
		DirectHit:     uint32(v.Get("direct_hit").Uint()),
		Critical:      uint32(v.Get("critical").Uint()),
		Determination: uint32(v.Get("determination").Uint()),
		SpellSpeed:    uint32(v.Get("spell_speed").Uint()),
	}
}
