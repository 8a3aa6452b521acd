package evaluator

import (
	"slices"
	"sort"
)

type ActionKind int

const (
	Dosis ActionKind = iota
	Eukrasia
	EukrasianDosis
	Phlegma
)

func (k ActionKind) String() string {
	switch k {
	case Dosis:
		return "Dosis"
	case Eukrasia:
		return "Eukrasia"
	case EukrasianDosis:
		return "Eukrasian Dosis"
	case Phlegma:
		return "Phlegma"
	}
	return "Unknown"
}

func (k ActionKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Action is one cast of the rotation with the buffs it snapshots.
type Action struct {
	At    float64    `json:"at"`
	Kind  ActionKind `json:"kind"`
	Buffs Snapshot   `json:"buffs"`
}

// Rotation is the cast schedule for one GCD value, ordered by time.
type Rotation struct {
	GCD     float64  `json:"gcd"`
	Casts   int      `json:"casts_per_cycle"`
	Actions []Action `json:"actions"`

	dots []Action
}

// Dot returns the Eukrasian Dosis whose effect ticks at t: the latest one
// cast within one DotDuration before t.
func (r *Rotation) Dot(t float64) (Action, bool) {
	i := sort.Search(len(r.dots), func(i int) bool { return r.dots[i].At > t })
	if i == 0 || r.dots[i-1].At < t-DotDuration {
		return Action{}, false
	}
	return r.dots[i-1], true
}

// Count returns how many actions of kind k the rotation casts.
func (r *Rotation) Count(k ActionKind) int {
	n := 0
	for _, a := range r.Actions {
		if a.Kind == k {
			n++
		}
	}
	return n
}

// Timing of the refresh sequence relative to the Eukrasia cast.
const (
	refreshStart = 1.0
	// eukrasianDosisDelay is the Eukrasia recast.
	eukrasianDosisDelay = 1.0
	// firstCastDelay is Eukrasia plus the Eukrasian Dosis recast.
	firstCastDelay = 1.5
	// resumeLead places the refresh after downtime so that Eukrasia lands
	// just before the downtime ends and Eukrasian Dosis just after.
	resumeLead = 0.95
)

type slot struct {
	Action
	filled bool
	active int
}

func (t *Timeline) slotAt(at float64, kind ActionKind, filled bool) slot {
	buffs := t.buffs.Spans(at)
	return slot{
		Action: Action{At: at, Kind: kind, Buffs: snapshot(buffs)},
		filled: filled,
		active: len(buffs),
	}
}

// buildRotation lays out the casts for one GCD. Refreshes go first at a fixed
// cadence, skipped when downtime comes before the refresh pays for itself.
// Every refresh is followed by a cycle of GCD slots. Phlegma charges go to the
// most buffed slot of each recharge window and every other slot is a Dosis.
// Fewer than four free slots leaves an empty rotation.
func (t *Timeline) buildRotation(gcd, gcd15 float64) *Rotation {
	casts := int(refreshCasts(gcd, DosisPotency, EukrasianDosisPotency))
	r := &Rotation{GCD: gcd, Casts: casts}
	if t.end <= 0 || gcd <= 0 {
		return r
	}
	cycle := float64(casts)*gcd + RefreshOverhead

	var slots []slot
	var refreshes []float64
	c := newClock(t.downtime, refreshStart, cycle, t.end)
	for at := range c.all {
		if dt, ok := t.downtime.NextStart(at); ok {
			ticks := (dt.Span.Begin - at) / TickInterval
			if ticks*EukrasianDosisPotency < DosisPotency {
				resume := dt.Span.End - resumeLead
				if resume <= at {
					resume = dt.Span.End
				}
				c.current = resume
				continue
			}
		}
		slots = append(slots,
			t.slotAt(at, Eukrasia, true),
			t.slotAt(at+eukrasianDosisDelay, EukrasianDosis, true),
		)
		refreshes = append(refreshes, at+eukrasianDosisDelay)
	}

	for _, ed := range refreshes {
		start := ed + firstCastDelay
		end := t.end
		if dt, ok := t.downtime.NextStart(start); ok {
			end = min(end, dt.Span.Begin)
		}
		cc := newClock(t.downtime, start, gcd, end)
		for range casts {
			at, ok := cc.next()
			if !ok {
				break
			}
			slots = append(slots, t.slotAt(at, Dosis, false))
		}
	}

	// prepull
	slots = append(slots, slot{Action: Action{At: -gcd15, Kind: Dosis}, filled: true})
	slices.SortStableFunc(slots, func(a, b slot) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		}
		return 0
	})

	var free []int
	for i, s := range slots {
		if !s.filled {
			free = append(free, i)
		}
	}
	if len(free) < 4 {
		return r
	}
	// opener: two Dosis, then both Phlegma charges
	fill := func(i int, k ActionKind) {
		slots[i].Kind = k
		slots[i].filled = true
	}
	fill(free[0], Dosis)
	fill(free[1], Dosis)
	fill(free[2], Phlegma)
	fill(free[3], Phlegma)
	t.placePhlegma(slots, slots[free[2]].At)

	actions := make([]Action, 0, len(slots))
	for _, s := range slots {
		if s.Kind == Dosis {
			s.At += gcd15
		}
		if s.At >= t.end || t.downtime.Contains(s.At) {
			continue
		}
		actions = append(actions, s.Action)
	}
	slices.SortStableFunc(actions, func(a, b Action) int {
		switch {
		case a.At < b.At:
			return -1
		case a.At > b.At:
			return 1
		}
		return 0
	})
	r.Actions = actions
	for _, a := range actions {
		if a.Kind == EukrasianDosis {
			r.dots = append(r.dots, a)
		}
	}
	return r
}

// placePhlegma spends each charge in the free slot with the most active buffs
// between the moment it is available and the moment it would overcap, the
// earliest such slot on ties. Without a free slot in that window the charge
// goes to the first free slot after it and the recharge restarts from there.
func (t *Timeline) placePhlegma(slots []slot, clock float64) {
	for clock < t.end {
		stacked, capped := clock+PhlegmaRecharge, clock+2*PhlegmaRecharge
		best := -1
		for i, s := range slots {
			if s.At < stacked || s.filled {
				continue
			}
			if s.At > capped {
				break
			}
			if best < 0 || s.active > slots[best].active {
				best = i
			}
		}
		if best >= 0 {
			slots[best].Kind = Phlegma
			slots[best].filled = true
			clock += PhlegmaRecharge
			continue
		}

		late := -1
		for i, s := range slots {
			if !s.filled && s.At >= capped {
				late = i
				break
			}
		}
		if late < 0 {
			return
		}
		slots[late].Kind = Phlegma
		slots[late].filled = true
		clock = slots[late].At
	}
}
