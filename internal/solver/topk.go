package solver

import (
	"container/heap"
	"slices"

	"github.com/FlatBartender/bis-solver/internal/gear"
)

type scored struct {
	set  gear.Gearset
	dps  float64
	hash uint64
}

// minHeap keeps the weakest kept candidate on top.
type minHeap []scored

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i].dps < h[j].dps }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(scored)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// topK keeps the k best candidates seen so far in O(log k) per candidate.
// Identical gearsets (same items with the ring pair unordered, same food,
// melds and base) are kept once; distinct gearsets with equal DPS both stay.
type topK struct {
	k    int
	h    minHeap
	seen map[uint64]struct{}
}

// preallocated bounds the up front allocation for very wide beams.
const preallocated = 1024

func newTopK(k int) *topK {
	n := min(max(k, 0), preallocated)
	return &topK{k: k, h: make(minHeap, 0, n), seen: make(map[uint64]struct{}, n)}
}

func (t *topK) push(s scored) {
	if t.k <= 0 {
		return
	}
	if _, dup := t.seen[s.hash]; dup {
		return
	}
	if len(t.h) < t.k {
		heap.Push(&t.h, s)
		t.seen[s.hash] = struct{}{}
		return
	}
	if s.dps <= t.h[0].dps {
		return
	}
	delete(t.seen, t.h[0].hash)
	t.h[0] = s
	t.seen[s.hash] = struct{}{}
	heap.Fix(&t.h, 0)
}

func (t *topK) merge(o *topK) {
	for _, s := range o.h {
		t.push(s)
	}
}

// best returns the kept candidates, highest DPS first.
func (t *topK) best() []scored {
	out := slices.Clone(t.h)
	slices.SortStableFunc(out, func(a, b scored) int {
		switch {
		case a.dps > b.dps:
			return -1
		case a.dps < b.dps:
			return 1
		}
		return 0
	})
	return out
}

func gearsets(s []scored) []gear.Gearset {
	out := make([]gear.Gearset, len(s))
	for i := range s {
		out[i] = s[i].set
	}
	return out
}
