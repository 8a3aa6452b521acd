// Package timespan indexes half-open time windows on the fight clock.
package timespan

import (
	"iter"
	"slices"
	"sort"
)

// Timespan is the half-open window [Begin, End), in seconds.
type Timespan struct {
	Begin float64 `json:"begin" mapstructure:"begin"`
	End   float64 `json:"end" mapstructure:"end" validate:"gtfield=Begin"`
}

// Offset returns the window translated by d.
func (s Timespan) Offset(d float64) Timespan {
	return Timespan{Begin: s.Begin + d, End: s.End + d}
}

func (s Timespan) Contains(t float64) bool {
	return s.Begin <= t && t < s.End
}

func (s Timespan) Duration() float64 {
	return s.End - s.Begin
}

type Entry[T any] struct {
	Span  Timespan
	Value T
}

// Search answers containment and next-start queries over a set of windows.
// Entries are kept ordered by begin, then end. A Search must not be pushed
// to while it is being queried.
type Search[T any] struct {
	entries []Entry[T]
}

func New[T any]() *Search[T] {
	return &Search[T]{}
}

// FromSpans builds an index of bare windows.
func FromSpans(spans ...Timespan) *Search[struct{}] {
	s := New[struct{}]()
	for _, span := range spans {
		s.Push(span, struct{}{})
	}
	return s
}

// Push adds a window. Empty or inverted windows are dropped.
func (s *Search[T]) Push(span Timespan, v T) {
	if span.End <= span.Begin {
		return
	}
	i := sort.Search(len(s.entries), func(i int) bool {
		e := s.entries[i].Span
		return e.Begin > span.Begin || (e.Begin == span.Begin && e.End > span.End)
	})
	s.entries = slices.Insert(s.entries, i, Entry[T]{Span: span, Value: v})
}

func (s *Search[T]) Len() int {
	return len(s.entries)
}

// started returns how many windows begin at or before t.
func (s *Search[T]) started(t float64) int {
	return sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Span.Begin > t
	})
}

// Spans returns the windows containing t, ordered by begin.
func (s *Search[T]) Spans(t float64) []Entry[T] {
	var out []Entry[T]
	for _, e := range s.entries[:s.started(t)] {
		if t < e.Span.End {
			out = append(out, e)
		}
	}
	return out
}

// Contains reports whether any window contains t.
func (s *Search[T]) Contains(t float64) bool {
	for _, e := range s.entries[:s.started(t)] {
		if t < e.Span.End {
			return true
		}
	}
	return false
}

// Count returns how many windows contain t.
func (s *Search[T]) Count(t float64) int {
	n := 0
	for _, e := range s.entries[:s.started(t)] {
		if t < e.Span.End {
			n++
		}
	}
	return n
}

// NextStart returns the earliest window beginning at or after t.
func (s *Search[T]) NextStart(t float64) (Entry[T], bool) {
	i := sort.Search(len(s.entries), func(i int) bool {
		return s.entries[i].Span.Begin >= t
	})
	if i == len(s.entries) {
		return Entry[T]{}, false
	}
	return s.entries[i], true
}

// All yields every entry ordered by begin.
func (s *Search[T]) All() iter.Seq[Entry[T]] {
	return slices.Values(s.entries)
}

// Boundaries returns every distinct begin and end, ascending.
func (s *Search[T]) Boundaries() []float64 {
	out := make([]float64, 0, 2*len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Span.Begin, e.Span.End)
	}
	slices.Sort(out)
	return slices.Compact(out)
}
