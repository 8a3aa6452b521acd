package timespan_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FlatBartender/bis-solver/internal/timespan"
)

func TestSpansHalfOpen(t *testing.T) {
	s := timespan.FromSpans(timespan.Timespan{Begin: 0, End: 10}, timespan.Timespan{Begin: 20, End: 30})

	assert.NotEmpty(t, s.Spans(5))
	assert.Empty(t, s.Spans(15))

	assert.True(t, s.Contains(0), "begin is inside")
	assert.False(t, s.Contains(10), "end is outside")
	assert.True(t, s.Contains(29.99))
	assert.False(t, s.Contains(-1))
}

func TestOverlappingValues(t *testing.T) {
	s := timespan.New[string]()
	s.Push(timespan.Timespan{Begin: 6.5, End: 26.5}, "dnc")
	s.Push(timespan.Timespan{Begin: 2.5, End: 32.5}, "smn")
	s.Push(timespan.Timespan{Begin: 30, End: 30}, "empty")

	require.Equal(t, 2, s.Len())
	got := s.Spans(10)
	require.Len(t, got, 2)
	assert.Equal(t, "smn", got[0].Value)
	assert.Equal(t, "dnc", got[1].Value)
	assert.Equal(t, 1, s.Count(30))
	assert.Equal(t, []float64{2.5, 6.5, 26.5, 32.5}, s.Boundaries())
}

func TestNextStart(t *testing.T) {
	s := timespan.FromSpans(
		timespan.Timespan{Begin: 100, End: 120},
		timespan.Timespan{Begin: 40, End: 50},
	)

	e, ok := s.NextStart(0)
	require.True(t, ok)
	assert.Equal(t, 40.0, e.Span.Begin)

	e, ok = s.NextStart(40)
	require.True(t, ok)
	assert.Equal(t, 40.0, e.Span.Begin, "a window starting at t counts")

	e, ok = s.NextStart(41)
	require.True(t, ok)
	assert.Equal(t, 100.0, e.Span.Begin)

	_, ok = s.NextStart(101)
	assert.False(t, ok)
}

func TestOffset(t *testing.T) {
	span := timespan.Timespan{Begin: 1, End: 3}.Offset(120)
	assert.Equal(t, timespan.Timespan{Begin: 121, End: 123}, span)
	assert.Equal(t, 2.0, span.Duration())
}
