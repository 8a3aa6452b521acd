package evaluator

import "github.com/FlatBartender/bis-solver/internal/timespan"

// clock walks the fight in fixed steps, jumping over downtime.
type clock struct {
	downtime *timespan.Search[struct{}]
	current  float64
	step     float64
	end      float64
}

func newClock(downtime *timespan.Search[struct{}], start, step, end float64) *clock {
	return &clock{downtime: downtime, current: start, step: step, end: end}
}

// skip moves t to the end of any downtime window containing it.
func (c *clock) skip(t float64) float64 {
	for _, e := range c.downtime.Spans(t) {
		t = max(t, e.Span.End)
	}
	return t
}

// next returns the current instant and advances by one step.
func (c *clock) next() (float64, bool) {
	if c.current > c.end {
		return 0, false
	}
	t := c.current
	c.current = c.skip(c.current + c.step)
	return t, true
}

// nextWindow is next for a buff lasting d. A buff that would expire during
// downtime is held until that downtime ends.
func (c *clock) nextWindow(d float64) (float64, bool) {
	if c.downtime.Contains(c.current + d) {
		c.current = c.skip(c.current + d)
	}
	return c.next()
}

// all yields every remaining instant.
func (c *clock) all(yield func(float64) bool) {
	for {
		t, ok := c.next()
		if !ok || !yield(t) {
			return
		}
	}
}
