package chase

import "time"

// Clock turns wall-clock timestamps into a bounded frame delta.
type Clock struct {
	maxDelta float64
	last     time.Time
	started  bool
}

// NewClock creates a clock whose deltas never exceed maxDelta seconds.
func NewClock(maxDelta float64) *Clock {
	return &Clock{maxDelta: maxDelta}
}

// Reset records now as the previous frame. The next Tick measures from it.
func (c *Clock) Reset(now time.Time) {
	c.last = now
	c.started = true
}

// Tick returns min(maxDelta, now-last) in seconds and records now.
// Timestamps that go backwards yield 0. The first Tick after construction
// also yields 0.
func (c *Clock) Tick(now time.Time) float64 {
	if !c.started {
		c.Reset(now)
		return 0
	}
	d := now.Sub(c.last).Seconds()
	c.last = now
	if d < 0 {
		return 0
	}
	if d > c.maxDelta {
		return c.maxDelta
	}
	return d
}
