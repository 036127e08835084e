package game

import "time"

// Clock measures the time elapsed between frames.
type Clock struct {
	now   func() time.Time
	prev  time.Time
	maxDT float32
}

// NewClock creates a clock reading from now (time.Now if nil). Tick results
// are clamped to [0, maxDT].
func NewClock(now func() time.Time, maxDT float32) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, prev: now(), maxDT: maxDT}
}

// Tick returns the seconds since the previous Tick (or NewClock). A clock
// that went backwards yields 0; a long stall yields maxDT.
func (c *Clock) Tick() float32 {
	t := c.now()
	dt := float32(t.Sub(c.prev).Seconds())
	c.prev = t

	if dt < 0 {
		return 0
	}
	if dt > c.maxDT {
		return c.maxDT
	}
	return dt
}

// FixedStep returns a time source that advances by step on every call.
// Headless runs use it so replays do not depend on wall time.
func FixedStep(start time.Time, step time.Duration) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(step)
		return t
	}
}
