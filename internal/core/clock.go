package core

import "time"

// TickClock is a manually advanced clock for fixed-step simulations.
// Games hand its Now func to time based subsystems and advance it once
// per Step, which makes simulation progress independent of wall time
// and fully reproducible in tests.
type TickClock struct {
	current time.Time
	step    time.Duration
}

// NewTickClock creates a clock advancing by one tick of the given rate.
func NewTickClock(tickRate int) *TickClock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &TickClock{
		current: time.Unix(0, 0),
		step:    time.Second / time.Duration(tickRate),
	}
}

// Now returns the current simulated time.
func (c *TickClock) Now() time.Time {
	return c.current
}

// Advance moves the clock forward by one tick.
func (c *TickClock) Advance() {
	c.current = c.current.Add(c.step)
}

// AdvanceBy moves the clock forward by an arbitrary duration.
func (c *TickClock) AdvanceBy(d time.Duration) {
	c.current = c.current.Add(d)
}
