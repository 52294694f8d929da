package sim

import "math"

// microsPerStep is the clock resolution: one step is split into this many
// integer micro-ticks so accumulation is exact and partition independent.
const microsPerStep = 1_000_000

// maxStepsPerFrame bounds how much simulated time one callback may add:
// the regular step plus one catch-up step.
const maxStepsPerFrame = 2

// Clock turns raw frame deltas into a whole number of fixed steps.
type Clock struct {
	rate  float64 // steps per second
	acc   int64   // accumulated micro-ticks
	steps int64   // steps consumed since creation
}

// NewClock creates a clock running at tickRate steps per second.
func NewClock(tickRate int) *Clock {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Clock{rate: float64(tickRate)}
}

// Step returns the fixed step length in seconds.
func (c *Clock) Step() float64 {
	return 1 / c.rate
}

// Advance adds rawDelta seconds and returns how many steps are due.
// Negative and non-finite deltas add nothing.
func (c *Clock) Advance(rawDelta float64) int {
	if !(rawDelta > 0) || math.IsInf(rawDelta, 0) {
		rawDelta = 0
	}
	q := int64(math.Round(math.Min(rawDelta*c.rate, maxStepsPerFrame) * microsPerStep))
	c.acc += q

	n := c.acc / microsPerStep
	c.acc -= n * microsPerStep
	c.steps += n
	return int(n)
}

// Pending returns the accumulated fraction of a step in micro-ticks.
func (c *Clock) Pending() int64 {
	return c.acc
}

// Steps returns how many steps the clock has produced.
func (c *Clock) Steps() int64 {
	return c.steps
}

// Reset drops any accumulated time.
func (c *Clock) Reset() {
	c.acc = 0
}
