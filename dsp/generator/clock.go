package generator

import "math"

// MaxPhaseStep is the largest time delta, in seconds, that advances a
// generator's phase. Longer gaps are treated as a pause.
const MaxPhaseStep = 0.25

// clock turns a sequence of absolute evaluation times into phase deltas.
type clock struct {
	last   float64
	primed bool
}

func (c *clock) step(t float64) float64 {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return 0
	}
	if !c.primed {
		c.primed = true
		c.last = t
		return 0
	}

	dt := t - c.last
	c.last = t
	if dt <= 0 || dt > MaxPhaseStep {
		return 0
	}
	return dt
}

func (c *clock) reset() {
	c.last = 0
	c.primed = false
}

// advancePhase adds cycles to a normalized phase and wraps it into [0, 1).
func advancePhase(phase, cycles float64) float64 {
	phase += cycles
	if phase >= 1 || phase < 0 {
		phase -= math.Floor(phase)
	}
	return phase
}
