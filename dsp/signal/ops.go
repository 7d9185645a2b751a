package signal

import "math"

type add struct{ a, b Signal }

func (s add) Value(t float64) float64 { return s.a.Value(t) + s.b.Value(t) }

func (s add) ResetEffects() {
	ResetEffects(s.a)
	ResetEffects(s.b)
}

// Add returns a + b.
func Add(a, b Signal) Signal {
	return add{a: orSilence(a), b: orSilence(b)}
}

type mul struct{ a, b Signal }

func (s mul) Value(t float64) float64 { return s.a.Value(t) * s.b.Value(t) }

func (s mul) ResetEffects() {
	ResetEffects(s.a)
	ResetEffects(s.b)
}

// Mul returns a * b. Use it to apply envelopes and amplitude modulation.
func Mul(a, b Signal) Signal {
	return mul{a: orSilence(a), b: orSilence(b)}
}

type scale struct {
	s Signal
	k float64
}

func (s scale) Value(t float64) float64 { return s.s.Value(t) * s.k }

func (s scale) ResetEffects() { ResetEffects(s.s) }

// Scale returns s * k.
func Scale(s Signal, k float64) Signal {
	return scale{s: orSilence(s), k: k}
}

type clamp struct {
	s        Signal
	min, max float64
}

func (c clamp) ResetEffects() { ResetEffects(c.s) }

func (c clamp) Value(t float64) float64 {
	v := c.s.Value(t)
	if v < c.min || math.IsNaN(v) {
		return c.min
	}
	if v > c.max {
		return c.max
	}
	return v
}

// Clamp limits s to [min, max]. Bounds are swapped if given in reverse order;
// NaN maps to min.
func Clamp(s Signal, min, max float64) Signal {
	if min > max {
		min, max = max, min
	}
	return clamp{s: orSilence(s), min: min, max: max}
}
