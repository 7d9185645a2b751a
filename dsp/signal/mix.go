package signal

import "math"

type sum []Signal

func (s sum) ResetEffects() {
	for _, x := range s {
		ResetEffects(x)
	}
}

func (s sum) Value(t float64) float64 {
	var acc float64
	for _, x := range s {
		acc += x.Value(t)
	}
	return acc
}

// Sum adds all signals without weighting. An empty list is silence.
func Sum(signals ...Signal) Signal {
	out := make(sum, 0, len(signals))
	for _, s := range signals {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

type weighted struct {
	a, b   Signal
	wa, wb float64
}

func (w weighted) ResetEffects() {
	ResetEffects(w.a)
	ResetEffects(w.b)
}

func (w weighted) Value(t float64) float64 {
	return w.a.Value(t)*w.wa + w.b.Value(t)*w.wb
}

// Weighted returns a*wa + b*wb.
func Weighted(a Signal, wa float64, b Signal, wb float64) Signal {
	return weighted{a: orSilence(a), b: orSilence(b), wa: wa, wb: wb}
}

// Layer is one weighted input of Mix.
type Layer struct {
	Signal Signal
	Weight float64
}

type mix []Layer

func (m mix) ResetEffects() {
	for i := range m {
		ResetEffects(m[i].Signal)
	}
}

func (m mix) Value(t float64) float64 {
	var acc float64
	for i := range m {
		acc += m[i].Signal.Value(t) * m[i].Weight
	}
	return acc
}

// Mix returns the weighted sum of layers. Weights are expected to sum to 1
// but this is not enforced.
func Mix(layers ...Layer) Signal {
	out := make(mix, 0, len(layers))
	for _, l := range layers {
		if l.Signal != nil {
			out = append(out, l)
		}
	}
	return out
}

type crossfade struct {
	a, b, fade Signal
}

func (c crossfade) ResetEffects() {
	ResetEffects(c.a)
	ResetEffects(c.b)
	ResetEffects(c.fade)
}

func (c crossfade) Value(t float64) float64 {
	va := c.a.Value(t)
	vb := c.b.Value(t)
	f := c.fade.Value(t)

	switch {
	case f <= 0 || math.IsNaN(f):
		return va
	case f >= 1:
		return vb
	default:
		return va*(1-f) + vb*f
	}
}

// Crossfade blends a into b: a*(1-f) + b*f where f = fade(t) clamped to
// [0, 1]. Both inputs are evaluated every sample so their internal state
// advances identically whatever the fade position; at f=0 the result is
// exactly a and at f=1 exactly b.
func Crossfade(a, b, fade Signal) Signal {
	return crossfade{a: orSilence(a), b: orSilence(b), fade: orSilence(fade)}
}
