package generator

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/signal"
)

// MaxLFORate bounds modulator rates in Hz.
const MaxLFORate = 20.0

// LFO is a low-frequency sine or triangle modulator in [-depth, depth].
type LFO struct {
	shape Shape
	rate  float64
	depth float64
	phase float64
	clk   clock
}

// NewLFO clamps rateHz to [0, MaxLFORate] and depth to [0, 1]. Shapes other
// than ShapeTriangle produce a sine.
func NewLFO(shape Shape, rateHz, depth float64) *LFO {
	if shape != ShapeTriangle {
		shape = ShapeSine
	}
	l := &LFO{shape: shape}
	l.SetRate(rateHz)
	l.SetDepth(depth)
	return l
}

func (l *LFO) SetRate(rateHz float64) { l.rate = core.Clamp(rateHz, 0, MaxLFORate) }
func (l *LFO) SetDepth(depth float64) { l.depth = core.Clamp(depth, 0, 1) }

// Value advances to t and returns depth·wave.
func (l *LFO) Value(t float64) float64 {
	l.phase = advancePhase(l.phase, l.rate*l.clk.step(t))
	return l.depth * waveform(l.shape, l.phase)
}

// UnipolarLFO maps a unit sine LFO into [min, max].
type UnipolarLFO struct {
	lfo      LFO
	min, max float64
}

// NewUnipolarLFO starts at the midpoint of [min, max], rising. Reversed
// bounds are swapped.
func NewUnipolarLFO(rateHz, min, max float64) *UnipolarLFO {
	if min > max {
		min, max = max, min
	}
	u := &UnipolarLFO{min: min, max: max}
	u.lfo.shape = ShapeSine
	u.lfo.SetRate(rateHz)
	u.lfo.SetDepth(1)
	return u
}

func (u *UnipolarLFO) Value(t float64) float64 {
	return u.min + (u.max-u.min)*(0.5+0.5*u.lfo.Value(t))
}

// Wander picks a new random target rateHz times per second and glides
// toward it with a one-pole smoother of time constant smoothing seconds.
type Wander struct {
	rng       *rand.Rand
	rate      float64
	smoothing float64
	target    float64
	value     float64
	phase     float64
	clk       clock
}

// NewWander clamps rateHz to [0, MaxLFORate] and smoothing to [0, 60] s.
func NewWander(seed int64, rateHz, smoothing float64) *Wander {
	w := &Wander{
		rng:       newRand(seed),
		rate:      core.Clamp(rateHz, 0, MaxLFORate),
		smoothing: core.Clamp(smoothing, 0, 60),
	}
	w.target = w.rng.Float64()*2 - 1
	return w
}

// Value returns the smoothed wander in [-1, 1].
func (w *Wander) Value(t float64) float64 {
	dt := w.clk.step(t)
	w.phase += w.rate * dt
	if w.phase >= 1 {
		w.phase -= math.Floor(w.phase)
		w.target = w.rng.Float64()*2 - 1
	}

	if w.smoothing <= 0 {
		w.value = w.target
	} else if dt > 0 {
		w.value += (w.target - w.value) * (1 - math.Exp(-dt/w.smoothing))
	}
	return w.value
}

// Drift is a slow bounded random walk. Its position moves by at most
// rateHz·dt per evaluation and stays inside [-amount, amount].
type Drift struct {
	rng    *rand.Rand
	rate   float64
	amount float64
	value  float64
	clk    clock
}

// NewDrift clamps rateHz to [0, MaxLFORate] and amount to [0, 1].
func NewDrift(seed int64, rateHz, amount float64) *Drift {
	return &Drift{
		rng:    newRand(seed),
		rate:   core.Clamp(rateHz, 0, MaxLFORate),
		amount: core.Clamp(amount, 0, 1),
	}
}

func (d *Drift) Value(t float64) float64 {
	dt := d.clk.step(t)
	if dt > 0 {
		d.value += (d.rng.Float64()*2 - 1) * d.rate * dt
		d.value = core.Clamp(d.value, -d.amount, d.amount)
	}
	return d.value
}

// AverageLFO returns the sum of lfos divided by their count. Nil entries
// are skipped; with no entries the result is silence.
func AverageLFO(lfos ...signal.Signal) signal.Signal {
	kept := make([]signal.Signal, 0, len(lfos))
	for _, l := range lfos {
		if l != nil {
			kept = append(kept, l)
		}
	}
	if len(kept) == 0 {
		return signal.Silence
	}
	inv := 1 / float64(len(kept))
	return signal.Func(func(t float64) float64 {
		var acc float64
		for _, l := range kept {
			acc += l.Value(t)
		}
		return acc * inv
	})
}
