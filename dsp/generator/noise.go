package generator

import (
	"math/rand"

	"github.com/cwbudde/algo-ambient/dsp/core"
)

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// WhiteNoise draws uniform samples in [-1, 1). It ignores t; every call
// consumes one draw from its seeded source.
type WhiteNoise struct {
	rng *rand.Rand
}

// NewWhiteNoise returns deterministic white noise for seed.
func NewWhiteNoise(seed int64) *WhiteNoise {
	return &WhiteNoise{rng: newRand(seed)}
}

// Value returns the next sample.
func (n *WhiteNoise) Value(float64) float64 {
	return n.rng.Float64()*2 - 1
}

// BrownNoise is leaky-integrated white noise.
type BrownNoise struct {
	rng   *rand.Rand
	state float64
}

const (
	brownStep  = 0.02
	brownLeak  = 1.02
	brownGain  = 3.5
	pinkOutput = 0.3
)

// NewBrownNoise returns deterministic brown noise for seed.
func NewBrownNoise(seed int64) *BrownNoise {
	return &BrownNoise{rng: newRand(seed)}
}

// Value returns the next sample, clamped to [-1, 1].
func (n *BrownNoise) Value(float64) float64 {
	w := n.rng.Float64()*2 - 1
	n.state = (n.state + brownStep*w) / brownLeak
	return core.Clamp(n.state*brownGain, -1, 1)
}

// PinkNoise filters white noise through three leaky poles, giving an
// approximate -3 dB/octave slope.
type PinkNoise struct {
	rng        *rand.Rand
	b0, b1, b2 float64
}

// NewPinkNoise returns deterministic pink noise for seed.
func NewPinkNoise(seed int64) *PinkNoise {
	return &PinkNoise{rng: newRand(seed)}
}

// Value returns the next sample, clamped to [-1, 1].
func (n *PinkNoise) Value(float64) float64 {
	w := n.rng.Float64()*2 - 1
	n.b0 = 0.997*n.b0 + 0.029591*w
	n.b1 = 0.985*n.b1 + 0.032534*w
	n.b2 = 0.950*n.b2 + 0.048056*w
	return core.Clamp((n.b0+n.b1+n.b2)*pinkOutput, -1, 1)
}

// RandomWalk adds a uniform step in [-step, step] per call and stays inside
// [-1, 1].
type RandomWalk struct {
	rng   *rand.Rand
	step  float64
	value float64
}

// NewRandomWalk returns a walk starting at 0. step is clamped to [0, 0.5].
func NewRandomWalk(seed int64, step float64) *RandomWalk {
	return &RandomWalk{rng: newRand(seed), step: core.Clamp(step, 0, 0.5)}
}

// Value returns the next position.
func (w *RandomWalk) Value(float64) float64 {
	w.value = core.Clamp(w.value+(w.rng.Float64()*2-1)*w.step, -1, 1)
	return w.value
}

// BandpassNoise keeps only white samples whose value lies in [low, high]
// and smooths the survivors with a one-pole low-pass. Rejected draws hold
// the previous output.
type BandpassNoise struct {
	rng       *rand.Rand
	low, high float64
	coeff     float64
	value     float64
}

// NewBandpassNoise clamps low and high to [-1, 1] (swapping them when
// reversed) and smoothing to (0, 1]; 1 disables smoothing.
func NewBandpassNoise(seed int64, low, high, smoothing float64) *BandpassNoise {
	low = core.Clamp(low, -1, 1)
	high = core.Clamp(high, -1, 1)
	if low > high {
		low, high = high, low
	}
	return &BandpassNoise{
		rng:   newRand(seed),
		low:   low,
		high:  high,
		coeff: core.Clamp(smoothing, 1e-4, 1),
	}
}

// Value returns the next smoothed sample.
func (n *BandpassNoise) Value(float64) float64 {
	w := n.rng.Float64()*2 - 1
	if w >= n.low && w <= n.high {
		n.value += n.coeff * (w - n.value)
	}
	return n.value
}
