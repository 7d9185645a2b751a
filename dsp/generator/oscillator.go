package generator

import (
	"math"

	"github.com/cwbudde/algo-ambient/dsp/core"
)

const (
	// MaxFrequency bounds oscillator frequencies in Hz.
	MaxFrequency = 20000.0

	maxEnsembleVoices = 16
	maxSpreadCents    = 100.0
)

// Shape selects an oscillator waveform.
type Shape int

const (
	ShapeSine Shape = iota
	ShapeTriangle
	ShapeSaw
	ShapeSquare
)

func (s Shape) String() string {
	switch s {
	case ShapeSine:
		return "sine"
	case ShapeTriangle:
		return "triangle"
	case ShapeSaw:
		return "saw"
	case ShapeSquare:
		return "square"
	default:
		return "unknown"
	}
}

// waveform evaluates shape at a normalized phase in [0, 1). Every shape
// starts at 0 for phase 0 (square starts its high half) and stays in [-1, 1].
func waveform(shape Shape, phase float64) float64 {
	switch shape {
	case ShapeTriangle:
		switch {
		case phase < 0.25:
			return 4 * phase
		case phase < 0.75:
			return 2 - 4*phase
		default:
			return 4*phase - 4
		}
	case ShapeSaw:
		if phase < 0.5 {
			return 2 * phase
		}
		return 2*phase - 2
	case ShapeSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// Oscillator is a phase-accumulating periodic source in [-1, 1].
type Oscillator struct {
	shape Shape
	freq  float64
	phase float64
	clk   clock
}

// NewOscillator returns an oscillator at freqHz, clamped to [0, MaxFrequency].
func NewOscillator(shape Shape, freqHz float64) *Oscillator {
	o := &Oscillator{shape: shape}
	o.SetFrequency(freqHz)
	return o
}

// SetFrequency changes the frequency without resetting phase.
func (o *Oscillator) SetFrequency(freqHz float64) {
	o.freq = core.Clamp(freqHz, 0, MaxFrequency)
}

// Frequency returns the current frequency in Hz.
func (o *Oscillator) Frequency() float64 { return o.freq }

// Phase returns the normalized phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// Value advances the phase to t and returns the waveform.
func (o *Oscillator) Value(t float64) float64 {
	o.phase = advancePhase(o.phase, o.freq*o.clk.step(t))
	return waveform(o.shape, o.phase)
}

// Reset returns the oscillator to phase 0 and forgets the last time seen.
func (o *Oscillator) Reset() {
	o.phase = 0
	o.clk.reset()
}

// Ensemble is a detuned stack of identical oscillators spread in cents
// around a base frequency, normalized by the voice count.
type Ensemble struct {
	voices []Oscillator
}

// NewEnsemble spreads voices (clamped to [1, 16]) evenly across
// ±spreadCents/2 (spread clamped to [0, 100] cents) around baseHz.
func NewEnsemble(shape Shape, baseHz float64, voices int, spreadCents float64) *Ensemble {
	if voices < 1 {
		voices = 1
	}
	if voices > maxEnsembleVoices {
		voices = maxEnsembleVoices
	}
	spreadCents = core.Clamp(spreadCents, 0, maxSpreadCents)

	e := &Ensemble{voices: make([]Oscillator, voices)}
	for i := range e.voices {
		offset := 0.0
		if voices > 1 {
			offset = -spreadCents/2 + spreadCents*float64(i)/float64(voices-1)
		}
		e.voices[i].shape = shape
		e.voices[i].SetFrequency(baseHz * core.CentsToRatio(offset))
	}
	return e
}

// Voices returns the number of oscillators in the ensemble.
func (e *Ensemble) Voices() int { return len(e.voices) }

// Value returns the normalized sum of all voices.
func (e *Ensemble) Value(t float64) float64 {
	var acc float64
	for i := range e.voices {
		acc += e.voices[i].Value(t)
	}
	return acc / float64(len(e.voices))
}

// Partial is one sine component of a HarmonicVoice.
type Partial struct {
	Ratio     float64
	Amplitude float64
}

// HarmonicVoice sums sine partials of a base frequency. The sum is divided
// by the partial count, so amplitudes in [0, 1] keep the output in [-1, 1].
type HarmonicVoice struct {
	oscs []Oscillator
	amps []float64
}

// NewHarmonicVoice builds a voice from partials of baseHz. Amplitudes are
// clamped to [0, 1]; an empty partial list yields a plain sine.
func NewHarmonicVoice(baseHz float64, partials []Partial) *HarmonicVoice {
	if len(partials) == 0 {
		partials = []Partial{{Ratio: 1, Amplitude: 1}}
	}
	v := &HarmonicVoice{
		oscs: make([]Oscillator, len(partials)),
		amps: make([]float64, len(partials)),
	}
	for i, p := range partials {
		v.oscs[i].shape = ShapeSine
		v.oscs[i].SetFrequency(baseHz * p.Ratio)
		v.amps[i] = core.Clamp(p.Amplitude, 0, 1)
	}
	return v
}

// Value returns the normalized partial sum.
func (v *HarmonicVoice) Value(t float64) float64 {
	var acc float64
	for i := range v.oscs {
		acc += v.oscs[i].Value(t) * v.amps[i]
	}
	return acc / float64(len(v.oscs))
}
