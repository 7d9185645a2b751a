package spectrum

import (
	"fmt"
	"math"
)

// Goertzel reads the level of one frequency from a stream of samples.
//
// The meter accumulates every sample passed to it since the last Reset.
// Amplitude is exact for a sinusoid that completes an integer number of
// cycles over the processed block and leaks otherwise.
type Goertzel struct {
	frequency  float64
	sampleRate float64
	coeff      float64
	s0, s1     float64
	n          int
}

// NewGoertzel returns a meter for frequency, which must lie in
// [0, sampleRate/2].
func NewGoertzel(frequency, sampleRate float64) (*Goertzel, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("spectrum: goertzel sample rate must be > 0: %v", sampleRate)
	}

	if frequency < 0 || frequency > sampleRate/2 || math.IsNaN(frequency) {
		return nil, fmt.Errorf("spectrum: goertzel frequency must be in [0, %v]: %v", sampleRate/2, frequency)
	}

	return &Goertzel{
		frequency:  frequency,
		sampleRate: sampleRate,
		coeff:      2 * math.Cos(2*math.Pi*frequency/sampleRate),
	}, nil
}

// Frequency returns the measured frequency in Hz.
func (g *Goertzel) Frequency() float64 { return g.frequency }

// Samples returns how many samples were accumulated since the last Reset.
func (g *Goertzel) Samples() int { return g.n }

// Reset clears the accumulated state.
func (g *Goertzel) Reset() {
	g.s0, g.s1, g.n = 0, 0, 0
}

// ProcessSample accumulates one sample.
func (g *Goertzel) ProcessSample(x float64) {
	s := x + g.coeff*g.s0 - g.s1
	g.s1 = g.s0
	g.s0 = s
	g.n++
}

// ProcessBlock accumulates a block of samples.
func (g *Goertzel) ProcessBlock(input []float64) {
	s0, s1, coeff := g.s0, g.s1, g.coeff
	for _, x := range input {
		s0, s1 = x+coeff*s0-s1, s0
	}

	g.s0, g.s1 = s0, s1
	g.n += len(input)
}

// Power returns |X|^2 for the accumulated block.
func (g *Goertzel) Power() float64 {
	p := g.s0*g.s0 + g.s1*g.s1 - g.coeff*g.s0*g.s1
	if p < 0 {
		return 0
	}

	return p
}

// Amplitude returns the peak amplitude of the tone, 2|X|/N.
func (g *Goertzel) Amplitude() float64 {
	if g.n == 0 {
		return 0
	}

	return 2 * math.Sqrt(g.Power()) / float64(g.n)
}

// ToneAmplitude measures the amplitude of frequency over the whole of input.
func ToneAmplitude(input []float64, frequency, sampleRate float64) (float64, error) {
	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}

	g.ProcessBlock(input)

	return g.Amplitude(), nil
}
