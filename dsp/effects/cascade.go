package effects

import "github.com/cwbudde/algo-ambient/dsp/core"

// Cascade runs two identical SVF stages in series for a steeper roll-off.
type Cascade struct {
	stages [2]SVF
}

// NewCascade returns two stages sharing mode, cutoff and resonance.
func NewCascade(mode FilterMode, cutoffHz, q float64, opts ...core.ProcessorOption) *Cascade {
	stage := NewSVF(mode, cutoffHz, q, opts...)
	return &Cascade{stages: [2]SVF{*stage, *stage}}
}

func (c *Cascade) SetCutoff(cutoffHz float64) {
	for i := range c.stages {
		c.stages[i].SetCutoff(cutoffHz)
	}
}

func (c *Cascade) SetQ(q float64) {
	for i := range c.stages {
		c.stages[i].SetQ(q)
	}
}

func (c *Cascade) SetMode(mode FilterMode) {
	for i := range c.stages {
		c.stages[i].SetMode(mode)
	}
}

func (c *Cascade) SetSampleRate(sampleRate float64) {
	for i := range c.stages {
		c.stages[i].SetSampleRate(sampleRate)
	}
}

// Stage returns stage i (0 or 1).
func (c *Cascade) Stage(i int) *SVF { return &c.stages[i] }

func (c *Cascade) Process(input, t float64) float64 {
	return c.stages[1].Process(c.stages[0].Process(input, t), t)
}

// ProcessBlock runs each stage over the whole buffer in turn.
func (c *Cascade) ProcessBlock(in, out []float64, startTime, sampleRate float64) {
	c.stages[0].ProcessBlock(in, out, startTime, sampleRate)
	c.stages[1].ProcessBlock(out, out, startTime, sampleRate)
}

func (c *Cascade) Reset() {
	for i := range c.stages {
		c.stages[i].Reset()
	}
}

// Response returns the product of both stage magnitudes at freqHz.
func (c *Cascade) Response(freqHz float64) float64 {
	return c.stages[0].Response(freqHz) * c.stages[1].Response(freqHz)
}
