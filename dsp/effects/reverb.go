package effects

import (
	"math"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/delay"
)

const (
	reverbNumCombs     = 8
	reverbNumAllpasses = 4

	reverbFixedGain = 0.015
	reverbWetScale  = 3.0

	reverbAllpassFeedback = 0.5
	reverbMaxFeedback     = 0.97
	reverbMaxDecay        = 0.98
	reverbMaxPreDelay     = 0.25

	// Tunings are calibrated for 44.1 kHz and scaled to the running rate.
	reverbTuningRate = 44100.0
)

var (
	reverbCombTunings    = [reverbNumCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	reverbAllpassTunings = [reverbNumAllpasses]int{556, 441, 341, 225}
)

// ReverbParams configures a Reverb. Every field is clamped on assignment.
type ReverbParams struct {
	RoomSize float64 // [0, 1]
	Damping  float64 // [0, 1]
	Decay    float64 // [0, 0.98]
	Mix      float64 // wet share, [0, 1]
	PreDelay float64 // seconds, [0, 0.25]
}

// DefaultReverbParams returns a medium room with a moderate tail.
func DefaultReverbParams() ReverbParams {
	return ReverbParams{
		RoomSize: 0.5,
		Damping:  0.5,
		Decay:    0.85,
		Mix:      0.3,
		PreDelay: 0.02,
	}
}

func (p ReverbParams) clamped() ReverbParams {
	return ReverbParams{
		RoomSize: core.Clamp(p.RoomSize, 0, 1),
		Damping:  core.Clamp(p.Damping, 0, 1),
		Decay:    core.Clamp(p.Decay, 0, reverbMaxDecay),
		Mix:      core.Clamp(p.Mix, 0, 1),
		PreDelay: core.Clamp(p.PreDelay, 0, reverbMaxPreDelay),
	}
}

// Reverb is a Schroeder/Freeverb-style reverb: a pre-delay feeds eight
// parallel damped combs whose sum passes through four series all-passes.
type Reverb struct {
	params     ReverbParams
	sampleRate float64

	preDelay        *delay.Line
	preDelaySamples int

	combs   [reverbNumCombs]reverbComb
	allpass [reverbNumAllpasses]reverbAllpass
}

type reverbAllpass struct {
	buffer []float64
	index  int
}

func (a *reverbAllpass) process(input float64) float64 {
	bufOut := a.buffer[a.index]
	output := bufOut - input
	a.buffer[a.index] = core.FlushDenormals(input + bufOut*reverbAllpassFeedback)
	a.index++
	if a.index >= len(a.buffer) {
		a.index = 0
	}
	return output
}

func (a *reverbAllpass) reset() {
	for i := range a.buffer {
		a.buffer[i] = 0
	}
	a.index = 0
}

type reverbComb struct {
	feedback    float64
	filterStore float64
	dampA       float64
	dampB       float64
	buffer      []float64
	index       int
}

func (c *reverbComb) setDamp(v float64) {
	c.dampA = v
	c.dampB = 1 - v
}

func (c *reverbComb) process(input float64) float64 {
	output := c.buffer[c.index]
	c.filterStore = core.FlushDenormals(output*c.dampB + c.filterStore*c.dampA)
	c.buffer[c.index] = input + c.filterStore*c.feedback
	c.index++
	if c.index >= len(c.buffer) {
		c.index = 0
	}
	return output
}

func (c *reverbComb) reset() {
	for i := range c.buffer {
		c.buffer[i] = 0
	}
	c.index = 0
	c.filterStore = 0
}

func scaledTuning(samples int, sampleRate float64) int {
	n := int(math.Round(float64(samples) * sampleRate / reverbTuningRate))
	if n < 1 {
		n = 1
	}
	return n
}

// NewReverb returns a reverb for params at the sample rate in opts.
func NewReverb(params ReverbParams, opts ...core.ProcessorOption) *Reverb {
	cfg := core.ApplyProcessorOptions(opts...)
	r := &Reverb{params: params.clamped()}
	r.allocate(cfg.SampleRate)
	return r
}

func (r *Reverb) allocate(sampleRate float64) {
	r.sampleRate = sampleRate
	for i := range r.combs {
		r.combs[i] = reverbComb{buffer: make([]float64, scaledTuning(reverbCombTunings[i], sampleRate))}
	}
	for i := range r.allpass {
		r.allpass[i] = reverbAllpass{buffer: make([]float64, scaledTuning(reverbAllpassTunings[i], sampleRate))}
	}

	// The line is sized for the longest pre-delay so SetPreDelay never allocates.
	line, err := delay.New(int(math.Ceil(reverbMaxPreDelay*sampleRate)) + 1)
	if err != nil {
		panic(err)
	}
	r.preDelay = line
	r.apply()
}

func (r *Reverb) apply() {
	fb := math.Min((0.7+0.28*r.params.RoomSize)*r.params.Decay, reverbMaxFeedback)
	for i := range r.combs {
		r.combs[i].feedback = fb
		r.combs[i].setDamp(r.params.Damping)
	}
	r.preDelaySamples = int(math.Round(r.params.PreDelay * r.sampleRate))
}

// SetParams replaces every parameter at once.
func (r *Reverb) SetParams(p ReverbParams) {
	r.params = p.clamped()
	r.apply()
}

// Params returns the clamped parameters.
func (r *Reverb) Params() ReverbParams { return r.params }

// Feedback returns the comb feedback derived from room size and decay.
func (r *Reverb) Feedback() float64 { return r.combs[0].feedback }

func (r *Reverb) SetRoomSize(v float64) {
	r.params.RoomSize = core.Clamp(v, 0, 1)
	r.apply()
}

func (r *Reverb) SetDamping(v float64) {
	r.params.Damping = core.Clamp(v, 0, 1)
	r.apply()
}

func (r *Reverb) SetDecay(v float64) {
	r.params.Decay = core.Clamp(v, 0, reverbMaxDecay)
	r.apply()
}

func (r *Reverb) SetMix(v float64) {
	r.params.Mix = core.Clamp(v, 0, 1)
}

// SetPreDelay sets the pre-delay in seconds.
func (r *Reverb) SetPreDelay(seconds float64) {
	r.params.PreDelay = core.Clamp(seconds, 0, reverbMaxPreDelay)
	r.apply()
}

// SetSampleRate rescales the delay lines, which clears the tail.
func (r *Reverb) SetSampleRate(sampleRate float64) {
	if !validRate(sampleRate) || sampleRate == r.sampleRate {
		return
	}
	r.allocate(sampleRate)
}

// Reset clears all delay/filter state.
func (r *Reverb) Reset() {
	for i := range r.combs {
		r.combs[i].reset()
	}
	for i := range r.allpass {
		r.allpass[i].reset()
	}
	r.preDelay.Reset()
}

func (r *Reverb) Process(input, _ float64) float64 {
	dry := core.Sanitize(input)
	x := reverbFixedGain * r.preDelay.Tap(dry, r.preDelaySamples)

	var acc float64
	for i := range r.combs {
		acc += r.combs[i].process(x)
	}
	for i := range r.allpass {
		acc = r.allpass[i].process(acc)
	}

	mix := r.params.Mix
	return core.Sanitize(dry*(1-mix) + acc*reverbWetScale*mix)
}

func (r *Reverb) ProcessBlock(in, out []float64, _, _ float64) {
	for i, x := range in {
		out[i] = r.Process(x, 0)
	}
}
