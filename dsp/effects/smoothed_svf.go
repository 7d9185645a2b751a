package effects

import (
	"math"

	"github.com/cwbudde/algo-ambient/dsp/core"
)

const (
	smoothEpsilon     = 1e-4
	maxSmoothTimeSecs = 10.0
)

// SmoothedSVF is an SVF whose cutoff and resonance glide toward their
// targets with a one-pole smoother. Coefficients are recomputed only when
// the smoothed values have moved measurably, so a settled filter costs the
// same as a plain SVF.
//
// SmoothedSVF has no block path: smoothing advances once per sample.
type SmoothedSVF struct {
	filter SVF

	targetCutoff float64
	targetQ      float64
	cutoff       float64
	q            float64

	smoothTime float64
	coeff      float64
}

// NewSmoothedSVF returns a smoothed filter starting settled at cutoffHz and
// q. smoothTime is the glide time constant in seconds, clamped to [0, 10];
// 0 jumps straight to new targets.
func NewSmoothedSVF(mode FilterMode, cutoffHz, q, smoothTime float64, opts ...core.ProcessorOption) *SmoothedSVF {
	s := &SmoothedSVF{filter: *NewSVF(mode, cutoffHz, q, opts...)}
	s.smoothTime = core.Clamp(smoothTime, 0, maxSmoothTimeSecs)
	s.targetCutoff = s.filter.cutoff
	s.targetQ = s.filter.q
	s.cutoff = s.targetCutoff
	s.q = s.targetQ
	s.coeff = core.OnePoleCoeff(s.smoothTime, s.filter.sampleRate)
	return s
}

// SetTarget sets new cutoff and resonance targets.
func (s *SmoothedSVF) SetTarget(cutoffHz, q float64) {
	s.SetCutoff(cutoffHz)
	s.SetQ(q)
}

// SetCutoff sets the cutoff target in Hz.
func (s *SmoothedSVF) SetCutoff(cutoffHz float64) {
	s.targetCutoff = clampCutoff(cutoffHz, s.filter.sampleRate)
}

// SetQ sets the resonance target.
func (s *SmoothedSVF) SetQ(q float64) {
	s.targetQ = core.Clamp(q, minQ, maxQ)
}

// SetSampleRate updates the filter and the smoothing coefficient.
func (s *SmoothedSVF) SetSampleRate(sampleRate float64) {
	if !validRate(sampleRate) {
		return
	}
	s.filter.SetSampleRate(sampleRate)
	s.targetCutoff = clampCutoff(s.targetCutoff, sampleRate)
	s.cutoff = clampCutoff(s.cutoff, sampleRate)
	s.coeff = core.OnePoleCoeff(s.smoothTime, sampleRate)
}

// Cutoff returns the current smoothed cutoff.
func (s *SmoothedSVF) Cutoff() float64 { return s.cutoff }

// Q returns the current smoothed resonance.
func (s *SmoothedSVF) Q() float64 { return s.q }

// Target returns the cutoff and resonance targets.
func (s *SmoothedSVF) Target() (cutoffHz, q float64) { return s.targetCutoff, s.targetQ }

// Filter exposes the underlying filter for inspection.
func (s *SmoothedSVF) Filter() *SVF { return &s.filter }

func (s *SmoothedSVF) Process(input, t float64) float64 {
	s.cutoff += s.coeff * (s.targetCutoff - s.cutoff)
	s.q += s.coeff * (s.targetQ - s.q)

	if math.Abs(s.cutoff-s.filter.cutoff) > smoothEpsilon*s.filter.cutoff ||
		math.Abs(s.q-s.filter.q) > smoothEpsilon {
		s.filter.cutoff = s.cutoff
		s.filter.q = s.q
		s.filter.update()
	}
	return s.filter.Process(input, t)
}

// Reset clears filter state and settles on the current targets.
func (s *SmoothedSVF) Reset() {
	s.filter.Reset()
	s.cutoff = s.targetCutoff
	s.q = s.targetQ
	s.filter.cutoff = s.cutoff
	s.filter.q = s.q
	s.filter.update()
}
