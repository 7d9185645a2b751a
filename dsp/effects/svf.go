package effects

import (
	"math"
	"math/cmplx"

	"github.com/cwbudde/algo-ambient/dsp/core"
)

// FilterMode selects which state-variable output a filter returns.
type FilterMode int

const (
	ModeLowpass FilterMode = iota
	ModeHighpass
	ModeBandpass
)

func (m FilterMode) String() string {
	switch m {
	case ModeLowpass:
		return "lowpass"
	case ModeHighpass:
		return "highpass"
	case ModeBandpass:
		return "bandpass"
	default:
		return "unknown"
	}
}

const (
	minCutoffHz  = 20.0
	nyquistGuard = 100.0
	minQ         = 0.5
	maxQ         = 10.0

	// Fraction of the recurrence's stability limit g may reach.
	stabilityMargin = 0.98
)

// SVF is a two-pole Chamberlin state-variable filter. It keeps a bandpass
// and a lowpass register and produces all three responses from them:
//
//	hp = x - k·zbp - zlp
//	bp = g·hp + zbp
//	lp = g·bp + zlp
type SVF struct {
	mode       FilterMode
	sampleRate float64
	cutoff     float64
	q          float64

	g, k     float64
	zbp, zlp float64
}

// NewSVF returns a filter with cutoff clamped to [20, fs/2-100] Hz and q to
// [0.5, 10]. The sample rate comes from opts.
func NewSVF(mode FilterMode, cutoffHz, q float64, opts ...core.ProcessorOption) *SVF {
	cfg := core.ApplyProcessorOptions(opts...)
	f := &SVF{mode: mode, sampleRate: cfg.SampleRate, cutoff: cutoffHz, q: q}
	f.update()
	return f
}

func clampCutoff(cutoffHz, sampleRate float64) float64 {
	hi := sampleRate/2 - nyquistGuard
	if hi < minCutoffHz {
		hi = minCutoffHz
	}
	return core.Clamp(cutoffHz, minCutoffHz, hi)
}

// svfCoefficients returns the prewarped integrator gain and the damping.
// g is limited to the region where the explicit recurrence is stable,
// g² + 2gk < 4, which only binds for cutoffs close to Nyquist.
func svfCoefficients(cutoffHz, q, sampleRate float64) (g, k float64) {
	period := 1 / sampleRate
	wd := 2 * math.Pi * cutoffHz
	wa := (2 / period) * math.Tan(wd*period/2)
	g = wa * period / 2
	// Damping is 1/Q. The 2 - 2/Q form is not positive for Q <= 1.
	k = 1 / q

	if limit := stabilityMargin * (math.Sqrt(k*k+4) - k); g > limit {
		g = limit
	}
	return g, k
}

func (f *SVF) update() {
	f.cutoff = clampCutoff(f.cutoff, f.sampleRate)
	f.q = core.Clamp(f.q, minQ, maxQ)
	f.g, f.k = svfCoefficients(f.cutoff, f.q, f.sampleRate)
}

// SetCutoff sets the cutoff frequency in Hz.
func (f *SVF) SetCutoff(cutoffHz float64) {
	f.cutoff = cutoffHz
	f.update()
}

// SetQ sets the resonance.
func (f *SVF) SetQ(q float64) {
	f.q = q
	f.update()
}

// SetMode selects the returned response. State is kept.
func (f *SVF) SetMode(mode FilterMode) { f.mode = mode }

// SetSampleRate recomputes coefficients for sampleRate. Non-positive rates
// are ignored.
func (f *SVF) SetSampleRate(sampleRate float64) {
	if !validRate(sampleRate) {
		return
	}
	f.sampleRate = sampleRate
	f.update()
}

func (f *SVF) Cutoff() float64 { return f.cutoff }
func (f *SVF) Q() float64 { return f.q }
func (f *SVF) Mode() FilterMode { return f.mode }
func (f *SVF) SampleRate() float64 { return f.sampleRate }
func (f *SVF) Coefficients() (g, k float64) { return f.g, f.k }

// Tick runs one step of the recurrence and returns all three responses.
func (f *SVF) Tick(input float64) (lp, bp, hp float64) {
	x := core.Sanitize(input)
	hp = x - f.k*f.zbp - f.zlp
	bp = f.g*hp + f.zbp
	lp = f.g*bp + f.zlp

	f.zbp = core.FlushDenormals(core.Sanitize(bp))
	f.zlp = core.FlushDenormals(core.Sanitize(lp))
	return lp, bp, hp
}

// Process returns the configured response for one sample.
func (f *SVF) Process(input, _ float64) float64 {
	lp, bp, hp := f.Tick(input)
	switch f.mode {
	case ModeHighpass:
		return core.Sanitize(hp)
	case ModeBandpass:
		return core.Sanitize(bp)
	default:
		return core.Sanitize(lp)
	}
}

// ProcessBlock filters in into out. Coefficients follow SetSampleRate, not
// the sampleRate argument.
func (f *SVF) ProcessBlock(in, out []float64, _, _ float64) {
	for i, x := range in {
		out[i] = f.Process(x, 0)
	}
}

// Reset clears both registers.
func (f *SVF) Reset() {
	f.zbp = 0
	f.zlp = 0
}

// Response returns the magnitude of the filter's transfer function at
// freqHz for the current coefficients.
func (f *SVF) Response(freqHz float64) float64 {
	return cmplx.Abs(f.transfer(freqHz))
}

// transfer evaluates H(z) = C(zI-A)⁻¹B + D of the state-space form
// s' = A·s + B·x over s = (zbp, zlp).
func (f *SVF) transfer(freqHz float64) complex128 {
	g, k := f.g, f.k
	a11, a12 := 1-g*k, -g
	a21, a22 := g*(1-g*k), 1-g*g
	b1, b2 := g, g*g

	var c1, c2, d float64
	switch f.mode {
	case ModeHighpass:
		c1, c2, d = -k, -1, 1
	case ModeBandpass:
		c1, c2, d = a11, a12, g
	default:
		c1, c2, d = a21, a22, g*g
	}

	z := cmplx.Exp(complex(0, 2*math.Pi*freqHz/f.sampleRate))
	det := (z-complex(a11, 0))*(z-complex(a22, 0)) - complex(a12*a21, 0)
	if det == 0 {
		return complex(d, 0)
	}
	// (zI-A)⁻¹B
	s1 := ((z-complex(a22, 0))*complex(b1, 0) + complex(a12*b2, 0)) / det
	s2 := (complex(a21*b1, 0) + (z-complex(a11, 0))*complex(b2, 0)) / det
	return complex(c1, 0)*s1 + complex(c2, 0)*s2 + complex(d, 0)
}
