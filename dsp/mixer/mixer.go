package mixer

import (
	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/effects"
	"github.com/cwbudde/algo-ambient/dsp/signal"
)

type source struct {
	sig  signal.Signal
	gain float64
}

// stage resolves an effect's optional block path once, when it is added.
type stage struct {
	fx    effects.Effect
	block effects.BlockProcessor
}

// Mixer aggregates weighted signals and an ordered effect chain.
type Mixer struct {
	sources    []source
	chain      []stage
	master     float64
	sampleRate float64
}

// New returns an empty mixer with master gain 1 at the sample rate in opts.
func New(opts ...core.ProcessorOption) *Mixer {
	cfg := core.ApplyProcessorOptions(opts...)
	return &Mixer{master: 1, sampleRate: cfg.SampleRate}
}

// AddSignal appends s with gain clamped to [0, 1]. A nil signal is ignored.
func (m *Mixer) AddSignal(s signal.Signal, gain float64) {
	if s == nil {
		return
	}
	m.sources = append(m.sources, source{sig: s, gain: core.Clamp(gain, 0, 1)})
}

// ClearSignals removes every signal.
func (m *Mixer) ClearSignals() {
	clear(m.sources)
	m.sources = m.sources[:0]
}

// SetGain changes the gain of signal i. Out-of-range indices are ignored.
func (m *Mixer) SetGain(i int, gain float64) {
	if i < 0 || i >= len(m.sources) {
		return
	}
	m.sources[i].gain = core.Clamp(gain, 0, 1)
}

// Gain returns the gain of signal i and whether i exists.
func (m *Mixer) Gain(i int) (float64, bool) {
	if i < 0 || i >= len(m.sources) {
		return 0, false
	}
	return m.sources[i].gain, true
}

// AddEffect appends fx to the end of the chain and brings it to the mixer's
// sample rate. A nil effect is ignored.
func (m *Mixer) AddEffect(fx effects.Effect) {
	if fx == nil {
		return
	}
	if rs, ok := fx.(effects.SampleRateSetter); ok {
		rs.SetSampleRate(m.sampleRate)
	}
	st := stage{fx: fx}
	if bp, ok := fx.(effects.BlockProcessor); ok {
		st.block = bp
	}
	m.chain = append(m.chain, st)
}

// ClearEffects empties the chain.
func (m *Mixer) ClearEffects() {
	clear(m.chain)
	m.chain = m.chain[:0]
}

// RemoveEffect removes effect i, keeping the order of the rest.
// Out-of-range indices are ignored.
func (m *Mixer) RemoveEffect(i int) {
	if i < 0 || i >= len(m.chain) {
		return
	}
	copy(m.chain[i:], m.chain[i+1:])
	m.chain[len(m.chain)-1] = stage{}
	m.chain = m.chain[:len(m.chain)-1]
}

// Effect returns effect i, or nil when i is out of range.
func (m *Mixer) Effect(i int) effects.Effect {
	if i < 0 || i >= len(m.chain) {
		return nil
	}
	return m.chain[i].fx
}

// SetMasterGain sets the master gain, clamped to [0, 1].
func (m *Mixer) SetMasterGain(g float64) {
	m.master = core.Clamp(g, 0, 1)
}

// MasterGain returns the master gain.
func (m *Mixer) MasterGain() float64 { return m.master }

// SetSampleRate records sampleRate and forwards it to every effect that
// depends on it. Non-positive rates are ignored.
func (m *Mixer) SetSampleRate(sampleRate float64) {
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		return
	}
	m.sampleRate = sampleRate
	for _, st := range m.chain {
		if rs, ok := st.fx.(effects.SampleRateSetter); ok {
			rs.SetSampleRate(sampleRate)
		}
	}
}

// SampleRate returns the rate effects are tuned for.
func (m *Mixer) SampleRate() float64 { return m.sampleRate }

func (m *Mixer) NumSignals() int { return len(m.sources) }
func (m *Mixer) NumEffects() int { return len(m.chain) }

// ResetEffectsState resets effects applied inside the signals, then every
// effect in chain order.
func (m *Mixer) ResetEffectsState() {
	for _, src := range m.sources {
		signal.ResetEffects(src.sig)
	}
	for _, st := range m.chain {
		st.fx.Reset()
	}
}

func (m *Mixer) mix(t float64) float64 {
	var acc float64
	for _, src := range m.sources {
		acc += src.sig.Value(t) * src.gain
	}
	return acc
}

func (m *Mixer) finish(x float64) float64 {
	return core.SanitizeClamp(x * m.master)
}

// Output returns the mixed, processed sample at t.
func (m *Mixer) Output(t float64) float64 {
	x := m.mix(t)
	for _, st := range m.chain {
		x = st.fx.Process(x, t)
	}
	return m.finish(x)
}

// OutputBlock renders len(buf) frames starting at startTime into buf.
func (m *Mixer) OutputBlock(startTime, sampleRate float64, buf []float64) {
	if len(buf) == 0 {
		return
	}
	if !(sampleRate > 0) || !core.IsFinite(sampleRate) {
		core.Zero(buf)
		return
	}

	for i := range buf {
		buf[i] = m.mix(startTime + float64(i)/sampleRate)
	}

	for _, st := range m.chain {
		if st.block != nil {
			st.block.ProcessBlock(buf, buf, startTime, sampleRate)
			continue
		}
		for i, x := range buf {
			buf[i] = st.fx.Process(x, startTime+float64(i)/sampleRate)
		}
	}

	for i, x := range buf {
		buf[i] = m.finish(x)
	}
}
