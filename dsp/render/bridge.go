package render

import (
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/generator"
	"github.com/cwbudde/algo-ambient/dsp/mixer"
	"github.com/cwbudde/algo-vecmath"
)

// Pending command bits drained by the render side.
const (
	cmdStart uint32 = 1 << iota
	cmdResetEffects
)

// Fade commands travel in one word: the kind in the high half and the
// duration in milliseconds as float32 bits in the low half.
const (
	fadeNone uint64 = iota
	fadeIn
	fadeOut
	fadeClear
)

func packFade(kind uint64, ms float64) uint64 {
	return kind<<32 | uint64(math.Float32bits(float32(ms)))
}

func unpackFade(word uint64) (kind uint64, ms float64) {
	return word >> 32, float64(math.Float32frombits(uint32(word)))
}

// RenderState is the mutable render record of one bridge. Only the render
// side touches it.
type RenderState struct {
	Mixer      *mixer.Mixer
	Cursor     float64
	SampleRate float64

	fade    generator.Fade
	fading  bool
	scratch []float64
	gain    []float64
}

// Bridge drives one mixer from a host callback.
type Bridge struct {
	volume  atomic.Uint64
	pending atomic.Uint32
	fadeCmd atomic.Uint64
	running atomic.Bool
	cursor  atomic.Uint64

	state RenderState
}

// New returns a bridge that owns m, at volume 1 and the mixer's sample rate.
func New(m *mixer.Mixer) *Bridge {
	if m == nil {
		m = mixer.New()
	}
	b := &Bridge{state: RenderState{Mixer: m, SampleRate: m.SampleRate()}}
	b.volume.Store(math.Float64bits(1))
	return b
}

// AttachAndConnect sets the sample rate negotiated with the host and sizes
// the scratch buffers for blockSize frames. It must be called before the
// host starts rendering or while it is stopped; it is not safe to call
// concurrently with Render.
func (b *Bridge) AttachAndConnect(sampleRate float64, blockSize int) {
	if sampleRate > 0 && core.IsFinite(sampleRate) {
		b.state.SampleRate = sampleRate
		b.state.Mixer.SetSampleRate(sampleRate)
	}
	if blockSize > 0 {
		b.state.scratch = core.EnsureLen(b.state.scratch, blockSize)
		b.state.gain = core.EnsureLen(b.state.gain, blockSize)
	}
}

// SampleRate returns the rate set by AttachAndConnect.
func (b *Bridge) SampleRate() float64 { return b.state.SampleRate }

// Mixer returns the owned mixer. Callers must not use it while rendering.
func (b *Bridge) Mixer() *mixer.Mixer { return b.state.Mixer }

// Start marks the bridge running and rewinds the time cursor to 0 at the
// next render call.
func (b *Bridge) Start() {
	b.pending.Or(cmdStart)
	b.running.Store(true)
}

// Stop marks the bridge stopped. It does not silence output by itself.
func (b *Bridge) Stop() {
	b.running.Store(false)
}

// Running reports whether Start was called more recently than Stop.
func (b *Bridge) Running() bool { return b.running.Load() }

// SetVolume sets the linear output volume, clamped to [0, 1].
func (b *Bridge) SetVolume(v float64) {
	b.volume.Store(math.Float64bits(core.Clamp(v, 0, 1)))
}

// Volume returns the current volume.
func (b *Bridge) Volume() float64 { return math.Float64frombits(b.volume.Load()) }

// ApplyFadeIn installs a fade from 0 to 1 over durationMs, anchored at the
// time cursor of the next render call.
func (b *Bridge) ApplyFadeIn(durationMs float64) {
	b.fadeCmd.Store(packFade(fadeIn, math.Max(core.Sanitize(durationMs), 0)))
}

// ApplyFadeOut installs a fade from 1 to 0 over durationMs. Once complete
// the bridge renders silence until the fade is cleared or replaced.
func (b *Bridge) ApplyFadeOut(durationMs float64) {
	b.fadeCmd.Store(packFade(fadeOut, math.Max(core.Sanitize(durationMs), 0)))
}

// ClearFade removes any fade.
func (b *Bridge) ClearFade() {
	b.fadeCmd.Store(packFade(fadeClear, 0))
}

// ResetEffectsState resets the mixer's effect chain on the render side
// before the next block.
func (b *Bridge) ResetEffectsState() {
	b.pending.Or(cmdResetEffects)
}

// Time returns the time cursor published by the last render call.
func (b *Bridge) Time() float64 { return math.Float64frombits(b.cursor.Load()) }

// drain applies pending control commands. Called only by the render side.
func (b *Bridge) drain() {
	s := &b.state
	cmds := b.pending.Swap(0)
	if cmds&cmdStart != 0 {
		s.Cursor = 0
	}
	if cmds&cmdResetEffects != 0 {
		s.Mixer.ResetEffectsState()
	}

	word := b.fadeCmd.Swap(0)
	if word == 0 {
		return
	}
	kind, ms := unpackFade(word)
	switch kind {
	case fadeIn:
		s.fade = generator.Fade{Start: s.Cursor, Duration: ms / 1000, In: true}
		s.fading = true
	case fadeOut:
		s.fade = generator.Fade{Start: s.Cursor, Duration: ms / 1000}
		s.fading = true
	case fadeClear:
		s.fading = false
	}
}

// renderBlock renders frames mono samples into the scratch buffer and
// advances the cursor.
func (b *Bridge) renderBlock(frames int) []float64 {
	b.drain()
	s := &b.state

	s.scratch = core.EnsureLen(s.scratch, frames)
	s.gain = core.EnsureLen(s.gain, frames)
	buf := s.scratch[:frames]
	gain := s.gain[:frames]

	s.Mixer.OutputBlock(s.Cursor, s.SampleRate, buf)

	vol := b.Volume()
	if s.fading {
		for i := range gain {
			gain[i] = vol * s.fade.Value(s.Cursor+float64(i)/s.SampleRate)
		}
		if s.fade.In && s.fade.Done(s.Cursor+float64(frames)/s.SampleRate) {
			s.fading = false
		}
	} else {
		core.Fill(gain, vol)
	}
	vecmath.MulBlockInPlace(buf, gain)

	s.Cursor += float64(frames) / s.SampleRate
	b.cursor.Store(math.Float64bits(s.Cursor))
	return buf
}

// Render fills frames samples of every channel in dst with the same mono
// signal. Channels shorter than frames receive what fits.
func (b *Bridge) Render(dst [][]float32, frames int) {
	if frames <= 0 {
		b.drain()
		return
	}
	buf := b.renderBlock(frames)
	for _, ch := range dst {
		n := min(len(ch), frames)
		for i := 0; i < n; i++ {
			ch[i] = float32(core.SanitizeClamp(buf[i]))
		}
	}
}

// RenderInterleaved fills dst with len(dst)/channels frames, writing each
// sample to every channel of its frame.
func (b *Bridge) RenderInterleaved(dst []float32, channels int) {
	if channels <= 0 {
		return
	}
	frames := len(dst) / channels
	if frames == 0 {
		b.drain()
		return
	}
	buf := b.renderBlock(frames)
	for i, x := range buf {
		v := float32(core.SanitizeClamp(x))
		frame := dst[i*channels : (i+1)*channels]
		for c := range frame {
			frame[c] = v
		}
	}
}
