package generator

import (
	"math"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/signal"
)

const (
	maxEnvelopeTime = 3600.0
	fadeRate        = 4.0
)

// ADSR is a linear, time-gated envelope in [0, 1]. Times are in seconds and
// clamped to [0, 3600]; Sustain is clamped to [0, 1] at evaluation time.
// The envelope is 0 until Trigger is called; Off starts the release.
type ADSR struct {
	Attack  float64
	Decay   float64
	Sustain float64
	Release float64

	triggerAt float64
	releaseAt float64
	triggered bool
	released  bool
}

// Trigger starts the attack phase at t and cancels any pending release.
func (e *ADSR) Trigger(t float64) {
	e.triggerAt = t
	e.triggered = true
	e.released = false
}

// Off starts the release phase at t. It has no effect before Trigger.
func (e *ADSR) Off(t float64) {
	if !e.triggered {
		return
	}
	if t < e.triggerAt {
		t = e.triggerAt
	}
	e.releaseAt = t
	e.released = true
}

// Active reports whether the envelope is non-zero at t.
func (e *ADSR) Active(t float64) bool {
	return e.Value(t) > 0
}

func (e *ADSR) gated(elapsed float64) float64 {
	attack := core.Clamp(e.Attack, 0, maxEnvelopeTime)
	decay := core.Clamp(e.Decay, 0, maxEnvelopeTime)
	sustain := core.Clamp(e.Sustain, 0, 1)

	switch {
	case elapsed < attack:
		return elapsed / attack
	case elapsed < attack+decay:
		return 1 - (1-sustain)*(elapsed-attack)/decay
	default:
		return sustain
	}
}

// Value returns the envelope level at t.
func (e *ADSR) Value(t float64) float64 {
	if !e.triggered || t < e.triggerAt || math.IsNaN(t) {
		return 0
	}
	if !e.released || t < e.releaseAt {
		return e.gated(t - e.triggerAt)
	}

	start := e.gated(e.releaseAt - e.triggerAt)
	release := core.Clamp(e.Release, 0, maxEnvelopeTime)
	since := t - e.releaseAt
	if since >= release {
		return 0
	}
	return start * (1 - since/release)
}

// Breathing is a cyclic envelope that rises along a half cosine for
// riseFraction of each period and falls for the rest, staying in
// [floor, 1]. It starts at floor.
type Breathing struct {
	period float64
	rise   float64
	floor  float64
	phase  float64
	clk    clock
}

// NewBreathing clamps period to [0.1, 3600] s, riseFraction to
// [0.05, 0.95] and floor to [0, 1].
func NewBreathing(period, riseFraction, floor float64) *Breathing {
	return &Breathing{
		period: core.Clamp(period, 0.1, maxEnvelopeTime),
		rise:   core.Clamp(riseFraction, 0.05, 0.95),
		floor:  core.Clamp(floor, 0, 1),
	}
}

func (b *Breathing) Value(t float64) float64 {
	b.phase = advancePhase(b.phase, b.clk.step(t)/b.period)

	var shape float64
	if b.phase < b.rise {
		shape = 0.5 - 0.5*math.Cos(math.Pi*b.phase/b.rise)
	} else {
		shape = 0.5 + 0.5*math.Cos(math.Pi*(b.phase-b.rise)/(1-b.rise))
	}
	return b.floor + (1-b.floor)*shape
}

// Fade is an exponential fade envelope over [start, start+duration].
// A fade-in follows 1-e^(-4p) and a fade-out e^(-4p), where p is the
// progress in [0, 1). Outside the window the value snaps to the endpoint.
type Fade struct {
	Start    float64
	Duration float64
	In       bool
}

// FadeIn returns a fade from 0 to 1.
func FadeIn(start, duration float64) *Fade {
	return &Fade{Start: start, Duration: math.Max(duration, 0), In: true}
}

// FadeOut returns a fade from 1 to 0.
func FadeOut(start, duration float64) *Fade {
	return &Fade{Start: start, Duration: math.Max(duration, 0)}
}

// Done reports whether t is past the end of the fade.
func (f *Fade) Done(t float64) bool {
	return t >= f.Start+f.Duration
}

func (f *Fade) Value(t float64) float64 {
	switch {
	case t < f.Start:
		if f.In {
			return 0
		}
		return 1
	case f.Done(t) || f.Duration <= 0:
		if f.In {
			return 1
		}
		return 0
	}

	p := (t - f.Start) / f.Duration
	if f.In {
		return 1 - math.Exp(-fadeRate*p)
	}
	return math.Exp(-fadeRate * p)
}

// PulseSmoother follows a trigger signal with a one-pole low-pass of the
// given time constant, turning hard gates into soft swells.
type PulseSmoother struct {
	trigger signal.Signal
	tau     float64
	value   float64
	clk     clock
}

// NewPulseSmoother clamps timeConstant to [0, 60] s. A zero time constant
// passes the trigger through unchanged.
func NewPulseSmoother(trigger signal.Signal, timeConstant float64) *PulseSmoother {
	if trigger == nil {
		trigger = signal.Silence
	}
	return &PulseSmoother{trigger: trigger, tau: core.Clamp(timeConstant, 0, 60)}
}

func (p *PulseSmoother) Value(t float64) float64 {
	x := p.trigger.Value(t)
	dt := p.clk.step(t)
	if p.tau <= 0 {
		p.value = x
		return x
	}
	p.value += (x - p.value) * (1 - math.Exp(-dt/p.tau))
	return p.value
}
