package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/internal/testutil"
)

func firstNonZero(data []float64) int {
	for i, v := range data {
		if v != 0 {
			return i
		}
	}
	return -1
}

func impulseResponse(fx Effect, n int) []float64 {
	out := make([]float64, n)
	for i, x := range testutil.Impulse(n, 0) {
		out[i] = fx.Process(x, 0)
	}
	return out
}

func TestReverbImpulseTailExists(t *testing.T) {
	r := NewReverb(ReverbParams{RoomSize: 0.8, Damping: 0.3, Decay: 0.9, Mix: 1}, core.WithSampleRate(48000))
	out := impulseResponse(r, 48000)

	tail := testutil.RMS(out[12000:])
	if tail == 0 {
		t.Fatal("expected a reverb tail after 250 ms")
	}
	testutil.RequireFinite(t, out)
}

func TestReverbResetSilences(t *testing.T) {
	r := NewReverb(DefaultReverbParams(), core.WithSampleRate(48000))
	for _, x := range testutil.DeterministicNoise(1, 1, 20000) {
		r.Process(x, 0)
	}

	r.Reset()
	for i := 0; i < 20000; i++ {
		if got := r.Process(0, 0); got != 0 {
			t.Fatalf("sample %d after reset = %v, want 0", i, got)
		}
	}
}

func TestReverbDecaysToSilence(t *testing.T) {
	r := NewReverb(ReverbParams{RoomSize: 1, Damping: 0, Decay: 0.98, Mix: 1}, core.WithSampleRate(48000))
	if fb := r.Feedback(); fb >= 0.98 {
		t.Fatalf("feedback = %v, want < 0.98", fb)
	}

	out := impulseResponse(r, 20*48000)
	testutil.RequireFinite(t, out)
	if tail := testutil.RMS(out[len(out)-48000:]); tail > 1e-6 {
		t.Fatalf("tail RMS after 19 s = %v, want decayed", tail)
	}
}

func TestReverbPreDelayShiftsTail(t *testing.T) {
	base := ReverbParams{RoomSize: 0.5, Damping: 0.5, Decay: 0.8, Mix: 1}
	delayed := base
	delayed.PreDelay = 0.01

	a := firstNonZero(impulseResponse(NewReverb(base, core.WithSampleRate(48000)), 8192))
	b := firstNonZero(impulseResponse(NewReverb(delayed, core.WithSampleRate(48000)), 8192))
	if a < 0 || b-a != 480 {
		t.Fatalf("onsets %d and %d, want a shift of 480 samples", a, b)
	}
}

func TestReverbParamClamping(t *testing.T) {
	r := NewReverb(ReverbParams{RoomSize: 2.2, Damping: -1, Decay: 3, Mix: 7, PreDelay: 9})
	want := ReverbParams{RoomSize: 1, Damping: 0, Decay: 0.98, Mix: 1, PreDelay: 0.25}
	if got := r.Params(); got != want {
		t.Fatalf("Params = %+v, want %+v", got, want)
	}

	r.SetMix(0)
	for _, x := range []float64{0.5, -0.25, 1} {
		if got := r.Process(x, 0); got != x {
			t.Fatalf("dry-only Process(%v) = %v", x, got)
		}
	}
}

func TestReverbSampleRateScalesTunings(t *testing.T) {
	r := NewReverb(DefaultReverbParams(), core.WithSampleRate(44100))
	if got := len(r.combs[0].buffer); got != 1116 {
		t.Fatalf("comb length at 44.1 kHz = %d, want 1116", got)
	}
	r.SetSampleRate(88200)
	if got := len(r.combs[0].buffer); got != 2232 {
		t.Fatalf("comb length at 88.2 kHz = %d, want 2232", got)
	}
	r.SetSampleRate(-1)
	if r.sampleRate != 88200 {
		t.Fatalf("invalid rate was applied: %v", r.sampleRate)
	}
}

func TestReverbNonFiniteInput(t *testing.T) {
	r := NewReverb(DefaultReverbParams())
	for _, x := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := r.Process(x, 0); got != 0 {
			t.Fatalf("Process(%v) = %v, want 0", x, got)
		}
	}
	testutil.RequireFinite(t, impulseResponse(r, 4096))
}
