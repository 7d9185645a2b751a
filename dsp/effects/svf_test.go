package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/internal/testutil"
)

func TestSVFChamberlinIdentity(t *testing.T) {
	for _, mode := range []FilterMode{ModeLowpass, ModeHighpass, ModeBandpass} {
		t.Run(mode.String(), func(t *testing.T) {
			f := NewSVF(mode, 1200, 2, core.WithSampleRate(48000))
			_, k := f.Coefficients()
			for i, x := range testutil.DeterministicNoise(3, 1, 4096) {
				zbp, zlp := f.zbp, f.zlp
				lp, bp, hp := f.Tick(x)
				if d := math.Abs(x - (hp + k*zbp + zlp)); d > 1e-12 {
					t.Fatalf("sample %d: identity off by %g", i, d)
				}
				if f.zbp != bp || f.zlp != lp {
					t.Fatalf("sample %d: registers not updated from outputs", i)
				}
			}
		})
	}
}

func TestSVFParameterClamping(t *testing.T) {
	tests := []struct {
		name              string
		cutoff, q         float64
		wantCutoff, wantQ float64
	}{
		{"low cutoff", 5, 1, 20, 1},
		{"high cutoff", 1e6, 1, 23900, 1},
		{"low q", 1000, 0.1, 1000, 0.5},
		{"high q", 1000, 50, 1000, 10},
		{"nan", math.NaN(), math.NaN(), 20, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewSVF(ModeLowpass, tt.cutoff, tt.q, core.WithSampleRate(48000))
			if f.Cutoff() != tt.wantCutoff || f.Q() != tt.wantQ {
				t.Fatalf("got cutoff=%v q=%v, want %v %v", f.Cutoff(), f.Q(), tt.wantCutoff, tt.wantQ)
			}
		})
	}
}

func TestSVFStableAtExtremes(t *testing.T) {
	noise := testutil.DeterministicNoise(9, 1, 48000)
	for _, q := range []float64{0.5, 10} {
		for _, mode := range []FilterMode{ModeLowpass, ModeHighpass, ModeBandpass} {
			f := NewSVF(mode, 1e6, q, core.WithSampleRate(48000))
			out := make([]float64, len(noise))
			f.ProcessBlock(noise, out, 0, 48000)
			testutil.RequireFinite(t, out)
			testutil.RequireWithin(t, out, -100, 100)
		}
	}
}

func TestSVFResponseMatchesMeasurement(t *testing.T) {
	const fs = 48000.0
	for _, mode := range []FilterMode{ModeLowpass, ModeHighpass, ModeBandpass} {
		for _, freq := range []float64{200, 1000, 5000} {
			f := NewSVF(mode, 1000, 0.707, core.WithSampleRate(fs))
			in := testutil.DeterministicSine(freq, fs, 1, 24000)
			out := make([]float64, len(in))
			f.ProcessBlock(in, out, 0, fs)

			measured := math.Sqrt2 * testutil.RMS(out[12000:])
			want := f.Response(freq)
			if math.Abs(measured-want) > 0.01*math.Max(want, 0.01) {
				t.Fatalf("%s at %v Hz: measured %v, response %v", mode, freq, measured, want)
			}
		}
	}
}

func TestSVFLowpassPassesDC(t *testing.T) {
	f := NewSVF(ModeLowpass, 500, 0.707, core.WithSampleRate(48000))
	if r := f.Response(0); math.Abs(r-1) > 1e-9 {
		t.Fatalf("DC response = %v, want 1", r)
	}
	var y float64
	for i := 0; i < 48000; i++ {
		y = f.Process(1, 0)
	}
	if math.Abs(y-1) > 1e-6 {
		t.Fatalf("settled DC output = %v, want 1", y)
	}
}

func TestSVFNonFiniteInput(t *testing.T) {
	f := NewSVF(ModeBandpass, 800, 1)
	if got := f.Process(math.NaN(), 0); got != 0 {
		t.Fatalf("Process(NaN) = %v, want 0", got)
	}
	f.Process(math.Inf(1), 0)
	if math.IsNaN(f.zbp) || math.IsInf(f.zlp, 0) {
		t.Fatalf("state poisoned: zbp=%v zlp=%v", f.zbp, f.zlp)
	}
}

func TestSVFSetSampleRate(t *testing.T) {
	f := NewSVF(ModeLowpass, 20000, 1, core.WithSampleRate(48000))
	f.SetSampleRate(22050)
	if got, want := f.Cutoff(), 22050.0/2-100; got != want {
		t.Fatalf("cutoff after rate change = %v, want %v", got, want)
	}
	f.SetSampleRate(0)
	if f.SampleRate() != 22050 {
		t.Fatalf("invalid rate applied: %v", f.SampleRate())
	}
}

func TestCascadeSteeperRollOff(t *testing.T) {
	single := NewSVF(ModeLowpass, 1000, 0.707, core.WithSampleRate(48000))
	cascade := NewCascade(ModeLowpass, 1000, 0.707, core.WithSampleRate(48000))

	prevSingle, prevCascade := single.Response(2000), cascade.Response(2000)
	for _, freq := range []float64{4000, 8000, 16000} {
		s, c := single.Response(freq), cascade.Response(freq)
		if c >= s {
			t.Fatalf("at %v Hz cascade %v not below single %v", freq, c, s)
		}
		slopeSingle := core.LinearToDB(prevSingle) - core.LinearToDB(s)
		slopeCascade := core.LinearToDB(prevCascade) - core.LinearToDB(c)
		if slopeCascade <= slopeSingle {
			t.Fatalf("octave below %v Hz: cascade slope %v dB not steeper than %v dB", freq, slopeCascade, slopeSingle)
		}
		prevSingle, prevCascade = s, c
	}

	in := testutil.DeterministicSine(6000, 48000, 1, 9600)
	a := make([]float64, len(in))
	b := make([]float64, len(in))
	single.ProcessBlock(in, a, 0, 48000)
	cascade.ProcessBlock(in, b, 0, 48000)
	if testutil.RMS(b[4800:]) >= testutil.RMS(a[4800:]) {
		t.Fatal("cascade attenuates a 6 kHz tone less than a single stage")
	}
}

func TestCascadeSettersFanOut(t *testing.T) {
	c := NewCascade(ModeLowpass, 1000, 1)
	c.SetCutoff(3000)
	c.SetQ(4)
	c.SetMode(ModeHighpass)
	for i := 0; i < 2; i++ {
		s := c.Stage(i)
		if s.Cutoff() != 3000 || s.Q() != 4 || s.Mode() != ModeHighpass {
			t.Fatalf("stage %d: %v %v %v", i, s.Cutoff(), s.Q(), s.Mode())
		}
	}
}

func TestSmoothedSVFGlides(t *testing.T) {
	s := NewSmoothedSVF(ModeLowpass, 500, 0.707, 0.05, core.WithSampleRate(48000))
	s.SetCutoff(4000)

	s.Process(0, 0)
	if c := s.Cutoff(); c <= 500 || c >= 4000 {
		t.Fatalf("cutoff after one sample = %v, want between", c)
	}
	for i := 0; i < 48000; i++ {
		s.Process(0, 0)
	}
	if c := s.Filter().Cutoff(); math.Abs(c-4000) > 4000*1e-3 {
		t.Fatalf("filter cutoff after 1 s = %v, want ~4000", c)
	}
}

func TestSmoothedSVFZeroTimeJumps(t *testing.T) {
	s := NewSmoothedSVF(ModeLowpass, 500, 0.707, 0, core.WithSampleRate(48000))
	s.SetTarget(2000, 3)
	s.Process(0, 0)
	if s.Filter().Cutoff() != 2000 || s.Filter().Q() != 3 {
		t.Fatalf("filter = %v/%v, want 2000/3", s.Filter().Cutoff(), s.Filter().Q())
	}
}

func TestSmoothedSVFSettledMatchesPlain(t *testing.T) {
	s := NewSmoothedSVF(ModeBandpass, 900, 2, 0.02, core.WithSampleRate(48000))
	f := NewSVF(ModeBandpass, 900, 2, core.WithSampleRate(48000))
	for i, x := range testutil.DeterministicNoise(4, 1, 2048) {
		if a, b := s.Process(x, 0), f.Process(x, 0); a != b {
			t.Fatalf("sample %d: smoothed %v, plain %v", i, a, b)
		}
	}
}

func BenchmarkSVFProcessBlock(b *testing.B) {
	f := NewSVF(ModeLowpass, 1000, 0.707)
	buf := testutil.DeterministicNoise(1, 1, 512)
	b.ReportAllocs()
	b.SetBytes(int64(len(buf) * 8))
	for i := 0; i < b.N; i++ {
		f.ProcessBlock(buf, buf, 0, 48000)
	}
}
