package preset

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/render"
	"github.com/cwbudde/algo-ambient/dsp/spectrum"
)

func synthesized(r *Registry) []ID {
	var ids []ID
	for _, id := range r.IDs() {
		if r.Available(id) {
			ids = append(ids, id)
		}
	}
	return ids
}

func renderPreset(t *testing.T, r *Registry, id ID, seconds float64, opts ...core.ProcessorOption) []float32 {
	t.Helper()
	b, err := r.Build(id, opts...)
	if err != nil {
		t.Fatalf("Build(%q): %v", id, err)
	}
	b.Start()
	return render.RenderOffline(b, seconds)
}

func TestPresetsRenderBoundedAudio(t *testing.T) {
	r := Default()
	for _, id := range synthesized(r) {
		t.Run(string(id), func(t *testing.T) {
			out := renderPreset(t, r, id, 2)
			var energy float64
			for i, v := range out {
				if math.IsNaN(float64(v)) || v < -1 || v > 1 {
					t.Fatalf("sample %d = %v", i, v)
				}
				energy += float64(v) * float64(v)
			}
			if energy == 0 {
				t.Fatal("preset rendered silence")
			}
		})
	}
}

func TestPresetsDeterministicPerSeed(t *testing.T) {
	r := Default()
	for _, id := range synthesized(r) {
		t.Run(string(id), func(t *testing.T) {
			a := renderPreset(t, r, id, 0.5, core.WithSeed(5))
			b := renderPreset(t, r, id, 0.5, core.WithSeed(5))
			for i := range a {
				if a[i] != b[i] {
					t.Fatalf("sample %d differs between identical builds", i)
				}
			}

			if id == TestTone {
				return
			}
			c := renderPreset(t, r, id, 0.5, core.WithSeed(6))
			same := true
			for i := range a {
				if a[i] != c[i] {
					same = false
					break
				}
			}
			if same {
				t.Fatal("different seeds rendered identical audio")
			}
		})
	}
}

func TestPresetsAtOtherSampleRates(t *testing.T) {
	r := Default()
	for _, fs := range []float64{22050, 44100, 96000} {
		out := renderPreset(t, r, CathedralStillness, 0.25, core.WithSampleRate(fs))
		if want := int(math.Round(0.25 * fs)); len(out) != want {
			t.Fatalf("at %v Hz rendered %d samples, want %d", fs, len(out), want)
		}
	}
}

func TestUnavailablePresets(t *testing.T) {
	r := Default()
	for _, id := range []ID{Jupiter, AcousticGymnopedie, MoonlitGymnopedie, MusicBox, Bubbles, ForestBirds, SeaAndSeagull} {
		b, err := r.Build(id)
		if b != nil || !errors.Is(err, ErrUnavailable) {
			t.Fatalf("Build(%q) = %v, %v; want ErrUnavailable", id, b, err)
		}
	}
	if _, err := r.Build("no-such-preset"); !errors.Is(err, ErrUnknownPreset) {
		t.Fatalf("unknown preset err = %v", err)
	}
}

func float64s(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}

func TestTestTonePeaksAt440(t *testing.T) {
	r := Default()
	out := float64s(renderPreset(t, r, TestTone, 1))

	a, err := spectrum.NewAnalyzer(4096, core.DefaultSampleRate)
	if err != nil {
		t.Fatal(err)
	}
	avg, err := a.Average(out)
	if err != nil {
		t.Fatal(err)
	}
	k, _ := spectrum.PeakBin(avg)
	if f := a.BinFrequency(k); math.Abs(f-440) > a.BinWidth() {
		t.Fatalf("spectral peak at %v Hz, want 440", f)
	}

	on, err := spectrum.ToneAmplitude(out, 440, core.DefaultSampleRate)
	if err != nil {
		t.Fatal(err)
	}
	off, err := spectrum.ToneAmplitude(out, 1000, core.DefaultSampleRate)
	if err != nil {
		t.Fatal(err)
	}
	if on < 10*off {
		t.Fatalf("440 Hz amplitude %v not dominant over 1 kHz %v", on, off)
	}
}

func TestBrownNoiseDarkerThanPink(t *testing.T) {
	r := Default()
	a, err := spectrum.NewAnalyzer(2048, core.DefaultSampleRate)
	if err != nil {
		t.Fatal(err)
	}

	centroid := func(id ID) float64 {
		avg, err := a.Average(float64s(renderPreset(t, r, id, 2)))
		if err != nil {
			t.Fatal(err)
		}
		return spectrum.Centroid(avg, a.BinWidth())
	}

	pink, brown := centroid(PinkNoise), centroid(BrownNoise)
	if brown >= pink {
		t.Fatalf("brown centroid %v Hz not below pink %v Hz", brown, pink)
	}
}

func BenchmarkCathedralRender(b *testing.B) {
	br, err := Default().Build(CathedralStillness)
	if err != nil {
		b.Fatal(err)
	}
	dst := [][]float32{make([]float32, 512), make([]float32, 512)}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		br.Render(dst, 512)
	}
}
