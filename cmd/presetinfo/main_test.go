package main

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/preset"
	"github.com/cwbudde/algo-ambient/dsp/spectrum"
)

func TestAnalyzeTestTone(t *testing.T) {
	reg := preset.Default()
	b, err := reg.Build(preset.TestTone)
	if err != nil {
		t.Fatal(err)
	}

	a, err := spectrum.NewAnalyzer(4096, core.DefaultSampleRate)
	if err != nil {
		t.Fatal(err)
	}

	s, err := analyze(b, a, 1, 440)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(s.peakHz-440) > a.BinWidth() {
		t.Fatalf("peak at %v Hz, want 440", s.peakHz)
	}

	if s.tone <= 0 || s.levels.Peak > 1 {
		t.Fatalf("tone %v, peak %v", s.tone, s.levels.Peak)
	}

	if sum := s.low + s.mid + s.high; math.Abs(sum-100) > 1e-9 {
		t.Fatalf("band shares sum to %v, want 100", sum)
	}

	if s.mid < 90 {
		t.Fatalf("440 Hz tone has only %v%% in the mid band", s.mid)
	}
}

func TestPrintStats(t *testing.T) {
	reg := preset.Default()
	a, err := spectrum.NewAnalyzer(1024, core.DefaultSampleRate)
	if err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	ids := []preset.ID{preset.PinkNoise, preset.Jupiter}
	if err := printStats(&buf, reg, ids, a, 0.25, 1, math.NaN()); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}

	if !strings.HasPrefix(lines[1], "pink-noise") || !strings.Contains(lines[2], "unavailable") {
		t.Fatalf("unexpected report:\n%s", buf.String())
	}
}

func TestResolve(t *testing.T) {
	reg := preset.Default()
	if got := resolve(reg, nil); len(got) != len(reg.IDs()) {
		t.Fatalf("resolve(nil) = %d ids, want %d", len(got), len(reg.IDs()))
	}

	got := resolve(reg, []string{" Rain ", "nope"})
	if len(got) != 1 || got[0] != preset.Rain {
		t.Fatalf("resolve = %v, want [rain]", got)
	}
}
