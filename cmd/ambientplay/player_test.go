package main

import (
	"bytes"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-ambient/dsp/preset"
	"github.com/cwbudde/algo-ambient/internal/host"
	"github.com/cwbudde/algo-ambient/internal/playerconf"
)

func testPlayer(t *testing.T) *player {
	t.Helper()
	cfg := playerconf.Default()
	cfg.FadeInMs, cfg.FadeOutMs = 0, 0

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	p := newPlayer(preset.Default(), host.NewReader(cfg.Channels, cfg.BlockFrames), cfg, logrus.NewEntry(logger))
	if err := p.switchTo(preset.Rain); err != nil {
		t.Fatalf("switchTo: %v", err)
	}
	return p
}

func TestPlayerSwitchCommitsWithoutFade(t *testing.T) {
	p := testPlayer(t)
	if p.current != preset.Rain || p.reader.Bridge() == nil {
		t.Fatalf("current = %q, bridge = %v", p.current, p.reader.Bridge())
	}
	if !p.reader.Bridge().Running() {
		t.Fatal("committed bridge is not running")
	}
}

func TestPlayerSwitchWaitsForFadeOut(t *testing.T) {
	p := testPlayer(t)
	p.cfg.FadeOutMs = 500
	first := p.reader.Bridge()

	if err := p.switchTo(preset.TreeChime); err != nil {
		t.Fatal(err)
	}
	if p.reader.Bridge() != first || p.swapC() == nil {
		t.Fatal("switch did not wait for the fade-out")
	}

	p.commit()
	if p.current != preset.TreeChime || p.reader.Bridge() == first || p.swapC() != nil {
		t.Fatalf("after commit: current %q", p.current)
	}
	if first.Running() {
		t.Fatal("replaced bridge still running")
	}
}

func TestPlayerKeys(t *testing.T) {
	p := testPlayer(t)
	p.cfg.Volume = 0.5

	p.handleKey('+')
	if got := p.reader.Bridge().Volume(); got != 0.55 {
		t.Fatalf("volume after + = %v, want 0.55", got)
	}

	for i := 0; i < 30; i++ {
		p.handleKey('-')
	}
	if got := p.reader.Bridge().Volume(); got != 0 {
		t.Fatalf("volume floor = %v, want 0", got)
	}

	p.handleKey('n')
	if p.current == preset.Rain {
		t.Fatal("n did not advance the preset")
	}
	p.handleKey('p')
	if p.current != preset.Rain {
		t.Fatalf("p did not go back: %q", p.current)
	}

	p.handleKey(' ')
	if !p.paused {
		t.Fatal("space did not pause")
	}
	p.handleKey(' ')
	if p.paused {
		t.Fatal("space did not resume")
	}

	if !p.handleKey('q') || !p.handleKey(3) {
		t.Fatal("q and ctrl-c must quit")
	}
	if p.handleKey('x') {
		t.Fatal("unbound key quit")
	}
}

func TestPlayerStepWraps(t *testing.T) {
	p := testPlayer(t)
	last := p.ids[len(p.ids)-1]
	if err := p.switchTo(last); err != nil {
		t.Fatal(err)
	}
	if err := p.step(1); err != nil {
		t.Fatal(err)
	}
	if p.current != p.ids[0] {
		t.Fatalf("step past the end = %q, want %q", p.current, p.ids[0])
	}
	for _, id := range p.ids {
		if !p.reg.Available(id) {
			t.Fatalf("cycle includes unavailable preset %q", id)
		}
	}
}

func TestPlayerApplyConfig(t *testing.T) {
	p := testPlayer(t)
	c := p.cfg
	c.Preset = string(preset.PinkNoise)
	c.Volume = 0.25

	p.applyConfig(&c)
	if p.current != preset.PinkNoise {
		t.Fatalf("current = %q, want pink-noise", p.current)
	}
	if got := p.reader.Bridge().Volume(); got != 0.25 {
		t.Fatalf("volume = %v, want 0.25", got)
	}

	c.Preset = "jupiter"
	p.applyConfig(&c)
	if p.current != preset.PinkNoise {
		t.Fatalf("unavailable preset replaced the current one: %q", p.current)
	}
}

func TestCRLFWriter(t *testing.T) {
	var buf bytes.Buffer
	n, err := crlfWriter{&buf}.Write([]byte("a\nb\n"))
	if err != nil || n != 4 {
		t.Fatalf("Write = %d, %v", n, err)
	}
	if buf.String() != "a\r\nb\r\n" {
		t.Fatalf("got %q", buf.String())
	}
}
