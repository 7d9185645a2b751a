package main

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/preset"
	"github.com/cwbudde/algo-ambient/dsp/render"
	"github.com/cwbudde/algo-ambient/internal/host"
	"github.com/cwbudde/algo-ambient/internal/playerconf"
)

const volumeStep = 0.05

// player owns the control side of playback. All methods run on the main
// loop goroutine; the audio side only sees the bridge through the reader.
type player struct {
	reg    *preset.Registry
	reader *host.Reader
	cfg    playerconf.Config
	log    *logrus.Entry

	ids     []preset.ID
	current preset.ID
	paused  bool

	// next is built and waiting for the current preset to fade out.
	next   *render.Bridge
	nextID preset.ID
	swap   *time.Timer
}

func newPlayer(reg *preset.Registry, reader *host.Reader, cfg playerconf.Config, log *logrus.Entry) *player {
	var ids []preset.ID
	for _, id := range reg.IDs() {
		if reg.Available(id) {
			ids = append(ids, id)
		}
	}

	return &player{reg: reg, reader: reader, cfg: cfg, log: log, ids: ids}
}

// swapC is the channel that fires when a pending preset should take over.
func (p *player) swapC() <-chan time.Time {
	if p.swap == nil {
		return nil
	}
	return p.swap.C
}

// switchTo builds id and fades the current preset out before handing over.
func (p *player) switchTo(id preset.ID) error {
	b, err := p.reg.Build(id,
		core.WithSampleRate(float64(p.cfg.SampleRate)),
		core.WithBlockSize(p.cfg.BlockFrames),
		core.WithSeed(time.Now().UnixNano()),
	)
	if err != nil {
		return err
	}

	p.cancelSwap()
	p.next, p.nextID = b, id

	cur := p.reader.Bridge()
	if cur == nil || p.paused || p.cfg.FadeOutMs <= 0 {
		p.commit()
		return nil
	}

	cur.ApplyFadeOut(p.cfg.FadeOutMs)
	p.swap = time.NewTimer(time.Duration(p.cfg.FadeOutMs * float64(time.Millisecond)))
	return nil
}

func (p *player) cancelSwap() {
	if p.swap != nil {
		p.swap.Stop()
		p.swap = nil
	}
}

// commit installs the pending bridge.
func (p *player) commit() {
	p.cancelSwap()
	if p.next == nil {
		return
	}

	b := p.next
	b.SetVolume(p.cfg.Volume)
	b.Start()
	if !p.paused {
		b.ApplyFadeIn(p.cfg.FadeInMs)
	} else {
		b.ApplyFadeOut(0)
	}

	if old := p.reader.Swap(b); old != nil {
		old.Stop()
	}

	p.current = p.nextID
	p.next, p.nextID = nil, ""
	p.log.WithFields(logrus.Fields{"preset": p.current, "volume": p.cfg.Volume}).Info("playing")
}

func (p *player) step(delta int) error {
	if len(p.ids) == 0 {
		return errors.New("no synthesized presets")
	}

	i := slices.Index(p.ids, p.current)
	i = (i + delta + len(p.ids)) % len(p.ids)
	return p.switchTo(p.ids[i])
}

func (p *player) setVolume(v float64) {
	p.cfg.Volume = min(max(v, 0), 1)
	if b := p.reader.Bridge(); b != nil {
		b.SetVolume(p.cfg.Volume)
	}
	p.log.WithField("volume", fmt.Sprintf("%.2f", p.cfg.Volume)).Info("volume")
}

func (p *player) togglePause() {
	b := p.reader.Bridge()
	if b == nil {
		return
	}

	p.paused = !p.paused
	if p.paused {
		b.ApplyFadeOut(p.cfg.FadeOutMs)
		p.log.Info("paused")
		return
	}

	b.ApplyFadeIn(p.cfg.FadeInMs)
	p.log.Info("resumed")
}

// handleKey reacts to one key press and reports whether to quit.
func (p *player) handleKey(k byte) (quit bool) {
	var err error
	switch k {
	case 'q', 'Q', 3, 4:
		return true
	case ' ':
		p.togglePause()
	case '+', '=':
		p.setVolume(p.cfg.Volume + volumeStep)
	case '-', '_':
		p.setVolume(p.cfg.Volume - volumeStep)
	case 'n', 'N':
		err = p.step(1)
	case 'p', 'P':
		err = p.step(-1)
	case 'r', 'R':
		if b := p.reader.Bridge(); b != nil {
			b.ResetEffectsState()
			p.log.Info("effects reset")
		}
	}

	if err != nil {
		p.log.WithError(err).Warn("cannot switch preset")
	}
	return false
}

// applyConfig takes over the live settings of a reloaded configuration.
// Stream settings only apply after a restart.
func (p *player) applyConfig(c *playerconf.Config) {
	if c.StreamConfig != p.cfg.StreamConfig {
		p.log.Warn("stream settings changed; restart to apply")
	}

	p.cfg.FadeInMs, p.cfg.FadeOutMs = c.FadeInMs, c.FadeOutMs
	if c.Volume != p.cfg.Volume {
		p.setVolume(c.Volume)
	}

	if id := preset.ID(c.Preset); id != p.current && id != p.nextID {
		if err := p.switchTo(id); err != nil {
			p.log.WithError(err).Warn("cannot switch preset")
		}
	}
}

// fadeOutAndWait fades the current preset out before shutdown.
func (p *player) fadeOutAndWait(limit time.Duration) {
	b := p.reader.Bridge()
	if b == nil || p.paused || p.cfg.FadeOutMs <= 0 {
		return
	}

	b.ApplyFadeOut(p.cfg.FadeOutMs)
	time.Sleep(min(time.Duration(p.cfg.FadeOutMs*float64(time.Millisecond)), limit))
}
