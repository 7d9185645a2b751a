// Command ambientplay plays ambient presets on the default audio device.
//
// Usage:
//
//	ambientplay [flags] [preset]
//
// Keys: space pause/resume, n/p next/previous preset, +/- volume,
// r reset effect tails, q quit.
//
// Settings are read from a JSON file that is created with defaults when it
// does not exist. While watchConfig is set, edits to preset, volume and fade
// times take effect immediately.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-ambient/dsp/preset"
	"github.com/cwbudde/algo-ambient/internal/host"
	"github.com/cwbudde/algo-ambient/internal/playerconf"
)

func main() {
	configPath := flag.String("config", "ambientplay.json", "path of the player configuration file")
	level := flag.String("log-level", "", "log level, overrides the configuration (debug, info, warn, error)")
	list := flag.Bool("list", false, "list preset names and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ambientplay [flags] [preset]\n\n")
		fmt.Fprintf(os.Stderr, "Plays an ambient preset. Keys: space pause, n/p next/prev, +/- volume, r reset, q quit.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	reg := preset.Default()
	if *list {
		for _, id := range reg.IDs() {
			if reg.Available(id) {
				fmt.Println(id)
			} else {
				fmt.Printf("%s (unavailable)\n", id)
			}
		}
		return
	}

	if err := run(reg, *configPath, *level, flag.Arg(0)); err != nil {
		logrus.WithError(err).Fatal("ambientplay")
	}
}

func run(reg *preset.Registry, configPath, level, presetArg string) error {
	cfg, err := playerconf.Read(configPath)
	if err != nil {
		return err
	}

	if level == "" {
		level = cfg.LogLevel
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)

	if presetArg != "" {
		cfg.Preset = presetArg
	}

	hcfg := host.Config{
		SampleRate:  cfg.SampleRate,
		Channels:    cfg.Channels,
		BlockFrames: cfg.BlockFrames,
		Latency:     time.Duration(cfg.LatencyMs) * time.Millisecond,
	}
	reader := host.NewReader(hcfg.Channels, hcfg.BlockFrames)

	backend, err := host.Open(hcfg, reader)
	if err != nil {
		return err
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logrus.WithError(err).Warn("closing audio backend")
		}
	}()

	log := logrus.WithFields(logrus.Fields{"backend": backend.Name(), "sample_rate": cfg.SampleRate})
	p := newPlayer(reg, reader, *cfg, log)
	if err := p.switchTo(preset.ID(cfg.Preset)); err != nil {
		return err
	}

	if err := backend.Start(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configs := make(chan *playerconf.Config)
	watchErrs := make(chan error)
	if cfg.WatchConfig {
		if err := playerconf.Watch(ctx, configPath, configs, watchErrs); err != nil {
			log.WithError(err).Warn("config hot-reload disabled")
		}
	}

	keys, restore := startKeys(ctx)
	defer restore()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigs)

	for {
		select {
		case k := <-keys:
			if p.handleKey(k) {
				p.fadeOutAndWait(3 * time.Second)
				return nil
			}
		case c := <-configs:
			log.Debug("configuration reloaded")
			p.applyConfig(c)
		case err := <-watchErrs:
			log.WithError(err).Warn("configuration reload failed")
		case <-p.swapC():
			p.commit()
		case s := <-sigs:
			log.WithField("signal", s).Info("stopping")
			p.fadeOutAndWait(3 * time.Second)
			return nil
		}
	}
}
