// Command presetinfo renders presets offline and prints their level and
// spectral statistics.
//
// Usage:
//
//	presetinfo [flags] [preset ...]
//
// Without arguments it analyzes every preset, listing recorded-only presets
// as unavailable.
//
// Examples:
//
//	presetinfo ocean-waves rain
//	presetinfo -seconds 10 -fft 8192 cathedral-stillness
//	presetinfo -tone 440 test-tone
//	presetinfo -list
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/preset"
	"github.com/cwbudde/algo-ambient/dsp/render"
	"github.com/cwbudde/algo-ambient/dsp/spectrum"
)

// Band edges for the low/mid/high energy split.
const (
	lowMidHz  = 250
	midHighHz = 4000
)

type stats struct {
	levels         spectrum.Levels
	centroid       float64
	peakHz         float64
	low, mid, high float64
	tone           float64
}

func main() {
	seconds := flag.Float64("seconds", 5, "seconds of audio to render per preset")
	rate := flag.Float64("rate", core.DefaultSampleRate, "sample rate in Hz")
	fftSize := flag.Int("fft", 4096, "FFT frame size (power of two)")
	seed := flag.Int64("seed", 1, "random seed passed to the presets")
	tone := flag.Float64("tone", math.NaN(), "also report the amplitude of this frequency in Hz")
	list := flag.Bool("list", false, "list preset names")
	level := flag.String("log-level", "warn", "log level (debug, info, warn, error)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: presetinfo [flags] [preset ...]\n\n")
		fmt.Fprintf(os.Stderr, "Renders presets offline and prints level and spectral statistics.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  presetinfo ocean-waves rain\n")
		fmt.Fprintf(os.Stderr, "  presetinfo -tone 440 test-tone\n")
		fmt.Fprintf(os.Stderr, "  presetinfo -list\n")
	}
	flag.Parse()

	lvl, err := logrus.ParseLevel(*level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}
	logrus.SetLevel(lvl)

	reg := preset.Default()

	if *list {
		for _, id := range reg.IDs() {
			fmt.Println(id)
		}
		return
	}

	ids := resolve(reg, flag.Args())
	if len(ids) == 0 {
		fmt.Fprintf(os.Stderr, "error: no matching presets\n")
		os.Exit(1)
	}

	analyzer, err := spectrum.NewAnalyzer(*fftSize, *rate)
	if err != nil {
		logrus.WithError(err).Fatal("cannot create analyzer")
	}

	if err := printStats(os.Stdout, reg, ids, analyzer, *seconds, *seed, *tone); err != nil {
		logrus.WithError(err).Fatal("cannot write report")
	}
}

func resolve(reg *preset.Registry, names []string) []preset.ID {
	if len(names) == 0 {
		return reg.IDs()
	}

	known := make(map[preset.ID]bool)
	for _, id := range reg.IDs() {
		known[id] = true
	}

	var ids []preset.ID
	for _, name := range names {
		id := preset.ID(strings.ToLower(strings.TrimSpace(name)))
		if !known[id] {
			fmt.Fprintf(os.Stderr, "warning: unknown preset %q (use -list to see available)\n", name)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

func analyze(b *render.Bridge, a *spectrum.Analyzer, seconds, toneHz float64) (stats, error) {
	b.Start()
	out := render.RenderOffline(b, seconds)

	data := make([]float64, len(out))
	for i, v := range out {
		data[i] = float64(v)
	}

	mag, err := a.Average(data)
	if err != nil {
		return stats{}, err
	}

	w := a.BinWidth()
	nyquist := a.SampleRate() / 2
	low := spectrum.BandEnergy(mag, w, 0, lowMidHz)
	mid := spectrum.BandEnergy(mag, w, lowMidHz+w/2, midHighHz)
	high := spectrum.BandEnergy(mag, w, midHighHz+w/2, nyquist)

	s := stats{
		levels:   spectrum.Measure(data),
		centroid: spectrum.Centroid(mag, w),
		tone:     math.NaN(),
	}

	k, _ := spectrum.PeakBin(mag)
	s.peakHz = a.BinFrequency(k)

	if total := low + mid + high; total > 0 {
		s.low, s.mid, s.high = 100*low/total, 100*mid/total, 100*high/total
	}

	if !math.IsNaN(toneHz) {
		s.tone, err = spectrum.ToneAmplitude(data, toneHz, a.SampleRate())
		if err != nil {
			return stats{}, err
		}
	}

	return s, nil
}

func printStats(w io.Writer, reg *preset.Registry, ids []preset.ID, a *spectrum.Analyzer, seconds float64, seed int64, toneHz float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	header := "Preset\tRMS [dBFS]\tPeak [dBFS]\tCrest [dB]\tCentroid [Hz]\tPeak [Hz]\tLow %\tMid %\tHigh %"
	if !math.IsNaN(toneHz) {
		header += fmt.Sprintf("\t%.0f Hz [dB]", toneHz)
	}
	if _, err := fmt.Fprintln(tw, header); err != nil {
		return err
	}

	for _, id := range ids {
		b, err := reg.Build(id, core.WithSampleRate(a.SampleRate()), core.WithSeed(seed))
		if errors.Is(err, preset.ErrUnavailable) {
			if _, err := fmt.Fprintf(tw, "%s\tunavailable\n", id); err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}

		logrus.WithFields(logrus.Fields{"preset": id, "sample_rate": a.SampleRate(), "seconds": seconds}).Debug("rendering")

		s, err := analyze(b, a, seconds, toneHz)
		if err != nil {
			return fmt.Errorf("preset %q: %w", id, err)
		}

		row := fmt.Sprintf("%s\t%.1f\t%.1f\t%.1f\t%.0f\t%.0f\t%.1f\t%.1f\t%.1f",
			id,
			s.levels.RMSdB(),
			s.levels.PeakdB(),
			s.levels.Crest(),
			s.centroid,
			s.peakHz,
			s.low,
			s.mid,
			s.high,
		)
		if !math.IsNaN(toneHz) {
			row += fmt.Sprintf("\t%.1f", spectrum.DB(s.tone))
		}
		if _, err := fmt.Fprintln(tw, row); err != nil {
			return err
		}
	}

	return tw.Flush()
}
