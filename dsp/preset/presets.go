package preset

import (
	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/effects"
	"github.com/cwbudde/algo-ambient/dsp/generator"
	"github.com/cwbudde/algo-ambient/dsp/mixer"
	"github.com/cwbudde/algo-ambient/dsp/signal"
)

// Synthesized presets.
const (
	PinkNoise          ID = "pink-noise"
	BrownNoise         ID = "brown-noise"
	OceanWaves         ID = "ocean-waves"
	Rain               ID = "rain"
	ForestWind         ID = "forest-wind"
	CathedralStillness ID = "cathedral-stillness"
	TreeChime          ID = "tree-chime"
	TestTone           ID = "test-tone"
)

// Presets that exist only as recorded audio.
const (
	Jupiter            ID = "jupiter"
	AcousticGymnopedie ID = "acoustic-gymnopedie"
	MoonlitGymnopedie  ID = "moonlit-gymnopedie"
	MusicBox           ID = "music-box"
	Bubbles            ID = "bubbles"
	ForestBirds        ID = "forest-birds"
	SeaAndSeagull      ID = "sea-and-seagull"
)

// Default returns a new registry holding every built-in preset.
func Default() *Registry {
	r := NewRegistry()
	r.MustRegister(PinkNoise, buildPinkNoise)
	r.MustRegister(BrownNoise, buildBrownNoise)
	r.MustRegister(OceanWaves, buildOceanWaves)
	r.MustRegister(Rain, buildRain)
	r.MustRegister(ForestWind, buildForestWind)
	r.MustRegister(CathedralStillness, buildCathedralStillness)
	r.MustRegister(TreeChime, buildTreeChime)
	r.MustRegister(TestTone, buildTestTone)

	for _, id := range []ID{Jupiter, AcousticGymnopedie, MoonlitGymnopedie, MusicBox, Bubbles, ForestBirds, SeaAndSeagull} {
		if err := r.RegisterUnavailable(id); err != nil {
			panic("preset registry: " + err.Error())
		}
	}
	return r
}

func rate(cfg core.ProcessorConfig) core.ProcessorOption {
	return core.WithSampleRate(cfg.SampleRate)
}

func buildPinkNoise(cfg core.ProcessorConfig) (*mixer.Mixer, error) {
	m := mixer.New(rate(cfg))
	m.AddSignal(signal.Scale(generator.NewPinkNoise(cfg.Seed), 3), 1)
	m.AddEffect(effects.NewSVF(effects.ModeHighpass, 30, 0.707, rate(cfg)))
	m.AddEffect(effects.NewSoftLimiter(1, 0.95))
	m.SetMasterGain(0.8)
	return m, nil
}

func buildBrownNoise(cfg core.ProcessorConfig) (*mixer.Mixer, error) {
	m := mixer.New(rate(cfg))
	m.AddSignal(generator.NewBrownNoise(cfg.Seed), 1)
	m.AddEffect(effects.NewCascade(effects.ModeLowpass, 1200, 0.707, rate(cfg)))
	m.AddEffect(effects.NewSoftLimiter(1.2, 0.95))
	m.SetMasterGain(0.9)
	return m, nil
}

// Noise under three overlapping swells, muffled by a four-pole low-pass.
// The noise colour drifts between white and brown with the slowest swell.
func buildOceanWaves(cfg core.ProcessorConfig) (*mixer.Mixer, error) {
	swell := signal.Clamp(signal.Sum(
		signal.Constant(0.5),
		generator.NewLFO(generator.ShapeSine, 0.15, 0.3),
		generator.NewLFO(generator.ShapeSine, 0.08, 0.2),
		generator.NewLFO(generator.ShapeSine, 0.25, 0.15),
	), 0, 1)

	texture := signal.Crossfade(
		generator.NewWhiteNoise(cfg.Seed),
		generator.NewBrownNoise(cfg.Seed+1),
		generator.NewUnipolarLFO(0.03, 0.2, 0.7),
	)

	m := mixer.New(rate(cfg))
	m.AddSignal(signal.Mul(texture, swell), 1)
	m.AddEffect(effects.NewCascade(effects.ModeLowpass, 2000, 0.707, rate(cfg)))
	m.AddEffect(effects.NewReverb(effects.ReverbParams{
		RoomSize: 0.6, Damping: 0.6, Decay: 0.7, Mix: 0.15,
	}, rate(cfg)))
	m.AddEffect(effects.NewSoftLimiter(1.5, 0.95))
	m.SetMasterGain(0.9)
	return m, nil
}

// Three filtered noise layers: low drops, mid patter and high hiss, under a
// 20 s intensity cycle.
func buildRain(cfg core.ProcessorConfig) (*mixer.Mixer, error) {
	drops := effects.Through(
		signal.Scale(generator.NewWhiteNoise(cfg.Seed), 0.3),
		effects.NewSVF(effects.ModeLowpass, 800, 0.707, rate(cfg)))
	patter := effects.Through(
		signal.Scale(generator.NewWhiteNoise(cfg.Seed+1), 0.4),
		effects.NewSVF(effects.ModeBandpass, 2000, 0.67, rate(cfg)))
	hiss := effects.Through(
		signal.Scale(generator.NewWhiteNoise(cfg.Seed+2), 0.2),
		effects.NewSVF(effects.ModeHighpass, 3000, 0.707, rate(cfg)))

	intensity := generator.AverageLFO(
		generator.NewUnipolarLFO(0.05, 0.6, 1),
		signal.Add(signal.Constant(0.8), generator.NewDrift(cfg.Seed+3, 0.05, 0.2)),
	)

	m := mixer.New(rate(cfg))
	m.AddSignal(signal.Mul(signal.Sum(drops, patter, hiss), intensity), 1)
	m.AddEffect(effects.NewReverb(effects.ReverbParams{
		RoomSize: 0.4, Damping: 0.7, Decay: 0.6, Mix: 0.1,
	}, rate(cfg)))
	m.AddEffect(effects.NewSoftLimiter(1.2, 0.95))
	return m, nil
}

// Low wind with slow gusts and a brighter leaf rustle that wanders.
func buildForestWind(cfg core.ProcessorConfig) (*mixer.Mixer, error) {
	wind := signal.Mul(
		effects.Through(signal.Scale(generator.NewPinkNoise(cfg.Seed), 3),
			effects.NewCascade(effects.ModeLowpass, 2000, 0.707, rate(cfg))),
		generator.NewUnipolarLFO(0.05, 0.8, 1.2),
	)

	gust := signal.Clamp(signal.Add(signal.Constant(0.4), signal.Scale(generator.NewWander(cfg.Seed+1, 0.3, 1.5), 0.3)), 0, 1)
	rustle := signal.Clamp(signal.Add(signal.Constant(0.3), signal.Scale(generator.NewRandomWalk(cfg.Seed+2, 0.0005), 0.2)), 0, 1)
	leaves := signal.Mul(
		effects.Through(generator.NewBandpassNoise(cfg.Seed+3, -0.8, 0.8, 0.6),
			effects.NewSVF(effects.ModeBandpass, 4000, 1.2, rate(cfg))),
		signal.Mul(gust, rustle),
	)

	m := mixer.New(rate(cfg))
	m.AddSignal(signal.Weighted(wind, 0.6, leaves, 0.4), 1)
	m.AddEffect(effects.NewReverb(effects.ReverbParams{
		RoomSize: 0.7, Damping: 0.5, Decay: 0.75, Mix: 0.2, PreDelay: 0.015,
	}, rate(cfg)))
	m.AddEffect(effects.NewSoftLimiter(1, 0.95))
	return m, nil
}

var organPartials = []generator.Partial{
	{Ratio: 1, Amplitude: 0.9},
	{Ratio: 2, Amplitude: 0.4},
	{Ratio: 3, Amplitude: 0.25},
	{Ratio: 4, Amplitude: 0.15},
}

// An organ drone on C3 and G3 with a low pad, breathing slowly inside a
// large, dark hall.
func buildCathedralStillness(cfg core.ProcessorConfig) (*mixer.Mixer, error) {
	drone := signal.Mix(
		signal.Layer{Signal: generator.NewHarmonicVoice(130.81, organPartials), Weight: 0.5},
		signal.Layer{Signal: generator.NewHarmonicVoice(196.00, organPartials), Weight: 0.35},
	)
	breath := signal.Add(generator.NewUnipolarLFO(0.02, 0.4, 0.8), generator.NewDrift(cfg.Seed, 0.02, 0.05))
	pad := signal.Mul(
		generator.NewEnsemble(generator.ShapeTriangle, 65.41, 3, 8),
		generator.NewBreathing(12, 0.4, 0.3),
	)

	m := mixer.New(rate(cfg))
	m.AddSignal(signal.Mul(drone, breath), 1)
	m.AddSignal(pad, 0.25)
	m.AddEffect(effects.NewSmoothedSVF(effects.ModeLowpass, 3500, 0.707, 0.05, rate(cfg)))
	m.AddEffect(effects.NewReverb(effects.ReverbParams{
		RoomSize: 1, Damping: 0.35, Decay: 0.88, Mix: 0.55, PreDelay: 0.04,
	}, rate(cfg)))
	m.AddEffect(effects.NewSoftLimiter(1, 0.95))
	m.SetMasterGain(0.8)
	return m, nil
}

// Sparse bright chime cascades over a faint airy bed.
func buildTreeChime(cfg core.ProcessorConfig) (*mixer.Mixer, error) {
	chime := generator.NewChime(cfg.Seed, generator.ChimeConfig{
		Interval: 8,
		Grains:   24,
		Spacing:  0.02,
		Decay:    1.2,
		BaseHz:   6000,
		Detune:   1.5,
		Gain:     1,
	})
	air := effects.Through(generator.NewBrownNoise(cfg.Seed+1),
		effects.NewSVF(effects.ModeLowpass, 600, 0.707, rate(cfg)))

	m := mixer.New(rate(cfg))
	m.AddSignal(chime, 1)
	m.AddSignal(air, core.DBToLinear(-22))
	m.AddEffect(effects.NewCascade(effects.ModeHighpass, 80, 0.707, rate(cfg)))
	m.AddEffect(effects.NewReverb(effects.ReverbParams{
		RoomSize: 0.7, Damping: 0.4, Decay: 0.85, Mix: 0.35, PreDelay: 0.02,
	}, rate(cfg)))
	m.AddEffect(effects.NewSoftLimiter(1, 0.8))
	return m, nil
}

// A 440 Hz tone gated once per second, with a smoothed gate to avoid clicks.
func buildTestTone(cfg core.ProcessorConfig) (*mixer.Mixer, error) {
	gate := signal.Add(signal.Constant(0.5), signal.Scale(generator.NewLFO(generator.ShapeTriangle, 1, 1), 0.5))
	env := &generator.ADSR{Attack: 0.05, Sustain: 1}
	env.Trigger(0)

	tone := signal.Mul(
		generator.NewOscillator(generator.ShapeSine, 440),
		signal.Mul(generator.NewPulseSmoother(signal.Clamp(signal.Scale(gate, 4), 0, 1), 0.01), env),
	)

	m := mixer.New(rate(cfg))
	m.AddSignal(tone, 0.3)
	m.AddEffect(effects.NewSoftLimiter(1, 0.98))
	return m, nil
}
