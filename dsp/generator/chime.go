package generator

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-ambient/dsp/core"
)

const (
	maxChimeGrains = 64
	chimeSilence   = 1e-3
)

// ChimeConfig shapes a Chime. Zero fields take the defaults of
// DefaultChimeConfig.
type ChimeConfig struct {
	// Interval is the time between cascade onsets in seconds.
	Interval float64
	// Grains is the number of sine grains per cascade, at most 64.
	Grains int
	// Spacing is the onset offset between consecutive grains in seconds.
	Spacing float64
	// Decay is the exponential time constant of each grain in seconds.
	Decay float64
	// BaseHz is the pitch of the first grain. Grain i sits at
	// BaseHz·(0.8 + 0.5·i/(Grains-1)).
	BaseHz float64
	// Detune is the maximum random pitch offset per grain in Hz.
	Detune float64
	// Gain scales the normalized cascade, clamped to [0, 1].
	Gain float64
}

// DefaultChimeConfig returns a bright, sparse tree-chime cascade.
func DefaultChimeConfig() ChimeConfig {
	return ChimeConfig{
		Interval: 8,
		Grains:   24,
		Spacing:  0.02,
		Decay:    1.2,
		BaseHz:   6000,
		Detune:   1.5,
		Gain:     0.5,
	}
}

func (c ChimeConfig) normalized() ChimeConfig {
	d := DefaultChimeConfig()
	if c.Interval <= 0 {
		c.Interval = d.Interval
	}
	if c.Grains <= 0 {
		c.Grains = d.Grains
	}
	if c.Grains > maxChimeGrains {
		c.Grains = maxChimeGrains
	}
	if c.Spacing < 0 {
		c.Spacing = 0
	}
	if c.Decay <= 0 {
		c.Decay = d.Decay
	}
	if c.BaseHz <= 0 {
		c.BaseHz = d.BaseHz
	}
	c.Detune = core.Clamp(c.Detune, 0, 100)
	c.Gain = core.Clamp(c.Gain, 0, 1)
	return c
}

// Chime plays periodic cascades of decaying high sine grains. Each cascade
// redraws the per-grain detune and start phase from its seeded source. The
// first cascade starts at the first evaluation.
type Chime struct {
	cfg    ChimeConfig
	rng    *rand.Rand
	freqs  [maxChimeGrains]float64
	phases [maxChimeGrains]float64
	local  float64
	clk    clock
}

// NewChime returns a chime for seed and cfg.
func NewChime(seed int64, cfg ChimeConfig) *Chime {
	c := &Chime{cfg: cfg.normalized(), rng: newRand(seed)}
	c.scatter()
	return c
}

// Config returns the normalized configuration.
func (c *Chime) Config() ChimeConfig { return c.cfg }

func (c *Chime) scatter() {
	n := c.cfg.Grains
	for i := 0; i < n; i++ {
		pos := 0.0
		if n > 1 {
			pos = float64(i) / float64(n-1)
		}
		detune := (c.rng.Float64()*2 - 1) * c.cfg.Detune
		c.freqs[i] = math.Min(c.cfg.BaseHz*(0.8+0.5*pos)+detune, MaxFrequency)
		c.phases[i] = c.rng.Float64() * 2 * math.Pi
	}
}

func (c *Chime) Value(t float64) float64 {
	c.local += c.clk.step(t)
	for c.local >= c.cfg.Interval {
		c.local -= c.cfg.Interval
		c.scatter()
	}

	n := c.cfg.Grains
	var acc float64
	for i := 0; i < n; i++ {
		tg := c.local - float64(i)*c.cfg.Spacing
		if tg < 0 {
			break
		}
		env := math.Exp(-tg / c.cfg.Decay)
		if env < chimeSilence {
			continue
		}
		acc += math.Sin(2*math.Pi*c.freqs[i]*tg+c.phases[i]) * env
	}
	return core.Clamp(acc/float64(n)*c.cfg.Gain, -1, 1)
}
