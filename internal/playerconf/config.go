// Package playerconf loads the ambientplay configuration file and watches it
// for edits.
package playerconf

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const defaultConfig = `{
	"sampleRate": 48000,
	"channels": 2,
	"blockFrames": 512,
	"latencyMs": 50,
	"watchConfig": true,
	"logLevel": "info",
	"preset": "ocean-waves",
	"volume": 0.8,
	"fadeInMs": 2000,
	"fadeOutMs": 1500
}
`

// StreamConfig holds settings that only take effect when the output stream
// is opened.
type StreamConfig struct {
	SampleRate  int    `json:"sampleRate"`
	Channels    int    `json:"channels"`
	BlockFrames int    `json:"blockFrames"`
	LatencyMs   int    `json:"latencyMs"`
	WatchConfig bool   `json:"watchConfig"`
	LogLevel    string `json:"logLevel"`
}

// PlaybackConfig holds settings that are applied live when the file changes.
type PlaybackConfig struct {
	Preset    string  `json:"preset"`
	Volume    float64 `json:"volume"`
	FadeInMs  float64 `json:"fadeInMs"`
	FadeOutMs float64 `json:"fadeOutMs"`
}

// Config is the full player configuration.
type Config struct {
	StreamConfig
	PlaybackConfig
}

// Default returns the configuration written for a missing file.
func Default() Config {
	var c Config
	if err := json.Unmarshal([]byte(defaultConfig), &c); err != nil {
		panic("playerconf: bad default config: " + err.Error())
	}

	return c
}

// Read loads the configuration at path, writing the defaults first if the
// file does not exist. Missing keys keep their default values and
// out-of-range values are clamped.
func Read(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte(defaultConfig), 0o644); err != nil {
			return nil, fmt.Errorf("playerconf: can't write default config: %w", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("playerconf: can't read config: %w", err)
	}

	c := Default()
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("playerconf: unmarshalling %s: %w", path, err)
	}

	c.normalize()

	return &c, nil
}

func (c *Config) normalize() {
	d := Default()

	if c.SampleRate <= 0 {
		c.SampleRate = d.SampleRate
	}

	if c.Channels < 1 || c.Channels > 2 {
		c.Channels = d.Channels
	}

	if c.BlockFrames <= 0 {
		c.BlockFrames = d.BlockFrames
	}

	c.LatencyMs = max(c.LatencyMs, 0)
	c.Volume = min(max(c.Volume, 0), 1)
	c.FadeInMs = max(c.FadeInMs, 0)
	c.FadeOutMs = max(c.FadeOutMs, 0)
}
