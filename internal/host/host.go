// Package host connects a render bridge to an audio device.
//
// The default build plays through oto. Building with the portaudio tag
// switches to a PortAudio callback stream, and the headless tag replaces the
// device with a paced goroutine that pulls and discards audio.
package host

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned by Open for unusable stream parameters.
var ErrInvalidConfig = errors.New("host: invalid config")

// Config describes the output stream.
type Config struct {
	SampleRate  int
	Channels    int
	// BlockFrames is the number of frames requested per callback where the
	// backend lets us choose, and the size the pull buffer is prepared for.
	BlockFrames int
	Latency     time.Duration
}

// DefaultConfig is a stereo 48 kHz stream with 512-frame blocks.
func DefaultConfig() Config {
	return Config{
		SampleRate:  48000,
		Channels:    2,
		BlockFrames: 512,
		Latency:     50 * time.Millisecond,
	}
}

func (c Config) validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate must be > 0", ErrInvalidConfig)
	case c.Channels < 1 || c.Channels > 2:
		return fmt.Errorf("%w: channels must be 1 or 2", ErrInvalidConfig)
	case c.BlockFrames <= 0:
		return fmt.Errorf("%w: block frames must be > 0", ErrInvalidConfig)
	}

	return nil
}

// Backend is an open audio output pulling from a Reader.
type Backend interface {
	// Name identifies the backend in logs.
	Name() string
	// Start begins pulling audio.
	Start() error
	// Close stops pulling and releases the device.
	Close() error
}
