//go:build portaudio && !headless

package host

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

type portaudioBackend struct {
	stream *portaudio.Stream
}

// Open creates a PortAudio output stream for cfg whose callback pulls from r.
func Open(cfg Config, r *Reader) (Backend, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if err := portaudio.Initialize(); err != nil {
		return nil, fmt.Errorf("host: portaudio init: %w", err)
	}

	stream, err := portaudio.OpenDefaultStream(0, cfg.Channels, float64(cfg.SampleRate), cfg.BlockFrames,
		func(out []float32) { r.Fill(out) })
	if err != nil {
		_ = portaudio.Terminate()
		return nil, fmt.Errorf("host: portaudio stream: %w", err)
	}

	return &portaudioBackend{stream: stream}, nil
}

func (p *portaudioBackend) Name() string { return "portaudio" }

func (p *portaudioBackend) Start() error {
	if err := p.stream.Start(); err != nil {
		return fmt.Errorf("host: portaudio start: %w", err)
	}

	return nil
}

func (p *portaudioBackend) Close() error {
	if p.stream == nil {
		return nil
	}

	// Stop fails on a stream that was never started; Close still has to run.
	_ = p.stream.Stop()
	err := p.stream.Close()
	p.stream = nil

	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}

	if err != nil {
		return fmt.Errorf("host: portaudio close: %w", err)
	}

	return nil
}
