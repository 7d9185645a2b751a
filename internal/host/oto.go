//go:build !headless && !portaudio

package host

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

type otoBackend struct {
	ctx    *oto.Context
	player *oto.Player
	mu     sync.Mutex
}

// Open creates the oto output for cfg, pulling from r. Only one oto context
// may exist per process.
func Open(cfg Config, r *Reader) (Backend, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   cfg.SampleRate,
		ChannelCount: cfg.Channels,
		Format:       oto.FormatFloat32LE,
		BufferSize:   cfg.Latency,
	})
	if err != nil {
		return nil, fmt.Errorf("host: oto context: %w", err)
	}
	<-ready

	return &otoBackend{ctx: ctx, player: ctx.NewPlayer(r)}, nil
}

func (o *otoBackend) Name() string { return "oto" }

func (o *otoBackend) Start() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return fmt.Errorf("host: oto player closed")
	}

	o.player.Play()

	return nil
}

func (o *otoBackend) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.player == nil {
		return nil
	}

	err := o.player.Close()
	o.player = nil
	if err != nil {
		return fmt.Errorf("host: oto close: %w", err)
	}

	return o.ctx.Suspend()
}
