//go:build headless

package host

import (
	"sync"
	"time"
)

type headlessBackend struct {
	reader *Reader
	buf    []float32
	period time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// Open returns a backend that pulls one block from r per block period and
// discards it, so the bridge advances in real time without a device.
func Open(cfg Config, r *Reader) (Backend, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &headlessBackend{
		reader: r,
		buf:    make([]float32, cfg.BlockFrames*cfg.Channels),
		period: time.Duration(float64(cfg.BlockFrames) / float64(cfg.SampleRate) * float64(time.Second)),
	}, nil
}

func (h *headlessBackend) Name() string { return "headless" }

func (h *headlessBackend) Start() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stop != nil {
		return nil
	}

	h.stop = make(chan struct{})
	h.done = make(chan struct{})

	go h.run(h.stop, h.done)

	return nil
}

func (h *headlessBackend) run(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(h.period)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			h.reader.Fill(h.buf)
		}
	}
}

func (h *headlessBackend) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.stop == nil {
		return nil
	}

	close(h.stop)
	<-h.done
	h.stop, h.done = nil, nil

	return nil
}
