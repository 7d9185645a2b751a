package host

import (
	"sync/atomic"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/render"
)

// Reader pulls interleaved float32 audio from the current bridge. The bridge
// can be swapped at any time from another goroutine; the pull path only does
// an atomic load. With no bridge the reader produces silence.
type Reader struct {
	bridge   atomic.Pointer[render.Bridge]
	channels int
	samples  []float32
}

// NewReader returns a reader producing channels interleaved channels, with
// its sample buffer prepared for blockFrames frames.
func NewReader(channels, blockFrames int) *Reader {
	channels = max(channels, 1)
	return &Reader{
		channels: channels,
		samples:  make([]float32, max(blockFrames, 1)*channels),
	}
}

// Channels returns the interleaved channel count.
func (r *Reader) Channels() int { return r.channels }

// Swap installs b as the audio source and returns the previous one.
func (r *Reader) Swap(b *render.Bridge) *render.Bridge { return r.bridge.Swap(b) }

// Bridge returns the current audio source, or nil.
func (r *Reader) Bridge() *render.Bridge { return r.bridge.Load() }

// Fill renders len(out)/channels frames into out.
func (r *Reader) Fill(out []float32) {
	b := r.bridge.Load()
	if b == nil {
		clear(out)
		return
	}

	b.RenderInterleaved(out, r.channels)
}

// Read implements io.Reader with float32 little-endian PCM. It always fills
// p completely; a trailing partial frame is zeroed.
func (r *Reader) Read(p []byte) (int, error) {
	frameBytes := FrameBytes * r.channels
	frames := len(p) / frameBytes
	whole := frames * frameBytes

	if n := frames * r.channels; n > 0 {
		r.samples = core.EnsureLen32(r.samples, n)
		r.Fill(r.samples)
		PutFloat32LE(p, r.samples)
	}

	clear(p[whole:])

	return len(p), nil
}
