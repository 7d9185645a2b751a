package render

import (
	"math"

	"github.com/cwbudde/algo-ambient/dsp/core"
)

// RenderOffline pulls seconds of mono audio from b in blocks of
// core.DefaultBlockSize frames, continuing from the bridge's cursor. It
// allocates the result and is meant for analysis and tests, not for the
// host callback.
func RenderOffline(b *Bridge, seconds float64) []float32 {
	if b == nil || !(seconds > 0) || !core.IsFinite(seconds) {
		return nil
	}
	total := int(math.Round(seconds * b.SampleRate()))
	out := make([]float32, total)
	for start := 0; start < total; start += core.DefaultBlockSize {
		end := min(start+core.DefaultBlockSize, total)
		b.Render([][]float32{out[start:end]}, end-start)
	}
	return out
}
