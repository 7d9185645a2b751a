package render_test

import (
	"fmt"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/mixer"
	"github.com/cwbudde/algo-ambient/dsp/render"
	"github.com/cwbudde/algo-ambient/dsp/signal"
)

func ExampleBridge_Render() {
	m := mixer.New(core.WithSampleRate(48000))
	m.AddSignal(signal.Constant(0.5), 1)

	b := render.New(m)
	b.AttachAndConnect(48000, 256)
	b.SetVolume(0.5)

	left := make([]float32, 4)
	right := make([]float32, 4)
	b.Render([][]float32{left, right}, 4)
	fmt.Println(left, right)
	// Output: [0.25 0.25 0.25 0.25] [0.25 0.25 0.25 0.25]
}
