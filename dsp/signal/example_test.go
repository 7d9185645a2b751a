package signal_test

import (
	"fmt"

	"github.com/cwbudde/algo-ambient/dsp/signal"
)

func ExampleCrossfade() {
	a := signal.Constant(0.2)
	b := signal.Constant(0.6)
	fade := signal.Func(func(t float64) float64 { return t })

	for _, t := range []float64{0, 0.5, 1} {
		fmt.Printf("%.2f\n", signal.Crossfade(a, b, fade).Value(t))
	}

	// Output:
	// 0.20
	// 0.40
	// 0.60
}
