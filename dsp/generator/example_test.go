package generator_test

import (
	"fmt"

	"github.com/cwbudde/algo-ambient/dsp/generator"
)

func ExampleFadeIn() {
	fade := generator.FadeIn(0, 1)
	for _, t := range []float64{-1, 0, 0.5, 1} {
		fmt.Printf("%.4f\n", fade.Value(t))
	}
	// Output:
	// 0.0000
	// 0.0000
	// 0.8647
	// 1.0000
}

func ExampleNewOscillator() {
	osc := generator.NewOscillator(generator.ShapeSquare, 1)
	fmt.Println(osc.Value(0), osc.Value(0.2), osc.Value(0.4), osc.Value(0.6))
	// Output: 1 1 1 -1
}
