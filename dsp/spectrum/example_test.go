package spectrum_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ambient/dsp/spectrum"
)

func ExampleAnalyzer_Frame() {
	a, err := spectrum.NewAnalyzer(256, 8000)
	if err != nil {
		panic(err)
	}

	// 1000 Hz lands on bin 32.
	frame := make([]float64, 256)
	for i := range frame {
		frame[i] = 0.8 * math.Sin(2*math.Pi*1000*float64(i)/8000)
	}

	mag, _ := a.Frame(frame)
	k, peak := spectrum.PeakBin(mag)
	fmt.Printf("%.0f Hz %.2f\n", a.BinFrequency(k), peak)
	// Output:
	// 1000 Hz 0.80
}

func ExampleToneAmplitude() {
	tone := make([]float64, 800)
	for i := range tone {
		tone[i] = 0.25 * math.Sin(2*math.Pi*440*float64(i)/8000)
	}

	amp, _ := spectrum.ToneAmplitude(tone, 440, 8000)
	fmt.Printf("%.3f\n", amp)
	// Output:
	// 0.250
}
