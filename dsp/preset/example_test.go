package preset_test

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-ambient/dsp/core"
	"github.com/cwbudde/algo-ambient/dsp/preset"
)

func ExampleRegistry_Build() {
	reg := preset.Default()

	b, err := reg.Build(preset.Rain, core.WithSampleRate(44100))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(b.SampleRate())

	_, err = reg.Build(preset.Jupiter)
	fmt.Println(errors.Is(err, preset.ErrUnavailable), err)
	// Output:
	// 44100
	// true preset "jupiter": preset not available for synthesis
}
