package modulation_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/effects/modulation"
)

func ExampleRingModulator_ProcessInPlace() {
	rm, err := modulation.NewRingModulator(8000,
		modulation.WithRingModCarrierHz(2000),
		modulation.WithRingModWaveform(modulation.Square),
	)
	if err != nil {
		panic(err)
	}

	buf := []float64{0.5, 0.5, 0.5, 0.5}
	rm.ProcessInPlace(buf)

	fmt.Println(buf)
	// Output:
	// [0.5 0.5 0.5 -0.5]
}
