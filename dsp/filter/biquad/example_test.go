package biquad_test

import (
	"fmt"

	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
)

func ExampleSection_ProcessSample() {
	s := biquad.NewSection(biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	})

	for i := range 4 {
		var x float64
		if i == 0 {
			x = 1
		}

		y, err := s.ProcessSample(x)
		if err != nil {
			panic(err)
		}

		fmt.Printf("y[%d] = %.6f\n", i, y)
	}
	// Output:
	// y[0] = 0.250000
	// y[1] = 0.550000
	// y[2] = 0.350000
	// y[3] = 0.048000
}

func ExampleCoefficients_MagnitudeDB() {
	c := biquad.Coefficients{
		B0: 0.25, B1: 0.5, B2: 0.25,
		A1: -0.2, A2: 0.04,
	}

	fmt.Printf("1 kHz: %+.2f dB\n", c.MagnitudeDB(1000, 48000))
	// Output:
	// 1 kHz: +1.47 dB
}
