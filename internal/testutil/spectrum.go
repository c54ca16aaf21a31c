package testutil

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// BandEnergyFraction returns the share of x's spectral energy that falls in
// [lowHz, highHz). x is zero-padded to the next power of two; only the
// positive-frequency half of the spectrum is counted.
func BandEnergyFraction(x []float64, sampleRate, lowHz, highHz float64) (float64, error) {
	if len(x) == 0 {
		return 0, fmt.Errorf("band energy: empty input")
	}

	n := 1
	for n < len(x) {
		n *= 2
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return 0, fmt.Errorf("band energy: %w", err)
	}

	buf := make([]complex128, n)
	for i, v := range x {
		buf[i] = complex(v, 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return 0, fmt.Errorf("band energy: %w", err)
	}

	var band, total float64

	binHz := sampleRate / float64(n)
	for k := 1; k <= n/2; k++ {
		v := buf[k]
		e := real(v)*real(v) + imag(v)*imag(v)
		total += e

		if f := float64(k) * binHz; f >= lowHz && f < highHz {
			band += e
		}
	}

	if total == 0 {
		return 0, nil
	}

	return band / total, nil
}
