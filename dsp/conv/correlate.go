package conv

import (
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"
)

// AutoCorrelate returns the one-sided unnormalized autocorrelation of x:
//
//	r[lag] = sum_{i=0}^{n-1-lag} x[i] * x[i+lag],  lag = 0..n-1
//
// It zero-pads x to at least 2n so the FFT's circular correlation equals the
// linear one.
func AutoCorrelate(x []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	fftSize := nextPowerOf2(2 * n)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	buf := make([]complex128, fftSize)
	for i, v := range x {
		buf[i] = complex(v, 0)
	}

	if err := plan.Forward(buf, buf); err != nil {
		return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
	}

	// |X|^2 is the spectrum of the autocorrelation.
	for i, v := range buf {
		buf[i] = complex(real(v)*real(v)+imag(v)*imag(v), 0)
	}

	if err := plan.Inverse(buf, buf); err != nil {
		return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
	}

	r := make([]float64, n)
	for lag := range r {
		r[lag] = real(buf[lag])
	}

	return r, nil
}

// AutoCorrelateDirect computes the same result as AutoCorrelate with the
// O(n^2) lag sum.
func AutoCorrelateDirect(x []float64) ([]float64, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	r := make([]float64, n)
	for lag := range r {
		r[lag] = vecmath.DotProduct(x[:n-lag], x[lag:])
	}

	return r, nil
}
