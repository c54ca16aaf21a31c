package conv

import (
	"errors"

	"github.com/cwbudde/algo-vecmath"
)

// Errors returned by convolution functions.
var (
	ErrEmptyInput     = errors.New("conv: empty input")
	ErrEmptyKernel    = errors.New("conv: empty kernel")
	ErrLengthMismatch = errors.New("conv: buffer length mismatch")
)

// directThreshold is the kernel length up to which Convolve stays in the
// time domain.
const directThreshold = 64

// Direct performs direct time-domain linear convolution of a and b.
// Returns a new slice of length len(a) + len(b) - 1.
func Direct(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	dst := make([]float64, len(a)+len(b)-1)
	scaled := make([]float64, len(b))

	for i, x := range a {
		if x == 0 {
			continue
		}

		vecmath.ScaleBlock(scaled, b, x)
		vecmath.AddBlockInPlace(dst[i:i+len(b)], scaled)
	}

	return dst, nil
}

// Convolve performs linear convolution, choosing Direct for short kernels
// and FFT overlap-add otherwise.
func Convolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmptyInput
	}

	if len(b) == 0 {
		return nil, ErrEmptyKernel
	}

	if len(b) > len(a) {
		a, b = b, a
	}

	if len(b) <= directThreshold {
		return Direct(a, b)
	}

	oa, err := NewOverlapAdd(b, 0)
	if err != nil {
		return nil, err
	}

	return oa.Process(a)
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
