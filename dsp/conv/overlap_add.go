package conv

import (
	"context"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// OverlapAdd implements FFT-based convolution using the overlap-add method.
//
// The input is cut into blocks of BlockSize samples; each block is
// zero-padded to the FFT size, multiplied with the kernel spectrum and the
// inverse transform is accumulated at the block offset.
type OverlapAdd struct {
	kernelFFT []complex128

	kernelLen int
	blockSize int
	fftSize   int

	plan *algofft.Plan[complex128]

	scratch []complex128
}

// NewOverlapAdd creates an overlap-add convolver for kernel.
// If blockSize is 0, a size is chosen from the kernel length.
func NewOverlapAdd(kernel []float64, blockSize int) (*OverlapAdd, error) {
	if len(kernel) == 0 {
		return nil, ErrEmptyKernel
	}

	if blockSize <= 0 {
		blockSize = max(nextPowerOf2(len(kernel)), 256)
	}

	fftSize := nextPowerOf2(blockSize + len(kernel) - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("conv: failed to create FFT plan: %w", err)
	}

	oa := &OverlapAdd{
		kernelFFT: make([]complex128, fftSize),
		kernelLen: len(kernel),
		blockSize: blockSize,
		fftSize:   fftSize,
		plan:      plan,
		scratch:   make([]complex128, fftSize),
	}

	for i, v := range kernel {
		oa.scratch[i] = complex(v, 0)
	}

	if err := plan.Forward(oa.kernelFFT, oa.scratch); err != nil {
		return nil, fmt.Errorf("conv: failed to compute kernel FFT: %w", err)
	}

	return oa, nil
}

// BlockSize returns the input block size.
func (oa *OverlapAdd) BlockSize() int { return oa.blockSize }

// FFTSize returns the FFT size used internally.
func (oa *OverlapAdd) FFTSize() int { return oa.fftSize }

// KernelLen returns the kernel length.
func (oa *OverlapAdd) KernelLen() int { return oa.kernelLen }

// Process returns the full linear convolution of input with the kernel,
// of length len(input) + KernelLen() - 1.
func (oa *OverlapAdd) Process(input []float64) ([]float64, error) {
	return oa.ProcessContext(context.Background(), input)
}

// ProcessContext is Process with cancellation checked before every block.
// On cancellation the partial output is dropped and ctx.Err() returned.
func (oa *OverlapAdd) ProcessContext(ctx context.Context, input []float64) ([]float64, error) {
	if len(input) == 0 {
		return nil, ErrEmptyInput
	}

	output := make([]float64, len(input)+oa.kernelLen-1)

	for start := 0; start < len(input); start += oa.blockSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := min(start+oa.blockSize, len(input))

		clear(oa.scratch)

		for i, v := range input[start:end] {
			oa.scratch[i] = complex(v, 0)
		}

		if err := oa.plan.Forward(oa.scratch, oa.scratch); err != nil {
			return nil, fmt.Errorf("conv: forward FFT failed: %w", err)
		}

		for i := range oa.scratch {
			oa.scratch[i] *= oa.kernelFFT[i]
		}

		if err := oa.plan.Inverse(oa.scratch, oa.scratch); err != nil {
			return nil, fmt.Errorf("conv: inverse FFT failed: %w", err)
		}

		n := min(end-start+oa.kernelLen-1, len(output)-start)
		for i := range n {
			output[start+i] += real(oa.scratch[i])
		}
	}

	return output, nil
}
