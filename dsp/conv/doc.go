// Package conv provides linear convolution and autocorrelation.
//
//   - Direct: O(N*M) time-domain convolution for short kernels.
//   - OverlapAdd: FFT block convolution for long signals and long kernels,
//     cancellable between blocks.
//   - AutoCorrelate: one-sided unnormalized autocorrelation computed with a
//     zero-padded FFT, identical to the direct lag sum up to rounding.
//
// FFTs come from github.com/MeKo-Christian/algo-fft.
package conv
