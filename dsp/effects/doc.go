// Package effects provides offline audio effect kernels.
//
// Subpackages:
//   - github.com/cwbudde/algo-audiofx/dsp/effects/dynamics
//   - github.com/cwbudde/algo-audiofx/dsp/effects/modulation
//   - github.com/cwbudde/algo-audiofx/dsp/effects/spatial
//
// Effects in this package:
//   - Echo: a finite number of geometrically decaying repeats.
//   - Reverb: synthetic decaying-noise impulse response, sparse or FFT.
//   - BassEnhancer: lowpass bass boost with tanh saturation.
//   - BitCrusher: sample-and-hold rate reduction and quantization.
//
// Echo and Reverb lengthen their input and render whole buffers through
// Apply, which never mutates its argument and peak-normalizes the result.
// BassEnhancer and BitCrusher are per-channel sample processors.
package effects
