// Package modulation provides carrier-driven modulation effects.
//
// Included processors:
//   - RingModulator: multiplies the input by a sine, square, triangle or
//     sawtooth carrier with depth and dry/wet controls.
package modulation
