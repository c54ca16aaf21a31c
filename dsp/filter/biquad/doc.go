// Package biquad provides the second-order IIR filter runtime.
//
// A [Section] implements Direct Form I processing for a single biquad defined
// by [Coefficients], keeping its own [State] history. Sections never reset
// implicitly and fail with core.ErrFilterInstability as soon as an output is
// NaN or Inf. Sections can be cascaded via [Chain].
//
// Coefficient design (RBJ cookbook low-pass, high-pass, band-pass, notch and
// peaking) lives in dsp/filter/design.
package biquad
