// Package design provides RBJ "Audio EQ Cookbook" biquad coefficient
// designers: lowpass, highpass, bandpass, notch and peaking EQ.
//
// Every designer validates its arguments and returns core.ErrInvalidParameter
// for frequencies at or above Nyquist, non-positive Q or bandwidth, and
// non-finite input. Returned coefficients are normalized so a0 = 1 and can be
// fed directly to dsp/filter/biquad.
package design
