package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/dsp/filter/biquad"
)

// DefaultQ is the Butterworth quality factor 1/sqrt(2).
const DefaultQ = 1 / math.Sqrt2

// Lowpass designs an RBJ lowpass biquad at freq (Hz) with quality factor q.
func Lowpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	alpha, err := qAlpha(w0, q)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	cw := math.Cos(w0)
	b0 := (1 - cw) / 2

	return normalizeBiquad(b0, 1-cw, b0, 1+alpha, -2*cw, 1-alpha)
}

// Highpass designs an RBJ highpass biquad at freq (Hz) with quality factor q.
func Highpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	alpha, err := qAlpha(w0, q)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	cw := math.Cos(w0)
	b0 := (1 + cw) / 2

	return normalizeBiquad(b0, -(1 + cw), b0, 1+alpha, -2*cw, 1-alpha)
}

// Bandpass designs a bandpass biquad with 0 dB gain at freq, selectivity
// set by q (b0 = alpha, b2 = -alpha).
func Bandpass(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	alpha, err := qAlpha(w0, q)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	return bandpassFromAlpha(w0, alpha)
}

// BandpassBW designs a bandpass biquad whose width is given in octaves:
//
//	alpha = sin(w0) * sinh(ln2/2 * bw * w0/sin(w0))
func BandpassBW(freq, bandwidthOctaves, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	alpha, err := bandwidthAlpha(w0, bandwidthOctaves)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	return bandpassFromAlpha(w0, alpha)
}

// Notch designs a notch biquad centered at freq (Hz).
func Notch(freq, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	alpha, err := qAlpha(w0, q)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	return notchFromAlpha(w0, alpha)
}

// NotchBW designs a notch biquad whose width is given in octaves.
func NotchBW(freq, bandwidthOctaves, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	alpha, err := bandwidthAlpha(w0, bandwidthOctaves)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	return notchFromAlpha(w0, alpha)
}

// Peak designs an RBJ peaking-EQ biquad with gain in dB (A = 10^(gain/40)).
func Peak(freq, gainDB, q, sampleRate float64) (biquad.Coefficients, error) {
	w0, err := normalizedW0(freq, sampleRate)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	alpha, err := qAlpha(w0, q)
	if err != nil {
		return biquad.Coefficients{}, err
	}

	if !core.IsFinite(gainDB) {
		return biquad.Coefficients{}, fmt.Errorf("%w: peak gain must be finite: %f", core.ErrInvalidParameter, gainDB)
	}

	cw := math.Cos(w0)
	a := math.Pow(10, gainDB/40)

	return normalizeBiquad(1+alpha*a, -2*cw, 1-alpha*a, 1+alpha/a, -2*cw, 1-alpha/a)
}

func bandpassFromAlpha(w0, alpha float64) (biquad.Coefficients, error) {
	cw := math.Cos(w0)
	return normalizeBiquad(alpha, 0, -alpha, 1+alpha, -2*cw, 1-alpha)
}

func notchFromAlpha(w0, alpha float64) (biquad.Coefficients, error) {
	cw := math.Cos(w0)
	return normalizeBiquad(1, -2*cw, 1, 1+alpha, -2*cw, 1-alpha)
}

func normalizedW0(freq, sampleRate float64) (float64, error) {
	if sampleRate <= 0 || !core.IsFinite(sampleRate) {
		return 0, fmt.Errorf("%w: filter sample rate must be > 0 and finite: %f", core.ErrInvalidParameter, sampleRate)
	}

	nyquist := sampleRate / 2
	if freq <= 0 || freq >= nyquist || !core.IsFinite(freq) {
		return 0, fmt.Errorf("%w: filter frequency must be in (0, %g): %f", core.ErrInvalidParameter, nyquist, freq)
	}

	return 2 * math.Pi * freq / sampleRate, nil
}

func qAlpha(w0, q float64) (float64, error) {
	if q <= 0 || !core.IsFinite(q) {
		return 0, fmt.Errorf("%w: filter Q must be > 0 and finite: %f", core.ErrInvalidParameter, q)
	}

	return math.Sin(w0) / (2 * q), nil
}

func bandwidthAlpha(w0, bw float64) (float64, error) {
	if bw <= 0 || !core.IsFinite(bw) {
		return 0, fmt.Errorf("%w: filter bandwidth must be > 0 octaves and finite: %f", core.ErrInvalidParameter, bw)
	}

	sw := math.Sin(w0)

	return sw * math.Sinh(math.Ln2/2*bw*w0/sw), nil
}

func normalizeBiquad(b0, b1, b2, a0, a1, a2 float64) (biquad.Coefficients, error) {
	c := biquad.Coefficients{
		B0: b0 / a0,
		B1: b1 / a0,
		B2: b2 / a0,
		A1: a1 / a0,
		A2: a2 / a0,
	}

	if !c.IsStable() {
		return biquad.Coefficients{}, fmt.Errorf("%w: designed denominator a1=%g a2=%g has poles outside the unit circle", core.ErrFilterInstability, c.A1, c.A2)
	}

	return c, nil
}
