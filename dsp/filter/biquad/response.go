package biquad

import (
	"math"
	"math/cmplx"
)

// Response returns H(e^jw) of the section at freqHz.
func (c *Coefficients) Response(freqHz, sampleRate float64) complex128 {
	z1 := cmplx.Rect(1, -2*math.Pi*freqHz/sampleRate)
	z2 := z1 * z1

	num := complex(c.B0, 0) + complex(c.B1, 0)*z1 + complex(c.B2, 0)*z2
	den := 1 + complex(c.A1, 0)*z1 + complex(c.A2, 0)*z2

	return num / den
}

// MagnitudeSquared returns |H(f)|^2.
func (c *Coefficients) MagnitudeSquared(freqHz, sampleRate float64) float64 {
	h := c.Response(freqHz, sampleRate)

	return real(h)*real(h) + imag(h)*imag(h)
}

// MagnitudeDB returns the gain at freqHz in dB.
func (c *Coefficients) MagnitudeDB(freqHz, sampleRate float64) float64 {
	return 10 * math.Log10(c.MagnitudeSquared(freqHz, sampleRate))
}

// MagnitudeDB returns the cascaded gain at freqHz in dB.
func (c *Chain) MagnitudeDB(freqHz, sampleRate float64) float64 {
	db := 0.0
	for i := range c.sections {
		db += c.sections[i].MagnitudeDB(freqHz, sampleRate)
	}

	return db
}

// IsStable reports whether both poles lie strictly inside the unit circle,
// using the stability triangle |A2| < 1, |A1| < 1 + A2.
func (c *Coefficients) IsStable() bool {
	return math.Abs(c.A2) < 1 && math.Abs(c.A1) < 1+c.A2
}
