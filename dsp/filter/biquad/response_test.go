package biquad

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestResponseMatchesImpulseDFT(t *testing.T) {
	c := Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}
	sr := 48000.0

	s := NewSection(c)
	ir := make([]float64, 256)
	ir[0] = 1

	if err := s.ProcessBlock(ir); err != nil {
		t.Fatalf("ProcessBlock() error = %v", err)
	}

	for _, freq := range []float64{100, 1000, 5000, 20000} {
		var dft complex128
		for n, h := range ir {
			dft += complex(h, 0) * cmplx.Rect(1, -2*math.Pi*freq/sr*float64(n))
		}

		if got := c.Response(freq, sr); cmplx.Abs(got-dft) > 1e-9 {
			t.Errorf("freq=%v: Response=%v, DFT of impulse=%v", freq, got, dft)
		}
	}
}

func TestMagnitudeDB(t *testing.T) {
	c := passthrough()
	for _, freq := range []float64{0, 100, 1000, 24000} {
		if db := c.MagnitudeDB(freq, 48000); !almostEqual(db, 0, 1e-12) {
			t.Errorf("freq=%v: passthrough gain = %v dB, want 0", freq, db)
		}
	}

	half := Coefficients{B0: 0.5}
	ch := NewChain(half, half)

	if db := ch.MagnitudeDB(1000, 48000); !almostEqual(db, 20*math.Log10(0.25), 1e-12) {
		t.Errorf("chain gain = %v dB, want %v", db, 20*math.Log10(0.25))
	}
}
