package signal

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/core"
)

func TestSineLength(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(48000))

	s, err := g.Sine(1000, 1, 64)
	if err != nil {
		t.Fatalf("Sine() error = %v", err)
	}

	if len(s) != 64 {
		t.Fatalf("len = %d, want 64", len(s))
	}
}

func TestSineValidation(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(8000))

	tests := []struct {
		name    string
		freq    float64
		samples int
	}{
		{name: "no samples", freq: 440, samples: 0},
		{name: "zero frequency", freq: 0, samples: 8},
		{name: "at nyquist", freq: 4000, samples: 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := g.Sine(tt.freq, 1, tt.samples); !errors.Is(err, core.ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
		})
	}
}

func TestGeneratorNoiseSeeded(t *testing.T) {
	g1 := NewGeneratorWithOptions(nil, WithSeed(42))
	g2 := NewGeneratorWithOptions(nil, WithSeed(42))
	g3 := NewGeneratorWithOptions(nil, WithSeed(43))

	n1, err := g1.Noise(Pink, 1, 32)
	if err != nil {
		t.Fatalf("Noise() error = %v", err)
	}

	n2, _ := g2.Noise(Pink, 1, 32)
	n3, _ := g3.Noise(Pink, 1, 32)

	same := true

	for i := range n1 {
		if n1[i] != n2[i] {
			t.Fatalf("noise mismatch at %d: %v != %v", i, n1[i], n2[i])
		}

		if n1[i] != n3[i] {
			same = false
		}
	}

	if same {
		t.Fatal("different seeds produced identical noise")
	}
}
