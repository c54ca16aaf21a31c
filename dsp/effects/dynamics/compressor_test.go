package dynamics

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-audiofx/dsp/core"
	"github.com/cwbudde/algo-audiofx/internal/testutil"
)

func TestCompressorStaticCurve(t *testing.T) {
	c, err := NewCompressor(48000,
		WithCompressorThreshold(-20),
		WithCompressorKnee(10),
		WithCompressorRatio(4),
	)
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	tests := []struct {
		name  string
		level float64
		want  float64
	}{
		{name: "well below", level: -40, want: 0},
		{name: "knee start", level: -25, want: 0},
		// over=0, x=5: -0.75*25/20
		{name: "threshold", level: -20, want: -0.9375},
		{name: "above knee", level: 0, want: -15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.GainDB(tt.level); math.Abs(got-tt.want) > 1e-12 {
				t.Fatalf("GainDB(%v) = %v, want %v", tt.level, got, tt.want)
			}
		})
	}
}

func TestCompressorHardKnee(t *testing.T) {
	c, _ := NewCompressor(48000, WithCompressorThreshold(-10), WithCompressorKnee(0), WithCompressorRatio(2))
	if got := c.GainDB(-11); got != 0 {
		t.Fatalf("GainDB(-11) = %v, want 0", got)
	}
	if got := c.GainDB(0); math.Abs(got+5) > 1e-12 {
		t.Fatalf("GainDB(0) = %v, want -5", got)
	}
}

func TestCompressorReducesLoudSignal(t *testing.T) {
	c, err := NewCompressor(48000)
	if err != nil {
		t.Fatalf("NewCompressor() error = %v", err)
	}

	in := testutil.DeterministicSine(440, 48000, 0.9, 48000)
	out := append([]float64(nil), in...)
	c.ProcessInPlace(out)
	testutil.RequireFinite(t, out)

	if core.RMS(out[4800:]) >= core.RMS(in[4800:]) {
		t.Fatal("compressor should reduce a loud sine")
	}
}

func TestCompressorValidation(t *testing.T) {
	opts := []CompressorOption{
		WithCompressorThreshold(1),
		WithCompressorKnee(-1),
		WithCompressorRatio(50),
		WithCompressorTimes(0, 0.1),
	}
	for i, opt := range opts {
		if _, err := NewCompressor(48000, opt); !errors.Is(err, core.ErrInvalidParameter) {
			t.Fatalf("option %d: error = %v, want ErrInvalidParameter", i, err)
		}
	}
}
