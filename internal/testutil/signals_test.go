package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 0.5, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}

	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}

	// Quarter period of 1 kHz at 48 kHz is 12 samples.
	if math.Abs(s[12]-0.5) > 1e-12 {
		t.Fatalf("s[12] = %v, want 0.5", s[12])
	}

	RequireSliceNearlyEqual(t, s, DeterministicSine(1000, 48000, 0.5, 48), 0)
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 0.25, 256)
	RequireSliceNearlyEqual(t, a, DeterministicNoise(42, 0.25, 256), 0)
	RequirePeakAtMost(t, a, 0.25)

	if d, _ := MaxAbsDiff(a, DeterministicNoise(43, 0.25, 256)); d == 0 {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestImpulseAndDC(t *testing.T) {
	tests := []struct {
		name string
		got  []float64
		want []float64
	}{
		{name: "impulse", got: Impulse(4, 2), want: []float64{0, 0, 1, 0}},
		{name: "impulse out of range", got: Impulse(3, 10), want: []float64{0, 0, 0}},
		{name: "dc", got: DC(0.5, 3), want: []float64{0.5, 0.5, 0.5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			RequireSliceNearlyEqual(t, tt.got, tt.want, 0)
		})
	}
}
