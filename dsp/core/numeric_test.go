package core

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		min      float64
		max      float64
		expected float64
	}{
		{name: "inside", value: 0.5, min: -1, max: 1, expected: 0.5},
		{name: "below", value: -1.5, min: -1, max: 1, expected: -1},
		{name: "above", value: 2, min: -1, max: 1, expected: 1},
		{name: "swapped", value: 2, min: 1, max: -1, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.value, tt.min, tt.max)
			if got != tt.expected {
				t.Fatalf("Clamp() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestIsFinite(t *testing.T) {
	if !IsFinite(0.25) {
		t.Fatal("0.25 should be finite")
	}
	if IsFinite(math.NaN()) || IsFinite(math.Inf(1)) || IsFinite(math.Inf(-1)) {
		t.Fatal("NaN and Inf must not be finite")
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(1.0, 1.0+1e-13, 1e-12) {
		t.Fatal("expected values to be nearly equal")
	}
	if NearlyEqual(1.0, 1.1, 1e-3) {
		t.Fatal("expected values to differ")
	}
}

func TestRMSAndPeak(t *testing.T) {
	x := []float64{1, -1, 1, -1}
	if got := RMS(x); !NearlyEqual(got, 1, 1e-12) {
		t.Fatalf("RMS = %v, want 1", got)
	}
	if got := Peak([]float64{0.1, -0.7, 0.3}); got != 0.7 {
		t.Fatalf("Peak = %v, want 0.7", got)
	}
	if RMS(nil) != 0 || Peak(nil) != 0 {
		t.Fatal("empty input must report 0")
	}
}

func TestDBConversions(t *testing.T) {
	linear := DBToLinear(-6)
	db := LinearToDB(linear)
	if !NearlyEqual(db, -6, 1e-10) {
		t.Fatalf("LinearToDB(DBToLinear(-6)) = %v, want -6", db)
	}
	if !math.IsInf(LinearToDB(0), -1) {
		t.Fatal("expected -Inf for zero")
	}
	if !math.IsNaN(LinearToDB(-1)) {
		t.Fatal("expected NaN for negative amplitude")
	}
}

func TestMillisToSamples(t *testing.T) {
	if got := MillisToSamples(250, 44100); got != 11025 {
		t.Fatalf("MillisToSamples(250, 44100) = %d, want 11025", got)
	}
	if got := MillisToSamples(0, 48000); got != 0 {
		t.Fatalf("MillisToSamples(0, 48000) = %d, want 0", got)
	}
}

func TestErrorsWrap(t *testing.T) {
	err := fmt.Errorf("%w: echo delay must be in [1, 2000] ms: %g", ErrInvalidParameter, 0.0)
	if !errors.Is(err, ErrInvalidParameter) {
		t.Fatal("wrapped error should match ErrInvalidParameter")
	}
	if errors.Is(err, ErrEncodeFailure) {
		t.Fatal("wrapped error must not match unrelated sentinel")
	}
}
