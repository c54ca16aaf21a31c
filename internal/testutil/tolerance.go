package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t on a length mismatch or on the first
// element pair further apart than eps.
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}

	for i := range got {
		if d := math.Abs(got[i] - want[i]); d > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireFinite fails t on the first NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// RequirePeakAtMost fails t on the first sample whose magnitude exceeds limit.
func RequirePeakAtMost(t *testing.T, data []float64, limit float64) {
	t.Helper()

	for i, v := range data {
		if math.Abs(v) > limit {
			t.Fatalf("index %d: |%v| exceeds %v", i, v, limit)
		}
	}
}

// MaxAbsDiff returns the largest element-wise distance between a and b.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	worst := 0.0
	for i := range a {
		worst = max(worst, math.Abs(a[i]-b[i]))
	}

	return worst, nil
}
