package testutil

import (
	"fmt"
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails t if got and want differ in length or if
// any element pair exceeds eps (absolute tolerance).
func RequireSliceNearlyEqual(t *testing.T, got, want []float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		diff := math.Abs(got[i] - want[i])
		if diff > eps {
			t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], diff, eps)
		}
	}
}

// RequireMatrixNearlyEqual is the frame-matrix form of RequireSliceNearlyEqual.
func RequireMatrixNearlyEqual(t *testing.T, got, want [][]float64, eps float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("frame count mismatch: got %d, want %d", len(got), len(want))
	}
	for f := range got {
		if len(got[f]) != len(want[f]) {
			t.Fatalf("frame %d: length mismatch: got %d, want %d", f, len(got[f]), len(want[f]))
		}
		for i := range got[f] {
			if diff := math.Abs(got[f][i] - want[f][i]); diff > eps {
				t.Fatalf("frame %d index %d: got %v, want %v (diff %v > eps %v)", f, i, got[f][i], want[f][i], diff, eps)
			}
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t *testing.T, data []float64) {
	t.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}

// MaxAbsDiff returns the maximum absolute difference between two slices.
func MaxAbsDiff(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}
	maxDiff := 0.0
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d > maxDiff {
			maxDiff = d
		}
	}
	return maxDiff, nil
}

// MeanShortfall returns mean(max(0, ref-x)), the average amount by which x
// falls below ref.
func MeanShortfall(x, ref []float64) (float64, error) {
	if len(x) != len(ref) || len(x) == 0 {
		return 0, fmt.Errorf("length mismatch: %d vs %d", len(x), len(ref))
	}
	sum := 0.0
	for i := range x {
		if d := ref[i] - x[i]; d > 0 {
			sum += d
		}
	}
	return sum / float64(len(x)), nil
}
