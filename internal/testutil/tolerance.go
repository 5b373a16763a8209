package testutil

import (
	"math"
	"testing"
)

// RequireSliceNearlyEqual fails tb unless got and want have equal length and
// every pair differs by at most eps.
func RequireSliceNearlyEqual(tb testing.TB, got, want []float64, eps float64) {
	tb.Helper()
	if len(got) != len(want) {
		tb.Fatalf("length mismatch: got %d, want %d", len(got), len(want))
	}
	for i := range got {
		if d := math.Abs(got[i] - want[i]); !(d <= eps) {
			tb.Fatalf("[%d]: got %v, want %v (|diff| %.3g > %.3g)", i, got[i], want[i], d, eps)
		}
	}
}

// RequireRelClose fails tb unless got is within rtol of want, relative to
// |want|.
func RequireRelClose(tb testing.TB, got, want, rtol float64) {
	tb.Helper()
	if d := math.Abs(got - want); !(d <= rtol*math.Abs(want)) {
		tb.Fatalf("got %v, want %v (relative diff %.3g > %.3g)", got, want, d/math.Abs(want), rtol)
	}
}

// RequireFinite fails tb if any element is NaN or Inf.
func RequireFinite(tb testing.TB, data []float64) {
	tb.Helper()
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			tb.Fatalf("[%d]: non-finite value %v", i, v)
		}
	}
}
