package kk

import (
	"slices"

	"github.com/cwbudde/algo-kk/dsp/peaks"
)

// peakFraction is the share of max(df) a local maximum must reach.
const peakFraction = 0.1

// CountPeaks counts local maxima of the loss tangent that reach 10% of its
// maximum. It is a diagnostic and never fails.
func CountPeaks(lossTangent []float64) int {
	if len(lossTangent) == 0 {
		return 0
	}

	threshold := max(0, peakFraction*slices.Max(lossTangent))

	return len(peaks.Find(lossTangent, threshold))
}
