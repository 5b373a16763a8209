// Package residual summarises the disagreement between a reconstructed and a
// measured series.
package residual

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/cwbudde/algo-vecmath"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ErrLengthMismatch is returned when the two series differ in length.
var ErrLengthMismatch = errors.New("residual: series length mismatch")

// ErrEmpty is returned for empty series.
var ErrEmpty = errors.New("residual: empty series")

const (
	absoluteFloor = 1e-12
	relativeFloor = 1e-6
)

// Stats holds per-sample relative errors and their summary statistics.
type Stats struct {
	Length int

	// Relative is |predicted - measured| / (|measured| + Floor) per sample.
	Relative []float64

	// Floor is the additive denominator term max(1e-12, 1e-6*median|measured|),
	// which keeps the relative error bounded near zero crossings.
	Floor float64

	MeanRelative   float64
	MedianRelative float64
	Q90Relative    float64 // 90th percentile, see Quantile
	MaxRelative    float64

	// RMSE is the unnormalised root-mean-square difference.
	RMSE float64
}

// Calculate compares predicted against measured.
func Calculate(predicted, measured []float64) (Stats, error) {
	n := len(measured)
	if len(predicted) != n {
		return Stats{}, fmt.Errorf("%w: %d != %d", ErrLengthMismatch, len(predicted), n)
	}
	if n == 0 {
		return Stats{}, ErrEmpty
	}

	absMeasured := make([]float64, n)
	for i, v := range measured {
		absMeasured[i] = math.Abs(v)
	}

	scale, err := stats.Median(absMeasured)
	if err != nil {
		return Stats{}, fmt.Errorf("residual: median: %w", err)
	}
	floor := math.Max(absoluteFloor, relativeFloor*scale)

	diff := make([]float64, n)
	floats.SubTo(diff, predicted, measured)

	rel := make([]float64, n)
	for i := range diff {
		rel[i] = math.Abs(diff[i]) / (absMeasured[i] + floor)
	}

	sq := make([]float64, n)
	vecmath.MulBlock(sq, diff, diff)

	sorted := slices.Clone(rel)
	slices.Sort(sorted)

	median, err := stats.Median(sorted)
	if err != nil {
		return Stats{}, fmt.Errorf("residual: median: %w", err)
	}

	return Stats{
		Length:         n,
		Relative:       rel,
		Floor:          floor,
		MeanRelative:   stat.Mean(rel, nil),
		MedianRelative: median,
		Q90Relative:    Quantile(sorted, 0.9),
		MaxRelative:    sorted[n-1],
		RMSE:           math.Sqrt(floats.Sum(sq) / float64(n)),
	}, nil
}

// Quantile returns the p-quantile of sorted by linear interpolation between
// order statistics at position p*(n-1) (Hyndman-Fan type 7). sorted must be
// ascending and non-empty; p is clamped to [0, 1].
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	h := math.Min(math.Max(p, 0), 1) * float64(n-1)
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := h - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
