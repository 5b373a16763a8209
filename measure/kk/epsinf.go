package kk

import (
	"fmt"
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// minFitPoints is the smallest tail a 1/f^2 regression is attempted on.
const minFitPoints = 3

// EstimateEpsInf estimates the high-frequency permittivity from the upper
// tail of dk. The tail holds min(N, max(minTailPoints, floor(tailFraction*N)))
// samples.
//
// EpsInfFit regresses dk on 1/f^2 and returns the intercept; with fewer than
// three tail samples it logs a warning on logger and falls back to the mean.
// A nil logger uses slog.Default().
func EstimateEpsInf(frequency, dk []float64, method EpsInfMethod, tailFraction float64, minTailPoints int, logger *slog.Logger) (float64, error) {
	n := len(frequency)
	if len(dk) != n {
		return 0, fmt.Errorf("%w: frequency has %d samples, dk has %d", ErrInputShape, n, len(dk))
	}
	if n == 0 {
		return 0, fmt.Errorf("%w: no samples", ErrInsufficientData)
	}
	if method != EpsInfFit && method != EpsInfMean {
		return 0, fmt.Errorf("%w: unknown eps_inf method %v", ErrConfiguration, method)
	}
	if logger == nil {
		logger = slog.Default()
	}

	tail := tailLength(n, tailFraction, minTailPoints)
	tailFreq := frequency[n-tail:]
	tailDk := dk[n-tail:]

	if method == EpsInfMean {
		return stat.Mean(tailDk, nil), nil
	}

	if tail < minFitPoints {
		logger.Warn("kk: eps_inf tail too short for fit, using mean",
			"tail", tail, "min", minFitPoints)
		return stat.Mean(tailDk, nil), nil
	}

	x := make([]float64, tail)
	for i, f := range tailFreq {
		x[i] = 1 / (f * f)
	}
	if stat.Variance(x, nil) == 0 {
		logger.Warn("kk: degenerate eps_inf regression, using mean", "tail", tail)
		return stat.Mean(tailDk, nil), nil
	}

	intercept, _ := stat.LinearRegression(x, tailDk, nil, false)

	return intercept, nil
}

func tailLength(n int, fraction float64, minPoints int) int {
	tail := max(minPoints, int(fraction*float64(n)), 1)
	return min(tail, n)
}
