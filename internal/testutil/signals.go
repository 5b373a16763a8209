package testutil

import (
	"math"
	"math/rand"
)

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued series.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// LinSpace returns n evenly spaced values from start to stop inclusive.
// The last value is exactly stop.
func LinSpace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}

// LogSpace returns n values spaced evenly on a log10 scale from 10^startExp
// to 10^stopExp inclusive.
func LogSpace(startExp, stopExp float64, n int) []float64 {
	exps := LinSpace(startExp, stopExp, n)
	for i, e := range exps {
		exps[i] = math.Pow(10, e)
	}
	return exps
}
