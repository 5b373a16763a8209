package kk

import "math"

const (
	defaultUniformRTol = 1e-5
	defaultUniformATol = 1e-8
)

// IsUniform reports whether consecutive differences of frequency all match
// the first one within atol + rtol*|d0|. Fewer than two samples are uniform.
func IsUniform(frequency []float64, rtol, atol float64) bool {
	if len(frequency) < 2 {
		return true
	}

	d0 := frequency[1] - frequency[0]
	tol := atol + rtol*math.Abs(d0)
	for i := 2; i < len(frequency); i++ {
		if !(math.Abs(frequency[i]-frequency[i-1]-d0) <= tol) {
			return false
		}
	}

	return true
}

// IsUniformDefault is IsUniform with rtol=1e-5 and atol=1e-8.
func IsUniformDefault(frequency []float64) bool {
	return IsUniform(frequency, defaultUniformRTol, defaultUniformATol)
}
