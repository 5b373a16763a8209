// Package peaks locates local maxima in a sampled series.
package peaks

// Find returns the indices of local maxima of x whose value is at least
// minHeight, in increasing order.
//
// A maximum is a sample (or a run of equal samples) with strictly lower
// neighbours on both sides. A flat run is reported once, at its middle
// sample (rounded down). The first and last samples are never maxima.
func Find(x []float64, minHeight float64) []int {
	var out []int

	last := len(x) - 1
	for i := 1; i < last; i++ {
		if !(x[i-1] < x[i]) {
			continue
		}

		ahead := i + 1
		for ahead < last && x[ahead] == x[i] {
			ahead++
		}

		if x[ahead] < x[i] {
			if mid := (i + ahead - 1) / 2; x[mid] >= minHeight {
				out = append(out, mid)
			}
			i = ahead
		}
	}

	return out
}
