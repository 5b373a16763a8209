// Package analytic computes the discrete analytic signal of a real sequence.
//
// The analytic signal is obtained in the frequency domain: the spectrum of
// the input is kept at DC (and Nyquist for even lengths), doubled for the
// positive frequencies and zeroed for the negative ones, then transformed
// back. Its imaginary part is the discrete Hilbert transform of the input.
package analytic

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// ErrEmptyInput is returned for a zero-length input.
var ErrEmptyInput = errors.New("analytic: empty input")

// Signal returns the analytic signal of x. Power-of-two lengths use the
// fastest FFT path; other lengths are accepted if the FFT backend supports
// them.
func Signal(x []float64) ([]complex128, error) {
	n := len(x)
	if n == 0 {
		return nil, ErrEmptyInput
	}

	plan, err := algofft.NewPlan64(n)
	if err != nil {
		return nil, fmt.Errorf("analytic: failed to create FFT plan: %w", err)
	}

	in := make([]complex128, n)
	for i, v := range x {
		in[i] = complex(v, 0)
	}

	spec := make([]complex128, n)
	if err := plan.Forward(spec, in); err != nil {
		return nil, fmt.Errorf("analytic: forward FFT: %w", err)
	}

	applyOneSided(spec)

	out := make([]complex128, n)
	if err := plan.Inverse(out, spec); err != nil {
		return nil, fmt.Errorf("analytic: inverse FFT: %w", err)
	}

	return out, nil
}

// Imag returns the imaginary part of the analytic signal of x, i.e. its
// discrete Hilbert transform.
func Imag(x []float64) ([]float64, error) {
	z, err := Signal(x)
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(z))
	for i, c := range z {
		out[i] = imag(c)
	}
	return out, nil
}

// applyOneSided doubles positive-frequency bins and clears negative ones.
// DC and, for even lengths, the Nyquist bin are left untouched.
func applyOneSided(spec []complex128) {
	n := len(spec)
	half := (n + 1) / 2
	for k := 1; k < half; k++ {
		spec[k] *= 2
	}
	start := half
	if n%2 == 0 {
		start = n/2 + 1
	}
	for k := start; k < n; k++ {
		spec[k] = 0
	}
}
