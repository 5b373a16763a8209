package kk

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-kk/dsp/analytic"
	"github.com/cwbudde/algo-kk/dsp/interp"
	"github.com/cwbudde/algo-kk/dsp/window"
)

const minHilbertPoints = 4

// HilbertOptions configures the FFT route.
type HilbertOptions struct {
	// Window, when non-nil, multiplies eps'' by the periodic window before
	// the transform. The result is not renormalised.
	Window *window.Spec
	// PadFactor multiplies the odd-extended length 2N+1 to give the FFT
	// frame length. Zero selects 2.
	PadFactor int
}

func (o HilbertOptions) padFactor() (int, error) {
	switch {
	case o.PadFactor == 0:
		return defaultPadFactor, nil
	case o.PadFactor < 1:
		return 0, fmt.Errorf("%w: pad factor must be >= 1, got %d", ErrConfiguration, o.PadFactor)
	default:
		return o.PadFactor, nil
	}
}

// Hilbert reconstructs the real permittivity from eps'' sampled on a uniform
// grid starting near zero frequency.
//
// eps'' is extended to the odd sequence [-reverse(x), 0, x], zero padded to
// PadFactor*(2N+1) samples and passed through the discrete analytic signal. The reconstruction is
// epsInf - Im(analytic) at the positive-frequency samples, which is the
// dispersion integral (2/pi) PV int W eps''(W) / (W^2 - w^2) dW for the
// e' - i e'' sign convention.
func Hilbert(epsImag []float64, epsInf float64, opts HilbertOptions) ([]float64, error) {
	n := len(epsImag)
	if n < minHilbertPoints {
		return nil, fmt.Errorf("%w: hilbert needs at least %d samples, got %d", ErrInsufficientData, minHilbertPoints, n)
	}

	pad, err := opts.padFactor()
	if err != nil {
		return nil, err
	}

	x := epsImag
	if opts.Window != nil {
		coeffs, err := opts.Window.Coefficients(n)
		if err != nil {
			return nil, fmt.Errorf("%w: window %s: %w", ErrConfiguration, opts.Window, err)
		}
		if x, err = window.ApplyCoefficients(epsImag, coeffs); err != nil {
			return nil, fmt.Errorf("%w: window %s: %w", ErrConfiguration, opts.Window, err)
		}
	}

	extended := 2*n + 1
	frame := make([]float64, pad*extended)
	for i, v := range x {
		frame[n-1-i] = -v
		frame[n+1+i] = v
	}

	h, err := analytic.Imag(frame)
	if err != nil {
		return nil, fmt.Errorf("kk: hilbert transform: %w", err)
	}

	out := make([]float64, n)
	for i := range out {
		out[i] = epsInf - h[n+1+i]
	}

	return out, nil
}

// HilbertResample applies Hilbert to data on a non-uniform grid. eps'' is
// interpolated with a not-a-knot cubic spline onto points uniformly spaced
// angular frequencies spanning the input (0 selects min(8192, 4N)),
// transformed, and interpolated back onto the input grid.
//
// The resampling introduces a bias with no error bound; results near sharp
// features or sparse regions of the grid should be cross-checked with the
// trapz route.
func HilbertResample(frequency, epsImag []float64, epsInf float64, points int, opts HilbertOptions) ([]float64, error) {
	n := len(frequency)
	if len(epsImag) != n {
		return nil, fmt.Errorf("%w: frequency has %d samples, eps'' has %d", ErrInputShape, n, len(epsImag))
	}
	if n < minHilbertPoints {
		return nil, fmt.Errorf("%w: hilbert needs at least %d samples, got %d", ErrInsufficientData, minHilbertPoints, n)
	}

	switch {
	case points == 0:
		points = min(maxAutoResample, 4*n)
	case points < minHilbertPoints:
		return nil, fmt.Errorf("%w: resample points must be >= %d, got %d", ErrConfiguration, minHilbertPoints, points)
	}

	omega := angular(frequency)
	grid := linspace(omega[0], omega[n-1], points)

	uniform, err := interp.Cubic(omega, epsImag, grid)
	if err != nil {
		return nil, fmt.Errorf("kk: resample eps'': %w", err)
	}

	dkUniform, err := Hilbert(uniform, epsInf, opts)
	if err != nil {
		return nil, err
	}

	out, err := interp.Cubic(grid, dkUniform, omega)
	if err != nil {
		return nil, fmt.Errorf("kk: resample back: %w", err)
	}

	return out, nil
}

func angular(frequency []float64) []float64 {
	omega := make([]float64, len(frequency))
	for i, f := range frequency {
		omega[i] = 2 * math.Pi * f
	}
	return omega
}

// linspace returns n points from start to stop inclusive; the last point is
// exactly stop so the back-interpolation never extrapolates.
func linspace(start, stop float64, n int) []float64 {
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	out[n-1] = stop
	return out
}
