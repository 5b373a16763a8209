package kk

import (
	"fmt"

	"github.com/cwbudde/algo-kk/internal/pvkernel"
)

const minSSKKPoints = 3

// TrapzPV evaluates the basic principal-value dispersion integral
//
//	dk(w_i) = epsInf + (2/pi) * PV int W eps''(W) / (W^2 - w_i^2) dW
//
// with the trapezoidal rule on the sample grid. A panel endpoint whose
// denominator is exactly zero contributes nothing; the other endpoint of the
// panel still does.
func TrapzPV(omega, epsImag []float64, epsInf float64) ([]float64, error) {
	if err := checkKernelInput(omega, epsImag, 2, ErrInsufficientData); err != nil {
		return nil, err
	}
	return pvkernel.PV(omega, epsImag, epsInf), nil
}

// TrapzSSKK evaluates the singly subtractive form anchored at a measured
// point (omegaAnchor, dkAnchor):
//
//	dk(w_i) = dk0 + 2(w_i^2 - w0^2)/pi * PV int W eps''(W) / ((W^2 - w_i^2)(W^2 - w0^2)) dW
//
// The prefactor vanishes at the anchor, which is therefore reproduced
// exactly. At least three samples are required; with two, every
// non-anchor row has no contributing endpoint.
func TrapzSSKK(omega, epsImag []float64, dkAnchor, omegaAnchor float64) ([]float64, error) {
	if err := checkKernelInput(omega, epsImag, minSSKKPoints, ErrDomain); err != nil {
		return nil, err
	}
	return pvkernel.SSKK(omega, epsImag, dkAnchor, omegaAnchor), nil
}

func checkKernelInput(omega, epsImag []float64, minPoints int, short error) error {
	if len(omega) != len(epsImag) {
		return fmt.Errorf("%w: omega has %d samples, eps'' has %d", ErrInputShape, len(omega), len(epsImag))
	}
	if len(omega) < minPoints {
		return fmt.Errorf("%w: need at least %d samples, got %d", short, minPoints, len(omega))
	}
	return nil
}
