// Package row holds the per-target accumulation shared by every PV kernel
// backend. Backends differ only in how they schedule rows, so the values they
// produce are bit-identical.
package row

import "math"

// PV returns eps_inf + (2/pi) * PV integral of w*eps''(w)/(w^2 - wi^2) for
// target index i, integrated with the trapezoidal rule over all panels.
//
// An endpoint whose own denominator is exactly zero contributes nothing; the
// other endpoint of the same panel still does.
func PV(omega, epsImag []float64, epsInf float64, i int) float64 {
	wi2 := omega[i] * omega[i]

	integral := 0.0
	for j := 0; j < len(omega)-1; j++ {
		wj, wj1 := omega[j], omega[j+1]

		dj := wj*wj - wi2
		dj1 := wj1*wj1 - wi2

		var fj, fj1 float64
		if dj != 0 {
			fj = wj * epsImag[j] / dj
		}
		if dj1 != 0 {
			fj1 = wj1 * epsImag[j+1] / dj1
		}

		integral += 0.5 * (fj + fj1) * (wj1 - wj)
	}

	return epsInf + (2/math.Pi)*integral
}

// SSKK returns the singly subtractive reconstruction for target index i,
// anchored at (omegaAnchor, dkAnchor):
//
//	dk(wi) = dk0 + 2(wi^2 - w0^2)/pi * integral w*eps''(w) / ((w^2-wi^2)(w^2-w0^2)) dw
//
// The same per-endpoint guard as PV applies to the product denominator. At
// wi == w0 the prefactor is exactly zero and dkAnchor is returned unchanged.
func SSKK(omega, epsImag []float64, dkAnchor, omegaAnchor float64, i int) float64 {
	wi2 := omega[i] * omega[i]
	w02 := omegaAnchor * omegaAnchor
	prefactor := 2 * (wi2 - w02) / math.Pi

	integral := 0.0
	for j := 0; j < len(omega)-1; j++ {
		wj, wj1 := omega[j], omega[j+1]
		wj2, wj12 := wj*wj, wj1*wj1

		dj := (wj2 - wi2) * (wj2 - w02)
		dj1 := (wj12 - wi2) * (wj12 - w02)

		var fj, fj1 float64
		if dj != 0 {
			fj = wj * epsImag[j] / dj
		}
		if dj1 != 0 {
			fj1 = wj1 * epsImag[j+1] / dj1
		}

		integral += 0.5 * (fj + fj1) * (wj1 - wj)
	}

	return dkAnchor + prefactor*integral
}
