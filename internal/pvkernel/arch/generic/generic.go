// Package generic is the scalar reference PV kernel.
package generic

import (
	"github.com/cwbudde/algo-kk/internal/cpu"
	"github.com/cwbudde/algo-kk/internal/pvkernel/registry"
	"github.com/cwbudde/algo-kk/internal/pvkernel/row"
)

// init registers the reference kernel with the lowest priority. It is the
// fallback when no accelerated backend is usable.
func init() {
	registry.Global.Register(registry.Entry{
		Name:     "generic",
		Level:    cpu.LevelScalar,
		Priority: 0,
		PV:       PV,
		SSKK:     SSKK,
	})
}

// PV fills dst with the basic principal-value reconstruction, one row at a time.
func PV(dst, omega, epsImag []float64, epsInf float64) {
	for i := range dst {
		dst[i] = row.PV(omega, epsImag, epsInf, i)
	}
}

// SSKK fills dst with the singly subtractive reconstruction.
func SSKK(dst, omega, epsImag []float64, dkAnchor, omegaAnchor float64) {
	for i := range dst {
		dst[i] = row.SSKK(omega, epsImag, dkAnchor, omegaAnchor, i)
	}
}
