// Package pvkernel evaluates the O(n^2) trapezoidal Kramers-Kronig kernels.
//
// Two interchangeable backends are registered: "generic", a scalar reference
// loop, and "parallel", which distributes target rows over goroutines. The
// backend is resolved once per process from the detected host features.
// Both call the same per-row accumulation, so the choice never changes the
// numbers.
package pvkernel

import (
	"sync"

	"github.com/cwbudde/algo-kk/internal/cpu"
	"github.com/cwbudde/algo-kk/internal/pvkernel/registry"

	// Backend registrations.
	_ "github.com/cwbudde/algo-kk/internal/pvkernel/arch/generic"
	_ "github.com/cwbudde/algo-kk/internal/pvkernel/arch/parallel"
)

var (
	impl     *registry.Entry
	initOnce sync.Once
	initMu   sync.Mutex
)

func selected() *registry.Entry {
	initMu.Lock()
	defer initMu.Unlock()

	initOnce.Do(func() {
		e := registry.Global.Lookup(cpu.DetectFeatures())
		if e == nil {
			panic("pvkernel: no kernel implementation registered")
		}
		if e.PV == nil || e.SSKK == nil {
			panic("pvkernel: selected implementation " + e.Name + " is incomplete")
		}
		impl = e
	})

	return impl
}

// Backend returns the name of the selected backend.
func Backend() string {
	return selected().Name
}

// PV returns the basic principal-value reconstruction of the real part.
// omega and epsImag must have equal length.
func PV(omega, epsImag []float64, epsInf float64) []float64 {
	out := make([]float64, len(omega))
	selected().PV(out, omega, epsImag, epsInf)
	return out
}

// SSKK returns the singly subtractive reconstruction anchored at
// (omegaAnchor, dkAnchor).
func SSKK(omega, epsImag []float64, dkAnchor, omegaAnchor float64) []float64 {
	out := make([]float64, len(omega))
	selected().SSKK(out, omega, epsImag, dkAnchor, omegaAnchor)
	return out
}

// Reselect clears the cached backend so the next call resolves it again.
// Tests use it together with cpu.SetForcedFeatures.
func Reselect() {
	initMu.Lock()
	defer initMu.Unlock()

	initOnce = sync.Once{}
	impl = nil
}
