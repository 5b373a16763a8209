package pvkernel

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-kk/internal/cpu"
	"github.com/cwbudde/algo-kk/internal/pvkernel/arch/generic"
	"github.com/cwbudde/algo-kk/internal/pvkernel/arch/parallel"
)

func fixture(n int) (omega, epsImag []float64) {
	omega = make([]float64, n)
	epsImag = make([]float64, n)
	for i := range omega {
		f := math.Pow(10, 6+4*float64(i)/float64(n-1))
		omega[i] = 2 * math.Pi * f
		x := omega[i] * 1e-9
		epsImag[i] = x / (1 + x*x)
	}
	return omega, epsImag
}

func TestParallelMatchesGenericBitForBit(t *testing.T) {
	for _, n := range []int{2, 7, 64, 257} {
		omega, epsImag := fixture(n)

		a := make([]float64, n)
		b := make([]float64, n)
		generic.PV(a, omega, epsImag, 2)
		parallel.PV(b, omega, epsImag, 2)
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("n=%d PV[%d]: generic %v, parallel %v", n, i, a[i], b[i])
			}
		}

		generic.SSKK(a, omega, epsImag, 2.4, omega[n/2])
		parallel.SSKK(b, omega, epsImag, 2.4, omega[n/2])
		for i := range a {
			if a[i] != b[i] {
				t.Fatalf("n=%d SSKK[%d]: generic %v, parallel %v", n, i, a[i], b[i])
			}
		}
	}
}

func TestForceGenericSelection(t *testing.T) {
	t.Cleanup(func() {
		cpu.ResetDetection()
		Reselect()
	})

	cpu.SetForcedFeatures(cpu.Features{NumCPU: 8, ForceGeneric: true})
	Reselect()
	if got := Backend(); got != "generic" {
		t.Fatalf("Backend = %q, want generic", got)
	}

	cpu.SetForcedFeatures(cpu.Features{NumCPU: 8})
	Reselect()
	if got := Backend(); got != "parallel" {
		t.Fatalf("Backend = %q, want parallel", got)
	}
}

func TestPVLengthAndFinite(t *testing.T) {
	omega, epsImag := fixture(50)
	out := PV(omega, epsImag, 2)
	if len(out) != 50 {
		t.Fatalf("len = %d, want 50", len(out))
	}
	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("PV[%d] = %v", i, v)
		}
	}

	sskk := SSKK(omega, epsImag, 2.5, omega[25])
	if sskk[25] != 2.5 {
		t.Fatalf("SSKK at anchor = %v, want 2.5", sskk[25])
	}
}

func BenchmarkPV(b *testing.B) {
	omega, epsImag := fixture(1024)
	dst := make([]float64, len(omega))
	b.Run("generic", func(b *testing.B) {
		for b.Loop() {
			generic.PV(dst, omega, epsImag, 2)
		}
	})
	b.Run("parallel", func(b *testing.B) {
		for b.Loop() {
			parallel.PV(dst, omega, epsImag, 2)
		}
	})
}
