// Package parallel is the goroutine-parallel PV kernel.
//
// Target rows are independent, so they are split into contiguous blocks and
// evaluated concurrently. Each goroutine writes a disjoint range of dst and
// calls the same row functions as the reference kernel, which makes the
// output bit-identical to package generic.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-kk/internal/cpu"
	"github.com/cwbudde/algo-kk/internal/pvkernel/registry"
	"github.com/cwbudde/algo-kk/internal/pvkernel/row"
)

// minRowsPerBlock keeps goroutine overhead below the O(n) cost of a row block.
const minRowsPerBlock = 32

func init() {
	registry.Global.Register(registry.Entry{
		Name:     "parallel",
		Level:    cpu.LevelParallel,
		Priority: 10,
		PV:       PV,
		SSKK:     SSKK,
	})
}

// PV fills dst with the basic principal-value reconstruction.
func PV(dst, omega, epsImag []float64, epsInf float64) {
	forEachBlock(len(dst), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = row.PV(omega, epsImag, epsInf, i)
		}
	})
}

// SSKK fills dst with the singly subtractive reconstruction.
func SSKK(dst, omega, epsImag []float64, dkAnchor, omegaAnchor float64) {
	forEachBlock(len(dst), func(lo, hi int) {
		for i := lo; i < hi; i++ {
			dst[i] = row.SSKK(omega, epsImag, dkAnchor, omegaAnchor, i)
		}
	})
}

// forEachBlock runs fn over [0,n) split into at most GOMAXPROCS blocks and
// returns once every block is done.
func forEachBlock(n int, fn func(lo, hi int)) {
	workers := runtime.GOMAXPROCS(0)
	if maxBlocks := n / minRowsPerBlock; workers > maxBlocks {
		workers = maxBlocks
	}
	if workers <= 1 {
		fn(0, n)
		return
	}

	block := (n + workers - 1) / workers

	var g errgroup.Group
	g.SetLimit(workers)
	for lo := 0; lo < n; lo += block {
		hi := min(lo+block, n)
		g.Go(func() error {
			fn(lo, hi)
			return nil
		})
	}
	_ = g.Wait()
}
