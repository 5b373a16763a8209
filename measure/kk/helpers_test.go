package kk

import (
	"log/slog"
	"testing"

	"github.com/cwbudde/algo-kk/dsp/dielectric"
	"github.com/stretchr/testify/require"
)

// debye returns a single-pole relaxation with eps_inf=2, eps_s=3, tau=1ns.
func debye(tb testing.TB, freq []float64) (dk, df []float64) {
	tb.Helper()

	m, err := dielectric.New("debye", dielectric.Params{EpsInf: 2, DeltaEps: 1, Tau: 1e-9})
	require.NoError(tb, err)

	dk, df, err = dielectric.Spectrum(m, freq)
	require.NoError(tb, err)

	return dk, df
}

func lossOf(dk, df []float64) []float64 {
	out := make([]float64, len(dk))
	for i := range dk {
		out[i] = dk[i] * df[i]
	}
	return out
}

func quiet() Option {
	return WithLogger(slog.New(slog.DiscardHandler))
}
