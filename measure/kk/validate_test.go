package kk

import (
	"bytes"
	"log/slog"
	"math"
	"testing"

	"github.com/cwbudde/algo-kk/dsp/window"
	"github.com/cwbudde/algo-kk/internal/cpu"
	"github.com/cwbudde/algo-kk/internal/pvkernel"
	"github.com/cwbudde/algo-kk/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestValidateDebyeLogGrid(t *testing.T) {
	freq := testutil.LogSpace(6, 10, 50)
	dk, df := debye(t, freq)

	res, err := Validate(freq, dk, df, quiet())
	require.NoError(t, err)

	require.Len(t, res.DkKK, len(freq))
	testutil.RequireFinite(t, res.DkKK)
	require.Equal(t, StatusPass, res.Status)
	require.Less(t, res.MeanRelativeError, 0.05)
	require.False(t, res.UniformGrid)
	require.Equal(t, MethodTrapz, res.Method)
	require.Equal(t, DetailTrapzSSKK, res.Detail)
	require.True(t, res.HasAnchor)
	require.Equal(t, 25, res.AnchorIndex)
	require.Equal(t, dk[25], res.DkKK[25])
	require.NotEmpty(t, res.Backend)
	require.Equal(t, 1, res.NumPeaks)
	require.LessOrEqual(t, res.MedianRelativeError, res.Q90RelativeError)
}

func TestValidateUniformHilbertAgreesWithTrapz(t *testing.T) {
	freq := testutil.LinSpace(1e9, 10e9, 100)
	dk, df := debye(t, freq)

	hil, err := Validate(freq, dk, df, quiet())
	require.NoError(t, err)
	require.True(t, hil.UniformGrid)
	require.Equal(t, DetailHilbertUniform, hil.Detail)
	require.Equal(t, MethodHilbert, hil.Method)
	require.False(t, hil.HasAnchor)
	require.Empty(t, hil.Backend)

	trz, err := Validate(freq, dk, df, quiet(), WithMethod(MethodTrapz))
	require.NoError(t, err)
	require.Equal(t, DetailTrapzSSKK, trz.Detail)

	require.Equal(t, StatusPass, hil.Status)
	require.Equal(t, hil.Status, trz.Status)
	require.Less(t, math.Abs(hil.RMSE-trz.RMSE), 0.1)
}

func TestValidateExplicitHilbertResamples(t *testing.T) {
	freq := testutil.LogSpace(9, 10, 50)
	dk, df := debye(t, freq)

	res, err := Validate(freq, dk, df, quiet(), WithMethod(MethodHilbert))
	require.NoError(t, err)
	require.Equal(t, DetailHilbertResample, res.Detail)
	require.Equal(t, StatusPass, res.Status)
	require.Less(t, res.MeanRelativeError, 0.05)

	res, err = Validate(freq, dk, df, quiet(), WithMethod(MethodHilbert), WithResamplePoints(400),
		WithWindow(window.MustParseSpec("tukey:0.1")), WithPadFactor(4))
	require.NoError(t, err)
	require.Equal(t, DetailHilbertResample, res.Detail)
	testutil.RequireFinite(t, res.DkKK)
}

func TestValidateConcreteFourPoints(t *testing.T) {
	freq := []float64{1e9, 2e9, 3e9, 4e9}
	dk := []float64{2.5, 2.4, 2.3, 2.2}
	df := []float64{0.01, 0.02, 0.015, 0.01}

	res, err := Validate(freq, dk, df, quiet())
	require.NoError(t, err)
	require.Len(t, res.DkKK, 4)
	testutil.RequireFinite(t, res.DkKK)
	require.Contains(t, []Status{StatusPass, StatusFail}, res.Status)
	require.Equal(t, MethodHilbert, res.Method)
	require.Equal(t, DetailHilbertUniform, res.Detail)
}

func TestValidateSmallGrids(t *testing.T) {
	// Uniform but below the hilbert minimum: auto selects trapz.
	freq := []float64{1e9, 2e9, 3e9}
	dk := []float64{2.5, 2.4, 2.3}
	df := []float64{0.01, 0.02, 0.01}

	res, err := Validate(freq, dk, df, quiet())
	require.NoError(t, err)
	require.Equal(t, DetailTrapzSSKK, res.Detail)
	require.Equal(t, 1, res.AnchorIndex)

	_, err = Validate(freq, dk, df, quiet(), WithMethod(MethodHilbert))
	require.ErrorIs(t, err, ErrInsufficientData)

	// Two samples: SSKK has no contributing endpoint, so the basic PV form runs.
	for _, opts := range [][]Option{
		{quiet()},
		{quiet(), WithMethod(MethodTrapz)},
		{quiet(), WithSSKK(false)},
	} {
		res, err = Validate(freq[:2], dk[:2], df[:2], opts...)
		require.NoError(t, err)
		require.Equal(t, DetailTrapzPV, res.Detail)
		require.False(t, res.HasAnchor)
		require.Len(t, res.DkKK, 2)
		testutil.RequireFinite(t, res.DkKK)
	}

	// An explicit anchor is still range-checked.
	_, err = Validate(freq[:2], dk[:2], df[:2], quiet(), WithAnchorIndex(2))
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestValidateOptions(t *testing.T) {
	freq := testutil.LogSpace(6, 10, 50)
	dk, df := debye(t, freq)

	res, err := Validate(freq, dk, df, quiet(), WithSSKK(false), WithEpsInf(2.0))
	require.NoError(t, err)
	require.Equal(t, DetailTrapzPV, res.Detail)
	require.Equal(t, 2.0, res.EpsInf)

	res, err = Validate(freq, dk, df, quiet(), WithAnchorIndex(10))
	require.NoError(t, err)
	require.Equal(t, 10, res.AnchorIndex)
	require.Equal(t, dk[10], res.DkKK[10])

	res, err = Validate(freq, dk, df, quiet(), WithEpsInfMethod(EpsInfMean), WithTailFraction(0.2), WithMinTailPoints(5))
	require.NoError(t, err)
	require.InDelta(t, 2.0, res.EpsInf, 0.01)

	res, err = Validate(freq, dk, df, quiet(), WithCausalityThreshold(0))
	require.NoError(t, err)
	require.Equal(t, StatusFail, res.Status)
}

func TestValidateLogsVerdict(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	freq := testutil.LinSpace(1e9, 10e9, 32)
	dk, df := debye(t, freq)

	_, err := Validate(freq, dk, df, WithLogger(logger))
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "method selected")
	require.Contains(t, out, "status=PASS")
	require.Contains(t, out, "method=hilbert-uniform")
}

func TestValidateInputErrors(t *testing.T) {
	nan := math.NaN()

	tests := []struct {
		name         string
		freq, dk, df []float64
		want         error
	}{
		{"shape", []float64{1e9, 2e9, 3e9}, []float64{2, 2}, []float64{0, 0, 0}, ErrInputShape},
		{"single", []float64{1e9}, []float64{2}, []float64{0.01}, ErrInsufficientData},
		{"unsorted", []float64{1e9, 3e9, 2e9}, []float64{2, 2, 2}, []float64{0, 0, 0}, ErrMonotonicity},
		{"duplicate", []float64{1e9, 1e9, 2e9}, []float64{2, 2, 2}, []float64{0, 0, 0}, ErrMonotonicity},
		{"zero", []float64{0, 1e9, 2e9}, []float64{2, 2, 2}, []float64{0, 0, 0}, ErrDomain},
		{"negative", []float64{-1e9, 1e9, 2e9}, []float64{2, 2, 2}, []float64{0, 0, 0}, ErrDomain},
		{"nan freq", []float64{1e9, nan, 3e9}, []float64{2, 2, 2}, []float64{0, 0, 0}, ErrNonFinite},
		{"nan dk", []float64{1e9, 2e9, 3e9}, []float64{2, nan, 2}, []float64{0, 0, 0}, ErrNonFinite},
		{"inf df", []float64{1e9, 2e9, 3e9}, []float64{2, 2, 2}, []float64{0, math.Inf(1), 0}, ErrNonFinite},
		{"nan beats order", []float64{3e9, 2e9, nan}, []float64{2, 2, 2}, []float64{0, 0, 0}, ErrNonFinite},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.freq, tt.dk, tt.df, quiet())
			require.ErrorIs(t, err, tt.want)
		})
	}
}

func TestValidateConfigurationErrors(t *testing.T) {
	freq := testutil.LinSpace(1e9, 10e9, 16)
	dk, df := debye(t, freq)

	tests := []struct {
		name string
		opt  Option
	}{
		{"tail fraction zero", WithTailFraction(0)},
		{"tail fraction above one", WithTailFraction(1.5)},
		{"min tail points", WithMinTailPoints(0)},
		{"threshold negative", WithCausalityThreshold(-0.1)},
		{"threshold nan", WithCausalityThreshold(math.NaN())},
		{"pad factor", WithPadFactor(0)},
		{"resample points", WithResamplePoints(2)},
		{"eps_inf inf", WithEpsInf(math.Inf(1))},
		{"method", WithMethod(Method(9))},
		{"eps_inf method", WithEpsInfMethod(EpsInfMethod(9))},
		{"anchor", WithAnchorIndex(16)},
		{"anchor negative", WithAnchorIndex(-1)},
		{"window", WithWindow(window.Spec{Name: "tukey", Type: window.TypeTukey, Param: 2})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(freq, dk, df, quiet(), tt.opt)
			require.ErrorIs(t, err, ErrConfiguration)
		})
	}
}

func TestValidateDegenerateInputs(t *testing.T) {
	freq := testutil.LinSpace(1e9, 10e9, 20)

	res, err := Validate(freq, testutil.DC(3, 20), make([]float64, 20), quiet())
	require.NoError(t, err)
	require.Equal(t, StatusPass, res.Status)
	require.Zero(t, res.NumPeaks)
	require.InDelta(t, 0, res.MeanRelativeError, 1e-12)
}

func TestValidateDoesNotModifyInput(t *testing.T) {
	freq := testutil.LogSpace(6, 10, 40)
	dk, df := debye(t, freq)
	f0, dk0, df0 := append([]float64(nil), freq...), append([]float64(nil), dk...), append([]float64(nil), df...)

	_, err := Validate(freq, dk, df, quiet(), WithWindow(window.MustParseSpec("hann")), WithMethod(MethodHilbert))
	require.NoError(t, err)
	require.Equal(t, f0, freq)
	require.Equal(t, dk0, dk)
	require.Equal(t, df0, df)
}

func TestValidateIdempotent(t *testing.T) {
	for _, method := range []Method{MethodAuto, MethodHilbert, MethodTrapz} {
		t.Run(method.String(), func(t *testing.T) {
			freq := testutil.LogSpace(7, 10, 64)
			dk, df := debye(t, freq)

			a, err := Validate(freq, dk, df, quiet(), WithMethod(method))
			require.NoError(t, err)
			b, err := Validate(freq, dk, df, quiet(), WithMethod(method))
			require.NoError(t, err)
			require.Equal(t, a, b)
		})
	}
}

func TestValidateBackendsAgree(t *testing.T) {
	t.Cleanup(func() {
		cpu.ResetDetection()
		pvkernel.Reselect()
	})

	freq := testutil.LogSpace(6, 10, 300)
	dk, df := debye(t, freq)

	cpu.SetForcedFeatures(cpu.Features{ForceGeneric: true, NumCPU: 1})
	pvkernel.Reselect()
	ref, err := Validate(freq, dk, df, quiet())
	require.NoError(t, err)
	require.Equal(t, "generic", ref.Backend)

	cpu.SetForcedFeatures(cpu.Features{NumCPU: 8})
	pvkernel.Reselect()
	par, err := Validate(freq, dk, df, quiet())
	require.NoError(t, err)
	require.Equal(t, "parallel", par.Backend)

	require.Equal(t, ref.DkKK, par.DkKK)
}
