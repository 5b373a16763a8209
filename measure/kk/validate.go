package kk

import (
	"fmt"
	"log/slog"

	"github.com/cwbudde/algo-kk/internal/pvkernel"
	"github.com/cwbudde/algo-kk/stats/residual"
)

// Validate reconstructs dk from df via the Kramers-Kronig relations and
// compares it with the measured dk.
//
// frequency is in Hz and must be strictly increasing and positive; dk is the
// real relative permittivity and df the loss tangent. Inputs are not
// modified. The verdict is PASS when the mean relative error does not exceed
// the causality threshold.
func Validate(frequency, dk, df []float64, opts ...Option) (*Result, error) {
	if err := checkSeries(frequency, dk, df); err != nil {
		return nil, err
	}

	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	n := len(frequency)
	if cfg.HasAnchor && (cfg.AnchorIndex < 0 || cfg.AnchorIndex >= n) {
		return nil, fmt.Errorf("%w: anchor index %d outside [0, %d)", ErrConfiguration, cfg.AnchorIndex, n)
	}

	log := cfg.logger()

	omega := angular(frequency)
	epsImag := make([]float64, n)
	for i := range epsImag {
		epsImag[i] = dk[i] * df[i]
	}

	epsInf := cfg.EpsInf
	if !cfg.HasEpsInf {
		var err error
		epsInf, err = EstimateEpsInf(frequency, dk, cfg.EpsInfMethod, cfg.TailFraction, cfg.MinTailPoints, log)
		if err != nil {
			return nil, err
		}
	}

	res := &Result{
		EpsInf:      epsInf,
		NumPeaks:    CountPeaks(df),
		UniformGrid: IsUniformDefault(frequency),
	}

	detail, err := selectDetail(cfg, res.UniformGrid, n)
	if err != nil {
		return nil, err
	}
	log.Debug("kk: method selected",
		"requested", cfg.Method, "detail", detail, "uniform", res.UniformGrid, "points", n)

	switch detail {
	case DetailHilbertUniform:
		res.DkKK, err = Hilbert(epsImag, epsInf, cfg.hilbertOptions())
	case DetailHilbertResample:
		log.Debug("kk: resampling onto uniform grid", "points", cfg.ResamplePoints)
		res.DkKK, err = HilbertResample(frequency, epsImag, epsInf, cfg.ResamplePoints, cfg.hilbertOptions())
	case DetailTrapzSSKK:
		anchor := n / 2
		if cfg.HasAnchor {
			anchor = cfg.AnchorIndex
		}
		res.AnchorIndex, res.HasAnchor = anchor, true
		res.Backend = pvkernel.Backend()
		res.DkKK, err = TrapzSSKK(omega, epsImag, dk[anchor], omega[anchor])
	case DetailTrapzPV:
		res.Backend = pvkernel.Backend()
		res.DkKK, err = TrapzPV(omega, epsImag, epsInf)
	}
	if err != nil {
		return nil, err
	}

	stats, err := residual.Calculate(res.DkKK, dk)
	if err != nil {
		return nil, fmt.Errorf("kk: error statistics: %w", err)
	}

	res.Detail = detail
	res.Method = detail.Method()
	res.MeanRelativeError = stats.MeanRelative
	res.MedianRelativeError = stats.MedianRelative
	res.Q90RelativeError = stats.Q90Relative
	res.RMSE = stats.RMSE
	res.Status = StatusFail
	if stats.MeanRelative <= cfg.CausalityThreshold {
		res.Status = StatusPass
	}

	log.Info("kk validation",
		slog.String("status", res.Status.String()),
		slog.String("mean_rel_err", fmt.Sprintf("%.2f%%", 100*res.MeanRelativeError)),
		slog.String("method", detail.String()))

	return res, nil
}

func selectDetail(cfg Config, uniform bool, n int) (MethodDetail, error) {
	switch cfg.Method {
	case MethodHilbert:
		if n < minHilbertPoints {
			return 0, fmt.Errorf("%w: hilbert needs at least %d samples, got %d", ErrInsufficientData, minHilbertPoints, n)
		}
		if uniform {
			return DetailHilbertUniform, nil
		}
		return DetailHilbertResample, nil
	case MethodAuto:
		if uniform && n >= minHilbertPoints {
			return DetailHilbertUniform, nil
		}
	}

	// Below three samples no SSKK row has a contributing panel endpoint.
	if cfg.SSKK && n >= minSSKKPoints {
		return DetailTrapzSSKK, nil
	}
	return DetailTrapzPV, nil
}

// checkSeries validates shape, length, finiteness, ordering and sign, in
// that order.
func checkSeries(frequency, dk, df []float64) error {
	n := len(frequency)
	if len(dk) != n || len(df) != n {
		return fmt.Errorf("%w: frequency=%d dk=%d df=%d", ErrInputShape, n, len(dk), len(df))
	}
	if n < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrInsufficientData, n)
	}

	for _, col := range []struct {
		name string
		v    []float64
	}{{"frequency", frequency}, {"dk", dk}, {"df", df}} {
		for i, v := range col.v {
			if !isFinite(v) {
				return fmt.Errorf("%w: %s[%d] = %g", ErrNonFinite, col.name, i, v)
			}
		}
	}

	for i := 1; i < n; i++ {
		if !(frequency[i] > frequency[i-1]) {
			return fmt.Errorf("%w: frequency[%d]=%g <= frequency[%d]=%g", ErrMonotonicity, i, frequency[i], i-1, frequency[i-1])
		}
	}

	if frequency[0] <= 0 {
		return fmt.Errorf("%w: frequencies must be positive, got %g", ErrDomain, frequency[0])
	}

	return nil
}
