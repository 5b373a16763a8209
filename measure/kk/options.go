package kk

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/cwbudde/algo-kk/dsp/window"
)

const (
	defaultTailFraction  = 0.1
	defaultMinTailPoints = 3
	defaultPadFactor     = 2
	defaultThreshold     = 0.05
	maxAutoResample      = 8192
)

// Config holds the validation settings. Build it with ApplyOptions.
type Config struct {
	Method       Method
	EpsInfMethod EpsInfMethod

	// EpsInf is used instead of an estimate when HasEpsInf is set.
	EpsInf    float64
	HasEpsInf bool

	TailFraction  float64
	MinTailPoints int

	// Window, when non-nil, tapers eps'' before the Hilbert transform.
	Window *window.Spec

	// ResamplePoints is the uniform grid size of the resample path;
	// 0 selects min(8192, 4N).
	ResamplePoints int
	PadFactor      int

	CausalityThreshold float64

	SSKK bool
	// AnchorIndex is the SSKK anchor when HasAnchor is set, otherwise N/2.
	AnchorIndex int
	HasAnchor   bool

	Logger *slog.Logger

	// Columns overrides the table column mapping used by Validator.
	Columns *Columns
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns the defaults: auto method, fitted eps_inf over the
// top 10% (at least 3 points), no window, pad factor 2, SSKK enabled and a
// 5% threshold.
func DefaultConfig() Config {
	return Config{
		Method:             MethodAuto,
		EpsInfMethod:       EpsInfFit,
		TailFraction:       defaultTailFraction,
		MinTailPoints:      defaultMinTailPoints,
		PadFactor:          defaultPadFactor,
		CausalityThreshold: defaultThreshold,
		SSKK:               true,
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMethod selects auto, hilbert or trapz.
func WithMethod(m Method) Option {
	return func(cfg *Config) { cfg.Method = m }
}

// WithEpsInfMethod selects how eps_inf is estimated.
func WithEpsInfMethod(m EpsInfMethod) Option {
	return func(cfg *Config) { cfg.EpsInfMethod = m }
}

// WithEpsInf fixes eps_inf and disables estimation.
func WithEpsInf(v float64) Option {
	return func(cfg *Config) {
		cfg.EpsInf = v
		cfg.HasEpsInf = true
	}
}

// WithTailFraction sets the fraction of samples used for eps_inf estimation.
func WithTailFraction(v float64) Option {
	return func(cfg *Config) { cfg.TailFraction = v }
}

// WithMinTailPoints sets the minimum tail length for eps_inf estimation.
func WithMinTailPoints(n int) Option {
	return func(cfg *Config) { cfg.MinTailPoints = n }
}

// WithWindow tapers eps'' before the Hilbert transform.
func WithWindow(spec window.Spec) Option {
	return func(cfg *Config) { cfg.Window = &spec }
}

// WithResamplePoints sets the uniform grid size of the resample path.
func WithResamplePoints(n int) Option {
	return func(cfg *Config) { cfg.ResamplePoints = n }
}

// WithPadFactor sets the zero padding multiple of the Hilbert frame.
func WithPadFactor(n int) Option {
	return func(cfg *Config) { cfg.PadFactor = n }
}

// WithCausalityThreshold sets the maximum mean relative error for PASS.
func WithCausalityThreshold(v float64) Option {
	return func(cfg *Config) { cfg.CausalityThreshold = v }
}

// WithSSKK toggles the singly subtractive form of the trapz path.
func WithSSKK(enabled bool) Option {
	return func(cfg *Config) { cfg.SSKK = enabled }
}

// WithAnchorIndex sets the SSKK anchor sample.
func WithAnchorIndex(i int) Option {
	return func(cfg *Config) {
		cfg.AnchorIndex = i
		cfg.HasAnchor = true
	}
}

// WithColumns sets the column mapping a Validator reads. Validate and
// ValidateTable ignore it.
func WithColumns(cols Columns) Option {
	return func(cfg *Config) { cfg.Columns = &cols }
}

// WithLogger routes diagnostics to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(cfg *Config) { cfg.Logger = l }
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	switch {
	case c.Method < MethodAuto || c.Method > MethodTrapz:
		return fmt.Errorf("%w: unknown method %v", ErrConfiguration, c.Method)
	case c.EpsInfMethod != EpsInfFit && c.EpsInfMethod != EpsInfMean:
		return fmt.Errorf("%w: unknown eps_inf method %v", ErrConfiguration, c.EpsInfMethod)
	case c.HasEpsInf && !isFinite(c.EpsInf):
		return fmt.Errorf("%w: eps_inf must be finite, got %g", ErrConfiguration, c.EpsInf)
	case !(c.TailFraction > 0 && c.TailFraction <= 1):
		return fmt.Errorf("%w: tail fraction must be in (0, 1], got %g", ErrConfiguration, c.TailFraction)
	case c.MinTailPoints < 1:
		return fmt.Errorf("%w: min tail points must be >= 1, got %d", ErrConfiguration, c.MinTailPoints)
	case c.PadFactor < 1:
		return fmt.Errorf("%w: pad factor must be >= 1, got %d", ErrConfiguration, c.PadFactor)
	case c.ResamplePoints != 0 && c.ResamplePoints < minHilbertPoints:
		return fmt.Errorf("%w: resample points must be >= %d, got %d", ErrConfiguration, minHilbertPoints, c.ResamplePoints)
	case !(c.CausalityThreshold >= 0) || math.IsInf(c.CausalityThreshold, 0):
		return fmt.Errorf("%w: causality threshold must be finite and >= 0, got %g", ErrConfiguration, c.CausalityThreshold)
	}

	if c.Window != nil {
		if _, err := c.Window.Coefficients(minHilbertPoints); err != nil {
			return fmt.Errorf("%w: window %s: %w", ErrConfiguration, c.Window, err)
		}
	}

	return nil
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c Config) hilbertOptions() HilbertOptions {
	return HilbertOptions{Window: c.Window, PadFactor: c.PadFactor}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
