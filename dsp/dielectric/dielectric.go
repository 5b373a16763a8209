// Package dielectric evaluates relaxation models of the complex permittivity.
//
// Models use the engineering sign convention eps(w) = eps'(w) - i*eps''(w),
// so a lossy material has a positive loss tangent df = eps''/eps'. They are
// causal by construction and serve as reference spectra for
// Kramers-Kronig checks.
package dielectric

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"
)

// ErrInvalidParameter is returned for out-of-range model parameters.
var ErrInvalidParameter = errors.New("dielectric: invalid model parameter")

// ErrUnknownModel is returned by New for an unregistered model name.
var ErrUnknownModel = errors.New("dielectric: unknown model")

// Model is a frequency-domain permittivity model.
type Model interface {
	// Name returns the registry name of the model.
	Name() string
	// Permittivity returns eps(w) at angular frequency omega (rad/s).
	Permittivity(omega float64) complex128
}

// Params carries the parameters shared by the relaxation models.
type Params struct {
	EpsInf   float64 // high-frequency permittivity
	DeltaEps float64 // relaxation strength eps_s - eps_inf
	Tau      float64 // relaxation time in seconds
	Alpha    float64 // Cole-Cole broadening, 0 gives Debye
}

// Debye is the single-pole relaxation eps_inf + delta/(1 + i*w*tau).
type Debye struct {
	EpsInf   float64
	DeltaEps float64
	Tau      float64
}

// Name implements Model.
func (Debye) Name() string { return "debye" }

// Permittivity implements Model.
func (d Debye) Permittivity(omega float64) complex128 {
	return complex(d.EpsInf, 0) + complex(d.DeltaEps, 0)/(1+complex(0, omega*d.Tau))
}

// ColeCole is the symmetric broadened relaxation
// eps_inf + delta/(1 + (i*w*tau)^(1-alpha)).
type ColeCole struct {
	EpsInf   float64
	DeltaEps float64
	Tau      float64
	Alpha    float64
}

// Name implements Model.
func (ColeCole) Name() string { return "cole-cole" }

// Permittivity implements Model.
func (c ColeCole) Permittivity(omega float64) complex128 {
	iwt := complex(0, omega*c.Tau)
	return complex(c.EpsInf, 0) + complex(c.DeltaEps, 0)/(1+cmplx.Pow(iwt, complex(1-c.Alpha, 0)))
}

type bounds struct{ lo, hi float64 }

var (
	epsInfBounds   = bounds{1, 20}
	deltaEpsBounds = bounds{0, 20}
	tauBounds      = bounds{1e-15, 1}
	alphaBounds    = bounds{0, 1}
)

func (b bounds) check(name string, v float64) error {
	if math.IsNaN(v) || v < b.lo || v > b.hi {
		return fmt.Errorf("%w: %s=%g outside [%g, %g]", ErrInvalidParameter, name, v, b.lo, b.hi)
	}
	return nil
}

type factory struct {
	usesAlpha bool
	build     func(Params) Model
}

var models = map[string]factory{
	"debye": {false, func(p Params) Model {
		return Debye{EpsInf: p.EpsInf, DeltaEps: p.DeltaEps, Tau: p.Tau}
	}},
	"cole-cole": {true, func(p Params) Model {
		return ColeCole{EpsInf: p.EpsInf, DeltaEps: p.DeltaEps, Tau: p.Tau, Alpha: p.Alpha}
	}},
}

// Names returns the registered model names in sorted order.
func Names() []string {
	out := make([]string, 0, len(models))
	for name := range models {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// New builds the named model after checking p against the model's
// parameter bounds.
func New(name string, p Params) (Model, error) {
	f, ok := models[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %s)", ErrUnknownModel, name, strings.Join(Names(), ", "))
	}

	if err := epsInfBounds.check("eps_inf", p.EpsInf); err != nil {
		return nil, err
	}
	if err := deltaEpsBounds.check("delta_eps", p.DeltaEps); err != nil {
		return nil, err
	}
	if err := tauBounds.check("tau", p.Tau); err != nil {
		return nil, err
	}
	if f.usesAlpha {
		if err := alphaBounds.check("alpha", p.Alpha); err != nil {
			return nil, err
		}
	}

	return f.build(p), nil
}

// Spectrum evaluates m at the given frequencies (Hz) and returns the real
// permittivity and the loss tangent.
func Spectrum(m Model, freqHz []float64) (dk, df []float64, err error) {
	if m == nil {
		return nil, nil, fmt.Errorf("%w: nil model", ErrInvalidParameter)
	}

	dk = make([]float64, len(freqHz))
	df = make([]float64, len(freqHz))
	for i, f := range freqHz {
		if !(f > 0) || math.IsInf(f, 0) {
			return nil, nil, fmt.Errorf("%w: frequency must be positive and finite at index %d: %g", ErrInvalidParameter, i, f)
		}
		eps := m.Permittivity(2 * math.Pi * f)
		dk[i] = real(eps)
		df[i] = -imag(eps) / real(eps)
	}

	return dk, df, nil
}
