// Package window generates taper windows and parses named window specs.
//
// A window spec is a string of the form "name" or "name:param", for example
// "hann", "kaiser:8.6" or "tukey:0.5". Specs are validated when parsed, so an
// invalid spec fails before any data is processed.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
	TypeBlackmanHarris
	TypeNuttall
	TypeFlatTop
	TypeKaiser
	TypeTukey
	TypeTriangle
	TypeBartlett
	TypeCosine
	TypeGauss
)

// Option configures window generation.
type Option func(*config)

type config struct {
	alpha    float64
	periodic bool
}

// WithAlpha configures the shape parameter of Kaiser (beta), Tukey (taper
// fraction) and Gauss (width) windows.
func WithAlpha(v float64) Option {
	return func(c *config) {
		if v >= 0 {
			c.alpha = v
		}
	}
}

// WithPeriodic selects the periodic (DFT-even) form instead of the symmetric form.
func WithPeriodic() Option {
	return func(c *config) {
		c.periodic = true
	}
}

// shape evaluates a window at normalised position x in [0, 1].
type shape func(x, param float64) float64

var shapes = map[Type]shape{
	TypeRectangular:    func(float64, float64) float64 { return 1 },
	TypeHann:           cosineSum(0.5, 0.5),
	TypeHamming:        cosineSum(0.54, 0.46),
	TypeBlackman:       cosineSum(0.42, 0.5, 0.08),
	TypeBlackmanHarris: cosineSum(0.35875, 0.48829, 0.14128, 0.01168),
	TypeNuttall:        cosineSum(0.3635819, 0.4891775, 0.1365995, 0.0106411),
	TypeFlatTop:        cosineSum(0.21557895, 0.41663158, 0.277263158, 0.083578947, 0.006947368),
	TypeKaiser:         kaiser,
	TypeTukey:          tukey,
	TypeTriangle:       bartlett,
	TypeBartlett:       bartlett,
	TypeCosine:         func(x, _ float64) float64 { return math.Sin(math.Pi * x) },
	TypeGauss:          gauss,
}

// Generate returns window coefficients of the given length. Unknown types
// yield a rectangular window.
func Generate(t Type, length int, opts ...Option) []float64 {
	if length <= 0 {
		return nil
	}

	cfg := config{alpha: 1}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	eval, ok := shapes[t]
	if !ok {
		eval = shapes[TypeRectangular]
	}

	// The periodic form is the symmetric window of length+1 without its
	// last sample.
	span := length - 1
	if cfg.periodic {
		span = length
	}

	out := make([]float64, length)
	for i := range out {
		var x float64
		switch {
		case t == TypeTriangle:
			// Non-zero end points: the Bartlett shape on a grid two
			// samples wider.
			x = float64(i+1) / float64(span+2)
		case span > 0:
			x = float64(i) / float64(span)
		}
		out[i] = eval(x, cfg.alpha)
	}

	return out
}

// Apply multiplies buf in place by the selected window.
func Apply(t Type, buf []float64, opts ...Option) {
	if len(buf) == 0 {
		return
	}

	vecmath.MulBlockInPlace(buf, Generate(t, len(buf), opts...))
}

// ApplyCoefficients multiplies samples with coefficients and returns a new slice.
func ApplyCoefficients(samples, coeffs []float64) ([]float64, error) {
	if len(samples) != len(coeffs) {
		return nil, errMismatchedLength
	}

	out := make([]float64, len(samples))
	vecmath.MulBlock(out, samples, coeffs)

	return out, nil
}

// cosineSum returns a0 - a1 cos(2 pi x) + a2 cos(4 pi x) - ...
func cosineSum(a ...float64) shape {
	return func(x, _ float64) float64 {
		sum := 0.0
		sign := 1.0
		for k, c := range a {
			sum += sign * c * math.Cos(2*math.Pi*float64(k)*x)
			sign = -sign
		}
		return sum
	}
}

func bartlett(x, _ float64) float64 {
	return 1 - math.Abs(2*x-1)
}

func gauss(x, width float64) float64 {
	v := width * (2*x - 1)
	return math.Exp(-math.Ln2 * v * v)
}

func kaiser(x, beta float64) float64 {
	if beta <= 0 {
		return 1
	}
	r := 2*x - 1
	return besselI0(beta*math.Sqrt(max(0, 1-r*r))) / besselI0(beta)
}

// tukey is flat in the middle with cosine tapers covering alpha/2 of the
// length at each end; alpha >= 1 is a Hann window.
func tukey(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}
	half := min(alpha, 1) / 2
	if edge := min(x, 1-x); edge < half {
		return 0.5 * (1 - math.Cos(math.Pi*edge/half))
	}
	return 1
}

// besselI0 sums the power series of the modified Bessel function I0,
// sum ((x/2)^k / k!)^2, until the terms stop contributing.
func besselI0(x float64) float64 {
	q := x * x / 4
	sum, term := 1.0, 1.0
	for k := 1.0; k < 500; k++ {
		term *= q / (k * k)
		sum += term
		if term < sum*1e-17 {
			break
		}
	}
	return sum
}
