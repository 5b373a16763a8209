package interp

import (
	"errors"
	"fmt"
	"math"

	gonuminterp "gonum.org/v1/gonum/interp"
)

// ErrInvalidInput is returned for mismatched, short or unsorted input.
var ErrInvalidInput = errors.New("interp: invalid input")

// predictor is the subset of gonum's fitted interpolators used here.
type predictor interface {
	Predict(x float64) float64
}

// Cubic evaluates a not-a-knot cubic spline through (x, y) at xNew.
//
// x must be strictly increasing. With fewer than four samples the spline is
// underdetermined and the result falls back to piecewise-linear
// interpolation. Queries outside [x[0], x[n-1]] are evaluated on the
// polynomial of the nearest end piece.
//
// The spline is fitted on x mapped affinely onto [0, 1]; the spline is
// invariant under that map, and the fit stays well conditioned for abscissae
// of any magnitude.
func Cubic(x, y, xNew []float64) ([]float64, error) {
	if err := validate(x, y); err != nil {
		return nil, err
	}
	if len(x) < 4 {
		return Linear(x, y, xNew)
	}

	n := len(x)
	origin, span := x[0], x[n-1]-x[0]
	t := make([]float64, n)
	for i, v := range x {
		t[i] = (v - origin) / span
	}
	t[n-1] = 1

	var spline gonuminterp.NotAKnotCubic
	if err := spline.Fit(t, y); err != nil {
		return nil, fmt.Errorf("interp: cubic fit: %w", err)
	}

	left := endPolynomial(&spline, t[0], t[1])
	right := endPolynomial(&spline, t[n-2], t[n-1])

	out := make([]float64, len(xNew))
	for i, q := range xNew {
		tq := (q - origin) / span
		switch {
		case q < x[0]:
			out[i] = left.eval(tq)
		case q > x[n-1]:
			out[i] = right.eval(tq)
		default:
			out[i] = spline.Predict(math.Min(math.Max(tq, 0), 1))
		}
	}

	return out, nil
}

// Linear evaluates the piecewise-linear interpolant through (x, y) at xNew,
// extending the end segments for out-of-range queries.
func Linear(x, y, xNew []float64) ([]float64, error) {
	if err := validate(x, y); err != nil {
		return nil, err
	}

	var pl gonuminterp.PiecewiseLinear
	if err := pl.Fit(x, y); err != nil {
		return nil, fmt.Errorf("interp: linear fit: %w", err)
	}

	n := len(x)
	out := make([]float64, len(xNew))
	for i, q := range xNew {
		switch {
		case q < x[0]:
			out[i] = y[0] + (q-x[0])*(y[1]-y[0])/(x[1]-x[0])
		case q > x[n-1]:
			out[i] = y[n-1] + (q-x[n-1])*(y[n-1]-y[n-2])/(x[n-1]-x[n-2])
		default:
			out[i] = pl.Predict(q)
		}
	}

	return out, nil
}

func validate(x, y []float64) error {
	if len(x) != len(y) {
		return fmt.Errorf("%w: x/y length mismatch: %d != %d", ErrInvalidInput, len(x), len(y))
	}
	if len(x) < 2 {
		return fmt.Errorf("%w: need at least 2 samples, got %d", ErrInvalidInput, len(x))
	}
	for i := range x {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) || math.IsNaN(y[i]) || math.IsInf(y[i], 0) {
			return fmt.Errorf("%w: non-finite sample at index %d", ErrInvalidInput, i)
		}
		if i > 0 && !(x[i] > x[i-1]) {
			return fmt.Errorf("%w: x must be strictly increasing at index %d", ErrInvalidInput, i)
		}
	}
	return nil
}

// lagrange4 is the cubic through four nodes, used to continue a spline
// piece outside its interval.
type lagrange4 struct {
	t [4]float64
	v [4]float64
}

// endPolynomial recovers the cubic of the spline piece on [a, b] by sampling
// it at four interior-or-boundary nodes. A cubic is determined exactly by
// four samples, so the result is the piece itself.
func endPolynomial(p predictor, a, b float64) lagrange4 {
	var l lagrange4
	h := (b - a) / 3
	for k := range l.t {
		l.t[k] = a + float64(k)*h
	}
	l.t[3] = b
	for k := range l.v {
		l.v[k] = p.Predict(l.t[k])
	}
	return l
}

func (l lagrange4) eval(x float64) float64 {
	sum := 0.0
	for i := range l.t {
		w := l.v[i]
		for j := range l.t {
			if i != j {
				w *= (x - l.t[j]) / (l.t[i] - l.t[j])
			}
		}
		sum += w
	}
	return sum
}
