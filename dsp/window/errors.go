package window

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownWindow is returned for a spec naming no known window.
	ErrUnknownWindow = errors.New("window: unknown window name")

	// ErrInvalidParameter is returned for a missing, extra or out-of-range
	// window parameter.
	ErrInvalidParameter = errors.New("window: invalid window parameter")

	errMismatchedLength = errors.New("window: samples and coefficients must have same length")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func validateParam(name string, t Type, v float64) error {
	switch t {
	case TypeKaiser:
		if v < 0 {
			return fmt.Errorf("%w: kaiser beta must be >= 0: %g", ErrInvalidParameter, v)
		}
	case TypeTukey:
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: tukey alpha must be in [0,1]: %g", ErrInvalidParameter, v)
		}
	case TypeGauss:
		if v <= 0 {
			return fmt.Errorf("%w: %s width must be > 0: %g", ErrInvalidParameter, name, v)
		}
	}
	return nil
}
