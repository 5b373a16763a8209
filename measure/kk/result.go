package kk

import (
	"fmt"
	"strings"
)

// Method selects the reconstruction route.
type Method int

const (
	// MethodAuto uses hilbert on uniform grids with at least four samples
	// and trapz otherwise.
	MethodAuto Method = iota
	MethodHilbert
	MethodTrapz
)

func (m Method) String() string {
	switch m {
	case MethodAuto:
		return "auto"
	case MethodHilbert:
		return "hilbert"
	case MethodTrapz:
		return "trapz"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "auto", "hilbert" or "trapz" to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "auto", "":
		return MethodAuto, nil
	case "hilbert":
		return MethodHilbert, nil
	case "trapz":
		return MethodTrapz, nil
	default:
		return 0, fmt.Errorf("%w: unknown method %q", ErrConfiguration, s)
	}
}

// EpsInfMethod selects how the high-frequency permittivity is estimated.
type EpsInfMethod int

const (
	// EpsInfFit extrapolates the tail of dk linearly in 1/f^2.
	EpsInfFit EpsInfMethod = iota
	// EpsInfMean averages the tail of dk.
	EpsInfMean
)

func (m EpsInfMethod) String() string {
	switch m {
	case EpsInfFit:
		return "fit"
	case EpsInfMean:
		return "mean"
	default:
		return fmt.Sprintf("EpsInfMethod(%d)", int(m))
	}
}

// ParseEpsInfMethod maps "fit" or "mean" to an EpsInfMethod.
func ParseEpsInfMethod(s string) (EpsInfMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fit", "":
		return EpsInfFit, nil
	case "mean":
		return EpsInfMean, nil
	default:
		return 0, fmt.Errorf("%w: unknown eps_inf method %q", ErrConfiguration, s)
	}
}

// MethodDetail names the concrete sub-path that produced a result.
type MethodDetail int

const (
	DetailHilbertUniform MethodDetail = iota + 1
	DetailHilbertResample
	DetailTrapzPV
	DetailTrapzSSKK
)

func (d MethodDetail) String() string {
	switch d {
	case DetailHilbertUniform:
		return "hilbert-uniform"
	case DetailHilbertResample:
		return "hilbert-resample"
	case DetailTrapzPV:
		return "trapz-pv"
	case DetailTrapzSSKK:
		return "trapz-sskk"
	default:
		return fmt.Sprintf("MethodDetail(%d)", int(d))
	}
}

// Method returns the coarse method the detail belongs to.
func (d MethodDetail) Method() Method {
	switch d {
	case DetailHilbertUniform, DetailHilbertResample:
		return MethodHilbert
	case DetailTrapzPV, DetailTrapzSSKK:
		return MethodTrapz
	default:
		return MethodAuto
	}
}

// Status is the causality verdict.
type Status int

const (
	StatusPass Status = iota + 1
	StatusFail
)

func (s Status) String() string {
	switch s {
	case StatusPass:
		return "PASS"
	case StatusFail:
		return "FAIL"
	default:
		return "UNKNOWN"
	}
}

// Result is the outcome of one validation. It is not modified after being
// returned.
type Result struct {
	// DkKK is the reconstructed real permittivity, aligned with the input.
	DkKK []float64

	MeanRelativeError   float64
	MedianRelativeError float64
	Q90RelativeError    float64
	RMSE                float64

	Status Status
	Method Method
	Detail MethodDetail

	EpsInf      float64
	NumPeaks    int
	UniformGrid bool

	// AnchorIndex is the SSKK anchor actually used; valid when HasAnchor.
	AnchorIndex int
	HasAnchor   bool

	// Backend names the PV kernel backend for trapz results.
	Backend string
}

// Passed reports whether the verdict is PASS.
func (r *Result) Passed() bool { return r.Status == StatusPass }
