package window

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

type specEntry struct {
	typ      Type
	hasParam bool
	defParam float64
}

var specs = map[string]specEntry{
	"boxcar":         {TypeRectangular, false, 0},
	"rectangular":    {TypeRectangular, false, 0},
	"hann":           {TypeHann, false, 0},
	"hanning":        {TypeHann, false, 0},
	"hamming":        {TypeHamming, false, 0},
	"blackman":       {TypeBlackman, false, 0},
	"blackmanharris": {TypeBlackmanHarris, false, 0},
	"nuttall":        {TypeNuttall, false, 0},
	"flattop":        {TypeFlatTop, false, 0},
	"kaiser":         {TypeKaiser, true, 8.6},
	"tukey":          {TypeTukey, true, 0.5},
	"triang":         {TypeTriangle, false, 0},
	"bartlett":       {TypeBartlett, false, 0},
	"cosine":         {TypeCosine, false, 0},
	"gaussian":       {TypeGauss, true, 2.5},
}

// Spec is a validated window selection.
type Spec struct {
	Name  string
	Type  Type
	Param float64
}

// Names returns the accepted window names in sorted order.
func Names() []string {
	out := make([]string, 0, len(specs))
	for name := range specs {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// ParseSpec parses "name" or "name:param" (a comma is accepted in place of
// the colon). Parametric windows fall back to their default parameter when
// none is given.
func ParseSpec(s string) (Spec, error) {
	raw := strings.ToLower(strings.TrimSpace(s))
	name, param, hasParam := strings.Cut(strings.ReplaceAll(raw, ",", ":"), ":")
	name = strings.TrimSpace(name)

	e, ok := specs[name]
	if !ok {
		return Spec{}, fmt.Errorf("%w: %q (known: %s)", ErrUnknownWindow, s, strings.Join(Names(), ", "))
	}

	spec := Spec{Name: name, Type: e.typ, Param: e.defParam}
	if !hasParam {
		return spec, nil
	}
	if !e.hasParam {
		return Spec{}, fmt.Errorf("%w: %s takes no parameter", ErrInvalidParameter, name)
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(param), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Spec{}, fmt.Errorf("%w: %q is not a number", ErrInvalidParameter, param)
	}
	if err := validateParam(name, e.typ, v); err != nil {
		return Spec{}, err
	}
	spec.Param = v

	return spec, nil
}

// MustParseSpec is like ParseSpec but panics on error.
func MustParseSpec(s string) Spec {
	spec, err := ParseSpec(s)
	if err != nil {
		panic(err)
	}
	return spec
}

// String returns the canonical spec string.
func (s Spec) String() string {
	if e, ok := specs[s.Name]; ok && e.hasParam {
		return s.Name + ":" + strconv.FormatFloat(s.Param, 'g', -1, 64)
	}
	return s.Name
}

// Coefficients returns the periodic form of the window with n samples, the
// framing used ahead of a DFT.
func (s Spec) Coefficients(n int) ([]float64, error) {
	if err := validateLength(n); err != nil {
		return nil, err
	}
	if err := validateParam(s.Name, s.Type, s.Param); err != nil {
		return nil, err
	}
	return Generate(s.Type, n, WithPeriodic(), WithAlpha(s.Param)), nil
}
