package kk

import (
	"fmt"
	"slices"
	"strings"

	"github.com/cwbudde/algo-kk/dataset"
)

const reportWidth = 50

// Validator binds a table and options and caches the last result. It is not
// safe for concurrent use.
type Validator struct {
	table  dataset.Table
	cols   Columns
	opts   []Option
	result *Result
}

// NewValidator binds table and opts. The configuration, including the window
// spec, is checked immediately. Columns default to DefaultColumns; see
// WithColumns.
func NewValidator(table dataset.Table, opts ...Option) (*Validator, error) {
	if table == nil {
		return nil, fmt.Errorf("%w: nil table", ErrConfiguration)
	}

	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cols := DefaultColumns()
	if cfg.Columns != nil {
		cols = *cfg.Columns
	}

	return &Validator{
		table: table,
		cols:  cols,
		opts:  slices.Clone(opts),
	}, nil
}

// Validate runs the validation with the bound options and caches the result.
func (v *Validator) Validate() (*Result, error) {
	return v.run(v.opts)
}

// ValidateWithThreshold is Validate with the causality threshold replaced by
// threshold for this run only.
func (v *Validator) ValidateWithThreshold(threshold float64) (*Result, error) {
	return v.run(append(slices.Clone(v.opts), WithCausalityThreshold(threshold)))
}

func (v *Validator) run(opts []Option) (*Result, error) {
	res, err := ValidateTable(v.table, v.cols, opts...)
	if err != nil {
		return nil, err
	}
	v.result = res

	return res, nil
}

// Result returns the cached result, or nil before Validate.
func (v *Validator) Result() *Result { return v.result }

// IsCausal reports whether the last validation passed.
func (v *Validator) IsCausal() (bool, error) {
	if v.result == nil {
		return false, ErrNotValidated
	}
	return v.result.Passed(), nil
}

// RelativeError returns the mean relative error of the last validation.
func (v *Validator) RelativeError() (float64, error) {
	if v.result == nil {
		return 0, ErrNotValidated
	}
	return v.result.MeanRelativeError, nil
}

// Diagnostics bundles the last result with properties of the input table.
// Grid flag, eps_inf, method, detail and peak count are promoted from the
// embedded Result.
type Diagnostics struct {
	NumPoints    int
	FreqMinGHz   float64
	FreqMaxGHz   float64
	MaxDfFreqGHz float64

	*Result
}

// Diagnostics returns the diagnostic bundle, running Validate first if it
// has not run yet.
func (v *Validator) Diagnostics() (Diagnostics, error) {
	if v.result == nil {
		if _, err := v.Validate(); err != nil {
			return Diagnostics{}, err
		}
	}

	freq, _, df, err := readColumns(v.table, v.cols)
	if err != nil {
		return Diagnostics{}, err
	}

	// argmax, first occurrence
	maxIdx := 0
	for i, x := range df {
		if x > df[maxIdx] {
			maxIdx = i
		}
	}

	return Diagnostics{
		NumPoints:    len(freq),
		FreqMinGHz:   slices.Min(freq),
		FreqMaxGHz:   slices.Max(freq),
		MaxDfFreqGHz: freq[maxIdx],
		Result:       v.result,
	}, nil
}

// Report renders the last result as a fixed-width text block.
func (v *Validator) Report() string {
	if v.result == nil {
		return "Validation has not been run. Call Validate() first."
	}
	return FormatReport(v.result)
}

// FormatReport renders r as a fixed-width text block.
func FormatReport(r *Result) string {
	const title = " Kramers-Kronig Causality Report "

	fill := reportWidth - len(title)
	left := fill / 2

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(strings.Repeat("=", left))
	b.WriteString(title)
	b.WriteString(strings.Repeat("=", fill-left))
	b.WriteString("\n")
	fmt.Fprintf(&b, " ▸ Causality Status:      %s\n", r.Status)
	fmt.Fprintf(&b, " ▸ Mean Relative Error:   %.2f%%\n", 100*r.MeanRelativeError)
	fmt.Fprintf(&b, " ▸ Median Relative Error: %.2f%%\n", 100*r.MedianRelativeError)
	fmt.Fprintf(&b, " ▸ RMSE (Dk vs. Dk_KK):   %.4f\n", r.RMSE)
	b.WriteString(strings.Repeat("=", reportWidth))

	return b.String()
}
