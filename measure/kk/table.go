package kk

import (
	"fmt"

	"github.com/cwbudde/algo-kk/dataset"
)

const hzPerGHz = 1e9

// Columns names the table columns holding frequency (GHz), dk and df.
type Columns struct {
	Frequency string
	Dk        string
	Df        string
}

// DefaultColumns returns the conventional "Frequency (GHz)", "Dk", "Df"
// mapping.
func DefaultColumns() Columns {
	return Columns{Frequency: "Frequency (GHz)", Dk: "Dk", Df: "Df"}
}

// ValidateTable reads the three named columns from t, converts frequency
// from GHz to Hz and runs Validate. A missing column is a configuration
// error; non-numeric cells surface as ErrNonFinite.
func ValidateTable(t dataset.Table, cols Columns, opts ...Option) (*Result, error) {
	freqGHz, dk, df, err := readColumns(t, cols)
	if err != nil {
		return nil, err
	}

	freq := make([]float64, len(freqGHz))
	for i, f := range freqGHz {
		freq[i] = f * hzPerGHz
	}

	return Validate(freq, dk, df, opts...)
}

func readColumns(t dataset.Table, cols Columns) (freqGHz, dk, df []float64, err error) {
	if t == nil {
		return nil, nil, nil, fmt.Errorf("%w: nil table", ErrConfiguration)
	}

	read := func(name string) ([]float64, error) {
		col, err := t.Column(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
		}
		for i, v := range col {
			if !isFinite(v) {
				return nil, fmt.Errorf("%w: column %q row %d is not a finite number", ErrNonFinite, name, i)
			}
		}
		return col, nil
	}

	if freqGHz, err = read(cols.Frequency); err != nil {
		return nil, nil, nil, err
	}
	if dk, err = read(cols.Dk); err != nil {
		return nil, nil, nil, err
	}
	if df, err = read(cols.Df); err != nil {
		return nil, nil, nil, err
	}

	return freqGHz, dk, df, nil
}
