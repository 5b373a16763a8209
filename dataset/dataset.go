// Package dataset provides named-column numeric tables and loaders for the
// spreadsheet formats measurement data usually arrives in.
package dataset

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

var (
	// ErrColumnNotFound is returned when a requested column does not exist.
	ErrColumnNotFound = errors.New("dataset: column not found")
	// ErrEmpty is returned when a source has no header row.
	ErrEmpty = errors.New("dataset: no header row")
	// ErrRaggedColumns is returned when columns differ in length.
	ErrRaggedColumns = errors.New("dataset: columns differ in length")
	// ErrDuplicateColumn is returned when two columns share a header.
	ErrDuplicateColumn = errors.New("dataset: duplicate column")
)

// Table is a read-only collection of equally long, named numeric columns.
type Table interface {
	// Column returns a copy of the named column.
	Column(name string) ([]float64, error)
	// Columns returns the column names in source order.
	Columns() []string
	// Len returns the number of rows.
	Len() int
}

// Frame is an in-memory Table.
type Frame struct {
	names []string
	cols  map[string][]float64
	rows  int
}

var _ Table = (*Frame)(nil)

// NewFrame builds a Frame from parallel name and column slices. Columns are
// copied.
func NewFrame(names []string, columns [][]float64) (*Frame, error) {
	if len(names) != len(columns) {
		return nil, fmt.Errorf("%w: %d names for %d columns", ErrRaggedColumns, len(names), len(columns))
	}

	f := &Frame{cols: make(map[string][]float64, len(names))}
	for i, name := range names {
		if i == 0 {
			f.rows = len(columns[i])
		}
		if err := f.add(name, columns[i]); err != nil {
			return nil, err
		}
	}

	return f, nil
}

func (f *Frame) add(name string, values []float64) error {
	if _, ok := f.cols[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateColumn, name)
	}
	if len(values) != f.rows {
		return fmt.Errorf("%w: %q has %d rows, want %d", ErrRaggedColumns, name, len(values), f.rows)
	}
	f.names = append(f.names, name)
	f.cols[name] = slices.Clone(values)
	return nil
}

// Column implements Table.
func (f *Frame) Column(name string) ([]float64, error) {
	col, ok := f.cols[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
	}
	return slices.Clone(col), nil
}

// Columns implements Table.
func (f *Frame) Columns() []string { return slices.Clone(f.names) }

// Len implements Table.
func (f *Frame) Len() int { return f.rows }

// fromRows converts header-first string rows into a Frame. Cells that do not
// parse as numbers, and cells missing from short rows, become NaN.
func fromRows(rows [][]string) (*Frame, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmpty
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	data := rows[1:]
	cols := make([][]float64, len(header))
	for j := range header {
		col := make([]float64, len(data))
		for i, row := range data {
			col[i] = math.NaN()
			if j < len(row) {
				col[i] = parseCell(row[j])
			}
		}
		cols[j] = col
	}

	return NewFrame(header, cols)
}

func parseCell(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
