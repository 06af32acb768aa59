package schema

import (
	"fmt"
	"strconv"
)

// Frame is an ordered tabular dataset, typically loaded from CSV.
// Cells are kept as strings; numeric parsing happens on demand so that
// categorical columns (country codes, survey years) stay intact.
type Frame struct {
	Columns []string   // Column names in file order
	Rows    [][]string // Row-major cells, each row len(Columns) long
}

// Len returns the number of rows.
func (f *Frame) Len() int {
	return len(f.Rows)
}

// ColumnIndex returns the index of the named column, or -1 if absent.
func (f *Frame) ColumnIndex(name string) int {
	for i, c := range f.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// StringColumn returns the named column as strings.
// Fails with ErrMissingGroupKey when the column does not exist, since the
// only string-column consumer is group-based splitting.
func (f *Frame) StringColumn(name string) ([]string, error) {
	idx := f.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %q", ErrMissingGroupKey, name)
	}
	out := make([]string, len(f.Rows))
	for i, row := range f.Rows {
		out[i] = row[idx]
	}
	return out, nil
}

// FloatColumn returns the named column parsed as float64.
func (f *Frame) FloatColumn(name string) ([]float64, error) {
	idx := f.ColumnIndex(name)
	if idx < 0 {
		return nil, fmt.Errorf("column %q not found", name)
	}
	out := make([]float64, len(f.Rows))
	for i, row := range f.Rows {
		v, err := strconv.ParseFloat(row[idx], 64)
		if err != nil {
			return nil, fmt.Errorf("column %q row %d: %w", name, i+1, err)
		}
		out[i] = v
	}
	return out, nil
}

// FeatureMatrix returns the named columns as a row-major matrix, one row per
// dataset row and one column per feature.
func (f *Frame) FeatureMatrix(names []string) ([][]float64, error) {
	cols := make([][]float64, len(names))
	for j, name := range names {
		col, err := f.FloatColumn(name)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	out := make([][]float64, len(f.Rows))
	for i := range f.Rows {
		row := make([]float64, len(names))
		for j := range names {
			row[j] = cols[j][i]
		}
		out[i] = row
	}
	return out, nil
}

// SelectRows returns copies of the feature matrix and target restricted to
// the given row indices. Used to materialize train/validation views of a
// partition without mutating the source data.
func SelectRows(features [][]float64, target []float64, idx []int) ([][]float64, []float64) {
	fOut := make([][]float64, len(idx))
	tOut := make([]float64, len(idx))
	for i, r := range idx {
		fOut[i] = features[r]
		tOut[i] = target[r]
	}
	return fOut, tOut
}
