// Package dataset holds the tabular side of the transition-modeling pipeline:
// a columnar frame over the training parquet, per-year negative sampling, and
// the temporal train/validation split.
package dataset

import (
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
)

// Column names with fixed meaning in the training dataset.
const (
	TargetColumn = "transition_01"
	YearColumn   = "year"
)

// ExcludedColumns are never used as model features: the target itself,
// leakage columns, spatial identifiers, and the temporal identifier (kept in
// the frame for splitting). Matching is case-insensitive.
var ExcludedColumns = map[string]struct{}{
	"transition_01": {},
	"wdpa_b1":       {},
	"wdpa_prev":     {},
	"x":             {},
	"y":             {},
	"row":           {},
	"col":           {},
	"year":          {},
}

// Frame is an immutable columnar table of float32 values. Rows are
// observations keyed by (x, y, year); storage is float32 throughout, which is
// the 64→32 bit downcast applied at load time. All derived frames (samples,
// splits) are index views materialized into new column slices.
type Frame struct {
	cols []string
	idx  map[string]int
	data [][]float32
}

// NewFrame builds a frame from named columns. Column order is preserved.
// All columns must have equal length.
func NewFrame(cols []string, columns map[string][]float32) (*Frame, error) {
	f := &Frame{
		cols: append([]string(nil), cols...),
		idx:  make(map[string]int, len(cols)),
		data: make([][]float32, len(cols)),
	}
	n := -1
	for i, name := range cols {
		col, ok := columns[name]
		if !ok {
			return nil, errors.Newf("dataset: column %q listed but not provided", name)
		}
		if n == -1 {
			n = len(col)
		} else if len(col) != n {
			return nil, errors.Newf("dataset: column %q has %d rows, want %d", name, len(col), n)
		}
		f.idx[name] = i
		f.data[i] = col
	}
	return f, nil
}

// NumRows returns the number of rows.
func (f *Frame) NumRows() int {
	if len(f.data) == 0 {
		return 0
	}
	return len(f.data[0])
}

// Columns returns the column names in order.
func (f *Frame) Columns() []string {
	return f.cols
}

// Has reports whether the frame contains the named column.
func (f *Frame) Has(name string) bool {
	_, ok := f.idx[name]
	return ok
}

// Column returns the backing slice for a column. Callers must not mutate it.
func (f *Frame) Column(name string) []float32 {
	i, ok := f.idx[name]
	if !ok {
		return nil
	}
	return f.data[i]
}

// Select materializes the given row indices into a new frame, in order.
func (f *Frame) Select(rows []int) *Frame {
	out := &Frame{
		cols: append([]string(nil), f.cols...),
		idx:  make(map[string]int, len(f.cols)),
		data: make([][]float32, len(f.cols)),
	}
	for c := range f.cols {
		col := make([]float32, len(rows))
		for i, r := range rows {
			col[i] = f.data[c][r]
		}
		out.idx[f.cols[c]] = c
		out.data[c] = col
	}
	return out
}

// Year returns the year of row i.
func (f *Frame) Year(i int) int {
	return int(f.Column(YearColumn)[i])
}

// Years returns the sorted distinct years present in the frame.
func (f *Frame) Years() []int {
	col := f.Column(YearColumn)
	seen := make(map[int]struct{})
	for _, v := range col {
		seen[int(v)] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// DropMissingTarget removes rows whose target value is NaN. Returns the
// filtered frame and the number of rows dropped.
func (f *Frame) DropMissingTarget() (*Frame, int) {
	target := f.Column(TargetColumn)
	keep := make([]int, 0, len(target))
	for i, v := range target {
		if !math.IsNaN(float64(v)) {
			keep = append(keep, i)
		}
	}
	dropped := len(target) - len(keep)
	if dropped == 0 {
		return f, 0
	}
	return f.Select(keep), dropped
}

// FilterMinYear removes rows with year < minYear. Year 2000 rows are dropped
// by default upstream: a protected area already present in the first frame is
// not a transition.
func (f *Frame) FilterMinYear(minYear int) (*Frame, int) {
	years := f.Column(YearColumn)
	keep := make([]int, 0, len(years))
	for i, v := range years {
		if int(v) >= minYear {
			keep = append(keep, i)
		}
	}
	dropped := len(years) - len(keep)
	if dropped == 0 {
		return f, 0
	}
	return f.Select(keep), dropped
}

// FeatureColumns returns the columns usable as model features, preserving
// frame order and excluding identifiers, leakage columns and the target.
func (f *Frame) FeatureColumns() []string {
	features := make([]string, 0, len(f.cols))
	for _, name := range f.cols {
		if _, excluded := ExcludedColumns[strings.ToLower(name)]; excluded {
			continue
		}
		features = append(features, name)
	}
	return features
}

// Matrix copies the named columns into a gonum dense matrix (rows × cols).
func (f *Frame) Matrix(cols []string) *mat.Dense {
	n := f.NumRows()
	m := mat.NewDense(n, len(cols), nil)
	for j, name := range cols {
		col := f.Column(name)
		for i := 0; i < n; i++ {
			m.Set(i, j, float64(col[i]))
		}
	}
	return m
}

// BinaryTarget returns the target column as 0/1 values (positive when > 0).
func (f *Frame) BinaryTarget() []float64 {
	target := f.Column(TargetColumn)
	y := make([]float64, len(target))
	for i, v := range target {
		if v > 0 {
			y[i] = 1
		}
	}
	return y
}

// TargetCounts returns the number of positive and negative rows.
func (f *Frame) TargetCounts() (pos, neg int) {
	for _, v := range f.Column(TargetColumn) {
		if v > 0 {
			pos++
		} else {
			neg++
		}
	}
	return pos, neg
}
