package dataset

import (
	"io"
	"math"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/gianluca-kaufmann/pa3030/pkg/errors"
)

// LoadReport describes what happened while loading a parquet file.
type LoadReport struct {
	Rows    int
	Columns int
	// Downcast lists columns stored wider than float32 in the file
	// (DOUBLE, INT64) that were narrowed on load.
	Downcast []string
	// Skipped lists non-numeric columns that were ignored.
	Skipped []string
}

// LoadParquet reads a columnar training file into a Frame, narrowing every
// numeric column to float32. Null values become NaN. Non-numeric columns are
// skipped with a warning. A missing target column is a fatal precondition
// error.
func LoadParquet(path string) (*Frame, *LoadReport, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "dataset: open %s", path)
	}
	defer file.Close()

	st, err := file.Stat()
	if err != nil {
		return nil, nil, errors.Wrapf(err, "dataset: stat %s", path)
	}

	pf, err := parquet.OpenFile(file, st.Size())
	if err != nil {
		return nil, nil, errors.Wrapf(err, "dataset: parse %s", path)
	}

	report := &LoadReport{Rows: int(pf.NumRows())}

	// Leaf columns in schema order. The training file has a flat schema, so
	// every field is a leaf and field order matches the row value order.
	fields := pf.Schema().Fields()
	numeric := make([]bool, len(fields))
	names := make([]string, 0, len(fields))
	for i, field := range fields {
		kind := field.Type().Kind()
		switch kind {
		case parquet.Boolean, parquet.Int32, parquet.Int64, parquet.Float, parquet.Double:
			numeric[i] = true
			names = append(names, field.Name())
			if kind == parquet.Double || kind == parquet.Int64 {
				report.Downcast = append(report.Downcast, field.Name())
			}
		default:
			report.Skipped = append(report.Skipped, field.Name())
			errors.Warn(errors.NewDataConversionWarning(field.Name(), kind.String(), "skipped"))
		}
	}
	report.Columns = len(names)

	hasTarget := false
	for _, name := range names {
		if name == TargetColumn {
			hasTarget = true
			break
		}
	}
	if !hasTarget {
		return nil, nil, errors.NewMissingColumnError(TargetColumn, path)
	}

	columns := make(map[string][]float32, len(names))
	for _, name := range names {
		columns[name] = make([]float32, 0, report.Rows)
	}

	// Map leaf column index → frame column name.
	colName := make([]string, len(fields))
	for i, field := range fields {
		if numeric[i] {
			colName[i] = field.Name()
		}
	}

	buf := make([]parquet.Row, 1024)
	for _, rg := range pf.RowGroups() {
		rows := rg.Rows()
		for {
			n, readErr := rows.ReadRows(buf)
			for _, row := range buf[:n] {
				for _, v := range row {
					name := colName[v.Column()]
					if name == "" {
						continue
					}
					columns[name] = append(columns[name], valueToFloat32(v))
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				rows.Close()
				return nil, nil, errors.Wrapf(readErr, "dataset: read %s", path)
			}
			if n == 0 {
				break
			}
		}
		if err := rows.Close(); err != nil {
			return nil, nil, errors.Wrapf(err, "dataset: close row group of %s", path)
		}
	}

	frame, err := NewFrame(names, columns)
	if err != nil {
		return nil, nil, err
	}
	return frame, report, nil
}

// valueToFloat32 narrows a parquet value to the frame representation.
// Nulls map to NaN so that DropMissingTarget can see them.
func valueToFloat32(v parquet.Value) float32 {
	if v.IsNull() {
		return float32(math.NaN())
	}
	switch v.Kind() {
	case parquet.Boolean:
		if v.Boolean() {
			return 1
		}
		return 0
	case parquet.Int32:
		return float32(v.Int32())
	case parquet.Int64:
		return float32(v.Int64())
	case parquet.Float:
		return v.Float()
	case parquet.Double:
		return float32(v.Double())
	default:
		return float32(math.NaN())
	}
}
