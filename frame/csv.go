package frame

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	datacontract "github.com/reoring/datacontract"
)

// ReadCSV reads a headered CSV into a Frame, typing each column by the given
// logical types. Columns absent from types load as strings. An empty cell is
// a null. Cells that fail to parse as the declared type are reported with
// their row and column; ReadCSV does not coerce or repair.
func ReadCSV(r io.Reader, types map[string]datacontract.LogicalType) (*Frame, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("frame: reading CSV header: %w", err)
	}
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("frame: reading CSV rows: %w", err)
	}

	cols := make([]*Column, len(header))
	for j, name := range header {
		lt, typed := types[name]
		if !typed {
			lt = datacontract.String
		}
		col, err := buildCSVColumn(name, lt, records, j)
		if err != nil {
			return nil, err
		}
		cols[j] = col
	}
	return New(cols...)
}

func buildCSVColumn(name string, lt datacontract.LogicalType, records [][]string, j int) (*Column, error) {
	n := len(records)
	valid := make([]bool, n)
	hasNull := false

	cell := func(i int) (string, bool) {
		if j >= len(records[i]) || records[i][j] == "" {
			hasNull = true
			return "", false
		}
		valid[i] = true
		return records[i][j], true
	}

	switch lt {
	case datacontract.Integer:
		vals := make([]int64, n)
		for i := 0; i < n; i++ {
			s, ok := cell(i)
			if !ok {
				continue
			}
			v, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("frame: row %d column %q: %q is not an integer", i+1, name, s)
			}
			vals[i] = v
		}
		if !hasNull {
			valid = nil
		}
		return IntsWithNulls(name, vals, valid), nil
	case datacontract.Float:
		vals := make([]float64, n)
		for i := 0; i < n; i++ {
			s, ok := cell(i)
			if !ok {
				continue
			}
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("frame: row %d column %q: %q is not a float", i+1, name, s)
			}
			vals[i] = v
		}
		if !hasNull {
			valid = nil
		}
		return FloatsWithNulls(name, vals, valid), nil
	case datacontract.Bool:
		vals := make([]bool, n)
		for i := 0; i < n; i++ {
			s, ok := cell(i)
			if !ok {
				continue
			}
			v, err := strconv.ParseBool(s)
			if err != nil {
				return nil, fmt.Errorf("frame: row %d column %q: %q is not a boolean", i+1, name, s)
			}
			vals[i] = v
		}
		if !hasNull {
			valid = nil
		}
		return BoolsWithNulls(name, vals, valid), nil
	default:
		vals := make([]string, n)
		for i := 0; i < n; i++ {
			s, ok := cell(i)
			if !ok {
				continue
			}
			vals[i] = s
		}
		if !hasNull {
			valid = nil
		}
		return StringsWithNulls(name, vals, valid), nil
	}
}
