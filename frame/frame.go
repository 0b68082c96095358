// Package frame is the in-memory columnar table validated by datacontract.
// Columns are typed slices with a validity mask; a Frame is an ordered,
// name-addressable set of equal-length columns. Frames satisfy the
// datacontract Table/Column interfaces and are never mutated by validation.
package frame

import (
	"fmt"

	datacontract "github.com/reoring/datacontract"
)

// Column is a single typed column. Exactly one of the value slices is
// populated, matched by dtype; valid marks non-null cells and is nil when the
// column has no nulls.
type Column struct {
	name  string
	dtype datacontract.DType

	ints    []int64
	floats  []float64
	strings []string
	bools   []bool

	valid []bool
}

// Ints builds a dense int64 column.
func Ints(name string, vals ...int64) *Column {
	return &Column{name: name, dtype: datacontract.DTypeInt, ints: vals}
}

// IntsWithNulls builds an int64 column with valid marking non-null cells.
func IntsWithNulls(name string, vals []int64, valid []bool) *Column {
	return &Column{name: name, dtype: datacontract.DTypeInt, ints: vals, valid: valid}
}

// Floats builds a dense float64 column.
func Floats(name string, vals ...float64) *Column {
	return &Column{name: name, dtype: datacontract.DTypeFloat, floats: vals}
}

// FloatsWithNulls builds a float64 column with valid marking non-null cells.
func FloatsWithNulls(name string, vals []float64, valid []bool) *Column {
	return &Column{name: name, dtype: datacontract.DTypeFloat, floats: vals, valid: valid}
}

// Strings builds a dense string column.
func Strings(name string, vals ...string) *Column {
	return &Column{name: name, dtype: datacontract.DTypeString, strings: vals}
}

// StringsWithNulls builds a string column with valid marking non-null cells.
func StringsWithNulls(name string, vals []string, valid []bool) *Column {
	return &Column{name: name, dtype: datacontract.DTypeString, strings: vals, valid: valid}
}

// Bools builds a dense bool column.
func Bools(name string, vals ...bool) *Column {
	return &Column{name: name, dtype: datacontract.DTypeBool, bools: vals}
}

// BoolsWithNulls builds a bool column with valid marking non-null cells.
func BoolsWithNulls(name string, vals []bool, valid []bool) *Column {
	return &Column{name: name, dtype: datacontract.DTypeBool, bools: vals, valid: valid}
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// DType returns the physical type.
func (c *Column) DType() datacontract.DType { return c.dtype }

// Len returns the number of cells, nulls included.
func (c *Column) Len() int {
	switch c.dtype {
	case datacontract.DTypeInt:
		return len(c.ints)
	case datacontract.DTypeFloat:
		return len(c.floats)
	case datacontract.DTypeString:
		return len(c.strings)
	case datacontract.DTypeBool:
		return len(c.bools)
	default:
		return 0
	}
}

// IsNull reports whether cell i is null.
func (c *Column) IsNull(i int) bool {
	return c.valid != nil && i < len(c.valid) && !c.valid[i]
}

// NullCount returns the number of null cells.
func (c *Column) NullCount() int {
	if c.valid == nil {
		return 0
	}
	n := 0
	for _, ok := range c.valid {
		if !ok {
			n++
		}
	}
	return n
}

// MinMax reduces the non-null values of a numeric column. ok is false for
// non-numeric columns and for columns with no non-null values.
func (c *Column) MinMax() (min, max float64, ok bool) {
	first := true
	c.eachFloat(func(v float64) {
		if first {
			min, max, first = v, v, false
			return
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	})
	return min, max, !first
}

// Floats returns the non-null values widened to float64 in row order, or nil
// for non-numeric columns.
func (c *Column) Floats() []float64 {
	if !c.dtype.Numeric() {
		return nil
	}
	out := make([]float64, 0, c.Len()-c.NullCount())
	c.eachFloat(func(v float64) { out = append(out, v) })
	return out
}

// CountOutside counts non-null values strictly outside the inclusive
// [min, max] bound. Non-numeric columns report zero.
func (c *Column) CountOutside(min, max float64) int {
	n := 0
	c.eachFloat(func(v float64) {
		if v < min || v > max {
			n++
		}
	})
	return n
}

// eachFloat visits non-null numeric cells widened to float64, in row order.
func (c *Column) eachFloat(fn func(float64)) {
	switch c.dtype {
	case datacontract.DTypeInt:
		for i, v := range c.ints {
			if !c.IsNull(i) {
				fn(float64(v))
			}
		}
	case datacontract.DTypeFloat:
		for i, v := range c.floats {
			if !c.IsNull(i) {
				fn(v)
			}
		}
	}
}

// Value returns cell i as any, or nil when the cell is null. Intended for
// diagnostics and the CLI, not for bulk access.
func (c *Column) Value(i int) any {
	if c.IsNull(i) {
		return nil
	}
	switch c.dtype {
	case datacontract.DTypeInt:
		return c.ints[i]
	case datacontract.DTypeFloat:
		return c.floats[i]
	case datacontract.DTypeString:
		return c.strings[i]
	case datacontract.DTypeBool:
		return c.bools[i]
	default:
		return nil
	}
}

// Frame is an ordered set of equal-length columns.
type Frame struct {
	cols  []*Column
	index map[string]*Column
	rows  int
}

// New assembles a Frame, rejecting duplicate column names, mismatched column
// lengths, and validity masks whose length differs from the column's.
func New(cols ...*Column) (*Frame, error) {
	f := &Frame{index: make(map[string]*Column, len(cols))}
	for i, c := range cols {
		if _, dup := f.index[c.name]; dup {
			return nil, fmt.Errorf("frame: duplicate column %q", c.name)
		}
		if c.valid != nil && len(c.valid) != c.Len() {
			return nil, fmt.Errorf("frame: column %q validity mask has %d cells, want %d", c.name, len(c.valid), c.Len())
		}
		if i == 0 {
			f.rows = c.Len()
		} else if c.Len() != f.rows {
			return nil, fmt.Errorf("frame: column %q has %d rows, want %d", c.name, c.Len(), f.rows)
		}
		f.cols = append(f.cols, c)
		f.index[c.name] = c
	}
	return f, nil
}

// MustNew is New that panics on assembly errors. Intended for tests and
// fixtures.
func MustNew(cols ...*Column) *Frame {
	f, err := New(cols...)
	if err != nil {
		panic(err)
	}
	return f
}

// NumRows returns the row count shared by all columns.
func (f *Frame) NumRows() int { return f.rows }

// Column looks a column up by name.
func (f *Frame) Column(name string) (datacontract.Column, bool) {
	c, ok := f.index[name]
	return c, ok
}

// Col is Column without the interface wrapping, for callers inside this
// package's ecosystem that need concrete access.
func (f *Frame) Col(name string) (*Column, bool) {
	c, ok := f.index[name]
	return c, ok
}

// ColumnNames returns column names in frame order.
func (f *Frame) ColumnNames() []string {
	names := make([]string, len(f.cols))
	for i, c := range f.cols {
		names[i] = c.name
	}
	return names
}
