package datacontract

// DType is the physical type of a column as stored in a table. It is what the
// schema check compares a declared LogicalType against.
type DType uint8

const (
	DTypeInt DType = iota
	DTypeFloat
	DTypeString
	DTypeBool
)

func (d DType) String() string {
	switch d {
	case DTypeInt:
		return "int64"
	case DTypeFloat:
		return "float64"
	case DTypeString:
		return "string"
	case DTypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Numeric reports whether the physical type supports min/max reduction.
func (d DType) Numeric() bool { return d == DTypeInt || d == DTypeFloat }

// Compatible reports whether a column stored as d satisfies the declared
// logical type t. Integer columns widen to float; everything else is exact.
func (t LogicalType) Compatible(d DType) bool {
	switch t {
	case Integer:
		return d == DTypeInt
	case Float:
		return d == DTypeFloat || d == DTypeInt
	case String:
		return d == DTypeString
	case Bool:
		return d == DTypeBool
	default:
		return false
	}
}

// Table is the columnar table abstraction validation runs against. Validation
// only ever reads through this interface; it never mutates the table. The
// frame package provides the in-memory implementation.
type Table interface {
	// NumRows returns the row count shared by all columns.
	NumRows() int
	// Column looks a column up by name; ok is false when absent.
	Column(name string) (Column, bool)
	// ColumnNames returns column names in table order.
	ColumnNames() []string
}

// Column is a single typed column with null awareness.
type Column interface {
	Name() string
	DType() DType
	Len() int
	// NullCount returns the number of null cells.
	NullCount() int
	// MinMax reduces the non-null values of a numeric column. ok is false
	// for non-numeric columns and for columns with no non-null values.
	MinMax() (min, max float64, ok bool)
	// Floats returns the non-null values widened to float64, in row order.
	// It returns nil for non-numeric columns.
	Floats() []float64
	// CountOutside counts non-null values strictly outside the inclusive
	// [min, max] bound. Non-numeric columns report zero.
	CountOutside(min, max float64) int
}
