package datacontract

// LogicalType is an abstract column type declared by a contract, independent of
// the physical storage representation of the table being validated.
type LogicalType uint8

const (
	Integer LogicalType = iota
	Float
	String
	Bool
)

func (t LogicalType) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "boolean"
	default:
		return "unknown"
	}
}

// Numeric reports whether the logical type admits range and distribution
// constraints.
func (t LogicalType) Numeric() bool { return t == Integer || t == Float }

// ParseLogicalType maps a textual tag (as written in contract documents) to a
// LogicalType. The second result is false for unrecognized tags.
func ParseLogicalType(s string) (LogicalType, bool) {
	switch s {
	case "integer", "int":
		return Integer, true
	case "float", "double", "number":
		return Float, true
	case "string":
		return String, true
	case "boolean", "bool":
		return Bool, true
	default:
		return 0, false
	}
}

// Range is an inclusive numeric bound on a column's values.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the inclusive bound.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Distribution names an expected distribution family for a column.
type Distribution string

const (
	Normal  Distribution = "normal"
	Uniform Distribution = "uniform"
)

// KnownDistribution reports whether d belongs to the recognized family set.
// Unrecognized tags fail contract construction rather than silently passing.
func KnownDistribution(d Distribution) bool {
	switch d {
	case Normal, Uniform:
		return true
	default:
		return false
	}
}

// GoodnessOfFit computes a p-value for how well sample matches the named
// family. Implementations estimate family parameters from the sample itself.
// The stat package provides the default; tests may substitute a stub.
type GoodnessOfFit func(sample []float64, family Distribution) (pValue float64, err error)

const (
	// DefaultAlpha is the fixed significance threshold for distribution
	// checks: p-values below it raise a distribution_mismatch violation.
	DefaultAlpha = 0.05

	// MinDistSample is the minimum count of non-null values a column needs
	// before a distribution check runs. Below it the check is skipped:
	// insufficient data is not a contract violation.
	MinDistSample = 8
)
