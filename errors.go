package datacontract

import (
	"errors"
	"fmt"
	"strings"
)

// Violation codes (exported consts for IDE completion and type safety by convention)
const (
	// Validation-time codes (data does not conform).
	CodeMissingColumn        = "missing_column"
	CodeTypeMismatch         = "type_mismatch"
	CodeNullValue            = "null_value"
	CodeOutOfRange           = "out_of_range"
	CodeDistributionMismatch = "distribution_mismatch"
	CodeCustomRule           = "custom_rule"
	// Definition-time codes (the contract itself is inconsistent).
	CodeEmptySchema         = "empty_schema"
	CodeUnknownColumn       = "unknown_column"
	CodeInvalidRange        = "invalid_range"
	CodeUnknownDistribution = "unknown_distribution"
	CodeNonNumericColumn    = "non_numeric_column"
)

// Stages attribute a violation to one side of a paired check.
const (
	StageInput         = "input"
	StageOutput        = "output"
	StagePrecondition  = "precondition"
	StagePostcondition = "postcondition"
)

// Violation is a single structured record describing one failed check.
type Violation struct {
	Column  string // Offending column; empty for dataset-wide failures.
	Code    string // One of the codes listed above.
	Message string
	// Stage attributes the violation to a side of a paired contract
	// ("input"/"output" for model contracts, "precondition"/"postcondition"
	// for guarded transforms). Empty for plain contracts.
	Stage    string
	Expected string // Declared expectation (type name, bound, family).
	Observed string // Observed counterpart (dtype, count summary, p-value).
	// Params carries structured parameters (e.g., {"min":18.0, "count":3})
	// for i18n and observability.
	Params map[string]any
}

// Violations is an ordered collection of violations that implements error.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(vs)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		v := vs[i]
		if v.Column == "" {
			b.WriteString(v.Code)
			continue
		}
		fmt.Fprintf(b, "%s on %q", v.Code, v.Column)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendViolations appends violations to the destination, initializing the
// slice when needed.
func AppendViolations(dst Violations, more ...Violation) Violations {
	if dst == nil {
		dst = Violations{}
	}
	dst = append(dst, more...)
	return dst
}

// ViolationError is the single error raised by a failing validation call. It
// carries the contract name and every violation found in that call, in check
// order; validation never stops at the first failing category.
type ViolationError struct {
	Contract   string
	Violations Violations
}

func (e *ViolationError) Error() string {
	return fmt.Sprintf("contract %q violated: %s", e.Contract, e.Violations.Error())
}

// Unwrap exposes the violation list to errors.As/Is chains.
func (e *ViolationError) Unwrap() error { return e.Violations }

// AsViolations extracts the violation list from an error using errors.As
// internally. It matches both *ViolationError and a bare Violations value.
func AsViolations(err error) (Violations, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ViolationError
	if errors.As(err, &ve) {
		return ve.Violations, true
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}

// DefinitionError reports an internally inconsistent contract. It is returned
// at construction time only, never at validation time: a bad definition is an
// authoring bug, not a data bug. Like ViolationError it carries every
// inconsistency found, not just the first.
type DefinitionError struct {
	Contract   string
	Violations Violations
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("contract %q definition invalid: %s", e.Contract, e.Violations.Error())
}

func (e *DefinitionError) Unwrap() error { return e.Violations }

// IsDefinitionError reports whether err is a contract-authoring error.
func IsDefinitionError(err error) bool {
	var de *DefinitionError
	return errors.As(err, &de)
}
