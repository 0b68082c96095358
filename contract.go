package datacontract

import (
	"context"
	"fmt"
	"sort"
)

// Rule is a custom dataset-level check attached to a contract. Rules run after
// the built-in categories and report under the custom_rule code. The rules
// package provides combinators and common rules.
type Rule func(ctx context.Context, t Table) Violations

// Def is the declarative definition a Contract is built from. Field names
// mirror the contract documents handled by the contractio package.
type Def struct {
	// Name is a free-form label used only in diagnostics.
	Name string
	// Schema maps column names to expected logical types. Required, non-empty.
	Schema map[string]LogicalType
	// Ranges maps column names to inclusive bounds. Keys must appear in
	// Schema with a numeric logical type. Absent columns are unconstrained.
	Ranges map[string]Range
	// Distribution maps column names to expected distribution families.
	// Same key discipline as Ranges.
	Distribution map[string]Distribution
	// Nullable controls whether any schema column may contain nulls.
	// nil defaults to true.
	Nullable *bool
	// Rules are optional custom checks run as a fifth category.
	Rules []Rule
	// GoodnessOfFit overrides the distribution test. nil uses
	// DefaultGoodnessOfFit.
	GoodnessOfFit GoodnessOfFit
}

// Contract is an immutable validation specification for a tabular dataset.
// Construction is the only mutation point; a Contract is safe to share across
// goroutines and reuse for many Validate calls.
type Contract struct {
	name     string
	cols     []string // schema column names, lexicographic
	schema   map[string]LogicalType
	ranges   map[string]Range
	dist     map[string]Distribution
	nullable bool
	rules    []Rule
	gof      GoodnessOfFit
}

// New builds a Contract from def, checking internal consistency eagerly. It
// returns a *DefinitionError listing every inconsistency when the definition
// references columns absent from the schema, inverts a range bound, names an
// unrecognized distribution family, or constrains a non-numeric column.
func New(def Def) (*Contract, error) {
	var vs Violations
	if len(def.Schema) == 0 {
		vs = AppendViolations(vs, Violation{
			Code:    CodeEmptySchema,
			Message: "schema must declare at least one column",
		})
	}
	for _, col := range sortedKeys(def.Ranges) {
		r := def.Ranges[col]
		lt, ok := def.Schema[col]
		switch {
		case !ok:
			vs = AppendViolations(vs, Violation{
				Column:  col,
				Code:    CodeUnknownColumn,
				Message: "ranges references a column absent from schema",
			})
		case !lt.Numeric():
			vs = AppendViolations(vs, Violation{
				Column:   col,
				Code:     CodeNonNumericColumn,
				Message:  "range bound on a non-numeric column",
				Expected: "integer or float",
				Observed: lt.String(),
			})
		}
		if r.Min > r.Max {
			vs = AppendViolations(vs, Violation{
				Column:   col,
				Code:     CodeInvalidRange,
				Message:  "range min exceeds max",
				Observed: fmt.Sprintf("[%g, %g]", r.Min, r.Max),
				Params:   map[string]any{"min": r.Min, "max": r.Max},
			})
		}
	}
	for _, col := range sortedKeys(def.Distribution) {
		d := def.Distribution[col]
		lt, ok := def.Schema[col]
		switch {
		case !ok:
			vs = AppendViolations(vs, Violation{
				Column:  col,
				Code:    CodeUnknownColumn,
				Message: "distribution references a column absent from schema",
			})
		case !lt.Numeric():
			vs = AppendViolations(vs, Violation{
				Column:   col,
				Code:     CodeNonNumericColumn,
				Message:  "distribution on a non-numeric column",
				Expected: "integer or float",
				Observed: lt.String(),
			})
		}
		if !KnownDistribution(d) {
			vs = AppendViolations(vs, Violation{
				Column:   col,
				Code:     CodeUnknownDistribution,
				Message:  "unrecognized distribution family",
				Expected: fmt.Sprintf("%q or %q", Normal, Uniform),
				Observed: string(d),
			})
		}
	}
	if len(vs) > 0 {
		return nil, &DefinitionError{Contract: def.Name, Violations: vs}
	}

	c := &Contract{
		name:     def.Name,
		cols:     sortedKeys(def.Schema),
		schema:   copyMap(def.Schema),
		ranges:   copyMap(def.Ranges),
		dist:     copyMap(def.Distribution),
		nullable: def.Nullable == nil || *def.Nullable,
		rules:    append([]Rule(nil), def.Rules...),
		gof:      def.GoodnessOfFit,
	}
	if c.gof == nil {
		c.gof = DefaultGoodnessOfFit
	}
	return c, nil
}

// MustNew is New that panics on a definition error. Intended for contracts
// declared as package-level values.
func MustNew(def Def) *Contract {
	c, err := New(def)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the diagnostic label.
func (c *Contract) Name() string { return c.name }

// Nullable reports whether schema columns may contain nulls.
func (c *Contract) Nullable() bool { return c.nullable }

// Columns returns the schema column names in validation order.
func (c *Contract) Columns() []string { return append([]string(nil), c.cols...) }

// Schema returns a defensive copy of the declared schema.
func (c *Contract) Schema() map[string]LogicalType { return copyMap(c.schema) }

// Ranges returns a defensive copy of the declared bounds.
func (c *Contract) Ranges() map[string]Range { return copyMap(c.ranges) }

// Distribution returns a defensive copy of the declared families.
func (c *Contract) Distribution() map[string]Distribution { return copyMap(c.dist) }

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func copyMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
