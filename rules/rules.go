// Package rules provides combinators and common custom checks attachable to a
// contract via Def.Rules. A rule sees the whole table and reports violations
// under the custom_rule code; the built-in schema/null/range/distribution
// categories stay in the root package.
package rules

import (
	"context"
	"fmt"

	datacontract "github.com/reoring/datacontract"
)

// Rule is an alias for the contract-level rule function.
type Rule = datacontract.Rule

// And executes all rules and concatenates violations.
func And(rules ...Rule) Rule {
	return func(ctx context.Context, t datacontract.Table) datacontract.Violations {
		var out datacontract.Violations
		for _, r := range rules {
			if r == nil {
				continue
			}
			out = append(out, r(ctx, t)...)
		}
		return out
	}
}

// Or succeeds if any rule reports no violations. When every branch fails it
// returns the branch with the fewest violations.
func Or(rules ...Rule) Rule {
	return func(ctx context.Context, t datacontract.Table) datacontract.Violations {
		var best datacontract.Violations
		bestSet := false
		for _, r := range rules {
			if r == nil {
				continue
			}
			vs := r(ctx, t)
			if len(vs) == 0 {
				return nil
			}
			if !bestSet || len(vs) < len(best) {
				best = vs
				bestSet = true
			}
		}
		if bestSet {
			return best
		}
		return nil
	}
}

// Positive requires every non-null value of the named numeric column to be
// greater than zero.
func Positive(column string) Rule {
	return func(ctx context.Context, t datacontract.Table) datacontract.Violations {
		col, ok := t.Column(column)
		if !ok || !col.DType().Numeric() {
			return nil
		}
		n := 0
		for _, v := range col.Floats() {
			if v <= 0 {
				n++
			}
		}
		if n == 0 {
			return nil
		}
		return datacontract.Violations{{
			Column:   column,
			Code:     datacontract.CodeCustomRule,
			Message:  fmt.Sprintf("column %q must be strictly positive", column),
			Expected: "> 0",
			Observed: fmt.Sprintf("%d non-positive value(s)", n),
			Params:   map[string]any{"rule": "positive", "count": n},
		}}
	}
}

// MaxNullFraction bounds the fraction of null cells in the named column.
// Unlike the contract-wide nullable flag this tolerates sparse gaps while
// still catching columns that have gone mostly empty.
func MaxNullFraction(column string, limit float64) Rule {
	return func(ctx context.Context, t datacontract.Table) datacontract.Violations {
		col, ok := t.Column(column)
		if !ok || col.Len() == 0 {
			return nil
		}
		frac := float64(col.NullCount()) / float64(col.Len())
		if frac <= limit {
			return nil
		}
		return datacontract.Violations{{
			Column:   column,
			Code:     datacontract.CodeCustomRule,
			Message:  fmt.Sprintf("column %q exceeds the allowed null fraction", column),
			Expected: fmt.Sprintf("null fraction <= %g", limit),
			Observed: fmt.Sprintf("%.3f", frac),
			Params:   map[string]any{"rule": "max_null_fraction", "limit": limit, "fraction": frac},
		}}
	}
}

// Unique requires the non-null values of the named column to be distinct.
// Nulls never count as duplicates of each other.
func Unique(column string) Rule {
	return func(ctx context.Context, t datacontract.Table) datacontract.Violations {
		col, ok := t.Column(column)
		if !ok {
			return nil
		}
		seen := map[string]struct{}{}
		dups := 0
		for _, key := range columnKeys(col) {
			if _, dup := seen[key]; dup {
				dups++
				continue
			}
			seen[key] = struct{}{}
		}
		if dups == 0 {
			return nil
		}
		return datacontract.Violations{{
			Column:   column,
			Code:     datacontract.CodeCustomRule,
			Message:  fmt.Sprintf("column %q must hold distinct values", column),
			Expected: "all values distinct",
			Observed: fmt.Sprintf("%d duplicated value(s)", dups),
			Params:   map[string]any{"rule": "unique", "count": dups},
		}}
	}
}

// columnKeys renders the non-null cells as string comparison keys. Columns
// that expose per-cell access (the frame implementation does) cover every
// dtype; otherwise only the widened numeric view is available.
func columnKeys(col datacontract.Column) []string {
	type valuer interface {
		Value(i int) any
		IsNull(i int) bool
	}
	if v, ok := col.(valuer); ok {
		keys := make([]string, 0, col.Len())
		for i := 0; i < col.Len(); i++ {
			if v.IsNull(i) {
				continue
			}
			keys = append(keys, fmt.Sprint(v.Value(i)))
		}
		return keys
	}
	vals := col.Floats()
	keys := make([]string, 0, len(vals))
	for _, f := range vals {
		keys = append(keys, fmt.Sprint(f))
	}
	return keys
}

// MinRows requires the table to hold at least n rows.
func MinRows(n int) Rule {
	return func(ctx context.Context, t datacontract.Table) datacontract.Violations {
		if t.NumRows() >= n {
			return nil
		}
		return datacontract.Violations{{
			Code:     datacontract.CodeCustomRule,
			Message:  fmt.Sprintf("table must hold at least %d rows", n),
			Expected: fmt.Sprintf(">= %d rows", n),
			Observed: fmt.Sprintf("%d rows", t.NumRows()),
			Params:   map[string]any{"rule": "min_rows", "min": n, "rows": t.NumRows()},
		}}
	}
}
