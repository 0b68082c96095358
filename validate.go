package datacontract

import (
	"context"
	"fmt"

	"github.com/reoring/datacontract/i18n"
)

// Validate checks t against the contract. All check categories run
// unconditionally so a single call surfaces every independent problem at once:
// schema first, then nullability, ranges, distributions, and finally custom
// rules. A non-empty accumulated list is raised as one *ViolationError; on
// success Validate returns nil with no observable side effect.
//
// Validate only reads t. Calling it twice on the same (Contract, Table) pair
// yields the same outcome and the same violation list.
func (c *Contract) Validate(ctx context.Context, t Table) error {
	vs := c.check(ctx, t, "")
	if len(vs) > 0 {
		return &ViolationError{Contract: c.name, Violations: vs}
	}
	return nil
}

// check runs the five categories and stamps stage onto every violation. A nil
// table reads as a table with no columns, so every declared column reports
// missing rather than panicking on the nil interface.
func (c *Contract) check(ctx context.Context, t Table, stage string) Violations {
	if t == nil {
		t = emptyTable{}
	}
	vs := c.checkSchema(t)
	vs = append(vs, c.checkNulls(t)...)
	vs = append(vs, c.checkRanges(t)...)
	vs = append(vs, c.checkDistributions(t)...)
	vs = append(vs, c.checkRules(ctx, t)...)
	return stamp(vs, stage)
}

// checkSchema verifies presence and physical/logical type compatibility for
// every declared column.
func (c *Contract) checkSchema(t Table) Violations {
	var vs Violations
	for _, name := range c.cols {
		lt := c.schema[name]
		col, ok := t.Column(name)
		if !ok {
			vs = AppendViolations(vs, Violation{
				Column:   name,
				Code:     CodeMissingColumn,
				Message:  i18n.T(CodeMissingColumn, map[string]string{"column": name}),
				Expected: lt.String(),
			})
			continue
		}
		if !lt.Compatible(col.DType()) {
			vs = AppendViolations(vs, Violation{
				Column:   name,
				Code:     CodeTypeMismatch,
				Message:  i18n.T(CodeTypeMismatch, map[string]string{"column": name, "expected": lt.String(), "observed": col.DType().String()}),
				Expected: lt.String(),
				Observed: col.DType().String(),
			})
		}
	}
	return vs
}

// checkNulls reports null cells in any declared column when the contract
// forbids them. Missing columns are the schema check's business and are
// skipped here.
func (c *Contract) checkNulls(t Table) Violations {
	if c.nullable {
		return nil
	}
	var vs Violations
	for _, name := range c.cols {
		col, ok := t.Column(name)
		if !ok {
			continue
		}
		if n := col.NullCount(); n > 0 {
			vs = AppendViolations(vs, Violation{
				Column:   name,
				Code:     CodeNullValue,
				Message:  i18n.T(CodeNullValue, map[string]string{"column": name, "count": fmt.Sprint(n)}),
				Expected: "no nulls",
				Observed: fmt.Sprintf("%d null value(s)", n),
				Params:   map[string]any{"count": n},
			})
		}
	}
	return vs
}

// checkRanges reports values outside a column's inclusive bound. The
// diagnostic is a bounded summary (count plus fraction of non-null rows), not
// a row-by-row listing, so output stays small on large tables. Columns the
// schema check already flagged as missing or non-numeric are skipped.
func (c *Contract) checkRanges(t Table) Violations {
	var vs Violations
	for _, name := range sortedKeys(c.ranges) {
		r := c.ranges[name]
		col, ok := t.Column(name)
		if !ok || !col.DType().Numeric() {
			continue
		}
		count := col.CountOutside(r.Min, r.Max)
		if count == 0 {
			continue
		}
		nonNull := col.Len() - col.NullCount()
		frac := 0.0
		if nonNull > 0 {
			frac = float64(count) / float64(nonNull)
		}
		lo, hi, _ := col.MinMax()
		vs = AppendViolations(vs, Violation{
			Column:   name,
			Code:     CodeOutOfRange,
			Message:  i18n.T(CodeOutOfRange, map[string]string{"column": name, "min": fmt.Sprint(r.Min), "max": fmt.Sprint(r.Max)}),
			Expected: fmt.Sprintf("[%g, %g]", r.Min, r.Max),
			Observed: fmt.Sprintf("%d of %d rows outside (%.1f%%), observed [%g, %g]", count, nonNull, frac*100, lo, hi),
			Params: map[string]any{
				"min": r.Min, "max": r.Max,
				"count": count, "fraction": frac,
			},
		})
	}
	return vs
}

// checkDistributions runs the goodness-of-fit test for every constrained
// column. Columns with fewer than MinDistSample non-null values are skipped,
// as are columns the test itself cannot handle (degenerate samples): inability
// to run the test is not a data violation.
func (c *Contract) checkDistributions(t Table) Violations {
	var vs Violations
	for _, name := range sortedKeys(c.dist) {
		family := c.dist[name]
		col, ok := t.Column(name)
		if !ok || !col.DType().Numeric() {
			continue
		}
		sample := col.Floats()
		if len(sample) < MinDistSample {
			continue
		}
		p, err := c.gof(sample, family)
		if err != nil {
			continue
		}
		if p < DefaultAlpha {
			vs = AppendViolations(vs, Violation{
				Column:   name,
				Code:     CodeDistributionMismatch,
				Message:  i18n.T(CodeDistributionMismatch, map[string]string{"column": name, "family": string(family)}),
				Expected: string(family),
				Observed: fmt.Sprintf("p=%.4g (alpha=%g)", p, DefaultAlpha),
				Params:   map[string]any{"p_value": p, "alpha": DefaultAlpha, "n": len(sample)},
			})
		}
	}
	return vs
}

func (c *Contract) checkRules(ctx context.Context, t Table) Violations {
	var vs Violations
	for _, rule := range c.rules {
		if rule == nil {
			continue
		}
		vs = append(vs, rule(ctx, t)...)
	}
	return vs
}

// emptyTable stands in for a nil table argument.
type emptyTable struct{}

func (emptyTable) NumRows() int                 { return 0 }
func (emptyTable) Column(string) (Column, bool) { return nil, false }
func (emptyTable) ColumnNames() []string        { return nil }

func stamp(vs Violations, stage string) Violations {
	if stage == "" {
		return vs
	}
	for i := range vs {
		vs[i].Stage = stage
	}
	return vs
}
