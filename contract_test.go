package datacontract_test

import (
	"context"
	"errors"
	"testing"

	datacontract "github.com/reoring/datacontract"
	"github.com/reoring/datacontract/frame"
)

func boolPtr(b bool) *bool { return &b }

func TestNew_DefinitionErrors_Accumulate(t *testing.T) {
	_, err := datacontract.New(datacontract.Def{
		Name: "broken",
		Schema: map[string]datacontract.LogicalType{
			"age":  datacontract.Integer,
			"name": datacontract.String,
		},
		Ranges: map[string]datacontract.Range{
			"age":    {Min: 75, Max: 18}, // inverted
			"weight": {Min: 0, Max: 1},   // not in schema
			"name":   {Min: 0, Max: 1},   // non-numeric
		},
		Distribution: map[string]datacontract.Distribution{
			"age": "poisson", // unrecognized family
		},
	})
	if err == nil {
		t.Fatalf("expected definition error")
	}
	if !datacontract.IsDefinitionError(err) {
		t.Fatalf("expected DefinitionError, got %T", err)
	}
	de := err.(*datacontract.DefinitionError)
	if de.Contract != "broken" {
		t.Fatalf("expected contract name in error, got %q", de.Contract)
	}
	codes := map[string]int{}
	for _, v := range de.Violations {
		codes[v.Code]++
	}
	for _, want := range []string{
		datacontract.CodeInvalidRange,
		datacontract.CodeUnknownColumn,
		datacontract.CodeNonNumericColumn,
		datacontract.CodeUnknownDistribution,
	} {
		if codes[want] == 0 {
			t.Fatalf("expected %s among %v", want, de.Violations)
		}
	}
}

func TestNew_EmptySchema(t *testing.T) {
	_, err := datacontract.New(datacontract.Def{Name: "empty"})
	if err == nil {
		t.Fatalf("expected error for empty schema")
	}
	vs, ok := datacontract.AsViolations(err)
	if !ok || len(vs) != 1 || vs[0].Code != datacontract.CodeEmptySchema {
		t.Fatalf("expected single empty_schema violation, got %v", vs)
	}
}

func TestNew_ValidationNeverRaisesDefinitionError(t *testing.T) {
	// A well-formed contract validates without re-checking its own shape.
	c := datacontract.MustNew(datacontract.Def{
		Name:   "ok",
		Schema: map[string]datacontract.LogicalType{"x": datacontract.Float},
	})
	tbl := frame.MustNew(frame.Floats("x", 1, 2, 3))
	if err := c.Validate(context.Background(), tbl); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAccessors_DefensiveCopies(t *testing.T) {
	c := datacontract.MustNew(datacontract.Def{
		Name:   "immutable",
		Schema: map[string]datacontract.LogicalType{"a": datacontract.Integer},
		Ranges: map[string]datacontract.Range{"a": {Min: 0, Max: 10}},
	})
	c.Schema()["b"] = datacontract.Float
	c.Ranges()["a"] = datacontract.Range{Min: -1, Max: 1}
	if len(c.Schema()) != 1 {
		t.Fatalf("schema accessor leaked internal map")
	}
	if r := c.Ranges()["a"]; r.Min != 0 || r.Max != 10 {
		t.Fatalf("ranges accessor leaked internal map: %v", r)
	}
}

func TestValidate_EndToEnd(t *testing.T) {
	c := datacontract.MustNew(datacontract.Def{
		Name: "users",
		Schema: map[string]datacontract.LogicalType{
			"age":   datacontract.Integer,
			"score": datacontract.Integer,
		},
		Ranges: map[string]datacontract.Range{
			"age":   {Min: 18, Max: 75},
			"score": {Min: 0, Max: 100},
		},
		Nullable: boolPtr(false),
	})

	bad := frame.MustNew(
		frame.Ints("age", 25, 30),
		frame.Ints("score", 85, 150),
	)
	err := c.Validate(context.Background(), bad)
	if err == nil {
		t.Fatalf("expected violation for score=150")
	}
	vs, ok := datacontract.AsViolations(err)
	if !ok {
		t.Fatalf("expected Violations error, got %v", err)
	}
	if len(vs) != 1 {
		t.Fatalf("expected exactly one violation, got %v", vs)
	}
	if vs[0].Code != datacontract.CodeOutOfRange || vs[0].Column != "score" {
		t.Fatalf("expected out_of_range on score, got %+v", vs[0])
	}

	good := frame.MustNew(
		frame.Ints("age", 25, 30),
		frame.Ints("score", 85, 90),
	)
	if err := c.Validate(context.Background(), good); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RangeBoundaryInclusive(t *testing.T) {
	c := datacontract.MustNew(datacontract.Def{
		Name:   "bounds",
		Schema: map[string]datacontract.LogicalType{"v": datacontract.Float},
		Ranges: map[string]datacontract.Range{"v": {Min: 0, Max: 1}},
	})
	ctx := context.Background()

	onEdge := frame.MustNew(frame.Floats("v", 0, 1))
	if err := c.Validate(ctx, onEdge); err != nil {
		t.Fatalf("boundary values must pass: %v", err)
	}

	const eps = 1e-9
	below := frame.MustNew(frame.Floats("v", 0-eps))
	if err := c.Validate(ctx, below); err == nil {
		t.Fatalf("min-eps must fail")
	}
	above := frame.MustNew(frame.Floats("v", 1+eps))
	if err := c.Validate(ctx, above); err == nil {
		t.Fatalf("max+eps must fail")
	}
}

func TestValidate_Nullability(t *testing.T) {
	schema := map[string]datacontract.LogicalType{"v": datacontract.Float}
	tbl := frame.MustNew(frame.FloatsWithNulls("v", []float64{1, 0, 3}, []bool{true, false, true}))
	ctx := context.Background()

	strict := datacontract.MustNew(datacontract.Def{
		Name: "dense", Schema: schema, Nullable: boolPtr(false),
	})
	err := strict.Validate(ctx, tbl)
	if err == nil {
		t.Fatalf("expected null_value with nullable=false")
	}
	vs, _ := datacontract.AsViolations(err)
	if len(vs) != 1 || vs[0].Code != datacontract.CodeNullValue {
		t.Fatalf("expected single null_value violation, got %v", vs)
	}
	if got := vs[0].Params["count"]; got != 1 {
		t.Fatalf("expected null count 1, got %v", got)
	}

	lax := datacontract.MustNew(datacontract.Def{Name: "sparse", Schema: schema})
	if err := lax.Validate(ctx, tbl); err != nil {
		t.Fatalf("nullable=true must pass the same table: %v", err)
	}
}

func TestValidate_MergedReporting(t *testing.T) {
	// Range violation on "a" and type mismatch on "b" must surface in one
	// raised error: categories never short-circuit each other.
	c := datacontract.MustNew(datacontract.Def{
		Name: "merged",
		Schema: map[string]datacontract.LogicalType{
			"a": datacontract.Integer,
			"b": datacontract.Integer,
		},
		Ranges: map[string]datacontract.Range{"a": {Min: 0, Max: 10}},
	})
	tbl := frame.MustNew(
		frame.Ints("a", 5, 99),
		frame.Strings("b", "x", "y"),
	)
	err := c.Validate(context.Background(), tbl)
	if err == nil {
		t.Fatalf("expected violations")
	}
	vs, _ := datacontract.AsViolations(err)
	if len(vs) != 2 {
		t.Fatalf("expected both violations in one error, got %v", vs)
	}
	// Check order is category-major: schema findings precede range findings.
	if vs[0].Code != datacontract.CodeTypeMismatch || vs[0].Column != "b" {
		t.Fatalf("expected type_mismatch on b first, got %+v", vs[0])
	}
	if vs[1].Code != datacontract.CodeOutOfRange || vs[1].Column != "a" {
		t.Fatalf("expected out_of_range on a second, got %+v", vs[1])
	}
}

func TestValidate_MissingColumnAndTypeWidening(t *testing.T) {
	c := datacontract.MustNew(datacontract.Def{
		Name: "shape",
		Schema: map[string]datacontract.LogicalType{
			"f": datacontract.Float,
			"i": datacontract.Integer,
			"m": datacontract.String,
		},
	})
	// Integer-valued data widens to float, float data never narrows to int,
	// and the declared-but-absent column reports missing_column.
	tbl := frame.MustNew(
		frame.Ints("f", 1, 2),
		frame.Floats("i", 1, 2),
	)
	err := c.Validate(context.Background(), tbl)
	vs, ok := datacontract.AsViolations(err)
	if !ok || len(vs) != 2 {
		t.Fatalf("expected 2 violations, got %v", err)
	}
	if vs[0].Column != "i" || vs[0].Code != datacontract.CodeTypeMismatch {
		t.Fatalf("expected type_mismatch on i, got %+v", vs[0])
	}
	if vs[1].Column != "m" || vs[1].Code != datacontract.CodeMissingColumn {
		t.Fatalf("expected missing_column on m, got %+v", vs[1])
	}
}

func TestValidate_Idempotent(t *testing.T) {
	c := datacontract.MustNew(datacontract.Def{
		Name:   "twice",
		Schema: map[string]datacontract.LogicalType{"v": datacontract.Integer},
		Ranges: map[string]datacontract.Range{"v": {Min: 0, Max: 1}},
	})
	tbl := frame.MustNew(frame.Ints("v", 5))
	ctx := context.Background()

	first, _ := datacontract.AsViolations(c.Validate(ctx, tbl))
	second, _ := datacontract.AsViolations(c.Validate(ctx, tbl))
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("expected one violation each run, got %v / %v", first, second)
	}
	if first[0].Code != second[0].Code || first[0].Column != second[0].Column {
		t.Fatalf("validation is not idempotent: %+v vs %+v", first[0], second[0])
	}
}

func TestValidate_DistributionStub(t *testing.T) {
	low := func(sample []float64, family datacontract.Distribution) (float64, error) {
		return 0.01, nil
	}
	c := datacontract.MustNew(datacontract.Def{
		Name:          "dist",
		Schema:        map[string]datacontract.LogicalType{"v": datacontract.Float},
		Distribution:  map[string]datacontract.Distribution{"v": datacontract.Normal},
		GoodnessOfFit: low,
	})
	tbl := frame.MustNew(frame.Floats("v", 1, 2, 3, 4, 5, 6, 7, 8))
	err := c.Validate(context.Background(), tbl)
	vs, ok := datacontract.AsViolations(err)
	if !ok || len(vs) != 1 || vs[0].Code != datacontract.CodeDistributionMismatch {
		t.Fatalf("expected distribution_mismatch, got %v", err)
	}
	if p := vs[0].Params["p_value"]; p != 0.01 {
		t.Fatalf("expected observed p-value in params, got %v", p)
	}
}

func TestValidate_DistributionSkipsSmallSample(t *testing.T) {
	calls := 0
	gof := func(sample []float64, family datacontract.Distribution) (float64, error) {
		calls++
		return 0, nil
	}
	c := datacontract.MustNew(datacontract.Def{
		Name:          "small",
		Schema:        map[string]datacontract.LogicalType{"v": datacontract.Float},
		Distribution:  map[string]datacontract.Distribution{"v": datacontract.Normal},
		GoodnessOfFit: gof,
	})
	// 7 non-null values: one short of MinDistSample.
	tbl := frame.MustNew(frame.FloatsWithNulls("v",
		[]float64{1, 2, 3, 4, 5, 6, 7, 0},
		[]bool{true, true, true, true, true, true, true, false},
	))
	if err := c.Validate(context.Background(), tbl); err != nil {
		t.Fatalf("insufficient data is not a violation: %v", err)
	}
	if calls != 0 {
		t.Fatalf("goodness-of-fit must not run below the sample floor, ran %d time(s)", calls)
	}
}

func TestValidate_DistributionTestErrorSkips(t *testing.T) {
	// A goodness-of-fit function that cannot run (degenerate sample and the
	// like) skips the check; inability to test is not a data violation.
	gof := func(sample []float64, family datacontract.Distribution) (float64, error) {
		return 0, errors.New("zero variance")
	}
	c := datacontract.MustNew(datacontract.Def{
		Name:          "degenerate",
		Schema:        map[string]datacontract.LogicalType{"v": datacontract.Float},
		Distribution:  map[string]datacontract.Distribution{"v": datacontract.Normal},
		GoodnessOfFit: gof,
	})
	tbl := frame.MustNew(frame.Floats("v", 3, 3, 3, 3, 3, 3, 3, 3))
	if err := c.Validate(context.Background(), tbl); err != nil {
		t.Fatalf("expected skip when the test cannot run, got %v", err)
	}
}

func TestValidate_NilTable(t *testing.T) {
	c := datacontract.MustNew(datacontract.Def{
		Name: "nil-input",
		Schema: map[string]datacontract.LogicalType{
			"a": datacontract.Integer,
			"b": datacontract.Float,
		},
	})
	err := c.Validate(context.Background(), nil)
	vs, ok := datacontract.AsViolations(err)
	if !ok || len(vs) != 2 {
		t.Fatalf("expected every declared column reported missing, got %v", err)
	}
	for _, v := range vs {
		if v.Code != datacontract.CodeMissingColumn {
			t.Fatalf("expected missing_column, got %+v", v)
		}
	}
}

func TestValidate_CustomRules(t *testing.T) {
	rule := func(ctx context.Context, tbl datacontract.Table) datacontract.Violations {
		if tbl.NumRows() >= 2 {
			return nil
		}
		return datacontract.Violations{{Code: datacontract.CodeCustomRule, Message: "too few rows"}}
	}
	c := datacontract.MustNew(datacontract.Def{
		Name:   "custom",
		Schema: map[string]datacontract.LogicalType{"v": datacontract.Integer},
		Rules:  []datacontract.Rule{rule},
	})
	err := c.Validate(context.Background(), frame.MustNew(frame.Ints("v", 1)))
	vs, ok := datacontract.AsViolations(err)
	if !ok || len(vs) != 1 || vs[0].Code != datacontract.CodeCustomRule {
		t.Fatalf("expected custom_rule violation, got %v", err)
	}
}
