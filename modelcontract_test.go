package datacontract_test

import (
	"context"
	"testing"

	datacontract "github.com/reoring/datacontract"
	"github.com/reoring/datacontract/frame"
)

func testModel(t *testing.T) *datacontract.ModelContract {
	t.Helper()
	m, err := datacontract.NewModel(datacontract.ModelDef{
		Name:        "churn-v2",
		Description: "churn probability model",
		InputSchema: map[string]datacontract.LogicalType{
			"tenure": datacontract.Integer,
			"spend":  datacontract.Float,
		},
		InputRanges: map[string]datacontract.Range{
			"tenure": {Min: 0, Max: 600},
		},
		OutputSchema: map[string]datacontract.LogicalType{
			"churn_prob": datacontract.Float,
		},
		OutputRanges: map[string]datacontract.Range{
			"churn_prob": {Min: 0, Max: 1},
		},
	})
	if err != nil {
		t.Fatalf("building model contract: %v", err)
	}
	return m
}

func TestModel_ValidateInputOutput(t *testing.T) {
	m := testModel(t)
	ctx := context.Background()

	in := frame.MustNew(
		frame.Ints("tenure", 12, 48),
		frame.Floats("spend", 10.5, 99.9),
	)
	if err := m.ValidateInput(ctx, in); err != nil {
		t.Fatalf("unexpected input violation: %v", err)
	}

	out := frame.MustNew(frame.Floats("churn_prob", 0.1, 1.7))
	err := m.ValidateOutput(ctx, out)
	vs, ok := datacontract.AsViolations(err)
	if !ok || len(vs) != 1 {
		t.Fatalf("expected one output violation, got %v", err)
	}
	if vs[0].Code != datacontract.CodeOutOfRange || vs[0].Stage != datacontract.StageOutput {
		t.Fatalf("expected out_of_range stamped output, got %+v", vs[0])
	}
}

func TestModel_Validate_MergesBothSides(t *testing.T) {
	m := testModel(t)

	// Input is missing a column, output breaks its range: both must appear
	// in the one raised error, input side first.
	in := frame.MustNew(frame.Ints("tenure", 12))
	out := frame.MustNew(frame.Floats("churn_prob", 2.5))

	err := m.Validate(context.Background(), in, out)
	vs, ok := datacontract.AsViolations(err)
	if !ok || len(vs) != 2 {
		t.Fatalf("expected merged violations from both sides, got %v", err)
	}
	if vs[0].Stage != datacontract.StageInput || vs[0].Code != datacontract.CodeMissingColumn {
		t.Fatalf("expected input missing_column first, got %+v", vs[0])
	}
	if vs[1].Stage != datacontract.StageOutput || vs[1].Code != datacontract.CodeOutOfRange {
		t.Fatalf("expected output out_of_range second, got %+v", vs[1])
	}
}

func TestModel_OutputSideIsDense(t *testing.T) {
	// Model sides default to nullable; nulls in the input are tolerated.
	m := testModel(t)
	in := frame.MustNew(
		frame.IntsWithNulls("tenure", []int64{12, 0}, []bool{true, false}),
		frame.Floats("spend", 10, 20),
	)
	if err := m.ValidateInput(context.Background(), in); err != nil {
		t.Fatalf("model input side must tolerate nulls: %v", err)
	}
}

func TestNewModel_MergesDefinitionErrors(t *testing.T) {
	_, err := datacontract.NewModel(datacontract.ModelDef{
		Name:         "broken",
		InputSchema:  map[string]datacontract.LogicalType{"x": datacontract.Float},
		InputRanges:  map[string]datacontract.Range{"y": {Min: 0, Max: 1}}, // unknown column
		OutputSchema: map[string]datacontract.LogicalType{"p": datacontract.Float},
		OutputRanges: map[string]datacontract.Range{"p": {Min: 1, Max: 0}}, // inverted
	})
	if err == nil {
		t.Fatalf("expected definition error")
	}
	vs, ok := datacontract.AsViolations(err)
	if !ok || len(vs) != 2 {
		t.Fatalf("expected both sides' definition violations, got %v", err)
	}
	if vs[0].Stage != datacontract.StageInput || vs[1].Stage != datacontract.StageOutput {
		t.Fatalf("expected input/output stages, got %+v", vs)
	}
}
