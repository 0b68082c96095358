package datacontract_test

import (
	"fmt"
	"strings"
	"testing"

	datacontract "github.com/reoring/datacontract"
)

func TestViolations_ErrorSummaryTruncates(t *testing.T) {
	var vs datacontract.Violations
	for i := 0; i < 5; i++ {
		vs = datacontract.AppendViolations(vs, datacontract.Violation{
			Column: fmt.Sprintf("c%d", i),
			Code:   datacontract.CodeOutOfRange,
		})
	}
	msg := vs.Error()
	if !strings.Contains(msg, `out_of_range on "c0"`) {
		t.Fatalf("expected first violation in summary, got %q", msg)
	}
	if !strings.Contains(msg, "total 5") {
		t.Fatalf("expected total count in summary, got %q", msg)
	}
	if strings.Contains(msg, "c4") {
		t.Fatalf("summary must stay bounded, got %q", msg)
	}
}

func TestViolationError_CarriesContractName(t *testing.T) {
	err := &datacontract.ViolationError{
		Contract:   "raw-users",
		Violations: datacontract.Violations{{Code: datacontract.CodeMissingColumn, Column: "age"}},
	}
	if !strings.Contains(err.Error(), `"raw-users"`) {
		t.Fatalf("expected contract name in message, got %q", err.Error())
	}
}

func TestAsViolations(t *testing.T) {
	inner := datacontract.Violations{{Code: datacontract.CodeNullValue, Column: "x"}}
	wrapped := fmt.Errorf("stage 3: %w", &datacontract.ViolationError{Contract: "c", Violations: inner})

	vs, ok := datacontract.AsViolations(wrapped)
	if !ok || len(vs) != 1 || vs[0].Column != "x" {
		t.Fatalf("expected violations through wrapping, got %v ok=%v", vs, ok)
	}

	if _, ok := datacontract.AsViolations(nil); ok {
		t.Fatalf("nil error must not yield violations")
	}
	if _, ok := datacontract.AsViolations(fmt.Errorf("plain")); ok {
		t.Fatalf("unrelated error must not yield violations")
	}
}

func TestDatasetWideViolationSummary(t *testing.T) {
	vs := datacontract.Violations{{Code: datacontract.CodeCustomRule}}
	if got := vs.Error(); got != datacontract.CodeCustomRule {
		t.Fatalf("dataset-wide violation should render bare code, got %q", got)
	}
}
