package datacontract

import (
	"context"
)

// ModelDef defines a paired contract around a model: one schema/ranges pair
// for the feature matrix going in, one for the predictions coming out.
type ModelDef struct {
	Name        string
	Description string // Metadata only; never inspected.

	InputSchema map[string]LogicalType
	InputRanges map[string]Range

	OutputSchema map[string]LogicalType
	OutputRanges map[string]Range
}

// ModelContract validates the input and output sides of a model with one
// definition. Both sides default to nullable with no distribution constraints;
// a trained model's output is assumed dense.
type ModelContract struct {
	name        string
	description string
	input       *Contract
	output      *Contract
}

// NewModel builds a ModelContract, checking both sides eagerly. Definition
// errors from the two sides are merged into one *DefinitionError with each
// violation stamped with its stage.
func NewModel(def ModelDef) (*ModelContract, error) {
	var vs Violations
	in, err := New(Def{Name: def.Name, Schema: def.InputSchema, Ranges: def.InputRanges})
	if err != nil {
		if de, ok := err.(*DefinitionError); ok {
			vs = append(vs, stamp(de.Violations, StageInput)...)
		} else {
			return nil, err
		}
	}
	out, err := New(Def{Name: def.Name, Schema: def.OutputSchema, Ranges: def.OutputRanges})
	if err != nil {
		if de, ok := err.(*DefinitionError); ok {
			vs = append(vs, stamp(de.Violations, StageOutput)...)
		} else {
			return nil, err
		}
	}
	if len(vs) > 0 {
		return nil, &DefinitionError{Contract: def.Name, Violations: vs}
	}
	return &ModelContract{
		name:        def.Name,
		description: def.Description,
		input:       in,
		output:      out,
	}, nil
}

// MustNewModel is NewModel that panics on a definition error.
func MustNewModel(def ModelDef) *ModelContract {
	m, err := NewModel(def)
	if err != nil {
		panic(err)
	}
	return m
}

// Name returns the diagnostic label.
func (m *ModelContract) Name() string { return m.name }

// Description returns the free-form description.
func (m *ModelContract) Description() string { return m.description }

// Input returns the contract applied to the input side.
func (m *ModelContract) Input() *Contract { return m.input }

// Output returns the contract applied to the output side.
func (m *ModelContract) Output() *Contract { return m.output }

// ValidateInput checks the feature table against the input schema and ranges.
func (m *ModelContract) ValidateInput(ctx context.Context, x Table) error {
	vs := m.input.check(ctx, x, StageInput)
	if len(vs) > 0 {
		return &ViolationError{Contract: m.name, Violations: vs}
	}
	return nil
}

// ValidateOutput checks the prediction table against the output schema and
// ranges.
func (m *ModelContract) ValidateOutput(ctx context.Context, y Table) error {
	vs := m.output.check(ctx, y, StageOutput)
	if len(vs) > 0 {
		return &ViolationError{Contract: m.name, Violations: vs}
	}
	return nil
}

// Validate checks both sides and merges the two violation sets into one
// raised error, input side first. The output check always runs even when the
// input side fails: diagnosing a broken pipeline stage often needs the
// mismatches on both sides at once.
func (m *ModelContract) Validate(ctx context.Context, x, y Table) error {
	vs := m.input.check(ctx, x, StageInput)
	vs = append(vs, m.output.check(ctx, y, StageOutput)...)
	if len(vs) > 0 {
		return &ViolationError{Contract: m.name, Violations: vs}
	}
	return nil
}
