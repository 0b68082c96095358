package datacontract

import (
	"context"
)

// Transform is the shape of a wrapped table transformation.
type Transform func(ctx context.Context, t Table) (Table, error)

// GuardDef defines the pre/post contracts a Guard enforces around a
// transformation: the incoming table must satisfy InputSchema, the returned
// table must satisfy OutputSchema plus the optional OutputRanges, with
// Nullable governing the output check only.
type GuardDef struct {
	Name         string
	InputSchema  map[string]LogicalType
	OutputSchema map[string]LogicalType
	OutputRanges map[string]Range
	Nullable     *bool
}

// Guard brackets a transformation with contract checks. Build one with
// NewGuard, then Wrap the transformations it should protect; a single Guard
// can wrap any number of them.
type Guard struct {
	name string
	pre  *Contract
	post *Contract
}

// NewGuard builds the implicit pre and post contracts from def. The input
// side carries no ranges, distributions, or nullability constraints; failures
// there are attributed to the caller, not the transformation.
func NewGuard(def GuardDef) (*Guard, error) {
	var vs Violations
	pre, err := New(Def{Name: def.Name, Schema: def.InputSchema})
	if err != nil {
		if de, ok := err.(*DefinitionError); ok {
			vs = append(vs, stamp(de.Violations, StagePrecondition)...)
		} else {
			return nil, err
		}
	}
	post, err := New(Def{
		Name:     def.Name,
		Schema:   def.OutputSchema,
		Ranges:   def.OutputRanges,
		Nullable: def.Nullable,
	})
	if err != nil {
		if de, ok := err.(*DefinitionError); ok {
			vs = append(vs, stamp(de.Violations, StagePostcondition)...)
		} else {
			return nil, err
		}
	}
	if len(vs) > 0 {
		return nil, &DefinitionError{Contract: def.Name, Violations: vs}
	}
	return &Guard{name: def.Name, pre: pre, post: post}, nil
}

// MustNewGuard is NewGuard that panics on a definition error.
func MustNewGuard(def GuardDef) *Guard {
	g, err := NewGuard(def)
	if err != nil {
		panic(err)
	}
	return g
}

// Name returns the diagnostic label.
func (g *Guard) Name() string { return g.name }

// Wrap returns a Transform with the same signature as fn that validates the
// incoming table before invoking it and the returned table after. Violations
// on the way in are stamped "precondition", violations on the way out
// "postcondition", so callers can tell bad input apart from a transformation
// that broke its own contract. Errors returned by fn itself propagate
// unchanged; the guard never masks them.
func (g *Guard) Wrap(fn Transform) Transform {
	return func(ctx context.Context, t Table) (Table, error) {
		if vs := g.pre.check(ctx, t, StagePrecondition); len(vs) > 0 {
			return nil, &ViolationError{Contract: g.name, Violations: vs}
		}
		out, err := fn(ctx, t)
		if err != nil {
			return nil, err
		}
		if vs := g.post.check(ctx, out, StagePostcondition); len(vs) > 0 {
			return nil, &ViolationError{Contract: g.name, Violations: vs}
		}
		return out, nil
	}
}
