package datacontract

// Package datacontract provides:
//
// - Design-by-contract validation for tabular ML data via Contract (schema,
//   ranges, nullability, distribution families)
// - A stable error model via Violations (column, code, structured params)
//   raised as one ViolationError per validation call
// - ModelContract for paired input/output validation around a model
// - Guard for bracketing a transformation with pre/post contract checks
//
// Design policy:
// - Keep only public APIs in the root package; put the table implementation
//   under frame/, the statistics under stat/, document IO under contractio/.
// - Contracts are immutable after New; construction-time checks raise
//   DefinitionError, data checks raise ViolationError, never mixed.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  c := datacontract.MustNew(datacontract.Def{
//      Name:   "raw-users",
//      Schema: map[string]datacontract.LogicalType{"age": datacontract.Integer},
//      Ranges: map[string]datacontract.Range{"age": {Min: 18, Max: 75}},
//  })
//  if err := c.Validate(ctx, tbl); err != nil {
//      vs, _ := datacontract.AsViolations(err)
//      ...
//  }
//
