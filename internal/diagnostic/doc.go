// Package diagnostic provides the error taxonomy of the bridge generator.
//
// Every failure carries a code, the origin type name and the field path
// that locate the offending schema entry:
//   - unresolved_reference: a Reference names a type absent from the schema
//   - empty_struct: a struct without fields when the build requires fields
//   - cycle, multiple_roots, orphan_field, shared_node: wrapper tree
//     invariant violations reported by the validator
//
// Diagnostics aggregates several errors so that a single pass can report
// every violation at once.
package diagnostic
