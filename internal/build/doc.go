// Package build derives a wrapper tree from an origin schema.
//
// Construction is depth-first from the root struct and follows field
// declaration order, so node IDs and field order are stable across runs:
//  1. Classify the field type with the names on the current descent path
//  2. Build the child subtree (pushing the struct name while descending)
//  3. Create the wrapper field and attach it to its class
//  4. Point the child's back-reference at the new field
//
// Inline structs always expand into independent subtrees. Only a Reference
// to a type already on the descent path stops the expansion, which is what
// keeps builds of recursive schemas finite.
package build
