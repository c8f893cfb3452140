// Package validate checks the structural invariants of a wrapper tree after
// it is built:
//   - exactly one node without an owner, the designated root class
//   - every other node reachable from the root by exactly one ownership path
//   - no ownership edge revisits a node on the current walk
//   - every field listed by exactly one class, named by its Owner back-reference
//   - every nested class or enum exposed through the field named by its Parent
//
// Violations are builder defects; they are reported, never repaired.
package validate
