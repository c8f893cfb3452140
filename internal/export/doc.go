// Package export serialises validated wrapper trees for an emitter.
//
// The document lists every node reachable from the root in pre-order with
// its kind, resolution and bridged type; class nodes carry their fields in
// declaration order and enum nodes their cases. Node and field IDs are the
// tree's own, so references between entries survive a round trip.
// Output is deterministic for a given tree.
package export
