// Package origin describes the input of the bridge generator: an immutable
// model of nominal structs, enums, primitives, arrays, dictionaries and
// named references.
//
// Key types:
//   - Type: tagged variant selected by Kind
//   - Field: one struct property with its type
//   - Schema: the designated root struct and every named definition
//   - Path: readable field paths used to locate schema entries in errors
package origin
