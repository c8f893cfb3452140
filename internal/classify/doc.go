// Package classify maps one origin field type to the wrapper field shape and
// wrapper node needed to expose it to the consumer type system.
//
// Mapping table:
//   - bool, int, double → Direct(Number); string → Direct(String)
//   - primitives without a bridge → Opaque(Any)
//   - struct → TransitiveStruct(NestedClass); enum → TransitiveEnum(Enum)
//   - [struct] → TransitiveStructArray(NestedClass); [enum] → TransitiveEnumArray(EnumArray)
//   - other arrays and dictionaries → Direct(Array|Dictionary) over classified elements
//
// A Reference is resolved through the schema. If its name is already on the
// descent path the node is recursive and is not expanded; otherwise it is
// classified like the inline definition and tagged as referenced.
package classify
