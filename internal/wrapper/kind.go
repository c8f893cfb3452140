package wrapper

import "bridge-generator/internal/common"

//go:generate go tool stringer -type=NodeKind -output=kind_string.go

// NodeKind is the variant of a wrapper node.
type NodeKind int

const (
	_ NodeKind = iota // zero value is invalid

	KindRootClass   // root class owning the bridged struct value
	KindNestedClass // class exposing a struct nested under one parent field
	KindEnum        // integer-backed enum exposing an origin enum
	KindEnumArray   // integer-backed enum exposing an array of origin enums
	KindNumber      // number leaf for bool, int and double
	KindString      // string leaf
	KindAny         // opaque leaf for primitives without a bridge
	KindArray       // array of an element node
	KindDictionary  // dictionary of key and value nodes

	// KindTotal is a constant that represents the total number of kinds defined
	KindTotal = int(iota)
)

// IsClass reports whether nodes of this kind carry wrapper fields.
func (k NodeKind) IsClass() bool {
	return k == KindRootClass || k == KindNestedClass
}

// IsEnum reports whether nodes of this kind expose an origin enum.
func (k NodeKind) IsEnum() bool {
	return k == KindEnum || k == KindEnumArray
}

// IsLeaf reports whether nodes of this kind are plain values with neither
// parent nor children.
func (k NodeKind) IsLeaf() bool {
	return k == KindNumber || k == KindString || k == KindAny
}

// IsCollection reports whether nodes of this kind own element nodes.
func (k NodeKind) IsCollection() bool {
	return k == KindArray || k == KindDictionary
}

// Resolution tells how a class or enum node was obtained from the origin
// schema.
type Resolution int

const (
	// ResolutionInline - expanded from a struct or enum declared inline.
	ResolutionInline Resolution = iota
	// ResolutionReferenced - expanded from a Reference not on the descent path.
	ResolutionReferenced
	// ResolutionRecursive - a Reference closing a cycle; not expanded.
	ResolutionRecursive
)

// String returns a human-readable resolution name.
func (r Resolution) String() string {
	switch r {
	case ResolutionInline:
		return "inline"
	case ResolutionReferenced:
		return "referenced"
	case ResolutionRecursive:
		return "recursive"
	default:
		return common.UnknownStr
	}
}

// ShapeKind describes how a wrapper field exposes its origin field.
type ShapeKind int

const (
	// ShapeDirect - accessor returning a leaf, array or dictionary value.
	ShapeDirect ShapeKind = iota
	// ShapeTransitiveStruct - accessor returning a nested class.
	ShapeTransitiveStruct
	// ShapeTransitiveEnum - accessor returning an enum.
	ShapeTransitiveEnum
	// ShapeTransitiveEnumArray - accessor returning an array of enums.
	ShapeTransitiveEnumArray
	// ShapeTransitiveStructArray - accessor returning an array of nested classes.
	ShapeTransitiveStructArray
	// ShapeOpaque - accessor returning an opaque value.
	ShapeOpaque
)

// String returns a human-readable shape name.
func (s ShapeKind) String() string {
	switch s {
	case ShapeDirect:
		return "direct"
	case ShapeTransitiveStruct:
		return "transitive_struct"
	case ShapeTransitiveEnum:
		return "transitive_enum"
	case ShapeTransitiveEnumArray:
		return "transitive_enum_array"
	case ShapeTransitiveStructArray:
		return "transitive_struct_array"
	case ShapeOpaque:
		return "opaque"
	default:
		return common.UnknownStr
	}
}

// IsTransitive reports whether the field's target is a class or enum node
// that the emitter renders as its own compilation unit.
func (s ShapeKind) IsTransitive() bool {
	switch s {
	case ShapeTransitiveStruct, ShapeTransitiveEnum, ShapeTransitiveEnumArray, ShapeTransitiveStructArray:
		return true
	default:
		return false
	}
}
