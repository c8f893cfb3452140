package origin

import (
	"bridge-generator/internal/common"
)

// Kind represents the variant of an origin Type.
type Kind int

const (
	KindUnknown           Kind = iota
	KindStruct                 // nominal struct with ordered fields
	KindEnum                   // nominal enumeration
	KindPrimitive              // bool, int, double, string
	KindPrimitiveNoBridge      // primitive the consumer cannot represent
	KindArray                  // array of Elem
	KindDictionary             // dictionary of Key to Elem
	KindReference              // named pointer to a definition in the schema
)

// String returns a human-readable representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindEnum:
		return "enum"
	case KindPrimitive:
		return "primitive"
	case KindPrimitiveNoBridge:
		return "primitive_no_bridge"
	case KindArray:
		return "array"
	case KindDictionary:
		return "dictionary"
	case KindReference:
		return "reference"
	default:
		return common.UnknownStr
	}
}

// PrimitiveKind represents the concrete primitive of a Primitive or
// PrimitiveNoBridge type.
type PrimitiveKind int

const (
	PrimitiveInvalid PrimitiveKind = iota
	PrimitiveBool
	PrimitiveInt
	PrimitiveDouble
	PrimitiveString

	// Values below have no direct consumer representation.
	PrimitiveInt64
	PrimitiveAny
)

// String returns the schema spelling of the primitive.
func (p PrimitiveKind) String() string {
	switch p {
	case PrimitiveBool:
		return "bool"
	case PrimitiveInt:
		return "int"
	case PrimitiveDouble:
		return "double"
	case PrimitiveString:
		return "string"
	case PrimitiveInt64:
		return "int64"
	case PrimitiveAny:
		return "any"
	default:
		return common.UnknownStr
	}
}

// Bridgeable reports whether the consumer type system can represent the
// primitive directly.
func (p PrimitiveKind) Bridgeable() bool {
	switch p {
	case PrimitiveBool, PrimitiveInt, PrimitiveDouble, PrimitiveString:
		return true
	default:
		return false
	}
}

// ParsePrimitive returns the PrimitiveKind spelled by name.
func ParsePrimitive(name string) (PrimitiveKind, bool) {
	for p := PrimitiveBool; p <= PrimitiveAny; p++ {
		if p.String() == name {
			return p, true
		}
	}

	return PrimitiveInvalid, false
}

// Type describes one origin type. Which fields are meaningful depends on Kind.
type Type struct {
	Kind      Kind
	Name      string        // Struct/Enum: type name; Reference: referenced name
	Fields    []Field       // Struct: fields in declaration order
	Cases     []EnumCase    // Enum: cases in declaration order
	Primitive PrimitiveKind // Primitive/PrimitiveNoBridge
	Key       *Type         // Dictionary key
	Elem      *Type         // Array element, Dictionary value
	Comment   string
}

// IsNamed returns true for nominal types (structs, enums) and references.
func (t *Type) IsNamed() bool {
	switch t.Kind {
	case KindStruct, KindEnum, KindReference:
		return t.Name != ""
	default:
		return false
	}
}

// FieldByName returns the struct field with the given name, or nil.
func (t *Type) FieldByName(name string) *Field {
	for i := range t.Fields {
		if t.Fields[i].Name == name {
			return &t.Fields[i]
		}
	}

	return nil
}

// Field describes one struct property.
type Field struct {
	Name     string
	Type     *Type
	Optional bool // the value may be absent
	Mutable  bool // the consumer may write the value back
	Comment  string
}

// EnumCase is one case of an enumeration.
type EnumCase struct {
	Label    string
	RawValue string
}
