package origin

import (
	"fmt"
	"sort"
)

// Schema holds a designated root struct and all named definitions that
// references may point to.
type Schema struct {
	// Root is the struct bridged by the root wrapper class.
	Root *Type
	// Definitions maps type names to named structs and enums.
	Definitions map[string]*Type
}

// NewSchema creates a schema rooted at root. The root and every definition
// are registered by name; later definitions replace earlier ones.
func NewSchema(root *Type, defs ...*Type) *Schema {
	s := &Schema{
		Root:        root,
		Definitions: make(map[string]*Type, len(defs)+1),
	}

	if root != nil && root.Name != "" {
		s.Definitions[root.Name] = root
	}

	for _, d := range defs {
		if d != nil && d.Name != "" {
			s.Definitions[d.Name] = d
		}
	}

	return s
}

// Lookup returns the named definition, if any.
func (s *Schema) Lookup(name string) (*Type, bool) {
	t, ok := s.Definitions[name]
	return t, ok
}

// RootStruct returns the root struct, or an error if it is missing or is
// not a struct.
func (s *Schema) RootStruct() (*Type, error) {
	if s == nil || s.Root == nil {
		return nil, fmt.Errorf("schema has no root")
	}

	if s.Root.Kind != KindStruct {
		return nil, fmt.Errorf("root %q is not a struct (kind: %s)", s.Root.Name, s.Root.Kind)
	}

	return s.Root, nil
}

// Names returns the definition names in sorted order.
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.Definitions))
	for name := range s.Definitions {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// StructOf creates a named struct type.
func StructOf(name string, fields ...Field) *Type {
	return &Type{Kind: KindStruct, Name: name, Fields: fields}
}

// EnumOf creates a named enum whose raw values equal its labels.
func EnumOf(name string, labels ...string) *Type {
	cases := make([]EnumCase, len(labels))
	for i, l := range labels {
		cases[i] = EnumCase{Label: l, RawValue: l}
	}

	return &Type{Kind: KindEnum, Name: name, Cases: cases}
}

// Bool creates a bool primitive.
func Bool() *Type { return &Type{Kind: KindPrimitive, Primitive: PrimitiveBool} }

// Int creates an int primitive.
func Int() *Type { return &Type{Kind: KindPrimitive, Primitive: PrimitiveInt} }

// Double creates a double primitive.
func Double() *Type { return &Type{Kind: KindPrimitive, Primitive: PrimitiveDouble} }

// String creates a string primitive.
func String() *Type { return &Type{Kind: KindPrimitive, Primitive: PrimitiveString} }

// NoBridge creates a primitive the consumer cannot represent directly.
func NoBridge(p PrimitiveKind) *Type {
	return &Type{Kind: KindPrimitiveNoBridge, Primitive: p}
}

// ArrayOf creates an array type.
func ArrayOf(elem *Type) *Type {
	return &Type{Kind: KindArray, Elem: elem}
}

// DictionaryOf creates a dictionary type.
func DictionaryOf(key, value *Type) *Type {
	return &Type{Kind: KindDictionary, Key: key, Elem: value}
}

// Ref creates a reference to a named definition.
func Ref(name string) *Type {
	return &Type{Kind: KindReference, Name: name}
}

// NewField creates an immutable, required field.
func NewField(name string, t *Type) Field {
	return Field{Name: name, Type: t}
}
