package origin

import (
	"strings"
)

// Path builds a readable path string for a field.
// Examples:
//   - "RUMViewEvent" for the root struct
//   - "RUMViewEvent.view" for a nested field
//   - "RUMViewEvent.view.resources[]" for array elements
//   - "RUMViewEvent.context{}" for dictionary values
type Path struct {
	parts []string
}

// NewPath creates a new Path from a root type name.
func NewPath(root string) Path {
	return Path{parts: []string{root}}
}

// Field appends a field name to the path.
func (p Path) Field(name string) Path {
	return Path{parts: append(append([]string{}, p.parts...), name)}
}

// Array appends an array indicator "[]" to the last element.
func (p Path) Array() Path {
	return p.suffix("[]")
}

// Dictionary appends a dictionary indicator "{}" to the last element.
func (p Path) Dictionary() Path {
	return p.suffix("{}")
}

func (p Path) suffix(s string) Path {
	if len(p.parts) == 0 {
		return Path{parts: []string{s}}
	}

	newParts := make([]string, len(p.parts))
	copy(newParts, p.parts)
	newParts[len(newParts)-1] += s

	return Path{parts: newParts}
}

// String returns the full path string.
func (p Path) String() string {
	return strings.Join(p.parts, ".")
}

// TypeString returns a compact human-readable representation of t.
func TypeString(t *Type) string {
	if t == nil {
		return "<nil>"
	}

	switch t.Kind {
	case KindStruct:
		if t.Name != "" {
			return t.Name
		}
		return "struct{...}"

	case KindEnum:
		if t.Name != "" {
			return t.Name
		}
		return "enum{...}"

	case KindPrimitive:
		return t.Primitive.String()

	case KindPrimitiveNoBridge:
		return "!" + t.Primitive.String()

	case KindArray:
		return "[" + TypeString(t.Elem) + "]"

	case KindDictionary:
		return "[" + TypeString(t.Key) + ": " + TypeString(t.Elem) + "]"

	case KindReference:
		return "&" + t.Name

	default:
		return t.Kind.String()
	}
}
