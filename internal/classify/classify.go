package classify

import (
	"slices"

	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/origin"
	"bridge-generator/internal/wrapper"
)

// Resolver looks up named definitions referenced from the schema.
type Resolver interface {
	Lookup(name string) (*origin.Type, bool)
}

// Path is the stack of struct and enum names on the current descent.
// It is immutable: Push returns a new Path.
type Path struct {
	names []string
}

// NewPath creates a Path holding names, outermost first.
func NewPath(names ...string) Path {
	return Path{names: append([]string(nil), names...)}
}

// Push returns a copy of p with name appended.
func (p Path) Push(name string) Path {
	return Path{names: append(append(make([]string, 0, len(p.names)+1), p.names...), name)}
}

// Contains reports whether name is on the path.
func (p Path) Contains(name string) bool {
	return slices.Contains(p.names, name)
}

// Len returns the depth of the path.
func (p Path) Len() int {
	return len(p.names)
}

// Names returns a copy of the names on the path, outermost first.
func (p Path) Names() []string {
	return append([]string(nil), p.names...)
}

// NodeSpec describes the wrapper node exposing one origin type.
type NodeSpec struct {
	Kind       wrapper.NodeKind
	Resolution wrapper.Resolution
	// Origin is the origin type the node bridges. For references it is the
	// resolved definition.
	Origin *origin.Type
	// Key describes the dictionary key node.
	Key *NodeSpec
	// Elem describes the array element or dictionary value node.
	Elem *NodeSpec
}

// Expands reports whether the builder must descend into the node's origin
// struct fields.
func (s NodeSpec) Expands() bool {
	return s.Kind.IsClass() && s.Resolution != wrapper.ResolutionRecursive
}

// Classification is the result of classifying one origin field type.
type Classification struct {
	Shape wrapper.ShapeKind
	Node  NodeSpec
}

// Classifier maps origin field types to wrapper field shapes.
// It holds no mutable state; Classify is a pure function of its inputs.
type Classifier struct {
	resolver Resolver
}

// New creates a Classifier resolving references with r.
func New(r Resolver) *Classifier {
	return &Classifier{resolver: r}
}

// Classify returns the shape and node needed to expose a field of type t.
// path holds the struct and enum names on the current descent; a Reference
// to one of them yields a recursive node instead of an expanded one.
func (c *Classifier) Classify(t *origin.Type, path Path) (Classification, error) {
	if t == nil {
		return Classification{}, diagnostic.Newf(diagnostic.CodeInvalidType, "", "", "field has no type")
	}

	switch t.Kind {
	case origin.KindPrimitive, origin.KindPrimitiveNoBridge, origin.KindDictionary:
		node, err := c.ClassifyNode(t, path)
		if err != nil {
			return Classification{}, err
		}

		if node.Kind == wrapper.KindAny {
			return Classification{Shape: wrapper.ShapeOpaque, Node: node}, nil
		}

		return Classification{Shape: wrapper.ShapeDirect, Node: node}, nil

	case origin.KindStruct, origin.KindEnum, origin.KindReference:
		node, err := c.ClassifyNode(t, path)
		if err != nil {
			return Classification{}, err
		}

		if node.Kind == wrapper.KindEnum {
			return Classification{Shape: wrapper.ShapeTransitiveEnum, Node: node}, nil
		}

		return Classification{Shape: wrapper.ShapeTransitiveStruct, Node: node}, nil

	case origin.KindArray:
		return c.classifyArray(t, path)

	default:
		return Classification{}, diagnostic.Newf(diagnostic.CodeInvalidType, "", "",
			"unsupported origin type kind %s", t.Kind)
	}
}

// classifyArray puts the multiplicity of struct and enum arrays on the
// field shape; other arrays are exposed directly.
func (c *Classifier) classifyArray(t *origin.Type, path Path) (Classification, error) {
	elem, res, err := c.resolve(t.Elem, path)
	if err != nil {
		return Classification{}, err
	}

	switch elem.Kind {
	case origin.KindStruct:
		return Classification{
			Shape: wrapper.ShapeTransitiveStructArray,
			Node:  NodeSpec{Kind: wrapper.KindNestedClass, Resolution: res, Origin: elem},
		}, nil

	case origin.KindEnum:
		return Classification{
			Shape: wrapper.ShapeTransitiveEnumArray,
			Node:  NodeSpec{Kind: wrapper.KindEnumArray, Resolution: res, Origin: elem},
		}, nil
	}

	node, err := c.ClassifyNode(t, path)
	if err != nil {
		return Classification{}, err
	}

	return Classification{Shape: wrapper.ShapeDirect, Node: node}, nil
}

// ClassifyNode returns the node exposing a value of type t, used for field
// targets as well as array elements and dictionary keys and values.
func (c *Classifier) ClassifyNode(t *origin.Type, path Path) (NodeSpec, error) {
	if t == nil {
		return NodeSpec{}, diagnostic.Newf(diagnostic.CodeInvalidType, "", "", "missing element type")
	}

	switch t.Kind {
	case origin.KindPrimitive:
		switch t.Primitive {
		case origin.PrimitiveBool, origin.PrimitiveInt, origin.PrimitiveDouble:
			return NodeSpec{Kind: wrapper.KindNumber, Origin: t}, nil
		case origin.PrimitiveString:
			return NodeSpec{Kind: wrapper.KindString, Origin: t}, nil
		default:
			return NodeSpec{Kind: wrapper.KindAny, Origin: t}, nil
		}

	case origin.KindPrimitiveNoBridge:
		return NodeSpec{Kind: wrapper.KindAny, Origin: t}, nil

	case origin.KindStruct, origin.KindEnum, origin.KindReference:
		def, res, err := c.resolve(t, path)
		if err != nil {
			return NodeSpec{}, err
		}

		if def.Kind == origin.KindEnum {
			return NodeSpec{Kind: wrapper.KindEnum, Resolution: res, Origin: def}, nil
		}

		return NodeSpec{Kind: wrapper.KindNestedClass, Resolution: res, Origin: def}, nil

	case origin.KindArray:
		elem, res, err := c.resolve(t.Elem, path)
		if err != nil {
			return NodeSpec{}, err
		}

		if elem.Kind == origin.KindEnum {
			return NodeSpec{Kind: wrapper.KindEnumArray, Resolution: res, Origin: elem}, nil
		}

		elemSpec, err := c.ClassifyNode(t.Elem, path)
		if err != nil {
			return NodeSpec{}, err
		}

		return NodeSpec{Kind: wrapper.KindArray, Origin: t, Elem: &elemSpec}, nil

	case origin.KindDictionary:
		keySpec, err := c.ClassifyNode(t.Key, path)
		if err != nil {
			return NodeSpec{}, err
		}

		valueSpec, err := c.ClassifyNode(t.Elem, path)
		if err != nil {
			return NodeSpec{}, err
		}

		return NodeSpec{Kind: wrapper.KindDictionary, Origin: t, Key: &keySpec, Elem: &valueSpec}, nil

	default:
		return NodeSpec{}, diagnostic.Newf(diagnostic.CodeInvalidType, "", "",
			"unsupported origin type kind %s", t.Kind)
	}
}

// resolve follows a Reference to its definition. Non-reference types are
// returned as-is with ResolutionInline.
func (c *Classifier) resolve(t *origin.Type, path Path) (*origin.Type, wrapper.Resolution, error) {
	if t == nil {
		return nil, wrapper.ResolutionInline, diagnostic.Newf(diagnostic.CodeInvalidType, "", "", "missing element type")
	}

	if t.Kind != origin.KindReference {
		return t, wrapper.ResolutionInline, nil
	}

	var def *origin.Type
	if c.resolver != nil {
		def, _ = c.resolver.Lookup(t.Name)
	}

	if def == nil {
		return nil, wrapper.ResolutionInline, diagnostic.Newf(diagnostic.CodeUnresolvedReference, t.Name, "",
			"type %q is not defined in the schema", t.Name)
	}

	if def.Kind != origin.KindStruct && def.Kind != origin.KindEnum {
		return nil, wrapper.ResolutionInline, diagnostic.Newf(diagnostic.CodeInvalidType, t.Name, "",
			"reference %q must name a struct or enum, got %s", t.Name, def.Kind)
	}

	if path.Contains(t.Name) {
		return def, wrapper.ResolutionRecursive, nil
	}

	return def, wrapper.ResolutionReferenced, nil
}
