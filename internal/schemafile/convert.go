package schemafile

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/origin"
)

// Validate checks the document structure and returns every diagnostic.
// References to undefined types are warnings; building reports them as
// unresolved references.
func (d *Document) Validate() *diagnostic.Diagnostics {
	c := newConverter(d)
	c.convert()

	return &c.diags
}

// Schema converts the document into an origin schema. Any validation
// error aborts the conversion and is returned with every other one.
func (d *Document) Schema() (*origin.Schema, error) {
	c := newConverter(d)

	schema := c.convert()
	if err := c.diags.Error(); err != nil {
		return nil, err
	}

	return schema, nil
}

type converter struct {
	doc   *Document
	diags diagnostic.Diagnostics
	names map[string]*TypeDef
}

func newConverter(d *Document) *converter {
	return &converter{doc: d, names: make(map[string]*TypeDef, len(d.Types))}
}

func (c *converter) convert() *origin.Schema {
	for i := range c.doc.Types {
		td := &c.doc.Types[i]

		if td.Name == "" {
			c.diags.AddError(diagnostic.CodeInvalidType, "", "", "type definition %d has no name", i)
			continue
		}

		if _, ok := c.names[td.Name]; ok {
			c.diags.AddError(diagnostic.CodeDuplicateType, td.Name, "", "type %q is defined more than once", td.Name)
			continue
		}

		c.names[td.Name] = td
	}

	defs := make([]*origin.Type, 0, len(c.names))

	for i := range c.doc.Types {
		td := &c.doc.Types[i]
		if c.names[td.Name] != td {
			continue
		}

		if t := c.definition(td); t != nil {
			defs = append(defs, t)
		}
	}

	var root *origin.Type

	switch rootDef, ok := c.names[c.doc.Root]; {
	case c.doc.Root == "":
		c.diags.AddError(diagnostic.CodeMissingRoot, "", "", "document names no root type")
	case !ok:
		c.diags.AddError(diagnostic.CodeMissingRoot, c.doc.Root, "", "root type %q is not defined", c.doc.Root)
	case rootDef.IsEnum():
		c.diags.AddError(diagnostic.CodeMissingRoot, c.doc.Root, "", "root type %q is an enum", c.doc.Root)
	default:
		for _, t := range defs {
			if t.Name == c.doc.Root {
				root = t
			}
		}
	}

	return origin.NewSchema(root, defs...)
}

func (c *converter) definition(td *TypeDef) *origin.Type {
	switch td.Kind {
	case "", KindStruct, KindEnum:
	default:
		c.diags.AddError(diagnostic.CodeInvalidType, td.Name, "", "unknown definition kind %q", td.Kind)
		return nil
	}

	if td.IsEnum() {
		if len(td.Fields) > 0 {
			c.diags.AddError(diagnostic.CodeInvalidType, td.Name, "", "enum cannot declare fields")
		}

		t := c.enum(td.Name, td.Cases, origin.NewPath(td.Name))
		t.Comment = td.Comment

		return t
	}

	if len(td.Cases) > 0 {
		c.diags.AddError(diagnostic.CodeInvalidType, td.Name, "", "struct cannot declare cases")
	}

	t := c.structType(td.Name, td.Fields, origin.NewPath(td.Name))
	t.Comment = td.Comment

	return t
}

func (c *converter) structType(name string, defs []FieldDef, at origin.Path) *origin.Type {
	st := &origin.Type{Kind: origin.KindStruct, Name: name}
	seen := make(map[string]bool, len(defs))

	for _, fd := range defs {
		fieldAt := at.Field(fd.Name)

		if fd.Name == "" {
			c.diags.AddError(diagnostic.CodeInvalidType, name, at.String(), "field has no name")
			continue
		}

		if seen[fd.Name] {
			c.diags.AddError(diagnostic.CodeDuplicateField, name, fieldAt.String(), "field %q is declared more than once", fd.Name)
			continue
		}

		seen[fd.Name] = true

		ft := c.typeOf(&fd.TypeRef, name+exported(fd.Name), name, fieldAt)
		if ft == nil {
			continue
		}

		st.Fields = append(st.Fields, origin.Field{
			Name:     fd.Name,
			Type:     ft,
			Optional: fd.Optional,
			Mutable:  fd.Mutable,
			Comment:  fd.Comment,
		})
	}

	return st
}

func (c *converter) enum(name string, cases []CaseDef, at origin.Path) *origin.Type {
	t := &origin.Type{Kind: origin.KindEnum, Name: name}

	if len(cases) == 0 {
		c.diags.AddError(diagnostic.CodeInvalidType, name, at.String(), "enum has no cases")
	}

	seen := make(map[string]bool, len(cases))

	for _, cd := range cases {
		if cd.Label == "" {
			c.diags.AddError(diagnostic.CodeInvalidType, name, at.String(), "enum case has no label")
			continue
		}

		if seen[cd.Label] {
			c.diags.AddError(diagnostic.CodeDuplicateField, name, at.String(), "enum case %q is declared more than once", cd.Label)
			continue
		}

		seen[cd.Label] = true
		t.Cases = append(t.Cases, origin.EnumCase{Label: cd.Label, RawValue: cd.RawValue()})
	}

	return t
}

// typeOf converts one type selector. inlineName names an anonymous struct
// or enum declared without a name; owner is the enclosing definition.
func (c *converter) typeOf(r *TypeRef, inlineName, owner string, at origin.Path) *origin.Type {
	switch set := r.selectors(); len(set) {
	case 0:
		c.diags.AddError(diagnostic.CodeInvalidType, owner, at.String(), "no type given")
		return nil
	case 1:
	default:
		c.diags.AddError(diagnostic.CodeInvalidType, owner, at.String(),
			"exactly one type selector allowed, got %s", strings.Join(set, ", "))

		return nil
	}

	switch {
	case r.Type != "":
		p, ok := origin.ParsePrimitive(r.Type)
		if !ok {
			c.diags.AddError(diagnostic.CodeInvalidType, owner, at.String(), "unknown primitive %q", r.Type)
			return nil
		}

		if p.Bridgeable() {
			return &origin.Type{Kind: origin.KindPrimitive, Primitive: p}
		}

		return origin.NoBridge(p)

	case r.Ref != "":
		if _, ok := c.names[r.Ref]; !ok {
			c.diags.AddWarning(diagnostic.CodeUnresolvedReference, owner, at.String(), "type %q is not defined", r.Ref)
		}

		return origin.Ref(r.Ref)

	case r.Array != nil:
		elem := c.typeOf(r.Array, inlineName, owner, at.Array())
		if elem == nil {
			return nil
		}

		return origin.ArrayOf(elem)

	case r.Dictionary != nil:
		key := c.typeOf(&r.Dictionary.Key, inlineName+"Key", owner, at.Dictionary())
		value := c.typeOf(&r.Dictionary.Value, inlineName, owner, at.Dictionary())

		if key == nil || value == nil {
			return nil
		}

		return origin.DictionaryOf(key, value)

	case r.Struct != nil:
		name := r.Struct.Name
		if name == "" {
			name = inlineName
		}

		return c.structType(name, r.Struct.Fields, at)

	default:
		name := r.Enum.Name
		if name == "" {
			name = inlineName
		}

		return c.enum(name, r.Enum.Cases, at)
	}
}

// exported upper-cases the first letter of a field name.
func exported(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if r == utf8.RuneError {
		return name
	}

	return string(unicode.ToUpper(r)) + name[size:]
}
