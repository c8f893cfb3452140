package schemafile

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"bridge-generator/internal/common"
)

// Format is the encoding of a schema document.
type Format int

const (
	FormatYAML Format = iota
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return common.UnknownStr
	}
}

// ParseFormat returns the format spelled by name ("yaml", "yml" or "json").
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatYAML, fmt.Errorf("unknown schema format %q", name)
	}
}

// FormatOf guesses the format from a file extension. Anything that is not
// .json is read as YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatYAML
}

// Document is the top-level schema file structure.
type Document struct {
	// Version is the schema file format version.
	Version string `yaml:"version,omitempty" json:"version,omitempty"`
	// Root names the struct bridged by the root wrapper class.
	Root string `yaml:"root" json:"root"`
	// Types are the named struct and enum definitions.
	Types []TypeDef `yaml:"types" json:"types"`
}

// Type definition kinds.
const (
	KindStruct = "struct"
	KindEnum   = "enum"
)

// TypeDef is a named struct or enum definition.
// Kind may be omitted: definitions with cases are enums, others structs.
type TypeDef struct {
	Name    string     `yaml:"name" json:"name"`
	Kind    string     `yaml:"kind,omitempty" json:"kind,omitempty"`
	Comment string     `yaml:"comment,omitempty" json:"comment,omitempty"`
	Fields  []FieldDef `yaml:"fields,omitempty" json:"fields,omitempty"`
	Cases   []CaseDef  `yaml:"cases,omitempty" json:"cases,omitempty"`
}

// IsEnum reports whether the definition is an enum.
func (t *TypeDef) IsEnum() bool {
	if t.Kind != "" {
		return t.Kind == KindEnum
	}

	return len(t.Cases) > 0
}

// FieldDef is one struct field. Its type is given inline.
type FieldDef struct {
	Name     string `yaml:"name" json:"name"`
	Optional bool   `yaml:"optional,omitempty" json:"optional,omitempty"`
	Mutable  bool   `yaml:"mutable,omitempty" json:"mutable,omitempty"`
	Comment  string `yaml:"comment,omitempty" json:"comment,omitempty"`

	TypeRef `yaml:",inline"`
}

// fieldJSON is FieldDef with the type selectors spelled out. The JSON
// encoder cannot compile an embedded recursive struct.
type fieldJSON struct {
	Name       string         `json:"name"`
	Optional   bool           `json:"optional,omitempty"`
	Mutable    bool           `json:"mutable,omitempty"`
	Comment    string         `json:"comment,omitempty"`
	Type       string         `json:"type,omitempty"`
	Ref        string         `json:"ref,omitempty"`
	Array      *TypeRef       `json:"array,omitempty"`
	Dictionary *DictionaryDef `json:"dictionary,omitempty"`
	Struct     *InlineStruct  `json:"struct,omitempty"`
	Enum       *InlineEnum    `json:"enum,omitempty"`
}

// MarshalJSON writes the field with its type selectors inline.
func (f FieldDef) MarshalJSON() ([]byte, error) {
	return json.Marshal(fieldJSON{
		Name:       f.Name,
		Optional:   f.Optional,
		Mutable:    f.Mutable,
		Comment:    f.Comment,
		Type:       f.Type,
		Ref:        f.Ref,
		Array:      f.Array,
		Dictionary: f.Dictionary,
		Struct:     f.Struct,
		Enum:       f.Enum,
	})
}

// UnmarshalJSON reads a field with its type selectors inline.
func (f *FieldDef) UnmarshalJSON(data []byte) error {
	var raw fieldJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = FieldDef{
		Name:     raw.Name,
		Optional: raw.Optional,
		Mutable:  raw.Mutable,
		Comment:  raw.Comment,
		TypeRef: TypeRef{
			Type:       raw.Type,
			Ref:        raw.Ref,
			Array:      raw.Array,
			Dictionary: raw.Dictionary,
			Struct:     raw.Struct,
			Enum:       raw.Enum,
		},
	}

	return nil
}

// TypeRef selects a field, element, key or value type. Exactly one
// selector must be set.
type TypeRef struct {
	// Type is a primitive: bool, int, double, string, int64 or any.
	Type string `yaml:"type,omitempty" json:"type,omitempty"`
	// Ref names a struct or enum definition.
	Ref string `yaml:"ref,omitempty" json:"ref,omitempty"`
	// Array is the element type of an array.
	Array *TypeRef `yaml:"array,omitempty" json:"array,omitempty"`
	// Dictionary holds the key and value types of a dictionary.
	Dictionary *DictionaryDef `yaml:"dictionary,omitempty" json:"dictionary,omitempty"`
	// Struct is an anonymous struct declared in place.
	Struct *InlineStruct `yaml:"struct,omitempty" json:"struct,omitempty"`
	// Enum is an anonymous enum declared in place.
	Enum *InlineEnum `yaml:"enum,omitempty" json:"enum,omitempty"`
}

// selectors returns the names of the set selectors.
func (r *TypeRef) selectors() []string {
	var set []string

	if r.Type != "" {
		set = append(set, "type")
	}

	if r.Ref != "" {
		set = append(set, "ref")
	}

	if r.Array != nil {
		set = append(set, "array")
	}

	if r.Dictionary != nil {
		set = append(set, "dictionary")
	}

	if r.Struct != nil {
		set = append(set, "struct")
	}

	if r.Enum != nil {
		set = append(set, "enum")
	}

	return set
}

// DictionaryDef holds dictionary key and value types.
type DictionaryDef struct {
	Key   TypeRef `yaml:"key" json:"key"`
	Value TypeRef `yaml:"value" json:"value"`
}

// InlineStruct is an anonymous struct. Name is optional; it defaults to the
// owner's name followed by the capitalized field name.
type InlineStruct struct {
	Name   string     `yaml:"name,omitempty" json:"name,omitempty"`
	Fields []FieldDef `yaml:"fields" json:"fields"`
}

// InlineEnum is an anonymous enum, named like InlineStruct.
type InlineEnum struct {
	Name  string    `yaml:"name,omitempty" json:"name,omitempty"`
	Cases []CaseDef `yaml:"cases" json:"cases"`
}

// CaseDef is one enum case. In a document it is either a bare label or a
// mapping with label and value; the value defaults to the label.
type CaseDef struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

// caseFields avoids recursion into the custom unmarshalers.
type caseFields CaseDef

// UnmarshalYAML accepts a scalar label or a label/value mapping.
func (c *CaseDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var label string
		if err := node.Decode(&label); err != nil {
			return err
		}

		*c = CaseDef{Label: label}

		return nil

	case yaml.MappingNode:
		var f caseFields
		if err := node.Decode(&f); err != nil {
			return err
		}

		*c = CaseDef(f)

		return nil

	default:
		return fmt.Errorf("expected enum case label or mapping, got %v", node.Kind)
	}
}

// UnmarshalJSON accepts a string label or a label/value object.
func (c *CaseDef) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err == nil {
		*c = CaseDef{Label: label}
		return nil
	}

	var f caseFields
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("expected enum case label or object: %w", err)
	}

	*c = CaseDef(f)

	return nil
}

// RawValue returns the case value, defaulting to the label.
func (c CaseDef) RawValue() string {
	if c.Value != "" {
		return c.Value
	}

	return c.Label
}
