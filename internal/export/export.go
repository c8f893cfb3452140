package export

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"bridge-generator/internal/origin"
	"bridge-generator/internal/validate"
	"bridge-generator/internal/wrapper"
)

// Version is the export document format version.
const Version = "1"

// Document is the serialisable form of a wrapper tree consumed by an
// emitter. Nodes are listed in pre-order from the root. Units are the IDs
// of the class and enum nodes to render, each after the units it exposes.
type Document struct {
	Version string `yaml:"version" json:"version"`
	Root    string `yaml:"root" json:"root"`
	Units   []int  `yaml:"units" json:"units"`
	Nodes   []Node `yaml:"nodes" json:"nodes"`
}

// Node is one exported wrapper node. Parent, Key and Elem are node and
// field IDs of the same document; zero means none.
type Node struct {
	ID         int     `yaml:"id" json:"id"`
	Depth      int     `yaml:"depth" json:"depth"`
	Kind       string  `yaml:"kind" json:"kind"`
	Resolution string  `yaml:"resolution" json:"resolution"`
	Type       string  `yaml:"type,omitempty" json:"type,omitempty"`
	Origin     string  `yaml:"origin" json:"origin"`
	Comment    string  `yaml:"comment,omitempty" json:"comment,omitempty"`
	Parent     int     `yaml:"parent,omitempty" json:"parent,omitempty"`
	Fields     []Field `yaml:"fields,omitempty" json:"fields,omitempty"`
	Cases      []Case  `yaml:"cases,omitempty" json:"cases,omitempty"`
	Key        int     `yaml:"key,omitempty" json:"key,omitempty"`
	Elem       int     `yaml:"elem,omitempty" json:"elem,omitempty"`
}

// Field is one exported wrapper field.
type Field struct {
	ID       int    `yaml:"id" json:"id"`
	Name     string `yaml:"name" json:"name"`
	Shape    string `yaml:"shape" json:"shape"`
	Target   int    `yaml:"target" json:"target"`
	Optional bool   `yaml:"optional,omitempty" json:"optional,omitempty"`
	Mutable  bool   `yaml:"mutable,omitempty" json:"mutable,omitempty"`
	Comment  string `yaml:"comment,omitempty" json:"comment,omitempty"`
}

// Case is one case of an exported enum node.
type Case struct {
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
}

// KindName returns the exported name of a node kind ("RootClass").
func KindName(k wrapper.NodeKind) string {
	return strings.TrimPrefix(k.String(), "Kind")
}

// NewDocument converts a tree into an export document. Trees that are not
// sealed are validated first.
func NewDocument(tree *wrapper.Tree) (*Document, error) {
	if tree == nil || !tree.Sealed() {
		if err := validate.Validate(tree); err != nil {
			return nil, fmt.Errorf("cannot export invalid tree: %w", err)
		}
	}

	doc := &Document{
		Version: Version,
		Root:    tree.RootNode().TypeName(),
	}

	units, err := EmitOrder(tree)
	if err != nil {
		return nil, err
	}

	for _, n := range units {
		doc.Units = append(doc.Units, int(n.ID))
	}

	tree.Walk(func(n *wrapper.Node, depth int) bool {
		doc.Nodes = append(doc.Nodes, exportNode(tree, n, depth))
		return true
	})

	return doc, nil
}

func exportNode(tree *wrapper.Tree, n *wrapper.Node, depth int) Node {
	out := Node{
		ID:         int(n.ID),
		Depth:      depth,
		Kind:       KindName(n.Kind),
		Resolution: n.Resolution.String(),
		Type:       n.TypeName(),
		Origin:     origin.TypeString(n.Origin),
		Parent:     int(n.Parent),
		Key:        int(n.Key),
		Elem:       int(n.Elem),
	}

	if n.Origin != nil {
		out.Comment = n.Origin.Comment
	}

	for _, f := range tree.FieldsOf(n.ID) {
		out.Fields = append(out.Fields, Field{
			ID:       int(f.ID),
			Name:     f.Name(),
			Shape:    f.Shape.String(),
			Target:   int(f.Target),
			Optional: f.Origin.Optional,
			Mutable:  f.Origin.Mutable,
			Comment:  f.Origin.Comment,
		})
	}

	if n.Kind.IsEnum() && n.Origin != nil {
		for _, c := range n.Origin.Cases {
			out.Cases = append(out.Cases, Case{Label: c.Label, Value: c.RawValue})
		}
	}

	return out
}

// YAML exports tree as YAML.
func YAML(tree *wrapper.Tree) ([]byte, error) {
	doc, err := NewDocument(tree)
	if err != nil {
		return nil, err
	}

	return yaml.Marshal(doc)
}

// JSON exports tree as indented JSON.
func JSON(tree *wrapper.Tree) ([]byte, error) {
	doc, err := NewDocument(tree)
	if err != nil {
		return nil, err
	}

	return json.MarshalIndent(doc, "", "  ")
}

// Marshal exports tree in the named format ("yaml" or "json").
func Marshal(tree *wrapper.Tree, format string) ([]byte, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml", "":
		return YAML(tree)
	case "json":
		return JSON(tree)
	default:
		return nil, fmt.Errorf("unknown export format %q", format)
	}
}
