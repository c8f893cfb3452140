package schemafile

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"bridge-generator/internal/origin"
)

// Load reads, validates and converts the schema file at path. The format
// is taken from the file extension.
func Load(path string) (*origin.Schema, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	schema, err := doc.Schema()
	if err != nil {
		return nil, fmt.Errorf("invalid schema file %s: %w", path, err)
	}

	return schema, nil
}

// LoadFile reads and parses the schema file at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file %s: %w", path, err)
	}

	return Parse(data, FormatOf(path))
}

// Parse parses data in the given format.
func Parse(data []byte, format Format) (*Document, error) {
	switch format {
	case FormatJSON:
		return ParseJSON(data)
	default:
		return ParseYAML(data)
	}
}

// ParseYAML parses YAML data into a Document.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document

	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema YAML: %w", err)
	}

	applyDefaults(&doc)

	return &doc, nil
}

// ParseJSON parses JSON data into a Document.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document

	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema JSON: %w", err)
	}

	applyDefaults(&doc)

	return &doc, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(doc *Document) {
	if doc.Version == "" {
		doc.Version = "1"
	}
}

// Marshal serializes a Document in the given format.
func Marshal(doc *Document, format Format) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(doc, "", "  ")
	}

	return yaml.Marshal(doc)
}
