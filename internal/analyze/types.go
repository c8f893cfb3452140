package analyze

import (
	"reflect"
	"strings"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "bridge-generator/examples/rum"
	Name    string // e.g., "ViewEvent"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Types []TypeID // Exported structs and enums defined in this package
}

// fieldTag is the parsed json tag of a struct field.
type fieldTag struct {
	name      string
	omitEmpty bool
	skip      bool
}

// parseFieldTag returns the wire name of a field: the json tag name if
// present, otherwise the Go field name.
func parseFieldTag(goName string, tag reflect.StructTag) fieldTag {
	raw, ok := tag.Lookup("json")
	if !ok {
		return fieldTag{name: goName}
	}

	if raw == "-" {
		return fieldTag{skip: true}
	}

	name, opts, _ := strings.Cut(raw, ",")
	if name == "" {
		name = goName
	}

	ft := fieldTag{name: name}
	for _, opt := range strings.Split(opts, ",") {
		if opt == "omitempty" || opt == "omitzero" {
			ft.omitEmpty = true
		}
	}

	return ft
}
