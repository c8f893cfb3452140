package schemafile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge-generator/internal/diagnostic"
	"bridge-generator/internal/origin"
)

func TestLoad_YAML(t *testing.T) {
	schema, err := Load(filepath.Join("testdata", "rum.yaml"))
	require.NoError(t, err)

	root, err := schema.RootStruct()
	require.NoError(t, err)

	assert.Equal(t, "RUMViewEvent", root.Name)
	assert.Equal(t, "Schema of all properties of a View event", root.Comment)
	assert.Equal(t, []string{"RUMViewEvent", "Source", "View"}, schema.Names())

	require.Len(t, root.Fields, 5)

	names := make([]string, 0, len(root.Fields))
	for _, f := range root.Fields {
		names = append(names, f.Name)
	}

	assert.Equal(t, []string{"date", "application", "source", "view", "context"}, names)

	assert.Equal(t, "!int64", origin.TypeString(root.Fields[0].Type))

	app := root.Fields[1].Type
	assert.Equal(t, origin.KindStruct, app.Kind)
	assert.Equal(t, "RUMViewEventApplication", app.Name)

	assert.Equal(t, "&Source", origin.TypeString(root.Fields[2].Type))
	assert.True(t, root.Fields[2].Optional)

	ctx := root.FieldByName("context")
	require.NotNil(t, ctx)
	assert.Equal(t, "[string: !any]", origin.TypeString(ctx.Type))
	assert.True(t, ctx.Optional)
	assert.True(t, ctx.Mutable)

	view, ok := schema.Lookup("View")
	require.True(t, ok)

	loading := view.FieldByName("loading_type")
	require.NotNil(t, loading)
	assert.Equal(t, origin.KindEnum, loading.Type.Kind)
	assert.Equal(t, "ViewLoading_type", loading.Type.Name)
	assert.Equal(t, "[&Source]", origin.TypeString(view.FieldByName("frustration").Type))

	source, ok := schema.Lookup("Source")
	require.True(t, ok)
	assert.Equal(t, []origin.EnumCase{
		{Label: "android", RawValue: "android"},
		{Label: "ios", RawValue: "ios"},
		{Label: "react_native", RawValue: "react-native"},
	}, source.Cases)
}

func TestLoad_JSONMatchesYAML(t *testing.T) {
	fromYAML, err := Load(filepath.Join("testdata", "rum.yaml"))
	require.NoError(t, err)

	fromJSON, err := Load(filepath.Join("testdata", "rum.json"))
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestParse_Defaults(t *testing.T) {
	doc, err := ParseYAML([]byte("root: A\ntypes:\n  - name: A\n"))
	require.NoError(t, err)
	assert.Equal(t, "1", doc.Version)

	schema, err := doc.Schema()
	require.NoError(t, err)

	root, err := schema.RootStruct()
	require.NoError(t, err)
	assert.Empty(t, root.Fields)
}

func TestParse_Malformed(t *testing.T) {
	_, err := ParseYAML([]byte("root: [unclosed"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse schema YAML")

	_, err = ParseJSON([]byte(`{"root": `))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse schema JSON")

	_, err = ParseYAML([]byte("root: A\ntypes:\n  - name: E\n    cases:\n      - [a, b]\n"))
	require.Error(t, err)
}

func TestDocument_Validate(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		codes []diagnostic.Code
	}{
		{
			name:  "missing root",
			yaml:  "types:\n  - name: A\n",
			codes: []diagnostic.Code{diagnostic.CodeMissingRoot},
		},
		{
			name:  "undefined root",
			yaml:  "root: B\ntypes:\n  - name: A\n",
			codes: []diagnostic.Code{diagnostic.CodeMissingRoot},
		},
		{
			name:  "enum root",
			yaml:  "root: E\ntypes:\n  - name: E\n    cases: [a]\n",
			codes: []diagnostic.Code{diagnostic.CodeMissingRoot},
		},
		{
			name:  "duplicate type",
			yaml:  "root: A\ntypes:\n  - name: A\n  - name: A\n",
			codes: []diagnostic.Code{diagnostic.CodeDuplicateType},
		},
		{
			name: "duplicate field",
			yaml: `
root: A
types:
  - name: A
    fields:
      - {name: x, type: int}
      - {name: x, type: string}
`,
			codes: []diagnostic.Code{diagnostic.CodeDuplicateField},
		},
		{
			name: "unknown primitive",
			yaml: `
root: A
types:
  - name: A
    fields:
      - {name: x, type: float}
`,
			codes: []diagnostic.Code{diagnostic.CodeInvalidType},
		},
		{
			name: "no selector",
			yaml: `
root: A
types:
  - name: A
    fields:
      - {name: x}
`,
			codes: []diagnostic.Code{diagnostic.CodeInvalidType},
		},
		{
			name: "several selectors",
			yaml: `
root: A
types:
  - name: A
    fields:
      - {name: x, type: int, ref: A}
`,
			codes: []diagnostic.Code{diagnostic.CodeInvalidType},
		},
		{
			name: "enum without cases",
			yaml: `
root: A
types:
  - name: A
  - name: E
    kind: enum
`,
			codes: []diagnostic.Code{diagnostic.CodeInvalidType},
		},
		{
			name: "every problem reported",
			yaml: `
root: A
types:
  - name: A
    fields:
      - {name: x, type: float}
      - {name: x, type: int}
      - name: y
        array: {}
  - name: A
`,
			codes: []diagnostic.Code{
				diagnostic.CodeDuplicateType,
				diagnostic.CodeInvalidType,
				diagnostic.CodeDuplicateField,
				diagnostic.CodeInvalidType,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseYAML([]byte(tt.yaml))
			require.NoError(t, err)

			diags := doc.Validate()

			got := make([]diagnostic.Code, 0, len(diags.Errors))
			for _, d := range diags.Errors {
				got = append(got, d.Code)
			}

			assert.Equal(t, tt.codes, got)

			_, err = doc.Schema()
			require.Error(t, err)
			assert.ErrorIs(t, err, diagnostic.ErrInvalidSchema)
		})
	}
}

func TestDocument_UndefinedReferenceIsWarning(t *testing.T) {
	doc, err := ParseYAML([]byte(`
root: A
types:
  - name: A
    fields:
      - {name: b, ref: B}
`))
	require.NoError(t, err)

	diags := doc.Validate()
	assert.False(t, diags.HasErrors())
	require.Len(t, diags.Warnings, 1)
	assert.Equal(t, diagnostic.CodeUnresolvedReference, diags.Warnings[0].Code)
	assert.Equal(t, "A.b", diags.Warnings[0].FieldPath)

	_, err = doc.Schema()
	assert.NoError(t, err)
}

func TestDocument_FieldPaths(t *testing.T) {
	doc, err := ParseYAML([]byte(`
root: A
types:
  - name: A
    fields:
      - name: m
        dictionary:
          key: {type: string}
          value:
            array: {type: float}
`))
	require.NoError(t, err)

	diags := doc.Validate()
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "A.m{}[]", diags.Errors[0].FieldPath)
	assert.Equal(t, "A", diags.Errors[0].TypeName)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, FormatOf("schema.JSON"))
	assert.Equal(t, FormatYAML, FormatOf("schema.yml"))
	assert.Equal(t, FormatYAML, FormatOf("schema"))

	f, err := ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	f, err = ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, "json", f.String())

	_, err = ParseFormat("toml")
	assert.Error(t, err)
}

func TestMarshal_RoundTripsThroughBothFormats(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "rum.yaml"))
	require.NoError(t, err)

	want, err := doc.Schema()
	require.NoError(t, err)

	for _, format := range []Format{FormatYAML, FormatJSON} {
		data, err := Marshal(doc, format)
		require.NoError(t, err, format.String())

		again, err := Parse(data, format)
		require.NoError(t, err, format.String())

		got, err := again.Schema()
		require.NoError(t, err, format.String())
		assert.Equal(t, want, got, format.String())
	}
}

func TestMarshal_JSONInlinesFieldTypes(t *testing.T) {
	doc := &Document{
		Version: "1",
		Root:    "Event",
		Types: []TypeDef{{
			Name: "Event",
			Fields: []FieldDef{
				{Name: "tags", TypeRef: TypeRef{Array: &TypeRef{Array: &TypeRef{Ref: "Event"}}}},
				{Name: "meta", Optional: true, TypeRef: TypeRef{Dictionary: &DictionaryDef{
					Key:   TypeRef{Type: "string"},
					Value: TypeRef{Struct: &InlineStruct{Fields: []FieldDef{{Name: "n", TypeRef: TypeRef{Type: "int"}}}}},
				}}},
			},
		}},
	}

	data, err := Marshal(doc, FormatJSON)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "TypeRef")

	var raw struct {
		Types []struct {
			Fields []map[string]any `json:"fields"`
		} `json:"types"`
	}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw.Types, 1)
	require.Len(t, raw.Types[0].Fields, 2)
	assert.Equal(t, map[string]any{
		"name":  "tags",
		"array": map[string]any{"array": map[string]any{"ref": "Event"}},
	}, raw.Types[0].Fields[0])
	assert.Equal(t, true, raw.Types[0].Fields[1]["optional"])
	assert.Contains(t, raw.Types[0].Fields[1], "dictionary")

	again, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, doc, again)
}
