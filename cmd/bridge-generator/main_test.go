package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"bridge-generator/internal/export"
)

const rumSchema = "../../examples/rum/schema.yaml"

func TestRun_SchemaFile(t *testing.T) {
	var stdout, stderr bytes.Buffer

	code := run([]string{"-schema", rumSchema}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var doc export.Document
	require.NoError(t, yaml.Unmarshal(stdout.Bytes(), &doc))

	assert.Equal(t, "RUMViewEvent", doc.Root)
	require.NotEmpty(t, doc.Nodes)
	assert.Equal(t, "RootClass", doc.Nodes[0].Kind)

	var recursive []string

	for _, n := range doc.Nodes {
		if n.Resolution == "recursive" {
			recursive = append(recursive, n.Type)
		}
	}

	assert.Equal(t, []string{"View"}, recursive)

	logs := stderr.String()
	assert.Contains(t, logs, "built wrapper tree")
	assert.Contains(t, logs, "validated wrapper tree")
	assert.Contains(t, logs, "tags=format:yaml,root:RUMViewEvent")
	assert.Contains(t, logs, "logger.name=bridge-generator")
}

func TestRun_Package(t *testing.T) {
	var stdout, stderr bytes.Buffer

	out := filepath.Join(t.TempDir(), "tree.json")

	code := run([]string{
		"-pkg", "bridge-generator/examples/rum",
		"-root", "ViewEvent",
		"-format", "json",
		"-out", out,
	}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc export.Document
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "ViewEvent", doc.Root)
}

func TestRun_BuildError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
root: Event
types:
  - name: Event
    fields:
      - {name: view, ref: View}
`), 0o600))

	var stdout, stderr bytes.Buffer

	code := run([]string{"-schema", path}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "schema warning")
	assert.Contains(t, stderr.String(), "generation failed")
	assert.Contains(t, stderr.String(), "unresolved_reference")
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	assert.Equal(t, 0, run([]string{"-h"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage:")

	stdout.Reset()
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "one of -schema or -pkg is required")
}
