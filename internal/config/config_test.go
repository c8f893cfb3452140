package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bridge-generator/internal/telemetry"
)

// emptyEnv writes an empty .env file so tests do not pick up the working
// directory's.
func emptyEnv(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load([]string{"-schema", "rum.yaml"}, emptyEnv(t))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		SchemaPath: "rum.yaml",
		Out:        "-",
		Format:     "yaml",
		LogLevel:   telemetry.LevelInfo,
	}, cfg)
	assert.True(t, cfg.Stdout())
}

func TestLoad_Flags(t *testing.T) {
	cfg, err := Load([]string{
		"-pkg", "./examples/rum",
		"-root", "ViewEvent",
		"-out", "tree.json",
		"-format", "JSON",
		"-require-fields",
		"-max-depth", "8",
		"-log-level", "debug",
	}, emptyEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "./examples/rum", cfg.Package)
	assert.Equal(t, "ViewEvent", cfg.Root)
	assert.Equal(t, "tree.json", cfg.Out)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.RequireFields)
	assert.Equal(t, 8, cfg.MaxDepth)
	assert.Equal(t, telemetry.LevelDebug, cfg.LogLevel)
	assert.False(t, cfg.Stdout())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv(EnvRoot, "ViewEvent")
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvRequireFields, "true")
	t.Setenv(EnvMaxDepth, "12")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load([]string{"-pkg", "./examples/rum"}, emptyEnv(t))
	require.NoError(t, err)

	assert.Equal(t, "ViewEvent", cfg.Root)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.RequireFields)
	assert.Equal(t, 12, cfg.MaxDepth)
	assert.Equal(t, telemetry.LevelWarn, cfg.LogLevel)

	cfg, err = Load([]string{"-pkg", "./examples/rum", "-format", "yaml", "-require-fields=false"}, emptyEnv(t))
	require.NoError(t, err)
	assert.Equal(t, "yaml", cfg.Format)
	assert.False(t, cfg.RequireFields)
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv(EnvRoot, "")
	require.NoError(t, os.Unsetenv(EnvRoot))

	path := filepath.Join(t.TempDir(), "bridge.env")
	require.NoError(t, os.WriteFile(path, []byte(EnvRoot+"=Session\n"), 0o600))

	cfg, err := Load([]string{"-pkg", "./examples/rum"}, path)
	require.NoError(t, err)
	assert.Equal(t, "Session", cfg.Root)

	_, err = Load([]string{"-schema", "a.yaml"}, filepath.Join(t.TempDir(), "missing.env"))
	assert.ErrorContains(t, err, "failed to load env files")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no source", nil, "one of -schema or -pkg is required"},
		{"both sources", []string{"-schema", "a.yaml", "-pkg", "./x", "-root", "A"}, "mutually exclusive"},
		{"package without root", []string{"-pkg", "./x"}, "-root is required"},
		{"bad format", []string{"-schema", "a.yaml", "-format", "toml"}, "unknown format"},
		{"bad level", []string{"-schema", "a.yaml", "-log-level", "loud"}, "unknown log level"},
		{"negative depth", []string{"-schema", "a.yaml", "-max-depth", "-1"}, "must not be negative"},
		{"unknown flag", []string{"-verbose"}, "flag provided but not defined"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.args, emptyEnv(t))
			assert.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad_Help(t *testing.T) {
	_, err := Load([]string{"-h"}, emptyEnv(t))
	assert.True(t, errors.Is(err, flag.ErrHelp))
}
