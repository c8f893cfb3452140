package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"bridge-generator/internal/telemetry"
)

// Environment variables read as flag defaults.
const (
	EnvRoot          = "BRIDGEGEN_ROOT"
	EnvFormat        = "BRIDGEGEN_FORMAT"
	EnvRequireFields = "BRIDGEGEN_REQUIRE_FIELDS"
	EnvMaxDepth      = "BRIDGEGEN_MAX_DEPTH"
	EnvLogLevel      = "BRIDGEGEN_LOG_LEVEL"
)

// Config holds the generator settings.
type Config struct {
	// SchemaPath is a YAML or JSON schema file.
	SchemaPath string
	// Package is a Go package pattern to read the schema from.
	Package string
	// Root names the root struct. Required with Package; overrides the
	// document root with SchemaPath.
	Root string
	// Out is the export destination; empty or "-" writes to stdout.
	Out string
	// Format is the export format, yaml or json.
	Format        string
	RequireFields bool
	MaxDepth      int
	LogLevel      telemetry.Level
}

// Load reads .env files, then parses args over the environment defaults.
// Without envFiles, a missing ./.env is ignored; named files must exist.
func Load(args []string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return nil, fmt.Errorf("failed to load env files: %w", err)
	}

	fs := flag.NewFlagSet("bridge-generator", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	cfg := &Config{}

	var logLevel string

	fs.StringVar(&cfg.SchemaPath, "schema", "", "schema file (.yaml, .yml or .json)")
	fs.StringVar(&cfg.Package, "pkg", "", "Go package pattern to read the schema from")
	fs.StringVar(&cfg.Root, "root", strings.TrimSpace(os.Getenv(EnvRoot)), "root struct name")
	fs.StringVar(&cfg.Out, "out", "-", "output file, - for stdout")
	fs.StringVar(&cfg.Format, "format", firstNonEmpty(strings.TrimSpace(os.Getenv(EnvFormat)), "yaml"), "export format: yaml or json")
	fs.BoolVar(&cfg.RequireFields, "require-fields", envBool(EnvRequireFields), "reject structs without fields")
	fs.IntVar(&cfg.MaxDepth, "max-depth", envInt(EnvMaxDepth), "maximum inline struct nesting (0 = default)")
	fs.StringVar(&logLevel, "log-level", firstNonEmpty(strings.TrimSpace(os.Getenv(EnvLogLevel)), "info"), "log level")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	level, err := telemetry.ParseLevel(logLevel)
	if err != nil {
		return nil, err
	}

	cfg.LogLevel = level
	cfg.Format = strings.ToLower(cfg.Format)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the settings are consistent.
func (c *Config) Validate() error {
	var errs []error

	switch {
	case c.SchemaPath == "" && c.Package == "":
		errs = append(errs, errors.New("one of -schema or -pkg is required"))
	case c.SchemaPath != "" && c.Package != "":
		errs = append(errs, errors.New("-schema and -pkg are mutually exclusive"))
	case c.Package != "" && c.Root == "":
		errs = append(errs, errors.New("-root is required with -pkg"))
	}

	if c.Format != "yaml" && c.Format != "json" {
		errs = append(errs, fmt.Errorf("unknown format %q", c.Format))
	}

	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth))
	}

	return errors.Join(errs...)
}

// Stdout reports whether output goes to standard output.
func (c *Config) Stdout() bool {
	return c.Out == "" || c.Out == "-"
}

func envBool(key string) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return false
	}

	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false
	}

	return v
}

func envInt(key string) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return 0
	}

	return v
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}

	return ""
}
