// Package main provides the CLI entrypoint for bridge-generator.
//
// bridge-generator derives the wrapper tree that bridges a data schema into
// a consumer type system:
//   - Reads the origin schema from a YAML/JSON file or a Go package
//   - Classifies every field and builds the wrapper tree depth-first
//   - Validates the tree invariants
//   - Exports the tree as YAML or JSON for an emitter
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"

	"bridge-generator/internal/analyze"
	"bridge-generator/internal/build"
	"bridge-generator/internal/config"
	"bridge-generator/internal/export"
	"bridge-generator/internal/origin"
	"bridge-generator/internal/schemafile"
	"bridge-generator/internal/telemetry"
)

const usage = `bridge-generator - derive and export the wrapper tree of a schema

Usage:
  bridge-generator -schema schema.yaml [-root Name] [flags]
  bridge-generator -pkg ./path/to/pkg -root Name [flags]

Flags:
  -out file            output file, - for stdout (default -)
  -format yaml|json    export format (default yaml)
  -require-fields      reject structs without fields
  -max-depth n         maximum inline struct nesting
  -log-level level     debug, info, notice, warn, error or critical
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(args)
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprint(stdout, usage)
		return 0
	}

	if err != nil {
		fmt.Fprintf(stderr, "bridge-generator: %v\n\n%s", err, usage)
		return 2
	}

	handler := slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: cfg.LogLevel.SlogLevel()})
	logger := telemetry.New(handler, telemetry.WithName("bridge-generator"))
	logger.AddTag("format", cfg.Format)

	if err := generate(cfg, logger, stdout); err != nil {
		logger.Error("generation failed", err)
		return 1
	}

	return 0
}

func generate(cfg *config.Config, logger *telemetry.Logger, stdout io.Writer) error {
	schema, err := loadSchema(cfg, logger)
	if err != nil {
		return err
	}

	tree, err := build.BuildAndValidate(schema,
		build.WithRequireFields(cfg.RequireFields),
		build.WithMaxDepth(cfg.MaxDepth),
		build.WithLogger(logger.Slog()),
	)
	if err != nil {
		return err
	}

	logger.AddTag("root", tree.RootNode().TypeName())
	logger.Info("validated wrapper tree", nil,
		attribute.Int("nodes", tree.NodeCount()),
		attribute.Int("fields", tree.FieldCount()),
		attribute.Int("classes", len(tree.Classes())),
	)

	data, err := export.Marshal(tree, cfg.Format)
	if err != nil {
		return err
	}

	if cfg.Stdout() {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	} else if err := os.WriteFile(cfg.Out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file %s: %w", cfg.Out, err)
	}

	logger.Notice("exported wrapper tree", nil,
		attribute.String("out", cfg.Out),
		attribute.Int("bytes", len(data)),
	)

	return nil
}

func loadSchema(cfg *config.Config, logger *telemetry.Logger) (*origin.Schema, error) {
	if cfg.Package != "" {
		logger.AddAttribute(attribute.String("package", cfg.Package))

		a := analyze.NewAnalyzer(analyze.WithLogger(logger.Slog()))
		if err := a.LoadPackages(cfg.Package); err != nil {
			return nil, err
		}

		pkgs := a.Packages()
		if len(pkgs) != 1 {
			return nil, fmt.Errorf("pattern %s matched %d packages, want 1", cfg.Package, len(pkgs))
		}

		return a.Schema(pkgs[0], cfg.Root)
	}

	logger.AddAttribute(attribute.String("schema", cfg.SchemaPath))

	doc, err := schemafile.LoadFile(cfg.SchemaPath)
	if err != nil {
		return nil, err
	}

	if cfg.Root != "" {
		doc.Root = cfg.Root
	}

	for _, w := range doc.Validate().Warnings {
		logger.Warn("schema warning", w.SchemaError)
	}

	return doc.Schema()
}
