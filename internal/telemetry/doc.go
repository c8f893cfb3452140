// Package telemetry provides the logging client used by the generator and
// by tests that observe it.
//
// A Logger records leveled events (debug, info, notice, warn, error,
// critical), each with an optional error and typed attributes from
// go.opentelemetry.io/otel/attribute. Persistent attributes and tags can be
// added and removed at any time; tags are "key:value" strings and may be
// removed by key or by their exact formatted text.
//
// Events are written to a log/slog Handler. Recorder is a handler that keeps
// every record so tests can assert on what was logged.
package telemetry
