package telemetry

import (
	"context"
	"log/slog"
	"sync"
)

// Record is a captured log event with its attributes resolved.
type Record struct {
	Level   slog.Level
	Message string
	Attrs   map[string]any
}

// Attr returns the value recorded under key.
func (r Record) Attr(key string) (any, bool) {
	v, ok := r.Attrs[key]
	return v, ok
}

type recorderStore struct {
	mu      sync.Mutex
	records []Record
}

// Recorder is a slog.Handler that keeps every record it handles. Handlers
// derived with WithAttrs or WithGroup share the same store.
type Recorder struct {
	store *recorderStore
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// NewRecorder creates a Recorder accepting records at or above level.
// A nil level accepts everything.
func NewRecorder(level slog.Leveler) *Recorder {
	if level == nil {
		level = slog.LevelDebug - 4
	}

	return &Recorder{store: &recorderStore{}, level: level}
}

func (r *Recorder) Enabled(_ context.Context, level slog.Level) bool {
	return level >= r.level.Level()
}

func (r *Recorder) Handle(_ context.Context, rec slog.Record) error {
	captured := Record{
		Level:   rec.Level,
		Message: rec.Message,
		Attrs:   make(map[string]any, rec.NumAttrs()+len(r.attrs)),
	}

	for _, a := range r.attrs {
		flatten(captured.Attrs, "", a)
	}

	rec.Attrs(func(a slog.Attr) bool {
		flatten(captured.Attrs, r.group, a)
		return true
	})

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.records = append(r.store.records, captured)

	return nil
}

func (r *Recorder) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *r

	next.attrs = make([]slog.Attr, 0, len(r.attrs)+len(attrs))
	next.attrs = append(next.attrs, r.attrs...)

	for _, a := range attrs {
		if r.group != "" {
			a.Key = r.group + "." + a.Key
		}

		next.attrs = append(next.attrs, a)
	}

	return &next
}

func (r *Recorder) WithGroup(name string) slog.Handler {
	if name == "" {
		return r
	}

	next := *r
	if next.group != "" {
		next.group += "." + name
	} else {
		next.group = name
	}

	return &next
}

// Records returns a copy of the captured records in arrival order.
func (r *Recorder) Records() []Record {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	return append([]Record(nil), r.store.records...)
}

// Messages returns the messages of the captured records.
func (r *Recorder) Messages() []string {
	records := r.Records()

	msgs := make([]string, len(records))
	for i, rec := range records {
		msgs[i] = rec.Message
	}

	return msgs
}

// Reset drops every captured record.
func (r *Recorder) Reset() {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.records = nil
}

func flatten(dst map[string]any, prefix string, a slog.Attr) {
	key := a.Key
	if prefix != "" {
		key = prefix + "." + key
	}

	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, sub := range v.Group() {
			flatten(dst, key, sub)
		}

		return
	}

	dst[key] = v.Any()
}
