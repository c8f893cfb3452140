package telemetry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"bridge-generator/internal/common"
)

// Level is the severity of a recorded event.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelNotice
	LevelWarn
	LevelError
	LevelCritical
)

// String returns a human-readable level name.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelNotice:
		return "notice"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	case LevelCritical:
		return "critical"
	default:
		return common.UnknownStr
	}
}

// SlogLevel maps the level onto slog's scale. Notice sits between info and
// warn, critical above error.
func (l Level) SlogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelNotice:
		return slog.LevelInfo + 2
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	case LevelCritical:
		return slog.LevelError + 4
	default:
		return slog.LevelInfo
	}
}

// ParseLevel returns the level spelled by name.
func ParseLevel(name string) (Level, error) {
	for l := LevelDebug; l <= LevelCritical; l++ {
		if strings.EqualFold(l.String(), name) {
			return l, nil
		}
	}

	return LevelInfo, fmt.Errorf("unknown log level %q", name)
}

const (
	// TagsKey is the record attribute holding the comma-separated tags.
	TagsKey = "tags"
	// ErrorKey is the record attribute holding the error message.
	ErrorKey = "error.message"
	// ErrorKindKey is the record attribute holding the error's Go type.
	ErrorKindKey = "error.kind"
	// NameKey is the record attribute holding the logger name.
	NameKey = "logger.name"
)

// Logger records leveled events enriched with persistent attributes and
// tags. It is safe for concurrent use: attribute and tag mutations are
// serialized and every event sees a consistent snapshot.
type Logger struct {
	next slog.Handler
	name string

	mu         sync.Mutex
	attributes map[attribute.Key]attribute.KeyValue
	tags       map[string]struct{}
}

// Option configures a Logger.
type Option func(*Logger)

// WithName sets the logger name attached to every event.
func WithName(name string) Option {
	return func(l *Logger) {
		l.name = name
	}
}

// WithAttributes presets persistent attributes.
func WithAttributes(kvs ...attribute.KeyValue) Option {
	return func(l *Logger) {
		for _, kv := range kvs {
			l.attributes[kv.Key] = kv
		}
	}
}

// New creates a Logger writing events to h.
func New(h slog.Handler, opts ...Option) *Logger {
	l := &Logger{
		next:       h,
		attributes: make(map[attribute.Key]attribute.KeyValue),
		tags:       make(map[string]struct{}),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Debug records a debug event.
func (l *Logger) Debug(msg string, err error, attrs ...attribute.KeyValue) {
	l.Log(LevelDebug, msg, err, attrs...)
}

// Info records an info event.
func (l *Logger) Info(msg string, err error, attrs ...attribute.KeyValue) {
	l.Log(LevelInfo, msg, err, attrs...)
}

// Notice records a notice event.
func (l *Logger) Notice(msg string, err error, attrs ...attribute.KeyValue) {
	l.Log(LevelNotice, msg, err, attrs...)
}

// Warn records a warning event.
func (l *Logger) Warn(msg string, err error, attrs ...attribute.KeyValue) {
	l.Log(LevelWarn, msg, err, attrs...)
}

// Error records an error event.
func (l *Logger) Error(msg string, err error, attrs ...attribute.KeyValue) {
	l.Log(LevelError, msg, err, attrs...)
}

// Critical records a critical event.
func (l *Logger) Critical(msg string, err error, attrs ...attribute.KeyValue) {
	l.Log(LevelCritical, msg, err, attrs...)
}

// Log records an event. err may be nil. Event attributes override
// persistent attributes with the same key.
func (l *Logger) Log(level Level, msg string, err error, attrs ...attribute.KeyValue) {
	ctx := context.Background()
	if !l.next.Enabled(ctx, level.SlogLevel()) {
		return
	}

	persistent, tags := l.snapshot()

	rec := slog.NewRecord(time.Now(), level.SlogLevel(), msg, 0)

	overridden := make(map[attribute.Key]bool, len(attrs))
	for _, kv := range attrs {
		overridden[kv.Key] = true
	}

	for _, kv := range persistent {
		if !overridden[kv.Key] {
			rec.AddAttrs(toSlog(kv))
		}
	}

	for _, kv := range attrs {
		rec.AddAttrs(toSlog(kv))
	}

	if err != nil {
		rec.AddAttrs(
			slog.String(ErrorKey, err.Error()),
			slog.String(ErrorKindKey, fmt.Sprintf("%T", err)),
		)
	}

	l.addCommon(&rec, tags)

	// Handler failures are dropped, as slog.Logger drops them.
	_ = l.next.Handle(ctx, rec)
}

// AddAttribute sets a persistent attribute, replacing any with the same key.
func (l *Logger) AddAttribute(kv attribute.KeyValue) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.attributes[kv.Key] = kv
}

// RemoveAttribute deletes the persistent attribute with key.
func (l *Logger) RemoveAttribute(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.attributes, attribute.Key(key))
}

// AddTag adds the tag "key:value".
func (l *Logger) AddTag(key, value string) {
	l.AddFormattedTag(key + ":" + value)
}

// RemoveTag deletes every tag with the given key, however it was added.
func (l *Logger) RemoveTag(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for tag := range l.tags {
		if tagKey(tag) == key {
			delete(l.tags, tag)
		}
	}
}

// AddFormattedTag adds a tag already formatted as "key:value" (or a bare
// "key").
func (l *Logger) AddFormattedTag(tag string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.tags[tag] = struct{}{}
}

// RemoveFormattedTag deletes exactly the given tag.
func (l *Logger) RemoveFormattedTag(tag string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.tags, tag)
}

// Attributes returns the persistent attributes sorted by key.
func (l *Logger) Attributes() []attribute.KeyValue {
	attrs, _ := l.snapshot()
	return attrs
}

// Tags returns the tags in sorted order.
func (l *Logger) Tags() []string {
	_, tags := l.snapshot()
	return tags
}

// Slog returns a slog.Logger whose records carry this logger's name,
// persistent attributes and tags.
func (l *Logger) Slog() *slog.Logger {
	return slog.New(&enrichingHandler{logger: l, next: l.next})
}

func (l *Logger) snapshot() ([]attribute.KeyValue, []string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	attrs := make([]attribute.KeyValue, 0, len(l.attributes))
	for _, kv := range l.attributes {
		attrs = append(attrs, kv)
	}

	sort.Slice(attrs, func(i, j int) bool { return attrs[i].Key < attrs[j].Key })

	tags := make([]string, 0, len(l.tags))
	for tag := range l.tags {
		tags = append(tags, tag)
	}

	sort.Strings(tags)

	return attrs, tags
}

func (l *Logger) addCommon(rec *slog.Record, tags []string) {
	if l.name != "" {
		rec.AddAttrs(slog.String(NameKey, l.name))
	}

	if len(tags) > 0 {
		rec.AddAttrs(slog.String(TagsKey, strings.Join(tags, ",")))
	}
}

func tagKey(tag string) string {
	if i := strings.IndexByte(tag, ':'); i >= 0 {
		return tag[:i]
	}

	return tag
}

// toSlog converts a typed attribute into a slog attribute.
func toSlog(kv attribute.KeyValue) slog.Attr {
	key := string(kv.Key)

	switch kv.Value.Type() {
	case attribute.BOOL:
		return slog.Bool(key, kv.Value.AsBool())
	case attribute.INT64:
		return slog.Int64(key, kv.Value.AsInt64())
	case attribute.FLOAT64:
		return slog.Float64(key, kv.Value.AsFloat64())
	case attribute.STRING:
		return slog.String(key, kv.Value.AsString())
	default:
		return slog.Any(key, kv.Value.AsInterface())
	}
}

// enrichingHandler forwards records to next after adding the logger's
// persistent attributes and tags.
type enrichingHandler struct {
	logger *Logger
	next   slog.Handler
}

func (h *enrichingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

func (h *enrichingHandler) Handle(ctx context.Context, rec slog.Record) error {
	persistent, tags := h.logger.snapshot()

	rec = rec.Clone()
	for _, kv := range persistent {
		rec.AddAttrs(toSlog(kv))
	}

	h.logger.addCommon(&rec, tags)

	return h.next.Handle(ctx, rec)
}

func (h *enrichingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &enrichingHandler{logger: h.logger, next: h.next.WithAttrs(attrs)}
}

func (h *enrichingHandler) WithGroup(name string) slog.Handler {
	return &enrichingHandler{logger: h.logger, next: h.next.WithGroup(name)}
}
