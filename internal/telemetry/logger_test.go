package telemetry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestLogger_Levels(t *testing.T) {
	rec := NewRecorder(nil)
	l := New(rec)

	l.Debug("debug message", nil)
	l.Info("info message", nil)
	l.Notice("notice message", nil)
	l.Warn("warn message", nil)
	l.Error("error message", nil)
	l.Critical("critical message", nil)

	records := rec.Records()
	require.Len(t, records, 6)

	want := []struct {
		level slog.Level
		msg   string
	}{
		{slog.LevelDebug, "debug message"},
		{slog.LevelInfo, "info message"},
		{slog.LevelInfo + 2, "notice message"},
		{slog.LevelWarn, "warn message"},
		{slog.LevelError, "error message"},
		{slog.LevelError + 4, "critical message"},
	}

	for i, w := range want {
		assert.Equal(t, w.level, records[i].Level, w.msg)
		assert.Equal(t, w.msg, records[i].Message)
	}
}

func TestLogger_LevelFilter(t *testing.T) {
	rec := NewRecorder(slog.LevelWarn)
	l := New(rec)

	l.Info("dropped", nil)
	l.Notice("dropped", nil)
	l.Warn("kept", nil)
	l.Critical("kept", nil)

	assert.Equal(t, []string{"kept", "kept"}, rec.Messages())
}

// failingHandler records messages and fails every other record.
type failingHandler struct {
	*Recorder
	calls int
}

func (h *failingHandler) Handle(ctx context.Context, r slog.Record) error {
	h.calls++
	if h.calls%2 == 1 {
		return errors.New("sink unavailable")
	}

	return h.Recorder.Handle(ctx, r)
}

func TestLogger_HandlerErrorsDoNotStopLogging(t *testing.T) {
	h := &failingHandler{Recorder: NewRecorder(nil)}
	l := New(h)

	assert.NotPanics(t, func() {
		l.Info("lost", nil)
		l.Info("kept", nil)
		l.Warn("lost again", nil)
		l.Error("kept again", errors.New("boom"))
	})

	assert.Equal(t, 4, h.calls)
	assert.Equal(t, []string{"kept", "kept again"}, h.Messages())
}

func TestLogger_ErrorAndAttributes(t *testing.T) {
	rec := NewRecorder(nil)
	l := New(rec, WithName("bridge"))

	l.Error("build failed", errors.New("boom"),
		attribute.String("root", "Event"),
		attribute.Int("nodes", 12),
		attribute.Bool("sealed", false),
		attribute.Float64("ratio", 0.5),
	)

	records := rec.Records()
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "build failed", got.Message)
	assert.Equal(t, "Event", got.Attrs["root"])
	assert.Equal(t, int64(12), got.Attrs["nodes"])
	assert.Equal(t, false, got.Attrs["sealed"])
	assert.InDelta(t, 0.5, got.Attrs["ratio"], 1e-9)
	assert.Equal(t, "boom", got.Attrs[ErrorKey])
	assert.Equal(t, "*errors.errorString", got.Attrs[ErrorKindKey])
	assert.Equal(t, "bridge", got.Attrs[NameKey])

	_, hasTags := got.Attr(TagsKey)
	assert.False(t, hasTags)
}

func TestLogger_AddRemoveAttribute(t *testing.T) {
	rec := NewRecorder(nil)
	l := New(rec, WithAttributes(attribute.String("format", "yaml")))

	l.AddAttribute(attribute.String("root", "Event"))
	l.Info("first", nil)

	l.RemoveAttribute("root")
	l.Info("second", nil)

	l.AddAttribute(attribute.String("format", "json"))
	l.Info("third", nil, attribute.String("format", "override"))

	records := rec.Records()
	require.Len(t, records, 3)

	assert.Equal(t, "Event", records[0].Attrs["root"])
	assert.Equal(t, "yaml", records[0].Attrs["format"])

	_, ok := records[1].Attr("root")
	assert.False(t, ok)

	assert.Equal(t, "override", records[2].Attrs["format"])
	assert.Equal(t, []attribute.KeyValue{attribute.String("format", "json")}, l.Attributes())
}

func TestLogger_Tags(t *testing.T) {
	tests := []struct {
		name  string
		setup func(l *Logger)
		want  []string
	}{
		{
			name: "key and value",
			setup: func(l *Logger) {
				l.AddTag("env", "test")
			},
			want: []string{"env:test"},
		},
		{
			name: "formatted",
			setup: func(l *Logger) {
				l.AddFormattedTag("env:test")
				l.AddFormattedTag("bare")
			},
			want: []string{"bare", "env:test"},
		},
		{
			name: "remove by key drops every value",
			setup: func(l *Logger) {
				l.AddTag("env", "test")
				l.AddFormattedTag("env:prod")
				l.AddTag("region", "eu")
				l.RemoveTag("env")
			},
			want: []string{"region:eu"},
		},
		{
			name: "remove formatted is exact",
			setup: func(l *Logger) {
				l.AddTag("env", "test")
				l.AddTag("env", "prod")
				l.RemoveFormattedTag("env:prod")
				l.RemoveFormattedTag("env")
			},
			want: []string{"env:test"},
		},
		{
			name: "bare tag removed by key",
			setup: func(l *Logger) {
				l.AddFormattedTag("bare")
				l.RemoveTag("bare")
			},
			want: []string{},
		},
		{
			name: "duplicates collapse",
			setup: func(l *Logger) {
				l.AddTag("env", "test")
				l.AddFormattedTag("env:test")
			},
			want: []string{"env:test"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New(NewRecorder(nil))
			tt.setup(l)
			assert.Equal(t, tt.want, l.Tags())
		})
	}
}

func TestLogger_TagsOnRecords(t *testing.T) {
	rec := NewRecorder(nil)
	l := New(rec)

	l.AddTag("env", "test")
	l.AddFormattedTag("root:Event")
	l.Info("tagged", nil)

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "env:test,root:Event", records[0].Attrs[TagsKey])
}

func TestLogger_Slog(t *testing.T) {
	rec := NewRecorder(nil)
	l := New(rec, WithName("bridge"))
	l.AddAttribute(attribute.String("schema", "rum.yaml"))
	l.AddTag("env", "test")

	s := l.Slog().With("component", "build")
	s.Info("built wrapper tree", "nodes", 3)

	records := rec.Records()
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "built wrapper tree", got.Message)
	assert.Equal(t, "build", got.Attrs["component"])
	assert.Equal(t, int64(3), got.Attrs["nodes"])
	assert.Equal(t, "rum.yaml", got.Attrs["schema"])
	assert.Equal(t, "bridge", got.Attrs[NameKey])
	assert.Equal(t, "env:test", got.Attrs[TagsKey])
}

func TestLogger_ConcurrentUse(t *testing.T) {
	const workers = 8
	const perWorker = 50

	rec := NewRecorder(nil)
	l := New(rec)

	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("w%d-%d", w, i)
				l.AddAttribute(attribute.Int(key, i))
				l.AddTag(key, "on")
				l.Info("event", nil, attribute.Int("worker", w))
			}
		}(w)
	}

	wg.Wait()

	assert.Len(t, rec.Records(), workers*perWorker)
	assert.Len(t, l.Attributes(), workers*perWorker)
	assert.Len(t, l.Tags(), workers*perWorker)

	for w := 0; w < workers; w++ {
		wg.Add(1)

		go func(w int) {
			defer wg.Done()

			for i := 0; i < perWorker; i++ {
				key := fmt.Sprintf("w%d-%d", w, i)
				l.RemoveAttribute(key)
				l.RemoveTag(key)
			}
		}(w)
	}

	wg.Wait()

	assert.Empty(t, l.Attributes())
	assert.Empty(t, l.Tags())
}

func TestParseLevel(t *testing.T) {
	for l := LevelDebug; l <= LevelCritical; l++ {
		got, err := ParseLevel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	got, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, LevelWarn, got)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
	assert.Equal(t, "unknown", Level(42).String())
}

func TestRecorder_GroupsAndReset(t *testing.T) {
	rec := NewRecorder(nil)
	s := slog.New(rec).WithGroup("build").With("root", "Event")

	s.Info("grouped", slog.Group("stats", slog.Int("nodes", 4)))

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "Event", records[0].Attrs["build.root"])
	assert.Equal(t, int64(4), records[0].Attrs["build.stats.nodes"])

	rec.Reset()
	assert.Empty(t, rec.Records())
}
