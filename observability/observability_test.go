package observability

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestNopTracer(t *testing.T) {
	tracer := NopTracer()
	ctx := context.Background()
	ctx2, span := tracer.StartSpan(ctx, "test")
	if ctx2 != ctx {
		t.Fatalf("nop tracer should return same context")
	}
	span.SetTag("key", "value")
	span.SetError(nil)
	span.Finish()
}

func TestSlogLogger(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log := NewSlogLogger(base).With(String("component", "writer"))

	log.Debug("hidden", Int("n", 1))
	log.Info("object written", Int("id", 3), Int64("offset", 120), Float64("height", 12.5))
	log.Warn("block overflows page", String("kind", "table"))

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %s", out)
	}
	for _, want := range []string{"component=writer", "id=3", "offset=120", "height=12.5", "kind=table"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %s", want, out)
		}
	}
}

func TestNewSlogLogger_Nil(t *testing.T) {
	if _, ok := NewSlogLogger(nil).(NopLogger); !ok {
		t.Fatal("nil slog logger should yield NopLogger")
	}
}
