package contextutil

import (
	"context"
	"io"
	"log/slog"
	"testing"
)

func TestLoggerFromContext(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(io.Discard, nil))

	if got := LoggerFromContext(WithLogger(context.Background(), custom)); got != custom {
		t.Error("LoggerFromContext() should return the logger stored in context")
	}
	if got := LoggerFromContext(context.Background()); got != slog.Default() {
		t.Error("LoggerFromContext() should fall back to slog.Default()")
	}

	wrongType := context.WithValue(context.Background(), loggerKey, "not a logger")
	if got := LoggerFromContext(wrongType); got != slog.Default() {
		t.Error("LoggerFromContext() should ignore values of the wrong type")
	}
}

func TestRequestID(t *testing.T) {
	if got := RequestIDFromContext(context.Background()); got != "" {
		t.Errorf("RequestIDFromContext() = %q, want empty", got)
	}
	ctx := WithRequestID(context.Background(), "abc")
	if got := RequestIDFromContext(ctx); got != "abc" {
		t.Errorf("RequestIDFromContext() = %q, want abc", got)
	}
}
