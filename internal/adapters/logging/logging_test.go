package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/grandcanyonsmith/leadmagnet/internal/ports"
)

func TestNopLogger_ImplementsInterface(_ *testing.T) {
	var _ ports.Logger = NewNopLogger()
}

func TestNopLogger_Methods(t *testing.T) {
	logger := NewNopLogger()
	ctx := context.Background()

	// All methods should be no-ops
	logger.Debug(ctx, "debug message")
	logger.Info(ctx, "info message")
	logger.Warn(ctx, "warn message")
	logger.Error(ctx, "error message")

	// With should return itself
	withLogger := logger.With(ports.F("key", "value"))
	if withLogger != logger {
		t.Error("NopLogger.With should return itself")
	}
}

func TestConsoleLogger_ImplementsInterface(_ *testing.T) {
	var _ ports.Logger = NewConsoleLogger()
}

func TestConsoleLogger_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(
		WithOutput(&buf),
		WithLevel(ports.LevelDebug),
	)

	logger.Info(context.Background(), "derived statuses", ports.F("job_id", "job-1"))

	out := buf.String()
	if !strings.Contains(out, "[INFO]") {
		t.Errorf("output missing level label: %q", out)
	}
	if !strings.Contains(out, "derived statuses") {
		t.Errorf("output missing message: %q", out)
	}
	if !strings.Contains(out, "job_id=job-1") {
		t.Errorf("output missing field: %q", out)
	}
}

func TestConsoleLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(
		WithOutput(&buf),
		WithJSONFormat(true),
	)

	logger.Error(context.Background(), "fetch failed", ports.F("tenant", "t-1"))

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["level"] != "ERROR" {
		t.Errorf("level = %v, want ERROR", entry["level"])
	}
	if entry["msg"] != "fetch failed" {
		t.Errorf("msg = %v, want %q", entry["msg"], "fetch failed")
	}
	if entry["tenant"] != "t-1" {
		t.Errorf("tenant = %v, want t-1", entry["tenant"])
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleLogger(
		WithOutput(&buf),
		WithLevel(ports.LevelWarn),
	)

	logger.Debug(context.Background(), "dropped")
	logger.Info(context.Background(), "dropped")

	if buf.Len() != 0 {
		t.Errorf("below-threshold messages were written: %q", buf.String())
	}

	logger.Warn(context.Background(), "kept")
	if !strings.Contains(buf.String(), "kept") {
		t.Errorf("warn message missing: %q", buf.String())
	}
}

func TestConsoleLogger_WithFields(t *testing.T) {
	var buf bytes.Buffer
	base := NewConsoleLogger(WithOutput(&buf))

	derived := base.With(ports.F("tenant", "t-9"))
	derived.Info(context.Background(), "hello")

	if !strings.Contains(buf.String(), "tenant=t-9") {
		t.Errorf("derived logger missing base field: %q", buf.String())
	}

	buf.Reset()
	base.Info(context.Background(), "hello")
	if strings.Contains(buf.String(), "tenant=t-9") {
		t.Errorf("base logger picked up derived field: %q", buf.String())
	}
}

func TestLoggerContext_RoundTrip(t *testing.T) {
	logger := NewNopLogger()
	ctx := ports.ContextWithLogger(context.Background(), logger)

	if got := ports.LoggerFromContext(ctx); got != logger {
		t.Error("LoggerFromContext did not return the attached logger")
	}
	if got := ports.LoggerFromContext(context.Background()); got != nil {
		t.Error("LoggerFromContext on empty context should return nil")
	}
}
