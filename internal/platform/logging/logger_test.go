package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestNewJSONWriter_WritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo).Component("fetcher")

	logger.Warn("fetch attempt failed", "attempt", 2, "error", errors.New("boom"))
	logger.Debug("dropped below level")

	out := buf.String()
	for _, want := range []string{`"msg":"fetch attempt failed"`, `"component":"fetcher"`, `"attempt":2`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %s in %s", want, out)
		}
	}
	if strings.Contains(out, "dropped below level") {
		t.Fatalf("debug entry should be filtered at info level: %s", out)
	}
}

func TestZapFields_OddArgs(t *testing.T) {
	fields := zapFields([]any{"league", "nhl", "dangling"})
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[1].Key != "dangling" {
		t.Fatalf("unexpected trailing key: %s", fields[1].Key)
	}
}

func TestDefault_NilSafe(t *testing.T) {
	SetDefault(nil)
	var logger *Logger
	logger.Info("nil receiver falls back to default")
	if Default() == nil {
		t.Fatalf("expected non-nil default logger")
	}
}

func TestContextWith_FieldsReachContextCalls(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONWriter(&buf, LevelInfo)

	ctx := ContextWith(context.Background(), "platform", "demo")
	ctx = ContextWith(ctx, "league_id", 7)
	logger.InfoContext(ctx, "league reconciled", "duration_ms", 12)
	logger.Info("no context fields")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %s", len(lines), buf.String())
	}
	for _, want := range []string{`"platform":"demo"`, `"league_id":7`, `"duration_ms":12`} {
		if !strings.Contains(lines[0], want) {
			t.Fatalf("expected %s in %s", want, lines[0])
		}
	}
	if strings.Contains(lines[1], "platform") {
		t.Fatalf("plain calls must not carry context fields: %s", lines[1])
	}
}
