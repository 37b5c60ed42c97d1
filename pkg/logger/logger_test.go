package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestDefaultIsSilent(t *testing.T) {
	if L().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("default logger should be disabled")
	}
}

func TestSet(t *testing.T) {
	defer Set(nil)

	var buf bytes.Buffer
	Set(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	L().Debug("render", "records", 3)
	if !strings.Contains(buf.String(), "records=3") {
		t.Fatalf("unexpected output %q", buf.String())
	}

	Set(nil)
	if L().Enabled(context.Background(), slog.LevelError) {
		t.Fatal("Set(nil) should restore the silent logger")
	}
}
