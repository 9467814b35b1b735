package logger

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromEnv(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := LevelFromEnv(in); got != want {
			t.Fatalf("LevelFromEnv(%q) = %v; want %v", in, got, want)
		}
	}
}

func TestNewText_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewText(slog.LevelWarn, &buf)

	log.Info("hidden")
	log.Warn("shown", "addr", "localhost:8080")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info record leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "addr=localhost:8080") {
		t.Fatalf("unexpected output: %q", out)
	}
}
