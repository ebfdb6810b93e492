package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tc := range cases {
		if got := parseLevel(tc.input); got != tc.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNewWritesToFile(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "rememberit.log")

	logger, err := New(Options{Level: "info", Format: "json", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hello", String("component", "test"))

	// The handler keeps the file open; reading the path directly is enough to
	// verify the directory was created and the record flushed.
	data := readFile(t, logPath)
	if !strings.Contains(data, `"msg":"hello"`) {
		t.Fatalf("log file missing record: %q", data)
	}
	if !strings.Contains(data, `"component":"test"`) {
		t.Fatalf("log file missing attr: %q", data)
	}
}

func TestComponentLoggerNilBase(t *testing.T) {
	logger := NewComponentLogger(nil, "cache")
	// Must not panic and must swallow output.
	logger.Info("ignored")
}
