package logger

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func swapLogger(t *testing.T, buf *bytes.Buffer) {
	t.Helper()

	orig := Logger
	t.Cleanup(func() { Logger = orig })

	Logger = slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func TestLevelHelpers(t *testing.T) {
	var buf bytes.Buffer
	swapLogger(t, &buf)

	tests := []struct {
		name  string
		fn    func(msg string, args ...any)
		level string
	}{
		{"Info", Info, "INFO"},
		{"Error", Error, "ERROR"},
		{"Warn", Warn, "WARN"},
		{"Debug", Debug, "DEBUG"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("session restored")

			var rec struct {
				Level string `json:"level"`
				Msg   string `json:"msg"`
			}
			if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
				t.Fatalf("unmarshal log line: %v", err)
			}
			if rec.Level != tt.level {
				t.Errorf("level = %q, want %q", rec.Level, tt.level)
			}
			if rec.Msg != "session restored" {
				t.Errorf("msg = %q", rec.Msg)
			}
		})
	}
}

func TestAttrsPassThrough(t *testing.T) {
	var buf bytes.Buffer
	swapLogger(t, &buf)

	Info("fetch failed", "endpoint", "/admin/users")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("unmarshal log line: %v", err)
	}
	if rec["endpoint"] != "/admin/users" {
		t.Errorf("endpoint attr = %v", rec["endpoint"])
	}
}

func TestDefaultLoggerExists(t *testing.T) {
	if Logger == nil {
		t.Error("package logger must be usable without setup")
	}
}

func TestLogWriter(t *testing.T) {
	t.Run("unset discards", func(t *testing.T) {
		t.Setenv("MADT_LOG", "")
		if w := logWriter(); w != io.Discard {
			t.Errorf("logWriter() = %T, want io.Discard", w)
		}
	})

	t.Run("stderr", func(t *testing.T) {
		t.Setenv("MADT_LOG", "stderr")
		if w := logWriter(); w != os.Stderr {
			t.Errorf("logWriter() = %T, want os.Stderr", w)
		}
	})

	t.Run("file path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "madt.log")
		t.Setenv("MADT_LOG", path)
		w := logWriter()
		if f, ok := w.(*os.File); !ok {
			t.Errorf("logWriter() = %T, want *os.File", w)
		} else {
			f.Close()
		}
	})
}
