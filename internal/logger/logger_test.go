package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDebugIsGated(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.Debug("lane %d down", 0)
	if buf.Len() != 0 {
		t.Fatalf("expected no output with debug off, got %q", buf.String())
	}

	l = New(&buf, true)
	l.Debug("lane %d down", 0)
	if !strings.Contains(buf.String(), "DEBUG: lane 0 down") {
		t.Fatalf("expected debug line, got %q", buf.String())
	}
}

func TestLogErrorSkipsNil(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, false)

	l.LogError(nil, "ignored")
	if buf.Len() != 0 {
		t.Fatalf("expected no output for nil error, got %q", buf.String())
	}

	l.LogError(errors.New("boom"), "open sampler")
	if !strings.Contains(buf.String(), "ERROR: open sampler: boom") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestNewLoggerManagerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "autoplayer.log")
	l, err := NewLoggerManager(path, false)
	if err != nil {
		t.Fatalf("NewLoggerManager: %v", err)
	}
	l.console = &bytes.Buffer{}

	l.Info("lanes=%d", 4)
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "INFO: lanes=4") {
		t.Fatalf("log file missing entry: %q", data)
	}
}
