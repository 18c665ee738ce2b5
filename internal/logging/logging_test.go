package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "warn", FormatJSON)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Info().Msg("hidden")
	sl := Subsystem(l, "resolve")
	sl.Warn().Str("key", "Up").Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1: %q", len(lines), buf.String())
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if entry["subsystem"] != "resolve" || entry["key"] != "Up" || entry["message"] != "shown" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNewConsole(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(&buf, "", FormatConsole)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	l.Debug().Msg("hidden")
	l.Info().Msg("hello")
	if out := buf.String(); !strings.Contains(out, "hello") || strings.Contains(out, "hidden") {
		t.Errorf("output = %q", out)
	}
}

func TestNewErrors(t *testing.T) {
	var buf bytes.Buffer
	if _, err := New(&buf, "loud", FormatJSON); err == nil {
		t.Error("New() with a bad level should fail")
	}
	if _, err := New(&buf, "info", "xml"); err == nil {
		t.Error("New() with a bad format should fail")
	}
}
