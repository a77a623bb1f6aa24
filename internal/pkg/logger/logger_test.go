package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(INFO)
	})
	return &buf
}

func TestLogEmitsJSONWithFields(t *testing.T) {
	buf := captureOutput(t)

	Info("email sent", "to", "alice@example.com", "frequency", "daily")

	var entry map[string]string
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["level"] != "INFO" {
		t.Errorf("level = %q, want INFO", entry["level"])
	}
	if entry["msg"] != "email sent" {
		t.Errorf("msg = %q", entry["msg"])
	}
	if entry["frequency"] != "daily" {
		t.Errorf("frequency = %q", entry["frequency"])
	}
	// Recipient address must be redacted on its way out.
	if entry["to"] != "al***@example.com" {
		t.Errorf("to = %q, want redacted address", entry["to"])
	}
}

func TestLogLevelFiltering(t *testing.T) {
	buf := captureOutput(t)
	SetLevel(WARN)

	Debug("noise")
	Info("more noise")
	Warn("kept")

	out := buf.String()
	if strings.Contains(out, "noise") {
		t.Errorf("sub-WARN entries were emitted: %q", out)
	}
	if !strings.Contains(out, "kept") {
		t.Errorf("WARN entry missing: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{"warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{"", INFO},
		{"bogus", INFO},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
