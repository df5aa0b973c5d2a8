package log

import (
	"bytes"
	"strings"
	"testing"
)

// TestRedactsSensitiveKeys tests that secret-named attributes are masked.
func TestRedactsSensitiveKeys(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	logger.Info("login attempt",
		"email", "ana@example.com",
		"password", "hunter2",
		"session_token", "abc",
	)

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Error("password value leaked into log output")
	}
	if strings.Contains(out, `session_token=abc`) {
		t.Error("token value leaked into log output")
	}
	if !strings.Contains(out, "ana@example.com") {
		t.Error("non-sensitive value was masked")
	}
	if !strings.Contains(out, MaskValue) {
		t.Error("mask marker missing from output")
	}
}

// TestRedactsSensitiveValues tests value-pattern masking for keys that do
// not look secret themselves.
func TestRedactsSensitiveValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "jwt", value: "eyJhbGciOiJIUzI1NiJ9.eyJzdWIiOiIxIn0.sig"},
		{name: "bearer", value: "Bearer abcdef123456"},
		{name: "session token", value: "fake-jwt-token-12345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewLogger(&buf, false)
			logger.Info("request", "header", tt.value)

			if strings.Contains(buf.String(), tt.value) {
				t.Errorf("value %q leaked into log output", tt.value)
			}
		})
	}
}

// TestRedactsGroupedAttrs tests masking inside attribute groups.
func TestRedactsGroupedAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	logger.With("request", "r-1").WithGroup("auth").Info("check",
		"password", "hunter2",
		"user", "ana",
	)

	out := buf.String()
	if strings.Contains(out, "hunter2") {
		t.Error("grouped password leaked into log output")
	}
	if !strings.Contains(out, "ana") {
		t.Error("grouped non-sensitive value was masked")
	}
}

// TestVerboseEnablesDebug tests the verbose level switch.
func TestVerboseEnablesDebug(t *testing.T) {
	t.Parallel()

	var quiet, verbose bytes.Buffer
	NewLogger(&quiet, false).Debug("probe")
	NewLogger(&verbose, true).Debug("probe")

	if quiet.Len() != 0 {
		t.Error("debug record emitted without verbose mode")
	}
	if verbose.Len() == 0 {
		t.Error("debug record suppressed in verbose mode")
	}
}

// TestJSONLoggerRedacts tests that the JSON variant masks too.
func TestJSONLoggerRedacts(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	NewJSONLogger(&buf, false).Info("login", "password", "hunter2")

	if strings.Contains(buf.String(), "hunter2") {
		t.Error("password leaked into JSON log output")
	}
}
