package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_JSON(t *testing.T) {
	var buf bytes.Buffer
	Init("debug", "json", &buf)

	assert.True(t, L.Enabled(context.Background(), slog.LevelDebug))

	L.Info("probe finished", "asset", "A1")
	out := buf.String()
	assert.Contains(t, out, `"msg":"probe finished"`)
	assert.Contains(t, out, `"asset":"A1"`)
}

func TestInit_TextFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	Init("warn", "text", &buf)

	L.Info("hidden")
	L.Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.True(t, strings.Contains(out, "shown"))
}

func TestContextLogger(t *testing.T) {
	var buf bytes.Buffer
	Init("info", "text", &buf)

	custom := L.With("request_id", "12345")
	ctx := WithContext(context.Background(), custom)

	got := FromContext(ctx)
	require.NotNil(t, got)
	got.Info("hello")
	assert.Contains(t, buf.String(), "request_id=12345")

	assert.Same(t, L, FromContext(context.Background()))
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.expected {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
		}
	}
}
