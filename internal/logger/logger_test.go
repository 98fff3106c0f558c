package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("whatever"))
}

func TestNew_Formats(t *testing.T) {
	var buf bytes.Buffer

	newWithWriter(&buf, "info", "json").Info("ok", "k", 1)
	assert.Contains(t, buf.String(), `"service":"dogvet-api"`)

	buf.Reset()
	newWithWriter(&buf, "info", "text").Info("ok")
	assert.Contains(t, buf.String(), "service=dogvet-api")

	buf.Reset()
	newWithWriter(&buf, "warn", "json").Info("hidden")
	assert.Empty(t, buf.String())
}
