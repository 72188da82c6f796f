package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/discfolio/logging"
)

func TestConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "console", Output: &buf})
	require.NoError(t, err)

	component := logging.NewComponentLogger(logger, "content")
	component.Info("payload fetched", logging.Int("videos", 6), logging.String("source", "remote data"))
	component.Debug("hidden")

	line := buf.String()
	assert.Contains(t, line, "INFO  content: payload fetched")
	assert.Contains(t, line, "videos=6")
	assert.Contains(t, line, `source="remote data"`)
	assert.NotContains(t, line, "hidden")
	assert.Equal(t, 1, strings.Count(line, "\n"))
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "json", Output: &buf})
	require.NoError(t, err)

	logging.NewComponentLogger(logger, "contact").Debug("submitted", logging.Error(errors.New("boom")))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "contact", entry["component"])
	assert.Equal(t, "submitted", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Contains(t, entry, "ts")
}

func TestUnsupportedFormat(t *testing.T) {
	_, err := logging.New(logging.Options{Format: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "xml")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, logging.ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, logging.ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, logging.ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, logging.ParseLevel("nonsense"))
}

func TestWarnWithContextFillsDefaults(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Format: "console", Output: &buf})
	require.NoError(t, err)

	logging.WarnWithContext(logger, "content fetch failed", "content_fallback",
		logging.String(logging.FieldErrorHint, "check content.url"))

	line := buf.String()
	assert.Contains(t, line, "event_type=content_fallback")
	assert.Contains(t, line, "error_hint=\"check content.url\"")
	assert.Contains(t, line, "impact=\"fallback served\"")
}

func TestNopLogger(t *testing.T) {
	logger := logging.NewComponentLogger(nil, "x")
	assert.NotPanics(t, func() { logger.Error("ignored") })
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
