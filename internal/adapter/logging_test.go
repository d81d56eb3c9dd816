package adapter

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"DEBUG":   slog.LevelDebug,
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"WARNING": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLogLevel(in), in)
	}
}

func TestNewLogger_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "WARN")

	logger.Info("hidden")
	logger.Warn("shown", "page", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "shown", record["msg"])
	assert.EqualValues(t, 3, record["page"])
}

func TestWithSession(t *testing.T) {
	var buf bytes.Buffer
	logger, id := WithSession(NewLogger(&buf, "INFO"))
	require.NotEmpty(t, id)

	logger.Info("hello")

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, id, record["session"])
}

func TestSetupLogger_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gallery.log")

	logger, closer, err := SetupLogger(&LoggingConfig{File: path, Level: "DEBUG"})
	require.NoError(t, err)
	logger.Debug("written")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"written"`)
}

func TestNullLogger(t *testing.T) {
	assert.NotPanics(t, func() { NullLogger().Error("discarded") })
}
