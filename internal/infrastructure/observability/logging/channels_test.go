package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(t *testing.T) (*ChanneledLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	cfg := DefaultLoggerConfig()
	cfg.Output = buf
	logger, err := NewChanneledLogger(cfg)
	require.NoError(t, err)
	return logger, buf
}

func TestChannelAttribute(t *testing.T) {
	logger, buf := newTestLogger(t)
	logger.Editor().Info("session opened", "sessionId", "s1")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "editor", line["channel"])
	assert.Equal(t, "s1", line["sessionId"])
}

func TestSetChannelLevel(t *testing.T) {
	logger, buf := newTestLogger(t)

	logger.Theme().Debug("hidden")
	assert.Empty(t, buf.String())

	require.NoError(t, logger.SetChannelLevel(ChannelTheme, slog.LevelDebug))
	buf.Reset()
	logger.Theme().Debug("visible")
	assert.Contains(t, buf.String(), "visible")
	assert.Equal(t, "DEBUG", logger.GetChannelLevels()["theme"])
	assert.Equal(t, "INFO", logger.GetChannelLevels()["builder"])

	assert.Error(t, logger.SetChannelLevel(Channel("nope"), slog.LevelDebug))
}

func TestFileOutput(t *testing.T) {
	cfg := DefaultLoggerConfig()
	cfg.OutputToConsole = false
	cfg.OutputToFile = true
	cfg.LogDirectory = t.TempDir()
	cfg.JSONFormat = false

	logger, err := NewChanneledLogger(cfg)
	require.NoError(t, err)
	logger.Database().Info("migrated")
	require.NoError(t, logger.Close())
	assert.Len(t, logger.files, 0)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("trace"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelError, ParseLevel("fatal"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("whatever"))
}

func TestSanitizeQuery(t *testing.T) {
	assert.Equal(t, "SELECT * FROM pages", sanitizeQuery("SELECT *\n\tFROM   pages"))
	assert.True(t, strings.HasSuffix(sanitizeQuery(strings.Repeat("x", 600)), "..."))
}
