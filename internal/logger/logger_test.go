package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "kanaz.log")

	log, err := New(Options{Path: path})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("round resolved", zap.Int("card_id", 7))
	require.NoError(t, log.Sync())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 1, "debug must be filtered at info level")

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "round resolved", entry["msg"])
	assert.EqualValues(t, 7, entry["card_id"])
	assert.Contains(t, entry, "ts")
}

func TestNewDebugLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kanaz.log")

	log, err := New(Options{Path: path, Debug: true})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewConsole(t *testing.T) {
	log, err := New(Options{Console: true})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.DebugLevel))
}

func TestNewConsoleWriter(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Options{Console: true, Debug: true, Writer: &buf})
	require.NoError(t, err)

	log.Debug("round resolved", zap.Int("card", 3))
	assert.Contains(t, buf.String(), "round resolved")
	assert.Contains(t, buf.String(), `"card": 3`)
}

func TestNewNop(t *testing.T) {
	log, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))
}
