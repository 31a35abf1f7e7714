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

	"github.com/abhisek/mathaxy/internal/config"
)

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("DEBUG")
	require.NoError(t, err)
	assert.Equal(t, zapcore.DebugLevel, lvl)

	_, err = ParseLevel("chatty")
	assert.Error(t, err)
}

func TestNew_FileCoreWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "mathaxy.log")
	log, err := New(config.LogConfig{File: path, Level: "info", MaxSizeMB: 1}, Options{})
	require.NoError(t, err)

	log.Info("generated", zap.Int("count", 10))
	log.Debug("hidden")
	_ = log.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "generated", entry["msg"])
	assert.Equal(t, "INFO", entry["level"])
	assert.EqualValues(t, 10, entry["count"])
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(config.LogConfig{Level: "debug"}, Options{Console: true, ConsoleWriter: &buf})
	require.NoError(t, err)

	log.Debug("fallback", zap.Int("carries", 3))
	_ = log.Sync()
	assert.Contains(t, buf.String(), "fallback")
	assert.Contains(t, buf.String(), "carries")
}

func TestNew_NoCores(t *testing.T) {
	log, err := New(config.LogConfig{Level: "info"}, Options{})
	require.NoError(t, err)
	assert.NotNil(t, log)
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(config.LogConfig{Level: "loud"}, Options{})
	assert.Error(t, err)
}
