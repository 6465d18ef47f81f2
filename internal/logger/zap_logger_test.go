package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLoggerFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Info("analyzer", "similarity computed", map[string]interface{}{"model": "all-MiniLM-L6-v2"})
	l.Warn("session", "empty input", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	assert.Equal(t, "similarity computed", entries[0].Message)
	assert.Equal(t, "analyzer", entries[0].ContextMap()["module"])
	assert.Equal(t, map[string]interface{}{"model": "all-MiniLM-L6-v2"}, entries[0].ContextMap()["details"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, map[string]interface{}{}, entries[1].ContextMap()["details"])
}

func TestZapLoggerErrorRef(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewFromZap(zap.New(core))

	l.Error("embedding", "load failed", map[string]interface{}{"error": "boom"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0].ContextMap()["error_ref"])
}

func TestFileLoggerWritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	l := NewFileLogger(path, true)

	l.Debug("test", "dropped in production", nil)
	l.Info("test", "kept", map[string]interface{}{"n": 1})
	require.NoError(t, l.Sync())
	assert.Equal(t, path, l.FilePath())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var lines []map[string]interface{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		lines = append(lines, entry)
	}
	require.Len(t, lines, 1)
	assert.Equal(t, "kept", lines[0]["message"])
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "test", lines[0]["module"])
	assert.Contains(t, lines[0], "timestamp")
}
