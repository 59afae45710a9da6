package logging

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNewZapLogger_CreatesDirectory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "nested", "dir", "test.log")

	logger, err := NewZapLogger(Config{Path: logPath, Format: FormatJSON, Level: InfoLevel})
	require.NoError(t, err)
	defer logger.Close()

	assert.DirExists(t, filepath.Dir(logPath))
}

func TestZapLogger_JSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := NewZapLogger(Config{Path: logPath, Format: FormatJSON, Level: InfoLevel})
	require.NoError(t, err)

	ctx := context.Background()
	logger.Info(ctx, "test message", Fields{"key": "value", "count": 42})
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(content, &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "test message", entry["message"])
	assert.Equal(t, "value", entry["key"])
	assert.NotNil(t, entry["time"])
}

func TestZapLogger_ConsoleFormatFiltersLevel(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "test.log")

	logger, err := NewZapLogger(Config{Path: logPath, Format: FormatConsole, Level: WarnLevel})
	require.NoError(t, err)

	ctx := context.Background()
	logger.Info(ctx, "quiet message", nil)
	logger.Warn(ctx, "loud message", Fields{"path": "a.txt"})
	require.NoError(t, logger.Close())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)

	logContent := string(content)
	assert.NotContains(t, logContent, "quiet message", "INFO is filtered at WARN level")
	assert.Contains(t, logContent, "WARN")
	assert.Contains(t, logContent, "loud message")
}

func TestZapLogger_ErrorAndWithFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := WrapZap(zap.New(core)).WithFields(Fields{"run_id": "abc"})

	logger.Error(context.Background(), "delete failed", errors.New("busy"), Fields{"path": "x"})

	entries := logs.All()
	require.Len(t, entries, 1)

	fields := entries[0].ContextMap()
	assert.Equal(t, "abc", fields["run_id"])
	assert.Equal(t, "x", fields["path"])
	assert.Equal(t, "busy", fields["error"])
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", DebugLevel},
		{"DEBUG", DebugLevel},
		{"info", InfoLevel},
		{"warn", WarnLevel},
		{"warning", WarnLevel},
		{"error", ErrorLevel},
		{"unknown", InfoLevel},
		{"", InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "WARN", WarnLevel.String())
	assert.Equal(t, "UNKNOWN", Level(99).String())
}

func TestNullLogger(t *testing.T) {
	logger := OrNull(nil)
	ctx := context.Background()

	logger.Debug(ctx, "debug", nil)
	logger.Info(ctx, "info", Fields{"k": "v"})
	logger.Warn(ctx, "warn", nil)
	logger.Error(ctx, "error", errors.New("x"), nil)

	assert.NotNil(t, logger.WithFields(Fields{"a": 1}))
	assert.NoError(t, logger.Close())
}
