package infrastructure

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proctorcal/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLogLevel(tt.level))
		})
	}
}

func TestCreateLoggerConsole(t *testing.T) {
	logger, err := createLogger(config.LoggingConfig{
		Level:  "info",
		Format: "json",
		Output: "console",
	}, "")
	require.NoError(t, err)
	assert.NotNil(t, logger)
}

func TestCreateLoggerFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "run.log")

	logger, err := createLogger(config.LoggingConfig{
		Level:  "debug",
		Format: "text",
		Output: "file",
	}, path)
	require.NoError(t, err)
	t.Cleanup(CloseLogger)

	logger.Info("pipeline started", slog.String("schedule", "winter.xlsx"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pipeline started")
	assert.Contains(t, string(data), "winter.xlsx")
}
