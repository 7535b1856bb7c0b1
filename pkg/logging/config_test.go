package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/pkgsync/pkg/logging"
)

func TestNewLoggerFromConfig(t *testing.T) {
	originalLevel := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(originalLevel)

	t.Run("DefaultConfig returns sensible defaults", func(t *testing.T) {
		cfg := logging.DefaultConfig()
		assert.Equal(t, "info", cfg.Level)
		assert.Equal(t, "auto", cfg.Format)
		assert.Equal(t, "stderr", cfg.Output)
		assert.False(t, cfg.AddCaller)
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		logger := logging.NewLoggerFromConfig(nil)
		assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
	})

	t.Run("levels", func(t *testing.T) {
		tests := []struct {
			level string
			want  zerolog.Level
		}{
			{"trace", zerolog.TraceLevel},
			{"debug", zerolog.DebugLevel},
			{"warning", zerolog.WarnLevel},
			{"error", zerolog.ErrorLevel},
			{"off", zerolog.Disabled},
			{"bogus", zerolog.InfoLevel},
		}
		for _, tt := range tests {
			logger := logging.NewLoggerFromConfig(&logging.Config{Level: tt.level, Format: "json", Output: "discard"})
			assert.Equal(t, tt.want, logger.GetLevel(), tt.level)
		}
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pkgsync.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{
			Level:  "info",
			Format: "json",
			Output: path,
		})
		logger.Info().Str("source", "crates").Msg("to file")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"source":"crates"`)
		assert.Contains(t, string(data), "to file")
	})

	t.Run("caller added at debug", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "debug.log")
		logger := logging.NewLoggerFromConfig(&logging.Config{Level: "debug", Format: "console", Output: path, NoColor: true, TimeFormat: "rfc3339"})
		logger.Debug().Msg("traced")

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), "config_test.go")
	})
}
