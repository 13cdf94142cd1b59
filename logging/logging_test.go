package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/0xalexb/hjarta-menv/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Level: "INFO", Format: logging.FormatJSON}, &buf)

	logger.Info("env loaded", slog.Int("keys", 3), slog.String("file", "/srv/.menv"))

	var logEntry map[string]any

	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err, "output should be valid JSON")
	assert.Equal(t, "env loaded", logEntry["msg"])
	assert.InDelta(t, 3, logEntry["keys"], 0)
	assert.Equal(t, "/srv/.menv", logEntry["file"])
	assert.Equal(t, "INFO", logEntry["level"])
}

func TestNewLogger_TextOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Format: "TEXT"}, &buf)

	logger.Info("override", slog.String("key", "PORT"))

	assert.Contains(t, buf.String(), "level=INFO")
	assert.Contains(t, buf.String(), "msg=override")
	assert.Contains(t, buf.String(), "key=PORT")
}

func TestNewLogger_UnknownFormatFallsBackToJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	logger := logging.NewLogger(logging.LoggerConfig{Format: "xml"}, &buf)

	logger.Info("test message")

	assert.True(t, json.Valid(buf.Bytes()))
}

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		configLevel   string
		logLevel      slog.Level
		expectedLevel string
	}{
		{name: "debug logs debug", configLevel: "DEBUG", logLevel: slog.LevelDebug, expectedLevel: "DEBUG"},
		{name: "lowercase is accepted", configLevel: "debug", logLevel: slog.LevelDebug, expectedLevel: "DEBUG"},
		{name: "warning is warn", configLevel: "WARNING", logLevel: slog.LevelWarn, expectedLevel: "WARN"},
		{name: "error logs error", configLevel: "ERROR", logLevel: slog.LevelError, expectedLevel: "ERROR"},
		{name: "info drops debug", configLevel: "INFO", logLevel: slog.LevelDebug},
		{name: "error drops info", configLevel: "ERROR", logLevel: slog.LevelInfo},
		{name: "empty defaults to info", configLevel: "", logLevel: slog.LevelInfo, expectedLevel: "INFO"},
		{name: "invalid defaults to info", configLevel: "LOUD", logLevel: slog.LevelDebug},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer

			logger := logging.NewLogger(logging.LoggerConfig{Level: testCase.configLevel}, &buf)

			logger.Log(context.Background(), testCase.logLevel, "test message")

			if testCase.expectedLevel == "" {
				require.Empty(t, buf.String(), "log should not be written")

				return
			}

			var logEntry map[string]any

			err := json.Unmarshal(buf.Bytes(), &logEntry)
			require.NoError(t, err, "output should be valid JSON")
			assert.Equal(t, testCase.expectedLevel, logEntry["level"])
		})
	}
}
