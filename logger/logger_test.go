package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("Should write info messages with key values", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: InfoLevel, Output: &buf})

		l.Info("schema already exists, creation skipped", "schema", "analytics")

		out := buf.String()
		assert.Contains(t, out, "schema already exists, creation skipped")
		assert.Contains(t, out, "schema=analytics")
	})

	t.Run("Should drop messages below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: WarnLevel, Output: &buf})

		l.Info("hidden")
		l.Debug("hidden too")

		assert.Empty(t, buf.String())
	})

	t.Run("Should emit json when asked to", func(t *testing.T) {
		var buf bytes.Buffer
		l := NewLogger(&Config{Level: DebugLevel, Output: &buf, JSON: true})

		l.Warn("discarding uncommitted statements")

		line := strings.TrimSpace(buf.String())
		require.True(t, strings.HasPrefix(line, "{"))
		assert.Contains(t, line, `"msg":"discarding uncommitted statements"`)
	})

	t.Run("Should fall back to defaults for a nil config", func(t *testing.T) {
		assert.NotNil(t, NewLogger(nil))
	})
}

func TestLogLevel_ToCharmlogLevel(t *testing.T) {
	testCases := []struct {
		level    LogLevel
		expected int
	}{
		{DebugLevel, -4},
		{InfoLevel, 0},
		{WarnLevel, 4},
		{ErrorLevel, 8},
		{DisabledLevel, 1000},
		{LogLevel("unknown"), 0},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.expected, int(tc.level.ToCharmlogLevel()), "level %s", tc.level)
	}
}
