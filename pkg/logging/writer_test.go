package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterLogger(t *testing.T) {
	ctx := context.Background()

	t.Run("FiltersBelowLevel", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWriterLogger(&buf, FormatText, WarnLevel)

		logger.Debug(ctx, "debug message", nil)
		logger.Info(ctx, "info message", nil)
		logger.Warn(ctx, "warn message", nil)
		logger.Error(ctx, "error message", errors.New("bad range"), nil)

		out := buf.String()
		assert.NotContains(t, out, "debug message")
		assert.NotContains(t, out, "info message")
		assert.Contains(t, out, "[WARN] warn message")
		assert.Contains(t, out, `error="bad range"`)
	})

	t.Run("DerivedLoggerSharesWriter", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWriterLogger(&buf, FormatText, DebugLevel)
		derived := logger.WithFields(Fields{"run_id": "abc"})

		derived.Info(ctx, "first", nil)
		logger.Info(ctx, "second", nil)

		lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "run_id=abc")
		assert.NotContains(t, lines[1], "run_id=abc")
	})

	t.Run("JSON", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewWriterLogger(&buf, FormatJSON, InfoLevel)
		logger.Info(ctx, "comparing files", Fields{"comparator": "csv"})

		assert.Contains(t, buf.String(), `"comparator":"csv"`)
		assert.Contains(t, buf.String(), `"message":"comparing files"`)
		require.NoError(t, logger.Close())
	})
}
