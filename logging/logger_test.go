package logging

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLoggerIsSilent(t *testing.T) {
	l := Logger()
	require.NotNil(t, l)
	assert.False(t, l.Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	rec := NewRecordingHandler(slog.LevelInfo)
	SetLogger(slog.New(rec))
	defer SetLogger(nil)

	Logger().Info("hello", "key", 1)
	Logger().Debug("filtered")

	entries := rec.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, "hello", entries[0].Message)
	assert.Equal(t, "1", entries[0].Attrs["key"])

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestOrDefault(t *testing.T) {
	custom := slog.New(NewRecordingHandler(nil))
	assert.Same(t, custom, OrDefault(custom))
	assert.Same(t, Logger(), OrDefault(nil))
}

func TestRecordingHandler(t *testing.T) {
	rec := NewRecordingHandler(nil)
	logger := slog.New(rec).With("element", "rect").WithGroup("paint")

	logger.Warn("unsupported value", "attribute", "fill")
	logger.Debug("ignoring color")

	assert.Equal(t, 1, rec.Count(slog.LevelWarn))
	assert.Equal(t, 1, rec.Count(slog.LevelDebug))
	assert.True(t, rec.Contains("unsupported"))
	assert.False(t, rec.Contains("missing"))

	entries := rec.Entries()
	assert.Equal(t, "rect", entries[0].Attrs["element"])
	assert.Equal(t, "fill", entries[0].Attrs["paint.attribute"])

	rec.Reset()
	assert.Empty(t, rec.Entries())
}
