package utils

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogInterceptor_PrefixesCompleteLines(t *testing.T) {
	var out bytes.Buffer
	li := NewLogInterceptor(&out)
	li.now = func() time.Time { return time.Date(2024, 4, 1, 10, 0, 0, 0, time.UTC) }

	n, err := li.Write([]byte("first\nsec"))
	require.NoError(t, err)
	assert.Equal(t, 9, n)
	assert.Equal(t, "line=1 time=2024-04-01T10:00:00Z first\n", out.String())

	_, err = li.Write([]byte("ond\n"))
	require.NoError(t, err)

	_, err = li.Write([]byte("tail"))
	require.NoError(t, err)
	require.NoError(t, li.Close())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "line=2 time=2024-04-01T10:00:00Z second", lines[1])
	assert.Equal(t, "line=3 time=2024-04-01T10:00:00Z tail", lines[2])
}

func TestMultiLogHandler_RespectsLevels(t *testing.T) {
	var debugOut, infoOut bytes.Buffer
	debugHandler := slog.NewTextHandler(&debugOut, &slog.HandlerOptions{Level: slog.LevelDebug})
	infoHandler := slog.NewTextHandler(&infoOut, &slog.HandlerOptions{Level: slog.LevelInfo})

	logger := slog.New(NewMultiLogHandler(debugHandler, infoHandler)).With("component", "test")
	logger.Debug("only debug")
	logger.Info("both")

	assert.Contains(t, debugOut.String(), "only debug")
	assert.Contains(t, debugOut.String(), "both")
	assert.NotContains(t, infoOut.String(), "only debug")
	assert.Contains(t, infoOut.String(), "component=test")

	h := NewMultiLogHandler(infoHandler)
	assert.False(t, h.Enabled(context.Background(), slog.LevelDebug))
	assert.True(t, h.Enabled(context.Background(), slog.LevelWarn))
}
