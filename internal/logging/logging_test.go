package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{in: "debug", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: "warn", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "error", want: slog.LevelError},
		{in: "ERROR", want: slog.LevelError},
		{in: "bogus", want: slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseLevel(tt.in), "level %q", tt.in)
	}
}

func TestRotatingWriterRotates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pubtopics.log")

	// 1 MB max; write two ~0.6 MB chunks to force one rotation.
	w, err := NewRotatingWriter(path, 1, 3)
	require.NoError(t, err)
	defer func() { _ = w.Close() }()

	chunk := make([]byte, 600*1024)
	for i := range chunk {
		chunk[i] = 'x'
	}
	_, err = w.Write(chunk)
	require.NoError(t, err)
	_, err = w.Write(chunk)
	require.NoError(t, err)

	_, err = os.Stat(path + ".1")
	assert.NoError(t, err, "rotated file should exist")
}

func TestHeartbeatRespectsInterval(t *testing.T) {
	clock := time.Date(2019, 3, 14, 12, 0, 0, 0, time.UTC)
	now := func() time.Time { return clock }
	h := newHeartbeat(5*time.Second, now)

	assert.False(t, h.Ready(), "no time has passed")

	clock = clock.Add(3 * time.Second)
	assert.False(t, h.Ready(), "interval not yet elapsed")

	clock = clock.Add(3 * time.Second)
	assert.True(t, h.Ready(), "6s since start")
	assert.False(t, h.Ready(), "emission resets the timer")

	clock = clock.Add(5 * time.Second)
	assert.True(t, h.Ready())
}

func TestNilHeartbeatNeverReady(t *testing.T) {
	var h *Heartbeat
	assert.False(t, h.Ready())
}
