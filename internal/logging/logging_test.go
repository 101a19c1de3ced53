package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"":        slog.LevelInfo,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		" error ": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}

	_, err := ParseLevel("verbose")
	require.Error(t, err)
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	logger, closer, err := New(Config{Level: "info"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	logger.Debug("hidden")
	logger.Info("recomputed", "path", "butterworth")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "msg=recomputed")
	require.Contains(t, out, "path=butterworth")
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, _, err := New(Config{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.Debug("noise regenerated", "variance", 0.1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	require.Equal(t, "noise regenerated", rec["msg"])
	require.Equal(t, 0.1, rec["variance"])
}

func TestNewRejectsUnknown(t *testing.T) {
	_, _, err := New(Config{Format: "xml"}, &bytes.Buffer{})
	require.Error(t, err)
	_, _, err = New(Config{Level: "loud"}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestNewWithFileFansOut(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "sigexplore.log")

	logger, closer, err := New(Config{Level: "info", File: path, MaxSize: 1}, &buf)
	require.NoError(t, err)

	logger.With("component", "cli").Info("started")
	require.NoError(t, closer.Close())

	require.Contains(t, buf.String(), "component=cli")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	line := strings.TrimSpace(string(data))
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &rec))
	require.Equal(t, "started", rec["msg"])
	require.Equal(t, "cli", rec["component"])
}

func TestMultiHandlerRespectsLevels(t *testing.T) {
	var low, high bytes.Buffer
	h := newMultiHandler(
		slog.NewTextHandler(&low, &slog.HandlerOptions{Level: slog.LevelDebug}),
		slog.NewTextHandler(&high, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(h).WithGroup("g")

	logger.Debug("detail", "k", 1)

	require.Contains(t, low.String(), "g.k=1")
	require.Empty(t, high.String())
}

func TestDiscard(t *testing.T) {
	require.False(t, Discard().Enabled(t.Context(), slog.LevelError))
}
