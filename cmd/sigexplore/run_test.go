package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-sigexplore/internal/logging"
	"github.com/cwbudde/algo-sigexplore/internal/metrics"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	err := run(t.Context(), args, &stdout, &stderr)
	return stdout.String(), err
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "params.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestRunDefaultsTable(t *testing.T) {
	out, err := runCLI(t)
	require.NoError(t, err)

	require.Contains(t, out, "Filter path: disabled")
	require.Contains(t, out, "Noise cache: hits=0 misses=1")
	require.Contains(t, out, "pure")
	require.Regexp(t, `filtered\s+0/1000`, out)
	require.Contains(t, out, "Residual vs pure (displayed)")
	require.NotContains(t, out, "Residual vs pure (filtered)")
}

func TestRunCSV(t *testing.T) {
	path := writeConfig(t, "toggles:\n  noise: false\n  filter: true\n  custom: true\n")

	out, err := runCLI(t, "-config", path, "-format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1001)
	require.Equal(t, []string{"t", "pure", "displayed", "filtered"}, records[0])
	require.Equal(t, []string{"0", "0", "0", "0"}, records[1])
	require.Equal(t, records[500][1], records[500][2])
}

func TestRunCSVHiddenFilterIsEmpty(t *testing.T) {
	out, err := runCLI(t, "-format", "csv")
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	for _, rec := range records[1:] {
		require.Empty(t, rec[3])
	}
}

func TestRunSpectrum(t *testing.T) {
	path := writeConfig(t, "toggles:\n  noise: false\n")

	out, err := runCLI(t, "-config", path, "-spectrum", "pure")
	require.NoError(t, err)
	require.Contains(t, out, "Spectrum (pure): peak")
	require.Contains(t, out, "1024-point FFT")

	out, err = runCLI(t, "-config", path, "-spectrum", "pure", "-format", "csv")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1024/2+2)
	require.Equal(t, []string{"frequency", "amplitude"}, records[0])

	_, err = runCLI(t, "-config", path, "-spectrum", "filtered")
	require.Error(t, err, "hidden view has no spectrum")
}

func TestRunOutFile(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "views.csv")

	stdout, err := runCLI(t, "-format", "csv", "-out", outPath)
	require.NoError(t, err)
	require.Empty(t, stdout)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "t,pure,displayed,filtered\n"))
}

func TestRunRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"unknown format", []string{"-format", "xml"}},
		{"unknown view", []string{"-spectrum", "noise"}},
		{"watch without config", []string{"-watch"}},
		{"stray argument", []string{"extra"}},
		{"bad log level", []string{"-log-level", "chatty"}},
		{"missing config", []string{"-config", "/nonexistent/params.yaml"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runCLI(t, tt.args...)
			require.Error(t, err)
		})
	}
}

func TestRunReportsCoreErrors(t *testing.T) {
	path := writeConfig(t, "noise:\n  variance: -1\n")
	_, err := runCLI(t, "-config", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "noise variance")

	path = writeConfig(t, "toggles:\n  filter: true\ntuning:\n  cutoff_mult: 50\n")
	_, err = runCLI(t, "-config", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Nyquist")
}

func TestRunWatchStopsOnCancel(t *testing.T) {
	path := writeConfig(t, "toggles:\n  noise: false\n")
	outPath := filepath.Join(t.TempDir(), "out.txt")

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() {
		done <- run(ctx, []string{"-config", path, "-watch", "-out", outPath}, io.Discard, io.Discard)
	}()

	require.Eventually(t, func() bool {
		data, err := os.ReadFile(outPath)
		return err == nil && bytes.Contains(data, []byte("Filter path: disabled"))
	}, 5e9, 1e7)

	cancel()
	require.NoError(t, <-done)
}

func TestServeMetrics(t *testing.T) {
	c := metrics.New()
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	// A cancelled context shuts the server down cleanly.
	err := serveMetrics(ctx, "127.0.0.1:0", c.Handler(), logging.Discard())
	require.NoError(t, err)

	srv := httptest.NewServer(c.Handler())
	defer srv.Close()
	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
