package main

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/config"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/observability"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DataPath:        filepath.Join("..", "..", "internal", "adapter", "csvsource", "testdata", "main_data.csv"),
		HTTPAddr:        "127.0.0.1:0",
		ShutdownTimeout: time.Second,
	}
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRun_MissingDataset(t *testing.T) {
	cfg := testConfig(t)
	cfg.DataPath = filepath.Join(t.TempDir(), "absent.csv")

	err := run(context.Background(), cfg, discard(), observability.NewMetricsForTesting())

	var loadErr *domain.DataLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, cfg.DataPath, loadErr.Path)
}

func TestRun_InvalidSchedule(t *testing.T) {
	cfg := testConfig(t)
	cfg.DataSchedule = "every tuesday"

	err := run(context.Background(), cfg, discard(), observability.NewMetricsForTesting())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "schedule dataset reloads")
}

func TestRun_ListenFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.HTTPAddr = "127.0.0.1:-1"

	done := make(chan error, 1)
	go func() { done <- run(context.Background(), cfg, discard(), observability.NewMetricsForTesting()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http server")
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after the listener failed")
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig(t), discard(), observability.NewMetricsForTesting()) }()

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
}
