package csvsource_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/couchcryptid/bike-sharing-dashboard/internal/adapter/csvsource"
	"github.com/couchcryptid/bike-sharing-dashboard/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const oneRow = "2011-01-01,0,1,1,0.24,0.81,0,3,13,16,6,Cold,Low,Low\n"

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+oneRow), 0o600))

	w, err := csvsource.NewWatcher(path, slog.Default(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	var latest atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(ds *domain.Dataset) { latest.Store(int64(ds.Len())) })
	}()

	require.NoError(t, os.WriteFile(path, []byte(header+oneRow+oneRow+oneRow), 0o600))

	assert.Eventually(t, func() bool { return latest.Load() == 3 }, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+oneRow), 0o600))

	w, err := csvsource.NewWatcher(path, slog.Default(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	var calls atomic.Int64
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "other.csv"), []byte(header+oneRow), 0o600)
	}()
	require.NoError(t, w.Run(ctx, func(*domain.Dataset) { calls.Add(1) }))

	assert.Zero(t, calls.Load())
}

func TestWatcher_ReportsBrokenRewrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main_data.csv")
	require.NoError(t, os.WriteFile(path, []byte(header+oneRow), 0o600))

	var failures atomic.Int64
	w, err := csvsource.NewWatcher(path, slog.Default(), func(error) { failures.Add(1) })
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx, func(*domain.Dataset) {}) }()

	require.NoError(t, os.WriteFile(path, []byte("dteday,hr\n2011-01-01,0\n"), 0o600))

	assert.Eventually(t, func() bool { return failures.Load() > 0 }, 5*time.Second, 20*time.Millisecond)
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	_, err := csvsource.NewWatcher(filepath.Join(t.TempDir(), "missing", "data.csv"), slog.Default(), nil)
	assert.Error(t, err)
}
