package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-ledger/internal/infrastructure/config"
)

func TestRunWithLogger_WritesExitErrorToLogFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "api.log")
	cfg := &config.Config{Log: config.LogConfig{Level: "info", Format: "json", Output: path}}

	boom := errors.New("snapshot save failed")
	err := runWithLogger(cfg, func(context.Context, *config.Config) error {
		return boom
	})
	assert.ErrorIs(t, err, boom)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "service exited with error")
	assert.Contains(t, string(data), "snapshot save failed")
}

func TestRunWithLogger_Success(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "api.log")
	cfg := &config.Config{Log: config.LogConfig{Level: "info", Format: "text", Output: path}}

	called := false
	require.NoError(t, runWithLogger(cfg, func(_ context.Context, got *config.Config) error {
		called = true
		assert.Same(t, cfg, got)
		return nil
	}))
	assert.True(t, called)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "service exited with error")
}
