package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withFlags(t *testing.T, path string, n, maxTicks int) {
	t.Helper()
	oldPath, oldRuns, oldTicks := *configPath, *runs, *ticks
	t.Cleanup(func() { *configPath, *runs, *ticks = oldPath, oldRuns, oldTicks })
	*configPath, *runs, *ticks = path, n, maxTicks
}

func TestRunReturnsExitCodes(t *testing.T) {
	withFlags(t, filepath.Join(t.TempDir(), "missing.yaml"), 1, 10)
	assert.Equal(t, 2, run(), "unreadable config")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("simulation:\n  fixed_delta: -1\n"), 0o600))
	withFlags(t, bad, 1, 10)
	assert.Equal(t, 2, run(), "invalid config")

	withFlags(t, "", 2, 10)
	assert.Equal(t, 0, run())
}
