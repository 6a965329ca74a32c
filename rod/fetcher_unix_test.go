//go:build integration && !windows

package rod_test

import (
	"syscall"
	"testing"
	"time"

	"github.com/fwojciec/pagesnap/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Close_KillsBrowser(t *testing.T) {
	t.Parallel()

	fetcher, err := rod.NewFetcher(rod.WithWaitStrategy(rod.WaitTime, ""))
	require.NoError(t, err)

	pid := fetcher.LauncherPID()
	require.NotZero(t, pid)

	// Signal 0 probes for the process without touching it.
	require.NoError(t, syscall.Kill(pid, syscall.Signal(0)), "browser should run before Close")

	require.NoError(t, fetcher.Close())
	assert.Zero(t, fetcher.LauncherPID())

	time.Sleep(100 * time.Millisecond)

	assert.Error(t, syscall.Kill(pid, syscall.Signal(0)), "browser should exit after Close")
}
