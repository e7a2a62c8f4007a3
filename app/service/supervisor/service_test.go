package supervisor

import (
	"companion/app/config"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChildRunsAndExits(t *testing.T) {
	child, err := NewChild(context.Background(), []string{"/bin/sh", "-c", "echo hello; exit 0"})
	require.NoError(t, err)

	require.NoError(t, child.Start())
	require.NoError(t, child.Wait())
	assert.Equal(t, 0, child.ExitCode())
}

func TestChildEmptyCommand(t *testing.T) {
	_, err := NewChild(context.Background(), nil)
	require.Error(t, err)
}

func TestChildStopKillsProcess(t *testing.T) {
	child, err := NewChild(context.Background(), []string{"/bin/sh", "-c", "sleep 60"})
	require.NoError(t, err)
	require.NoError(t, child.Start())

	require.NoError(t, child.Stop())

	err = child.Wait()
	require.Error(t, err)
}

func TestChildLoopRestartsUntilCancelled(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "runs")

	svc := &Service{
		cfg: &config.Config{
			Supervisor: config.Supervisor{
				Command: []string{"/bin/sh", "-c", "echo run >> " + marker + "; exit 1"},
			},
		},
		restartDelay: 20 * time.Millisecond,
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	err := svc.runChildLoop(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	data, err := os.ReadFile(marker)
	require.NoError(t, err)

	runs := strings.Count(string(data), "run")
	assert.GreaterOrEqual(t, runs, 3, "child should have been relaunched repeatedly")
}

func TestRunStopsBothUnitsOnCancel(t *testing.T) {
	svc := &Service{
		cfg: &config.Config{
			Supervisor: config.Supervisor{
				Port:    0,
				Command: []string{"/bin/sh", "-c", "sleep 60"},
			},
		},
		restartDelay: 20 * time.Millisecond,
	}

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- svc.Run(ctx)
	}()

	time.Sleep(200 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop after cancellation")
	}
}
