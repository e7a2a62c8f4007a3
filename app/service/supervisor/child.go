package supervisor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"sync"
)

// Child is a supervised process handle with explicit spawn/wait/kill
// operations. Its output is forwarded to the supervisor's log.
type Child struct {
	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr io.ReadCloser
	mu     sync.Mutex
}

func NewChild(ctx context.Context, command []string) (*Child, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("empty child command")
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout pipe: %w", err)
	}

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create stderr pipe: %w", err)
	}

	return &Child{
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
	}, nil
}

func (c *Child) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.cmd.Start(); err != nil {
		return fmt.Errorf("failed to start child: %w", err)
	}

	go c.forward("stdout", c.stdout)
	go c.forward("stderr", c.stderr)

	return nil
}

func (c *Child) Wait() error {
	return c.cmd.Wait()
}

// ExitCode reports the child's exit code, or -1 if it has not exited.
func (c *Child) ExitCode() int {
	if c.cmd.ProcessState == nil {
		return -1
	}

	return c.cmd.ProcessState.ExitCode()
}

func (c *Child) Stop() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cmd.Process != nil {
		return c.cmd.Process.Kill()
	}

	return nil
}

func (c *Child) forward(stream string, r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		slog.Debug("child", stream, scanner.Text())
	}
}
