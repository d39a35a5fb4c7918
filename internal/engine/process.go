package engine

import (
	"context"
	"fmt"
	"io"
	"os/exec"

	"github.com/charmbracelet/log"
)

// Process is a spawned engine child wired to a Conn on its stdin and
// exposing its stdout for Serve.
type Process struct {
	cmd    *exec.Cmd
	conn   *Conn
	stdout io.ReadCloser
}

// StartProcess launches the engine binary. The child's stderr is
// inherited so engine panics stay visible.
func StartProcess(ctx context.Context, path string, args []string, logger *log.Logger) (*Process, error) {
	cmd := exec.CommandContext(ctx, path, args...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("engine: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("engine: stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("engine: start %s: %w", path, err)
	}

	return &Process{
		cmd:    cmd,
		conn:   NewConn(stdin, WithLogger(logger)),
		stdout: stdout,
	}, nil
}

// Conn returns the command connection to the engine.
func (p *Process) Conn() *Conn {
	return p.conn
}

// Stdout returns the engine's notification stream for Serve.
func (p *Process) Stdout() io.Reader {
	return p.stdout
}

// Stop terminates the engine process and reaps it.
func (p *Process) Stop() error {
	if p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
	}
	return p.cmd.Wait()
}
