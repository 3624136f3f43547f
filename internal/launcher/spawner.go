package launcher

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Handle refers to a started child process.
type Handle interface {
	PID() int
	// Wait blocks until the child exits and returns its failure, if any.
	Wait() error
}

// Spawner starts child processes without waiting for them.
type Spawner interface {
	Spawn(ctx context.Context, spec LaunchSpec) (Handle, error)
}

// ExecSpawner starts children with os/exec. Nil streams default to the
// launcher's own stdin, stdout and stderr, which children inherit directly.
//
// A stream that is not an *os.File is copied by goroutines that os/exec only
// releases in Wait. Callers that set one must wait for every child, through
// Report.Wait or Handle.Wait, or they leak those goroutines and may lose the
// tail of the output.
type ExecSpawner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Spawn implements Spawner. The child is not tied to ctx: cancelling the
// launcher never kills a started child.
func (s *ExecSpawner) Spawn(_ context.Context, spec LaunchSpec) (Handle, error) {
	if len(spec.Argv) == 0 || spec.Argv[0] == "" {
		return nil, ErrEmptyArgv
	}

	cmd := exec.Command(spec.Argv[0], spec.Argv[1:]...)
	cmd.Stdin = orReader(s.Stdin, os.Stdin)
	cmd.Stdout = orWriter(s.Stdout, os.Stdout)
	cmd.Stderr = orWriter(s.Stderr, os.Stderr)
	cmd.Dir = spec.Dir
	if len(spec.Env) > 0 {
		cmd.Env = append(os.Environ(), spec.Env...)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start process %s: %w", spec.Argv[0], err)
	}
	return &execHandle{cmd: cmd}, nil
}

type execHandle struct {
	cmd *exec.Cmd
}

func (h *execHandle) PID() int {
	return h.cmd.Process.Pid
}

func (h *execHandle) Wait() error {
	return h.cmd.Wait()
}

func orReader(r io.Reader, fallback *os.File) io.Reader {
	if r != nil {
		return r
	}
	return fallback
}

func orWriter(w io.Writer, fallback *os.File) io.Writer {
	if w != nil {
		return w
	}
	return fallback
}
