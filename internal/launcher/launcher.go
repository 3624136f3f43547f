package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/specialistvlad/simlaunch/internal/profile"
)

// Launcher runs profiles. The zero value is not usable; use New.
type Launcher struct {
	spawner  Spawner
	observer Observer
}

// Option configures a Launcher.
type Option func(*Launcher)

// WithSpawner replaces the default ExecSpawner.
func WithSpawner(s Spawner) Option {
	return func(l *Launcher) { l.spawner = s }
}

// WithObserver installs o. Without it the launcher is silent.
func WithObserver(o Observer) Option {
	return func(l *Launcher) { l.observer = o }
}

// New creates a Launcher that starts real processes and reports nothing.
func New(opts ...Option) *Launcher {
	l := &Launcher{
		spawner:  &ExecSpawner{},
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run performs one pass over the input file of p: every line with exactly
// p.Args tokens is started as [p.Program] + tokens, in file order. Run does
// not wait for any child.
//
// An input file that cannot be opened yields an error wrapping
// ErrConfigUnreadable. Spawn failures never produce an error; they are counted
// in the Report and passed to the Observer, as are skipped lines, including
// overlong ones. Only an I/O error part way through the file stops the pass;
// children started before it keep running.
func (l *Launcher) Run(ctx context.Context, p *profile.Profile) (*Report, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	file, err := os.Open(p.Input)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConfigUnreadable, p.Input, err)
	}
	defer file.Close()

	report := &Report{Profile: p.Name}

	lines := newLineReader(file)
	for {
		text, overlong, err := lines.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read %s at line %d: %w", p.Input, report.Lines+1, err)
		}
		if err := ctx.Err(); err != nil {
			return report, err
		}

		report.Lines++
		line := Tokenize(report.Lines, text)
		line.Overlong = overlong
		if overlong || len(line.Tokens) != p.Args {
			report.Skipped++
			l.observer.LineSkipped(line, p.Args)
			continue
		}

		spec := NewLaunchSpec(p, line)
		handle, err := l.spawner.Spawn(ctx, spec)
		if err != nil {
			report.Failed++
			l.observer.SpawnFailed(spec, err)
			continue
		}
		report.Spawned++
		report.Children = append(report.Children, Child{Spec: spec, Handle: handle})
		l.observer.Spawned(spec, handle)
	}

	return report, nil
}

// Run is a convenience for the plain contract: launch program for every line
// of configPath with exactly expectedArgCount tokens, using real processes and
// no diagnostics.
func Run(ctx context.Context, configPath, program string, expectedArgCount int) error {
	_, err := New().Run(ctx, &profile.Profile{
		Name:    program,
		Input:   configPath,
		Program: program,
		Args:    expectedArgCount,
	})
	return err
}

// Child is a started process and the spec it was started from.
type Child struct {
	Spec   LaunchSpec
	Handle Handle
}

// Report summarizes one pass.
type Report struct {
	Profile  string
	Lines    int
	Spawned  int
	Skipped  int
	Failed   int
	Children []Child
}

// ExitStatus is the outcome of one tracked child.
type ExitStatus struct {
	Spec LaunchSpec
	PID  int
	Err  error
}

// Success reports whether the child exited with status 0.
func (s ExitStatus) Success() bool {
	return s.Err == nil
}

// ExitCode returns the child's exit code, or -1 if it did not exit normally.
func (s ExitStatus) ExitCode() int {
	if s.Err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(s.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Wait blocks until every child of the report has exited, in spawn order.
func (r *Report) Wait() []ExitStatus {
	statuses := make([]ExitStatus, 0, len(r.Children))
	for _, child := range r.Children {
		statuses = append(statuses, ExitStatus{
			Spec: child.Spec,
			PID:  child.Handle.PID(),
			Err:  child.Handle.Wait(),
		})
	}
	return statuses
}
