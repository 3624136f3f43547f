package testutil

import (
	"context"
	"sync"

	"github.com/specialistvlad/simlaunch/internal/launcher"
)

// RecordingSpawner is a launcher.Spawner that starts nothing. It records every
// spec in call order and can be told to fail selected specs.
type RecordingSpawner struct {
	// FailWith, when set, is consulted for every spec; a non-nil result is
	// returned as the spawn error and the spec is recorded as failed.
	FailWith func(spec launcher.LaunchSpec) error

	// ExitWith, when set, decides the Wait result of each successful spawn.
	ExitWith func(spec launcher.LaunchSpec) error

	mu      sync.Mutex
	spawned []launcher.LaunchSpec
	failed  []launcher.LaunchSpec
	nextPID int
}

// Spawn implements launcher.Spawner.
func (s *RecordingSpawner) Spawn(_ context.Context, spec launcher.LaunchSpec) (launcher.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.FailWith != nil {
		if err := s.FailWith(spec); err != nil {
			s.failed = append(s.failed, spec)
			return nil, err
		}
	}

	s.nextPID++
	s.spawned = append(s.spawned, spec)

	var exitErr error
	if s.ExitWith != nil {
		exitErr = s.ExitWith(spec)
	}
	return &FakeHandle{Pid: 1000 + s.nextPID, Err: exitErr}, nil
}

// Spawned returns the specs started so far, in call order.
func (s *RecordingSpawner) Spawned() []launcher.LaunchSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]launcher.LaunchSpec(nil), s.spawned...)
}

// Argvs returns the argv of every started spec, in call order.
func (s *RecordingSpawner) Argvs() [][]string {
	specs := s.Spawned()
	out := make([][]string, 0, len(specs))
	for _, spec := range specs {
		out = append(out, spec.Argv)
	}
	return out
}

// Failed returns the specs whose spawn was made to fail.
func (s *RecordingSpawner) Failed() []launcher.LaunchSpec {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]launcher.LaunchSpec(nil), s.failed...)
}

// FakeHandle is a launcher.Handle with a fixed pid and Wait result.
type FakeHandle struct {
	Pid int
	Err error
}

// PID implements launcher.Handle.
func (h *FakeHandle) PID() int { return h.Pid }

// Wait implements launcher.Handle.
func (h *FakeHandle) Wait() error { return h.Err }

// RecordingObserver is a launcher.Observer that keeps every notification.
type RecordingObserver struct {
	mu       sync.Mutex
	Skipped  []launcher.ConfigLine
	Started  []launcher.LaunchSpec
	Failures []error
}

// LineSkipped implements launcher.Observer.
func (o *RecordingObserver) LineSkipped(line launcher.ConfigLine, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Skipped = append(o.Skipped, line)
}

// Spawned implements launcher.Observer.
func (o *RecordingObserver) Spawned(spec launcher.LaunchSpec, _ launcher.Handle) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Started = append(o.Started, spec)
}

// SpawnFailed implements launcher.Observer.
func (o *RecordingObserver) SpawnFailed(_ launcher.LaunchSpec, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Failures = append(o.Failures, err)
}
