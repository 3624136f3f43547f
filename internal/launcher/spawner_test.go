package launcher_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/specialistvlad/simlaunch/internal/launcher"
	"github.com/specialistvlad/simlaunch/internal/profile"
	"github.com/specialistvlad/simlaunch/internal/testutil"
	"github.com/stretchr/testify/require"
)

// writeScript creates an executable shell script in dir.
func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not executable on windows")
	}
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

// Script tests are not parallel: a concurrent fork can inherit the script's
// write descriptor and make exec fail with ETXTBSY.
func TestExecSpawner_StartsRealProcesses(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	script := writeScript(t, dir, "sim.sh", `echo "$SIM_SEED $*" >> "$(pwd)/calls.log"`+"\n")
	input := testutil.WriteLines(t, "sims.in", "a b", "c", "d e")
	p := &profile.Profile{
		Name:        "script",
		Input:       input,
		Program:     script,
		Args:        2,
		Dir:         dir,
		Environment: map[string]string{"SIM_SEED": "9"},
	}
	stdout := &testutil.SafeBuffer{}
	l := launcher.New(launcher.WithSpawner(&launcher.ExecSpawner{Stdout: stdout, Stderr: stdout}))

	// --- Act ---
	report, err := l.Run(context.Background(), p)
	require.NoError(t, err)
	statuses := report.Wait()

	// --- Assert ---
	require.Len(t, statuses, 2)
	for _, status := range statuses {
		require.True(t, status.Success(), "child %v failed: %v", status.Spec.Argv, status.Err)
		require.Positive(t, status.PID)
	}

	logged, err := os.ReadFile(filepath.Join(dir, "calls.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(logged)), "\n")
	require.ElementsMatch(t, []string{"9 a b", "9 d e"}, lines)
}

func TestExecSpawner_ExitCodeIsReportedOnWait(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "fail.sh", "exit $1\n")
	input := testutil.WriteLines(t, "in", "0", "3")

	report, err := launcher.New().Run(context.Background(), &profile.Profile{Name: "f", Input: input, Program: script, Args: 1})
	require.NoError(t, err)

	statuses := report.Wait()
	require.Len(t, statuses, 2)
	require.Equal(t, 0, statuses[0].ExitCode())
	require.Equal(t, 3, statuses[1].ExitCode())
}

func TestExecSpawner_CustomStdoutIsCompleteAfterWait(t *testing.T) {
	dir := t.TempDir()
	script := writeScript(t, dir, "chatty.sh", `i=0
while [ $i -lt 2000 ]; do echo "$1 line $i"; i=$((i+1)); done
`)
	input := testutil.WriteLines(t, "in", "first", "second")
	stdout := &testutil.SafeBuffer{}
	l := launcher.New(launcher.WithSpawner(&launcher.ExecSpawner{Stdout: stdout}))

	report, err := l.Run(context.Background(), &profile.Profile{Name: "chatty", Input: input, Program: script, Args: 1})
	require.NoError(t, err)

	for _, status := range report.Wait() {
		require.True(t, status.Success(), "child %v failed: %v", status.Spec.Argv, status.Err)
	}

	// Wait has drained the copy goroutines, so both tails are present.
	output := stdout.String()
	require.Contains(t, output, "first line 1999\n")
	require.Contains(t, output, "second line 1999\n")
	require.Equal(t, 4000, strings.Count(output, "\n"))
}

func TestExecSpawner_MissingExecutableIsNotAnError(t *testing.T) {
	t.Parallel()

	input := testutil.WriteLines(t, "in", "1 2 3 4", "5 6 7 8")
	observer := &testutil.RecordingObserver{}
	p := baseStation(input)
	p.Program = filepath.Join(t.TempDir(), "build", "base_station")

	report, err := launcher.New(launcher.WithObserver(observer)).Run(context.Background(), p)

	require.NoError(t, err)
	require.Equal(t, 2, report.Failed)
	require.Zero(t, report.Spawned)
	require.Len(t, observer.Failures, 2)
}

func TestExecSpawner_EmptyArgv(t *testing.T) {
	t.Parallel()

	_, err := (&launcher.ExecSpawner{}).Spawn(context.Background(), launcher.LaunchSpec{})
	require.ErrorIs(t, err, launcher.ErrEmptyArgv)
}

func TestRunFunc_MissingFile(t *testing.T) {
	t.Parallel()

	err := launcher.Run(context.Background(), filepath.Join(t.TempDir(), "none.in"), "build/base_station", 4)
	require.ErrorIs(t, err, launcher.ErrConfigUnreadable)
}
