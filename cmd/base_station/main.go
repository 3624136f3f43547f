// Command base_station runs one single base station simulation and writes its
// report to out/<call>_<handoff>_<service>.out.
//
// Usage:
//
//	base_station CALL_RATE HANDOFF_RATE SERVICE_RATE DURATION
//
// SIM_SEED fixes the random streams. SIM_LOG_LEVEL enables logs on stderr.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/specialistvlad/simlaunch/internal/sim"
)

// Exit codes.
const (
	exitUsage    = 1
	exitInput    = 2
	exitFilename = 3
	exitOpen     = 4
	exitWrite    = 5
)

func main() {
	level := logLevelFromEnv(os.Getenv("SIM_LOG_LEVEL"))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	os.Exit(run(os.Args, os.Stdout, "", seedFromEnv(os.Getenv("SIM_SEED"))))
}

func logLevelFromEnv(v string) slog.Level {
	if v == "" {
		return slog.LevelWarn
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("Ignoring invalid SIM_LOG_LEVEL.", "value", v, "error", err)
		return slog.LevelWarn
	}
	return level
}

func seedFromEnv(v string) uint64 {
	if v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			return seed
		}
		slog.Warn("Ignoring invalid SIM_SEED.", "value", v)
	}
	return uint64(time.Now().UnixNano())
}

// run executes the simulation for argv and returns the process exit code.
// Error messages go to stdout; the report goes under root.
func run(argv []string, stdout io.Writer, root string, seed uint64) int {
	prog := "base_station"
	if len(argv) > 0 {
		prog = argv[0]
	}
	args := argv[min(1, len(argv)):]

	params, err := sim.ParseArgs(args)
	if err != nil {
		var inputErr *sim.InputError
		if errors.As(err, &inputErr) {
			fmt.Fprintln(stdout, inputErr.Error())
			return exitInput
		}
		fmt.Fprintf(stdout, "USAGE ERROR: Usage %s [mean_call_arrival] [mean_handoff_arrival] [mean_service_rate] [sim_time_duration]\n", prog)
		return exitUsage
	}

	path, err := sim.OutputPath(root, args)
	if err != nil {
		fmt.Fprintln(stdout, "FILENAME ERROR: Filename Too Long")
		return exitFilename
	}

	out, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(stdout, "FILE ERROR: Output File %q Cannot Be Opened\n", path)
		return exitOpen
	}

	if err := sim.WriteHeader(out, params); err != nil {
		return writeFailed(stdout, out, path)
	}

	slog.Debug("Simulation started.", "params", params, "seed", seed)
	result := sim.Run(params, seed)
	slog.Debug("Simulation finished.", "end_time", result.EndTime, "calls", result.TotalCalls())

	if err := sim.WriteMetrics(out, result); err != nil {
		return writeFailed(stdout, out, path)
	}

	if err := out.Close(); err != nil {
		fmt.Fprintf(stdout, "FILE ERROR: Output File %q Cannot Be Closed\n", path)
		return exitOpen
	}
	return 0
}

func writeFailed(stdout io.Writer, out *os.File, path string) int {
	fmt.Fprintf(stdout, "FILE ERROR: Output File %q Cannot Be Written To\n", path)
	if err := out.Close(); err != nil {
		fmt.Fprintf(stdout, "FILE ERROR: Output File %q Cannot Be Closed\n", path)
	}
	return exitWrite
}
