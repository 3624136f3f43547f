package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/simlaunch/internal/app"
	"github.com/specialistvlad/simlaunch/internal/profile"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("simlaunch", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
simlaunch - Start one simulation process per line of an input file.

Usage:
  simlaunch [options] PROFILE...

Arguments:
  PROFILE
    Name of a launcher profile. Built-in profiles: base_station, er_sim.
    Profiles run in the order given.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an .hcl profile file or a directory of them.")
	inputFlag := flagSet.String("input", "", "Ad-hoc profile: input file with one invocation per line.")
	programFlag := flagSet.String("program", "", "Ad-hoc profile: executable to start for each line.")
	argsFlag := flagSet.Int("args", -1, "Ad-hoc profile: number of tokens a line must have.")
	waitFlag := flagSet.Bool("wait", false, "Wait for all children and exit non-zero if any failed.")
	listFlag := flagSet.Bool("list", false, "Print the resolved profiles as HCL and exit.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	adHoc, err := parseAdHoc(*inputFlag, *programFlag, *argsFlag)
	if err != nil {
		return nil, false, err
	}

	names := flagSet.Args()
	if len(names) == 0 && adHoc == nil && !*listFlag {
		slog.Debug("No profile provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	config, err := app.NewConfig(app.Config{
		ProfilesPath: *configFlag,
		Profiles:     names,
		AdHoc:        adHoc,
		Wait:         *waitFlag,
		List:         *listFlag,
		LogFormat:    strings.ToLower(*logFormatFlag),
		LogLevel:     strings.ToLower(*logLevelFlag),
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// parseAdHoc builds a profile from the ad-hoc flags. The flags are all or
// nothing.
func parseAdHoc(input, program string, args int) (*profile.Profile, error) {
	set := 0
	for _, given := range []bool{input != "", program != "", args >= 0} {
		if given {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case 3:
		return &profile.Profile{Input: input, Program: program, Args: args}, nil
	default:
		return nil, &ExitError{Code: 2, Message: "an ad-hoc profile needs all of -input, -program and -args"}
	}
}
