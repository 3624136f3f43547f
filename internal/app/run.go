package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/specialistvlad/simlaunch/internal/ctxlog"
	"github.com/specialistvlad/simlaunch/internal/launcher"
	"github.com/specialistvlad/simlaunch/internal/profile"
)

// ErrChildFailed is returned by Run in wait mode when a child exits unsuccessfully.
var ErrChildFailed = errors.New("child process failed")

// Run executes the selected profiles one after another. Without Wait it
// returns as soon as every eligible line of every profile has been submitted.
func (a *App) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := a.logger.With("run_id", runID)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.", "profiles", len(a.selected))

	if a.config.List {
		set := profile.NewSet()
		for _, p := range a.selected {
			if err := set.Add(p); err != nil {
				return err
			}
		}
		_, err := a.outW.Write(profile.Render(set))
		return err
	}

	reports := make([]*launcher.Report, 0, len(a.selected))
	for _, p := range a.selected {
		report, err := a.runProfile(ctx, p)
		if err != nil {
			return fmt.Errorf("profile %s: %w", p.Name, err)
		}
		reports = append(reports, report)
	}

	if a.config.Wait {
		return a.waitAll(ctx, reports)
	}

	logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) runProfile(ctx context.Context, p *profile.Profile) (*launcher.Report, error) {
	ctx = ctxlog.With(ctx, "profile", p.Name)
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Launching profile.", "input", p.Input, "program", p.Program, "args", p.Args, "source", p.Source)

	opts := append([]launcher.Option{launcher.WithObserver(launcher.NewLogObserver(logger))}, a.options...)
	report, err := launcher.New(opts...).Run(ctx, p)
	if err != nil {
		return nil, err
	}

	logger.Debug("Profile submitted.",
		"lines", report.Lines,
		"spawned", report.Spawned,
		"skipped", report.Skipped,
		"failed", report.Failed,
	)
	return report, nil
}

// waitAll blocks on every tracked child and reports the ones that failed.
func (a *App) waitAll(ctx context.Context, reports []*launcher.Report) error {
	logger := ctxlog.FromContext(ctx)

	failed := 0
	for _, report := range reports {
		for _, status := range report.Wait() {
			if status.Success() {
				logger.Info("Child exited.", "profile", report.Profile, "line", status.Spec.Line, "pid", status.PID)
				continue
			}
			failed++
			logger.Error("Child failed.",
				"profile", report.Profile,
				"line", status.Spec.Line,
				"pid", status.PID,
				"exit_code", status.ExitCode(),
				"error", status.Err,
			)
		}
		if report.Failed > 0 {
			failed += report.Failed
			logger.Error("Children could not be started.", "profile", report.Profile, "count", report.Failed)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%w: %d of the launched lines did not succeed", ErrChildFailed, failed)
	}
	return nil
}
