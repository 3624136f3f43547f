package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/specialistvlad/simlaunch/internal/ctxlog"
	"github.com/specialistvlad/simlaunch/internal/launcher"
	"github.com/specialistvlad/simlaunch/internal/profile"
)

// ErrUnknownProfile is returned when a requested profile is not defined.
var ErrUnknownProfile = errors.New("unknown profile")

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	config   *Config
	profiles *profile.Set
	selected []*profile.Profile
	options  []launcher.Option
}

// NewApp builds an App: it configures the logger, loads profile files on top
// of the built-ins and resolves the profiles to run. outW receives -list
// output, logW receives logs. opts are passed to every launcher the app
// creates, after the app's own log observer.
func NewApp(ctx context.Context, outW, logW io.Writer, cfg *Config, opts ...launcher.Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("Logger configured successfully.")

	environ := cfg.Environ
	if environ == nil {
		environ = os.Environ()
	}

	profiles := profile.Builtins()
	if cfg.ProfilesPath != "" {
		fileProfiles, err := profile.Load(ctx, cfg.ProfilesPath, profile.EnvironMap(environ))
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles: %w", err)
		}
		profiles.Override(fileProfiles)
		logger.Debug("Profile files loaded.", "path", cfg.ProfilesPath, "count", fileProfiles.Len())
	}
	if cfg.AdHoc != nil {
		adHoc := profile.NewSet()
		if err := adHoc.Add(cfg.AdHoc); err != nil {
			return nil, err
		}
		profiles.Override(adHoc)
	}

	selected, err := selectProfiles(profiles, cfg)
	if err != nil {
		return nil, err
	}
	logger.Debug("Profiles resolved.", "available", profiles.Names(), "selected", len(selected))

	return &App{
		outW:     outW,
		logger:   logger,
		config:   cfg,
		profiles: profiles,
		selected: selected,
		options:  opts,
	}, nil
}

// selectProfiles returns the named profiles in the order given, followed by
// the ad-hoc profile. Listing with no names selects every profile.
func selectProfiles(profiles *profile.Set, cfg *Config) ([]*profile.Profile, error) {
	if cfg.List && len(cfg.Profiles) == 0 && cfg.AdHoc == nil {
		return profiles.Profiles(), nil
	}

	selected := make([]*profile.Profile, 0, len(cfg.Profiles)+1)
	for _, name := range cfg.Profiles {
		p, ok := profiles.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownProfile, name, profiles.Names())
		}
		selected = append(selected, p)
	}
	if cfg.AdHoc != nil {
		p, _ := profiles.Get(AdHocProfileName)
		selected = append(selected, p)
	}
	return selected, nil
}

// Profiles returns the full resolved profile set. This is primarily for testing.
func (a *App) Profiles() *profile.Set {
	return a.profiles
}

// Selected returns the profiles Run will launch, in order.
func (a *App) Selected() []*profile.Profile {
	return a.selected
}
