package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/simlaunch/internal/profile"
)

// AdHocProfileName is the name given to a profile assembled from flags.
const AdHocProfileName = "adhoc"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	ProfilesPath string   // hcl file or directory, optional
	Profiles     []string // profile names to run, in order
	AdHoc        *profile.Profile

	Wait bool // wait for children and fail if any failed
	List bool // print the resolved profiles instead of launching

	LogFormat string
	LogLevel  string

	// Environ is the environment profile expressions see. Nil means os.Environ().
	Environ []string
}

func NewConfig(cfg Config) (*Config, error) {
	if !cfg.List && len(cfg.Profiles) == 0 && cfg.AdHoc == nil {
		return nil, errors.New("at least one profile or an ad-hoc profile is required")
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "text"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	if cfg.AdHoc != nil {
		adHoc := *cfg.AdHoc
		adHoc.Name = AdHocProfileName
		adHoc.Source = "command line"
		if err := adHoc.Validate(); err != nil {
			return nil, err
		}
		cfg.AdHoc = &adHoc
	}

	return &cfg, nil
}
