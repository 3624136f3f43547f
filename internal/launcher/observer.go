package launcher

import "log/slog"

// Observer is notified of every decision the launcher makes. Implementations
// are called synchronously from Run and must not block.
type Observer interface {
	LineSkipped(line ConfigLine, want int)
	Spawned(spec LaunchSpec, handle Handle)
	SpawnFailed(spec LaunchSpec, err error)
}

type nopObserver struct{}

func (nopObserver) LineSkipped(ConfigLine, int)   {}
func (nopObserver) Spawned(LaunchSpec, Handle)    {}
func (nopObserver) SpawnFailed(LaunchSpec, error) {}

// LogObserver writes launcher decisions to a logger at debug level, so they
// stay invisible unless debug logging is on.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver returns an Observer logging to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) LineSkipped(line ConfigLine, want int) {
	if line.Overlong {
		o.logger.Debug("Line skipped: too long.", "line", line.Number, "limit_bytes", maxLineBytes)
		return
	}
	o.logger.Debug("Line skipped: token count mismatch.", "line", line.Number, "tokens", len(line.Tokens), "want", want)
}

func (o *LogObserver) Spawned(spec LaunchSpec, handle Handle) {
	o.logger.Debug("Process spawned.", "line", spec.Line, "program", spec.Program(), "pid", handle.PID())
}

func (o *LogObserver) SpawnFailed(spec LaunchSpec, err error) {
	o.logger.Debug("Process spawn failed.", "line", spec.Line, "program", spec.Program(), "error", err)
}
