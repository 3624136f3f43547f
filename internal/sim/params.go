package sim

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
)

const (
	// MaxChannels is the number of channels on the base station.
	MaxChannels = 100
	// FilenameLimit bounds the length of the generated output path.
	FilenameLimit = 50
)

var (
	ErrUsage           = errors.New("usage error")
	ErrInvalidInput    = errors.New("invalid input")
	ErrFilenameTooLong = errors.New("filename too long")
)

// InputError names the argument that failed to parse.
type InputError struct {
	Arg string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("INPUT ERROR: %q Is Not A Valid Input", e.Arg)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// Params are the inputs of one simulation run. Rates are per second.
type Params struct {
	CallRate    float64
	HandoffRate float64
	ServiceRate float64
	Duration    int
}

// MeanCallInterarrival is the mean time between new calls.
func (p Params) MeanCallInterarrival() float64 { return 1 / p.CallRate }

// MeanHandoffInterarrival is the mean time between handoff calls.
func (p Params) MeanHandoffInterarrival() float64 { return 1 / p.HandoffRate }

// MeanHoldingTime is the mean time a connected call occupies a channel.
func (p Params) MeanHoldingTime() float64 { return 1 / p.ServiceRate }

// TrafficLoad is the offered load per channel, (λc+λh)/(N·μ).
func (p Params) TrafficLoad() float64 {
	return (p.CallRate + p.HandoffRate) / (MaxChannels * p.ServiceRate)
}

// ParseArgs reads CALL_RATE HANDOFF_RATE SERVICE_RATE DURATION. The duration
// is truncated to whole seconds.
func ParseArgs(args []string) (Params, error) {
	if len(args) != 4 {
		return Params{}, fmt.Errorf("%w: want 4 arguments, got %d", ErrUsage, len(args))
	}

	values := make([]float64, 4)
	for i, arg := range args {
		v, err := parseRate(arg)
		if err != nil {
			return Params{}, err
		}
		values[i] = v
	}

	duration := int(values[3])
	if duration <= 0 {
		return Params{}, &InputError{Arg: args[3]}
	}

	return Params{
		CallRate:    values[0],
		HandoffRate: values[1],
		ServiceRate: values[2],
		Duration:    duration,
	}, nil
}

func parseRate(arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, &InputError{Arg: arg}
	}
	return v, nil
}

// OutputPath builds out/<call>_<handoff>_<service>.out under root from the
// raw argument text.
func OutputPath(root string, args []string) (string, error) {
	if len(args) < 3 {
		return "", fmt.Errorf("%w: want at least 3 arguments, got %d", ErrUsage, len(args))
	}
	if len(args[0])+len(args[1])+len(args[2])+10 >= FilenameLimit {
		return "", ErrFilenameTooLong
	}
	name := args[0] + "_" + args[1] + "_" + args[2] + ".out"
	return filepath.Join(root, "out", name), nil
}
