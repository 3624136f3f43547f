package launcher

import (
	"strings"

	"github.com/specialistvlad/simlaunch/internal/profile"
)

// ConfigLine is the token sequence of one input line.
type ConfigLine struct {
	// Number is the 1-based line number in the input file.
	Number int
	Tokens []string
	// Overlong marks a line too long to keep; its Tokens are empty.
	Overlong bool
}

// Tokenize strips surrounding whitespace from text and splits it on runs of
// whitespace. A blank line yields zero tokens.
func Tokenize(number int, text string) ConfigLine {
	return ConfigLine{Number: number, Tokens: strings.Fields(text)}
}

// LaunchSpec is everything needed to start one child process.
type LaunchSpec struct {
	// Argv is the program followed by the line's tokens.
	Argv []string
	// Env holds KEY=VALUE pairs added to the launcher's environment.
	Env []string
	// Dir is the child's working directory; empty inherits the launcher's.
	Dir string
	// Line is the input line number the spec was built from.
	Line int
}

// NewLaunchSpec builds the spec for line under p.
func NewLaunchSpec(p *profile.Profile, line ConfigLine) LaunchSpec {
	argv := make([]string, 0, len(line.Tokens)+1)
	argv = append(argv, p.Program)
	argv = append(argv, line.Tokens...)
	return LaunchSpec{
		Argv: argv,
		Env:  p.EnvironList(),
		Dir:  p.Dir,
		Line: line.Number,
	}
}

// Program returns the executable path.
func (s LaunchSpec) Program() string {
	return s.Argv[0]
}

// Args returns the positional arguments passed to the program.
func (s LaunchSpec) Args() []string {
	return s.Argv[1:]
}
