package launcher

import "errors"

// ErrConfigUnreadable is wrapped by Run when the input file cannot be opened.
// No process has been started when it is returned.
var ErrConfigUnreadable = errors.New("config file unreadable")

// ErrEmptyArgv is returned by spawners asked to start a spec without a program.
var ErrEmptyArgv = errors.New("launch spec has no program")
