// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package profile

import (
	"errors"
	"fmt"
	"sort"
)

// BuiltinSource is the Source of profiles compiled into the binary.
const BuiltinSource = "builtin"

// Profile is one launcher configuration: read Input, and for every line with
// exactly Args tokens start Program with those tokens.
type Profile struct {
	Name    string
	Input   string
	Program string
	Args    int

	// Dir is the working directory of spawned children. Empty means the
	// launcher's own working directory.
	Dir string

	// Environment is appended to the launcher's environment for every child.
	Environment map[string]string

	// Source is the file the profile was declared in, or BuiltinSource.
	Source string
}

// Validate reports the first structural problem with the profile.
func (p *Profile) Validate() error {
	switch {
	case p.Name == "":
		return errors.New("profile name must not be empty")
	case p.Input == "":
		return fmt.Errorf("profile %q: input must not be empty", p.Name)
	case p.Program == "":
		return fmt.Errorf("profile %q: program must not be empty", p.Name)
	case p.Args < 0:
		return fmt.Errorf("profile %q: args must not be negative, got %d", p.Name, p.Args)
	}
	return nil
}

// EnvironList returns Environment as sorted KEY=VALUE pairs.
func (p *Profile) EnvironList() []string {
	if len(p.Environment) == 0 {
		return nil
	}
	keys := make([]string, 0, len(p.Environment))
	for k := range p.Environment {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+p.Environment[k])
	}
	return env
}

// Builtins returns the profiles of the two simulation families the project
// ships with.
func Builtins() *Set {
	return mustSet(
		&Profile{
			Name:    "base_station",
			Input:   "base_station.in",
			Program: "build/base_station",
			Args:    4,
			Source:  BuiltinSource,
		},
		&Profile{
			Name:    "er_sim",
			Input:   "er_sim.in",
			Program: "build/er_sim",
			Args:    17,
			Source:  BuiltinSource,
		},
	)
}

// mustSet builds a set from profiles known at compile time. An invalid or
// duplicate profile is a programming error.
func mustSet(profiles ...*Profile) *Set {
	set := NewSet()
	for _, p := range profiles {
		if err := set.Add(p); err != nil {
			panic(fmt.Sprintf("built-in profile: %v", err))
		}
	}
	return set
}
