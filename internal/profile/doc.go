// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package profile defines the launcher profile: the single configuration
// record that tells the batch launcher which input file to read, which program
// to start for every eligible line, and how many tokens a line must carry to be
// eligible.
//
// # Sources
//
// Profiles come from two places:
//
//   - Built-ins: the two simulation families shipped with the project,
//     `base_station` (4 arguments) and `er_sim` (17 arguments).
//
//   - HCL files: `launcher "<name>" { ... }` blocks found in a single file or
//     in every .hcl file below a directory. A file profile replaces a built-in
//     of the same name, but two file profiles may not share a name.
//
// Attribute expressions are evaluated with one variable, `env`, a map of the
// launcher's environment, so a profile can say
//
//	program = "${env.SIM_BUILD}/base_station"
//
// # Rendering
//
// Render writes a Set back out as canonical HCL. The CLI uses it to show the
// resolved profiles, including built-ins, before anything is launched.
package profile
