// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file decodes `launcher` blocks from HCL sources into Profiles.
//
// Decoding happens in two passes. The first pass only splits the file into
// labeled blocks and keeps each body raw, the same way step blocks are split
// before their attributes are looked at. The second pass checks which `env`
// keys the attribute expressions reference, so a missing environment variable
// is reported by name, and then decodes the body against the evaluation
// context.
package profile

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/simlaunch/internal/ctxlog"
	"github.com/specialistvlad/simlaunch/internal/fsutil"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// envVariable is the name of the only variable visible to profile expressions.
const envVariable = "env"

// hclProfileFile is the top-level structure of a profile file.
type hclProfileFile struct {
	Launchers []*hclLauncherBlock `hcl:"launcher,block"`
}

// hclLauncherBlock is a `launcher` block before its body is evaluated.
type hclLauncherBlock struct {
	Name string   `hcl:"name,label"`
	Body hcl.Body `hcl:",remain"`
}

// hclLauncherBody is the evaluated content of a `launcher` block.
type hclLauncherBody struct {
	Input       string            `hcl:"input"`
	Program     string            `hcl:"program"`
	Args        int               `hcl:"args"`
	Dir         string            `hcl:"dir,optional"`
	Environment map[string]string `hcl:"environment,optional"`
}

// EnvironMap converts KEY=VALUE pairs, as returned by os.Environ, into a map.
// Entries without '=' are ignored.
func EnvironMap(environ []string) map[string]string {
	envMap := make(map[string]string, len(environ))
	for _, e := range environ {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 {
			envMap[pair[0]] = pair[1]
		}
	}
	return envMap
}

// newEvalContext exposes env to profile expressions as a map of strings.
func newEvalContext(env map[string]string) (*hcl.EvalContext, error) {
	if env == nil {
		env = map[string]string{}
	}
	envVal, err := gocty.ToCtyValue(env, cty.Map(cty.String))
	if err != nil {
		return nil, fmt.Errorf("failed to convert environment: %w", err)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{envVariable: envVal},
	}, nil
}

// ParseSource decodes every `launcher` block in src. filename is used for
// diagnostics and as the Source of the returned profiles.
func ParseSource(src []byte, filename string, env map[string]string) ([]*Profile, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var parsed hclProfileFile
	if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	evalCtx, err := newEvalContext(env)
	if err != nil {
		return nil, err
	}

	profiles := make([]*Profile, 0, len(parsed.Launchers))
	for _, block := range parsed.Launchers {
		p, diags := decodeLauncher(block, evalCtx, env, filename)
		if diags.HasErrors() {
			return nil, fmt.Errorf("error parsing launcher %q in file %s: %w", block.Name, filename, diags)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func decodeLauncher(block *hclLauncherBlock, evalCtx *hcl.EvalContext, env map[string]string, filename string) (*Profile, hcl.Diagnostics) {
	attrs, diags := block.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}
	for _, attr := range attrs {
		diags = append(diags, checkEnvReferences(attr.Expr, env)...)
	}
	if diags.HasErrors() {
		return nil, diags
	}

	var body hclLauncherBody
	diags = append(diags, gohcl.DecodeBody(block.Body, evalCtx, &body)...)
	if diags.HasErrors() {
		return nil, diags
	}

	return &Profile{
		Name:        block.Name,
		Input:       body.Input,
		Program:     body.Program,
		Args:        body.Args,
		Dir:         body.Dir,
		Environment: body.Environment,
		Source:      filename,
	}, diags
}

// checkEnvReferences reports every `env.NAME` or `env["NAME"]` reference in
// expr whose NAME is not set.
func checkEnvReferences(expr hcl.Expression, env map[string]string) hcl.Diagnostics {
	var diags hcl.Diagnostics
	for _, traversal := range expr.Variables() {
		if traversal.RootName() != envVariable || len(traversal) < 2 {
			continue
		}

		var name string
		switch step := traversal[1].(type) {
		case hcl.TraverseAttr:
			name = step.Name
		case hcl.TraverseIndex:
			if !step.Key.IsKnown() || step.Key.IsNull() || step.Key.Type() != cty.String {
				continue
			}
			name = step.Key.AsString()
		default:
			continue
		}

		if _, ok := env[name]; !ok {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Environment variable not set",
				Detail:   fmt.Sprintf("The expression references env.%s, but %s is not set in the launcher's environment.", name, name),
				Subject:  traversal.SourceRange().Ptr(),
			})
		}
	}
	return diags
}

// ParseFile reads and decodes a single profile file.
func ParseFile(path string, env map[string]string) ([]*Profile, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile file %s: %w", path, err)
	}
	return ParseSource(src, path, env)
}

// Load decodes every .hcl file at path (a file or a directory searched
// recursively) into one Set. Names must be unique across all files.
func Load(ctx context.Context, path string, env map[string]string) (*Set, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading launcher profiles.", "path", path)

	files, err := fsutil.FindFilesByExtension(path, ".hcl")
	if err != nil {
		return nil, fmt.Errorf("failed to find profile files in %s: %w", path, err)
	}

	set := NewSet()
	if len(files) == 0 {
		logger.Warn("No .hcl profile files found in path.", "path", path)
		return set, nil
	}

	for _, file := range files {
		profiles, err := ParseFile(file, env)
		if err != nil {
			return nil, err
		}
		for _, p := range profiles {
			if err := set.Add(p); err != nil {
				return nil, err
			}
		}
		logger.Debug("Profile file loaded.", "file", file, "profiles", len(profiles))
	}
	return set, nil
}
