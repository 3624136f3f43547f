package profile

import (
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// Render writes the profiles of s as HCL `launcher` blocks, in set order.
// Expressions are not preserved: values are written as evaluated.
func Render(s *Set) []byte {
	file := hclwrite.NewEmptyFile()
	root := file.Body()

	for i, p := range s.Profiles() {
		if i > 0 {
			root.AppendNewline()
		}
		if p.Source != "" {
			root.AppendUnstructuredTokens(hclwrite.Tokens{
				{Type: hclsyntax.TokenComment, Bytes: []byte("# source: " + p.Source + "\n")},
			})
		}

		body := root.AppendNewBlock("launcher", []string{p.Name}).Body()
		body.SetAttributeValue("input", cty.StringVal(p.Input))
		body.SetAttributeValue("program", cty.StringVal(p.Program))
		body.SetAttributeValue("args", cty.NumberIntVal(int64(p.Args)))
		if p.Dir != "" {
			body.SetAttributeValue("dir", cty.StringVal(p.Dir))
		}
		if len(p.Environment) > 0 {
			env := make(map[string]cty.Value, len(p.Environment))
			for k, v := range p.Environment {
				env[k] = cty.StringVal(v)
			}
			body.SetAttributeValue("environment", cty.MapVal(env))
		}
	}

	return hclwrite.Format(file.Bytes())
}
