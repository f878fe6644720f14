// This file translates the decoded HCL schema structs into the
// format-agnostic configuration model.

package hcl_adapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/ctxlog"
	"github.com/vk/lteval/internal/paramset"
	"github.com/zclconf/go-cty/cty"
)

func translateSettings(c *Configuration) config.Settings {
	s := config.DefaultSettings()
	if c == nil {
		return s
	}
	s.Name = c.Name
	s.Description = c.Description
	if c.OutputDir != "" {
		s.OutputDir = c.OutputDir
	}
	if c.OutputDirDate != nil {
		s.OutputDirDate = *c.OutputDirDate
	}
	if c.ScenesDir != "" {
		s.ScenesDir = c.ScenesDir
	}
	return s
}

func translateTestCase(ctx context.Context, tc *TestCase) (*config.TestCaseDefinition, hcl.Diagnostics) {
	def := &config.TestCaseDefinition{
		Name:        tc.Name,
		Description: tc.Description,
		Renderer:    tc.Renderer,
	}
	if tc.Params == nil {
		return def, nil
	}
	params, diags := translateParameterSet(ctx, "", tc.Params.Base, tc.Params.Groups)
	def.Params = params
	return def, diags
}

// translateParameterSet reads every remaining attribute of body as a
// parameter group. Groups keep their order of declaration in the file.
func translateParameterSet(ctx context.Context, name string, base []string, body hcl.Body) (*config.ParameterSetDefinition, hcl.Diagnostics) {
	logger := ctxlog.FromContext(ctx)
	def := &config.ParameterSetDefinition{Name: name, Base: base}
	if body == nil {
		return def, nil
	}

	attrs, diags := body.JustAttributes()
	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, attr := range attrs {
		ordered = append(ordered, attr)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	for _, attr := range ordered {
		group, groupDiags := translateGroup(attr)
		diags = append(diags, groupDiags...)
		if !groupDiags.HasErrors() {
			def.Groups = append(def.Groups, group)
		}
	}
	logger.Debug("Translated parameter set.", "name", name, "bases", len(base), "groups", len(def.Groups))
	return def, diags
}

// translateGroup decodes a list of [name, kind, value] tuples.
func translateGroup(attr *hcl.Attribute) (paramset.Group, hcl.Diagnostics) {
	group := paramset.Group{Name: attr.Name}
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return group, diags
	}
	if !paramset.IsList(val) {
		return group, hcl.Diagnostics{{
			Severity: hcl.DiagError,
			Summary:  "Invalid parameter group",
			Detail:   fmt.Sprintf("Group %q must be a list of [name, kind, value] entries.", attr.Name),
			Subject:  attr.Expr.Range().Ptr(),
		}}
	}

	for i, entry := range paramset.Elements(val) {
		p, err := translateParameter(entry)
		if err != nil {
			diags = append(diags, &hcl.Diagnostic{
				Severity: hcl.DiagError,
				Summary:  "Invalid parameter",
				Detail:   fmt.Sprintf("Entry %d of group %q: %s.", i, attr.Name, err),
				Subject:  entryRange(attr.Expr, i).Ptr(),
			})
			continue
		}
		group.Params = append(group.Params, p)
	}
	return group, diags
}

func translateParameter(entry cty.Value) (paramset.Parameter, error) {
	if !paramset.IsList(entry) || entry.LengthInt() != 3 {
		return paramset.Parameter{}, fmt.Errorf("expected a [name, kind, value] tuple")
	}
	elems := paramset.Elements(entry)
	name, err := stringElement(elems[0], "name")
	if err != nil {
		return paramset.Parameter{}, err
	}
	kind, err := stringElement(elems[1], "kind")
	if err != nil {
		return paramset.Parameter{}, err
	}
	if elems[2].IsNull() || !elems[2].IsWhollyKnown() {
		return paramset.Parameter{}, fmt.Errorf("value of %q must be set", name)
	}
	return paramset.Parameter{Name: name, Kind: kind, Value: elems[2]}, nil
}

func stringElement(v cty.Value, what string) (string, error) {
	if v.IsNull() || !v.IsKnown() || v.Type() != cty.String {
		return "", fmt.Errorf("parameter %s must be a string", what)
	}
	return v.AsString(), nil
}

// entryRange narrows a diagnostic to the i-th element of a tuple literal.
func entryRange(expr hcl.Expression, i int) hcl.Range {
	if tuple, ok := expr.(*hclsyntax.TupleConsExpr); ok && i < len(tuple.Exprs) {
		return tuple.Exprs[i].Range()
	}
	return expr.Range()
}
