package hcl_adapter

import (
	"io"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/vk/lteval/internal/paramset"
	"github.com/vk/lteval/internal/testcase"
	"github.com/zclconf/go-cty/cty"
)

// WriteResolved writes one `test_case` block per test case with its
// resolved parameter groups, in the same syntax the loader reads.
func WriteResolved(w io.Writer, cases []*testcase.TestCase) error {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for i, tc := range cases {
		if i > 0 {
			body.AppendNewline()
		}
		block := body.AppendNewBlock("test_case", []string{tc.Name}).Body()
		if tc.Description != "" {
			block.SetAttributeValue("description", cty.StringVal(tc.Description))
		}
		block.SetAttributeValue("renderer", cty.StringVal(tc.Renderer))
		if tc.Params == nil {
			continue
		}

		params := block.AppendNewBlock("params", nil).Body()
		if bases := tc.Params.Bases(); len(bases) > 0 {
			vals := make([]cty.Value, 0, len(bases))
			for _, b := range bases {
				vals = append(vals, cty.StringVal(b))
			}
			params.SetAttributeValue("base", cty.TupleVal(vals))
		}
		for _, g := range tc.Params.Groups() {
			params.SetAttributeValue(g.Name, groupValue(g))
		}
	}
	_, err := f.WriteTo(w)
	return err
}

func groupValue(g paramset.Group) cty.Value {
	if len(g.Params) == 0 {
		return cty.EmptyTupleVal
	}
	entries := make([]cty.Value, 0, len(g.Params))
	for _, p := range g.Params {
		entries = append(entries, cty.TupleVal([]cty.Value{
			cty.StringVal(p.Name),
			cty.StringVal(p.Kind),
			p.Value,
		}))
	}
	return cty.TupleVal(entries)
}
