package mitsuba

import (
	"github.com/beevik/etree"
	"github.com/vk/lteval/internal/paramset"
)

// Fragment is the native element of one parameter group.
type Fragment struct {
	Group   string
	Element *etree.Element
}

// BuildFragments converts every group of a resolved set to its element.
func BuildFragments(ps *paramset.Set) []Fragment {
	groups := ps.Groups()
	frags := make([]Fragment, 0, len(groups))
	for _, g := range groups {
		elem := etree.NewElement(g.Name)
		for _, p := range g.Params {
			if p.Kind == "" {
				elem.CreateAttr(p.Name, paramset.FormatPlain(p.Value))
				continue
			}
			child := elem.CreateElement(p.Kind)
			child.CreateAttr("name", p.Name)
			child.CreateAttr("value", formatValue(p))
		}
		frags = append(frags, Fragment{Group: g.Name, Element: elem})
	}
	return frags
}

// formatValue renders a typed parameter value: lists are joined by ", "
// without brackets and everything else takes its plain form.
func formatValue(p paramset.Parameter) string {
	if paramset.IsList(p.Value) {
		return p.ListValue(", ", false)
	}
	return p.PlainValue()
}
