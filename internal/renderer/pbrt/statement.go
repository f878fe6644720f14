package pbrt

import (
	"fmt"
	"strings"

	"github.com/vk/lteval/internal/paramset"
	"github.com/zclconf/go-cty/cty"
)

// MalformedParameterError reports an untyped parameter that is neither the
// statement type nor an unnamed raw value. Such parameters are skipped.
type MalformedParameterError struct {
	Group     string
	Parameter string
}

func (e *MalformedParameterError) Error() string {
	return fmt.Sprintf("parameter %q of %s has no kind; declare [\"type\", \"\", <name>] for the statement type and give every other parameter a kind", e.Parameter, e.Group)
}

// Statement is the native statement of one parameter group.
type Statement struct {
	Group string
	Text  string
}

// buildStatement renders a group as `<Group> "<type>" "<kind> <name>" <value>...`.
// Malformed parameters are left out and returned.
func buildStatement(g paramset.Group) (Statement, []error) {
	var b strings.Builder
	var errs []error
	b.WriteString(g.Name)
	for _, p := range g.Params {
		switch {
		case p.Kind == "" && p.Name == "type":
			fmt.Fprintf(&b, ` "%s"`, paramset.FormatPlain(p.Value))
		case p.Kind == "" && p.Name == "":
			b.WriteString(" " + rawValue(p.Value))
		case p.Kind == "":
			errs = append(errs, &MalformedParameterError{Group: g.Name, Parameter: p.Name})
		default:
			fmt.Fprintf(&b, ` "%s %s" %s`, p.Kind, p.Name, formatValue(p))
		}
	}
	return Statement{Group: g.Name, Text: b.String()}, errs
}

// formatValue renders a typed parameter value: strings and booleans quoted,
// lists and numbers in brackets.
func formatValue(p paramset.Parameter) string {
	v := p.Value
	switch {
	case paramset.IsList(v):
		return p.ListValue(" ", true)
	case v.Type() == cty.String:
		return `"` + v.AsString() + `"`
	case v.Type() == cty.Bool:
		return `"` + p.PlainValue() + `"`
	default:
		return "[" + p.PlainValue() + "]"
	}
}

func rawValue(v cty.Value) string {
	if paramset.IsList(v) {
		return paramset.FormatList(v, " ", true)
	}
	return paramset.FormatPlain(v)
}
