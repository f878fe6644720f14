package paramset

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

// Parameter is a single (name, kind, value) declaration inside a group.
// An empty Kind marks an attribute-style, untyped parameter.
type Parameter struct {
	Name  string
	Kind  string
	Value cty.Value
}

// key is the merge identity of a parameter.
type key struct {
	name string
	kind string
}

func (p Parameter) key() key {
	return key{name: p.Name, kind: p.Kind}
}

// Equal reports whether both parameters carry the same key and value.
func (p Parameter) Equal(o Parameter) bool {
	return p.Name == o.Name && p.Kind == o.Kind && p.Value.RawEquals(o.Value)
}

func (p Parameter) String() string {
	return fmt.Sprintf("[%q, %q, %s]", p.Name, p.Kind, FormatList(p.Value, ", ", true))
}

// Group is a named, ordered list of parameters, e.g. "integrator".
type Group struct {
	Name   string
	Params []Parameter
}

func (g Group) clone() Group {
	return Group{Name: g.Name, Params: append([]Parameter(nil), g.Params...)}
}

// resolveParams drops duplicate keys, keeping the position of the first
// occurrence and the value of the last one, then sorts by kind. The sort is
// stable so parameters sharing a kind keep their declaration order.
func resolveParams(params []Parameter) []Parameter {
	index := make(map[key]int, len(params))
	out := make([]Parameter, 0, len(params))
	for _, p := range params {
		if i, ok := index[p.key()]; ok {
			out[i].Value = p.Value
			continue
		}
		index[p.key()] = len(out)
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Kind < out[j].Kind
	})
	return out
}

// IsList reports whether v holds an ordered sequence of values.
func IsList(v cty.Value) bool {
	if v.IsNull() || !v.IsKnown() {
		return false
	}
	ty := v.Type()
	return ty.IsListType() || ty.IsTupleType() || ty.IsSetType()
}

// Elements returns the elements of a list value in order, or nil for scalars.
func Elements(v cty.Value) []cty.Value {
	if !IsList(v) {
		return nil
	}
	var out []cty.Value
	it := v.ElementIterator()
	for it.Next() {
		_, elem := it.Element()
		out = append(out, elem)
	}
	return out
}

// FloatKind is the declared kind whose integral values keep a ".0" fraction.
const FloatKind = "float"

// PlainValue formats the value like FormatPlain. Integral numbers of kind
// float render as "1.0" rather than "1".
func (p Parameter) PlainValue() string {
	return formatPlain(p.Value, p.Kind == FloatKind)
}

// ListValue formats the value like FormatList, keeping the fraction of
// integral float elements.
func (p Parameter) ListValue(sep string, quote bool) string {
	return formatList(p.Value, sep, quote, p.Kind == FloatKind)
}

// FormatPlain renders a scalar in its plain string form: strings verbatim,
// booleans as true/false and numbers without a trailing fraction when they
// are integral.
func FormatPlain(v cty.Value) string {
	return formatPlain(v, false)
}

func formatPlain(v cty.Value, float bool) string {
	if v.IsNull() || !v.IsKnown() {
		return ""
	}
	switch v.Type() {
	case cty.String:
		return v.AsString()
	case cty.Bool:
		if v.True() {
			return "true"
		}
		return "false"
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			if float {
				return bf.Text('f', 1)
			}
			return bf.Text('f', 0)
		}
		f, _ := bf.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	if IsList(v) {
		return formatList(v, ", ", false, float)
	}
	return v.GoString()
}

// FormatList joins the plain forms of all elements of v with sep. Strings are
// double quoted when quote is set. Scalars are formatted on their own.
func FormatList(v cty.Value, sep string, quote bool) string {
	return formatList(v, sep, quote, false)
}

func formatList(v cty.Value, sep string, quote, float bool) string {
	if !IsList(v) {
		if quote && !v.IsNull() && v.Type() == cty.String {
			return strconv.Quote(v.AsString())
		}
		return formatPlain(v, float)
	}
	elems := Elements(v)
	parts := make([]string, 0, len(elems))
	for _, e := range elems {
		parts = append(parts, formatList(e, sep, quote, float))
	}
	if quote {
		return "[" + strings.Join(parts, sep) + "]"
	}
	return strings.Join(parts, sep)
}
