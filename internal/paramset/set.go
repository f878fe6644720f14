package paramset

import (
	"fmt"
	"strings"
)

// Set is a record of parameter groups plus the names of the sets it still
// inherits from. A set is ready once every base has been merged in.
type Set struct {
	bases  []string
	groups []Group
	ready  bool
}

// Table maps set names to sets.
type Table map[string]*Set

// New creates a not-ready set from declared data. The arguments are copied.
func New(bases []string, groups ...Group) *Set {
	s := &Set{bases: append([]string(nil), bases...)}
	for _, g := range groups {
		s.groups = append(s.groups, g.clone())
	}
	return s
}

// Bases returns the names of the bases that are not merged in yet.
func (s *Set) Bases() []string {
	return append([]string(nil), s.bases...)
}

// Groups returns a copy of all groups in order.
func (s *Set) Groups() []Group {
	out := make([]Group, 0, len(s.groups))
	for _, g := range s.groups {
		out = append(out, g.clone())
	}
	return out
}

// Group returns the parameters of the named group.
func (s *Set) Group(name string) ([]Parameter, bool) {
	if i := s.index(name); i >= 0 {
		return append([]Parameter(nil), s.groups[i].Params...), true
	}
	return nil, false
}

// IsReady reports whether all bases of the set have been resolved.
func (s *Set) IsReady() bool {
	return s.ready && len(s.bases) == 0
}

func (s *Set) index(name string) int {
	for i, g := range s.groups {
		if g.Name == name {
			return i
		}
	}
	return -1
}

func (s *Set) clone() *Set {
	if s == nil {
		return &Set{}
	}
	return New(s.bases, s.groups...)
}

// Merge returns a new set holding a followed by b: b's unresolved bases are
// appended to a's, and groups present in both are concatenated and resolved
// so that b's values win for shared keys. Groups only b declares are resolved
// on their own and appended. The result is never ready.
func Merge(a, b *Set) *Set {
	out := a.clone()
	if b == nil {
		return out
	}
	out.bases = append(out.bases, b.bases...)
	for _, g := range b.groups {
		if i := out.index(g.Name); i >= 0 {
			combined := append(out.groups[i].Params, g.Params...)
			out.groups[i].Params = resolveParams(combined)
			continue
		}
		out.groups = append(out.groups, Group{Name: g.Name, Params: resolveParams(g.Params)})
	}
	return out
}

// ResolveBase merges every base found ready in table, in listed order, and
// then the set's own groups on top. Bases that are missing or not ready yet
// stay unresolved; the returned set is ready only when none remain. It may be
// called again once the table has grown.
func (s *Set) ResolveBase(table Table) *Set {
	acc := &Set{}
	var remaining []string
	for _, name := range s.bases {
		base, ok := table[name]
		if !ok || !base.IsReady() {
			remaining = append(remaining, name)
			continue
		}
		acc = Merge(acc, base)
	}
	acc = Merge(acc, s)
	acc.bases = remaining
	acc.ready = len(remaining) == 0
	return acc
}

// Equal reports whether both sets hold the same bases, readiness and groups
// in the same order.
func (s *Set) Equal(o *Set) bool {
	if s == nil || o == nil {
		return s == o
	}
	if s.IsReady() != o.IsReady() || len(s.bases) != len(o.bases) || len(s.groups) != len(o.groups) {
		return false
	}
	for i := range s.bases {
		if s.bases[i] != o.bases[i] {
			return false
		}
	}
	for i, g := range s.groups {
		og := o.groups[i]
		if g.Name != og.Name || len(g.Params) != len(og.Params) {
			return false
		}
		for j := range g.Params {
			if !g.Params[j].Equal(og.Params[j]) {
				return false
			}
		}
	}
	return true
}

func (s *Set) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Unresolved bases: %q\nParameters:", s.bases)
	for _, g := range s.groups {
		params := make([]string, 0, len(g.Params))
		for _, p := range g.Params {
			params = append(params, p.String())
		}
		fmt.Fprintf(&b, "\n  %s: [%s]", g.Name, strings.Join(params, ", "))
	}
	return b.String()
}
