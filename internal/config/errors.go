package config

import (
	"fmt"
	"strings"
)

// DuplicateNameError reports every name declared more than once within one
// namespace, such as parameter sets or test cases.
type DuplicateNameError struct {
	Kind   string
	Names  []string
	Counts map[string]int
}

func (e *DuplicateNameError) Error() string {
	parts := make([]string, 0, len(e.Names))
	for _, name := range e.Names {
		parts = append(parts, fmt.Sprintf("%q (%d definitions)", name, e.Counts[name]))
	}
	return fmt.Sprintf("%s names must be unique, defined multiple times: %s", e.Kind, strings.Join(parts, ", "))
}

// CheckUnique returns a *DuplicateNameError listing every name that occurs
// more than once, in order of first occurrence, or nil.
func CheckUnique(kind string, names []string) error {
	counts := make(map[string]int, len(names))
	var dups []string
	for _, name := range names {
		counts[name]++
		if counts[name] == 2 {
			dups = append(dups, name)
		}
	}
	if len(dups) == 0 {
		return nil
	}
	dupCounts := make(map[string]int, len(dups))
	for _, name := range dups {
		dupCounts[name] = counts[name]
	}
	return &DuplicateNameError{Kind: kind, Names: dups, Counts: dupCounts}
}
