// Package testcase binds resolved parameter sets to renderers and validates
// the resulting test cases as a batch.
package testcase

import (
	"context"
	"errors"
	"fmt"

	"github.com/vk/lteval/internal/config"
	"github.com/vk/lteval/internal/ctxlog"
	"github.com/vk/lteval/internal/paramset"
)

// TestCase is one renderer configuration to evaluate on every scene.
type TestCase struct {
	Name        string
	Description string
	Renderer    string
	Params      *paramset.Set
}

// IsReady reports whether the parameter set of the test case is resolved.
func (tc *TestCase) IsReady() bool {
	return tc.Params != nil && tc.Params.IsReady()
}

// UnresolvedReferenceError reports a test case whose parameters still cite
// bases that could not be resolved.
type UnresolvedReferenceError struct {
	TestCase string
	Bases    []string
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("test case %q references parameter sets that could not be resolved: %q", e.TestCase, e.Bases)
}

// Resolve resolves the named parameter sets of the model, then every test
// case against them. All validation problems are collected and returned
// together; only a base cycle stops resolution before the test cases are
// considered. Of parameter sets sharing a name, the first one is used to
// resolve the test cases.
func Resolve(ctx context.Context, model *config.Model) ([]*TestCase, paramset.Table, error) {
	logger := ctxlog.FromContext(ctx)
	var errs []error

	names := make([]string, 0, len(model.ParameterSets))
	defs := make([]paramset.Definition, 0, len(model.ParameterSets))
	seen := make(map[string]bool, len(model.ParameterSets))
	for _, d := range model.ParameterSets {
		names = append(names, d.Name)
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		defs = append(defs, paramset.Definition{Name: d.Name, Set: d.Set()})
	}
	if err := config.CheckUnique("parameter set", names); err != nil {
		errs = append(errs, err)
	}

	table, err := paramset.ResolveNamed(ctx, defs)
	if err != nil {
		return nil, nil, errors.Join(append(errs, err)...)
	}
	logger.Debug("Named parameter sets resolved.", "count", len(table))

	cases := make([]*TestCase, 0, len(model.TestCases))
	for _, d := range model.TestCases {
		cases = append(cases, &TestCase{
			Name:        d.Name,
			Description: d.Description,
			Renderer:    d.Renderer,
			Params:      d.Params.Set().ResolveBase(table),
		})
	}
	if err := Validate(cases); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, nil, err
	}
	return cases, table, nil
}

// Validate checks that test case names are unique and that every test case
// is ready. Every violation is reported.
func Validate(cases []*TestCase) error {
	var errs []error
	names := make([]string, 0, len(cases))
	for _, tc := range cases {
		names = append(names, tc.Name)
	}
	if err := config.CheckUnique("test case", names); err != nil {
		errs = append(errs, err)
	}
	for _, tc := range cases {
		if tc.IsReady() {
			continue
		}
		var bases []string
		if tc.Params != nil {
			bases = tc.Params.Bases()
		}
		errs = append(errs, &UnresolvedReferenceError{TestCase: tc.Name, Bases: bases})
	}
	return errors.Join(errs...)
}
