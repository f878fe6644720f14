package registry

import (
	"errors"
	"fmt"

	"github.com/vk/lteval/internal/testcase"
)

// MissingRendererError reports a test case whose renderer is not usable,
// either because it was never declared or because its executable is
// missing.
type MissingRendererError struct {
	TestCase string
	Renderer string
}

func (e *MissingRendererError) Error() string {
	return fmt.Sprintf("test case %q uses renderer %q which is not declared or has no executable", e.TestCase, e.Renderer)
}

// ValidateTestCases checks that every test case names a usable renderer.
func (t Table) ValidateTestCases(cases []*testcase.TestCase) error {
	var errs []error
	for _, tc := range cases {
		if _, ok := t[tc.Renderer]; !ok {
			errs = append(errs, &MissingRendererError{TestCase: tc.Name, Renderer: tc.Renderer})
		}
	}
	return errors.Join(errs...)
}
