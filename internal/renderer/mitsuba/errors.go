package mitsuba

import "fmt"

// TemplateAnchorMissingError reports a settings template without an element
// the materialization needs.
type TemplateAnchorMissingError struct {
	Template string
	Anchor   string
}

func (e *TemplateAnchorMissingError) Error() string {
	if e.Template == "" {
		return fmt.Sprintf("settings template has no %s element", e.Anchor)
	}
	return fmt.Sprintf("settings template %s has no %s element", e.Template, e.Anchor)
}
