package pbrt

import (
	"strings"
)

// DescriptionInclude is the statement every scene-case ends with.
const DescriptionInclude = `Include "description.pbrt"`

// Materialize splices the statements into the settings text. A statement
// replaces the template text from its identifier up to the next identifier.
// Statements the template does not mention are appended, each on its own
// line. Text before the first identifier is kept.
func Materialize(template string, stmts []Statement) string {
	byGroup := make(map[string]string, len(stmts))
	for _, s := range stmts {
		byGroup[s.Group] = s.Text
	}

	tokens := tokenize(stripComments(template))
	idents := identifiers(tokens)

	var b strings.Builder
	first := len(tokens)
	if len(idents) > 0 {
		first = idents[0]
	}
	b.WriteString(strings.Join(tokens[:first], ""))

	handled := make(map[string]bool, len(stmts))
	for i, start := range idents {
		ident := tokens[start]
		if text, ok := byGroup[ident]; ok {
			handled[ident] = true
			b.WriteString(text)
			b.WriteString("\n")
			continue
		}
		end := len(tokens)
		if i+1 < len(idents) {
			end = idents[i+1]
		}
		b.WriteString(strings.Join(tokens[start:end], ""))
	}

	for _, s := range stmts {
		if handled[s.Group] {
			continue
		}
		b.WriteString("\n")
		b.WriteString(s.Text)
	}
	b.WriteString("\n")
	b.WriteString(DescriptionInclude)
	return b.String()
}
