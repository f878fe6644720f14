package pbrt

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var lineComment = regexp.MustCompile(`#[^\n]*`)

// stripComments removes everything from a '#' to the end of its line.
func stripComments(src string) string {
	return lineComment.ReplaceAllString(src, "")
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsMark(r)
}

// tokenize splits src into maximal runs of word and non-word characters.
// Joining the tokens yields src again.
func tokenize(src string) []string {
	var tokens []string
	start := 0
	var inWord bool
	for i, r := range src {
		w := isWordRune(r)
		if i == 0 {
			inWord = w
			continue
		}
		if w != inWord {
			tokens = append(tokens, src[start:i])
			start = i
			inWord = w
		}
	}
	if start < len(src) {
		tokens = append(tokens, src[start:])
	}
	return tokens
}

// identifiers returns the indices of the tokens that name statements: tokens
// outside quoted strings that start with a letter or an underscore. A token
// holding an odd number of quotes opens or closes a quoted string.
func identifiers(tokens []string) []int {
	var idx []int
	quoted := false
	for i, tok := range tokens {
		if n := strings.Count(tok, `"`); n > 0 {
			if n%2 == 1 {
				quoted = !quoted
			}
			continue
		}
		if quoted {
			continue
		}
		r, _ := utf8.DecodeRuneInString(tok)
		if r == '_' || ('a' <= r && r <= 'z') || ('A' <= r && r <= 'Z') {
			idx = append(idx, i)
		}
	}
	return idx
}
