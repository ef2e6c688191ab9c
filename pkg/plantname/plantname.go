// Package plantname canonicalizes free-text plant names into lookup keys.
package plantname

import (
	"strings"
	"unicode"
)

// Normalize strips every whitespace rune from name and lowercases the rest.
// "Holy  Basil", "holybasil" and " HOLY\tBASIL " all normalize to "holybasil".
func Normalize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}
