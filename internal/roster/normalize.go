package roster

import (
	"sort"
	"strings"
)

var generationalSuffixes = map[string]struct{}{
	"jr":  {},
	"sr":  {},
	"ii":  {},
	"iii": {},
	"iv":  {},
	"v":   {},
}

// NormalizeName reduces a free-text name to an order-insensitive comparison key.
// Punctuation and case are ignored, single-letter tokens (middle initials) are
// dropped unless they are a generational suffix, and the remaining tokens are sorted.
func NormalizeName(name string) string {
	if name == "" {
		return ""
	}

	cleaned := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return ' '
	}, strings.ToLower(name))

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, tok := range fields {
		if len(tok) > 1 {
			tokens = append(tokens, tok)
			continue
		}
		if _, ok := generationalSuffixes[tok]; ok {
			tokens = append(tokens, tok)
		}
	}

	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
