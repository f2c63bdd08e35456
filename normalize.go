package tradebook

import (
	"strings"
	"unicode"
)

// companyKeyStrip is the set of punctuation removed from company matching keys.
const companyKeyStrip = "-_.()[]{}'\",&/"

// CompanyKey reduces a free-text company name to a matching key: trimmed,
// lower-cased, with whitespace (including non-breaking spaces) and a fixed
// set of punctuation removed. The key is used for lookups and deduplication
// only, never for display.
func CompanyKey(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) || strings.ContainsRune(companyKeyStrip, r) {
			return -1
		}
		return r
	}, s)
}
