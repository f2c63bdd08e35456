package tradebook

import (
	"strings"
	"unicode/utf8"
)

// ResolveCompany maps a loosely typed company name onto one of the candidate
// names, or returns the trimmed input unchanged when nothing matches (a
// genuinely new company is allowed in).
//
// Matching is tried in priority order, first hit wins:
//  1. exact string equality,
//  2. equality of matching keys (see [CompanyKey]),
//  3. substring containment in either direction between matching keys,
//     preferring the candidate whose key length is closest to the input's
//     (ties go to the first candidate encountered).
//
// The resolver reconciles manually typed bulk input against known portfolio
// names. It must not be used on canonical paths: trade entry and ledger
// replay take company names as given.
func ResolveCompany(input string, candidates []string) string {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return raw
	}
	for _, c := range candidates {
		if c == raw {
			return c
		}
	}

	key := CompanyKey(raw)
	if key == "" {
		return raw
	}
	for _, c := range candidates {
		if CompanyKey(c) == key {
			return c
		}
	}

	best := ""
	bestScore := -1
	for _, c := range candidates {
		ck := CompanyKey(c)
		if ck == "" {
			continue
		}
		if !strings.Contains(ck, key) && !strings.Contains(key, ck) {
			continue
		}
		score := utf8.RuneCountInString(ck) - utf8.RuneCountInString(key)
		if score < 0 {
			score = -score
		}
		if bestScore < 0 || score < bestScore {
			bestScore, best = score, c
		}
	}
	if best != "" {
		return best
	}
	return raw
}
