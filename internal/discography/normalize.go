package discography

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// editionTokens mark a trailing segment as an edition suffix, e.g.
// "Thriller (25th Anniversary Edition)" or "Bad - Remastered 2012".
var editionTokens = map[string]struct{}{
	"anniversary": {},
	"bonus":       {},
	"deluxe":      {},
	"edition":     {},
	"expanded":    {},
	"reissue":     {},
	"remaster":    {},
	"remastered":  {},
	"special":     {},
	"version":     {},
}

// NormalizeTitle trims, collapses internal whitespace and case-folds a title.
// Punctuation is kept: "Off the Wall" and "Off The Wall!" do not match.
func NormalizeTitle(title string) string {
	collapsed := strings.Join(strings.Fields(title), " ")
	if collapsed == "" {
		return ""
	}
	return cases.Fold().String(collapsed)
}

// normalizeEditionInsensitive strips trailing edition suffixes before
// normalizing. The result is still compared for exact equality.
func normalizeEditionInsensitive(title string) string {
	return NormalizeTitle(stripEditionSuffixes(title))
}

func stripEditionSuffixes(input string) string {
	trimmed := strings.TrimSpace(input)
	for {
		next := trimBracketedSuffix(trimmed)
		next = trimDashSuffix(next)
		next = strings.TrimSpace(next)
		if next == trimmed || next == "" {
			return trimmed
		}
		trimmed = next
	}
}

func trimBracketedSuffix(input string) string {
	pairs := [][2]string{{"(", ")"}, {"[", "]"}}
	for _, p := range pairs {
		if !strings.HasSuffix(input, p[1]) {
			continue
		}
		idx := strings.LastIndex(input, p[0])
		if idx == -1 || idx >= len(input)-1 {
			continue
		}
		if suffixHasEditionToken(input[idx+1 : len(input)-1]) {
			return input[:idx]
		}
	}
	return input
}

func trimDashSuffix(input string) string {
	idx := strings.LastIndex(input, " - ")
	if idx == -1 {
		return input
	}
	if suffixHasEditionToken(input[idx+3:]) {
		return input[:idx]
	}
	return input
}

func suffixHasEditionToken(input string) bool {
	for _, token := range strings.FieldsFunc(strings.ToLower(input), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}) {
		if _, ok := editionTokens[token]; ok {
			return true
		}
	}
	return false
}
