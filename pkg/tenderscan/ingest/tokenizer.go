package ingest

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Tokenize splits free text into a normalized token sequence for matching.
// The input is lowercased and NFD-decomposed so that combining diacritic
// marks separate from their base letters; every rune that is not a letter,
// a digit, or whitespace (which includes the decomposed marks and all
// punctuation) becomes a single space, and the result is split on
// whitespace runs. Pure and deterministic: identical input always yields
// identical output.
func Tokenize(text string) []string {
	decomposed := norm.NFD.String(strings.ToLower(text))
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, decomposed)
	return strings.Fields(mapped)
}

// CleanLine collapses whitespace runs to single spaces and trims the ends.
// Idempotent, so lines already cleaned by the document decoder pass
// through unchanged.
func CleanLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
