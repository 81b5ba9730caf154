// Package strutil provides text normalization helpers for labels and
// category names coming from bank exports and user input.
package strutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// CleanString normalizes a user-supplied name to a portable plain-text form:
// diacritics are stripped, whitespace runs collapse to single spaces, and
// the result is trimmed. "Alimentación  rápide" becomes "Alimentacion rapide".
func CleanString(s string) string {
	out, _, err := transform.String(stripMarks, s)
	if err != nil {
		out = s
	}
	return CollapseSpaces(out)
}

// CollapseSpaces trims s and collapses internal whitespace runs to single
// spaces.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
