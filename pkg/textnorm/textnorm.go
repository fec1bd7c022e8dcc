// Package textnorm canonicalizes free-text identifiers so they can be compared
// without regard to case or accents.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultEmailDomain is used to synthesize an address when none is provided.
const DefaultEmailDomain = "empresa.com"

// StripDiacritics removes combining marks: NFD decompose, drop Mn, recompose.
func StripDiacritics(s string) string {
	if s == "" {
		return s
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// Fold lower-cases s, strips its diacritics and trims surrounding space.
// Lower-casing runs first: some upper-case runes lower to a base letter plus a
// combining mark, which must not survive into the result.
func Fold(s string) string {
	return strings.TrimSpace(StripDiacritics(strings.ToLower(s)))
}

// NormalizeEmail returns the canonical account identity for raw. An empty raw
// value is replaced by "{fallbackSeed}@empresa.com".
func NormalizeEmail(raw, fallbackSeed string) string {
	return NormalizeEmailWithDomain(raw, fallbackSeed, DefaultEmailDomain)
}

// NormalizeEmailWithDomain is NormalizeEmail with a configurable synthetic domain.
func NormalizeEmailWithDomain(raw, fallbackSeed, domain string) string {
	if strings.TrimSpace(raw) == "" {
		if domain == "" {
			domain = DefaultEmailDomain
		}
		raw = strings.TrimSpace(fallbackSeed) + "@" + domain
	}
	return Fold(raw)
}
