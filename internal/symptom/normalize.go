// Package symptom turns free-text symptom descriptions into a medicine label
// using an ordered keyword rule table.
package symptom

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize lowercases raw, folds accented letters to their base letter and
// drops everything that is not an ASCII letter or whitespace. Runs of
// whitespace are kept as they are. Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}

	// transform.Chain keeps internal buffers, so it is built per call.
	fold := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(fold, strings.ToLower(raw))
	if err != nil {
		folded = strings.ToLower(raw)
	}

	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Query is a symptom description together with its normalized form.
type Query struct {
	Raw        string
	Normalized string
}

// NewQuery builds a Query from raw text.
func NewQuery(raw string) Query {
	return Query{Raw: raw, Normalized: Normalize(raw)}
}
