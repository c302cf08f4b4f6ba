package attributes

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize folds an attribute code or display name to its canonical
// comparison form: trimmed, accent-stripped, lower-cased. Group lookups
// apply it to both sides so "Café" and "cafe" resolve identically.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if folded, _, err := transform.String(stripAccents, s); err == nil {
		s = folded
	}
	return strings.ToLower(s)
}

// Slugify derives a store slug from a display name: normalized, with
// runs of non-alphanumerics collapsed to single hyphens.
func Slugify(s string) string {
	s = Normalize(s)
	var sb strings.Builder
	lastHyphen := true
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				sb.WriteRune('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(sb.String(), "-")
}
