package title

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// diacriticStripper decomposes characters and drops their combining marks,
// so "Año" becomes "Ano" and "Amélie" becomes "Amelie".
var diacriticStripper = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize converts a title to the canonical form used as a comparison and
// lookup key: diacritics stripped, everything that is not an ASCII letter,
// digit or space removed, lowercased, whitespace collapsed.
// It never fails; unmappable input simply loses the characters that cannot
// be represented.
func Normalize(title string) string {
	stripped, _, err := transform.String(diacriticStripper, title)
	if err != nil {
		stripped = title
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}
