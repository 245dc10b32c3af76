package data

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// ID is a normalized identifier: lowercase ASCII letters and digits only, such as
// "mrmime" or "doubleedge".
type ID string

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// ToID converts a display name to an ID. Accents are removed before everything that is
// not a letter or digit is dropped.
func ToID(name string) ID {
	s, _, err := transform.String(stripMarks, name)
	if err != nil {
		s = name
	}

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		}
	}
	return ID(b.String())
}
