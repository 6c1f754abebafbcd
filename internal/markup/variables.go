package markup

import "slices"

// Variables is the substitution table. Letter A is position 0, B position 1,
// and so on up to F.
type Variables []string

const (
	firstLetter = 'A'
	lastLetter  = 'F'

	// MaxVariables is the number of addressable letters.
	MaxVariables = lastLetter - firstLetter + 1
)

// NewVariables builds a table from the people list. The list is copied so
// later changes to it do not leak into a running table.
func NewVariables(people []string) Variables {
	return Variables(slices.Clone(people))
}

// Lookup returns the value for letter, or "" when the letter is outside
// A..F or beyond the end of the table.
func (v Variables) Lookup(letter rune) string {
	if letter < firstLetter || letter > lastLetter {
		return ""
	}

	i := int(letter - firstLetter)
	if i >= len(v) {
		return ""
	}

	return v[i]
}

// Letter returns the substitution letter for position i.
func Letter(i int) (rune, bool) {
	if i < 0 || i >= MaxVariables {
		return 0, false
	}

	return rune(firstLetter + i), true
}
