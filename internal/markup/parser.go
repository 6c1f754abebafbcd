package markup

import "strings"

const (
	emphasisOpen  = '<'
	emphasisClose = '>'
	actionDelim   = '*'

	substitutionOpen  = '{'
	substitutionClose = '}'
	substitutionLen   = 3
)

// scanMode is the parser state. Emphasis and action spans do not nest.
type scanMode int

const (
	modeNormal scanMode = iota
	modeEmphasis
	modeAction
)

// Parse scans text into an ordered list of segments.
//
// Substitutions are resolved inline, in every mode, before any markup is
// interpreted, so {A} inside a span becomes part of that span's text.
// A span still open at the end of the text is emitted as plain text; the
// opening < of such a span is lost while an opening * is kept.
// Invalid UTF-8 bytes come out as U+FFFD.
func Parse(text string, vars Variables) []Segment {
	var (
		segments []Segment
		buf      strings.Builder
		mode     = modeNormal
	)

	flush := func(kind Kind) {
		segments = append(segments, Segment{Kind: kind, Text: buf.String()})
		buf.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		r := runes[i]

		if letter, ok := substitution(runes[i:]); ok {
			buf.WriteString(vars.Lookup(letter))
			i += substitutionLen - 1

			continue
		}

		switch mode {
		case modeEmphasis:
			if r == emphasisClose {
				flush(KindEmphasis)
				mode = modeNormal

				continue
			}

			buf.WriteRune(r)

		case modeAction:
			buf.WriteRune(r)

			if r == actionDelim {
				flush(KindEmphasis)
				mode = modeNormal
			}

		default:
			switch r {
			case emphasisOpen:
				if buf.Len() > 0 {
					flush(KindPlain)
				}

				mode = modeEmphasis

			case actionDelim:
				if buf.Len() > 0 {
					flush(KindPlain)
				}

				mode = modeAction

				buf.WriteRune(r)

			default:
				buf.WriteRune(r)
			}
		}
	}

	if buf.Len() > 0 {
		flush(KindPlain)
	}

	return segments
}

// substitution reports whether window starts with a {A}..{F} token and
// returns its letter. Windows shorter than the token never match.
func substitution(window []rune) (rune, bool) {
	if len(window) < substitutionLen {
		return 0, false
	}

	letter := window[1]
	if window[0] != substitutionOpen || window[2] != substitutionClose {
		return 0, false
	}

	if letter < firstLetter || letter > lastLetter {
		return 0, false
	}

	return letter, true
}
