// Package markup parses and renders the inline quote markup.
//
// A quote is plain text with three kinds of markup:
//
//	<emphasis>   an emphasis span; the angle brackets are dropped
//	*action*     an action span; the asterisks are kept
//	{A} .. {F}   the name of the Nth person, substituted as plain text
//
// Parsing never fails. Unterminated spans and unknown substitution tokens
// degrade to plain text.
package markup

import (
	"strings"

	"github.com/jsamuelsen/quotes/internal/domain"
)

// Kind is the rendered kind of a segment.
type Kind int

// Segment kinds. Emphasis covers both <...> and *...* spans: they are
// delimited differently but display the same.
const (
	KindPlain Kind = iota
	KindEmphasis
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindEmphasis:
		return "emphasis"
	default:
		return "unknown"
	}
}

// Segment is a run of text with a single rendered kind.
type Segment struct {
	Kind Kind
	Text string
}

// Plain returns a plain text segment.
func Plain(text string) Segment {
	return Segment{Kind: KindPlain, Text: text}
}

// Emphasis returns an emphasis segment.
func Emphasis(text string) Segment {
	return Segment{Kind: KindEmphasis, Text: text}
}

// ParsedQuote is a quote after markup parsing.
type ParsedQuote struct {
	Segments  []Segment
	Favourite bool
}

// ParseQuote parses the text of q with the given variables.
func ParseQuote(q domain.Quote, vars Variables) ParsedQuote {
	return ParsedQuote{
		Segments:  Parse(q.Text, vars),
		Favourite: q.Favourite,
	}
}

// Text concatenates the segment texts without styling.
func (p ParsedQuote) Text() string {
	var b strings.Builder
	for _, seg := range p.Segments {
		b.WriteString(seg.Text)
	}

	return b.String()
}
