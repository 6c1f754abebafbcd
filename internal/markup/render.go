package markup

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects whether styled output uses terminal colors.
type ColorMode string

// Color modes.
const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// DefaultEmphasisColor is bright yellow.
const DefaultEmphasisColor = "11"

// NewStyleRenderer returns a lipgloss renderer for w. In auto mode the
// color profile is detected from w and the environment (NO_COLOR included).
func NewStyleRenderer(w io.Writer, mode ColorMode) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)

	switch mode {
	case ColorNever:
		r.SetColorProfile(termenv.Ascii)
	case ColorAlways:
		if r.ColorProfile() == termenv.Ascii {
			r.SetColorProfile(termenv.ANSI256)
		}
	case ColorAuto:
	}

	return r
}

// Renderer turns parsed segments into display strings. It holds no state
// between calls and is safe for concurrent use.
type Renderer struct {
	emphasis lipgloss.Style
}

// Option configures a Renderer.
type Option func(*rendererOptions)

type rendererOptions struct {
	emphasisColor string
}

// WithEmphasisColor sets the emphasis foreground color (ANSI number or hex).
func WithEmphasisColor(color string) Option {
	return func(o *rendererOptions) {
		if color != "" {
			o.emphasisColor = color
		}
	}
}

// NewRenderer creates a Renderer drawing styles through sr.
func NewRenderer(sr *lipgloss.Renderer, opts ...Option) *Renderer {
	o := rendererOptions{emphasisColor: DefaultEmphasisColor}
	for _, opt := range opts {
		opt(&o)
	}

	return &Renderer{
		emphasis: sr.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(o.emphasisColor)).
			TabWidth(lipgloss.NoTabConversion),
	}
}

// Render concatenates the segments, styling emphasis spans. Segments of an
// unknown kind are written verbatim.
func (r *Renderer) Render(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		switch seg.Kind {
		case KindEmphasis:
			b.WriteString(StyleLines(r.emphasis, seg.Text))
		case KindPlain:
			b.WriteString(seg.Text)
		default:
			b.WriteString(seg.Text)
		}
	}

	return b.String()
}

// RenderQuote renders the segments of p.
func (r *Renderer) RenderQuote(p ParsedQuote) string {
	return r.Render(p.Segments)
}

// StyleLines applies style to each line of s separately. lipgloss pads
// multi-line blocks to a common width, which would add characters to the
// quote. Empty lines are left unstyled.
func StyleLines(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}

		lines[i] = style.Render(line)
	}

	return strings.Join(lines, "\n")
}
