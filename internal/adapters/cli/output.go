package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/quotes/internal/app"
	"github.com/jsamuelsen/quotes/internal/markup"
	"github.com/jsamuelsen/quotes/internal/ports"
)

// BuildInfo contains build-time information about the binary.
// These values are typically injected at build time using ldflags.
type BuildInfo struct {
	Version   string
	Commit    string
	BuildTime string
	GoVersion string
}

// NewBuildInfo creates a BuildInfo with the Go version automatically set.
func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// printer writes quotes and reports to stdout.
type printer struct {
	w       io.Writer
	quotes  *markup.Renderer
	header  lipgloss.Style
	muted   lipgloss.Style
	healthy lipgloss.Style
	failing lipgloss.Style
}

func newPrinter(w io.Writer, sr *lipgloss.Renderer, quotes *markup.Renderer, headerColor string) *printer {
	return &printer{
		w:       w,
		quotes:  quotes,
		header:  sr.NewStyle().Bold(true).Foreground(lipgloss.Color(headerColor)),
		muted:   sr.NewStyle().Faint(true),
		healthy: sr.NewStyle().Foreground(lipgloss.Color("10")),
		failing: sr.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// Header returns the styled "[Quote ID: N]" line, with a heart for favourites.
func (p *printer) Header(id int, favourite bool) string {
	h := p.header.Render("[Quote ID: " + strconv.Itoa(id) + "]")
	if favourite {
		h += p.header.Render(" ♥")
	}

	return h
}

func (p *printer) Quote(q app.DisplayQuote) {
	fmt.Fprintln(p.w, p.Header(q.ID, q.Parsed.Favourite))
	fmt.Fprintln(p.w, p.quotes.RenderQuote(q.Parsed))
}

func (p *printer) Quotes(qs []app.DisplayQuote) {
	for i, q := range qs {
		if i > 0 {
			fmt.Fprintln(p.w)
		}

		p.Quote(q)
	}
}

func (p *printer) People(people []app.Person) {
	if len(people) == 0 {
		fmt.Fprintln(p.w, p.muted.Render("no people yet, add one with: quotes people add NAME"))
		return
	}

	for _, person := range people {
		fmt.Fprintf(p.w, "%s %s\n", p.header.Render("{"+string(person.Letter)+"}"), person.Name)
	}
}

func (p *printer) Health(res *ports.HealthResult) {
	for _, name := range res.Names() {
		check := res.Checks[name]

		status := p.healthy.Render(string(check.Status))
		if check.Status != ports.HealthStatusHealthy {
			status = p.failing.Render(string(check.Status))
		}

		line := fmt.Sprintf("%-12s %s %s", name, status, p.muted.Render(check.Duration.Round(time.Microsecond).String()))
		if check.Message != "" {
			line += "  " + check.Message
		}

		fmt.Fprintln(p.w, line)
	}

	fmt.Fprintf(p.w, "overall: %s\n", res.Status)
}

func (p *printer) Version(info BuildInfo) {
	fmt.Fprintf(p.w, "quotes %s\n", info.Version)
	fmt.Fprintf(p.w, "  commit:  %s\n", info.Commit)
	fmt.Fprintf(p.w, "  built:   %s\n", info.BuildTime)
	fmt.Fprintf(p.w, "  go:      %s\n", info.GoVersion)
}

func (p *printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}
