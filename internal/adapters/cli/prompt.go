package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen/quotes/internal/markup"
)

// VariablesFunc supplies the substitution table shown in the prompt preview.
type VariablesFunc func(ctx context.Context) markup.Variables

// PrompterConfig configures a TextPrompter.
type PrompterConfig struct {
	// In and Out default to stdin and stdout.
	In  io.Reader
	Out io.Writer

	// Styles draws the label and hints.
	Styles *lipgloss.Renderer

	// Preview renders the live markup preview.
	Preview *markup.Renderer

	// Variables is optional; without it {A}..{F} preview as empty.
	Variables VariablesFunc
}

// TextPrompter reads one line of quote text in a small terminal form,
// rendering the markup underneath as it is typed.
type TextPrompter struct {
	in        io.Reader
	out       io.Writer
	styles    *lipgloss.Renderer
	preview   *markup.Renderer
	variables VariablesFunc
}

// NewTextPrompter creates a prompter. Panics if Preview is nil.
func NewTextPrompter(cfg PrompterConfig) *TextPrompter {
	if cfg.Preview == nil {
		panic("cli: Preview renderer is required")
	}

	p := &TextPrompter{
		in:        cfg.In,
		out:       cfg.Out,
		styles:    cfg.Styles,
		preview:   cfg.Preview,
		variables: cfg.Variables,
	}

	if p.in == nil {
		p.in = os.Stdin
	}

	if p.out == nil {
		p.out = os.Stdout
	}

	if p.styles == nil {
		p.styles = lipgloss.NewRenderer(p.out)
	}

	return p
}

// Prompt runs the form until Enter or Esc/Ctrl+C.
// Returns ErrPromptCancelled when the user backs out.
func (p *TextPrompter) Prompt(ctx context.Context, label, initial string) (string, error) {
	var vars markup.Variables
	if p.variables != nil {
		vars = p.variables(ctx)
	}

	m := newPromptModel(p.styles, p.preview, vars, label, initial)

	prog := tea.NewProgram(m,
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := prog.Run()
	if err != nil {
		return "", fmt.Errorf("running prompt: %w", err)
	}

	result, ok := final.(promptModel)
	if !ok || !result.submitted {
		return "", ErrPromptCancelled
	}

	return result.input.Value(), nil
}

type promptModel struct {
	label     string
	input     textinput.Model
	vars      markup.Variables
	preview   *markup.Renderer
	title     lipgloss.Style
	hint      lipgloss.Style
	submitted bool
	cancelled bool
}

func newPromptModel(
	sr *lipgloss.Renderer,
	preview *markup.Renderer,
	vars markup.Variables,
	label, initial string,
) promptModel {
	ti := textinput.New()
	ti.Placeholder = "{A}: <emphasis> or *action*"
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()

	return promptModel{
		label:   label,
		input:   ti,
		vars:    vars,
		preview: preview,
		title:   sr.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		hint:    sr.NewStyle().Faint(true),
	}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			m.cancelled = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m promptModel) View() string {
	// cleared on exit so the form does not stay in the scrollback
	if m.submitted || m.cancelled {
		return ""
	}

	return fmt.Sprintf("%s\n%s\n\n%s\n%s\n\n%s\n",
		m.title.Render(m.label),
		m.input.View(),
		m.hint.Render("preview:"),
		m.preview.Render(markup.Parse(m.input.Value(), m.vars)),
		m.hint.Render("enter: save  esc: cancel"),
	)
}
