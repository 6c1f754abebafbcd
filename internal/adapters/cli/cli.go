// Package cli is the command-line adapter. It maps arguments onto
// app.QuoteService use cases and prints the results.
package cli

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jsamuelsen/quotes/internal/app"
	"github.com/jsamuelsen/quotes/internal/domain"
	"github.com/jsamuelsen/quotes/internal/markup"
	"github.com/jsamuelsen/quotes/internal/platform/logging"
	"github.com/jsamuelsen/quotes/internal/ports"
)

// Config contains the dependencies of the CLI.
type Config struct {
	Service  *app.QuoteService
	Health   ports.HealthRegistry
	Prompter ports.Prompter

	// Out defaults to stdout.
	Out io.Writer

	// Styles and Quotes draw the output; both default to plain rendering on Out.
	Styles      *lipgloss.Renderer
	Quotes      *markup.Renderer
	HeaderColor string

	Build  BuildInfo
	Logger *slog.Logger
}

// CLI dispatches command lines to the quote service.
type CLI struct {
	svc      *app.QuoteService
	health   ports.HealthRegistry
	prompter ports.Prompter
	out      io.Writer
	print    *printer
	build    BuildInfo
	logger   *slog.Logger
}

// New creates the CLI. Panics if Service is nil.
func New(cfg Config) *CLI {
	if cfg.Service == nil {
		panic("cli: Service is required")
	}

	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}

	styles := cfg.Styles
	if styles == nil {
		styles = markup.NewStyleRenderer(out, markup.ColorNever)
	}

	quotes := cfg.Quotes
	if quotes == nil {
		quotes = markup.NewRenderer(styles)
	}

	headerColor := cfg.HeaderColor
	if headerColor == "" {
		headerColor = "12"
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &CLI{
		svc:      cfg.Service,
		health:   cfg.Health,
		prompter: cfg.Prompter,
		out:      out,
		print:    newPrinter(out, styles, quotes, headerColor),
		build:    cfg.Build,
		logger:   logger.With(slog.String("component", "cli")),
	}
}

// Run executes one command line. args excludes the program name.
func (c *CLI) Run(ctx context.Context, args []string) error {
	// cobra reads os.Args when handed nil
	if args == nil {
		args = []string{}
	}

	root := c.command()
	root.SetArgs(args)
	root.SetOut(c.out)

	return root.ExecuteContext(ctx)
}

func (c *CLI) command() *cobra.Command {
	root := &cobra.Command{
		Use:   "quotes",
		Short: "Keep a book of quotes and show one at random",
		Long: `Keep a book of quotes and show one at random.

Quote text may contain markup:
  <text>    emphasis
  *text*    emphasised action, asterisks kept
  {A}..{F}  the people list, in order`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          c.runRandom,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			ctx = logging.WithContext(ctx, logging.FromContextOr(ctx, c.logger))
			ctx = logging.WithCommand(ctx, cmd.CommandPath())
			cmd.SetContext(ctx)
			logging.FromContext(ctx).DebugContext(ctx, "running command")
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	root.AddCommand(
		&cobra.Command{
			Use:   "random",
			Short: "Print a random quote",
			Args:  cobra.NoArgs,
			RunE:  c.runRandom,
		},
		&cobra.Command{
			Use:   "show ID",
			Short: "Print one quote",
			Args:  cobra.MaximumNArgs(1),
			RunE:  c.runShow,
		},
		c.listCommand(),
		c.addCommand(),
		&cobra.Command{
			Use:   "edit ID [TEXT...]",
			Short: "Replace a quote's text, prompting when TEXT is absent",
			RunE:  c.runEdit,
		},
		&cobra.Command{
			Use:     "delete ID",
			Aliases: []string{"rm"},
			Short:   "Remove a quote; later quotes move down one ID",
			Args:    cobra.MaximumNArgs(1),
			RunE:    c.runDelete,
		},
		&cobra.Command{
			Use:   "fav ID",
			Short: "Mark a quote as favourite",
			Args:  cobra.MaximumNArgs(1),
			RunE:  c.runFavourite(true),
		},
		&cobra.Command{
			Use:   "unfav ID",
			Short: "Clear a quote's favourite marker",
			Args:  cobra.MaximumNArgs(1),
			RunE:  c.runFavourite(false),
		},
		c.peopleCommand(),
		&cobra.Command{
			Use:   "health",
			Short: "Check that the quote store is usable",
			Args:  cobra.NoArgs,
			RunE:  c.runHealth,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(*cobra.Command, []string) {
				c.print.Version(c.build)
			},
		},
	)

	return root
}

func (c *CLI) listCommand() *cobra.Command {
	var favourites bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print every quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			qs, err := c.svc.List(cmd.Context(), favourites)
			if err != nil {
				return err
			}

			if len(qs) == 0 {
				c.print.Line("no quotes")
				return nil
			}

			c.print.Quotes(qs)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&favourites, "favourites", "f", false, "only favourite quotes")

	return cmd
}

func (c *CLI) addCommand() *cobra.Command {
	var favourite bool

	cmd := &cobra.Command{
		Use:   "add [TEXT...]",
		Short: "Add a quote, prompting when TEXT is absent",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			text, err := c.text(ctx, args, "New quote", "")
			if err != nil {
				return err
			}

			id, err := c.svc.Add(ctx, app.AddInput{Text: text, Favourite: favourite})
			if err != nil {
				return err
			}

			c.print.Line("added quote %d", id)

			return nil
		},
	}

	cmd.Flags().BoolVar(&favourite, "fav", false, "mark the new quote as favourite")

	return cmd
}

func (c *CLI) peopleCommand() *cobra.Command {
	people := &cobra.Command{
		Use:   "people",
		Short: "List the people that {A}..{F} stand for",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			list, err := c.svc.People(cmd.Context())
			if err != nil {
				return err
			}

			c.print.People(list)

			return nil
		},
	}

	people.AddCommand(&cobra.Command{
		Use:   "add NAME...",
		Short: "Append a person; at most six are addressable",
		RunE: func(cmd *cobra.Command, args []string) error {
			person, err := c.svc.AddPerson(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			c.print.Line("added {%c} %s", person.Letter, person.Name)

			return nil
		},
	})

	return people
}

func (c *CLI) runRandom(cmd *cobra.Command, _ []string) error {
	q, err := c.svc.Random(cmd.Context())
	if err != nil {
		return err
	}

	c.print.Quote(q)

	return nil
}

func (c *CLI) runShow(cmd *cobra.Command, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	q, err := c.svc.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	c.print.Quote(q)

	return nil
}

func (c *CLI) runEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := parseID(args)
	if err != nil {
		return err
	}

	var text string
	if len(args) > 1 {
		text = strings.Join(args[1:], " ")
	} else {
		// pre-fill with the stored text, markup and all
		current, err := c.svc.Source(ctx, id)
		if err != nil {
			return err
		}

		text, err = c.text(ctx, nil, "Edit quote "+strconv.Itoa(id), current)
		if err != nil {
			return err
		}
	}

	if err := c.svc.Edit(ctx, app.EditInput{ID: id, Text: text}); err != nil {
		return err
	}

	c.print.Line("updated quote %d", id)

	return nil
}

func (c *CLI) runDelete(cmd *cobra.Command, args []string) error {
	id, err := parseID(args)
	if err != nil {
		return err
	}

	if err := c.svc.Delete(cmd.Context(), id); err != nil {
		return err
	}

	c.print.Line("deleted quote %d", id)

	return nil
}

func (c *CLI) runFavourite(fav bool) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args)
		if err != nil {
			return err
		}

		if err := c.svc.SetFavourite(cmd.Context(), id, fav); err != nil {
			return err
		}

		if fav {
			c.print.Line("quote %d is a favourite", id)
		} else {
			c.print.Line("quote %d is no longer a favourite", id)
		}

		return nil
	}
}

func (c *CLI) runHealth(cmd *cobra.Command, _ []string) error {
	if c.health == nil {
		c.print.Line("no health checks registered")
		return nil
	}

	res := c.health.CheckAll(cmd.Context())
	c.print.Health(res)

	if res.Status != ports.HealthStatusHealthy {
		return domain.NewUnavailableError("quotes", "health check failed")
	}

	return nil
}

// text joins args, or asks the prompter when there are none.
func (c *CLI) text(ctx context.Context, args []string, label, initial string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if c.prompter == nil {
		return "", domain.NewValidationError("text", "is required")
	}

	return c.prompter.Prompt(ctx, label, initial)
}

// parseID reads the quote ID from the first argument.
func parseID(args []string) (int, error) {
	if len(args) == 0 || args[0] == "" {
		return 0, domain.NewValidationError("id", "missing quote id")
	}

	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, domain.NewValidationErrorWithValue("id", "must be a positive number", args[0])
	}

	return id, nil
}
