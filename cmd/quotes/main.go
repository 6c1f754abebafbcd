// Package main is the entry point for the quotes command.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"

	"github.com/jsamuelsen/quotes/internal/adapters/cli"
	"github.com/jsamuelsen/quotes/internal/adapters/random"
	"github.com/jsamuelsen/quotes/internal/adapters/store"
	"github.com/jsamuelsen/quotes/internal/app"
	"github.com/jsamuelsen/quotes/internal/markup"
	"github.com/jsamuelsen/quotes/internal/platform/config"
	"github.com/jsamuelsen/quotes/internal/platform/logging"
	"github.com/jsamuelsen/quotes/internal/platform/telemetry"
	"github.com/jsamuelsen/quotes/internal/ports"
)

// Build-time variables, injected via ldflags.
// Example: go build -ldflags "-X main.Version=1.0.0 -X main.Commit=$(git rev-parse HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
var (
	// Version is the semantic version of the binary.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// BuildTime is the timestamp when the binary was built.
	BuildTime = "unknown"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", cli.FormatError(err))
		os.Exit(1)
	}
}

// run executes one command line against the configured quote book.
// Quotes go to stdout; diagnostics and the interactive prompt go to stderr.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. Load and validate configuration (fail fast)
	profile := config.Profile()

	cfg, err := config.Load(config.Dir(), profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// 2. Initialize logging; every invocation gets its own correlation id
	logger := logging.NewWithWriter(&logging.Config{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.App.Name,
		Version: Version,
		File: logging.FileConfig{
			Enabled:    cfg.Log.File.Enabled,
			Path:       cfg.Log.File.Path,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		},
	}, stderr)
	logging.SetDefault(logger)

	ctx = logging.WithContext(ctx, logger)
	ctx = logging.WithCorrelationID(ctx, uuid.NewString())

	logging.FromContext(ctx).DebugContext(ctx, "starting",
		slog.String("version", Version),
		slog.String("commit", Commit),
		slog.String("profile", profile),
	)

	// 3. Initialize telemetry (noop if disabled)
	telProvider, err := telemetry.New(ctx, &telemetry.Config{
		Enabled:      cfg.Telemetry.Enabled,
		Endpoint:     cfg.Telemetry.Endpoint,
		ServiceName:  cfg.Telemetry.ServiceName,
		Version:      Version,
		Environment:  cfg.App.Environment,
		SamplingRate: cfg.Telemetry.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), telemetry.DefaultShutdownTimeout)
		defer cancel()

		if shutdownErr := telProvider.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Error("telemetry shutdown error", slog.Any("error", shutdownErr))
		}
	}()

	metrics, err := telemetry.NewMetrics()
	if err != nil {
		return fmt.Errorf("creating metrics: %w", err)
	}

	// 4. Create the quote store and register it as a health checker
	quoteStore := store.New(store.Config{
		Path:   cfg.Store.Path,
		Logger: logger,
	})

	logging.FromContext(ctx).DebugContext(ctx, "quote store ready", slog.String("path", quoteStore.Path()))

	healthRegistry := ports.NewHealthRegistry(cfg.Health.Timeout)
	if err := healthRegistry.Register(quoteStore); err != nil {
		return fmt.Errorf("registering quote store health check: %w", err)
	}

	// 5. Create quote service (application layer)
	quoteService := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: quoteStore,
		Picker:     random.New(),
		Metrics:    metrics,
		Logger:     logger,
	})

	// 6. Terminal output: quotes on stdout, the interactive prompt on stderr
	mode := markup.ColorMode(cfg.Display.Color)
	emphasis := markup.WithEmphasisColor(cfg.Display.EmphasisColor)

	stdoutStyles := markup.NewStyleRenderer(stdout, mode)
	stderrStyles := markup.NewStyleRenderer(stderr, mode)

	prompter := cli.NewTextPrompter(cli.PrompterConfig{
		In:        stdin,
		Out:       stderr,
		Styles:    stderrStyles,
		Preview:   markup.NewRenderer(stderrStyles, emphasis),
		Variables: peopleVariables(quoteService),
	})

	// 7. Dispatch the command line
	return cli.New(cli.Config{
		Service:     quoteService,
		Health:      healthRegistry,
		Prompter:    prompter,
		Out:         stdout,
		Styles:      stdoutStyles,
		Quotes:      markup.NewRenderer(stdoutStyles, emphasis),
		HeaderColor: cfg.Display.HeaderColor,
		Build:       cli.NewBuildInfo(Version, Commit, BuildTime),
		Logger:      logger,
	}).Run(ctx, args)
}

// peopleVariables feeds the prompt preview from the stored people list.
// A store that cannot be read previews {A}..{F} as empty.
func peopleVariables(svc *app.QuoteService) cli.VariablesFunc {
	return func(ctx context.Context) markup.Variables {
		people, err := svc.People(ctx)
		if err != nil {
			return nil
		}

		names := make([]string, len(people))
		for i, p := range people {
			names[i] = p.Name
		}

		return markup.NewVariables(names)
	}
}
