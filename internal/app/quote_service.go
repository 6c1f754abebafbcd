// Package app contains application services that orchestrate use cases.
// It coordinates the quote book held by a ports.QuoteRepository with the
// markup parser; terminal concerns belong to the cli adapter.
package app

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes/internal/domain"
	"github.com/jsamuelsen/quotes/internal/markup"
	"github.com/jsamuelsen/quotes/internal/platform/logging"
	"github.com/jsamuelsen/quotes/internal/platform/telemetry"
	"github.com/jsamuelsen/quotes/internal/ports"
)

// DisplayQuote is a quote ready for rendering.
type DisplayQuote struct {
	// ID is the quote's 1-based position in the book.
	ID int

	// Parsed holds the markup segments, with {A}..{F} already substituted.
	Parsed markup.ParsedQuote
}

// Person is a named entry of the people list with its substitution letter.
type Person struct {
	Letter rune
	Name   string
}

// QuoteService orchestrates quote book use cases.
// It depends on port interfaces, not concrete implementations.
type QuoteService struct {
	repo     ports.QuoteRepository
	picker   ports.IndexPicker
	metrics  *telemetry.Metrics
	executor *Executor
	logger   *slog.Logger
}

// QuoteServiceConfig contains the dependencies of the quote service.
type QuoteServiceConfig struct {
	Repository ports.QuoteRepository
	Picker     ports.IndexPicker

	// Metrics is optional; nil records nothing.
	Metrics *telemetry.Metrics

	Logger *slog.Logger
}

// NewQuoteService creates a quote service.
// Panics if Repository or Picker is nil. Defaults logger to slog.Default().
func NewQuoteService(cfg QuoteServiceConfig) *QuoteService {
	if cfg.Repository == nil {
		panic("app: Repository is required")
	}

	if cfg.Picker == nil {
		panic("app: Picker is required")
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	logger = logger.With(slog.String("component", "app.QuoteService"))

	return &QuoteService{
		repo:     cfg.Repository,
		picker:   cfg.Picker,
		metrics:  cfg.Metrics,
		executor: NewExecutor(logger),
		logger:   logger,
	}
}

// Random returns a uniformly chosen quote.
// Returns domain.ErrNotFound when the book is empty.
func (s *QuoteService) Random(ctx context.Context) (_ DisplayQuote, err error) {
	ctx, span := s.start(ctx, "quotes.Random")
	defer func() { endSpan(span, err) }()

	c, err := s.repo.Load(ctx)
	if err != nil {
		return DisplayQuote{}, err
	}

	if c.Len() == 0 {
		return DisplayQuote{}, domain.NewNotFoundError("quote", "")
	}

	idx, err := s.picker.Pick(c.Len())
	if err != nil {
		return DisplayQuote{}, err
	}

	span.SetAttributes(attribute.Int("quote.id", idx+1))
	s.log(ctx).DebugContext(ctx, "picked random quote",
		slog.Int("id", idx+1),
		slog.Int("of", c.Len()),
	)

	return s.display(ctx, c, idx+1)
}

// Get returns the quote with the given ID.
func (s *QuoteService) Get(ctx context.Context, id int) (_ DisplayQuote, err error) {
	ctx, span := s.start(ctx, "quotes.Get", attribute.Int("quote.id", id))
	defer func() { endSpan(span, err) }()

	c, err := s.repo.Load(ctx)
	if err != nil {
		return DisplayQuote{}, err
	}

	return s.display(ctx, c, id)
}

// Source returns the stored text of a quote, markup included, for editing.
// Unlike Get it does not count as a display.
func (s *QuoteService) Source(ctx context.Context, id int) (_ string, err error) {
	ctx, span := s.start(ctx, "quotes.Source", attribute.Int("quote.id", id))
	defer func() { endSpan(span, err) }()

	c, err := s.repo.Load(ctx)
	if err != nil {
		return "", err
	}

	q, err := c.Get(id)
	if err != nil {
		return "", err
	}

	return q.Text, nil
}

// List returns every quote in ID order, or only the favourites.
// An empty book yields an empty slice.
func (s *QuoteService) List(ctx context.Context, favouritesOnly bool) (_ []DisplayQuote, err error) {
	ctx, span := s.start(ctx, "quotes.List", attribute.Bool("favourites_only", favouritesOnly))
	defer func() { endSpan(span, err) }()

	c, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	ids := c.Favourites()
	if !favouritesOnly {
		ids = make([]int, c.Len())
		for i := range ids {
			ids[i] = i + 1
		}
	}

	vars := markup.NewVariables(c.People)
	out := make([]DisplayQuote, 0, len(ids))

	for _, id := range ids {
		out = append(out, s.parse(ctx, id, c.Quotes[id-1], vars))
	}

	span.SetAttributes(attribute.Int("quotes.count", len(out)))

	return out, nil
}

// People returns the people list with each person's letter.
func (s *QuoteService) People(ctx context.Context) (_ []Person, err error) {
	ctx, span := s.start(ctx, "quotes.People")
	defer func() { endSpan(span, err) }()

	c, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	people := make([]Person, 0, len(c.People))
	for i, name := range c.People {
		letter, ok := markup.Letter(i)
		if !ok {
			break
		}

		people = append(people, Person{Letter: letter, Name: name})
	}

	return people, nil
}

func (s *QuoteService) display(ctx context.Context, c *domain.Collection, id int) (DisplayQuote, error) {
	q, err := c.Get(id)
	if err != nil {
		return DisplayQuote{}, err
	}

	return s.parse(ctx, id, q, markup.NewVariables(c.People)), nil
}

func (s *QuoteService) parse(ctx context.Context, id int, q domain.Quote, vars markup.Variables) DisplayQuote {
	start := time.Now()
	parsed := markup.ParseQuote(q, vars)
	s.metrics.RecordParse(ctx, time.Since(start))
	s.metrics.RecordDisplay(ctx, q.Favourite)

	s.log(ctx).Log(ctx, logging.LevelTrace, "parsed quote",
		slog.Int("id", id),
		slog.Int("segments", len(parsed.Segments)),
		slog.String("text", parsed.Text()),
	)

	return DisplayQuote{ID: id, Parsed: parsed}
}

func (s *QuoteService) start(
	ctx context.Context,
	name string,
	attrs ...attribute.KeyValue,
) (context.Context, trace.Span) {
	return telemetry.Tracer().Start(ctx, name, trace.WithAttributes(attrs...))
}

func (s *QuoteService) log(ctx context.Context) *slog.Logger {
	return logging.FromContextOr(ctx, s.logger)
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	span.End()
}
