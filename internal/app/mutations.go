package app

import (
	"context"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/jsamuelsen/quotes/internal/domain"
	"github.com/jsamuelsen/quotes/internal/markup"
	"github.com/jsamuelsen/quotes/internal/platform/telemetry"
)

// Operation names, used in logs, spans and the quotes.mutations metric.
const (
	OpAdd          = "add"
	OpEdit         = "edit"
	OpDelete       = "delete"
	OpSetFavourite = "set_favourite"
	OpAddPerson    = "add_person"
)

// AddInput describes a new quote.
type AddInput struct {
	Text      string `json:"text"      validate:"required,notblank"`
	Favourite bool   `json:"favourite"`
}

// EditInput replaces the text of an existing quote.
type EditInput struct {
	ID   int    `json:"id"   validate:"min=1"`
	Text string `json:"text" validate:"required,notblank"`
}

type idInput struct {
	ID int `json:"id" validate:"min=1"`
}

type favouriteInput struct {
	ID        int  `json:"id" validate:"min=1"`
	Favourite bool `json:"favourite"`
}

type personInput struct {
	Name string `json:"name" validate:"required,notblank"`
}

// change is the in-memory book after Perform, with the use case's result.
type change struct {
	book   *domain.Collection
	result int
}

// Add appends a quote and returns its ID.
func (s *QuoteService) Add(ctx context.Context, in AddInput) (int, error) {
	return mutate(ctx, s, OpAdd, in, func(c *domain.Collection, in AddInput) (int, error) {
		return c.Add(domain.Quote{Text: in.Text, Favourite: in.Favourite})
	})
}

// Edit replaces the text of quote in.ID, keeping its favourite marker.
func (s *QuoteService) Edit(ctx context.Context, in EditInput) error {
	_, err := mutate(ctx, s, OpEdit, in, func(c *domain.Collection, in EditInput) (int, error) {
		q, err := c.Get(in.ID)
		if err != nil {
			return 0, err
		}

		q.Text = in.Text

		return in.ID, c.Replace(in.ID, q)
	})

	return err
}

// Delete removes a quote. Later quotes move down one ID.
func (s *QuoteService) Delete(ctx context.Context, id int) error {
	_, err := mutate(ctx, s, OpDelete, idInput{ID: id}, func(c *domain.Collection, in idInput) (int, error) {
		_, err := c.Remove(in.ID)
		return in.ID, err
	})

	return err
}

// SetFavourite sets or clears the favourite marker of a quote.
func (s *QuoteService) SetFavourite(ctx context.Context, id int, favourite bool) error {
	in := favouriteInput{ID: id, Favourite: favourite}

	_, err := mutate(ctx, s, OpSetFavourite, in, func(c *domain.Collection, in favouriteInput) (int, error) {
		q, err := c.Get(in.ID)
		if err != nil {
			return 0, err
		}

		q.Favourite = in.Favourite

		return in.ID, c.Replace(in.ID, q)
	})

	return err
}

// AddPerson appends a name to the people list and returns it with the
// letter that now refers to it.
func (s *QuoteService) AddPerson(ctx context.Context, name string) (Person, error) {
	idx, err := mutate(ctx, s, OpAddPerson, personInput{Name: name}, func(c *domain.Collection, in personInput) (int, error) {
		return c.AddPerson(in.Name)
	})
	if err != nil {
		return Person{}, err
	}

	letter, _ := markup.Letter(idx)

	return Person{Letter: letter, Name: strings.TrimSpace(name)}, nil
}

// mutate runs apply against the stored book through the transactional
// executor: the book is only saved when it still validates afterwards.
func mutate[I any](
	ctx context.Context,
	s *QuoteService,
	name string,
	input I,
	apply func(*domain.Collection, I) (int, error),
) (result int, err error) {
	ctx, span := s.start(ctx, "quotes."+name, attribute.String("operation", name))
	defer func() {
		s.metrics.RecordMutation(ctx, name, outcome(err))
		endSpan(span, err)
	}()

	op := Operation[I, change, change, int]{
		Name: name,
		Validate: func(_ context.Context, in I) error {
			return validateInput(in)
		},
		Perform: func(ctx context.Context, in I) (change, error) {
			c, err := s.repo.Load(ctx)
			if err != nil {
				return change{}, err
			}

			r, err := apply(c, in)

			return change{book: c, result: r}, err
		},
		Verify: func(_ context.Context, _ I, ch change) (change, error) {
			return ch, ch.book.Validate()
		},
		Archive: func(ctx context.Context, _ I, ch change) error {
			return s.repo.Save(ctx, ch.book)
		},
		Respond: func(_ context.Context, _ I, ch change) (int, error) {
			return ch.result, nil
		},
	}

	result, err = Execute(ctx, s.executor, op, input)
	if err == nil {
		s.log(ctx).InfoContext(ctx, "quote book updated",
			slog.String("operation", name),
			slog.Int("result", result),
		)
	}

	return result, err
}

// outcome classifies an error for the quotes.mutations metric.
func outcome(err error) string {
	switch {
	case err == nil:
		return telemetry.OutcomeOK
	case domain.IsValidation(err):
		return telemetry.OutcomeInvalid
	case domain.IsNotFound(err):
		return telemetry.OutcomeNotFound
	case domain.IsConflict(err):
		return telemetry.OutcomeConflict
	case domain.IsUnavailable(err):
		return telemetry.OutcomeUnavailable
	default:
		return telemetry.OutcomeError
	}
}
