// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application layer
// to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter for cancellation and deadlines
//   - Return domain types, never storage records
//   - Error returns use domain error types (ErrNotFound, ErrUnavailable, etc.)
package ports

import (
	"context"

	"github.com/jsamuelsen/quotes/internal/domain"
)

// QuoteRepository persists the quote book as a whole.
// The book is small and edited by one user at a time, so it is always
// loaded and saved in full.
type QuoteRepository interface {
	// Load returns the stored collection, or an empty one if nothing has
	// been stored yet.
	// Returns domain.ErrUnavailable if the store cannot be read.
	Load(ctx context.Context) (*domain.Collection, error)

	// Save replaces the stored collection.
	// Returns domain.ErrUnavailable if the store cannot be written.
	Save(ctx context.Context, c *domain.Collection) error
}

// IndexPicker draws a uniformly random index.
type IndexPicker interface {
	// Pick returns an integer in [0, limit).
	// Returns domain.ErrValidation if limit is not positive.
	Pick(limit int) (int, error)
}

// Prompter asks the person at the terminal for one line of text.
type Prompter interface {
	// Prompt shows label and returns the entered text. initial pre-fills
	// the input, for editing an existing quote.
	// Returns an error if the user cancels.
	Prompt(ctx context.Context, label, initial string) (string, error)
}
