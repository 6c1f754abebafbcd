package cli

import (
	"errors"

	"github.com/jsamuelsen/quotes/internal/domain"
)

// ErrPromptCancelled is returned when the user leaves the prompt with Esc or Ctrl+C.
var ErrPromptCancelled = errors.New("prompt cancelled")

// FormatError returns the message shown to the user for err.
// Domain errors are reported by their own message without the executor's
// step wrapping. Unknown errors keep their full chain.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	var (
		validationErr  *domain.ValidationError
		notFoundErr    *domain.NotFoundError
		conflictErr    *domain.ConflictError
		unavailableErr *domain.UnavailableError
	)

	switch {
	case errors.As(err, &validationErr):
		return validationErr.Error()
	case errors.As(err, &notFoundErr):
		return notFoundErr.Error()
	case errors.As(err, &conflictErr):
		return conflictErr.Error()
	case errors.As(err, &unavailableErr):
		return unavailableErr.Error()
	case errors.Is(err, ErrPromptCancelled):
		return ErrPromptCancelled.Error()
	default:
		return err.Error()
	}
}
