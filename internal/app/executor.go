package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes/internal/domain"
	"github.com/jsamuelsen/quotes/internal/platform/logging"
)

// Every change to the quote book runs as Validate → Perform → Verify →
// Archive → Respond. Nothing is saved unless the mutated book passes
// Verify, so a failed edit never leaves a corrupt file behind.

// ExecutionStep represents a step in the transactional pattern.
type ExecutionStep string

const (
	StepValidate ExecutionStep = "validate"
	StepPerform  ExecutionStep = "perform"
	StepVerify   ExecutionStep = "verify"
	StepArchive  ExecutionStep = "archive"
	StepRespond  ExecutionStep = "respond"
)

// ExecutionError wraps errors with the step where they occurred.
type ExecutionError struct {
	Step    ExecutionStep
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Step, e.Message, e.Cause)
	}

	return fmt.Sprintf("%s failed: %s", e.Step, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

var stepMessages = map[ExecutionStep]string{
	StepValidate: "input validation failed",
	StepPerform:  "operation failed",
	StepVerify:   "verification failed",
	StepArchive:  "state persistence failed",
	StepRespond:  "response failed",
}

// Executor runs operations using the transactional pattern.
type Executor struct {
	logger *slog.Logger
}

// NewExecutor creates a new executor with the given logger.
// The logger is used when the context carries none.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}

	return &Executor{logger: logger}
}

// Operation defines the functions for each step of the transactional pattern.
// Nil steps are skipped and pass the zero value on.
type Operation[I, P, V, O any] struct {
	// Name identifies this operation in logs and span events.
	Name string

	// Validate checks inputs before anything is loaded.
	Validate func(ctx context.Context, input I) error

	// Perform loads the current state and applies the change in memory.
	Perform func(ctx context.Context, input I) (P, error)

	// Verify re-checks the changed state independently of Perform.
	Verify func(ctx context.Context, input I, performed P) (V, error)

	// Archive persists the verified state.
	Archive func(ctx context.Context, input I, verified V) error

	// Respond builds the caller's result after everything succeeded.
	Respond func(ctx context.Context, input I, verified V) (O, error)
}

// Execute runs an operation through the full transactional pattern.
// Failures are returned as *ExecutionError naming the failed step.
func Execute[I, P, V, O any](ctx context.Context, exec *Executor, op Operation[I, P, V, O], input I) (O, error) {
	var zero O

	logger := logging.FromContextOr(ctx, exec.logger).With(slog.String("operation", op.Name))
	start := time.Now()

	_, err := runStep(ctx, logger, StepValidate, op.Validate != nil, func() (struct{}, error) {
		return struct{}{}, op.Validate(ctx, input)
	})
	if err != nil {
		return zero, err
	}

	performed, err := runStep(ctx, logger, StepPerform, op.Perform != nil, func() (P, error) {
		return op.Perform(ctx, input)
	})
	if err != nil {
		return zero, err
	}

	verified, err := runStep(ctx, logger, StepVerify, op.Verify != nil, func() (V, error) {
		return op.Verify(ctx, input, performed)
	})
	if err != nil {
		return zero, err
	}

	_, err = runStep(ctx, logger, StepArchive, op.Archive != nil, func() (struct{}, error) {
		return struct{}{}, op.Archive(ctx, input, verified)
	})
	if err != nil {
		return zero, err
	}

	result, err := runStep(ctx, logger, StepRespond, op.Respond != nil, func() (O, error) {
		return op.Respond(ctx, input, verified)
	})
	if err != nil {
		return zero, err
	}

	logger.DebugContext(ctx, "operation completed", slog.Duration("duration", time.Since(start)))

	return result, nil
}

func runStep[T any](
	ctx context.Context,
	logger *slog.Logger,
	step ExecutionStep,
	present bool,
	fn func() (T, error),
) (T, error) {
	var zero T

	if !present {
		return zero, nil
	}

	trace.SpanFromContext(ctx).AddEvent(string(step))
	logger.Log(ctx, logging.LevelTrace, "step started", slog.String("step", string(step)))

	out, err := fn()
	if err != nil {
		level := slog.LevelError
		if isUserError(err) {
			level = slog.LevelDebug
		}

		logger.Log(ctx, level, "step failed",
			slog.String("step", string(step)),
			slog.Any("error", err),
		)

		return zero, &ExecutionError{Step: step, Message: stepMessages[step], Cause: err}
	}

	return out, nil
}

// isUserError reports failures caused by the command line rather than the
// system: bad input, unknown ids and duplicates.
func isUserError(err error) bool {
	return domain.IsValidation(err) || domain.IsNotFound(err) || domain.IsConflict(err)
}

// IsExecutionError checks if an error occurred during execution.
func IsExecutionError(err error) bool {
	var execErr *ExecutionError

	return errors.As(err, &execErr)
}

// GetExecutionStep extracts the step from an execution error.
func GetExecutionStep(err error) (ExecutionStep, bool) {
	var execErr *ExecutionError
	if errors.As(err, &execErr) {
		return execErr.Step, true
	}

	return "", false
}
