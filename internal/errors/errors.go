package apperrors

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Process exit codes. Scripts branch on these, so the values are part
// of the CLI contract and never renumbered.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between workers or regimes.
	ExitErrorConfig   = 4   // Indicates a configuration or argument error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError reports flag or option values the run cannot proceed
// with. These always map to [ExitErrorConfig].
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

func (e ConfigError) Error() string { return e.Message }

// NewConfigError builds a ConfigError from a format string.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ArgumentError represents an argument parse or validation failure on one of
// the two entry-point arguments (n, repetitions). It is raised before any
// computation begins and is surfaced directly to the caller; nothing is
// retried or recovered locally.
type ArgumentError struct {
	// Arg is the name of the argument that failed ("n" or "repetitions").
	Arg string
	// Message explains the failure.
	Message string
}

func (e ArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Arg, e.Message)
}

// NewArgumentError creates a new ArgumentError for the named argument with a
// formatted message.
//
// Parameters:
//   - arg: The argument name ("n" or "repetitions").
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ArgumentError instance.
func NewArgumentError(arg, format string, a ...any) error {
	return ArgumentError{Arg: arg, Message: fmt.Sprintf(format, a...)}
}

// CalculationError marks an error as having happened inside a benchmark
// run, while keeping the cause reachable for errors.Is and errors.As.
// Exit-code mapping looks through it to find context errors.
type CalculationError struct {
	// Cause is the underlying error.
	Cause error
}

func (e CalculationError) Error() string { return e.Cause.Error() }

// Unwrap exposes the cause to the errors package helpers.
func (e CalculationError) Unwrap() error { return e.Cause }

// TimeoutError names the operation that ran out of time and the budget
// it exceeded. Unlike a raw context.DeadlineExceeded, it survives being
// formatted into a message and still identifies the culprit.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Limit is the duration budget that was exhausted.
	Limit time.Duration
}

func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Limit)
}

// MismatchError reports a result divergence: a worker or regime produced a
// value different from the reference. Since invocations share no mutable
// state, any divergence indicates a defect, so this is treated as critical.
type MismatchError struct {
	// Expected is the reference value.
	Expected uint64
	// Got is the diverging value.
	Got uint64
	// Source identifies the worker or regime that diverged.
	Source string
}

func (e MismatchError) Error() string {
	return fmt.Sprintf("result mismatch from %s: expected %d, got %d", e.Source, e.Expected, e.Got)
}

// WrapError prefixes err with a formatted context message, keeping the
// chain intact for errors.Is and errors.As. A nil err stays nil, so
// call sites can wrap unconditionally.
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// IsContextError reports whether err stems from cancellation or an
// expired deadline, anywhere in its chain.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
