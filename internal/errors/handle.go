package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI color codes used when reporting errors.
// It decouples this package from any particular theme implementation; the
// CLI passes its theme-backed provider, tests pass a no-op one.
type ColorProvider interface {
	// Red returns the code for error text.
	Red() string
	// Yellow returns the code for warning text.
	Yellow() string
	// Reset returns the code that restores the default style.
	Reset() string
}

// NopColorProvider is a ColorProvider that emits no color codes.
// Useful for tests and non-terminal writers.
type NopColorProvider struct{}

// Red returns an empty string.
func (NopColorProvider) Red() string { return "" }

// Yellow returns an empty string.
func (NopColorProvider) Yellow() string { return "" }

// Reset returns an empty string.
func (NopColorProvider) Reset() string { return "" }

// HandleCalculationError reports a benchmark failure to the writer and maps
// it to the corresponding process exit code.
//
// The mapping follows the application's exit code contract:
//   - context deadline / TimeoutError  → ExitErrorTimeout
//   - context cancellation (SIGINT)    → ExitErrorCanceled
//   - MismatchError                    → ExitErrorMismatch
//   - ArgumentError / ConfigError      → ExitErrorConfig
//   - anything else                    → ExitErrorGeneric
//
// Parameters:
//   - err: The error to report. A nil error returns ExitSuccess.
//   - duration: How long the operation ran before failing (0 if not relevant).
//   - out: The writer for the report.
//   - colors: The color provider for terminal styling.
//
// Returns:
//   - int: The exit code corresponding to the error class.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sTimeout exceeded after %s.%s\n", colors.Red(), duration, colors.Reset())
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sOperation canceled after %s.%s\n", colors.Yellow(), duration, colors.Reset())
		return ExitErrorCanceled
	}

	var timeoutErr TimeoutError
	if errors.As(err, &timeoutErr) {
		fmt.Fprintf(out, "%s%v%s\n", colors.Red(), timeoutErr, colors.Reset())
		return ExitErrorTimeout
	}

	var mismatchErr MismatchError
	if errors.As(err, &mismatchErr) {
		fmt.Fprintf(out, "%s%v%s\n", colors.Red(), mismatchErr, colors.Reset())
		return ExitErrorMismatch
	}

	var argErr ArgumentError
	if errors.As(err, &argErr) {
		fmt.Fprintf(out, "%s%v%s\n", colors.Red(), argErr, colors.Reset())
		return ExitErrorConfig
	}

	var configErr ConfigError
	if errors.As(err, &configErr) {
		fmt.Fprintf(out, "%s%v%s\n", colors.Red(), configErr, colors.Reset())
		return ExitErrorConfig
	}

	fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
	return ExitErrorGeneric
}
