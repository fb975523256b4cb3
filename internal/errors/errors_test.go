package apperrors

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestErrorMessages(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			"config error",
			ConfigError{Message: "workers must be positive"},
			"workers must be positive",
		},
		{
			"formatted config error",
			NewConfigError("unknown mode %q", "turbo"),
			`unknown mode "turbo"`,
		},
		{
			"argument error names the argument",
			ArgumentError{Arg: "n", Message: "must not exceed 20"},
			`invalid argument "n": must not exceed 20`,
		},
		{
			"formatted argument error",
			NewArgumentError("repetitions", "cannot parse %q", "1e9"),
			`invalid argument "repetitions": cannot parse "1e9"`,
		},
		{
			"calculation error relays the cause",
			CalculationError{Cause: errors.New("worker panicked")},
			"worker panicked",
		},
		{
			"timeout error",
			TimeoutError{Operation: "warmup", Limit: 500 * time.Millisecond},
			`operation "warmup" timed out after 500ms`,
		},
		{
			"mismatch error",
			MismatchError{Expected: 2432902008176640000, Got: 0, Source: "nogil"},
			"result mismatch from nogil: expected 2432902008176640000, got 0",
		},
		{
			"wrapped error prepends context",
			WrapError(errors.New("file not found"), "loading profile %q", "cal.json"),
			`loading profile "cal.json": file not found`,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestErrorsAsThroughWrapping drives each typed error through the two
// wrapping paths used in the benchmark and checks errors.As still finds
// it with its fields intact.
func TestErrorsAsThroughWrapping(t *testing.T) {
	t.Parallel()

	wrap := func(name string, err error) error {
		switch name {
		case "bare":
			return err
		case "calculation":
			return CalculationError{Cause: err}
		default:
			return WrapError(err, "benchmark aborted")
		}
	}

	for _, via := range []string{"bare", "calculation", "context"} {
		via := via
		t.Run(via, func(t *testing.T) {
			t.Parallel()

			var argErr ArgumentError
			if !errors.As(wrap(via, ArgumentError{Arg: "n", Message: "too large"}), &argErr) {
				t.Fatal("ArgumentError lost in the chain")
			}
			if argErr.Arg != "n" {
				t.Errorf("Arg = %q, want n", argErr.Arg)
			}

			var cfgErr ConfigError
			if !errors.As(wrap(via, ConfigError{Message: "bad flag"}), &cfgErr) {
				t.Fatal("ConfigError lost in the chain")
			}

			var timeoutErr TimeoutError
			if !errors.As(wrap(via, TimeoutError{Operation: "benchmark", Limit: 5 * time.Second}), &timeoutErr) {
				t.Fatal("TimeoutError lost in the chain")
			}
			if timeoutErr.Operation != "benchmark" || timeoutErr.Limit != 5*time.Second {
				t.Errorf("TimeoutError fields = %q/%v", timeoutErr.Operation, timeoutErr.Limit)
			}

			var mismatchErr MismatchError
			if !errors.As(wrap(via, MismatchError{Expected: 120, Got: 121, Source: "worker 3"}), &mismatchErr) {
				t.Fatal("MismatchError lost in the chain")
			}
			if mismatchErr.Expected != 120 || mismatchErr.Got != 121 {
				t.Errorf("MismatchError fields = %d/%d, want 120/121", mismatchErr.Expected, mismatchErr.Got)
			}
		})
	}
}

func TestCalculationErrorUnwrap(t *testing.T) {
	t.Parallel()
	err := CalculationError{Cause: context.Canceled}

	if err.Unwrap() != context.Canceled {
		t.Error("Unwrap must return the original cause")
	}
	if !errors.Is(err, context.Canceled) {
		t.Error("errors.Is must see through CalculationError")
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	if WrapError(nil, "ignored context") != nil {
		t.Error("wrapping nil must stay nil")
	}

	wrapped := WrapError(context.DeadlineExceeded, "regime %s", "gil")
	if !errors.Is(wrapped, context.DeadlineExceeded) {
		t.Error("wrapping must preserve the error chain")
	}
	if want := "regime gil: context deadline exceeded"; wrapped.Error() != want {
		t.Errorf("message = %q, want %q", wrapped.Error(), want)
	}
}

func TestIsContextError(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"canceled", context.Canceled, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"wrapped cancellation", WrapError(context.Canceled, "run aborted"), true},
		{"cancellation inside calculation error", CalculationError{Cause: context.DeadlineExceeded}, true},
		{"timeout error is not a context error", TimeoutError{Operation: "benchmark", Limit: time.Second}, false},
		{"plain error", errors.New("gate closed"), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := IsContextError(tt.err); got != tt.want {
				t.Errorf("IsContextError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

// The exit codes are part of the CLI contract; scripts dispatch on them.
func TestExitCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		code int
		want int
	}{
		{"success", ExitSuccess, 0},
		{"generic", ExitErrorGeneric, 1},
		{"timeout", ExitErrorTimeout, 2},
		{"mismatch", ExitErrorMismatch, 3},
		{"config", ExitErrorConfig, 4},
		{"canceled follows the 128+SIGINT convention", ExitErrorCanceled, 130},
	}

	for _, tt := range tests {
		if tt.code != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.code, tt.want)
		}
	}
}
