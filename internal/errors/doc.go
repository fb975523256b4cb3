// Package apperrors defines the error types the benchmark surfaces to
// callers: malformed arguments, rejected configuration, failures inside
// a measured run, timeouts, and cross-worker result mismatches. Each
// class maps to a distinct process exit code.
//
// Types that carry a cause implement Unwrap, so errors.Is and errors.As
// look through them; WrapError adds context with fmt.Errorf and %w.
package apperrors
