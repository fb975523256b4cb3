package parallel

import (
	"errors"
	"testing"
)

// TestErrorCollectorFirstWins verifies the first non-nil error is kept
// and later ones are discarded.
func TestErrorCollectorFirstWins(t *testing.T) {
	t.Parallel()
	var ec ErrorCollector

	first := errors.New("worker 3 failed")
	second := errors.New("worker 7 failed")

	ec.SetError(first)
	ec.SetError(second)

	if got := ec.Err(); got != first {
		t.Errorf("Err() = %v, want the first error %v", got, first)
	}
}

// TestErrorCollectorZeroValue verifies the zero value reports no error.
func TestErrorCollectorZeroValue(t *testing.T) {
	t.Parallel()
	var ec ErrorCollector
	if got := ec.Err(); got != nil {
		t.Errorf("zero-value Err() = %v, want nil", got)
	}
}

// TestErrorCollectorIgnoresNil verifies nil never replaces anything.
func TestErrorCollectorIgnoresNil(t *testing.T) {
	t.Parallel()
	var ec ErrorCollector

	ec.SetError(nil)
	if got := ec.Err(); got != nil {
		t.Errorf("Err() after SetError(nil) = %v, want nil", got)
	}

	real := errors.New("real failure")
	ec.SetError(real)
	ec.SetError(nil)
	if got := ec.Err(); got != real {
		t.Errorf("Err() = %v, want %v", got, real)
	}
}
