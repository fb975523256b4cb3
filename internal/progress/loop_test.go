package progress

import "testing"

// TestChunkSize verifies chunk length selection for the repetition loop.
func TestChunkSize(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		repetitions uint64
		want        uint64
	}{
		{"zero repetitions", 0, 1},
		{"fewer repetitions than steps", 7, 1},
		{"exactly the step count", DefaultProgressSteps, 1},
		{"typical load", 5_000_000, 50_000},
		{"uneven division", 1_000_001, 10_000},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ChunkSize(tt.repetitions); got != tt.want {
				t.Errorf("ChunkSize(%d) = %d, want %d", tt.repetitions, got, tt.want)
			}
		})
	}
}

// TestReportLoopProgress verifies fraction reporting and nil safety.
func TestReportLoopProgress(t *testing.T) {
	t.Parallel()

	t.Run("reports the completion fraction", func(t *testing.T) {
		t.Parallel()
		var got float64
		ReportLoopProgress(func(p float64) { got = p }, 25, 100)
		if got != 0.25 {
			t.Errorf("reported %f, want 0.25", got)
		}
	})

	t.Run("nil callback is a no-op", func(t *testing.T) {
		t.Parallel()
		ReportLoopProgress(nil, 50, 100)
	})

	t.Run("zero total does not divide by zero", func(t *testing.T) {
		t.Parallel()
		called := false
		ReportLoopProgress(func(float64) { called = true }, 0, 0)
		if called {
			t.Error("callback should not be invoked for zero total")
		}
	})
}
