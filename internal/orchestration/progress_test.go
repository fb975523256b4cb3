package orchestration

import (
	"testing"

	"github.com/machapraveen/gilbench/internal/progress"
)

func TestNewProgressAggregatorWorkerCounts(t *testing.T) {
	tests := []struct {
		name       string
		numWorkers int
		wantNil    bool
	}{
		{"sixteen workers", 16, false},
		{"single worker", 1, false},
		{"zero workers", 0, true},
		{"negative workers", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := NewProgressAggregator(tt.numWorkers)
			if (agg == nil) != tt.wantNil {
				t.Errorf("NewProgressAggregator(%d) nil = %v, want %v", tt.numWorkers, agg == nil, tt.wantNil)
			}
		})
	}
}

func TestProgressAggregatorUpdate(t *testing.T) {
	agg := NewProgressAggregator(4)

	steps := []struct {
		update      progress.ProgressUpdate
		wantAverage float64
	}{
		{progress.ProgressUpdate{WorkerIndex: 0, Value: 1.0}, 0.25},
		{progress.ProgressUpdate{WorkerIndex: 1, Value: 1.0}, 0.5},
		{progress.ProgressUpdate{WorkerIndex: 1, Value: 0.5}, 0.375}, // regressions still average in
		{progress.ProgressUpdate{WorkerIndex: 2, Value: 1.0}, 0.625},
	}

	for i, step := range steps {
		ap := agg.Update(step.update)
		if ap.WorkerIndex != step.update.WorkerIndex || ap.Value != step.update.Value {
			t.Errorf("step %d: raw fields %d/%f not forwarded", i, ap.WorkerIndex, ap.Value)
		}
		if ap.AverageProgress != step.wantAverage {
			t.Errorf("step %d: average = %f, want %f", i, ap.AverageProgress, step.wantAverage)
		}
		if ap.ETA < 0 {
			t.Errorf("step %d: negative ETA %v", i, ap.ETA)
		}
	}
}

func TestDrainChannel(t *testing.T) {
	ch := make(chan progress.ProgressUpdate, 3)
	for i := 0; i < 3; i++ {
		ch <- progress.ProgressUpdate{WorkerIndex: i, Value: 1.0}
	}
	close(ch)

	DrainChannel(ch) // returns only once the channel is exhausted

	if _, open := <-ch; open {
		t.Error("channel still delivering after drain")
	}
}
