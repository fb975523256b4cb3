package orchestration

import (
	"time"

	"github.com/machapraveen/gilbench/internal/format"
	"github.com/machapraveen/gilbench/internal/progress"
)

// ProgressAggregator folds raw per-worker progress updates into the
// aggregate the displays show: the average completion across all
// workers plus a smoothed ETA. The CLI spinner and the dashboard bridge
// share it, so both surfaces agree on what "42%" means.
type ProgressAggregator struct {
	state *format.ProgressWithETA
}

// NewProgressAggregator creates an aggregator for numWorkers workers.
// It returns nil when numWorkers is not positive; callers fall back to
// DrainChannel in that case.
func NewProgressAggregator(numWorkers int) *ProgressAggregator {
	if numWorkers <= 0 {
		return nil
	}
	return &ProgressAggregator{state: format.NewProgressWithETA(numWorkers)}
}

// AggregatedProgress is one display-ready progress sample.
type AggregatedProgress struct {
	WorkerIndex     int           // reporting worker
	Value           float64       // that worker's own completion fraction
	AverageProgress float64       // mean completion across all workers
	ETA             time.Duration // smoothed estimate, 0 while unknown
}

// Update folds one worker update into the aggregate.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	avg, eta := a.state.UpdateWithETA(update.WorkerIndex, update.Value)
	return AggregatedProgress{
		WorkerIndex:     update.WorkerIndex,
		Value:           update.Value,
		AverageProgress: avg,
		ETA:             eta,
	}
}

// DrainChannel consumes updates nobody will display, so workers never
// block on a full progress channel.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
