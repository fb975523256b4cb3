package tui

import (
	"time"

	"github.com/machapraveen/gilbench/internal/orchestration"
)

// Messages exchanged between the bridge goroutines and the bubbletea
// event loop. Everything the orchestration layer wants to show ends up
// as one of these; the Update method is the only consumer.

// ProgressMsg carries one aggregated progress sample from a benchmark
// worker, enriched with the cross-worker average and the ETA estimate.
type ProgressMsg struct {
	WorkerIndex     int
	Value           float64
	AverageProgress float64
	ETA             time.Duration
}

// ProgressDoneMsg signals that a regime's progress channel closed: every
// worker of that regime has finished its repetition loop.
type ProgressDoneMsg struct{}

// ComparisonResultsMsg carries the sorted regime comparison.
type ComparisonResultsMsg struct {
	Results []orchestration.BenchmarkResult
}

// FinalResultMsg carries the winning regime's result after the
// comparison analysis found all values consistent.
type FinalResultMsg struct {
	Result orchestration.BenchmarkResult
	Opts   orchestration.PresentationOptions
}

// ErrorMsg reports a benchmark failure surfaced through the error
// handler, with the elapsed time at the moment of failure.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// TickMsg drives the periodic dashboard refresh.
type TickMsg time.Time

// MemStatsMsg carries a snapshot of the Go runtime's memory statistics.
type MemStatsMsg struct {
	Alloc        uint64
	HeapInuse    uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries system-wide CPU and memory usage. BusyCores is the
// number of cores above the saturation threshold; under the serialized
// regime it hovers near one no matter how many workers run.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
	BusyCores  int
	NumCores   int
}

// BenchmarkCompleteMsg signals that the whole comparison has finished
// and carries the exit code the process should eventually return.
// Generation guards against messages from a run that was reset away.
type BenchmarkCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the benchmark context was cancelled,
// either by the parent (signal) or by a reset.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}
