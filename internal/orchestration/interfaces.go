package orchestration

import (
	"io"
	"sync"
	"time"

	"github.com/machapraveen/gilbench/internal/factorial/memory"
	"github.com/machapraveen/gilbench/internal/progress"
)

// WorkerResult is the outcome of a single worker inside one regime run.
type WorkerResult struct {
	// WorkerIndex identifies the worker within the fan-out.
	WorkerIndex int
	// Value is the computed factorial. It is 0 if an error occurred.
	Value uint64
	// Duration is the time this worker spent from start to finish.
	Duration time.Duration
	// Err contains any error that occurred during the computation.
	Err error
}

// BenchmarkResult encapsulates the outcome of one regime's full run.
// It serves as the shared domain type between orchestration and
// presentation layers.
type BenchmarkResult struct {
	// Key is the regime's registry key (e.g., "gil").
	Key string
	// Name is the human-readable regime name.
	Name string
	// Value is the agreed factorial value. It is 0 if no worker succeeded.
	Value uint64
	// Workers is the number of concurrent workers that ran.
	Workers int
	// WallTime is the wall-clock time of the whole fan-out.
	WallTime time.Duration
	// PerWorker holds each worker's individual outcome.
	PerWorker []WorkerResult
	// GC holds collector statistics when the run was GC-bracketed.
	GC memory.GCStats
	// GCBracketed reports whether the garbage collector was suspended
	// during the measured span.
	GCBracketed bool
	// Err is the first error any worker reported, or a MismatchError
	// when workers disagreed on the value.
	Err error
}

// PresentationOptions configures how results are presented to the user.
type PresentationOptions struct {
	N           uint
	Repetitions uint64
	Workers     int
	Verbose     bool
	Details     bool
}

// ProgressReporter defines the interface for displaying benchmark progress.
// This interface decouples the orchestration layer from the presentation
// layer: implementations handle the visual representation (spinners,
// progress bars, dashboard panels) while the orchestration layer focuses
// on coordinating the workers.
type ProgressReporter interface {
	// DisplayProgress starts displaying progress updates from the channel.
	// It should be called in a separate goroutine and will run until the
	// progressChan is closed.
	//
	// Parameters:
	//   - wg: A WaitGroup to signal when display is complete.
	//   - progressChan: Channel receiving progress updates from workers.
	//   - numWorkers: The number of concurrent workers being tracked.
	//   - out: The writer for progress output.
	DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)
}

// ProgressReporterFunc is a function adapter that implements ProgressReporter.
// This allows passing a function directly where a ProgressReporter is expected.
type ProgressReporterFunc func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer)

// DisplayProgress calls the underlying function.
func (f ProgressReporterFunc) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	f(wg, progressChan, numWorkers, out)
}

// NullProgressReporter is a no-op implementation of ProgressReporter.
// It drains the progress channel without displaying anything.
// Useful for quiet mode or testing.
type NullProgressReporter struct{}

// DisplayProgress drains the channel without output.
func (NullProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for range progressChan {
		// Drain channel silently
	}
}

// ResultPresenter defines the interface for presenting benchmark results.
// This interface decouples the orchestration layer from presentation
// concerns, allowing different output formats (CLI, TUI, report files)
// without modifying the orchestration logic.
type ResultPresenter interface {
	// PresentComparisonTable displays the regime comparison table.
	PresentComparisonTable(results []BenchmarkResult, out io.Writer)

	// PresentResult displays the final benchmark result.
	PresentResult(result BenchmarkResult, opts PresentationOptions, out io.Writer)
}

// DurationFormatter formats durations for display.
type DurationFormatter interface {
	FormatDuration(d time.Duration) string
}

// ErrorHandler handles benchmark errors and returns exit codes.
type ErrorHandler interface {
	HandleError(err error, duration time.Duration, out io.Writer) int
}
