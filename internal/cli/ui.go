//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"math/bits"
	"strconv"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/machapraveen/gilbench/internal/format"
	"github.com/machapraveen/gilbench/internal/orchestration"
	"github.com/machapraveen/gilbench/internal/progress"
	"github.com/machapraveen/gilbench/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// Optimized to 200ms to reduce updates and improve performance.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress consumes worker progress updates and renders an
// aggregated progress bar with an ETA behind a terminal spinner. It runs
// until progressChan is closed and signals wg when it returns, so the
// orchestrator can wait for the display to drain before printing results.
//
// Parameters:
//   - wg: The wait group to signal on completion.
//   - progressChan: The channel of per-worker progress updates.
//   - numWorkers: The number of workers reporting progress.
//   - out: The writer for the spinner output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	defer wg.Done()

	aggregator := orchestration.NewProgressAggregator(numWorkers)
	if aggregator == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.Start()
	defer sp.Stop()

	for update := range progressChan {
		ap := aggregator.Update(update)
		sp.UpdateSuffix(" " + format.FormatProgressBarWithETA(ap.AverageProgress, ap.ETA, ProgressBarWidth))
	}
}

// DisplayResult presents a completed benchmark result: the wall time of
// the regime, the computed factorial value, and optionally a detailed
// analysis of the run.
//
// Parameters:
//   - result: The benchmark result to display.
//   - opts: Presentation options controlling verbosity.
//   - out: The writer for standard output.
func DisplayResult(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions, out io.Writer) {
	fmt.Fprintf(out, "\nBenchmark time (%s%s%s): %s%s%s\n",
		ui.ColorBlue(), result.Name, ui.ColorReset(),
		ui.ColorYellow(), format.FormatExecutionDuration(result.WallTime), ui.ColorReset())

	if opts.Details {
		displayBenchmarkDetails(result, opts, out)
	}

	fmt.Fprintf(out, "Calculated value: %d! = %s%s%s\n",
		opts.N, ui.ColorGreen(), format.FormatNumberString(strconv.FormatUint(result.Value, 10)), ui.ColorReset())

	if opts.Verbose {
		fmt.Fprintf(out, "             hex: %s0x%X%s\n", ui.ColorGreen(), result.Value, ui.ColorReset())
	}
}

// displayBenchmarkDetails prints the detailed analysis block: totals,
// throughput, result size, and the spread between the fastest and the
// slowest worker.
func displayBenchmarkDetails(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions, out io.Writer) {
	totalIterations := opts.Repetitions * uint64(opts.Workers)

	fmt.Fprintf(out, "\nDetailed benchmark analysis:\n")
	fmt.Fprintf(out, "  Workers:            %s%d%s\n", ui.ColorCyan(), result.Workers, ui.ColorReset())
	fmt.Fprintf(out, "  Repetitions/worker: %s%s%s\n",
		ui.ColorCyan(), format.FormatNumberString(strconv.FormatUint(opts.Repetitions, 10)), ui.ColorReset())
	fmt.Fprintf(out, "  Total iterations:   %s%s%s\n",
		ui.ColorCyan(), format.FormatNumberString(strconv.FormatUint(totalIterations, 10)), ui.ColorReset())

	if result.WallTime > 0 {
		rate := float64(totalIterations) / result.WallTime.Seconds()
		fmt.Fprintf(out, "  Throughput:         %s%s%s iterations/s\n",
			ui.ColorCyan(), format.FormatNumberString(strconv.FormatUint(uint64(rate), 10)), ui.ColorReset())
	}

	fmt.Fprintf(out, "  Result bit length:  %s%d%s bits\n", ui.ColorCyan(), bits.Len64(result.Value), ui.ColorReset())

	if spread, ok := workerSpread(result); ok {
		fmt.Fprintf(out, "  Worker spread:      %s%s … %s%s\n",
			ui.ColorCyan(), format.FormatExecutionDuration(spread.fastest),
			format.FormatExecutionDuration(spread.slowest), ui.ColorReset())
	}

	if result.GCBracketed {
		fmt.Fprintf(out, "  GC cycles:          %s%d%s\n", ui.ColorCyan(), result.GC.NumGC, ui.ColorReset())
	}
}

type durationSpread struct {
	fastest time.Duration
	slowest time.Duration
}

// workerSpread returns the fastest and slowest per-worker durations.
func workerSpread(result orchestration.BenchmarkResult) (durationSpread, bool) {
	if len(result.PerWorker) == 0 {
		return durationSpread{}, false
	}
	spread := durationSpread{fastest: result.PerWorker[0].Duration, slowest: result.PerWorker[0].Duration}
	for _, w := range result.PerWorker[1:] {
		if w.Duration < spread.fastest {
			spread.fastest = w.Duration
		}
		if w.Duration > spread.slowest {
			spread.slowest = w.Duration
		}
	}
	return spread, true
}
