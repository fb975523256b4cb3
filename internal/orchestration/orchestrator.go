package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/machapraveen/gilbench/internal/affinity"
	apperrors "github.com/machapraveen/gilbench/internal/errors"
	"github.com/machapraveen/gilbench/internal/factorial"
	"github.com/machapraveen/gilbench/internal/factorial/memory"
	"github.com/machapraveen/gilbench/internal/parallel"
	"github.com/machapraveen/gilbench/internal/progress"
)

// ProgressBufferMultiplier defines the buffer size multiplier for the
// progress channel. A larger buffer reduces the likelihood of blocking
// worker goroutines when the UI is slow to consume updates.
const ProgressBufferMultiplier = 5

// MaxWarmupRepetitions caps the unmeasured warmup pass so it stays a
// small fraction of even very long runs.
const MaxWarmupRepetitions = 500_000

// tracer emits one span per regime run; with no SDK installed the
// global provider is a no-op.
var tracer = otel.Tracer("github.com/machapraveen/gilbench/internal/orchestration")

// RunParams carries the execution parameters ExecuteBenchmark needs.
// It is a subset of config.AppConfig, kept separate so the orchestration
// layer does not depend on flag parsing.
type RunParams struct {
	Args       factorial.Args
	Workers    int
	Warmup     bool
	GCOff      bool
	PinWorkers bool
}

// ExecuteBenchmark runs one regime: an optional warmup pass, then
// Workers identical computations fanned out concurrently, sharing one
// progress channel. Workers that fail do not cancel their siblings;
// every worker's outcome lands in the result so the comparison can
// explain exactly what happened.
//
// Parameters:
//   - ctx: The context for managing cancellation and deadlines.
//   - executor: The regime to benchmark.
//   - params: Worker count and execution options.
//   - progressReporter: The progress reporter for displaying updates
//     (use NullProgressReporter for quiet mode).
//   - out: The io.Writer for progress output.
//
// Returns:
//   - BenchmarkResult: The aggregated outcome of the regime run.
func ExecuteBenchmark(ctx context.Context, executor factorial.Executor, params RunParams, progressReporter ProgressReporter, out io.Writer) BenchmarkResult {
	result := BenchmarkResult{
		Key:     executor.Key(),
		Name:    executor.Name(),
		Workers: params.Workers,
	}

	// Reject malformed parameters before any goroutine is spawned.
	if err := params.Args.Validate(); err != nil {
		result.Err = err
		return result
	}
	if params.Workers < 1 {
		result.Err = apperrors.NewConfigError("workers must be at least 1, got %d", params.Workers)
		return result
	}

	ctx, span := tracer.Start(ctx, "benchmark.regime",
		trace.WithAttributes(
			attribute.String("regime", executor.Key()),
			attribute.Int("workers", params.Workers),
			attribute.Int64("repetitions", int64(params.Args.Repetitions)),
		))
	defer span.End()

	if params.Warmup {
		if err := runWarmup(ctx, executor, params.Args); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "warmup aborted")
			result.Err = err
			return result
		}
	}

	// Suspend the collector only for the measured span, never the warmup.
	gc := memory.NewGCController(gcMode(params.GCOff), totalRepetitions(params))
	gc.Begin()

	perWorker, firstErr := runWorkers(ctx, executor, params, progressReporter, out)

	gc.End()
	result.GCBracketed = gc.Active()
	result.GC = gc.Stats()

	result.PerWorker = perWorker
	result.WallTime = wallTime(perWorker)

	value, mismatchErr := agreedValue(perWorker)
	result.Value = value
	if mismatchErr != nil {
		result.Err = mismatchErr
	} else {
		result.Err = firstErr
	}

	if result.Err != nil {
		span.RecordError(result.Err)
		span.SetStatus(codes.Error, "regime run failed")
	} else {
		span.SetAttributes(attribute.Int64("wall_time_ms", result.WallTime.Milliseconds()))
	}
	return result
}

// runWarmup executes a single-worker, unmeasured pass so page faults,
// branch predictor training and scheduler ramp-up do not land in the
// first measured regime. Only cancellation aborts the benchmark; any
// other warmup failure resurfaces identically in the measured run.
func runWarmup(ctx context.Context, executor factorial.Executor, args factorial.Args) error {
	warmup := args
	warmup.Repetitions = args.Repetitions / 10
	if warmup.Repetitions == 0 {
		warmup.Repetitions = 1
	}
	if warmup.Repetitions > MaxWarmupRepetitions {
		warmup.Repetitions = MaxWarmupRepetitions
	}

	_, err := executor.Compute(ctx, nil, 0, warmup)
	if err != nil && apperrors.IsContextError(err) {
		return err
	}
	return nil
}

// runWorkers fans the regime out across params.Workers goroutines that
// all compute the same arguments, and blocks until every worker and the
// progress display have finished. The returned error is the first one
// any worker reported.
func runWorkers(ctx context.Context, executor factorial.Executor, params RunParams, progressReporter ProgressReporter, out io.Writer) ([]WorkerResult, error) {
	g, ctx := errgroup.WithContext(ctx)
	results := make([]WorkerResult, params.Workers)
	progressChan := make(chan progress.ProgressUpdate, params.Workers*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go progressReporter.DisplayProgress(&displayWg, progressChan, params.Workers, out)

	var collector parallel.ErrorCollector
	for i := 0; i < params.Workers; i++ {
		idx := i
		g.Go(func() error {
			if params.PinWorkers {
				if unpin, err := affinity.Pin(idx); err == nil {
					defer unpin()
				}
			}

			startTime := time.Now()
			value, err := executor.Compute(ctx, progressChan, idx, params.Args)
			results[idx] = WorkerResult{
				WorkerIndex: idx, Value: value, Duration: time.Since(startTime), Err: err,
			}
			collector.SetError(err)
			// Workers never cancel their siblings: a failed worker is a
			// data point, and context cancellation reaches every worker
			// through ctx anyway.
			return nil
		})
	}

	g.Wait()
	close(progressChan)
	displayWg.Wait()

	return results, collector.Err()
}

// wallTime returns the longest worker duration. Workers run
// concurrently, so the slowest one defines the regime's wall clock.
func wallTime(workers []WorkerResult) time.Duration {
	var wall time.Duration
	for _, w := range workers {
		if w.Duration > wall {
			wall = w.Duration
		}
	}
	return wall
}

// agreedValue returns the value the successful workers agree on.
// Workers compute an identical, deterministic function, so two
// successful workers disagreeing is a defect reported as a
// MismatchError. Returns 0 when no worker succeeded.
func agreedValue(workers []WorkerResult) (uint64, error) {
	var value uint64
	seen := false

	for _, w := range workers {
		if w.Err != nil {
			continue
		}
		if !seen {
			value = w.Value
			seen = true
			continue
		}
		if w.Value != value {
			return 0, apperrors.MismatchError{
				Expected: value,
				Got:      w.Value,
				Source:   fmt.Sprintf("worker %d", w.WorkerIndex),
			}
		}
	}
	return value, nil
}

// gcMode maps the gcoff switch onto a collector mode.
func gcMode(gcOff bool) string {
	if gcOff {
		return string(memory.GCModeAggressive)
	}
	return string(memory.GCModeAuto)
}

// totalRepetitions is the combined loop count across all workers, which
// is what decides whether auto GC bracketing is worth it.
func totalRepetitions(params RunParams) uint64 {
	return params.Args.Repetitions * uint64(params.Workers)
}

// ExecuteComparison runs each regime back to back and collects their
// results. Regimes are never run concurrently with each other: both
// contend on the same shared gate, and overlapping them would let one
// regime's workers inflate the other's wall time.
func ExecuteComparison(ctx context.Context, executors []factorial.Executor, params RunParams, progressReporter ProgressReporter, out io.Writer) []BenchmarkResult {
	results := make([]BenchmarkResult, 0, len(executors))
	for _, executor := range executors {
		results = append(results, ExecuteBenchmark(ctx, executor, params, progressReporter, out))
		if ctx.Err() != nil {
			break
		}
	}
	return results
}

// AnalyzeComparisonResults processes the results from the executed
// regimes and generates a summary report.
//
// It sorts the results by wall time, validates value consistency across
// successful regimes, and displays a comparative table. It handles the
// logic for determining global success or failure based on the
// individual outcomes.
//
// Parameters:
//   - results: The slice of regime results to analyze.
//   - opts: Presentation options (n, verbosity, details).
//   - presenter: The result presenter for display formatting.
//   - errHandler: Maps the first error to an exit code when nothing succeeded.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []BenchmarkResult, opts PresentationOptions, presenter ResultPresenter, errHandler ErrorHandler, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].WallTime < results[j].WallTime
	})

	var firstValidResult *BenchmarkResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValidResult == nil {
				firstValidResult = &results[i]
			}
		}
	}

	// Present the comparison table
	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No regime could complete the benchmark.\n")
		return errHandler.HandleError(firstError, 0, out)
	}

	mismatch := false
	for _, res := range results {
		if res.Err == nil && res.Value != firstValidResult.Value {
			mismatch = true
			break
		}
	}
	if mismatch {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The regimes disagree on the computed value.")
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n")
	presenter.PresentResult(*firstValidResult, opts, out)
	return apperrors.ExitSuccess
}
