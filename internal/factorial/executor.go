package factorial

import (
	"context"

	apperrors "github.com/machapraveen/gilbench/internal/errors"
	"github.com/machapraveen/gilbench/internal/progress"
)

// coreExecutor is the regime strategy: it decides how the gate token
// brackets the repetition loop. Implementations receive a plain
// progress callback and must honor context cancellation at chunk
// boundaries.
type coreExecutor interface {
	// Key returns the stable registry key ("gil", "nogil").
	Key() string

	// Name returns a human-readable description for display.
	Name() string

	// ComputeCore validates args and runs the repetition loop under the
	// regime's gate discipline.
	ComputeCore(ctx context.Context, report progress.ProgressCallback, args Args) (uint64, error)
}

// Executor is the public execution interface consumed by the
// orchestration layer. One Executor instance is shared by all workers
// of a regime; implementations must be safe for concurrent Compute
// calls.
type Executor interface {
	// Key returns the stable registry key of the regime.
	Key() string

	// Name returns the human-readable regime name.
	Name() string

	// Compute validates args and computes Repeat(args.N,
	// args.Repetitions) under the regime's gate discipline, reporting
	// progress for workerIndex on progressChan (which may be nil).
	//
	// A cancelled invocation returns an error and no partial value: the
	// loop either runs to completion or yields nothing.
	Compute(ctx context.Context, progressChan chan<- progress.ProgressUpdate, workerIndex int, args Args) (uint64, error)
}

// FactorialExecutor adapts a coreExecutor to the Executor interface,
// bridging the channel and observer progress styles onto the core's
// plain callback.
type FactorialExecutor struct {
	core coreExecutor
}

// NewExecutor wraps a regime core in a FactorialExecutor.
func NewExecutor(core coreExecutor) Executor {
	return &FactorialExecutor{core: core}
}

// Compile-time interface compliance check.
var _ Executor = (*FactorialExecutor)(nil)

// Key implements Executor.
func (e *FactorialExecutor) Key() string { return e.core.Key() }

// Name implements Executor.
func (e *FactorialExecutor) Name() string { return e.core.Name() }

// Compute implements Executor. A nil progressChan disables reporting.
func (e *FactorialExecutor) Compute(ctx context.Context, progressChan chan<- progress.ProgressUpdate, workerIndex int, args Args) (uint64, error) {
	var report progress.ProgressCallback
	if progressChan != nil {
		obs := progress.NewChannelObserver(progressChan)
		report = func(v float64) { obs.Update(workerIndex, v) }
	}
	return e.core.ComputeCore(ctx, report, args)
}

// ComputeWithObservers runs the regime with progress fanned out to the
// observers registered on subject at call time. The observer set is
// frozen before the loop starts, so registrations racing with the
// computation do not tear the notification list.
func (e *FactorialExecutor) ComputeWithObservers(ctx context.Context, subject *progress.ProgressSubject, workerIndex int, args Args) (uint64, error) {
	var report progress.ProgressCallback
	if subject != nil {
		report = subject.Freeze(workerIndex)
	}
	return e.core.ComputeCore(ctx, report, args)
}

// repeatLoop is the chunked form of Repeat shared by both regimes. It
// reports progress and checks for cancellation once per chunk; a
// cancelled loop discards the accumulator and returns only the error.
func repeatLoop(ctx context.Context, report progress.ProgressCallback, args Args) (uint64, error) {
	chunk := progress.ChunkSize(args.Repetitions)

	var last uint64
	var done uint64
	for done < args.Repetitions {
		end := done + chunk
		if end > args.Repetitions {
			end = args.Repetitions
		}
		for ; done < end; done++ {
			last = Product(args.N)
		}

		if err := ctx.Err(); err != nil {
			return 0, apperrors.WrapError(err, "repetition loop canceled")
		}
		progress.ReportLoopProgress(report, done, args.Repetitions)
	}
	return last, nil
}
