package factorial

import (
	"context"

	"github.com/machapraveen/gilbench/internal/progress"
)

// GateHeld is the serialized regime: the gate token is acquired before
// argument validation and held until the repetition loop finishes, so
// at most one worker makes progress at any instant. This reproduces a
// native extension that does CPU-bound work without ever releasing the
// interpreter lock.
//
// The zero value uses the process-wide SharedGate; tests inject a
// private Gate to keep regimes isolated from each other.
type GateHeld struct {
	Gate *Gate
}

// Key implements coreExecutor.
func (c *GateHeld) Key() string { return KeyGIL }

// Name implements coreExecutor.
func (c *GateHeld) Name() string { return "GIL Held (token spans the loop)" }

// ComputeCore implements coreExecutor.
func (c *GateHeld) ComputeCore(ctx context.Context, report progress.ProgressCallback, args Args) (uint64, error) {
	g := c.gate()
	if err := g.Acquire(ctx); err != nil {
		return 0, err
	}
	defer g.Release()

	if err := args.Validate(); err != nil {
		return 0, err
	}
	return repeatLoop(ctx, report, args)
}

func (c *GateHeld) gate() *Gate {
	if c.Gate != nil {
		return c.Gate
	}
	return sharedGate
}

// GateReleased is the parallel regime: the gate token covers only
// argument validation and the final result hand-off, and is released
// for the duration of the repetition loop. Workers overlap on the
// CPU-bound section, the same way Py_BEGIN_ALLOW_THREADS /
// Py_END_ALLOW_THREADS brackets let native threads run while the
// extension computes.
//
// The zero value uses the process-wide SharedGate.
type GateReleased struct {
	Gate *Gate
}

// Key implements coreExecutor.
func (c *GateReleased) Key() string { return KeyNoGIL }

// Name implements coreExecutor.
func (c *GateReleased) Name() string { return "GIL Released (token dropped for the loop)" }

// ComputeCore implements coreExecutor.
func (c *GateReleased) ComputeCore(ctx context.Context, report progress.ProgressCallback, args Args) (uint64, error) {
	g := c.gate()
	if err := g.Acquire(ctx); err != nil {
		return 0, err
	}
	if err := args.Validate(); err != nil {
		g.Release()
		return 0, err
	}
	g.Release()

	result, err := repeatLoop(ctx, report, args)
	if err != nil {
		return 0, err
	}

	// Reacquire briefly for the result hand-off: the value crosses back
	// into gate-protected territory exactly once, at the end.
	if err := g.Acquire(ctx); err != nil {
		return 0, err
	}
	g.Release()
	return result, nil
}

func (c *GateReleased) gate() *Gate {
	if c.Gate != nil {
		return c.Gate
	}
	return sharedGate
}

// Compile-time interface compliance checks.
var (
	_ coreExecutor = (*GateHeld)(nil)
	_ coreExecutor = (*GateReleased)(nil)
)
