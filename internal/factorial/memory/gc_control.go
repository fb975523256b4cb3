// Package memory brackets measured benchmark spans with garbage
// collector control, so GC pauses land between regimes instead of
// inside their wall-clock measurements.
package memory

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"

	"github.com/machapraveen/gilbench/internal/metrics"
)

// GCMode controls the garbage collector behavior during a measured run.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCAutoThreshold is the minimum repetition count for auto GC control
// to activate. Runs below it complete before the collector would fire.
const GCAutoThreshold uint64 = 10_000_000

// GCController disables Go's garbage collector around a measured span
// and restores it afterward. The workload itself is allocation-free,
// but the progress plumbing and display layers are not; parking the
// collector keeps its pauses out of the regime wall clocks.
type GCController struct {
	mode              GCMode
	originalGCPercent int
	active            bool
	logger            zerolog.Logger
	collector         *metrics.MemoryCollector
	start             metrics.MemorySnapshot
	end               metrics.MemorySnapshot
}

// GCStats holds GC statistics deltas for a measured span.
type GCStats struct {
	HeapAlloc    uint64
	TotalAlloc   uint64
	NumGC        uint32
	PauseTotalNs uint64
}

// NewGCController creates a controller for the given mode and total
// repetition count across all workers.
func NewGCController(mode string, repetitions uint64) *GCController {
	gc := &GCController{
		mode:      GCMode(mode),
		logger:    zerolog.Nop(),
		collector: metrics.NewMemoryCollector(),
	}
	switch gc.mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = repetitions >= GCAutoThreshold
	default:
		gc.active = false
	}
	return gc
}

// SetLogger configures the logger for GC control events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Active reports whether this controller will actually bracket the run.
func (gc *GCController) Active() bool {
	return gc.active
}

// Begin disables GC if the controller is active.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	gc.start = gc.collector.Snapshot()
	gc.originalGCPercent = debug.SetGCPercent(-1)
	// Soft memory limit as an OOM backstop while the collector is off.
	if gc.start.Sys > 0 {
		limit := int64(float64(gc.start.Sys) * 3)
		if limit > 0 {
			debug.SetMemoryLimit(limit)
		}
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.start.HeapAlloc).
		Msg("gc disabled for measured span")
}

// End restores original GC settings and triggers a collection so the
// next regime starts from a clean heap.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	gc.end = gc.collector.Snapshot()
	debug.SetGCPercent(gc.originalGCPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	delta := gc.end.Delta(gc.start)
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.end.HeapAlloc).
		Uint64("total_alloc_bytes", delta.TotalAllocBytes).
		Uint32("gc_cycles", delta.NumGC).
		Msg("gc re-enabled")
}

// Stats returns GC statistics deltas between Begin and End.
func (gc *GCController) Stats() GCStats {
	delta := gc.end.Delta(gc.start)
	return GCStats{
		HeapAlloc:    gc.end.HeapAlloc,
		TotalAlloc:   delta.TotalAllocBytes,
		NumGC:        delta.NumGC,
		PauseTotalNs: uint64(delta.PauseTotal),
	}
}
