// This file tracks loop throughput from per-chunk progress timings.

package metrics

import (
	"sync"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Throughput Configuration
// ─────────────────────────────────────────────────────────────────────────────

const (
	// ThroughputWindow is the maximum number of chunk samples kept for the
	// moving-average rate.
	ThroughputWindow = 20
)

// chunkSample records one completed progress chunk: how many loop
// iterations it covered and how long they took.
type chunkSample struct {
	iterations uint64
	elapsed    time.Duration
}

// ThroughputStats summarizes tracker state for display.
type ThroughputStats struct {
	SamplesInWindow int     // samples currently in the ring buffer
	SamplesRecorded int     // samples recorded since the last Reset
	TotalIterations uint64  // iterations recorded since the last Reset
	WindowRate      float64 // iterations/sec over the sample window
	OverallRate     float64 // iterations/sec since the last Reset
}

// ThroughputTracker derives a moving-average iteration rate from chunk
// timings reported by benchmark workers.
type ThroughputTracker struct {
	mu sync.RWMutex

	// Collected samples - implemented as a Ring Buffer for O(1) ops.
	// ThroughputWindow is small, so rate calculations iterate the array
	// rather than maintaining running window sums.
	samples      [ThroughputWindow]chunkSample
	samplesCount int // Total samples recorded (ever)
	samplesHead  int // Index of the next slot to write to

	// Running totals since the last Reset, for the overall rate.
	totalIterations uint64
	totalElapsed    time.Duration
}

// NewThroughputTracker creates an empty tracker.
func NewThroughputTracker() *ThroughputTracker {
	return &ThroughputTracker{}
}

// ─────────────────────────────────────────────────────────────────────────────
// Sample Recording
// ─────────────────────────────────────────────────────────────────────────────

// Record adds timing data for a completed chunk of loop iterations.
// Workers report concurrently, so recording takes the write lock.
// Zero-iteration and non-positive-duration samples are discarded: they
// carry no rate information and would poison the averages.
func (t *ThroughputTracker) Record(iterations uint64, elapsed time.Duration) {
	if iterations == 0 || elapsed <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.samples[t.samplesHead] = chunkSample{iterations: iterations, elapsed: elapsed}
	t.samplesHead = (t.samplesHead + 1) % ThroughputWindow
	t.samplesCount++
	t.totalIterations += iterations
	t.totalElapsed += elapsed
}

// ─────────────────────────────────────────────────────────────────────────────
// Rate Access
// ─────────────────────────────────────────────────────────────────────────────

// Rate returns the moving-average iteration rate in iterations per second
// over the sample window. Returns 0 until a sample has been recorded.
func (t *ThroughputTracker) Rate() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.windowRateLocked()
}

// windowRateLocked computes the window rate. Caller holds at least a
// read lock. When the buffer has wrapped, every slot is valid and slot
// order does not matter for the average, so no ring arithmetic is needed.
func (t *ThroughputTracker) windowRateLocked() float64 {
	count := t.samplesCount
	if count > ThroughputWindow {
		count = ThroughputWindow
	}

	var iterations uint64
	var elapsed time.Duration
	for _, sample := range t.samples[:count] {
		iterations += sample.iterations
		elapsed += sample.elapsed
	}

	if elapsed <= 0 {
		return 0
	}
	return float64(iterations) / elapsed.Seconds()
}

// Stats returns current statistics about the tracker.
func (t *ThroughputTracker) Stats() ThroughputStats {
	t.mu.RLock()
	defer t.mu.RUnlock()

	count := t.samplesCount
	if count > ThroughputWindow {
		count = ThroughputWindow
	}

	overall := 0.0
	if t.totalElapsed > 0 {
		overall = float64(t.totalIterations) / t.totalElapsed.Seconds()
	}

	return ThroughputStats{
		SamplesInWindow: count,
		SamplesRecorded: t.samplesCount,
		TotalIterations: t.totalIterations,
		WindowRate:      t.windowRateLocked(),
		OverallRate:     overall,
	}
}

// Reset clears all samples and running totals.
func (t *ThroughputTracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Ring buffer reset is simple
	t.samplesCount = 0
	t.samplesHead = 0
	t.totalIterations = 0
	t.totalElapsed = 0
}
