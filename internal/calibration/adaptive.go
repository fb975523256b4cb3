// This file implements adaptive sweep generation based on hardware characteristics.

package calibration

import (
	"runtime"

	"github.com/machapraveen/gilbench/internal/config"
)

// ─────────────────────────────────────────────────────────────────────────────
// Adaptive Worker Sweep Generation
// ─────────────────────────────────────────────────────────────────────────────

// GenerateWorkerCounts generates the worker counts the scaling sweep
// measures, based on the number of available CPU cores.
//
// The rationale:
// - Doubling from 1 keeps the sweep short while bracketing the scaling knee
// - Counts beyond the CPU count only add scheduler churn, so the sweep
//   stops at the core count (capped at MaxCalibrationWorkers)
// - Single-core: 1 and 2 are still both measured, because two workers on
//   one core is exactly the contention the benchmark demonstrates
func GenerateWorkerCounts() []int {
	numCPU := runtime.NumCPU()

	limit := numCPU
	if limit > MaxCalibrationWorkers {
		limit = MaxCalibrationWorkers
	}
	if limit < 2 {
		limit = 2
	}

	counts := []int{}
	for k := 1; k <= limit; k *= 2 {
		counts = append(counts, k)
	}
	if last := counts[len(counts)-1]; last != limit {
		counts = append(counts, limit)
	}
	return counts
}

// GenerateQuickWorkerCounts generates a smaller sweep for quick
// auto-calibration at startup: the single-worker baseline, a midpoint,
// and the sweep limit.
func GenerateQuickWorkerCounts() []int {
	full := GenerateWorkerCounts()
	if len(full) <= 3 {
		return full
	}
	return []int{full[0], full[len(full)/2], full[len(full)-1]}
}

// ─────────────────────────────────────────────────────────────────────────────
// Parameter Estimation (without benchmarking)
// Delegates to config.EstimateOptimal*; canonical implementations live there.
// ─────────────────────────────────────────────────────────────────────────────

// EstimateOptimalWorkers delegates to config.EstimateOptimalWorkers.
func EstimateOptimalWorkers() int { return config.EstimateOptimalWorkers() }

// EstimateOptimalRepetitions delegates to config.EstimateOptimalRepetitions.
func EstimateOptimalRepetitions() uint64 { return config.EstimateOptimalRepetitions() }
