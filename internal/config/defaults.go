package config

import "runtime"

// Worker and repetition resolution chain (highest priority first):
//   1. CLI flags (-workers, -repetitions)
//   2. Environment variables (GILBENCH_WORKERS, GILBENCH_REPETITIONS)
//   3. Cached calibration profile (~/.gilbench_calibration.json)
//   4. Adaptive hardware estimation (this file)
//   5. Static defaults in config.go

// ApplyAdaptiveDefaults fills in benchmark parameters based on hardware
// characteristics (CPU cores, word size) when they are set to zero.
// Zero means the user asked for auto-detection (-workers 0) or no
// calibration profile supplied a value.
//
// The function only modifies fields that are zero, preserving any
// explicit flag, environment or file values.
func ApplyAdaptiveDefaults(cfg AppConfig) AppConfig {
	if cfg.Workers == 0 {
		cfg.Workers = EstimateOptimalWorkers()
	}
	if cfg.Repetitions == 0 {
		cfg.Repetitions = EstimateOptimalRepetitions()
	}
	return cfg
}

// EstimateOptimalWorkers provides a heuristic worker count without
// running benchmarks. The goal is lock contention, not raw throughput:
// enough workers that the two regimes separate clearly, without
// drowning small machines in scheduling overhead.
func EstimateOptimalWorkers() int {
	numCPU := runtime.NumCPU()

	switch {
	case numCPU == 1:
		return 2 // Two workers still show serialization against overlap
	case numCPU < DefaultWorkers:
		return numCPU
	default:
		return DefaultWorkers
	}
}

// EstimateOptimalRepetitions provides a heuristic repetition count
// without running benchmarks.
func EstimateOptimalRepetitions() uint64 {
	wordSize := 32 << (^uint(0) >> 63)

	if wordSize == 64 {
		return DefaultRepetitions
	}
	return DefaultRepetitions / 2 // 64-bit multiplies are emulated on 32-bit targets
}
