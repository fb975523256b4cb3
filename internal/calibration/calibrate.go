// This file implements the calibration measurements: a single-worker
// throughput probe sizing the repetition count, and a scaling sweep
// picking the worker count the machine can actually feed.

package calibration

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/machapraveen/gilbench/internal/errors"

	"github.com/machapraveen/gilbench/internal/config"
	"github.com/machapraveen/gilbench/internal/factorial"
)

// ─────────────────────────────────────────────────────────────────────────────
// Calibration Configuration
// ─────────────────────────────────────────────────────────────────────────────

const (
	// CalibrationN is the factorial operand of every calibration run:
	// the heaviest operand the benchmark itself accepts.
	CalibrationN = factorial.MaxN

	// FullProbeWindow is the throughput sampling window of an explicit
	// -calibrate run.
	FullProbeWindow = 1 * time.Second

	// QuickProbeWindow is the abbreviated window used at startup.
	QuickProbeWindow = 150 * time.Millisecond

	// TargetWorkerDuration is the per-worker wall time the recommended
	// repetition count aims at. Long enough that scheduling noise
	// disappears, short enough that a 16-worker serialized run stays
	// bearable.
	TargetWorkerDuration = 500 * time.Millisecond

	// ScalingRunDuration is the approximate wall time of one scaling
	// measurement in the sweep.
	ScalingRunDuration = 200 * time.Millisecond

	// MaxCalibrationWorkers caps the scaling sweep.
	MaxCalibrationWorkers = 16

	// MinParallelEfficiency is the per-worker efficiency a count must
	// keep to be recommended. Scaling is sub-linear, so the sweep picks
	// the largest count still pulling its weight.
	MinParallelEfficiency = 0.5

	// ProfileMaxAge is how long a cached profile is trusted before the
	// machine is remeasured.
	ProfileMaxAge = 30 * 24 * time.Hour

	// probeChunk is the repetition block between context checks while
	// probing throughput.
	probeChunk = 100_000

	// MinRecommendedRepetitions and MaxRecommendedRepetitions clamp the
	// recommendation against absurd probe readings.
	MinRecommendedRepetitions = 100_000
	MaxRecommendedRepetitions = 1_000_000_000
)

// calibrationSink keeps the probe loops observable so they cannot be
// eliminated.
var calibrationSink uint64

// calibrationResult is one scaling measurement of the sweep.
type calibrationResult struct {
	Workers  int
	Duration time.Duration
	Speedup  float64
	Err      error
}

// ─────────────────────────────────────────────────────────────────────────────
// Full Calibration
// ─────────────────────────────────────────────────────────────────────────────

// RunCalibration measures the machine and recommends benchmark
// parameters: a repetition count sized for TargetWorkerDuration per
// worker, and the largest worker count that still scales with at least
// MinParallelEfficiency. The measurements are printed to out, cached at
// the profile path and applied to the returned configuration.
func RunCalibration(ctx context.Context, cfg config.AppConfig, out io.Writer) (config.AppConfig, error) {
	fmt.Fprintf(out, "--- Calibration ---\n")
	fmt.Fprintf(out, "Probing single-worker throughput (%v window)...\n", FullProbeWindow)

	started := time.Now()
	rate, err := measureThroughput(ctx, FullProbeWindow)
	if err != nil {
		return cfg, err
	}
	reps := RecommendRepetitions(rate, TargetWorkerDuration)
	fmt.Fprintf(out, "Measured %.0f iterations/s, scaling sweep...\n", rate)

	results, best, err := runScalingSweep(ctx, GenerateWorkerCounts(), rate)
	if err != nil {
		return cfg, err
	}
	printCalibrationResults(out, results, best)

	profile := NewProfile()
	profile.OptimalWorkers = best
	profile.OptimalRepetitions = reps
	profile.IterationsPerSecond = rate
	profile.CalibrationTime = time.Since(started).Round(time.Millisecond).String()

	path := profilePath(cfg)
	if err := profile.SaveProfile(path); err != nil {
		return cfg, err
	}
	fmt.Fprintf(out, "\nProfile saved to %s\n", path)

	cfg.Workers = best
	cfg.Repetitions = reps
	printCalibrationOutput(cfg, out)
	return cfg, nil
}

// AutoCalibrate resolves benchmark parameters at startup with the least
// possible work: a still-valid cached profile wins, otherwise a quick
// probe plus a three-point worker sweep measure the machine and refresh
// the cache. Only auto-detected (zero) fields are touched; explicit
// flag, environment and file values are preserved.
func AutoCalibrate(ctx context.Context, cfg config.AppConfig, out io.Writer) (config.AppConfig, error) {
	if updated, ok := LoadCachedCalibration(cfg); ok {
		printCalibrationOutput(updated, out)
		return updated, nil
	}

	started := time.Now()
	rate, err := measureThroughput(ctx, QuickProbeWindow)
	if err != nil {
		return cfg, err
	}

	profile := NewProfile()
	profile.OptimalWorkers = EstimateOptimalWorkers()
	profile.OptimalRepetitions = RecommendRepetitions(rate, TargetWorkerDuration)
	profile.IterationsPerSecond = rate

	// A three-point sweep turns the worker recommendation into a
	// measurement; the hardware heuristic stays as the fallback.
	if _, best, err := runScalingSweep(ctx, GenerateQuickWorkerCounts(), rate); err != nil {
		return cfg, err
	} else if best > 0 {
		profile.OptimalWorkers = best
	}
	profile.CalibrationTime = time.Since(started).Round(time.Millisecond).String()

	if err := profile.SaveProfile(profilePath(cfg)); err != nil {
		// The profile is only a cache; a read-only home directory must
		// not fail the benchmark.
		fmt.Fprintf(out, "calibration profile not cached: %v\n", err)
	}

	cfg = applyProfile(cfg, profile)
	printCalibrationOutput(cfg, out)
	return cfg, nil
}

// LoadCachedCalibration applies a valid, fresh cached profile to the
// auto-detected (zero) benchmark parameters. The boolean reports whether
// a profile was applied.
func LoadCachedCalibration(cfg config.AppConfig) (config.AppConfig, bool) {
	profile, err := loadProfile(profilePath(cfg))
	if err != nil || !profile.IsValid() || profile.IsStale(ProfileMaxAge) {
		return cfg, false
	}
	return applyProfile(cfg, profile), true
}

// applyProfile copies profile recommendations into zero-valued fields.
func applyProfile(cfg config.AppConfig, profile *CalibrationProfile) config.AppConfig {
	if cfg.Workers == 0 && profile.OptimalWorkers > 0 {
		cfg.Workers = profile.OptimalWorkers
	}
	if cfg.Repetitions == 0 && profile.OptimalRepetitions > 0 {
		cfg.Repetitions = profile.OptimalRepetitions
	}
	return cfg
}

// profilePath resolves the profile location, honoring the CLI override.
func profilePath(cfg config.AppConfig) string {
	if cfg.CalibrationProfile != "" {
		return cfg.CalibrationProfile
	}
	return GetDefaultProfilePath()
}

// ─────────────────────────────────────────────────────────────────────────────
// Measurements
// ─────────────────────────────────────────────────────────────────────────────

// measureThroughput runs the reference loop in chunks until the window
// closes and reports the sustained iteration rate per second.
func measureThroughput(ctx context.Context, window time.Duration) (float64, error) {
	deadline := time.Now().Add(window)
	var iterations uint64

	start := time.Now()
	for time.Now().Before(deadline) {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		calibrationSink = factorial.Repeat(CalibrationN, probeChunk)
		iterations += probeChunk
	}
	elapsed := time.Since(start)

	if elapsed <= 0 || iterations == 0 {
		return 0, fmt.Errorf("throughput probe measured nothing in %v", window)
	}
	return float64(iterations) / elapsed.Seconds(), nil
}

// measureScaling times reps repetitions per worker running concurrently
// with the gate released, mirroring the parallel path of the real
// benchmark.
func measureScaling(ctx context.Context, workers int, reps uint64) (time.Duration, error) {
	g, ctx := errgroup.WithContext(ctx)

	start := time.Now()
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := factorial.WithoutGIL(CalibrationN, reps)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

// runScalingSweep measures each candidate worker count and picks the
// largest one whose parallel efficiency stays above the floor. The
// sweep aborts on cancellation; any other measurement failure is
// recorded in its row and the sweep continues.
func runScalingSweep(ctx context.Context, counts []int, rate float64) ([]calibrationResult, int, error) {
	scalingReps := RecommendRepetitions(rate, ScalingRunDuration)

	results := make([]calibrationResult, 0, len(counts))
	var baseline time.Duration
	best := 1
	for _, workers := range counts {
		duration, err := measureScaling(ctx, workers, scalingReps)
		if err != nil {
			if apperrors.IsContextError(err) {
				return nil, 0, err
			}
			results = append(results, calibrationResult{Workers: workers, Err: err})
			continue
		}

		result := calibrationResult{Workers: workers, Duration: duration}
		if baseline == 0 {
			baseline = duration
		}
		if baseline > 0 && duration > 0 {
			result.Speedup = float64(baseline) / float64(duration)
		}
		if result.Speedup/float64(workers) >= MinParallelEfficiency {
			best = workers
		}
		results = append(results, result)
	}
	return results, best, nil
}

// RecommendRepetitions sizes the repetition count so one worker runs for
// roughly target at the measured rate. The result is clamped and rounded
// to two significant digits so profiles stay readable.
func RecommendRepetitions(itersPerSec float64, target time.Duration) uint64 {
	if itersPerSec <= 0 {
		return config.DefaultRepetitions
	}

	reps := uint64(itersPerSec * target.Seconds())
	if reps < MinRecommendedRepetitions {
		return MinRecommendedRepetitions
	}
	if reps > MaxRecommendedRepetitions {
		return MaxRecommendedRepetitions
	}
	return roundToTwoSignificant(reps)
}

// roundToTwoSignificant rounds down to two significant decimal digits,
// e.g. 4736211 becomes 4700000.
func roundToTwoSignificant(v uint64) uint64 {
	magnitude := uint64(1)
	for v/magnitude >= 100 {
		magnitude *= 10
	}
	return v / magnitude * magnitude
}
