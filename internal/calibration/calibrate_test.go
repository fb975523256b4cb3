package calibration

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	apperrors "github.com/machapraveen/gilbench/internal/errors"

	"github.com/machapraveen/gilbench/internal/config"
)

func TestRecommendRepetitions(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name        string
		itersPerSec float64
		target      time.Duration
		want        uint64
	}{
		{
			name:        "zero rate falls back to default",
			itersPerSec: 0,
			target:      TargetWorkerDuration,
			want:        config.DefaultRepetitions,
		},
		{
			name:        "negative rate falls back to default",
			itersPerSec: -1,
			target:      TargetWorkerDuration,
			want:        config.DefaultRepetitions,
		},
		{
			name:        "tiny rate clamps to the minimum",
			itersPerSec: 10,
			target:      500 * time.Millisecond,
			want:        MinRecommendedRepetitions,
		},
		{
			name:        "huge rate clamps to the maximum",
			itersPerSec: 1e13,
			target:      500 * time.Millisecond,
			want:        MaxRecommendedRepetitions,
		},
		{
			name:        "typical rate is rounded",
			itersPerSec: 9_472_422,
			target:      500 * time.Millisecond,
			want:        4_700_000,
		},
		{
			name:        "round rate stays round",
			itersPerSec: 50_000_000,
			target:      500 * time.Millisecond,
			want:        25_000_000,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := RecommendRepetitions(tt.itersPerSec, tt.target); got != tt.want {
				t.Errorf("RecommendRepetitions(%f, %v) = %d, want %d",
					tt.itersPerSec, tt.target, got, tt.want)
			}
		})
	}
}

func TestRoundToTwoSignificant(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   uint64
		want uint64
	}{
		{1, 1},
		{99, 99},
		{100, 100},
		{101, 100},
		{4_736_211, 4_700_000},
		{999_999, 990_000},
	}

	for _, tt := range tests {
		if got := roundToTwoSignificant(tt.in); got != tt.want {
			t.Errorf("roundToTwoSignificant(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestMeasureThroughput(t *testing.T) {
	t.Parallel()
	rate, err := measureThroughput(context.Background(), 30*time.Millisecond)
	if err != nil {
		t.Fatalf("measureThroughput failed: %v", err)
	}
	if rate <= 0 {
		t.Errorf("rate = %f, want positive", rate)
	}
	t.Logf("Measured %.0f iterations/s", rate)
}

func TestMeasureThroughput_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := measureThroughput(ctx, time.Second)
	if err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if !apperrors.IsContextError(err) {
		t.Errorf("error %v should be a context error", err)
	}
}

func TestMeasureScaling(t *testing.T) {
	t.Parallel()
	duration, err := measureScaling(context.Background(), 2, 100_000)
	if err != nil {
		t.Fatalf("measureScaling failed: %v", err)
	}
	if duration <= 0 {
		t.Errorf("duration = %v, want positive", duration)
	}
}

func TestRunScalingSweep(t *testing.T) {
	t.Parallel()
	// A rate of 1 forces the minimum repetition count per measurement,
	// keeping the sweep fast.
	results, best, err := runScalingSweep(context.Background(), []int{1, 2}, 1)
	if err != nil {
		t.Fatalf("runScalingSweep failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("results = %d, want 2", len(results))
	}
	if results[0].Workers != 1 || results[1].Workers != 2 {
		t.Errorf("worker counts = %d, %d; want 1, 2", results[0].Workers, results[1].Workers)
	}
	if results[0].Speedup != 1.0 {
		t.Errorf("baseline speedup = %f, want 1.0", results[0].Speedup)
	}
	if best < 1 || best > 2 {
		t.Errorf("best = %d, want 1 or 2", best)
	}
}

func TestRunScalingSweep_Cancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := runScalingSweep(ctx, []int{1, 2}, 1)
	if err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if !apperrors.IsContextError(err) {
		t.Errorf("error %v should be a context error", err)
	}
}

func TestLoadCachedCalibration(t *testing.T) {
	t.Parallel()
	tmpDir, err := os.MkdirTemp("", "gilbench_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	profilePath := filepath.Join(tmpDir, "profile.json")

	profile := NewProfile()
	profile.OptimalWorkers = 8
	profile.OptimalRepetitions = 25_000_000
	if err := profile.SaveProfile(profilePath); err != nil {
		t.Fatalf("SaveProfile failed: %v", err)
	}

	t.Run("applies to auto-detected fields", func(t *testing.T) {
		cfg := config.AppConfig{CalibrationProfile: profilePath}
		updated, applied := LoadCachedCalibration(cfg)
		if !applied {
			t.Fatal("expected the cached profile to be applied")
		}
		if updated.Workers != 8 {
			t.Errorf("Workers = %d, want 8", updated.Workers)
		}
		if updated.Repetitions != 25_000_000 {
			t.Errorf("Repetitions = %d, want 25000000", updated.Repetitions)
		}
	})

	t.Run("preserves explicit values", func(t *testing.T) {
		cfg := config.AppConfig{CalibrationProfile: profilePath, Workers: 4}
		updated, applied := LoadCachedCalibration(cfg)
		if !applied {
			t.Fatal("expected the cached profile to be applied")
		}
		if updated.Workers != 4 {
			t.Errorf("Workers = %d, want the explicit 4", updated.Workers)
		}
		if updated.Repetitions != 25_000_000 {
			t.Errorf("Repetitions = %d, want 25000000", updated.Repetitions)
		}
	})

	t.Run("rejects a mismatched fingerprint", func(t *testing.T) {
		mismatchPath := filepath.Join(tmpDir, "mismatch.json")
		bad := NewProfile()
		bad.NumCPU = 999
		bad.OptimalWorkers = 8
		if err := bad.SaveProfile(mismatchPath); err != nil {
			t.Fatalf("SaveProfile failed: %v", err)
		}

		cfg := config.AppConfig{CalibrationProfile: mismatchPath}
		_, applied := LoadCachedCalibration(cfg)
		if applied {
			t.Error("expected a mismatched profile to be ignored")
		}
	})

	t.Run("rejects a stale profile", func(t *testing.T) {
		stalePath := filepath.Join(tmpDir, "stale.json")
		old := NewProfile()
		old.CalibratedAt = time.Now().Add(-2 * ProfileMaxAge)
		old.OptimalWorkers = 8
		if err := old.SaveProfile(stalePath); err != nil {
			t.Fatalf("SaveProfile failed: %v", err)
		}

		cfg := config.AppConfig{CalibrationProfile: stalePath}
		_, applied := LoadCachedCalibration(cfg)
		if applied {
			t.Error("expected a stale profile to be ignored")
		}
	})

	t.Run("missing file is not applied", func(t *testing.T) {
		cfg := config.AppConfig{CalibrationProfile: filepath.Join(tmpDir, "missing.json")}
		_, applied := LoadCachedCalibration(cfg)
		if applied {
			t.Error("expected a missing profile to not be applied")
		}
	})
}

func TestAutoCalibrate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping measurement in short mode")
	}
	t.Parallel()

	tmpDir, err := os.MkdirTemp("", "gilbench_test")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tmpDir)

	profilePath := filepath.Join(tmpDir, "profile.json")
	cfg := config.AppConfig{CalibrationProfile: profilePath}

	var buf strings.Builder
	updated, err := AutoCalibrate(context.Background(), cfg, &buf)
	if err != nil {
		t.Fatalf("AutoCalibrate failed: %v", err)
	}

	if updated.Workers < 1 {
		t.Errorf("Workers = %d, want positive", updated.Workers)
	}
	if updated.Repetitions == 0 {
		t.Error("Repetitions should be set")
	}
	if _, err := os.Stat(profilePath); err != nil {
		t.Errorf("profile should be cached: %v", err)
	}
	if !strings.Contains(buf.String(), "Calibrated parameters") {
		t.Errorf("output should report the calibrated parameters, got %q", buf.String())
	}

	// A second call must hit the fresh cache instead of remeasuring.
	start := time.Now()
	if _, err := AutoCalibrate(context.Background(), cfg, &buf); err != nil {
		t.Fatalf("cached AutoCalibrate failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed > QuickProbeWindow {
		t.Errorf("cached call took %v, should skip the %v probe", elapsed, QuickProbeWindow)
	}
}
