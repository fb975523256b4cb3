package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	apperrors "github.com/machapraveen/gilbench/internal/errors"
	"github.com/machapraveen/gilbench/internal/factorial/memory"
	"github.com/machapraveen/gilbench/internal/format"
	"github.com/machapraveen/gilbench/internal/orchestration"
	"github.com/machapraveen/gilbench/internal/progress"
	"github.com/machapraveen/gilbench/internal/ui"
)

// CLIColorProvider adapts the active UI theme to the error reporting
// color contract.
type CLIColorProvider struct{}

// Verify that CLIColorProvider implements apperrors.ColorProvider.
var _ apperrors.ColorProvider = CLIColorProvider{}

// Red returns the theme's error color.
func (CLIColorProvider) Red() string { return ui.ColorRed() }

// Yellow returns the theme's warning color.
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }

// Reset returns the escape code that clears all formatting.
func (CLIColorProvider) Reset() string { return ui.ColorReset() }

// CLIProgressReporter implements orchestration.ProgressReporter for CLI output.
// It wraps the DisplayProgress function to provide a spinner and progress bar
// display during benchmark runs.
type CLIProgressReporter struct{}

// Verify that CLIProgressReporter implements orchestration.ProgressReporter.
var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress displays a spinner and progress bar for ongoing workers.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, out io.Writer) {
	DisplayProgress(wg, progressChan, numWorkers, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter for CLI output.
// It provides formatted, colorized output for benchmark results in the
// command-line interface.
type CLIResultPresenter struct{}

// Verify interface compliance.
var (
	_ orchestration.ResultPresenter   = CLIResultPresenter{}
	_ orchestration.DurationFormatter = CLIResultPresenter{}
	_ orchestration.ErrorHandler      = CLIResultPresenter{}
)

// PresentComparisonTable displays the regime comparison table with wall
// times, the speedup against the slowest successful regime, and status,
// in a formatted tabular layout. Uses manual padding to correctly handle
// ANSI color codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.BenchmarkResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Regime Comparison ---\n")

	// Baseline for the speedup column: the slowest successful regime.
	var baseline time.Duration
	for _, res := range results {
		if res.Err == nil && res.WallTime > baseline {
			baseline = res.WallTime
		}
	}

	// Find the maximum column widths for proper alignment
	maxNameLen := 6     // "Regime" header length
	maxDurationLen := 9 // "Wall time" header length
	for _, res := range results {
		if len(res.Name) > maxNameLen {
			maxNameLen = len(res.Name)
		}
		if d := len(formatWallTime(res.WallTime)); d > maxDurationLen {
			maxDurationLen = d
		}
	}

	// Print header with proper padding
	fmt.Fprintf(out, "%sRegime%s%s   %sWall time%s%s   %sSpeedup%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-6),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-9),
		ui.ColorUnderline(), ui.ColorReset(),
		ui.ColorUnderline(), ui.ColorReset())

	// Print each result row
	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}

		speedup := "      —"
		if res.Err == nil && res.WallTime > 0 && baseline > 0 {
			speedup = fmt.Sprintf("%6.2fx", float64(baseline)/float64(res.WallTime))
		}

		duration := formatWallTime(res.WallTime)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s%s%s   %s\n",
			ui.ColorBlue(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			ui.ColorCyan(), speedup, ui.ColorReset(),
			status)
	}
}

// formatWallTime formats a wall time for the comparison table, guarding
// against sub-microsecond measurements rendering as "0s".
func formatWallTime(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

// padRight returns a string of spaces with the given length.
func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + fmt.Sprintf("%*s", length, "")
}

// PresentResult displays the final benchmark result using the CLI's
// DisplayResult function.
func (CLIResultPresenter) PresentResult(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// FormatDuration formats a duration for display using the CLI's standard
// duration formatting.
func (CLIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError handles benchmark errors and returns an appropriate exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

// DisplayMemoryStats shows the GC statistics collected around a
// measurement bracket.
func DisplayMemoryStats(stats memory.GCStats, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(stats.HeapAlloc))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(stats.TotalAlloc))
	fmt.Fprintf(out, "  GC cycles:       %d\n", stats.NumGC)
	if stats.PauseTotalNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(stats.PauseTotalNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms (GC disabled)\n")
	}
}
