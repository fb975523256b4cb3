// # Naming Conventions
//
// Output helpers in this package split by behavior:
//
//   - Display* functions render to an [io.Writer], colors included.
//     Examples: [DisplayResult], [DisplayQuietResult].
//   - Format* functions return plain strings and perform no I/O.
//     Examples: [FormatQuietResult].
//   - Write* functions persist results to the filesystem.
//     Examples: [WriteResultToFile].
//
// Keeping the split strict lets callers combine quiet, colored and
// file output without printing anything twice.

package cli

import (
	"fmt"
	"io"
	"math/bits"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/machapraveen/gilbench/internal/orchestration"
	"github.com/machapraveen/gilbench/internal/ui"
)

// OutputConfig selects how benchmark results leave the process.
type OutputConfig struct {
	// OutputFile is the path to save the result (empty for no file output).
	OutputFile string
	// Quiet reduces output to the bare result value.
	Quiet bool
	// Verbose shows the hexadecimal form of the result value.
	Verbose bool
}

// WriteResultToFile persists one benchmark result as a small annotated
// report. Missing parent directories are created.
//
// Parameters:
//   - value: The computed factorial value.
//   - n: The factorial argument.
//   - duration: The benchmark wall time.
//   - regime: The regime name used.
//   - config: Output configuration; an empty OutputFile is a no-op.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteResultToFile(value uint64, n uint, duration time.Duration, regime string, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	if dir := filepath.Dir(config.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Gate Benchmark Result\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Regime: %s\n", regime)
	fmt.Fprintf(file, "# Wall time: %s\n", duration)
	fmt.Fprintf(file, "# N: %d\n", n)
	fmt.Fprintf(file, "# Bits: %d\n", bits.Len64(value))
	fmt.Fprintf(file, "\n")
	fmt.Fprintf(file, "%d! =\n%d\n", n, value)

	return nil
}

// FormatQuietResult renders the bare result value for scripting.
func FormatQuietResult(value uint64) string {
	return strconv.FormatUint(value, 10)
}

// DisplayQuietResult prints the bare result value on its own line.
func DisplayQuietResult(out io.Writer, value uint64) {
	fmt.Fprintln(out, FormatQuietResult(value))
}

// DisplayResultWithConfig routes one result through every configured
// output: the quiet or standard display on out, then the report file.
//
// Returns:
//   - error: An error if file output fails.
func DisplayResultWithConfig(out io.Writer, result orchestration.BenchmarkResult, opts orchestration.PresentationOptions, config OutputConfig) error {
	if config.Quiet {
		DisplayQuietResult(out, result.Value)
	} else {
		DisplayResult(result, opts, out)
	}

	if config.OutputFile == "" {
		return nil
	}
	if err := WriteResultToFile(result.Value, opts.N, result.WallTime, result.Name, config); err != nil {
		return err
	}
	// The confirmation would pollute quiet mode's single-line contract.
	if !config.Quiet {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), config.OutputFile, ui.ColorReset())
	}
	return nil
}
