package cli

import (
	"fmt"
	"io"
	"runtime"
	"strconv"

	"github.com/machapraveen/gilbench/internal/config"
	"github.com/machapraveen/gilbench/internal/factorial"
	"github.com/machapraveen/gilbench/internal/format"
	"github.com/machapraveen/gilbench/internal/ui"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the benchmark workload, worker count, timeout, and environment
// details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Workload: %s%d!%s computed %s%s%s times per worker, %s%d%s workers, timeout %s%s%s.\n",
		ui.ColorMagenta(), cfg.N, ui.ColorReset(),
		ui.ColorYellow(), format.FormatNumberString(strconv.FormatUint(cfg.Repetitions, 10)), ui.ColorReset(),
		ui.ColorCyan(), cfg.Workers, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())

	var tweaks []string
	if cfg.Warmup {
		tweaks = append(tweaks, "warmup")
	}
	if cfg.GCOff {
		tweaks = append(tweaks, "GC disabled")
	}
	if cfg.PinWorkers {
		tweaks = append(tweaks, "workers pinned")
	}
	if len(tweaks) > 0 {
		fmt.Fprintf(out, "Measurement tweaks: %s%s%s.\n",
			ui.ColorCyan(), joinTweaks(tweaks), ui.ColorReset())
	}
}

// joinTweaks joins tweak descriptions with comma separators.
func joinTweaks(tweaks []string) string {
	out := tweaks[0]
	for _, t := range tweaks[1:] {
		out += ", " + t
	}
	return out
}

// PrintExecutionMode displays the execution mode (single regime vs comparison).
//
// Parameters:
//   - executors: The slice of regimes that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(executors []factorial.Executor, out io.Writer) {
	var modeDesc string
	if len(executors) > 1 {
		modeDesc = "Back-to-back comparison of all regimes"
	} else {
		modeDesc = fmt.Sprintf("Single benchmark under the %s%s%s regime",
			ui.ColorGreen(), executors[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
