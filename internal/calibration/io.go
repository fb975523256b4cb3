package calibration

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/machapraveen/gilbench/internal/config"
	"github.com/machapraveen/gilbench/internal/format"
	"github.com/machapraveen/gilbench/internal/ui"
)

// printCalibrationResults formats and prints the scaling sweep table.
func printCalibrationResults(out io.Writer, results []calibrationResult, bestWorkers int) {
	fmt.Fprintf(out, "\n--- Calibration Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "  %sWorkers%s    │ %sWall Time%s    │ %sSpeedup%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	fmt.Fprintf(tw, "  %s┼%s┼%s\n", strings.Repeat("─", 12), strings.Repeat("─", 16), strings.Repeat("─", 11))
	for _, res := range results {
		durationStr := fmt.Sprintf("%sN/A%s", ui.ColorRed(), ui.ColorReset())
		speedupStr := "—"
		if res.Err == nil {
			durationStr = format.FormatExecutionDuration(res.Duration)
			if res.Duration == 0 {
				durationStr = "< 1µs"
			}
			speedupStr = fmt.Sprintf("%.2fx", res.Speedup)
		}
		highlight := ""
		if res.Workers == bestWorkers && res.Err == nil {
			highlight = fmt.Sprintf(" %s(Optimal)%s", ui.ColorGreen(), ui.ColorReset())
		}
		fmt.Fprintf(tw, "  %s%-10d%s │ %s%s%s │ %s%s\n",
			ui.ColorCyan(), res.Workers, ui.ColorReset(),
			ui.ColorYellow(), durationStr, ui.ColorReset(),
			speedupStr, highlight)
	}
	tw.Flush()
}

// printCalibrationOutput prints the calibrated benchmark parameters.
//
// Parameters:
//   - cfg: The updated configuration with calibration results.
//   - out: The writer for output.
func printCalibrationOutput(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "%sCalibrated parameters%s: workers=%s%d%s, repetitions=%s%s%s\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorYellow(), cfg.Workers, ui.ColorReset(),
		ui.ColorYellow(), format.FormatNumberString(strconv.FormatUint(cfg.Repetitions, 10)), ui.ColorReset())
}
