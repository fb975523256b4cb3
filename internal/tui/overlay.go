package tui

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/machapraveen/gilbench/internal/format"
	"github.com/machapraveen/gilbench/internal/orchestration"
)

// renderResultsOverlay renders the final comparison as a centered box on
// top of the dashboard. It appears when the run completes and can be
// toggled with the overlay key.
func (m Model) renderResultsOverlay() string {
	content := m.buildOverlayContent()

	overlayWidth := 72
	if overlayWidth > m.width-4 {
		overlayWidth = m.width - 4
	}
	if overlayWidth < 20 {
		overlayWidth = 20
	}

	box := overlayStyle.Width(overlayWidth).Render(content)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// buildOverlayContent assembles the comparison table, the speedup
// verdict and the agreed value.
func (m Model) buildOverlayContent() string {
	var b strings.Builder

	b.WriteString(overlayTitleStyle.Render("Benchmark Results"))
	b.WriteString("\n\n")

	b.WriteString(metricLabelStyle.Render(fmt.Sprintf("%d! × %s repetitions, %d workers per regime",
		m.config.N,
		format.FormatNumberString(strconv.FormatUint(m.config.Repetitions, 10)),
		m.config.Workers)))
	b.WriteString("\n\n")

	fastest, slowest := boundingSuccesses(m.comparison)

	for i, r := range m.comparison {
		rank := fmt.Sprintf("%d.", i+1)
		if r.Err != nil {
			b.WriteString(fmt.Sprintf(" %s %-42s %s\n", rank,
				truncateString(r.Name, 42),
				logErrorStyle.Render(fmt.Sprintf("failed: %v", r.Err))))
			continue
		}
		line := fmt.Sprintf(" %s %-42s %10s", rank,
			truncateString(r.Name, 42),
			format.FormatExecutionDuration(r.WallTime))
		if fastest != nil && fastest.WallTime > 0 {
			line += metricLabelStyle.Render(fmt.Sprintf("  ×%.2f", float64(r.WallTime)/float64(fastest.WallTime)))
		}
		if fastest != nil && r.Key == fastest.Key {
			line = logSuccessStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if fastest != nil && slowest != nil && fastest.Key != slowest.Key && fastest.WallTime > 0 {
		ratio := float64(slowest.WallTime) / float64(fastest.WallTime)
		b.WriteString("\n")
		b.WriteString(logSuccessStyle.Render(
			fmt.Sprintf("%s finished %.2f× faster than %s.", fastest.Name, ratio, slowest.Name)))
		b.WriteString("\n")
	}

	if m.final != nil {
		value := strconv.FormatUint(m.final.Result.Value, 10)
		b.WriteString("\n")
		b.WriteString(metricLabelStyle.Render("Agreed value: "))
		b.WriteString(metricValueStyle.Render(format.FormatNumberString(value)))
		b.WriteString(metricLabelStyle.Render(fmt.Sprintf(" (%d bits)", bits.Len64(m.final.Result.Value))))
		b.WriteString("\n")
		b.WriteString(logSuccessStyle.Render("Global Status: Success. All valid results are consistent."))
	} else if fastest == nil {
		b.WriteString("\n")
		b.WriteString(logErrorStyle.Render("Global Status: Failure. No regime could complete the benchmark."))
	}

	b.WriteString("\n\n")
	b.WriteString(footerKeyStyle.Render("[o]"))
	b.WriteString(footerDescStyle.Render(" close  "))
	b.WriteString(footerKeyStyle.Render("[r]"))
	b.WriteString(footerDescStyle.Render(" rerun  "))
	b.WriteString(footerKeyStyle.Render("[q]"))
	b.WriteString(footerDescStyle.Render(" quit"))

	return b.String()
}

// boundingSuccesses returns the fastest and slowest successful results.
// The comparison arrives sorted fastest first, so these are the first
// and last entries without an error.
func boundingSuccesses(results []orchestration.BenchmarkResult) (fastest, slowest *orchestration.BenchmarkResult) {
	for i := range results {
		if results[i].Err != nil {
			continue
		}
		if fastest == nil {
			fastest = &results[i]
		}
		slowest = &results[i]
	}
	return fastest, slowest
}
