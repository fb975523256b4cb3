package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/machapraveen/gilbench/internal/format"
)

// sparklineWidth is the horizontal overhead around one history strip:
// panel border, label and the trailing percentage column. The ring
// buffers hold one sample per remaining cell.
const sparklineWidth = 17

// sparklineMinHeight is the smallest panel height that still shows the
// CPU/MEM strips; below it only the progress bar and ETA fit.
const sparklineMinHeight = 10

// progressHistoryCap bounds the progress samples kept for the braille
// chart. At one sample per progress message this covers a full run.
const progressHistoryCap = 120

// ChartModel is the bottom-right panel: the aggregate progress bar with
// its ETA, a braille chart of progress over time, and CPU/MEM history
// strips. The per-core story lives in the metrics panel; this one shows
// the shape of the run.
type ChartModel struct {
	width  int
	height int

	averageProgress float64
	eta             time.Duration
	done            bool
	total           time.Duration

	progressHistory *RingBuffer
	cpuHistory      *RingBuffer
	memHistory      *RingBuffer
}

// NewChartModel creates the chart panel with empty histories.
func NewChartModel() ChartModel {
	return ChartModel{
		progressHistory: NewRingBuffer(progressHistoryCap),
		cpuHistory:      NewRingBuffer(1),
		memHistory:      NewRingBuffer(1),
	}
}

// SetSize updates dimensions and resizes the history strips to the new
// sample budget.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
	c.cpuHistory.Resize(w - sparklineWidth)
	c.memHistory.Resize(w - sparklineWidth)
}

// AddDataPoint records one aggregated progress sample. The raw worker
// value is shown in the logs pane; the chart tracks the average.
func (c *ChartModel) AddDataPoint(value, average float64, eta time.Duration) {
	c.averageProgress = average
	c.eta = eta
	c.progressHistory.Push(average * 100)
}

// UpdateSysStats records one system sample for the history strips.
func (c *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	c.cpuHistory.Push(cpuPercent)
	c.memHistory.Push(memPercent)
}

// SetDone freezes the panel with the total run duration.
func (c *ChartModel) SetDone(total time.Duration) {
	c.done = true
	c.total = total
}

// Reset clears all progress and history state.
func (c *ChartModel) Reset() {
	c.averageProgress = 0
	c.eta = 0
	c.done = false
	c.total = 0
	c.progressHistory.Reset()
	c.cpuHistory.Reset()
	c.memHistory.Reset()
}

// View renders the chart panel.
func (c ChartModel) View() string {
	lines := []string{panelTitleStyle.Render("Progress Chart")}

	if bar := c.renderProgressBar(); bar != "" {
		lines = append(lines, bar)
	}

	if c.done {
		lines = append(lines, statusDoneStyle.Render(
			fmt.Sprintf("Done in %s", format.FormatExecutionDuration(c.total))))
	} else {
		lines = append(lines, metricLabelStyle.Render("ETA: ")+
			metricValueStyle.Render(format.FormatETA(c.eta)))
	}

	if c.height >= sparklineMinHeight {
		// Whatever rows remain above the two strips go to the braille
		// history of the aggregate progress.
		leftover := (c.height - 2) - len(lines) - 2
		if leftover >= 2 && c.progressHistory.Len() > 1 {
			rows := leftover
			if rows > 4 {
				rows = 4
			}
			brailleWidth := c.width - 8
			for _, row := range RenderBrailleChart(c.progressHistory.Slice(), brailleWidth, rows) {
				lines = append(lines, chartBarStyle.Render(row))
			}
		}
		lines = append(lines, c.renderStrip("CPU", c.cpuHistory, cpuSparklineStyle))
		lines = append(lines, c.renderStrip("MEM", c.memHistory, memSparklineStyle))
	}

	return panelStyle.
		Width(c.width - 2).
		Height(c.height - 2).
		Render(strings.Join(lines, "\n"))
}

// renderProgressBar renders the aggregate bar with its percentage, or
// an empty string when the panel is too narrow for a meaningful bar.
func (c ChartModel) renderProgressBar() string {
	barWidth := c.width - 12
	if barWidth < 5 {
		return ""
	}

	filled := int(c.averageProgress * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	return chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled)) +
		fmt.Sprintf(" %.1f%%", c.averageProgress*100)
}

// renderStrip renders one labelled history strip with its latest value.
func (c ChartModel) renderStrip(label string, rb *RingBuffer, style lipgloss.Style) string {
	return style.Render(label) + " " +
		style.Render(RenderSparkline(rb.Slice())) +
		metricLabelStyle.Render(fmt.Sprintf(" %5.1f%%", rb.Last()))
}
