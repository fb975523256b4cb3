package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/machapraveen/gilbench/internal/format"
	"github.com/machapraveen/gilbench/internal/metrics"
)

// MetricsModel is the top-right panel: Go runtime memory statistics,
// the smoothed progress speed, the loop throughput derived from it, and
// the busy-core count that fingerprints the running regime.
type MetricsModel struct {
	alloc        uint64
	heapInuse    uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int

	speed        float64 // aggregate progress per second
	lastProgress float64
	lastUpdate   time.Time

	tracker         *metrics.ThroughputTracker
	totalIterations uint64

	busyCores int
	numCores  int

	width  int
	height int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		lastUpdate: time.Now(),
		tracker:    metrics.NewThroughputTracker(),
	}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetTotalIterations tells the panel how many loop iterations one full
// run covers (repetitions × workers), so progress deltas can be turned
// into an iteration rate.
func (m *MetricsModel) SetTotalIterations(total uint64) {
	m.totalIterations = total
}

// UpdateMemStats updates the runtime memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapInuse = msg.HeapInuse
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysCores updates the busy-core fingerprint.
func (m *MetricsModel) UpdateSysCores(busy, total int) {
	m.busyCores = busy
	m.numCores = total
}

// UpdateProgress refreshes the speed estimate from a new aggregate
// progress value. Updates arriving faster than 50ms apart are ignored;
// their deltas are too small for a stable rate.
func (m *MetricsModel) UpdateProgress(progress float64) {
	now := time.Now()
	dt := now.Sub(m.lastUpdate)
	if dt.Seconds() > 0.05 {
		dp := progress - m.lastProgress
		if dp > 0 {
			instantSpeed := dp / dt.Seconds()
			if m.speed > 0 {
				m.speed = 0.7*m.speed + 0.3*instantSpeed
			} else {
				m.speed = instantSpeed
			}
			if m.totalIterations > 0 {
				m.tracker.Record(uint64(dp*float64(m.totalIterations)), dt)
			}
		}
		m.lastProgress = progress
		m.lastUpdate = now
	}
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render("Metrics"))

	colWidth := (m.width - 6) / 2

	leftCol := []string{
		formatMetricCol("Memory:", format.FormatBytes(m.alloc), colWidth),
		formatMetricCol("GC Runs:", fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6), colWidth),
		formatMetricCol("Speed:", fmt.Sprintf("%.1f%%/s", m.speed*100), colWidth),
	}
	rightCol := []string{
		formatMetricCol("Heap:", format.FormatBytes(m.heapInuse), colWidth),
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.numGoroutine), colWidth),
		formatMetricCol("Throughput:", formatRate(m.tracker.Rate()), colWidth),
	}

	for i := range leftCol {
		rows.WriteString("\n")
		rows.WriteString(leftCol[i])
		rows.WriteString(rightCol[i])
	}

	if m.numCores > 0 {
		rows.WriteString("\n")
		rows.WriteString(formatMetricCol("Busy cores:",
			fmt.Sprintf("%d/%d", m.busyCores, m.numCores), colWidth))
	}

	return panelStyle.
		Width(m.width - 2).
		Height(m.height - 2).
		Render(rows.String())
}

// formatMetricCol renders one label/value cell padded to colWidth.
// Width is measured through lipgloss so the escape codes in the styled
// text do not count.
func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-12s", label)),
		metricValueStyle.Render(value))
	if visible := lipgloss.Width(cell); visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}

// formatRate renders an iteration rate in compact SI-ish units.
func formatRate(rate float64) string {
	switch {
	case rate <= 0:
		return "waiting"
	case rate >= 1e9:
		return fmt.Sprintf("%.2f Giter/s", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.1f Miter/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.1f Kiter/s", rate/1e3)
	default:
		return fmt.Sprintf("%.0f iter/s", rate)
	}
}
