package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/machapraveen/gilbench/internal/format"
)

// HeaderModel renders the top bar: the product title with its version,
// the elapsed clock, and the run parameters right-aligned when the
// terminal is wide enough.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	version   string
	summary   string
	width     int
}

// NewHeaderModel creates the header with the clock running.
func NewHeaderModel(version string) HeaderModel {
	return HeaderModel{startTime: time.Now(), version: version}
}

// SetSummary sets the right-aligned run parameter summary.
func (h *HeaderModel) SetSummary(summary string) { h.summary = summary }

// SetDone freezes the elapsed clock.
func (h *HeaderModel) SetDone() { h.endTime = time.Now() }

// Reset restarts the elapsed clock.
func (h *HeaderModel) Reset() {
	h.startTime = time.Now()
	h.endTime = time.Time{}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) { h.width = w }

// elapsed returns the running duration, frozen once SetDone was called.
func (h HeaderModel) elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header row.
func (h HeaderModel) View() string {
	title := "GilBench Monitor"
	if h.version != "" && h.version != "dev" {
		title += " " + h.version
	}

	left := titleStyle.Render(title) +
		versionStyle.Render(" | ") +
		elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(h.elapsed())))
	leftWidth := lipgloss.Width(left)

	inner := h.width - 2
	if inner < 0 {
		inner = 0
	}

	// The summary yields when it would collide with the left side; the
	// logs pane carries the same details.
	right := ""
	if h.summary != "" {
		if rendered := versionStyle.Render(h.summary); leftWidth+lipgloss.Width(rendered)+2 <= inner {
			right = rendered
		}
	}

	gap := inner - leftWidth - lipgloss.Width(right)
	return headerStyle.Width(h.width).Render(left + pad(gap) + right)
}

// pad returns n spaces, or an empty string when n is not positive.
func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
