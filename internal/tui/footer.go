package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

// FooterModel is the single-line status bar at the bottom: a run state
// badge on the left and the key hints on the right.
type FooterModel struct {
	width  int
	paused bool
	done   bool
	failed bool
	keymap KeyMap
}

// NewFooterModel creates the footer with the default key bindings.
func NewFooterModel() FooterModel {
	return FooterModel{keymap: DefaultKeyMap()}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) {
	f.width = w
}

// SetPaused toggles the paused badge.
func (f *FooterModel) SetPaused(paused bool) {
	f.paused = paused
}

// SetDone toggles the done badge.
func (f *FooterModel) SetDone(done bool) {
	f.done = done
}

// SetError marks the run as failed. The badge stays on ERROR until a reset.
func (f *FooterModel) SetError(failed bool) {
	f.failed = failed
}

// View renders the footer line.
func (f FooterModel) View() string {
	badge := f.renderBadge()

	hints := []string{
		renderHint(f.keymap.Quit),
		renderHint(f.keymap.Pause),
		renderHint(f.keymap.Reset),
		renderHint(f.keymap.Overlay),
		renderHint(f.keymap.Up),
		renderHint(f.keymap.Down),
	}
	right := strings.Join(hints, footerDescStyle.Render("  "))

	gap := f.width - lipgloss.Width(badge) - lipgloss.Width(right) - 2
	if gap < 1 {
		// Drop the scroll hints first when the terminal is narrow.
		right = strings.Join(hints[:4], footerDescStyle.Render("  "))
		gap = f.width - lipgloss.Width(badge) - lipgloss.Width(right) - 2
		if gap < 1 {
			gap = 1
		}
	}

	return " " + badge + pad(gap) + right + " "
}

// renderBadge renders the run state indicator.
func (f FooterModel) renderBadge() string {
	switch {
	case f.failed:
		return statusErrorStyle.Render("● ERROR")
	case f.done:
		return statusDoneStyle.Render("● DONE")
	case f.paused:
		return statusPausedStyle.Render("● PAUSED")
	default:
		return statusRunningStyle.Render("● RUNNING")
	}
}

// renderHint renders one "key description" pair from a binding's help.
func renderHint(b key.Binding) string {
	h := b.Help()
	return footerKeyStyle.Render(h.Key) + footerDescStyle.Render(" "+h.Desc)
}
