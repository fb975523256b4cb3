// Package ui holds the shared color themes for every frontend: the ANSI
// palette the CLI report and calibration tables print with, and the
// lipgloss palette the dashboard renders with. Keeping both here lets
// the presentation packages style output without depending on each
// other, and gives NO_COLOR and GILBENCH_THEME one place to act.
package ui
