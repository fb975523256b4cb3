package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/machapraveen/gilbench/internal/ui"
)

// Dashboard styles, rebuilt from the active ui theme by initTUIStyles.
var (
	panelStyle         lipgloss.Style
	panelTitleStyle    lipgloss.Style
	headerStyle        lipgloss.Style
	titleStyle         lipgloss.Style
	versionStyle       lipgloss.Style
	elapsedStyle       lipgloss.Style
	logTimeStyle       lipgloss.Style
	logRegimeStyle     lipgloss.Style
	logProgressStyle   lipgloss.Style
	logSuccessStyle    lipgloss.Style
	logErrorStyle      lipgloss.Style
	metricLabelStyle   lipgloss.Style
	metricValueStyle   lipgloss.Style
	chartBarStyle      lipgloss.Style
	chartEmptyStyle    lipgloss.Style
	footerKeyStyle     lipgloss.Style
	footerDescStyle    lipgloss.Style
	statusRunningStyle lipgloss.Style
	statusPausedStyle  lipgloss.Style
	statusDoneStyle    lipgloss.Style
	statusErrorStyle   lipgloss.Style
	cpuSparklineStyle  lipgloss.Style
	memSparklineStyle  lipgloss.Style
	overlayStyle       lipgloss.Style
	overlayTitleStyle  lipgloss.Style
)

func init() {
	initTUIStyles()
}

func fg(c lipgloss.TerminalColor) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

func boldFg(c lipgloss.TerminalColor) lipgloss.Style {
	return fg(c).Bold(true)
}

// initTUIStyles rebuilds every style from the current ui theme. Run()
// calls it again after app.Run has selected the theme, so the package
// init values only cover code that renders before that.
func initTUIStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Background(t.Bg).
		Foreground(t.Text)

	headerStyle = boldFg(t.Accent).Background(t.Bg).Padding(0, 1)
	panelTitleStyle = boldFg(t.Info)
	titleStyle = boldFg(t.Accent)
	versionStyle = fg(t.Dim)
	elapsedStyle = fg(t.Accent)

	logTimeStyle = fg(t.Dim)
	logRegimeStyle = fg(t.Info)
	logProgressStyle = fg(t.Accent)
	logSuccessStyle = fg(t.Success)
	logErrorStyle = fg(t.Error)

	metricLabelStyle = fg(t.Dim)
	metricValueStyle = boldFg(t.Accent)

	chartBarStyle = fg(t.Accent)
	chartEmptyStyle = fg(t.Dim)
	cpuSparklineStyle = fg(t.Accent)
	memSparklineStyle = fg(t.Warning)

	footerKeyStyle = boldFg(t.Accent)
	footerDescStyle = fg(t.Dim)
	statusRunningStyle = boldFg(t.Success)
	statusPausedStyle = boldFg(t.Warning)
	statusDoneStyle = boldFg(t.Accent)
	statusErrorStyle = boldFg(t.Error)

	overlayStyle = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.Accent).
		Background(t.Bg).
		Padding(1, 2)

	overlayTitleStyle = boldFg(t.Accent).Underline(true)
}
