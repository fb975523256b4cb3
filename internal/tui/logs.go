package tui

import (
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/machapraveen/gilbench/internal/config"
	"github.com/machapraveen/gilbench/internal/format"
	"github.com/machapraveen/gilbench/internal/orchestration"
)

// maxLogEntries caps the scrollback so a long run cannot grow the
// dashboard's memory without bound.
const maxLogEntries = 500

// progressLogStep is the minimum progress delta between two logged
// samples of the same worker. Workers report far more often than a
// human can read.
const progressLogStep = 0.10

type logKind int

const (
	logInfo logKind = iota
	logRegime
	logProgress
	logSuccess
	logError
)

type logEntry struct {
	ts   string
	text string
	kind logKind
}

// LogsModel is the scrolling activity pane on the left of the dashboard.
// It records the run configuration, regime transitions, throttled worker
// progress, and the final comparison.
type LogsModel struct {
	entries []logEntry
	vp      viewport.Model
	follow  bool

	regimes       []string
	currentRegime int
	lastLogged    map[int]float64

	cfg    config.AppConfig
	hasCfg bool

	width  int
	height int
}

// NewLogsModel creates the pane for the given regime names, in run order.
func NewLogsModel(regimeNames []string) LogsModel {
	l := LogsModel{
		vp:         viewport.New(0, 0),
		follow:     true,
		regimes:    regimeNames,
		lastLogged: make(map[int]float64),
	}
	return l
}

// SetSize updates the pane dimensions.
func (l *LogsModel) SetSize(w, h int) {
	l.width = w
	l.height = h
}

// add appends an entry, evicting the oldest when the cap is reached.
func (l *LogsModel) add(kind logKind, text string) {
	l.entries = append(l.entries, logEntry{
		ts:   time.Now().Format("15:04:05"),
		text: text,
		kind: kind,
	})
	if len(l.entries) > maxLogEntries {
		l.entries = l.entries[len(l.entries)-maxLogEntries:]
	}
}

// AddExecutionConfig logs the benchmark parameters and announces the
// first regime. The config is kept so Reset can replay it.
func (l *LogsModel) AddExecutionConfig(cfg config.AppConfig) {
	l.cfg = cfg
	l.hasCfg = true

	l.add(logInfo, fmt.Sprintf("benchmark: %d! × %s repetitions, %d workers",
		cfg.N, format.FormatNumberString(strconv.FormatUint(cfg.Repetitions, 10)), cfg.Workers))
	if cfg.Warmup || cfg.GCOff || cfg.PinWorkers {
		l.add(logInfo, fmt.Sprintf("options: warmup=%t gcoff=%t pin=%t",
			cfg.Warmup, cfg.GCOff, cfg.PinWorkers))
	}
	if len(l.regimes) > 0 {
		l.add(logRegime, fmt.Sprintf("▶ running: %s", l.regimes[0]))
	}
}

// AddProgressEntry logs a worker progress sample, throttled to
// progressLogStep increments per worker.
func (l *LogsModel) AddProgressEntry(msg ProgressMsg) {
	last, seen := l.lastLogged[msg.WorkerIndex]
	if seen && msg.Value < 1.0 && msg.Value-last < progressLogStep {
		return
	}
	l.lastLogged[msg.WorkerIndex] = msg.Value

	l.add(logProgress, fmt.Sprintf("worker %02d %5.1f%%  avg %5.1f%%  eta %s",
		msg.WorkerIndex, msg.Value*100, msg.AverageProgress*100, format.FormatETA(msg.ETA)))
}

// NextRegime marks the current regime finished and announces the next
// one. Called when a regime's progress channel closes.
func (l *LogsModel) NextRegime() {
	if l.currentRegime < len(l.regimes) {
		l.add(logSuccess, fmt.Sprintf("✓ finished: %s", l.regimes[l.currentRegime]))
	}
	l.currentRegime++
	if l.currentRegime < len(l.regimes) {
		l.add(logRegime, fmt.Sprintf("▶ running: %s", l.regimes[l.currentRegime]))
	}
	// A new regime reuses worker indices, so start throttling afresh.
	l.lastLogged = make(map[int]float64)
}

// AddResults logs the regime comparison, fastest first.
func (l *LogsModel) AddResults(results []orchestration.BenchmarkResult) {
	l.add(logInfo, "comparison:")
	var fastest time.Duration
	for _, r := range results {
		if r.Err == nil {
			fastest = r.WallTime
			break
		}
	}
	for i, r := range results {
		if r.Err != nil {
			l.add(logError, fmt.Sprintf("  %d. %-14s failed: %v", i+1, r.Name, r.Err))
			continue
		}
		line := fmt.Sprintf("  %d. %-14s %10s", i+1, r.Name, format.FormatExecutionDuration(r.WallTime))
		if fastest > 0 && r.WallTime > 0 {
			line += fmt.Sprintf("  ×%.2f", float64(r.WallTime)/float64(fastest))
		}
		l.add(logInfo, line)
	}
}

// AddFinalResult logs the agreed value of the winning regime.
func (l *LogsModel) AddFinalResult(msg FinalResultMsg) {
	value := strconv.FormatUint(msg.Result.Value, 10)
	l.add(logSuccess, fmt.Sprintf("value: %s (%d bits)",
		format.FormatNumberString(value), bits.Len64(msg.Result.Value)))
}

// AddError logs a benchmark failure.
func (l *LogsModel) AddError(msg ErrorMsg) {
	l.add(logError, fmt.Sprintf("error after %s: %v",
		format.FormatExecutionDuration(msg.Duration), msg.Err))
}

// Reset clears the scrollback and replays the run configuration.
func (l *LogsModel) Reset() {
	l.entries = nil
	l.lastLogged = make(map[int]float64)
	l.currentRegime = 0
	l.follow = true
	if l.hasCfg {
		l.AddExecutionConfig(l.cfg)
	}
}

// Update routes scroll keys to the viewport. Scrolling away from the
// bottom suspends follow mode; scrolling back re-enables it.
func (l *LogsModel) Update(msg tea.KeyMsg) {
	l.vp, _ = l.vp.Update(msg)
	l.follow = l.vp.AtBottom()
}

// renderToHeight renders the pane at exactly the given total height.
// The body column is joined horizontally with the right column, so the
// logs pane must match its height or the layout tears.
func (l *LogsModel) renderToHeight(h int) string {
	contentH := h - 3 // top/bottom border and the title line
	if contentH < 1 {
		contentH = 1
	}
	innerW := l.width - 2
	if innerW < 1 {
		innerW = 1
	}

	l.vp.Width = innerW
	l.vp.Height = contentH
	l.vp.SetContent(l.renderEntries(innerW))
	if l.follow {
		l.vp.GotoBottom()
	}

	body := panelTitleStyle.Render("Activity") + "\n" + l.vp.View()
	return panelStyle.Width(innerW).Height(h - 2).Render(body)
}

// renderEntries styles and truncates the scrollback for the given width.
func (l *LogsModel) renderEntries(w int) string {
	if len(l.entries) == 0 {
		return logTimeStyle.Render("waiting for workers...")
	}

	var b strings.Builder
	for i, e := range l.entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		maxText := w - 9 // "15:04:05 " prefix
		if maxText < 4 {
			maxText = 4
		}
		b.WriteString(logTimeStyle.Render(e.ts))
		b.WriteByte(' ')
		b.WriteString(styleFor(e.kind).Render(truncateString(e.text, maxText)))
	}
	return b.String()
}

func styleFor(kind logKind) lipgloss.Style {
	switch kind {
	case logRegime:
		return logRegimeStyle
	case logProgress:
		return logProgressStyle
	case logSuccess:
		return logSuccessStyle
	case logError:
		return logErrorStyle
	default:
		return logTimeStyle
	}
}

// truncateString truncates a string to maxLen runes, adding "..." when
// something was cut.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
