package tui

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/machapraveen/gilbench/internal/config"
	apperrors "github.com/machapraveen/gilbench/internal/errors"
	"github.com/machapraveen/gilbench/internal/factorial"
	"github.com/machapraveen/gilbench/internal/format"
	"github.com/machapraveen/gilbench/internal/orchestration"
	"github.com/machapraveen/gilbench/internal/sysmon"
)

// runState is the lifecycle of a single benchmark attempt. A reset
// replaces it wholesale, so goroutines spawned for the previous attempt
// hold a cancelled context and a stale generation and cannot touch the
// new run.
type runState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	done       bool
	exitCode   int
}

func newRunState(parent context.Context, gen uint64) runState {
	ctx, cancel := context.WithCancel(parent)
	return runState{
		ctx:        ctx,
		cancel:     cancel,
		generation: gen,
		exitCode:   apperrors.ExitSuccess,
	}
}

// layoutGrid tracks the terminal size and slices it into panel rectangles.
type layoutGrid struct {
	width  int
	height int
}

// paneSizes is the resolved layout: logs fill the left column, the
// right column stacks metrics above the chart.
type paneSizes struct {
	bodyHeight    int
	logsWidth     int
	rightWidth    int
	metricsHeight int
	chartHeight   int
}

func (g layoutGrid) split() paneSizes {
	body := g.height - headerHeight - footerHeight
	if body < minBodyHeight {
		body = minBodyHeight
	}

	// On short terminals the metrics panel yields to the chart instead
	// of swallowing the whole column.
	metricsH := MetricsPanelHeight
	if metricsH > body/2 {
		metricsH = body / 2
	}

	logsW := g.width * LogsPanelWidthPercent / 100
	return paneSizes{
		bodyHeight:    body,
		logsWidth:     logsW,
		rightWidth:    g.width - logsW,
		metricsHeight: metricsH,
		chartHeight:   body - metricsH,
	}
}

// Model is the root bubbletea model for the dashboard.
type Model struct {
	header  HeaderModel
	logs    LogsModel
	metrics MetricsModel
	chart   ChartModel
	footer  FooterModel

	keymap KeyMap

	runState
	layoutGrid

	parentCtx   context.Context
	config      config.AppConfig
	executors   []factorial.Executor
	ref         *programRef
	paused      bool
	showOverlay bool

	comparison []orchestration.BenchmarkResult
	final      *FinalResultMsg
}

// NewModel assembles the dashboard around one benchmark configuration.
func NewModel(parentCtx context.Context, executors []factorial.Executor, cfg config.AppConfig, version string) Model {
	regimeNames := make([]string, len(executors))
	for i, e := range executors {
		regimeNames[i] = e.Name()
	}

	logs := NewLogsModel(regimeNames)
	logs.AddExecutionConfig(cfg)

	header := NewHeaderModel(version)
	header.SetSummary(runSummary(cfg))

	metrics := NewMetricsModel()
	metrics.SetTotalIterations(cfg.Repetitions * uint64(cfg.Workers))

	return Model{
		header:    header,
		logs:      logs,
		metrics:   metrics,
		chart:     NewChartModel(),
		footer:    NewFooterModel(),
		keymap:    DefaultKeyMap(),
		runState:  newRunState(parentCtx, 0),
		parentCtx: parentCtx,
		config:    cfg,
		executors: executors,
		ref:       &programRef{},
	}
}

// runSummary renders the run parameters for the header's right side.
func runSummary(cfg config.AppConfig) string {
	return fmt.Sprintf("n=%d  reps=%s  workers=%d",
		cfg.N,
		format.FormatNumberString(strconv.FormatUint(cfg.Repetitions, 10)),
		cfg.Workers)
}

// Init kicks off the clock, the benchmark itself, and the context watcher.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startBenchmarkCmd(m.ref, m.ctx, m.executors, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// markDone freezes the clock and flips the chrome into its finished look.
func (m *Model) markDone() {
	m.done = true
	m.header.SetDone()
	m.footer.SetDone(true)
}

// Update routes messages to the owning panel.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		// Paused means frozen on screen; the benchmark itself keeps
		// running and the dropped updates are not replayed.
		if !m.paused {
			m.logs.AddProgressEntry(msg)
			m.chart.AddDataPoint(msg.Value, msg.AverageProgress, msg.ETA)
			m.metrics.UpdateProgress(msg.AverageProgress)
		}
		return m, nil

	case ProgressDoneMsg:
		m.logs.NextRegime()
		return m, nil

	case ComparisonResultsMsg:
		m.comparison = msg.Results
		m.logs.AddResults(msg.Results)
		return m, nil

	case FinalResultMsg:
		m.final = &msg
		m.logs.AddFinalResult(msg)
		return m, nil

	case ErrorMsg:
		m.logs.AddError(msg)
		m.footer.SetError(true)
		m.markDone()
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		m.metrics.UpdateSysCores(msg.BusyCores, msg.NumCores)
		return m, nil

	case BenchmarkCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // belongs to a reset-away run
		}
		m.exitCode = msg.ExitCode
		m.chart.SetDone(time.Since(m.header.startTime))
		m.markDone()
		m.showOverlay = len(m.comparison) > 0
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil // belongs to a reset-away run
		}
		m.markDone()
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Overlay):
		if len(m.comparison) > 0 {
			m.showOverlay = !m.showOverlay
		}
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		return m.reset()

	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Down),
		key.Matches(msg, m.keymap.PageUp), key.Matches(msg, m.keymap.PageDown):
		m.logs.Update(msg)
		return m, nil
	}

	return m, nil
}

// reset abandons the current run and starts a fresh one with the same
// configuration.
func (m Model) reset() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.runState = newRunState(m.parentCtx, m.generation+1)

	sizes := m.split()
	m.header.Reset()
	m.logs.Reset()
	m.chart.Reset()
	m.metrics = NewMetricsModel()
	m.metrics.SetSize(sizes.rightWidth, sizes.metricsHeight)
	m.metrics.SetTotalIterations(m.config.Repetitions * uint64(m.config.Workers))
	m.footer.SetDone(false)
	m.footer.SetError(false)
	m.footer.SetPaused(false)
	m.paused = false
	m.showOverlay = false
	m.comparison = nil
	m.final = nil

	return m, tea.Batch(
		tickCmd(),
		startBenchmarkCmd(m.ref, m.ctx, m.executors, m.config, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// View renders the dashboard, or the results overlay when it is open.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	if m.showOverlay && len(m.comparison) > 0 {
		return m.renderResultsOverlay()
	}

	// The logs pane stretches to whatever height the right column
	// actually rendered, so the panel borders line up.
	right := lipgloss.JoinVertical(lipgloss.Left, m.metrics.View(), m.chart.View())
	logs := m.logs.renderToHeight(lipgloss.Height(right))
	body := lipgloss.JoinHorizontal(lipgloss.Top, logs, right)

	return lipgloss.JoinVertical(lipgloss.Left, m.header.View(), body, m.footer.View())
}

// Layout constants for the dashboard grid.
const (
	headerHeight          = 1
	footerHeight          = 1
	minBodyHeight         = 4
	LogsPanelWidthPercent = 60
	MetricsPanelHeight    = 7 // title + three metric pairs + borders; grows by one with the core row
)

func (m *Model) layoutPanels() {
	sizes := m.split()
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.logs.SetSize(sizes.logsWidth, sizes.bodyHeight)
	m.metrics.SetSize(sizes.rightWidth, sizes.metricsHeight)
	m.chart.SetSize(sizes.rightWidth, sizes.chartHeight)
}

// Run drives the dashboard to completion and returns the process exit
// code the benchmark decided on.
func Run(ctx context.Context, executors []factorial.Executor, cfg config.AppConfig, version string) int {
	// Styles derive from the ui theme, which app.Run selected before
	// calling us; build them now rather than at package init.
	initTUIStyles()

	model := NewModel(ctx, executors, cfg, version)
	defer model.cancel()

	program := tea.NewProgram(model, tea.WithAltScreen())
	// Attach before Run so the bridge goroutines have somewhere to Send.
	model.ref.SetProgram(program)

	out, err := program.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	final, ok := out.(Model)
	if !ok {
		return apperrors.ExitSuccess
	}
	final.cancel()
	return final.exitCode
}

// startBenchmarkCmd launches the orchestration in the background. Its
// output reaches the model through the bridge reporters; the returned
// message only carries the verdict.
func startBenchmarkCmd(ref *programRef, ctx context.Context, executors []factorial.Executor, cfg config.AppConfig, gen uint64) tea.Cmd {
	return func() tea.Msg {
		progressReporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		params := orchestration.RunParams{
			Args:       factorial.Args{N: cfg.N, Repetitions: cfg.Repetitions},
			Workers:    cfg.Workers,
			Warmup:     cfg.Warmup,
			GCOff:      cfg.GCOff,
			PinWorkers: cfg.PinWorkers,
		}
		results := orchestration.ExecuteComparison(ctx, executors, params, progressReporter, io.Discard)
		presOpts := orchestration.PresentationOptions{
			N:           cfg.N,
			Repetitions: cfg.Repetitions,
			Workers:     cfg.Workers,
			Verbose:     cfg.Verbose,
			Details:     cfg.Details,
		}
		exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, presenter, io.Discard)

		return BenchmarkCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

const tickInterval = 500 * time.Millisecond

// tickCmd schedules the next dashboard heartbeat.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd snapshots the Go runtime's memory accounting.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapInuse:    ms.HeapInuse,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads machine-wide CPU and memory pressure.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
			BusyCores:  s.BusyCores(),
			NumCores:   len(s.PerCore),
		}
	}
}

// watchContextCmd turns cancellation of ctx into a message, tagged with
// the generation so a reset does not quit the new run.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
