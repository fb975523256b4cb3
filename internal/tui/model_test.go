package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/machapraveen/gilbench/internal/config"
	"github.com/machapraveen/gilbench/internal/factorial"
	"github.com/machapraveen/gilbench/internal/orchestration"
)

func testModelConfig() config.AppConfig {
	return config.AppConfig{N: 10, Repetitions: 1000, Workers: 2}
}

func newTestModel(t *testing.T) Model {
	t.Helper()
	execs := factorial.NewDefaultFactory().GetAll()
	m := NewModel(context.Background(), execs, testModelConfig(), "test")
	t.Cleanup(m.cancel)
	return m
}

func keyMsg(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestLayoutGridSplit(t *testing.T) {
	sizes := layoutGrid{width: 100, height: 30}.split()

	if sizes.bodyHeight != 28 {
		t.Errorf("bodyHeight = %d, want 28", sizes.bodyHeight)
	}
	if sizes.logsWidth != 60 {
		t.Errorf("logsWidth = %d, want 60", sizes.logsWidth)
	}
	if sizes.rightWidth != 40 {
		t.Errorf("rightWidth = %d, want 40", sizes.rightWidth)
	}
	if sizes.metricsHeight != MetricsPanelHeight {
		t.Errorf("metricsHeight = %d, want %d", sizes.metricsHeight, MetricsPanelHeight)
	}
	if sizes.chartHeight != 28-MetricsPanelHeight {
		t.Errorf("chartHeight = %d, want %d", sizes.chartHeight, 28-MetricsPanelHeight)
	}
}

func TestLayoutGridSplitSmallTerminal(t *testing.T) {
	sizes := layoutGrid{width: 40, height: 5}.split()

	if sizes.bodyHeight != minBodyHeight {
		t.Errorf("bodyHeight = %d, want %d", sizes.bodyHeight, minBodyHeight)
	}
	// The metrics panel shrinks to half the body rather than starving the chart.
	if sizes.metricsHeight != minBodyHeight/2 {
		t.Errorf("metricsHeight = %d, want %d", sizes.metricsHeight, minBodyHeight/2)
	}
	if sizes.chartHeight+sizes.metricsHeight != sizes.bodyHeight {
		t.Errorf("chart %d + metrics %d should fill the body %d",
			sizes.chartHeight, sizes.metricsHeight, sizes.bodyHeight)
	}
}

func TestRunSummary(t *testing.T) {
	got := runSummary(config.AppConfig{N: 20, Repetitions: 5_000_000, Workers: 16})
	want := "n=20  reps=5,000,000  workers=16"
	if got != want {
		t.Errorf("runSummary = %q, want %q", got, want)
	}
}

func TestModel_View_Initializing(t *testing.T) {
	m := newTestModel(t)
	if got := m.View(); got != "Initializing..." {
		t.Errorf("expected Initializing placeholder at zero size, got %q", got)
	}
}

func TestModel_WindowSize(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	if m.width != 100 || m.height != 30 {
		t.Errorf("expected 100x30, got %dx%d", m.width, m.height)
	}

	view := m.View()
	if !strings.Contains(view, "GilBench Monitor") {
		t.Error("expected header title in the view")
	}
	if !strings.Contains(view, "Activity") {
		t.Error("expected logs panel title in the view")
	}
	if !strings.Contains(view, "Metrics") {
		t.Error("expected metrics panel title in the view")
	}
	if !strings.Contains(view, "Progress Chart") {
		t.Error("expected chart panel title in the view")
	}
}

func TestModel_ProgressMsg(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(ProgressMsg{WorkerIndex: 0, Value: 0.5, AverageProgress: 0.5, ETA: 10 * time.Second})
	m = updated.(Model)

	if m.chart.averageProgress != 0.5 {
		t.Errorf("expected chart average 0.5, got %f", m.chart.averageProgress)
	}
}

func TestModel_ProgressMsg_Paused(t *testing.T) {
	m := newTestModel(t)
	m.paused = true
	updated, _ := m.Update(ProgressMsg{WorkerIndex: 0, Value: 0.5, AverageProgress: 0.5})
	m = updated.(Model)

	if m.chart.averageProgress != 0 {
		t.Error("expected paused model to drop progress updates")
	}
}

func TestModel_PauseToggle(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(keyMsg('p'))
	m = updated.(Model)
	if !m.paused {
		t.Error("expected p to pause")
	}

	updated, _ = m.Update(keyMsg('p'))
	m = updated.(Model)
	if m.paused {
		t.Error("expected second p to resume")
	}
}

func TestModel_OverlayToggle_RequiresResults(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(keyMsg('o'))
	m = updated.(Model)
	if m.showOverlay {
		t.Error("expected overlay to stay closed without results")
	}

	m.comparison = []orchestration.BenchmarkResult{{Key: "nogil", Name: "GIL Released"}}
	updated, _ = m.Update(keyMsg('o'))
	m = updated.(Model)
	if !m.showOverlay {
		t.Error("expected overlay to open once results exist")
	}
}

func TestModel_Tick_DoneStopsSampling(t *testing.T) {
	m := newTestModel(t)
	m.done = true

	_, cmd := m.Update(TickMsg(time.Now()))
	if cmd != nil {
		t.Error("expected no further ticks once done")
	}
}

func TestModel_Tick_PausedKeepsTicking(t *testing.T) {
	m := newTestModel(t)
	m.paused = true

	// Paused runs keep the clock alive but skip the stat samplers.
	_, cmd := m.Update(TickMsg(time.Now()))
	if cmd == nil {
		t.Error("expected tick to reschedule while paused")
	}
}

func TestModel_BenchmarkComplete(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(ComparisonResultsMsg{Results: []orchestration.BenchmarkResult{
		{Key: "nogil", Name: "GIL Released", WallTime: 100 * time.Millisecond},
	}})
	m = updated.(Model)

	updated, _ = m.Update(BenchmarkCompleteMsg{ExitCode: 0, Generation: 0})
	m = updated.(Model)

	if !m.done {
		t.Error("expected model to be done after completion")
	}
	if !m.showOverlay {
		t.Error("expected results overlay to open on completion")
	}
}

func TestModel_BenchmarkComplete_StaleGeneration(t *testing.T) {
	m := newTestModel(t)

	updated, _ := m.Update(BenchmarkCompleteMsg{ExitCode: 1, Generation: 99})
	m = updated.(Model)

	if m.done {
		t.Error("expected stale completion to be ignored")
	}
	if m.exitCode != 0 {
		t.Error("expected stale exit code to be ignored")
	}
}

func TestModel_ContextCancelled_StaleGeneration(t *testing.T) {
	m := newTestModel(t)

	updated, cmd := m.Update(ContextCancelledMsg{Generation: 99})
	m = updated.(Model)

	if m.done {
		t.Error("expected stale cancellation to be ignored")
	}
	if cmd != nil {
		t.Error("expected no quit command for stale cancellation")
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(keyMsg('q'))
	if cmd == nil {
		t.Fatal("expected quit to return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit command to emit tea.QuitMsg")
	}
}

func TestModel_Reset(t *testing.T) {
	m := newTestModel(t)
	m.done = true
	m.showOverlay = true
	m.comparison = []orchestration.BenchmarkResult{{Key: "nogil"}}

	updated, cmd := m.Update(keyMsg('r'))
	m2 := updated.(Model)
	defer m2.cancel()

	if m2.generation != m.generation+1 {
		t.Errorf("expected generation bump, got %d", m2.generation)
	}
	if m2.done {
		t.Error("expected reset to clear done")
	}
	if m2.showOverlay {
		t.Error("expected reset to close the overlay")
	}
	if m2.comparison != nil {
		t.Error("expected reset to drop old results")
	}
	if cmd == nil {
		t.Error("expected reset to restart the benchmark commands")
	}
}

func TestModel_OverlayContent(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	m.comparison = []orchestration.BenchmarkResult{
		{Key: "nogil", Name: "GIL Released (token dropped for the loop)", Value: 3628800, Workers: 2, WallTime: 100 * time.Millisecond},
		{Key: "gil", Name: "GIL Held (token spans the loop)", Value: 3628800, Workers: 2, WallTime: 400 * time.Millisecond},
	}
	m.final = &FinalResultMsg{Result: m.comparison[0]}
	m.showOverlay = true

	view := m.View()
	if !strings.Contains(view, "Benchmark Results") {
		t.Error("expected overlay title")
	}
	if !strings.Contains(view, "×4.00") {
		t.Error("expected slowdown factor in the comparison rows")
	}
	if !strings.Contains(view, "Agreed value:") {
		t.Error("expected the agreed value line")
	}
	if !strings.Contains(view, "3,628,800") {
		t.Error("expected the winning value with separators")
	}
	if !strings.Contains(view, "Success") {
		t.Error("expected the global status verdict")
	}
}

func TestModel_OverlayContent_AllFailed(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	m.comparison = []orchestration.BenchmarkResult{
		{Key: "gil", Name: "GIL Held", Err: context.DeadlineExceeded},
	}
	m.showOverlay = true

	view := m.View()
	if !strings.Contains(view, "Failure") {
		t.Error("expected failure verdict when no regime succeeded")
	}
}

func TestModel_ScrollKeys_Routed(t *testing.T) {
	m := newTestModel(t)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	// Scroll keys must not panic on an empty scrollback.
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyUp}); cmd != nil {
		t.Error("expected no command from a scroll key")
	}
}
