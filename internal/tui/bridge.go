package tui

import (
	"io"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	apperrors "github.com/machapraveen/gilbench/internal/errors"
	"github.com/machapraveen/gilbench/internal/format"
	"github.com/machapraveen/gilbench/internal/orchestration"
	"github.com/machapraveen/gilbench/internal/progress"
)

// msgSender is the slice of tea.Program the bridge needs.
type msgSender interface {
	Send(tea.Msg)
}

// programRef gives the orchestration goroutines a stable target for
// their messages. bubbletea copies the model on every Update and the
// program only exists once the model is built, so the bridge objects
// are created against this indirection and the program is patched in
// when RunTUI starts it.
type programRef struct {
	mu     sync.RWMutex
	target msgSender
}

// SetProgram wires the running program into the bridge.
func (r *programRef) SetProgram(p *tea.Program) {
	if p == nil {
		return
	}
	r.setTarget(p)
}

func (r *programRef) setTarget(s msgSender) {
	r.mu.Lock()
	r.target = s
	r.mu.Unlock()
}

// Send forwards msg to the program. Messages sent before a program is
// attached are dropped: there is no screen to update yet.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	s := r.target
	r.mu.RUnlock()
	if s != nil {
		s.Send(msg)
	}
}

// TUIProgressReporter adapts the worker progress channel to bubbletea
// messages, so the orchestrator can run unchanged under the dashboard.
type TUIProgressReporter struct {
	ref *programRef
}

var _ orchestration.ProgressReporter = (*TUIProgressReporter)(nil)

// DisplayProgress drains the progress channel, folding each raw worker
// update into the aggregate before forwarding it. A ProgressDoneMsg
// marks the channel close.
func (t *TUIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numWorkers int, _ io.Writer) {
	defer wg.Done()

	agg := orchestration.NewProgressAggregator(numWorkers)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	for update := range progressChan {
		ap := agg.Update(update)
		t.ref.Send(ProgressMsg{
			WorkerIndex:     ap.WorkerIndex,
			Value:           ap.Value,
			AverageProgress: ap.AverageProgress,
			ETA:             ap.ETA,
		})
	}
	t.ref.Send(ProgressDoneMsg{})
}

// TUIResultPresenter satisfies the orchestrator's presentation and
// error-handling ports by translating each call into a message. The
// exit code logic stays shared with the CLI; only the output surface
// changes.
type TUIResultPresenter struct {
	ref *programRef
}

var (
	_ orchestration.ResultPresenter   = (*TUIResultPresenter)(nil)
	_ orchestration.DurationFormatter = (*TUIResultPresenter)(nil)
	_ orchestration.ErrorHandler      = (*TUIResultPresenter)(nil)
)

// PresentComparisonTable sends the regime comparison to the dashboard.
func (t *TUIResultPresenter) PresentComparisonTable(results []orchestration.BenchmarkResult, _ io.Writer) {
	t.ref.Send(ComparisonResultsMsg{Results: results})
}

// PresentResult sends the winning regime's result to the dashboard.
func (t *TUIResultPresenter) PresentResult(result orchestration.BenchmarkResult, opts orchestration.PresentationOptions, _ io.Writer) {
	t.ref.Send(FinalResultMsg{Result: result, Opts: opts})
}

// FormatDuration delegates to the shared formatter.
func (t *TUIResultPresenter) FormatDuration(d time.Duration) string {
	return format.FormatExecutionDuration(d)
}

// HandleError reports the failure to the dashboard and classifies it
// into the process exit code. The classifier's own output is discarded;
// the ErrorMsg carries everything the error panel shows.
func (t *TUIResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	t.ref.Send(ErrorMsg{Err: err, Duration: duration})
	return apperrors.HandleCalculationError(err, duration, io.Discard, apperrors.NopColorProvider{})
}
