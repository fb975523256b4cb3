// Package orchestration coordinates benchmark execution: it fans one
// regime out across identical workers, runs regimes back to back, and
// aggregates results for comparison. It decouples business logic from
// presentation via ProgressReporter and ResultPresenter interfaces.
package orchestration
