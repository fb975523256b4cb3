package format

import (
	"fmt"
	"time"
)

const (
	// rateSmoothingFactor is the weight given to the most recent progress
	// sample when updating the exponential moving average of the progress
	// rate. A low value keeps the ETA stable when worker progress arrives
	// in bursts.
	rateSmoothingFactor = 0.3

	// maxETA caps the displayed ETA. Rates measured in the first
	// milliseconds of a run are unreliable and can produce absurd
	// projections.
	maxETA = 24 * time.Hour
)

// ProgressWithETA extends ProgressState with an estimate of the remaining
// time, derived from a smoothed progress rate. It is used by the spinner
// display and the TUI to show "ETA: 2m30s" style hints next to the
// aggregate progress bar.
//
// ProgressWithETA is not safe for concurrent use; the display goroutine
// owns it exclusively.
type ProgressWithETA struct {
	*ProgressState
	numWorkers   int
	progressRate float64 // smoothed progress per second
	lastProgress float64
	lastUpdate   time.Time
	startTime    time.Time
}

// NewProgressWithETA creates a ProgressWithETA tracking the given number
// of workers. The creation time is recorded as the start of the run.
func NewProgressWithETA(numWorkers int) *ProgressWithETA {
	now := time.Now()
	return &ProgressWithETA{
		ProgressState: NewProgressState(numWorkers),
		numWorkers:    numWorkers,
		startTime:     now,
		lastUpdate:    now,
	}
}

// UpdateWithETA records a worker's progress and refreshes the rate
// estimate. The rate only advances on forward progress, so repeated or
// stale updates do not distort the ETA.
//
// Parameters:
//   - workerIndex: The index of the reporting worker.
//   - progress: The worker's completion fraction in [0.0, 1.0].
//
// Returns:
//   - float64: The new aggregate progress (average across workers).
//   - time.Duration: The current ETA, or 0 if no rate is known yet.
func (p *ProgressWithETA) UpdateWithETA(workerIndex int, progress float64) (float64, time.Duration) {
	p.Update(workerIndex, progress)
	avg := p.CalculateAverage()

	now := time.Now()
	elapsed := now.Sub(p.lastUpdate).Seconds()
	if elapsed > 0 && avg > p.lastProgress {
		instantRate := (avg - p.lastProgress) / elapsed
		if p.progressRate == 0 {
			p.progressRate = instantRate
		} else {
			p.progressRate = rateSmoothingFactor*instantRate + (1-rateSmoothingFactor)*p.progressRate
		}
		p.lastProgress = avg
		p.lastUpdate = now
	}

	return avg, p.GetETA()
}

// GetETA projects the remaining time from the smoothed progress rate.
// It returns 0 when no rate has been established yet, and never more
// than maxETA.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.progressRate <= 0 {
		return 0
	}
	remaining := 1.0 - p.CalculateAverage()
	if remaining <= 0 {
		return 0
	}
	eta := time.Duration(remaining / p.progressRate * float64(time.Second))
	if eta > maxETA {
		return maxETA
	}
	return eta
}

// FormatETA renders an ETA as a compact human-readable string. Zero
// and negative values mean no estimate is available yet.
//
// Examples: "calculating...", "< 1s", "45s", "2m30s", "1h15m".
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60

	switch {
	case h > 0:
		if m > 0 {
			return fmt.Sprintf("%dh%dm", h, m)
		}
		return fmt.Sprintf("%dh", h)
	case m > 0:
		if s > 0 {
			return fmt.Sprintf("%dm%ds", m, s)
		}
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// FormatProgressBarWithETA combines a progress bar, a percentage, and an
// ETA hint into a single status line for terminal display.
//
// Parameters:
//   - progress: The aggregate completion fraction.
//   - eta: The projected remaining time.
//   - width: The width of the bar portion in characters.
//
// Returns:
//   - string: A line such as "[██████░░░░] 60.0% ETA: 12s".
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	pct := progress * 100
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), pct, FormatETA(eta))
}
