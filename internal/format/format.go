// Package format provides display formatting helpers shared by the CLI,
// the TUI bridge, and the progress reporters: progress bars, ETA strings,
// duration formatting, thousand separators, and byte sizes.
package format

import (
	"fmt"
	"strings"
)

// ProgressState tracks the completion fraction reported by each benchmark
// worker. The aggregate progress shown to the user is the average across
// all workers, so a regime only reads 100% once every worker has finished
// its repetition loop.
type ProgressState struct {
	progresses []float64
	numWorkers int
}

// NewProgressState creates a ProgressState sized for the given number of
// workers. All workers start at zero progress.
//
// Parameters:
//   - numWorkers: The number of workers whose progress will be tracked.
//
// Returns:
//   - *ProgressState: A new state with one slot per worker.
func NewProgressState(numWorkers int) *ProgressState {
	return &ProgressState{
		progresses: make([]float64, numWorkers),
		numWorkers: numWorkers,
	}
}

// Update records the progress of a single worker. Out-of-range worker
// indices are ignored so that a misbehaving reporter cannot corrupt the
// state or panic the display goroutine.
//
// Parameters:
//   - workerIndex: The index of the worker reporting progress.
//   - progress: The completion fraction, nominally in [0.0, 1.0].
func (ps *ProgressState) Update(workerIndex int, progress float64) {
	if workerIndex < 0 || workerIndex >= len(ps.progresses) {
		return
	}
	ps.progresses[workerIndex] = progress
}

// CalculateAverage returns the mean progress across all workers. It
// returns 0 when the state tracks no workers.
func (ps *ProgressState) CalculateAverage() float64 {
	if ps.numWorkers == 0 {
		return 0
	}
	var total float64
	for _, p := range ps.progresses {
		total += p
	}
	return total / float64(ps.numWorkers)
}

// ProgressBar renders a textual progress bar of the given length using
// block characters. The progress value is clamped to [0.0, 1.0] before
// rendering.
//
// Parameters:
//   - progress: The completion fraction to render.
//   - length: The total width of the bar in characters.
//
// Returns:
//   - string: A bar such as "█████░░░░░" for 50% at length 10.
func ProgressBar(progress float64, length int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatNumberString inserts thousand separators into a decimal number
// string, preserving a leading minus sign. The input is assumed to be a
// plain integer representation without exponent or fraction.
//
// Parameters:
//   - s: The number string, e.g. "2432902008176640000".
//
// Returns:
//   - string: The grouped form, e.g. "2,432,902,008,176,640,000".
func FormatNumberString(s string) string {
	if s == "" {
		return ""
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	n := len(s)
	if n <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}

	var b strings.Builder
	b.Grow(n + (n-1)/3 + 1)
	if neg {
		b.WriteByte('-')
	}

	first := n % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(s[:first])
	for i := first; i < n; i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatBytes renders a byte count in human-readable binary units with
// one decimal place (e.g. "50.0 MB"). Values below 1 KB are shown as
// plain bytes.
func FormatBytes(b uint64) string {
	switch {
	case b >= 1<<30:
		return fmt.Sprintf("%.1f GB", float64(b)/(1<<30))
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
