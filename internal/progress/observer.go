package progress

import (
	"sync"

	"github.com/machapraveen/gilbench/internal/logging"
)

// ProgressObserver is notified of worker progress updates.
type ProgressObserver interface {
	Update(workerIndex int, progress float64)
}

// ProgressSubject maintains a registry of observers and hands out
// frozen callbacks to workers. Registration is cheap and may happen
// concurrently with Freeze.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates an empty observer registry.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Register adds an observer to the registry. It does not affect
// callbacks that have already been frozen.
func (s *ProgressSubject) Register(obs ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, obs)
}

// Freeze snapshots the current observer set and returns a callback
// bound to the given worker index. The snapshot is immutable: observers
// registered after Freeze are not notified by the returned callback.
// Workers therefore never take a lock on the hot path.
func (s *ProgressSubject) Freeze(workerIndex int) ProgressCallback {
	s.mu.RLock()
	snapshot := make([]ProgressObserver, len(s.observers))
	copy(snapshot, s.observers)
	s.mu.RUnlock()

	return func(value float64) {
		for _, obs := range snapshot {
			obs.Update(workerIndex, value)
		}
	}
}

// ChannelObserver forwards updates into a channel, typically the
// buffered progress channel owned by the orchestration layer. Sends are
// non-blocking: when the channel is full the sample is dropped rather
// than stalling the worker.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver creates an observer forwarding into ch.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// Update implements ProgressObserver.
func (o *ChannelObserver) Update(workerIndex int, value float64) {
	select {
	case o.ch <- ProgressUpdate{WorkerIndex: workerIndex, Value: value}:
	default:
	}
}

// LoggingObserver writes coarse progress lines to a structured logger.
// Updates are rate-limited to 10% increments per worker so a long
// repetition loop produces at most eleven lines.
type LoggingObserver struct {
	logger logging.Logger
	mu     sync.Mutex
	last   map[int]float64
}

// NewLoggingObserver creates an observer logging through logger.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger, last: make(map[int]float64)}
}

// Update implements ProgressObserver.
func (o *LoggingObserver) Update(workerIndex int, value float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if value < 1.0 && value-o.last[workerIndex] < 0.1 {
		return
	}
	o.last[workerIndex] = value
	o.logger.Debug("worker progress",
		logging.Int("worker", workerIndex),
		logging.Float64("progress", value),
	)
}

// NoOpObserver discards all updates. Useful as a default when no
// reporting is wired up.
type NoOpObserver struct{}

// NewNoOpObserver creates an observer that does nothing.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update implements ProgressObserver.
func (NoOpObserver) Update(int, float64) {}
