// Package progress carries progress information from benchmark workers
// to whatever wants to watch them: the CLI spinner, the TUI dashboard,
// or a debug log. It sits below both the executors and the reporters so
// that neither has to import the other.
//
// Two delivery styles are supported. The channel style moves
// ProgressUpdate values through a buffered channel; the observer style
// fans a single callback out to a frozen set of ProgressObserver
// implementations. Executors only ever see a ProgressCallback.
package progress

// ProgressUpdate is a single progress sample emitted by a worker while
// it runs its repetition loop. Value is the fraction of repetitions
// completed so far, in [0.0, 1.0].
type ProgressUpdate struct {
	WorkerIndex int
	Value       float64
}

// ProgressCallback receives the completion fraction of a single worker.
// Implementations must be safe to call from the worker goroutine.
type ProgressCallback func(progress float64)
