package progress

// DefaultProgressSteps is the number of progress samples a worker emits
// over a full repetition loop. It also bounds how often the loop checks
// for cancellation: once per chunk.
const DefaultProgressSteps = 100

// ChunkSize returns the number of repetitions a worker runs between
// progress reports and cancellation checks. The loop body is a handful
// of nanoseconds, so checking the context on every iteration would
// dominate the measurement; chunking keeps the overhead in the noise.
//
// Parameters:
//   - repetitions: The total number of repetitions in the loop.
//
// Returns:
//   - uint64: The chunk length, always at least 1.
func ChunkSize(repetitions uint64) uint64 {
	chunk := repetitions / DefaultProgressSteps
	if chunk == 0 {
		return 1
	}
	return chunk
}

// ReportLoopProgress invokes the callback with the completion fraction
// of a linear loop. It tolerates a nil callback and a zero total.
//
// Parameters:
//   - report: The callback to invoke, may be nil.
//   - done: The number of repetitions completed so far.
//   - total: The total number of repetitions.
func ReportLoopProgress(report ProgressCallback, done, total uint64) {
	if report == nil || total == 0 {
		return
	}
	report(float64(done) / float64(total))
}
