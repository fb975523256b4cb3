// Package affinity pins benchmark workers to OS threads, and on Linux
// to individual CPUs, so regime wall times are not skewed by the
// scheduler migrating workers between cores mid-run.
package affinity

import "runtime"

// Pin binds the calling goroutine to its current OS thread and, where
// the platform supports it, sets that thread's CPU affinity based on
// workerIndex. Workers are spread round-robin over the CPUs the
// process is allowed to use.
//
// Pin must be called from the goroutine that runs the worker loop. The
// returned undo function restores the previous affinity and releases
// the thread; call it from the same goroutine when the worker finishes.
func Pin(workerIndex int) (func(), error) {
	runtime.LockOSThread()
	undoAffinity, err := setThreadAffinity(workerIndex)
	if err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	return func() {
		undoAffinity()
		runtime.UnlockOSThread()
	}, nil
}
