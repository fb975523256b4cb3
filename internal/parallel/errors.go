// Package parallel provides small synchronization helpers shared by
// the benchmark fan-out.
package parallel

import "sync"

// ErrorCollector captures the first non-nil error reported by a group
// of concurrent workers. The zero value is ready to use.
//
// The benchmark keeps all workers running even after one fails, since
// the regime comparison needs complete wall-clock data, so this
// collects rather than cancels.
type ErrorCollector struct {
	mu  sync.Mutex
	err error
}

// SetError records err if it is the first non-nil error seen. Nil
// errors and later errors are ignored.
func (ec *ErrorCollector) SetError(err error) {
	if err == nil {
		return
	}
	ec.mu.Lock()
	defer ec.mu.Unlock()
	if ec.err == nil {
		ec.err = err
	}
}

// Err returns the captured error, or nil if none was reported.
func (ec *ErrorCollector) Err() error {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.err
}
