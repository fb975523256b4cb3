package factorial

import (
	"fmt"
	"sort"
)

// ExecutorFactory is a registry of execution regimes keyed by their
// stable names. The default factory carries the two gate disciplines;
// Register exists so tests can add instrumented regimes.
type ExecutorFactory struct {
	executors map[string]Executor
}

// NewExecutorFactory creates an empty factory.
func NewExecutorFactory() *ExecutorFactory {
	return &ExecutorFactory{executors: make(map[string]Executor)}
}

// NewDefaultFactory creates a factory pre-registered with the gil and
// nogil regimes, both bound to the process-wide shared gate.
func NewDefaultFactory() *ExecutorFactory {
	f := NewExecutorFactory()
	f.Register(NewExecutor(&GateHeld{}))
	f.Register(NewExecutor(&GateReleased{}))
	return f
}

// Register adds an executor under its key, replacing any previous
// registration with the same key.
func (f *ExecutorFactory) Register(exec Executor) {
	f.executors[exec.Key()] = exec
}

// Get returns the executor registered under key.
//
// Returns:
//   - Executor: The registered executor.
//   - error: An error naming the unknown key and listing the valid ones.
func (f *ExecutorFactory) Get(key string) (Executor, error) {
	exec, ok := f.executors[key]
	if !ok {
		return nil, fmt.Errorf("unknown execution regime %q (valid: %v)", key, f.List())
	}
	return exec, nil
}

// List returns the registered keys in sorted order.
func (f *ExecutorFactory) List() []string {
	keys := make([]string, 0, len(f.executors))
	for key := range f.executors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// GetAll returns all registered executors in List() order, so the
// comparison benchmark always runs regimes deterministically.
func (f *ExecutorFactory) GetAll() []Executor {
	keys := f.List()
	execs := make([]Executor, 0, len(keys))
	for _, key := range keys {
		execs = append(execs, f.executors[key])
	}
	return execs
}
