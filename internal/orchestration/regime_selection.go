package orchestration

import (
	"github.com/machapraveen/gilbench/internal/config"
	"github.com/machapraveen/gilbench/internal/factorial"
)

// GetExecutorsToRun determines which regimes should be executed based
// on the mode selection. Returns executors in registry order for
// consistent, reproducible comparisons.
//
// Parameters:
//   - mode: A regime key, or config.ModeBoth for the full comparison.
//   - factory: The executor factory to retrieve implementations from.
//
// Returns:
//   - []factorial.Executor: A slice of executors to run.
func GetExecutorsToRun(mode string, factory *factorial.ExecutorFactory) []factorial.Executor {
	if mode == config.ModeBoth {
		keys := factory.List() // List() returns sorted keys
		executors := make([]factorial.Executor, 0, len(keys))
		for _, k := range keys {
			if executor, err := factory.Get(k); err == nil {
				executors = append(executors, executor)
			}
		}
		return executors
	}
	if executor, err := factory.Get(mode); err == nil {
		return []factorial.Executor{executor}
	}
	return nil
}
