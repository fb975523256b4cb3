// Package logging defines the Logger interface the rest of the benchmark
// logs through, plus two backends: a zerolog adapter for structured
// output and a thin wrapper over the standard library's log.Logger.
package logging
