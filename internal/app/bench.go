package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/machapraveen/gilbench/internal/cli"
	apperrors "github.com/machapraveen/gilbench/internal/errors"
	"github.com/machapraveen/gilbench/internal/factorial"
	"github.com/machapraveen/gilbench/internal/orchestration"
	"github.com/machapraveen/gilbench/internal/ui"
)

// runBench orchestrates one CLI benchmark run: regime selection,
// execution, comparison and reporting.
func (a *Application) runBench(ctx context.Context, out io.Writer) int {
	// Setup lifecycle (timeout + signals)
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	executorsToRun := orchestration.GetExecutorsToRun(a.Config.Mode, a.Factory)

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(executorsToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	// Execute the regime comparison
	params := orchestration.RunParams{
		Args:       factorial.Args{N: a.Config.N, Repetitions: a.Config.Repetitions},
		Workers:    a.Config.Workers,
		Warmup:     a.Config.Warmup,
		GCOff:      a.Config.GCOff,
		PinWorkers: a.Config.PinWorkers,
	}
	results := orchestration.ExecuteComparison(ctx, executorsToRun, params, progressReporter, progressOut)

	// Build output config for the CLI options
	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
	}

	return a.analyzeResultsWithOutput(results, outputCfg, out)
}

// analyzeResultsWithOutput compares the regime results, reports them and
// handles quiet-mode and file output.
func (a *Application) analyzeResultsWithOutput(results []orchestration.BenchmarkResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)
	presOpts := orchestration.PresentationOptions{
		N:           a.Config.N,
		Repetitions: a.Config.Repetitions,
		Workers:     a.Config.Workers,
		Verbose:     a.Config.Verbose,
		Details:     a.Config.Details,
	}

	// Quiet mode collapses to the fastest result's bare value plus the
	// optional report file.
	if outputCfg.Quiet && bestResult != nil {
		if err := cli.DisplayResultWithConfig(out, *bestResult, presOpts, outputCfg); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	// Handle file output for non-quiet mode
	if bestResult != nil && exitCode == apperrors.ExitSuccess {
		if a.Config.Details && bestResult.GCBracketed {
			cli.DisplayMemoryStats(bestResult.GC, out)
		}

		// Save to file if requested
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		if outputCfg.OutputFile != "" {
			fmt.Fprintf(out, "\n%s✓ Report saved to: %s%s%s\n",
				ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
		}
	}

	return exitCode
}

// findBestResult returns the fastest successful result, or nil when
// every regime failed.
func findBestResult(results []orchestration.BenchmarkResult) *orchestration.BenchmarkResult {
	var bestResult *orchestration.BenchmarkResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].WallTime < bestResult.WallTime {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.BenchmarkResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Value, a.Config.N, res.WallTime, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
