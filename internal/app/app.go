// Package app wires configuration, calibration, the regime registry and
// the chosen frontend (plain CLI, TUI dashboard, REPL or HTTP server)
// into a runnable application.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/machapraveen/gilbench/internal/calibration"
	"github.com/machapraveen/gilbench/internal/cli"
	"github.com/machapraveen/gilbench/internal/config"
	apperrors "github.com/machapraveen/gilbench/internal/errors"
	"github.com/machapraveen/gilbench/internal/factorial"
	"github.com/machapraveen/gilbench/internal/logging"
	"github.com/machapraveen/gilbench/internal/orchestration"
	"github.com/machapraveen/gilbench/internal/server"
	"github.com/machapraveen/gilbench/internal/tui"
	"github.com/machapraveen/gilbench/internal/ui"
)

// Application represents the gilbench application instance.
type Application struct {
	Config    config.AppConfig
	Factory   *factorial.ExecutorFactory
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom ExecutorFactory for the application.
func WithFactory(f *factorial.ExecutorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = factorial.NewDefaultFactory()
	}

	availableModes := app.Factory.List()

	programName := "gilbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableModes)
	if err != nil {
		return nil, err
	}

	// Auto-detected (zero) parameters resolve from the calibration cache
	// first, then from hardware heuristics.
	if cfgWithProfile, loaded := calibration.LoadCachedCalibration(cfg); loaded {
		cfg = cfgWithProfile
	} else {
		cfg = config.ApplyAdaptiveDefaults(cfg)
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	if a.Config.Verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(false)

	if a.Config.Calibrate {
		return a.runCalibration(ctx, out)
	}

	a.Config = a.runAutoCalibrationIfEnabled(ctx, out)

	if a.Config.Serve {
		return a.runServe(ctx)
	}

	if a.Config.TUI {
		return a.runTUI(ctx)
	}

	if a.Config.REPL {
		return a.runREPL()
	}

	return a.runBench(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runCalibration runs the full calibration mode.
func (a *Application) runCalibration(ctx context.Context, out io.Writer) int {
	ctx, cancel := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancel()

	if _, err := calibration.RunCalibration(ctx, a.Config, out); err != nil {
		fmt.Fprintf(a.ErrWriter, "Calibration failed: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runAutoCalibrationIfEnabled runs the quick startup calibration if enabled.
// Calibration failures fall back to the already-resolved defaults; they
// must not keep the benchmark from running.
func (a *Application) runAutoCalibrationIfEnabled(ctx context.Context, out io.Writer) config.AppConfig {
	if !a.Config.AutoCalibrate {
		return a.Config
	}
	updated, err := calibration.AutoCalibrate(ctx, a.Config, out)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Auto-calibration failed, using defaults: %v\n", err)
		return a.Config
	}
	return updated
}

// runServe runs the HTTP benchmark server until the context is canceled
// or a shutdown signal arrives.
func (a *Application) runServe(ctx context.Context) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	logger := logging.NewLogger(a.ErrWriter, "server")
	srv := server.NewServer(a.Config.Addr, a.Factory, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error("server failed", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runTUI launches the interactive TUI dashboard.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	executorsToRun := orchestration.GetExecutorsToRun(a.Config.Mode, a.Factory)
	return tui.Run(ctx, executorsToRun, a.Config, Version)
}

// runREPL starts the interactive prompt on stdin/stdout.
func (a *Application) runREPL() int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		Mode:        a.Config.Mode,
		N:           a.Config.N,
		Repetitions: a.Config.Repetitions,
		Workers:     a.Config.Workers,
		Timeout:     a.Config.Timeout,
	})
	repl.Start()
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
