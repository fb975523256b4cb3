// Package config handles command-line parsing, environment overrides,
// optional TOML configuration files and validation for the benchmark.
//
// Value resolution chain (highest priority first):
//  1. CLI flags (-n, -workers, -repetitions, ...)
//  2. Environment variables (GILBENCH_N, GILBENCH_WORKERS, ...)
//  3. TOML configuration file (-config path)
//  4. Cached calibration profile (~/.gilbench_calibration.json)
//  5. Adaptive hardware estimation (defaults.go)
//  6. Static defaults (this file)
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/machapraveen/gilbench/internal/errors"
)

// ─────────────────────────────────────────────────────────────────────────────
// Defaults
// ─────────────────────────────────────────────────────────────────────────────

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "GILBENCH_"

// ModeBoth runs every registered execution regime and compares them.
// The individual regime names come from the executor registry.
const ModeBoth = "both"

const (
	// DefaultN is the factorial argument. 20 is the largest n whose
	// factorial fits in a uint64.
	DefaultN = 20

	// DefaultRepetitions is the per-worker loop count. Large enough that
	// scheduling noise disappears behind real compute time.
	DefaultRepetitions = 5_000_000

	// DefaultWorkers matches the classic interpreter-lock demonstration,
	// which contends sixteen threads on one lock.
	DefaultWorkers = 16

	// DefaultTimeout bounds a full benchmark run.
	DefaultTimeout = 5 * time.Minute

	// DefaultAddr is the listen address for server mode.
	DefaultAddr = ":8080"
)

// ─────────────────────────────────────────────────────────────────────────────
// AppConfig
// ─────────────────────────────────────────────────────────────────────────────

// AppConfig holds the complete runtime configuration.
type AppConfig struct {
	// Benchmark parameters
	N           uint          // factorial argument (0-20)
	Repetitions uint64        // loop count per worker (0 = adaptive)
	Workers     int           // concurrent workers (0 = adaptive)
	Mode        string        // execution regime: a registry key or "both"
	Timeout     time.Duration // maximum execution time
	Warmup      bool          // run an unmeasured warmup pass first
	GCOff       bool          // suspend garbage collection during measured spans
	PinWorkers  bool          // pin workers to OS threads (and CPUs on Linux)

	// Output control
	Verbose    bool   // verbose logging
	Details    bool   // per-run performance details
	Quiet      bool   // machine-friendly single-line output
	OutputFile string // write the benchmark report to this file

	// Calibration
	Calibrate          bool   // run full calibration and exit
	AutoCalibrate      bool   // quick calibration at startup
	CalibrationProfile string // calibration profile path override

	// Alternative frontends
	TUI        bool   // interactive dashboard
	REPL       bool   // interactive prompt
	Serve      bool   // HTTP server mode
	Addr       string // listen address for server mode
	Completion string // generate a shell completion script and exit

	// Configuration file
	ConfigFile string // TOML configuration file path
}

// ─────────────────────────────────────────────────────────────────────────────
// Parsing
// ─────────────────────────────────────────────────────────────────────────────

// ParseConfig parses command-line arguments into an AppConfig, applying
// configuration file values and environment overrides for flags that were
// not set explicitly.
//
// Parameters:
//   - programName: The name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errWriter: The writer for usage and parse error output.
//   - availableModes: Valid execution regime keys from the registry.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when -h/--help was used, a ConfigError when
//     validation fails, or the raw parse error.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableModes []string) (AppConfig, error) {
	cfg := AppConfig{}

	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)
	registerFlags(fs, &cfg, availableModes)
	fs.Usage = func() { printUsage(errWriter, programName, fs, availableModes) }

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// The config file path itself honors the flag > env priority.
	if !isFlagSet(fs, "config") {
		cfg.ConfigFile = getEnvString("CONFIG", cfg.ConfigFile)
	}
	if cfg.ConfigFile != "" {
		fileCfg, err := loadConfigFile(cfg.ConfigFile)
		if err != nil {
			return AppConfig{}, apperrors.NewConfigError("config file %s: %v", cfg.ConfigFile, err)
		}
		applyFileConfig(&cfg, fs, fileCfg)
	}

	applyEnvOverrides(&cfg, fs)

	if err := validate(cfg, availableModes); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// registerFlags declares all CLI flags on the flag set, binding aliased
// short and long forms to the same field.
func registerFlags(fs *flag.FlagSet, cfg *AppConfig, availableModes []string) {
	modeHelp := fmt.Sprintf("Execution regime (%s)", modeList(availableModes))

	fs.UintVar(&cfg.N, "n", DefaultN, "Factorial argument (0-20)")
	fs.Uint64Var(&cfg.Repetitions, "repetitions", DefaultRepetitions, "Loop count per worker (0 = auto-detect)")
	fs.Uint64Var(&cfg.Repetitions, "r", DefaultRepetitions, "Alias for -repetitions")
	fs.IntVar(&cfg.Workers, "workers", DefaultWorkers, "Number of concurrent workers (0 = auto-detect)")
	fs.IntVar(&cfg.Workers, "w", DefaultWorkers, "Alias for -workers")
	fs.StringVar(&cfg.Mode, "mode", ModeBoth, modeHelp)
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum execution time")
	fs.BoolVar(&cfg.Warmup, "warmup", true, "Run an unmeasured warmup pass before measuring")
	fs.BoolVar(&cfg.GCOff, "gcoff", false, "Suspend garbage collection during measured spans")
	fs.BoolVar(&cfg.PinWorkers, "pin", false, "Pin workers to OS threads")

	fs.BoolVar(&cfg.Verbose, "v", false, "Verbose logging")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "Verbose logging")
	fs.BoolVar(&cfg.Details, "d", false, "Show performance details")
	fs.BoolVar(&cfg.Details, "details", false, "Show performance details")
	fs.BoolVar(&cfg.Quiet, "q", false, "Quiet mode for scripts")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Quiet mode for scripts")
	fs.StringVar(&cfg.OutputFile, "o", "", "Write the benchmark report to a file")
	fs.StringVar(&cfg.OutputFile, "output", "", "Write the benchmark report to a file")

	fs.BoolVar(&cfg.Calibrate, "calibrate", false, "Run calibration mode and exit")
	fs.BoolVar(&cfg.AutoCalibrate, "auto-calibrate", false, "Quick calibration at startup")
	fs.StringVar(&cfg.CalibrationProfile, "calibration-profile", "", "Calibration profile file")

	fs.BoolVar(&cfg.TUI, "tui", false, "Interactive dashboard")
	fs.BoolVar(&cfg.REPL, "repl", false, "Interactive prompt")
	fs.BoolVar(&cfg.Serve, "serve", false, "Run as an HTTP server")
	fs.StringVar(&cfg.Addr, "addr", DefaultAddr, "Listen address for server mode")
	fs.StringVar(&cfg.Completion, "completion", "", "Generate completion script (bash, zsh, fish, powershell)")

	fs.StringVar(&cfg.ConfigFile, "config", "", "TOML configuration file")
}

// modeList renders the valid -mode values for help text.
func modeList(availableModes []string) string {
	list := ""
	for _, m := range availableModes {
		list += m + ", "
	}
	return list + ModeBoth
}

// printUsage writes the full usage message with grouped flags.
func printUsage(w io.Writer, programName string, fs *flag.FlagSet, availableModes []string) {
	fmt.Fprintf(w, "Usage: %s [options]\n\n", programName)
	fmt.Fprintf(w, "Benchmarks factorial throughput under two locking regimes: one where a\n")
	fmt.Fprintf(w, "shared token is held across the whole repetition loop and one where the\n")
	fmt.Fprintf(w, "loop runs with the token released.\n\n")
	fmt.Fprintf(w, "Valid -mode values: %s\n\n", modeList(availableModes))
	fmt.Fprintf(w, "Options:\n")
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nEnvironment variables use the %s prefix (e.g. %sWORKERS) and apply\n", EnvPrefix, EnvPrefix)
	fmt.Fprintf(w, "when the corresponding flag is not set.\n")
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// MaxN is the largest factorial argument whose result is representable
// in a uint64.
const MaxN = 20

// validate checks the resolved configuration for invalid values.
// Zero Workers and Repetitions pass validation here: they mean
// "auto-detect" and are resolved by ApplyAdaptiveDefaults or a
// calibration profile before the benchmark starts.
func validate(cfg AppConfig, availableModes []string) error {
	if cfg.N > MaxN {
		return apperrors.NewConfigError(
			"n must be between 0 and %d: %d! does not fit in 64 bits", MaxN, cfg.N)
	}
	if cfg.Workers < 0 {
		return apperrors.NewConfigError("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %v", cfg.Timeout)
	}
	if !isValidMode(cfg.Mode, availableModes) {
		return apperrors.NewConfigError(
			"unknown mode %q (valid: %s)", cfg.Mode, modeList(availableModes))
	}
	if cfg.Serve && cfg.Addr == "" {
		return apperrors.NewConfigError("addr must not be empty in server mode")
	}
	if cfg.TUI && cfg.Quiet {
		return apperrors.NewConfigError("the dashboard and quiet mode are mutually exclusive")
	}
	return nil
}

// isValidMode reports whether mode names a registered regime or "both".
func isValidMode(mode string, availableModes []string) bool {
	if mode == ModeBoth {
		return true
	}
	for _, m := range availableModes {
		if mode == m {
			return true
		}
	}
	return false
}
