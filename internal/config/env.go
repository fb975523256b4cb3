// Environment variable overrides for flags the command line left alone.

package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString reads EnvPrefix+key from the environment, falling back
// to defaultVal when the variable is unset or empty.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet reports whether the named flag appeared on the command
// line. Only unset flags are eligible for environment overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny reports whether any of the given flag names was set,
// covering flags registered under both a short and a long form.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride declares a single environment variable override.
// Each entry maps an env key (without the GILBENCH_ prefix) to the CLI flag
// name(s) it corresponds to and a function that applies the env value.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// envOverrides is the declarative table of all environment variable overrides,
// grouped by value kind (numeric, duration, string, bool).
var envOverrides = []envOverride{
	// Numeric overrides
	{"N", []string{"n"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, strconv.IntSize); err == nil {
			c.N = uint(parsed)
		}
	}},
	{"REPETITIONS", []string{"repetitions", "r"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
			c.Repetitions = parsed
		}
	}},
	{"WORKERS", []string{"workers", "w"}, func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			c.Workers = parsed
		}
	}},

	// Duration overrides
	{"TIMEOUT", []string{"timeout"}, func(c *AppConfig, v string) {
		if parsed, err := time.ParseDuration(v); err == nil {
			c.Timeout = parsed
		}
	}},

	// String overrides
	{"MODE", []string{"mode"}, func(c *AppConfig, v string) {
		c.Mode = v
	}},
	{"OUTPUT", []string{"output", "o"}, func(c *AppConfig, v string) {
		c.OutputFile = v
	}},
	{"CALIBRATION_PROFILE", []string{"calibration-profile"}, func(c *AppConfig, v string) {
		c.CalibrationProfile = v
	}},
	{"ADDR", []string{"addr"}, func(c *AppConfig, v string) {
		c.Addr = v
	}},

	// Boolean overrides
	{"WARMUP", []string{"warmup"}, func(c *AppConfig, v string) {
		c.Warmup = parseBoolEnv(v, c.Warmup)
	}},
	{"GCOFF", []string{"gcoff"}, func(c *AppConfig, v string) {
		c.GCOff = parseBoolEnv(v, c.GCOff)
	}},
	{"PIN_WORKERS", []string{"pin"}, func(c *AppConfig, v string) {
		c.PinWorkers = parseBoolEnv(v, c.PinWorkers)
	}},
	{"VERBOSE", []string{"v", "verbose"}, func(c *AppConfig, v string) {
		c.Verbose = parseBoolEnv(v, c.Verbose)
	}},
	{"DETAILS", []string{"d", "details"}, func(c *AppConfig, v string) {
		c.Details = parseBoolEnv(v, c.Details)
	}},
	{"QUIET", []string{"quiet", "q"}, func(c *AppConfig, v string) {
		c.Quiet = parseBoolEnv(v, c.Quiet)
	}},
	{"CALIBRATE", []string{"calibrate"}, func(c *AppConfig, v string) {
		c.Calibrate = parseBoolEnv(v, c.Calibrate)
	}},
	{"AUTO_CALIBRATE", []string{"auto-calibrate"}, func(c *AppConfig, v string) {
		c.AutoCalibrate = parseBoolEnv(v, c.AutoCalibrate)
	}},
	{"TUI", []string{"tui"}, func(c *AppConfig, v string) {
		c.TUI = parseBoolEnv(v, c.TUI)
	}},
	{"REPL", []string{"repl"}, func(c *AppConfig, v string) {
		c.REPL = parseBoolEnv(v, c.REPL)
	}},
	{"SERVE", []string{"serve"}, func(c *AppConfig, v string) {
		c.Serve = parseBoolEnv(v, c.Serve)
	}},
}

// parseBoolEnv interprets "true", "1" and "yes" as true and "false",
// "0" and "no" as false, case-insensitively. Anything else keeps
// defaultVal, so a typo cannot silently flip a mode.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides copies environment values into config for every
// override whose flags stayed untouched on the command line, giving the
// priority order: CLI flags > Environment variables > configuration
// file > Defaults.
//
// Supported environment variables (all prefixed with GILBENCH_):
//   - N, REPETITIONS, WORKERS, MODE, TIMEOUT, WARMUP, GCOFF, PIN_WORKERS,
//     VERBOSE, DETAILS, QUIET, CALIBRATE, AUTO_CALIBRATE,
//     CALIBRATION_PROFILE, OUTPUT, TUI, REPL, SERVE, ADDR, CONFIG
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
