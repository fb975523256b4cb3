// This file loads benchmark settings from a TOML configuration file.

package config

import (
	"flag"
	"time"

	"github.com/BurntSushi/toml"
)

// duration wraps time.Duration so TOML values can be written as "5m" or
// "90s" instead of nanosecond integers.
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// fileConfig mirrors AppConfig for TOML decoding. Every field is a
// pointer so that absent keys can be told apart from zero values.
type fileConfig struct {
	N                  *uint     `toml:"n"`
	Repetitions        *uint64   `toml:"repetitions"`
	Workers            *int      `toml:"workers"`
	Mode               *string   `toml:"mode"`
	Timeout            *duration `toml:"timeout"`
	Warmup             *bool     `toml:"warmup"`
	GCOff              *bool     `toml:"gcoff"`
	PinWorkers         *bool     `toml:"pin_workers"`
	Verbose            *bool     `toml:"verbose"`
	Details            *bool     `toml:"details"`
	Quiet              *bool     `toml:"quiet"`
	OutputFile         *string   `toml:"output"`
	CalibrationProfile *string   `toml:"calibration_profile"`
	Addr               *string   `toml:"addr"`
}

// loadConfigFile decodes the TOML file at path.
func loadConfigFile(path string) (fileConfig, error) {
	var fileCfg fileConfig
	_, err := toml.DecodeFile(path, &fileCfg)
	return fileCfg, err
}

// fileOverride maps one fileConfig field to the CLI flag name(s) it
// corresponds to, so file values never override explicit flags.
type fileOverride struct {
	flags []string
	apply func(*AppConfig, fileConfig)
}

// fileOverrides is the declarative application table for file values,
// in fileConfig field order.
var fileOverrides = []fileOverride{
	{[]string{"n"}, func(c *AppConfig, f fileConfig) {
		if f.N != nil {
			c.N = *f.N
		}
	}},
	{[]string{"repetitions", "r"}, func(c *AppConfig, f fileConfig) {
		if f.Repetitions != nil {
			c.Repetitions = *f.Repetitions
		}
	}},
	{[]string{"workers", "w"}, func(c *AppConfig, f fileConfig) {
		if f.Workers != nil {
			c.Workers = *f.Workers
		}
	}},
	{[]string{"mode"}, func(c *AppConfig, f fileConfig) {
		if f.Mode != nil {
			c.Mode = *f.Mode
		}
	}},
	{[]string{"timeout"}, func(c *AppConfig, f fileConfig) {
		if f.Timeout != nil {
			c.Timeout = f.Timeout.Duration
		}
	}},
	{[]string{"warmup"}, func(c *AppConfig, f fileConfig) {
		if f.Warmup != nil {
			c.Warmup = *f.Warmup
		}
	}},
	{[]string{"gcoff"}, func(c *AppConfig, f fileConfig) {
		if f.GCOff != nil {
			c.GCOff = *f.GCOff
		}
	}},
	{[]string{"pin"}, func(c *AppConfig, f fileConfig) {
		if f.PinWorkers != nil {
			c.PinWorkers = *f.PinWorkers
		}
	}},
	{[]string{"v", "verbose"}, func(c *AppConfig, f fileConfig) {
		if f.Verbose != nil {
			c.Verbose = *f.Verbose
		}
	}},
	{[]string{"d", "details"}, func(c *AppConfig, f fileConfig) {
		if f.Details != nil {
			c.Details = *f.Details
		}
	}},
	{[]string{"quiet", "q"}, func(c *AppConfig, f fileConfig) {
		if f.Quiet != nil {
			c.Quiet = *f.Quiet
		}
	}},
	{[]string{"output", "o"}, func(c *AppConfig, f fileConfig) {
		if f.OutputFile != nil {
			c.OutputFile = *f.OutputFile
		}
	}},
	{[]string{"calibration-profile"}, func(c *AppConfig, f fileConfig) {
		if f.CalibrationProfile != nil {
			c.CalibrationProfile = *f.CalibrationProfile
		}
	}},
	{[]string{"addr"}, func(c *AppConfig, f fileConfig) {
		if f.Addr != nil {
			c.Addr = *f.Addr
		}
	}},
}

// applyFileConfig copies file values into the configuration for any
// flags that were not explicitly set on the command line. Environment
// overrides run afterwards and take precedence over file values.
func applyFileConfig(cfg *AppConfig, fs *flag.FlagSet, fileCfg fileConfig) {
	for _, o := range fileOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		o.apply(cfg, fileCfg)
	}
}
