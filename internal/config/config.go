package config

import (
	"flag"
	"os"

	"codeberg.org/mutker/thermostatd/internal/errors"
	"github.com/spf13/viper"
)

const (
	DefaultLogLevel = "info"

	defaultDuration = 10000 // milliseconds
	defaultTraceDir = "."
)

// Config holds the ambient runtime knobs. Alarm thresholds, pulse timing and
// the stale horizon are fixed constants in their packages, not configuration.
type Config struct {
	Duration int    `mapstructure:"duration"`  // measurement run length in milliseconds
	Seed     int64  `mapstructure:"seed"`      // RNG seed; 0 derives the seed from the clock at startup
	TraceDir string `mapstructure:"trace_dir"` // directory receiving the measurement trace log
	LogLevel string `mapstructure:"log_level"`
	Debug    bool   `mapstructure:"debug"`
	Verbose  bool   `mapstructure:"verbose"`
}

// Load reads configuration from flags, an optional TOML file and the
// THERMOSTATD_CONFIG environment variable, in ascending priority of
// defaults < file < flags.
func Load() (*Config, error) {
	errFactory := errors.New()

	flags := flag.NewFlagSet("thermostatd", flag.ContinueOnError)
	duration := flags.Int("duration", defaultDuration, "Measurement run length in milliseconds")
	seed := flags.Int64("seed", 0, "RNG seed (0 = derive from clock)")
	traceDir := flags.String("trace-dir", defaultTraceDir, "Directory for the measurement trace log")
	logLevel := flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	debug := flags.Bool("debug", false, "Enable debugging mode")
	verbose := flags.Bool("verbose", false, "Enable verbose logging")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	v := viper.New()
	v.SetDefault("duration", defaultDuration)
	v.SetDefault("seed", int64(0))
	v.SetDefault("trace_dir", defaultTraceDir)
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetConfigName("thermostatd")
	v.SetConfigType("toml")
	v.AddConfigPath("/etc")
	v.AddConfigPath(".")
	if path := os.Getenv("THERMOSTATD_CONFIG"); path != "" {
		v.SetConfigFile(path)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	}

	// Explicitly set flags override file values
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "duration":
			v.Set("duration", *duration)
		case "seed":
			v.Set("seed", *seed)
		case "trace-dir":
			v.Set("trace_dir", *traceDir)
		case "log-level":
			v.Set("log_level", *logLevel)
		case "debug":
			v.Set("debug", *debug)
		case "verbose":
			v.Set("verbose", *verbose)
		}
	})

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if config.Debug {
		config.LogLevel = "debug"
	} else if config.Verbose && config.LogLevel == DefaultLogLevel {
		config.LogLevel = "info"
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the loaded configuration is usable.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Duration <= 0 {
		return errFactory.WithData(errors.ErrInvalidDuration, c.Duration)
	}

	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if c.TraceDir == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig, "trace directory must not be empty")
	}

	return nil
}
