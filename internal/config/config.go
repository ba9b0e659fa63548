// Package config loads the scenario a hdlsim run drives: clock and reset
// timing, the until bound, and per-agent parameters, from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the complete scenario configuration for one hdlsim run.
type Config struct {
	Clock    ClockConfig    `yaml:"clock"`
	Reset    ResetConfig    `yaml:"reset"`
	Run      RunConfig      `yaml:"run"`
	ReadyVld ReadyVldConfig `yaml:"ready_valid"`
	Uart     UartConfig     `yaml:"uart"`
	Output   OutputConfig   `yaml:"output"`
}

// ClockConfig configures the clock agent.
type ClockConfig struct {
	Period   int64 `yaml:"period"`
	InitWait int64 `yaml:"init_wait"`
}

// ResetConfig configures the pull-up/pull-down reset agent.
type ResetConfig struct {
	ActiveLow bool  `yaml:"active_low"`
	InitDelay int64 `yaml:"init_delay"`
}

// RunConfig bounds the simulation run itself.
type RunConfig struct {
	Until int64 `yaml:"until"`
}

// ReadyVldConfig configures an optional ready/valid handshake agent.
type ReadyVldConfig struct {
	Enabled      bool `yaml:"enabled"`
	RstActiveLow bool `yaml:"rst_active_low"`
}

// UartConfig configures an optional UART agent.
type UartConfig struct {
	Enabled bool `yaml:"enabled"`
	Baud    int  `yaml:"baud"`
}

// OutputConfig controls how the run report is rendered.
type OutputConfig struct {
	File   string `yaml:"file"`
	Format string `yaml:"format"`
}

// LoadConfig reads a scenario from path, applies environment overrides,
// and validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := LoadConfigWithDefaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadConfigWithDefaults returns a Config seeded with sensible scenario
// defaults (a period-10 clock, reset release at 6, run until 1000).
func LoadConfigWithDefaults() *Config {
	cfg := &Config{
		Clock: ClockConfig{
			Period:   10,
			InitWait: 0,
		},
		Reset: ResetConfig{
			InitDelay: 6,
		},
		Run: RunConfig{
			Until: 1000,
		},
		Uart: UartConfig{
			Baud: 115200,
		},
		Output: OutputConfig{
			Format: "console",
		},
	}

	applyEnvOverrides(cfg)
	return cfg
}

// applyEnvOverrides applies HDLSIM_-prefixed environment overrides.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HDLSIM_CLOCK_PERIOD"); v != "" {
		if period, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Clock.Period = period
		}
	}
	if v := os.Getenv("HDLSIM_RUN_UNTIL"); v != "" {
		if until, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Run.Until = until
		}
	}
	if v := os.Getenv("HDLSIM_OUTPUT_FORMAT"); v != "" {
		cfg.Output.Format = v
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Clock.Period <= 0 {
		return fmt.Errorf("clock.period must be > 0")
	}
	if c.Clock.Period%2 != 0 {
		return fmt.Errorf("clock.period must be even to keep both half-periods integral")
	}
	if c.Clock.InitWait < 0 {
		return fmt.Errorf("clock.init_wait must be >= 0")
	}
	if c.Reset.InitDelay < 0 {
		return fmt.Errorf("reset.init_delay must be >= 0")
	}
	if c.Run.Until <= 0 {
		return fmt.Errorf("run.until must be > 0")
	}
	if c.Uart.Enabled && c.Uart.Baud <= 0 {
		return fmt.Errorf("uart.baud must be > 0 when uart is enabled")
	}
	switch c.Output.Format {
	case "console", "json":
	default:
		return fmt.Errorf("output.format must be 'console' or 'json', got %q", c.Output.Format)
	}
	return nil
}
