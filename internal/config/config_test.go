package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv() {
	os.Unsetenv("HDLSIM_CLOCK_PERIOD")
	os.Unsetenv("HDLSIM_RUN_UNTIL")
	os.Unsetenv("HDLSIM_OUTPUT_FORMAT")
}

func TestLoadConfigWithDefaults(t *testing.T) {
	clearEnv()

	cfg := LoadConfigWithDefaults()

	if cfg.Clock.Period != 10 {
		t.Errorf("expected clock period 10, got %d", cfg.Clock.Period)
	}
	if cfg.Clock.InitWait != 0 {
		t.Errorf("expected clock init_wait 0, got %d", cfg.Clock.InitWait)
	}
	if cfg.Reset.InitDelay != 6 {
		t.Errorf("expected reset init_delay 6, got %d", cfg.Reset.InitDelay)
	}
	if cfg.Run.Until != 1000 {
		t.Errorf("expected run.until 1000, got %d", cfg.Run.Until)
	}
	if cfg.Output.Format != "console" {
		t.Errorf("expected format 'console', got %q", cfg.Output.Format)
	}
}

func TestLoadConfigValidYAML(t *testing.T) {
	clearEnv()
	yamlSrc := `
clock:
  period: 20
  init_wait: 4

reset:
  active_low: true
  init_delay: 12

run:
  until: 500

uart:
  enabled: true
  baud: 9600

output:
  file: results.json
  format: json
`
	tmpFile := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(tmpFile, []byte(yamlSrc), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	cfg, err := LoadConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Clock.Period != 20 {
		t.Errorf("expected clock period 20, got %d", cfg.Clock.Period)
	}
	if cfg.Reset.InitDelay != 12 {
		t.Errorf("expected reset init_delay 12, got %d", cfg.Reset.InitDelay)
	}
	if cfg.Run.Until != 500 {
		t.Errorf("expected run.until 500, got %d", cfg.Run.Until)
	}
	if !cfg.Uart.Enabled || cfg.Uart.Baud != 9600 {
		t.Errorf("expected uart enabled at 9600 baud, got %+v", cfg.Uart)
	}
	if cfg.Output.File != "results.json" {
		t.Errorf("expected output file 'results.json', got %q", cfg.Output.File)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	os.Setenv("HDLSIM_CLOCK_PERIOD", "40")
	os.Setenv("HDLSIM_RUN_UNTIL", "2000")
	os.Setenv("HDLSIM_OUTPUT_FORMAT", "json")
	defer clearEnv()

	cfg := LoadConfigWithDefaults()

	if cfg.Clock.Period != 40 {
		t.Errorf("expected clock period 40, got %d", cfg.Clock.Period)
	}
	if cfg.Run.Until != 2000 {
		t.Errorf("expected run.until 2000, got %d", cfg.Run.Until)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected format 'json', got %q", cfg.Output.Format)
	}
}

func TestLoadConfigFileNotFound(t *testing.T) {
	_, err := LoadConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "invalid.yaml")
	if err := os.WriteFile(tmpFile, []byte("{{invalid yaml"), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}

	_, err := LoadConfig(tmpFile)
	if err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "zero period",
			modify:  func(c *Config) { c.Clock.Period = 0 },
			wantErr: "clock.period must be > 0",
		},
		{
			name:    "odd period",
			modify:  func(c *Config) { c.Clock.Period = 9 },
			wantErr: "clock.period must be even to keep both half-periods integral",
		},
		{
			name:    "negative init wait",
			modify:  func(c *Config) { c.Clock.InitWait = -1 },
			wantErr: "clock.init_wait must be >= 0",
		},
		{
			name:    "negative reset delay",
			modify:  func(c *Config) { c.Reset.InitDelay = -1 },
			wantErr: "reset.init_delay must be >= 0",
		},
		{
			name:    "zero until",
			modify:  func(c *Config) { c.Run.Until = 0 },
			wantErr: "run.until must be > 0",
		},
		{
			name: "uart enabled with zero baud",
			modify: func(c *Config) {
				c.Uart.Enabled = true
				c.Uart.Baud = 0
			},
			wantErr: "uart.baud must be > 0 when uart is enabled",
		},
		{
			name:    "bad output format",
			modify:  func(c *Config) { c.Output.Format = "xml" },
			wantErr: `output.format must be 'console' or 'json', got "xml"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv()
			cfg := LoadConfigWithDefaults()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Errorf("expected error containing %q", tt.wantErr)
				return
			}
			if err.Error() != tt.wantErr {
				t.Errorf("expected error %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}
