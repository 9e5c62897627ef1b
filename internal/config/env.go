package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds the environment overrides. PIRATE_SIM_HARDWARE selects the
// simulated hardware port; absent or false means production hardware.
type Env struct {
	SimHardware bool   `env:"PIRATE_SIM_HARDWARE"`
	DevicePath  string `env:"PIRATE_INPUT_DEVICE"`
	LEDPath     string `env:"PIRATE_LED_DEVICE"`
	ReportURL   string `env:"PIRATE_REPORT_URL"`
	ReportToken string `env:"PIRATE_REPORT_TOKEN"`
}

// ParseEnv loads the environment overrides.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("%w: parse env: %v", ErrConfig, err)
	}
	return e, nil
}

// Apply merges the non-empty overrides into the configuration.
func (e Env) Apply(cfg *Config) {
	if e.DevicePath != "" {
		cfg.Hardware.DevicePath = e.DevicePath
	}
	if e.LEDPath != "" {
		cfg.Hardware.LEDPath = e.LEDPath
	}
	if e.ReportURL != "" {
		cfg.Report.URL = e.ReportURL
	}
	if e.ReportToken != "" {
		cfg.Report.Token = e.ReportToken
	}
}
