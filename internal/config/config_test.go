package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()

	if got := cfg.Game.MoleWindow(); got != 750*time.Millisecond {
		t.Errorf("MoleWindow = %v, want 750ms", got)
	}
	if got := cfg.Game.MatchDuration(); got != 30*time.Second {
		t.Errorf("MatchDuration = %v, want 30s", got)
	}
	if cfg.Hardware.Buttons != 9 {
		t.Errorf("Buttons = %d, want 9", cfg.Hardware.Buttons)
	}
	if cfg.Hardware.StartButton != 4 {
		t.Errorf("StartButton = %d, want 4 (the middle button)", cfg.Hardware.StartButton)
	}
	if len(cfg.Fleet) != 5 {
		t.Errorf("fleet size = %d, want 5", len(cfg.Fleet))
	}
}

func TestValidateRejectsBrokenConfigs(t *testing.T) {
	cases := []struct {
		name  string
		mutate func(*Config)
	}{
		{"zero match length", func(c *Config) { c.Game.MatchSecs = 0 }},
		{"negative mole window", func(c *Config) { c.Game.MoleSecs = -0.75 }},
		{"zero countdown", func(c *Config) { c.Game.CountdownSecs = 0 }},
		{"negative cooldown", func(c *Config) { c.Game.CooldownSecs = -1 }},
		{"zero hit damage", func(c *Config) { c.Game.HitDamage = 0 }},
		{"negative hit heal", func(c *Config) { c.Game.HitHeal = -0.5 }},
		{"zero escape damage", func(c *Config) { c.Game.EscapeDamage = 0 }},
		{"no buttons", func(c *Config) { c.Hardware.Buttons = 0 }},
		{"start button out of range", func(c *Config) { c.Hardware.StartButton = 9 }},
		{"negative start button", func(c *Config) { c.Hardware.StartButton = -1 }},
		{"zero pixels per button", func(c *Config) { c.Hardware.PixelsPerButton = 0 }},
		{"empty fleet", func(c *Config) { c.Fleet = nil }},
		{"fleet larger than button bank", func(c *Config) {
			for len(c.Fleet) <= c.Hardware.Buttons {
				c.Fleet = append(c.Fleet, ShipConfig{Class: "sloop", Health: 5})
			}
		}},
		{"unknown ship class", func(c *Config) { c.Fleet[0].Class = "galleon" }},
		{"non-positive ship health", func(c *Config) { c.Fleet[2].Health = 0 }},
		{"zero report attempts", func(c *Config) { c.Report.MaxAttempts = 0 }},
		{"zero report timeout", func(c *Config) { c.Report.TimeoutSecs = 0 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate accepted a broken config")
			}
			if !errors.Is(err, ErrConfig) {
				t.Errorf("error does not wrap ErrConfig: %v", err)
			}
		})
	}
}

func TestFleetSpecsMatchesConfig(t *testing.T) {
	cfg := DefaultConfig()
	specs := cfg.FleetSpecs()

	if len(specs) != len(cfg.Fleet) {
		t.Fatalf("specs = %d entries, want %d", len(specs), len(cfg.Fleet))
	}
	for i, spec := range specs {
		if spec.MaxHealth != cfg.Fleet[i].Health {
			t.Errorf("spec %d health = %d, want %d", i, spec.MaxHealth, cfg.Fleet[i].Health)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	yaml := `
game:
  match_secs: 45
  mole_secs: 0.5
  countdown_secs: 3
  game_over_cooldown_secs: 1.5
  hit_damage: 2
  hit_heal: 0.5
  escape_damage: 1
hardware:
  buttons: 9
  start_button: 4
  pixels_per_button: 4
  device_path: /dev/input/event0
  led_path: /dev/spidev0.0
report:
  max_attempts: 3
  timeout_secs: 5
fleet:
  - class: sloop
    health: 5
  - class: frigate
    health: 15
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Game.MatchDuration() != 45*time.Second {
		t.Errorf("MatchDuration = %v, want 45s", cfg.Game.MatchDuration())
	}
	if len(cfg.Fleet) != 2 {
		t.Errorf("fleet size = %d, want 2", len(cfg.Fleet))
	}
}

func TestLoadMissingCustomPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load accepted a missing explicit config path")
	}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("error does not wrap ErrConfig: %v", err)
	}
}

func TestLoadRejectsInvalidCustomConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("game:\n  match_secs: -1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load accepted an invalid config")
	}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("error does not wrap ErrConfig: %v", err)
	}
}

func TestEnvApplyOverrides(t *testing.T) {
	t.Setenv("PIRATE_SIM_HARDWARE", "true")
	t.Setenv("PIRATE_INPUT_DEVICE", "/dev/input/event9")
	t.Setenv("PIRATE_REPORT_URL", "https://awx.example.com/api/v2/job_templates/7/launch/")
	t.Setenv("PIRATE_REPORT_TOKEN", "sekrit")

	e, err := ParseEnv()
	if err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	if !e.SimHardware {
		t.Error("SimHardware not parsed")
	}

	cfg := DefaultConfig()
	e.Apply(&cfg)

	if cfg.Hardware.DevicePath != "/dev/input/event9" {
		t.Errorf("DevicePath = %q", cfg.Hardware.DevicePath)
	}
	if cfg.Report.URL != "https://awx.example.com/api/v2/job_templates/7/launch/" {
		t.Errorf("Report.URL = %q", cfg.Report.URL)
	}
	if cfg.Report.Token != "sekrit" {
		t.Errorf("Report.Token = %q", cfg.Report.Token)
	}
}

func TestEnvApplyLeavesUnsetFieldsAlone(t *testing.T) {
	cfg := DefaultConfig()
	want := cfg.Hardware.DevicePath

	var e Env
	e.Apply(&cfg)

	if cfg.Hardware.DevicePath != want {
		t.Errorf("DevicePath changed by empty env: %q", cfg.Hardware.DevicePath)
	}
}
