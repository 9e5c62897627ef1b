// Package config provides YAML-based configuration loading and startup
// validation for the cabinet. Invalid configuration is the only fatal error
// class: the core never starts a match with broken invariants.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/arcade-cab/whackapirate/internal/battle"
)

// ErrConfig marks configuration validation failures. Callers classify with
// errors.Is and must abort startup on it.
var ErrConfig = errors.New("invalid configuration")

// Config is the full cabinet configuration.
type Config struct {
	Game     GameConfig     `yaml:"game"`
	Hardware HardwareConfig `yaml:"hardware"`
	Report   ReportConfig   `yaml:"report"`
	Fleet    []ShipConfig   `yaml:"fleet"`
}

// GameConfig holds the match timing and damage constants. Durations are in
// seconds, matching the cabinet's tuning sheets.
type GameConfig struct {
	MatchSecs     float64 `yaml:"match_secs"`
	MoleSecs      float64 `yaml:"mole_secs"`
	CountdownSecs float64 `yaml:"countdown_secs"`
	CooldownSecs  float64 `yaml:"game_over_cooldown_secs"`
	HitDamage     int     `yaml:"hit_damage"`
	HitHeal       float64 `yaml:"hit_heal"`
	EscapeDamage  float64 `yaml:"escape_damage"`
}

// MatchDuration returns the fixed match length.
func (g GameConfig) MatchDuration() time.Duration { return secs(g.MatchSecs) }

// MoleWindow returns how long each target stays strikeable.
func (g GameConfig) MoleWindow() time.Duration { return secs(g.MoleSecs) }

// Countdown returns the pre-match countdown length.
func (g GameConfig) Countdown() time.Duration { return secs(g.CountdownSecs) }

// GameOverCooldown returns how long button presses are ignored on the game
// over screen before any press returns to the start screen.
func (g GameConfig) GameOverCooldown() time.Duration { return secs(g.CooldownSecs) }

func secs(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}

// HardwareConfig describes the physical button bank and LED strip.
type HardwareConfig struct {
	Buttons         int    `yaml:"buttons"`
	StartButton     int    `yaml:"start_button"`
	PixelsPerButton int    `yaml:"pixels_per_button"`
	DevicePath      string `yaml:"device_path"`
	LEDPath         string `yaml:"led_path"`
}

// ReportConfig describes the outbound automation call made at game over.
type ReportConfig struct {
	URL         string  `yaml:"url"`
	Token       string  `yaml:"token"`
	MaxAttempts int     `yaml:"max_attempts"`
	TimeoutSecs float64 `yaml:"timeout_secs"`
}

// Timeout returns the per-request timeout for the report call.
func (r ReportConfig) Timeout() time.Duration { return secs(r.TimeoutSecs) }

// ShipConfig describes one fleet slot.
type ShipConfig struct {
	Class  string `yaml:"class"`
	Health int    `yaml:"health"`
}

// shipClasses maps config names to hull classes.
var shipClasses = map[string]battle.ShipClass{
	"sloop":       battle.Sloop,
	"brigantine":  battle.Brigantine,
	"frigate":     battle.Frigate,
	"man-of-war":  battle.ManOfWar,
	"dreadnought": battle.Dreadnought,
}

// FleetSpecs converts the configured fleet into battle ship specs.
// Validate must have been called first.
func (c *Config) FleetSpecs() []battle.ShipSpec {
	specs := make([]battle.ShipSpec, len(c.Fleet))
	for i, s := range c.Fleet {
		specs[i] = battle.ShipSpec{Class: shipClasses[s.Class], MaxHealth: s.Health}
	}
	return specs
}

// Validate checks every startup invariant. Any returned error wraps
// ErrConfig and must prevent the match from starting.
func (c *Config) Validate() error {
	if c.Game.MatchSecs <= 0 {
		return fmt.Errorf("%w: match_secs must be positive, got %v", ErrConfig, c.Game.MatchSecs)
	}
	if c.Game.MoleSecs <= 0 {
		return fmt.Errorf("%w: mole_secs must be positive, got %v", ErrConfig, c.Game.MoleSecs)
	}
	if c.Game.CountdownSecs <= 0 {
		return fmt.Errorf("%w: countdown_secs must be positive, got %v", ErrConfig, c.Game.CountdownSecs)
	}
	if c.Game.CooldownSecs < 0 {
		return fmt.Errorf("%w: game_over_cooldown_secs must not be negative, got %v", ErrConfig, c.Game.CooldownSecs)
	}
	if c.Game.HitDamage <= 0 {
		return fmt.Errorf("%w: hit_damage must be positive, got %d", ErrConfig, c.Game.HitDamage)
	}
	if c.Game.HitHeal < 0 {
		return fmt.Errorf("%w: hit_heal must not be negative, got %v", ErrConfig, c.Game.HitHeal)
	}
	if c.Game.EscapeDamage <= 0 {
		return fmt.Errorf("%w: escape_damage must be positive, got %v", ErrConfig, c.Game.EscapeDamage)
	}
	if c.Hardware.Buttons <= 0 {
		return fmt.Errorf("%w: buttons must be positive, got %d", ErrConfig, c.Hardware.Buttons)
	}
	if c.Hardware.StartButton < 0 || c.Hardware.StartButton >= c.Hardware.Buttons {
		return fmt.Errorf("%w: start_button %d out of range [0,%d)", ErrConfig, c.Hardware.StartButton, c.Hardware.Buttons)
	}
	if c.Hardware.PixelsPerButton <= 0 {
		return fmt.Errorf("%w: pixels_per_button must be positive, got %d", ErrConfig, c.Hardware.PixelsPerButton)
	}
	if len(c.Fleet) == 0 {
		return fmt.Errorf("%w: fleet must not be empty", ErrConfig)
	}
	if len(c.Fleet) > c.Hardware.Buttons {
		return fmt.Errorf("%w: fleet size %d exceeds button count %d", ErrConfig, len(c.Fleet), c.Hardware.Buttons)
	}
	for i, s := range c.Fleet {
		if _, ok := shipClasses[s.Class]; !ok {
			return fmt.Errorf("%w: fleet[%d]: unknown ship class %q", ErrConfig, i, s.Class)
		}
		if s.Health <= 0 {
			return fmt.Errorf("%w: fleet[%d]: health must be positive, got %d", ErrConfig, i, s.Health)
		}
	}
	if c.Report.MaxAttempts < 1 {
		return fmt.Errorf("%w: report max_attempts must be at least 1, got %d", ErrConfig, c.Report.MaxAttempts)
	}
	if c.Report.TimeoutSecs <= 0 {
		return fmt.Errorf("%w: report timeout_secs must be positive, got %v", ErrConfig, c.Report.TimeoutSecs)
	}
	return nil
}

// Runtime contains per-process settings that do not come from the config
// file: tick rate, RNG seed and the battle area dimensions.
type Runtime struct {
	ScreenW  int
	ScreenH  int
	TickRate int
	Seed     int64
}

// DefaultRuntime returns a Runtime with sensible defaults.
func DefaultRuntime() Runtime {
	return Runtime{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in the platform layer
	}
}

// TickInterval returns the wall-clock delta of one simulation tick.
func (r Runtime) TickInterval() time.Duration {
	return time.Second / time.Duration(r.TickRate)
}
