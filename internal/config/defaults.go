package config

import (
	_ "embed"
)

//go:embed defaults/pirate.yaml
var defaultPirateYAML []byte

// DefaultConfig returns the cabinet's stock tuning: a 30-second match,
// 0.75-second mole windows and the five-ship fleet.
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			MatchSecs:     30.0,
			MoleSecs:      0.75,
			CountdownSecs: 3.0,
			CooldownSecs:  1.5,
			HitDamage:     1,
			HitHeal:       0.5,
			EscapeDamage:  1.0,
		},
		Hardware: HardwareConfig{
			Buttons:         9,
			StartButton:     4,
			PixelsPerButton: 4,
			DevicePath:      "/dev/input/event0",
			LEDPath:         "/dev/spidev0.0",
		},
		Report: ReportConfig{
			URL:         "",
			Token:       "",
			MaxAttempts: 3,
			TimeoutSecs: 5.0,
		},
		Fleet: []ShipConfig{
			{Class: "sloop", Health: 5},
			{Class: "brigantine", Health: 10},
			{Class: "frigate", Health: 15},
			{Class: "man-of-war", Health: 15},
			{Class: "dreadnought", Health: 5},
		},
	}
}
