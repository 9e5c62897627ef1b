package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMapper translates Bubble Tea key messages to cabinet button presses.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	buttons     int
	startButton int
}

// NewKeyMapper creates a key mapper for a cabinet with the given button
// count and dedicated start button.
func NewKeyMapper(buttons, startButton int) *KeyMapper {
	return &KeyMapper{buttons: buttons, startButton: startButton}
}

// MapKey translates a key message to a button index.
// Returns the button (or -1) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (button int, isQuit bool) {
	key := msg.String()

	// Global quit keys
	switch key {
	case "ctrl+c", "q", "esc":
		return -1, true
	}

	// Digits 1..9 map to the physical button grid, row by row.
	if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
		b := int(key[0] - '1')
		if b < km.buttons {
			return b, false
		}
		return -1, false
	}

	// Space and enter stand in for the start button.
	switch key {
	case " ", "enter":
		return km.startButton, false
	}

	return -1, false
}
