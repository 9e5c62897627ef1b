// Package event defines the closed set of game events and the synchronous
// dispatcher that decouples the hardware port, the state machine and the
// battle logic. Events are immutable values; dispatch never mutates them.
package event

import "github.com/arcade-cab/whackapirate/internal/battle"

// Type identifies an event variant. The set is closed: handlers are keyed
// by Type at subscribe time, never by runtime type inspection.
type Type int

const (
	TypeButtonPressed Type = iota
	TypeTargetOpened
	TypePlayerHit
	TypeMoleEscaped
	TypeShipDestroyed
	TypeCountdownTick
	TypeStartScreen
	TypeGameOver
	TypeStateTransition
)

func (t Type) String() string {
	switch t {
	case TypeButtonPressed:
		return "ButtonPressed"
	case TypeTargetOpened:
		return "TargetOpened"
	case TypePlayerHit:
		return "PlayerHit"
	case TypeMoleEscaped:
		return "MoleEscaped"
	case TypeShipDestroyed:
		return "ShipDestroyed"
	case TypeCountdownTick:
		return "CountdownTick"
	case TypeStartScreen:
		return "StartScreen"
	case TypeGameOver:
		return "GameOver"
	case TypeStateTransition:
		return "StateTransition"
	default:
		return "Unknown"
	}
}

// Event is the interface all game events implement. The unexported marker
// keeps the variant set closed to this package.
type Event interface {
	Type() Type
	gameEvent()
}

// ButtonPressed is a translated hardware signal: the player struck the
// button wired to the given fleet slot.
type ButtonPressed struct {
	Ship int
}

func (ButtonPressed) Type() Type { return TypeButtonPressed }
func (ButtonPressed) gameEvent() {}

// TargetOpened announces a freshly opened mole window for a fleet slot.
type TargetOpened struct {
	Ship int
}

func (TargetOpened) Type() Type { return TypeTargetOpened }
func (TargetOpened) gameEvent() {}

// PlayerHit is dispatched when a press lands inside the open window.
type PlayerHit struct {
	Ship  int
	Score int
}

func (PlayerHit) Type() Type { return TypePlayerHit }
func (PlayerHit) gameEvent() {}

// MoleEscaped is dispatched when a window expires without a matching hit.
type MoleEscaped struct {
	Ship int
}

func (MoleEscaped) Type() Type { return TypeMoleEscaped }
func (MoleEscaped) gameEvent() {}

// ShipDestroyed is dispatched when a ship's health reaches zero.
type ShipDestroyed struct {
	Ship int
	Name string
}

func (ShipDestroyed) Type() Type { return TypeShipDestroyed }
func (ShipDestroyed) gameEvent() {}

// CountdownTick fires once per whole second remaining in the countdown.
type CountdownTick struct {
	Remaining int
}

func (CountdownTick) Type() Type { return TypeCountdownTick }
func (CountdownTick) gameEvent() {}

// StartScreen announces a return to the start screen.
type StartScreen struct{}

func (StartScreen) Type() Type { return TypeStartScreen }
func (StartScreen) gameEvent() {}

// GameOver carries the terminal classification of a finished match.
type GameOver struct {
	Score   int
	Outcome battle.Outcome
}

func (GameOver) Type() Type { return TypeGameOver }
func (GameOver) gameEvent() {}

// StateTransition is dispatched after a completed phase change, once the
// old state's exit hook and the new state's entry hook have both run.
type StateTransition struct {
	From string
	To   string
}

func (StateTransition) Type() Type { return TypeStateTransition }
func (StateTransition) gameEvent() {}
