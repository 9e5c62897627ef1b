// Package game contains the real-time control core: the phase state
// machine, the target-window timer and the loop driver that sequences
// hardware input, timing and battle mutations deterministically every tick.
package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/arcade-cab/whackapirate/internal/event"
)

// Phase is the overall game phase. Exactly one phase is current, owned
// exclusively by the Machine.
type Phase int

const (
	PhaseStartScreen Phase = iota
	PhaseCountdown
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseStartScreen:
		return "start_screen"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// State is one phase's behavior. The set is closed: StartScreen,
// Countdown, Playing, GameOver.
type State interface {
	Phase() Phase
	OnEnter()
	OnExit()
	HandleEvent(ev event.Event)
	Update(dt time.Duration)
}

// Machine routes events and tick updates to the current phase's state and
// performs transitions atomically: the old state's exit hook runs, then the
// new state's entry hook, then a StateTransition event is dispatched to
// external subscribers.
//
// Routing only ever reaches the current state, so phase-specific handlers
// are disabled the moment a transition completes; there is no cross-phase
// leakage and no stale mutation after leaving Playing.
type Machine struct {
	logger  *log.Logger
	bus     *event.Dispatcher
	states  map[Phase]State
	current Phase
}

// NewMachine builds a machine starting in StartScreen. The initial state's
// entry hook does not run until Start is called.
func NewMachine(bus *event.Dispatcher, logger *log.Logger, states ...State) *Machine {
	m := &Machine{
		logger:  logger,
		bus:     bus,
		states:  make(map[Phase]State, len(states)),
		current: PhaseStartScreen,
	}
	for _, s := range states {
		m.states[s.Phase()] = s
	}
	return m
}

// Start runs the initial state's entry hook.
func (m *Machine) Start() {
	m.states[m.current].OnEnter()
}

// Current returns the current phase.
func (m *Machine) Current() Phase {
	return m.current
}

// HandleEvent routes an event to the current state only.
func (m *Machine) HandleEvent(ev event.Event) {
	m.states[m.current].HandleEvent(ev)
}

// Update advances the current state's per-tick logic.
func (m *Machine) Update(dt time.Duration) {
	m.states[m.current].Update(dt)
}

// TransitionTo switches phases. Transitioning to the current phase is a
// no-op.
func (m *Machine) TransitionTo(next Phase) {
	if next == m.current {
		return
	}
	from := m.current
	m.states[from].OnExit()
	m.current = next
	m.states[next].OnEnter()

	m.logger.Info("state transition", "from", from, "to", next)
	m.bus.Dispatch(event.StateTransition{From: from.String(), To: next.String()})
}
