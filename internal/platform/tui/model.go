// Package tui provides the Bubble Tea front end for the cabinet core.
// It drives the game loop at a fixed tick rate and mirrors the cabinet's
// buttons and lights in the terminal.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/arcade-cab/whackapirate/internal/config"
	"github.com/arcade-cab/whackapirate/internal/game"
	"github.com/arcade-cab/whackapirate/internal/hardware"
)

// TickMsg carries the wall-clock time of one simulation tick.
type TickMsg time.Time

// Model is the Bubble Tea model wrapping the game driver. Each tick it
// advances the driver by one fixed timestep and redraws the cabinet view.
type Model struct {
	driver   *game.Driver
	sim      *hardware.SimPort
	feed     *EventFeed
	keys     *KeyMapper
	hw       config.HardwareConfig
	runtime  config.Runtime
	width    int
	height   int
	quitting bool
	onQuit   func()
}

// NewModel creates a model. sim may be nil when a real input device is
// feeding the driver's queue; keyboard presses are then ignored.
func NewModel(driver *game.Driver, sim *hardware.SimPort, feed *EventFeed, hw config.HardwareConfig, rt config.Runtime, onQuit func()) Model {
	return Model{
		driver:  driver,
		sim:     sim,
		feed:    feed,
		keys:    NewKeyMapper(hw.Buttons, hw.StartButton),
		hw:      hw,
		runtime: rt,
		width:   rt.ScreenW,
		height:  rt.ScreenH,
		onQuit:  onQuit,
	}
}

// tick schedules the next simulation tick at the configured rate.
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.runtime.TickInterval(), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case TickMsg:
		m.driver.Step(m.runtime.TickInterval())
		return m, m.tick()
	}

	return m, nil
}

// handleKey maps keyboard input onto the simulated cabinet buttons.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	button, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		if m.onQuit != nil {
			m.onQuit()
		}
		return m, tea.Quit
	}

	if button >= 0 && m.sim != nil {
		m.sim.Inject(button)
	}

	return m, nil
}

// View renders the current phase.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return renderView(m)
}

// Run starts the Bubble Tea program with the given model and blocks
// until the player quits.
func Run(model Model) error {
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
