package game

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arcade-cab/whackapirate/internal/battle"
	"github.com/arcade-cab/whackapirate/internal/config"
	"github.com/arcade-cab/whackapirate/internal/event"
	"github.com/arcade-cab/whackapirate/internal/hardware"
)

// Reporter is the outbound automation collaborator invoked on entering
// GameOver. Implementations must not block the caller: reporting is
// fire-and-forget and never fatal to the game loop.
type Reporter interface {
	ReportOutcome(score int, outcome battle.Outcome)
}

// Driver is the tick orchestrator. Every tick it drains queued hardware
// signals, advances the target timer, advances the current state and
// evaluates the terminal conditions, in that fixed order. It holds no
// business logic of its own, which is what makes a match reproducible
// under test.
//
// The driver owns the fleet, the player and the timer for the duration of
// a match; the machine owns the phase.
type Driver struct {
	logger *log.Logger
	bus    *event.Dispatcher
	port   hardware.Port
	queue  *hardware.Queue

	machine  *Machine
	fleet    *battle.Fleet
	player   battle.Player
	timer    *TargetTimer
	reporter Reporter

	matchDuration    time.Duration
	countdown        time.Duration
	gameOverCooldown time.Duration
	startButton      int
	buttons          int

	elapsed       time.Duration
	countdownLeft time.Duration
	outcome       battle.Outcome
}

// Params collects the driver's collaborators. Config must have passed
// Validate.
type Params struct {
	Config   config.Config
	Runtime  config.Runtime
	Logger   *log.Logger
	Bus      *event.Dispatcher
	Port     hardware.Port
	Queue    *hardware.Queue
	Reporter Reporter
}

// NewDriver builds the driver, the fleet layout and the state machine, and
// enters the start screen.
func NewDriver(p Params) *Driver {
	seed := p.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	d := &Driver{
		logger:           p.Logger,
		bus:              p.Bus,
		port:             p.Port,
		queue:            p.Queue,
		fleet:            battle.NewFleet(p.Config.FleetSpecs(), seed, battle.AreaWidth, battle.AreaHeight),
		player:           battle.NewPlayer(),
		reporter:         p.Reporter,
		matchDuration:    p.Config.Game.MatchDuration(),
		countdown:        p.Config.Game.Countdown(),
		gameOverCooldown: p.Config.Game.GameOverCooldown(),
		startButton:      p.Config.Hardware.StartButton,
		buttons:          p.Config.Hardware.Buttons,
	}

	d.timer = NewTargetTimer(TimerConfig{
		Window:       p.Config.Game.MoleWindow(),
		HitDamage:    p.Config.Game.HitDamage,
		HitHeal:      p.Config.Game.HitHeal,
		EscapeDamage: p.Config.Game.EscapeDamage,
	}, d.fleet, &d.player, p.Bus, p.Port, p.Logger)

	d.machine = NewMachine(p.Bus, p.Logger,
		&startScreenState{d: d},
		&countdownState{d: d},
		&playingState{d: d},
		&gameOverState{d: d},
	)
	d.machine.Start()
	return d
}

// Step advances the simulation by one tick of dt:
//
//  1. drain queued hardware signals and dispatch ButtonPressed events,
//  2. advance the target timer,
//  3. advance the current state,
//  4. evaluate the terminal conditions.
//
// Draining before the timer advance is what guarantees a press in the
// same tick beats the window expiry.
func (d *Driver) Step(dt time.Duration) {
	for _, sig := range d.queue.Drain() {
		if !sig.Pressed {
			continue
		}
		ev := event.ButtonPressed{Ship: sig.Button}
		d.bus.Dispatch(ev)
		d.machine.HandleEvent(ev)
	}

	if d.machine.Current() == PhasePlaying {
		d.timer.Advance(dt)
	}

	d.machine.Update(dt)

	if d.machine.Current() == PhasePlaying {
		if outcome, over := d.terminal(); over {
			d.finish(outcome)
		}
	}
}

// terminal evaluates the three end conditions. Priority when several
// trigger on the same tick: defeat, then timeout, then victory.
func (d *Driver) terminal() (battle.Outcome, bool) {
	switch {
	case d.player.Defeated():
		return battle.OutcomeDefeat, true
	case d.elapsed >= d.matchDuration:
		return battle.OutcomeTimeout, true
	case d.fleet.AllDestroyed():
		return battle.OutcomeVictory, true
	default:
		return 0, false
	}
}

func (d *Driver) finish(outcome battle.Outcome) {
	d.outcome = outcome
	d.logger.Info("match over",
		"outcome", outcome,
		"score", d.timer.Score(),
		"elapsed", d.elapsed,
	)
	d.machine.TransitionTo(PhaseGameOver)
}

// Run drives Step from a wall-clock ticker until the context is cancelled.
// The TUI front end calls Step itself instead.
func (d *Driver) Run(ctx context.Context, tick time.Duration) {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			d.Step(now.Sub(last))
			last = now
		}
	}
}

// StartMatch is the programmatic start trigger, equivalent to pressing the
// start button on the start screen.
func (d *Driver) StartMatch() {
	if d.machine.Current() == PhaseStartScreen {
		d.machine.TransitionTo(PhaseCountdown)
	}
}

// resetMatch restores fleet, player, timer and clocks for a new round.
// Positions are kept; only health and counters reset.
func (d *Driver) resetMatch() {
	d.fleet.Reset()
	d.player.Reset()
	d.timer.Reset()
	d.elapsed = 0
}

// Phase returns the current game phase.
func (d *Driver) Phase() Phase { return d.machine.Current() }

// Fleet exposes the fleet for rendering. The front end must treat it as
// read-only.
func (d *Driver) Fleet() *battle.Fleet { return d.fleet }

// Player returns a copy of the player's health pool.
func (d *Driver) Player() battle.Player { return d.player }

// Score returns the hits landed this match.
func (d *Driver) Score() int { return d.timer.Score() }

// Window returns the open target's fleet index, or (-1, false).
func (d *Driver) Window() (int, bool) { return d.timer.Window() }

// WindowRemaining returns how much of the open mole window is left.
func (d *Driver) WindowRemaining() time.Duration { return d.timer.Remaining() }

// TimeLeft returns the remaining match time while Playing.
func (d *Driver) TimeLeft() time.Duration {
	if left := d.matchDuration - d.elapsed; left > 0 {
		return left
	}
	return 0
}

// CountdownRemaining returns the time left in the pre-match countdown.
func (d *Driver) CountdownRemaining() time.Duration {
	if d.countdownLeft > 0 {
		return d.countdownLeft
	}
	return 0
}

// Outcome returns the terminal classification once the phase is GameOver.
func (d *Driver) Outcome() battle.Outcome { return d.outcome }

// StartButton returns the dedicated start button index.
func (d *Driver) StartButton() int { return d.startButton }

// setIndicator and setAllIndicators are best-effort: indicator failures
// are logged and never abort a transition.
func (d *Driver) setIndicator(button int, on bool) {
	if err := d.port.SetIndicator(button, on); err != nil {
		d.logger.Warn("indicator update failed", "button", button, "error", err)
	}
}

func (d *Driver) setAllIndicators(on bool) {
	if err := d.port.SetAllIndicators(on); err != nil {
		d.logger.Warn("indicator update failed", "error", err)
	}
}
