package game

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/arcade-cab/whackapirate/internal/battle"
	"github.com/arcade-cab/whackapirate/internal/event"
	"github.com/arcade-cab/whackapirate/internal/hardware"
)

// TargetTimer owns the mole window: the bounded interval during which the
// active ship can be struck. At most one window is open at a time, and it
// always belongs to the first non-destroyed ship in the fleet.
//
// The driver guarantees that queued presses reach Press before Advance
// runs in the same tick, so a press always beats that tick's expiry.
type TargetTimer struct {
	bus    *event.Dispatcher
	port   hardware.Port
	logger *log.Logger

	fleet  *battle.Fleet
	player *battle.Player

	duration     time.Duration
	hitDamage    int
	hitHeal      float64
	escapeDamage float64

	open    bool
	ship    int
	elapsed time.Duration
	hits    int
}

// TimerConfig carries the validated constants the timer needs.
type TimerConfig struct {
	Window       time.Duration
	HitDamage    int
	HitHeal      float64
	EscapeDamage float64
}

// NewTargetTimer creates a timer over the given fleet and player.
func NewTargetTimer(cfg TimerConfig, fleet *battle.Fleet, player *battle.Player,
	bus *event.Dispatcher, port hardware.Port, logger *log.Logger) *TargetTimer {
	return &TargetTimer{
		bus:          bus,
		port:         port,
		logger:       logger,
		fleet:        fleet,
		player:       player,
		duration:     cfg.Window,
		hitDamage:    cfg.HitDamage,
		hitHeal:      cfg.HitHeal,
		escapeDamage: cfg.EscapeDamage,
	}
}

// Open opens a window for the first non-destroyed ship and lights its
// button. It reports false if the fleet is fully destroyed, in which case
// no window opens.
func (t *TargetTimer) Open() bool {
	idx, ok := t.fleet.ActiveTarget()
	if !ok {
		return false
	}
	t.open = true
	t.ship = idx
	t.elapsed = 0
	t.setIndicator(idx, true)
	t.bus.Dispatch(event.TargetOpened{Ship: idx})
	return true
}

// Press handles a button press. Presses that do not match the currently
// open target are ignored outright: only the single active mole is
// interactible. Repeated presses after the window closed have no effect.
func (t *TargetTimer) Press(button int) {
	if !t.open || button != t.ship {
		return
	}

	idx := t.ship
	ship := &t.fleet.Ships[idx]
	destroyed := ship.Damage(t.hitDamage)
	t.player.Heal(t.hitHeal)
	t.hits++
	t.close()

	t.bus.Dispatch(event.PlayerHit{Ship: idx, Score: t.hits})
	if destroyed {
		t.logger.Info("ship destroyed", "ship", ship.Class)
		t.bus.Dispatch(event.ShipDestroyed{Ship: idx, Name: ship.Class.String()})
	}

	t.Open()
}

// Advance ages the open window by dt. A window older than its duration is
// an escape: the player takes damage, the window closes and the next one
// opens if any target remains.
func (t *TargetTimer) Advance(dt time.Duration) {
	if !t.open {
		return
	}
	t.elapsed += dt
	if t.elapsed <= t.duration {
		return
	}

	idx := t.ship
	t.close()
	t.bus.Dispatch(event.MoleEscaped{Ship: idx})
	t.player.Damage(t.escapeDamage)

	t.Open()
}

// Cancel closes any open window without side effects. Called when leaving
// Playing so no further windows open.
func (t *TargetTimer) Cancel() {
	if t.open {
		t.close()
	}
}

// Reset clears the hit count and any open window for a new match.
func (t *TargetTimer) Reset() {
	t.Cancel()
	t.hits = 0
}

// Score returns the number of hits landed this match.
func (t *TargetTimer) Score() int {
	return t.hits
}

// Window returns the open target's fleet index, or (-1, false) when no
// window is open.
func (t *TargetTimer) Window() (int, bool) {
	if !t.open {
		return -1, false
	}
	return t.ship, true
}

// Remaining returns how much of the open window is left.
func (t *TargetTimer) Remaining() time.Duration {
	if !t.open {
		return 0
	}
	if t.elapsed >= t.duration {
		return 0
	}
	return t.duration - t.elapsed
}

func (t *TargetTimer) close() {
	t.setIndicator(t.ship, false)
	t.open = false
}

// setIndicator is best-effort: indicator failures are hardware errors,
// logged and never propagated into the battle model.
func (t *TargetTimer) setIndicator(button int, on bool) {
	if err := t.port.SetIndicator(button, on); err != nil {
		t.logger.Warn("indicator update failed", "button", button, "error", err)
	}
}
