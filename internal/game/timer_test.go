package game

import (
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arcade-cab/whackapirate/internal/battle"
	"github.com/arcade-cab/whackapirate/internal/event"
	"github.com/arcade-cab/whackapirate/internal/hardware"
)

func newTestTimer() (*TargetTimer, *battle.Fleet, *battle.Player, *hardware.SimPort) {
	logger := log.New(io.Discard)
	bus := event.NewDispatcher(logger)
	sim := hardware.NewSimPort(9)

	fleet := battle.NewFleet([]battle.ShipSpec{
		{Class: battle.Sloop, MaxHealth: 2},
		{Class: battle.Frigate, MaxHealth: 3},
	}, 1, battle.AreaWidth, battle.AreaHeight)
	player := battle.NewPlayer()

	timer := NewTargetTimer(TimerConfig{
		Window:       750 * time.Millisecond,
		HitDamage:    1,
		HitHeal:      0.5,
		EscapeDamage: 1,
	}, fleet, &player, bus, sim, logger)

	return timer, fleet, &player, sim
}

func TestTimerPressBeforeOpenIsIgnored(t *testing.T) {
	timer, fleet, player, _ := newTestTimer()

	timer.Press(0)

	if timer.Score() != 0 {
		t.Errorf("score = %d, want 0", timer.Score())
	}
	if fleet.Ships[0].Health != 2 {
		t.Errorf("ship damaged without an open window")
	}
	if player.Health != battle.PlayerMaxHealth {
		t.Errorf("player changed without an open window")
	}
}

func TestTimerOpenLightsActiveButton(t *testing.T) {
	timer, _, _, sim := newTestTimer()

	if !timer.Open() {
		t.Fatal("Open returned false with ships afloat")
	}
	if !sim.Indicators()[0] {
		t.Error("active button not lit")
	}

	idx, open := timer.Window()
	if !open || idx != 0 {
		t.Errorf("Window = (%d, %v), want (0, true)", idx, open)
	}
}

func TestTimerOpenFailsWhenFleetDestroyed(t *testing.T) {
	timer, fleet, _, _ := newTestTimer()
	for i := range fleet.Ships {
		fleet.Ships[i].Destroyed = true
	}

	if timer.Open() {
		t.Error("Open succeeded over a destroyed fleet")
	}
	if _, open := timer.Window(); open {
		t.Error("window reported open")
	}
}

func TestTimerAdvanceToleratesExactBoundary(t *testing.T) {
	timer, _, player, _ := newTestTimer()
	timer.Open()

	// elapsed equal to the window is not yet an escape.
	timer.Advance(750 * time.Millisecond)
	if _, open := timer.Window(); !open {
		t.Fatal("window closed at exactly the boundary")
	}
	if player.Health != battle.PlayerMaxHealth {
		t.Errorf("boundary advance damaged the player")
	}

	timer.Advance(time.Millisecond)
	if player.Health != battle.PlayerMaxHealth-1 {
		t.Errorf("player health after escape = %v", player.Health)
	}
}

func TestTimerMovesToNextShipAfterSinking(t *testing.T) {
	timer, fleet, _, _ := newTestTimer()
	timer.Open()

	timer.Press(0)
	timer.Press(0)

	if !fleet.Ships[0].Destroyed {
		t.Fatal("first ship not destroyed after two hits")
	}
	idx, open := timer.Window()
	if !open || idx != 1 {
		t.Fatalf("window after sinking = (%d, %v), want (1, true)", idx, open)
	}

	// The old button is no longer interactible.
	timer.Press(0)
	if timer.Score() != 2 {
		t.Errorf("press on a sunk ship scored: %d", timer.Score())
	}
}

func TestTimerCancelClosesWithoutSideEffects(t *testing.T) {
	timer, _, player, sim := newTestTimer()
	timer.Open()

	timer.Cancel()

	if _, open := timer.Window(); open {
		t.Error("window open after Cancel")
	}
	if sim.Indicators()[0] {
		t.Error("button still lit after Cancel")
	}
	if player.Health != battle.PlayerMaxHealth {
		t.Errorf("Cancel changed player health: %v", player.Health)
	}

	// Advance after Cancel is inert.
	timer.Advance(time.Second)
	if player.Health != battle.PlayerMaxHealth {
		t.Errorf("Advance after Cancel damaged the player")
	}
}

func TestTimerResetClearsScore(t *testing.T) {
	timer, _, _, _ := newTestTimer()
	timer.Open()
	timer.Press(0)

	if timer.Score() != 1 {
		t.Fatalf("score = %d", timer.Score())
	}

	timer.Reset()
	if timer.Score() != 0 {
		t.Errorf("score after Reset = %d", timer.Score())
	}
	if _, open := timer.Window(); open {
		t.Error("window open after Reset")
	}
}

func TestTimerRemainingCountsDown(t *testing.T) {
	timer, _, _, _ := newTestTimer()

	if timer.Remaining() != 0 {
		t.Errorf("Remaining with no window = %v", timer.Remaining())
	}

	timer.Open()
	timer.Advance(300 * time.Millisecond)
	if got := timer.Remaining(); got != 450*time.Millisecond {
		t.Errorf("Remaining = %v, want 450ms", got)
	}
}
