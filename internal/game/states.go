package game

import (
	"math"
	"time"

	"github.com/arcade-cab/whackapirate/internal/event"
)

// startScreenState waits for the dedicated start button. Entering it
// resets the match so the cabinet is always ready for the next player.
type startScreenState struct {
	d *Driver
}

func (s *startScreenState) Phase() Phase { return PhaseStartScreen }

func (s *startScreenState) OnEnter() {
	s.d.resetMatch()
	s.d.setAllIndicators(false)
	s.d.setIndicator(s.d.startButton, true)
	s.d.bus.Dispatch(event.StartScreen{})
}

func (s *startScreenState) OnExit() {
	s.d.setIndicator(s.d.startButton, false)
}

func (s *startScreenState) HandleEvent(ev event.Event) {
	press, ok := ev.(event.ButtonPressed)
	if !ok {
		return
	}
	if press.Ship == s.d.startButton {
		s.d.machine.TransitionTo(PhaseCountdown)
	}
}

func (s *startScreenState) Update(time.Duration) {}

// countdownState runs the fixed pre-match countdown, flashing one button
// per remaining second the way the cabinet's LED sequence does.
type countdownState struct {
	d         *Driver
	lastWhole int
}

func (s *countdownState) Phase() Phase { return PhaseCountdown }

func (s *countdownState) OnEnter() {
	s.d.countdownLeft = s.d.countdown
	s.lastWhole = 0
	s.announce(wholeSeconds(s.d.countdownLeft))
}

func (s *countdownState) OnExit() {
	s.d.countdownLeft = 0
	s.d.setAllIndicators(false)
}

// HandleEvent ignores all input: presses during the countdown do nothing.
func (s *countdownState) HandleEvent(event.Event) {}

func (s *countdownState) Update(dt time.Duration) {
	s.d.countdownLeft -= dt
	if s.d.countdownLeft <= 0 {
		s.d.machine.TransitionTo(PhasePlaying)
		return
	}
	if whole := wholeSeconds(s.d.countdownLeft); whole != s.lastWhole {
		s.announce(whole)
	}
}

func (s *countdownState) announce(whole int) {
	if s.lastWhole > 0 {
		s.d.setIndicator(s.lastWhole-1, false)
	}
	s.lastWhole = whole
	if whole > 0 && whole <= s.d.buttons {
		s.d.setIndicator(whole-1, true)
	}
	s.d.bus.Dispatch(event.CountdownTick{Remaining: whole})
}

func wholeSeconds(d time.Duration) int {
	return int(math.Ceil(d.Seconds()))
}

// playingState is the active match: the target timer runs and button
// presses are handed to it. The match clock only advances here.
type playingState struct {
	d *Driver
}

func (s *playingState) Phase() Phase { return PhasePlaying }

func (s *playingState) OnEnter() {
	s.d.elapsed = 0
	s.d.timer.Open()
}

// OnExit cancels the target timer so no further windows open once the
// match leaves Playing.
func (s *playingState) OnExit() {
	s.d.timer.Cancel()
}

func (s *playingState) HandleEvent(ev event.Event) {
	if press, ok := ev.(event.ButtonPressed); ok {
		s.d.timer.Press(press.Ship)
	}
}

func (s *playingState) Update(dt time.Duration) {
	s.d.elapsed += dt
}

// gameOverState shows the result, kicks off outcome reporting and waits
// for an acknowledgment press once a short cooldown has passed.
type gameOverState struct {
	d        *Driver
	cooldown time.Duration
}

func (s *gameOverState) Phase() Phase { return PhaseGameOver }

func (s *gameOverState) OnEnter() {
	s.cooldown = s.d.gameOverCooldown
	s.d.setAllIndicators(true)

	score := s.d.timer.Score()
	outcome := s.d.outcome
	s.d.bus.Dispatch(event.GameOver{Score: score, Outcome: outcome})
	if s.d.reporter != nil {
		s.d.reporter.ReportOutcome(score, outcome)
	}
}

func (s *gameOverState) OnExit() {
	s.d.setAllIndicators(false)
}

func (s *gameOverState) HandleEvent(ev event.Event) {
	if _, ok := ev.(event.ButtonPressed); !ok {
		return
	}
	if s.cooldown <= 0 {
		s.d.machine.TransitionTo(PhaseStartScreen)
	}
}

func (s *gameOverState) Update(dt time.Duration) {
	if s.cooldown > 0 {
		s.cooldown -= dt
	}
}
