package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/arcade-cab/whackapirate/internal/battle"
	"github.com/arcade-cab/whackapirate/internal/game"
)

// Grid layout constants
const (
	gridColumns  = 3
	healthBarLen = 20
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("1"))

	litStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))

	victoryStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	defeatStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	timeoutStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))

	healthStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	hurtStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// renderView renders the screen for the driver's current phase.
func renderView(m Model) string {
	switch m.driver.Phase() {
	case game.PhaseStartScreen:
		return renderStartScreen(m)
	case game.PhaseCountdown:
		return renderCountdown(m)
	case game.PhasePlaying:
		return renderPlaying(m)
	case game.PhaseGameOver:
		return renderGameOver(m)
	}
	return ""
}

func renderStartScreen(m Model) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("WHACK-A-PIRATE"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Press %s to start", litStyle.Render(fmt.Sprintf("[%d]", m.driver.StartButton()+1))))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Smack the pirates before they duck back down.\nKeys 1-9 are the cabinet buttons. Space works too. Q quits."))

	return centerBlock(boxStyle.Render(b.String()), m.width, m.height)
}

func renderCountdown(m Model) string {
	secs := int(math.Ceil(m.driver.CountdownRemaining().Seconds()))
	if secs < 1 {
		secs = 1
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("GET READY"))
	b.WriteString("\n\n")
	b.WriteString(litStyle.Render(fmt.Sprintf("    %d    ", secs)))

	return centerBlock(boxStyle.Render(b.String()), m.width, m.height)
}

func renderPlaying(m Model) string {
	var b strings.Builder

	player := m.driver.Player()
	b.WriteString(fmt.Sprintf("Score %s   Time %s\n",
		titleStyle.Render(fmt.Sprintf("%d", m.driver.Score())),
		formatClock(m.driver.TimeLeft())))
	b.WriteString(fmt.Sprintf("Crew  %s\n\n", renderBar(player.Health, player.MaxHealth)))

	b.WriteString(renderGrid(m))
	b.WriteString("\n")
	b.WriteString(renderFleet(m.driver.Fleet()))

	if lines := m.feed.Lines(); len(lines) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(strings.Join(lines, "\n")))
	}

	return b.String()
}

func renderGameOver(m Model) string {
	var style lipgloss.Style
	var banner string
	switch m.driver.Outcome() {
	case battle.OutcomeVictory:
		style, banner = victoryStyle, "VICTORY! The fleet is at the bottom of the sea."
	case battle.OutcomeDefeat:
		style, banner = defeatStyle, "DEFEAT! The crew couldn't take any more."
	default:
		style, banner = timeoutStyle, "TIME'S UP!"
	}

	var b strings.Builder
	b.WriteString(style.Render(banner))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Final score: %s\n\n", titleStyle.Render(fmt.Sprintf("%d", m.driver.Score()))))
	b.WriteString(dimStyle.Render("Press any button to return to the start screen."))

	return centerBlock(boxStyle.Render(b.String()), m.width, m.height)
}

// renderGrid draws the button grid. The open target's button shows the
// pirate; buttons whose ship is already sunk are dimmed out.
func renderGrid(m Model) string {
	open, hasOpen := m.driver.Window()
	ships := m.driver.Fleet().Ships

	var b strings.Builder
	for i := 0; i < m.hw.Buttons; i++ {
		cell := fmt.Sprintf(" [%d] ", i+1)
		switch {
		case hasOpen && i == open:
			cell = moleStyle.Render(fmt.Sprintf(" ☠%d  ", i+1))
		case i < len(ships) && ships[i].Destroyed:
			cell = dimStyle.Render(cell)
		}
		b.WriteString(cell)

		if (i+1)%gridColumns == 0 {
			b.WriteString("\n")
		}
	}
	if m.hw.Buttons%gridColumns != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// renderFleet lists each ship with its hull bar and condition.
func renderFleet(fleet *battle.Fleet) string {
	var b strings.Builder
	for i := range fleet.Ships {
		ship := &fleet.Ships[i]

		label := fmt.Sprintf("%-12s", ship.Class.String())
		switch ship.Condition() {
		case battle.ConditionDestroyed:
			b.WriteString(dimStyle.Render(fmt.Sprintf("%s sunk", label)))
		case battle.ConditionHalf:
			b.WriteString(fmt.Sprintf("%s %s", label, hurtStyle.Render(hullBar(ship.Health, ship.MaxHealth))))
		default:
			b.WriteString(fmt.Sprintf("%s %s", label, healthStyle.Render(hullBar(ship.Health, ship.MaxHealth))))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderBar draws the crew health bar, coloring it red when low.
func renderBar(current, max float64) string {
	bar := hullBarF(current, max)
	if current*2 <= max {
		return hurtStyle.Render(bar)
	}
	return healthStyle.Render(bar)
}

func hullBar(current, max int) string {
	return hullBarF(float64(current), float64(max))
}

func hullBarF(current, max float64) string {
	if max <= 0 {
		return ""
	}
	filled := int(math.Round(current / max * healthBarLen))
	if filled < 0 {
		filled = 0
	}
	if filled > healthBarLen {
		filled = healthBarLen
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", healthBarLen-filled)
}

func formatClock(d time.Duration) string {
	secs := int(math.Ceil(d.Seconds()))
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// centerBlock centers a rendered block in the terminal.
func centerBlock(block string, width, height int) string {
	if width <= 0 || height <= 0 {
		return block
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, block)
}
