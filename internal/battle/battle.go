// Package battle holds the combat data model: the enemy fleet, the player's
// health pool and the mutations the game applies to them. It is pure logic
// with no I/O, so every invariant is checkable in isolation.
package battle

import (
	"math"
	"math/rand"
)

// PlayerMaxHealth is the fortress health pool at the start of a match.
const PlayerMaxHealth = 10.0

// ShipClass enumerates the hull classes in the enemy fleet.
type ShipClass int

const (
	Sloop ShipClass = iota
	Brigantine
	Frigate
	ManOfWar
	Dreadnought
)

func (c ShipClass) String() string {
	switch c {
	case Sloop:
		return "Sloop"
	case Brigantine:
		return "Brigantine"
	case Frigate:
		return "Frigate"
	case ManOfWar:
		return "Man-of-War"
	case Dreadnought:
		return "Dreadnought"
	default:
		return "Unknown"
	}
}

// Condition is the coarse hull state used by the front end to pick a
// full / half / destroyed visual.
type Condition int

const (
	ConditionFull Condition = iota
	ConditionHalf
	ConditionDestroyed
)

// Position is a fixed 2D battle coordinate assigned at fleet creation.
type Position struct {
	X, Y int
}

// Ship is one enemy vessel. Ships are never removed from the fleet, only
// marked destroyed.
type Ship struct {
	Class     ShipClass
	MaxHealth int
	Health    int
	Pos       Position
	Destroyed bool
}

// Damage applies hit damage, clamping health at zero. It reports whether
// this call destroyed the ship.
func (s *Ship) Damage(amount int) bool {
	if s.Destroyed || amount <= 0 {
		return false
	}
	s.Health -= amount
	if s.Health <= 0 {
		s.Health = 0
		s.Destroyed = true
		return true
	}
	return false
}

// Condition reports the hull state: destroyed, half (at or below half
// health) or full.
func (s *Ship) Condition() Condition {
	switch {
	case s.Destroyed:
		return ConditionDestroyed
	case s.Health*2 <= s.MaxHealth:
		return ConditionHalf
	default:
		return ConditionFull
	}
}

// Fleet is the ordered sequence of enemy ships. Order is significant: it
// determines targeting priority. Size and membership are fixed once the
// match starts.
type Fleet struct {
	Ships []Ship
}

// ActiveTarget returns the index of the first non-destroyed ship, or
// (-1, false) if the fleet is fully destroyed.
func (f *Fleet) ActiveTarget() (int, bool) {
	for i := range f.Ships {
		if !f.Ships[i].Destroyed {
			return i, true
		}
	}
	return -1, false
}

// AllDestroyed reports whether no ship remains afloat.
func (f *Fleet) AllDestroyed() bool {
	_, ok := f.ActiveTarget()
	return !ok
}

// Reset restores every ship to full health without changing positions.
// Called between matches.
func (f *Fleet) Reset() {
	for i := range f.Ships {
		f.Ships[i].Health = f.Ships[i].MaxHealth
		f.Ships[i].Destroyed = false
	}
}

// Player is the defended entity: a single health pool. The original README
// calls it both a fortress and a ship; behaviorally it is one thing.
type Player struct {
	Health    float64
	MaxHealth float64
}

// NewPlayer returns a player at full health.
func NewPlayer() Player {
	return Player{Health: PlayerMaxHealth, MaxHealth: PlayerMaxHealth}
}

// Damage reduces health, clamping at zero. Reports whether the player is
// now defeated.
func (p *Player) Damage(amount float64) bool {
	p.Health -= amount
	if p.Health <= 0 {
		p.Health = 0
		return true
	}
	return false
}

// Heal raises health, clamped to the maximum.
func (p *Player) Heal(amount float64) {
	p.Health = math.Min(p.Health+amount, p.MaxHealth)
}

// Defeated reports whether the health pool is exhausted.
func (p *Player) Defeated() bool {
	return p.Health <= 0
}

// Reset restores full health between matches.
func (p *Player) Reset() {
	p.Health = p.MaxHealth
}

// ShipSpec describes one fleet slot for fleet construction.
type ShipSpec struct {
	Class     ShipClass
	MaxHealth int
}

// The battle area is a fixed virtual canvas; front ends scale it to their
// own coordinates.
const (
	AreaWidth  = 800
	AreaHeight = 600

	layoutEdgeMargin = 50
	shipExtent       = 96
)

// NewFleet builds a fleet from the given specs and assigns each ship a
// fixed, non-overlapping position inside the width×height battle area.
// The same seed always yields the same layout.
func NewFleet(specs []ShipSpec, seed int64, width, height int) *Fleet {
	f := &Fleet{Ships: make([]Ship, len(specs))}
	rng := rand.New(rand.NewSource(seed))

	minDistance := min(width, height) / 3
	var placed []Position
	for i, spec := range specs {
		f.Ships[i] = Ship{
			Class:     spec.Class,
			MaxHealth: spec.MaxHealth,
			Health:    spec.MaxHealth,
			Pos:       placePosition(rng, width, height, minDistance, placed),
		}
		placed = append(placed, f.Ships[i].Pos)
	}
	return f
}

// placePosition picks a coordinate away from the center that keeps clear of
// every already-placed ship. After enough failed attempts it falls back to
// a corner position rather than spinning forever.
func placePosition(rng *rand.Rand, width, height, minDistance int, placed []Position) Position {
	centerX := width / 2
	centerY := height / 2
	maxDistance := min(centerX, centerY) - layoutEdgeMargin
	if maxDistance <= minDistance {
		maxDistance = minDistance + 1
	}

	for range 1000 {
		angle := rng.Float64() * 2 * math.Pi
		distance := float64(minDistance) + rng.Float64()*float64(maxDistance-minDistance)

		x := int(float64(centerX) + distance*math.Cos(angle))
		y := int(float64(centerY) + distance*math.Sin(angle))
		pos := Position{X: x, Y: y}

		if x <= layoutEdgeMargin || x >= width-layoutEdgeMargin ||
			y <= layoutEdgeMargin || y >= height-layoutEdgeMargin {
			continue
		}
		if !overlaps(pos, placed) {
			return pos
		}
	}
	return Position{X: width - 2*layoutEdgeMargin, Y: 2 * layoutEdgeMargin}
}

func overlaps(pos Position, placed []Position) bool {
	for _, other := range placed {
		dx := float64(pos.X - other.X)
		dy := float64(pos.Y - other.Y)
		if math.Hypot(dx, dy) < shipExtent {
			return true
		}
	}
	return false
}
