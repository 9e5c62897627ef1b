package battle

// Outcome is the terminal classification of a finished match. Exactly one
// outcome is assigned per match. When several conditions trigger on the
// same tick the priority is Defeat, then Timeout, then Victory.
type Outcome int

const (
	OutcomeVictory Outcome = iota
	OutcomeDefeat
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}
