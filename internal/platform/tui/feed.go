package tui

import (
	"fmt"

	"github.com/arcade-cab/whackapirate/internal/event"
)

// EventFeed keeps a short log of recent game events for display in the
// UI sidebar. It subscribes to the dispatcher and formats each event as
// a one-line message.
type EventFeed struct {
	bus   *event.Dispatcher
	lines []string
	depth int
	subs  []event.Subscription
}

// NewEventFeed subscribes a feed holding the last depth lines.
func NewEventFeed(bus *event.Dispatcher, depth int) *EventFeed {
	f := &EventFeed{bus: bus, depth: depth}

	f.subs = append(f.subs,
		bus.Subscribe(event.TypeTargetOpened, func(e event.Event) {
			open := e.(event.TargetOpened)
			f.push(fmt.Sprintf("pirate up on button %d", open.Ship+1))
		}),
		bus.Subscribe(event.TypePlayerHit, func(e event.Event) {
			hit := e.(event.PlayerHit)
			f.push(fmt.Sprintf("direct hit! score %d", hit.Score))
		}),
		bus.Subscribe(event.TypeMoleEscaped, func(event.Event) {
			f.push("too slow, the crew takes a hit")
		}),
		bus.Subscribe(event.TypeShipDestroyed, func(e event.Event) {
			sunk := e.(event.ShipDestroyed)
			f.push(fmt.Sprintf("%s sunk!", sunk.Name))
		}),
		bus.Subscribe(event.TypeCountdownTick, func(e event.Event) {
			tick := e.(event.CountdownTick)
			f.push(fmt.Sprintf("%d...", tick.Remaining))
		}),
		bus.Subscribe(event.TypeGameOver, func(e event.Event) {
			over := e.(event.GameOver)
			f.push(fmt.Sprintf("match over: %s, score %d", over.Outcome, over.Score))
		}),
	)

	return f
}

func (f *EventFeed) push(line string) {
	f.lines = append(f.lines, line)
	if len(f.lines) > f.depth {
		f.lines = f.lines[len(f.lines)-f.depth:]
	}
}

// Lines returns the buffered messages, oldest first.
func (f *EventFeed) Lines() []string {
	out := make([]string, len(f.lines))
	copy(out, f.lines)
	return out
}

// Close detaches the feed from the dispatcher.
func (f *EventFeed) Close() {
	for _, sub := range f.subs {
		f.bus.Unsubscribe(sub)
	}
	f.subs = nil
}
