package event

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func newTestDispatcher() *Dispatcher {
	return NewDispatcher(log.New(io.Discard))
}

func TestDispatchRunsHandlersInSubscriptionOrder(t *testing.T) {
	d := newTestDispatcher()

	var order []int
	d.Subscribe(TypePlayerHit, func(Event) { order = append(order, 1) })
	d.Subscribe(TypePlayerHit, func(Event) { order = append(order, 2) })
	d.Subscribe(TypePlayerHit, func(Event) { order = append(order, 3) })

	d.Dispatch(PlayerHit{Ship: 0, Score: 1})

	if len(order) != 3 {
		t.Fatalf("expected 3 handlers to run, got %d", len(order))
	}
	for i, got := range order {
		if got != i+1 {
			t.Errorf("handler %d ran out of order: got %d", i, got)
		}
	}
}

func TestDispatchOnlyReachesMatchingVariant(t *testing.T) {
	d := newTestDispatcher()

	hits := 0
	presses := 0
	d.Subscribe(TypePlayerHit, func(Event) { hits++ })
	d.Subscribe(TypeButtonPressed, func(Event) { presses++ })

	d.Dispatch(ButtonPressed{Ship: 2})

	if hits != 0 {
		t.Errorf("PlayerHit handler ran for ButtonPressed event")
	}
	if presses != 1 {
		t.Errorf("ButtonPressed handler ran %d times, want 1", presses)
	}
}

func TestDispatchCarriesPayload(t *testing.T) {
	d := newTestDispatcher()

	var got PlayerHit
	d.Subscribe(TypePlayerHit, func(ev Event) {
		got = ev.(PlayerHit)
	})

	d.Dispatch(PlayerHit{Ship: 3, Score: 7})

	if got.Ship != 3 || got.Score != 7 {
		t.Errorf("payload = %+v, want Ship=3 Score=7", got)
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	d := newTestDispatcher()

	first := 0
	second := 0
	sub := d.Subscribe(TypeMoleEscaped, func(Event) { first++ })
	d.Subscribe(TypeMoleEscaped, func(Event) { second++ })

	d.Dispatch(MoleEscaped{Ship: 0})
	d.Unsubscribe(sub)
	d.Dispatch(MoleEscaped{Ship: 0})

	if first != 1 {
		t.Errorf("unsubscribed handler ran %d times, want 1", first)
	}
	if second != 2 {
		t.Errorf("remaining handler ran %d times, want 2", second)
	}

	// Removing the same subscription again must be a no-op.
	d.Unsubscribe(sub)
	d.Dispatch(MoleEscaped{Ship: 0})
	if second != 3 {
		t.Errorf("remaining handler ran %d times after double unsubscribe, want 3", second)
	}
}

func TestHandlerPanicDoesNotStopDelivery(t *testing.T) {
	d := newTestDispatcher()

	ran := false
	d.Subscribe(TypeGameOver, func(Event) { panic("handler exploded") })
	d.Subscribe(TypeGameOver, func(Event) { ran = true })

	d.Dispatch(GameOver{Score: 5})

	if !ran {
		t.Error("handler after panicking handler did not run")
	}
}

func TestNestedDispatchCompletesDepthFirst(t *testing.T) {
	d := newTestDispatcher()

	var trace []string
	d.Subscribe(TypePlayerHit, func(Event) {
		trace = append(trace, "hit-begin")
		d.Dispatch(ShipDestroyed{Ship: 0, Name: "Sloop"})
		trace = append(trace, "hit-end")
	})
	d.Subscribe(TypeShipDestroyed, func(Event) {
		trace = append(trace, "destroyed")
	})

	d.Dispatch(PlayerHit{Ship: 0, Score: 1})

	want := []string{"hit-begin", "destroyed", "hit-end"}
	if len(trace) != len(want) {
		t.Fatalf("trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("trace = %v, want %v", trace, want)
		}
	}
}

func TestSubscribeDuringDispatchTakesEffectNextDispatch(t *testing.T) {
	d := newTestDispatcher()

	late := 0
	d.Subscribe(TypeStartScreen, func(Event) {
		d.Subscribe(TypeStartScreen, func(Event) { late++ })
	})

	d.Dispatch(StartScreen{})
	if late != 0 {
		t.Errorf("handler added mid-dispatch ran in the same dispatch")
	}

	d.Dispatch(StartScreen{})
	if late != 1 {
		t.Errorf("handler added mid-dispatch ran %d times on next dispatch, want 1", late)
	}
}

func TestClearDropsAllHandlers(t *testing.T) {
	d := newTestDispatcher()

	calls := 0
	d.Subscribe(TypeCountdownTick, func(Event) { calls++ })
	d.Subscribe(TypeGameOver, func(Event) { calls++ })

	d.Clear()
	d.Dispatch(CountdownTick{Remaining: 3})
	d.Dispatch(GameOver{Score: 1})

	if calls != 0 {
		t.Errorf("handlers ran after Clear: %d calls", calls)
	}
}
