package hardware

import (
	"errors"
	"testing"
)

func TestSimPortInjectAndPoll(t *testing.T) {
	sim := NewSimPort(9)

	sim.Inject(3)
	sim.Inject(7)

	signals, err := sim.Poll()
	if err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if len(signals) != 2 {
		t.Fatalf("got %d signals, want 2", len(signals))
	}
	if signals[0].Button != 3 || !signals[0].Pressed {
		t.Errorf("first signal = %+v", signals[0])
	}
	if signals[1].Button != 7 {
		t.Errorf("second signal = %+v", signals[1])
	}

	// Polling again yields nothing.
	signals, _ = sim.Poll()
	if len(signals) != 0 {
		t.Errorf("second poll returned %d signals", len(signals))
	}
}

func TestSimPortIgnoresOutOfRangeInject(t *testing.T) {
	sim := NewSimPort(9)

	sim.Inject(-1)
	sim.Inject(9)

	signals, _ := sim.Poll()
	if len(signals) != 0 {
		t.Errorf("out-of-range injects produced %d signals", len(signals))
	}
}

func TestSimPortFailNextOrdering(t *testing.T) {
	sim := NewSimPort(9)
	errBoom := errors.New("boom")
	errBang := errors.New("bang")

	sim.Inject(0)
	sim.FailNext(errBoom, errBang)

	if _, err := sim.Poll(); !errors.Is(err, errBoom) {
		t.Errorf("first poll error = %v, want boom", err)
	}
	if _, err := sim.Poll(); !errors.Is(err, errBang) {
		t.Errorf("second poll error = %v, want bang", err)
	}

	// After the queued failures the pending signal comes through.
	signals, err := sim.Poll()
	if err != nil {
		t.Fatalf("third poll: %v", err)
	}
	if len(signals) != 1 || signals[0].Button != 0 {
		t.Errorf("signals after failures = %+v", signals)
	}
}

func TestSimPortIndicators(t *testing.T) {
	sim := NewSimPort(3)

	if err := sim.SetIndicator(1, true); err != nil {
		t.Fatal(err)
	}
	got := sim.Indicators()
	if got[0] || !got[1] || got[2] {
		t.Errorf("indicators = %v, want [false true false]", got)
	}

	if err := sim.SetAllIndicators(true); err != nil {
		t.Fatal(err)
	}
	for i, on := range sim.Indicators() {
		if !on {
			t.Errorf("indicator %d off after SetAllIndicators(true)", i)
		}
	}
}

func TestSimPortHealthTracksClose(t *testing.T) {
	sim := NewSimPort(9)

	if got := sim.HealthCheck(); got != HealthOK {
		t.Errorf("health = %v, want ok", got)
	}
	if err := sim.Close(); err != nil {
		t.Fatal(err)
	}
	if got := sim.HealthCheck(); got != HealthFailed {
		t.Errorf("health after close = %v, want failed", got)
	}
}
