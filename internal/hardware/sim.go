package hardware

import (
	"sync"
)

// SimPort is the simulated hardware implementation. The front end (or a
// test) injects signals; Poll hands them back. Indicator state is kept in
// memory so the TUI can render the virtual lights.
type SimPort struct {
	mu         sync.Mutex
	buttons    int
	pending    []Signal
	indicators []bool
	failures   []error
	closed     bool
}

// NewSimPort creates a simulated port with the given button count.
func NewSimPort(buttons int) *SimPort {
	return &SimPort{
		buttons:    buttons,
		indicators: make([]bool, buttons),
	}
}

// Inject queues a press signal for the given button, as if the physical
// button had been struck.
func (s *SimPort) Inject(button int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if button < 0 || button >= s.buttons {
		return
	}
	s.pending = append(s.pending, Signal{Button: button, Pressed: true})
}

// FailNext makes the next calls to Poll return the given errors, one per
// call, before normal operation resumes. Used to exercise retry/backoff.
func (s *SimPort) FailNext(errs ...error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, errs...)
}

// Poll returns and clears all injected signals.
func (s *SimPort) Poll() ([]Signal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.failures) > 0 {
		err := s.failures[0]
		s.failures = s.failures[1:]
		return nil, err
	}

	out := s.pending
	s.pending = nil
	return out, nil
}

// SetIndicator records the light state for one button.
func (s *SimPort) SetIndicator(button int, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if button < 0 || button >= s.buttons {
		return nil
	}
	s.indicators[button] = on
	return nil
}

// SetAllIndicators records the light state for the whole bank.
func (s *SimPort) SetAllIndicators(on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.indicators {
		s.indicators[i] = on
	}
	return nil
}

// Indicators returns a copy of the current light states.
func (s *SimPort) Indicators() []bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]bool, len(s.indicators))
	copy(out, s.indicators)
	return out
}

// HealthCheck reports failed once closed, ok otherwise.
func (s *SimPort) HealthCheck() Health {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return HealthFailed
	}
	return HealthOK
}

// Close marks the port closed.
func (s *SimPort) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
