// Package hardware abstracts the cabinet's physical button bank and LED
// strip behind a Port contract, with a real evdev-backed implementation and
// a simulated one for development and tests. A background poller feeds raw
// signals into a bounded hand-off queue drained by the game loop.
package hardware

import "errors"

// ErrHardware marks device-level failures. They are caught at the port
// boundary, retried, and degrade to "no input" rather than crashing.
var ErrHardware = errors.New("hardware error")

// Signal is one raw input edge from the button bank, already translated to
// a button index. The core only ever sees button indexes.
type Signal struct {
	Button  int
	Pressed bool
}

// Health is the result of a port health check.
type Health int

const (
	HealthOK Health = iota
	HealthDegraded
	HealthFailed
)

func (h Health) String() string {
	switch h {
	case HealthOK:
		return "ok"
	case HealthDegraded:
		return "degraded"
	case HealthFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Port is the hardware contract shared by the real and simulated
// implementations.
//
// Poll is non-blocking: it returns whatever signals are pending, possibly
// none, and never waits on the device. It is safe to call every frame.
type Port interface {
	Poll() ([]Signal, error)
	SetIndicator(button int, on bool) error
	SetAllIndicators(on bool) error
	HealthCheck() Health
	Close() error
}
