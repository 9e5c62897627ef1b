package hardware

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/arcade-cab/whackapirate/internal/config"
)

// Linux input event constants. The buttons are wired as keyboard keys 1-9,
// which carry key codes 2 through 10.
const (
	evKey        = 0x01
	keyCodeFirst = 2 // KEY_1

	inputEventSize = 24 // struct input_event on 64-bit
	readChunk      = inputEventSize * 64
)

// inputEvent mirrors the kernel's struct input_event layout.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// DevicePort reads button presses from a Linux input device and drives the
// cabinet's LED strip. The input fd is non-blocking, so Poll never stalls
// the frame loop.
type DevicePort struct {
	logger  *log.Logger
	buttons int

	input *os.File
	leds  *ledStrip

	mu       sync.Mutex
	readBuf  []byte
	degraded bool
}

// OpenDevice opens the configured input device and LED strip.
func OpenDevice(cfg config.HardwareConfig, logger *log.Logger) (*DevicePort, error) {
	input, err := os.OpenFile(cfg.DevicePath, os.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open input device %s: %v", ErrHardware, cfg.DevicePath, err)
	}
	if err := syscall.SetNonblock(int(input.Fd()), true); err != nil {
		input.Close()
		return nil, fmt.Errorf("%w: set non-blocking: %v", ErrHardware, err)
	}

	leds, err := openLEDStrip(cfg.LEDPath, cfg.Buttons, cfg.PixelsPerButton)
	if err != nil {
		// The cabinet stays playable without lights.
		logger.Warn("LED strip unavailable", "path", cfg.LEDPath, "error", err)
		leds = nil
	}

	logger.Info("hardware initialized", "device", cfg.DevicePath, "buttons", cfg.Buttons)
	return &DevicePort{
		logger:  logger,
		buttons: cfg.Buttons,
		input:   input,
		leds:    leds,
		readBuf: make([]byte, readChunk),
	}, nil
}

// Poll drains pending key events from the input device and translates
// press edges into button signals. Codes outside the mapped range are
// dropped at this boundary.
func (d *DevicePort) Poll() ([]Signal, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.input.Read(d.readBuf)
	if err != nil {
		if errors.Is(err, syscall.EAGAIN) || errors.Is(err, io.EOF) {
			return nil, nil
		}
		d.degraded = true
		return nil, fmt.Errorf("%w: read input device: %v", ErrHardware, err)
	}
	d.degraded = false

	var signals []Signal
	r := bytes.NewReader(d.readBuf[:n])
	for r.Len() >= inputEventSize {
		var ev inputEvent
		if err := binary.Read(r, binary.LittleEndian, &ev); err != nil {
			return signals, fmt.Errorf("%w: decode input event: %v", ErrHardware, err)
		}
		if ev.Type != evKey || ev.Value != 1 {
			continue
		}
		button := int(ev.Code) - keyCodeFirst
		if button < 0 || button >= d.buttons {
			continue
		}
		signals = append(signals, Signal{Button: button, Pressed: true})
	}
	return signals, nil
}

// SetIndicator lights or clears the pixels of one button.
func (d *DevicePort) SetIndicator(button int, on bool) error {
	if d.leds == nil {
		return nil
	}
	if button < 0 || button >= d.buttons {
		return fmt.Errorf("%w: indicator %d out of range", ErrHardware, button)
	}
	return d.leds.setButton(button, on)
}

// SetAllIndicators lights or clears the whole strip.
func (d *DevicePort) SetAllIndicators(on bool) error {
	if d.leds == nil {
		return nil
	}
	return d.leds.setAll(on)
}

// HealthCheck probes the input fd with a real non-blocking read. A
// zero-byte read would be short-circuited before the syscall and could
// never observe the device coming back. Nobody is polling while the port
// is degraded, so whatever the probe drains is stale input and is
// dropped. A passing probe clears the degraded flag.
func (d *DevicePort) HealthCheck() Health {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.input == nil {
		return HealthFailed
	}
	if _, err := d.input.Read(d.readBuf); err != nil &&
		!errors.Is(err, syscall.EAGAIN) && !errors.Is(err, io.EOF) {
		return HealthDegraded
	}
	d.degraded = false
	return HealthOK
}

// Close releases the device handles, clearing the strip first.
func (d *DevicePort) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.leds != nil {
		//nolint:errcheck // Best-effort blackout on shutdown
		d.leds.setAll(false)
		d.leds.close()
	}
	if d.input != nil {
		err := d.input.Close()
		d.input = nil
		return err
	}
	return nil
}
