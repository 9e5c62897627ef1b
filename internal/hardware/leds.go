package hardware

import (
	"fmt"
	"os"
	"sync"
)

// Indicator color when lit, matching the cabinet's green mole lights.
var litPixel = [3]byte{0, 255, 0} // b, g, r

// ledStrip drives an APA102-style strip over a SPI device file. Each
// button owns a fixed run of pixels.
type ledStrip struct {
	mu              sync.Mutex
	dev             *os.File
	buttons         int
	pixelsPerButton int
	pixels          [][3]byte // b, g, r per pixel
}

func openLEDStrip(path string, buttons, pixelsPerButton int) (*ledStrip, error) {
	dev, err := os.OpenFile(path, os.O_WRONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open LED device %s: %v", ErrHardware, path, err)
	}
	return &ledStrip{
		dev:             dev,
		buttons:         buttons,
		pixelsPerButton: pixelsPerButton,
		pixels:          make([][3]byte, buttons*pixelsPerButton),
	}, nil
}

func (l *ledStrip) setButton(button int, on bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	start := button * l.pixelsPerButton
	for i := start; i < start+l.pixelsPerButton; i++ {
		if on {
			l.pixels[i] = litPixel
		} else {
			l.pixels[i] = [3]byte{}
		}
	}
	return l.show()
}

func (l *ledStrip) setAll(on bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.pixels {
		if on {
			l.pixels[i] = litPixel
		} else {
			l.pixels[i] = [3]byte{}
		}
	}
	return l.show()
}

// show writes the full frame: start frame, one LED frame per pixel at a
// quarter brightness, end frame. Callers hold the mutex.
func (l *ledStrip) show() error {
	const brightness = 0xE0 | 8 // global brightness bits, ~25%

	frame := make([]byte, 0, 4+len(l.pixels)*4+4)
	frame = append(frame, 0, 0, 0, 0)
	for _, p := range l.pixels {
		frame = append(frame, brightness, p[0], p[1], p[2])
	}
	frame = append(frame, 0xFF, 0xFF, 0xFF, 0xFF)

	if _, err := l.dev.Write(frame); err != nil {
		return fmt.Errorf("%w: write LED frame: %v", ErrHardware, err)
	}
	return nil
}

func (l *ledStrip) close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dev.Close()
}
