// Package hal is the only contact point between the firmware and the board:
// the LCD framebuffer, the 5-way switch, the camera trigger lines and the
// I2C power sensors. The host build simulates all of them; the rpi build
// drives the real hardware through periph.io.
package hal

import (
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrQuit is returned by an app step to end the run loop cleanly.
	ErrQuit = errors.New("quit")
)

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Direction maps a key press to the logical direction pages are bound to.
// Releases and unmapped keys give "".
func (e KeyEvent) Direction() string {
	if !e.Press {
		return ""
	}
	switch e.Code {
	case KeyUp:
		return "up"
	case KeyDown:
		return "down"
	case KeyLeft:
		return "left"
	case KeyRight:
		return "right"
	case KeyEnter:
		return "select"
	case KeyEscape, KeyBackspace:
		return "back"
	}
	switch e.Rune {
	case 'k', 'w':
		return "up"
	case 'j', 's':
		return "down"
	case 'h', 'a':
		return "left"
	case 'l', 'd':
		return "right"
	case ' ', '\r', '\n':
		return "select"
	case 'q', 'b':
		return "back"
	}
	return ""
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// FuelGauge reads the battery cell.
type FuelGauge interface {
	// StateOfCharge is in percent.
	StateOfCharge() (float64, error)
	// CellVoltage is in volts.
	CellVoltage() (float64, error)
}

// PowerMeter reads the supply rail.
type PowerMeter interface {
	// Current is in milliamps.
	Current() (float64, error)
	// Power is in milliwatts.
	Power() (float64, error)
}

// Sensors are the power sensors found on the I2C bus. A sensor that did
// not answer its probe is nil.
type Sensors struct {
	Gauge     FuelGauge
	Meter     PowerMeter
	GaugeAddr uint16
	MeterAddr uint16
}

// Unavailable reports whether neither sensor answered.
func (s Sensors) Unavailable() bool { return s.Gauge == nil && s.Meter == nil }

// Addresses lists the probed addresses as "0x36, 0x42".
func (s Sensors) Addresses() string {
	return fmt.Sprintf("0x%02x, 0x%02x", s.GaugeAddr, s.MeterAddr)
}

// HAL provides the only contact point between the firmware and the outside
// world.
type HAL interface {
	Display() Display
	Input() Input
	// Pins returns the shutter and focus lines, configured as outputs and
	// driven low.
	Pins() (shutter, focus GPIOPin)
	Sensors() Sensors
	// Close drives the trigger lines low and releases the devices.
	Close() error
}
