//go:build rpi || !cgo

package hal

import "errors"

const WindowAvailable = false

func RunWindow(_ HAL, _ func() error, _ int) error {
	return errors.New("window mode requires a host build with cgo (CGO_ENABLED=1)")
}
