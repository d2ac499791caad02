package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64
	// Terminal reads arrow keys, enter and escape from a raw-mode stdin
	// when stdin is a terminal.
	Terminal bool
}

// RunHeadless calls step at cfg.Hz without opening a window. It returns nil
// when step returns ErrQuit or after cfg.Ticks ticks, and ctx.Err() when
// ctx ends.
func RunHeadless(ctx context.Context, h HAL, step func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if cfg.Terminal {
		if kp, ok := h.Input().Keyboard().(keyPusher); ok {
			restore, err := attachTerminal(ctx, kp, cancel)
			if err != nil {
				return err
			}
			defer restore()
		}
	}

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
