// Package trigger drives the camera shutter and focus lines through a timed
// exposure sequence and publishes its progress.
package trigger

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// Pin is an output line. hal.GPIOPin satisfies it.
type Pin interface {
	Write(level bool) error
}

// Sleeper blocks for d or until ctx is done, whichever comes first.
type Sleeper func(ctx context.Context, d time.Duration) error

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithProgress sets where progress is published. Without it progress is
// kept in memory only.
func WithProgress(s ProgressStore) Option {
	return func(e *Engine) {
		if s != nil {
			e.progress = s
		}
	}
}

// WithSleeper replaces the timer used between pin transitions.
func WithSleeper(s Sleeper) Option {
	return func(e *Engine) {
		if s != nil {
			e.sleep = s
		}
	}
}

// WithReleasePulse sets how long both lines are held high, then low, when a
// run is cancelled.
func WithReleasePulse(d time.Duration) Option {
	return func(e *Engine) {
		e.releasePulse = d
	}
}

// Engine runs exposure sequences on a shutter and a focus line.
type Engine struct {
	shutter Pin
	focus   Pin

	log          *zap.Logger
	progress     ProgressStore
	sleep        Sleeper
	releasePulse time.Duration
}

// New returns an engine driving shutter and focus.
func New(shutter, focus Pin, opts ...Option) *Engine {
	e := &Engine{
		shutter:      shutter,
		focus:        focus,
		log:          zap.NewNop(),
		progress:     &MemStore{},
		sleep:        SleepContext,
		releasePulse: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Progress returns the store the engine publishes into.
func (e *Engine) Progress() ProgressStore { return e.progress }

// Run executes one sequence and blocks until it ends. The wake offset is
// added to every exposure. The last shot is followed by the offset instead
// of the interval. On normal completion the published progress is
// {Taken: shots, Remaining: 0}.
//
// When ctx is cancelled both lines are pulsed high and released low, and
// Run returns ctx.Err(). Progress is left at the last completed shot.
func (e *Engine) Run(ctx context.Context, p Parameters) error {
	t, err := p.Timing()
	if err != nil {
		return err
	}

	// Keep the timing loop on its own OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	exposure := t.Exposure + t.Offset
	n := t.Shots
	e.log.Info("sequence start",
		zap.Stringer("exposure", p.Exposure),
		zap.Int("shots", n),
		zap.Stringer("interval", p.Interval),
		zap.Stringer("offset", p.Offset),
	)

	err = e.run(ctx, n, exposure, t.Interval, t.Offset)
	if err == nil {
		e.log.Info("sequence done", zap.Int("shots", n))
		return nil
	}
	if ctx.Err() != nil {
		e.log.Warn("sequence interrupted", zap.Error(err))
		if rerr := e.Release(); rerr != nil {
			e.log.Error("release pins", zap.Error(rerr))
		}
		return ctx.Err()
	}
	// A pin failure: leave the lines released before reporting.
	_ = e.setBoth(false)
	return err
}

func (e *Engine) run(ctx context.Context, n int, exposure, interval, offset time.Duration) error {
	e.record(0, n)

	// Wake the camera.
	if err := e.focus.Write(true); err != nil {
		return fmt.Errorf("focus high: %w", err)
	}
	if err := e.sleep(ctx, offset/2); err != nil {
		return err
	}
	if err := e.focus.Write(false); err != nil {
		return fmt.Errorf("focus low: %w", err)
	}
	if err := e.sleep(ctx, offset-offset/2); err != nil {
		return err
	}

	for k := 1; k < n; k++ {
		if err := e.shoot(ctx, k, n, exposure); err != nil {
			return err
		}
		e.record(k, n-k)
		if err := e.sleep(ctx, interval); err != nil {
			return err
		}
	}

	// The last shot waits for the camera to save instead of another interval.
	if err := e.shoot(ctx, n, n, exposure); err != nil {
		return err
	}
	e.record(n, 0)
	return e.sleep(ctx, offset)
}

func (e *Engine) shoot(ctx context.Context, k, n int, exposure time.Duration) error {
	e.log.Info("shot", zap.Int("shot", k), zap.Int("of", n))
	if err := e.setBoth(true); err != nil {
		return err
	}
	if err := e.sleep(ctx, exposure); err != nil {
		return err
	}
	return e.setBoth(false)
}

func (e *Engine) setBoth(level bool) error {
	if err := e.focus.Write(level); err != nil {
		return fmt.Errorf("focus %v: %w", level, err)
	}
	if err := e.shutter.Write(level); err != nil {
		return fmt.Errorf("shutter %v: %w", level, err)
	}
	return nil
}

func (e *Engine) record(taken, remaining int) {
	if err := e.progress.Store(Progress{Taken: taken, Remaining: remaining}); err != nil {
		e.log.Warn("publish progress", zap.Int("taken", taken), zap.Error(err))
	}
}

// Release closes any exposure in progress: both lines high for the release
// pulse, then low for the same time. It ignores cancellation.
func (e *Engine) Release() error {
	e.log.Debug("release pins")
	bg := context.Background()
	errHigh := e.setBoth(true)
	_ = e.sleep(bg, e.releasePulse)
	errLow := e.setBoth(false)
	_ = e.sleep(bg, e.releasePulse)
	return errors.Join(errHigh, errLow)
}

// SleepContext is the default Sleeper.
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
