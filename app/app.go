// Package app wires the HAL to the page manager and exposes the per-tick
// step the window and headless runners drive.
package app

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"astrotimer/hal"
	"astrotimer/internal/config"
	"astrotimer/internal/pages"
	"astrotimer/internal/ui"

	"go.uber.org/zap"
)

// ErrPanic is returned by Step after a dispatched action panicked.
var ErrPanic = errors.New("app: panic")

// DefaultSplash is how long the splash screen stays up.
const DefaultSplash = 1500 * time.Millisecond

// Config tunes an App.
type Config struct {
	// Splash is how long the splash screen is shown before the start
	// screen. Zero starts at once.
	Splash time.Duration
	// Pages are passed on to the page manager.
	Pages []pages.Option
	// Now replaces the wall clock for the splash timer.
	Now func() time.Time
}

// App is one running instance of the firmware.
type App struct {
	h       hal.HAL
	cfg     *config.Config
	log     *zap.Logger
	ctx     context.Context
	surface *ui.Surface
	env     *ui.Env
	m       *pages.Manager
	keys    <-chan hal.KeyEvent
	now     func() time.Time

	startAt time.Time
	started bool
	failed  bool
}

// New builds the surface and every screen, then shows the splash. ctx
// bounds the background work of the screens and the battery monitor.
func New(ctx context.Context, h hal.HAL, cfg *config.Config, log *zap.Logger, ac Config) (*App, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fb := h.Display().Framebuffer()
	if fb == nil {
		return nil, fmt.Errorf("app: no framebuffer: %w", hal.ErrNotImplemented)
	}
	now := ac.Now
	if now == nil {
		now = time.Now
	}

	surface := ui.NewSurface(fb)
	env := &ui.Env{
		Surface: surface,
		Fonts:   ui.DefaultFonts(),
		Assets:  ui.NewAssets(cfg.Paths.Assets, log.Named("assets")),
		Battery: ui.NewBatteryIcons(cfg.Battery),
		Log:     log.Named("ui"),
	}
	shutter, focus := h.Pins()
	hw := pages.Hardware{Shutter: shutter, Focus: focus, Sensors: h.Sensors()}
	m, err := pages.New(cfg, env, hw, log, ac.Pages...)
	if err != nil {
		return nil, err
	}

	a := &App{
		h:       h,
		cfg:     cfg,
		log:     log.Named("app"),
		ctx:     ctx,
		surface: surface,
		env:     env,
		m:       m,
		now:     now,
		startAt: now().Add(ac.Splash),
	}
	if kb := h.Input().Keyboard(); kb != nil {
		a.keys = kb.Events()
	}
	if err := a.splash(); err != nil {
		return nil, err
	}
	return a, nil
}

// Manager returns the page manager.
func (a *App) Manager() *pages.Manager { return a.m }

// Surface returns the frame surface.
func (a *App) Surface() *ui.Surface { return a.surface }

// Step runs one tick of the UI loop: it starts the pages once the splash
// has expired, runs posted closures and dispatches pending key presses.
// It returns hal.ErrQuit once shutdown was requested.
func (a *App) Step() (err error) {
	if a.failed {
		return ErrPanic
	}
	defer func() {
		if v := recover(); v != nil {
			a.failed = true
			err = a.panicked(v, debug.Stack())
		}
	}()

	if !a.started {
		if a.now().Before(a.startAt) {
			a.drain()
			return nil
		}
		a.started = true
		if err := a.m.Start(a.ctx); err != nil {
			return err
		}
	}

	if err := a.m.Pump(); err != nil {
		a.log.Error("posted work", zap.Error(err))
	}
	for !a.m.Quit() {
		ev, ok := a.next()
		if !ok {
			break
		}
		a.dispatch(ev)
	}
	if a.m.Quit() {
		return hal.ErrQuit
	}
	return nil
}

// Close leaves the active screen, stops the battery monitor and releases
// the hardware.
func (a *App) Close() error {
	return errors.Join(a.m.Close(), a.h.Close())
}

func (a *App) dispatch(ev hal.KeyEvent) {
	dir := ev.Direction()
	if dir == "" {
		return
	}
	cur := a.m.Current()
	err := a.m.Dispatch(dir)
	if cur == nil {
		return
	}
	var be *ui.BindingError
	switch {
	case errors.As(err, &be):
		a.log.Error("binding",
			zap.String("screen", be.Screen),
			zap.String("direction", be.Direction),
			zap.String("action", be.Action),
			zap.Error(be.Err))
	case err != nil:
		a.log.Error("dispatch",
			zap.String("screen", cur.Key()),
			zap.String("direction", dir),
			zap.Error(err))
	}
}

// next returns a pending key event without blocking.
func (a *App) next() (hal.KeyEvent, bool) {
	select {
	case ev := <-a.keys:
		return ev, true
	default:
		return hal.KeyEvent{}, false
	}
}

// drain drops key presses made while the splash is up.
func (a *App) drain() {
	for {
		select {
		case <-a.keys:
		default:
			return
		}
	}
}
