// Package pages builds the screens of the device from the screen registry
// and keeps the navigation stack between them.
//
// All screen state is owned by the UI loop. Background work (the trigger
// engine, sensor pollers) never touches a screen directly: it posts a
// closure with Post, and the UI loop runs it on its next Pump.
package pages

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"astrotimer/hal"
	"astrotimer/internal/config"
	"astrotimer/internal/power"
	"astrotimer/internal/trigger"
	"astrotimer/internal/ui"

	"go.uber.org/zap"
)

// ErrUnknownScreen is returned when switching to a key that is not in the
// registry.
var ErrUnknownScreen = errors.New("pages: unknown screen")

// postQueue is how many closures may wait for the UI loop.
const postQueue = 32

// Hardware is what the screens drive and read.
type Hardware struct {
	Shutter trigger.Pin
	Focus   trigger.Pin
	Sensors hal.Sensors
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock used for hand-off timestamps and the
// time-left display.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithEngineOptions adds options to every trigger engine the running
// screen builds.
func WithEngineOptions(opts ...trigger.Option) Option {
	return func(m *Manager) {
		m.engineOpts = append(m.engineOpts, opts...)
	}
}

// Manager owns the screens, the navigation stack and the battery state.
type Manager struct {
	cfg        *config.Config
	env        *ui.Env
	hw         Hardware
	root       *zap.Logger
	log        *zap.Logger
	now        func() time.Time
	engineOpts []trigger.Option

	battery *power.State
	monitor *power.Monitor

	screens  map[string]ui.Screen
	shutdown string
	current  ui.Screen
	stack    []ui.Screen
	quit     bool

	ctx   context.Context
	posts chan func() error
}

// New builds every registered screen and checks that each bound action
// resolves. env must carry the surface, fonts, assets and battery icons;
// New fills in the callbacks and the battery level source.
func New(cfg *config.Config, env *ui.Env, hw Hardware, log *zap.Logger, opts ...Option) (*Manager, error) {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Manager{
		cfg:     cfg,
		env:     env,
		hw:      hw,
		root:    log,
		log:     log.Named("pages"),
		now:     time.Now,
		battery: &power.State{},
		screens: make(map[string]ui.Screen, len(cfg.Screens)),
		ctx:     context.Background(),
		posts:   make(chan func() error, postQueue),
	}
	for _, opt := range opts {
		opt(m)
	}

	cb := &ui.Callbacks{
		Keys: ui.Actions{
			"go_back":  ui.Call(m.GoBack),
			"shutdown": ui.Call(m.Shutdown),
		},
		Pages: ui.Actions{},
	}
	keys := cfg.ScreenKeys()
	for _, key := range keys {
		cb.Pages[key] = ui.SwitchTo(key, m.ShowPage)
	}
	env.Callbacks = cb
	env.Level = m.battery
	if env.Log == nil {
		env.Log = m.log
	}

	for _, key := range keys {
		sc := cfg.Screens[key]
		build, ok := classes[sc.Class]
		if !ok {
			return nil, fmt.Errorf("pages: screen %s: unknown class %q", key, sc.Class)
		}
		s, err := build(m, key, sc)
		if err != nil {
			return nil, fmt.Errorf("pages: screen %s: %w", key, err)
		}
		m.screens[key] = s
		if sc.Class == ClassShutdown && m.shutdown == "" {
			m.shutdown = key
		}
	}
	if err := m.CheckBindings(); err != nil {
		return nil, err
	}
	if _, ok := m.screens[cfg.StartScreen]; !ok {
		return nil, fmt.Errorf("%w: start screen %q", ErrUnknownScreen, cfg.StartScreen)
	}

	if g := hw.Sensors.Gauge; g != nil {
		m.monitor = power.NewMonitor(g, m.battery, cfg.Refresh.BatterySoC.Duration,
			cfg.Sensors.MaxFailures, m.root.Named("power"))
	}
	return m, nil
}

// targeter is implemented by screens whose menus or buttons name actions.
type targeter interface {
	Targets() []string
}

// CheckBindings verifies every key binding and every menu or button action
// of every screen.
func (m *Manager) CheckBindings() error {
	var errs []error
	for _, key := range m.cfg.ScreenKeys() {
		s := m.screens[key]
		var extra []string
		if t, ok := s.(targeter); ok {
			extra = t.Targets()
		}
		checker, ok := s.(interface{ CheckBindings(...string) error })
		if !ok {
			continue
		}
		if err := checker.CheckBindings(extra...); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Start launches the battery monitor and shows the start screen. ctx bounds
// every background task the screens start.
func (m *Manager) Start(ctx context.Context) error {
	m.ctx = ctx
	if m.monitor != nil {
		m.monitor.Start(ctx)
	}
	m.log.Info("start", zap.String("screen", m.cfg.StartScreen))
	return m.ShowPage(m.cfg.StartScreen)
}

// ShowPage makes key the active screen. The active screen is pushed on the
// stack, unless key is already on it, in which case the stack is unwound
// down to key. Showing the active screen redraws it.
func (m *Manager) ShowPage(key string) error {
	next, ok := m.screens[key]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScreen, key)
	}
	if next == m.current {
		return next.Display()
	}
	m.leave()
	if i := m.stackIndex(next); i >= 0 {
		m.stack = m.stack[:i]
	} else if m.current != nil {
		m.stack = append(m.stack, m.current)
	}
	m.current = next
	m.log.Debug("show", zap.String("screen", key), zap.Strings("stack", m.StackKeys()))
	return m.enter(next)
}

// GoBack returns to the previous screen. It is a no-op on an empty stack.
func (m *Manager) GoBack() error {
	if len(m.stack) == 0 {
		m.log.Debug("back on empty stack")
		return nil
	}
	prev := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	m.leave()
	m.current = prev
	m.log.Debug("back", zap.String("screen", prev.Key()), zap.Strings("stack", m.StackKeys()))
	return m.enter(prev)
}

// Shutdown joins the active screen's background work, stops the battery
// monitor and asks the run loop to stop.
func (m *Manager) Shutdown() error {
	m.log.Info("shutdown")
	m.leave()
	m.stopMonitor()
	m.quit = true
	return nil
}

// Dispatch delivers a direction to the active screen. On the main menu
// "left" opens the shutdown screen whatever it is bound to.
func (m *Manager) Dispatch(direction string) error {
	if m.current == nil || m.quit {
		return nil
	}
	if direction == "left" && m.current.Class() == ClassMainMenu && m.shutdown != "" {
		return m.ShowPage(m.shutdown)
	}
	return m.current.Dispatch(direction)
}

// Post queues fn for the UI loop. It returns false when ctx is done first.
func (m *Manager) Post(ctx context.Context, fn func() error) bool {
	select {
	case m.posts <- fn:
		return true
	case <-ctx.Done():
		return false
	}
}

// Pump runs every queued closure and returns their joined errors.
func (m *Manager) Pump() error {
	var errs []error
	for {
		select {
		case fn := <-m.posts:
			if err := fn(); err != nil {
				errs = append(errs, err)
			}
		default:
			return errors.Join(errs...)
		}
	}
}

// Quit reports whether shutdown was requested.
func (m *Manager) Quit() bool { return m.quit }

// Current returns the active screen, or nil before Start.
func (m *Manager) Current() ui.Screen { return m.current }

// Screen returns the screen registered as key.
func (m *Manager) Screen(key string) (ui.Screen, bool) {
	s, ok := m.screens[key]
	return s, ok
}

// Keys returns the registered screen keys, sorted.
func (m *Manager) Keys() []string {
	out := make([]string, 0, len(m.screens))
	for k := range m.screens {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// StackKeys lists the stacked screens, oldest first.
func (m *Manager) StackKeys() []string {
	out := make([]string, len(m.stack))
	for i, s := range m.stack {
		out[i] = s.Key()
	}
	return out
}

// Battery returns the shared battery state.
func (m *Manager) Battery() *power.State { return m.battery }

// Close leaves the active screen and stops the battery monitor. It is safe
// after Shutdown.
func (m *Manager) Close() error {
	m.leave()
	m.stopMonitor()
	return nil
}

func (m *Manager) enter(s ui.Screen) error {
	if e, ok := s.(ui.Enterer); ok {
		return e.Enter()
	}
	return s.Display()
}

func (m *Manager) leave() {
	if m.current == nil {
		return
	}
	l, ok := m.current.(ui.Leaver)
	if !ok {
		return
	}
	if err := l.Leave(); err != nil {
		m.log.Warn("leave", zap.String("screen", m.current.Key()), zap.Error(err))
	}
}

func (m *Manager) stopMonitor() {
	if m.monitor == nil {
		return
	}
	if err := m.monitor.Stop(); err != nil {
		m.log.Warn("battery monitor", zap.Error(err))
	}
}

func (m *Manager) stackIndex(s ui.Screen) int {
	for i, t := range m.stack {
		if t == s {
			return i
		}
	}
	return -1
}

// screenOfClass returns the key of the first screen of class.
func (m *Manager) screenOfClass(class string) (string, bool) {
	for _, key := range m.cfg.ScreenKeys() {
		if m.cfg.Screens[key].Class == class {
			return key, true
		}
	}
	return "", false
}
