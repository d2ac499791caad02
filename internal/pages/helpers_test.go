package pages

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"astrotimer/hal"
	"astrotimer/internal/config"
	"astrotimer/internal/ui"
)

type memFB struct {
	w, h int
	buf  []byte
}

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) Present() error          { return nil }

// recordPin counts rising edges.
type recordPin struct {
	mu    sync.Mutex
	level bool
	highs int
}

func (p *recordPin) Write(level bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if level && !p.level {
		p.highs++
	}
	p.level = level
	return nil
}

func (p *recordPin) state() (level bool, highs int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, p.highs
}

type fakeGauge struct{}

func (fakeGauge) StateOfCharge() (float64, error) { return 50, nil }
func (fakeGauge) CellVoltage() (float64, error)   { return 3.8, nil }

type fakeMeter struct{}

func (fakeMeter) Current() (float64, error) { return 320, nil }
func (fakeMeter) Power() (float64, error)   { return 1600, nil }

// gate is a trigger sleeper that holds every timed wait until open is
// closed. Waits on a context that can never be cancelled, as used by the
// pin release, return at once.
type gate struct {
	open chan struct{}
}

func newGate() *gate { return &gate{open: make(chan struct{})} }

func (g *gate) sleep(ctx context.Context, d time.Duration) error {
	if ctx.Done() == nil {
		return nil
	}
	select {
	case <-g.open:
		return ctx.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

type rig struct {
	m       *Manager
	cfg     *config.Config
	shutter *recordPin
	focus   *recordPin
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	dir := t.TempDir()
	cfg.Paths.Handoff = filepath.Join(dir, "sequence_parameters.json")
	cfg.Paths.Progress = filepath.Join(dir, "running_parameters.json")
	cfg.Paths.Wifi = filepath.Join(dir, "hostapd.conf")
	cfg.Paths.Website = filepath.Join(dir, "dhcpcd.conf")
	cfg.Refresh.BatteryInfos = config.D(10 * time.Millisecond)
	cfg.Refresh.SequenceRunning = config.D(10 * time.Millisecond)
	cfg.Refresh.ThreadScan = config.D(time.Millisecond)
	cfg.Sequence.Offset = config.D(0)
	cfg.Sequence.ReleasePulse = config.D(0)
	return cfg
}

func newRig(t *testing.T, cfg *config.Config, sensors hal.Sensors, opts ...Option) *rig {
	t.Helper()
	env := &ui.Env{
		Surface: ui.NewSurface(&memFB{w: cfg.Display.Width, h: cfg.Display.Height, buf: make([]byte, cfg.Display.Width*cfg.Display.Height*2)}),
		Fonts:   ui.DefaultFonts(),
		Assets:  ui.NewAssets("", nil),
		Battery: ui.NewBatteryIcons(cfg.Battery),
	}
	r := &rig{cfg: cfg, shutter: &recordPin{}, focus: &recordPin{}}
	hw := Hardware{Shutter: r.shutter, Focus: r.focus, Sensors: sensors}
	m, err := New(cfg, env, hw, nil, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		_ = m.Close()
		cancel()
	})
	if err := m.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	r.m = m
	return r
}

func (r *rig) dispatch(t *testing.T, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := r.m.Dispatch(d); err != nil {
			t.Fatalf("Dispatch(%q): %v", d, err)
		}
	}
}

func (r *rig) repeat(t *testing.T, dir string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		r.dispatch(t, dir)
	}
}

// pumpUntil runs posted closures until cond holds.
func (r *rig) pumpUntil(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if err := r.m.Pump(); err != nil {
			t.Fatalf("Pump: %v", err)
		}
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func (r *rig) current() string {
	if s := r.m.Current(); s != nil {
		return s.Key()
	}
	return ""
}

func (r *rig) wantScreen(t *testing.T, key string, stack ...string) {
	t.Helper()
	if got := r.current(); got != key {
		t.Fatalf("current: got %q, want %q", got, key)
	}
	got := r.m.StackKeys()
	if len(got) != len(stack) {
		t.Fatalf("stack: got %v, want %v", got, stack)
	}
	for i := range got {
		if got[i] != stack[i] {
			t.Fatalf("stack: got %v, want %v", got, stack)
		}
	}
}

// instantSleep returns at once unless ctx is done.
func instantSleep(ctx context.Context, d time.Duration) error { return ctx.Err() }
