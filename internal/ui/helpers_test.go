package ui

import (
	"astrotimer/hal"
	"astrotimer/internal/config"
)

type memFB struct {
	w, h     int
	buf      []byte
	presents int
}

func newMemFB(w, h int) *memFB { return &memFB{w: w, h: h, buf: make([]byte, w*h*2)} }

func (f *memFB) Width() int              { return f.w }
func (f *memFB) Height() int             { return f.h }
func (f *memFB) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFB) StrideBytes() int        { return f.w * 2 }
func (f *memFB) Buffer() []byte          { return f.buf }
func (f *memFB) Present() error          { f.presents++; return nil }

type fixedLevel struct {
	level float64
	known bool
}

func (l fixedLevel) Level() (float64, bool) { return l.level, l.known }

func newTestEnv() *Env {
	cfg := config.Default()
	return &Env{
		Surface:   NewSurface(newMemFB(cfg.Display.Width, cfg.Display.Height)),
		Fonts:     DefaultFonts(),
		Assets:    NewAssets("", nil),
		Battery:   NewBatteryIcons(cfg.Battery),
		Level:     fixedLevel{level: 80, known: true},
		Callbacks: &Callbacks{Keys: Actions{}, Pages: Actions{}},
	}
}

func newTestPage(env *Env, keys map[string]string) *Page {
	return NewPage("test_page", config.Screen{Class: "Test", Title: "Test", Keys: keys}, env)
}

func menuOptions(names ...string) []config.MenuOption {
	out := make([]config.MenuOption, len(names))
	for i, n := range names {
		out[i] = config.MenuOption{Name: n, Action: n + "_page"}
	}
	return out
}
