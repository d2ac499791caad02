package pages

import (
	"context"
	"time"

	"astrotimer/hal"
	"astrotimer/internal/config"
	"astrotimer/internal/power"
	"astrotimer/internal/ui"
)

// batteryScreen shows live sensor readings, refreshed by a poller that
// runs while the screen is active.
type batteryScreen struct {
	*ui.Page
	m       *Manager
	info    *ui.Info
	sensors hal.Sensors
	every   time.Duration

	task *task
	gen  uint64
}

func newBattery(m *Manager, key string, sc config.Screen) (ui.Screen, error) {
	p := ui.NewPage(key, sc, m.env)
	s := &batteryScreen{
		Page:    p,
		m:       m,
		info:    ui.NewInfo(p),
		sensors: m.hw.Sensors,
		every:   m.cfg.Refresh.BatteryInfos.Duration,
	}
	p.SetDraw(s.draw)
	return s, nil
}

func (s *batteryScreen) Info() *ui.Info { return s.info }

func (s *batteryScreen) Enter() error {
	s.gen++
	if s.sensors.Unavailable() {
		s.Log().Warn("no power sensor answered")
		s.info.SetOrigin(16, 100)
		s.info.SetLines(
			ui.Line{Text: "I2C communication error", Error: true},
			ui.Line{Text: "no answer at " + s.sensors.Addresses(), Error: true},
		)
		return s.Display()
	}
	s.info.SetOrigin(16, 50)
	s.info.SetLines()
	s.task = startTask(s.m.ctx)
	gen := s.gen
	s.task.Go(func(ctx context.Context) error { return s.poll(ctx, gen) })
	return s.Display()
}

func (s *batteryScreen) Leave() error {
	s.gen++
	err := s.task.Stop()
	s.task = nil
	return err
}

func (s *batteryScreen) poll(ctx context.Context, gen uint64) error {
	g, mt := power.Gauge(s.sensors.Gauge), power.Meter(s.sensors.Meter)
	t := time.NewTicker(s.every)
	defer t.Stop()
	for {
		lines := append(power.Read(g, mt).Lines(), power.LoadLine(ctx))
		if !s.m.Post(ctx, func() error { return s.update(gen, ui.Text(lines...)) }) {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}

func (s *batteryScreen) update(gen uint64, lines []ui.Line) error {
	if gen != s.gen || s.m.Current() != ui.Screen(s) {
		return nil
	}
	s.info.SetLines(lines...)
	return s.Display()
}

func (s *batteryScreen) draw(c *ui.Canvas) {
	if s.sensors.Unavailable() {
		icon := s.Env().Assets.Icon(ui.EmptyIcon)
		c.Paste(icon, c.Width()/2-icon.Bounds().Dx()/2, 45)
	}
	s.info.Draw(c)
}
