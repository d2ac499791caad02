package pages

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"astrotimer/internal/config"
	"astrotimer/internal/timefmt"
	"astrotimer/internal/trigger"
	"astrotimer/internal/ui"

	"go.uber.org/zap"
)

var (
	exposedLayout  = timefmt.Compile("(s)s")
	timeLeftLayout = timefmt.Compile("(*h)h (*m)min (s)s")
)

// missingIconSize is the side of the icon drawn when there is no hand-off
// record.
const missingIconSize = 130

// runningScreen runs the sequence described by the hand-off record. The
// engine and a progress poller run in the background while the screen is
// active; leaving the screen cancels both and releases the trigger lines.
type runningScreen struct {
	*ui.Page
	m       *Manager
	buttons *ui.ButtonBar
	store   trigger.ProgressStore
	path    string

	missing  bool
	handoff  trigger.Handoff
	timing   trigger.Timing
	progress trigger.Progress

	task *task
	gen  uint64
}

func newRunning(m *Manager, key string, sc config.Screen) (ui.Screen, error) {
	p := ui.NewPage(key, sc, m.env)
	s := &runningScreen{
		Page:    p,
		m:       m,
		buttons: ui.NewButtonBar(p, sc.Buttons, ui.DefaultButtonStyle),
		store:   trigger.NewFileStore(m.cfg.Paths.Progress),
		path:    m.cfg.Paths.Handoff,
	}
	p.SetDraw(s.draw)
	return s, nil
}

func (s *runningScreen) Buttons() *ui.ButtonBar { return s.buttons }
func (s *runningScreen) Targets() []string      { return s.buttons.Targets() }

// Progress returns the last progress drawn.
func (s *runningScreen) Progress() trigger.Progress { return s.progress }

// Missing reports whether the last Enter found no hand-off record.
func (s *runningScreen) Missing() bool { return s.missing }

func (s *runningScreen) Enter() error {
	s.gen++
	s.SetStatus("")
	h, err := trigger.ReadHandoff(s.path)
	if err != nil {
		s.missing = true
		if errors.Is(err, trigger.ErrNoHandoff) {
			s.Log().Warn("no hand-off record", zap.String("path", s.path))
		} else {
			s.Log().Error("read hand-off record", zap.Error(err))
		}
		return s.Display()
	}
	t, err := h.Parameters.Timing()
	if err != nil {
		return err
	}
	s.missing = false
	s.handoff, s.timing = h, t
	s.progress = trigger.Progress{Taken: 0, Remaining: t.Shots}
	if err := s.store.Store(s.progress); err != nil {
		s.Log().Warn("reset progress", zap.Error(err))
	}

	opts := append([]trigger.Option{
		trigger.WithLogger(s.m.root.Named("trigger")),
		trigger.WithProgress(s.store),
		trigger.WithReleasePulse(s.m.cfg.Sequence.ReleasePulse.Duration),
	}, s.m.engineOpts...)
	engine := trigger.New(s.m.hw.Shutter, s.m.hw.Focus, opts...)

	gen := s.gen
	done := make(chan struct{})
	s.task = startTask(s.m.ctx)
	s.task.Go(func(ctx context.Context) error {
		defer close(done)
		err := engine.Run(ctx, h.Parameters)
		switch {
		case err == nil:
			s.m.Post(ctx, func() error { return s.finish(gen) })
		case ctx.Err() == nil:
			s.m.Post(ctx, func() error { return s.fail(gen, err) })
		}
		return err
	})
	s.task.Go(func(ctx context.Context) error { return s.poll(ctx, done, gen) })
	s.Log().Info("sequence running",
		zap.Int("shots", t.Shots),
		zap.Duration("redraw", s.cadence()))
	return s.Display()
}

func (s *runningScreen) Leave() error {
	s.gen++
	err := s.task.Stop()
	s.task = nil
	if rerr := trigger.RemoveHandoff(s.path); rerr != nil {
		s.Log().Warn("remove hand-off record", zap.Error(rerr))
	}
	return err
}

// cadence is the redraw period: the configured refresh, or half an
// exposure when that is shorter, but never below the scan period.
func (s *runningScreen) cadence() time.Duration {
	r := s.m.cfg.Refresh
	d := r.SequenceRunning.Duration
	if half := s.timing.Exposure / 2; half < d {
		d = half
	}
	if d < r.ThreadScan.Duration {
		d = r.ThreadScan.Duration
	}
	if d <= 0 {
		d = time.Second
	}
	return d
}

func (s *runningScreen) poll(ctx context.Context, done <-chan struct{}, gen uint64) error {
	t := time.NewTicker(s.cadence())
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case <-t.C:
		}
		p, err := s.store.Load()
		if err != nil {
			continue
		}
		if !s.m.Post(ctx, func() error { return s.update(gen, p) }) {
			return nil
		}
	}
}

func (s *runningScreen) stale(gen uint64) bool {
	return gen != s.gen || s.m.Current() != ui.Screen(s)
}

func (s *runningScreen) update(gen uint64, p trigger.Progress) error {
	if s.stale(gen) {
		return nil
	}
	s.progress = p
	return s.Display()
}

// finish runs on the UI loop once the engine has completed the sequence.
func (s *runningScreen) finish(gen uint64) error {
	if s.stale(gen) {
		return nil
	}
	if p, err := s.store.Load(); err == nil {
		s.progress = p
	}
	s.Log().Info("sequence complete",
		zap.Int("taken", s.progress.Taken),
		zap.Duration("end_error", s.handoff.EndTime().Sub(s.m.now())))
	return s.m.GoBack()
}

func (s *runningScreen) fail(gen uint64, err error) error {
	if s.stale(gen) {
		return nil
	}
	s.Log().Error("sequence failed", zap.Error(err))
	s.SetStatus("Trigger error")
	return s.Display()
}

func (s *runningScreen) draw(c *ui.Canvas) {
	if s.missing {
		s.drawMissing(c)
		return
	}
	fonts := s.Env().Fonts
	text, value := fonts.Font(ui.SizeM, false), fonts.Font(ui.SizeM, true)
	n := s.timing.Shots

	y := fonts.Middle(ui.SizeM, 50)
	c.Text(text, 12, y, "Shot:", ui.ColorText)
	c.Text(value, 110, y, fmt.Sprintf("%d/%d", min(s.progress.Taken+1, n), n), ui.ColorText)

	y = fonts.Middle(ui.SizeM, 75)
	exposed := time.Duration(s.progress.Taken) * s.timing.Exposure
	c.Text(text, 12, y, "Exposure:", ui.ColorText)
	c.Text(value, 110, y, exposedLayout.Format(exposed.Seconds()), ui.ColorText)

	c.Text(text, 12, fonts.Middle(ui.SizeM, 110), "Time left:", ui.ColorText)
	left := max(0, s.handoff.EndTime().Sub(s.m.now()))
	c.TextCentered(fonts.Font(ui.SizeL, true), c.Width()/2, fonts.Middle(ui.SizeL, 140),
		timeLeftLayout.Format(left.Seconds()), ui.ColorText)

	s.buttons.Draw(c)
}

func (s *runningScreen) drawMissing(c *ui.Canvas) {
	env := s.Env()
	icon := env.Assets.Resized(ui.EmptyIcon, missingIconSize, missingIconSize)
	c.Paste(icon, (c.Width()-missingIconSize)/2, (c.Height()-missingIconSize+ui.StatusBarHeight)/2)

	f := env.Fonts.Font(ui.SizeM, false)
	step := env.Fonts.LineStep[ui.SizeM]
	top := 40 + env.Fonts.AscentCap[ui.SizeM]
	for i, line := range []string{"Error 404:", "'" + filepath.Base(s.path) + "'", "file not found !"} {
		c.TextCentered(f, c.Width()/2, top+i*step, line, ui.ColorError)
	}
}
