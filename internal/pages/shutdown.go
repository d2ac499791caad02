package pages

import (
	"astrotimer/internal/config"
	"astrotimer/internal/ui"
)

// shutdownScreen asks for confirmation before stopping the device.
type shutdownScreen struct {
	*ui.Page
	buttons *ui.ButtonBar
	icon    string
}

func newShutdown(m *Manager, key string, sc config.Screen) (ui.Screen, error) {
	p := ui.NewPage(key, sc, m.env)
	s := &shutdownScreen{
		Page:    p,
		buttons: ui.NewButtonBar(p, sc.Buttons, ui.DefaultButtonStyle),
		icon:    sc.Icon,
	}
	p.SetDraw(s.draw)
	return s, nil
}

func (s *shutdownScreen) Buttons() *ui.ButtonBar { return s.buttons }
func (s *shutdownScreen) Targets() []string      { return s.buttons.Targets() }

func (s *shutdownScreen) draw(c *ui.Canvas) {
	env := s.Env()
	icon := env.Assets.Icon(s.icon)
	c.Paste(icon, (c.Width()-icon.Bounds().Dx())/2, 40)
	f := env.Fonts.Font(ui.SizeL, false)
	c.TextCentered(f, c.Width()/2, env.Fonts.Middle(ui.SizeL, 105), "Shutdown now ?", ui.ColorText)
	s.buttons.Draw(c)
}
