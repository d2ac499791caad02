package pages

import (
	"astrotimer/internal/config"
	"astrotimer/internal/ui"
)

// newComingSoon is the placeholder for settings not built yet.
func newComingSoon(m *Manager, key string, sc config.Screen) (ui.Screen, error) {
	p := ui.NewPage(key, sc, m.env)
	p.SetDraw(func(c *ui.Canvas) {
		env := p.Env()
		icon := env.Assets.Icon(ui.EmptyIcon)
		c.Paste(icon, (c.Width()-icon.Bounds().Dx())/2, 60)
		f := env.Fonts.Font(ui.SizeL, true)
		c.TextCentered(f, c.Width()/2, env.Fonts.Middle(ui.SizeL, 130), "Coming soon", ui.ColorText)
	})
	return p, nil
}
