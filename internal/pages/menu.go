package pages

import (
	"astrotimer/internal/config"
	"astrotimer/internal/ui"
)

// menuScreen is a page holding a single menu.
type menuScreen struct {
	*ui.Page
	menu *ui.Menu
}

func newMenuScreen(m *Manager, key string, sc config.Screen, layout ui.MenuLayout) *menuScreen {
	if sc.MaxRows != nil {
		layout.MaxRows = *sc.MaxRows
	}
	p := ui.NewPage(key, sc, m.env)
	s := &menuScreen{Page: p, menu: ui.NewMenu(p, sc.Menus, layout)}
	p.SetDraw(s.menu.Draw)
	return s
}

func (s *menuScreen) Menu() *ui.Menu     { return s.menu }
func (s *menuScreen) Targets() []string { return s.menu.Targets() }

// newMainMenu is the entry screen: large rows with icons.
func newMainMenu(m *Manager, key string, sc config.Screen) (ui.Screen, error) {
	return newMenuScreen(m, key, sc, ui.MainMenuLayout), nil
}

// newSettings is a text-only list showing every row.
func newSettings(m *Manager, key string, sc config.Screen) (ui.Screen, error) {
	return newMenuScreen(m, key, sc, ui.ListLayout), nil
}
