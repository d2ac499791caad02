package ui

import (
	"astrotimer/internal/config"

	"go.uber.org/zap"
)

// MenuLayout places the menu rows.
type MenuLayout struct {
	Top      int
	Step     int
	TextLeft int
	IconLeft int
	Icons    bool
	Size     Size
	// MaxRows caps the visible rows; zero or less shows every option.
	MaxRows   int
	BoxLeft   int
	BoxRight  int
	BoxRadius int
	BoxWidth  float64
}

// MainMenuLayout is the large layout with icons.
var MainMenuLayout = MenuLayout{
	Top: StatusBarHeight, Step: 46, TextLeft: 64, IconLeft: 8, Icons: true, Size: SizeL,
	MaxRows: 3, BoxLeft: 2, BoxRight: 300, BoxRadius: 12, BoxWidth: 3,
}

// ListLayout is the compact text-only layout.
var ListLayout = MenuLayout{
	Top: StatusBarHeight, Step: 32, TextLeft: 16, Size: SizeM,
	MaxRows: 0, BoxLeft: 6, BoxRight: 300, BoxRadius: 8, BoxWidth: 2,
}

// Menu is a rotating list of options.
type Menu struct {
	page    *Page
	options []config.MenuOption
	current int
	layout  MenuLayout
}

// NewMenu attaches a menu to p and registers menu_up, menu_down and
// menu_select.
func NewMenu(p *Page, options []config.MenuOption, layout MenuLayout) *Menu {
	m := &Menu{page: p, options: options, layout: layout}
	p.Register(Actions{
		"menu_up":     Call(m.Up),
		"menu_down":   Call(m.Down),
		"menu_select": Call(m.Select),
	})
	return m
}

// Current returns the selected option index.
func (m *Menu) Current() int { return m.current }

// Len returns the option count.
func (m *Menu) Len() int { return len(m.options) }

// Targets returns the option actions, for binding checks.
func (m *Menu) Targets() []string {
	out := make([]string, 0, len(m.options))
	for _, o := range m.options {
		out = append(out, o.Action)
	}
	return out
}

func (m *Menu) Up() error {
	if len(m.options) == 0 {
		return nil
	}
	m.current = rotate(m.current, -1, len(m.options))
	return m.page.Display()
}

func (m *Menu) Down() error {
	if len(m.options) == 0 {
		return nil
	}
	m.current = rotate(m.current, 1, len(m.options))
	return m.page.Display()
}

// Select switches to the page named by the current option's action.
func (m *Menu) Select() error {
	if len(m.options) == 0 {
		return nil
	}
	action := m.options[m.current].Action
	if !config.Bound(action) {
		m.page.Log().Debug("menu option has no action", zap.String("option", m.options[m.current].Name))
		return nil
	}
	return m.page.Run(action)
}

// VisibleRows returns the option index drawn on each row. The highlighted
// row is HighlightRow.
func (m *Menu) VisibleRows() []int {
	n := len(m.options)
	if n == 0 {
		return nil
	}
	rows := n
	if m.layout.MaxRows > 0 && m.layout.MaxRows < n {
		rows = m.layout.MaxRows
	}
	hl := m.HighlightRow()
	out := make([]int, rows)
	for i := range out {
		out[i] = rotate(m.current, i-hl, n)
	}
	return out
}

// HighlightRow is the row holding the current option: the second row, or
// the only one.
func (m *Menu) HighlightRow() int {
	if len(m.options) < 2 {
		return 0
	}
	return 1
}

// Draw renders the visible rows and the highlight box.
func (m *Menu) Draw(c *Canvas) {
	l := m.layout
	env := m.page.Env()
	hl := m.HighlightRow()
	for i, idx := range m.VisibleRows() {
		opt := m.options[idx]
		mid := l.Top + l.Step/2 + i*l.Step
		if l.Icons {
			icon := env.Assets.Icon(opt.Icon)
			c.Paste(icon, l.IconLeft, mid-icon.Bounds().Dy()/2)
		}
		name := opt.Name
		if name == "" {
			name = "[empty name]"
		}
		c.Text(env.Fonts.Font(l.Size, i == hl), l.TextLeft, env.Fonts.Middle(l.Size, mid), name, colorFG)
	}
	if len(m.options) > 0 {
		top := l.Top + hl*l.Step
		c.RoundRect(l.BoxLeft, top+1, l.BoxRight, top+l.Step-1, l.BoxRadius, colorTransparent, colorFG, l.BoxWidth)
	}
}

func rotate(i, delta, n int) int {
	if n <= 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}
