package ui

import (
	"astrotimer/internal/config"

	"go.uber.org/zap"
)

// ButtonStyle sizes the button chips around their labels.
type ButtonStyle struct {
	PadX, PadY int
	Radius     int
}

// DefaultButtonStyle is used unless a screen sets its own.
var DefaultButtonStyle = ButtonStyle{PadX: 12, PadY: 8, Radius: 8}

// ButtonBar is a row of labelled chips, one of which is current.
type ButtonBar struct {
	page    *Page
	buttons []config.ButtonOption
	current int
	active  bool
	style   ButtonStyle
}

// NewButtonBar attaches a button bar to p and registers button_up,
// button_down and button_select.
func NewButtonBar(p *Page, buttons []config.ButtonOption, style ButtonStyle) *ButtonBar {
	b := &ButtonBar{page: p, buttons: buttons, active: true, style: style}
	p.Register(Actions{
		"button_up":     Call(b.Up),
		"button_down":   Call(b.Down),
		"button_select": Call(b.Select),
	})
	return b
}

func (b *ButtonBar) Current() int { return b.current }
func (b *ButtonBar) Len() int     { return len(b.buttons) }
func (b *ButtonBar) Active() bool { return b.active }

// SetActive turns the highlight of the current button on or off.
func (b *ButtonBar) SetActive(on bool) { b.active = on }

// SetCurrent selects button i, wrapping around.
func (b *ButtonBar) SetCurrent(i int) { b.current = rotate(i, 0, len(b.buttons)) }

// Targets returns the button actions, for binding checks.
func (b *ButtonBar) Targets() []string {
	out := make([]string, 0, len(b.buttons))
	for _, o := range b.buttons {
		out = append(out, o.Action)
	}
	return out
}

func (b *ButtonBar) Up() error {
	if len(b.buttons) == 0 {
		return nil
	}
	b.current = rotate(b.current, -1, len(b.buttons))
	return b.page.Display()
}

func (b *ButtonBar) Down() error {
	if len(b.buttons) == 0 {
		return nil
	}
	b.current = rotate(b.current, 1, len(b.buttons))
	return b.page.Display()
}

// Select runs the current button's action: a page switch first, then the
// page's own actions and the manager key callbacks. An action that matches
// nothing is ignored.
func (b *ButtonBar) Select() error {
	if len(b.buttons) == 0 {
		return nil
	}
	action := b.buttons[b.current].Action
	if !config.Bound(action) {
		return nil
	}
	env := b.page.Env()
	if env.Callbacks != nil {
		if sw, ok := env.Callbacks.Pages[action]; ok {
			return runBinding(sw)
		}
	}
	if bind, ok := b.page.Lookup(action); ok {
		return runBinding(bind)
	}
	b.page.Log().Debug("button action matches nothing", zap.String("action", action))
	return nil
}

func runBinding(b Binding) error {
	act, err := b.Resolve()
	if err != nil {
		return err
	}
	return act()
}

// Draw renders the chips, the current one highlighted when the bar is
// active.
func (b *ButtonBar) Draw(c *Canvas) {
	fonts := b.page.Env().Fonts
	for i, btn := range b.buttons {
		name := btn.Name
		if name == "" {
			name = "[empty name]"
		}
		sel := i == b.current
		f := fonts.Font(SizeM, sel)
		w := TextWidth(f, name)
		h := fonts.AscentCap[SizeM]
		x0 := btn.Position.X - w/2 - b.style.PadX
		x1 := btn.Position.X + w/2 + b.style.PadX
		y0 := btn.Position.Y - h/2 - b.style.PadY
		y1 := btn.Position.Y + h/2 + b.style.PadY
		if sel && b.active {
			c.RoundRect(x0, y0, x1, y1, b.style.Radius, colorDim, colorFG, 2)
		} else {
			c.RoundRect(x0, y0, x1, y1, b.style.Radius, colorBG, colorDim, 1)
		}
		c.TextCentered(f, btn.Position.X, fonts.Middle(SizeM, btn.Position.Y), name, colorFG)
	}
}
