// Package ui implements the page kinds the screens are built from and the
// frame they draw into.
//
// A page binds directions to action names through its key map. Names are
// looked up in the page's own action table, then in the manager key
// callbacks, then in the manager page switches. Navigate resolves the
// pending action; Dispatch resolves and runs it.
package ui

import (
	"image"

	"astrotimer/internal/config"

	"go.uber.org/zap"
)

// Navigable receives directions.
type Navigable interface {
	Navigate(direction string) error
	Dispatch(direction string) error
}

// Renderable draws itself onto the surface.
type Renderable interface {
	Display() error
}

// Screen is a registered, navigable page.
type Screen interface {
	Navigable
	Renderable
	Key() string
	Class() string
}

// Enterer is implemented by screens that load state or start background
// work when they become active. Enter ends by displaying the screen.
type Enterer interface {
	Enter() error
}

// Leaver is implemented by screens that own background work which must be
// joined before the screen is left.
type Leaver interface {
	Leave() error
}

// StatusBarHeight is the height of the status bar, separator included.
const StatusBarHeight = 34

// Page is the state every screen shares.
type Page struct {
	key   string
	class string
	title string
	keys  map[string]string

	env     *Env
	log     *zap.Logger
	actions Actions

	draw      func(c *Canvas)
	statusBar bool
	status    string

	pending     Action
	pendingName string
}

// NewPage builds the shared state of the screen registered as key.
func NewPage(key string, sc config.Screen, env *Env) *Page {
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}
	keys := make(map[string]string, len(sc.Keys))
	for d, a := range sc.Keys {
		keys[d] = a
	}
	return &Page{
		key:       key,
		class:     sc.Class,
		title:     sc.Title,
		keys:      keys,
		env:       env,
		log:       log.With(zap.String("screen", key)),
		actions:   Actions{},
		statusBar: true,
	}
}

func (p *Page) Key() string      { return p.key }
func (p *Page) Class() string    { return p.class }
func (p *Page) Title() string    { return p.title }
func (p *Page) Env() *Env        { return p.env }
func (p *Page) Log() *zap.Logger { return p.log }

// Register adds actions to the page's own table, replacing any of the same
// name.
func (p *Page) Register(actions Actions) {
	for name, b := range actions {
		p.actions[name] = b
	}
}

// SetDraw sets the function drawing the page body.
func (p *Page) SetDraw(fn func(c *Canvas)) { p.draw = fn }

// SetStatusBar turns the status bar on or off.
func (p *Page) SetStatusBar(on bool) { p.statusBar = on }

// SetStatus overrides the title shown in the status bar. An empty message
// restores the title.
func (p *Page) SetStatus(msg string) { p.status = msg }

// StatusText is the text shown in the status bar.
func (p *Page) StatusText() string {
	if p.status != "" {
		return p.status
	}
	return p.title
}

// Lookup finds the binding for an action name.
func (p *Page) Lookup(name string) (Binding, bool) {
	if b, ok := p.actions[name]; ok {
		return b, true
	}
	if cb := p.env.Callbacks; cb != nil {
		if b, ok := cb.Keys[name]; ok {
			return b, true
		}
		if b, ok := cb.Pages[name]; ok {
			return b, true
		}
	}
	return Binding{}, false
}

// Navigate resolves the action bound to direction and makes it the pending
// action without running it. An unbound direction clears the pending
// action.
func (p *Page) Navigate(direction string) error {
	p.pending, p.pendingName = nil, ""
	name, ok := p.keys[direction]
	if !ok || !config.Bound(name) {
		p.log.Debug("unbound direction", zap.String("direction", direction))
		return nil
	}
	b, ok := p.Lookup(name)
	if !ok {
		return &BindingError{Screen: p.key, Direction: direction, Action: name, Err: ErrUnknownAction}
	}
	act, err := b.Resolve()
	if err != nil {
		return &BindingError{Screen: p.key, Direction: direction, Action: name, Err: err}
	}
	p.pending, p.pendingName = act, name
	return nil
}

// Pending returns the action resolved by the last Navigate and its name.
func (p *Page) Pending() (Action, string) { return p.pending, p.pendingName }

// Dispatch navigates and runs the pending action.
func (p *Page) Dispatch(direction string) error {
	if err := p.Navigate(direction); err != nil {
		return err
	}
	act, name := p.Pending()
	if act == nil {
		return nil
	}
	p.log.Debug("dispatch", zap.String("direction", direction), zap.String("action", name))
	return act()
}

// Run resolves an action name through the page's lookup order and runs it.
// Unbound names are a no-op; unknown ones fail.
func (p *Page) Run(name string) error {
	if !config.Bound(name) {
		return nil
	}
	b, ok := p.Lookup(name)
	if !ok {
		return &BindingError{Screen: p.key, Action: name, Err: ErrUnknownAction}
	}
	act, err := b.Resolve()
	if err != nil {
		return &BindingError{Screen: p.key, Action: name, Err: err}
	}
	return act()
}

// CheckBindings verifies that every bound direction and every extra action
// name resolves to a known binding.
func (p *Page) CheckBindings(extra ...string) error {
	for _, dir := range config.Directions {
		name, ok := p.keys[dir]
		if !ok || !config.Bound(name) {
			continue
		}
		if _, ok := p.Lookup(name); !ok {
			return &BindingError{Screen: p.key, Direction: dir, Action: name, Err: ErrUnknownAction}
		}
	}
	for _, name := range extra {
		if !config.Bound(name) {
			continue
		}
		if _, ok := p.Lookup(name); !ok {
			return &BindingError{Screen: p.key, Action: name, Err: ErrUnknownAction}
		}
	}
	return nil
}

// Display redraws the page: background, body, then the status bar.
func (p *Page) Display() error {
	return p.env.Surface.Render(func(c *Canvas) {
		if p.draw != nil {
			p.draw(c)
		}
		if p.statusBar {
			p.drawStatusBar(c)
		}
	})
}

func (p *Page) drawStatusBar(c *Canvas) {
	w := c.Width()
	c.Fill(image.Rect(0, 0, w, StatusBarHeight), colorBG)
	c.Fill(image.Rect(0, 0, w, StatusBarHeight-2), colorStatusBG)
	c.Text(p.env.Fonts.Status, 6, 22, p.StatusText(), colorFG)

	var level float64
	var known bool
	if p.env.Level != nil {
		level, known = p.env.Level.Level()
	}
	icon := p.env.Assets.Icon(p.env.Battery.Icon(level, known))
	c.Fill(image.Rect(w-66, 0, w, StatusBarHeight-2), colorStatusBG)
	c.Paste(icon, w-66+(66-icon.Bounds().Dx())/2, (StatusBarHeight-2-icon.Bounds().Dy())/2)
}
