package pages

import (
	"fmt"
	"strings"
	"time"

	"astrotimer/internal/config"
	"astrotimer/internal/trigger"
	"astrotimer/internal/ui"

	"go.uber.org/zap"
)

// Focus modes of the parameter screen.
const (
	focusParameter = "parameter"
	focusButton    = "button"
)

// parametersScreen edits the sequence parameters. Focus moves over the
// parameter rows and then the buttons; a selected parameter is armed and
// up and down change its value instead.
type parametersScreen struct {
	*ui.Page
	m       *Manager
	numpad  *ui.Numpad
	buttons *ui.ButtonBar
	slot    int
}

func newParameters(m *Manager, key string, sc config.Screen) (ui.Screen, error) {
	p := ui.NewPage(key, sc, m.env)
	s := &parametersScreen{
		Page:    p,
		m:       m,
		numpad:  ui.NewNumpad(p, sc.Parameters, ui.DefaultNumpadLayout),
		buttons: ui.NewButtonBar(p, sc.Buttons, ui.DefaultButtonStyle),
	}
	for _, name := range []string{"exposure", "shots", "interval"} {
		if _, ok := s.param(name); !ok {
			return nil, fmt.Errorf("missing %s parameter", name)
		}
	}
	sel := map[string]ui.Action{
		focusParameter: s.redraw(s.numpad.Toggle),
		focusButton:    s.buttons.Select,
	}
	p.Register(ui.Actions{
		"option_up":       ui.Indexed(s.armedIndex, s.redraw(s.prev), s.redraw(s.numpad.Increment)),
		"option_down":     ui.Indexed(s.armedIndex, s.redraw(s.next), s.redraw(s.numpad.Decrement)),
		"option_select":   ui.Modal(s.Focus, sel),
		"option_back":     ui.Call(s.back),
		"launch_sequence": ui.Call(s.Launch),
	})
	s.sync()
	p.SetDraw(s.draw)
	return s, nil
}

func (s *parametersScreen) Numpad() *ui.Numpad     { return s.numpad }
func (s *parametersScreen) Buttons() *ui.ButtonBar { return s.buttons }
func (s *parametersScreen) Targets() []string      { return s.buttons.Targets() }

// Focus returns which group holds the focus.
func (s *parametersScreen) Focus() string {
	if s.slot < s.numpad.Len() {
		return focusParameter
	}
	return focusButton
}

func (s *parametersScreen) slots() int { return s.numpad.Len() + s.buttons.Len() }

func (s *parametersScreen) armedIndex() int {
	if s.numpad.Armed() {
		return 1
	}
	return 0
}

func (s *parametersScreen) redraw(fn func()) ui.Action {
	return func() error {
		fn()
		return s.Display()
	}
}

func (s *parametersScreen) prev() { s.move(-1) }
func (s *parametersScreen) next() { s.move(1) }

func (s *parametersScreen) move(delta int) {
	n := s.slots()
	if n == 0 {
		return
	}
	s.slot = ((s.slot+delta)%n + n) % n
	s.sync()
}

// sync points the numpad or the button bar at the focused slot and
// highlights only that group.
func (s *parametersScreen) sync() {
	n := s.numpad.Len()
	if s.slot < n {
		s.numpad.SetCurrent(s.slot)
		s.numpad.SetActive(true)
		s.buttons.SetActive(false)
		return
	}
	s.buttons.SetCurrent(s.slot - n)
	s.numpad.SetActive(false)
	s.buttons.SetActive(true)
}

// back disarms an armed parameter, or leaves the screen.
func (s *parametersScreen) back() error {
	if s.Focus() == focusParameter && s.numpad.Armed() {
		s.numpad.SetArmed(false)
		return s.Display()
	}
	return s.m.GoBack()
}

func (s *parametersScreen) param(name string) (ui.Param, bool) {
	for _, p := range s.numpad.Params() {
		if strings.EqualFold(p.Name, name) {
			return *p, true
		}
	}
	return ui.Param{}, false
}

// Parameters returns the edited values with the configured wake offset.
func (s *parametersScreen) Parameters() trigger.Parameters {
	q := func(name string) trigger.Quantity {
		p, _ := s.param(name)
		return trigger.Quantity{Value: p.Value, Unit: p.Unit}
	}
	off := s.m.cfg.Sequence.Offset.Duration
	return trigger.Parameters{
		Exposure: q("exposure"),
		Shots:    q("shots"),
		Interval: q("interval"),
		Offset:   trigger.Quantity{Value: float64(off) / float64(time.Millisecond), Unit: trigger.UnitMillisecond},
	}
}

// Launch writes the hand-off record and switches to the running screen.
func (s *parametersScreen) Launch() error {
	key, ok := s.m.screenOfClass(ClassRunning)
	if !ok {
		return fmt.Errorf("%w: no %s registered", ErrUnknownScreen, ClassRunning)
	}
	params := s.Parameters()
	h, err := trigger.NewHandoff(params, s.m.now())
	if err != nil {
		return err
	}
	if err := trigger.WriteHandoff(s.m.cfg.Paths.Handoff, h); err != nil {
		return err
	}
	s.Log().Info("launch sequence",
		zap.Stringer("exposure", params.Exposure),
		zap.Stringer("shots", params.Shots),
		zap.Stringer("interval", params.Interval),
		zap.Time("end", h.EndTime()))
	s.numpad.SetArmed(false)
	return s.m.ShowPage(key)
}

func (s *parametersScreen) draw(c *ui.Canvas) {
	s.numpad.Draw(c)
	s.buttons.Draw(c)
}
