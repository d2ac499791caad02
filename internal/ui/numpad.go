package ui

import (
	"math"
	"sort"
	"strconv"

	"astrotimer/internal/config"
)

// Param is one editable numeric value.
type Param struct {
	Name  string
	Unit  string
	Value float64
	Step  float64
}

// NumpadLayout places the parameter rows.
type NumpadLayout struct {
	Left     int
	Top      int
	Step     int
	BoxLeft  int
	BoxWidth int
	BoxPad   int
	Radius   int
}

// DefaultNumpadLayout fits three rows under the status bar.
var DefaultNumpadLayout = NumpadLayout{
	Left: 12, Top: 54, Step: 32, BoxLeft: 120, BoxWidth: 100, BoxPad: 12, Radius: 8,
}

// Numpad is a list of numeric parameters with an armed sub-state. Disarmed,
// up and down move the selection; armed, they change the selected value by
// its step, never below zero.
type Numpad struct {
	page    *Page
	params  []*Param
	current int
	armed   bool
	active  bool
	layout  NumpadLayout
}

// NewNumpad attaches the parameters to p, ordered by their Order field, and
// registers parameter_up, parameter_down and parameter_select.
func NewNumpad(p *Page, opts []config.ParameterOption, layout NumpadLayout) *Numpad {
	sorted := append([]config.ParameterOption(nil), opts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })
	n := &Numpad{page: p, active: true, layout: layout}
	for _, o := range sorted {
		if o.Type != "" && o.Type != "number" {
			continue
		}
		n.params = append(n.params, &Param{Name: o.Name, Unit: o.Unit, Value: o.Value, Step: o.Step})
	}
	p.Register(Actions{
		"parameter_up":     Indexed(n.armedIndex, n.redraw(n.Prev), n.redraw(n.Increment)),
		"parameter_down":   Indexed(n.armedIndex, n.redraw(n.Next), n.redraw(n.Decrement)),
		"parameter_select": Call(n.redraw(n.Toggle)),
	})
	return n
}

func (n *Numpad) armedIndex() int {
	if n.armed {
		return 1
	}
	return 0
}

func (n *Numpad) redraw(fn func()) Action {
	return func() error {
		fn()
		return n.page.Display()
	}
}

func (n *Numpad) Params() []*Param { return n.params }
func (n *Numpad) Current() int     { return n.current }
func (n *Numpad) Armed() bool      { return n.armed }
func (n *Numpad) Len() int         { return len(n.params) }

// SetCurrent selects parameter i, wrapping around.
func (n *Numpad) SetCurrent(i int) { n.current = rotate(i, 0, len(n.params)) }

// SetActive shows or hides the selection highlight.
func (n *Numpad) SetActive(on bool) { n.active = on }

// SetArmed enters or leaves the editing sub-state.
func (n *Numpad) SetArmed(on bool) { n.armed = on }

// Toggle flips the editing sub-state.
func (n *Numpad) Toggle() {
	if len(n.params) == 0 {
		return
	}
	n.armed = !n.armed
}

// Prev moves the selection up.
func (n *Numpad) Prev() { n.current = rotate(n.current, -1, len(n.params)) }

// Next moves the selection down.
func (n *Numpad) Next() { n.current = rotate(n.current, 1, len(n.params)) }

// Increment adds one step to the selected value.
func (n *Numpad) Increment() { n.adjust(1) }

// Decrement removes one step from the selected value, stopping at zero.
func (n *Numpad) Decrement() { n.adjust(-1) }

func (n *Numpad) adjust(sign float64) {
	if len(n.params) == 0 {
		return
	}
	p := n.params[n.current]
	v := math.Max(0, p.Value+sign*p.Step)
	// Keep repeated steps from accumulating float error.
	p.Value = math.Round(v*1e6) / 1e6
}

// Value returns the named parameter's value.
func (n *Numpad) Value(name string) (Param, bool) {
	for _, p := range n.params {
		if p.Name == name {
			return *p, true
		}
	}
	return Param{}, false
}

// FormatValue renders a value without a trailing ".0" for whole numbers.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Draw renders "name [value unit]" rows.
func (n *Numpad) Draw(c *Canvas) {
	l := n.layout
	fonts := n.page.Env().Fonts
	for i, p := range n.params {
		mid := l.Top + i*l.Step
		sel := n.active && i == n.current
		f := fonts.Font(SizeM, sel)
		base := fonts.Middle(SizeM, mid)
		c.Text(f, l.Left, base, p.Name, colorFG)

		x0, x1 := l.BoxLeft, l.BoxLeft+l.BoxWidth
		y0, y1 := mid-l.BoxPad, mid+l.BoxPad
		if sel && n.armed {
			c.RoundRect(x0, y0, x1, y1, l.Radius, colorDim, colorFG, 2)
			c.Text(f, x0+6, base, "<>", colorFG)
		} else if sel {
			c.RoundRect(x0, y0, x1, y1, l.Radius, colorBG, colorFG, 2)
		} else {
			c.RoundRect(x0, y0, x1, y1, l.Radius, colorBG, colorDim, 1)
		}
		c.TextRight(f, x1-8, base, FormatValue(p.Value), colorFG)
		if p.Unit != "" {
			c.Text(fonts.Font(SizeM, false), x1+8, base, p.Unit, colorFG)
		}
	}
}
