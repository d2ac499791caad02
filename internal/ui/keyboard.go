package ui

import (
	"unicode/utf8"
)

// Special keys of the on-screen keyboard.
const (
	KeyShift  = "MAJ"
	KeyDelete = "DEL"
	KeyOK     = "OK"
)

var keyboardLayouts = [2][3][14]string{
	{
		{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", KeyDelete, KeyDelete, KeyOK, KeyOK},
		{KeyShift, "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m"},
		{KeyShift, "n", "o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z"},
	},
	{
		{"&", "(", "-", "_", ")", "=", "*", "+", ".", ",", KeyDelete, KeyDelete, KeyOK, KeyOK},
		{KeyShift, "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M"},
		{KeyShift, "N", "O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z"},
	},
}

const (
	keyboardRows = 3
	keyboardCols = 14
)

// Keyboard is an on-screen keyboard moved with the four directions.
type Keyboard struct {
	page     *Page
	row, col int
	upper    bool
	text     []rune
	maxLen   int
	onSubmit func(text string) error
}

// NewKeyboard attaches a keyboard to p and registers keyboard_up,
// keyboard_down, keyboard_left, keyboard_right and keyboard_select.
// onSubmit runs when OK is selected.
func NewKeyboard(p *Page, maxLen int, onSubmit func(text string) error) *Keyboard {
	k := &Keyboard{page: p, row: 1, col: 1, maxLen: maxLen, onSubmit: onSubmit}
	p.Register(Actions{
		"keyboard_up":     Call(k.redraw(func() { k.row = rotate(k.row, -1, keyboardRows) })),
		"keyboard_down":   Call(k.redraw(func() { k.row = rotate(k.row, 1, keyboardRows) })),
		"keyboard_left":   Call(k.redraw(func() { k.col = rotate(k.col, -1, keyboardCols) })),
		"keyboard_right":  Call(k.redraw(func() { k.col = rotate(k.col, 1, keyboardCols) })),
		"keyboard_select": Call(k.Select),
	})
	return k
}

func (k *Keyboard) redraw(fn func()) Action {
	return func() error {
		fn()
		return k.page.Display()
	}
}

// Cursor returns the selected row and column.
func (k *Keyboard) Cursor() (row, col int) { return k.row, k.col }

// Upper reports whether the upper layout is shown.
func (k *Keyboard) Upper() bool { return k.upper }

// Text returns what has been typed.
func (k *Keyboard) Text() string { return string(k.text) }

// Reset clears the text and returns to the lower layout.
func (k *Keyboard) Reset() {
	k.text = k.text[:0]
	k.upper = false
	k.row, k.col = 1, 1
}

// CurrentKey returns the label under the cursor.
func (k *Keyboard) CurrentKey() string {
	return k.layout()[k.row][k.col]
}

func (k *Keyboard) layout() *[3][14]string {
	if k.upper {
		return &keyboardLayouts[1]
	}
	return &keyboardLayouts[0]
}

// Select presses the key under the cursor.
func (k *Keyboard) Select() error {
	switch key := k.CurrentKey(); key {
	case KeyShift:
		k.upper = !k.upper
	case KeyDelete:
		if len(k.text) > 0 {
			k.text = k.text[:len(k.text)-1]
		}
	case KeyOK:
		if k.onSubmit != nil {
			return k.onSubmit(k.Text())
		}
		return nil
	default:
		if k.maxLen <= 0 || len(k.text) < k.maxLen {
			r, _ := utf8.DecodeRuneInString(key)
			k.text = append(k.text, r)
		}
	}
	return k.page.Display()
}

// Key grid geometry.
const (
	keyLeft = 30
	keyTop  = 105
	keyDX   = 20
	keyDY   = 24
)

// Draw renders the typed text and the key grid.
func (k *Keyboard) Draw(c *Canvas) {
	fonts := k.page.Env().Fonts
	f := fonts.Font(SizeM, false)

	c.RoundRect(8, 44, c.Width()-8, 78, 6, colorBG, colorFG, 1)
	c.Text(fonts.Font(SizeM, true), 16, fonts.Middle(SizeM, 61), k.Text()+"_", colorFG)

	grid := k.layout()
	cur := k.CurrentKey()
	for r := 0; r < keyboardRows; r++ {
		for col := 0; col < keyboardCols; col++ {
			label := grid[r][col]
			if utf8.RuneCountInString(label) != 1 {
				continue
			}
			x := keyLeft + col*keyDX
			y := keyTop + r*keyDY
			if r == k.row && col == k.col {
				c.RoundRect(x-keyDX/2, y-keyDY/2, x+keyDX/2, y+keyDY/2, 5, colorBG, colorFG, 2)
			}
			c.TextCentered(f, x, fonts.Middle(SizeM, y), label, colorFG)
		}
	}

	k.drawSpecial(c, KeyDelete, 0, 10, 11, cur == KeyDelete)
	k.drawSpecial(c, KeyOK, 0, 12, 13, cur == KeyOK)
	k.drawSpecialTall(c, cur == KeyShift)
}

func (k *Keyboard) drawSpecial(c *Canvas, label string, row, col0, col1 int, sel bool) {
	fonts := k.page.Env().Fonts
	x0 := keyLeft + col0*keyDX - keyDX/2
	x1 := keyLeft + col1*keyDX + keyDX/2
	y := keyTop + row*keyDY
	fill := colorBG
	if sel {
		fill = colorDim
	}
	c.RoundRect(x0+1, y-keyDY/2+1, x1-1, y+keyDY/2-1, 5, fill, colorFG, 1)
	c.TextCentered(fonts.Small, (x0+x1)/2, y+4, label, colorFG)
}

func (k *Keyboard) drawSpecialTall(c *Canvas, sel bool) {
	fonts := k.page.Env().Fonts
	x0, x1 := keyLeft-keyDX/2, keyLeft+keyDX/2
	y0, y1 := keyTop+keyDY/2, keyTop+2*keyDY+keyDY/2
	fill := colorBG
	if sel {
		fill = colorDim
	}
	c.RoundRect(x0+1, y0+1, x1-1, y1-1, 5, fill, colorFG, 1)
	label := "a"
	if !k.upper {
		label = "A"
	}
	c.TextCentered(fonts.Small, (x0+x1)/2, (y0+y1)/2+4, label, colorFG)
}
