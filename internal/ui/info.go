package ui

// Line is one row of an info panel.
type Line struct {
	Text  string
	Error bool
}

// Info is a panel of text lines under the status bar.
type Info struct {
	page  *Page
	lines []Line
	left  int
	top   int
	size  Size
}

// NewInfo attaches an empty panel to p.
func NewInfo(p *Page) *Info {
	return &Info{page: p, left: 16, top: 50, size: SizeM}
}

// SetOrigin moves the top-left corner of the first line.
func (in *Info) SetOrigin(left, top int) { in.left, in.top = left, top }

// SetLines replaces the panel content.
func (in *Info) SetLines(lines ...Line) { in.lines = append(in.lines[:0], lines...) }

// Lines returns the panel content.
func (in *Info) Lines() []Line { return in.lines }

// Text turns plain strings into lines.
func Text(ss ...string) []Line {
	out := make([]Line, len(ss))
	for i, s := range ss {
		out[i] = Line{Text: s}
	}
	return out
}

// Draw renders the lines top to bottom.
func (in *Info) Draw(c *Canvas) {
	fonts := in.page.Env().Fonts
	f := fonts.Font(in.size, false)
	step := fonts.LineStep[in.size]
	for i, l := range in.lines {
		col := colorFG
		if l.Error {
			col = colorError
		}
		c.Text(f, in.left, in.top+i*step+fonts.AscentCap[in.size], l.Text, col)
	}
}
