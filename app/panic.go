package app

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"astrotimer/internal/buildinfo"
	"astrotimer/internal/ui"

	"go.uber.org/zap"
	"tinygo.org/x/tinyfont"
)

// panicked logs a recovered panic with its stack and puts it on screen.
func (a *App) panicked(v any, stack []byte) error {
	screen := ""
	if cur := a.m.Current(); cur != nil {
		screen = cur.Key()
	}
	a.log.Error("panic",
		zap.String("screen", screen),
		zap.Any("value", v),
		zap.ByteString("stack", stack))

	lines := []string{
		"Panic:",
		fmt.Sprintf("screen: %s", screen),
		fmt.Sprintf("panic: %v", v),
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, strings.TrimLeft(line, "\t"))
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	if err := a.surface.Render(func(c *ui.Canvas) { drawPanic(c, a.env.Fonts.Small, lines) }); err != nil {
		a.log.Warn("render panic screen", zap.Error(err))
	}
	return fmt.Errorf("%w: %v", ErrPanic, v)
}

// drawPanic writes lines top to bottom, wrapping at the frame width, until
// the frame is full.
func drawPanic(c *ui.Canvas, font tinyfont.Fonter, lines []string) {
	_, outbox := tinyfont.LineWidth(font, "0")
	fontWidth := int(outbox)
	fontHeight := int(font.GetYAdvance())
	if fontWidth <= 0 || fontHeight <= 0 {
		return
	}
	cols := max(1, c.Width()/fontWidth)

	y := fontHeight
	for _, line := range lines {
		for len(line) > 0 {
			if y > c.Height() {
				return
			}
			chunk, rest := takeRunes(line, cols)
			c.Text(font, 0, y, chunk, ui.ColorError)
			y += fontHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if len(s) <= n {
		return s, ""
	}
	var i, count int
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		if size <= 0 {
			break
		}
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}

// splash shows the product name and build until the start screen is up.
func (a *App) splash() error {
	fonts := a.env.Fonts
	return a.surface.Render(func(c *ui.Canvas) {
		cx, cy := c.Width()/2, c.Height()/2
		c.TextCentered(fonts.Font(ui.SizeL, true), cx, fonts.Middle(ui.SizeL, cy-20), "AstroTimer", ui.ColorText)
		c.TextCentered(fonts.Font(ui.SizeM, false), cx, fonts.Middle(ui.SizeM, cy+15), buildinfo.Short(), ui.ColorText)
	})
}
