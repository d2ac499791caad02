package ui

import (
	"image"
	"image/color"

	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
	"golang.org/x/image/draw"
	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

var (
	colorBG          = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xff}
	colorFG          = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorDim         = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	colorStatusBG    = color.RGBA{R: 0x40, G: 0x40, B: 0x40, A: 0xff}
	colorError       = color.RGBA{R: 0xff, G: 0x30, B: 0x30, A: 0xff}
	colorTransparent = color.RGBA{}
)

// Colors for screens drawing their own text.
var (
	ColorText  = colorFG
	ColorError = colorError
)

// Canvas is the in-memory frame a page draws into. It satisfies
// drivers.Displayer so tinyfont can render onto it.
type Canvas struct {
	img *image.RGBA
}

var _ drivers.Displayer = (*Canvas)(nil)

// NewCanvas returns a black canvas of the given size.
func NewCanvas(w, h int) *Canvas {
	c := &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
	c.Clear()
	return c
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Width() int  { return c.img.Rect.Dx() }
func (c *Canvas) Height() int { return c.img.Rect.Dy() }

func (c *Canvas) Size() (x, y int16) {
	return int16(c.Width()), int16(c.Height())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	c.img.SetRGBA(int(x), int(y), col)
}

// Display is a no-op; the surface flushes the canvas.
func (c *Canvas) Display() error { return nil }

func (c *Canvas) FillRectangle(x, y, width, height int16, col color.RGBA) error {
	c.Fill(image.Rect(int(x), int(y), int(x)+int(width), int(y)+int(height)), col)
	return nil
}

func (c *Canvas) SetRotation(rotation drivers.Rotation) error {
	_ = rotation
	return nil
}

// Clear paints the whole canvas background.
func (c *Canvas) Clear() {
	c.Fill(c.img.Rect, colorBG)
}

// Fill paints r with a solid colour.
func (c *Canvas) Fill(r image.Rectangle, col color.RGBA) {
	draw.Draw(c.img, r.Intersect(c.img.Rect), image.NewUniform(col), image.Point{}, draw.Src)
}

// RoundRect draws a rounded rectangle from (x0, y0) to (x1, y1). A zero
// alpha fill leaves the inside untouched.
func (c *Canvas) RoundRect(x0, y0, x1, y1, radius int, fill, stroke color.RGBA, width float64) {
	gc := draw2dimg.NewGraphicContext(c.img)
	gc.SetFillColor(fill)
	gc.SetStrokeColor(stroke)
	gc.SetLineWidth(width)
	gc.BeginPath()
	r := float64(2 * radius)
	draw2dkit.RoundedRectangle(gc, float64(x0), float64(y0), float64(x1), float64(y1), r, r)
	if fill.A == 0 {
		gc.Stroke()
		return
	}
	gc.FillStroke()
}

// Paste composites src with its top-left corner at (x, y).
func (c *Canvas) Paste(src image.Image, x, y int) {
	b := src.Bounds()
	dst := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(c.img, dst, src, b.Min, draw.Over)
}

// Text writes s with its baseline at y.
func (c *Canvas) Text(f tinyfont.Fonter, x, y int, s string, col color.RGBA) {
	tinyfont.WriteLine(c, f, int16(x), int16(y), s, col)
}

// TextCentered writes s horizontally centered on cx.
func (c *Canvas) TextCentered(f tinyfont.Fonter, cx, y int, s string, col color.RGBA) {
	c.Text(f, cx-TextWidth(f, s)/2, y, s, col)
}

// TextRight writes s so that it ends at x.
func (c *Canvas) TextRight(f tinyfont.Fonter, x, y int, s string, col color.RGBA) {
	c.Text(f, x-TextWidth(f, s), y, s, col)
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(f tinyfont.Fonter, s string) int {
	_, outbox := tinyfont.LineWidth(f, s)
	return int(outbox)
}
