package ui

import (
	"fmt"
	"image"
	"image/color"
	"unicode/utf8"

	"astrotimer/internal/config"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

// Picture shows one image, at a fixed position or centered on the frame.
type Picture struct {
	page *Page
	img  image.Image
	pos  *config.Point
	qr   config.QR
}

// NewPicture attaches a picture to p. A nil opt, or one without an image,
// shows the empty icon centered.
func NewPicture(p *Page, opt *config.PictureOption, qr config.QR) *Picture {
	pic := &Picture{page: p, qr: qr}
	name := EmptyIcon
	if opt != nil {
		if opt.Image != "" {
			name = opt.Image
		}
		pic.pos = opt.Position
	}
	pic.img = p.Env().Assets.Icon(name)
	return pic
}

// Image returns the picture shown.
func (pic *Picture) Image() image.Image { return pic.img }

// SetImage replaces the picture.
func (pic *Picture) SetImage(img image.Image) { pic.img = img }

// ModuleSize returns the pixels per QR module used for text: the large
// module up to the threshold length, the small one above it.
func (pic *Picture) ModuleSize(text string) int {
	if utf8.RuneCountInString(text) > pic.qr.Threshold {
		return pic.qr.SmallModule
	}
	return pic.qr.LargeModule
}

// SetQR replaces the picture with a QR code encoding text.
func (pic *Picture) SetQR(text string) error {
	img, err := RenderQR(text, pic.ModuleSize(text), pic.qr.Border)
	if err != nil {
		return err
	}
	pic.img = img
	pic.page.Log().Debug("qr code generated",
		zap.Int("len", len(text)),
		zap.Int("size", img.Bounds().Dx()))
	return nil
}

// RenderQR encodes text as black modules on white, module pixels per
// module, with a quiet zone of border modules.
func RenderQR(text string, module, border int) (*image.Gray, error) {
	if module < 1 {
		return nil, fmt.Errorf("qr: module size %d", module)
	}
	code, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("qr: %w", err)
	}
	code.DisableBorder = true
	bits := code.Bitmap()

	n := len(bits) + 2*border
	img := image.NewGray(image.Rect(0, 0, n*module, n*module))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y, row := range bits {
		for x, on := range row {
			if !on {
				continue
			}
			x0, y0 := (x+border)*module, (y+border)*module
			for dy := 0; dy < module; dy++ {
				for dx := 0; dx < module; dx++ {
					img.SetGray(x0+dx, y0+dy, color.Gray{Y: 0})
				}
			}
		}
	}
	return img, nil
}

// Position returns the top-left corner of the picture inside area.
func (pic *Picture) Position(area image.Rectangle) image.Point {
	if pic.pos != nil {
		return image.Pt(pic.pos.X, pic.pos.Y)
	}
	b := pic.img.Bounds()
	return image.Pt(area.Min.X+(area.Dx()-b.Dx())/2, area.Min.Y+(area.Dy()-b.Dy())/2)
}

// Draw pastes the picture under the status bar. A picture taller than that
// space hides the status bar and is centered on the whole frame.
func (pic *Picture) Draw(c *Canvas) {
	area := image.Rect(0, StatusBarHeight, c.Width(), c.Height())
	fits := pic.img.Bounds().Dy() <= area.Dy()
	if !fits {
		area.Min.Y = 0
	}
	pic.page.SetStatusBar(fits)
	at := pic.Position(area)
	c.Paste(pic.img, at.X, at.Y)
}
