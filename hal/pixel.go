package hal

import (
	"fmt"
	"image"
)

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// fillRGB565 paints every pixel of an RGB565 buffer with one color.
func fillRGB565(buf []byte, r, g, b uint8) {
	p := rgb565(r, g, b)
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = byte(p)
		buf[i+1] = byte(p >> 8)
	}
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// BlitRGBA converts img to RGB565 into the framebuffer, little-endian, one
// pixel per two bytes. Pixels outside either bound are skipped.
func BlitRGBA(fb Framebuffer, img *image.RGBA) error {
	if fb.Format() != PixelFormatRGB565 {
		return fmt.Errorf("blit: pixel format %d: %w", fb.Format(), ErrNotImplemented)
	}
	buf := fb.Buffer()
	stride := fb.StrideBytes()
	w := min(fb.Width(), img.Rect.Dx())
	h := min(fb.Height(), img.Rect.Dy())
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride:]
		dst := buf[y*stride:]
		for x := 0; x < w; x++ {
			p := rgb565(src[x*4], src[x*4+1], src[x*4+2])
			dst[x*2] = byte(p)
			dst[x*2+1] = byte(p >> 8)
		}
	}
	return nil
}

// ToRGBA decodes an RGB565 little-endian buffer into an opaque image.
func ToRGBA(buf []byte, width, height, stride int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := buf[y*stride:]
		dst := img.Pix[y*img.Stride:]
		for x := 0; x < width; x++ {
			r, g, b := rgb888From565(uint16(src[x*2]) | uint16(src[x*2+1])<<8)
			dst[x*4] = r
			dst[x*4+1] = g
			dst[x*4+2] = b
			dst[x*4+3] = 0xFF
		}
	}
	return img
}

// rotateToPanel turns a w×h little-endian landscape frame clockwise into a
// h×w big-endian portrait one.
func rotateToPanel(dst, src []byte, w, h int) {
	for py := 0; py < w; py++ {
		for px := 0; px < h; px++ {
			s := ((h-1-px)*w + py) * 2
			o := (py*h + px) * 2
			dst[o] = src[s+1]
			dst[o+1] = src[s]
		}
	}
}
