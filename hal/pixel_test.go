//go:build !rpi

package hal

import (
	"image"
	"image/color"
	"testing"
)

func TestBlitRGBARoundTrip(t *testing.T) {
	fb := newHostFramebuffer(4, 2)
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 0xff, A: 0xff})
	img.SetRGBA(3, 1, color.RGBA{G: 0xff, B: 0xff, A: 0xff})

	if err := BlitRGBA(fb, img); err != nil {
		t.Fatalf("BlitRGBA: %v", err)
	}
	if got := uint16(fb.buf[0]) | uint16(fb.buf[1])<<8; got != 0xF800 {
		t.Fatalf("got pixel %#04x, want 0xf800", got)
	}

	out := ToRGBA(fb.buf, fb.width, fb.height, fb.stride)
	if got := out.RGBAAt(3, 1); got != (color.RGBA{G: 0xff, B: 0xff, A: 0xff}) {
		t.Fatalf("got %v, want cyan", got)
	}
	if got := out.RGBAAt(1, 0); got != (color.RGBA{A: 0xff}) {
		t.Fatalf("got %v, want black", got)
	}
}

func TestBlitRGBAClipsLargerImage(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	img := image.NewRGBA(image.Rect(0, 0, 5, 5))
	if err := BlitRGBA(fb, img); err != nil {
		t.Fatalf("BlitRGBA: %v", err)
	}
}

func TestRotateToPanel(t *testing.T) {
	// 3x2 landscape frame, pixel value = index.
	const w, h = 3, 2
	src := make([]byte, w*h*2)
	for i := 0; i < w*h; i++ {
		src[i*2] = byte(i)
	}
	dst := make([]byte, len(src))
	rotateToPanel(dst, src, w, h)

	// Clockwise: the bottom-left source pixel lands top-left, big-endian.
	want := []byte{3, 0, 4, 1, 5, 2}
	for i, v := range want {
		if got := dst[i*2+1]; got != v {
			t.Fatalf("pixel %d: got %d, want %d", i, got, v)
		}
	}
}
