//go:build !rpi

package hal

import "testing"

func TestFrontOnlyAfterPresent(t *testing.T) {
	fb := newHostFramebuffer(4, 2)
	dst := make([]byte, len(fb.front))

	if _, ok := fb.frontIfNewer(dst, 0); ok {
		t.Fatal("got a frame before any Present")
	}
	fillRGB565(fb.Buffer(), 0xff, 0xff, 0xff)
	if dst[0] != 0 {
		t.Fatal("back buffer leaked before Present")
	}
	if err := fb.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	frame, ok := fb.frontIfNewer(dst, 0)
	if !ok || frame != 1 {
		t.Fatalf("got frame %d ok=%v, want 1 true", frame, ok)
	}
	if dst[0] != 0xff || dst[1] != 0xff {
		t.Fatalf("got pixel %#x%02x, want 0xffff", dst[1], dst[0])
	}
	if _, ok := fb.frontIfNewer(dst, frame); ok {
		t.Fatal("same frame reported twice")
	}
}
