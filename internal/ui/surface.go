package ui

import (
	"image"
	"sync"

	"astrotimer/hal"
)

// Surface owns the single frame: every Render rebuilds it from scratch and
// flushes it to the framebuffer.
type Surface struct {
	mu     sync.Mutex
	fb     hal.Framebuffer
	canvas *Canvas
	frames uint64
}

// NewSurface returns a surface sized to fb.
func NewSurface(fb hal.Framebuffer) *Surface {
	return &Surface{fb: fb, canvas: NewCanvas(fb.Width(), fb.Height())}
}

// Size returns the frame size in pixels.
func (s *Surface) Size() (w, h int) {
	return s.fb.Width(), s.fb.Height()
}

// Render clears the frame, lets draw fill it and presents it.
func (s *Surface) Render(draw func(c *Canvas)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.canvas.Clear()
	draw(s.canvas)
	if err := hal.BlitRGBA(s.fb, s.canvas.Image()); err != nil {
		return err
	}
	s.frames++
	return s.fb.Present()
}

// Frames returns how many frames have been presented.
func (s *Surface) Frames() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}

// Snapshot returns a copy of the last rendered frame.
func (s *Surface) Snapshot() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	src := s.canvas.Image()
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}
