//go:build !rpi && cgo

package hal

import (
	"errors"
	"fmt"

	"astrotimer/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

// WindowAvailable reports whether RunWindow can open a window in this build.
const WindowAvailable = true

// RunWindow opens a desktop window showing the framebuffer of a host HAL
// and forwards keyboard input. It blocks until the window closes or step
// returns ErrQuit.
func RunWindow(h HAL, step func() error, scale int) error {
	hh, ok := h.(*hostHAL)
	if !ok {
		return fmt.Errorf("window: %T is not a host hal: %w", h, ErrNotImplemented)
	}
	if scale <= 0 {
		scale = 2
	}

	g := &hostGame{h: hh, step: step}
	ebiten.SetWindowTitle("AstroTimer (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(hh.fb.width*scale, hh.fb.height*scale)
	ebiten.SetTPS(60)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h       *hostHAL
	fbImg   *ebiten.Image
	scratch []byte
	shown   uint64
	step    func() error
}

func (g *hostGame) Update() error {
	g.h.kbd.poll()
	if g.step != nil {
		if err := g.step(); err != nil {
			if errors.Is(err, ErrQuit) {
				return ebiten.Termination
			}
			return err
		}
	}
	return nil
}

// Draw converts the LCD front buffer only when a new frame was presented.
func (g *hostGame) Draw(screen *ebiten.Image) {
	fb := g.h.fb
	if g.fbImg == nil {
		g.scratch = make([]byte, len(fb.front))
		g.fbImg = ebiten.NewImage(fb.width, fb.height)
	}

	if frame, ok := fb.frontIfNewer(g.scratch, g.shown); ok {
		g.shown = frame
		g.fbImg.WritePixels(ToRGBA(g.scratch, fb.width, fb.height, fb.stride).Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.fb.width, g.h.fb.height
}
