package hal

import (
	"context"
	"os"

	"golang.org/x/term"
)

type keyPusher interface {
	push(ev KeyEvent)
}

// attachTerminal puts stdin in raw mode and feeds decoded keys to kp until
// ctx ends. Ctrl-C calls interrupt. A stdin that is not a terminal is left
// alone.
func attachTerminal(ctx context.Context, kp keyPusher, interrupt func()) (restore func(), err error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	go func() {
		buf := make([]byte, 16)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil || ctx.Err() != nil {
				return
			}
			for _, ev := range decodeTerminal(buf[:n]) {
				if ev.Rune == 0x03 {
					interrupt()
					return
				}
				kp.push(ev)
			}
		}
	}()
	return func() { _ = term.Restore(fd, old) }, nil
}

// decodeTerminal turns one read of raw terminal input into key presses.
// ESC [ A..D are the arrows; a lone ESC is escape.
func decodeTerminal(b []byte) []KeyEvent {
	var out []KeyEvent
	for i := 0; i < len(b); i++ {
		switch c := b[i]; {
		case c == 0x1b && i+2 < len(b) && b[i+1] == '[':
			code := KeyUnknown
			switch b[i+2] {
			case 'A':
				code = KeyUp
			case 'B':
				code = KeyDown
			case 'C':
				code = KeyRight
			case 'D':
				code = KeyLeft
			}
			if code != KeyUnknown {
				out = append(out, KeyEvent{Code: code, Press: true})
			}
			i += 2
		case c == 0x1b:
			out = append(out, KeyEvent{Code: KeyEscape, Press: true})
		case c == '\r' || c == '\n':
			out = append(out, KeyEvent{Code: KeyEnter, Press: true})
		case c == 0x7f || c == 0x08:
			out = append(out, KeyEvent{Code: KeyBackspace, Press: true})
		default:
			out = append(out, KeyEvent{Press: true, Rune: rune(c)})
		}
	}
	return out
}
