//go:build rpi

package hal

import (
	"sync"
	"time"

	"astrotimer/internal/config"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
)

// fiveWay reads the joystick switch. Every line is pulled up and pressed
// when low; a press is reported on the falling edge once per debounce
// window.
type fiveWay struct {
	ch   chan KeyEvent
	done chan struct{}
	wg   sync.WaitGroup
	pins []*periphPin
}

func openFiveWay(cfg config.Switch, log *zap.Logger) (*fiveWay, error) {
	lines := []struct {
		name string
		code KeyCode
	}{
		{cfg.Up, KeyUp},
		{cfg.Down, KeyDown},
		{cfg.Left, KeyLeft},
		{cfg.Right, KeyRight},
		{cfg.Select, KeyEnter},
	}
	sw := &fiveWay{ch: make(chan KeyEvent, 16), done: make(chan struct{})}
	for _, l := range lines {
		p, err := openPin(l.name)
		if err != nil {
			sw.Close()
			return nil, err
		}
		p.edge = gpio.FallingEdge
		if err := p.Configure(GPIOModeInput, GPIOPullUp); err != nil {
			sw.Close()
			return nil, err
		}
		sw.pins = append(sw.pins, p)
		sw.wg.Add(1)
		go sw.watch(p, l.code, cfg.Debounce.Duration, log)
	}
	return sw, nil
}

func (s *fiveWay) Events() <-chan KeyEvent { return s.ch }

func (s *fiveWay) push(ev KeyEvent) {
	select {
	case s.ch <- ev:
	default:
	}
}

func (s *fiveWay) watch(p *periphPin, code KeyCode, debounce time.Duration, log *zap.Logger) {
	defer s.wg.Done()
	var last time.Time
	for {
		select {
		case <-s.done:
			return
		default:
		}
		if !p.p.WaitForEdge(100 * time.Millisecond) {
			continue
		}
		if p.p.Read() != gpio.Low {
			continue
		}
		now := time.Now()
		if now.Sub(last) < debounce {
			continue
		}
		last = now
		log.Debug("switch", zap.String("pin", p.Name()))
		s.push(KeyEvent{Code: code, Press: true})
	}
}

// Close stops the watchers and disables edge detection.
func (s *fiveWay) Close() {
	select {
	case <-s.done:
		return
	default:
		close(s.done)
	}
	s.wg.Wait()
	for _, p := range s.pins {
		_ = p.p.In(gpio.PullUp, gpio.NoEdge)
	}
}
