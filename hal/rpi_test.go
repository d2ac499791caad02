//go:build rpi

package hal

import (
	"testing"
	"time"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

var (
	_ HAL         = (*rpiHAL)(nil)
	_ Framebuffer = (*st7789)(nil)
	_ GPIOPin     = (*periphPin)(nil)
)

func TestFiveWayDebounce(t *testing.T) {
	raw := &gpiotest.Pin{N: "GPIO6", EdgesChan: make(chan gpio.Level, 4)}
	p := &periphPin{p: raw, edge: gpio.FallingEdge}
	if err := p.Configure(GPIOModeInput, GPIOPullUp); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	if level, _ := p.Read(); !level {
		t.Fatalf("idle level: got low, want high")
	}

	sw := &fiveWay{ch: make(chan KeyEvent, 4), done: make(chan struct{}), pins: []*periphPin{p}}
	sw.wg.Add(1)
	go sw.watch(p, KeyUp, time.Hour, zap.NewNop())
	defer sw.Close()

	raw.EdgesChan <- gpio.Low
	raw.EdgesChan <- gpio.High
	raw.EdgesChan <- gpio.Low

	select {
	case ev := <-sw.Events():
		if ev.Direction() != "up" {
			t.Fatalf("direction: got %q, want up", ev.Direction())
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no key event")
	}
	select {
	case ev := <-sw.Events():
		t.Fatalf("bounce reported: %+v", ev)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestFiveWayDropsWhenFull(t *testing.T) {
	sw := &fiveWay{ch: make(chan KeyEvent, 1), done: make(chan struct{})}
	sw.push(KeyEvent{Code: KeyUp, Press: true})
	sw.push(KeyEvent{Code: KeyDown, Press: true})
	if got := len(sw.ch); got != 1 {
		t.Fatalf("queued: got %d, want 1", got)
	}
	if ev := <-sw.ch; ev.Code != KeyUp {
		t.Fatalf("kept: got %v, want KeyUp", ev.Code)
	}
	sw.Close()
	sw.Close()
}
