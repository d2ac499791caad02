//go:build rpi

package hal

import (
	"fmt"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
)

// periphPin adapts a periph.io pin.
type periphPin struct {
	p    gpio.PinIO
	edge gpio.Edge
}

func openPin(name string) (*periphPin, error) {
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("gpio: no pin %q", name)
	}
	return &periphPin{p: p, edge: gpio.NoEdge}, nil
}

func (p *periphPin) Name() string { return p.p.Name() }

func (p *periphPin) Configure(mode GPIOMode, pull GPIOPull) error {
	switch mode {
	case GPIOModeOutput:
		return p.p.Out(gpio.Low)
	case GPIOModeInput:
		pl := gpio.Float
		switch pull {
		case GPIOPullUp:
			pl = gpio.PullUp
		case GPIOPullDown:
			pl = gpio.PullDown
		}
		return p.p.In(pl, p.edge)
	}
	return fmt.Errorf("gpio: pin %s: invalid mode", p.Name())
}

func (p *periphPin) Read() (bool, error) { return p.p.Read() == gpio.High, nil }

func (p *periphPin) Write(level bool) error {
	if err := p.p.Out(gpio.Level(level)); err != nil {
		return fmt.Errorf("gpio: pin %s: %w", p.Name(), err)
	}
	return nil
}
