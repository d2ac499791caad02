package hal

import (
	"fmt"
	"sync"
	"time"
)

// GPIOMode selects whether a pin is an input or output.
type GPIOMode uint8

const (
	GPIOModeInput GPIOMode = iota
	GPIOModeOutput
)

// GPIOPull selects the pull resistor configuration.
type GPIOPull uint8

const (
	GPIOPullNone GPIOPull = iota
	GPIOPullUp
	GPIOPullDown
)

// GPIOPin is a single digital IO pin.
type GPIOPin interface {
	Name() string
	Configure(mode GPIOMode, pull GPIOPull) error
	Read() (level bool, err error)
	Write(level bool) error
}

// Edge is one recorded level change of a virtual pin. Held is how long the
// previous level lasted; for a falling edge of a trigger line it is the
// length of the pulse.
type Edge struct {
	At    time.Time
	Level bool
	Held  time.Duration
}

// virtualPin stands in for a trigger or switch line off the device. Every
// level change is kept so a run can be checked afterwards.
type virtualPin struct {
	mu    sync.Mutex
	name  string
	mode  GPIOMode
	pull  GPIOPull
	level bool
	now   func() time.Time
	since time.Time
	edges []Edge
	// onEdge runs outside the lock after every level change.
	onEdge func(name string, e Edge)
}

func newVirtualPin(name string) *virtualPin {
	return &virtualPin{
		name: name,
		mode: GPIOModeInput,
		pull: GPIOPullNone,
		now:  time.Now,
	}
}

func (p *virtualPin) Name() string { return p.name }

func (p *virtualPin) Configure(mode GPIOMode, pull GPIOPull) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if mode != GPIOModeInput && mode != GPIOModeOutput {
		return fmt.Errorf("gpio: pin %s: invalid mode %d", p.name, mode)
	}
	if pull > GPIOPullDown {
		return fmt.Errorf("gpio: pin %s: invalid pull %d", p.name, pull)
	}
	p.mode, p.pull = mode, pull
	p.since = p.now()
	if mode == GPIOModeInput {
		// Switch lines idle at their pull level.
		p.level = pull == GPIOPullUp
	}
	return nil
}

func (p *virtualPin) Read() (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level, nil
}

func (p *virtualPin) Write(level bool) error {
	p.mu.Lock()
	if p.mode != GPIOModeOutput {
		p.mu.Unlock()
		return fmt.Errorf("gpio: pin %s: not an output", p.name)
	}
	if p.level == level {
		p.mu.Unlock()
		return nil
	}
	at := p.now()
	e := Edge{At: at, Level: level, Held: at.Sub(p.since)}
	p.level, p.since = level, at
	p.edges = append(p.edges, e)
	hook := p.onEdge
	p.mu.Unlock()

	if hook != nil {
		hook(p.name, e)
	}
	return nil
}

// Edges returns the level changes recorded so far.
func (p *virtualPin) Edges() []Edge {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]Edge(nil), p.edges...)
}

// Pulses returns the length of every completed high pulse.
func (p *virtualPin) Pulses() []time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []time.Duration
	for _, e := range p.edges {
		if !e.Level {
			out = append(out, e.Held)
		}
	}
	return out
}

// outputLow configures pin as an output driven low.
func outputLow(pin GPIOPin) error {
	if err := pin.Configure(GPIOModeOutput, GPIOPullNone); err != nil {
		return err
	}
	return pin.Write(false)
}
