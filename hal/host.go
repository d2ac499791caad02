//go:build !rpi

package hal

import (
	"errors"
	"time"

	"astrotimer/internal/config"

	"go.uber.org/zap"
)

// simulatedDrain is how long the simulated battery lasts.
const simulatedDrain = 6 * time.Hour

type hostHAL struct {
	log     *zap.Logger
	fb      *hostFramebuffer
	kbd     *hostKeyboard
	shutter *virtualPin
	focus   *virtualPin
	sensors Sensors
}

// New returns a host HAL: a virtual framebuffer, virtual trigger pins that
// log their edges, and simulated power sensors at the configured addresses.
func New(cfg *config.Config, log *zap.Logger) (HAL, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("hal")

	edge := func(name string, e Edge) {
		if e.Level {
			log.Debug("pin high", zap.String("pin", name))
			return
		}
		log.Debug("pin low", zap.String("pin", name), zap.Duration("held", e.Held))
	}
	shutter := newVirtualPin(cfg.Pins.Shutter)
	focus := newVirtualPin(cfg.Pins.Focus)
	for _, p := range []*virtualPin{shutter, focus} {
		p.onEdge = edge
		if err := outputLow(p); err != nil {
			return nil, err
		}
	}

	now := time.Now
	h := &hostHAL{
		log:     log,
		fb:      newHostFramebuffer(cfg.Display.Width, cfg.Display.Height),
		kbd:     newHostKeyboard(),
		shutter: shutter,
		focus:   focus,
		sensors: Sensors{
			Gauge:     newSimGauge(now, simulatedDrain),
			Meter:     &simMeter{t0: now(), now: now},
			GaugeAddr: cfg.Sensors.FuelGauge,
			MeterAddr: cfg.Sensors.PowerMeter,
		},
	}
	log.Info("host hal ready",
		zap.Int("width", h.fb.width),
		zap.Int("height", h.fb.height))
	return h, nil
}

func (h *hostHAL) Display() Display               { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input                   { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Pins() (shutter, focus GPIOPin) { return h.shutter, h.focus }
func (h *hostHAL) Sensors() Sensors               { return h.sensors }

func (h *hostHAL) Close() error {
	return errors.Join(h.shutter.Write(false), h.focus.Write(false))
}

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
