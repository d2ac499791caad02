//go:build rpi

package hal

import (
	"errors"
	"fmt"

	"astrotimer/internal/config"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

type rpiHAL struct {
	log     *zap.Logger
	lcd     *st7789
	sw      *fiveWay
	shutter GPIOPin
	focus   GPIOPin
	bus     i2c.BusCloser
	sensors Sensors
}

// New initialises the board: the ST7789 panel on SPI, the 5-way switch, the
// trigger lines and whichever power sensors answer on I2C.
func New(cfg *config.Config, log *zap.Logger) (HAL, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("hal")

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph init: %w", err)
	}

	shutter, err := openPin(cfg.Pins.Shutter)
	if err != nil {
		return nil, err
	}
	focus, err := openPin(cfg.Pins.Focus)
	if err != nil {
		return nil, err
	}
	for _, p := range []GPIOPin{shutter, focus} {
		if err := outputLow(p); err != nil {
			return nil, err
		}
	}

	lcd, err := openST7789(cfg.Display)
	if err != nil {
		return nil, err
	}
	sw, err := openFiveWay(cfg.Switch, log)
	if err != nil {
		lcd.Close()
		return nil, err
	}

	h := &rpiHAL{log: log, lcd: lcd, sw: sw, shutter: shutter, focus: focus}
	h.sensors = Sensors{GaugeAddr: cfg.Sensors.FuelGauge, MeterAddr: cfg.Sensors.PowerMeter}
	bus, err := i2creg.Open(cfg.Sensors.Bus)
	if err != nil {
		log.Warn("i2c bus unavailable", zap.String("bus", cfg.Sensors.Bus), zap.Error(err))
	} else {
		h.bus = bus
		h.sensors = probeSensors(bus, cfg.Sensors, log)
	}

	log.Info("rpi hal ready",
		zap.Bool("fuel_gauge", h.sensors.Gauge != nil),
		zap.Bool("power_meter", h.sensors.Meter != nil))
	return h, nil
}

func (h *rpiHAL) Display() Display               { return rpiDisplay{lcd: h.lcd} }
func (h *rpiHAL) Input() Input                   { return rpiInput{sw: h.sw} }
func (h *rpiHAL) Pins() (shutter, focus GPIOPin) { return h.shutter, h.focus }
func (h *rpiHAL) Sensors() Sensors               { return h.sensors }

func (h *rpiHAL) Close() error {
	errs := []error{h.shutter.Write(false), h.focus.Write(false)}
	h.sw.Close()
	errs = append(errs, h.lcd.Close())
	if h.bus != nil {
		errs = append(errs, h.bus.Close())
	}
	return errors.Join(errs...)
}

type rpiDisplay struct {
	lcd *st7789
}

func (d rpiDisplay) Framebuffer() Framebuffer { return d.lcd }

type rpiInput struct {
	sw *fiveWay
}

func (in rpiInput) Keyboard() Keyboard { return in.sw }
