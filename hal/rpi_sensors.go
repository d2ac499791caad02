//go:build rpi

package hal

import (
	"encoding/binary"
	"fmt"

	"astrotimer/internal/config"

	"go.uber.org/zap"
	"periph.io/x/conn/v3/i2c"
)

func probeSensors(bus i2c.Bus, cfg config.Sensors, log *zap.Logger) Sensors {
	s := Sensors{GaugeAddr: cfg.FuelGauge, MeterAddr: cfg.PowerMeter}

	g := &max17043{dev: &i2c.Dev{Bus: bus, Addr: cfg.FuelGauge}}
	if _, err := g.StateOfCharge(); err != nil {
		log.Warn("fuel gauge not answering", zap.Uint16("addr", cfg.FuelGauge), zap.Error(err))
	} else {
		s.Gauge = g
	}

	m, err := newINA(&i2c.Dev{Bus: bus, Addr: cfg.PowerMeter}, cfg)
	if err != nil {
		log.Warn("power meter not answering", zap.Uint16("addr", cfg.PowerMeter), zap.Error(err))
	} else {
		s.Meter = m
	}
	return s
}

func readReg(dev *i2c.Dev, reg byte) (uint16, error) {
	var b [2]byte
	if err := dev.Tx([]byte{reg}, b[:]); err != nil {
		return 0, fmt.Errorf("i2c %#02x reg %#02x: %w", dev.Addr, reg, err)
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func writeReg(dev *i2c.Dev, reg byte, v uint16) error {
	if err := dev.Tx([]byte{reg, byte(v >> 8), byte(v)}, nil); err != nil {
		return fmt.Errorf("i2c %#02x reg %#02x: %w", dev.Addr, reg, err)
	}
	return nil
}

// max17043 is the Maxim single-cell fuel gauge.
type max17043 struct {
	dev *i2c.Dev
}

const (
	maxRegVCell = 0x02
	maxRegSoC   = 0x04
)

func (g *max17043) CellVoltage() (float64, error) {
	v, err := readReg(g.dev, maxRegVCell)
	if err != nil {
		return 0, err
	}
	// 12 bits, 1.25mV per bit.
	return float64(v>>4) * 1.25 / 1000, nil
}

func (g *max17043) StateOfCharge() (float64, error) {
	v, err := readReg(g.dev, maxRegSoC)
	if err != nil {
		return 0, err
	}
	return float64(v>>8) + float64(v&0xff)/256, nil
}

// ina2xx covers the INA219 and INA226 current monitors, which share their
// register map below the calibration register.
type ina2xx struct {
	dev        *i2c.Dev
	currentLSB float64 // A per bit
	powerLSB   float64 // W per bit
}

const (
	inaRegConfig      = 0x00
	inaRegPower       = 0x03
	inaRegCurrent     = 0x04
	inaRegCalibration = 0x05
)

func newINA(dev *i2c.Dev, cfg config.Sensors) (*ina2xx, error) {
	var calFactor, powerRatio float64
	var conf uint16
	switch cfg.PowerMeterChip {
	case "ina226":
		// 16 averages, 1.1ms conversions, continuous shunt and bus.
		calFactor, powerRatio, conf = 0.00512, 25, 0x4527
	default:
		// 32V range, gain /8, 12-bit, continuous shunt and bus.
		calFactor, powerRatio, conf = 0.04096, 20, 0x399F
	}
	m := &ina2xx{dev: dev, currentLSB: cfg.MaxAmps / 32768}
	m.powerLSB = m.currentLSB * powerRatio

	if err := writeReg(dev, inaRegConfig, conf); err != nil {
		return nil, err
	}
	cal := uint16(calFactor / (m.currentLSB * cfg.ShuntOhms))
	if err := writeReg(dev, inaRegCalibration, cal); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *ina2xx) Current() (float64, error) {
	v, err := readReg(m.dev, inaRegCurrent)
	if err != nil {
		return 0, err
	}
	return float64(int16(v)) * m.currentLSB * 1000, nil
}

func (m *ina2xx) Power() (float64, error) {
	v, err := readReg(m.dev, inaRegPower)
	if err != nil {
		return 0, err
	}
	return float64(v) * m.powerLSB * 1000, nil
}
