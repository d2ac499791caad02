// Package power tracks the battery and the board's power draw.
package power

import (
	"errors"
	"sync"
	"time"
)

// ErrSensorUnavailable is returned when a sensor is missing or keeps failing.
var ErrSensorUnavailable = errors.New("power: sensor unavailable")

// Gauge is a battery fuel gauge.
type Gauge interface {
	// StateOfCharge returns the charge in percent.
	StateOfCharge() (float64, error)
	// CellVoltage returns the cell voltage in volts.
	CellVoltage() (float64, error)
}

// Meter is a supply current and power monitor.
type Meter interface {
	// Current returns the supply current in milliamps.
	Current() (float64, error)
	// Power returns the supply power in milliwatts.
	Power() (float64, error)
}

// Reading is the last battery sample.
type Reading struct {
	SoC     float64
	Voltage float64
	At      time.Time
	Valid   bool
}

// State is the shared battery reading. The SoC monitor is its only writer;
// every status bar reads it.
type State struct {
	mu sync.RWMutex
	r  Reading
}

// Set publishes a new reading.
func (s *State) Set(soc, voltage float64, at time.Time) {
	s.mu.Lock()
	s.r = Reading{SoC: soc, Voltage: voltage, At: at, Valid: true}
	s.mu.Unlock()
}

// Invalidate marks the reading unknown.
func (s *State) Invalidate() {
	s.mu.Lock()
	s.r.Valid = false
	s.mu.Unlock()
}

// Reading returns the last reading.
func (s *State) Reading() Reading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.r
}

// Level returns the state of charge and whether it is known.
func (s *State) Level() (float64, bool) {
	r := s.Reading()
	return r.SoC, r.Valid
}
