//go:build !rpi

package hal

import (
	"math"
	"time"
)

// simGauge discharges a simulated cell linearly from full.
type simGauge struct {
	t0    time.Time
	now   func() time.Time
	drain time.Duration
}

func newSimGauge(now func() time.Time, drain time.Duration) *simGauge {
	return &simGauge{t0: now(), now: now, drain: drain}
}

func (g *simGauge) StateOfCharge() (float64, error) {
	used := float64(g.now().Sub(g.t0)) / float64(g.drain) * 100
	return math.Max(0, 100-used), nil
}

func (g *simGauge) CellVoltage() (float64, error) {
	soc, _ := g.StateOfCharge()
	return 3.3 + 0.9*soc/100, nil
}

// simMeter reports a slowly wobbling supply draw on a 5V rail.
type simMeter struct {
	t0  time.Time
	now func() time.Time
}

func (m *simMeter) Current() (float64, error) {
	s := m.now().Sub(m.t0).Seconds()
	return 320 + 40*math.Sin(s/7), nil
}

func (m *simMeter) Power() (float64, error) {
	ma, _ := m.Current()
	return ma * 5.0, nil
}
