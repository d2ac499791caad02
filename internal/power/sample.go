package power

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/load"
)

// Sample is one reading of both sensors. A sensor that failed leaves its
// OK flag false.
type Sample struct {
	Voltage float64
	SoC     float64
	GaugeOK bool

	Current float64
	Power   float64
	MeterOK bool
}

// Read samples g and m. Either may be nil.
func Read(g Gauge, m Meter) Sample {
	var s Sample
	if g != nil {
		v, errV := g.CellVoltage()
		soc, errS := g.StateOfCharge()
		if errV == nil && errS == nil {
			s.Voltage, s.SoC, s.GaugeOK = v, soc, true
		}
	}
	if m != nil {
		c, errC := m.Current()
		p, errP := m.Power()
		if errC == nil && errP == nil {
			s.Current, s.Power, s.MeterOK = c, p, true
		}
	}
	return s
}

// Lines renders the sample as the battery screen text, with "--" for a
// missing sensor.
func (s Sample) Lines() []string {
	lines := make([]string, 0, 4)
	if s.GaugeOK {
		lines = append(lines,
			fmt.Sprintf("Cell voltage: %.2f V", s.Voltage),
			fmt.Sprintf("State of charge: %.1f %%", s.SoC))
	} else {
		lines = append(lines, "Cell voltage: -- V", "State of charge: -- %")
	}
	if s.MeterOK {
		lines = append(lines,
			fmt.Sprintf("Current: %.1f mA", s.Current),
			fmt.Sprintf("Power: %.1f mW", s.Power))
	} else {
		lines = append(lines, "Current: -- mA", "Power: -- mW")
	}
	return lines
}

// LoadLine returns the system load averages, or "Load: --" when they cannot
// be read.
func LoadLine(ctx context.Context) string {
	avg, err := load.AvgWithContext(ctx)
	if err != nil {
		return "Load: --"
	}
	return fmt.Sprintf("Load: %.2f %.2f %.2f", avg.Load1, avg.Load5, avg.Load15)
}
