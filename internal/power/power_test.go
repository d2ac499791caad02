package power

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

type fakeGauge struct {
	soc   float64
	volts float64
	fail  atomic.Bool
	reads atomic.Int32
}

func (g *fakeGauge) StateOfCharge() (float64, error) {
	g.reads.Add(1)
	if g.fail.Load() {
		return 0, errors.New("i2c: nack")
	}
	return g.soc, nil
}

func (g *fakeGauge) CellVoltage() (float64, error) {
	if g.fail.Load() {
		return 0, errors.New("i2c: nack")
	}
	return g.volts, nil
}

type fakeMeter struct{ err error }

func (m fakeMeter) Current() (float64, error) { return 412.5, m.err }
func (m fakeMeter) Power() (float64, error)   { return 2100, m.err }

func TestMonitorPublishes(t *testing.T) {
	g := &fakeGauge{soc: 64, volts: 3.9}
	var st State
	m := NewMonitor(g, &st, time.Millisecond, 3, nil)
	m.Start(context.Background())

	deadline := time.Now().Add(time.Second)
	for {
		if lvl, ok := st.Level(); ok {
			if lvl != 64 {
				t.Fatalf("level: got %v, want 64", lvl)
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("no reading published")
		}
		time.Sleep(time.Millisecond)
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("Stop: %v", err)
	}
	if err := m.Stop(); err != nil {
		t.Fatalf("second Stop: %v", err)
	}
}

func TestMonitorGivesUp(t *testing.T) {
	g := &fakeGauge{}
	g.fail.Store(true)
	var st State
	st.Set(50, 3.7, time.Now())

	m := NewMonitor(g, &st, time.Millisecond, 3, nil)
	err := m.Run(context.Background())
	if !errors.Is(err, ErrSensorUnavailable) {
		t.Fatalf("got %v, want ErrSensorUnavailable", err)
	}
	if got := g.reads.Load(); got != 3 {
		t.Fatalf("reads: got %d, want 3", got)
	}
	if _, ok := st.Level(); ok {
		t.Fatalf("state still valid after monitor gave up")
	}
}

func TestReadFallbacks(t *testing.T) {
	g := &fakeGauge{soc: 80, volts: 4.05}
	s := Read(g, fakeMeter{err: errors.New("no device")})
	lines := s.Lines()
	if lines[0] != "Cell voltage: 4.05 V" || lines[1] != "State of charge: 80.0 %" {
		t.Fatalf("gauge lines: got %q", lines[:2])
	}
	if lines[2] != "Current: -- mA" || lines[3] != "Power: -- mW" {
		t.Fatalf("meter lines: got %q", lines[2:])
	}

	s = Read(nil, fakeMeter{})
	lines = s.Lines()
	if !strings.Contains(lines[0], "--") || lines[2] != "Current: 412.5 mA" {
		t.Fatalf("got %q", lines)
	}
}

func TestLoadLine(t *testing.T) {
	if got := LoadLine(context.Background()); !strings.HasPrefix(got, "Load: ") {
		t.Fatalf("got %q", got)
	}
}
