package power

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Monitor polls a fuel gauge into a State until stopped, or until the gauge
// fails too many times in a row.
type Monitor struct {
	gauge       Gauge
	state       *State
	every       time.Duration
	maxFailures int
	log         *zap.Logger
	now         func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	err    error
}

// NewMonitor returns a monitor sampling g every interval.
func NewMonitor(g Gauge, st *State, every time.Duration, maxFailures int, log *zap.Logger) *Monitor {
	if log == nil {
		log = zap.NewNop()
	}
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &Monitor{
		gauge:       g,
		state:       st,
		every:       every,
		maxFailures: maxFailures,
		log:         log,
		now:         time.Now,
	}
}

// Start runs the monitor in the background. It is a no-op when already
// running.
func (m *Monitor) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done != nil {
		return
	}
	ctx, m.cancel = context.WithCancel(ctx)
	m.done = make(chan struct{})
	go func(done chan struct{}) {
		defer close(done)
		err := m.Run(ctx)
		m.mu.Lock()
		m.err = err
		m.mu.Unlock()
	}(m.done)
}

// Stop cancels the monitor and waits for it. It returns the error that
// ended the loop, if any other than cancellation.
func (m *Monitor) Stop() error {
	m.mu.Lock()
	cancel, done := m.cancel, m.done
	m.mu.Unlock()
	if done == nil {
		return nil
	}
	cancel()
	<-done

	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancel, m.done = nil, nil
	return m.err
}

// Run samples immediately and then on every tick. It returns nil when ctx
// is done and ErrSensorUnavailable after maxFailures consecutive errors.
func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.every)
	defer ticker.Stop()

	failures := 0
	for {
		if err := m.sample(); err != nil {
			failures++
			m.log.Warn("fuel gauge read failed", zap.Int("failures", failures), zap.Error(err))
			if failures >= m.maxFailures {
				m.state.Invalidate()
				m.log.Error("fuel gauge not responding, monitor stopped")
				return fmt.Errorf("%w: %d consecutive errors: %w", ErrSensorUnavailable, failures, err)
			}
		} else {
			failures = 0
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (m *Monitor) sample() error {
	soc, err := m.gauge.StateOfCharge()
	if err != nil {
		return err
	}
	v, err := m.gauge.CellVoltage()
	if err != nil {
		return err
	}
	m.state.Set(soc, v, m.now())
	m.log.Debug("battery", zap.Float64("soc", soc), zap.Float64("voltage", v))
	return nil
}
