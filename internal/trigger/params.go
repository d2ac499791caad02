package trigger

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// DefaultOffset is the camera wake offset used when none is configured.
var DefaultOffset = Quantity{Value: 300, Unit: UnitMillisecond}

// MaxShots is the largest shot count a sequence accepts.
const MaxShots = 1_000_000

// maxSeconds is the longest duration a time.Duration holds.
var maxSeconds = time.Duration(math.MaxInt64).Seconds()

// endSlack is added to the end-time estimate for process start-up.
const endSlack = 100 * time.Millisecond

// Parameters describes one exposure sequence.
type Parameters struct {
	Exposure Quantity `json:"exposure"`
	Shots    Quantity `json:"shots"`
	Interval Quantity `json:"interval"`
	Offset   Quantity `json:"offset"`
}

// Timing is Parameters normalised to durations.
type Timing struct {
	Exposure time.Duration
	Interval time.Duration
	Offset   time.Duration
	Shots    int
}

// Validate checks units, signs and ranges.
func (p Parameters) Validate() error {
	var errs []error
	for _, f := range []struct {
		name string
		q    Quantity
	}{
		{"exposure", p.Exposure},
		{"interval", p.Interval},
		{"offset", p.Offset},
	} {
		if !ValidUnit(f.q.Unit) {
			errs = append(errs, fmt.Errorf("%s: unknown unit %q", f.name, f.q.Unit))
		}
		if f.q.Value < 0 || math.IsNaN(f.q.Value) {
			errs = append(errs, fmt.Errorf("%s: must be >= 0, got %v", f.name, f.q.Value))
			continue
		}
		if s, err := f.q.Seconds(); err == nil && s >= maxSeconds {
			errs = append(errs, fmt.Errorf("%s: %v out of range", f.name, f.q))
		}
	}
	switch v := p.Shots.Value; {
	case v < 0 || math.IsNaN(v):
		errs = append(errs, fmt.Errorf("shots: must be >= 0, got %v", v))
	case v > MaxShots:
		errs = append(errs, fmt.Errorf("shots: at most %d, got %v", MaxShots, v))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidParameters, errors.Join(errs...))
	}
	return nil
}

// Timing validates p and converts it. A shot count of zero runs one shot.
func (p Parameters) Timing() (Timing, error) {
	if err := p.Validate(); err != nil {
		return Timing{}, err
	}
	var t Timing
	t.Exposure, _ = p.Exposure.Duration()
	t.Interval, _ = p.Interval.Duration()
	t.Offset, _ = p.Offset.Duration()
	t.Shots = int(p.Shots.Value)
	if t.Shots < 1 {
		t.Shots = 1
	}
	return t, nil
}

// Total is the expected run time: every shot with the wake offset folded
// into its exposure, the intervals between shots, the wake pre-roll and
// the trailing offset.
func (t Timing) Total() time.Duration {
	n := time.Duration(t.Shots)
	return n*(t.Offset+t.Exposure) + (n-1)*t.Interval + 2*t.Offset
}

// EstimateEnd is the wall-clock time at which a sequence started at start
// is expected to end.
func (t Timing) EstimateEnd(start time.Time) time.Time {
	return start.Add(t.Total() + endSlack)
}
