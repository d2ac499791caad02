package trigger

import (
	"fmt"
	"math"
	"time"
)

// Unit names accepted for durations.
const (
	UnitSecond      = "s"
	UnitMillisecond = "ms"
	UnitMicrosecond = "us"
)

var unitSeconds = map[string]float64{
	UnitSecond:      1,
	UnitMillisecond: 1e-3,
	UnitMicrosecond: 1e-6,
}

// ValidUnit reports whether u is a known duration unit.
func ValidUnit(u string) bool {
	_, ok := unitSeconds[u]
	return ok
}

// Quantity is a numeric value with a unit, as carried by the hand-off record.
// Counts (shots) use an empty unit.
type Quantity struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// Seconds normalises the quantity through the unit table.
func (q Quantity) Seconds() (float64, error) {
	f, ok := unitSeconds[q.Unit]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q", q.Unit)
	}
	return q.Value * f, nil
}

// Duration is Seconds as a time.Duration, rounded to the nanosecond.
func (q Quantity) Duration() (time.Duration, error) {
	s, err := q.Seconds()
	if err != nil {
		return 0, err
	}
	return time.Duration(math.Round(s * float64(time.Second))), nil
}

func (q Quantity) String() string {
	return fmt.Sprintf("%g%s", q.Value, q.Unit)
}
