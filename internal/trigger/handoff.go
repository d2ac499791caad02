package trigger

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"time"
)

// SequenceTime holds the start and estimated end of a run in Unix seconds.
type SequenceTime struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// Handoff is the record passed from the parameter screen to the running
// screen.
type Handoff struct {
	Parameters Parameters   `json:"sequence_parameters"`
	Time       SequenceTime `json:"sequence_time"`
}

// NewHandoff stamps p with start and the estimated end time.
func NewHandoff(p Parameters, start time.Time) (Handoff, error) {
	t, err := p.Timing()
	if err != nil {
		return Handoff{}, err
	}
	return Handoff{
		Parameters: p,
		Time: SequenceTime{
			Start: unixSeconds(start),
			End:   unixSeconds(t.EstimateEnd(start)),
		},
	}, nil
}

// EndTime returns the estimated end as a time.Time.
func (h Handoff) EndTime() time.Time { return fromUnixSeconds(h.Time.End) }

// StartTime returns the start as a time.Time.
func (h Handoff) StartTime() time.Time { return fromUnixSeconds(h.Time.Start) }

// WriteHandoff atomically replaces the record at path.
func WriteHandoff(path string, h Handoff) error {
	if err := writeJSON(path, h); err != nil {
		return fmt.Errorf("write hand-off: %w", err)
	}
	return nil
}

// ReadHandoff loads and validates the record at path. A missing file
// returns an error matching ErrNoHandoff.
func ReadHandoff(path string) (Handoff, error) {
	var h Handoff
	if err := readJSON(path, &h, ErrNoHandoff); err != nil {
		return Handoff{}, err
	}
	if err := h.Parameters.Validate(); err != nil {
		return Handoff{}, err
	}
	return h, nil
}

// RemoveHandoff deletes the record; a missing file is not an error.
func RemoveHandoff(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func unixSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Second)
}

func fromUnixSeconds(s float64) time.Time {
	sec, frac := math.Modf(s)
	return time.Unix(int64(sec), int64(frac*float64(time.Second)))
}
