package trigger

import "errors"

var (
	// ErrNoHandoff is returned when the hand-off record does not exist.
	ErrNoHandoff = errors.New("trigger: no hand-off record")
	// ErrNoProgress is returned when no progress has been published yet.
	ErrNoProgress = errors.New("trigger: no progress record")
	// ErrInvalidParameters wraps every parameter validation failure.
	ErrInvalidParameters = errors.New("trigger: invalid parameters")
)
