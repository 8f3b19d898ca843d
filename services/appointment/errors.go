package appointment

import "fmt"

// ErrPastDate rejects booking attempts for timestamps already behind "now".
var ErrPastDate = fmt.Errorf("appointment date is in the past")

// ErrMechanicUnavailable rejects a booking whose mechanic is not in the
// availability resolver's output for the requested slot.
var ErrMechanicUnavailable = fmt.Errorf("mechanic is not available at the requested time")

// InvalidTransitionError reports an attempt to move an appointment out of a
// terminal status.
type InvalidTransitionError struct {
	From string
	To   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid appointment status transition %s -> %s", e.From, e.To)
}
