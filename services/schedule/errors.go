package schedule

import (
	"fmt"
	"time"

	"wrenchworks/models"
)

// InvertedIntervalError reports a schedule block whose end is not after its
// start. The offending block is carried so the caller can point at it.
type InvertedIntervalError struct {
	Day   time.Weekday
	Block models.ScheduleBlock
}

func (e *InvertedIntervalError) Error() string {
	return fmt.Sprintf("schedule: inverted interval on %s: %s ends at or before it starts (%s-%s)",
		e.Day, e.Block.MechanicID, FormatMinutes(e.Block.Start), FormatMinutes(e.Block.End))
}

// OverlapError reports two blocks on the same day that overlap.
type OverlapError struct {
	Day time.Weekday
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("schedule: overlapping intervals on %s", e.Day)
}

// FormatMinutes renders minutes-from-midnight as HH:MM for error messages.
func FormatMinutes(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
