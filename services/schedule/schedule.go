// Package schedule holds the pure scheduling computations: weekly block
// validation, mechanic availability resolution, and the monthly
// unavailable-day calendar. Nothing in this package touches I/O; callers fetch
// a snapshot of schedules and appointments first and persist only on success.
package schedule

import (
	"sort"
	"time"

	"wrenchworks/models"
)

// ValidateBlocks checks a mechanic's full proposed weekly schedule. It fails
// with *InvertedIntervalError when any block ends at or before its start, and
// with *OverlapError when two blocks on the same day overlap. Blocks are
// half-open [Start, End), so a block ending exactly where the next one starts
// is a legal back-to-back shift.
//
// The whole set is validated before the caller writes anything: on error no
// prior days are committed.
func ValidateBlocks(blocks []models.ScheduleBlock) error {
	byDay := make(map[time.Weekday][]models.ScheduleBlock)
	for _, b := range blocks {
		if b.End <= b.Start {
			return &InvertedIntervalError{Day: b.Day, Block: b}
		}
		byDay[b.Day] = append(byDay[b.Day], b)
	}

	// Iterate Sunday..Saturday so the first reported error is deterministic.
	for day := time.Sunday; day <= time.Saturday; day++ {
		dayBlocks := byDay[day]
		if len(dayBlocks) < 2 {
			continue
		}
		sort.SliceStable(dayBlocks, func(i, j int) bool {
			return dayBlocks[i].Start < dayBlocks[j].Start
		})
		for i := 0; i < len(dayBlocks)-1; i++ {
			if dayBlocks[i].End > dayBlocks[i+1].Start {
				return &OverlapError{Day: day}
			}
		}
	}
	return nil
}

// MinutesOfDay returns t's time-of-day as minutes from midnight.
func MinutesOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// CoversTime reports whether the block covers the given day and minute,
// start inclusive, end exclusive.
func CoversTime(b models.ScheduleBlock, day time.Weekday, minute int) bool {
	return b.Day == day && minute >= b.Start && minute < b.End
}
