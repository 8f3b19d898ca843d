package schedule

import (
	"time"

	"wrenchworks/models"
)

// DateLayout is the ISO date format handed to the calendar widget.
const DateLayout = "2006-01-02"

// UnavailableDays computes which calendar days of a month cannot take any new
// appointment. A day is unavailable when its day-of-week has zero schedule
// blocks across all mechanics, or when the number of non-cancelled
// appointments already dated that day reaches the mechanic headcount.
//
// The headcount check is deliberately coarse: it compares the aggregate daily
// appointment count against the number of mechanics without looking at
// per-slot distribution.
//
// The result is a sorted list of "yyyy-MM-dd" strings.
func UnavailableDays(year int, month time.Month, blocks []models.ScheduleBlock, appointments []models.Appointment, mechanicCount int) []string {
	covered := make(map[time.Weekday]bool)
	for _, b := range blocks {
		covered[b.Day] = true
	}

	countByDate := make(map[string]int)
	for _, appt := range appointments {
		if appt.Status == models.AppointmentCancelled {
			continue
		}
		countByDate[appt.Date.Format(DateLayout)]++
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	var unavailable []string
	for d := first; d.Month() == month; d = d.AddDate(0, 0, 1) {
		dateStr := d.Format(DateLayout)
		if !covered[d.Weekday()] || countByDate[dateStr] >= mechanicCount {
			unavailable = append(unavailable, dateStr)
		}
	}
	return unavailable
}
