package schedule

import (
	"testing"
	"time"

	"wrenchworks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// weekdayBlocks covers Monday through Friday for one notional mechanic.
func weekdayBlocks() []models.ScheduleBlock {
	var blocks []models.ScheduleBlock
	for day := time.Monday; day <= time.Friday; day++ {
		blocks = append(blocks, models.ScheduleBlock{MechanicID: "mech-1", Day: day, Start: 9 * 60, End: 17 * 60})
	}
	return blocks
}

func apptOn(date time.Time, status string) models.Appointment {
	return models.Appointment{ID: "appt", MechanicID: "mech-1", Date: date, Status: status}
}

func TestUnavailableDays(t *testing.T) {
	// June 2030: Saturdays are 1, 8, 15, 22, 29; Sundays 2, 9, 16, 23, 30.
	year, month := 2030, time.June

	t.Run("uncovered weekdays are unavailable", func(t *testing.T) {
		got := UnavailableDays(year, month, weekdayBlocks(), nil, 2)
		assert.Contains(t, got, "2030-06-01") // Saturday
		assert.Contains(t, got, "2030-06-02") // Sunday
		assert.NotContains(t, got, "2030-06-03")
		assert.NotContains(t, got, "2030-06-28")
	})

	t.Run("every Sunday is out when Sundays have no blocks", func(t *testing.T) {
		// Regardless of how many appointments exist that day.
		sunday := time.Date(2030, time.June, 9, 10, 0, 0, 0, time.UTC)
		got := UnavailableDays(year, month, weekdayBlocks(), []models.Appointment{apptOn(sunday, models.AppointmentPending)}, 5)
		for _, d := range []string{"2030-06-02", "2030-06-09", "2030-06-16", "2030-06-23", "2030-06-30"} {
			assert.Contains(t, got, d)
		}
	})

	t.Run("day at mechanic headcount is unavailable", func(t *testing.T) {
		monday := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)
		appts := []models.Appointment{
			apptOn(monday.Add(9*time.Hour), models.AppointmentPending),
			apptOn(monday.Add(11*time.Hour), models.AppointmentPending),
		}
		got := UnavailableDays(year, month, weekdayBlocks(), appts, 2)
		assert.Contains(t, got, "2030-06-03")
	})

	t.Run("one below headcount stays available", func(t *testing.T) {
		monday := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)
		appts := []models.Appointment{
			apptOn(monday.Add(9*time.Hour), models.AppointmentPending),
		}
		got := UnavailableDays(year, month, weekdayBlocks(), appts, 2)
		assert.NotContains(t, got, "2030-06-03")
	})

	t.Run("cancelled appointments do not count toward capacity", func(t *testing.T) {
		monday := time.Date(2030, time.June, 3, 0, 0, 0, 0, time.UTC)
		appts := []models.Appointment{
			apptOn(monday.Add(9*time.Hour), models.AppointmentPending),
			apptOn(monday.Add(11*time.Hour), models.AppointmentCancelled),
		}
		got := UnavailableDays(year, month, weekdayBlocks(), appts, 2)
		assert.NotContains(t, got, "2030-06-03")
	})

	t.Run("no blocks at all marks the whole month", func(t *testing.T) {
		got := UnavailableDays(year, month, nil, nil, 3)
		require.Len(t, got, 30)
	})

	t.Run("output is sorted ISO dates", func(t *testing.T) {
		got := UnavailableDays(year, month, weekdayBlocks(), nil, 2)
		require.NotEmpty(t, got)
		for i := 1; i < len(got); i++ {
			assert.Less(t, got[i-1], got[i])
		}
		_, err := time.Parse(DateLayout, got[0])
		assert.NoError(t, err)
	})
}
