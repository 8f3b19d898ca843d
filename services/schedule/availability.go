package schedule

import (
	"sort"
	"time"

	"wrenchworks/models"
)

// AvailableMechanics resolves which mechanics can take an appointment at the
// exact timestamp at. It assumes every mechanic's blocks already passed
// ValidateBlocks and does not re-validate.
//
// Rules, in order:
//   - a timestamp in the past (relative to now) yields an empty result;
//   - a mechanic with any non-cancelled appointment at exactly at is excluded
//     (timestamp equality, not interval overlap);
//   - the remaining mechanics qualify when at least one block covers at's
//     day-of-week with its time-of-day in [Start, End).
//
// The result is ordered by display name ascending so the selection control
// renders deterministically.
func AvailableMechanics(now, at time.Time, mechanics []models.Mechanic, appointments []models.Appointment) []models.Mechanic {
	if at.Before(now) {
		return nil
	}

	booked := make(map[string]bool)
	for _, appt := range appointments {
		if appt.Status == models.AppointmentCancelled {
			continue
		}
		if appt.Date.Equal(at) {
			booked[appt.MechanicID] = true
		}
	}

	day := at.Weekday()
	minute := MinutesOfDay(at)

	var available []models.Mechanic
	for _, m := range mechanics {
		if !m.Active || booked[m.ID] {
			continue
		}
		for _, b := range m.Blocks {
			if CoversTime(b, day, minute) {
				available = append(available, m)
				break
			}
		}
	}

	sort.SliceStable(available, func(i, j int) bool {
		return available[i].DisplayName < available[j].DisplayName
	})
	return available
}

// MechanicOptions projects resolved mechanics down to the (id, displayName)
// pairs the booking UI consumes.
func MechanicOptions(mechanics []models.Mechanic) []models.MechanicOption {
	opts := make([]models.MechanicOption, 0, len(mechanics))
	for _, m := range mechanics {
		opts = append(opts, models.MechanicOption{ID: m.ID, DisplayName: m.DisplayName})
	}
	return opts
}
