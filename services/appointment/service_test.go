package appointment

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"wrenchworks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2030-06-03 is a Monday; the fixture mechanic works Mondays 9:00 to 17:00.
var testNow = time.Date(2030, time.June, 1, 12, 0, 0, 0, time.UTC)

func mondayAt(hour, min int) time.Time {
	return time.Date(2030, time.June, 3, hour, min, 0, 0, time.UTC)
}

type fakeAppointmentRepo struct {
	appts     map[string]*models.Appointment
	createErr error
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[string]*models.Appointment)}
}

func (r *fakeAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, fmt.Errorf("appointment %s not found", id)
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAppointmentRepo) GetByClient(clientID string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.ClientID == clientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) GetByDate(day time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		y1, m1, d1 := a.Date.Date()
		y2, m2, d2 := day.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) GetByMonth(year int, month time.Month) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.Date.Year() == year && a.Date.Month() == month {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) GetAt(at time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.Date.Equal(at) {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) Create(appt *models.Appointment) error {
	if r.createErr != nil {
		return r.createErr
	}
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

func (r *fakeAppointmentRepo) Update(appt *models.Appointment) error {
	if _, ok := r.appts[appt.ID]; !ok {
		return fmt.Errorf("appointment %s not found", appt.ID)
	}
	cp := *appt
	r.appts[appt.ID] = &cp
	return nil
}

type fakeMechanicRepo struct {
	mechanics []models.Mechanic
}

func (r *fakeMechanicRepo) GetByID(id string) (*models.Mechanic, error) {
	for i := range r.mechanics {
		if r.mechanics[i].ID == id {
			cp := r.mechanics[i]
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("mechanic %s not found", id)
}

func (r *fakeMechanicRepo) GetAll() ([]models.Mechanic, error) { return r.mechanics, nil }

func (r *fakeMechanicRepo) GetAllActive() ([]models.Mechanic, error) {
	var out []models.Mechanic
	for _, m := range r.mechanics {
		if m.Active {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMechanicRepo) GetAllBlocks() ([]models.ScheduleBlock, error) {
	var out []models.ScheduleBlock
	for _, m := range r.mechanics {
		if m.Active {
			out = append(out, m.Blocks...)
		}
	}
	return out, nil
}

func (r *fakeMechanicRepo) CountActive() (int, error) {
	n := 0
	for _, m := range r.mechanics {
		if m.Active {
			n++
		}
	}
	return n, nil
}

func (r *fakeMechanicRepo) Create(m *models.Mechanic) error {
	r.mechanics = append(r.mechanics, *m)
	return nil
}

func (r *fakeMechanicRepo) Update(m *models.Mechanic) error {
	for i := range r.mechanics {
		if r.mechanics[i].ID == m.ID {
			r.mechanics[i] = *m
			return nil
		}
	}
	return fmt.Errorf("mechanic %s not found", m.ID)
}

func (r *fakeMechanicRepo) Delete(id string) error { return nil }

func (r *fakeMechanicRepo) ReplaceSchedule(mechanicID string, blocks []models.ScheduleBlock) error {
	for i := range r.mechanics {
		if r.mechanics[i].ID == mechanicID {
			r.mechanics[i].Blocks = blocks
			return nil
		}
	}
	return fmt.Errorf("mechanic %s not found", mechanicID)
}

type fakeReminderScheduler struct {
	scheduled []models.ReminderPayload
	fireAts   []time.Time
}

func (s *fakeReminderScheduler) ScheduleReminder(payload models.ReminderPayload, fireAt time.Time) error {
	s.scheduled = append(s.scheduled, payload)
	s.fireAts = append(s.fireAts, fireAt)
	return nil
}

func newTestService() (*DefaultAppointmentService, *fakeAppointmentRepo, *fakeMechanicRepo, *fakeReminderScheduler) {
	appts := newFakeAppointmentRepo()
	mechs := &fakeMechanicRepo{mechanics: []models.Mechanic{
		{
			ID:          "m1",
			DisplayName: "Ana",
			Active:      true,
			Blocks: []models.ScheduleBlock{
				{MechanicID: "m1", Day: time.Monday, Start: 540, End: 1020},
			},
		},
		{
			ID:          "m2",
			DisplayName: "Bruno",
			Active:      true,
			Blocks: []models.ScheduleBlock{
				{MechanicID: "m2", Day: time.Tuesday, Start: 540, End: 1020},
			},
		},
	}}
	reminders := &fakeReminderScheduler{}
	svc := &DefaultAppointmentService{
		Appointments: appts,
		Mechanics:    mechs,
		Reminders:    reminders,
		Now:          func() time.Time { return testNow },
	}
	return svc, appts, mechs, reminders
}

func TestCreateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("books a pending appointment inside the mechanic's shift", func(t *testing.T) {
		svc, appts, _, reminders := newTestService()

		appt, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID:   "c1",
			MechanicID: "m1",
			Date:       mondayAt(10, 0),
			Service:    "Oil change",
		})
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentPending, appt.Status)
		assert.Len(t, appts.appts, 1)

		require.Len(t, reminders.scheduled, 1)
		assert.Equal(t, appt.ID, reminders.scheduled[0].AppointmentID)
		assert.Equal(t, mondayAt(10, 0).Add(-24*time.Hour), reminders.fireAts[0])
	})

	t.Run("rejects a past date", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID:   "c1",
			MechanicID: "m1",
			Date:       testNow.Add(-time.Hour),
			Service:    "Oil change",
		})
		assert.ErrorIs(t, err, ErrPastDate)
	})

	t.Run("rejects a mechanic with no covering block", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		// m2 works Tuesdays, not Mondays.
		_, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID:   "c1",
			MechanicID: "m2",
			Date:       mondayAt(10, 0),
			Service:    "Brake check",
		})
		assert.ErrorIs(t, err, ErrMechanicUnavailable)
	})

	t.Run("rejects a slot the mechanic already has booked", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c1", MechanicID: "m1", Date: mondayAt(10, 0), Service: "Oil change",
		})
		require.NoError(t, err)

		_, err = svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c2", MechanicID: "m1", Date: mondayAt(10, 0), Service: "Tires",
		})
		assert.ErrorIs(t, err, ErrMechanicUnavailable)
	})

	t.Run("allows the freed slot after a cancellation", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		first, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c1", MechanicID: "m1", Date: mondayAt(10, 0), Service: "Oil change",
		})
		require.NoError(t, err)
		_, err = svc.CancelAppointment(ctx, first.ID)
		require.NoError(t, err)

		_, err = svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c2", MechanicID: "m1", Date: mondayAt(10, 0), Service: "Tires",
		})
		assert.NoError(t, err)
	})

	t.Run("skips the reminder when the visit is less than a day away", func(t *testing.T) {
		svc, _, _, reminders := newTestService()

		// Monday 9:30 is about 45 hours after testNow, so push Now closer.
		svc.Now = func() time.Time { return mondayAt(9, 0).Add(-time.Hour) }

		_, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c1", MechanicID: "m1", Date: mondayAt(9, 30), Service: "Inspection",
		})
		require.NoError(t, err)
		assert.Empty(t, reminders.scheduled)
	})
}

func TestUpdateAppointment(t *testing.T) {
	ctx := context.Background()

	t.Run("reschedules within the shift", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		appt, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c1", MechanicID: "m1", Date: mondayAt(10, 0), Service: "Oil change",
		})
		require.NoError(t, err)

		updated, err := svc.UpdateAppointment(ctx, appt.ID, models.UpdateAppointmentRequest{
			MechanicID: "m1",
			Date:       mondayAt(14, 0),
		})
		require.NoError(t, err)
		assert.Equal(t, mondayAt(14, 0), updated.Date)
	})

	t.Run("does not block itself when kept on the same slot", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		appt, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c1", MechanicID: "m1", Date: mondayAt(10, 0), Service: "Oil change",
		})
		require.NoError(t, err)

		// Same mechanic, same time, new notes. The existing booking is the
		// appointment being edited, so it must not count as a conflict.
		_, err = svc.UpdateAppointment(ctx, appt.ID, models.UpdateAppointmentRequest{
			MechanicID: "m1",
			Date:       mondayAt(10, 0),
			Notes:      "bring the spare key",
		})
		assert.NoError(t, err)
	})

	t.Run("still detects conflicts with other appointments", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		_, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c1", MechanicID: "m1", Date: mondayAt(10, 0), Service: "Oil change",
		})
		require.NoError(t, err)
		second, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c2", MechanicID: "m1", Date: mondayAt(11, 0), Service: "Tires",
		})
		require.NoError(t, err)

		_, err = svc.UpdateAppointment(ctx, second.ID, models.UpdateAppointmentRequest{
			MechanicID: "m1",
			Date:       mondayAt(10, 0),
		})
		assert.ErrorIs(t, err, ErrMechanicUnavailable)
	})

	t.Run("refuses to edit a completed appointment", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		appt, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c1", MechanicID: "m1", Date: mondayAt(10, 0), Service: "Oil change",
		})
		require.NoError(t, err)
		_, err = svc.CompleteAppointment(ctx, appt.ID)
		require.NoError(t, err)

		_, err = svc.UpdateAppointment(ctx, appt.ID, models.UpdateAppointmentRequest{
			MechanicID: "m1",
			Date:       mondayAt(14, 0),
		})
		var transition *InvalidTransitionError
		assert.True(t, errors.As(err, &transition))
	})
}

func TestAppointmentTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("pending completes and cancels", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		a1, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c1", MechanicID: "m1", Date: mondayAt(10, 0), Service: "Oil change",
		})
		require.NoError(t, err)
		done, err := svc.CompleteAppointment(ctx, a1.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentCompleted, done.Status)

		a2, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c1", MechanicID: "m1", Date: mondayAt(11, 0), Service: "Tires",
		})
		require.NoError(t, err)
		cancelled, err := svc.CancelAppointment(ctx, a2.ID)
		require.NoError(t, err)
		assert.Equal(t, models.AppointmentCancelled, cancelled.Status)
	})

	t.Run("terminal states stay put", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		appt, err := svc.CreateAppointment(ctx, models.CreateAppointmentRequest{
			ClientID: "c1", MechanicID: "m1", Date: mondayAt(10, 0), Service: "Oil change",
		})
		require.NoError(t, err)
		_, err = svc.CancelAppointment(ctx, appt.ID)
		require.NoError(t, err)

		var transition *InvalidTransitionError

		_, err = svc.CompleteAppointment(ctx, appt.ID)
		require.True(t, errors.As(err, &transition))
		assert.Equal(t, models.AppointmentCancelled, transition.From)

		_, err = svc.CancelAppointment(ctx, appt.ID)
		assert.True(t, errors.As(err, &transition))
	})
}

func TestAvailableMechanics(t *testing.T) {
	t.Run("lists only mechanics on shift, ordered by name", func(t *testing.T) {
		svc, _, mechs, _ := newTestService()
		mechs.mechanics[1].Blocks = []models.ScheduleBlock{
			{MechanicID: "m2", Day: time.Monday, Start: 540, End: 1020},
		}

		options, err := svc.AvailableMechanics(mondayAt(10, 0))
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.Equal(t, "Ana", options[0].DisplayName)
		assert.Equal(t, "Bruno", options[1].DisplayName)
	})

	t.Run("past timestamps resolve to nobody", func(t *testing.T) {
		svc, _, _, _ := newTestService()

		options, err := svc.AvailableMechanics(testNow.Add(-time.Hour))
		require.NoError(t, err)
		assert.Empty(t, options)
	})
}

func TestUnavailableDays(t *testing.T) {
	svc, _, mechs, _ := newTestService()
	// One active mechanic covering only Mondays: every other day of June 2030
	// has no schedule coverage at all.
	mechs.mechanics = mechs.mechanics[:1]

	days, err := svc.UnavailableDays(2030, time.June)
	require.NoError(t, err)

	// June 2030 has 30 days, four of them Mondays.
	assert.Len(t, days, 26)
	assert.Contains(t, days, "2030-06-02")    // a Sunday
	assert.NotContains(t, days, "2030-06-03") // a covered Monday
}
