package appointment

import (
	"context"
	"fmt"
	"time"

	appointmentRepo "wrenchworks/database/repository/appointment"
	mechanicRepo "wrenchworks/database/repository/mechanic"
	"wrenchworks/models"
	"wrenchworks/services/notification"
	"wrenchworks/services/schedule"
	"wrenchworks/services/tasks"
	"wrenchworks/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const reminderLead = 24 * time.Hour

// DefaultAppointmentService is the production AppointmentService.
type DefaultAppointmentService struct {
	Appointments appointmentRepo.AppointmentRepository
	Mechanics    mechanicRepo.MechanicRepository
	Notifier     notification.NotificationService
	Reminders    tasks.ReminderScheduler

	// Now is the clock used for past-date checks; tests override it.
	Now func() time.Time
}

func (s *DefaultAppointmentService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// AvailableMechanics resolves who can take an appointment at the exact timestamp.
func (s *DefaultAppointmentService) AvailableMechanics(at time.Time) ([]models.MechanicOption, error) {
	mechanics, appts, err := s.snapshotAt(at)
	if err != nil {
		return nil, err
	}
	available := schedule.AvailableMechanics(s.now(), at, mechanics, appts)
	return schedule.MechanicOptions(available), nil
}

// UnavailableDays lists the fully unavailable days of a month for the calendar widget.
func (s *DefaultAppointmentService) UnavailableDays(year int, month time.Month) ([]string, error) {
	blocks, err := s.Mechanics.GetAllBlocks()
	if err != nil {
		return nil, fmt.Errorf("failed to load schedules: %w", err)
	}
	appts, err := s.Appointments.GetByMonth(year, month)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	headcount, err := s.Mechanics.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count mechanics: %w", err)
	}
	return schedule.UnavailableDays(year, month, blocks, appts, headcount), nil
}

// snapshotAt fetches the schedule/appointment snapshot the resolver consumes.
func (s *DefaultAppointmentService) snapshotAt(at time.Time) ([]models.Mechanic, []models.Appointment, error) {
	mechanics, err := s.Mechanics.GetAllActive()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load mechanics: %w", err)
	}
	appts, err := s.Appointments.GetAt(at)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load appointments: %w", err)
	}
	return mechanics, appts, nil
}

// checkEligibility re-runs the availability resolution for one mechanic at the
// requested slot. This is stricter than trusting the UI's pre-filtered list:
// every appointment write re-validates server-side.
func (s *DefaultAppointmentService) checkEligibility(mechanicID string, at time.Time, ignoreApptID string) error {
	if at.Before(s.now()) {
		return ErrPastDate
	}
	mechanics, appts, err := s.snapshotAt(at)
	if err != nil {
		return err
	}
	// When editing, the appointment being moved must not block itself.
	if ignoreApptID != "" {
		filtered := appts[:0]
		for _, a := range appts {
			if a.ID != ignoreApptID {
				filtered = append(filtered, a)
			}
		}
		appts = filtered
	}
	for _, m := range schedule.AvailableMechanics(s.now(), at, mechanics, appts) {
		if m.ID == mechanicID {
			return nil
		}
	}
	return ErrMechanicUnavailable
}

// CreateAppointment books a visit.
func (s *DefaultAppointmentService) CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error) {
	if err := s.checkEligibility(req.MechanicID, req.Date, ""); err != nil {
		return nil, err
	}

	appt := &models.Appointment{
		ID:         uuid.New().String(),
		ClientID:   req.ClientID,
		VehicleID:  req.VehicleID,
		MechanicID: req.MechanicID,
		Date:       req.Date,
		Service:    req.Service,
		Notes:      req.Notes,
		Status:     models.AppointmentPending,
	}
	if err := s.Appointments.Create(appt); err != nil {
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	s.notifyBooked(ctx, appt)
	s.scheduleReminder(appt)
	return appt, nil
}

// UpdateAppointment reschedules a pending visit or reassigns its mechanic.
func (s *DefaultAppointmentService) UpdateAppointment(ctx context.Context, id string, req models.UpdateAppointmentRequest) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.AppointmentPending {
		return nil, &InvalidTransitionError{From: appt.Status, To: appt.Status}
	}
	if err := s.checkEligibility(req.MechanicID, req.Date, appt.ID); err != nil {
		return nil, err
	}

	appt.MechanicID = req.MechanicID
	appt.Date = req.Date
	appt.Notes = req.Notes
	if err := s.Appointments.Update(appt); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		data := map[string]string{"appointmentId": appt.ID, "date": appt.Date.Format(time.RFC3339)}
		if err := s.Notifier.Notify(ctx, appt.ClientID, "appointment_rescheduled",
			"Appointment updated",
			fmt.Sprintf("Your visit is now scheduled for %s.", appt.Date.Format("Mon, Jan 2 15:04")), data); err != nil {
			utils.GetLogger().Warn("reschedule notification failed", zap.Error(err))
		}
	}
	return appt, nil
}

// CompleteAppointment moves Pending to Completed. Terminal states stay put.
func (s *DefaultAppointmentService) CompleteAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return s.transition(ctx, id, models.AppointmentCompleted)
}

// CancelAppointment moves Pending to Cancelled. Terminal states stay put.
func (s *DefaultAppointmentService) CancelAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	return s.transition(ctx, id, models.AppointmentCancelled)
}

func (s *DefaultAppointmentService) transition(ctx context.Context, id, target string) (*models.Appointment, error) {
	appt, err := s.Appointments.GetByID(id)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.AppointmentPending {
		return nil, &InvalidTransitionError{From: appt.Status, To: target}
	}

	appt.Status = target
	if err := s.Appointments.Update(appt); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		kind, title, body := "appointment_completed", "Visit completed", "Your workshop visit has been completed."
		if target == models.AppointmentCancelled {
			kind, title, body = "appointment_cancelled", "Appointment cancelled", "Your workshop appointment has been cancelled."
		}
		data := map[string]string{"appointmentId": appt.ID, "status": appt.Status}
		if err := s.Notifier.Notify(ctx, appt.ClientID, kind, title, body, data); err != nil {
			utils.GetLogger().Warn("status notification failed", zap.Error(err))
		}
		if target == models.AppointmentCancelled {
			when := appt.Date.Format("Mon, Jan 2 15:04")
			html := fmt.Sprintf("<p>Your appointment on %s has been cancelled.</p>", when)
			text := fmt.Sprintf("Your appointment on %s has been cancelled.", when)
			if err := s.Notifier.SendEmail(ctx, appt.ClientID, "Appointment cancelled", html, text); err != nil {
				utils.GetLogger().Warn("cancellation email failed", zap.Error(err))
			}
		}
	}
	return appt, nil
}

// GetAppointmentByID retrieves one appointment.
func (s *DefaultAppointmentService) GetAppointmentByID(id string) (*models.Appointment, error) {
	return s.Appointments.GetByID(id)
}

// GetClientAppointments lists a client's appointments, newest first.
func (s *DefaultAppointmentService) GetClientAppointments(clientID string) ([]models.Appointment, error) {
	return s.Appointments.GetByClient(clientID)
}

// GetAppointmentsByDate lists every appointment on a calendar day.
func (s *DefaultAppointmentService) GetAppointmentsByDate(day time.Time) ([]models.Appointment, error) {
	return s.Appointments.GetByDate(day)
}

func (s *DefaultAppointmentService) notifyBooked(ctx context.Context, appt *models.Appointment) {
	if s.Notifier == nil {
		return
	}
	logger := utils.GetLogger()
	when := appt.Date.Format("Mon, Jan 2 15:04")
	data := map[string]string{"appointmentId": appt.ID, "date": appt.Date.Format(time.RFC3339)}

	if err := s.Notifier.Notify(ctx, appt.ClientID, "appointment_booked",
		"Appointment confirmed", fmt.Sprintf("Your %s visit is booked for %s.", appt.Service, when), data); err != nil {
		logger.Warn("booking notification failed", zap.Error(err))
	}

	html := fmt.Sprintf("<p>Your <strong>%s</strong> appointment is confirmed for %s.</p>", appt.Service, when)
	text := fmt.Sprintf("Your %s appointment is confirmed for %s.", appt.Service, when)
	if err := s.Notifier.SendEmail(ctx, appt.ClientID, "Appointment confirmed", html, text); err != nil {
		logger.Warn("booking confirmation email failed", zap.Error(err))
	}
}

func (s *DefaultAppointmentService) scheduleReminder(appt *models.Appointment) {
	if s.Reminders == nil {
		return
	}
	fireAt := appt.Date.Add(-reminderLead)
	if fireAt.Before(s.now()) {
		return
	}
	payload := models.ReminderPayload{
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		Title:         "Appointment reminder",
		Body:          fmt.Sprintf("Your %s visit is tomorrow at %s.", appt.Service, appt.Date.Format("15:04")),
		FireDate:      fireAt.Format(time.RFC3339),
	}
	if err := s.Reminders.ScheduleReminder(payload, fireAt); err != nil {
		utils.GetLogger().Warn("failed to schedule reminder", zap.String("appointmentID", appt.ID), zap.Error(err))
	}
}
