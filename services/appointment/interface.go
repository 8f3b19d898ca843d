package appointment

import (
	"context"
	"time"

	"wrenchworks/models"
)

// AppointmentService books and manages workshop visits. Availability is
// resolved against a snapshot of schedules and appointments fetched per call;
// the unique (mechanic, timestamp) index on the appointments collection is the
// backstop for two staff members racing on the same slot.
type AppointmentService interface {
	// AvailableMechanics resolves who can take an appointment at the exact
	// timestamp, as (id, displayName) pairs ordered by display name.
	AvailableMechanics(at time.Time) ([]models.MechanicOption, error)
	// UnavailableDays lists the fully unavailable days of a month as ISO
	// "yyyy-MM-dd" strings for the calendar widget.
	UnavailableDays(year int, month time.Month) ([]string, error)
	// CreateAppointment books a visit after re-running the eligibility check
	// server-side.
	CreateAppointment(ctx context.Context, req models.CreateAppointmentRequest) (*models.Appointment, error)
	// UpdateAppointment reschedules a pending visit or reassigns its mechanic,
	// re-running the eligibility check.
	UpdateAppointment(ctx context.Context, id string, req models.UpdateAppointmentRequest) (*models.Appointment, error)
	// CompleteAppointment moves Pending to Completed.
	CompleteAppointment(ctx context.Context, id string) (*models.Appointment, error)
	// CancelAppointment moves Pending to Cancelled.
	CancelAppointment(ctx context.Context, id string) (*models.Appointment, error)
	// GetAppointmentByID retrieves one appointment.
	GetAppointmentByID(id string) (*models.Appointment, error)
	// GetClientAppointments lists a client's appointments, newest first.
	GetClientAppointments(clientID string) ([]models.Appointment, error)
	// GetAppointmentsByDate lists every appointment on a calendar day.
	GetAppointmentsByDate(day time.Time) ([]models.Appointment, error)
}
