package appointmentRepo

import (
	"time"

	"wrenchworks/models"
)

// AppointmentRepository defines methods for appointment data access.
type AppointmentRepository interface {
	// GetByID retrieves an appointment by its unique ID.
	GetByID(id string) (*models.Appointment, error)
	// GetByClient retrieves all appointments for a client, newest first.
	GetByClient(clientID string) ([]models.Appointment, error)
	// GetByDate retrieves every appointment whose timestamp falls on the given
	// calendar day.
	GetByDate(day time.Time) ([]models.Appointment, error)
	// GetByMonth retrieves every appointment within the given month.
	GetByMonth(year int, month time.Month) ([]models.Appointment, error)
	// GetAt retrieves every appointment at the exact timestamp.
	GetAt(at time.Time) ([]models.Appointment, error)
	// Create inserts a new appointment record.
	Create(appt *models.Appointment) error
	// Update modifies an existing appointment record.
	Update(appt *models.Appointment) error
}
