package repairRepo

import "wrenchworks/models"

// RepairRepository defines methods for repair order data access.
type RepairRepository interface {
	// GetByID retrieves a repair order by its unique ID.
	GetByID(id string) (*models.RepairOrder, error)
	// GetByAppointment retrieves the repair order linked to an appointment.
	// Returns (nil, nil) when none exists yet.
	GetByAppointment(appointmentID string) (*models.RepairOrder, error)
	// GetByClient retrieves all repair orders for a client, newest first.
	GetByClient(clientID string) ([]models.RepairOrder, error)
	// Create inserts a new repair order record.
	Create(repair *models.RepairOrder) error
	// Update modifies an existing repair order record.
	Update(repair *models.RepairOrder) error
}
