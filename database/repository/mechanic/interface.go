package mechanicRepo

import "wrenchworks/models"

// MechanicRepository defines methods for mechanic data access. Schedule blocks
// are embedded on the mechanic document; ReplaceSchedule swaps the whole set
// atomically (there is no partial patch API).
type MechanicRepository interface {
	// GetByID retrieves a mechanic by its unique ID.
	GetByID(id string) (*models.Mechanic, error)
	// GetAll retrieves all mechanics.
	GetAll() ([]models.Mechanic, error)
	// GetAllActive retrieves all active mechanics with their schedules.
	GetAllActive() ([]models.Mechanic, error)
	// GetAllBlocks retrieves every schedule block across all active mechanics.
	GetAllBlocks() ([]models.ScheduleBlock, error)
	// CountActive returns the active mechanic headcount.
	CountActive() (int, error)
	// Create inserts a new mechanic record.
	Create(mechanic *models.Mechanic) error
	// Update modifies an existing mechanic record.
	Update(mechanic *models.Mechanic) error
	// Delete removes a mechanic and, with it, all of its schedule blocks.
	Delete(id string) error
	// ReplaceSchedule replaces the mechanic's entire block set in one write.
	ReplaceSchedule(mechanicID string, blocks []models.ScheduleBlock) error
}
