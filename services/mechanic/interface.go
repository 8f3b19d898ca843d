package mechanic

import "wrenchworks/models"

// MechanicService manages mechanics and their recurring weekly schedules.
type MechanicService interface {
	GetMechanicByID(id string) (*models.Mechanic, error)
	GetAllMechanics() ([]models.Mechanic, error)
	CreateMechanic(m models.Mechanic) (*models.Mechanic, error)
	UpdateMechanic(m models.Mechanic) (*models.Mechanic, error)
	// DeleteMechanic removes the mechanic and all of its schedule blocks.
	DeleteMechanic(id string) error
	// ReplaceSchedule validates and swaps a mechanic's full weekly schedule.
	// The write happens only when the whole block set passes validation.
	ReplaceSchedule(mechanicID string, blocks []models.ScheduleBlock) (*models.Mechanic, error)
}
