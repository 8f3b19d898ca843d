package partRepo

import (
	"errors"

	"wrenchworks/models"
)

// ErrInsufficientStock is returned when a stock decrement would go below zero
// (or the part does not exist, which the conditional write cannot tell apart).
var ErrInsufficientStock = errors.New("part not found or insufficient stock")

// PartRepository defines methods for inventory data access.
type PartRepository interface {
	// GetByID retrieves a part by its unique ID.
	GetByID(id string) (*models.Part, error)
	// GetAll retrieves the full parts catalogue.
	GetAll() ([]models.Part, error)
	// GetLowStock retrieves parts at or below their reorder level.
	GetLowStock() ([]models.Part, error)
	// Create inserts a new part record.
	Create(part *models.Part) error
	// Update modifies an existing part record.
	Update(part *models.Part) error
	// Delete removes a part record by its ID.
	Delete(id string) error
	// AdjustStock changes a part's stock by delta, failing if the result would
	// go negative. Returns the updated part.
	AdjustStock(id string, delta int) (*models.Part, error)
}
