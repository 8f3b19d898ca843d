package inventory

import "wrenchworks/models"

// InventoryService manages the parts catalogue and stock levels.
type InventoryService interface {
	GetPartByID(id string) (*models.Part, error)
	GetAllParts() ([]models.Part, error)
	// GetLowStockParts lists parts at or below their reorder level.
	GetLowStockParts() ([]models.Part, error)
	CreatePart(p models.Part) (*models.Part, error)
	UpdatePart(p models.Part) (*models.Part, error)
	DeletePart(id string) error
	// AdjustStock applies a signed stock delta; the result never goes negative.
	AdjustStock(id string, adj models.StockAdjustment) (*models.Part, error)
}
