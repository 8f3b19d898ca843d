package inventory

import (
	"fmt"

	partRepo "wrenchworks/database/repository/part"
	"wrenchworks/models"
	"wrenchworks/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultInventoryService is the production InventoryService.
type DefaultInventoryService struct {
	Repo partRepo.PartRepository
}

// GetPartByID retrieves a part by ID.
func (s *DefaultInventoryService) GetPartByID(id string) (*models.Part, error) {
	return s.Repo.GetByID(id)
}

// GetAllParts retrieves the full parts catalogue.
func (s *DefaultInventoryService) GetAllParts() ([]models.Part, error) {
	return s.Repo.GetAll()
}

// GetLowStockParts lists parts at or below their reorder level.
func (s *DefaultInventoryService) GetLowStockParts() ([]models.Part, error) {
	return s.Repo.GetLowStock()
}

// CreatePart adds a part to the catalogue.
func (s *DefaultInventoryService) CreatePart(p models.Part) (*models.Part, error) {
	if p.SKU == "" || p.Name == "" {
		return nil, fmt.Errorf("part SKU and name are required")
	}
	if p.UnitPrice < 0 {
		return nil, fmt.Errorf("unit price cannot be negative")
	}
	if p.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	p.ID = uuid.New().String()
	if err := s.Repo.Create(&p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePart edits catalogue fields. Stock changes go through AdjustStock so
// they stay auditable.
func (s *DefaultInventoryService) UpdatePart(p models.Part) (*models.Part, error) {
	existing, err := s.Repo.GetByID(p.ID)
	if err != nil {
		return nil, err
	}
	if p.UnitPrice < 0 {
		return nil, fmt.Errorf("unit price cannot be negative")
	}

	existing.SKU = p.SKU
	existing.Name = p.Name
	existing.Description = p.Description
	existing.UnitPrice = p.UnitPrice
	existing.ReorderLevel = p.ReorderLevel

	if err := s.Repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeletePart removes a part from the catalogue.
func (s *DefaultInventoryService) DeletePart(id string) error {
	return s.Repo.Delete(id)
}

// AdjustStock applies a signed stock delta.
func (s *DefaultInventoryService) AdjustStock(id string, adj models.StockAdjustment) (*models.Part, error) {
	if adj.Delta == 0 {
		return nil, fmt.Errorf("stock adjustment delta cannot be zero")
	}
	part, err := s.Repo.AdjustStock(id, adj.Delta)
	if err != nil {
		return nil, err
	}
	if part.Stock <= part.ReorderLevel {
		utils.GetLogger().Warn("part at or below reorder level",
			zap.String("partID", part.ID), zap.String("sku", part.SKU),
			zap.Int("stock", part.Stock), zap.Int("reorderLevel", part.ReorderLevel))
	}
	return part, nil
}
