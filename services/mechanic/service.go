package mechanic

import (
	"fmt"

	mechanicRepo "wrenchworks/database/repository/mechanic"
	"wrenchworks/models"
	"wrenchworks/services/schedule"
	"wrenchworks/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMechanicService is the production MechanicService.
type DefaultMechanicService struct {
	Repo mechanicRepo.MechanicRepository
}

// GetMechanicByID retrieves a mechanic by ID.
func (s *DefaultMechanicService) GetMechanicByID(id string) (*models.Mechanic, error) {
	return s.Repo.GetByID(id)
}

// GetAllMechanics retrieves all mechanics.
func (s *DefaultMechanicService) GetAllMechanics() ([]models.Mechanic, error) {
	return s.Repo.GetAll()
}

// CreateMechanic registers a new mechanic. An initial schedule may be supplied
// and is validated like any schedule replace.
func (s *DefaultMechanicService) CreateMechanic(m models.Mechanic) (*models.Mechanic, error) {
	if m.DisplayName == "" {
		return nil, fmt.Errorf("mechanic display name is required")
	}
	if m.Email == "" {
		return nil, fmt.Errorf("mechanic email is required")
	}

	m.ID = uuid.New().String()
	m.Active = true
	for i := range m.Blocks {
		m.Blocks[i].MechanicID = m.ID
	}
	if err := schedule.ValidateBlocks(m.Blocks); err != nil {
		return nil, err
	}

	if err := s.Repo.Create(&m); err != nil {
		return nil, fmt.Errorf("failed to create mechanic: %w", err)
	}
	utils.GetLogger().Info("mechanic created", zap.String("mechanicID", m.ID))
	return &m, nil
}

// UpdateMechanic modifies mechanic profile fields. Schedule changes go through
// ReplaceSchedule, never through here.
func (s *DefaultMechanicService) UpdateMechanic(m models.Mechanic) (*models.Mechanic, error) {
	existing, err := s.Repo.GetByID(m.ID)
	if err != nil {
		return nil, err
	}

	existing.DisplayName = m.DisplayName
	existing.Email = m.Email
	existing.Phone = m.Phone
	existing.Specialties = m.Specialties
	existing.Active = m.Active

	if err := s.Repo.Update(existing); err != nil {
		return nil, fmt.Errorf("failed to update mechanic: %w", err)
	}
	return existing, nil
}

// DeleteMechanic removes the mechanic; embedded schedule blocks cascade with
// the document.
func (s *DefaultMechanicService) DeleteMechanic(id string) error {
	return s.Repo.Delete(id)
}

// ReplaceSchedule validates and swaps a mechanic's full weekly schedule.
// Validation runs over the complete proposed set before anything is written,
// so a failure leaves the previous schedule untouched.
func (s *DefaultMechanicService) ReplaceSchedule(mechanicID string, blocks []models.ScheduleBlock) (*models.Mechanic, error) {
	if _, err := s.Repo.GetByID(mechanicID); err != nil {
		return nil, err
	}

	for i := range blocks {
		blocks[i].MechanicID = mechanicID
	}
	if err := schedule.ValidateBlocks(blocks); err != nil {
		return nil, err
	}

	if err := s.Repo.ReplaceSchedule(mechanicID, blocks); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("mechanic schedule replaced",
		zap.String("mechanicID", mechanicID), zap.Int("blocks", len(blocks)))
	return s.Repo.GetByID(mechanicID)
}
