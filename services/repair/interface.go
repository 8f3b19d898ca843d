package repair

import (
	"context"

	"wrenchworks/models"
)

// RepairService tracks the work performed for appointments. Every part
// mutation adjusts inventory stock and recalculates the linked invoice in the
// same call, so the invoice always reflects the current part list and labor.
type RepairService interface {
	// OpenRepair starts a repair order for a pending appointment and creates
	// its (initially zero-total) invoice.
	OpenRepair(ctx context.Context, appointmentID, description string) (*models.RepairOrder, error)
	// GetRepairByID retrieves one repair order.
	GetRepairByID(id string) (*models.RepairOrder, error)
	// GetClientRepairs lists a client's repair orders, newest first.
	GetClientRepairs(clientID string) ([]models.RepairOrder, error)
	// UpdateRepair edits the work description and labor hours, recalculating
	// the invoice.
	UpdateRepair(ctx context.Context, id string, req models.UpdateRepairRequest) (*models.RepairOrder, error)
	// AddPart consumes inventory stock onto the repair and recalculates the
	// invoice. Insufficient stock fails the whole operation.
	AddPart(ctx context.Context, repairID string, req models.AddRepairPartRequest) (*models.RepairOrder, error)
	// RemovePart returns a part line's stock to inventory and recalculates the
	// invoice.
	RemovePart(ctx context.Context, repairID, partID string) (*models.RepairOrder, error)
	// AttachPhoto links an uploaded photo (storage public ID) to the repair.
	AttachPhoto(repairID, publicID string) (*models.RepairOrder, error)
	// CompleteRepair closes the repair order.
	CompleteRepair(ctx context.Context, id string) (*models.RepairOrder, error)
}
