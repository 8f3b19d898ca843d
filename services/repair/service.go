package repair

import (
	"context"
	"fmt"

	"wrenchworks/config"
	appointmentRepo "wrenchworks/database/repository/appointment"
	invoiceRepo "wrenchworks/database/repository/invoice"
	partRepo "wrenchworks/database/repository/part"
	repairRepo "wrenchworks/database/repository/repair"
	"wrenchworks/models"
	"wrenchworks/services/notification"
	"wrenchworks/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRepairClosed rejects mutations on completed or cancelled repairs.
var ErrRepairClosed = fmt.Errorf("repair order is closed")

// ErrInvoicePaid rejects mutations that would rewrite an already-paid invoice.
var ErrInvoicePaid = fmt.Errorf("invoice is already paid")

// DefaultRepairService is the production RepairService.
type DefaultRepairService struct {
	Repairs      repairRepo.RepairRepository
	Parts        partRepo.PartRepository
	Invoices     invoiceRepo.InvoiceRepository
	Appointments appointmentRepo.AppointmentRepository
	Notifier     notification.NotificationService
}

// OpenRepair starts a repair order for a pending appointment.
func (s *DefaultRepairService) OpenRepair(ctx context.Context, appointmentID, description string) (*models.RepairOrder, error) {
	appt, err := s.Appointments.GetByID(appointmentID)
	if err != nil {
		return nil, err
	}
	if appt.Status != models.AppointmentPending {
		return nil, fmt.Errorf("appointment %s is %s, cannot open a repair", appointmentID, appt.Status)
	}
	if existing, err := s.Repairs.GetByAppointment(appointmentID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, fmt.Errorf("appointment %s already has repair order %s", appointmentID, existing.ID)
	}

	rep := &models.RepairOrder{
		ID:            uuid.New().String(),
		AppointmentID: appt.ID,
		ClientID:      appt.ClientID,
		MechanicID:    appt.MechanicID,
		Description:   description,
		Status:        models.RepairOpen,
	}
	if err := s.Repairs.Create(rep); err != nil {
		return nil, err
	}

	inv := &models.Invoice{
		ID:       uuid.New().String(),
		RepairID: rep.ID,
		ClientID: rep.ClientID,
		Currency: config.AppConfig.InvoiceCurrency,
		Status:   models.InvoicePending,
	}
	if err := s.Invoices.Create(inv); err != nil {
		return nil, fmt.Errorf("repair %s created but invoice failed: %w", rep.ID, err)
	}

	utils.GetLogger().Info("repair opened",
		zap.String("repairID", rep.ID), zap.String("appointmentID", appt.ID))
	return rep, nil
}

// GetRepairByID retrieves one repair order.
func (s *DefaultRepairService) GetRepairByID(id string) (*models.RepairOrder, error) {
	return s.Repairs.GetByID(id)
}

// GetClientRepairs lists a client's repair orders, newest first.
func (s *DefaultRepairService) GetClientRepairs(clientID string) ([]models.RepairOrder, error) {
	return s.Repairs.GetByClient(clientID)
}

func (s *DefaultRepairService) openRepair(id string) (*models.RepairOrder, error) {
	rep, err := s.Repairs.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rep.Status != models.RepairOpen {
		return nil, ErrRepairClosed
	}
	return rep, nil
}

// UpdateRepair edits the work description and labor hours.
func (s *DefaultRepairService) UpdateRepair(ctx context.Context, id string, req models.UpdateRepairRequest) (*models.RepairOrder, error) {
	rep, err := s.openRepair(id)
	if err != nil {
		return nil, err
	}
	if req.LaborHours < 0 {
		return nil, fmt.Errorf("labor hours cannot be negative")
	}

	if req.Description != "" {
		rep.Description = req.Description
	}
	rep.LaborHours = req.LaborHours
	if err := s.Repairs.Update(rep); err != nil {
		return nil, err
	}
	if err := s.recalculateInvoice(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// AddPart consumes inventory stock onto the repair. Stock is decremented with
// a conditional write first; when it fails nothing else changes.
func (s *DefaultRepairService) AddPart(ctx context.Context, repairID string, req models.AddRepairPartRequest) (*models.RepairOrder, error) {
	rep, err := s.openRepair(repairID)
	if err != nil {
		return nil, err
	}
	if err := s.guardInvoiceUnpaid(rep.ID); err != nil {
		return nil, err
	}

	part, err := s.Parts.AdjustStock(req.PartID, -req.Quantity)
	if err != nil {
		return nil, err
	}

	// Merge with an existing line for the same part, keeping its captured price.
	merged := false
	for i := range rep.Parts {
		if rep.Parts[i].PartID == part.ID {
			rep.Parts[i].Quantity += req.Quantity
			merged = true
			break
		}
	}
	if !merged {
		rep.Parts = append(rep.Parts, models.RepairPart{
			PartID:    part.ID,
			Name:      part.Name,
			UnitPrice: part.UnitPrice,
			Quantity:  req.Quantity,
		})
	}

	if err := s.Repairs.Update(rep); err != nil {
		// Put the stock back so inventory does not drift from the part list.
		if _, restoreErr := s.Parts.AdjustStock(req.PartID, req.Quantity); restoreErr != nil {
			utils.GetLogger().Error("failed to restore stock after repair update failure",
				zap.String("partID", req.PartID), zap.Error(restoreErr))
		}
		return nil, err
	}
	if err := s.recalculateInvoice(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// RemovePart returns a part line's stock to inventory.
func (s *DefaultRepairService) RemovePart(ctx context.Context, repairID, partID string) (*models.RepairOrder, error) {
	rep, err := s.openRepair(repairID)
	if err != nil {
		return nil, err
	}
	if err := s.guardInvoiceUnpaid(rep.ID); err != nil {
		return nil, err
	}

	idx := -1
	for i := range rep.Parts {
		if rep.Parts[i].PartID == partID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("part %s is not on repair %s", partID, repairID)
	}

	removed := rep.Parts[idx]
	rep.Parts = append(rep.Parts[:idx], rep.Parts[idx+1:]...)
	if err := s.Repairs.Update(rep); err != nil {
		return nil, err
	}

	if _, err := s.Parts.AdjustStock(partID, removed.Quantity); err != nil {
		utils.GetLogger().Error("failed to restock removed part",
			zap.String("partID", partID), zap.Int("quantity", removed.Quantity), zap.Error(err))
	}
	if err := s.recalculateInvoice(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// AttachPhoto links an uploaded photo to the repair.
func (s *DefaultRepairService) AttachPhoto(repairID, publicID string) (*models.RepairOrder, error) {
	rep, err := s.Repairs.GetByID(repairID)
	if err != nil {
		return nil, err
	}
	rep.Photos = append(rep.Photos, publicID)
	if err := s.Repairs.Update(rep); err != nil {
		return nil, err
	}
	return rep, nil
}

// CompleteRepair closes the repair order and tells the client the bill is ready.
func (s *DefaultRepairService) CompleteRepair(ctx context.Context, id string) (*models.RepairOrder, error) {
	rep, err := s.openRepair(id)
	if err != nil {
		return nil, err
	}

	rep.Status = models.RepairCompleted
	if err := s.Repairs.Update(rep); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		inv, err := s.Invoices.GetByRepair(rep.ID)
		if err == nil && inv != nil {
			data := map[string]string{"repairId": rep.ID, "invoiceId": inv.ID}
			if err := s.Notifier.Notify(ctx, rep.ClientID, "repair_completed",
				"Repair completed",
				fmt.Sprintf("Your repair is done. Invoice total: %.2f %s.", inv.Total, inv.Currency), data); err != nil {
				utils.GetLogger().Warn("repair completion notification failed", zap.Error(err))
			}
		}
	}
	return rep, nil
}

func (s *DefaultRepairService) guardInvoiceUnpaid(repairID string) error {
	inv, err := s.Invoices.GetByRepair(repairID)
	if err != nil {
		return err
	}
	if inv != nil && inv.Status == models.InvoicePaid {
		return ErrInvoicePaid
	}
	return nil
}

// recalculateInvoice recomputes labor, parts, tax, and total from the repair's
// current state in one pass.
func (s *DefaultRepairService) recalculateInvoice(rep *models.RepairOrder) error {
	inv, err := s.Invoices.GetByRepair(rep.ID)
	if err != nil {
		return err
	}
	if inv == nil {
		return fmt.Errorf("repair %s has no invoice", rep.ID)
	}
	if inv.Status == models.InvoicePaid {
		return ErrInvoicePaid
	}

	var parts float64
	for _, p := range rep.Parts {
		parts += p.UnitPrice * float64(p.Quantity)
	}
	inv.LaborAmount = rep.LaborHours * config.AppConfig.LaborRatePerHr
	inv.PartsAmount = parts
	inv.TaxAmount = parts * config.AppConfig.PartsTaxRate
	inv.Total = inv.LaborAmount + inv.PartsAmount + inv.TaxAmount

	return s.Invoices.Update(inv)
}
