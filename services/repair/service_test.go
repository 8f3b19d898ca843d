package repair

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wrenchworks/config"
	partRepo "wrenchworks/database/repository/part"
	"wrenchworks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepairRepo struct {
	repairs map[string]*models.RepairOrder
}

func newFakeRepairRepo() *fakeRepairRepo {
	return &fakeRepairRepo{repairs: make(map[string]*models.RepairOrder)}
}

func (r *fakeRepairRepo) GetByID(id string) (*models.RepairOrder, error) {
	rep, ok := r.repairs[id]
	if !ok {
		return nil, fmt.Errorf("repair %s not found", id)
	}
	cp := *rep
	cp.Parts = append([]models.RepairPart(nil), rep.Parts...)
	return &cp, nil
}

func (r *fakeRepairRepo) GetByAppointment(appointmentID string) (*models.RepairOrder, error) {
	for _, rep := range r.repairs {
		if rep.AppointmentID == appointmentID {
			cp := *rep
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeRepairRepo) GetByClient(clientID string) ([]models.RepairOrder, error) {
	var out []models.RepairOrder
	for _, rep := range r.repairs {
		if rep.ClientID == clientID {
			out = append(out, *rep)
		}
	}
	return out, nil
}

func (r *fakeRepairRepo) Create(rep *models.RepairOrder) error {
	cp := *rep
	r.repairs[rep.ID] = &cp
	return nil
}

func (r *fakeRepairRepo) Update(rep *models.RepairOrder) error {
	if _, ok := r.repairs[rep.ID]; !ok {
		return fmt.Errorf("repair %s not found", rep.ID)
	}
	cp := *rep
	cp.Parts = append([]models.RepairPart(nil), rep.Parts...)
	r.repairs[rep.ID] = &cp
	return nil
}

type fakePartRepo struct {
	parts map[string]*models.Part
}

func newFakePartRepo() *fakePartRepo {
	return &fakePartRepo{parts: make(map[string]*models.Part)}
}

func (r *fakePartRepo) GetByID(id string) (*models.Part, error) {
	p, ok := r.parts[id]
	if !ok {
		return nil, fmt.Errorf("part %s not found", id)
	}
	cp := *p
	return &cp, nil
}

func (r *fakePartRepo) GetAll() ([]models.Part, error) { return nil, nil }

func (r *fakePartRepo) GetLowStock() ([]models.Part, error) { return nil, nil }

func (r *fakePartRepo) Create(p *models.Part) error {
	cp := *p
	r.parts[p.ID] = &cp
	return nil
}

func (r *fakePartRepo) Update(p *models.Part) error {
	cp := *p
	r.parts[p.ID] = &cp
	return nil
}

func (r *fakePartRepo) Delete(id string) error { return nil }

func (r *fakePartRepo) AdjustStock(id string, delta int) (*models.Part, error) {
	p, ok := r.parts[id]
	if !ok || p.Stock+delta < 0 {
		return nil, fmt.Errorf("part %s: %w", id, partRepo.ErrInsufficientStock)
	}
	p.Stock += delta
	cp := *p
	return &cp, nil
}

type fakeInvoiceRepo struct {
	invoices map[string]*models.Invoice
}

func newFakeInvoiceRepo() *fakeInvoiceRepo {
	return &fakeInvoiceRepo{invoices: make(map[string]*models.Invoice)}
}

func (r *fakeInvoiceRepo) GetByID(id string) (*models.Invoice, error) {
	inv, ok := r.invoices[id]
	if !ok {
		return nil, fmt.Errorf("invoice %s not found", id)
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvoiceRepo) GetByRepair(repairID string) (*models.Invoice, error) {
	for _, inv := range r.invoices {
		if inv.RepairID == repairID {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvoiceRepo) GetByClient(clientID string) ([]models.Invoice, error) {
	var out []models.Invoice
	for _, inv := range r.invoices {
		if inv.ClientID == clientID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *fakeInvoiceRepo) Create(inv *models.Invoice) error {
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

func (r *fakeInvoiceRepo) Update(inv *models.Invoice) error {
	if _, ok := r.invoices[inv.ID]; !ok {
		return fmt.Errorf("invoice %s not found", inv.ID)
	}
	cp := *inv
	r.invoices[inv.ID] = &cp
	return nil
}

type stubAppointmentRepo struct {
	appt *models.Appointment
}

func (r *stubAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	if r.appt == nil || r.appt.ID != id {
		return nil, fmt.Errorf("appointment %s not found", id)
	}
	cp := *r.appt
	return &cp, nil
}

func (r *stubAppointmentRepo) GetByClient(string) ([]models.Appointment, error) { return nil, nil }
func (r *stubAppointmentRepo) GetByDate(time.Time) ([]models.Appointment, error) {
	return nil, nil
}
func (r *stubAppointmentRepo) GetByMonth(int, time.Month) ([]models.Appointment, error) {
	return nil, nil
}
func (r *stubAppointmentRepo) GetAt(time.Time) ([]models.Appointment, error) { return nil, nil }
func (r *stubAppointmentRepo) Create(*models.Appointment) error              { return nil }
func (r *stubAppointmentRepo) Update(*models.Appointment) error              { return nil }

func newRepairFixture(t *testing.T) (*DefaultRepairService, *fakeRepairRepo, *fakePartRepo, *fakeInvoiceRepo) {
	t.Helper()
	config.AppConfig.InvoiceCurrency = "eur"
	config.AppConfig.LaborRatePerHr = 50
	config.AppConfig.PartsTaxRate = 0.2

	repairs := newFakeRepairRepo()
	parts := newFakePartRepo()
	invoices := newFakeInvoiceRepo()
	appts := &stubAppointmentRepo{appt: &models.Appointment{
		ID:         "appt-1",
		ClientID:   "c1",
		MechanicID: "m1",
		Status:     models.AppointmentPending,
	}}

	require.NoError(t, parts.Create(&models.Part{
		ID: "p-filter", Name: "Oil filter", UnitPrice: 10, Stock: 5, ReorderLevel: 1,
	}))
	require.NoError(t, parts.Create(&models.Part{
		ID: "p-pads", Name: "Brake pads", UnitPrice: 40, Stock: 2, ReorderLevel: 1,
	}))

	svc := &DefaultRepairService{
		Repairs:      repairs,
		Parts:        parts,
		Invoices:     invoices,
		Appointments: appts,
	}
	return svc, repairs, parts, invoices
}

func TestOpenRepair(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the repair and a zero-total invoice", func(t *testing.T) {
		svc, _, _, invoices := newRepairFixture(t)

		rep, err := svc.OpenRepair(ctx, "appt-1", "engine noise")
		require.NoError(t, err)
		assert.Equal(t, models.RepairOpen, rep.Status)
		assert.Equal(t, "c1", rep.ClientID)

		inv, err := invoices.GetByRepair(rep.ID)
		require.NoError(t, err)
		require.NotNil(t, inv)
		assert.Equal(t, models.InvoicePending, inv.Status)
		assert.Equal(t, "eur", inv.Currency)
		assert.Zero(t, inv.Total)
	})

	t.Run("refuses a second repair for the same appointment", func(t *testing.T) {
		svc, _, _, _ := newRepairFixture(t)

		_, err := svc.OpenRepair(ctx, "appt-1", "engine noise")
		require.NoError(t, err)
		_, err = svc.OpenRepair(ctx, "appt-1", "again")
		assert.Error(t, err)
	})

	t.Run("refuses a cancelled appointment", func(t *testing.T) {
		svc, _, _, _ := newRepairFixture(t)
		svc.Appointments.(*stubAppointmentRepo).appt.Status = models.AppointmentCancelled

		_, err := svc.OpenRepair(ctx, "appt-1", "engine noise")
		assert.Error(t, err)
	})
}

func TestAddAndRemoveParts(t *testing.T) {
	ctx := context.Background()

	t.Run("consumes stock and recalculates the invoice", func(t *testing.T) {
		svc, _, parts, invoices := newRepairFixture(t)
		rep, err := svc.OpenRepair(ctx, "appt-1", "service")
		require.NoError(t, err)

		_, err = svc.UpdateRepair(ctx, rep.ID, models.UpdateRepairRequest{LaborHours: 2})
		require.NoError(t, err)

		updated, err := svc.AddPart(ctx, rep.ID, models.AddRepairPartRequest{PartID: "p-filter", Quantity: 2})
		require.NoError(t, err)
		require.Len(t, updated.Parts, 1)
		assert.Equal(t, 2, updated.Parts[0].Quantity)

		left, _ := parts.GetByID("p-filter")
		assert.Equal(t, 3, left.Stock)

		inv, _ := invoices.GetByRepair(rep.ID)
		// labor 2h * 50 + parts 2 * 10 + tax 20% of parts.
		assert.InDelta(t, 100.0, inv.LaborAmount, 1e-9)
		assert.InDelta(t, 20.0, inv.PartsAmount, 1e-9)
		assert.InDelta(t, 4.0, inv.TaxAmount, 1e-9)
		assert.InDelta(t, 124.0, inv.Total, 1e-9)
	})

	t.Run("merges repeat lines keeping the captured price", func(t *testing.T) {
		svc, _, parts, _ := newRepairFixture(t)
		rep, err := svc.OpenRepair(ctx, "appt-1", "service")
		require.NoError(t, err)

		_, err = svc.AddPart(ctx, rep.ID, models.AddRepairPartRequest{PartID: "p-filter", Quantity: 1})
		require.NoError(t, err)

		// Catalogue price changes between the two adds.
		p, _ := parts.GetByID("p-filter")
		p.UnitPrice = 99
		require.NoError(t, parts.Update(p))

		updated, err := svc.AddPart(ctx, rep.ID, models.AddRepairPartRequest{PartID: "p-filter", Quantity: 1})
		require.NoError(t, err)
		require.Len(t, updated.Parts, 1)
		assert.Equal(t, 2, updated.Parts[0].Quantity)
		assert.InDelta(t, 10.0, updated.Parts[0].UnitPrice, 1e-9)
	})

	t.Run("fails whole add when stock is short", func(t *testing.T) {
		svc, _, parts, invoices := newRepairFixture(t)
		rep, err := svc.OpenRepair(ctx, "appt-1", "service")
		require.NoError(t, err)

		_, err = svc.AddPart(ctx, rep.ID, models.AddRepairPartRequest{PartID: "p-pads", Quantity: 3})
		assert.ErrorIs(t, err, partRepo.ErrInsufficientStock)

		left, _ := parts.GetByID("p-pads")
		assert.Equal(t, 2, left.Stock)
		inv, _ := invoices.GetByRepair(rep.ID)
		assert.Zero(t, inv.Total)
	})

	t.Run("removing a line restocks and recalculates", func(t *testing.T) {
		svc, _, parts, invoices := newRepairFixture(t)
		rep, err := svc.OpenRepair(ctx, "appt-1", "service")
		require.NoError(t, err)

		_, err = svc.AddPart(ctx, rep.ID, models.AddRepairPartRequest{PartID: "p-filter", Quantity: 2})
		require.NoError(t, err)

		updated, err := svc.RemovePart(ctx, rep.ID, "p-filter")
		require.NoError(t, err)
		assert.Empty(t, updated.Parts)

		left, _ := parts.GetByID("p-filter")
		assert.Equal(t, 5, left.Stock)
		inv, _ := invoices.GetByRepair(rep.ID)
		assert.Zero(t, inv.Total)
	})

	t.Run("paid invoices freeze the part list", func(t *testing.T) {
		svc, _, _, invoices := newRepairFixture(t)
		rep, err := svc.OpenRepair(ctx, "appt-1", "service")
		require.NoError(t, err)

		inv, _ := invoices.GetByRepair(rep.ID)
		inv.Status = models.InvoicePaid
		require.NoError(t, invoices.Update(inv))

		_, err = svc.AddPart(ctx, rep.ID, models.AddRepairPartRequest{PartID: "p-filter", Quantity: 1})
		assert.ErrorIs(t, err, ErrInvoicePaid)
	})
}

func TestCompleteRepair(t *testing.T) {
	ctx := context.Background()

	t.Run("closes the order", func(t *testing.T) {
		svc, _, _, _ := newRepairFixture(t)
		rep, err := svc.OpenRepair(ctx, "appt-1", "service")
		require.NoError(t, err)

		done, err := svc.CompleteRepair(ctx, rep.ID)
		require.NoError(t, err)
		assert.Equal(t, models.RepairCompleted, done.Status)
	})

	t.Run("closed orders reject further edits", func(t *testing.T) {
		svc, _, _, _ := newRepairFixture(t)
		rep, err := svc.OpenRepair(ctx, "appt-1", "service")
		require.NoError(t, err)
		_, err = svc.CompleteRepair(ctx, rep.ID)
		require.NoError(t, err)

		_, err = svc.UpdateRepair(ctx, rep.ID, models.UpdateRepairRequest{LaborHours: 1})
		assert.ErrorIs(t, err, ErrRepairClosed)

		_, err = svc.AddPart(ctx, rep.ID, models.AddRepairPartRequest{PartID: "p-filter", Quantity: 1})
		assert.ErrorIs(t, err, ErrRepairClosed)
	})
}

func TestAttachPhoto(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _ := newRepairFixture(t)
	rep, err := svc.OpenRepair(ctx, "appt-1", "service")
	require.NoError(t, err)

	updated, err := svc.AttachPhoto(rep.ID, "wrenchworks/repairs/abc123")
	require.NoError(t, err)
	assert.Equal(t, []string{"wrenchworks/repairs/abc123"}, updated.Photos)
}
