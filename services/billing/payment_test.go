package billing

import (
	"context"
	"fmt"
	"testing"

	"wrenchworks/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInvoiceRepo struct {
	invoices map[string]*models.Invoice
}

func newFakeInvoiceRepo(seed ...*models.Invoice) *fakeInvoiceRepo {
	r := &fakeInvoiceRepo{invoices: make(map[string]*models.Invoice)}
	for _, inv := range seed {
		cp := *inv
		r.invoices[inv.ID] = &cp
	}
	return r
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

func pendingInvoice() *models.Invoice {
	return &models.Invoice{
		ID:       "inv-1",
		RepairID: "rep-1",
		ClientID: "c1",
		Total:    124,
		Currency: "eur",
		Status:   models.InvoicePending,
	}
}

func TestProcessPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("records a cash payment without settling", func(t *testing.T) {
		repo := newFakeInvoiceRepo(pendingInvoice())
		h := NewPaymentHandler(zap.NewNop(), repo, nil)

		inv, secret, err := h.ProcessPayment(ctx, models.PaymentRequest{
			InvoiceID: "inv-1", ClientID: "c1", Method: "cash",
		})
		require.NoError(t, err)
		assert.Empty(t, secret)
		assert.Equal(t, "cash", inv.Method)
		assert.Equal(t, models.InvoicePending, inv.Status)
	})

	t.Run("rejects another client's invoice", func(t *testing.T) {
		repo := newFakeInvoiceRepo(pendingInvoice())
		h := NewPaymentHandler(zap.NewNop(), repo, nil)

		_, _, err := h.ProcessPayment(ctx, models.PaymentRequest{
			InvoiceID: "inv-1", ClientID: "someone-else", Method: "cash",
		})
		assert.Error(t, err)
	})

	t.Run("rejects settled and void invoices", func(t *testing.T) {
		for _, status := range []string{models.InvoicePaid, models.InvoiceVoid} {
			inv := pendingInvoice()
			inv.Status = status
			repo := newFakeInvoiceRepo(inv)
			h := NewPaymentHandler(zap.NewNop(), repo, nil)

			_, _, err := h.ProcessPayment(ctx, models.PaymentRequest{
				InvoiceID: "inv-1", ClientID: "c1", Method: "cash",
			})
			assert.Error(t, err, status)
		}
	})

	t.Run("rejects a zero-amount invoice", func(t *testing.T) {
		inv := pendingInvoice()
		inv.Total = 0
		repo := newFakeInvoiceRepo(inv)
		h := NewPaymentHandler(zap.NewNop(), repo, nil)

		_, _, err := h.ProcessPayment(ctx, models.PaymentRequest{
			InvoiceID: "inv-1", ClientID: "c1", Method: "cash",
		})
		assert.Error(t, err)
	})

	t.Run("rejects unknown methods", func(t *testing.T) {
		repo := newFakeInvoiceRepo(pendingInvoice())
		h := NewPaymentHandler(zap.NewNop(), repo, nil)

		_, _, err := h.ProcessPayment(ctx, models.PaymentRequest{
			InvoiceID: "inv-1", ClientID: "c1", Method: "cheque",
		})
		assert.Error(t, err)
	})
}

func TestMarkInvoicePaid(t *testing.T) {
	ctx := context.Background()

	t.Run("settles a pending invoice", func(t *testing.T) {
		repo := newFakeInvoiceRepo(pendingInvoice())
		h := NewPaymentHandler(zap.NewNop(), repo, nil)

		inv, err := h.MarkInvoicePaid(ctx, "inv-1")
		require.NoError(t, err)
		assert.Equal(t, models.InvoicePaid, inv.Status)
	})

	t.Run("is idempotent for already-paid invoices", func(t *testing.T) {
		repo := newFakeInvoiceRepo(pendingInvoice())
		h := NewPaymentHandler(zap.NewNop(), repo, nil)

		_, err := h.MarkInvoicePaid(ctx, "inv-1")
		require.NoError(t, err)
		inv, err := h.MarkInvoicePaid(ctx, "inv-1")
		require.NoError(t, err)
		assert.Equal(t, models.InvoicePaid, inv.Status)
	})

	t.Run("refuses a void invoice", func(t *testing.T) {
		inv := pendingInvoice()
		inv.Status = models.InvoiceVoid
		repo := newFakeInvoiceRepo(inv)
		h := NewPaymentHandler(zap.NewNop(), repo, nil)

		_, err := h.MarkInvoicePaid(ctx, "inv-1")
		assert.Error(t, err)
	})
}

func TestVoidInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("voids an unpaid invoice", func(t *testing.T) {
		repo := newFakeInvoiceRepo(pendingInvoice())
		h := NewPaymentHandler(zap.NewNop(), repo, nil)

		inv, err := h.VoidInvoice(ctx, "inv-1")
		require.NoError(t, err)
		assert.Equal(t, models.InvoiceVoid, inv.Status)
	})

	t.Run("refuses to void a paid invoice", func(t *testing.T) {
		inv := pendingInvoice()
		inv.Status = models.InvoicePaid
		repo := newFakeInvoiceRepo(inv)
		h := NewPaymentHandler(zap.NewNop(), repo, nil)

		_, err := h.VoidInvoice(ctx, "inv-1")
		assert.Error(t, err)
	})
}

func TestValidateRequest(t *testing.T) {
	assert.Error(t, validateRequest(models.PaymentRequest{ClientID: "c1", Method: "cash"}))
	assert.Error(t, validateRequest(models.PaymentRequest{InvoiceID: "inv-1", Method: "cash"}))
	assert.Error(t, validateRequest(models.PaymentRequest{InvoiceID: "inv-1", ClientID: "c1", Method: "barter"}))
	assert.NoError(t, validateRequest(models.PaymentRequest{InvoiceID: "inv-1", ClientID: "c1", Method: "card"}))
}
