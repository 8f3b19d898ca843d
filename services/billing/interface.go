package billing

import (
	"context"

	"wrenchworks/models"
)

// BillingService settles invoices. Card payments go through a Stripe
// PaymentIntent and stay pending until the intent succeeds; cash payments are
// recorded pending and marked paid by staff at the counter.
type BillingService interface {
	GetInvoiceByID(id string) (*models.Invoice, error)
	GetClientInvoices(clientID string) ([]models.Invoice, error)
	// ProcessPayment starts settling an invoice. For card payments the
	// returned invoice carries the PaymentIntent ID and client secret metadata.
	ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, string, error)
	// MarkInvoicePaid finalizes an invoice after the payment cleared.
	MarkInvoicePaid(ctx context.Context, invoiceID string) (*models.Invoice, error)
	// VoidInvoice cancels an unpaid invoice.
	VoidInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error)
}
