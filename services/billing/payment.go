package billing

import (
	"context"
	"errors"
	"fmt"
	"math"

	invoiceRepo "wrenchworks/database/repository/invoice"
	"wrenchworks/models"
	"wrenchworks/services/notification"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// UnifiedPaymentHandler is the production BillingService.
type UnifiedPaymentHandler struct {
	logger   *zap.Logger
	invoices invoiceRepo.InvoiceRepository
	notifier notification.NotificationService
}

// NewPaymentHandler constructs the billing service.
func NewPaymentHandler(logger *zap.Logger, invoices invoiceRepo.InvoiceRepository, notifier notification.NotificationService) *UnifiedPaymentHandler {
	return &UnifiedPaymentHandler{
		logger:   logger,
		invoices: invoices,
		notifier: notifier,
	}
}

// GetInvoiceByID retrieves one invoice.
func (h *UnifiedPaymentHandler) GetInvoiceByID(id string) (*models.Invoice, error) {
	return h.invoices.GetByID(id)
}

// GetClientInvoices lists a client's invoices, newest first.
func (h *UnifiedPaymentHandler) GetClientInvoices(clientID string) ([]models.Invoice, error) {
	return h.invoices.GetByClient(clientID)
}

// ProcessPayment starts settling an invoice. The second return value is the
// Stripe client secret for card payments, empty for cash.
func (h *UnifiedPaymentHandler) ProcessPayment(ctx context.Context, req models.PaymentRequest) (*models.Invoice, string, error) {
	if err := validateRequest(req); err != nil {
		return nil, "", fmt.Errorf("invalid payment request: %w", err)
	}

	inv, err := h.invoices.GetByID(req.InvoiceID)
	if err != nil {
		return nil, "", err
	}
	if inv.ClientID != req.ClientID {
		return nil, "", fmt.Errorf("invoice %s does not belong to client %s", req.InvoiceID, req.ClientID)
	}
	if inv.Status != models.InvoicePending {
		return nil, "", fmt.Errorf("invoice %s is %s, cannot take payment", inv.ID, inv.Status)
	}
	if inv.Total <= 0 {
		return nil, "", fmt.Errorf("invoice %s has no amount due", inv.ID)
	}

	switch req.Method {
	case "card":
		return h.processCardPayment(ctx, req, inv)
	case "cash":
		return h.processCashPayment(ctx, req, inv)
	default:
		return nil, "", fmt.Errorf("unsupported payment method: %s", req.Method)
	}
}

// processCardPayment creates a Stripe PaymentIntent for the invoice total.
// The invoice stays pending until MarkInvoicePaid runs off the webhook.
func (h *UnifiedPaymentHandler) processCardPayment(ctx context.Context, req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(math.Round(inv.Total * 100))),
		Currency: stripe.String(inv.Currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.AddMetadata("invoiceId", inv.ID)
	params.AddMetadata("clientId", inv.ClientID)
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	if req.Idempotency != "" {
		params.IdempotencyKey = stripe.String(req.Idempotency)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create payment intent for invoice %s: %w", inv.ID, err)
	}

	inv.Method = "card"
	inv.PaymentID = pi.ID
	if err := h.invoices.Update(inv); err != nil {
		return nil, "", err
	}

	h.logger.Info("card payment initiated",
		zap.String("invoice", inv.ID), zap.String("paymentIntent", pi.ID))
	return inv, pi.ClientSecret, nil
}

// processCashPayment records the intent to pay cash; staff confirms at the counter.
func (h *UnifiedPaymentHandler) processCashPayment(ctx context.Context, req models.PaymentRequest, inv *models.Invoice) (*models.Invoice, string, error) {
	inv.Method = "cash"
	if err := h.invoices.Update(inv); err != nil {
		return nil, "", err
	}

	h.logger.Info("cash payment recorded", zap.String("invoice", inv.ID))
	return inv, "", nil
}

// MarkInvoicePaid finalizes an invoice after the payment cleared.
func (h *UnifiedPaymentHandler) MarkInvoicePaid(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	inv, err := h.invoices.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == models.InvoicePaid {
		return inv, nil
	}
	if inv.Status == models.InvoiceVoid {
		return nil, fmt.Errorf("invoice %s is void", inv.ID)
	}

	inv.Status = models.InvoicePaid
	if err := h.invoices.Update(inv); err != nil {
		return nil, err
	}

	if h.notifier != nil {
		data := map[string]string{"invoiceId": inv.ID, "amount": fmt.Sprintf("%.2f", inv.Total)}
		if err := h.notifier.Notify(ctx, inv.ClientID, "payment_confirmation",
			"Payment received",
			fmt.Sprintf("Payment of %.2f %s via %s was received. Thank you!", inv.Total, inv.Currency, inv.Method), data); err != nil {
			h.logger.Warn("payment notification failed", zap.Error(err))
		}
	}

	h.logger.Info("invoice paid", zap.String("invoice", inv.ID))
	return inv, nil
}

// VoidInvoice cancels an unpaid invoice.
func (h *UnifiedPaymentHandler) VoidInvoice(ctx context.Context, invoiceID string) (*models.Invoice, error) {
	inv, err := h.invoices.GetByID(invoiceID)
	if err != nil {
		return nil, err
	}
	if inv.Status == models.InvoicePaid {
		return nil, fmt.Errorf("invoice %s is already paid", inv.ID)
	}

	inv.Status = models.InvoiceVoid
	if err := h.invoices.Update(inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func validateRequest(req models.PaymentRequest) error {
	if req.InvoiceID == "" {
		return errors.New("missing invoice ID")
	}
	if req.ClientID == "" {
		return errors.New("missing client ID")
	}
	if req.Method != "card" && req.Method != "cash" {
		return errors.New("unsupported method")
	}
	return nil
}
