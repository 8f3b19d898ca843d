package handlers

import (
	"net/http"

	"wrenchworks/models"
	billingSvc "wrenchworks/services/billing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BillingHandler serves invoice and payment endpoints.
type BillingHandler struct {
	Service billingSvc.BillingService
}

// GetInvoiceHandler handles GET /api/invoices/:id.
func (h *BillingHandler) GetInvoiceHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	inv, err := h.Service.GetInvoiceByID(id)
	if err != nil {
		logger.Error("Invoice not found", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "invoice not found"})
		return
	}
	// Clients may only read their own invoices.
	if c.GetString("role") != "staff" && inv.ClientID != c.GetString("clientID") {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your invoice"})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// ListMyInvoicesHandler handles GET /api/invoices for the logged-in client.
func (h *BillingHandler) ListMyInvoicesHandler(c *gin.Context) {
	logger := getLogger(c)
	clientID := c.GetString("clientID")

	invoices, err := h.Service.GetClientInvoices(clientID)
	if err != nil {
		logger.Error("Failed to list invoices", zap.String("client", clientID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list invoices"})
		return
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	c.JSON(http.StatusOK, invoices)
}

// PayInvoiceHandler handles POST /api/invoices/pay. For card payments the
// response carries the Stripe client secret the frontend needs to confirm the
// PaymentIntent.
func (h *BillingHandler) PayInvoiceHandler(c *gin.Context) {
	logger := getLogger(c)

	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if c.GetString("role") != "staff" {
		req.ClientID = c.GetString("clientID")
	}

	inv, clientSecret, err := h.Service.ProcessPayment(c.Request.Context(), req)
	if err != nil {
		logger.Error("Payment failed", zap.String("invoice", req.InvoiceID), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"invoice": inv}
	if clientSecret != "" {
		resp["clientSecret"] = clientSecret
	}
	c.JSON(http.StatusOK, resp)
}

// MarkInvoicePaidHandler handles PUT /api/invoices/:id/paid (staff only).
// Used for cash at the counter and for card confirmations relayed by the
// frontend after Stripe settles the PaymentIntent.
func (h *BillingHandler) MarkInvoicePaidHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	inv, err := h.Service.MarkInvoicePaid(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to mark invoice paid", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inv)
}

// VoidInvoiceHandler handles PUT /api/invoices/:id/void (staff only).
func (h *BillingHandler) VoidInvoiceHandler(c *gin.Context) {
	logger := getLogger(c)
	id := c.Param("id")

	inv, err := h.Service.VoidInvoice(c.Request.Context(), id)
	if err != nil {
		logger.Error("Failed to void invoice", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, inv)
}
