package models

import "time"

// Invoice statuses.
const (
	InvoicePending = "pending"
	InvoicePaid    = "paid"
	InvoiceVoid    = "void"
)

// Invoice is the bill for one repair order: labor plus parts plus tax.
type Invoice struct {
	ID          string    `bson:"id" json:"id"`
	RepairID    string    `bson:"repair_id" json:"repairId"`
	ClientID    string    `bson:"client_id" json:"clientId"`
	LaborAmount float64   `bson:"labor_amount" json:"laborAmount"`
	PartsAmount float64   `bson:"parts_amount" json:"partsAmount"`
	TaxAmount   float64   `bson:"tax_amount" json:"taxAmount"`
	Total       float64   `bson:"total" json:"total"`
	Currency    string    `bson:"currency" json:"currency"`
	Status      string    `bson:"status" json:"status"`
	Method      string    `bson:"method,omitempty" json:"method,omitempty"` // "card" or "cash"
	PaymentID   string    `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	CreatedAt   time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updatedAt"`
}

// PaymentRequest asks billing to settle an invoice.
type PaymentRequest struct {
	InvoiceID   string            `json:"invoiceId" binding:"required"`
	ClientID    string            `json:"clientId" binding:"required"`
	Method      string            `json:"method" binding:"required"` // "card" or "cash"
	Idempotency string            `json:"idempotencyKey,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}
