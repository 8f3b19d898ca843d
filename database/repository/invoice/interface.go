package invoiceRepo

import "wrenchworks/models"

// InvoiceRepository defines methods for invoice data access.
type InvoiceRepository interface {
	// GetByID retrieves an invoice by its unique ID.
	GetByID(id string) (*models.Invoice, error)
	// GetByRepair retrieves the invoice for a repair order. Returns (nil, nil)
	// when none exists yet.
	GetByRepair(repairID string) (*models.Invoice, error)
	// GetByClient retrieves all invoices for a client, newest first.
	GetByClient(clientID string) ([]models.Invoice, error)
	// Create inserts a new invoice record.
	Create(invoice *models.Invoice) error
	// Update modifies an existing invoice record.
	Update(invoice *models.Invoice) error
}
