package models

import "time"

// Repair order statuses.
const (
	RepairOpen      = "Open"
	RepairCompleted = "Completed"
	RepairCancelled = "Cancelled"
)

// RepairOrder tracks the work performed for one appointment.
type RepairOrder struct {
	ID            string       `bson:"id" json:"id"`
	AppointmentID string       `bson:"appointment_id" json:"appointmentId"`
	ClientID      string       `bson:"client_id" json:"clientId"`
	MechanicID    string       `bson:"mechanic_id" json:"mechanicId"`
	Description   string       `bson:"description" json:"description"`
	Status        string       `bson:"status" json:"status"`
	LaborHours    float64      `bson:"labor_hours" json:"laborHours"`
	Parts         []RepairPart `bson:"parts,omitempty" json:"parts,omitempty"`
	Photos        []string     `bson:"photos,omitempty" json:"photos,omitempty"` // Cloudinary public IDs
	CreatedAt     time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt     time.Time    `bson:"updated_at" json:"updatedAt"`
}

// RepairPart is a part consumed by a repair. UnitPrice is captured at the
// moment the part is added so later catalogue price changes do not rewrite
// history.
type RepairPart struct {
	PartID    string  `bson:"part_id" json:"partId"`
	Name      string  `bson:"name" json:"name"`
	UnitPrice float64 `bson:"unit_price" json:"unitPrice"`
	Quantity  int     `bson:"quantity" json:"quantity"`
}

// AddRepairPartRequest attaches parts from inventory to a repair order.
type AddRepairPartRequest struct {
	PartID   string `json:"partId" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1"`
}

// UpdateRepairRequest edits the work description and labor hours.
type UpdateRepairRequest struct {
	Description string  `json:"description"`
	LaborHours  float64 `json:"laborHours"`
}
