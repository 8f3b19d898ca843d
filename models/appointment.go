package models

import "time"

// Appointment statuses. Progression is monotonic: Pending may move to
// Completed or Cancelled; neither terminal state can be left.
const (
	AppointmentPending   = "Pending"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

// Appointment is a scheduled workshop visit.
type Appointment struct {
	ID         string    `bson:"id" json:"id"`
	ClientID   string    `bson:"client_id" json:"clientId"`
	VehicleID  string    `bson:"vehicle_id,omitempty" json:"vehicleId,omitempty"`
	MechanicID string    `bson:"mechanic_id" json:"mechanicId"`
	Date       time.Time `bson:"date" json:"date"`
	Service    string    `bson:"service" json:"service"`
	Notes      string    `bson:"notes,omitempty" json:"notes,omitempty"`
	Status     string    `bson:"status" json:"status"`
	CreatedAt  time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt  time.Time `bson:"updated_at" json:"updatedAt"`
}

// CreateAppointmentRequest is the payload for booking a visit.
type CreateAppointmentRequest struct {
	ClientID   string    `json:"clientId" binding:"required"`
	VehicleID  string    `json:"vehicleId"`
	MechanicID string    `json:"mechanicId" binding:"required"`
	Date       time.Time `json:"date" binding:"required"`
	Service    string    `json:"service" binding:"required"`
	Notes      string    `json:"notes"`
}

// UpdateAppointmentRequest reschedules a visit or reassigns its mechanic.
type UpdateAppointmentRequest struct {
	MechanicID string    `json:"mechanicId" binding:"required"`
	Date       time.Time `json:"date" binding:"required"`
	Notes      string    `json:"notes"`
}

// ReminderPayload is the asynq task payload for appointment reminders.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	ClientID      string `json:"clientId"`
	Title         string `json:"title"`
	Body          string `json:"body"`
	FireDate      string `json:"fireDate"`
}
