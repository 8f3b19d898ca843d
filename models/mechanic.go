package models

import "time"

// Mechanic represents a workshop mechanic and their recurring weekly schedule.
type Mechanic struct {
	ID          string          `bson:"id" json:"id"`
	DisplayName string          `bson:"display_name" json:"displayName"`
	Email       string          `bson:"email" json:"email"`
	Phone       string          `bson:"phone,omitempty" json:"phone,omitempty"`
	Specialties []string        `bson:"specialties,omitempty" json:"specialties,omitempty"`
	Blocks      []ScheduleBlock `bson:"blocks,omitempty" json:"blocks,omitempty"`
	Active      bool            `bson:"active" json:"active"`
	CreatedAt   time.Time       `bson:"created_at" json:"createdAt"`
	UpdatedAt   time.Time       `bson:"updated_at" json:"updatedAt"`
}

// ScheduleBlock is one recurring weekly availability window for a mechanic.
// Start and End are minutes from midnight (e.g. 540 for 9:00 AM). A block
// covers [Start, End): the end minute itself is outside the block, so
// back-to-back shifts share a boundary without overlapping.
type ScheduleBlock struct {
	MechanicID string       `bson:"mechanic_id" json:"mechanicId"`
	Day        time.Weekday `bson:"day" json:"day"` // 0 = Sunday .. 6 = Saturday
	Start      int          `bson:"start" json:"start"`
	End        int          `bson:"end" json:"end"`
}

// ReplaceScheduleRequest replaces a mechanic's entire weekly schedule.
// Schedule updates are all-or-nothing; there is no partial patch API.
type ReplaceScheduleRequest struct {
	Blocks []ScheduleBlock `json:"blocks" binding:"required"`
}

// MechanicOption is the minimal (id, displayName) pair rendered in the
// appointment booking selection control.
type MechanicOption struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}
