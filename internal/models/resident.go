package models

import "time"

const (
	ResidentStatusActive   = "active"
	ResidentStatusInactive = "inactive"
	ResidentStatusPending  = "pending"
)

// GeneralIncomeID is the sentinel resident used to book cash flow that does
// not belong to any real resident. It lives only in memory: it is never
// persisted remotely and never deleted.
const GeneralIncomeID = "general-income"

type EmergencyContact struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Relationship string `json:"relationship"`
}

// BehaviorNote is an append-only log entry on a resident's record.
type BehaviorNote struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	Type        string    `json:"type"` // "verbal" | "written"
	Description string    `json:"description"`
	Severity    string    `json:"severity"` // "low" | "medium" | "high"
	CreatedBy   string    `json:"created_by"`
}

// Document is an uploaded file attached to a resident.
type Document struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	UploadDate time.Time `json:"upload_date"`
}

// Resident is a person occupying or slated to occupy a room. RoomID is a soft
// reference: a dangling RoomID is tolerated and simply contributes no
// occupancy.
type Resident struct {
	ID               string           `json:"id"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	Nationality      string           `json:"nationality"`
	Email            string           `json:"email"`
	Phone            string           `json:"phone"`
	EmergencyContact EmergencyContact `json:"emergency_contact"`
	RoomID           string           `json:"room_id"`
	CheckInDate      time.Time        `json:"check_in_date"`
	CheckOutDate     *time.Time       `json:"check_out_date,omitempty"`
	Status           string           `json:"status"`
	BehaviorNotes    []BehaviorNote   `json:"behavior_notes"`
	Documents        []Document       `json:"documents"`
}
