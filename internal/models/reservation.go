package models

import "time"

const (
	ReservationStatusPending   = "pending"
	ReservationStatusConfirmed = "confirmed"
	ReservationStatusCancelled = "cancelled"
)

type Discount struct {
	Type  string  `json:"type"` // "percentage" | "fixed"
	Value float64 `json:"value"`
}

// Reservation is a forward booking. ResidentID references the placeholder
// resident synthesized at reservation time; check-in promotes that resident
// to active and removes the reservation.
type Reservation struct {
	ID                 string     `json:"id"`
	ResidentID         string     `json:"resident_id"`
	RoomID             string     `json:"room_id"`
	StartDate          time.Time  `json:"start_date"`
	EndDate            *time.Time `json:"end_date,omitempty"`
	Status             string     `json:"status"`
	MatriculaAmount    float64    `json:"matricula_amount"` // ARS, rounded by the caller
	Discount           *Discount  `json:"discount,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`
}
