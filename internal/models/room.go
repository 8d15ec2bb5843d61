package models

// Room types map directly to capacity tiers.
const (
	RoomTypeIndividual = "individual" // 1 bed
	RoomTypeDouble     = "double"     // 2 beds
	RoomTypeTriple     = "triple"     // 3 beds
	RoomTypeQuadruple  = "quadruple"  // 4 beds
	RoomTypeQuintuple  = "quintuple"  // 5 beds
)

const (
	RoomStatusAvailable   = "available"
	RoomStatusOccupied    = "occupied"
	RoomStatusMaintenance = "maintenance"
)

// Room is a physical unit of the residence. CurrentOccupancy and Status are
// derived from the active resident roster and must never be authored directly.
type Room struct {
	ID               string  `json:"id"`
	Number           string  `json:"number"`
	Type             string  `json:"type"`
	Capacity         int     `json:"capacity"`
	CurrentOccupancy int     `json:"current_occupancy"`
	Status           string  `json:"status"`
	MonthlyRate      float64 `json:"monthly_rate"` // USD
	Gender           string  `json:"gender"`       // "male" | "female"
}

// RoomCapacity returns the bed count for a room type, 0 for unknown types.
func RoomCapacity(roomType string) int {
	switch roomType {
	case RoomTypeIndividual:
		return 1
	case RoomTypeDouble:
		return 2
	case RoomTypeTriple:
		return 3
	case RoomTypeQuadruple:
		return 4
	case RoomTypeQuintuple:
		return 5
	default:
		return 0
	}
}
