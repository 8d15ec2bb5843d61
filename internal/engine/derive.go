package engine

import "residencia-backend/internal/models"

// DeriveRooms recomputes each room's occupancy and status from the resident
// roster: occupancy is the count of active residents assigned to the room,
// status is available at zero occupancy and occupied otherwise. Fullness is
// not a stored status; consumers compute capacity - occupancy when they need
// free beds. Pure: the input slice is not modified.
func DeriveRooms(rooms []models.Room, residents []models.Resident) []models.Room {
	derived := make([]models.Room, len(rooms))
	for i, room := range rooms {
		occupancy := 0
		for _, resident := range residents {
			if resident.RoomID == room.ID && resident.Status == models.ResidentStatusActive {
				occupancy++
			}
		}
		room.CurrentOccupancy = occupancy
		if occupancy > 0 {
			room.Status = models.RoomStatusOccupied
		} else {
			room.Status = models.RoomStatusAvailable
		}
		derived[i] = room
	}
	return derived
}
