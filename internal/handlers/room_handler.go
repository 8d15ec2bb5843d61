package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"residencia-backend/internal/cache"
	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
)

type RoomHandler struct {
	Engine *engine.Engine
}

func NewRoomHandler(e *engine.Engine) *RoomHandler {
	return &RoomHandler{Engine: e}
}

func (h *RoomHandler) ListRooms(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Engine.Snapshot().Rooms)
}

func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var room models.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if room.ID == "" {
		room.ID = uuid.NewString()
	}
	if room.Capacity == 0 {
		room.Capacity = models.RoomCapacity(room.Type)
	}

	state := h.Engine.Dispatch(engine.AddRoom{Room: room})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(findRoomIn(state.Rooms, room.ID))
}

func (h *RoomHandler) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var room models.Room
	if err := json.NewDecoder(r.Body).Decode(&room); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	room.ID = id

	state := h.Engine.Dispatch(engine.UpdateRoom{Room: room})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(findRoomIn(state.Rooms, id))
}

func (h *RoomHandler) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	h.Engine.Dispatch(engine.DeleteRoom{RoomID: id})
	cache.InvalidateDashboard(r.Context())

	w.WriteHeader(http.StatusNoContent)
}

func findRoomIn(rooms []models.Room, id string) *models.Room {
	for i := range rooms {
		if rooms[i].ID == id {
			return &rooms[i]
		}
	}
	return nil
}
