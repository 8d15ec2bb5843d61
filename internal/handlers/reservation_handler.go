package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"residencia-backend/internal/cache"
	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
	"residencia-backend/internal/services"
)

type ReservationHandler struct {
	Engine  *engine.Engine
	Service *services.ReservationService
}

func NewReservationHandler(e *engine.Engine, s *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{Engine: e, Service: s}
}

func (h *ReservationHandler) ListReservations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.Engine.Snapshot().Reservations)
}

// CreateReservation books a room: a placeholder resident, the reservation
// itself and its enrollment-fee payment. The placeholder arrives inline so a
// single request carries the whole booking.
func (h *ReservationHandler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Reservation models.Reservation `json:"reservation"`
		Resident    models.Resident    `json:"resident"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Resident.ID == "" {
		req.Resident.ID = uuid.NewString()
	}
	req.Resident.Status = models.ResidentStatusPending
	req.Resident.RoomID = req.Reservation.RoomID
	if req.Resident.CheckInDate.IsZero() {
		req.Resident.CheckInDate = req.Reservation.StartDate
	}

	if req.Reservation.ID == "" {
		req.Reservation.ID = uuid.NewString()
	}
	req.Reservation.ResidentID = req.Resident.ID
	if req.Reservation.Status == "" {
		req.Reservation.Status = models.ReservationStatusPending
	}

	h.Engine.Dispatch(engine.AddResident{Resident: req.Resident})
	h.Engine.Dispatch(engine.AddReservation{Reservation: req.Reservation})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req.Reservation)
}

func (h *ReservationHandler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var reservation models.Reservation
	if err := json.NewDecoder(r.Body).Decode(&reservation); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	reservation.ID = id

	h.Engine.Dispatch(engine.UpdateReservation{Reservation: reservation})
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(reservation)
}

func (h *ReservationHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	payment, err := h.Service.CheckIn(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	cache.InvalidateDashboard(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(payment)
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := h.Service.Cancel(id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	cache.InvalidateDashboard(r.Context())

	w.WriteHeader(http.StatusNoContent)
}
