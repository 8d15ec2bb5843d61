package services

import (
	"fmt"
	"math"

	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
	"residencia-backend/internal/timeutil"
)

// ReservationService composes the multi-step booking flows on top of single
// engine actions. Each step is its own dispatch so persistence mirrors the
// state transitions one to one.
type ReservationService struct {
	Engine *engine.Engine
}

func NewReservationService(e *engine.Engine) *ReservationService {
	return &ReservationService{Engine: e}
}

// CheckIn promotes a reserved placeholder to an active resident, books the
// first monthly rent at the room's ARS rate (reservation discount applied)
// and removes the reservation.
func (s *ReservationService) CheckIn(reservationID string) (models.Payment, error) {
	state := s.Engine.Snapshot()

	reservation, ok := findReservation(state.Reservations, reservationID)
	if !ok {
		return models.Payment{}, fmt.Errorf("reservation %s not found", reservationID)
	}

	resident, ok := findResident(state.Residents, reservation.ResidentID)
	if !ok {
		return models.Payment{}, fmt.Errorf("resident %s not found for reservation %s", reservation.ResidentID, reservationID)
	}

	room, ok := findRoom(state.Rooms, reservation.RoomID)
	if !ok {
		return models.Payment{}, fmt.Errorf("room %s not found for reservation %s", reservation.RoomID, reservationID)
	}
	if room.CurrentOccupancy >= room.Capacity {
		return models.Payment{}, fmt.Errorf("room %s is full", room.Number)
	}

	now := timeutil.Now()
	amount := MonthlyRentARS(state.Configuration, room.Type, reservation.Discount)

	resident.Status = models.ResidentStatusActive
	resident.RoomID = reservation.RoomID
	resident.CheckInDate = now
	s.Engine.Dispatch(engine.UpdateResident{Resident: resident})

	payment := models.Payment{
		ID:         fmt.Sprintf("monthly-%d-%s", now.UnixMilli(), resident.ID),
		ResidentID: resident.ID,
		Amount:     amount,
		Currency:   "ARS",
		Method:     models.PaymentMethodCash,
		Date:       now,
		Type:       models.PaymentTypeMonthlyRent,
		Status:     models.PaymentStatusPending,
	}
	s.Engine.Dispatch(engine.AddPayment{Payment: payment})

	// The resident is active now, so this delete has no cascade.
	s.Engine.Dispatch(engine.DeleteReservation{ReservationID: reservationID})

	return payment, nil
}

// Cancel removes a reservation before check-in. The placeholder resident and
// its pending payments go with it.
func (s *ReservationService) Cancel(reservationID string) error {
	state := s.Engine.Snapshot()
	if _, ok := findReservation(state.Reservations, reservationID); !ok {
		return fmt.Errorf("reservation %s not found", reservationID)
	}
	s.Engine.Dispatch(engine.DeleteReservation{ReservationID: reservationID})
	return nil
}

// MonthlyRentARS resolves the monthly rent for a room type in pesos. The ARS
// override table wins when set; otherwise the USD rate is converted at the
// configured exchange rate. Discounts round to whole pesos.
func MonthlyRentARS(cfg models.Configuration, roomType string, discount *models.Discount) float64 {
	amount := cfg.RoomRatesARS.ForType(roomType)
	if amount == 0 {
		amount = cfg.RoomRates.ForType(roomType) * cfg.ExchangeRate
	}

	if discount != nil {
		switch discount.Type {
		case "percentage":
			amount = amount * (1 - discount.Value/100)
		case "fixed":
			amount = amount - discount.Value
		}
		if amount < 0 {
			amount = 0
		}
	}
	return math.Round(amount)
}

func findReservation(reservations []models.Reservation, id string) (models.Reservation, bool) {
	for _, r := range reservations {
		if r.ID == id {
			return r, true
		}
	}
	return models.Reservation{}, false
}

func findResident(residents []models.Resident, id string) (models.Resident, bool) {
	for _, r := range residents {
		if r.ID == id {
			return r, true
		}
	}
	return models.Resident{}, false
}

func findRoom(rooms []models.Room, id string) (models.Room, bool) {
	for _, r := range rooms {
		if r.ID == id {
			return r, true
		}
	}
	return models.Room{}, false
}
