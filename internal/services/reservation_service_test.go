package services

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residencia-backend/internal/engine"
	"residencia-backend/internal/models"
	"residencia-backend/internal/store"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	eng := engine.New(store.NewNullStore())
	eng.Dispatch(engine.AddRoom{Room: models.Room{
		ID: "room-101", Number: "101", Type: "individual", Capacity: 1, Status: "available", Gender: "male",
	}})
	eng.Dispatch(engine.AddRoom{Room: models.Room{
		ID: "room-102", Number: "102", Type: "double", Capacity: 2, Status: "available", Gender: "female",
	}})
	return eng
}

func reserve(eng *engine.Engine, reservationID, residentID, roomID string, discount *models.Discount) {
	eng.Dispatch(engine.AddResident{Resident: models.Resident{
		ID:        residentID,
		FirstName: "Lucia",
		LastName:  "Gomez",
		Status:    models.ResidentStatusPending,
	}})
	eng.Dispatch(engine.AddReservation{Reservation: models.Reservation{
		ID:         reservationID,
		ResidentID: residentID,
		RoomID:     roomID,
		StartDate:  time.Date(2025, time.September, 1, 12, 0, 0, 0, time.UTC),
		Status:     "confirmed",
		Discount:   discount,
	}})
}

func TestCheckIn(t *testing.T) {
	eng := newTestEngine(t)
	reserve(eng, "reservation-1", "resident-1", "room-101", nil)

	svc := NewReservationService(eng)
	payment, err := svc.CheckIn("reservation-1")
	require.NoError(t, err)

	state := eng.Snapshot()

	// Placeholder became an active occupant of the reserved room.
	require.Len(t, state.Residents, 1)
	resident := state.Residents[0]
	assert.Equal(t, models.ResidentStatusActive, resident.Status)
	assert.Equal(t, "room-101", resident.RoomID)
	assert.False(t, resident.CheckInDate.IsZero())

	// First month of rent booked at the individual USD rate in pesos.
	assert.True(t, strings.HasPrefix(payment.ID, "monthly-"))
	assert.Equal(t, 245*1300.0, payment.Amount)
	assert.Equal(t, "ARS", payment.Currency)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)

	// The matricula booked at reservation time is still owed alongside rent.
	require.Len(t, state.Payments, 2)
	assert.Equal(t, payment.ID, state.Payments[1].ID)

	assert.Empty(t, state.Reservations)
	assert.Equal(t, 1, state.Rooms[0].CurrentOccupancy)
}

func TestCheckInUnknownReservation(t *testing.T) {
	eng := newTestEngine(t)
	svc := NewReservationService(eng)

	_, err := svc.CheckIn("reservation-missing")
	assert.Error(t, err)
}

func TestCheckInFullRoom(t *testing.T) {
	eng := newTestEngine(t)
	eng.Dispatch(engine.AddResident{Resident: models.Resident{
		ID: "resident-0", FirstName: "Martin", RoomID: "room-101", Status: models.ResidentStatusActive,
	}})
	reserve(eng, "reservation-1", "resident-1", "room-101", nil)

	svc := NewReservationService(eng)
	_, err := svc.CheckIn("reservation-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "full")

	// Nothing moved: the reservation, its placeholder and the matricula
	// survive, and no rent was booked.
	state := eng.Snapshot()
	assert.Len(t, state.Reservations, 1)
	assert.Len(t, state.Residents, 2)
	assert.Len(t, state.Payments, 1)
}

func TestCancelRemovesPlaceholder(t *testing.T) {
	eng := newTestEngine(t)
	reserve(eng, "reservation-1", "resident-1", "room-102", nil)

	svc := NewReservationService(eng)
	require.NoError(t, svc.Cancel("reservation-1"))

	state := eng.Snapshot()
	assert.Empty(t, state.Reservations)
	assert.Empty(t, state.Residents)
	assert.Empty(t, state.Payments)

	assert.Error(t, svc.Cancel("reservation-1"))
}

func TestMonthlyRentARS(t *testing.T) {
	cfg := engine.DefaultConfiguration()

	t.Run("converts USD rates at the exchange rate", func(t *testing.T) {
		assert.Equal(t, 245*1300.0, MonthlyRentARS(cfg, "individual", nil))
		assert.Equal(t, 190*1300.0, MonthlyRentARS(cfg, "double", nil))
	})

	t.Run("ARS override wins over conversion", func(t *testing.T) {
		over := cfg
		over.RoomRatesARS.Double = 200000
		assert.Equal(t, 200000.0, MonthlyRentARS(over, "double", nil))
	})

	t.Run("percentage discount rounds to whole pesos", func(t *testing.T) {
		got := MonthlyRentARS(cfg, "individual", &models.Discount{Type: "percentage", Value: 15})
		assert.Equal(t, 270725.0, got)
	})

	t.Run("fixed discount never goes negative", func(t *testing.T) {
		got := MonthlyRentARS(cfg, "quintuple", &models.Discount{Type: "fixed", Value: 1e9})
		assert.Equal(t, 0.0, got)
	})
}
